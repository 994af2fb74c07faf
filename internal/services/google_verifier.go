package services

import (
	"context"
	"fmt"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// GoogleClaims is the subset of the Google ID token the service uses.
type GoogleClaims struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// GoogleVerifier checks a Google ID token and returns its claims.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

type googleVerifier struct {
	clientID string
	verifier *googleAuthIDTokenVerifier.Verifier
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{
		clientID: clientID,
		verifier: &googleAuthIDTokenVerifier.Verifier{},
	}
}

func (g *googleVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	if err := g.verifier.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return nil, fmt.Errorf("google id token verification failed: %w", err)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fmt.Errorf("google id token decode failed: %w", err)
	}

	return &GoogleClaims{
		Subject:   claimSet.Sub,
		Email:     claimSet.Email,
		FirstName: claimSet.GivenName,
		LastName:  claimSet.FamilyName,
	}, nil
}
