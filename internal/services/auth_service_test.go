package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

type mockMailer struct {
	mu     sync.Mutex
	sent   []string // html bodies in send order
	failed bool
}

func (m *mockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failed {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, htmlBody)
	return nil
}

func (m *mockMailer) lastBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1]
}

// verificationToken pulls the token out of the verification link in a sent
// email body.
func (m *mockMailer) verificationToken(t *testing.T) string {
	t.Helper()

	body := m.lastBody()
	marker := "/auth/verify/"
	start := strings.Index(body, marker)
	if start == -1 {
		t.Fatalf("No verification link in email body: %s", body)
	}
	rest := body[start+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end == -1 {
		t.Fatalf("Malformed verification link in email body: %s", body)
	}
	return rest[:end]
}

type mockGoogleVerifier struct {
	claims *GoogleClaims
	err    error
}

func (m *mockGoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func newAuthService(repo repositories.Repository, mail *mockMailer, google GoogleVerifier) AuthService {
	return NewAuthService(repo, testLogger(), validator.New(), mail, google, AuthConfig{
		JWTSecret:   "test-secret",
		FrontendURL: "http://localhost:3000",
	})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newTestRepo(t)
	mail := &mockMailer{}
	service := newAuthService(repo, mail, &mockGoogleVerifier{})
	ctx := context.Background()

	req := &RegisterRequest{
		Email:     "alice@example.com",
		Password:  "correct-horse",
		FirstName: "Alice",
		LastName:  "Nguyen",
	}

	t.Run("Register", func(t *testing.T) {
		user, err := service.RegisterStudent(ctx, req)
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}
		if user.Verified {
			t.Error("New account must start unverified")
		}
		if user.Role != models.RoleStudent {
			t.Errorf("Expected role STUDENT, got %s", user.Role)
		}
		if len(mail.sent) != 1 {
			t.Fatalf("Expected 1 verification email, got %d", len(mail.sent))
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := service.RegisterFaculty(ctx, req)
		if !errors.Is(err, ErrEmailExists) {
			t.Fatalf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("LoginBeforeVerification", func(t *testing.T) {
		_, err := service.EmailLogin(ctx, &LoginRequest{Email: req.Email, Password: req.Password})
		if !errors.Is(err, ErrNotVerified) {
			t.Fatalf("Expected ErrNotVerified, got %v", err)
		}
	})

	t.Run("VerifyEmail", func(t *testing.T) {
		user, err := service.VerifyEmail(ctx, mail.verificationToken(t))
		if err != nil {
			t.Fatalf("Failed to verify email: %v", err)
		}
		if !user.Verified {
			t.Error("User must be verified after consuming the link")
		}
	})

	t.Run("BadVerificationToken", func(t *testing.T) {
		_, err := service.VerifyEmail(ctx, "not-a-jwt")
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Login", func(t *testing.T) {
		result, err := service.EmailLogin(ctx, &LoginRequest{Email: req.Email, Password: req.Password})
		if err != nil {
			t.Fatalf("Failed to login: %v", err)
		}
		if result.Token == "" {
			t.Fatal("Expected a session token")
		}

		claims, err := service.ParseSessionToken(result.Token)
		if err != nil {
			t.Fatalf("Failed to parse session token: %v", err)
		}
		if claims.UserID != result.User.ID {
			t.Errorf("Expected user id %d in claims, got %d", result.User.ID, claims.UserID)
		}
		if claims.Role != models.RoleStudent {
			t.Errorf("Expected role STUDENT in claims, got %s", claims.Role)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.EmailLogin(ctx, &LoginRequest{Email: req.Email, Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := service.EmailLogin(ctx, &LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("MailFailureDoesNotFailRegistration", func(t *testing.T) {
		mail.failed = true
		_, err := service.RegisterStudent(ctx, &RegisterRequest{
			Email:     "bob@example.com",
			Password:  "another-pass",
			FirstName: "Bob",
			LastName:  "Tran",
		})
		if err != nil {
			t.Fatalf("Registration must survive a mail outage: %v", err)
		}
	})
}

func TestGoogleSignIn(t *testing.T) {
	repo := newTestRepo(t)
	mail := &mockMailer{}
	google := &mockGoogleVerifier{claims: &GoogleClaims{
		Subject:   "google-sub-123",
		Email:     "carol@example.com",
		FirstName: "Carol",
		LastName:  "Pham",
	}}
	service := newAuthService(repo, mail, google)
	ctx := context.Background()

	t.Run("FirstSignInCreatesVerifiedAccount", func(t *testing.T) {
		result, err := service.GoogleSignIn(ctx, "id-token", models.RoleStudent)
		if err != nil {
			t.Fatalf("Failed google sign-in: %v", err)
		}
		if !result.User.Verified {
			t.Error("Google accounts must start verified")
		}
		if result.User.GoogleID == nil || *result.User.GoogleID != "google-sub-123" {
			t.Errorf("Expected google id to be linked, got %v", result.User.GoogleID)
		}
		if result.Token == "" {
			t.Error("Expected a session token")
		}
	})

	t.Run("RoleMismatchRejected", func(t *testing.T) {
		_, err := service.GoogleSignIn(ctx, "id-token", models.RoleFaculty)
		if !errors.Is(err, ErrRoleMismatch) {
			t.Fatalf("Expected ErrRoleMismatch, got %v", err)
		}
	})

	t.Run("GoogleOnlyAccountHasNoPassword", func(t *testing.T) {
		_, err := service.EmailLogin(ctx, &LoginRequest{Email: "carol@example.com", Password: "anything"})
		if !errors.Is(err, ErrNoPasswordSet) {
			t.Fatalf("Expected ErrNoPasswordSet, got %v", err)
		}
	})

	t.Run("InvalidIDToken", func(t *testing.T) {
		google.err = errors.New("signature mismatch")
		defer func() { google.err = nil }()

		_, err := service.GoogleSignIn(ctx, "tampered", models.RoleStudent)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("LinksGoogleIDToExistingAccount", func(t *testing.T) {
		mail.failed = false
		registered, err := service.RegisterStudent(ctx, &RegisterRequest{
			Email:     "dave@example.com",
			Password:  "dave-password",
			FirstName: "Dave",
			LastName:  "Le",
		})
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		google.claims = &GoogleClaims{Subject: "google-sub-456", Email: "dave@example.com"}
		result, err := service.GoogleSignIn(ctx, "id-token", models.RoleStudent)
		if err != nil {
			t.Fatalf("Failed google sign-in: %v", err)
		}
		if result.User.ID != registered.ID {
			t.Errorf("Expected existing account %d, got %d", registered.ID, result.User.ID)
		}
		if result.User.GoogleID == nil || *result.User.GoogleID != "google-sub-456" {
			t.Errorf("Expected google id to be linked, got %v", result.User.GoogleID)
		}
	})
}
