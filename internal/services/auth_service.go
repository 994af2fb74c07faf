package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/edulane/lms-service/internal/mailer"
	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

const (
	sessionTokenTTL      = time.Hour
	verificationTokenTTL = 24 * time.Hour
)

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	UserID uint            `json:"id"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// verificationClaims is the payload of the email verification link.
type verificationClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// AuthConfig carries the auth-related settings the service needs.
type AuthConfig struct {
	JWTSecret   string
	FrontendURL string
}

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	mail      mailer.EmailService
	google    GoogleVerifier
	cfg       AuthConfig
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, mail mailer.EmailService, google GoogleVerifier, cfg AuthConfig) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		mail:      mail,
		google:    google,
		cfg:       cfg,
	}
}

// ===== EMAIL / PASSWORD =====

func (s *authService) EmailLogin(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Google-only accounts have no password hash.
	if user.Password == nil {
		return nil, ErrNoPasswordSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, ErrNotVerified
	}

	token, err := s.issueSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)

	return &AuthResult{User: user, Token: token}, nil
}

func (s *authService) RegisterStudent(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	return s.register(ctx, req, models.RoleStudent)
}

func (s *authService) RegisterFaculty(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	return s.register(ctx, req, models.RoleFaculty)
}

func (s *authService) register(ctx context.Context, req *RegisterRequest, role models.UserRole) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	s.logger.Info("Registering user", "email", req.Email, "role", role)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	user := &models.User{
		Email:       req.Email,
		Password:    &hashed,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Institution: req.Institution,
		Role:        role,
		Verified:    false,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Verification mail failure must not fail the registration.
	if err := s.sendVerificationEmail(ctx, user); err != nil {
		s.logger.Error("Failed to send verification email", "error", err, "user_id", user.ID)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", role)

	return user, nil
}

func (s *authService) sendVerificationEmail(ctx context.Context, user *models.User) error {
	token, err := s.issueVerificationToken(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	link := fmt.Sprintf("%s/auth/verify/%s", s.cfg.FrontendURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Please verify your email address by clicking "+
			"<a href=%q>this link</a>. The link expires in 24 hours.</p>",
		user.FirstName, link)

	return s.mail.Send(ctx, user.Email, "Verify your email address", body)
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	claims := &verificationClaims{}
	if err := s.parseToken(token, claims); err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User().Update(ctx, claims.UserID, map[string]interface{}{"verified": true})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	s.logger.Info("Email verified", "user_id", user.ID)

	return user, nil
}

// ===== GOOGLE SIGN-IN =====

func (s *authService) GoogleSignIn(ctx context.Context, idToken string, role models.UserRole) (*AuthResult, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	claims, err := s.google.Verify(ctx, idToken)
	if err != nil {
		s.logger.Warn("Google sign-in rejected", "error", err)
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User().GetByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		// Existing account: the requested role must match.
		if user.Role != role {
			return nil, ErrRoleMismatch
		}
		if user.GoogleID == nil {
			user, err = s.repo.User().Update(ctx, user.ID, map[string]interface{}{"google_id": claims.Subject})
			if err != nil {
				return nil, fmt.Errorf("failed to link google account: %w", err)
			}
		}

	case repositories.IsNotFoundError(err):
		// Google vouches for the address, so the account starts verified.
		user = &models.User{
			Email:     claims.Email,
			GoogleID:  &claims.Subject,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
			Role:      role,
			Verified:  true,
		}
		if err := s.repo.User().Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

	default:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	token, err := s.issueSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("Google sign-in", "user_id", user.ID, "role", user.Role)

	return &AuthResult{User: user, Token: token}, nil
}

// ===== TOKENS =====

func (s *authService) issueSessionToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) issueVerificationToken(userID uint) (string, error) {
	now := time.Now()
	claims := &verificationClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(verificationTokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) ParseSessionToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parseToken(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) parseToken(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return errors.New("token is not valid")
	}
	return nil
}
