package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

type accountService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAccountService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AccountService {
	return &accountService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create persists the user together with its role sub-record. A duplicate
// email surfaces as ErrEmailExists.
func (s *accountService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.logger.Info("Creating user", "email", user.Email, "role", user.Role)

	if !user.Role.Valid() {
		return nil, fmt.Errorf("invalid role %q", user.Role)
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "role", user.Role)

	return s.repo.User().GetByID(ctx, user.ID)
}

func (s *accountService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *accountService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *accountService) Update(ctx context.Context, id uint, req *UserUpdateRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Institution != nil {
		updates["institution"] = *req.Institution
	}

	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	user, err := s.repo.User().Update(ctx, id, updates)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *accountService) UpdateByEmail(ctx context.Context, email string, updates map[string]interface{}) (*models.User, error) {
	user, err := s.repo.User().UpdateByEmail(ctx, email, updates)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *accountService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting user", "user_id", id)

	if err := s.repo.User().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *accountService) DeleteByEmail(ctx context.Context, email string) error {
	s.logger.Info("Deleting user", "email", email)

	if err := s.repo.User().DeleteByEmail(ctx, email); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// IsVerified reports false, nil for unknown emails.
func (s *accountService) IsVerified(ctx context.Context, email string) (bool, error) {
	return s.repo.User().IsVerified(ctx, email)
}

func (s *accountService) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	return s.repo.User().ListByRole(ctx, role)
}
