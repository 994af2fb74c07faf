package repositories

import (
	"context"

	"github.com/edulane/lms-service/internal/models"
)

// UserRepository interface for account operations.
type UserRepository interface {
	// Create persists the user together with its role sub-record
	// (Admin/Faculty/Student) in one transaction; a partially created
	// account is never observable.
	Create(ctx context.Context, user *models.User) error

	// Read operations
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)

	// Update operations; updates is a partial field set
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error)
	UpdateByEmail(ctx context.Context, email string, updates map[string]interface{}) (*models.User, error)

	// Delete operations
	Delete(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error

	// Validation and checks
	IsVerified(ctx context.Context, email string) (bool, error) // false when user absent
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Listing
	ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)

	// Role sub-record lookups (student/faculty ids differ from user ids)
	GetStudentByUserID(ctx context.Context, userID uint) (*models.Student, error)
	GetFacultyByUserID(ctx context.Context, userID uint) (*models.Faculty, error)
	GetAdminByUserID(ctx context.Context, userID uint) (*models.Admin, error)
}
