package repositories

import (
	"context"

	"github.com/edulane/lms-service/internal/models"
)

// EnrollmentRepository interface for the enrollment join records.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error

	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	// GetByIDWithPayment preloads the linked payment for verification flows.
	GetByIDWithPayment(ctx context.Context, id uint) (*models.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error)

	// Update applies a partial field set to a single enrollment row.
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Enrollment, error)

	ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID uint, status *models.EnrollmentStatus) ([]*models.Enrollment, error)
}

// PaymentRepository interface for payment rows owned by enrollments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status models.PaymentStatus) (*models.Payment, error)
	ListByEnrollment(ctx context.Context, enrollmentID uint) ([]*models.Payment, error)
}
