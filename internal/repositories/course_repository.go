package repositories

import (
	"context"

	"github.com/edulane/lms-service/internal/models"
)

// CourseFilters defines filters for course listing queries.
type CourseFilters struct {
	Status *models.CourseStatus
	Limit  int
	Offset int
}

// CourseRepository interface for course metadata operations.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	CreateBatch(ctx context.Context, courses []*models.Course) error

	GetByID(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Course, error)
	Delete(ctx context.Context, id uint) error

	ListByFaculty(ctx context.Context, facultyID uint, filters CourseFilters) ([]*models.Course, error)
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)

	// ListEnrolledStudents returns the users behind ACTIVE enrollments only;
	// pending/unpaid enrollments are excluded from the roster.
	ListEnrolledStudents(ctx context.Context, courseID uint) ([]*models.User, error)
}
