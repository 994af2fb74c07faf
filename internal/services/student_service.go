package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edulane/lms-service/internal/repositories"
)

type studentService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger) StudentService {
	return &studentService{
		repo:   repo,
		logger: logger,
	}
}

// GetMyEnrollments lists every enrollment of the calling user, pending ones
// included, with the course attached.
func (s *studentService) GetMyEnrollments(ctx context.Context, userID uint) ([]*EnrollmentResponse, error) {
	student, err := s.repo.User().GetStudentByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve student record: %w", err)
	}

	enrollments, err := s.repo.Enrollment().ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	items := make([]*EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		item := &EnrollmentResponse{Enrollment: e}
		if e.Course.ID != 0 {
			course := e.Course
			item.Course = &course
		}
		items = append(items, item)
	}
	return items, nil
}
