package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/validator"
)

func TestGetMyEnrollments(t *testing.T) {
	repo := newTestRepo(t)
	logger := testLogger()
	service := NewStudentService(repo, logger)
	enrollmentService := NewEnrollmentService(repo, logger, validator.New(), nil)
	ctx := context.Background()

	facultyUser := createTestUser(t, repo, "faculty@example.com", models.RoleFaculty)
	studentUser := createTestUser(t, repo, "student@example.com", models.RoleStudent)
	facultyID := facultyRecordID(t, repo, facultyUser.ID)
	studentID := studentRecordID(t, repo, studentUser.ID)

	first := createTestCourse(t, repo, facultyID, models.CoursePublished)
	second := createTestCourse(t, repo, facultyID, models.CoursePublished)

	pending, err := enrollmentService.CreatePendingEnrollment(ctx, studentID, first.ID)
	if err != nil {
		t.Fatalf("Failed to create enrollment: %v", err)
	}
	if _, err := enrollmentService.CreatePendingEnrollment(ctx, studentID, second.ID); err != nil {
		t.Fatalf("Failed to create second enrollment: %v", err)
	}

	payment, err := enrollmentService.CreatePayment(ctx, &CreatePaymentRequest{
		EnrollmentID: pending.ID,
		Amount:       49.99,
		Status:       models.PaymentCompleted,
	})
	if err != nil {
		t.Fatalf("Failed to create payment: %v", err)
	}
	if _, err := enrollmentService.ActivateEnrollment(ctx, pending.ID, payment.ID); err != nil {
		t.Fatalf("Failed to activate enrollment: %v", err)
	}

	t.Run("PendingEnrollmentsIncluded", func(t *testing.T) {
		enrollments, err := service.GetMyEnrollments(ctx, studentUser.ID)
		if err != nil {
			t.Fatalf("Failed to get enrollments: %v", err)
		}
		if len(enrollments) != 2 {
			t.Fatalf("Expected 2 enrollments, got %d", len(enrollments))
		}

		byStatus := map[models.EnrollmentStatus]int{}
		for _, e := range enrollments {
			byStatus[e.Status]++
			if e.Course == nil {
				t.Error("Expected course to be attached")
			}
		}
		if byStatus[models.EnrollmentActive] != 1 || byStatus[models.EnrollmentPending] != 1 {
			t.Errorf("Expected one ACTIVE and one PENDING, got %v", byStatus)
		}
	})

	t.Run("NonStudentRejected", func(t *testing.T) {
		_, err := service.GetMyEnrollments(ctx, facultyUser.ID)
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
