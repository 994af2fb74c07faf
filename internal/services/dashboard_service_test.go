package services

import (
	"context"
	"testing"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/validator"
)

func TestGetAdminStats(t *testing.T) {
	repo := newTestRepo(t)
	logger := testLogger()
	service := NewDashboardService(repo, logger)
	enrollmentService := NewEnrollmentService(repo, logger, validator.New(), nil)
	ctx := context.Background()

	createTestUser(t, repo, "admin@example.com", models.RoleAdmin)
	facultyUser := createTestUser(t, repo, "faculty@example.com", models.RoleFaculty)
	studentUser := createTestUser(t, repo, "student@example.com", models.RoleStudent)
	facultyID := facultyRecordID(t, repo, facultyUser.ID)
	studentID := studentRecordID(t, repo, studentUser.ID)

	published := createTestCourse(t, repo, facultyID, models.CoursePublished)
	createTestCourse(t, repo, facultyID, models.CourseDraft)

	enrollment, err := enrollmentService.CreatePendingEnrollment(ctx, studentID, published.ID)
	if err != nil {
		t.Fatalf("Failed to create enrollment: %v", err)
	}
	payment, err := enrollmentService.CreatePayment(ctx, &CreatePaymentRequest{
		EnrollmentID: enrollment.ID,
		Amount:       120.50,
		Status:       models.PaymentCompleted,
	})
	if err != nil {
		t.Fatalf("Failed to create payment: %v", err)
	}
	if _, err := enrollmentService.ActivateEnrollment(ctx, enrollment.ID, payment.ID); err != nil {
		t.Fatalf("Failed to activate enrollment: %v", err)
	}

	stats, err := service.GetAdminStats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}

	if stats.TotalUsers != 3 {
		t.Errorf("Expected 3 users, got %d", stats.TotalUsers)
	}
	if stats.UsersByRole[string(models.RoleStudent)] != 1 {
		t.Errorf("Expected 1 student, got %d", stats.UsersByRole[string(models.RoleStudent)])
	}
	if stats.TotalCourses != 2 {
		t.Errorf("Expected 2 courses, got %d", stats.TotalCourses)
	}
	if stats.PublishedCourses != 1 {
		t.Errorf("Expected 1 published course, got %d", stats.PublishedCourses)
	}
	if stats.TotalEnrollments != 1 {
		t.Errorf("Expected 1 enrollment, got %d", stats.TotalEnrollments)
	}
	if stats.ActiveEnrollments != 1 {
		t.Errorf("Expected 1 active enrollment, got %d", stats.ActiveEnrollments)
	}
	if stats.PendingEnrollments != 0 {
		t.Errorf("Expected 0 pending enrollments, got %d", stats.PendingEnrollments)
	}
	if stats.CompletedPayments != 1 {
		t.Errorf("Expected 1 completed payment, got %d", stats.CompletedPayments)
	}
	if stats.Revenue != 120.50 {
		t.Errorf("Expected revenue 120.50, got %v", stats.Revenue)
	}
}
