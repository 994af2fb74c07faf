package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edulane/lms-service/internal/events"
	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/validator"
)

func TestEnrollmentStateMachine(t *testing.T) {
	repo := newTestRepo(t)
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	service := NewEnrollmentService(repo, logger, validator.New(), publisher)
	ctx := context.Background()

	facultyUser := createTestUser(t, repo, "faculty@example.com", models.RoleFaculty)
	studentUser := createTestUser(t, repo, "student@example.com", models.RoleStudent)
	facultyID := facultyRecordID(t, repo, facultyUser.ID)
	studentID := studentRecordID(t, repo, studentUser.ID)
	course := createTestCourse(t, repo, facultyID, models.CoursePublished)

	var enrollment *models.Enrollment

	t.Run("CreatePendingEnrollment", func(t *testing.T) {
		var err error
		enrollment, err = service.CreatePendingEnrollment(ctx, studentID, course.ID)
		if err != nil {
			t.Fatalf("Failed to create enrollment: %v", err)
		}
		if enrollment.Status != models.EnrollmentPending {
			t.Errorf("Expected status PENDING, got %s", enrollment.Status)
		}
		if enrollment.Paid {
			t.Error("New enrollment must not be paid")
		}
		if enrollment.PaymentID != nil {
			t.Error("New enrollment must not reference a payment")
		}
	})

	t.Run("DuplicateEnrollmentRejected", func(t *testing.T) {
		_, err := service.CreatePendingEnrollment(ctx, studentID, course.ID)
		if !errors.Is(err, ErrDuplicateEnrollment) {
			t.Fatalf("Expected ErrDuplicateEnrollment, got %v", err)
		}
	})

	var payment *models.Payment

	t.Run("CreatePayment", func(t *testing.T) {
		var err error
		payment, err = service.CreatePayment(ctx, &CreatePaymentRequest{
			EnrollmentID: enrollment.ID,
			Amount:       49.99,
			Status:       models.PaymentPending,
		})
		if err != nil {
			t.Fatalf("Failed to create payment: %v", err)
		}
		if payment.Status != models.PaymentPending {
			t.Errorf("Expected payment status PENDING, got %s", payment.Status)
		}
	})

	t.Run("CreatePaymentUnknownEnrollment", func(t *testing.T) {
		_, err := service.CreatePayment(ctx, &CreatePaymentRequest{
			EnrollmentID: 9999,
			Amount:       10,
			Status:       models.PaymentPending,
		})
		if !errors.Is(err, ErrEnrollmentNotFound) {
			t.Fatalf("Expected ErrEnrollmentNotFound, got %v", err)
		}
	})

	t.Run("ActivateRejectsUnsettledPayment", func(t *testing.T) {
		_, err := service.ActivateEnrollment(ctx, enrollment.ID, payment.ID)
		if !errors.Is(err, ErrPaymentNotCompleted) {
			t.Fatalf("Expected ErrPaymentNotCompleted, got %v", err)
		}
	})

	t.Run("ConfirmPaymentLeavesEnrollmentUntouched", func(t *testing.T) {
		confirmed, err := service.ConfirmPayment(ctx, payment.ID, models.PaymentCompleted)
		if err != nil {
			t.Fatalf("Failed to confirm payment: %v", err)
		}
		if confirmed.Status != models.PaymentCompleted {
			t.Errorf("Expected payment status COMPLETED, got %s", confirmed.Status)
		}

		// Settling the payment must not flip the enrollment.
		current, err := service.GetByID(ctx, enrollment.ID)
		if err != nil {
			t.Fatalf("Failed to get enrollment: %v", err)
		}
		if current.Status != models.EnrollmentPending || current.Paid {
			t.Errorf("Enrollment changed by payment confirmation: status=%s paid=%v",
				current.Status, current.Paid)
		}
	})

	t.Run("ActivateRejectsForeignPayment", func(t *testing.T) {
		otherStudent := createTestUser(t, repo, "other@example.com", models.RoleStudent)
		otherEnrollment, err := service.CreatePendingEnrollment(ctx,
			studentRecordID(t, repo, otherStudent.ID), course.ID)
		if err != nil {
			t.Fatalf("Failed to create second enrollment: %v", err)
		}

		_, err = service.ActivateEnrollment(ctx, otherEnrollment.ID, payment.ID)
		if !errors.Is(err, ErrPaymentEnrollmentMismatch) {
			t.Fatalf("Expected ErrPaymentEnrollmentMismatch, got %v", err)
		}
	})

	t.Run("ActivateEnrollment", func(t *testing.T) {
		publisher.ClearEvents()

		activated, err := service.ActivateEnrollment(ctx, enrollment.ID, payment.ID)
		if err != nil {
			t.Fatalf("Failed to activate enrollment: %v", err)
		}
		if activated.Status != models.EnrollmentActive {
			t.Errorf("Expected status ACTIVE, got %s", activated.Status)
		}
		if !activated.Paid {
			t.Error("Activated enrollment must be paid")
		}
		if activated.PaymentID == nil || *activated.PaymentID != payment.ID {
			t.Errorf("Expected payment_id %d, got %v", payment.ID, activated.PaymentID)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.TypeEnrollmentActivated {
			t.Errorf("Expected event type %s, got %s", events.TypeEnrollmentActivated, published[0].Type)
		}
	})

	t.Run("ActivateIsIdempotent", func(t *testing.T) {
		publisher.ClearEvents()

		again, err := service.ActivateEnrollment(ctx, enrollment.ID, payment.ID)
		if err != nil {
			t.Fatalf("Re-activation with same payment must succeed: %v", err)
		}
		if again.Status != models.EnrollmentActive {
			t.Errorf("Expected status ACTIVE, got %s", again.Status)
		}

		// No second activation event.
		if n := len(publisher.GetPublishedEvents()); n != 0 {
			t.Errorf("Expected no events on idempotent re-activation, got %d", n)
		}
	})

	t.Run("ActivateConflictsWithDifferentPayment", func(t *testing.T) {
		second, err := service.CreatePayment(ctx, &CreatePaymentRequest{
			EnrollmentID: enrollment.ID,
			Amount:       49.99,
			Status:       models.PaymentCompleted,
		})
		if err != nil {
			t.Fatalf("Failed to create second payment: %v", err)
		}

		_, err = service.ActivateEnrollment(ctx, enrollment.ID, second.ID)
		if !errors.Is(err, ErrEnrollmentAlreadyActive) {
			t.Fatalf("Expected ErrEnrollmentAlreadyActive, got %v", err)
		}
	})
}

func TestConfirmPayment(t *testing.T) {
	repo := newTestRepo(t)
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	service := NewEnrollmentService(repo, logger, validator.New(), publisher)
	ctx := context.Background()

	facultyUser := createTestUser(t, repo, "faculty@example.com", models.RoleFaculty)
	studentUser := createTestUser(t, repo, "student@example.com", models.RoleStudent)
	course := createTestCourse(t, repo, facultyRecordID(t, repo, facultyUser.ID), models.CoursePublished)

	enrollment, err := service.CreatePendingEnrollment(ctx,
		studentRecordID(t, repo, studentUser.ID), course.ID)
	if err != nil {
		t.Fatalf("Failed to create enrollment: %v", err)
	}

	t.Run("RejectsNonTerminalStatus", func(t *testing.T) {
		payment, err := service.CreatePayment(ctx, &CreatePaymentRequest{
			EnrollmentID: enrollment.ID,
			Amount:       10,
			Status:       models.PaymentPending,
		})
		if err != nil {
			t.Fatalf("Failed to create payment: %v", err)
		}

		if _, err := service.ConfirmPayment(ctx, payment.ID, models.PaymentPending); err == nil {
			t.Fatal("Expected error when settling with PENDING")
		}
	})

	t.Run("UnknownPayment", func(t *testing.T) {
		_, err := service.ConfirmPayment(ctx, 9999, models.PaymentCompleted)
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("Expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("FailedPaymentPublishesFailureEvent", func(t *testing.T) {
		payment, err := service.CreatePayment(ctx, &CreatePaymentRequest{
			EnrollmentID: enrollment.ID,
			Amount:       10,
			Status:       models.PaymentPending,
		})
		if err != nil {
			t.Fatalf("Failed to create payment: %v", err)
		}

		publisher.ClearEvents()
		if _, err := service.ConfirmPayment(ctx, payment.ID, models.PaymentFailed); err != nil {
			t.Fatalf("Failed to confirm payment: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.TypePaymentFailed {
			t.Errorf("Expected event type %s, got %s", events.TypePaymentFailed, published[0].Type)
		}
	})
}
