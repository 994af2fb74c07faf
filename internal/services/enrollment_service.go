package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edulane/lms-service/internal/events"
	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// CreatePendingEnrollment opens the enrollment in its initial state: unpaid,
// PENDING, no progress. A second enrollment for the same (student, course)
// pair is rejected.
func (s *enrollmentService) CreatePendingEnrollment(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	s.logger.Info("Creating pending enrollment", "student_id", studentID, "course_id", courseID)

	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Paid:      false,
		Status:    models.EnrollmentPending,
	}

	if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		switch {
		case repositories.IsDuplicateError(err):
			return nil, ErrDuplicateEnrollment
		case repositories.IsForeignKeyError(err):
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("Enrollment created", "enrollment_id", enrollment.ID, "status", enrollment.Status)

	return enrollment, nil
}

// CreatePayment records a payment attempt with the caller-supplied status.
// It never touches the enrollment itself.
func (s *enrollmentService) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*models.Payment, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	s.logger.Info("Creating payment", "enrollment_id", req.EnrollmentID, "amount", req.Amount, "status", req.Status)

	if _, err := s.repo.Enrollment().GetByID(ctx, req.EnrollmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	payment := &models.Payment{
		Amount:        req.Amount,
		Status:        req.Status,
		Method:        req.PaymentMethod,
		TransactionID: req.TransactionID,
		EnrollmentID:  req.EnrollmentID,
	}

	if err := s.repo.Payment().Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment, nil
}

// ConfirmPayment settles the payment row only; the enrollment is untouched
// until ActivateEnrollment links the two.
func (s *enrollmentService) ConfirmPayment(ctx context.Context, paymentID uint, status models.PaymentStatus) (*models.Payment, error) {
	if status != models.PaymentCompleted && status != models.PaymentFailed {
		return nil, fmt.Errorf("invalid settlement status %q", status)
	}

	s.logger.Info("Confirming payment", "payment_id", paymentID, "status", status)

	payment, err := s.repo.Payment().UpdateStatus(ctx, paymentID, status)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	s.publishPaymentEvent(ctx, payment)

	return payment, nil
}

// ActivateEnrollment is the single transition point of the state machine:
// it requires a COMPLETED payment belonging to the enrollment, then sets
// paid=true, status=ACTIVE and links the payment. Re-applying with the same
// payment is a no-op; a different payment on an active enrollment conflicts.
func (s *enrollmentService) ActivateEnrollment(ctx context.Context, enrollmentID, paymentID uint) (*models.Enrollment, error) {
	s.logger.Info("Activating enrollment", "enrollment_id", enrollmentID, "payment_id", paymentID)

	var result *models.Enrollment
	var activated bool

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		enrollment, err := tx.Enrollment().GetByID(ctx, enrollmentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrEnrollmentNotFound
			}
			return fmt.Errorf("failed to get enrollment: %w", err)
		}

		if enrollment.Status == models.EnrollmentActive {
			if enrollment.PaymentID != nil && *enrollment.PaymentID == paymentID {
				// Idempotent re-application.
				result = enrollment
				return nil
			}
			return ErrEnrollmentAlreadyActive
		}

		payment, err := tx.Payment().GetByID(ctx, paymentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("failed to get payment: %w", err)
		}

		if payment.EnrollmentID != enrollmentID {
			return ErrPaymentEnrollmentMismatch
		}
		if payment.Status != models.PaymentCompleted {
			return ErrPaymentNotCompleted
		}

		result, err = tx.Enrollment().Update(ctx, enrollmentID, map[string]interface{}{
			"paid":       true,
			"status":     models.EnrollmentActive,
			"payment_id": paymentID,
		})
		if err != nil {
			return fmt.Errorf("failed to activate enrollment: %w", err)
		}

		activated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if activated {
		s.publishActivatedEvent(ctx, result)
		s.logger.Info("Enrollment activated", "enrollment_id", result.ID, "payment_id", paymentID)
	}

	return result, nil
}

func (s *enrollmentService) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollment().GetByIDWithPayment(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *enrollmentService) ListByCourse(ctx context.Context, courseID uint, status *models.EnrollmentStatus) ([]*models.Enrollment, error) {
	return s.repo.Enrollment().ListByCourse(ctx, courseID, status)
}

// ===== EVENTS =====

// Event publication is fire-and-forget; a broker outage must not fail the
// business operation.
func (s *enrollmentService) publishActivatedEvent(ctx context.Context, enrollment *models.Enrollment) {
	if s.publisher == nil {
		return
	}

	paymentID := uint(0)
	if enrollment.PaymentID != nil {
		paymentID = *enrollment.PaymentID
	}

	event := events.NewEvent(events.TypeEnrollmentActivated, &events.EnrollmentActivatedEvent{
		EnrollmentID: enrollment.ID,
		StudentID:    enrollment.StudentID,
		CourseID:     enrollment.CourseID,
		PaymentID:    paymentID,
	})

	if err := s.publisher.Publish(ctx, events.TopicEnrollments, event); err != nil {
		s.logger.Error("Failed to publish enrollment event", "error", err, "enrollment_id", enrollment.ID)
	}
}

func (s *enrollmentService) publishPaymentEvent(ctx context.Context, payment *models.Payment) {
	if s.publisher == nil {
		return
	}

	eventType := events.TypePaymentCompleted
	if payment.Status == models.PaymentFailed {
		eventType = events.TypePaymentFailed
	}

	event := events.NewEvent(eventType, &events.PaymentStatusEvent{
		PaymentID:    payment.ID,
		EnrollmentID: payment.EnrollmentID,
		Amount:       payment.Amount,
		Status:       string(payment.Status),
	})

	if err := s.publisher.Publish(ctx, events.TopicPayments, event); err != nil {
		s.logger.Error("Failed to publish payment event", "error", err, "payment_id", payment.ID)
	}
}
