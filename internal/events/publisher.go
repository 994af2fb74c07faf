package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Topics
const (
	TopicEnrollments = "lms.enrollments"
	TopicPayments    = "lms.payments"
)

// Event types
const (
	TypeEnrollmentActivated = "enrollment.activated"
	TypePaymentCompleted    = "payment.completed"
	TypePaymentFailed       = "payment.failed"
)

// Event is the envelope published to the broker.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "lms-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EnrollmentActivatedEvent is the payload for enrollment.activated.
type EnrollmentActivatedEvent struct {
	EnrollmentID uint `json:"enrollment_id"`
	StudentID    uint `json:"student_id"`
	CourseID     uint `json:"course_id"`
	PaymentID    uint `json:"payment_id"`
}

// PaymentStatusEvent is the payload for payment.completed / payment.failed.
type PaymentStatusEvent struct {
	PaymentID    uint    `json:"payment_id"`
	EnrollmentID uint    `json:"enrollment_id"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}
