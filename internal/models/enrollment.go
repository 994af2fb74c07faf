package models

import (
	"time"

	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	EnrollmentPending EnrollmentStatus = "PENDING"
	EnrollmentActive  EnrollmentStatus = "ACTIVE"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Enrollment links a student to a course and tracks payment and completion
// state. It is created PENDING/unpaid and flips to ACTIVE/paid exactly once,
// when a COMPLETED payment is linked.
type Enrollment struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"not null;index;uniqueIndex:idx_student_course"`
	CourseID  uint `json:"course_id" gorm:"not null;index;uniqueIndex:idx_student_course"`

	Paid   bool             `json:"paid" gorm:"not null;default:false"`
	Status EnrollmentStatus `json:"status" gorm:"default:PENDING;index"`

	// Progress tracking, nil until the enrollment is paid
	CompletionStatus *float64 `json:"completion_status"` // fractional progress 0..1
	Score            *float64 `json:"score" validate:"omitempty,min=0,max=100"`

	PaymentID *uint `json:"payment_id" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Student Student  `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Course  Course   `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Payment *Payment `json:"payment,omitempty" gorm:"foreignKey:PaymentID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type Payment struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Amount        float64       `json:"amount" gorm:"not null" validate:"min=0"`
	Status        PaymentStatus `json:"status" gorm:"default:PENDING;index" validate:"omitempty,oneof=PENDING COMPLETED FAILED"`
	Method        *string       `json:"payment_method" gorm:"size:50"`
	TransactionID *string       `json:"transaction_id" gorm:"size:255;index"`

	EnrollmentID uint `json:"enrollment_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
