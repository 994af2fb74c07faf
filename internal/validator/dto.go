package validator

import (
	"time"

	"github.com/edulane/lms-service/internal/models"
)

// LoginRequest represents the email/password login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the student/faculty registration payload. The
// role is set by the route, not the client.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Institution *string `json:"institution" validate:"omitempty,max=200"`
}

// UserUpdateRequest represents partial account updates.
type UserUpdateRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	Institution *string `json:"institution" validate:"omitempty,max=200"`
}

// CourseCreateRequest represents the course creation payload.
type CourseCreateRequest struct {
	Name                string              `json:"name" validate:"required,course_name"`
	Description         *string             `json:"description" validate:"omitempty,max=2000"`
	Duration            int                 `json:"duration" validate:"required,gt=0"`
	Price               float64             `json:"price" validate:"gte=0"`
	DiscountedPrice     *float64            `json:"discounted_price" validate:"omitempty,gte=0"`
	DiscountPercentage  *float64            `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	DiscountValidUntil  *time.Time          `json:"discount_valid_until"`
	AccessDuration      *int                `json:"access_duration" validate:"omitempty,gt=0"`
	ScormVersion        models.ScormVersion `json:"scorm_version" validate:"required,scorm_version"`
	ScormURL            string              `json:"scorm_url" validate:"required,url"`
	ManifestURL         string              `json:"manifest_url" validate:"required,url"`
	Metadata            interface{}         `json:"metadata"`
}

// CourseUpdateRequest represents partial course updates.
type CourseUpdateRequest struct {
	Name               *string              `json:"name" validate:"omitempty,course_name"`
	Description        *string              `json:"description" validate:"omitempty,max=2000"`
	Duration           *int                 `json:"duration" validate:"omitempty,gt=0"`
	Price              *float64             `json:"price" validate:"omitempty,gte=0"`
	DiscountedPrice    *float64             `json:"discounted_price" validate:"omitempty,gte=0"`
	DiscountPercentage *float64             `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	DiscountValidUntil *time.Time           `json:"discount_valid_until"`
	AccessDuration     *int                 `json:"access_duration" validate:"omitempty,gt=0"`
	ScormVersion       *models.ScormVersion `json:"scorm_version" validate:"omitempty,scorm_version"`
	ScormURL           *string              `json:"scorm_url" validate:"omitempty,url"`
	ManifestURL        *string              `json:"manifest_url" validate:"omitempty,url"`
	Metadata           interface{}          `json:"metadata"`
}

// EnrollmentCreateRequest opens a pending enrollment for a student.
type EnrollmentCreateRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	CourseID  uint `json:"course_id" validate:"required"`
}

// PaymentCreateRequest records a payment attempt against an enrollment.
type PaymentCreateRequest struct {
	EnrollmentID  uint                 `json:"enrollment_id" validate:"required"`
	Amount        float64              `json:"amount" validate:"required,gt=0"`
	Status        models.PaymentStatus `json:"status" validate:"required,payment_status"`
	PaymentMethod *string              `json:"payment_method" validate:"omitempty,max=50"`
	TransactionID *string              `json:"transaction_id" validate:"omitempty,max=100"`
}

// ConfirmPaymentRequest settles a recorded payment.
type ConfirmPaymentRequest struct {
	Status models.PaymentStatus `json:"status" validate:"required,oneof=COMPLETED FAILED"`
}

// ActivateEnrollmentRequest links a completed payment and activates the
// enrollment.
type ActivateEnrollmentRequest struct {
	PaymentID uint `json:"payment_id" validate:"required"`
}
