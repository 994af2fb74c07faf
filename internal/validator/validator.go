package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/edulane/lms-service/internal/models"
)

// Validator wraps go-playground validation plus the domain rules the request
// DTOs reference by tag.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single field failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()

	return v
}

// Validate validates a struct; nil means the struct passed.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	var errs ValidationErrors

	err := v.validate.Struct(s)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Message: v.getErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}

	return errs
}

func (v *Validator) registerDomainRules() {
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("course_status", func(fl validator.FieldLevel) bool {
		switch models.CourseStatus(fl.Field().String()) {
		case models.CourseDraft, models.CoursePublished, models.CourseArchived:
			return true
		}
		return false
	})

	v.validate.RegisterValidation("scorm_version", func(fl validator.FieldLevel) bool {
		switch models.ScormVersion(fl.Field().String()) {
		case models.Scorm12, models.Scorm2004Third, models.Scorm2004Forth:
			return true
		}
		return false
	})

	v.validate.RegisterValidation("payment_status", func(fl validator.FieldLevel) bool {
		switch models.PaymentStatus(fl.Field().String()) {
		case models.PaymentPending, models.PaymentCompleted, models.PaymentFailed:
			return true
		}
		return false
	})

	v.validate.RegisterValidation("course_name", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		return len(name) >= 1 && len(name) <= 200
	})
}

func (v *Validator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "user_role":
		return "must be ADMIN, FACULTY or STUDENT"
	case "course_status":
		return "must be DRAFT, PUBLISHED or ARCHIVED"
	case "scorm_version":
		return "must be a supported SCORM version"
	case "payment_status":
		return "must be PENDING, COMPLETED or FAILED"
	case "course_name":
		return "must be between 1 and 200 characters"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
