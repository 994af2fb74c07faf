package services

import (
	"errors"
	"fmt"
)

// ===== SENTINEL ERRORS =====

var (
	// User / auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoPasswordSet      = errors.New("account has no password, sign in with google")
	ErrNotVerified        = errors.New("email not verified")
	ErrRoleMismatch       = errors.New("account exists with a different role")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Course errors
	ErrCourseNotFound    = errors.New("course not found")
	ErrInvalidTransition = errors.New("invalid course status transition")

	// Enrollment / payment errors
	ErrEnrollmentNotFound        = errors.New("enrollment not found")
	ErrDuplicateEnrollment       = errors.New("student is already enrolled in this course")
	ErrEnrollmentAlreadyActive   = errors.New("enrollment is already active")
	ErrPaymentNotFound           = errors.New("payment not found")
	ErrPaymentNotCompleted       = errors.New("payment is not completed")
	ErrPaymentEnrollmentMismatch = errors.New("payment does not belong to this enrollment")
)

// ===== PERMISSION ERROR =====

type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}
