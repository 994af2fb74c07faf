package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether err is a record-not-found store error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a unique-constraint violation.
// Requires gorm.Config{TranslateError: true} on the connection.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyError reports whether err is a foreign-key violation, e.g. an
// enrollment created against a missing student or course.
func IsForeignKeyError(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
