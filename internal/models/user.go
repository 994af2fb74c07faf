package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleFaculty UserRole = "FACULTY"
	RoleStudent UserRole = "STUDENT"
)

// ValidRoles lists every role a user may be created with.
var ValidRoles = []UserRole{RoleAdmin, RoleFaculty, RoleStudent}

func (r UserRole) Valid() bool {
	for _, role := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Email     string  `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Password  *string `json:"-" gorm:"size:255"` // nil for Google-only accounts
	GoogleID  *string `json:"-" gorm:"index;size:255"`
	FirstName string  `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName  string  `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`

	Institution *string  `json:"institution" gorm:"size:200"`
	Role        UserRole `json:"role" gorm:"not null;index;size:20" validate:"required,oneof=ADMIN FACULTY STUDENT"`

	// Status
	Verified bool `json:"verified" gorm:"not null;default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations (the sub-record matching Role is created with the user)
	Admin   *Admin   `json:"admin,omitempty" gorm:"foreignKey:UserID"`
	Faculty *Faculty `json:"faculty,omitempty" gorm:"foreignKey:UserID"`
	Student *Student `json:"student,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// FullName is used in outbound email greetings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Admin is the role sub-record for ADMIN users.
type Admin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// Faculty is the role sub-record for FACULTY users.
type Faculty struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Courses []Course `json:"courses,omitempty" gorm:"foreignKey:FacultyID"`
}

func (Faculty) TableName() string {
	return "faculties"
}

// Student is the role sub-record for STUDENT users.
type Student struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:StudentID"`
}

func (Student) TableName() string {
	return "students"
}
