package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "DRAFT"
	CoursePublished CourseStatus = "PUBLISHED"
	CourseArchived  CourseStatus = "ARCHIVED"
)

type ScormVersion string

const (
	Scorm12        ScormVersion = "SCORM_1_2"
	Scorm2004Third ScormVersion = "SCORM_2004_3RD_EDITION"
	Scorm2004Forth ScormVersion = "SCORM_2004_4TH_EDITION"
)

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Duration    int     `json:"duration" gorm:"not null" validate:"required,min=1"` // seconds
	Price       float64 `json:"price" gorm:"not null" validate:"min=0"`

	// Discounting (optional; a coherent subset at most)
	DiscountedPrice    *float64   `json:"discounted_price" validate:"omitempty,min=0"`
	DiscountPercentage *float64   `json:"discount_percentage" validate:"omitempty,min=0,max=100"`
	DiscountValidUntil *time.Time `json:"discount_valid_until"`
	AccessDuration     *int       `json:"access_duration"` // days of access after activation

	// SCORM package
	ScormVersion ScormVersion   `json:"scorm_version" gorm:"not null;size:40" validate:"required,oneof=SCORM_1_2 SCORM_2004_3RD_EDITION SCORM_2004_4TH_EDITION"`
	ScormURL     string         `json:"scorm_url" gorm:"not null;size:500" validate:"required,url"`
	ManifestURL  string         `json:"manifest_url" gorm:"not null;size:500" validate:"required,url"`
	Metadata     datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"` // manifest attributes, opaque

	Status CourseStatus `json:"status" gorm:"default:DRAFT;index" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`

	// Creator: exactly one of FacultyID or AdminID is set
	FacultyID *uint `json:"faculty_id" gorm:"index"`
	AdminID   *uint `json:"admin_id" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Faculty     *Faculty     `json:"faculty,omitempty" gorm:"foreignKey:FacultyID"`
	Admin       *Admin       `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:CourseID"`

	// Computed fields (not stored)
	EnrolledCount int `json:"enrolled_count,omitempty" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// HasCreator reports whether exactly one creator reference is set.
func (c *Course) HasCreator() bool {
	return (c.FacultyID != nil) != (c.AdminID != nil)
}
