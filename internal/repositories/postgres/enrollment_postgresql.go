package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (r *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *EnrollmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).First(&enrollment, id).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) GetByIDWithPayment(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).Preload("Payment").First(&enrollment, id).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Enrollment, error) {
	enrollment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(enrollment).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *EnrollmentPostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentPostgreSQL) ListByCourse(ctx context.Context, courseID uint, status *models.EnrollmentStatus) ([]*models.Enrollment, error) {
	query := r.db.WithContext(ctx).Where("course_id = ?", courseID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var enrollments []*models.Enrollment
	err := query.Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}
