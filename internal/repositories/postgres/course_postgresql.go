package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (r *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *CoursePostgreSQL) CreateBatch(ctx context.Context, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&courses).Error
}

func (r *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CoursePostgreSQL) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(course).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CoursePostgreSQL) ListByFaculty(ctx context.Context, facultyID uint, filters repositories.CourseFilters) ([]*models.Course, error) {
	query := r.db.WithContext(ctx).Where("faculty_id = ?", facultyID)
	query = applyCourseFilters(query, filters)

	var courses []*models.Course
	err := query.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.Course{})
	if filters.Status != nil {
		countQuery = countQuery.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyCourseFilters(r.db.WithContext(ctx), filters)

	var courses []*models.Course
	err := query.Order("created_at DESC").Find(&courses).Error
	return courses, total, err
}

// ListEnrolledStudents resolves the roster through ACTIVE enrollments only.
func (r *CoursePostgreSQL) ListEnrolledStudents(ctx context.Context, courseID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN students ON students.user_id = users.id").
		Joins("JOIN enrollments ON enrollments.student_id = students.id").
		Where("enrollments.course_id = ? AND enrollments.status = ? AND enrollments.deleted_at IS NULL",
			courseID, models.EnrollmentActive).
		Find(&users).Error
	return users, err
}

func applyCourseFilters(query *gorm.DB, filters repositories.CourseFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	return query
}
