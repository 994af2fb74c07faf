package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
)

type DashboardPostgreSQL struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &DashboardPostgreSQL{db: db}
}

func (r *DashboardPostgreSQL) GetAdminStats(ctx context.Context) (*repositories.AdminStats, error) {
	stats := &repositories.AdminStats{
		UsersByRole: make(map[string]int64),
	}

	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	for _, role := range models.ValidRoles {
		var count int64
		if err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
			return nil, err
		}
		stats.UsersByRole[string(role)] = count
	}

	if err := db.Model(&models.Course{}).Count(&stats.TotalCourses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Course{}).
		Where("status = ?", models.CoursePublished).
		Count(&stats.PublishedCourses).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Enrollment{}).Count(&stats.TotalEnrollments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Enrollment{}).
		Where("status = ?", models.EnrollmentActive).
		Count(&stats.ActiveEnrollments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Enrollment{}).
		Where("status = ?", models.EnrollmentPending).
		Count(&stats.PendingEnrollments).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentCompleted).
		Count(&stats.CompletedPayments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
