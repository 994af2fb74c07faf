package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
)

type PaymentPostgreSQL struct {
	db *gorm.DB
}

func NewPaymentPostgreSQL(db *gorm.DB) repositories.PaymentRepository {
	return &PaymentPostgreSQL{db: db}
}

func (r *PaymentPostgreSQL) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateStatus changes only the payment row; the owning enrollment is
// untouched by design.
func (r *PaymentPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.PaymentStatus) (*models.Payment, error) {
	payment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(payment).Update("status", status).Error; err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *PaymentPostgreSQL) ListByEnrollment(ctx context.Context, enrollmentID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
