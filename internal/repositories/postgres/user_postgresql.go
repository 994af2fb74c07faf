package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edulane/lms-service/internal/cache"
	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
)

// UserPostgreSQL implements UserRepository with an optional redis cache in
// front of hot lookups (by-email and verified-flag checks).
type UserPostgreSQL struct {
	db            *gorm.DB
	userCache     *cache.CacheHelper
	verifiedCache *cache.CacheHelper
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:            db,
		userCache:     cache.NewCacheHelper(redisClient, cache.UserCacheConfig.Prefix),
		verifiedCache: cache.NewCacheHelper(redisClient, cache.VerifiedCacheConfig.Prefix),
	}
}

func (r *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		// The role sub-record is part of the same transaction; a user
		// without its sub-record must never be observable.
		switch user.Role {
		case models.RoleAdmin:
			return tx.Create(&models.Admin{UserID: user.ID}).Error
		case models.RoleFaculty:
			return tx.Create(&models.Faculty{UserID: user.ID}).Error
		case models.RoleStudent:
			return tx.Create(&models.Student{UserID: user.ID}).Error
		default:
			return fmt.Errorf("unknown role %q", user.Role)
		}
	})
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Admin").Preload("Faculty").Preload("Student").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var cached models.User
	if err := r.userCache.Get(ctx, email, &cached); err == nil {
		return &cached, nil
	}

	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Admin").Preload("Faculty").Preload("Student").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	_ = r.userCache.Set(ctx, email, &user, cache.UserCacheConfig.TTL)

	return &user, nil
}

func (r *UserPostgreSQL) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("google_id = ?", googleID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserPostgreSQL) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	r.invalidate(ctx, user.Email)

	return r.GetByID(ctx, id)
}

func (r *UserPostgreSQL) UpdateByEmail(ctx context.Context, email string, updates map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	r.invalidate(ctx, email)

	return r.GetByID(ctx, user.ID)
}

func (r *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	r.invalidate(ctx, user.Email)

	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *UserPostgreSQL) DeleteByEmail(ctx context.Context, email string) error {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}

	r.invalidate(ctx, email)

	return r.db.WithContext(ctx).Delete(&user).Error
}

// IsVerified returns false when the user does not exist.
func (r *UserPostgreSQL) IsVerified(ctx context.Context, email string) (bool, error) {
	var cached bool
	if err := r.verifiedCache.Get(ctx, email, &cached); err == nil {
		return cached, nil
	}

	var user models.User
	err := r.db.WithContext(ctx).
		Select("verified").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	_ = r.verifiedCache.Set(ctx, email, user.Verified, cache.VerifiedCacheConfig.TTL)

	return user.Verified, nil
}

func (r *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserPostgreSQL) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *UserPostgreSQL) GetStudentByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *UserPostgreSQL) GetFacultyByUserID(ctx context.Context, userID uint) (*models.Faculty, error) {
	var faculty models.Faculty
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *UserPostgreSQL) GetAdminByUserID(ctx context.Context, userID uint) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *UserPostgreSQL) invalidate(ctx context.Context, email string) {
	_ = r.userCache.Delete(ctx, email)
	_ = r.verifiedCache.Delete(ctx, email)
}
