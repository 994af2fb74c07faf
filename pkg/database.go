package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/edulane/lms-service/internal/config"
	"github.com/edulane/lms-service/internal/models"
)

// InitDatabase opens the postgres connection and migrates the schema.
// TranslateError maps driver errors onto gorm's portable sentinels
// (ErrDuplicatedKey, ErrForeignKeyViolated).
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
	}
	if cfg.Environment != "production" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// AutoMigrate migrates every model. Order matters for foreign keys.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Faculty{},
		&models.Student{},
		&models.Course{},
		&models.Enrollment{},
		&models.Payment{},
	)
}
