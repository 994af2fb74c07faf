package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/repositories/postgres"
	"github.com/edulane/lms-service/pkg"
)

// newTestRepo opens an in-memory sqlite database with the full schema.
// TranslateError is on so duplicate-key detection behaves like postgres.
func newTestRepo(t *testing.T) repositories.Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A second connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := pkg.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestUser persists a user with its role sub-record.
func createTestUser(t *testing.T, repo repositories.Repository, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Verified:  true,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create test user %s: %v", email, err)
	}
	return user
}

// createTestCourse persists a course owned by the given faculty sub-record.
func createTestCourse(t *testing.T, repo repositories.Repository, facultyID uint, status models.CourseStatus) *models.Course {
	t.Helper()

	course := &models.Course{
		Name:         "Intro to Distributed Systems",
		Duration:     3600,
		Price:        49.99,
		ScormVersion: models.Scorm12,
		ScormURL:     "https://cdn.example.com/scorm/intro.zip",
		ManifestURL:  "https://cdn.example.com/scorm/imsmanifest.xml",
		Status:       status,
		FacultyID:    &facultyID,
	}
	if err := repo.Course().Create(context.Background(), course); err != nil {
		t.Fatalf("Failed to create test course: %v", err)
	}
	return course
}

// studentRecordID resolves the student sub-record id for a user.
func studentRecordID(t *testing.T, repo repositories.Repository, userID uint) uint {
	t.Helper()

	student, err := repo.User().GetStudentByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("Failed to resolve student record: %v", err)
	}
	return student.ID
}

// facultyRecordID resolves the faculty sub-record id for a user.
func facultyRecordID(t *testing.T, repo repositories.Repository, userID uint) uint {
	t.Helper()

	faculty, err := repo.User().GetFacultyByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("Failed to resolve faculty record: %v", err)
	}
	return faculty.ID
}
