package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

// Expected column order in the import sheet, after one header row:
// name, description, duration_seconds, price, scorm_version, scorm_url,
// manifest_url.
const importColumnCount = 7

type importService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewImportService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ImportService {
	return &importService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ImportCourses bulk-loads courses from an xlsx workbook. Imported courses
// are owned by the importing admin and go live immediately as PUBLISHED;
// this is the seeding path, unlike API creation which starts at DRAFT.
func (s *importService) ImportCourses(ctx context.Context, r io.Reader, adminID uint) (*ImportResult, error) {
	s.logger.Info("Importing courses", "admin_id", adminID)

	admin, err := s.repo.User().GetAdminByUserID(ctx, adminID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewPermissionError(adminID, 0, "course", "import", "not an admin account")
		}
		return nil, fmt.Errorf("failed to resolve admin record: %w", err)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	result := &ImportResult{}
	var courses []*models.Course

	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		course, err := s.parseRow(row, admin.ID)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		courses = append(courses, course)
	}

	if len(courses) > 0 {
		if err := s.repo.Course().CreateBatch(ctx, courses); err != nil {
			return nil, fmt.Errorf("failed to create courses: %w", err)
		}
		result.Imported = len(courses)
	}

	s.logger.Info("Course import finished",
		"imported", result.Imported, "skipped", result.Skipped, "admin_id", adminID)

	return result, nil
}

func (s *importService) parseRow(row []string, adminID uint) (*models.Course, error) {
	if len(row) < importColumnCount {
		return nil, fmt.Errorf("expected %d columns, got %d", importColumnCount, len(row))
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	duration, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil || duration <= 0 {
		return nil, fmt.Errorf("invalid duration %q", row[2])
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid price %q", row[3])
	}

	version := models.ScormVersion(strings.TrimSpace(row[4]))
	switch version {
	case models.Scorm12, models.Scorm2004Third, models.Scorm2004Forth:
	default:
		return nil, fmt.Errorf("unsupported scorm version %q", row[4])
	}

	scormURL := strings.TrimSpace(row[5])
	manifestURL := strings.TrimSpace(row[6])
	if scormURL == "" || manifestURL == "" {
		return nil, fmt.Errorf("scorm_url and manifest_url are required")
	}

	course := &models.Course{
		Name:         name,
		Duration:     duration,
		Price:        price,
		ScormVersion: version,
		ScormURL:     scormURL,
		ManifestURL:  manifestURL,
		Status:       models.CoursePublished,
		AdminID:      &adminID,
	}

	if desc := strings.TrimSpace(row[1]); desc != "" {
		course.Description = &desc
	}

	return course, nil
}
