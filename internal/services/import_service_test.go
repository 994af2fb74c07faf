package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{"name", "description", "duration_seconds", "price", "scorm_version", "scorm_url", "manifest_url"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("Failed to write header: %v", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("Failed to write row %d: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestImportCourses(t *testing.T) {
	repo := newTestRepo(t)
	service := NewImportService(repo, testLogger(), validator.New())
	ctx := context.Background()

	adminUser := createTestUser(t, repo, "admin@example.com", models.RoleAdmin)

	t.Run("ValidAndInvalidRows", func(t *testing.T) {
		workbook := buildWorkbook(t, [][]interface{}{
			{"Networking 101", "Packets and routing", 5400, 59.0, "SCORM_1_2",
				"https://cdn.example.com/scorm/net.zip", "https://cdn.example.com/scorm/net/imsmanifest.xml"},
			{"Databases", "", 7200, 0.0, "SCORM_2004_3RD_EDITION",
				"https://cdn.example.com/scorm/db.zip", "https://cdn.example.com/scorm/db/imsmanifest.xml"},
			{"", "missing name", 3600, 10.0, "SCORM_1_2",
				"https://cdn.example.com/scorm/x.zip", "https://cdn.example.com/scorm/x/imsmanifest.xml"},
			{"Bad duration", "", "soon", 10.0, "SCORM_1_2",
				"https://cdn.example.com/scorm/y.zip", "https://cdn.example.com/scorm/y/imsmanifest.xml"},
			{"Bad version", "", 3600, 10.0, "SCORM_9",
				"https://cdn.example.com/scorm/z.zip", "https://cdn.example.com/scorm/z/imsmanifest.xml"},
		})

		result, err := service.ImportCourses(ctx, workbook, adminUser.ID)
		if err != nil {
			t.Fatalf("Failed to import: %v", err)
		}
		if result.Imported != 2 {
			t.Errorf("Expected 2 imported, got %d", result.Imported)
		}
		if result.Skipped != 3 {
			t.Errorf("Expected 3 skipped, got %d", result.Skipped)
		}
		if len(result.Errors) != 3 {
			t.Errorf("Expected 3 row errors, got %d", len(result.Errors))
		}
	})

	t.Run("ImportedCoursesArePublished", func(t *testing.T) {
		courseService := NewCourseService(repo, testLogger(), validator.New())
		studentUser := createTestUser(t, repo, "student@example.com", models.RoleStudent)

		// The student catalog only shows PUBLISHED courses, so the
		// imported ones must be visible there.
		published := models.CoursePublished
		list, err := courseService.List(ctx, repositories.CourseFilters{Status: &published}, 1, 20)
		if err != nil {
			t.Fatalf("Failed to list courses: %v", err)
		}
		if list.Total != 2 {
			t.Errorf("Expected 2 published courses, got %d", list.Total)
		}

		if _, err := courseService.GetByID(ctx, list.Courses[0].ID, studentUser.ID, models.RoleStudent); err != nil {
			t.Errorf("Student must see imported course: %v", err)
		}
	})

	t.Run("NonAdminRejected", func(t *testing.T) {
		facultyUser := createTestUser(t, repo, "faculty@example.com", models.RoleFaculty)
		workbook := buildWorkbook(t, nil)

		_, err := service.ImportCourses(ctx, workbook, facultyUser.ID)
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("Expected PermissionError, got %v", err)
		}
	})

	t.Run("GarbageInput", func(t *testing.T) {
		_, err := service.ImportCourses(ctx, bytes.NewReader([]byte("not a workbook")), adminUser.ID)
		if err == nil {
			t.Fatal("Expected error for non-xlsx input")
		}
	})
}
