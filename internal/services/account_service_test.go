package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/validator"
)

func TestAccountService(t *testing.T) {
	repo := newTestRepo(t)
	service := NewAccountService(repo, testLogger(), validator.New())
	ctx := context.Background()

	t.Run("CreateWithSubRecord", func(t *testing.T) {
		user, err := service.Create(ctx, &models.User{
			Email:     "faculty@example.com",
			FirstName: "Fran",
			LastName:  "Vo",
			Role:      models.RoleFaculty,
		})
		if err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		if user.Faculty == nil {
			t.Error("Expected faculty sub-record to be created")
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := service.Create(ctx, &models.User{
			Email:     "faculty@example.com",
			FirstName: "Other",
			LastName:  "Person",
			Role:      models.RoleStudent,
		})
		if !errors.Is(err, ErrEmailExists) {
			t.Fatalf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("InvalidRole", func(t *testing.T) {
		_, err := service.Create(ctx, &models.User{
			Email:     "weird@example.com",
			FirstName: "No",
			LastName:  "Role",
			Role:      "SUPERUSER",
		})
		if err == nil {
			t.Fatal("Expected error for unknown role")
		}
	})

	t.Run("Update", func(t *testing.T) {
		name := "Francesca"
		institution := "Edulane University"
		user, err := service.GetByEmail(ctx, "faculty@example.com")
		if err != nil {
			t.Fatalf("Failed to get user: %v", err)
		}

		updated, err := service.Update(ctx, user.ID, &UserUpdateRequest{
			FirstName:   &name,
			Institution: &institution,
		})
		if err != nil {
			t.Fatalf("Failed to update user: %v", err)
		}
		if updated.FirstName != name {
			t.Errorf("Expected first name %q, got %q", name, updated.FirstName)
		}
		if updated.Institution == nil || *updated.Institution != institution {
			t.Errorf("Expected institution %q, got %v", institution, updated.Institution)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := service.GetByID(ctx, 9999)
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("ListByRole", func(t *testing.T) {
		createTestUser(t, repo, "s1@example.com", models.RoleStudent)
		createTestUser(t, repo, "s2@example.com", models.RoleStudent)

		students, err := service.ListByRole(ctx, models.RoleStudent)
		if err != nil {
			t.Fatalf("Failed to list students: %v", err)
		}
		if len(students) != 2 {
			t.Errorf("Expected 2 students, got %d", len(students))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		user := createTestUser(t, repo, "gone@example.com", models.RoleStudent)
		if err := service.Delete(ctx, user.ID); err != nil {
			t.Fatalf("Failed to delete user: %v", err)
		}
		if _, err := service.GetByID(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound after delete, got %v", err)
		}
	})
}
