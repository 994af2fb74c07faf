package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

// Forward-only status transitions.
var allowedCourseTransitions = map[models.CourseStatus][]models.CourseStatus{
	models.CourseDraft:     {models.CoursePublished, models.CourseArchived},
	models.CoursePublished: {models.CourseArchived},
	models.CourseArchived:  {},
}

type courseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== CRUD =====

// Create makes a new course owned by the creator. Courses created through
// the API start as DRAFT for both roles; bulk-imported courses are the
// PUBLISHED path (see ImportService).
func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, creatorID uint, creatorRole models.UserRole) (*CourseResponse, error) {
	s.logger.Info("Creating course", "name", req.Name, "creator_id", creatorID, "role", creatorRole)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course := &models.Course{
		Name:               req.Name,
		Description:        req.Description,
		Duration:           req.Duration,
		Price:              req.Price,
		DiscountedPrice:    req.DiscountedPrice,
		DiscountPercentage: req.DiscountPercentage,
		DiscountValidUntil: req.DiscountValidUntil,
		AccessDuration:     req.AccessDuration,
		ScormVersion:       req.ScormVersion,
		ScormURL:           req.ScormURL,
		ManifestURL:        req.ManifestURL,
		Status:             models.CourseDraft,
	}

	if req.Metadata != nil {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		course.Metadata = datatypes.JSON(raw)
	}

	switch creatorRole {
	case models.RoleFaculty:
		faculty, err := s.repo.User().GetFacultyByUserID(ctx, creatorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve faculty record: %w", err)
		}
		course.FacultyID = &faculty.ID
	case models.RoleAdmin:
		admin, err := s.repo.User().GetAdminByUserID(ctx, creatorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve admin record: %w", err)
		}
		course.AdminID = &admin.ID
	default:
		return nil, NewPermissionError(creatorID, 0, "course", "create", "only faculty and admins can create courses")
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "status", course.Status)

	return &CourseResponse{Course: course, CanEdit: true}, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint, userID uint, role models.UserRole) (*CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	// Students only see published courses.
	if role == models.RoleStudent && course.Status != models.CoursePublished {
		return nil, ErrCourseNotFound
	}

	canEdit, err := s.canEdit(ctx, course, userID, role)
	if err != nil {
		return nil, err
	}

	return &CourseResponse{Course: course, CanEdit: canEdit}, nil
}

func (s *courseService) Update(ctx context.Context, id uint, req *UpdateCourseRequest, userID uint, role models.UserRole) (*CourseResponse, error) {
	s.logger.Info("Updating course", "course_id", id, "user_id", userID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	canEdit, err := s.canEdit(ctx, course, userID, role)
	if err != nil {
		return nil, err
	}
	if !canEdit {
		return nil, NewPermissionError(userID, id, "course", "update", "not owner or insufficient role")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DiscountedPrice != nil {
		updates["discounted_price"] = *req.DiscountedPrice
	}
	if req.DiscountPercentage != nil {
		updates["discount_percentage"] = *req.DiscountPercentage
	}
	if req.DiscountValidUntil != nil {
		updates["discount_valid_until"] = *req.DiscountValidUntil
	}
	if req.AccessDuration != nil {
		updates["access_duration"] = *req.AccessDuration
	}
	if req.ScormVersion != nil {
		updates["scorm_version"] = *req.ScormVersion
	}
	if req.ScormURL != nil {
		updates["scorm_url"] = *req.ScormURL
	}
	if req.ManifestURL != nil {
		updates["manifest_url"] = *req.ManifestURL
	}
	if req.Metadata != nil {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		updates["metadata"] = datatypes.JSON(raw)
	}

	if len(updates) == 0 {
		return &CourseResponse{Course: course, CanEdit: true}, nil
	}

	updated, err := s.repo.Course().Update(ctx, id, updates)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return &CourseResponse{Course: updated, CanEdit: true}, nil
}

func (s *courseService) Delete(ctx context.Context, id uint, userID uint, role models.UserRole) error {
	s.logger.Info("Deleting course", "course_id", id, "user_id", userID)

	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}

	canEdit, err := s.canEdit(ctx, course, userID, role)
	if err != nil {
		return err
	}
	if !canEdit {
		return NewPermissionError(userID, id, "course", "delete", "not owner or insufficient role")
	}

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters, page, size int) (*CourseListResponse, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	filters.Offset = (page - 1) * size
	filters.Limit = size

	courses, total, err := s.repo.Course().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	items := make([]*CourseResponse, 0, len(courses))
	for _, c := range courses {
		items = append(items, &CourseResponse{Course: c})
	}

	return &CourseListResponse{
		Courses: items,
		Total:   total,
		Page:    page,
		Size:    size,
	}, nil
}

func (s *courseService) ListByFaculty(ctx context.Context, facultyID uint, filters repositories.CourseFilters) ([]*CourseResponse, error) {
	courses, err := s.repo.Course().ListByFaculty(ctx, facultyID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list faculty courses: %w", err)
	}

	items := make([]*CourseResponse, 0, len(courses))
	for _, c := range courses {
		items = append(items, &CourseResponse{Course: c, CanEdit: true})
	}
	return items, nil
}

// ===== STATUS =====

func (s *courseService) Publish(ctx context.Context, id uint, userID uint, role models.UserRole) error {
	return s.transition(ctx, id, models.CoursePublished, userID, role)
}

func (s *courseService) Archive(ctx context.Context, id uint, userID uint, role models.UserRole) error {
	return s.transition(ctx, id, models.CourseArchived, userID, role)
}

func (s *courseService) transition(ctx context.Context, id uint, target models.CourseStatus, userID uint, role models.UserRole) error {
	s.logger.Info("Course status transition", "course_id", id, "target", target, "user_id", userID)

	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}

	canEdit, err := s.canEdit(ctx, course, userID, role)
	if err != nil {
		return err
	}
	if !canEdit {
		return NewPermissionError(userID, id, "course", "update_status", "not owner or insufficient role")
	}

	allowed := false
	for _, next := range allowedCourseTransitions[course.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, course.Status, target)
	}

	if _, err := s.repo.Course().Update(ctx, id, map[string]interface{}{"status": target}); err != nil {
		return fmt.Errorf("failed to update course status: %w", err)
	}
	return nil
}

// ===== ROSTER =====

// GetRoster lists users actively enrolled in the course. Pending
// enrollments never appear.
func (s *courseService) GetRoster(ctx context.Context, courseID uint, userID uint, role models.UserRole) ([]*RosterEntry, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	canEdit, err := s.canEdit(ctx, course, userID, role)
	if err != nil {
		return nil, err
	}
	if !canEdit {
		return nil, NewPermissionError(userID, courseID, "course", "view_roster", "not owner or insufficient role")
	}

	users, err := s.repo.Course().ListEnrolledStudents(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled students: %w", err)
	}

	roster := make([]*RosterEntry, 0, len(users))
	for _, u := range users {
		roster = append(roster, &RosterEntry{
			UserID:    u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	return roster, nil
}

// ===== HELPERS =====

func (s *courseService) getCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *courseService) canEdit(ctx context.Context, course *models.Course, userID uint, role models.UserRole) (bool, error) {
	switch role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleFaculty:
		if course.FacultyID == nil {
			return false, nil
		}
		faculty, err := s.repo.User().GetFacultyByUserID(ctx, userID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return false, nil
			}
			return false, fmt.Errorf("failed to resolve faculty record: %w", err)
		}
		return *course.FacultyID == faculty.ID, nil
	default:
		return false, nil
	}
}
