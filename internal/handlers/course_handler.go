package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
	users   repositories.UserRepository
}

func NewCourseHandler(service services.CourseService, users repositories.UserRepository, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		users:       users,
	}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	h.LogRequest(c, "Creating course")

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	course, err := h.service.Create(c.Request.Context(), &req, GetUserID(c), GetUserRole(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.service.GetByID(c.Request.Context(), id, GetUserID(c), GetUserRole(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	h.LogRequest(c, "Updating course")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	course, err := h.service.Update(c.Request.Context(), id, &req, GetUserID(c), GetUserRole(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	h.LogRequest(c, "Deleting course")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, GetUserID(c), GetUserRole(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCourses lists courses, optionally filtered by status. Students are
// pinned to the published catalog.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var filters repositories.CourseFilters

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.CourseStatus(statusStr)
		filters.Status = &status
	}
	if GetUserRole(c) == models.RoleStudent {
		published := models.CoursePublished
		filters.Status = &published
	}

	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", 20)

	list, err := h.service.List(c.Request.Context(), filters, page, size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ListMyCourses lists the calling faculty member's own courses.
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	faculty, err := h.users.GetFacultyByUserID(c.Request.Context(), GetUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	var filters repositories.CourseFilters
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.CourseStatus(statusStr)
		filters.Status = &status
	}

	courses, err := h.service.ListByFaculty(c.Request.Context(), faculty.ID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) PublishCourse(c *gin.Context) {
	h.LogRequest(c, "Publishing course")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Publish(c.Request.Context(), id, GetUserID(c), GetUserRole(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course published"})
}

func (h *CourseHandler) ArchiveCourse(c *gin.Context) {
	h.LogRequest(c, "Archiving course")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Archive(c.Request.Context(), id, GetUserID(c), GetUserRole(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course archived"})
}

// GetRoster lists actively enrolled students for a course.
func (h *CourseHandler) GetRoster(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	roster, err := h.service.GetRoster(c.Request.Context(), id, GetUserID(c), GetUserRole(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": roster})
}
