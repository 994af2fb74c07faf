package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetMyEnrollments lists the calling student's enrollments, pending ones
// included.
func (h *StudentHandler) GetMyEnrollments(c *gin.Context) {
	h.LogRequest(c, "Getting student enrollments")

	enrollments, err := h.service.GetMyEnrollments(c.Request.Context(), GetUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}
