package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
)

type ImportHandler struct {
	BaseHandler
	service services.ImportService
}

func NewImportHandler(service services.ImportService, logger utils.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ImportCourses bulk-loads courses from an uploaded xlsx workbook. Admin
// only (enforced by the route).
func (h *ImportHandler) ImportCourses(c *gin.Context) {
	h.LogRequest(c, "Importing courses")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing file upload", Details: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Failed to open upload", Details: err.Error()})
		return
	}
	defer file.Close()

	result, err := h.service.ImportCourses(c.Request.Context(), file, GetUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
