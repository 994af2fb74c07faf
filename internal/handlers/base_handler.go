package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
	"github.com/edulane/lms-service/internal/validator"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the pieces every handler shares.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	h.logger.Info(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString("request_id"),
	)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	h.logger.Error(msg,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString("request_id"),
	)
}

// parseIDParam reads a positive numeric path parameter; on failure it writes
// the 400 response and returns false.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var permissionErr *services.PermissionError

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNoPasswordSet),
		errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})

	case errors.As(err, &permissionErr),
		errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrRoleMismatch):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrEnrollmentNotFound),
		errors.Is(err, services.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrEmailExists),
		errors.Is(err, services.ErrDuplicateEnrollment),
		errors.Is(err, services.ErrEnrollmentAlreadyActive),
		errors.Is(err, services.ErrPaymentEnrollmentMismatch):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrPaymentNotCompleted),
		errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: err.Error()})

	case repositories.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Resource not found"})

	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
