package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	service services.AccountService
}

func NewUserHandler(service services.AccountService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetMe returns the calling user's account.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), GetUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe applies partial updates to the calling user's account.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	h.LogRequest(c, "Updating account")

	var req services.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	user, err := h.service.Update(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers lists users of one role. Admin only (enforced by the route).
func (h *UserHandler) ListUsers(c *gin.Context) {
	role := models.UserRole(c.DefaultQuery("role", string(models.RoleStudent)))

	users, err := h.service.ListByRole(c.Request.Context(), role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeleteUser removes an account. Admin only (enforced by the route).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	h.LogRequest(c, "Deleting user")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
