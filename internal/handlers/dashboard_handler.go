package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetAdminStats returns platform-wide counters and revenue.
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	h.LogRequest(c, "Getting admin stats")

	stats, err := h.service.GetAdminStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
