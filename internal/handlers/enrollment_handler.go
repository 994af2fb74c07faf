package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	service services.EnrollmentService
}

func NewEnrollmentHandler(service services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateEnrollment opens a PENDING enrollment.
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	h.LogRequest(c, "Creating enrollment")

	var req services.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	enrollment, err := h.service.CreatePendingEnrollment(c.Request.Context(), req.StudentID, req.CourseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// CreatePayment records a payment against an enrollment.
func (h *EnrollmentHandler) CreatePayment(c *gin.Context) {
	h.LogRequest(c, "Creating payment")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}
	req.EnrollmentID = id

	payment, err := h.service.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// ConfirmPayment settles a payment (COMPLETED or FAILED). The enrollment is
// not touched here.
func (h *EnrollmentHandler) ConfirmPayment(c *gin.Context) {
	h.LogRequest(c, "Confirming payment")

	paymentID, ok := h.parseIDParam(c, "payment_id")
	if !ok {
		return
	}

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	payment, err := h.service.ConfirmPayment(c.Request.Context(), paymentID, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ActivateEnrollment links a completed payment and flips the enrollment to
// ACTIVE.
func (h *EnrollmentHandler) ActivateEnrollment(c *gin.Context) {
	h.LogRequest(c, "Activating enrollment")

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ActivateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	enrollment, err := h.service.ActivateEnrollment(c.Request.Context(), id, req.PaymentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// ListByCourse lists enrollments of a course, optionally filtered by status.
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	courseID, ok := h.parseIDParam(c, "course_id")
	if !ok {
		return
	}

	var status *models.EnrollmentStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.EnrollmentStatus(statusStr)
		status = &s
	}

	enrollments, err := h.service.ListByCourse(c.Request.Context(), courseID, status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}

// queryInt reads a positive integer query parameter with a fallback.
func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
