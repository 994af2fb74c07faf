package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service     services.AuthService
	cookie      SessionCookieConfig
	frontendURL string
}

func NewAuthHandler(service services.AuthService, logger utils.Logger, cookie SessionCookieConfig, frontendURL string) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		cookie:      cookie,
		frontendURL: frontendURL,
	}
}

// Login authenticates with email/password and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Email login")

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	result, err := h.service.EmailLogin(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	h.register(c, models.RoleStudent)
}

func (h *AuthHandler) RegisterFaculty(c *gin.Context) {
	h.register(c, models.RoleFaculty)
}

func (h *AuthHandler) register(c *gin.Context, role models.UserRole) {
	h.LogRequest(c, "Registering "+string(role))

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	var user *models.User
	var err error
	if role == models.RoleFaculty {
		user, err = h.service.RegisterFaculty(c.Request.Context(), &req)
	} else {
		user, err = h.service.RegisterStudent(c.Request.Context(), &req)
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GoogleCallback finishes a Google sign-in: verifies the ID token, sets the
// session cookie and redirects to the frontend.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	h.LogRequest(c, "Google sign-in callback")

	idToken := c.Query("credential")
	if idToken == "" {
		idToken = c.Query("id_token")
	}
	if idToken == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing credential"})
		return
	}

	role := models.UserRole(c.DefaultQuery("role", string(models.RoleStudent)))

	result, err := h.service.GoogleSignIn(c.Request.Context(), idToken, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.Redirect(http.StatusFound, h.frontendURL)
}

// VerifyEmail consumes the verification link token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	h.LogRequest(c, "Verifying email")

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing token"})
		return
	}

	user, err := h.service.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified", "user": user})
}

// Protected reports the authenticated identity; used by the frontend as a
// session check.
func (h *AuthHandler) Protected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": GetUserID(c),
		"role":    GetUserRole(c),
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, h.cookie.MaxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
