package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/services"
)

// SessionCookieName is the HTTP-only cookie carrying the session JWT.
const SessionCookieName = "token"

// SessionCookieConfig controls how the session cookie is written.
type SessionCookieConfig struct {
	Domain string
	Secure bool
	MaxAge int // seconds
}

// JWTAuthMiddleware authenticates requests from the session cookie (or a
// bearer token as fallback) and stamps user identity into the context.
type JWTAuthMiddleware struct {
	auth services.AuthService
}

func NewJWTAuthMiddleware(auth services.AuthService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{auth: auth}
}

func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		claims, err := m.auth.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired session",
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RequireRoleMiddleware allows only the given roles past. Must run after
// AuthMiddleware.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient role permissions",
		})
	}
}

func (m *JWTAuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// GetUserID returns the authenticated user's ID from the context.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetUserRole returns the authenticated user's role from the context.
func GetUserRole(c *gin.Context) models.UserRole {
	if v, ok := c.Get("user_role"); ok {
		if role, ok := v.(models.UserRole); ok {
			return role
		}
	}
	return ""
}
