package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
	"github.com/edulane/lms-service/internal/validator"
)

const testJWTSecret = "test-secret"

func testHandlerLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testAuthService() services.AuthService {
	return services.NewAuthService(nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator.New(), nil, nil,
		services.AuthConfig{JWTSecret: testJWTSecret})
}

func signTestToken(t *testing.T, userID uint, role models.UserRole, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := &services.SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	middleware := NewJWTAuthMiddleware(testAuthService())

	router := gin.New()
	authed := router.Group("", middleware.AuthMiddleware())
	authed.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	authed.GET("/admin-only", middleware.RequireRoleMiddleware(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	router := newAuthTestRouter()

	t.Run("MissingToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{
			Name:  SessionCookieName,
			Value: signTestToken(t, 1, models.RoleStudent, -time.Minute),
		})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("CookieToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{
			Name:  SessionCookieName,
			Value: signTestToken(t, 42, models.RoleFaculty, time.Hour),
		})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("BearerFallback", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 7, models.RoleStudent, time.Hour))
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRequireRoleMiddleware(t *testing.T) {
	router := newAuthTestRouter()

	t.Run("AllowedRole", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.AddCookie(&http.Cookie{
			Name:  SessionCookieName,
			Value: signTestToken(t, 1, models.RoleAdmin, time.Hour),
		})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("ForbiddenRole", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.AddCookie(&http.Cookie{
			Name:  SessionCookieName,
			Value: signTestToken(t, 2, models.RoleStudent, time.Hour),
		})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})
}
