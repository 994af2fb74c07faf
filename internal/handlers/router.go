package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/services"
	"github.com/edulane/lms-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	userHandler       *UserHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	dashboardHandler  *DashboardHandler
	studentHandler    *StudentHandler
	importHandler     *ImportHandler
	authMiddleware    *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	userRepo repositories.UserRepository,
	cookie SessionCookieConfig,
	frontendURL string,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger, cookie, frontendURL),
		userHandler:       NewUserHandler(serviceManager.Account(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), userRepo, logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), logger),
		studentHandler:    NewStudentHandler(serviceManager.Student(), logger),
		importHandler:     NewImportHandler(serviceManager.Import(), logger),
		authMiddleware:    NewJWTAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/register/student", hm.authHandler.RegisterStudent)
		auth.POST("/register/faculty", hm.authHandler.RegisterFaculty)
		auth.GET("/google/callback", hm.authHandler.GoogleCallback)
		auth.GET("/verify/:token", hm.authHandler.VerifyEmail)
		auth.POST("/logout", hm.authHandler.Logout)
	}

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.GET("/protected", hm.authHandler.Protected)

		// Account routes
		users := authed.Group("/users")
		{
			users.GET("/me", hm.userHandler.GetMe)
			users.PUT("/me", hm.userHandler.UpdateMe)

			// Admin-only user management
			users.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ListUsers)
			users.GET("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.GetUser)
			users.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.DeleteUser)
		}

		// Course routes
		courses := authed.Group("/courses")
		{
			// Create/modify courses - Faculty and Admins only
			courses.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin), hm.courseHandler.CreateCourse)
			courses.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin), hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin), hm.courseHandler.DeleteCourse)
			courses.POST("/:id/publish", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin), hm.courseHandler.PublishCourse)
			courses.POST("/:id/archive", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin), hm.courseHandler.ArchiveCourse)

			// View courses - all authenticated users (students see published only)
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/mine", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty), hm.courseHandler.ListMyCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)

			// Roster - Faculty (own courses) and Admins
			courses.GET("/:id/students", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin), hm.courseHandler.GetRoster)
		}

		// Enrollment routes
		enrollments := authed.Group("/enrollments")
		{
			enrollments.POST("", hm.enrollmentHandler.CreateEnrollment)
			enrollments.GET("/:id", hm.enrollmentHandler.GetEnrollment)
			enrollments.POST("/:id/payments", hm.enrollmentHandler.CreatePayment)
			enrollments.POST("/:id/activate", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.enrollmentHandler.ActivateEnrollment)

			enrollments.GET("/course/:course_id", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin), hm.enrollmentHandler.ListByCourse)
		}

		// Payment settlement - Admins only
		payments := authed.Group("/payments")
		payments.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			payments.POST("/:payment_id/confirm", hm.enrollmentHandler.ConfirmPayment)
		}

		// Dashboard routes - Admins only
		dashboard := authed.Group("/dashboard")
		dashboard.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			dashboard.GET("/stats", hm.dashboardHandler.GetAdminStats)
		}

		// Student routes - Students only
		students := authed.Group("/students")
		students.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
		{
			students.GET("/me/enrollments", hm.studentHandler.GetMyEnrollments)
		}

		// Admin bulk operations
		admin := authed.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.POST("/courses/import", hm.importHandler.ImportCourses)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "lms-service",
		})
	})
}
