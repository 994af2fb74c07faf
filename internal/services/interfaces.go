package services

import (
	"context"
	"io"

	"github.com/edulane/lms-service/internal/models"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use request types from the validator package
type LoginRequest = validator.LoginRequest
type RegisterRequest = validator.RegisterRequest
type UserUpdateRequest = validator.UserUpdateRequest
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type CreateEnrollmentRequest = validator.EnrollmentCreateRequest
type CreatePaymentRequest = validator.PaymentCreateRequest
type ConfirmPaymentRequest = validator.ConfirmPaymentRequest
type ActivateEnrollmentRequest = validator.ActivateEnrollmentRequest

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"-"`
}

type CourseResponse struct {
	*models.Course
	CanEdit bool `json:"can_edit"`
}

type CourseListResponse struct {
	Courses []*CourseResponse `json:"courses"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
}

type RosterEntry struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type EnrollmentResponse struct {
	*models.Enrollment
	Course *models.Course `json:"course,omitempty"`
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ===== SERVICE INTERFACES =====

type AccountService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uint, req *UserUpdateRequest) (*models.User, error)
	UpdateByEmail(ctx context.Context, email string, updates map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error
	IsVerified(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)
}

type AuthService interface {
	EmailLogin(ctx context.Context, req *LoginRequest) (*AuthResult, error)
	RegisterStudent(ctx context.Context, req *RegisterRequest) (*models.User, error)
	RegisterFaculty(ctx context.Context, req *RegisterRequest) (*models.User, error)
	GoogleSignIn(ctx context.Context, idToken string, role models.UserRole) (*AuthResult, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	ParseSessionToken(token string) (*SessionClaims, error)
}

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest, creatorID uint, creatorRole models.UserRole) (*CourseResponse, error)
	GetByID(ctx context.Context, id uint, userID uint, role models.UserRole) (*CourseResponse, error)
	Update(ctx context.Context, id uint, req *UpdateCourseRequest, userID uint, role models.UserRole) (*CourseResponse, error)
	Delete(ctx context.Context, id uint, userID uint, role models.UserRole) error
	List(ctx context.Context, filters repositories.CourseFilters, page, size int) (*CourseListResponse, error)
	ListByFaculty(ctx context.Context, facultyID uint, filters repositories.CourseFilters) ([]*CourseResponse, error)
	Publish(ctx context.Context, id uint, userID uint, role models.UserRole) error
	Archive(ctx context.Context, id uint, userID uint, role models.UserRole) error
	GetRoster(ctx context.Context, courseID uint, userID uint, role models.UserRole) ([]*RosterEntry, error)
}

type EnrollmentService interface {
	CreatePendingEnrollment(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error)
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*models.Payment, error)
	ConfirmPayment(ctx context.Context, paymentID uint, status models.PaymentStatus) (*models.Payment, error)
	ActivateEnrollment(ctx context.Context, enrollmentID, paymentID uint) (*models.Enrollment, error)
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID uint, status *models.EnrollmentStatus) ([]*models.Enrollment, error)
}

type DashboardService interface {
	GetAdminStats(ctx context.Context) (*repositories.AdminStats, error)
}

type StudentService interface {
	GetMyEnrollments(ctx context.Context, userID uint) ([]*EnrollmentResponse, error)
}

type ImportService interface {
	ImportCourses(ctx context.Context, r io.Reader, adminID uint) (*ImportResult, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Account() AccountService
	Auth() AuthService
	Course() CourseService
	Enrollment() EnrollmentService
	Dashboard() DashboardService
	Student() StudentService
	Import() ImportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
