package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/edulane/lms-service/internal/events"
	"github.com/edulane/lms-service/internal/mailer"
	"github.com/edulane/lms-service/internal/repositories"
	"github.com/edulane/lms-service/internal/validator"
)

// ServiceManagerDeps bundles everything the services need.
type ServiceManagerDeps struct {
	Repo      repositories.Repository
	Logger    *slog.Logger
	Validator *validator.Validator
	Mailer    mailer.EmailService
	Publisher events.EventPublisher
	Google    GoogleVerifier
	Auth      AuthConfig
}

// serviceManager implements ServiceManager.
type serviceManager struct {
	deps ServiceManagerDeps

	accountService    AccountService
	authService       AuthService
	courseService     CourseService
	enrollmentService EnrollmentService
	dashboardService  DashboardService
	studentService    StudentService
	importService     ImportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps ServiceManagerDeps) ServiceManager {
	return &serviceManager{deps: deps}
}

// Initialize wires up all services.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.deps.Logger.Info("Initializing service manager")

	sm.accountService = NewAccountService(sm.deps.Repo, sm.deps.Logger, sm.deps.Validator)
	sm.authService = NewAuthService(sm.deps.Repo, sm.deps.Logger, sm.deps.Validator, sm.deps.Mailer, sm.deps.Google, sm.deps.Auth)
	sm.courseService = NewCourseService(sm.deps.Repo, sm.deps.Logger, sm.deps.Validator)
	sm.enrollmentService = NewEnrollmentService(sm.deps.Repo, sm.deps.Logger, sm.deps.Validator, sm.deps.Publisher)
	sm.dashboardService = NewDashboardService(sm.deps.Repo, sm.deps.Logger)
	sm.studentService = NewStudentService(sm.deps.Repo, sm.deps.Logger)
	sm.importService = NewImportService(sm.deps.Repo, sm.deps.Logger, sm.deps.Validator)

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.accountService
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.courseService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.enrollmentService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.dashboardService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.studentService
}

func (sm *serviceManager) Import() ImportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.importService
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if repoManager, ok := sm.deps.Repo.(repositories.RepositoryManager); ok {
		if err := repoManager.Shutdown(ctx); err != nil {
			sm.deps.Logger.Error("Failed to shutdown repository manager", "error", err)
		}
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down")

	return nil
}
