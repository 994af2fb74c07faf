package repositories

import "context"

// AdminStats aggregates platform-wide counters for the admin dashboard.
type AdminStats struct {
	TotalUsers       int64            `json:"total_users"`
	UsersByRole      map[string]int64 `json:"users_by_role"`
	TotalCourses     int64            `json:"total_courses"`
	PublishedCourses int64            `json:"published_courses"`

	TotalEnrollments   int64 `json:"total_enrollments"`
	ActiveEnrollments  int64 `json:"active_enrollments"`
	PendingEnrollments int64 `json:"pending_enrollments"`

	CompletedPayments int64   `json:"completed_payments"`
	Revenue           float64 `json:"revenue"` // sum of COMPLETED payment amounts
}

// DashboardRepository interface for aggregate statistics queries.
type DashboardRepository interface {
	GetAdminStats(ctx context.Context) (*AdminStats, error)
}
