package admin

type SeedRequest struct {
	FullName string `json:"full_name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type CreateAdminRequest struct {
	FullName string `json:"full_name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type ApproveAgentRequest struct {
	Notes string `json:"notes"`
}

type RejectAgentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ModerationRequest struct {
	Reason string `json:"reason"`
}

// RegistrationCounts buckets signups over recent windows.
type RegistrationCounts struct {
	Today     int64 `json:"today"`
	ThisWeek  int64 `json:"this_week"`
	ThisMonth int64 `json:"this_month"`
}

// DashboardStats is the admin landing-page aggregate.
type DashboardStats struct {
	TotalUsers    int64              `json:"total_users"`
	UsersByRole   map[string]int64   `json:"users_by_role"`
	UsersByStatus map[string]int64   `json:"users_by_status"`
	PendingAgents int64              `json:"pending_agents"`
	Registrations RegistrationCounts `json:"registrations"`
}
