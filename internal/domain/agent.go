package domain

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Agent is the field-agent profile attached to an AGENT user. The account
// stays PENDING until an admin approves the application; the user's status
// mirrors the approval outcome.
type Agent struct {
	ID              int64          `json:"id" gorm:"primaryKey"`
	UserID          int64          `json:"user_id" gorm:"uniqueIndex"`
	Market          string         `json:"market,omitempty"`
	IDDocumentURL   string         `json:"id_document_url,omitempty"`
	EmailVerified   bool           `json:"email_verified"`
	ApprovalStatus  ApprovalStatus `json:"approval_status" gorm:"index"`
	ApprovedBy      *int64         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type AttendanceStatus string

const (
	AttendanceClockedIn  AttendanceStatus = "CLOCKED_IN"
	AttendanceClockedOut AttendanceStatus = "CLOCKED_OUT"
)

// AgentAttendance is one working day for an agent: clock-in/out times with
// the coordinates they were recorded at. One row per agent per date.
type AgentAttendance struct {
	ID                int64            `json:"id" gorm:"primaryKey"`
	AgentUserID       int64            `json:"agent_user_id" gorm:"index:idx_attendance_agent_date,unique"`
	Date              string           `json:"date" gorm:"index:idx_attendance_agent_date,unique"` // YYYY-MM-DD
	ClockInTime       time.Time        `json:"clock_in_time"`
	ClockInLatitude   float64          `json:"clock_in_latitude"`
	ClockInLongitude  float64          `json:"clock_in_longitude"`
	ClockInAddress    string           `json:"clock_in_address,omitempty"`
	ClockOutTime      *time.Time       `json:"clock_out_time,omitempty"`
	ClockOutLatitude  *float64         `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64         `json:"clock_out_longitude,omitempty"`
	ClockOutAddress   string           `json:"clock_out_address,omitempty"`
	TotalHoursWorked  float64          `json:"total_hours_worked"`
	CompletedPickups  int              `json:"completed_pickups"`
	Status            AttendanceStatus `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
