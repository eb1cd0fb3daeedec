package domain

import "time"

// AdminAuditLog records every admin action against a user account.
// CorrelationID groups related entries (for example an approval plus the
// notification it triggered).
type AdminAuditLog struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	CorrelationID string    `json:"correlation_id" gorm:"index"`
	AdminID       int64     `json:"admin_id" gorm:"index"`
	AdminEmail    string    `json:"admin_email"`
	Action        string    `json:"action"`
	TargetUserID  int64     `json:"target_user_id" gorm:"index"`
	TargetContact string    `json:"target_contact"`
	Reason        string    `json:"reason,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
