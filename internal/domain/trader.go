package domain

import "time"

// Trader is the marketplace profile attached to a TRADER user. Bank details
// are collected so payouts can be settled; Verified flips when the
// registration OTP is confirmed.
type Trader struct {
	ID                  int64     `json:"id" gorm:"primaryKey"`
	UserID              int64     `json:"user_id" gorm:"uniqueIndex"`
	StallNumber         string    `json:"stall_number,omitempty"`
	Market              string    `json:"market,omitempty"`
	ProduceTypes        string    `json:"produce_types,omitempty"`
	BankName            string    `json:"bank_name,omitempty"`
	BankAccountNumber   string    `json:"bank_account_number,omitempty"`
	AccountName         string    `json:"account_name,omitempty"`
	Verified            bool      `json:"verified"`
	RegisteredByAgentID *int64    `json:"registered_by_agent_id,omitempty" gorm:"index"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
