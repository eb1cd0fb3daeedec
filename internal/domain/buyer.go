package domain

import "time"

// Buyer is the profile attached to a BUYER user. Buyers are activated
// immediately at registration.
type Buyer struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	UserID          int64     `json:"user_id" gorm:"uniqueIndex"`
	CompanyName     string    `json:"company_name,omitempty"`
	DeliveryAddress string    `json:"delivery_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
