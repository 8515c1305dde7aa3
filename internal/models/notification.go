package models

import "time"

// Notification types
const (
	NotificationTypeLike     = "like"
	NotificationTypeComment  = "comment"
	NotificationTypePurchase = "purchase"
	NotificationTypeOther    = "other"
)

// Notification represents a user notification (PostgreSQL). Notifications are
// append-only history: they survive deletion of the pin they reference and are
// only ever mutated to flip the read flag.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Recipient string    `json:"recipient" gorm:"index"`    // wallet address
	Actor     string    `json:"actor"`                     // wallet address that triggered the event
	Type      string    `json:"type" gorm:"size:30;index"` // like, comment, purchase, other
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	PinID     string    `json:"pin_id,omitempty"`
	Price     *float64  `json:"price,omitempty"`
	IsRead    bool      `json:"read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreateNotificationRequest defines the request body for creating a
// notification from outside the ledger (e.g. an externally confirmed purchase)
type CreateNotificationRequest struct {
	Recipient string   `json:"recipient" validate:"required"`
	Actor     string   `json:"actor,omitempty"`
	Type      string   `json:"type" validate:"required,oneof=like comment purchase other"`
	Title     string   `json:"title" validate:"required"`
	Message   string   `json:"message" validate:"required"`
	PinID     string   `json:"pin_id,omitempty"`
	Price     *float64 `json:"price,omitempty"`
}

// MarkReadRequest carries the wallet address claiming a notification
type MarkReadRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
}
