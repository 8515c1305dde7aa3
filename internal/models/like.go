package models

import "time"

// Like represents one user's like of one pin (PostgreSQL). The composite
// unique index enforces at most one like per (pin, user) pair; a racing
// duplicate insert fails at the store instead of double counting.
type Like struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PinID       string    `json:"pin_id" gorm:"uniqueIndex:idx_pin_user_like"` // MongoDB ObjectID as string
	UserAddress string    `json:"user" gorm:"uniqueIndex:idx_pin_user_like"`
	Txid        string    `json:"txid,omitempty"` // opaque provenance token, stored but never interpreted
	CreatedAt   time.Time `json:"created_at"`
}

// ToggleLikeRequest defines the request body for toggling a like on a pin
type ToggleLikeRequest struct {
	User string `json:"user" validate:"required"`
	Txid string `json:"txid,omitempty"`
}
