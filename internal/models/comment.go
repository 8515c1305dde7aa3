package models

import "time"

// Comment represents a comment on a pin (PostgreSQL). Comments are never
// edited or removed individually; they only disappear when the owning pin is
// deleted.
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PinID       string    `json:"pin_id" gorm:"index"` // MongoDB ObjectID as string
	UserAddress string    `json:"user"`
	Content     string    `json:"content"`
	Txid        string    `json:"txid,omitempty"` // opaque provenance token
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a pin
type CreateCommentRequest struct {
	User    string `json:"user" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=500"`
	Txid    string `json:"txid,omitempty"`
}
