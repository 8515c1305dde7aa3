package models

import "time"

// User is a lightweight wallet-keyed profile (PostgreSQL). Created lazily the
// first time a wallet address is seen; holds the FCM device token used for
// best-effort push delivery.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	WalletAddress string    `json:"wallet_address" gorm:"uniqueIndex"`
	Username      string    `json:"username"`
	DeviceToken   string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RegisterDeviceTokenRequest defines the request body for registering an FCM
// device token against a wallet address
type RegisterDeviceTokenRequest struct {
	DeviceToken string `json:"device_token" validate:"required"`
}
