package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pin represents a published pin stored in MongoDB. A pin without a mint
// address is provisional and excluded from listings.
type Pin struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Owner       string             `json:"owner" bson:"owner"` // wallet address of the current owner
	MintAddress string             `json:"mint_address" bson:"mint_address"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	MetadataURL string             `json:"metadata_url,omitempty" bson:"metadata_url,omitempty"`
	Price       *float64           `json:"price" bson:"price"`
	ForSale     bool               `json:"for_sale" bson:"for_sale"`
	Duration    *int               `json:"duration" bson:"duration"` // listing duration in days
	ExpiresAt   *time.Time         `json:"expires_at" bson:"expires_at"`
	Likes       int                `json:"likes" bson:"likes"`       // denormalized, ledger-owned
	Comments    int                `json:"comments" bson:"comments"` // denormalized, ledger-owned
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePinRequest defines the request body for publishing a new pin
type CreatePinRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Owner       string   `json:"owner" validate:"required"`
	MintAddress string   `json:"mint_address" validate:"required"`
	ImageURL    string   `json:"image_url,omitempty" validate:"omitempty,url"`
	MetadataURL string   `json:"metadata_url,omitempty" validate:"omitempty,url"`
	Price       *float64 `json:"price,omitempty"`
	ForSale     bool     `json:"for_sale"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
}

// UpdatePinRequest defines the request body for editing a pin. Nil fields are
// left untouched; likes/comments are ledger-owned and not editable here.
type UpdatePinRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	MetadataURL *string  `json:"metadata_url,omitempty" validate:"omitempty,url"`
	Price       *float64 `json:"price,omitempty"`
	ForSale     *bool    `json:"for_sale,omitempty"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
}

// ListPinRequest defines the request body for listing a pin for sale
type ListPinRequest struct {
	Price    float64 `json:"price" validate:"required,gt=0"`
	Duration *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
}

// TransferOwnershipRequest defines the request body for completing a sale
type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" validate:"required"`
}
