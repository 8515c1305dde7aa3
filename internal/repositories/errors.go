package repositories

import "errors"

// Sentinel errors surfaced by repositories so handlers can map them onto
// stable HTTP statuses without string matching.
var (
	ErrPinNotFound          = errors.New("pin not found")
	ErrLikeNotFound         = errors.New("like not found")
	ErrAlreadyLiked         = errors.New("pin already liked by this user")
	ErrNotificationNotFound = errors.New("notification not found")
)
