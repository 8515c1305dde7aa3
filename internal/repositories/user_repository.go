package repositories

import (
	"errors"

	"github.com/iryspinter/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for wallet-keyed profile operations
type UserRepository interface {
	GetOrCreateByWallet(walletAddress string) (*models.User, error)
	SetDeviceToken(walletAddress, token string) error
	GetDeviceToken(walletAddress string) (string, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetOrCreateByWallet fetches a profile, creating it on first sight of the
// wallet address with a short default username
func (r *PostgresUserRepository) GetOrCreateByWallet(walletAddress string) (*models.User, error) {
	username := walletAddress
	if len(username) > 8 {
		username = username[:8]
	}
	var user models.User
	err := r.db.Where(models.User{WalletAddress: walletAddress}).
		Attrs(models.User{Username: username}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetDeviceToken stores the FCM device token for a wallet address, creating
// the profile if it does not exist yet
func (r *PostgresUserRepository) SetDeviceToken(walletAddress, token string) error {
	user, err := r.GetOrCreateByWallet(walletAddress)
	if err != nil {
		return err
	}
	return r.db.Model(user).Update("device_token", token).Error
}

// GetDeviceToken returns the registered FCM token for a wallet address, or
// empty when the user is unknown or has no token
func (r *PostgresUserRepository) GetDeviceToken(walletAddress string) (string, error) {
	var user models.User
	err := r.db.Where("wallet_address = ?", walletAddress).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.DeviceToken, nil
}
