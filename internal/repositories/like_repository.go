package repositories

import (
	"errors"

	"github.com/iryspinter/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(pinID, userAddress string) error
	HasLiked(pinID, userAddress string) (bool, error)
	GetLikesCountByPinID(pinID string) (int64, error)
	GetPinIDsLikedBy(userAddress string) ([]string, error)
	DeleteByPinID(pinID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like. The unique index on (pin_id, user_address) turns
// a concurrent duplicate into ErrAlreadyLiked rather than a double count.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// DeleteLike removes a user's like of a pin, reporting ErrLikeNotFound when
// there was nothing to remove
func (r *PostgresLikeRepository) DeleteLike(pinID, userAddress string) error {
	res := r.db.Where("pin_id = ? AND user_address = ?", pinID, userAddress).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// HasLiked checks if a user has liked a specific pin
func (r *PostgresLikeRepository) HasLiked(pinID, userAddress string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("pin_id = ? AND user_address = ?", pinID, userAddress).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesCountByPinID retrieves the count of likes for a specific pin
func (r *PostgresLikeRepository) GetLikesCountByPinID(pinID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("pin_id = ?", pinID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetPinIDsLikedBy returns the pin IDs a wallet address has liked, most
// recent like first. Used by the liked-by listing filter.
func (r *PostgresLikeRepository) GetPinIDsLikedBy(userAddress string) ([]string, error) {
	var likes []models.Like
	if err := r.db.Where("user_address = ?", userAddress).Order("created_at DESC").Find(&likes).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.PinID)
	}
	return ids, nil
}

// DeleteByPinID removes every like referencing a pin; used by cascade delete
func (r *PostgresLikeRepository) DeleteByPinID(pinID string) error {
	return r.db.Where("pin_id = ?", pinID).Delete(&models.Like{}).Error
}
