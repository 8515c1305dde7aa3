package repositories

import (
	"github.com/iryspinter/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPinID(pinID string) ([]models.Comment, error)
	GetCommentsCountByPinID(pinID string) (int64, error)
	DeleteByPinID(pinID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsByPinID retrieves all comments for a pin, most recent first
func (r *PostgresCommentRepository) GetCommentsByPinID(pinID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("pin_id = ?", pinID).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsCountByPinID retrieves the count of comments for a specific pin
func (r *PostgresCommentRepository) GetCommentsCountByPinID(pinID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("pin_id = ?", pinID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByPinID removes every comment referencing a pin; used by cascade delete
func (r *PostgresCommentRepository) DeleteByPinID(pinID string) error {
	return r.db.Where("pin_id = ?", pinID).Delete(&models.Comment{}).Error
}
