package repositories

import (
	"github.com/iryspinter/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipient(recipient string) ([]models.Notification, error)
	GetUnreadCount(recipient string) (int64, error)
	MarkAsRead(notificationID uint, recipient string) error
	MarkAllAsRead(recipient string) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipient(recipient string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient = ?", recipient).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipient string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient = ? AND is_read = false", recipient).Count(&count).Error
	return count, err
}

// MarkAsRead flips the read flag. The recipient predicate means a wrong
// requester is indistinguishable from a missing notification.
func (r *postgresNotificationRepository) MarkAsRead(notificationID uint, recipient string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient = ?", notificationID, recipient).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipient string) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("recipient = ? AND is_read = false", recipient).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
