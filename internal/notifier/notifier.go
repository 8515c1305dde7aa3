package notifier

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/iryspinter/backend/internal/models"
	"github.com/iryspinter/backend/internal/repositories"
)

// Notifier fans ledger and lifecycle events out into notification records.
// Creation is best effort: callers log failures and never roll back the
// mutation that triggered the event. When a messaging client is configured
// and the recipient registered a device token, a push message is sent as
// well; push failure is tolerated the same way.
type Notifier struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	messagingClient        *messaging.Client // nil disables push
}

// New creates a Notifier. messagingClient may be nil.
func New(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, messagingClient *messaging.Client) *Notifier {
	return &Notifier{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		messagingClient:        messagingClient,
	}
}

// NotifyLike notifies a pin owner that someone liked their pin. Suppressed
// when the liker is the owner.
func (n *Notifier) NotifyLike(ctx context.Context, liker string, pin *models.Pin) error {
	if pin.Owner == liker {
		return nil
	}
	return n.create(ctx, &models.Notification{
		Recipient: pin.Owner,
		Actor:     liker,
		Type:      models.NotificationTypeLike,
		Title:     "New Like",
		Message:   fmt.Sprintf("%s liked your pin \"%s\"", liker, pin.Title),
		PinID:     pin.ID.Hex(),
	})
}

// NotifyComment notifies a pin owner that someone commented on their pin.
// Suppressed when the commenter is the owner.
func (n *Notifier) NotifyComment(ctx context.Context, commenter string, pin *models.Pin) error {
	if pin.Owner == commenter {
		return nil
	}
	return n.create(ctx, &models.Notification{
		Recipient: pin.Owner,
		Actor:     commenter,
		Type:      models.NotificationTypeComment,
		Title:     "New Comment",
		Message:   fmt.Sprintf("%s commented on your pin \"%s\"", commenter, pin.Title),
		PinID:     pin.ID.Hex(),
	})
}

// NotifyPurchase notifies a seller that their pin was bought. Suppressed when
// the seller bought their own pin.
func (n *Notifier) NotifyPurchase(ctx context.Context, seller, buyer string, pin *models.Pin, price *float64) error {
	if seller == buyer {
		return nil
	}
	message := fmt.Sprintf("%s bought your pin \"%s\"", buyer, pin.Title)
	if price != nil {
		message = fmt.Sprintf("%s bought your pin \"%s\" for %g", buyer, pin.Title, *price)
	}
	return n.create(ctx, &models.Notification{
		Recipient: seller,
		Actor:     buyer,
		Type:      models.NotificationTypePurchase,
		Title:     "Pin Sold",
		Message:   message,
		PinID:     pin.ID.Hex(),
		Price:     price,
	})
}

// CreateManual stores a notification originating outside the ledger. Unlike
// the event paths there is no recipient==actor suppression.
func (n *Notifier) CreateManual(ctx context.Context, notification *models.Notification) error {
	return n.create(ctx, notification)
}

func (n *Notifier) create(ctx context.Context, notification *models.Notification) error {
	if err := n.notificationRepository.CreateNotification(notification); err != nil {
		return err
	}
	n.push(ctx, notification)
	return nil
}

func (n *Notifier) push(ctx context.Context, notification *models.Notification) {
	if n.messagingClient == nil {
		return
	}
	token, err := n.userRepository.GetDeviceToken(notification.Recipient)
	if err != nil || token == "" {
		return
	}
	_, err = n.messagingClient.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Message,
		},
	})
	if err != nil {
		log.Printf("push delivery to %s failed: %v", notification.Recipient, err)
	}
}
