package handlers

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/iryspinter/backend/internal/models"
	"github.com/iryspinter/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errSweepDown = errors.New("store unavailable")

// In-memory fakes for the repository interfaces. State lives in maps so
// round-trip behavior (like → unlike, sweep twice) can be exercised without a
// database; err fields inject failures.

type memPinRepo struct {
	pins        map[string]*models.Pin
	expireCalls int
	expireErr   error
	deleteErr   error
}

func newMemPinRepo() *memPinRepo {
	return &memPinRepo{pins: make(map[string]*models.Pin)}
}

func (m *memPinRepo) add(pin *models.Pin) string {
	if pin.ID.IsZero() {
		pin.ID = primitive.NewObjectID()
	}
	if pin.CreatedAt.IsZero() {
		pin.CreatedAt = time.Now()
		pin.UpdatedAt = pin.CreatedAt
	}
	m.pins[pin.ID.Hex()] = pin
	return pin.ID.Hex()
}

func (m *memPinRepo) CreatePin(_ context.Context, pin *models.Pin) error {
	pin.ID = primitive.NewObjectID()
	pin.CreatedAt = time.Now()
	pin.UpdatedAt = pin.CreatedAt
	m.pins[pin.ID.Hex()] = pin
	return nil
}

func (m *memPinRepo) GetPinByID(_ context.Context, id string) (*models.Pin, error) {
	pin, ok := m.pins[id]
	if !ok {
		return nil, repositories.ErrPinNotFound
	}
	copied := *pin
	return &copied, nil
}

func (m *memPinRepo) sorted(pins []models.Pin) []models.Pin {
	sort.Slice(pins, func(i, j int) bool { return pins[i].CreatedAt.After(pins[j].CreatedAt) })
	return pins
}

func (m *memPinRepo) GetVisiblePins(_ context.Context) ([]models.Pin, error) {
	var out []models.Pin
	for _, p := range m.pins {
		if p.MintAddress != "" {
			out = append(out, *p)
		}
	}
	return m.sorted(out), nil
}

func (m *memPinRepo) GetPinsByOwner(_ context.Context, owner string) ([]models.Pin, error) {
	var out []models.Pin
	for _, p := range m.pins {
		if p.Owner == owner && p.MintAddress != "" {
			out = append(out, *p)
		}
	}
	return m.sorted(out), nil
}

func (m *memPinRepo) GetPinsByIDs(_ context.Context, ids []string) ([]models.Pin, error) {
	var out []models.Pin
	for _, id := range ids {
		if p, ok := m.pins[id]; ok && p.MintAddress != "" {
			out = append(out, *p)
		}
	}
	return m.sorted(out), nil
}

func (m *memPinRepo) UpdatePin(_ context.Context, id string, fields bson.M) (*models.Pin, error) {
	pin, ok := m.pins[id]
	if !ok {
		return nil, repositories.ErrPinNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			pin.Title = v.(string)
		case "description":
			pin.Description = v.(string)
		case "owner":
			pin.Owner = v.(string)
		case "image_url":
			pin.ImageURL = v.(string)
		case "metadata_url":
			pin.MetadataURL = v.(string)
		case "for_sale":
			pin.ForSale = v.(bool)
		case "price":
			switch p := v.(type) {
			case float64:
				pin.Price = &p
			case nil:
				pin.Price = nil
			}
		case "duration":
			switch d := v.(type) {
			case int:
				pin.Duration = &d
			case nil:
				pin.Duration = nil
			}
		case "expires_at":
			switch t := v.(type) {
			case *time.Time:
				pin.ExpiresAt = t
			case nil:
				pin.ExpiresAt = nil
			}
		case "updated_at":
			pin.UpdatedAt = v.(time.Time)
		}
	}
	copied := *pin
	return &copied, nil
}

func (m *memPinRepo) DeletePin(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.pins[id]; !ok {
		return repositories.ErrPinNotFound
	}
	delete(m.pins, id)
	return nil
}

func (m *memPinRepo) IncrementLikes(_ context.Context, pinID string) error {
	if p, ok := m.pins[pinID]; ok {
		p.Likes++
	}
	return nil
}

func (m *memPinRepo) DecrementLikes(_ context.Context, pinID string) error {
	if p, ok := m.pins[pinID]; ok && p.Likes > 0 {
		p.Likes--
	}
	return nil
}

func (m *memPinRepo) IncrementComments(_ context.Context, pinID string) error {
	if p, ok := m.pins[pinID]; ok {
		p.Comments++
	}
	return nil
}

func (m *memPinRepo) ExpireListings(_ context.Context, now time.Time) (int64, error) {
	m.expireCalls++
	if m.expireErr != nil {
		return 0, m.expireErr
	}
	var count int64
	for _, p := range m.pins {
		if p.ForSale && p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
			p.ForSale = false
			p.ExpiresAt = nil
			p.UpdatedAt = now
			count++
		}
	}
	return count, nil
}

type memLikeRepo struct {
	likes     map[string]map[string]models.Like // pinID -> user -> like
	deleteErr error                             // injected into DeleteByPinID
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{likes: make(map[string]map[string]models.Like)}
}

func (m *memLikeRepo) CreateLike(like *models.Like) error {
	byUser, ok := m.likes[like.PinID]
	if !ok {
		byUser = make(map[string]models.Like)
		m.likes[like.PinID] = byUser
	}
	if _, exists := byUser[like.UserAddress]; exists {
		return repositories.ErrAlreadyLiked
	}
	like.CreatedAt = time.Now()
	byUser[like.UserAddress] = *like
	return nil
}

func (m *memLikeRepo) DeleteLike(pinID, userAddress string) error {
	byUser := m.likes[pinID]
	if _, ok := byUser[userAddress]; !ok {
		return repositories.ErrLikeNotFound
	}
	delete(byUser, userAddress)
	return nil
}

func (m *memLikeRepo) HasLiked(pinID, userAddress string) (bool, error) {
	_, ok := m.likes[pinID][userAddress]
	return ok, nil
}

func (m *memLikeRepo) GetLikesCountByPinID(pinID string) (int64, error) {
	return int64(len(m.likes[pinID])), nil
}

func (m *memLikeRepo) GetPinIDsLikedBy(userAddress string) ([]string, error) {
	var ids []string
	for pinID, byUser := range m.likes {
		if _, ok := byUser[userAddress]; ok {
			ids = append(ids, pinID)
		}
	}
	return ids, nil
}

func (m *memLikeRepo) DeleteByPinID(pinID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.likes, pinID)
	return nil
}

type memCommentRepo struct {
	comments  []models.Comment
	nextID    uint
	deleteErr error
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{}
}

func (m *memCommentRepo) CreateComment(comment *models.Comment) error {
	m.nextID++
	comment.ID = m.nextID
	comment.CreatedAt = time.Now()
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memCommentRepo) GetCommentsByPinID(pinID string) ([]models.Comment, error) {
	var out []models.Comment
	for i := len(m.comments) - 1; i >= 0; i-- {
		if m.comments[i].PinID == pinID {
			out = append(out, m.comments[i])
		}
	}
	return out, nil
}

func (m *memCommentRepo) GetCommentsCountByPinID(pinID string) (int64, error) {
	var count int64
	for _, c := range m.comments {
		if c.PinID == pinID {
			count++
		}
	}
	return count, nil
}

func (m *memCommentRepo) DeleteByPinID(pinID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	kept := m.comments[:0]
	for _, c := range m.comments {
		if c.PinID != pinID {
			kept = append(kept, c)
		}
	}
	m.comments = kept
	return nil
}

type memNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
	createErr     error
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (m *memNotificationRepo) CreateNotification(n *models.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	n.ID = m.nextID
	n.CreatedAt = time.Now()
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memNotificationRepo) GetByRecipient(recipient string) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].Recipient == recipient {
			out = append(out, m.notifications[i])
		}
	}
	return out, nil
}

func (m *memNotificationRepo) GetUnreadCount(recipient string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.Recipient == recipient && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) MarkAsRead(id uint, recipient string) error {
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].Recipient == recipient {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (m *memNotificationRepo) MarkAllAsRead(recipient string) (int64, error) {
	var count int64
	for i := range m.notifications {
		if m.notifications[i].Recipient == recipient && !m.notifications[i].IsRead {
			m.notifications[i].IsRead = true
			count++
		}
	}
	return count, nil
}

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (m *memUserRepo) GetOrCreateByWallet(walletAddress string) (*models.User, error) {
	if u, ok := m.users[walletAddress]; ok {
		return u, nil
	}
	username := walletAddress
	if len(username) > 8 {
		username = username[:8]
	}
	u := &models.User{
		ID:            uint(len(m.users) + 1),
		WalletAddress: walletAddress,
		Username:      username,
		CreatedAt:     time.Now(),
	}
	m.users[walletAddress] = u
	return u, nil
}

func (m *memUserRepo) SetDeviceToken(walletAddress, token string) error {
	u, err := m.GetOrCreateByWallet(walletAddress)
	if err != nil {
		return err
	}
	u.DeviceToken = token
	return nil
}

func (m *memUserRepo) GetDeviceToken(walletAddress string) (string, error) {
	if u, ok := m.users[walletAddress]; ok {
		return u.DeviceToken, nil
	}
	return "", nil
}
