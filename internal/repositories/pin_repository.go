package repositories

import (
	"context"
	"time"

	"github.com/iryspinter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PinRepository defines the interface for pin data operations
type PinRepository interface {
	CreatePin(ctx context.Context, pin *models.Pin) error
	GetPinByID(ctx context.Context, id string) (*models.Pin, error)
	GetVisiblePins(ctx context.Context) ([]models.Pin, error)
	GetPinsByOwner(ctx context.Context, owner string) ([]models.Pin, error)
	GetPinsByIDs(ctx context.Context, ids []string) ([]models.Pin, error)
	UpdatePin(ctx context.Context, id string, fields bson.M) (*models.Pin, error)
	DeletePin(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, pinID string) error
	DecrementLikes(ctx context.Context, pinID string) error
	IncrementComments(ctx context.Context, pinID string) error
	ExpireListings(ctx context.Context, now time.Time) (int64, error)
}

// MongoPinRepository implements PinRepository for MongoDB
type MongoPinRepository struct {
	collection *mongo.Collection
}

// NewMongoPinRepository creates a new MongoPinRepository
func NewMongoPinRepository(db *mongo.Database) *MongoPinRepository {
	return &MongoPinRepository{collection: db.Collection("pins")}
}

// CreatePin creates a new pin in MongoDB
func (r *MongoPinRepository) CreatePin(ctx context.Context, pin *models.Pin) error {
	pin.ID = primitive.NewObjectID()
	pin.CreatedAt = time.Now()
	pin.UpdatedAt = pin.CreatedAt
	_, err := r.collection.InsertOne(ctx, pin)
	return err
}

// GetPinByID retrieves a pin by ID. A malformed ID is reported the same way
// as a missing document.
func (r *MongoPinRepository) GetPinByID(ctx context.Context, id string) (*models.Pin, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPinNotFound
	}

	var pin models.Pin
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&pin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPinNotFound
		}
		return nil, err
	}
	return &pin, nil
}

func (r *MongoPinRepository) findSorted(ctx context.Context, filter bson.M) ([]models.Pin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pins []models.Pin
	if err = cursor.All(ctx, &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

// GetVisiblePins retrieves all minted pins, most recent first. Provisional
// pins (no mint address yet) are excluded.
func (r *MongoPinRepository) GetVisiblePins(ctx context.Context) ([]models.Pin, error) {
	return r.findSorted(ctx, bson.M{"mint_address": bson.M{"$nin": bson.A{nil, ""}}})
}

// GetPinsByOwner retrieves all minted pins owned by a wallet address
func (r *MongoPinRepository) GetPinsByOwner(ctx context.Context, owner string) ([]models.Pin, error) {
	return r.findSorted(ctx, bson.M{
		"owner":        owner,
		"mint_address": bson.M{"$nin": bson.A{nil, ""}},
	})
}

// GetPinsByIDs retrieves the pins with the given IDs, most recent first.
// Malformed IDs are skipped.
func (r *MongoPinRepository) GetPinsByIDs(ctx context.Context, ids []string) ([]models.Pin, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return []models.Pin{}, nil
	}
	return r.findSorted(ctx, bson.M{
		"_id":          bson.M{"$in": objIDs},
		"mint_address": bson.M{"$nin": bson.A{nil, ""}},
	})
}

// UpdatePin applies a field-level $set to a pin and returns the updated
// document. updated_at is always refreshed.
func (r *MongoPinRepository) UpdatePin(ctx context.Context, id string, fields bson.M) (*models.Pin, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPinNotFound
	}

	fields["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var pin models.Pin
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": fields}, opts).Decode(&pin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPinNotFound
		}
		return nil, err
	}
	return &pin, nil
}

// DeletePin deletes a pin by ID from MongoDB
func (r *MongoPinRepository) DeletePin(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPinNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPinNotFound
	}
	return nil
}

// IncrementLikes atomically increments the denormalized likes counter
func (r *MongoPinRepository) IncrementLikes(ctx context.Context, pinID string) error {
	objID, err := primitive.ObjectIDFromHex(pinID)
	if err != nil {
		return ErrPinNotFound
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes": 1}})
	return err
}

// DecrementLikes atomically decrements the likes counter. The likes > 0
// filter floors the counter at zero under concurrent unlikes.
func (r *MongoPinRepository) DecrementLikes(ctx context.Context, pinID string) error {
	objID, err := primitive.ObjectIDFromHex(pinID)
	if err != nil {
		return ErrPinNotFound
	}
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "likes": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"likes": -1}})
	return err
}

// IncrementComments atomically increments the denormalized comments counter
func (r *MongoPinRepository) IncrementComments(ctx context.Context, pinID string) error {
	objID, err := primitive.ObjectIDFromHex(pinID)
	if err != nil {
		return ErrPinNotFound
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments": 1}})
	return err
}

// ExpireListings flips every listing whose window has elapsed back to not for
// sale and returns the number of pins mutated. The for_sale filter makes
// concurrent sweeps idempotent.
func (r *MongoPinRepository) ExpireListings(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"for_sale":   true,
		"expires_at": bson.M{"$ne": nil, "$lte": now},
	}
	update := bson.M{"$set": bson.M{
		"for_sale":   false,
		"expires_at": nil,
		"updated_at": now,
	}}
	res, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
