package repository

import (
	"context"
	"errors"
	"time"

	"placemarks-service/internal/domain/entity"
	"placemarks-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPlaceCacheRepository implements PlaceCacheRepository
type MongoPlaceCacheRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaceCacheRepository creates a new freshness cache repository
func NewMongoPlaceCacheRepository(db *mongo.Database) repository.PlaceCacheRepository {
	collection := db.Collection("place_cache")

	// Create unique index on googlePlaceId
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"googlePlaceId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Create index on expiresAt for cleanup sweeps
	expiryIndex := mongo.IndexModel{
		Keys: bson.M{"expiresAt": 1},
	}
	collection.Indexes().CreateOne(ctx, expiryIndex)

	return &MongoPlaceCacheRepository{
		collection: collection,
	}
}

// Get returns the unexpired entry for a Google place ID. Absent or expired
// entries are a miss, returned as (nil, nil).
func (r *MongoPlaceCacheRepository) Get(ctx context.Context, googlePlaceID string) (*entity.PlaceCacheEntry, error) {
	filter := bson.M{
		"googlePlaceId": googlePlaceID,
		"expiresAt":     bson.M{"$gt": time.Now()},
	}

	var entry entity.PlaceCacheEntry
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert creates or fully overwrites the entry for the entry's place ID
func (r *MongoPlaceCacheRepository) Upsert(ctx context.Context, entry *entity.PlaceCacheEntry) error {
	// For new entries
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}

	// Write every field so a prior entry is replaced entirely
	updateDoc := bson.M{
		"googlePlaceId": entry.GooglePlaceID,
		"name":          entry.Name,
		"address":       entry.Address,
		"latitude":      entry.Latitude,
		"longitude":     entry.Longitude,
		"phone":         entry.Phone,
		"website":       entry.Website,
		"rating":        entry.Rating,
		"priceLevel":    entry.PriceLevel,
		"types":         entry.Types,
		"hoursOpen":     entry.HoursOpen,
		"photos":        entry.Photos,
		"cachedAt":      entry.CachedAt,
		"expiresAt":     entry.ExpiresAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"googlePlaceId": entry.GooglePlaceID}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": updateDoc},
		opts,
	)

	// If it was an insert, we need to get the new ID
	if err == nil && result.UpsertedCount > 0 && result.UpsertedID != nil {
		if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
			entry.ID = oid.Hex()
		}
	}

	return err
}

// DeleteExpired removes all entries whose expiry is in the past
func (r *MongoPlaceCacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"expiresAt": bson.M{"$lte": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
