package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/mongodb"
)

// LocationRepository is the MongoDB implementation of
// domain.LocationRepository. Sublocations are embedded in the location
// document, so stock updates ride on the location upsert.
type LocationRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(client *mongodb.InstrumentedClient) *LocationRepository {
	repo := &LocationRepository{collection: client.Collection("locations")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *LocationRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "locationId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "sublocations.sublocationId", Value: 1}}},
	}
	for _, index := range indexes {
		r.collection.CreateIndex(ctx, index)
	}
}

// Save upserts a location by locationId
func (r *LocationRepository) Save(ctx context.Context, location *domain.Location) error {
	location.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"locationId": location.LocationID}, location, opts); err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

// FindByID retrieves a location by its location ID
func (r *LocationRepository) FindByID(ctx context.Context, locationID string) (*domain.Location, error) {
	var location domain.Location
	err := r.collection.FindOne(ctx, bson.M{"locationId": locationID}).Decode(&location)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// FindBySublocationID retrieves the location containing a sublocation
func (r *LocationRepository) FindBySublocationID(ctx context.Context, sublocationID string) (*domain.Location, error) {
	var location domain.Location
	err := r.collection.FindOne(ctx, bson.M{"sublocations.sublocationId": sublocationID}).Decode(&location)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// FindAll retrieves every location
func (r *LocationRepository) FindAll(ctx context.Context) ([]*domain.Location, error) {
	opts := options.Find().SetSort(bson.D{{Key: "locationId", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var locations []*domain.Location
	err = cursor.All(ctx, &locations)
	return locations, err
}
