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

// PalletRepository is the MongoDB implementation of
// domain.PalletRepository, keyed by LPN
type PalletRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewPalletRepository creates a new PalletRepository
func NewPalletRepository(client *mongodb.InstrumentedClient) *PalletRepository {
	repo := &PalletRepository{collection: client.Collection("pallets")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *PalletRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "lpn", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
	}
	for _, index := range indexes {
		r.collection.CreateIndex(ctx, index)
	}
}

// Save upserts a pallet by LPN
func (r *PalletRepository) Save(ctx context.Context, pallet *domain.Pallet) error {
	pallet.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"lpn": pallet.LPN}, pallet, opts); err != nil {
		return fmt.Errorf("failed to save pallet: %w", err)
	}
	return nil
}

// FindByLPN retrieves a pallet by its license plate number
func (r *PalletRepository) FindByLPN(ctx context.Context, lpn string) (*domain.Pallet, error) {
	var pallet domain.Pallet
	err := r.collection.FindOne(ctx, bson.M{"lpn": lpn}).Decode(&pallet)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pallet, nil
}

// FindOpen retrieves pallets still accepting contents
func (r *PalletRepository) FindOpen(ctx context.Context, pagination domain.Pagination) ([]*domain.Pallet, error) {
	return r.find(ctx, bson.M{"status": domain.PalletStatusOpen}, pagination)
}

// FindByClientID retrieves pallets belonging to a client
func (r *PalletRepository) FindByClientID(ctx context.Context, clientID string, pagination domain.Pagination) ([]*domain.Pallet, error) {
	return r.find(ctx, bson.M{"clientId": clientID}, pagination)
}

func (r *PalletRepository) find(ctx context.Context, filter bson.M, pagination domain.Pagination) ([]*domain.Pallet, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var pallets []*domain.Pallet
	err = cursor.All(ctx, &pallets)
	return pallets, err
}
