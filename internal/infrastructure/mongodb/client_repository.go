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

// ClientRepository is the MongoDB implementation of
// domain.ClientRepository
type ClientRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(client *mongodb.InstrumentedClient) *ClientRepository {
	repo := &ClientRepository{collection: client.Collection("clients")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ClientRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "clientId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "active", Value: 1}}},
	}
	for _, index := range indexes {
		r.collection.CreateIndex(ctx, index)
	}
}

// Save upserts a client by clientId
func (r *ClientRepository) Save(ctx context.Context, client *domain.Client) error {
	client.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"clientId": client.ClientID}, client, opts); err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// FindByID retrieves a client by its client ID
func (r *ClientRepository) FindByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"clientId": clientID})
}

// FindByCode retrieves a client by its unique code
func (r *ClientRepository) FindByCode(ctx context.Context, code string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	var client domain.Client
	err := r.collection.FindOne(ctx, filter).Decode(&client)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindAll retrieves clients page by page
func (r *ClientRepository) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Client, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "code", Value: 1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var clients []*domain.Client
	err = cursor.All(ctx, &clients)
	return clients, err
}
