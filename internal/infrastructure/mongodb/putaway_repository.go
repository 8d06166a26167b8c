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

// PutawayRepository is the MongoDB implementation of
// domain.PutawayAssignmentRepository
type PutawayRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewPutawayRepository creates a new PutawayRepository
func NewPutawayRepository(client *mongodb.InstrumentedClient) *PutawayRepository {
	repo := &PutawayRepository{collection: client.Collection("putaway_assignments")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *PutawayRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assignmentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "items.confirmed", Value: 1}}},
	}
	for _, index := range indexes {
		r.collection.CreateIndex(ctx, index)
	}
}

// Save upserts an assignment by assignmentId
func (r *PutawayRepository) Save(ctx context.Context, assignment *domain.PutawayAssignment) error {
	assignment.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"assignmentId": assignment.AssignmentID}, assignment, opts); err != nil {
		return fmt.Errorf("failed to save putaway assignment: %w", err)
	}
	return nil
}

// FindByID retrieves an assignment by its assignment ID
func (r *PutawayRepository) FindByID(ctx context.Context, assignmentID string) (*domain.PutawayAssignment, error) {
	return r.findOne(ctx, bson.M{"assignmentId": assignmentID})
}

// FindByOrderID retrieves the assignment for an order
func (r *PutawayRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.PutawayAssignment, error) {
	return r.findOne(ctx, bson.M{"orderId": orderID})
}

func (r *PutawayRepository) findOne(ctx context.Context, filter bson.M) (*domain.PutawayAssignment, error) {
	var assignment domain.PutawayAssignment
	err := r.collection.FindOne(ctx, filter).Decode(&assignment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CountPending counts assignments with at least one unconfirmed item
func (r *PutawayRepository) CountPending(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"items.confirmed": false})
}
