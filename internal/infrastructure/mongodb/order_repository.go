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

// OrderRepository is the MongoDB implementation of
// domain.InboundOrderRepository. Orders are upserted by their natural
// key, orderId.
type OrderRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(client *mongodb.InstrumentedClient) *OrderRepository {
	repo := &OrderRepository{collection: client.Collection("inbound_orders")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *OrderRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
		{Keys: bson.D{{Key: "referenceNumber", Value: 1}}},
		{Keys: bson.D{{Key: "expectedDate", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	for _, index := range indexes {
		r.collection.CreateIndex(ctx, index)
	}
}

// Save upserts an order by orderId
func (r *OrderRepository) Save(ctx context.Context, order *domain.InboundOrder) error {
	order.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"orderId": order.OrderID}
	if _, err := r.collection.ReplaceOne(ctx, filter, order, opts); err != nil {
		return fmt.Errorf("failed to save inbound order: %w", err)
	}
	return nil
}

// FindByID retrieves an order by its order ID
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (*domain.InboundOrder, error) {
	var order domain.InboundOrder
	err := r.collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByStatus retrieves orders with the given status
func (r *OrderRepository) FindByStatus(ctx context.Context, status domain.OrderStatus, pagination domain.Pagination) ([]*domain.InboundOrder, error) {
	return r.find(ctx, bson.M{"status": status}, pagination)
}

// FindByClientID retrieves orders belonging to a client
func (r *OrderRepository) FindByClientID(ctx context.Context, clientID string, pagination domain.Pagination) ([]*domain.InboundOrder, error) {
	return r.find(ctx, bson.M{"clientId": clientID}, pagination)
}

// FindAll retrieves orders page by page
func (r *OrderRepository) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.InboundOrder, error) {
	return r.find(ctx, bson.M{}, pagination)
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M, pagination domain.Pagination) ([]*domain.InboundOrder, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var orders []*domain.InboundOrder
	err = cursor.All(ctx, &orders)
	return orders, err
}

// FindExpectedBetween retrieves orders expected within [from, to)
func (r *OrderRepository) FindExpectedBetween(ctx context.Context, from, to time.Time) ([]*domain.InboundOrder, error) {
	filter := bson.M{"expectedDate": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "expectedDate", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var orders []*domain.InboundOrder
	err = cursor.All(ctx, &orders)
	return orders, err
}

// CountByStatus aggregates order counts per status
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status domain.OrderStatus `bson:"_id"`
		Count  int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[domain.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Delete removes an order by its order ID
func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"orderId": orderID})
	return err
}
