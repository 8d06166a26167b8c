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

// ScanEventRepository is the MongoDB implementation of
// domain.ScanEventRepository. Scan events are append-only audit records.
type ScanEventRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewScanEventRepository creates a new ScanEventRepository
func NewScanEventRepository(client *mongodb.InstrumentedClient) *ScanEventRepository {
	repo := &ScanEventRepository{collection: client.Collection("scan_events")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ScanEventRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "scanId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "scannedAt", Value: 1}}},
		{Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "scannedAt", Value: -1}}},
	}
	for _, index := range indexes {
		r.collection.CreateIndex(ctx, index)
	}
}

// Save appends a scan event
func (r *ScanEventRepository) Save(ctx context.Context, event *domain.ScanEvent) error {
	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to save scan event: %w", err)
	}
	return nil
}

// FindBySessionID retrieves a session's scans in scan order
func (r *ScanEventRepository) FindBySessionID(ctx context.Context, sessionID string) ([]*domain.ScanEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scannedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var events []*domain.ScanEvent
	err = cursor.All(ctx, &events)
	return events, err
}

// FindByOrderID retrieves an order's scans, newest first
func (r *ScanEventRepository) FindByOrderID(ctx context.Context, orderID string, pagination domain.Pagination) ([]*domain.ScanEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "scannedAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())
	cursor, err := r.collection.Find(ctx, bson.M{"orderId": orderID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var events []*domain.ScanEvent
	err = cursor.All(ctx, &events)
	return events, err
}

// ScanSessionRepository is the MongoDB implementation of
// domain.ScanSessionRepository
type ScanSessionRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewScanSessionRepository creates a new ScanSessionRepository
func NewScanSessionRepository(client *mongodb.InstrumentedClient) *ScanSessionRepository {
	repo := &ScanSessionRepository{collection: client.Collection("scan_sessions")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ScanSessionRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "orderId", Value: 1}}},
		{Keys: bson.D{{Key: "phase", Value: 1}}},
	}
	for _, index := range indexes {
		r.collection.CreateIndex(ctx, index)
	}
}

// Save upserts a session by sessionId
func (r *ScanSessionRepository) Save(ctx context.Context, session *domain.ScanSession) error {
	session.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"sessionId": session.SessionID}, session, opts); err != nil {
		return fmt.Errorf("failed to save scan session: %w", err)
	}
	return nil
}

// FindByID retrieves a session by its session ID
func (r *ScanSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	var session domain.ScanSession
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
