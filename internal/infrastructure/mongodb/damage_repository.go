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

// DamageRepository is the MongoDB implementation of
// domain.DamageReportRepository
type DamageRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewDamageRepository creates a new DamageRepository
func NewDamageRepository(client *mongodb.InstrumentedClient) *DamageRepository {
	repo := &DamageRepository{collection: client.Collection("damage_reports")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *DamageRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reportId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "orderId", Value: 1}}},
		{Keys: bson.D{{Key: "sku", Value: 1}}},
		{Keys: bson.D{{Key: "resolved", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	for _, index := range indexes {
		r.collection.CreateIndex(ctx, index)
	}
}

// Save upserts a report by reportId
func (r *DamageRepository) Save(ctx context.Context, report *domain.DamageReport) error {
	report.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"reportId": report.ReportID}, report, opts); err != nil {
		return fmt.Errorf("failed to save damage report: %w", err)
	}
	return nil
}

// FindByID retrieves a report by its report ID
func (r *DamageRepository) FindByID(ctx context.Context, reportID string) (*domain.DamageReport, error) {
	var report domain.DamageReport
	err := r.collection.FindOne(ctx, bson.M{"reportId": reportID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Find retrieves reports matching a filter, newest first
func (r *DamageRepository) Find(ctx context.Context, filter domain.DamageReportFilter, pagination domain.Pagination) ([]*domain.DamageReport, error) {
	mongoFilter := bson.M{}
	if filter.OrderID != nil {
		mongoFilter["orderId"] = *filter.OrderID
	}
	if filter.SKU != nil {
		mongoFilter["sku"] = *filter.SKU
	}
	if filter.Resolved != nil {
		mongoFilter["resolved"] = *filter.Resolved
	}
	if filter.FromDate != nil || filter.ToDate != nil {
		dateRange := bson.M{}
		if filter.FromDate != nil {
			dateRange["$gte"] = *filter.FromDate
		}
		if filter.ToDate != nil {
			dateRange["$lt"] = *filter.ToDate
		}
		mongoFilter["createdAt"] = dateRange
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())
	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var reports []*domain.DamageReport
	err = cursor.All(ctx, &reports)
	return reports, err
}

// CountOpen counts unresolved reports
func (r *DamageRepository) CountOpen(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"resolved": false})
}
