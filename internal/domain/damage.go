package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Damage report errors
var (
	ErrDamageReportNotFound = errors.New("damage report not found")
	ErrDamageReasonRequired = errors.New("damage reason is required")
)

// DamageReport records damaged quantity found during receiving, keyed by
// order and SKU
type DamageReport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID    string             `bson:"reportId" json:"reportId"`
	OrderID     string             `bson:"orderId" json:"orderId"`
	SKU         string             `bson:"sku" json:"sku"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Reason      string             `bson:"reason" json:"reason"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoURLs   []string           `bson:"photoUrls,omitempty" json:"photoUrls,omitempty"`
	Resolved    bool               `bson:"resolved" json:"resolved"`
	ReportedBy  string             `bson:"reportedBy,omitempty" json:"reportedBy,omitempty"`
	WarehouseID string             `bson:"warehouseId,omitempty" json:"warehouseId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewDamageReport creates a damage report
func NewDamageReport(orderID, sku string, quantity int, reason, notes, reportedBy, warehouseID string) (*DamageReport, error) {
	if quantity <= 0 {
		return nil, ErrQuantityNotPositive
	}
	if reason == "" {
		return nil, ErrDamageReasonRequired
	}

	now := time.Now().UTC()
	return &DamageReport{
		ID:          primitive.NewObjectID(),
		ReportID:    "DMG-" + uuid.New().String(),
		OrderID:     orderID,
		SKU:         sku,
		Quantity:    quantity,
		Reason:      reason,
		Notes:       notes,
		ReportedBy:  reportedBy,
		WarehouseID: warehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetResolved flips the resolved flag
func (d *DamageReport) SetResolved(resolved bool) {
	d.Resolved = resolved
	d.UpdatedAt = time.Now().UTC()
}

// DamageReportFilter narrows damage report listings
type DamageReportFilter struct {
	OrderID  *string
	SKU      *string
	Resolved *bool
	FromDate *time.Time
	ToDate   *time.Time
}
