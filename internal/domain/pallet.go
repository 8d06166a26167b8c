package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pallet errors
var (
	ErrPalletNotFound = errors.New("pallet not found")
	ErrPalletClosed   = errors.New("pallet is closed")
	ErrInvalidLPN     = errors.New("invalid license plate number")
)

// PalletStatus represents the lifecycle of a pallet
type PalletStatus string

const (
	PalletStatusOpen   PalletStatus = "open"
	PalletStatusClosed PalletStatus = "closed"
)

// PalletContent is a product+quantity pair on a pallet
type PalletContent struct {
	SKU      string `bson:"sku" json:"sku"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// Pallet is a container identity (LPN) that receives can target
type Pallet struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LPN           string             `bson:"lpn" json:"lpn"`
	ContainerType string             `bson:"containerType" json:"containerType"`
	LocationID    string             `bson:"locationId,omitempty" json:"locationId,omitempty"`
	ClientID      string             `bson:"clientId,omitempty" json:"clientId,omitempty"`
	Contents      []PalletContent    `bson:"contents" json:"contents"`
	Status        PalletStatus       `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewPallet creates a pallet for receiving. The container type is checked
// against the client's allowed types when rules restrict them.
func NewPallet(lpn, containerType, locationID, clientID string, rules WorkflowRules) (*Pallet, error) {
	if !strings.HasPrefix(lpn, "LPN-") {
		return nil, ErrInvalidLPN
	}
	if !rules.AllowsContainerType(containerType) {
		return nil, ErrContainerNotAllowed
	}

	now := time.Now().UTC()
	return &Pallet{
		ID:            primitive.NewObjectID(),
		LPN:           lpn,
		ContainerType: containerType,
		LocationID:    locationID,
		ClientID:      clientID,
		Contents:      make([]PalletContent, 0),
		Status:        PalletStatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// GenerateLPN creates a new license plate number
func GenerateLPN() string {
	return fmt.Sprintf("LPN-%s", time.Now().UTC().Format("20060102-150405.000"))
}

// AddContent adds quantity of a SKU, merging with an existing content line
func (p *Pallet) AddContent(sku string, quantity int) error {
	if p.Status != PalletStatusOpen {
		return ErrPalletClosed
	}
	if quantity <= 0 {
		return ErrQuantityNotPositive
	}

	for i := range p.Contents {
		if p.Contents[i].SKU == sku {
			p.Contents[i].Quantity += quantity
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	p.Contents = append(p.Contents, PalletContent{SKU: sku, Quantity: quantity})
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// MoveTo relocates the pallet as a unit
func (p *Pallet) MoveTo(locationID string) {
	p.LocationID = locationID
	p.UpdatedAt = time.Now().UTC()
}

// Close closes the pallet to further receives
func (p *Pallet) Close() {
	p.Status = PalletStatusClosed
	p.UpdatedAt = time.Now().UTC()
}

// TotalQuantity returns the total units on the pallet
func (p *Pallet) TotalQuantity() int {
	total := 0
	for _, c := range p.Contents {
		total += c.Quantity
	}
	return total
}
