package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location errors
var (
	ErrLocationNotFound      = errors.New("location not found")
	ErrSublocationNotFound   = errors.New("sublocation not found")
	ErrSublocationAtCapacity = errors.New("sublocation is at capacity")
)

// SublocationStock is a SKU holding within a sublocation
type SublocationStock struct {
	SKU      string `bson:"sku" json:"sku"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// Sublocation is a bin or shelf subdivision within a location
type Sublocation struct {
	SublocationID string             `bson:"sublocationId" json:"sublocationId"`
	Name          string             `bson:"name" json:"name"`
	Capacity      int                `bson:"capacity" json:"capacity"`
	Stock         []SublocationStock `bson:"stock,omitempty" json:"stock,omitempty"`
}

// UsedCapacity returns the units currently held in the sublocation
func (s *Sublocation) UsedCapacity() int {
	used := 0
	for _, st := range s.Stock {
		used += st.Quantity
	}
	return used
}

// FreeCapacity returns the units the sublocation can still take, floored
// at zero
func (s *Sublocation) FreeCapacity() int {
	free := s.Capacity - s.UsedCapacity()
	if free < 0 {
		return 0
	}
	return free
}

// HoldsSKU reports whether the sublocation already holds the SKU
func (s *Sublocation) HoldsSKU(sku string) bool {
	for _, st := range s.Stock {
		if st.SKU == sku && st.Quantity > 0 {
			return true
		}
	}
	return false
}

// AddStock places quantity of a SKU into the sublocation
func (s *Sublocation) AddStock(sku string, quantity int) error {
	if quantity <= 0 {
		return ErrQuantityNotPositive
	}
	if quantity > s.FreeCapacity() {
		return ErrSublocationAtCapacity
	}
	for i := range s.Stock {
		if s.Stock[i].SKU == sku {
			s.Stock[i].Quantity += quantity
			return nil
		}
	}
	s.Stock = append(s.Stock, SublocationStock{SKU: sku, Quantity: quantity})
	return nil
}

// LocationType distinguishes storage areas from docks
type LocationType string

const (
	LocationTypeStorage   LocationType = "storage"
	LocationTypeDock      LocationType = "dock"
	LocationTypeReceiving LocationType = "receiving"
)

// Location is a physical warehouse area containing sublocations
type Location struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LocationID   string             `bson:"locationId" json:"locationId"`
	Name         string             `bson:"name" json:"name"`
	Type         LocationType       `bson:"type" json:"type"`
	WarehouseID  string             `bson:"warehouseId,omitempty" json:"warehouseId,omitempty"`
	Sublocations []Sublocation      `bson:"sublocations" json:"sublocations"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GetSublocation returns a sublocation by ID
func (l *Location) GetSublocation(sublocationID string) *Sublocation {
	for i := range l.Sublocations {
		if l.Sublocations[i].SublocationID == sublocationID {
			return &l.Sublocations[i]
		}
	}
	return nil
}

// PutawaySuggestion is a suggested sublocation with its reason
type PutawaySuggestion struct {
	SublocationID string `json:"sublocationId"`
	Name          string `json:"name"`
	Reason        string `json:"reason"`
}

// SuggestSublocation picks a sublocation for putting away quantity of a
// SKU: prefer one already holding the SKU with room for the quantity,
// else the one with the most free capacity.
func (l *Location) SuggestSublocation(sku string, quantity int) (*PutawaySuggestion, error) {
	var sameSKU *Sublocation
	var mostFree *Sublocation

	for i := range l.Sublocations {
		sub := &l.Sublocations[i]
		if sub.FreeCapacity() < quantity {
			continue
		}
		if sub.HoldsSKU(sku) && sameSKU == nil {
			sameSKU = sub
		}
		if mostFree == nil || sub.FreeCapacity() > mostFree.FreeCapacity() {
			mostFree = sub
		}
	}

	if sameSKU != nil {
		return &PutawaySuggestion{
			SublocationID: sameSKU.SublocationID,
			Name:          sameSKU.Name,
			Reason:        "already holds " + sku,
		}, nil
	}
	if mostFree != nil {
		return &PutawaySuggestion{
			SublocationID: mostFree.SublocationID,
			Name:          mostFree.Name,
			Reason:        "most free capacity",
		}, nil
	}
	return nil, ErrSublocationAtCapacity
}
