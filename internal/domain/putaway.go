package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Putaway errors
var (
	ErrAssignmentNotFound     = errors.New("putaway assignment not found")
	ErrPutawayItemNotFound    = errors.New("putaway item not found in assignment")
	ErrAlreadyConfirmed       = errors.New("putaway item already confirmed")
	ErrNoSublocationSelected  = errors.New("no sublocation selected for putaway item")
	ErrNothingReceivedToStore = errors.New("order has no received quantity to put away")
)

// PutawayItem is one received line awaiting placement into a sublocation.
// Confirmation is irreversible; there is no unconfirm.
type PutawayItem struct {
	LineItemID            string     `bson:"lineItemId" json:"lineItemId"`
	SKU                   string     `bson:"sku" json:"sku"`
	ProductName           string     `bson:"productName" json:"productName"`
	Quantity              int        `bson:"quantity" json:"quantity"`
	SuggestedSublocation  string     `bson:"suggestedSublocation,omitempty" json:"suggestedSublocation,omitempty"`
	SuggestionReason      string     `bson:"suggestionReason,omitempty" json:"suggestionReason,omitempty"`
	SelectedSublocationID string     `bson:"selectedSublocationId,omitempty" json:"selectedSublocationId,omitempty"`
	Confirmed             bool       `bson:"confirmed" json:"confirmed"`
	ConfirmedAt           *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	ConfirmedBy           string     `bson:"confirmedBy,omitempty" json:"confirmedBy,omitempty"`
}

// PutawayAssignment groups the putaway items of one order at one location
type PutawayAssignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssignmentID string             `bson:"assignmentId" json:"assignmentId"`
	OrderID      string             `bson:"orderId" json:"orderId"`
	LocationID   string             `bson:"locationId" json:"locationId"`
	Items        []PutawayItem      `bson:"items" json:"items"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
	DomainEvents []DomainEvent      `bson:"-" json:"-"`
}

// NewPutawayAssignment builds an assignment from an order's received
// lines: one item per line with QtyReceived > 0, carrying a suggestion
// when the location can produce one.
func NewPutawayAssignment(order *InboundOrder, location *Location) (*PutawayAssignment, error) {
	items := make([]PutawayItem, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		if li.QtyReceived <= 0 {
			continue
		}
		item := PutawayItem{
			LineItemID:  li.LineItemID,
			SKU:         li.SKU,
			ProductName: li.ProductName,
			Quantity:    li.QtyReceived,
		}
		if suggestion, err := location.SuggestSublocation(li.SKU, li.QtyReceived); err == nil {
			item.SuggestedSublocation = suggestion.SublocationID
			item.SuggestionReason = suggestion.Reason
			item.SelectedSublocationID = suggestion.SublocationID
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, ErrNothingReceivedToStore
	}

	now := time.Now().UTC()
	assignment := &PutawayAssignment{
		ID:           primitive.NewObjectID(),
		AssignmentID: "PA-" + uuid.New().String(),
		OrderID:      order.OrderID,
		LocationID:   location.LocationID,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
		DomainEvents: make([]DomainEvent, 0),
	}

	assignment.addDomainEvent(&PutawayAssignmentCreatedEvent{
		AssignmentID: assignment.AssignmentID,
		OrderID:      order.OrderID,
		ItemCount:    len(items),
		OccurredAt_:  now,
	})

	return assignment, nil
}

// GetItem returns a putaway item by line item ID
func (a *PutawayAssignment) GetItem(lineItemID string) *PutawayItem {
	for i := range a.Items {
		if a.Items[i].LineItemID == lineItemID {
			return &a.Items[i]
		}
	}
	return nil
}

// GetUnconfirmedItemBySKU returns the first unconfirmed item for a SKU
func (a *PutawayAssignment) GetUnconfirmedItemBySKU(sku string) *PutawayItem {
	for i := range a.Items {
		if a.Items[i].SKU == sku && !a.Items[i].Confirmed {
			return &a.Items[i]
		}
	}
	return nil
}

// SelectSublocation overrides the sublocation for an unconfirmed item
func (a *PutawayAssignment) SelectSublocation(lineItemID, sublocationID string) error {
	item := a.GetItem(lineItemID)
	if item == nil {
		return ErrPutawayItemNotFound
	}
	if item.Confirmed {
		return ErrAlreadyConfirmed
	}
	item.SelectedSublocationID = sublocationID
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// ConfirmItem irrevocably confirms an item into its selected sublocation
func (a *PutawayAssignment) ConfirmItem(lineItemID, userID string) error {
	item := a.GetItem(lineItemID)
	if item == nil {
		return ErrPutawayItemNotFound
	}
	if item.Confirmed {
		return ErrAlreadyConfirmed
	}
	if item.SelectedSublocationID == "" {
		return ErrNoSublocationSelected
	}

	now := time.Now().UTC()
	item.Confirmed = true
	item.ConfirmedAt = &now
	item.ConfirmedBy = userID
	a.UpdatedAt = now

	a.addDomainEvent(&PutawayItemConfirmedEvent{
		AssignmentID:  a.AssignmentID,
		OrderID:       a.OrderID,
		SKU:           item.SKU,
		Quantity:      item.Quantity,
		LocationID:    a.LocationID,
		SublocationID: item.SelectedSublocationID,
		UserID:        userID,
		OccurredAt_:   now,
	})

	return nil
}

// ConfirmableItems returns the items eligible for a bulk confirm: not yet
// confirmed and with a sublocation selected
func (a *PutawayAssignment) ConfirmableItems() []*PutawayItem {
	eligible := make([]*PutawayItem, 0, len(a.Items))
	for i := range a.Items {
		if !a.Items[i].Confirmed && a.Items[i].SelectedSublocationID != "" {
			eligible = append(eligible, &a.Items[i])
		}
	}
	return eligible
}

// IsComplete reports whether every item is confirmed
func (a *PutawayAssignment) IsComplete() bool {
	for i := range a.Items {
		if !a.Items[i].Confirmed {
			return false
		}
	}
	return true
}

// addDomainEvent adds a domain event
func (a *PutawayAssignment) addDomainEvent(event DomainEvent) {
	a.DomainEvents = append(a.DomainEvents, event)
}

// GetDomainEvents returns all domain events
func (a *PutawayAssignment) GetDomainEvents() []DomainEvent {
	return a.DomainEvents
}

// ClearDomainEvents clears all domain events
func (a *PutawayAssignment) ClearDomainEvents() {
	a.DomainEvents = make([]DomainEvent, 0)
}
