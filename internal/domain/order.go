package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InboundOrder errors
var (
	ErrOrderNotFound           = errors.New("inbound order not found")
	ErrInvalidOrderStatus      = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrNoLineItems             = errors.New("order must have at least one line item")
	ErrLineItemNotFound        = errors.New("line item not found in order")
	ErrChecklistEntryNotFound  = errors.New("checklist entry not found in order")
	ErrQuantityExceedsExpected = errors.New("quantity exceeds expected quantity")
	ErrQuantityNotPositive     = errors.New("quantity must be greater than zero")
	ErrReceivedTotalDecreased  = errors.New("received total cannot decrease")
	ErrOrderAlreadyReceived    = errors.New("order already received")
)

// OrderStatus represents the status of an inbound order
type OrderStatus string

const (
	OrderStatusOrdered   OrderStatus = "ordered"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusArrived   OrderStatus = "arrived"
	OrderStatusReceived  OrderStatus = "received"
)

// IsValid checks if the status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusOrdered, OrderStatusInTransit, OrderStatusArrived, OrderStatusReceived:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if the status can transition to another status.
// Transitions are strictly forward along the chain; the only skip allowed
// is arrived -> received via the mark-complete shortcut, which the chain
// already covers since arrived and received are adjacent.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	validTransitions := map[OrderStatus][]OrderStatus{
		OrderStatusOrdered:   {OrderStatusInTransit},
		OrderStatusInTransit: {OrderStatusArrived},
		OrderStatusArrived:   {OrderStatusReceived},
		OrderStatusReceived:  {},
	}

	allowedTargets, exists := validTransitions[s]
	if !exists {
		return false
	}

	for _, allowed := range allowedTargets {
		if target == allowed {
			return true
		}
	}
	return false
}

// Next returns the status that follows s in the normal flow, or s itself
// when the order is already received.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderStatusOrdered:
		return OrderStatusInTransit
	case OrderStatusInTransit:
		return OrderStatusArrived
	case OrderStatusArrived:
		return OrderStatusReceived
	default:
		return s
	}
}

// ItemBadge is the reconciliation status badge for a line item
type ItemBadge string

const (
	BadgeCompleteWithRejections ItemBadge = "complete_with_rejections"
	BadgeComplete               ItemBadge = "complete"
	BadgePartial                ItemBadge = "partial"
	BadgePending                ItemBadge = "pending"
)

// LineItem represents a single expected product line on an inbound order
type LineItem struct {
	LineItemID         string `bson:"lineItemId" json:"lineItemId"`
	SKU                string `bson:"sku" json:"sku"`
	ProductName        string `bson:"productName" json:"productName"`
	LotTrackingEnabled bool   `bson:"lotTrackingEnabled" json:"lotTrackingEnabled"`
	QtyExpected        int    `bson:"qtyExpected" json:"qtyExpected"`
	QtyReceived        int    `bson:"qtyReceived" json:"qtyReceived"`
	QtyRejected        int    `bson:"qtyRejected" json:"qtyRejected"`
	QtyDamaged         int    `bson:"qtyDamaged" json:"qtyDamaged"`
	RejectionReason    string `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	RejectionNotes     string `bson:"rejectionNotes,omitempty" json:"rejectionNotes,omitempty"`
}

// Remaining returns the quantity still to be accounted for, floored at zero
func (li *LineItem) Remaining() int {
	remaining := li.QtyExpected - li.QtyReceived - li.QtyRejected - li.QtyDamaged
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsComplete returns true when nothing remains to be received
func (li *LineItem) IsComplete() bool {
	return li.QtyExpected-li.QtyReceived-li.QtyRejected-li.QtyDamaged <= 0
}

// IsPartial returns true when some but not all quantity has been received
func (li *LineItem) IsPartial() bool {
	return li.QtyReceived > 0 && !li.IsComplete()
}

// IsPending returns true when no quantity has been touched yet
func (li *LineItem) IsPending() bool {
	return li.QtyReceived == 0 && li.QtyRejected == 0 && li.QtyDamaged == 0
}

// Badge returns the reconciliation badge for the line item
func (li *LineItem) Badge() ItemBadge {
	switch {
	case li.IsComplete() && li.QtyRejected > 0:
		return BadgeCompleteWithRejections
	case li.IsComplete():
		return BadgeComplete
	case li.IsPartial():
		return BadgePartial
	default:
		return BadgePending
	}
}

// IsFullyReceived returns true when the received quantity alone covers the
// expected quantity. This is the condition for the automatic order
// completion, stricter than IsComplete which also counts rejections and
// damage.
func (li *LineItem) IsFullyReceived() bool {
	return li.QtyReceived >= li.QtyExpected
}

// ReceiptRecord captures a single receive action against a line item
type ReceiptRecord struct {
	ReceiptID      string    `bson:"receiptId" json:"receiptId"`
	LineItemID     string    `bson:"lineItemId" json:"lineItemId"`
	SKU            string    `bson:"sku" json:"sku"`
	Quantity       int       `bson:"quantity" json:"quantity"`
	Mode           string    `bson:"mode" json:"mode"` // plain, lot, pallet
	LotNumber      string    `bson:"lotNumber,omitempty" json:"lotNumber,omitempty"`
	ExpirationDate string    `bson:"expirationDate,omitempty" json:"expirationDate,omitempty"`
	BatchNumber    string    `bson:"batchNumber,omitempty" json:"batchNumber,omitempty"`
	LPN            string    `bson:"lpn,omitempty" json:"lpn,omitempty"`
	LocationID     string    `bson:"locationId,omitempty" json:"locationId,omitempty"`
	ReceivedBy     string    `bson:"receivedBy,omitempty" json:"receivedBy,omitempty"`
	ReceivedAt     time.Time `bson:"receivedAt" json:"receivedAt"`
}

// ChecklistEntry is a verification step an operator ticks off while
// working an order. Toggling is the one optimistic mutation in the flow.
type ChecklistEntry struct {
	EntryID   string `bson:"entryId" json:"entryId"`
	Label     string `bson:"label" json:"label"`
	Completed bool   `bson:"completed" json:"completed"`
}

// InboundOrder is the aggregate root for inbound receiving
type InboundOrder struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID         string             `bson:"orderId" json:"orderId"`
	ReferenceNumber string             `bson:"referenceNumber" json:"referenceNumber"`
	Supplier        string             `bson:"supplier" json:"supplier"`
	ClientID        string             `bson:"clientId,omitempty" json:"clientId,omitempty"`
	WarehouseID     string             `bson:"warehouseId,omitempty" json:"warehouseId,omitempty"`
	Status          OrderStatus        `bson:"status" json:"status"`
	LineItems       []LineItem         `bson:"lineItems" json:"lineItems"`
	ReceiptRecords  []ReceiptRecord    `bson:"receiptRecords" json:"receiptRecords"`
	Checklist       []ChecklistEntry   `bson:"checklist,omitempty" json:"checklist,omitempty"`
	ExpectedDate    *time.Time         `bson:"expectedDate,omitempty" json:"expectedDate,omitempty"`
	ReceivedDate    *time.Time         `bson:"receivedDate,omitempty" json:"receivedDate,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	DomainEvents    []DomainEvent      `bson:"-" json:"-"`
}

// NewInboundOrder creates a new InboundOrder aggregate
func NewInboundOrder(
	orderID string,
	referenceNumber string,
	supplier string,
	clientID string,
	warehouseID string,
	lineItems []LineItem,
	expectedDate *time.Time,
) (*InboundOrder, error) {
	if len(lineItems) == 0 {
		return nil, ErrNoLineItems
	}
	for _, li := range lineItems {
		if li.QtyExpected <= 0 {
			return nil, ErrQuantityNotPositive
		}
	}

	now := time.Now().UTC()
	order := &InboundOrder{
		ID:              primitive.NewObjectID(),
		OrderID:         orderID,
		ReferenceNumber: referenceNumber,
		Supplier:        supplier,
		ClientID:        clientID,
		WarehouseID:     warehouseID,
		Status:          OrderStatusOrdered,
		LineItems:       lineItems,
		ReceiptRecords:  make([]ReceiptRecord, 0),
		ExpectedDate:    expectedDate,
		CreatedAt:       now,
		UpdatedAt:       now,
		DomainEvents:    make([]DomainEvent, 0),
	}

	order.addDomainEvent(&OrderCreatedEvent{
		OrderID:         orderID,
		ReferenceNumber: referenceNumber,
		Supplier:        supplier,
		ClientID:        clientID,
		ItemCount:       len(lineItems),
		ExpectedDate:    expectedDate,
		OccurredAt_:     now,
	})

	return order, nil
}

// TransitionTo moves the order to the target status when the transition
// is allowed. Failure leaves the order untouched.
func (o *InboundOrder) TransitionTo(target OrderStatus, trigger, userID string) error {
	if !target.IsValid() {
		return ErrInvalidOrderStatus
	}
	if !o.Status.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	from := o.Status
	o.Status = target
	if target == OrderStatusReceived {
		o.ReceivedDate = &now
	}
	o.UpdatedAt = now

	o.addDomainEvent(&OrderStatusChangedEvent{
		OrderID:     o.OrderID,
		FromStatus:  string(from),
		ToStatus:    string(target),
		Trigger:     trigger,
		UserID:      userID,
		OccurredAt_: now,
	})

	return nil
}

// Advance moves the order one step forward in the normal flow
func (o *InboundOrder) Advance(userID string) error {
	if o.Status == OrderStatusReceived {
		return ErrOrderAlreadyReceived
	}
	return o.TransitionTo(o.Status.Next(), "user", userID)
}

// MarkComplete is the operator shortcut from arrived straight to received,
// bypassing item-level verification
func (o *InboundOrder) MarkComplete(userID string) error {
	if o.Status != OrderStatusArrived {
		return ErrInvalidStatusTransition
	}
	return o.TransitionTo(OrderStatusReceived, "mark_complete", userID)
}

// AutoCompleteIfFullyReceived transitions arrived -> received when every
// line item has been fully received. This is the only transition not
// driven by an explicit user action.
func (o *InboundOrder) AutoCompleteIfFullyReceived() bool {
	if o.Status != OrderStatusArrived {
		return false
	}
	if !o.IsFullyReceived() {
		return false
	}
	if err := o.TransitionTo(OrderStatusReceived, "auto", ""); err != nil {
		return false
	}
	return true
}

// IsFullyReceived checks whether every line item is fully received
func (o *InboundOrder) IsFullyReceived() bool {
	for i := range o.LineItems {
		if !o.LineItems[i].IsFullyReceived() {
			return false
		}
	}
	return true
}

// GetLineItem returns a line item by ID
func (o *InboundOrder) GetLineItem(lineItemID string) *LineItem {
	for i := range o.LineItems {
		if o.LineItems[i].LineItemID == lineItemID {
			return &o.LineItems[i]
		}
	}
	return nil
}

// GetLineItemBySKU returns a line item by SKU
func (o *InboundOrder) GetLineItemBySKU(sku string) *LineItem {
	for i := range o.LineItems {
		if o.LineItems[i].SKU == sku {
			return &o.LineItems[i]
		}
	}
	return nil
}

// ReceiveItem records a receive against a line item. newTotal is the
// absolute received total after this action, not a delta; callers always
// submit running totals so retries and refetches stay idempotent.
func (o *InboundOrder) ReceiveItem(lineItemID string, newTotal int, mode, lotNumber, expirationDate, batchNumber, lpn, locationID, userID string) error {
	item := o.GetLineItem(lineItemID)
	if item == nil {
		return ErrLineItemNotFound
	}

	delta := newTotal - item.QtyReceived
	if delta <= 0 {
		if newTotal < item.QtyReceived {
			return ErrReceivedTotalDecreased
		}
		return ErrQuantityNotPositive
	}
	if newTotal+item.QtyRejected+item.QtyDamaged > item.QtyExpected {
		return ErrQuantityExceedsExpected
	}

	now := time.Now().UTC()
	item.QtyReceived = newTotal

	receiptID := generateReceiptID()
	o.ReceiptRecords = append(o.ReceiptRecords, ReceiptRecord{
		ReceiptID:      receiptID,
		LineItemID:     lineItemID,
		SKU:            item.SKU,
		Quantity:       delta,
		Mode:           mode,
		LotNumber:      lotNumber,
		ExpirationDate: expirationDate,
		BatchNumber:    batchNumber,
		LPN:            lpn,
		LocationID:     locationID,
		ReceivedBy:     userID,
		ReceivedAt:     now,
	})
	o.UpdatedAt = now

	o.addDomainEvent(&ItemReceivedEvent{
		OrderID:     o.OrderID,
		LineItemID:  lineItemID,
		SKU:         item.SKU,
		Quantity:    delta,
		TotalOnLine: newTotal,
		Mode:        mode,
		LotNumber:   lotNumber,
		LPN:         lpn,
		UserID:      userID,
		ReceivedAt:  now,
	})

	return nil
}

// RejectItem accumulates rejected quantity on a line item
func (o *InboundOrder) RejectItem(lineItemID string, qty int, reason, notes, userID string) error {
	item := o.GetLineItem(lineItemID)
	if item == nil {
		return ErrLineItemNotFound
	}
	if qty <= 0 {
		return ErrQuantityNotPositive
	}
	if item.QtyReceived+item.QtyRejected+qty+item.QtyDamaged > item.QtyExpected {
		return ErrQuantityExceedsExpected
	}

	now := time.Now().UTC()
	item.QtyRejected += qty
	item.RejectionReason = reason
	item.RejectionNotes = notes
	o.UpdatedAt = now

	o.addDomainEvent(&ItemRejectedEvent{
		OrderID:     o.OrderID,
		LineItemID:  lineItemID,
		SKU:         item.SKU,
		Quantity:    qty,
		Reason:      reason,
		Notes:       notes,
		UserID:      userID,
		OccurredAt_: now,
	})

	return nil
}

// RecordDamage accumulates damaged quantity on the line matching the SKU.
// Damage reports are filed by SKU rather than line item ID.
func (o *InboundOrder) RecordDamage(sku string, qty int) error {
	item := o.GetLineItemBySKU(sku)
	if item == nil {
		return ErrLineItemNotFound
	}
	if qty <= 0 {
		return ErrQuantityNotPositive
	}
	if item.QtyReceived+item.QtyRejected+item.QtyDamaged+qty > item.QtyExpected {
		return ErrQuantityExceedsExpected
	}

	item.QtyDamaged += qty
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// GetChecklistEntry returns a checklist entry by ID
func (o *InboundOrder) GetChecklistEntry(entryID string) *ChecklistEntry {
	for i := range o.Checklist {
		if o.Checklist[i].EntryID == entryID {
			return &o.Checklist[i]
		}
	}
	return nil
}

// SetChecklistEntry sets the completed flag of a checklist entry
func (o *InboundOrder) SetChecklistEntry(entryID string, completed bool) error {
	entry := o.GetChecklistEntry(entryID)
	if entry == nil {
		return ErrChecklistEntryNotFound
	}
	entry.Completed = completed
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// TotalExpected returns the total expected quantity across all lines
func (o *InboundOrder) TotalExpected() int {
	total := 0
	for _, li := range o.LineItems {
		total += li.QtyExpected
	}
	return total
}

// TotalReceived returns the total received quantity across all lines
func (o *InboundOrder) TotalReceived() int {
	total := 0
	for _, li := range o.LineItems {
		total += li.QtyReceived
	}
	return total
}

// addDomainEvent adds a domain event
func (o *InboundOrder) addDomainEvent(event DomainEvent) {
	o.DomainEvents = append(o.DomainEvents, event)
}

// GetDomainEvents returns all domain events
func (o *InboundOrder) GetDomainEvents() []DomainEvent {
	return o.DomainEvents
}

// ClearDomainEvents clears all domain events
func (o *InboundOrder) ClearDomainEvents() {
	o.DomainEvents = make([]DomainEvent, 0)
}

func generateReceiptID() string {
	return "RCV-" + time.Now().UTC().Format("20060102150405.000000")
}
