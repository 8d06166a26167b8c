package domain

import "time"

// DomainEvent represents a domain event interface
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// OrderCreatedEvent is emitted when a new inbound order is created
type OrderCreatedEvent struct {
	OrderID         string     `json:"orderId"`
	ReferenceNumber string     `json:"referenceNumber"`
	Supplier        string     `json:"supplier"`
	ClientID        string     `json:"clientId,omitempty"`
	ItemCount       int        `json:"itemCount"`
	ExpectedDate    *time.Time `json:"expectedDate,omitempty"`
	OccurredAt_     time.Time  `json:"occurredAt"`
}

func (e *OrderCreatedEvent) EventType() string     { return "inbound.order.created" }
func (e *OrderCreatedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// OrderStatusChangedEvent is emitted on every status transition. Trigger
// distinguishes user-driven transitions from the mark-complete shortcut
// and the automatic completion.
type OrderStatusChangedEvent struct {
	OrderID     string    `json:"orderId"`
	FromStatus  string    `json:"fromStatus"`
	ToStatus    string    `json:"toStatus"`
	Trigger     string    `json:"trigger"` // user, mark_complete, auto
	UserID      string    `json:"userId,omitempty"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *OrderStatusChangedEvent) EventType() string {
	if e.ToStatus == string(OrderStatusReceived) {
		return "inbound.order.received"
	}
	return "inbound.order.status-changed"
}
func (e *OrderStatusChangedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// ItemReceivedEvent is emitted when quantity is received against a line
type ItemReceivedEvent struct {
	OrderID     string    `json:"orderId"`
	LineItemID  string    `json:"lineItemId"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	TotalOnLine int       `json:"totalOnLine"`
	Mode        string    `json:"mode"` // plain, lot, pallet
	LotNumber   string    `json:"lotNumber,omitempty"`
	LPN         string    `json:"lpn,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	ReceivedAt  time.Time `json:"receivedAt"`
}

func (e *ItemReceivedEvent) EventType() string {
	switch e.Mode {
	case ReceiveModeLot:
		return "inbound.item.lot-received"
	case ReceiveModePallet:
		return "inbound.item.received-to-pallet"
	default:
		return "inbound.item.received"
	}
}
func (e *ItemReceivedEvent) OccurredAt() time.Time { return e.ReceivedAt }

// ItemRejectedEvent is emitted when quantity is rejected on a line
type ItemRejectedEvent struct {
	OrderID     string    `json:"orderId"`
	LineItemID  string    `json:"lineItemId"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *ItemRejectedEvent) EventType() string     { return "inbound.item.rejected" }
func (e *ItemRejectedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// InspectionHoldEvent is emitted when an inspection hold is placed after
// a receive path completes under inspection-required workflow rules
type InspectionHoldEvent struct {
	OrderID     string    `json:"orderId"`
	LineItemID  string    `json:"lineItemId"`
	SKU         string    `json:"sku"`
	Reason      string    `json:"reason"`
	UserID      string    `json:"userId,omitempty"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *InspectionHoldEvent) EventType() string     { return "inbound.inspection.hold-placed" }
func (e *InspectionHoldEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// PutawayAssignmentCreatedEvent is emitted when a put-away assignment is
// built for an order
type PutawayAssignmentCreatedEvent struct {
	AssignmentID string    `json:"assignmentId"`
	OrderID      string    `json:"orderId"`
	ItemCount    int       `json:"itemCount"`
	OccurredAt_  time.Time `json:"occurredAt"`
}

func (e *PutawayAssignmentCreatedEvent) EventType() string     { return "putaway.assignment.created" }
func (e *PutawayAssignmentCreatedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// PutawayItemConfirmedEvent is emitted when an item is confirmed into a
// sublocation
type PutawayItemConfirmedEvent struct {
	AssignmentID  string    `json:"assignmentId"`
	OrderID       string    `json:"orderId"`
	SKU           string    `json:"sku"`
	Quantity      int       `json:"quantity"`
	LocationID    string    `json:"locationId"`
	SublocationID string    `json:"sublocationId"`
	UserID        string    `json:"userId,omitempty"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *PutawayItemConfirmedEvent) EventType() string     { return "putaway.item-confirmed" }
func (e *PutawayItemConfirmedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// ScanLoggedEvent is emitted for every scan, hit or miss
type ScanLoggedEvent struct {
	ScanID      string    `json:"scanId"`
	OrderID     string    `json:"orderId,omitempty"`
	Barcode     string    `json:"barcode"`
	Stage       string    `json:"stage"`
	Outcome     string    `json:"outcome"`
	UserID      string    `json:"userId,omitempty"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *ScanLoggedEvent) EventType() string     { return "scan.logged" }
func (e *ScanLoggedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// DamageReportCreatedEvent is emitted when a damage report is filed
type DamageReportCreatedEvent struct {
	ReportID    string    `json:"reportId"`
	OrderID     string    `json:"orderId"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	UserID      string    `json:"userId,omitempty"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *DamageReportCreatedEvent) EventType() string     { return "damage.report.created" }
func (e *DamageReportCreatedEvent) OccurredAt() time.Time { return e.OccurredAt_ }
