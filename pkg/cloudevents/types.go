package cloudevents

import (
	"time"
)

// EventType constants for inbound receiving domain events
const (
	// Order lifecycle events
	OrderCreated       = "inbound.order.created"
	OrderStatusChanged = "inbound.order.status-changed"
	OrderReceived      = "inbound.order.received"

	// Line item events
	ItemReceived         = "inbound.item.received"
	ItemLotReceived      = "inbound.item.lot-received"
	ItemReceivedToPallet = "inbound.item.received-to-pallet"
	ItemRejected         = "inbound.item.rejected"

	// Inspection events
	InspectionHoldPlaced = "inbound.inspection.hold-placed"

	// Put-away events
	PutawayAssignmentCreated = "putaway.assignment.created"
	PutawayItemConfirmed     = "putaway.item-confirmed"

	// Scanning events
	ScanLogged = "scan.logged"

	// Damage events
	DamageReportCreated = "damage.report.created"
)

// Source constants for event sources
const (
	SourceInbound = "/threepl/inbound-service"
)

// CloudEvent represents a CloudEvents v1.0 compliant event
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Domain extensions
	CorrelationID string `json:"correlationid,omitempty"`
	OrderID       string `json:"orderid,omitempty"`
	ClientID      string `json:"clientid,omitempty"`
	WarehouseID   string `json:"warehouseid,omitempty"`

	// W3C Trace Context
	TraceParent string `json:"traceparent,omitempty"`
	TraceState  string `json:"tracestate,omitempty"`
}

// WithOrder sets order scoping fields and returns the event
func (e *CloudEvent) WithOrder(orderID string) *CloudEvent {
	e.OrderID = orderID
	return e
}

// WithClient sets client and warehouse scoping and returns the event
func (e *CloudEvent) WithClient(clientID, warehouseID string) *CloudEvent {
	e.ClientID = clientID
	e.WarehouseID = warehouseID
	return e
}

// WithCorrelation sets the correlation ID and returns the event
func (e *CloudEvent) WithCorrelation(correlationID string) *CloudEvent {
	e.CorrelationID = correlationID
	return e
}

// OrderCreatedData represents the data payload for OrderCreated events
type OrderCreatedData struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	ClientID    string    `json:"clientId"`
	Supplier    string    `json:"supplier"`
	LineCount   int       `json:"lineCount"`
	ExpectedAt  time.Time `json:"expectedAt,omitempty"`
}

// OrderStatusChangedData represents the data payload for OrderStatusChanged events
type OrderStatusChangedData struct {
	OrderID    string `json:"orderId"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	Trigger    string `json:"trigger"` // "user" or "auto"
	UserID     string `json:"userId,omitempty"`
}

// ItemReceivedData represents the data payload for item receive events
type ItemReceivedData struct {
	OrderID     string `json:"orderId"`
	LineItemID  string `json:"lineItemId"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	TotalOnLine int    `json:"totalOnLine"`
	Mode        string `json:"mode"` // "plain", "lot", "pallet"
	LotNumber   string `json:"lotNumber,omitempty"`
	LPN         string `json:"lpn,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// ItemRejectedData represents the data payload for ItemRejected events
type ItemRejectedData struct {
	OrderID    string `json:"orderId"`
	LineItemID string `json:"lineItemId"`
	SKU        string `json:"sku"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
	UserID     string `json:"userId,omitempty"`
}

// InspectionHoldData represents the data payload for InspectionHoldPlaced events
type InspectionHoldData struct {
	OrderID  string `json:"orderId"`
	ClientID string `json:"clientId"`
	Reason   string `json:"reason"`
}

// PutawayAssignmentData represents the data payload for PutawayAssignmentCreated events
type PutawayAssignmentData struct {
	AssignmentID string `json:"assignmentId"`
	OrderID      string `json:"orderId"`
	ItemCount    int    `json:"itemCount"`
}

// PutawayConfirmedData represents the data payload for PutawayItemConfirmed events
type PutawayConfirmedData struct {
	AssignmentID  string `json:"assignmentId"`
	OrderID       string `json:"orderId"`
	SKU           string `json:"sku"`
	Quantity      int    `json:"quantity"`
	LocationID    string `json:"locationId"`
	SublocationID string `json:"sublocationId,omitempty"`
	UserID        string `json:"userId,omitempty"`
}

// ScanLoggedData represents the data payload for ScanLogged events
type ScanLoggedData struct {
	ScanID  string `json:"scanId"`
	OrderID string `json:"orderId,omitempty"`
	Barcode string `json:"barcode"`
	Stage   string `json:"stage"`
	Outcome string `json:"outcome"`
	UserID  string `json:"userId,omitempty"`
}

// DamageReportData represents the data payload for DamageReportCreated events
type DamageReportData struct {
	ReportID   string `json:"reportId"`
	OrderID    string `json:"orderId"`
	LineItemID string `json:"lineItemId,omitempty"`
	SKU        string `json:"sku"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
	UserID     string `json:"userId,omitempty"`
}
