package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates CloudEvents for inbound domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new CloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *CloudEvent {
	return &CloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}
}

// CreateOrderCreatedEvent creates an OrderCreated event
func (f *EventFactory) CreateOrderCreatedEvent(
	ctx context.Context,
	orderID string,
	orderNumber string,
	clientID string,
	supplier string,
	lineCount int,
	expectedAt time.Time,
) *CloudEvent {
	data := OrderCreatedData{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		ClientID:    clientID,
		Supplier:    supplier,
		LineCount:   lineCount,
		ExpectedAt:  expectedAt,
	}
	return f.CreateEvent(ctx, OrderCreated, "order/"+orderID, data).WithOrder(orderID)
}

// CreateOrderStatusChangedEvent creates an OrderStatusChanged event
func (f *EventFactory) CreateOrderStatusChangedEvent(
	ctx context.Context,
	orderID string,
	fromStatus string,
	toStatus string,
	trigger string,
	userID string,
) *CloudEvent {
	data := OrderStatusChangedData{
		OrderID:    orderID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Trigger:    trigger,
		UserID:     userID,
	}
	eventType := OrderStatusChanged
	if toStatus == "received" {
		eventType = OrderReceived
	}
	return f.CreateEvent(ctx, eventType, "order/"+orderID, data).WithOrder(orderID)
}

// CreateItemReceivedEvent creates an item receive event for the given mode
func (f *EventFactory) CreateItemReceivedEvent(
	ctx context.Context,
	orderID string,
	lineItemID string,
	sku string,
	quantity int,
	totalOnLine int,
	mode string,
	lotNumber string,
	lpn string,
	userID string,
) *CloudEvent {
	data := ItemReceivedData{
		OrderID:     orderID,
		LineItemID:  lineItemID,
		SKU:         sku,
		Quantity:    quantity,
		TotalOnLine: totalOnLine,
		Mode:        mode,
		LotNumber:   lotNumber,
		LPN:         lpn,
		UserID:      userID,
	}

	eventType := ItemReceived
	switch mode {
	case "lot":
		eventType = ItemLotReceived
	case "pallet":
		eventType = ItemReceivedToPallet
	}
	return f.CreateEvent(ctx, eventType, "order/"+orderID+"/item/"+lineItemID, data).WithOrder(orderID)
}

// CreateItemRejectedEvent creates an ItemRejected event
func (f *EventFactory) CreateItemRejectedEvent(
	ctx context.Context,
	orderID string,
	lineItemID string,
	sku string,
	quantity int,
	reason string,
	userID string,
) *CloudEvent {
	data := ItemRejectedData{
		OrderID:    orderID,
		LineItemID: lineItemID,
		SKU:        sku,
		Quantity:   quantity,
		Reason:     reason,
		UserID:     userID,
	}
	return f.CreateEvent(ctx, ItemRejected, "order/"+orderID+"/item/"+lineItemID, data).WithOrder(orderID)
}

// CreateInspectionHoldEvent creates an InspectionHoldPlaced event
func (f *EventFactory) CreateInspectionHoldEvent(
	ctx context.Context,
	orderID string,
	clientID string,
	reason string,
) *CloudEvent {
	data := InspectionHoldData{
		OrderID:  orderID,
		ClientID: clientID,
		Reason:   reason,
	}
	return f.CreateEvent(ctx, InspectionHoldPlaced, "order/"+orderID, data).
		WithOrder(orderID).
		WithClient(clientID, "")
}

// CreatePutawayAssignmentEvent creates a PutawayAssignmentCreated event
func (f *EventFactory) CreatePutawayAssignmentEvent(
	ctx context.Context,
	assignmentID string,
	orderID string,
	itemCount int,
) *CloudEvent {
	data := PutawayAssignmentData{
		AssignmentID: assignmentID,
		OrderID:      orderID,
		ItemCount:    itemCount,
	}
	return f.CreateEvent(ctx, PutawayAssignmentCreated, "putaway/"+assignmentID, data).WithOrder(orderID)
}

// CreatePutawayConfirmedEvent creates a PutawayItemConfirmed event
func (f *EventFactory) CreatePutawayConfirmedEvent(
	ctx context.Context,
	assignmentID string,
	orderID string,
	sku string,
	quantity int,
	locationID string,
	sublocationID string,
	userID string,
) *CloudEvent {
	data := PutawayConfirmedData{
		AssignmentID:  assignmentID,
		OrderID:       orderID,
		SKU:           sku,
		Quantity:      quantity,
		LocationID:    locationID,
		SublocationID: sublocationID,
		UserID:        userID,
	}
	return f.CreateEvent(ctx, PutawayItemConfirmed, "putaway/"+assignmentID, data).WithOrder(orderID)
}

// CreateScanLoggedEvent creates a ScanLogged event
func (f *EventFactory) CreateScanLoggedEvent(
	ctx context.Context,
	scanID string,
	orderID string,
	barcode string,
	stage string,
	outcome string,
	userID string,
) *CloudEvent {
	data := ScanLoggedData{
		ScanID:  scanID,
		OrderID: orderID,
		Barcode: barcode,
		Stage:   stage,
		Outcome: outcome,
		UserID:  userID,
	}
	return f.CreateEvent(ctx, ScanLogged, "scan/"+scanID, data).WithOrder(orderID)
}

// CreateDamageReportEvent creates a DamageReportCreated event
func (f *EventFactory) CreateDamageReportEvent(
	ctx context.Context,
	reportID string,
	orderID string,
	lineItemID string,
	sku string,
	quantity int,
	reason string,
	userID string,
) *CloudEvent {
	data := DamageReportData{
		ReportID:   reportID,
		OrderID:    orderID,
		LineItemID: lineItemID,
		SKU:        sku,
		Quantity:   quantity,
		Reason:     reason,
		UserID:     userID,
	}
	return f.CreateEvent(ctx, DamageReportCreated, "damage/"+reportID, data).WithOrder(orderID)
}
