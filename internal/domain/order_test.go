package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func createTestLineItems() []LineItem {
	return []LineItem{
		{
			LineItemID:  "LI-001",
			SKU:         "SKU-001",
			ProductName: "Widget A",
			QtyExpected: 100,
		},
		{
			LineItemID:         "LI-002",
			SKU:                "SKU-002",
			ProductName:        "Widget B",
			LotTrackingEnabled: true,
			QtyExpected:        50,
		},
	}
}

func createTestOrder(t *testing.T) *InboundOrder {
	t.Helper()
	order, err := NewInboundOrder("ORD-000001", "REF-1001", "Acme Supply", "CL-001", "WH-001", createTestLineItems(), nil)
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func createArrivedOrder(t *testing.T) *InboundOrder {
	t.Helper()
	order := createTestOrder(t)
	require.NoError(t, order.Advance("user-1"))
	require.NoError(t, order.Advance("user-1"))
	order.ClearDomainEvents()
	return order
}

func TestNewInboundOrder(t *testing.T) {
	tests := []struct {
		name        string
		lineItems   []LineItem
		expectError error
	}{
		{
			name:        "Valid order creation",
			lineItems:   createTestLineItems(),
			expectError: nil,
		},
		{
			name:        "Cannot create with no line items",
			lineItems:   []LineItem{},
			expectError: ErrNoLineItems,
		},
		{
			name: "Cannot create with non-positive expected quantity",
			lineItems: []LineItem{
				{LineItemID: "LI-001", SKU: "SKU-001", QtyExpected: 0},
			},
			expectError: ErrQuantityNotPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewInboundOrder("ORD-000001", "REF-1001", "Acme Supply", "CL-001", "WH-001", tt.lineItems, nil)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, order)
			} else {
				require.NoError(t, err)
				require.NotNil(t, order)
				assert.Equal(t, OrderStatusOrdered, order.Status)
				assert.NotZero(t, order.CreatedAt)

				events := order.GetDomainEvents()
				require.Len(t, events, 1)
				event, ok := events[0].(*OrderCreatedEvent)
				require.True(t, ok)
				assert.Equal(t, "ORD-000001", event.OrderID)
				assert.Equal(t, 2, event.ItemCount)
			}
		})
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"ordered to in_transit", OrderStatusOrdered, OrderStatusInTransit, true},
		{"in_transit to arrived", OrderStatusInTransit, OrderStatusArrived, true},
		{"arrived to received", OrderStatusArrived, OrderStatusReceived, true},
		{"ordered cannot skip to arrived", OrderStatusOrdered, OrderStatusArrived, false},
		{"ordered cannot skip to received", OrderStatusOrdered, OrderStatusReceived, false},
		{"no backward transition", OrderStatusArrived, OrderStatusInTransit, false},
		{"received is terminal", OrderStatusReceived, OrderStatusArrived, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderAdvance(t *testing.T) {
	order := createTestOrder(t)

	require.NoError(t, order.Advance("user-1"))
	assert.Equal(t, OrderStatusInTransit, order.Status)

	require.NoError(t, order.Advance("user-1"))
	assert.Equal(t, OrderStatusArrived, order.Status)

	require.NoError(t, order.Advance("user-1"))
	assert.Equal(t, OrderStatusReceived, order.Status)
	require.NotNil(t, order.ReceivedDate)

	err := order.Advance("user-1")
	assert.ErrorIs(t, err, ErrOrderAlreadyReceived)
	assert.Equal(t, OrderStatusReceived, order.Status)
}

func TestOrderAdvanceEmitsStatusChangedEvent(t *testing.T) {
	order := createTestOrder(t)

	require.NoError(t, order.Advance("user-1"))

	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	event, ok := events[0].(*OrderStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "ordered", event.FromStatus)
	assert.Equal(t, "in_transit", event.ToStatus)
	assert.Equal(t, "user", event.Trigger)
	assert.Equal(t, "inbound.order.status-changed", event.EventType())
}

func TestOrderMarkComplete(t *testing.T) {
	t.Run("shortcut from arrived skips item verification", func(t *testing.T) {
		order := createArrivedOrder(t)

		require.NoError(t, order.MarkComplete("user-1"))
		assert.Equal(t, OrderStatusReceived, order.Status)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		event := events[0].(*OrderStatusChangedEvent)
		assert.Equal(t, "mark_complete", event.Trigger)
		assert.Equal(t, "inbound.order.received", event.EventType())
	})

	t.Run("not allowed before arrival", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.MarkComplete("user-1")
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.Equal(t, OrderStatusOrdered, order.Status)
	})
}

func TestAutoCompleteIfFullyReceived(t *testing.T) {
	t.Run("fires when every line is fully received", func(t *testing.T) {
		order := createArrivedOrder(t)
		require.NoError(t, order.ReceiveItem("LI-001", 100, ReceiveModePlain, "", "", "", "", "LOC-RECV", "user-1"))
		require.NoError(t, order.ReceiveItem("LI-002", 50, ReceiveModeLot, "L1", "2027-01-01", "", "", "LOC-RECV", "user-1"))
		order.ClearDomainEvents()

		assert.True(t, order.AutoCompleteIfFullyReceived())
		assert.Equal(t, OrderStatusReceived, order.Status)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		event := events[0].(*OrderStatusChangedEvent)
		assert.Equal(t, "auto", event.Trigger)
	})

	t.Run("does not fire while any line is short", func(t *testing.T) {
		order := createArrivedOrder(t)
		require.NoError(t, order.ReceiveItem("LI-001", 100, ReceiveModePlain, "", "", "", "", "LOC-RECV", "user-1"))

		assert.False(t, order.AutoCompleteIfFullyReceived())
		assert.Equal(t, OrderStatusArrived, order.Status)
	})

	t.Run("does not fire before arrival", func(t *testing.T) {
		order := createTestOrder(t)
		for i := range order.LineItems {
			order.LineItems[i].QtyReceived = order.LineItems[i].QtyExpected
		}

		assert.False(t, order.AutoCompleteIfFullyReceived())
		assert.Equal(t, OrderStatusOrdered, order.Status)
	})

	t.Run("rejected quantity does not count toward auto completion", func(t *testing.T) {
		order := createArrivedOrder(t)
		require.NoError(t, order.ReceiveItem("LI-001", 90, ReceiveModePlain, "", "", "", "", "LOC-RECV", "user-1"))
		require.NoError(t, order.RejectItem("LI-001", 10, "damaged carton", "", "user-1"))
		require.NoError(t, order.ReceiveItem("LI-002", 50, ReceiveModePlain, "", "", "", "", "LOC-RECV", "user-1"))

		assert.False(t, order.AutoCompleteIfFullyReceived())
		assert.Equal(t, OrderStatusArrived, order.Status)
	})
}

func TestReceiveItem(t *testing.T) {
	tests := []struct {
		name        string
		lineItemID  string
		newTotal    int
		setup       func(*InboundOrder)
		expectError error
	}{
		{
			name:       "valid receive sets absolute total",
			lineItemID: "LI-001",
			newTotal:   40,
		},
		{
			name:        "unknown line item",
			lineItemID:  "LI-999",
			newTotal:    10,
			expectError: ErrLineItemNotFound,
		},
		{
			name:        "total exceeding expected is rejected",
			lineItemID:  "LI-001",
			newTotal:    101,
			expectError: ErrQuantityExceedsExpected,
		},
		{
			name:       "total plus rejections exceeding expected is rejected",
			lineItemID: "LI-001",
			newTotal:   95,
			setup: func(o *InboundOrder) {
				o.GetLineItem("LI-001").QtyRejected = 10
			},
			expectError: ErrQuantityExceedsExpected,
		},
		{
			name:       "decreasing total is rejected",
			lineItemID: "LI-001",
			newTotal:   5,
			setup: func(o *InboundOrder) {
				o.GetLineItem("LI-001").QtyReceived = 40
			},
			expectError: ErrReceivedTotalDecreased,
		},
		{
			name:       "unchanged total is rejected",
			lineItemID: "LI-001",
			newTotal:   40,
			setup: func(o *InboundOrder) {
				o.GetLineItem("LI-001").QtyReceived = 40
			},
			expectError: ErrQuantityNotPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := createArrivedOrder(t)
			if tt.setup != nil {
				tt.setup(order)
			}

			err := order.ReceiveItem(tt.lineItemID, tt.newTotal, ReceiveModePlain, "", "", "", "", "LOC-RECV", "user-1")

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				require.NoError(t, err)
				item := order.GetLineItem(tt.lineItemID)
				assert.Equal(t, tt.newTotal, item.QtyReceived)
				require.Len(t, order.ReceiptRecords, 1)
				assert.Equal(t, tt.newTotal, order.ReceiptRecords[0].Quantity)
			}
		})
	}
}

func TestReceiveItemEmitsModeSpecificEvents(t *testing.T) {
	order := createArrivedOrder(t)

	require.NoError(t, order.ReceiveItem("LI-001", 10, ReceiveModePlain, "", "", "", "", "LOC-RECV", "user-1"))
	require.NoError(t, order.ReceiveItem("LI-002", 5, ReceiveModeLot, "L1", "2027-01-01", "", "", "LOC-RECV", "user-1"))
	require.NoError(t, order.ReceiveItem("LI-001", 20, ReceiveModePallet, "", "", "", "LPN-0001", "LOC-RECV", "user-1"))

	events := order.GetDomainEvents()
	require.Len(t, events, 3)
	assert.Equal(t, "inbound.item.received", events[0].EventType())
	assert.Equal(t, "inbound.item.lot-received", events[1].EventType())
	assert.Equal(t, "inbound.item.received-to-pallet", events[2].EventType())

	palletEvent := events[2].(*ItemReceivedEvent)
	assert.Equal(t, 10, palletEvent.Quantity)
	assert.Equal(t, 20, palletEvent.TotalOnLine)
}

func TestRejectItem(t *testing.T) {
	order := createArrivedOrder(t)

	require.NoError(t, order.RejectItem("LI-001", 10, "crushed", "forklift incident", "user-1"))
	item := order.GetLineItem("LI-001")
	assert.Equal(t, 10, item.QtyRejected)
	assert.Equal(t, "crushed", item.RejectionReason)

	require.NoError(t, order.RejectItem("LI-001", 5, "crushed", "", "user-1"))
	assert.Equal(t, 15, item.QtyRejected)

	err := order.RejectItem("LI-001", 90, "crushed", "", "user-1")
	assert.ErrorIs(t, err, ErrQuantityExceedsExpected)
	assert.Equal(t, 15, item.QtyRejected)

	err = order.RejectItem("LI-001", 0, "crushed", "", "user-1")
	assert.ErrorIs(t, err, ErrQuantityNotPositive)
}

func TestRecordDamage(t *testing.T) {
	order := createArrivedOrder(t)

	require.NoError(t, order.RecordDamage("SKU-001", 7))
	assert.Equal(t, 7, order.GetLineItemBySKU("SKU-001").QtyDamaged)

	err := order.RecordDamage("SKU-404", 1)
	assert.ErrorIs(t, err, ErrLineItemNotFound)

	err = order.RecordDamage("SKU-001", 200)
	assert.ErrorIs(t, err, ErrQuantityExceedsExpected)
}

func TestLineItemReconciliation(t *testing.T) {
	tests := []struct {
		name          string
		expected      int
		received      int
		rejected      int
		damaged       int
		wantRemaining int
		wantBadge     ItemBadge
	}{
		{
			name:     "pending when untouched",
			expected: 100, wantRemaining: 100, wantBadge: BadgePending,
		},
		{
			name:     "partial receive",
			expected: 100, received: 40, rejected: 10,
			wantRemaining: 50, wantBadge: BadgePartial,
		},
		{
			name:     "complete",
			expected: 100, received: 100,
			wantRemaining: 0, wantBadge: BadgeComplete,
		},
		{
			name:     "complete with rejections",
			expected: 100, received: 90, rejected: 10,
			wantRemaining: 0, wantBadge: BadgeCompleteWithRejections,
		},
		{
			name:     "complete via damage",
			expected: 100, received: 95, damaged: 5,
			wantRemaining: 0, wantBadge: BadgeComplete,
		},
		{
			name:     "rejections alone fall back to the pending badge",
			expected: 100, rejected: 10,
			wantRemaining: 90, wantBadge: BadgePending,
		},
		{
			name:     "remaining floors at zero",
			expected: 10, received: 10, damaged: 5,
			wantRemaining: 0, wantBadge: BadgeComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := LineItem{
				QtyExpected: tt.expected,
				QtyReceived: tt.received,
				QtyRejected: tt.rejected,
				QtyDamaged:  tt.damaged,
			}
			assert.Equal(t, tt.wantRemaining, item.Remaining())
			assert.Equal(t, tt.wantBadge, item.Badge())
		})
	}
}

func TestLineItemPartialFlags(t *testing.T) {
	item := LineItem{QtyExpected: 100, QtyReceived: 40, QtyRejected: 10}
	assert.True(t, item.IsPartial())
	assert.False(t, item.IsComplete())
	assert.False(t, item.IsPending())
	assert.Equal(t, 50, item.Remaining())
}

func TestChecklist(t *testing.T) {
	order := createTestOrder(t)
	order.Checklist = []ChecklistEntry{
		{EntryID: "CHK-1", Label: "Verify seal intact"},
		{EntryID: "CHK-2", Label: "Photograph BOL"},
	}

	require.NoError(t, order.SetChecklistEntry("CHK-1", true))
	assert.True(t, order.GetChecklistEntry("CHK-1").Completed)

	err := order.SetChecklistEntry("CHK-404", true)
	assert.ErrorIs(t, err, ErrChecklistEntryNotFound)
}
