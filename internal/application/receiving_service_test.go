package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/internal/testutil"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

type receivingFixture struct {
	orders    *testutil.MockOrderRepository
	pallets   *testutil.MockPalletRepository
	clients   *testutil.MockClientRepository
	publisher *testutil.MockEventPublisher
	service   *ReceivingService
}

func newReceivingFixture() *receivingFixture {
	f := &receivingFixture{
		orders:    testutil.NewMockOrderRepository(),
		pallets:   testutil.NewMockPalletRepository(),
		clients:   testutil.NewMockClientRepository(),
		publisher: testutil.NewMockEventPublisher(),
	}
	logger := logging.New(logging.DefaultConfig("test"))
	f.service = NewReceivingService(f.orders, f.pallets, f.clients, f.publisher, logger)
	return f
}

func (f *receivingFixture) seedArrivedOrder(t *testing.T, clientID string) *domain.InboundOrder {
	t.Helper()
	order, err := domain.NewInboundOrder("ORD-000001", "REF-1001", "Acme Supply", clientID, "WH-001", []domain.LineItem{
		{LineItemID: "LI-001", SKU: "SKU-001", ProductName: "Widget A", QtyExpected: 100},
		{LineItemID: "LI-002", SKU: "SKU-002", ProductName: "Widget B", LotTrackingEnabled: true, QtyExpected: 50},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, order.Advance("user-1"))
	require.NoError(t, order.Advance("user-1"))
	order.ClearDomainEvents()
	f.orders.AddOrder(order)
	return order
}

func (f *receivingFixture) seedClient(t *testing.T, rules domain.WorkflowRules) *domain.Client {
	t.Helper()
	client, err := domain.NewClient("CL-001", "ACME", "Acme Corp", nil, rules)
	require.NoError(t, err)
	f.clients.AddClient(client)
	return client
}

func TestCreateOrder(t *testing.T) {
	f := newReceivingFixture()

	order, err := f.service.CreateOrder(context.Background(), CreateOrderCommand{
		ReferenceNumber: "REF-1001",
		Supplier:        "Acme Supply",
		LineItems: []domain.LineItem{
			{LineItemID: "LI-001", SKU: "SKU-001", QtyExpected: 10},
		},
		Checklist: []string{"Verify seal intact"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, domain.OrderStatusOrdered, order.Status)
	require.Len(t, order.Checklist, 1)
	assert.Equal(t, []string{"inbound.order.created"}, f.publisher.EventTypes())
}

func TestAdvanceStatus(t *testing.T) {
	f := newReceivingFixture()
	order, err := domain.NewInboundOrder("ORD-000001", "REF-1001", "Acme", "", "WH-001", []domain.LineItem{
		{LineItemID: "LI-001", SKU: "SKU-001", QtyExpected: 10},
	}, nil)
	require.NoError(t, err)
	order.ClearDomainEvents()
	f.orders.AddOrder(order)

	updated, err := f.service.AdvanceStatus(context.Background(), AdvanceStatusCommand{OrderID: "ORD-000001", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInTransit, updated.Status)
	assert.Equal(t, []string{"inbound.order.status-changed"}, f.publisher.EventTypes())

	_, err = f.service.AdvanceStatus(context.Background(), AdvanceStatusCommand{OrderID: "ORD-404"})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestAdvanceStatusFailureLeavesOrderUntouched(t *testing.T) {
	f := newReceivingFixture()
	f.seedArrivedOrder(t, "")
	f.orders.SaveFunc = func(ctx context.Context, order *domain.InboundOrder) error {
		return errors.New("mongo down")
	}

	_, err := f.service.AdvanceStatus(context.Background(), AdvanceStatusCommand{OrderID: "ORD-000001", UserID: "user-1"})
	require.Error(t, err)

	f.orders.SaveFunc = nil
	stored, err := f.service.GetOrder(context.Background(), "ORD-000001")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusArrived, stored.Status)
}

func TestReceiveItemPlainMode(t *testing.T) {
	f := newReceivingFixture()
	f.seedArrivedOrder(t, "")

	outcome, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-001",
		Quantity:   40,
		LocationID: "LOC-RECV",
		UserID:     "user-1",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Report.AllSucceeded())
	assert.False(t, outcome.AutoCompleted)
	assert.Equal(t, 40, outcome.Order.GetLineItem("LI-001").QtyReceived)
	assert.Equal(t, []string{"inbound.item.received"}, f.publisher.EventTypes())
}

func TestReceiveItemLotModeSubmitsCumulativeTotals(t *testing.T) {
	f := newReceivingFixture()
	order := f.seedArrivedOrder(t, "")
	order.GetLineItem("LI-002").QtyReceived = 10

	var totals []int
	f.orders.SaveFunc = func(ctx context.Context, o *domain.InboundOrder) error {
		totals = append(totals, o.GetLineItem("LI-002").QtyReceived)
		f.orders.AddOrder(o)
		return nil
	}

	outcome, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-002",
		LotEntries: []domain.LotEntry{
			{LotNumber: "L1", ExpirationDate: "2027-01-01", Quantity: 5},
			{LotNumber: "L2", ExpirationDate: "2027-01-01", Quantity: 8},
		},
		LocationID: "LOC-RECV",
		UserID:     "user-1",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Report.AllSucceeded())
	assert.Equal(t, 2, outcome.Report.Succeeded)

	// Each sequential save carries the running absolute total
	assert.Equal(t, []int{15, 23}, totals)
	assert.Equal(t, []string{"inbound.item.lot-received", "inbound.item.lot-received"}, f.publisher.EventTypes())
}

func TestReceiveItemLotModePartialFailure(t *testing.T) {
	f := newReceivingFixture()
	f.seedArrivedOrder(t, "")

	saves := 0
	f.orders.SaveFunc = func(ctx context.Context, o *domain.InboundOrder) error {
		saves++
		if saves == 2 {
			return errors.New("mongo down")
		}
		f.orders.AddOrder(o)
		return nil
	}

	outcome, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-002",
		LotEntries: []domain.LotEntry{
			{LotNumber: "L1", Quantity: 5},
			{LotNumber: "L2", Quantity: 8},
			{LotNumber: "L3", Quantity: 2},
		},
		LocationID: "LOC-RECV",
		UserID:     "user-1",
	})

	require.NoError(t, err)
	require.NotNil(t, outcome.Report)
	assert.True(t, outcome.Report.Failed)
	assert.Equal(t, 1, outcome.Report.Succeeded)
	assert.Equal(t, 2, outcome.Report.Attempted, "third lot is never attempted")

	// The first lot stays applied; no rollback
	assert.Equal(t, 5, outcome.Order.GetLineItem("LI-002").QtyReceived)
}

func TestReceiveItemValidationIssuesNoWrites(t *testing.T) {
	f := newReceivingFixture()
	f.seedArrivedOrder(t, "")

	saves := 0
	f.orders.SaveFunc = func(ctx context.Context, o *domain.InboundOrder) error {
		saves++
		return nil
	}

	_, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-002",
		LotEntries: []domain.LotEntry{
			{LotNumber: "L1", Quantity: 5},
			{LotNumber: "", Quantity: 3},
		},
		UserID: "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrLotNumberRequired)
	assert.Zero(t, saves)
	assert.Empty(t, f.publisher.Published)
}

func TestReceiveItemPalletMode(t *testing.T) {
	f := newReceivingFixture()
	f.seedArrivedOrder(t, "")

	t.Run("requires an existing open pallet", func(t *testing.T) {
		_, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
			OrderID:    "ORD-000001",
			LineItemID: "LI-001",
			Quantity:   5,
			PalletMode: true,
			LPN:        "LPN-404",
			UserID:     "user-1",
		})
		assert.ErrorIs(t, err, domain.ErrPalletNotFound)
	})

	t.Run("blocked without a pallet selection", func(t *testing.T) {
		_, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
			OrderID:    "ORD-000001",
			LineItemID: "LI-001",
			Quantity:   5,
			PalletMode: true,
			UserID:     "user-1",
		})
		assert.ErrorIs(t, err, domain.ErrPalletRequired)
	})

	t.Run("adds the quantity to the pallet contents", func(t *testing.T) {
		pallet, err := domain.NewPallet("LPN-0001", "pallet", "LOC-RECV", "", domain.DefaultWorkflowRules())
		require.NoError(t, err)
		f.pallets.AddPallet(pallet)

		outcome, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
			OrderID:    "ORD-000001",
			LineItemID: "LI-001",
			Quantity:   5,
			PalletMode: true,
			LPN:        "LPN-0001",
			LocationID: "LOC-RECV",
			UserID:     "user-1",
		})

		require.NoError(t, err)
		assert.True(t, outcome.Report.AllSucceeded())
		assert.Equal(t, 5, pallet.TotalQuantity())
		assert.Contains(t, f.publisher.EventTypes(), "inbound.item.received-to-pallet")
	})
}

func TestReceiveItemAutoCompletesOrder(t *testing.T) {
	f := newReceivingFixture()
	order := f.seedArrivedOrder(t, "")
	order.GetLineItem("LI-002").QtyReceived = 50

	outcome, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-001",
		Quantity:   100,
		LocationID: "LOC-RECV",
		UserID:     "user-1",
	})

	require.NoError(t, err)
	assert.True(t, outcome.AutoCompleted)
	assert.Equal(t, domain.OrderStatusReceived, outcome.Order.Status)
	assert.Contains(t, f.publisher.EventTypes(), "inbound.order.received")
}

func TestReceiveItemInspectionHold(t *testing.T) {
	f := newReceivingFixture()
	f.seedClient(t, domain.WorkflowRules{Enabled: true, RequiresInspection: true})
	f.seedArrivedOrder(t, "CL-001")

	_, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-001",
		Quantity:   10,
		LocationID: "LOC-RECV",
		UserID:     "user-1",
	})

	require.NoError(t, err)
	assert.Contains(t, f.publisher.EventTypes(), "inbound.inspection.hold-placed")
}

func TestReceiveItemLotTrackingFromClientRules(t *testing.T) {
	// LI-001 is not lot-tracked on the product, but the client mandates
	// lot tracking, so a plain quantity receive is rejected
	f := newReceivingFixture()
	f.seedClient(t, domain.WorkflowRules{Enabled: true, RequiresLotTracking: true})
	f.seedArrivedOrder(t, "CL-001")

	_, err := f.service.ReceiveItem(context.Background(), ReceiveItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-001",
		Quantity:   10,
		UserID:     "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrNothingToReceive)
}

func TestRejectItem(t *testing.T) {
	f := newReceivingFixture()
	f.seedArrivedOrder(t, "")

	order, err := f.service.RejectItem(context.Background(), RejectItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-001",
		Quantity:   10,
		Reason:     "crushed",
		UserID:     "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 10, order.GetLineItem("LI-001").QtyRejected)
	assert.Equal(t, []string{"inbound.item.rejected"}, f.publisher.EventTypes())
}

func TestToggleChecklistRollsBackOnFailure(t *testing.T) {
	f := newReceivingFixture()
	order := f.seedArrivedOrder(t, "")
	order.Checklist = []domain.ChecklistEntry{{EntryID: "CHK-1", Label: "Verify seal intact"}}

	f.orders.SaveFunc = func(ctx context.Context, o *domain.InboundOrder) error {
		return errors.New("mongo down")
	}

	_, err := f.service.ToggleChecklist(context.Background(), ToggleChecklistCommand{
		OrderID:   "ORD-000001",
		EntryID:   "CHK-1",
		Completed: true,
	})

	require.Error(t, err)
	assert.False(t, order.GetChecklistEntry("CHK-1").Completed, "optimistic flip restored")
}

func TestCreatePallet(t *testing.T) {
	f := newReceivingFixture()
	f.seedClient(t, domain.WorkflowRules{AllowedContainerTypes: []string{"pallet"}})

	t.Run("generates an LPN when none given", func(t *testing.T) {
		pallet, err := f.service.CreatePallet(context.Background(), CreatePalletCommand{
			ContainerType: "pallet",
			ClientID:      "CL-001",
		})
		require.NoError(t, err)
		assert.Contains(t, pallet.LPN, "LPN-")
	})

	t.Run("rejects disallowed container types", func(t *testing.T) {
		_, err := f.service.CreatePallet(context.Background(), CreatePalletCommand{
			ContainerType: "gaylord",
			ClientID:      "CL-001",
		})
		assert.ErrorIs(t, err, domain.ErrContainerNotAllowed)
	})
}

func TestGenerateLotNumber(t *testing.T) {
	f := newReceivingFixture()
	f.seedClient(t, domain.WorkflowRules{AutoCreateLots: true, LotNumberFormat: "{SKU}-{DATE}"})

	lot, err := f.service.GenerateLotNumber(context.Background(), GenerateLotNumberCommand{
		ClientID: "CL-001",
		SKU:      "SKU-001",
	})

	require.NoError(t, err)
	assert.Equal(t, "SKU-001-"+time.Now().UTC().Format("20060102"), lot)
}

func TestGetWorkflowRulesForOrder(t *testing.T) {
	f := newReceivingFixture()
	f.seedArrivedOrder(t, "")

	rules, err := f.service.GetWorkflowRulesForOrder(context.Background(), "ORD-000001")
	require.NoError(t, err)
	assert.False(t, rules.Enabled, "orders without a client get the defaults")
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newReceivingFixture()
	f.seedArrivedOrder(t, "")
	f.publisher.PublishAllFunc = func(ctx context.Context, events []domain.DomainEvent) error {
		return errors.New("kafka down")
	}

	order, err := f.service.RejectItem(context.Background(), RejectItemCommand{
		OrderID:    "ORD-000001",
		LineItemID: "LI-001",
		Quantity:   5,
		Reason:     "crushed",
		UserID:     "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, order.GetLineItem("LI-001").QtyRejected)
}
