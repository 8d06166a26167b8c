package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/internal/testutil"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

type scanFixture struct {
	sessions    *testutil.MockScanSessionRepository
	events      *testutil.MockScanEventRepository
	orders      *testutil.MockOrderRepository
	pallets     *testutil.MockPalletRepository
	locations   *testutil.MockLocationRepository
	assignments *testutil.MockAssignmentRepository
	publisher   *testutil.MockEventPublisher
	service     *ScanService
}

func newScanFixture() *scanFixture {
	f := &scanFixture{
		sessions:    testutil.NewMockScanSessionRepository(),
		events:      testutil.NewMockScanEventRepository(),
		orders:      testutil.NewMockOrderRepository(),
		pallets:     testutil.NewMockPalletRepository(),
		locations:   testutil.NewMockLocationRepository(),
		assignments: testutil.NewMockAssignmentRepository(),
		publisher:   testutil.NewMockEventPublisher(),
	}
	logger := logging.New(logging.DefaultConfig("test"))
	putaway := NewPutawayService(f.assignments, f.orders, f.locations, f.publisher, logger)
	f.service = NewScanService(f.sessions, f.events, f.orders, f.pallets, f.locations, putaway, f.publisher, logger)
	return f
}

func (f *scanFixture) seedEntities(t *testing.T) {
	t.Helper()

	order, err := domain.NewInboundOrder("ORD-000001", "REF-1001", "Acme Supply", "", "WH-001", []domain.LineItem{
		{LineItemID: "LI-001", SKU: "SKU-001", ProductName: "Widget A", QtyExpected: 100},
	}, nil)
	require.NoError(t, err)
	order.ClearDomainEvents()
	f.orders.AddOrder(order)

	pallet, err := domain.NewPallet("LPN-0001", "pallet", "LOC-DOCK", "", domain.DefaultWorkflowRules())
	require.NoError(t, err)
	f.pallets.AddPallet(pallet)

	f.locations.AddLocation(&domain.Location{
		LocationID: "LOC-A",
		Name:       "Aisle A",
		Type:       "storage",
		Sublocations: []domain.Sublocation{
			{SublocationID: "SUB-A1", Name: "A1", Capacity: 100},
		},
	})
}

func (f *scanFixture) startSession(t *testing.T, workflow string) *domain.ScanSession {
	t.Helper()
	session, err := f.service.StartSession(context.Background(), StartScanSessionCommand{
		Workflow:    workflow,
		OrderID:     "ORD-000001",
		UserID:      "user-1",
		WarehouseID: "WH-001",
	})
	require.NoError(t, err)
	return session
}

func TestResolveBarcode(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)

	tests := []struct {
		name    string
		orderID string
		code    string
		kind    domain.BarcodeKind
	}{
		{"pallet by LPN", "", "LPN-0001", domain.BarcodeKindPallet},
		{"location by ID", "", "LOC-A", domain.BarcodeKindLocation},
		{"sublocation by ID", "", "SUB-A1", domain.BarcodeKindSublocation},
		{"product against order lines", "ORD-000001", "SKU-001", domain.BarcodeKindProduct},
		{"unknown LPN", "", "LPN-404", domain.BarcodeKindNotFound},
		{"product without order scope", "", "SKU-001", domain.BarcodeKindNotFound},
		{"sku not on order", "ORD-000001", "SKU-404", domain.BarcodeKindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := f.service.ResolveBarcode(context.Background(), tt.orderID, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, resolved.Kind)
		})
	}
}

func TestStartSessionRejectsUnknownWorkflow(t *testing.T) {
	f := newScanFixture()

	_, err := f.service.StartSession(context.Background(), StartScanSessionCommand{Workflow: "teleport"})
	assert.ErrorIs(t, err, domain.ErrUnknownWorkflow)
}

func TestShipSessionFlow(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)
	session := f.startSession(t, "ship")

	// First phase wants a pallet; a location is the wrong kind
	view, err := f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "LOC-A"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScanOutcomeWrongKind, view.Result.Outcome)
	assert.Equal(t, domain.PhaseFirst, view.Session.Phase)

	view, err = f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "LPN-0001"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScanOutcomeResolved, view.Result.Outcome)
	assert.Equal(t, domain.PhaseSecond, view.Session.Phase)

	view, err = f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "LOC-A"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScanOutcomeResolved, view.Result.Outcome)

	confirmed, err := f.service.ConfirmSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseComplete, confirmed.Phase)

	// Confirming the pairing moves the pallet to the scanned location
	pallet, err := f.pallets.FindByLPN(context.Background(), "LPN-0001")
	require.NoError(t, err)
	assert.Equal(t, "LOC-A", pallet.LocationID)
}

func TestEveryScanIsLogged(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)
	session := f.startSession(t, "ship")

	// Miss, wrong kind, then a hit
	_, err := f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "LPN-404"})
	require.NoError(t, err)
	_, err = f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "LOC-A"})
	require.NoError(t, err)
	_, err = f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "LPN-0001"})
	require.NoError(t, err)

	require.Len(t, f.events.Events, 3)
	assert.Equal(t, domain.ScanOutcomeNotFound, f.events.Events[0].Outcome)
	assert.Equal(t, domain.ScanOutcomeWrongKind, f.events.Events[1].Outcome)
	assert.Equal(t, domain.ScanOutcomeResolved, f.events.Events[2].Outcome)
	assert.Equal(t, "ship/first_scan", f.events.Events[2].Stage)

	history, err := f.service.GetScanHistory(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	assert.Equal(t, []string{"scan.logged", "scan.logged", "scan.logged"}, f.publisher.EventTypes())
}

func TestConfirmSessionRequiresBothScans(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)
	session := f.startSession(t, "putaway")

	_, err := f.service.ConfirmSession(context.Background(), session.SessionID)
	assert.ErrorIs(t, err, domain.ErrScansMissingToConfirm)
}

func (f *scanFixture) seedAssignment(t *testing.T) *domain.PutawayAssignment {
	t.Helper()

	order, err := f.orders.FindByID(context.Background(), "ORD-000001")
	require.NoError(t, err)
	require.NotNil(t, order)
	order.LineItems[0].QtyReceived = 10

	location, err := f.locations.FindByID(context.Background(), "LOC-A")
	require.NoError(t, err)
	require.NotNil(t, location)

	assignment, err := domain.NewPutawayAssignment(order, location)
	require.NoError(t, err)
	assignment.ClearDomainEvents()
	f.assignments.AddAssignment(assignment)
	return assignment
}

func TestPutawaySessionPairsProductWithSublocation(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)
	f.seedAssignment(t)
	session := f.startSession(t, "putaway")

	view, err := f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "SKU-001"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScanOutcomeResolved, view.Result.Outcome)

	view, err = f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "SUB-A1"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScanOutcomeResolved, view.Result.Outcome)

	confirmed, err := f.service.ConfirmSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-001", confirmed.FirstBarcode)
	assert.Equal(t, "SUB-A1", confirmed.SecondBarcode)
}

func TestConfirmPutawaySessionConfirmsAssignmentItem(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)
	assignment := f.seedAssignment(t)
	session := f.startSession(t, "putaway")

	_, err := f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "SKU-001"})
	require.NoError(t, err)
	_, err = f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "SUB-A1"})
	require.NoError(t, err)

	_, err = f.service.ConfirmSession(context.Background(), session.SessionID)
	require.NoError(t, err)

	item := assignment.GetItem("LI-001")
	require.NotNil(t, item)
	assert.True(t, item.Confirmed)
	assert.Equal(t, "SUB-A1", item.SelectedSublocationID)

	location, err := f.locations.FindByID(context.Background(), "LOC-A")
	require.NoError(t, err)
	sublocation := location.GetSublocation("SUB-A1")
	require.NotNil(t, sublocation)
	assert.Equal(t, 10, sublocation.UsedCapacity())
}

func TestConfirmPutawaySessionWithoutAssignmentFails(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)
	session := f.startSession(t, "putaway")

	_, err := f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "SKU-001"})
	require.NoError(t, err)
	_, err = f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "SUB-A1"})
	require.NoError(t, err)

	_, err = f.service.ConfirmSession(context.Background(), session.SessionID)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)

	// The failed commit leaves the session open
	reloaded, err := f.service.GetSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.NotEqual(t, domain.PhaseComplete, reloaded.Phase)
}

func TestSetMuted(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)
	session := f.startSession(t, "ship")

	updated, err := f.service.SetMuted(context.Background(), session.SessionID, true)
	require.NoError(t, err)
	assert.True(t, updated.Muted)

	view, err := f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "LPN-404"})
	require.NoError(t, err)
	assert.Equal(t, domain.ToneNone, view.Result.Tone, "muted sessions stay silent")
	assert.Equal(t, domain.ScanOutcomeNotFound, view.Result.Outcome, "outcome is still reported")
}

func TestScanEventSurvivesAuditWriteFailure(t *testing.T) {
	f := newScanFixture()
	f.seedEntities(t)
	session := f.startSession(t, "ship")

	f.events.SaveFunc = func(ctx context.Context, event *domain.ScanEvent) error {
		return assert.AnError
	}

	view, err := f.service.Scan(context.Background(), ScanCommand{SessionID: session.SessionID, Barcode: "LPN-0001"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScanOutcomeResolved, view.Result.Outcome)
}
