package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/internal/testutil"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

type putawayFixture struct {
	assignments *testutil.MockAssignmentRepository
	orders      *testutil.MockOrderRepository
	locations   *testutil.MockLocationRepository
	publisher   *testutil.MockEventPublisher
	service     *PutawayService
}

func newPutawayFixture() *putawayFixture {
	f := &putawayFixture{
		assignments: testutil.NewMockAssignmentRepository(),
		orders:      testutil.NewMockOrderRepository(),
		locations:   testutil.NewMockLocationRepository(),
		publisher:   testutil.NewMockEventPublisher(),
	}
	logger := logging.New(logging.DefaultConfig("test"))
	f.service = NewPutawayService(f.assignments, f.orders, f.locations, f.publisher, logger)
	return f
}

func (f *putawayFixture) seedStorageLocation() *domain.Location {
	location := &domain.Location{
		LocationID:  "LOC-A",
		Name:        "Aisle A",
		Type:        "storage",
		WarehouseID: "WH-001",
		Sublocations: []domain.Sublocation{
			{SublocationID: "SUB-A1", Name: "A1", Capacity: 100, Stock: []domain.SublocationStock{{SKU: "SKU-001", Quantity: 20}}},
			{SublocationID: "SUB-A2", Name: "A2", Capacity: 500},
		},
	}
	f.locations.AddLocation(location)
	return location
}

func (f *putawayFixture) seedReceivedOrder(t *testing.T) *domain.InboundOrder {
	t.Helper()
	order, err := domain.NewInboundOrder("ORD-000001", "REF-1001", "Acme Supply", "", "WH-001", []domain.LineItem{
		{LineItemID: "LI-001", SKU: "SKU-001", ProductName: "Widget A", QtyExpected: 100},
		{LineItemID: "LI-002", SKU: "SKU-002", ProductName: "Widget B", QtyExpected: 50},
		{LineItemID: "LI-003", SKU: "SKU-003", ProductName: "Widget C", QtyExpected: 25},
	}, nil)
	require.NoError(t, err)
	order.GetLineItem("LI-001").QtyReceived = 60
	order.GetLineItem("LI-002").QtyReceived = 30
	order.ClearDomainEvents()
	f.orders.AddOrder(order)
	return order
}

func (f *putawayFixture) seedAssignment(t *testing.T) *domain.PutawayAssignment {
	t.Helper()
	order := f.seedReceivedOrder(t)
	location := f.seedStorageLocation()
	assignment, err := domain.NewPutawayAssignment(order, location)
	require.NoError(t, err)
	assignment.ClearDomainEvents()
	f.assignments.AddAssignment(assignment)
	return assignment
}

func TestCreateAssignment(t *testing.T) {
	f := newPutawayFixture()
	f.seedReceivedOrder(t)
	f.seedStorageLocation()

	assignment, err := f.service.CreateAssignment(context.Background(), CreatePutawayAssignmentCommand{
		OrderID:    "ORD-000001",
		LocationID: "LOC-A",
	})

	require.NoError(t, err)
	require.Len(t, assignment.Items, 2, "only lines with received quantity are listed")
	assert.Equal(t, []string{"putaway.assignment.created"}, f.publisher.EventTypes())

	// SKU-001 already lives in SUB-A1, so it is suggested and preselected
	item := assignment.GetItem("LI-001")
	require.NotNil(t, item)
	assert.Equal(t, "SUB-A1", item.SelectedSublocationID)
	assert.Equal(t, "already holds SKU-001", item.SuggestionReason)

	// SKU-002 has no home yet and lands in the emptiest sublocation
	item = assignment.GetItem("LI-002")
	require.NotNil(t, item)
	assert.Equal(t, "SUB-A2", item.SelectedSublocationID)
	assert.Equal(t, "most free capacity", item.SuggestionReason)
}

func TestCreateAssignmentReturnsExisting(t *testing.T) {
	f := newPutawayFixture()
	existing := f.seedAssignment(t)

	assignment, err := f.service.CreateAssignment(context.Background(), CreatePutawayAssignmentCommand{
		OrderID:    "ORD-000001",
		LocationID: "LOC-A",
	})

	require.NoError(t, err)
	assert.Equal(t, existing.AssignmentID, assignment.AssignmentID)
	assert.Empty(t, f.publisher.Published)
}

func TestSelectSublocation(t *testing.T) {
	f := newPutawayFixture()
	assignment := f.seedAssignment(t)

	updated, err := f.service.SelectSublocation(context.Background(), SelectSublocationCommand{
		AssignmentID:  assignment.AssignmentID,
		LineItemID:    "LI-001",
		SublocationID: "SUB-A2",
	})
	require.NoError(t, err)
	assert.Equal(t, "SUB-A2", updated.GetItem("LI-001").SelectedSublocationID)

	_, err = f.service.SelectSublocation(context.Background(), SelectSublocationCommand{
		AssignmentID:  assignment.AssignmentID,
		LineItemID:    "LI-001",
		SublocationID: "SUB-404",
	})
	assert.ErrorIs(t, err, domain.ErrSublocationNotFound)
}

func TestConfirmItemUpdatesStock(t *testing.T) {
	f := newPutawayFixture()
	assignment := f.seedAssignment(t)

	updated, err := f.service.ConfirmItem(context.Background(), ConfirmPutawayCommand{
		AssignmentID: assignment.AssignmentID,
		LineItemID:   "LI-001",
		UserID:       "user-1",
	})

	require.NoError(t, err)
	assert.True(t, updated.GetItem("LI-001").Confirmed)
	assert.Equal(t, []string{"putaway.item-confirmed"}, f.publisher.EventTypes())

	location, err := f.locations.FindByID(context.Background(), "LOC-A")
	require.NoError(t, err)
	sub := location.GetSublocation("SUB-A1")
	require.NotNil(t, sub)
	assert.Equal(t, 80, sub.UsedCapacity(), "20 existing plus the 60 put away")

	_, err = f.service.ConfirmItem(context.Background(), ConfirmPutawayCommand{
		AssignmentID: assignment.AssignmentID,
		LineItemID:   "LI-001",
		UserID:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
}

func TestConfirmItemRejectsOverCapacity(t *testing.T) {
	f := newPutawayFixture()
	assignment := f.seedAssignment(t)

	// SUB-A1 holds 20 of 100; squeezing 60 in after shrinking capacity fails
	location, err := f.locations.FindByID(context.Background(), "LOC-A")
	require.NoError(t, err)
	location.GetSublocation("SUB-A1").Capacity = 50

	_, err = f.service.ConfirmItem(context.Background(), ConfirmPutawayCommand{
		AssignmentID: assignment.AssignmentID,
		LineItemID:   "LI-001",
		UserID:       "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrSublocationAtCapacity)
	assert.False(t, assignment.GetItem("LI-001").Confirmed)
}

func TestConfirmAll(t *testing.T) {
	f := newPutawayFixture()
	assignment := f.seedAssignment(t)

	outcome, err := f.service.ConfirmAll(context.Background(), ConfirmAllPutawayCommand{
		AssignmentID: assignment.AssignmentID,
		UserID:       "user-1",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Report.AllSucceeded())
	assert.Equal(t, 2, outcome.Report.Succeeded)
	assert.True(t, outcome.Assignment.IsComplete())
}

func TestConfirmAllSkipsConfirmedAndUnselected(t *testing.T) {
	f := newPutawayFixture()
	assignment := f.seedAssignment(t)
	require.NoError(t, assignment.ConfirmItem("LI-001", "user-1"))
	assignment.ClearDomainEvents()
	assignment.GetItem("LI-002").SelectedSublocationID = ""

	outcome, err := f.service.ConfirmAll(context.Background(), ConfirmAllPutawayCommand{
		AssignmentID: assignment.AssignmentID,
		UserID:       "user-1",
	})

	require.NoError(t, err)
	assert.Zero(t, outcome.Report.Attempted, "nothing eligible")
}

func TestConfirmAllStopsOnFailure(t *testing.T) {
	f := newPutawayFixture()
	assignment := f.seedAssignment(t)

	saves := 0
	f.locations.SaveFunc = func(ctx context.Context, location *domain.Location) error {
		saves++
		if saves == 2 {
			return errors.New("mongo down")
		}
		return nil
	}

	outcome, err := f.service.ConfirmAll(context.Background(), ConfirmAllPutawayCommand{
		AssignmentID: assignment.AssignmentID,
		UserID:       "user-1",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Report.Failed)
	assert.Equal(t, 1, outcome.Report.Succeeded)
	assert.True(t, outcome.Assignment.GetItem("LI-001").Confirmed, "first confirmation survives")
	assert.False(t, outcome.Assignment.GetItem("LI-002").Confirmed)
}

func TestGetSuggestion(t *testing.T) {
	f := newPutawayFixture()
	f.seedStorageLocation()

	suggestion, err := f.service.GetSuggestion(context.Background(), "LOC-A", "SKU-001", 10)
	require.NoError(t, err)
	assert.Equal(t, "SUB-A1", suggestion.SublocationID)

	_, err = f.service.GetSuggestion(context.Background(), "LOC-404", "SKU-001", 10)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}
