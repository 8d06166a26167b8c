package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLocation() *Location {
	return &Location{
		LocationID: "LOC-A",
		Name:       "Aisle A",
		Type:       LocationTypeStorage,
		Sublocations: []Sublocation{
			{SublocationID: "SUB-A1", Name: "A1", Capacity: 100, Stock: []SublocationStock{{SKU: "SKU-001", Quantity: 20}}},
			{SublocationID: "SUB-A2", Name: "A2", Capacity: 500},
			{SublocationID: "SUB-A3", Name: "A3", Capacity: 10, Stock: []SublocationStock{{SKU: "SKU-002", Quantity: 10}}},
		},
	}
}

func createReceivedOrderForPutaway(t *testing.T) *InboundOrder {
	t.Helper()
	order := createArrivedOrder(t)
	require.NoError(t, order.ReceiveItem("LI-001", 60, ReceiveModePlain, "", "", "", "", "LOC-RECV", "user-1"))
	require.NoError(t, order.ReceiveItem("LI-002", 30, ReceiveModePlain, "", "", "", "", "LOC-RECV", "user-1"))
	order.ClearDomainEvents()
	return order
}

func TestSuggestSublocation(t *testing.T) {
	location := createTestLocation()

	t.Run("prefers sublocation already holding the SKU", func(t *testing.T) {
		suggestion, err := location.SuggestSublocation("SKU-001", 50)
		require.NoError(t, err)
		assert.Equal(t, "SUB-A1", suggestion.SublocationID)
		assert.Equal(t, "already holds SKU-001", suggestion.Reason)
	})

	t.Run("falls back to most free capacity", func(t *testing.T) {
		suggestion, err := location.SuggestSublocation("SKU-404", 50)
		require.NoError(t, err)
		assert.Equal(t, "SUB-A2", suggestion.SublocationID)
		assert.Equal(t, "most free capacity", suggestion.Reason)
	})

	t.Run("skips sublocations without room for the quantity", func(t *testing.T) {
		suggestion, err := location.SuggestSublocation("SKU-001", 90)
		require.NoError(t, err)
		assert.Equal(t, "SUB-A2", suggestion.SublocationID)
	})

	t.Run("errors when nothing fits", func(t *testing.T) {
		suggestion, err := location.SuggestSublocation("SKU-001", 1000)
		assert.ErrorIs(t, err, ErrSublocationAtCapacity)
		assert.Nil(t, suggestion)
	})
}

func TestSublocationStock(t *testing.T) {
	sub := Sublocation{SublocationID: "SUB-A1", Capacity: 50, Stock: []SublocationStock{{SKU: "SKU-001", Quantity: 30}}}

	assert.Equal(t, 20, sub.FreeCapacity())
	assert.True(t, sub.HoldsSKU("SKU-001"))

	require.NoError(t, sub.AddStock("SKU-001", 15))
	assert.Equal(t, 45, sub.UsedCapacity())

	err := sub.AddStock("SKU-002", 10)
	assert.ErrorIs(t, err, ErrSublocationAtCapacity)
}

func TestNewPutawayAssignment(t *testing.T) {
	t.Run("one item per received line with suggestion preselected", func(t *testing.T) {
		order := createReceivedOrderForPutaway(t)
		location := createTestLocation()

		assignment, err := NewPutawayAssignment(order, location)
		require.NoError(t, err)
		require.Len(t, assignment.Items, 2)

		first := assignment.GetItem("LI-001")
		require.NotNil(t, first)
		assert.Equal(t, 60, first.Quantity)
		assert.Equal(t, "SUB-A1", first.SuggestedSublocation)
		assert.Equal(t, first.SuggestedSublocation, first.SelectedSublocationID)
		assert.False(t, first.Confirmed)

		events := assignment.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "putaway.assignment.created", events[0].EventType())
	})

	t.Run("requires received quantity", func(t *testing.T) {
		order := createTestOrder(t)
		assignment, err := NewPutawayAssignment(order, createTestLocation())
		assert.ErrorIs(t, err, ErrNothingReceivedToStore)
		assert.Nil(t, assignment)
	})
}

func TestConfirmItem(t *testing.T) {
	order := createReceivedOrderForPutaway(t)
	assignment, err := NewPutawayAssignment(order, createTestLocation())
	require.NoError(t, err)
	assignment.ClearDomainEvents()

	require.NoError(t, assignment.ConfirmItem("LI-001", "user-1"))
	item := assignment.GetItem("LI-001")
	assert.True(t, item.Confirmed)
	require.NotNil(t, item.ConfirmedAt)

	// Confirmation is irreversible
	err = assignment.ConfirmItem("LI-001", "user-1")
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	err = assignment.SelectSublocation("LI-001", "SUB-A2")
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	events := assignment.GetDomainEvents()
	require.Len(t, events, 1)
	confirmed := events[0].(*PutawayItemConfirmedEvent)
	assert.Equal(t, "SUB-A1", confirmed.SublocationID)
	assert.Equal(t, 60, confirmed.Quantity)
}

func TestConfirmItemRequiresSelection(t *testing.T) {
	order := createReceivedOrderForPutaway(t)
	assignment, err := NewPutawayAssignment(order, createTestLocation())
	require.NoError(t, err)

	item := assignment.GetItem("LI-002")
	item.SelectedSublocationID = ""

	err = assignment.ConfirmItem("LI-002", "user-1")
	assert.ErrorIs(t, err, ErrNoSublocationSelected)
	assert.False(t, item.Confirmed)
}

func TestConfirmableItems(t *testing.T) {
	order := createReceivedOrderForPutaway(t)
	assignment, err := NewPutawayAssignment(order, createTestLocation())
	require.NoError(t, err)

	// One confirmed, one without a selection, leaves nothing eligible
	require.NoError(t, assignment.ConfirmItem("LI-001", "user-1"))
	assignment.GetItem("LI-002").SelectedSublocationID = ""

	assert.Empty(t, assignment.ConfirmableItems())
	assert.False(t, assignment.IsComplete())

	require.NoError(t, assignment.SelectSublocation("LI-002", "SUB-A2"))
	eligible := assignment.ConfirmableItems()
	require.Len(t, eligible, 1)
	assert.Equal(t, "LI-002", eligible[0].LineItemID)
}
