package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLotTracked(t *testing.T) {
	tests := []struct {
		name  string
		item  LineItem
		rules WorkflowRules
		want  bool
	}{
		{
			name: "product flag alone",
			item: LineItem{LotTrackingEnabled: true},
			want: true,
		},
		{
			name:  "rules require lot tracking",
			item:  LineItem{},
			rules: WorkflowRules{Enabled: true, RequiresLotTracking: true},
			want:  true,
		},
		{
			name:  "rules auto-create lots",
			item:  LineItem{},
			rules: WorkflowRules{Enabled: true, AutoCreateLots: true},
			want:  true,
		},
		{
			name:  "disabled rules do not apply",
			item:  LineItem{},
			rules: WorkflowRules{Enabled: false, RequiresLotTracking: true},
			want:  false,
		},
		{
			name: "nothing set",
			item: LineItem{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLotTracked(&tt.item, tt.rules))
		})
	}
}

func TestBuildReceivePlanPlainMode(t *testing.T) {
	item := &LineItem{LineItemID: "LI-001", SKU: "SKU-001", QtyExpected: 100, QtyReceived: 15}

	plan, err := BuildReceivePlan(item, WorkflowRules{}, ReceiveRequest{
		LineItemID: "LI-001",
		Quantity:   25,
		LocationID: "LOC-RECV",
	})

	require.NoError(t, err)
	assert.Equal(t, ReceiveModePlain, plan.Mode)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, 40, plan.Steps[0].NewTotal)
	assert.Equal(t, 25, plan.Steps[0].Quantity)
}

func TestBuildReceivePlanLotMode(t *testing.T) {
	item := &LineItem{LineItemID: "LI-002", SKU: "SKU-002", LotTrackingEnabled: true, QtyExpected: 50, QtyReceived: 10}

	plan, err := BuildReceivePlan(item, WorkflowRules{}, ReceiveRequest{
		LineItemID: "LI-002",
		LotEntries: []LotEntry{
			{LotNumber: "L1", Quantity: 5},
			{LotNumber: "L2", Quantity: 0},
			{LotNumber: "L3", Quantity: 8},
		},
		LocationID: "LOC-RECV",
	})

	require.NoError(t, err)
	assert.Equal(t, ReceiveModeLot, plan.Mode)
	require.Len(t, plan.Steps, 2, "zero-quantity entries are skipped")

	// Each step carries the running absolute total, not a delta
	assert.Equal(t, "L1", plan.Steps[0].LotNumber)
	assert.Equal(t, 15, plan.Steps[0].NewTotal)
	assert.Equal(t, "L3", plan.Steps[1].LotNumber)
	assert.Equal(t, 23, plan.Steps[1].NewTotal)
}

func TestBuildReceivePlanPalletMode(t *testing.T) {
	t.Run("pallet mode bypasses lot capture for lot-tracked items", func(t *testing.T) {
		item := &LineItem{LineItemID: "LI-002", SKU: "SKU-002", LotTrackingEnabled: true, QtyExpected: 50}

		plan, err := BuildReceivePlan(item, WorkflowRules{Enabled: true, RequiresLotTracking: true}, ReceiveRequest{
			LineItemID: "LI-002",
			Quantity:   12,
			PalletMode: true,
			LPN:        "LPN-0001",
			LocationID: "LOC-RECV",
		})

		require.NoError(t, err)
		assert.Equal(t, ReceiveModePallet, plan.Mode)
		require.Len(t, plan.Steps, 1)
		assert.Equal(t, "LPN-0001", plan.Steps[0].LPN)
		assert.Empty(t, plan.Steps[0].LotNumber)
	})

	t.Run("blocked without a pallet selection", func(t *testing.T) {
		item := &LineItem{LineItemID: "LI-001", SKU: "SKU-001", QtyExpected: 100}

		plan, err := BuildReceivePlan(item, WorkflowRules{}, ReceiveRequest{
			LineItemID: "LI-001",
			Quantity:   5,
			PalletMode: true,
		})

		assert.ErrorIs(t, err, ErrPalletRequired)
		assert.Nil(t, plan)
	})
}

func TestBuildReceivePlanValidation(t *testing.T) {
	lotItem := LineItem{LineItemID: "LI-002", SKU: "SKU-002", LotTrackingEnabled: true, QtyExpected: 50}

	tests := []struct {
		name        string
		item        LineItem
		rules       WorkflowRules
		req         ReceiveRequest
		expectError error
	}{
		{
			name:        "plain quantity must be positive",
			item:        LineItem{LineItemID: "LI-001", QtyExpected: 100},
			req:         ReceiveRequest{LineItemID: "LI-001", Quantity: 0},
			expectError: ErrNothingToReceive,
		},
		{
			name: "lot total must be positive",
			item: lotItem,
			req: ReceiveRequest{
				LineItemID: "LI-002",
				LotEntries: []LotEntry{{LotNumber: "L1", Quantity: 0}},
			},
			expectError: ErrNothingToReceive,
		},
		{
			name: "entry with quantity needs a lot number",
			item: lotItem,
			req: ReceiveRequest{
				LineItemID: "LI-002",
				LotEntries: []LotEntry{
					{LotNumber: "L1", Quantity: 5},
					{LotNumber: "", Quantity: 3},
				},
			},
			expectError: ErrLotNumberRequired,
		},
		{
			name:  "expiration dates enforced by rules",
			item:  lotItem,
			rules: WorkflowRules{Enabled: true, RequiresExpirationDates: true},
			req: ReceiveRequest{
				LineItemID: "LI-002",
				LotEntries: []LotEntry{{LotNumber: "L1", Quantity: 5}},
			},
			expectError: ErrExpirationDateRequired,
		},
		{
			name:  "missing expiration reported before missing lot number",
			item:  lotItem,
			rules: WorkflowRules{Enabled: true, RequiresExpirationDates: true},
			req: ReceiveRequest{
				LineItemID: "LI-002",
				LotEntries: []LotEntry{{LotNumber: "", ExpirationDate: "", Quantity: 5}},
			},
			expectError: ErrExpirationDateRequired,
		},
		{
			name:  "expiration dates not required when rules disabled",
			item:  lotItem,
			rules: WorkflowRules{Enabled: false, RequiresExpirationDates: true},
			req: ReceiveRequest{
				LineItemID: "LI-002",
				LotEntries: []LotEntry{{LotNumber: "L1", Quantity: 5}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := BuildReceivePlan(&tt.item, tt.rules, tt.req)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, plan)
			} else {
				require.NoError(t, err)
				require.NotNil(t, plan)
			}
		})
	}
}
