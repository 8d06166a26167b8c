package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowRulesNormalize(t *testing.T) {
	t.Run("fills version and default lot format", func(t *testing.T) {
		rules := WorkflowRules{AutoCreateLots: true}
		rules.Normalize()

		assert.Equal(t, WorkflowRulesVersion, rules.Version)
		assert.Equal(t, DefaultLotNumberFormat, rules.LotNumberFormat)
		assert.NotNil(t, rules.AllowedContainerTypes)
	})

	t.Run("keeps configured format", func(t *testing.T) {
		rules := WorkflowRules{AutoCreateLots: true, LotNumberFormat: "{SUPPLIER}-{DATE}"}
		rules.Normalize()

		assert.Equal(t, "{SUPPLIER}-{DATE}", rules.LotNumberFormat)
	})
}

func TestWorkflowRulesValidate(t *testing.T) {
	tests := []struct {
		name        string
		rules       WorkflowRules
		expectError error
	}{
		{
			name:  "defaults are valid",
			rules: DefaultWorkflowRules(),
		},
		{
			name:        "unknown version",
			rules:       WorkflowRules{Version: 99},
			expectError: ErrUnknownRulesVersion,
		},
		{
			name:        "auto-create needs a tokenized format",
			rules:       WorkflowRules{Version: 1, AutoCreateLots: true, LotNumberFormat: "FIXED"},
			expectError: ErrInvalidLotFormat,
		},
		{
			name:        "blank container type entry",
			rules:       WorkflowRules{Version: 1, AllowedContainerTypes: []string{"pallet", " "}},
			expectError: ErrEmptyContainerType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllowsContainerType(t *testing.T) {
	unrestricted := WorkflowRules{}
	assert.True(t, unrestricted.AllowsContainerType("pallet"))

	restricted := WorkflowRules{AllowedContainerTypes: []string{"pallet", "gaylord"}}
	assert.True(t, restricted.AllowsContainerType("Pallet"))
	assert.False(t, restricted.AllowsContainerType("carton"))
}

func TestGenerateLotNumber(t *testing.T) {
	rules := WorkflowRules{LotNumberFormat: "{SKU}-{SUPPLIER}-{DATE}-{RAND}"}

	lot := rules.GenerateLotNumber("SKU-001", "Acme Supply Co.")

	assert.True(t, strings.HasPrefix(lot, "SKU-001-ACMESUPPLYCO-"))
	assert.NotContains(t, lot, "{")
}

func TestExpandLotFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	lot := expandLotFormat("{SKU}/{DATE}", "SKU-9", "ignored", now)
	assert.Equal(t, "SKU-9/20260315", lot)

	withRand := expandLotFormat("{RAND}", "", "", now)
	require.Len(t, withRand, 4)
	assert.NotContains(t, withRand, "{")
}

func TestGenerateLotNumberFallsBackToDefaultFormat(t *testing.T) {
	rules := WorkflowRules{}
	lot := rules.GenerateLotNumber("SKU-001", "Acme")
	assert.True(t, strings.HasPrefix(lot, "SKU-001-"))
}
