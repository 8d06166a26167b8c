package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBarcode(t *testing.T) {
	tests := []struct {
		code string
		want BarcodeKind
	}{
		{"LPN-20260101-000001", BarcodeKindPallet},
		{"LOC-A", BarcodeKindLocation},
		{"SUB-A1", BarcodeKindSublocation},
		{"SKU-001", BarcodeKindProduct},
		{"0123456789012", BarcodeKindProduct},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBarcode(tt.code))
		})
	}
}

func newPutawaySession(t *testing.T) *ScanSession {
	t.Helper()
	session, err := NewScanSession(WorkflowPutaway, "ORD-000001", "user-1", "WH-001")
	require.NoError(t, err)
	return session
}

func TestNewScanSession(t *testing.T) {
	session := newPutawaySession(t)
	assert.Equal(t, PhaseFirst, session.Phase)
	assert.Equal(t, BarcodeKindProduct, session.ExpectedKind())
	assert.Equal(t, "putaway/first_scan", session.Stage())

	_, err := NewScanSession("teleport", "", "", "")
	assert.ErrorIs(t, err, ErrUnknownWorkflow)
}

func TestScanSessionPhaseGating(t *testing.T) {
	session := newPutawaySession(t)

	// Phase 2 does not open on a wrong-kind scan
	result, err := session.ApplyScan(ResolvedBarcode{Kind: BarcodeKindLocation, Code: "LOC-A"})
	require.NoError(t, err)
	assert.Equal(t, ScanOutcomeWrongKind, result.Outcome)
	assert.Equal(t, ToneFailure, result.Tone)
	assert.Equal(t, PhaseFirst, session.Phase)

	// Nor on a miss
	result, err = session.ApplyScan(ResolvedBarcode{Kind: BarcodeKindNotFound, Code: "XXX"})
	require.NoError(t, err)
	assert.Equal(t, ScanOutcomeNotFound, result.Outcome)
	assert.Equal(t, PhaseFirst, session.Phase)
	assert.False(t, session.CanConfirm())

	// Matching scan advances to phase 2
	result, err = session.ApplyScan(ResolvedBarcode{Kind: BarcodeKindProduct, Code: "SKU-001"})
	require.NoError(t, err)
	assert.Equal(t, ScanOutcomeResolved, result.Outcome)
	assert.Equal(t, ToneSuccess, result.Tone)
	assert.Equal(t, PhaseSecond, session.Phase)
	assert.Equal(t, BarcodeKindSublocation, session.ExpectedKind())
	assert.False(t, session.CanConfirm())

	// Confirm is blocked until both scans are present
	err = session.Confirm()
	assert.ErrorIs(t, err, ErrScansMissingToConfirm)

	_, err = session.ApplyScan(ResolvedBarcode{Kind: BarcodeKindSublocation, Code: "SUB-A1"})
	require.NoError(t, err)
	assert.True(t, session.CanConfirm())

	require.NoError(t, session.Confirm())
	assert.Equal(t, PhaseComplete, session.Phase)

	_, err = session.ApplyScan(ResolvedBarcode{Kind: BarcodeKindProduct, Code: "SKU-001"})
	assert.ErrorIs(t, err, ErrScanSessionComplete)
}

func TestShipWorkflowPairsPalletWithLocation(t *testing.T) {
	session, err := NewScanSession(WorkflowShip, "", "user-1", "WH-001")
	require.NoError(t, err)

	assert.Equal(t, BarcodeKindPallet, session.ExpectedKind())

	_, err = session.ApplyScan(ResolvedBarcode{Kind: BarcodeKindPallet, Code: "LPN-0001"})
	require.NoError(t, err)
	assert.Equal(t, BarcodeKindLocation, session.ExpectedKind())
}

func TestMuteSuppressesTonesOnly(t *testing.T) {
	session := newPutawaySession(t)
	session.SetMuted(true)

	result, err := session.ApplyScan(ResolvedBarcode{Kind: BarcodeKindProduct, Code: "SKU-001"})
	require.NoError(t, err)
	assert.Equal(t, ToneNone, result.Tone)
	assert.Equal(t, ScanOutcomeResolved, result.Outcome)
	assert.Equal(t, PhaseSecond, session.Phase)
}

func TestNewScanEvent(t *testing.T) {
	event := NewScanEvent("SS-1", "ORD-000001", "SKU-001", BarcodeKindProduct, "putaway/first_scan", ScanOutcomeResolved, "user-1", "WH-001")

	assert.NotEmpty(t, event.ScanID)
	assert.Equal(t, "putaway/first_scan", event.Stage)
	assert.Equal(t, ScanOutcomeResolved, event.Outcome)
	assert.NotZero(t, event.ScannedAt)
}
