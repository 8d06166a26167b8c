package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scanning errors
var (
	ErrScanSessionNotFound   = errors.New("scan session not found")
	ErrScanSessionComplete   = errors.New("scan session already complete")
	ErrUnknownWorkflow       = errors.New("unknown scanner workflow")
	ErrScansMissingToConfirm = errors.New("both scans required before confirm")
)

// BarcodeKind is the entity type a scanned code resolves to
type BarcodeKind string

const (
	BarcodeKindProduct     BarcodeKind = "product"
	BarcodeKindPallet      BarcodeKind = "pallet"
	BarcodeKindLocation    BarcodeKind = "location"
	BarcodeKindSublocation BarcodeKind = "sublocation"
	BarcodeKindNotFound    BarcodeKind = "not_found"
)

// ResolvedBarcode is the tagged result of a barcode lookup. Exactly one
// entity field is set to match the Kind; all are nil for not_found.
type ResolvedBarcode struct {
	Kind        BarcodeKind  `json:"kind"`
	Code        string       `json:"code"`
	LineItem    *LineItem    `json:"lineItem,omitempty"`
	Pallet      *Pallet      `json:"pallet,omitempty"`
	Location    *Location    `json:"location,omitempty"`
	Sublocation *Sublocation `json:"sublocation,omitempty"`
}

// ClassifyBarcode determines the entity kind a code should be resolved
// against, by prefix: LPN- for pallets, LOC- for locations, SUB- for
// sublocations, everything else is treated as a SKU.
func ClassifyBarcode(code string) BarcodeKind {
	switch {
	case strings.HasPrefix(code, "LPN-"):
		return BarcodeKindPallet
	case strings.HasPrefix(code, "LOC-"):
		return BarcodeKindLocation
	case strings.HasPrefix(code, "SUB-"):
		return BarcodeKindSublocation
	default:
		return BarcodeKindProduct
	}
}

// ScanOutcome tags a logged scan event
type ScanOutcome string

const (
	ScanOutcomeResolved  ScanOutcome = "resolved"
	ScanOutcomeNotFound  ScanOutcome = "not_found"
	ScanOutcomeWrongKind ScanOutcome = "wrong_kind"
	ScanOutcomeConfirmed ScanOutcome = "confirmed"
)

// ScanTone is advisory audio feedback; it never affects state
type ScanTone string

const (
	ToneSuccess ScanTone = "success"
	ToneFailure ScanTone = "failure"
	ToneNone    ScanTone = "none"
)

// ScanEvent is the persisted audit record of a single scan, successful
// or not
type ScanEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ScanID      string             `bson:"scanId" json:"scanId"`
	SessionID   string             `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	OrderID     string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Barcode     string             `bson:"barcode" json:"barcode"`
	Kind        BarcodeKind        `bson:"kind" json:"kind"`
	Stage       string             `bson:"stage" json:"stage"`
	Outcome     ScanOutcome        `bson:"outcome" json:"outcome"`
	UserID      string             `bson:"userId,omitempty" json:"userId,omitempty"`
	WarehouseID string             `bson:"warehouseId,omitempty" json:"warehouseId,omitempty"`
	ScannedAt   time.Time          `bson:"scannedAt" json:"scannedAt"`
}

// NewScanEvent builds a scan event record
func NewScanEvent(sessionID, orderID, barcode string, kind BarcodeKind, stage string, outcome ScanOutcome, userID, warehouseID string) *ScanEvent {
	return &ScanEvent{
		ID:          primitive.NewObjectID(),
		ScanID:      "SCAN-" + uuid.New().String(),
		SessionID:   sessionID,
		OrderID:     orderID,
		Barcode:     barcode,
		Kind:        kind,
		Stage:       stage,
		Outcome:     outcome,
		UserID:      userID,
		WarehouseID: warehouseID,
		ScannedAt:   time.Now().UTC(),
	}
}

// ScannerWorkflow identifies the two-phase scanner variant
type ScannerWorkflow string

const (
	WorkflowShip    ScannerWorkflow = "ship"
	WorkflowPutaway ScannerWorkflow = "putaway"
)

// ScanPhase is the session's position in the two-scan sequence
type ScanPhase string

const (
	PhaseFirst    ScanPhase = "first_scan"
	PhaseSecond   ScanPhase = "second_scan"
	PhaseComplete ScanPhase = "complete"
)

// workflowStages maps a workflow to the barcode kinds its two phases
// expect. Ship pairs a pallet with a dock location; putaway pairs a
// product with a sublocation.
var workflowStages = map[ScannerWorkflow][2]BarcodeKind{
	WorkflowShip:    {BarcodeKindPallet, BarcodeKindLocation},
	WorkflowPutaway: {BarcodeKindProduct, BarcodeKindSublocation},
}

// ScanSession is a two-phase scanner state machine. Phase 2 opens only
// after phase 1 resolves the expected kind; confirm requires both scans.
type ScanSession struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID     string             `bson:"sessionId" json:"sessionId"`
	Workflow      ScannerWorkflow    `bson:"workflow" json:"workflow"`
	OrderID       string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Phase         ScanPhase          `bson:"phase" json:"phase"`
	FirstBarcode  string             `bson:"firstBarcode,omitempty" json:"firstBarcode,omitempty"`
	FirstKind     BarcodeKind        `bson:"firstKind,omitempty" json:"firstKind,omitempty"`
	SecondBarcode string             `bson:"secondBarcode,omitempty" json:"secondBarcode,omitempty"`
	SecondKind    BarcodeKind        `bson:"secondKind,omitempty" json:"secondKind,omitempty"`
	Muted         bool               `bson:"muted" json:"muted"`
	UserID        string             `bson:"userId,omitempty" json:"userId,omitempty"`
	WarehouseID   string             `bson:"warehouseId,omitempty" json:"warehouseId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewScanSession starts a session for a workflow
func NewScanSession(workflow ScannerWorkflow, orderID, userID, warehouseID string) (*ScanSession, error) {
	if _, ok := workflowStages[workflow]; !ok {
		return nil, ErrUnknownWorkflow
	}
	now := time.Now().UTC()
	return &ScanSession{
		ID:          primitive.NewObjectID(),
		SessionID:   "SS-" + uuid.New().String(),
		Workflow:    workflow,
		OrderID:     orderID,
		Phase:       PhaseFirst,
		UserID:      userID,
		WarehouseID: warehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ExpectedKind returns the barcode kind the current phase requires
func (s *ScanSession) ExpectedKind() BarcodeKind {
	stages := workflowStages[s.Workflow]
	if s.Phase == PhaseSecond {
		return stages[1]
	}
	return stages[0]
}

// Stage returns the workflow-stage tag for scan event logging
func (s *ScanSession) Stage() string {
	return string(s.Workflow) + "/" + string(s.Phase)
}

// ScanResult is the session's reaction to a scan: the outcome to log and
// the advisory tone to play
type ScanResult struct {
	Outcome ScanOutcome `json:"outcome"`
	Tone    ScanTone    `json:"tone"`
	Phase   ScanPhase   `json:"phase"`
}

// ApplyScan advances the session with a resolved barcode. Misses and
// wrong-kind scans do not advance the phase but still produce an outcome
// for the audit log.
func (s *ScanSession) ApplyScan(resolved ResolvedBarcode) (ScanResult, error) {
	if s.Phase == PhaseComplete {
		return ScanResult{}, ErrScanSessionComplete
	}

	result := ScanResult{Phase: s.Phase}
	switch {
	case resolved.Kind == BarcodeKindNotFound:
		result.Outcome = ScanOutcomeNotFound
		result.Tone = s.tone(ToneFailure)
	case resolved.Kind != s.ExpectedKind():
		result.Outcome = ScanOutcomeWrongKind
		result.Tone = s.tone(ToneFailure)
	default:
		result.Outcome = ScanOutcomeResolved
		result.Tone = s.tone(ToneSuccess)
		if s.Phase == PhaseFirst {
			s.FirstBarcode = resolved.Code
			s.FirstKind = resolved.Kind
			s.Phase = PhaseSecond
		} else {
			s.SecondBarcode = resolved.Code
			s.SecondKind = resolved.Kind
		}
		result.Phase = s.Phase
	}
	s.UpdatedAt = time.Now().UTC()
	return result, nil
}

// CanConfirm reports whether both scans are present
func (s *ScanSession) CanConfirm() bool {
	return s.FirstBarcode != "" && s.SecondBarcode != "" && s.Phase != PhaseComplete
}

// Confirm completes the session
func (s *ScanSession) Confirm() error {
	if s.Phase == PhaseComplete {
		return ErrScanSessionComplete
	}
	if !s.CanConfirm() {
		return ErrScansMissingToConfirm
	}
	s.Phase = PhaseComplete
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// SetMuted toggles audio feedback for the session
func (s *ScanSession) SetMuted(muted bool) {
	s.Muted = muted
	s.UpdatedAt = time.Now().UTC()
}

func (s *ScanSession) tone(t ScanTone) ScanTone {
	if s.Muted {
		return ToneNone
	}
	return t
}
