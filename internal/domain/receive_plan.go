package domain

import "errors"

// Receive modes
const (
	ReceiveModePlain  = "plain"
	ReceiveModeLot    = "lot"
	ReceiveModePallet = "pallet"
)

// Receive validation errors. Messages are surfaced to operators as-is.
var (
	ErrNothingToReceive       = errors.New("total quantity to receive must be greater than zero")
	ErrLotNumberRequired      = errors.New("lot number required")
	ErrExpirationDateRequired = errors.New("expiration date required")
	ErrPalletRequired         = errors.New("select or create a pallet")
)

// LotEntry is one lot being received in a single receiving action. Not
// persisted as its own entity; each entry becomes its own receive step.
type LotEntry struct {
	LotNumber      string `json:"lotNumber"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	BatchNumber    string `json:"batchNumber,omitempty"`
	Quantity       int    `json:"quantity"`
}

// ReceiveRequest describes a single receive action against a line item
// before it is planned into steps
type ReceiveRequest struct {
	LineItemID string
	Quantity   int        // plain and pallet modes
	LotEntries []LotEntry // lot mode
	PalletMode bool
	LPN        string
	LocationID string
	UserID     string
}

// ReceiveStep is one backend call in a planned receive. NewTotal is the
// absolute received total the line must hold after the step, so each lot
// step carries the running cumulative sum.
type ReceiveStep struct {
	LineItemID     string
	Mode           string
	NewTotal       int
	Quantity       int // the delta this step contributes
	LotNumber      string
	ExpirationDate string
	BatchNumber    string
	LPN            string
	LocationID     string
}

// ReceivePlan is the ordered list of steps a receive request resolves to
type ReceivePlan struct {
	LineItemID string
	Mode       string
	Steps      []ReceiveStep
}

// IsLotTracked decides whether lot capture applies to an item under the
// client's workflow rules
func IsLotTracked(item *LineItem, rules WorkflowRules) bool {
	if item.LotTrackingEnabled {
		return true
	}
	return rules.Enabled && (rules.RequiresLotTracking || rules.AutoCreateLots)
}

// BuildReceivePlan validates a receive request and expands it into
// sequential steps. Validation order: quantity total, expiration-required,
// per-entry lot number, pallet selection. Pallet mode bypasses lot
// capture entirely even for lot-tracked items.
func BuildReceivePlan(item *LineItem, rules WorkflowRules, req ReceiveRequest) (*ReceivePlan, error) {
	lotTracked := IsLotTracked(item, rules)
	lotMode := lotTracked && !req.PalletMode

	total := req.Quantity
	if lotMode {
		total = 0
		for _, entry := range req.LotEntries {
			total += entry.Quantity
		}
	}
	if total <= 0 {
		return nil, ErrNothingToReceive
	}

	if lotMode {
		if rules.Enabled && rules.RequiresExpirationDates {
			for _, entry := range req.LotEntries {
				if entry.Quantity > 0 && entry.ExpirationDate == "" {
					return nil, ErrExpirationDateRequired
				}
			}
		}
		for _, entry := range req.LotEntries {
			if entry.Quantity > 0 && entry.LotNumber == "" {
				return nil, ErrLotNumberRequired
			}
		}
	}

	if req.PalletMode && req.LPN == "" {
		return nil, ErrPalletRequired
	}

	plan := &ReceivePlan{LineItemID: req.LineItemID}

	switch {
	case req.PalletMode:
		plan.Mode = ReceiveModePallet
		plan.Steps = []ReceiveStep{{
			LineItemID: req.LineItemID,
			Mode:       ReceiveModePallet,
			NewTotal:   item.QtyReceived + req.Quantity,
			Quantity:   req.Quantity,
			LPN:        req.LPN,
			LocationID: req.LocationID,
		}}
	case lotMode:
		plan.Mode = ReceiveModeLot
		running := item.QtyReceived
		for _, entry := range req.LotEntries {
			if entry.Quantity <= 0 {
				continue
			}
			running += entry.Quantity
			plan.Steps = append(plan.Steps, ReceiveStep{
				LineItemID:     req.LineItemID,
				Mode:           ReceiveModeLot,
				NewTotal:       running,
				Quantity:       entry.Quantity,
				LotNumber:      entry.LotNumber,
				ExpirationDate: entry.ExpirationDate,
				BatchNumber:    entry.BatchNumber,
				LocationID:     req.LocationID,
			})
		}
	default:
		plan.Mode = ReceiveModePlain
		plan.Steps = []ReceiveStep{{
			LineItemID: req.LineItemID,
			Mode:       ReceiveModePlain,
			NewTotal:   item.QtyReceived + req.Quantity,
			Quantity:   req.Quantity,
			LocationID: req.LocationID,
		}}
	}

	return plan, nil
}
