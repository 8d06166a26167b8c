package application

import (
	"time"

	"github.com/threepl-platform/inbound-service/internal/domain"
)

// CreateOrderCommand represents a command to create a new inbound order
type CreateOrderCommand struct {
	// Optional explicit order ID (generated if not provided)
	OrderID         string            `json:"orderId"`
	ReferenceNumber string            `json:"referenceNumber"`
	Supplier        string            `json:"supplier"`
	ClientID        string            `json:"clientId"`
	WarehouseID     string            `json:"warehouseId"`
	ExpectedDate    *time.Time        `json:"expectedDate"`
	LineItems       []domain.LineItem `json:"lineItems"`
	Checklist       []string          `json:"checklist"`
}

// AdvanceStatusCommand moves an order one step forward
type AdvanceStatusCommand struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
}

// MarkCompleteCommand is the arrived-to-received operator shortcut
type MarkCompleteCommand struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
}

// ReceiveItemCommand receives quantity against a line item. Exactly one
// of the three receive shapes applies: plain quantity, lot entries, or
// pallet mode with an LPN.
type ReceiveItemCommand struct {
	OrderID    string            `json:"orderId"`
	LineItemID string            `json:"lineItemId"`
	Quantity   int               `json:"quantity"`
	LotEntries []domain.LotEntry `json:"lotEntries"`
	PalletMode bool              `json:"palletMode"`
	LPN        string            `json:"lpn"`
	LocationID string            `json:"locationId"`
	UserID     string            `json:"userId"`
}

// RejectItemCommand rejects quantity on a line item
type RejectItemCommand struct {
	OrderID    string `json:"orderId"`
	LineItemID string `json:"lineItemId"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
	Notes      string `json:"notes"`
	UserID     string `json:"userId"`
}

// ToggleChecklistCommand flips a checklist entry
type ToggleChecklistCommand struct {
	OrderID   string `json:"orderId"`
	EntryID   string `json:"entryId"`
	Completed bool   `json:"completed"`
}

// CreatePalletCommand creates a pallet for receiving
type CreatePalletCommand struct {
	LPN           string `json:"lpn"`
	ContainerType string `json:"containerType"`
	LocationID    string `json:"locationId"`
	ClientID      string `json:"clientId"`
}

// GenerateLotNumberCommand expands a client's lot number format
type GenerateLotNumberCommand struct {
	ClientID string `json:"clientId"`
	SKU      string `json:"sku"`
	Supplier string `json:"supplier"`
}

// CreatePutawayAssignmentCommand builds the putaway list for an order
type CreatePutawayAssignmentCommand struct {
	OrderID    string `json:"orderId"`
	LocationID string `json:"locationId"`
}

// SelectSublocationCommand overrides a putaway item's sublocation
type SelectSublocationCommand struct {
	AssignmentID  string `json:"assignmentId"`
	LineItemID    string `json:"lineItemId"`
	SublocationID string `json:"sublocationId"`
}

// ConfirmPutawayCommand confirms a single putaway item
type ConfirmPutawayCommand struct {
	AssignmentID string `json:"assignmentId"`
	LineItemID   string `json:"lineItemId"`
	UserID       string `json:"userId"`
}

// ConfirmAllPutawayCommand confirms every eligible putaway item in order
type ConfirmAllPutawayCommand struct {
	AssignmentID string `json:"assignmentId"`
	UserID       string `json:"userId"`
}

// StartScanSessionCommand opens a two-phase scanner session
type StartScanSessionCommand struct {
	Workflow    string `json:"workflow"`
	OrderID     string `json:"orderId"`
	UserID      string `json:"userId"`
	WarehouseID string `json:"warehouseId"`
}

// ScanCommand applies one scan to a session
type ScanCommand struct {
	SessionID string `json:"sessionId"`
	Barcode   string `json:"barcode"`
}

// CreateDamageReportCommand files a damage report against an order line
type CreateDamageReportCommand struct {
	OrderID     string `json:"orderId"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes"`
	UserID      string `json:"userId"`
	WarehouseID string `json:"warehouseId"`
}

// CreateClientCommand creates a client profile
type CreateClientCommand struct {
	ClientID      string                 `json:"clientId"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Contacts      []domain.ClientContact `json:"contacts"`
	WorkflowRules domain.WorkflowRules   `json:"workflowRules"`
}

// UpdateClientCommand updates a client profile
type UpdateClientCommand struct {
	ClientID string                 `json:"clientId"`
	Name     string                 `json:"name"`
	Contacts []domain.ClientContact `json:"contacts"`
	Active   *bool                  `json:"active"`
}

// UpdateWorkflowRulesCommand replaces a client's workflow rules
type UpdateWorkflowRulesCommand struct {
	ClientID string               `json:"clientId"`
	Rules    domain.WorkflowRules `json:"rules"`
}
