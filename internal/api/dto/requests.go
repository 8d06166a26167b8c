package dto

import "time"

// CreateOrderRequest represents the request to create a new inbound order
type CreateOrderRequest struct {
	OrderID         string            `json:"orderId,omitempty" binding:"omitempty,order_id"`
	ReferenceNumber string            `json:"referenceNumber" binding:"required,safe_string"`
	Supplier        string            `json:"supplier,omitempty" binding:"omitempty,safe_string"`
	ClientID        string            `json:"clientId,omitempty"`
	ExpectedDate    *time.Time        `json:"expectedDate,omitempty"`
	LineItems       []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
	Checklist       []string          `json:"checklist,omitempty"`
}

// LineItemRequest represents an expected product line on a new order
type LineItemRequest struct {
	SKU                string `json:"sku" binding:"required,sku"`
	ProductName        string `json:"productName" binding:"required,safe_string"`
	LotTrackingEnabled bool   `json:"lotTrackingEnabled"`
	QtyExpected        int    `json:"qtyExpected" binding:"required,min=1"`
}

// AdvanceStatusRequest moves an order one step forward in the status chain
type AdvanceStatusRequest struct {
	UserID string `json:"userId,omitempty"`
}

// MarkCompleteRequest is the arrived-to-received operator shortcut
type MarkCompleteRequest struct {
	UserID string `json:"userId,omitempty"`
}

// ReceiveItemRequest represents a receive action against a line item.
// Plain receives carry a quantity, lot receives carry lot entries, and
// pallet receives carry an LPN.
type ReceiveItemRequest struct {
	Quantity   int               `json:"quantity,omitempty" binding:"omitempty,min=1"`
	LotEntries []LotEntryRequest `json:"lotEntries,omitempty" binding:"omitempty,dive"`
	PalletMode bool              `json:"palletMode,omitempty"`
	LPN        string            `json:"lpn,omitempty" binding:"omitempty,lpn"`
	LocationID string            `json:"locationId,omitempty" binding:"omitempty,location_id"`
	UserID     string            `json:"userId,omitempty"`
}

// LotEntryRequest is one lot line within a lot-mode receive. Blank rows
// with quantity zero are accepted and skipped during planning; whether a
// lot number or expiration date is required is decided by the plan, not
// the binding.
type LotEntryRequest struct {
	LotNumber      string `json:"lotNumber,omitempty" binding:"omitempty,lot_number"`
	Quantity       int    `json:"quantity,omitempty" binding:"min=0"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	BatchNumber    string `json:"batchNumber,omitempty"`
}

// RejectItemRequest rejects quantity on a line item
type RejectItemRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Reason   string `json:"reason" binding:"required,safe_string"`
	Notes    string `json:"notes,omitempty" binding:"omitempty,safe_string"`
	UserID   string `json:"userId,omitempty"`
}

// ToggleChecklistRequest flips a checklist entry
type ToggleChecklistRequest struct {
	Completed bool `json:"completed"`
}

// CreatePalletRequest creates a pallet for receiving. The LPN is
// generated when omitted.
type CreatePalletRequest struct {
	LPN           string `json:"lpn,omitempty" binding:"omitempty,lpn"`
	ContainerType string `json:"containerType" binding:"required,safe_string"`
	LocationID    string `json:"locationId,omitempty" binding:"omitempty,location_id"`
	ClientID      string `json:"clientId,omitempty"`
}

// GenerateLotNumberRequest expands a client's lot number format
type GenerateLotNumberRequest struct {
	ClientID string `json:"clientId,omitempty"`
	SKU      string `json:"sku" binding:"required,sku"`
	Supplier string `json:"supplier,omitempty" binding:"omitempty,safe_string"`
}

// CreatePutawayAssignmentRequest builds the putaway list for an order
type CreatePutawayAssignmentRequest struct {
	OrderID    string `json:"orderId" binding:"required,order_id"`
	LocationID string `json:"locationId" binding:"required,location_id"`
}

// SelectSublocationRequest overrides a putaway item's sublocation
type SelectSublocationRequest struct {
	LineItemID    string `json:"lineItemId" binding:"required"`
	SublocationID string `json:"sublocationId" binding:"required,sublocation_id"`
}

// ConfirmPutawayRequest confirms a single putaway item
type ConfirmPutawayRequest struct {
	LineItemID string `json:"lineItemId" binding:"required"`
	UserID     string `json:"userId,omitempty"`
}

// ConfirmAllPutawayRequest confirms every eligible putaway item
type ConfirmAllPutawayRequest struct {
	UserID string `json:"userId,omitempty"`
}

// StartScanSessionRequest opens a two-phase scanner session
type StartScanSessionRequest struct {
	Workflow    string `json:"workflow" binding:"required,oneof=ship putaway"`
	OrderID     string `json:"orderId,omitempty" binding:"omitempty,order_id"`
	UserID      string `json:"userId,omitempty"`
	WarehouseID string `json:"warehouseId,omitempty"`
}

// ScanRequest applies one scanned barcode to a session
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required,safe_string"`
}

// SetMutedRequest toggles the session's audio feedback
type SetMutedRequest struct {
	Muted bool `json:"muted"`
}

// CreateDamageReportRequest files a damage report against an order line
type CreateDamageReportRequest struct {
	OrderID     string `json:"orderId" binding:"required,order_id"`
	SKU         string `json:"sku" binding:"required,sku"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	Reason      string `json:"reason" binding:"required,safe_string"`
	Notes       string `json:"notes,omitempty" binding:"omitempty,safe_string"`
	UserID      string `json:"userId,omitempty"`
	WarehouseID string `json:"warehouseId,omitempty"`
}

// ResolveDamageReportRequest sets a report's resolved flag
type ResolveDamageReportRequest struct {
	Resolved bool `json:"resolved"`
}

// WorkflowRulesRequest is the per-client receiving configuration
type WorkflowRulesRequest struct {
	Version                 int      `json:"version,omitempty"`
	Enabled                 bool     `json:"enabled"`
	RequiresLotTracking     bool     `json:"requiresLotTracking"`
	RequiresExpirationDates bool     `json:"requiresExpirationDates"`
	RequiresInspection      bool     `json:"requiresInspection"`
	AutoCreateLots          bool     `json:"autoCreateLots"`
	LotNumberFormat         string   `json:"lotNumberFormat,omitempty"`
	AllowedContainerTypes   []string `json:"allowedContainerTypes,omitempty"`
}

// ClientContactRequest is a contact person on a client profile
type ClientContactRequest struct {
	Name  string `json:"name" binding:"required,safe_string"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty" binding:"omitempty,safe_string"`
}

// CreateClientRequest creates a client profile
type CreateClientRequest struct {
	Code          string                 `json:"code" binding:"required,safe_string"`
	Name          string                 `json:"name" binding:"required,safe_string"`
	Contacts      []ClientContactRequest `json:"contacts,omitempty" binding:"omitempty,dive"`
	WorkflowRules *WorkflowRulesRequest  `json:"workflowRules,omitempty"`
}

// UpdateClientRequest updates a client profile
type UpdateClientRequest struct {
	Name     string                 `json:"name" binding:"required,safe_string"`
	Contacts []ClientContactRequest `json:"contacts,omitempty" binding:"omitempty,dive"`
	Active   *bool                  `json:"active,omitempty"`
}
