package dto

import "time"

// OrderResponse represents an inbound order with reconciliation summary
type OrderResponse struct {
	ID              string                  `json:"id"`
	OrderID         string                  `json:"orderId"`
	ReferenceNumber string                  `json:"referenceNumber"`
	Supplier        string                  `json:"supplier,omitempty"`
	ClientID        string                  `json:"clientId,omitempty"`
	WarehouseID     string                  `json:"warehouseId,omitempty"`
	Status          string                  `json:"status"`
	LineItems       []LineItemResponse      `json:"lineItems"`
	ReceiptRecords  []ReceiptRecordResponse `json:"receiptRecords"`
	Checklist       []ChecklistResponse     `json:"checklist,omitempty"`
	ExpectedDate    *time.Time              `json:"expectedDate,omitempty"`
	ReceivedDate    *time.Time              `json:"receivedDate,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
	// Summary fields
	TotalExpected   int  `json:"totalExpected"`
	TotalReceived   int  `json:"totalReceived"`
	IsFullyReceived bool `json:"isFullyReceived"`
}

// LineItemResponse represents a line item with its reconciliation badge
type LineItemResponse struct {
	LineItemID         string `json:"lineItemId"`
	SKU                string `json:"sku"`
	ProductName        string `json:"productName"`
	LotTrackingEnabled bool   `json:"lotTrackingEnabled"`
	QtyExpected        int    `json:"qtyExpected"`
	QtyReceived        int    `json:"qtyReceived"`
	QtyRejected        int    `json:"qtyRejected"`
	QtyDamaged         int    `json:"qtyDamaged"`
	Remaining          int    `json:"remaining"`
	Badge              string `json:"badge"`
	RejectionReason    string `json:"rejectionReason,omitempty"`
	RejectionNotes     string `json:"rejectionNotes,omitempty"`
}

// ReceiptRecordResponse represents a single receive action
type ReceiptRecordResponse struct {
	ReceiptID      string    `json:"receiptId"`
	LineItemID     string    `json:"lineItemId"`
	SKU            string    `json:"sku"`
	Quantity       int       `json:"quantity"`
	Mode           string    `json:"mode"`
	LotNumber      string    `json:"lotNumber,omitempty"`
	ExpirationDate string    `json:"expirationDate,omitempty"`
	BatchNumber    string    `json:"batchNumber,omitempty"`
	LPN            string    `json:"lpn,omitempty"`
	LocationID     string    `json:"locationId,omitempty"`
	ReceivedBy     string    `json:"receivedBy,omitempty"`
	ReceivedAt     time.Time `json:"receivedAt"`
}

// ChecklistResponse represents a checklist entry
type ChecklistResponse struct {
	EntryID   string `json:"entryId"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// OrderSummary represents an order in list views
type OrderSummary struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"orderId"`
	ReferenceNumber string     `json:"referenceNumber"`
	Supplier        string     `json:"supplier,omitempty"`
	ClientID        string     `json:"clientId,omitempty"`
	Status          string     `json:"status"`
	LineItemCount   int        `json:"lineItemCount"`
	TotalExpected   int        `json:"totalExpected"`
	TotalReceived   int        `json:"totalReceived"`
	ExpectedDate    *time.Time `json:"expectedDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// OrderListResponse represents a page of orders
type OrderListResponse struct {
	Orders []OrderSummary `json:"orders"`
	Total  int            `json:"total"`
}

// StepResultResponse is the outcome of one step in a sequential batch
type StepResultResponse struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// StepReportResponse is the outcome of a whole sequential batch
type StepReportResponse struct {
	Results   []StepResultResponse `json:"results"`
	Attempted int                  `json:"attempted"`
	Succeeded int                  `json:"succeeded"`
	Failed    bool                 `json:"failed"`
}

// ReceiveOutcomeResponse is the result of a receive action, including
// per-step outcomes for multi-lot submissions
type ReceiveOutcomeResponse struct {
	Order         OrderResponse      `json:"order"`
	Report        StepReportResponse `json:"report"`
	AutoCompleted bool               `json:"autoCompleted"`
}

// PalletContentResponse is a product+quantity pair on a pallet
type PalletContentResponse struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// PalletResponse represents a pallet
type PalletResponse struct {
	ID            string                  `json:"id"`
	LPN           string                  `json:"lpn"`
	ContainerType string                  `json:"containerType"`
	LocationID    string                  `json:"locationId,omitempty"`
	ClientID      string                  `json:"clientId,omitempty"`
	Contents      []PalletContentResponse `json:"contents"`
	Status        string                  `json:"status"`
	TotalQuantity int                     `json:"totalQuantity"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// PalletListResponse represents a page of pallets
type PalletListResponse struct {
	Pallets []PalletResponse `json:"pallets"`
	Total   int              `json:"total"`
}

// LotNumberResponse carries a generated lot number
type LotNumberResponse struct {
	LotNumber string `json:"lotNumber"`
}

// WorkflowRulesResponse is the effective receiving configuration
type WorkflowRulesResponse struct {
	Version                 int      `json:"version"`
	Enabled                 bool     `json:"enabled"`
	RequiresLotTracking     bool     `json:"requiresLotTracking"`
	RequiresExpirationDates bool     `json:"requiresExpirationDates"`
	RequiresInspection      bool     `json:"requiresInspection"`
	AutoCreateLots          bool     `json:"autoCreateLots"`
	LotNumberFormat         string   `json:"lotNumberFormat,omitempty"`
	AllowedContainerTypes   []string `json:"allowedContainerTypes,omitempty"`
}

// PutawayItemResponse is one received line awaiting placement
type PutawayItemResponse struct {
	LineItemID            string     `json:"lineItemId"`
	SKU                   string     `json:"sku"`
	ProductName           string     `json:"productName"`
	Quantity              int        `json:"quantity"`
	SuggestedSublocation  string     `json:"suggestedSublocation,omitempty"`
	SuggestionReason      string     `json:"suggestionReason,omitempty"`
	SelectedSublocationID string     `json:"selectedSublocationId,omitempty"`
	Confirmed             bool       `json:"confirmed"`
	ConfirmedAt           *time.Time `json:"confirmedAt,omitempty"`
	ConfirmedBy           string     `json:"confirmedBy,omitempty"`
}

// PutawayAssignmentResponse groups the putaway items of one order
type PutawayAssignmentResponse struct {
	ID           string                `json:"id"`
	AssignmentID string                `json:"assignmentId"`
	OrderID      string                `json:"orderId"`
	LocationID   string                `json:"locationId"`
	Items        []PutawayItemResponse `json:"items"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	// Summary fields
	ConfirmedCount int  `json:"confirmedCount"`
	PendingCount   int  `json:"pendingCount"`
	IsComplete     bool `json:"isComplete"`
}

// ConfirmAllResponse is the result of a confirm-all action
type ConfirmAllResponse struct {
	Assignment PutawayAssignmentResponse `json:"assignment"`
	Report     StepReportResponse        `json:"report"`
}

// SuggestionResponse is a suggested sublocation with its reason
type SuggestionResponse struct {
	SublocationID string `json:"sublocationId"`
	Name          string `json:"name"`
	Reason        string `json:"reason"`
}

// SublocationResponse is a bin or shelf subdivision with capacity info
type SublocationResponse struct {
	SublocationID string                  `json:"sublocationId"`
	Name          string                  `json:"name"`
	Capacity      int                     `json:"capacity"`
	UsedCapacity  int                     `json:"usedCapacity"`
	FreeCapacity  int                     `json:"freeCapacity"`
	Stock         []PalletContentResponse `json:"stock,omitempty"`
}

// LocationResponse is a warehouse area with its sublocations
type LocationResponse struct {
	ID           string                `json:"id"`
	LocationID   string                `json:"locationId"`
	Name         string                `json:"name"`
	Type         string                `json:"type"`
	WarehouseID  string                `json:"warehouseId,omitempty"`
	Sublocations []SublocationResponse `json:"sublocations"`
}

// LocationListResponse represents all putaway-eligible locations
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Total     int                `json:"total"`
}

// ScanSessionResponse is a scanner session's current state
type ScanSessionResponse struct {
	SessionID     string    `json:"sessionId"`
	Workflow      string    `json:"workflow"`
	OrderID       string    `json:"orderId,omitempty"`
	Phase         string    `json:"phase"`
	ExpectedKind  string    `json:"expectedKind"`
	FirstBarcode  string    `json:"firstBarcode,omitempty"`
	FirstKind     string    `json:"firstKind,omitempty"`
	SecondBarcode string    `json:"secondBarcode,omitempty"`
	SecondKind    string    `json:"secondKind,omitempty"`
	Muted         bool      `json:"muted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ResolvedBarcodeResponse is the tagged result of a barcode lookup
type ResolvedBarcodeResponse struct {
	Kind        string               `json:"kind"`
	Code        string               `json:"code"`
	LineItem    *LineItemResponse    `json:"lineItem,omitempty"`
	Pallet      *PalletResponse      `json:"pallet,omitempty"`
	Location    *LocationResponse    `json:"location,omitempty"`
	Sublocation *SublocationResponse `json:"sublocation,omitempty"`
}

// ScanOutcomeResponse is the session's reaction to one scan
type ScanOutcomeResponse struct {
	Session  ScanSessionResponse     `json:"session"`
	Resolved ResolvedBarcodeResponse `json:"resolved"`
	Outcome  string                  `json:"outcome"`
	Tone     string                  `json:"tone"`
	Phase    string                  `json:"phase"`
}

// ScanEventResponse is one audited scan
type ScanEventResponse struct {
	ScanID      string    `json:"scanId"`
	SessionID   string    `json:"sessionId,omitempty"`
	OrderID     string    `json:"orderId,omitempty"`
	Barcode     string    `json:"barcode"`
	Kind        string    `json:"kind"`
	Stage       string    `json:"stage"`
	Outcome     string    `json:"outcome"`
	UserID      string    `json:"userId,omitempty"`
	WarehouseID string    `json:"warehouseId,omitempty"`
	ScannedAt   time.Time `json:"scannedAt"`
}

// ScanHistoryResponse represents a session's scan audit trail
type ScanHistoryResponse struct {
	Scans []ScanEventResponse `json:"scans"`
	Total int                 `json:"total"`
}

// DamageReportResponse represents a damage report
type DamageReportResponse struct {
	ID          string    `json:"id"`
	ReportID    string    `json:"reportId"`
	OrderID     string    `json:"orderId"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes,omitempty"`
	PhotoURLs   []string  `json:"photoUrls,omitempty"`
	Resolved    bool      `json:"resolved"`
	ReportedBy  string    `json:"reportedBy,omitempty"`
	WarehouseID string    `json:"warehouseId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DamageReportListResponse represents a page of damage reports
type DamageReportListResponse struct {
	Reports []DamageReportResponse `json:"reports"`
	Total   int                    `json:"total"`
}

// ClientContactResponse is a contact person on a client profile
type ClientContactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ClientResponse represents a client profile
type ClientResponse struct {
	ID            string                  `json:"id"`
	ClientID      string                  `json:"clientId"`
	Code          string                  `json:"code"`
	Name          string                  `json:"name"`
	Contacts      []ClientContactResponse `json:"contacts,omitempty"`
	Active        bool                    `json:"active"`
	WorkflowRules WorkflowRulesResponse   `json:"workflowRules"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// ClientListResponse represents a page of clients
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Total   int              `json:"total"`
}

// DashboardResponse aggregates the landing page counters
type DashboardResponse struct {
	OrdersByStatus    map[string]int64  `json:"ordersByStatus"`
	OpenDamageReports int64             `json:"openDamageReports"`
	PendingPutaways   int64             `json:"pendingPutaways"`
	ExpectedToday     []OrderSummary    `json:"expectedToday"`
	SectionErrors     map[string]string `json:"sectionErrors,omitempty"`
	GeneratedAt       time.Time         `json:"generatedAt"`
}
