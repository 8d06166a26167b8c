package dto

import (
	"github.com/threepl-platform/inbound-service/internal/application"
	"github.com/threepl-platform/inbound-service/internal/domain"
)

// FromOrder maps an inbound order to its response shape
func FromOrder(order *domain.InboundOrder) OrderResponse {
	lineItems := make([]LineItemResponse, 0, len(order.LineItems))
	for i := range order.LineItems {
		lineItems = append(lineItems, FromLineItem(&order.LineItems[i]))
	}

	receipts := make([]ReceiptRecordResponse, 0, len(order.ReceiptRecords))
	for _, rec := range order.ReceiptRecords {
		receipts = append(receipts, ReceiptRecordResponse{
			ReceiptID:      rec.ReceiptID,
			LineItemID:     rec.LineItemID,
			SKU:            rec.SKU,
			Quantity:       rec.Quantity,
			Mode:           rec.Mode,
			LotNumber:      rec.LotNumber,
			ExpirationDate: rec.ExpirationDate,
			BatchNumber:    rec.BatchNumber,
			LPN:            rec.LPN,
			LocationID:     rec.LocationID,
			ReceivedBy:     rec.ReceivedBy,
			ReceivedAt:     rec.ReceivedAt,
		})
	}

	var checklist []ChecklistResponse
	for _, entry := range order.Checklist {
		checklist = append(checklist, ChecklistResponse{
			EntryID:   entry.EntryID,
			Label:     entry.Label,
			Completed: entry.Completed,
		})
	}

	return OrderResponse{
		ID:              order.ID.Hex(),
		OrderID:         order.OrderID,
		ReferenceNumber: order.ReferenceNumber,
		Supplier:        order.Supplier,
		ClientID:        order.ClientID,
		WarehouseID:     order.WarehouseID,
		Status:          string(order.Status),
		LineItems:       lineItems,
		ReceiptRecords:  receipts,
		Checklist:       checklist,
		ExpectedDate:    order.ExpectedDate,
		ReceivedDate:    order.ReceivedDate,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		TotalExpected:   order.TotalExpected(),
		TotalReceived:   order.TotalReceived(),
		IsFullyReceived: order.IsFullyReceived(),
	}
}

// FromLineItem maps a line item with its computed reconciliation fields
func FromLineItem(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:         li.LineItemID,
		SKU:                li.SKU,
		ProductName:        li.ProductName,
		LotTrackingEnabled: li.LotTrackingEnabled,
		QtyExpected:        li.QtyExpected,
		QtyReceived:        li.QtyReceived,
		QtyRejected:        li.QtyRejected,
		QtyDamaged:         li.QtyDamaged,
		Remaining:          li.Remaining(),
		Badge:              string(li.Badge()),
		RejectionReason:    li.RejectionReason,
		RejectionNotes:     li.RejectionNotes,
	}
}

// FromOrderSummary maps an order to its list-view shape
func FromOrderSummary(order *domain.InboundOrder) OrderSummary {
	return OrderSummary{
		ID:              order.ID.Hex(),
		OrderID:         order.OrderID,
		ReferenceNumber: order.ReferenceNumber,
		Supplier:        order.Supplier,
		ClientID:        order.ClientID,
		Status:          string(order.Status),
		LineItemCount:   len(order.LineItems),
		TotalExpected:   order.TotalExpected(),
		TotalReceived:   order.TotalReceived(),
		ExpectedDate:    order.ExpectedDate,
		CreatedAt:       order.CreatedAt,
	}
}

// FromOrderList maps a page of orders
func FromOrderList(orders []*domain.InboundOrder) OrderListResponse {
	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, FromOrderSummary(order))
	}
	return OrderListResponse{Orders: summaries, Total: len(summaries)}
}

// FromStepReport maps a sequential batch report
func FromStepReport(report *application.StepReport) StepReportResponse {
	results := make([]StepResultResponse, 0, len(report.Results))
	for _, r := range report.Results {
		results = append(results, StepResultResponse{
			Index:   r.Index,
			Label:   r.Label,
			Success: r.Success,
			Error:   r.Error,
		})
	}
	return StepReportResponse{
		Results:   results,
		Attempted: report.Attempted,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	}
}

// FromReceiveOutcome maps a receive action's result
func FromReceiveOutcome(outcome *application.ReceiveOutcome) ReceiveOutcomeResponse {
	return ReceiveOutcomeResponse{
		Order:         FromOrder(outcome.Order),
		Report:        FromStepReport(outcome.Report),
		AutoCompleted: outcome.AutoCompleted,
	}
}

// FromPallet maps a pallet
func FromPallet(pallet *domain.Pallet) PalletResponse {
	contents := make([]PalletContentResponse, 0, len(pallet.Contents))
	for _, content := range pallet.Contents {
		contents = append(contents, PalletContentResponse{
			SKU:      content.SKU,
			Quantity: content.Quantity,
		})
	}
	return PalletResponse{
		ID:            pallet.ID.Hex(),
		LPN:           pallet.LPN,
		ContainerType: pallet.ContainerType,
		LocationID:    pallet.LocationID,
		ClientID:      pallet.ClientID,
		Contents:      contents,
		Status:        string(pallet.Status),
		TotalQuantity: pallet.TotalQuantity(),
		CreatedAt:     pallet.CreatedAt,
		UpdatedAt:     pallet.UpdatedAt,
	}
}

// FromPalletList maps a page of pallets
func FromPalletList(pallets []*domain.Pallet) PalletListResponse {
	responses := make([]PalletResponse, 0, len(pallets))
	for _, pallet := range pallets {
		responses = append(responses, FromPallet(pallet))
	}
	return PalletListResponse{Pallets: responses, Total: len(responses)}
}

// FromWorkflowRules maps the effective receiving configuration
func FromWorkflowRules(rules domain.WorkflowRules) WorkflowRulesResponse {
	return WorkflowRulesResponse{
		Version:                 rules.Version,
		Enabled:                 rules.Enabled,
		RequiresLotTracking:     rules.RequiresLotTracking,
		RequiresExpirationDates: rules.RequiresExpirationDates,
		RequiresInspection:      rules.RequiresInspection,
		AutoCreateLots:          rules.AutoCreateLots,
		LotNumberFormat:         rules.LotNumberFormat,
		AllowedContainerTypes:   rules.AllowedContainerTypes,
	}
}

// FromAssignment maps a putaway assignment with its progress summary
func FromAssignment(assignment *domain.PutawayAssignment) PutawayAssignmentResponse {
	items := make([]PutawayItemResponse, 0, len(assignment.Items))
	confirmed := 0
	for _, item := range assignment.Items {
		if item.Confirmed {
			confirmed++
		}
		items = append(items, PutawayItemResponse{
			LineItemID:            item.LineItemID,
			SKU:                   item.SKU,
			ProductName:           item.ProductName,
			Quantity:              item.Quantity,
			SuggestedSublocation:  item.SuggestedSublocation,
			SuggestionReason:      item.SuggestionReason,
			SelectedSublocationID: item.SelectedSublocationID,
			Confirmed:             item.Confirmed,
			ConfirmedAt:           item.ConfirmedAt,
			ConfirmedBy:           item.ConfirmedBy,
		})
	}
	return PutawayAssignmentResponse{
		ID:             assignment.ID.Hex(),
		AssignmentID:   assignment.AssignmentID,
		OrderID:        assignment.OrderID,
		LocationID:     assignment.LocationID,
		Items:          items,
		CreatedAt:      assignment.CreatedAt,
		UpdatedAt:      assignment.UpdatedAt,
		ConfirmedCount: confirmed,
		PendingCount:   len(items) - confirmed,
		IsComplete:     assignment.IsComplete(),
	}
}

// FromConfirmAll maps a confirm-all outcome
func FromConfirmAll(outcome *application.ConfirmAllOutcome) ConfirmAllResponse {
	return ConfirmAllResponse{
		Assignment: FromAssignment(outcome.Assignment),
		Report:     FromStepReport(outcome.Report),
	}
}

// FromSuggestion maps a putaway suggestion
func FromSuggestion(suggestion *domain.PutawaySuggestion) SuggestionResponse {
	return SuggestionResponse{
		SublocationID: suggestion.SublocationID,
		Name:          suggestion.Name,
		Reason:        suggestion.Reason,
	}
}

// FromSublocation maps a sublocation with its capacity summary
func FromSublocation(sub *domain.Sublocation) SublocationResponse {
	var stock []PalletContentResponse
	for _, st := range sub.Stock {
		stock = append(stock, PalletContentResponse{SKU: st.SKU, Quantity: st.Quantity})
	}
	return SublocationResponse{
		SublocationID: sub.SublocationID,
		Name:          sub.Name,
		Capacity:      sub.Capacity,
		UsedCapacity:  sub.UsedCapacity(),
		FreeCapacity:  sub.FreeCapacity(),
		Stock:         stock,
	}
}

// FromLocation maps a location with its sublocations
func FromLocation(location *domain.Location) LocationResponse {
	subs := make([]SublocationResponse, 0, len(location.Sublocations))
	for i := range location.Sublocations {
		subs = append(subs, FromSublocation(&location.Sublocations[i]))
	}
	return LocationResponse{
		ID:           location.ID.Hex(),
		LocationID:   location.LocationID,
		Name:         location.Name,
		Type:         string(location.Type),
		WarehouseID:  location.WarehouseID,
		Sublocations: subs,
	}
}

// FromLocationList maps all locations
func FromLocationList(locations []*domain.Location) LocationListResponse {
	responses := make([]LocationResponse, 0, len(locations))
	for _, location := range locations {
		responses = append(responses, FromLocation(location))
	}
	return LocationListResponse{Locations: responses, Total: len(responses)}
}

// FromSession maps a scanner session, including the kind the current
// phase expects next
func FromSession(session *domain.ScanSession) ScanSessionResponse {
	return ScanSessionResponse{
		SessionID:     session.SessionID,
		Workflow:      string(session.Workflow),
		OrderID:       session.OrderID,
		Phase:         string(session.Phase),
		ExpectedKind:  string(session.ExpectedKind()),
		FirstBarcode:  session.FirstBarcode,
		FirstKind:     string(session.FirstKind),
		SecondBarcode: session.SecondBarcode,
		SecondKind:    string(session.SecondKind),
		Muted:         session.Muted,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}
}

// FromResolved maps a barcode lookup result
func FromResolved(resolved *domain.ResolvedBarcode) ResolvedBarcodeResponse {
	response := ResolvedBarcodeResponse{
		Kind: string(resolved.Kind),
		Code: resolved.Code,
	}
	if resolved.LineItem != nil {
		li := FromLineItem(resolved.LineItem)
		response.LineItem = &li
	}
	if resolved.Pallet != nil {
		pallet := FromPallet(resolved.Pallet)
		response.Pallet = &pallet
	}
	if resolved.Location != nil {
		location := FromLocation(resolved.Location)
		response.Location = &location
	}
	if resolved.Sublocation != nil {
		sub := FromSublocation(resolved.Sublocation)
		response.Sublocation = &sub
	}
	return response
}

// FromScanOutcome maps the session's reaction to one scan
func FromScanOutcome(view *application.ScanOutcomeView) ScanOutcomeResponse {
	return ScanOutcomeResponse{
		Session:  FromSession(view.Session),
		Resolved: FromResolved(view.Resolved),
		Outcome:  string(view.Result.Outcome),
		Tone:     string(view.Result.Tone),
		Phase:    string(view.Result.Phase),
	}
}

// FromScanEvent maps one audited scan
func FromScanEvent(event *domain.ScanEvent) ScanEventResponse {
	return ScanEventResponse{
		ScanID:      event.ScanID,
		SessionID:   event.SessionID,
		OrderID:     event.OrderID,
		Barcode:     event.Barcode,
		Kind:        string(event.Kind),
		Stage:       event.Stage,
		Outcome:     string(event.Outcome),
		UserID:      event.UserID,
		WarehouseID: event.WarehouseID,
		ScannedAt:   event.ScannedAt,
	}
}

// FromScanHistory maps a session's audit trail
func FromScanHistory(events []*domain.ScanEvent) ScanHistoryResponse {
	scans := make([]ScanEventResponse, 0, len(events))
	for _, event := range events {
		scans = append(scans, FromScanEvent(event))
	}
	return ScanHistoryResponse{Scans: scans, Total: len(scans)}
}

// FromDamageReport maps a damage report
func FromDamageReport(report *domain.DamageReport) DamageReportResponse {
	return DamageReportResponse{
		ID:          report.ID.Hex(),
		ReportID:    report.ReportID,
		OrderID:     report.OrderID,
		SKU:         report.SKU,
		Quantity:    report.Quantity,
		Reason:      report.Reason,
		Notes:       report.Notes,
		PhotoURLs:   report.PhotoURLs,
		Resolved:    report.Resolved,
		ReportedBy:  report.ReportedBy,
		WarehouseID: report.WarehouseID,
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
}

// FromDamageReportList maps a page of damage reports
func FromDamageReportList(reports []*domain.DamageReport) DamageReportListResponse {
	responses := make([]DamageReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, FromDamageReport(report))
	}
	return DamageReportListResponse{Reports: responses, Total: len(responses)}
}

// FromClient maps a client profile
func FromClient(client *domain.Client) ClientResponse {
	var contacts []ClientContactResponse
	for _, contact := range client.Contacts {
		contacts = append(contacts, ClientContactResponse{
			Name:  contact.Name,
			Email: contact.Email,
			Phone: contact.Phone,
			Role:  contact.Role,
		})
	}
	return ClientResponse{
		ID:            client.ID.Hex(),
		ClientID:      client.ClientID,
		Code:          client.Code,
		Name:          client.Name,
		Contacts:      contacts,
		Active:        client.Active,
		WorkflowRules: FromWorkflowRules(client.WorkflowRules),
		CreatedAt:     client.CreatedAt,
		UpdatedAt:     client.UpdatedAt,
	}
}

// FromClientList maps a page of clients
func FromClientList(clients []*domain.Client) ClientListResponse {
	responses := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		responses = append(responses, FromClient(client))
	}
	return ClientListResponse{Clients: responses, Total: len(responses)}
}

// FromDashboard maps the landing page summary
func FromDashboard(summary *application.DashboardSummary) DashboardResponse {
	byStatus := make(map[string]int64, len(summary.OrdersByStatus))
	for status, count := range summary.OrdersByStatus {
		byStatus[string(status)] = count
	}
	expected := make([]OrderSummary, 0, len(summary.ExpectedToday))
	for _, order := range summary.ExpectedToday {
		expected = append(expected, FromOrderSummary(order))
	}
	return DashboardResponse{
		OrdersByStatus:    byStatus,
		OpenDamageReports: summary.OpenDamageReports,
		PendingPutaways:   summary.PendingPutaways,
		ExpectedToday:     expected,
		SectionErrors:     summary.SectionErrors,
		GeneratedAt:       summary.GeneratedAt,
	}
}

// ToLineItems converts line item requests to domain line items. IDs are
// assigned by the caller.
func (r CreateOrderRequest) ToLineItems() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, domain.LineItem{
			SKU:                li.SKU,
			ProductName:        li.ProductName,
			LotTrackingEnabled: li.LotTrackingEnabled,
			QtyExpected:        li.QtyExpected,
		})
	}
	return items
}

// ToLotEntries converts lot entry requests to domain lot entries
func (r ReceiveItemRequest) ToLotEntries() []domain.LotEntry {
	if len(r.LotEntries) == 0 {
		return nil
	}
	entries := make([]domain.LotEntry, 0, len(r.LotEntries))
	for _, e := range r.LotEntries {
		entries = append(entries, domain.LotEntry{
			LotNumber:      e.LotNumber,
			Quantity:       e.Quantity,
			ExpirationDate: e.ExpirationDate,
			BatchNumber:    e.BatchNumber,
		})
	}
	return entries
}

// ToContacts converts contact requests to domain contacts
func ToContacts(contacts []ClientContactRequest) []domain.ClientContact {
	if len(contacts) == 0 {
		return nil
	}
	result := make([]domain.ClientContact, 0, len(contacts))
	for _, contact := range contacts {
		result = append(result, domain.ClientContact{
			Name:  contact.Name,
			Email: contact.Email,
			Phone: contact.Phone,
			Role:  contact.Role,
		})
	}
	return result
}

// ToWorkflowRules converts a rules request to domain rules
func (r WorkflowRulesRequest) ToWorkflowRules() domain.WorkflowRules {
	return domain.WorkflowRules{
		Version:                 r.Version,
		Enabled:                 r.Enabled,
		RequiresLotTracking:     r.RequiresLotTracking,
		RequiresExpirationDates: r.RequiresExpirationDates,
		RequiresInspection:      r.RequiresInspection,
		AutoCreateLots:          r.AutoCreateLots,
		LotNumberFormat:         r.LotNumberFormat,
		AllowedContainerTypes:   r.AllowedContainerTypes,
	}
}
