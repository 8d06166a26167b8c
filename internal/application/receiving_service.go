package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

// ReceivingService orchestrates the inbound order lifecycle: creation,
// status transitions, receive execution, rejection, and checklist
// toggles. The repository is the source of truth; mutating flows re-read
// the order after writing before evaluating follow-on transitions.
type ReceivingService struct {
	orders    domain.InboundOrderRepository
	pallets   domain.PalletRepository
	clients   domain.ClientRepository
	publisher domain.EventPublisher
	logger    *logging.Logger
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(
	orders domain.InboundOrderRepository,
	pallets domain.PalletRepository,
	clients domain.ClientRepository,
	publisher domain.EventPublisher,
	logger *logging.Logger,
) *ReceivingService {
	return &ReceivingService{
		orders:    orders,
		pallets:   pallets,
		clients:   clients,
		publisher: publisher,
		logger:    logger,
	}
}

// ReceiveOutcome is the result of a receive command: the refetched order,
// the per-step report, and whether the order auto-completed
type ReceiveOutcome struct {
	Order         *domain.InboundOrder `json:"order"`
	Report        *StepReport          `json:"report"`
	AutoCompleted bool                 `json:"autoCompleted"`
}

// CreateOrder creates a new inbound order
func (s *ReceivingService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.InboundOrder, error) {
	orderID := cmd.OrderID
	if orderID == "" {
		orderID = fmt.Sprintf("ORD-%s", time.Now().UTC().Format("20060102150405"))
	}
	for i := range cmd.LineItems {
		if cmd.LineItems[i].LineItemID == "" {
			cmd.LineItems[i].LineItemID = fmt.Sprintf("LI-%03d", i+1)
		}
	}

	order, err := domain.NewInboundOrder(orderID, cmd.ReferenceNumber, cmd.Supplier, cmd.ClientID, cmd.WarehouseID, cmd.LineItems, cmd.ExpectedDate)
	if err != nil {
		return nil, err
	}
	for _, label := range cmd.Checklist {
		order.Checklist = append(order.Checklist, domain.ChecklistEntry{
			EntryID: "CHK-" + uuid.New().String(),
			Label:   label,
		})
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	s.logger.Info("Created inbound order",
		"orderId", order.OrderID,
		"referenceNumber", cmd.ReferenceNumber,
		"clientId", cmd.ClientID,
		"itemCount", len(cmd.LineItems),
	)

	return order, nil
}

// GetOrder retrieves an order by ID
func (s *ReceivingService) GetOrder(ctx context.Context, orderID string) (*domain.InboundOrder, error) {
	return s.orders.FindByID(ctx, orderID)
}

// ListOrders retrieves orders, optionally filtered by status or client
func (s *ReceivingService) ListOrders(ctx context.Context, status *domain.OrderStatus, clientID string, pagination domain.Pagination) ([]*domain.InboundOrder, error) {
	switch {
	case status != nil:
		return s.orders.FindByStatus(ctx, *status, pagination)
	case clientID != "":
		return s.orders.FindByClientID(ctx, clientID, pagination)
	default:
		return s.orders.FindAll(ctx, pagination)
	}
}

// AdvanceStatus moves an order one step forward in the normal flow
func (s *ReceivingService) AdvanceStatus(ctx context.Context, cmd AdvanceStatusCommand) (*domain.InboundOrder, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.Advance(cmd.UserID); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	s.logger.Info("Advanced order status",
		"orderId", cmd.OrderID,
		"status", string(order.Status),
	)

	return order, nil
}

// MarkComplete is the operator shortcut from arrived to received
func (s *ReceivingService) MarkComplete(ctx context.Context, cmd MarkCompleteCommand) (*domain.InboundOrder, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkComplete(cmd.UserID); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	s.logger.Info("Marked order complete",
		"orderId", cmd.OrderID,
		"userId", cmd.UserID,
	)

	return order, nil
}

// ReceiveItem validates and executes a receive against a line item. Lot
// mode expands into one sequential step per entry; a failure partway
// leaves earlier lots applied. After execution the order is re-read and
// the automatic completion check runs on the fresh copy.
func (s *ReceivingService) ReceiveItem(ctx context.Context, cmd ReceiveItemCommand) (*ReceiveOutcome, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusReceived {
		return nil, domain.ErrOrderAlreadyReceived
	}

	item := order.GetLineItem(cmd.LineItemID)
	if item == nil {
		return nil, domain.ErrLineItemNotFound
	}

	rules, err := s.rulesForOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	plan, err := domain.BuildReceivePlan(item, rules, domain.ReceiveRequest{
		LineItemID: cmd.LineItemID,
		Quantity:   cmd.Quantity,
		LotEntries: cmd.LotEntries,
		PalletMode: cmd.PalletMode,
		LPN:        cmd.LPN,
		LocationID: cmd.LocationID,
		UserID:     cmd.UserID,
	})
	if err != nil {
		return nil, err
	}

	if plan.Mode == domain.ReceiveModePallet {
		if err := s.verifyPallet(ctx, cmd.LPN); err != nil {
			return nil, err
		}
	}

	steps := make([]Step, 0, len(plan.Steps))
	for _, planned := range plan.Steps {
		step := planned
		steps = append(steps, Step{
			Label: stepLabel(step),
			Run: func(ctx context.Context) error {
				return s.executeReceiveStep(ctx, cmd.OrderID, step, cmd.UserID)
			},
		})
	}
	report := RunSteps(ctx, steps)

	if report.Succeeded > 0 && rules.Enabled && rules.RequiresInspection {
		s.placeInspectionHold(ctx, order.OrderID, cmd.LineItemID, item.SKU, cmd.UserID)
	}

	// Refetch before the auto-complete check so the decision is made on
	// the authoritative state, not the in-memory copy
	fresh, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	autoCompleted := false
	if fresh.AutoCompleteIfFullyReceived() {
		if err := s.orders.Save(ctx, fresh); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, fresh.GetDomainEvents())
		fresh.ClearDomainEvents()
		autoCompleted = true

		s.logger.Info("Order automatically completed",
			"orderId", cmd.OrderID,
		)
	}

	s.logger.Info("Received item",
		"orderId", cmd.OrderID,
		"lineItemId", cmd.LineItemID,
		"mode", plan.Mode,
		"stepsSucceeded", report.Succeeded,
		"stepsAttempted", report.Attempted,
	)

	return &ReceiveOutcome{Order: fresh, Report: report, AutoCompleted: autoCompleted}, nil
}

// executeReceiveStep applies one planned receive step: mutate the order,
// persist it, publish its events, and for pallet steps add the quantity
// to the pallet contents.
func (s *ReceivingService) executeReceiveStep(ctx context.Context, orderID string, step domain.ReceiveStep, userID string) error {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := order.ReceiveItem(step.LineItemID, step.NewTotal, step.Mode, step.LotNumber, step.ExpirationDate, step.BatchNumber, step.LPN, step.LocationID, userID); err != nil {
		return err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return err
	}
	s.publishEvents(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	if step.Mode == domain.ReceiveModePallet {
		item := order.GetLineItem(step.LineItemID)
		if err := s.addToPallet(ctx, step.LPN, item.SKU, step.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// RejectItem accumulates rejected quantity on a line item
func (s *ReceivingService) RejectItem(ctx context.Context, cmd RejectItemCommand) (*domain.InboundOrder, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusReceived {
		return nil, domain.ErrOrderAlreadyReceived
	}

	if err := order.RejectItem(cmd.LineItemID, cmd.Quantity, cmd.Reason, cmd.Notes, cmd.UserID); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	s.logger.Info("Rejected item quantity",
		"orderId", cmd.OrderID,
		"lineItemId", cmd.LineItemID,
		"quantity", cmd.Quantity,
		"reason", cmd.Reason,
	)

	return order, nil
}

// ToggleChecklist flips a checklist entry optimistically: the in-memory
// entry is updated before the save and restored if the save fails.
func (s *ReceivingService) ToggleChecklist(ctx context.Context, cmd ToggleChecklistCommand) (*domain.InboundOrder, error) {
	order, err := s.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	entry := order.GetChecklistEntry(cmd.EntryID)
	if entry == nil {
		return nil, domain.ErrChecklistEntryNotFound
	}

	err = OptimisticMutation(ctx,
		func() bool { return entry.Completed },
		func(v bool) { entry.Completed = v },
		cmd.Completed,
		func(ctx context.Context) error { return s.orders.Save(ctx, order) },
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// CreatePallet creates a pallet for receiving, validated against the
// client's allowed container types
func (s *ReceivingService) CreatePallet(ctx context.Context, cmd CreatePalletCommand) (*domain.Pallet, error) {
	rules := domain.DefaultWorkflowRules()
	if cmd.ClientID != "" {
		client, err := s.clients.FindByID(ctx, cmd.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			rules = client.WorkflowRules
		}
	}

	lpn := cmd.LPN
	if lpn == "" {
		lpn = domain.GenerateLPN()
	}

	pallet, err := domain.NewPallet(lpn, cmd.ContainerType, cmd.LocationID, cmd.ClientID, rules)
	if err != nil {
		return nil, err
	}

	if err := s.pallets.Save(ctx, pallet); err != nil {
		return nil, err
	}

	s.logger.Info("Created pallet",
		"lpn", pallet.LPN,
		"containerType", cmd.ContainerType,
		"clientId", cmd.ClientID,
	)

	return pallet, nil
}

// ListOpenPallets lists pallets available for receiving
func (s *ReceivingService) ListOpenPallets(ctx context.Context, pagination domain.Pagination) ([]*domain.Pallet, error) {
	return s.pallets.FindOpen(ctx, pagination)
}

// GetWorkflowRulesForOrder resolves the workflow rules governing an order
func (s *ReceivingService) GetWorkflowRulesForOrder(ctx context.Context, orderID string) (domain.WorkflowRules, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return domain.WorkflowRules{}, err
	}
	return s.rulesForOrder(ctx, order)
}

// GenerateLotNumber expands the client's lot number format for a SKU
func (s *ReceivingService) GenerateLotNumber(ctx context.Context, cmd GenerateLotNumberCommand) (string, error) {
	rules := domain.DefaultWorkflowRules()
	if cmd.ClientID != "" {
		client, err := s.clients.FindByID(ctx, cmd.ClientID)
		if err != nil {
			return "", err
		}
		if client != nil {
			rules = client.WorkflowRules
		}
	}
	return rules.GenerateLotNumber(cmd.SKU, cmd.Supplier), nil
}

// GetExpectedBetween lists orders expected within a time range
func (s *ReceivingService) GetExpectedBetween(ctx context.Context, from, to time.Time) ([]*domain.InboundOrder, error) {
	return s.orders.FindExpectedBetween(ctx, from, to)
}

func (s *ReceivingService) findOrder(ctx context.Context, orderID string) (*domain.InboundOrder, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// rulesForOrder loads the client's workflow rules, defaulting to
// everything-optional when the order has no client or the client is
// unknown
func (s *ReceivingService) rulesForOrder(ctx context.Context, order *domain.InboundOrder) (domain.WorkflowRules, error) {
	if order.ClientID == "" {
		return domain.DefaultWorkflowRules(), nil
	}
	client, err := s.clients.FindByID(ctx, order.ClientID)
	if err != nil {
		return domain.WorkflowRules{}, err
	}
	if client == nil {
		return domain.DefaultWorkflowRules(), nil
	}
	rules := client.WorkflowRules
	rules.Normalize()
	return rules, nil
}

func (s *ReceivingService) verifyPallet(ctx context.Context, lpn string) error {
	pallet, err := s.pallets.FindByLPN(ctx, lpn)
	if err != nil {
		return err
	}
	if pallet == nil {
		return domain.ErrPalletNotFound
	}
	if pallet.Status != domain.PalletStatusOpen {
		return domain.ErrPalletClosed
	}
	return nil
}

func (s *ReceivingService) addToPallet(ctx context.Context, lpn, sku string, quantity int) error {
	pallet, err := s.pallets.FindByLPN(ctx, lpn)
	if err != nil {
		return err
	}
	if pallet == nil {
		return domain.ErrPalletNotFound
	}
	if err := pallet.AddContent(sku, quantity); err != nil {
		return err
	}
	return s.pallets.Save(ctx, pallet)
}

// placeInspectionHold logs the hold after a successful receive path.
// Publishing is best-effort like all event emission.
func (s *ReceivingService) placeInspectionHold(ctx context.Context, orderID, lineItemID, sku, userID string) {
	event := &domain.InspectionHoldEvent{
		OrderID:     orderID,
		LineItemID:  lineItemID,
		SKU:         sku,
		Reason:      "workflow rules require inspection",
		UserID:      userID,
		OccurredAt_: time.Now().UTC(),
	}

	s.logger.Audit(ctx, "inspection_hold_placed", "inbound_order", orderID, userID, map[string]any{
		"lineItemId": lineItemID,
		"sku":        sku,
	})
	s.publishEvents(ctx, []domain.DomainEvent{event})
}

// publishEvents publishes domain events after a successful save. Publish
// failures are logged and never fail the request.
func (s *ReceivingService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.PublishAll(ctx, events); err != nil {
		s.logger.WithError(err).Error("Failed to publish domain events",
			"eventCount", len(events),
		)
	}
}

func stepLabel(step domain.ReceiveStep) string {
	switch step.Mode {
	case domain.ReceiveModeLot:
		return fmt.Sprintf("receive lot %s (total %d)", step.LotNumber, step.NewTotal)
	case domain.ReceiveModePallet:
		return fmt.Sprintf("receive to pallet %s (total %d)", step.LPN, step.NewTotal)
	default:
		return fmt.Sprintf("receive (total %d)", step.NewTotal)
	}
}
