package application

import (
	"context"
	"fmt"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

// PutawayService orchestrates the suggest-and-confirm flow that moves
// received quantities into sublocations
type PutawayService struct {
	assignments domain.PutawayAssignmentRepository
	orders      domain.InboundOrderRepository
	locations   domain.LocationRepository
	publisher   domain.EventPublisher
	logger      *logging.Logger
}

// NewPutawayService creates a new PutawayService
func NewPutawayService(
	assignments domain.PutawayAssignmentRepository,
	orders domain.InboundOrderRepository,
	locations domain.LocationRepository,
	publisher domain.EventPublisher,
	logger *logging.Logger,
) *PutawayService {
	return &PutawayService{
		assignments: assignments,
		orders:      orders,
		locations:   locations,
		publisher:   publisher,
		logger:      logger,
	}
}

// ConfirmAllOutcome reports a bulk confirm: the refreshed assignment and
// the per-item step report
type ConfirmAllOutcome struct {
	Assignment *domain.PutawayAssignment `json:"assignment"`
	Report     *StepReport               `json:"report"`
}

// CreateAssignment builds the putaway list for an order's received lines,
// with suggestions from the target location. An existing assignment for
// the order is returned instead of duplicated.
func (s *PutawayService) CreateAssignment(ctx context.Context, cmd CreatePutawayAssignmentCommand) (*domain.PutawayAssignment, error) {
	if existing, err := s.assignments.FindByOrderID(ctx, cmd.OrderID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	order, err := s.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	location, err := s.locations.FindByID(ctx, cmd.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}

	assignment, err := domain.NewPutawayAssignment(order, location)
	if err != nil {
		return nil, err
	}

	if err := s.assignments.Save(ctx, assignment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, assignment.GetDomainEvents())
	assignment.ClearDomainEvents()

	s.logger.Info("Created putaway assignment",
		"assignmentId", assignment.AssignmentID,
		"orderId", cmd.OrderID,
		"itemCount", len(assignment.Items),
	)

	return assignment, nil
}

// GetAssignment retrieves an assignment by ID
func (s *PutawayService) GetAssignment(ctx context.Context, assignmentID string) (*domain.PutawayAssignment, error) {
	return s.assignments.FindByID(ctx, assignmentID)
}

// GetAssignmentForOrder retrieves the assignment for an order
func (s *PutawayService) GetAssignmentForOrder(ctx context.Context, orderID string) (*domain.PutawayAssignment, error) {
	return s.assignments.FindByOrderID(ctx, orderID)
}

// GetSuggestion computes a fresh suggestion for a SKU and quantity at a
// location
func (s *PutawayService) GetSuggestion(ctx context.Context, locationID, sku string, quantity int) (*domain.PutawaySuggestion, error) {
	location, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return location.SuggestSublocation(sku, quantity)
}

// ListLocations lists all locations
func (s *PutawayService) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	return s.locations.FindAll(ctx)
}

// GetSublocations lists the sublocations of a location
func (s *PutawayService) GetSublocations(ctx context.Context, locationID string) ([]domain.Sublocation, error) {
	location, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return location.Sublocations, nil
}

// SelectSublocation overrides the sublocation for an unconfirmed item
func (s *PutawayService) SelectSublocation(ctx context.Context, cmd SelectSublocationCommand) (*domain.PutawayAssignment, error) {
	assignment, err := s.findAssignment(ctx, cmd.AssignmentID)
	if err != nil {
		return nil, err
	}

	location, err := s.locations.FindByID(ctx, assignment.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil || location.GetSublocation(cmd.SublocationID) == nil {
		return nil, domain.ErrSublocationNotFound
	}

	if err := assignment.SelectSublocation(cmd.LineItemID, cmd.SublocationID); err != nil {
		return nil, err
	}

	if err := s.assignments.Save(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

// ConfirmItem irrevocably confirms one putaway item, placing its stock
// into the selected sublocation
func (s *PutawayService) ConfirmItem(ctx context.Context, cmd ConfirmPutawayCommand) (*domain.PutawayAssignment, error) {
	assignment, err := s.findAssignment(ctx, cmd.AssignmentID)
	if err != nil {
		return nil, err
	}

	if err := s.confirmOne(ctx, assignment, cmd.LineItemID, cmd.UserID); err != nil {
		return nil, err
	}

	s.logger.Info("Confirmed putaway item",
		"assignmentId", cmd.AssignmentID,
		"lineItemId", cmd.LineItemID,
	)

	return assignment, nil
}

// ConfirmAll confirms every eligible item sequentially. A mid-batch
// failure stops the batch at that item, leaving earlier confirmations in
// place; the report carries per-item outcomes.
func (s *PutawayService) ConfirmAll(ctx context.Context, cmd ConfirmAllPutawayCommand) (*ConfirmAllOutcome, error) {
	assignment, err := s.findAssignment(ctx, cmd.AssignmentID)
	if err != nil {
		return nil, err
	}

	eligible := assignment.ConfirmableItems()
	steps := make([]Step, 0, len(eligible))
	for _, item := range eligible {
		lineItemID := item.LineItemID
		steps = append(steps, Step{
			Label: fmt.Sprintf("confirm %s", lineItemID),
			Run: func(ctx context.Context) error {
				return s.confirmOne(ctx, assignment, lineItemID, cmd.UserID)
			},
		})
	}
	report := RunSteps(ctx, steps)

	s.logger.Info("Bulk confirmed putaway items",
		"assignmentId", cmd.AssignmentID,
		"succeeded", report.Succeeded,
		"attempted", report.Attempted,
	)

	return &ConfirmAllOutcome{Assignment: assignment, Report: report}, nil
}

// confirmOne updates the sublocation stock, then confirms and persists
// the assignment item
func (s *PutawayService) confirmOne(ctx context.Context, assignment *domain.PutawayAssignment, lineItemID, userID string) error {
	item := assignment.GetItem(lineItemID)
	if item == nil {
		return domain.ErrPutawayItemNotFound
	}
	if item.Confirmed {
		return domain.ErrAlreadyConfirmed
	}
	if item.SelectedSublocationID == "" {
		return domain.ErrNoSublocationSelected
	}

	location, err := s.locations.FindByID(ctx, assignment.LocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrLocationNotFound
	}
	sublocation := location.GetSublocation(item.SelectedSublocationID)
	if sublocation == nil {
		return domain.ErrSublocationNotFound
	}

	if err := sublocation.AddStock(item.SKU, item.Quantity); err != nil {
		return err
	}
	if err := s.locations.Save(ctx, location); err != nil {
		return err
	}

	if err := assignment.ConfirmItem(lineItemID, userID); err != nil {
		return err
	}
	if err := s.assignments.Save(ctx, assignment); err != nil {
		return err
	}
	s.publishEvents(ctx, assignment.GetDomainEvents())
	assignment.ClearDomainEvents()

	return nil
}

func (s *PutawayService) findAssignment(ctx context.Context, assignmentID string) (*domain.PutawayAssignment, error) {
	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, domain.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *PutawayService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.PublishAll(ctx, events); err != nil {
		s.logger.WithError(err).Error("Failed to publish domain events",
			"eventCount", len(events),
		)
	}
}
