package application

import (
	"context"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

// ScanService resolves barcodes against warehouse entities and drives
// two-phase scanner sessions. Every scan, hit or miss, is persisted as a
// scan event.
type ScanService struct {
	sessions  domain.ScanSessionRepository
	events    domain.ScanEventRepository
	orders    domain.InboundOrderRepository
	pallets   domain.PalletRepository
	locations domain.LocationRepository
	putaway   *PutawayService
	publisher domain.EventPublisher
	logger    *logging.Logger
}

// NewScanService creates a new ScanService
func NewScanService(
	sessions domain.ScanSessionRepository,
	events domain.ScanEventRepository,
	orders domain.InboundOrderRepository,
	pallets domain.PalletRepository,
	locations domain.LocationRepository,
	putaway *PutawayService,
	publisher domain.EventPublisher,
	logger *logging.Logger,
) *ScanService {
	return &ScanService{
		sessions:  sessions,
		events:    events,
		orders:    orders,
		pallets:   pallets,
		locations: locations,
		putaway:   putaway,
		publisher: publisher,
		logger:    logger,
	}
}

// ScanOutcomeView is the session's reaction to a scan plus the resolved
// entity
type ScanOutcomeView struct {
	Session  *domain.ScanSession     `json:"session"`
	Resolved *domain.ResolvedBarcode `json:"resolved"`
	Result   domain.ScanResult       `json:"result"`
}

// ResolveBarcode looks a code up by its prefix-classified kind. Unknown
// codes resolve to not_found rather than an error.
func (s *ScanService) ResolveBarcode(ctx context.Context, orderID, code string) (*domain.ResolvedBarcode, error) {
	kind := domain.ClassifyBarcode(code)
	resolved := &domain.ResolvedBarcode{Kind: domain.BarcodeKindNotFound, Code: code}

	switch kind {
	case domain.BarcodeKindPallet:
		pallet, err := s.pallets.FindByLPN(ctx, code)
		if err != nil {
			return nil, err
		}
		if pallet != nil {
			resolved.Kind = domain.BarcodeKindPallet
			resolved.Pallet = pallet
		}
	case domain.BarcodeKindLocation:
		location, err := s.locations.FindByID(ctx, code)
		if err != nil {
			return nil, err
		}
		if location != nil {
			resolved.Kind = domain.BarcodeKindLocation
			resolved.Location = location
		}
	case domain.BarcodeKindSublocation:
		location, err := s.locations.FindBySublocationID(ctx, code)
		if err != nil {
			return nil, err
		}
		if location != nil {
			resolved.Kind = domain.BarcodeKindSublocation
			resolved.Sublocation = location.GetSublocation(code)
		}
	default:
		item, err := s.resolveProduct(ctx, orderID, code)
		if err != nil {
			return nil, err
		}
		if item != nil {
			resolved.Kind = domain.BarcodeKindProduct
			resolved.LineItem = item
		}
	}

	return resolved, nil
}

// resolveProduct matches a SKU against the order's line items when an
// order is in scope, otherwise scans any order is not supported and the
// code stays unresolved
func (s *ScanService) resolveProduct(ctx context.Context, orderID, sku string) (*domain.LineItem, error) {
	if orderID == "" {
		return nil, nil
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return order.GetLineItemBySKU(sku), nil
}

// StartSession opens a scanner session for a workflow
func (s *ScanService) StartSession(ctx context.Context, cmd StartScanSessionCommand) (*domain.ScanSession, error) {
	session, err := domain.NewScanSession(domain.ScannerWorkflow(cmd.Workflow), cmd.OrderID, cmd.UserID, cmd.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Started scan session",
		"sessionId", session.SessionID,
		"workflow", cmd.Workflow,
		"orderId", cmd.OrderID,
	)

	return session, nil
}

// GetSession retrieves a session by ID
func (s *ScanService) GetSession(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	return s.sessions.FindByID(ctx, sessionID)
}

// Scan resolves a barcode and applies it to the session. The scan event
// audit record is written unconditionally, whatever the outcome.
func (s *ScanService) Scan(ctx context.Context, cmd ScanCommand) (*ScanOutcomeView, error) {
	session, err := s.findSession(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.ResolveBarcode(ctx, session.OrderID, cmd.Barcode)
	if err != nil {
		return nil, err
	}

	stage := session.Stage()
	result, err := session.ApplyScan(*resolved)
	if err != nil {
		return nil, err
	}

	s.logScan(ctx, session, stage, cmd.Barcode, resolved.Kind, result.Outcome)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return &ScanOutcomeView{Session: session, Resolved: resolved, Result: result}, nil
}

// ConfirmSession commits the scanned pairing and completes the session.
// Ship moves the scanned pallet to the scanned location; putaway confirms
// the matching assignment item into the scanned sublocation. A failed
// commit leaves the session open.
func (s *ScanService) ConfirmSession(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	session, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase == domain.PhaseComplete {
		return nil, domain.ErrScanSessionComplete
	}
	if !session.CanConfirm() {
		return nil, domain.ErrScansMissingToConfirm
	}

	if err := s.commitSession(ctx, session); err != nil {
		return nil, err
	}

	stage := session.Stage()
	if err := session.Confirm(); err != nil {
		return nil, err
	}

	s.logScan(ctx, session, stage, session.SecondBarcode, session.SecondKind, domain.ScanOutcomeConfirmed)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Confirmed scan session",
		"sessionId", sessionID,
		"workflow", string(session.Workflow),
	)

	return session, nil
}

// commitSession performs the committed action of a confirmed pairing
func (s *ScanService) commitSession(ctx context.Context, session *domain.ScanSession) error {
	switch session.Workflow {
	case domain.WorkflowShip:
		pallet, err := s.pallets.FindByLPN(ctx, session.FirstBarcode)
		if err != nil {
			return err
		}
		if pallet == nil {
			return domain.ErrPalletNotFound
		}
		location, err := s.locations.FindByID(ctx, session.SecondBarcode)
		if err != nil {
			return err
		}
		if location == nil {
			return domain.ErrLocationNotFound
		}
		pallet.MoveTo(location.LocationID)
		return s.pallets.Save(ctx, pallet)

	case domain.WorkflowPutaway:
		assignment, err := s.putaway.GetAssignmentForOrder(ctx, session.OrderID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return domain.ErrAssignmentNotFound
		}
		item := assignment.GetUnconfirmedItemBySKU(session.FirstBarcode)
		if item == nil {
			return domain.ErrPutawayItemNotFound
		}
		if _, err := s.putaway.SelectSublocation(ctx, SelectSublocationCommand{
			AssignmentID:  assignment.AssignmentID,
			LineItemID:    item.LineItemID,
			SublocationID: session.SecondBarcode,
		}); err != nil {
			return err
		}
		_, err = s.putaway.ConfirmItem(ctx, ConfirmPutawayCommand{
			AssignmentID: assignment.AssignmentID,
			LineItemID:   item.LineItemID,
			UserID:       session.UserID,
		})
		return err
	}
	return domain.ErrUnknownWorkflow
}

// SetMuted toggles the session's advisory audio feedback
func (s *ScanService) SetMuted(ctx context.Context, sessionID string, muted bool) (*domain.ScanSession, error) {
	session, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.SetMuted(muted)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetScanHistory lists the scan events of a session
func (s *ScanService) GetScanHistory(ctx context.Context, sessionID string) ([]*domain.ScanEvent, error) {
	return s.events.FindBySessionID(ctx, sessionID)
}

// logScan persists the audit record and publishes the scan event.
// Failure to write the audit trail is logged but does not fail the scan.
func (s *ScanService) logScan(ctx context.Context, session *domain.ScanSession, stage, barcode string, kind domain.BarcodeKind, outcome domain.ScanOutcome) {
	event := domain.NewScanEvent(session.SessionID, session.OrderID, barcode, kind, stage, outcome, session.UserID, session.WarehouseID)

	if err := s.events.Save(ctx, event); err != nil {
		s.logger.WithError(err).Error("Failed to persist scan event",
			"sessionId", session.SessionID,
			"barcode", barcode,
		)
	}

	if s.publisher != nil {
		logged := &domain.ScanLoggedEvent{
			ScanID:      event.ScanID,
			OrderID:     session.OrderID,
			Barcode:     barcode,
			Stage:       stage,
			Outcome:     string(outcome),
			UserID:      session.UserID,
			OccurredAt_: event.ScannedAt,
		}
		if err := s.publisher.Publish(ctx, logged); err != nil {
			s.logger.WithError(err).Error("Failed to publish scan event",
				"scanId", event.ScanID,
			)
		}
	}
}

func (s *ScanService) findSession(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrScanSessionNotFound
	}
	return session, nil
}
