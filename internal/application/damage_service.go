package application

import (
	"context"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

// DamageService files and lists damage reports. Creating a report also
// accumulates the damaged quantity on the matching order line, so the
// reconciliation view reflects it immediately.
type DamageService struct {
	reports   domain.DamageReportRepository
	orders    domain.InboundOrderRepository
	publisher domain.EventPublisher
	logger    *logging.Logger
}

// NewDamageService creates a new DamageService
func NewDamageService(
	reports domain.DamageReportRepository,
	orders domain.InboundOrderRepository,
	publisher domain.EventPublisher,
	logger *logging.Logger,
) *DamageService {
	return &DamageService{
		reports:   reports,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateReport files a damage report and applies the quantity to the
// order line
func (s *DamageService) CreateReport(ctx context.Context, cmd CreateDamageReportCommand) (*domain.DamageReport, error) {
	order, err := s.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	if err := order.RecordDamage(cmd.SKU, cmd.Quantity); err != nil {
		return nil, err
	}

	report, err := domain.NewDamageReport(cmd.OrderID, cmd.SKU, cmd.Quantity, cmd.Reason, cmd.Notes, cmd.UserID, cmd.WarehouseID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := &domain.DamageReportCreatedEvent{
			ReportID:    report.ReportID,
			OrderID:     cmd.OrderID,
			SKU:         cmd.SKU,
			Quantity:    cmd.Quantity,
			Reason:      cmd.Reason,
			UserID:      cmd.UserID,
			OccurredAt_: report.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).Error("Failed to publish damage report event",
				"reportId", report.ReportID,
			)
		}
	}

	s.logger.Info("Created damage report",
		"reportId", report.ReportID,
		"orderId", cmd.OrderID,
		"sku", cmd.SKU,
		"quantity", cmd.Quantity,
	)

	return report, nil
}

// GetReport retrieves a report by ID
func (s *DamageService) GetReport(ctx context.Context, reportID string) (*domain.DamageReport, error) {
	return s.reports.FindByID(ctx, reportID)
}

// ListReports lists reports matching a filter
func (s *DamageService) ListReports(ctx context.Context, filter domain.DamageReportFilter, pagination domain.Pagination) ([]*domain.DamageReport, error) {
	return s.reports.Find(ctx, filter, pagination)
}

// SetResolved toggles the resolved flag optimistically: the flag flips in
// memory ahead of the save and is restored if the save fails
func (s *DamageService) SetResolved(ctx context.Context, reportID string, resolved bool) (*domain.DamageReport, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrDamageReportNotFound
	}

	err = OptimisticMutation(ctx,
		func() bool { return report.Resolved },
		func(v bool) { report.SetResolved(v) },
		resolved,
		func(ctx context.Context) error { return s.reports.Save(ctx, report) },
	)
	if err != nil {
		return nil, err
	}

	return report, nil
}
