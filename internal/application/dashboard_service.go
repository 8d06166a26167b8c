package application

import (
	"context"
	"sync"
	"time"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

// DashboardService aggregates the receiving overview. Sections are
// fetched concurrently; a failing section degrades to its zero value
// with an error note instead of failing the whole summary.
type DashboardService struct {
	orders      domain.InboundOrderRepository
	damage      domain.DamageReportRepository
	assignments domain.PutawayAssignmentRepository
	logger      *logging.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	orders domain.InboundOrderRepository,
	damage domain.DamageReportRepository,
	assignments domain.PutawayAssignmentRepository,
	logger *logging.Logger,
) *DashboardService {
	return &DashboardService{
		orders:      orders,
		damage:      damage,
		assignments: assignments,
		logger:      logger,
	}
}

// DashboardSummary is the aggregated receiving overview
type DashboardSummary struct {
	OrdersByStatus    map[domain.OrderStatus]int64 `json:"ordersByStatus"`
	OpenDamageReports int64                        `json:"openDamageReports"`
	PendingPutaways   int64                        `json:"pendingPutaways"`
	ExpectedToday     []*domain.InboundOrder       `json:"expectedToday"`
	SectionErrors     map[string]string            `json:"sectionErrors,omitempty"`
	GeneratedAt       time.Time                    `json:"generatedAt"`
}

// GetSummary builds the dashboard summary with concurrent section
// fan-out
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{
		OrdersByStatus: make(map[domain.OrderStatus]int64),
		SectionErrors:  make(map[string]string),
		GeneratedAt:    time.Now().UTC(),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	section := func(name string, fetch func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(ctx); err != nil {
				s.logger.WithError(err).Warn("Dashboard section failed",
					"section", name,
				)
				mu.Lock()
				summary.SectionErrors[name] = err.Error()
				mu.Unlock()
			}
		}()
	}

	section("ordersByStatus", func(ctx context.Context) error {
		counts, err := s.orders.CountByStatus(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		summary.OrdersByStatus = counts
		mu.Unlock()
		return nil
	})

	section("openDamageReports", func(ctx context.Context) error {
		count, err := s.damage.CountOpen(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		summary.OpenDamageReports = count
		mu.Unlock()
		return nil
	})

	section("pendingPutaways", func(ctx context.Context) error {
		count, err := s.assignments.CountPending(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		summary.PendingPutaways = count
		mu.Unlock()
		return nil
	})

	section("expectedToday", func(ctx context.Context) error {
		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		orders, err := s.orders.FindExpectedBetween(ctx, start, start.Add(24*time.Hour))
		if err != nil {
			return err
		}
		mu.Lock()
		summary.ExpectedToday = orders
		mu.Unlock()
		return nil
	})

	wg.Wait()

	if len(summary.SectionErrors) == 0 {
		summary.SectionErrors = nil
	}
	return summary, nil
}
