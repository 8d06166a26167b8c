package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/internal/testutil"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

type damageFixture struct {
	reports   *testutil.MockDamageReportRepository
	orders    *testutil.MockOrderRepository
	publisher *testutil.MockEventPublisher
	service   *DamageService
}

func newDamageFixture() *damageFixture {
	f := &damageFixture{
		reports:   testutil.NewMockDamageReportRepository(),
		orders:    testutil.NewMockOrderRepository(),
		publisher: testutil.NewMockEventPublisher(),
	}
	logger := logging.New(logging.DefaultConfig("test"))
	f.service = NewDamageService(f.reports, f.orders, f.publisher, logger)
	return f
}

func (f *damageFixture) seedOrder(t *testing.T) *domain.InboundOrder {
	t.Helper()
	order, err := domain.NewInboundOrder("ORD-000001", "REF-1001", "Acme Supply", "", "WH-001", []domain.LineItem{
		{LineItemID: "LI-001", SKU: "SKU-001", ProductName: "Widget A", QtyExpected: 100},
	}, nil)
	require.NoError(t, err)
	order.ClearDomainEvents()
	f.orders.AddOrder(order)
	return order
}

func TestCreateDamageReport(t *testing.T) {
	f := newDamageFixture()
	order := f.seedOrder(t)

	report, err := f.service.CreateReport(context.Background(), CreateDamageReportCommand{
		OrderID:  "ORD-000001",
		SKU:      "SKU-001",
		Quantity: 4,
		Reason:   "crushed corner",
		UserID:   "user-1",
	})

	require.NoError(t, err)
	assert.Contains(t, report.ReportID, "DMG-")
	assert.Equal(t, 4, order.GetLineItemBySKU("SKU-001").QtyDamaged, "damage lands on the line item")
	assert.Equal(t, []string{"damage.report.created"}, f.publisher.EventTypes())

	// A second report on the same SKU accumulates
	_, err = f.service.CreateReport(context.Background(), CreateDamageReportCommand{
		OrderID:  "ORD-000001",
		SKU:      "SKU-001",
		Quantity: 3,
		Reason:   "water damage",
		UserID:   "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, order.GetLineItemBySKU("SKU-001").QtyDamaged)
}

func TestCreateDamageReportValidation(t *testing.T) {
	f := newDamageFixture()
	f.seedOrder(t)

	tests := []struct {
		name    string
		cmd     CreateDamageReportCommand
		wantErr error
	}{
		{
			name:    "unknown order",
			cmd:     CreateDamageReportCommand{OrderID: "ORD-404", SKU: "SKU-001", Quantity: 1, Reason: "crushed"},
			wantErr: domain.ErrOrderNotFound,
		},
		{
			name:    "unknown sku",
			cmd:     CreateDamageReportCommand{OrderID: "ORD-000001", SKU: "SKU-404", Quantity: 1, Reason: "crushed"},
			wantErr: domain.ErrLineItemNotFound,
		},
		{
			name:    "missing reason",
			cmd:     CreateDamageReportCommand{OrderID: "ORD-000001", SKU: "SKU-001", Quantity: 1},
			wantErr: domain.ErrDamageReasonRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateReport(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSetResolved(t *testing.T) {
	f := newDamageFixture()
	report, err := domain.NewDamageReport("ORD-000001", "SKU-001", 2, "crushed", "", "user-1", "WH-001")
	require.NoError(t, err)
	f.reports.AddReport(report)

	updated, err := f.service.SetResolved(context.Background(), report.ReportID, true)
	require.NoError(t, err)
	assert.True(t, updated.Resolved)
}

func TestSetResolvedRollsBackOnFailure(t *testing.T) {
	f := newDamageFixture()
	report, err := domain.NewDamageReport("ORD-000001", "SKU-001", 2, "crushed", "", "user-1", "WH-001")
	require.NoError(t, err)
	f.reports.AddReport(report)

	f.reports.SaveFunc = func(ctx context.Context, r *domain.DamageReport) error {
		return errors.New("mongo down")
	}

	_, err = f.service.SetResolved(context.Background(), report.ReportID, true)
	require.Error(t, err)
	assert.False(t, report.Resolved, "optimistic flip restored")
}

func TestListReportsByFilter(t *testing.T) {
	f := newDamageFixture()
	first, err := domain.NewDamageReport("ORD-000001", "SKU-001", 2, "crushed", "", "user-1", "WH-001")
	require.NoError(t, err)
	second, err := domain.NewDamageReport("ORD-000002", "SKU-002", 1, "torn", "", "user-1", "WH-001")
	require.NoError(t, err)
	second.SetResolved(true)
	f.reports.AddReport(first)
	f.reports.AddReport(second)

	open := false
	resolved := true

	reports, err := f.service.ListReports(context.Background(), domain.DamageReportFilter{Resolved: &open}, domain.DefaultPagination())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, first.ReportID, reports[0].ReportID)

	reports, err = f.service.ListReports(context.Background(), domain.DamageReportFilter{Resolved: &resolved}, domain.DefaultPagination())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, second.ReportID, reports[0].ReportID)
}
