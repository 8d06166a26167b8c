package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/internal/testutil"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

type dashboardFixture struct {
	orders      *testutil.MockOrderRepository
	damage      *testutil.MockDamageReportRepository
	assignments *testutil.MockAssignmentRepository
	service     *DashboardService
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		orders:      testutil.NewMockOrderRepository(),
		damage:      testutil.NewMockDamageReportRepository(),
		assignments: testutil.NewMockAssignmentRepository(),
	}
	logger := logging.New(logging.DefaultConfig("test"))
	f.service = NewDashboardService(f.orders, f.damage, f.assignments, logger)
	return f
}

func (f *dashboardFixture) seedOrders(t *testing.T) {
	t.Helper()
	today := time.Now().UTC()

	for i, spec := range []struct {
		id       string
		status   domain.OrderStatus
		expected *time.Time
	}{
		{"ORD-000001", domain.OrderStatusOrdered, &today},
		{"ORD-000002", domain.OrderStatusArrived, nil},
		{"ORD-000003", domain.OrderStatusArrived, nil},
	} {
		order, err := domain.NewInboundOrder(spec.id, fmt.Sprintf("REF-%04d", 1001+i), "Acme Supply", "", "WH-001", []domain.LineItem{
			{LineItemID: "LI-001", SKU: "SKU-001", QtyExpected: 10},
		}, spec.expected)
		require.NoError(t, err)
		order.Status = spec.status
		order.ClearDomainEvents()
		f.orders.AddOrder(order)
	}
}

func TestGetSummary(t *testing.T) {
	f := newDashboardFixture()
	f.seedOrders(t)

	report, err := domain.NewDamageReport("ORD-000002", "SKU-001", 2, "crushed", "", "user-1", "WH-001")
	require.NoError(t, err)
	f.damage.AddReport(report)

	summary, err := f.service.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.OrdersByStatus[domain.OrderStatusOrdered])
	assert.Equal(t, int64(2), summary.OrdersByStatus[domain.OrderStatusArrived])
	assert.Equal(t, int64(1), summary.OpenDamageReports)
	assert.Zero(t, summary.PendingPutaways)
	require.Len(t, summary.ExpectedToday, 1)
	assert.Equal(t, "ORD-000001", summary.ExpectedToday[0].OrderID)
	assert.Nil(t, summary.SectionErrors)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestGetSummaryDegradesFailedSections(t *testing.T) {
	f := newDashboardFixture()
	f.seedOrders(t)

	f.damage.CountOpenFunc = func(ctx context.Context) (int64, error) {
		return 0, errors.New("mongo down")
	}

	summary, err := f.service.GetSummary(context.Background())
	require.NoError(t, err, "one failed section never fails the summary")

	assert.Equal(t, int64(2), summary.OrdersByStatus[domain.OrderStatusArrived], "healthy sections still populate")
	assert.Zero(t, summary.OpenDamageReports)
	require.NotNil(t, summary.SectionErrors)
	assert.Equal(t, "mongo down", summary.SectionErrors["openDamageReports"])
}
