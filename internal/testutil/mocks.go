package testutil

import (
	"context"
	"time"

	"github.com/threepl-platform/inbound-service/internal/domain"
)

// MockOrderRepository is a mock implementation of domain.InboundOrderRepository
type MockOrderRepository struct {
	orders map[string]*domain.InboundOrder

	SaveFunc                func(ctx context.Context, order *domain.InboundOrder) error
	FindByIDFunc            func(ctx context.Context, orderID string) (*domain.InboundOrder, error)
	FindByStatusFunc        func(ctx context.Context, status domain.OrderStatus, pagination domain.Pagination) ([]*domain.InboundOrder, error)
	FindByClientIDFunc      func(ctx context.Context, clientID string, pagination domain.Pagination) ([]*domain.InboundOrder, error)
	FindAllFunc             func(ctx context.Context, pagination domain.Pagination) ([]*domain.InboundOrder, error)
	FindExpectedBetweenFunc func(ctx context.Context, from, to time.Time) ([]*domain.InboundOrder, error)
	CountByStatusFunc       func(ctx context.Context) (map[domain.OrderStatus]int64, error)
	DeleteFunc              func(ctx context.Context, orderID string) error
}

// NewMockOrderRepository creates a new mock repository
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]*domain.InboundOrder)}
}

// AddOrder seeds an order
func (m *MockOrderRepository) AddOrder(order *domain.InboundOrder) {
	m.orders[order.OrderID] = order
}

// Save implements domain.InboundOrderRepository
func (m *MockOrderRepository) Save(ctx context.Context, order *domain.InboundOrder) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, order)
	}
	m.orders[order.OrderID] = order
	return nil
}

// FindByID implements domain.InboundOrderRepository
func (m *MockOrderRepository) FindByID(ctx context.Context, orderID string) (*domain.InboundOrder, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, orderID)
	}
	return m.orders[orderID], nil
}

// FindByStatus implements domain.InboundOrderRepository
func (m *MockOrderRepository) FindByStatus(ctx context.Context, status domain.OrderStatus, pagination domain.Pagination) ([]*domain.InboundOrder, error) {
	if m.FindByStatusFunc != nil {
		return m.FindByStatusFunc(ctx, status, pagination)
	}
	var result []*domain.InboundOrder
	for _, order := range m.orders {
		if order.Status == status {
			result = append(result, order)
		}
	}
	return result, nil
}

// FindByClientID implements domain.InboundOrderRepository
func (m *MockOrderRepository) FindByClientID(ctx context.Context, clientID string, pagination domain.Pagination) ([]*domain.InboundOrder, error) {
	if m.FindByClientIDFunc != nil {
		return m.FindByClientIDFunc(ctx, clientID, pagination)
	}
	var result []*domain.InboundOrder
	for _, order := range m.orders {
		if order.ClientID == clientID {
			result = append(result, order)
		}
	}
	return result, nil
}

// FindAll implements domain.InboundOrderRepository
func (m *MockOrderRepository) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.InboundOrder, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, pagination)
	}
	var result []*domain.InboundOrder
	for _, order := range m.orders {
		result = append(result, order)
	}
	return result, nil
}

// FindExpectedBetween implements domain.InboundOrderRepository
func (m *MockOrderRepository) FindExpectedBetween(ctx context.Context, from, to time.Time) ([]*domain.InboundOrder, error) {
	if m.FindExpectedBetweenFunc != nil {
		return m.FindExpectedBetweenFunc(ctx, from, to)
	}
	var result []*domain.InboundOrder
	for _, order := range m.orders {
		if order.ExpectedDate != nil && !order.ExpectedDate.Before(from) && order.ExpectedDate.Before(to) {
			result = append(result, order)
		}
	}
	return result, nil
}

// CountByStatus implements domain.InboundOrderRepository
func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	counts := make(map[domain.OrderStatus]int64)
	for _, order := range m.orders {
		counts[order.Status]++
	}
	return counts, nil
}

// Delete implements domain.InboundOrderRepository
func (m *MockOrderRepository) Delete(ctx context.Context, orderID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, orderID)
	}
	delete(m.orders, orderID)
	return nil
}

// MockPalletRepository is a mock implementation of domain.PalletRepository
type MockPalletRepository struct {
	pallets map[string]*domain.Pallet

	SaveFunc           func(ctx context.Context, pallet *domain.Pallet) error
	FindByLPNFunc      func(ctx context.Context, lpn string) (*domain.Pallet, error)
	FindOpenFunc       func(ctx context.Context, pagination domain.Pagination) ([]*domain.Pallet, error)
	FindByClientIDFunc func(ctx context.Context, clientID string, pagination domain.Pagination) ([]*domain.Pallet, error)
}

// NewMockPalletRepository creates a new mock repository
func NewMockPalletRepository() *MockPalletRepository {
	return &MockPalletRepository{pallets: make(map[string]*domain.Pallet)}
}

// AddPallet seeds a pallet
func (m *MockPalletRepository) AddPallet(pallet *domain.Pallet) {
	m.pallets[pallet.LPN] = pallet
}

// Save implements domain.PalletRepository
func (m *MockPalletRepository) Save(ctx context.Context, pallet *domain.Pallet) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, pallet)
	}
	m.pallets[pallet.LPN] = pallet
	return nil
}

// FindByLPN implements domain.PalletRepository
func (m *MockPalletRepository) FindByLPN(ctx context.Context, lpn string) (*domain.Pallet, error) {
	if m.FindByLPNFunc != nil {
		return m.FindByLPNFunc(ctx, lpn)
	}
	return m.pallets[lpn], nil
}

// FindOpen implements domain.PalletRepository
func (m *MockPalletRepository) FindOpen(ctx context.Context, pagination domain.Pagination) ([]*domain.Pallet, error) {
	if m.FindOpenFunc != nil {
		return m.FindOpenFunc(ctx, pagination)
	}
	var result []*domain.Pallet
	for _, pallet := range m.pallets {
		if pallet.Status == domain.PalletStatusOpen {
			result = append(result, pallet)
		}
	}
	return result, nil
}

// FindByClientID implements domain.PalletRepository
func (m *MockPalletRepository) FindByClientID(ctx context.Context, clientID string, pagination domain.Pagination) ([]*domain.Pallet, error) {
	if m.FindByClientIDFunc != nil {
		return m.FindByClientIDFunc(ctx, clientID, pagination)
	}
	var result []*domain.Pallet
	for _, pallet := range m.pallets {
		if pallet.ClientID == clientID {
			result = append(result, pallet)
		}
	}
	return result, nil
}

// MockLocationRepository is a mock implementation of domain.LocationRepository
type MockLocationRepository struct {
	locations map[string]*domain.Location

	SaveFunc                func(ctx context.Context, location *domain.Location) error
	FindByIDFunc            func(ctx context.Context, locationID string) (*domain.Location, error)
	FindBySublocationIDFunc func(ctx context.Context, sublocationID string) (*domain.Location, error)
	FindAllFunc             func(ctx context.Context) ([]*domain.Location, error)
}

// NewMockLocationRepository creates a new mock repository
func NewMockLocationRepository() *MockLocationRepository {
	return &MockLocationRepository{locations: make(map[string]*domain.Location)}
}

// AddLocation seeds a location
func (m *MockLocationRepository) AddLocation(location *domain.Location) {
	m.locations[location.LocationID] = location
}

// Save implements domain.LocationRepository
func (m *MockLocationRepository) Save(ctx context.Context, location *domain.Location) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, location)
	}
	m.locations[location.LocationID] = location
	return nil
}

// FindByID implements domain.LocationRepository
func (m *MockLocationRepository) FindByID(ctx context.Context, locationID string) (*domain.Location, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, locationID)
	}
	return m.locations[locationID], nil
}

// FindBySublocationID implements domain.LocationRepository
func (m *MockLocationRepository) FindBySublocationID(ctx context.Context, sublocationID string) (*domain.Location, error) {
	if m.FindBySublocationIDFunc != nil {
		return m.FindBySublocationIDFunc(ctx, sublocationID)
	}
	for _, location := range m.locations {
		if location.GetSublocation(sublocationID) != nil {
			return location, nil
		}
	}
	return nil, nil
}

// FindAll implements domain.LocationRepository
func (m *MockLocationRepository) FindAll(ctx context.Context) ([]*domain.Location, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	var result []*domain.Location
	for _, location := range m.locations {
		result = append(result, location)
	}
	return result, nil
}

// MockAssignmentRepository is a mock implementation of domain.PutawayAssignmentRepository
type MockAssignmentRepository struct {
	assignments map[string]*domain.PutawayAssignment

	SaveFunc          func(ctx context.Context, assignment *domain.PutawayAssignment) error
	FindByIDFunc      func(ctx context.Context, assignmentID string) (*domain.PutawayAssignment, error)
	FindByOrderIDFunc func(ctx context.Context, orderID string) (*domain.PutawayAssignment, error)
	CountPendingFunc  func(ctx context.Context) (int64, error)
}

// NewMockAssignmentRepository creates a new mock repository
func NewMockAssignmentRepository() *MockAssignmentRepository {
	return &MockAssignmentRepository{assignments: make(map[string]*domain.PutawayAssignment)}
}

// AddAssignment seeds an assignment
func (m *MockAssignmentRepository) AddAssignment(assignment *domain.PutawayAssignment) {
	m.assignments[assignment.AssignmentID] = assignment
}

// Save implements domain.PutawayAssignmentRepository
func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *domain.PutawayAssignment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, assignment)
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

// FindByID implements domain.PutawayAssignmentRepository
func (m *MockAssignmentRepository) FindByID(ctx context.Context, assignmentID string) (*domain.PutawayAssignment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, assignmentID)
	}
	return m.assignments[assignmentID], nil
}

// FindByOrderID implements domain.PutawayAssignmentRepository
func (m *MockAssignmentRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.PutawayAssignment, error) {
	if m.FindByOrderIDFunc != nil {
		return m.FindByOrderIDFunc(ctx, orderID)
	}
	for _, assignment := range m.assignments {
		if assignment.OrderID == orderID {
			return assignment, nil
		}
	}
	return nil, nil
}

// CountPending implements domain.PutawayAssignmentRepository
func (m *MockAssignmentRepository) CountPending(ctx context.Context) (int64, error) {
	if m.CountPendingFunc != nil {
		return m.CountPendingFunc(ctx)
	}
	var count int64
	for _, assignment := range m.assignments {
		if !assignment.IsComplete() {
			count++
		}
	}
	return count, nil
}

// MockScanSessionRepository is a mock implementation of domain.ScanSessionRepository
type MockScanSessionRepository struct {
	sessions map[string]*domain.ScanSession

	SaveFunc     func(ctx context.Context, session *domain.ScanSession) error
	FindByIDFunc func(ctx context.Context, sessionID string) (*domain.ScanSession, error)
}

// NewMockScanSessionRepository creates a new mock repository
func NewMockScanSessionRepository() *MockScanSessionRepository {
	return &MockScanSessionRepository{sessions: make(map[string]*domain.ScanSession)}
}

// Save implements domain.ScanSessionRepository
func (m *MockScanSessionRepository) Save(ctx context.Context, session *domain.ScanSession) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.sessions[session.SessionID] = session
	return nil
}

// FindByID implements domain.ScanSessionRepository
func (m *MockScanSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	return m.sessions[sessionID], nil
}

// MockScanEventRepository is a mock implementation of domain.ScanEventRepository
type MockScanEventRepository struct {
	Events []*domain.ScanEvent

	SaveFunc func(ctx context.Context, event *domain.ScanEvent) error
}

// NewMockScanEventRepository creates a new mock repository
func NewMockScanEventRepository() *MockScanEventRepository {
	return &MockScanEventRepository{}
}

// Save implements domain.ScanEventRepository
func (m *MockScanEventRepository) Save(ctx context.Context, event *domain.ScanEvent) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, event)
	}
	m.Events = append(m.Events, event)
	return nil
}

// FindBySessionID implements domain.ScanEventRepository
func (m *MockScanEventRepository) FindBySessionID(ctx context.Context, sessionID string) ([]*domain.ScanEvent, error) {
	var result []*domain.ScanEvent
	for _, event := range m.Events {
		if event.SessionID == sessionID {
			result = append(result, event)
		}
	}
	return result, nil
}

// FindByOrderID implements domain.ScanEventRepository
func (m *MockScanEventRepository) FindByOrderID(ctx context.Context, orderID string, pagination domain.Pagination) ([]*domain.ScanEvent, error) {
	var result []*domain.ScanEvent
	for _, event := range m.Events {
		if event.OrderID == orderID {
			result = append(result, event)
		}
	}
	return result, nil
}

// MockDamageReportRepository is a mock implementation of domain.DamageReportRepository
type MockDamageReportRepository struct {
	reports map[string]*domain.DamageReport

	SaveFunc      func(ctx context.Context, report *domain.DamageReport) error
	FindByIDFunc  func(ctx context.Context, reportID string) (*domain.DamageReport, error)
	FindFunc      func(ctx context.Context, filter domain.DamageReportFilter, pagination domain.Pagination) ([]*domain.DamageReport, error)
	CountOpenFunc func(ctx context.Context) (int64, error)
}

// NewMockDamageReportRepository creates a new mock repository
func NewMockDamageReportRepository() *MockDamageReportRepository {
	return &MockDamageReportRepository{reports: make(map[string]*domain.DamageReport)}
}

// AddReport seeds a report
func (m *MockDamageReportRepository) AddReport(report *domain.DamageReport) {
	m.reports[report.ReportID] = report
}

// Save implements domain.DamageReportRepository
func (m *MockDamageReportRepository) Save(ctx context.Context, report *domain.DamageReport) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, report)
	}
	m.reports[report.ReportID] = report
	return nil
}

// FindByID implements domain.DamageReportRepository
func (m *MockDamageReportRepository) FindByID(ctx context.Context, reportID string) (*domain.DamageReport, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, reportID)
	}
	return m.reports[reportID], nil
}

// Find implements domain.DamageReportRepository
func (m *MockDamageReportRepository) Find(ctx context.Context, filter domain.DamageReportFilter, pagination domain.Pagination) ([]*domain.DamageReport, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter, pagination)
	}
	var result []*domain.DamageReport
	for _, report := range m.reports {
		if filter.OrderID != nil && report.OrderID != *filter.OrderID {
			continue
		}
		if filter.SKU != nil && report.SKU != *filter.SKU {
			continue
		}
		if filter.Resolved != nil && report.Resolved != *filter.Resolved {
			continue
		}
		result = append(result, report)
	}
	return result, nil
}

// CountOpen implements domain.DamageReportRepository
func (m *MockDamageReportRepository) CountOpen(ctx context.Context) (int64, error) {
	if m.CountOpenFunc != nil {
		return m.CountOpenFunc(ctx)
	}
	var count int64
	for _, report := range m.reports {
		if !report.Resolved {
			count++
		}
	}
	return count, nil
}

// MockClientRepository is a mock implementation of domain.ClientRepository
type MockClientRepository struct {
	clients map[string]*domain.Client
	byCode  map[string]*domain.Client

	SaveFunc       func(ctx context.Context, client *domain.Client) error
	FindByIDFunc   func(ctx context.Context, clientID string) (*domain.Client, error)
	FindByCodeFunc func(ctx context.Context, code string) (*domain.Client, error)
	FindAllFunc    func(ctx context.Context, pagination domain.Pagination) ([]*domain.Client, error)
}

// NewMockClientRepository creates a new mock repository
func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		clients: make(map[string]*domain.Client),
		byCode:  make(map[string]*domain.Client),
	}
}

// AddClient seeds a client
func (m *MockClientRepository) AddClient(client *domain.Client) {
	m.clients[client.ClientID] = client
	m.byCode[client.Code] = client
}

// Save implements domain.ClientRepository
func (m *MockClientRepository) Save(ctx context.Context, client *domain.Client) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, client)
	}
	m.clients[client.ClientID] = client
	m.byCode[client.Code] = client
	return nil
}

// FindByID implements domain.ClientRepository
func (m *MockClientRepository) FindByID(ctx context.Context, clientID string) (*domain.Client, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, clientID)
	}
	return m.clients[clientID], nil
}

// FindByCode implements domain.ClientRepository
func (m *MockClientRepository) FindByCode(ctx context.Context, code string) (*domain.Client, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return m.byCode[code], nil
}

// FindAll implements domain.ClientRepository
func (m *MockClientRepository) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Client, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, pagination)
	}
	var result []*domain.Client
	for _, client := range m.clients {
		result = append(result, client)
	}
	return result, nil
}

// MockEventPublisher is a mock implementation of domain.EventPublisher
type MockEventPublisher struct {
	Published []domain.DomainEvent

	PublishFunc    func(ctx context.Context, event domain.DomainEvent) error
	PublishAllFunc func(ctx context.Context, events []domain.DomainEvent) error
}

// NewMockEventPublisher creates a new mock publisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish implements domain.EventPublisher
func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	m.Published = append(m.Published, event)
	return nil
}

// PublishAll implements domain.EventPublisher
func (m *MockEventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(ctx, events)
	}
	m.Published = append(m.Published, events...)
	return nil
}

// EventTypes returns the types of all published events in order
func (m *MockEventPublisher) EventTypes() []string {
	types := make([]string, 0, len(m.Published))
	for _, event := range m.Published {
		types = append(types, event.EventType())
	}
	return types
}
