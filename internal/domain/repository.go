package domain

import (
	"context"
	"time"
)

// InboundOrderRepository defines the interface for order persistence
type InboundOrderRepository interface {
	// Save persists an inbound order (upsert by OrderID)
	Save(ctx context.Context, order *InboundOrder) error

	// FindByID retrieves an order by its OrderID
	FindByID(ctx context.Context, orderID string) (*InboundOrder, error)

	// FindByStatus retrieves orders by status
	FindByStatus(ctx context.Context, status OrderStatus, pagination Pagination) ([]*InboundOrder, error)

	// FindByClientID retrieves a client's orders
	FindByClientID(ctx context.Context, clientID string, pagination Pagination) ([]*InboundOrder, error)

	// FindAll retrieves orders up to the specified limit
	FindAll(ctx context.Context, pagination Pagination) ([]*InboundOrder, error)

	// FindExpectedBetween retrieves orders expected within a time range
	FindExpectedBetween(ctx context.Context, from, to time.Time) ([]*InboundOrder, error)

	// CountByStatus returns order counts grouped by status
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)

	// Delete deletes an order
	Delete(ctx context.Context, orderID string) error
}

// PalletRepository defines the interface for pallet persistence
type PalletRepository interface {
	Save(ctx context.Context, pallet *Pallet) error
	FindByLPN(ctx context.Context, lpn string) (*Pallet, error)
	FindOpen(ctx context.Context, pagination Pagination) ([]*Pallet, error)
	FindByClientID(ctx context.Context, clientID string, pagination Pagination) ([]*Pallet, error)
}

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	Save(ctx context.Context, location *Location) error
	FindByID(ctx context.Context, locationID string) (*Location, error)
	FindBySublocationID(ctx context.Context, sublocationID string) (*Location, error)
	FindAll(ctx context.Context) ([]*Location, error)
}

// PutawayAssignmentRepository defines the interface for assignment persistence
type PutawayAssignmentRepository interface {
	Save(ctx context.Context, assignment *PutawayAssignment) error
	FindByID(ctx context.Context, assignmentID string) (*PutawayAssignment, error)
	FindByOrderID(ctx context.Context, orderID string) (*PutawayAssignment, error)
	CountPending(ctx context.Context) (int64, error)
}

// ScanEventRepository defines the interface for scan audit persistence
type ScanEventRepository interface {
	Save(ctx context.Context, event *ScanEvent) error
	FindBySessionID(ctx context.Context, sessionID string) ([]*ScanEvent, error)
	FindByOrderID(ctx context.Context, orderID string, pagination Pagination) ([]*ScanEvent, error)
}

// ScanSessionRepository defines the interface for scanner session persistence
type ScanSessionRepository interface {
	Save(ctx context.Context, session *ScanSession) error
	FindByID(ctx context.Context, sessionID string) (*ScanSession, error)
}

// DamageReportRepository defines the interface for damage report persistence
type DamageReportRepository interface {
	Save(ctx context.Context, report *DamageReport) error
	FindByID(ctx context.Context, reportID string) (*DamageReport, error)
	Find(ctx context.Context, filter DamageReportFilter, pagination Pagination) ([]*DamageReport, error)
	CountOpen(ctx context.Context) (int64, error)
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	Save(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, clientID string) (*Client, error)
	FindByCode(ctx context.Context, code string) (*Client, error)
	FindAll(ctx context.Context, pagination Pagination) ([]*Client, error)
}

// Pagination represents pagination options
type Pagination struct {
	Page     int64
	PageSize int64
}

// DefaultPagination returns default pagination options
func DefaultPagination() Pagination {
	return Pagination{
		Page:     1,
		PageSize: 20,
	}
}

// Skip returns the number of documents to skip
func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of documents to return
func (p Pagination) Limit() int64 {
	return p.PageSize
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish publishes a domain event
	Publish(ctx context.Context, event DomainEvent) error

	// PublishAll publishes multiple domain events
	PublishAll(ctx context.Context, events []DomainEvent) error
}
