package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/cloudevents"
	"github.com/threepl-platform/inbound-service/pkg/kafka"
)

// EventPublisher implements domain.EventPublisher over Kafka. Events are
// wrapped as CloudEvents and routed to a topic by their type prefix.
type EventPublisher struct {
	producer     *kafka.CircuitBreakerProducer
	eventFactory *cloudevents.EventFactory
}

// NewEventPublisher creates a new Kafka-based event publisher
func NewEventPublisher(producer *kafka.CircuitBreakerProducer, eventFactory *cloudevents.EventFactory) *EventPublisher {
	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
	}
}

// Publish publishes a single domain event
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	ce := p.eventFactory.CreateEvent(ctx, event.EventType(), subjectFor(event), event)
	if orderID := orderIDOf(event); orderID != "" {
		ce.WithOrder(orderID)
	}

	topic := topicFor(event.EventType())
	if err := p.producer.PublishEvent(ctx, topic, ce); err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}
	return nil
}

// PublishAll publishes events in order, stopping at the first failure
func (p *EventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// topicFor routes an event type to its topic by prefix
func topicFor(eventType string) string {
	switch {
	case strings.HasPrefix(eventType, "putaway."):
		return kafka.Topics.PutawayEvents
	case strings.HasPrefix(eventType, "scan."):
		return kafka.Topics.ScanEvents
	case strings.HasPrefix(eventType, "damage."):
		return kafka.Topics.DamageEvents
	case strings.HasPrefix(eventType, "client."):
		return kafka.Topics.ClientEvents
	default:
		return kafka.Topics.InboundEvents
	}
}

// subjectFor derives the CloudEvents subject from the event's primary
// entity
func subjectFor(event domain.DomainEvent) string {
	switch e := event.(type) {
	case *domain.OrderCreatedEvent:
		return "order/" + e.OrderID
	case *domain.OrderStatusChangedEvent:
		return "order/" + e.OrderID
	case *domain.ItemReceivedEvent:
		return "order/" + e.OrderID + "/line/" + e.LineItemID
	case *domain.ItemRejectedEvent:
		return "order/" + e.OrderID + "/line/" + e.LineItemID
	case *domain.InspectionHoldEvent:
		return "order/" + e.OrderID
	case *domain.PutawayAssignmentCreatedEvent:
		return "assignment/" + e.AssignmentID
	case *domain.PutawayItemConfirmedEvent:
		return "assignment/" + e.AssignmentID
	case *domain.ScanLoggedEvent:
		return "scan/" + e.ScanID
	case *domain.DamageReportCreatedEvent:
		return "report/" + e.ReportID
	default:
		return ""
	}
}

// orderIDOf extracts the order scope from events that carry one
func orderIDOf(event domain.DomainEvent) string {
	switch e := event.(type) {
	case *domain.OrderCreatedEvent:
		return e.OrderID
	case *domain.OrderStatusChangedEvent:
		return e.OrderID
	case *domain.ItemReceivedEvent:
		return e.OrderID
	case *domain.ItemRejectedEvent:
		return e.OrderID
	case *domain.InspectionHoldEvent:
		return e.OrderID
	case *domain.PutawayAssignmentCreatedEvent:
		return e.OrderID
	case *domain.PutawayItemConfirmedEvent:
		return e.OrderID
	case *domain.ScanLoggedEvent:
		return e.OrderID
	case *domain.DamageReportCreatedEvent:
		return e.OrderID
	default:
		return ""
	}
}
