package events

import (
	"context"
	"time"

	"akabari-manager/internal/models"
	"akabari-manager/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher delivers domain events to registered handlers. Delivery is
// synchronous and in-process; the application runs as a single actor, so
// there is no broker between producers and consumers. Handler errors are
// logged and never fail the operation that raised the event.
type Publisher struct {
	onSaleCompleted []func(context.Context, *models.SaleCompletedEvent) error
	onOrderCreated  []func(context.Context, *models.OrderCreatedEvent) error
	onOrderSettled  []func(context.Context, *models.OrderSettledEvent) error
	onStockAdded    []func(context.Context, *models.StockAddedEvent) error
	logger          *zap.Logger
}

// NewPublisher creates an event publisher with no handlers registered.
func NewPublisher() *Publisher {
	return &Publisher{logger: util.GetLogger()}
}

func newBase(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// OnSaleCompleted registers a handler for SaleCompleted events.
func (p *Publisher) OnSaleCompleted(handler func(context.Context, *models.SaleCompletedEvent) error) {
	p.onSaleCompleted = append(p.onSaleCompleted, handler)
}

// OnOrderCreated registers a handler for OrderCreated events.
func (p *Publisher) OnOrderCreated(handler func(context.Context, *models.OrderCreatedEvent) error) {
	p.onOrderCreated = append(p.onOrderCreated, handler)
}

// OnOrderSettled registers a handler for OrderSettled events.
func (p *Publisher) OnOrderSettled(handler func(context.Context, *models.OrderSettledEvent) error) {
	p.onOrderSettled = append(p.onOrderSettled, handler)
}

// OnStockAdded registers a handler for StockAdded events.
func (p *Publisher) OnStockAdded(handler func(context.Context, *models.StockAddedEvent) error) {
	p.onStockAdded = append(p.onStockAdded, handler)
}

// PublishSaleCompleted delivers a SaleCompleted event.
func (p *Publisher) PublishSaleCompleted(ctx context.Context, event *models.SaleCompletedEvent) {
	event.BaseEvent = newBase(models.EventTypeSaleCompleted)
	for _, handler := range p.onSaleCompleted {
		if err := handler(ctx, event); err != nil {
			p.logger.Error("SaleCompleted handler failed",
				zap.String("event_id", event.EventID),
				zap.Error(err))
		}
	}
}

// PublishOrderCreated delivers an OrderCreated event.
func (p *Publisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) {
	event.BaseEvent = newBase(models.EventTypeOrderCreated)
	for _, handler := range p.onOrderCreated {
		if err := handler(ctx, event); err != nil {
			p.logger.Error("OrderCreated handler failed",
				zap.String("event_id", event.EventID),
				zap.Error(err))
		}
	}
}

// PublishOrderSettled delivers an OrderSettled event.
func (p *Publisher) PublishOrderSettled(ctx context.Context, event *models.OrderSettledEvent) {
	event.BaseEvent = newBase(models.EventTypeOrderSettled)
	for _, handler := range p.onOrderSettled {
		if err := handler(ctx, event); err != nil {
			p.logger.Error("OrderSettled handler failed",
				zap.String("event_id", event.EventID),
				zap.Error(err))
		}
	}
}

// PublishStockAdded delivers a StockAdded event.
func (p *Publisher) PublishStockAdded(ctx context.Context, event *models.StockAddedEvent) {
	event.BaseEvent = newBase(models.EventTypeStockAdded)
	for _, handler := range p.onStockAdded {
		if err := handler(ctx, event); err != nil {
			p.logger.Error("StockAdded handler failed",
				zap.String("event_id", event.EventID),
				zap.Error(err))
		}
	}
}
