package models

import "time"

// Event types
const (
	EventTypeSaleCompleted = "SALE_COMPLETED"
	EventTypeOrderCreated  = "ORDER_CREATED"
	EventTypeOrderSettled  = "ORDER_SETTLED"
	EventTypeStockAdded    = "STOCK_ADDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleCompletedEvent published when a direct sale is recorded
type SaleCompletedEvent struct {
	BaseEvent
	SaleID     string     `json:"sale_id"`
	CustomerID string     `json:"customer_id"`
	Total      int64      `json:"total"`
	AmountPaid int64      `json:"amount_paid"`
	DebtDelta  int64      `json:"debt_delta"`
	Items      []SaleItem `json:"items"`
}

// OrderCreatedEvent published when a tab is opened
type OrderCreatedEvent struct {
	BaseEvent
	OrderID    string     `json:"order_id"`
	CustomerID string     `json:"customer_id"`
	WaiterID   string     `json:"waiter_id"`
	Total      int64      `json:"total"`
	Items      []SaleItem `json:"items"`
}

// OrderSettledEvent published on every settlement, partial or final
type OrderSettledEvent struct {
	BaseEvent
	OrderID   string     `json:"order_id"`
	SaleID    string     `json:"sale_id"`
	Payment   int64      `json:"payment"`
	Remaining int64      `json:"remaining"`
	DebtDelta int64      `json:"debt_delta"`
	Status    string     `json:"status"`
	Items     []SaleItem `json:"items"`
}

// StockAddedEvent published when inventory is restocked
type StockAddedEvent struct {
	BaseEvent
	ProductID  string `json:"product_id"`
	UnitsAdded int    `json:"units_added"`
	NewStock   int    `json:"new_stock"`
}
