package service

import (
	"context"
	"errors"

	"akabari-manager/internal/events"
	"akabari-manager/internal/models"
	"akabari-manager/internal/store"
	"akabari-manager/internal/util"

	"go.uber.org/zap"
)

// LedgerService is the single write path into the ledger. It delegates
// the atomic state transitions to the store and layers observability
// and domain events on top.
type LedgerService struct {
	store  *store.Store
	events *events.Publisher
	logger *zap.Logger
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(st *store.Store, publisher *events.Publisher) *LedgerService {
	return &LedgerService{
		store:  st,
		events: publisher,
		logger: util.GetLogger(),
	}
}

// CartItemRequest is one requested line of a sale or order.
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CompleteSaleRequest represents a point-of-sale checkout.
type CompleteSaleRequest struct {
	CustomerID string            `json:"customer_id" binding:"required"`
	AmountPaid int64             `json:"amount_paid" binding:"min=0"`
	Items      []CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderRequest represents opening a tab.
type CreateOrderRequest struct {
	WaiterID   string            `json:"waiter_id" binding:"required"`
	CustomerID string            `json:"customer_id" binding:"required"`
	Items      []CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SettleOrderRequest represents a payment against an open order.
type SettleOrderRequest struct {
	Payment int64 `json:"payment" binding:"min=0"`
}

// AddStockRequest represents a restock in units or cases.
type AddStockRequest struct {
	ProductID    string `json:"product_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	QuantityType string `json:"quantity_type" binding:"required,oneof=units cases"`
}

// AddProductRequest represents a new catalog item.
type AddProductRequest struct {
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category" binding:"required,oneof=Beers Spirits 'Soft Drinks' Wines Snacks"`
	RetailPrice       int64  `json:"retail_price" binding:"min=0"`
	WholesalePrice    int64  `json:"wholesale_price" binding:"min=0"`
	UnitsPerCase      int    `json:"units_per_case" binding:"required,min=1"`
	Stock             int    `json:"stock" binding:"min=0"`
	LowStockThreshold int    `json:"low_stock_threshold" binding:"min=0"`
}

// AddCustomerRequest represents a new customer profile.
type AddCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact" binding:"required"`
}

// AddExpenseRequest represents a new expense record.
type AddExpenseRequest struct {
	Category    string `json:"category" binding:"required,oneof=Salaries Rent Purchases Utilities Other"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description" binding:"required"`
}

func cartItems(reqs []CartItemRequest) []models.CartItem {
	items := make([]models.CartItem, len(reqs))
	for i, r := range reqs {
		items[i] = models.CartItem{ProductID: r.ProductID, Quantity: r.Quantity}
	}
	return items
}

// rejectionReason maps ledger errors to a stable metric label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, store.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, store.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, store.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, store.ErrUnknownProduct):
		return "unknown_product"
	case errors.Is(err, store.ErrInvalidParty):
		return "invalid_party"
	case errors.Is(err, store.ErrUnknownOrder):
		return "unknown_order"
	case errors.Is(err, store.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, store.ErrInvalidCreditRecipient):
		return "invalid_credit_recipient"
	case errors.Is(err, store.ErrOverpayment):
		return "overpayment"
	default:
		return "other"
	}
}

// CompleteSale records a checkout, updating stock and debt exactly once.
func (s *LedgerService) CompleteSale(ctx context.Context, req *CompleteSaleRequest) (*models.Sale, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.CompleteSale")
	defer span.End()

	sale, err := s.store.CompleteSale(req.CustomerID, req.AmountPaid, cartItems(req.Items))
	if err != nil {
		util.SalesRejectedTotal.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}

	util.SalesCompletedTotal.Inc()
	util.DebtOutstanding.Set(float64(s.store.TotalDebt()))

	debtDelta := sale.Total - sale.AmountPaid
	if debtDelta < 0 {
		debtDelta = 0
	}
	s.logger.Info("Sale completed",
		zap.String("sale_id", sale.ID),
		zap.String("customer", sale.CustomerName),
		zap.Int64("total", sale.Total),
		zap.Int64("amount_paid", sale.AmountPaid),
		zap.Int64("debt_delta", debtDelta))

	s.events.PublishSaleCompleted(ctx, &models.SaleCompletedEvent{
		SaleID:     sale.ID,
		CustomerID: req.CustomerID,
		Total:      sale.Total,
		AmountPaid: sale.AmountPaid,
		DebtDelta:  debtDelta,
		Items:      sale.Items,
	})
	return sale, nil
}

// CreateOrder opens a tab without touching stock or debt.
func (s *LedgerService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.CreateOrder")
	defer span.End()

	order, err := s.store.CreateOrder(req.WaiterID, req.CustomerID, cartItems(req.Items))
	if err != nil {
		return nil, err
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("customer", order.CustomerName),
		zap.String("waiter", order.WaiterName),
		zap.Int64("total", order.Total))

	s.events.PublishOrderCreated(ctx, &models.OrderCreatedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		WaiterID:   order.WaiterID,
		Total:      order.Total,
		Items:      order.Items,
	})
	return order, nil
}

// SettleOrder applies a payment to an open order and mirrors it into
// the sales ledger.
func (s *LedgerService) SettleOrder(ctx context.Context, orderID string, req *SettleOrderRequest) (*models.Settlement, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.SettleOrder")
	defer span.End()

	settlement, err := s.store.SettleOrder(orderID, req.Payment)
	if err != nil {
		return nil, err
	}

	util.OrdersSettledTotal.Inc()
	if settlement.Closed {
		util.OrdersPaidTotal.Inc()
	}
	util.DebtOutstanding.Set(float64(s.store.TotalDebt()))

	s.logger.Info("Order settled",
		zap.String("order_id", orderID),
		zap.Int64("payment", settlement.Payment),
		zap.Int64("remaining", settlement.Remaining),
		zap.Int64("debt_delta", settlement.DebtDelta),
		zap.String("status", settlement.Order.Status))

	s.events.PublishOrderSettled(ctx, &models.OrderSettledEvent{
		OrderID:   orderID,
		SaleID:    settlement.Sale.ID,
		Payment:   settlement.Payment,
		Remaining: settlement.Remaining,
		DebtDelta: settlement.DebtDelta,
		Status:    settlement.Order.Status,
		Items:     settlement.Sale.Items,
	})
	return settlement, nil
}

// AddStock raises a product's units on hand.
func (s *LedgerService) AddStock(ctx context.Context, req *AddStockRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.AddStock")
	defer span.End()

	before, err := s.store.GetProduct(req.ProductID)
	if err != nil {
		return nil, err
	}
	product, err := s.store.AddStock(req.ProductID, req.Quantity, req.QuantityType)
	if err != nil {
		return nil, err
	}

	util.StockAdditionsTotal.Inc()
	s.logger.Info("Stock added",
		zap.String("product_id", product.ID),
		zap.String("product", product.Name),
		zap.Int("units_added", product.Stock-before.Stock),
		zap.Int("new_stock", product.Stock))

	s.events.PublishStockAdded(ctx, &models.StockAddedEvent{
		ProductID:  product.ID,
		UnitsAdded: product.Stock - before.Stock,
		NewStock:   product.Stock,
	})
	return product, nil
}

// AddProduct registers a new catalog item.
func (s *LedgerService) AddProduct(ctx context.Context, req *AddProductRequest) (*models.Product, error) {
	_, span := util.StartSpan(ctx, "LedgerService.AddProduct")
	defer span.End()

	product, err := s.store.AddProduct(models.Product{
		Name:              req.Name,
		Category:          req.Category,
		RetailPrice:       req.RetailPrice,
		WholesalePrice:    req.WholesalePrice,
		UnitsPerCase:      req.UnitsPerCase,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Product added", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// AddCustomer registers a new customer with an empty tab.
func (s *LedgerService) AddCustomer(ctx context.Context, req *AddCustomerRequest) (*models.Customer, error) {
	_, span := util.StartSpan(ctx, "LedgerService.AddCustomer")
	defer span.End()

	customer, err := s.store.AddCustomer(req.Name, req.Contact)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Customer added", zap.String("customer_id", customer.ID), zap.String("name", customer.Name))
	return customer, nil
}

// AddExpense appends an expense record.
func (s *LedgerService) AddExpense(ctx context.Context, req *AddExpenseRequest) (*models.Expense, error) {
	_, span := util.StartSpan(ctx, "LedgerService.AddExpense")
	defer span.End()

	expense, err := s.store.AddExpense(req.Category, req.Amount, req.Description)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Expense recorded",
		zap.String("expense_id", expense.ID),
		zap.String("category", expense.Category),
		zap.Int64("amount", expense.Amount))
	return expense, nil
}
