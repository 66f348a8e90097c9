package store

import (
	"fmt"
	"sync"
	"time"

	"akabari-manager/internal/models"

	"github.com/google/uuid"
)

// Store holds all business state in memory and exposes the ledger
// transactions as atomic methods. Every write goes through one of these
// methods; each validates completely before mutating anything, so a
// rejected operation leaves all collections untouched.
type Store struct {
	mu        sync.RWMutex
	products  []models.Product
	customers []models.Customer
	waiters   []models.Waiter
	sales     []models.Sale
	orders    []models.Order
	expenses  []models.Expense
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

func newID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.New().String()[:8])
}

func (s *Store) findProduct(id string) *models.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

func (s *Store) findCustomer(id string) *models.Customer {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return &s.customers[i]
		}
	}
	return nil
}

func (s *Store) findWaiter(id string) *models.Waiter {
	for i := range s.waiters {
		if s.waiters[i].ID == id {
			return &s.waiters[i]
		}
	}
	return nil
}

func (s *Store) findOrderIndex(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// priceCart validates cart lines against the catalog and prices them at
// current retail. Returns the priced line items and the cart total.
// Caller must hold the lock.
func (s *Store) priceCart(cart []models.CartItem) ([]models.SaleItem, int64, error) {
	if len(cart) == 0 {
		return nil, 0, ErrEmptyCart
	}

	items := make([]models.SaleItem, 0, len(cart))
	var total int64
	for _, line := range cart {
		if line.Quantity < 1 {
			return nil, 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, line.Quantity)
		}
		p := s.findProduct(line.ProductID)
		if p == nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrUnknownProduct, line.ProductID)
		}
		linePrice := int64(line.Quantity) * p.RetailPrice
		items = append(items, models.SaleItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			Price:     linePrice,
		})
		total += linePrice
	}
	return items, total, nil
}

// CompleteSale records a point-of-sale transaction: it appends an
// immutable Sale with price snapshots, decrements stock for every line,
// and pushes any shortfall onto the customer's debt. The walk-in
// customer can never be left owing money.
func (s *Store) CompleteSale(customerID string, amountPaid int64, cart []models.CartItem) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amountPaid < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amountPaid)
	}
	customer := s.findCustomer(customerID)
	if customer == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParty, customerID)
	}

	items, total, err := s.priceCart(cart)
	if err != nil {
		return nil, err
	}

	// Stock check against aggregated quantities, so a cart listing the
	// same product twice cannot slip past the per-line check.
	requested := make(map[string]int, len(items))
	for _, it := range items {
		requested[it.ProductID] += it.Quantity
	}
	for id, qty := range requested {
		if p := s.findProduct(id); qty > p.Stock {
			return nil, fmt.Errorf("%w: %s (requested %d, have %d)", ErrInsufficientStock, p.Name, qty, p.Stock)
		}
	}

	debtDelta := total - amountPaid
	if debtDelta < 0 {
		debtDelta = 0
	}
	if debtDelta > 0 && customer.ID == models.WalkInCustomerID {
		return nil, ErrInvalidCreditRecipient
	}

	// All checks passed; mutate. No error paths below.
	for id, qty := range requested {
		s.findProduct(id).Stock -= qty
	}
	customer.Debt += debtDelta

	sale := models.Sale{
		ID:           newID("sale"),
		Items:        items,
		Total:        total,
		AmountPaid:   amountPaid,
		CustomerName: customer.Name,
		Date:         time.Now(),
	}
	s.sales = append([]models.Sale{sale}, s.sales...)
	return &sale, nil
}

// CreateOrder opens a tab. Stock is not reserved and debt is not touched
// until settlement; prices are captured at order time.
func (s *Store) CreateOrder(waiterID, customerID string, cart []models.CartItem) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	waiter := s.findWaiter(waiterID)
	if waiter == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParty, waiterID)
	}
	customer := s.findCustomer(customerID)
	if customer == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParty, customerID)
	}

	items, total, err := s.priceCart(cart)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		ID:           newID("order"),
		Items:        items,
		Total:        total,
		AmountPaid:   0,
		DebtRecorded: 0,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		WaiterID:     waiter.ID,
		WaiterName:   waiter.Name,
		Date:         time.Now(),
		Status:       models.OrderStatusPending,
	}
	s.orders = append([]models.Order{order}, s.orders...)
	return &order, nil
}

// SettleOrder applies a payment to an open order. A Sale record is
// appended mirroring the order at its new paid amount, and the
// customer's debt is re-synchronised with the order's remaining balance:
// the first settlement pushes the shortfall onto the tab, later payments
// pay it back down, and a full settlement clears it. A fully paid order
// leaves the open set.
func (s *Store) SettleOrder(orderID string, payment int64) (*models.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findOrderIndex(orderID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	order := &s.orders[idx]

	if payment < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, payment)
	}
	outstanding := order.Outstanding()
	if payment > outstanding {
		return nil, fmt.Errorf("%w: payment %d, remaining %d", ErrOverpayment, payment, outstanding)
	}
	customer := s.findCustomer(order.CustomerID)
	if customer == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParty, order.CustomerID)
	}

	remaining := outstanding - payment
	debtDelta := remaining - order.DebtRecorded
	if debtDelta > 0 && customer.ID == models.WalkInCustomerID {
		return nil, ErrInvalidCreditRecipient
	}

	// All checks passed; mutate. No error paths below.
	customer.Debt += debtDelta
	order.AmountPaid += payment
	order.DebtRecorded = remaining
	if remaining == 0 {
		order.Status = models.OrderStatusPaid
	} else {
		order.Status = models.OrderStatusPartial
	}

	items := make([]models.SaleItem, len(order.Items))
	copy(items, order.Items)
	sale := models.Sale{
		ID:           newID("sale"),
		Items:        items,
		Total:        order.Total,
		AmountPaid:   order.AmountPaid,
		CustomerName: order.CustomerName,
		WaiterName:   order.WaiterName,
		Date:         time.Now(),
	}
	s.sales = append([]models.Sale{sale}, s.sales...)

	settlement := &models.Settlement{
		Order:     *order,
		Sale:      sale,
		Payment:   payment,
		Remaining: remaining,
		DebtDelta: debtDelta,
		Closed:    remaining == 0,
	}
	if settlement.Closed {
		s.orders = append(s.orders[:idx], s.orders[idx+1:]...)
	}
	return settlement, nil
}

// AddStock raises a product's units on hand. Cases are converted to
// units via the product's unitsPerCase.
func (s *Store) AddStock(productID string, quantity int, quantityType string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findProduct(productID)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	var units int
	switch quantityType {
	case models.QuantityUnits:
		units = quantity
	case models.QuantityCases:
		units = quantity * p.UnitsPerCase
	default:
		return nil, fmt.Errorf("%w: unknown quantity type %q", ErrInvalidQuantity, quantityType)
	}

	p.Stock += units
	cp := *p
	return &cp, nil
}

// AddProduct registers a new catalog item.
func (s *Store) AddProduct(p models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.RetailPrice < 0 || p.WholesalePrice < 0 || p.Stock < 0 || p.LowStockThreshold < 0 {
		return nil, ErrInvalidAmount
	}
	if p.UnitsPerCase < 1 {
		return nil, fmt.Errorf("%w: units per case %d", ErrInvalidQuantity, p.UnitsPerCase)
	}

	p.ID = newID("prod")
	s.products = append(s.products, p)
	return &p, nil
}

// AddCustomer registers a new customer with an empty tab.
func (s *Store) AddCustomer(name, contact string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.Customer{
		ID:        newID("cust"),
		Name:      name,
		Contact:   contact,
		Debt:      0,
		AvatarURL: fmt.Sprintf("https://picsum.photos/seed/%d/40/40", len(s.customers)+1),
	}
	s.customers = append(s.customers, c)
	return &c, nil
}

// AddExpense appends an expense record.
func (s *Store) AddExpense(category string, amount int64, description string) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	e := models.Expense{
		ID:          newID("exp"),
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        time.Now(),
	}
	s.expenses = append([]models.Expense{e}, s.expenses...)
	return &e, nil
}

// GetProduct returns a copy of a product.
func (s *Store) GetProduct(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.findProduct(id)
	if p == nil {
		return models.Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	return *p, nil
}

// GetCustomer returns a copy of a customer.
func (s *Store) GetCustomer(id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.findCustomer(id)
	if c == nil {
		return models.Customer{}, fmt.Errorf("%w: %s", ErrInvalidParty, id)
	}
	return *c, nil
}

// GetOpenOrder returns a copy of an order still in the open set.
func (s *Store) GetOpenOrder(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.findOrderIndex(id)
	if idx < 0 {
		return models.Order{}, fmt.Errorf("%w: %s", ErrUnknownOrder, id)
	}
	return s.orders[idx], nil
}

// ListProducts returns a snapshot of the catalog.
func (s *Store) ListProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ListCustomers returns a snapshot of all customers.
func (s *Store) ListCustomers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// ListWaiters returns a snapshot of the staff list.
func (s *Store) ListWaiters() []models.Waiter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Waiter, len(s.waiters))
	copy(out, s.waiters)
	return out
}

// ListSales returns a snapshot of the sales ledger, newest first.
func (s *Store) ListSales() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// ListOpenOrders returns a snapshot of pending and partial orders.
func (s *Store) ListOpenOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// ListExpenses returns a snapshot of all expenses, newest first.
func (s *Store) ListExpenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// TotalDebt sums the outstanding debt across all customers.
func (s *Store) TotalDebt() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, c := range s.customers {
		total += c.Debt
	}
	return total
}
