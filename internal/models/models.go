package models

import "time"

// Product categories
const (
	CategoryBeers      = "Beers"
	CategorySpirits    = "Spirits"
	CategorySoftDrinks = "Soft Drinks"
	CategoryWines      = "Wines"
	CategorySnacks     = "Snacks"
)

// Expense categories
const (
	ExpenseSalaries  = "Salaries"
	ExpenseRent      = "Rent"
	ExpensePurchases = "Purchases"
	ExpenseUtilities = "Utilities"
	ExpenseOther     = "Other"
)

// Order statuses
const (
	OrderStatusPending = "pending"
	OrderStatusPartial = "partial"
	OrderStatusPaid    = "paid"
)

// Stock quantity types for restocking
const (
	QuantityUnits = "units"
	QuantityCases = "cases"
)

// WalkInCustomerID is the reserved identity for anonymous cash buyers.
// A walk-in can never carry debt.
const WalkInCustomerID = "walk-in"

// Product represents a catalog item. All prices are integer RWF.
type Product struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	RetailPrice       int64  `json:"retail_price"`
	WholesalePrice    int64  `json:"wholesale_price"`
	UnitsPerCase      int    `json:"units_per_case"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// Customer represents a known buyer with a running tab.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Debt      int64  `json:"debt"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Waiter represents a staff member who takes orders.
type Waiter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SaleItem is one line of a sale or order. Price is the line total
// (quantity x unit retail price captured at the time of sale).
type SaleItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Sale is a completed point-in-time transaction. It is immutable once
// created; customer and waiter names are snapshots so history survives
// later renames.
type Sale struct {
	ID           string     `json:"id"`
	Items        []SaleItem `json:"items"`
	Total        int64      `json:"total"`
	AmountPaid   int64      `json:"amount_paid"`
	CustomerName string     `json:"customer_name"`
	WaiterName   string     `json:"waiter_name,omitempty"`
	Date         time.Time  `json:"date"`
}

// OnCredit reports whether part of this sale is still owed.
func (s Sale) OnCredit() bool {
	return s.Total-s.AmountPaid > 0
}

// Order is an open tab. Stock and debt are only touched at settlement.
// DebtRecorded tracks how much of the outstanding balance is currently
// reflected in the customer's debt, so repeated partial settlements
// never double count.
type Order struct {
	ID           string     `json:"id"`
	Items        []SaleItem `json:"items"`
	Total        int64      `json:"total"`
	AmountPaid   int64      `json:"amount_paid"`
	DebtRecorded int64      `json:"debt_recorded"`
	CustomerID   string     `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	WaiterID     string     `json:"waiter_id"`
	WaiterName   string     `json:"waiter_name"`
	Date         time.Time  `json:"date"`
	Status       string     `json:"status"`
}

// Outstanding returns the unpaid balance of the order.
func (o Order) Outstanding() int64 {
	return o.Total - o.AmountPaid
}

// Expense is a purely additive business cost record.
type Expense struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// CartItem is the input form of a sale/order line before pricing.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Settlement is the outcome of applying a payment to an open order.
type Settlement struct {
	Order     Order `json:"order"`
	Sale      Sale  `json:"sale"`
	Payment   int64 `json:"payment"`
	Remaining int64 `json:"remaining"`
	DebtDelta int64 `json:"debt_delta"`
	Closed    bool  `json:"closed"`
}
