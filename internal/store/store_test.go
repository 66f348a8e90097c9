package store

import (
	"testing"

	"akabari-manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSaleCash(t *testing.T) {
	s := NewSeeded()

	sale, err := s.CompleteSale("cust_2", 5000, []models.CartItem{
		{ProductID: "prod_1", Quantity: 2},
		{ProductID: "prod_3", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), sale.Total)
	assert.Equal(t, int64(5000), sale.AmountPaid)
	assert.Equal(t, "Jane Smith", sale.CustomerName)
	assert.False(t, sale.OnCredit())

	heineken, _ := s.GetProduct("prod_1")
	coke, _ := s.GetProduct("prod_3")
	assert.Equal(t, 41, heineken.Stock)
	assert.Equal(t, 148, coke.Stock)

	jane, _ := s.GetCustomer("cust_2")
	assert.Equal(t, int64(0), jane.Debt)

	// Newest first
	assert.Equal(t, sale.ID, s.ListSales()[0].ID)
}

func TestCompleteSaleOnCredit(t *testing.T) {
	s := NewSeeded()

	sale, err := s.CompleteSale("cust_1", 3000, []models.CartItem{
		{ProductID: "prod_1", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), sale.Total)
	assert.True(t, sale.OnCredit())

	john, _ := s.GetCustomer("cust_1")
	assert.Equal(t, int64(16000), john.Debt)
}

func TestCompleteSaleOverpaymentNeverCredits(t *testing.T) {
	s := NewSeeded()

	_, err := s.CompleteSale("cust_2", 10000, []models.CartItem{
		{ProductID: "prod_3", Quantity: 1},
	})
	require.NoError(t, err)

	jane, _ := s.GetCustomer("cust_2")
	assert.Equal(t, int64(0), jane.Debt)
}

func TestCompleteSaleEmptyCart(t *testing.T) {
	s := NewSeeded()

	_, err := s.CompleteSale("cust_2", 0, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCompleteSaleNegativeAmount(t *testing.T) {
	s := NewSeeded()

	_, err := s.CompleteSale("cust_2", -1, []models.CartItem{{ProductID: "prod_1", Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCompleteSaleUnknownParties(t *testing.T) {
	s := NewSeeded()

	_, err := s.CompleteSale("cust_999", 1000, []models.CartItem{{ProductID: "prod_1", Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidParty)

	_, err = s.CompleteSale("cust_1", 1000, []models.CartItem{{ProductID: "prod_999", Quantity: 1}})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestCompleteSaleInsufficientStockLeavesStateUntouched(t *testing.T) {
	s := NewSeeded()
	salesBefore := len(s.ListSales())

	// Four Cousins has only 5 in stock
	_, err := s.CompleteSale("cust_1", 0, []models.CartItem{
		{ProductID: "prod_3", Quantity: 1},
		{ProductID: "prod_4", Quantity: 10},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	coke, _ := s.GetProduct("prod_3")
	wine, _ := s.GetProduct("prod_4")
	assert.Equal(t, 150, coke.Stock)
	assert.Equal(t, 5, wine.Stock)

	john, _ := s.GetCustomer("cust_1")
	assert.Equal(t, int64(15000), john.Debt)
	assert.Len(t, s.ListSales(), salesBefore)
}

func TestCompleteSaleAggregatesDuplicateLines(t *testing.T) {
	s := NewSeeded()

	// 3 + 3 of a product with 5 in stock must fail even though each
	// line passes on its own.
	_, err := s.CompleteSale("cust_2", 90000, []models.CartItem{
		{ProductID: "prod_4", Quantity: 3},
		{ProductID: "prod_4", Quantity: 3},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCompleteSaleWalkInCannotOweMoney(t *testing.T) {
	s := NewSeeded()

	_, err := s.CompleteSale(models.WalkInCustomerID, 1000, []models.CartItem{
		{ProductID: "prod_1", Quantity: 2},
	})
	assert.ErrorIs(t, err, ErrInvalidCreditRecipient)

	heineken, _ := s.GetProduct("prod_1")
	assert.Equal(t, 43, heineken.Stock)

	// Exact payment is fine.
	sale, err := s.CompleteSale(models.WalkInCustomerID, 4000, []models.CartItem{
		{ProductID: "prod_1", Quantity: 2},
	})
	require.NoError(t, err)
	assert.False(t, sale.OnCredit())
}

func TestCreateOrderTouchesNothing(t *testing.T) {
	s := NewSeeded()
	debtBefore := s.TotalDebt()

	order, err := s.CreateOrder("waiter_1", "cust_2", []models.CartItem{
		{ProductID: "prod_2", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(10000), order.Total)
	assert.Equal(t, int64(0), order.AmountPaid)
	assert.Equal(t, "Eric Niyonsaba", order.WaiterName)

	whiskey, _ := s.GetProduct("prod_2")
	assert.Equal(t, 10, whiskey.Stock)
	assert.Equal(t, debtBefore, s.TotalDebt())
}

func TestCreateOrderValidatesParties(t *testing.T) {
	s := NewSeeded()

	_, err := s.CreateOrder("waiter_999", "cust_1", []models.CartItem{{ProductID: "prod_1", Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidParty)

	_, err = s.CreateOrder("waiter_1", "cust_999", []models.CartItem{{ProductID: "prod_1", Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidParty)

	_, err = s.CreateOrder("waiter_1", "cust_1", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSettleOrderPartialThenFull(t *testing.T) {
	s := NewSeeded()

	// order_1: John Doe, total 5000, nothing paid. John starts at 15000.
	first, err := s.SettleOrder("order_1", 2000)
	require.NoError(t, err)

	assert.Equal(t, int64(3000), first.Remaining)
	assert.Equal(t, int64(3000), first.DebtDelta)
	assert.False(t, first.Closed)
	assert.Equal(t, models.OrderStatusPartial, first.Order.Status)
	assert.Equal(t, int64(2000), first.Sale.AmountPaid)
	assert.True(t, first.Sale.OnCredit())

	john, _ := s.GetCustomer("cust_1")
	assert.Equal(t, int64(18000), john.Debt)

	// Paying the rest takes the attributed debt back off the tab.
	second, err := s.SettleOrder("order_1", 3000)
	require.NoError(t, err)

	assert.Equal(t, int64(0), second.Remaining)
	assert.Equal(t, int64(-3000), second.DebtDelta)
	assert.True(t, second.Closed)
	assert.Equal(t, models.OrderStatusPaid, second.Order.Status)
	assert.Equal(t, int64(5000), second.Sale.AmountPaid)
	assert.False(t, second.Sale.OnCredit())

	john, _ = s.GetCustomer("cust_1")
	assert.Equal(t, int64(15000), john.Debt)

	// Closed orders leave the open set.
	_, err = s.GetOpenOrder("order_1")
	assert.ErrorIs(t, err, ErrUnknownOrder)
	_, err = s.SettleOrder("order_1", 1)
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestSettleOrderFullPaymentNeverTouchesDebt(t *testing.T) {
	s := NewSeeded()

	settlement, err := s.SettleOrder("order_1", 5000)
	require.NoError(t, err)

	assert.True(t, settlement.Closed)
	assert.Equal(t, int64(0), settlement.DebtDelta)

	john, _ := s.GetCustomer("cust_1")
	assert.Equal(t, int64(15000), john.Debt)
}

func TestSettleOrderZeroPaymentMovesBalanceToTab(t *testing.T) {
	s := NewSeeded()

	settlement, err := s.SettleOrder("order_1", 0)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), settlement.Remaining)
	assert.Equal(t, int64(5000), settlement.DebtDelta)
	assert.Equal(t, models.OrderStatusPartial, settlement.Order.Status)

	john, _ := s.GetCustomer("cust_1")
	assert.Equal(t, int64(20000), john.Debt)
}

func TestSettleOrderRejectsOverpayment(t *testing.T) {
	s := NewSeeded()

	_, err := s.SettleOrder("order_1", 6000)
	assert.ErrorIs(t, err, ErrOverpayment)

	_, err = s.SettleOrder("order_1", -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	order, err := s.GetOpenOrder("order_1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), order.AmountPaid)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestSettleOrderWalkInMustPayInFull(t *testing.T) {
	s := NewSeeded()

	order, err := s.CreateOrder("waiter_2", models.WalkInCustomerID, []models.CartItem{
		{ProductID: "prod_3", Quantity: 4},
	})
	require.NoError(t, err)

	_, err = s.SettleOrder(order.ID, 1000)
	assert.ErrorIs(t, err, ErrInvalidCreditRecipient)

	settlement, err := s.SettleOrder(order.ID, 2000)
	require.NoError(t, err)
	assert.True(t, settlement.Closed)

	walkIn, _ := s.GetCustomer(models.WalkInCustomerID)
	assert.Equal(t, int64(0), walkIn.Debt)
}

func TestAddStockUnitsAndCases(t *testing.T) {
	s := NewSeeded()

	p, err := s.AddStock("prod_2", 5, models.QuantityUnits)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Stock)

	// Jameson comes 12 to a case.
	p, err = s.AddStock("prod_2", 2, models.QuantityCases)
	require.NoError(t, err)
	assert.Equal(t, 39, p.Stock)
}

func TestAddStockRejectsBadInput(t *testing.T) {
	s := NewSeeded()

	_, err := s.AddStock("prod_999", 1, models.QuantityUnits)
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = s.AddStock("prod_1", 0, models.QuantityUnits)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.AddStock("prod_1", 5, "pallets")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	p, _ := s.GetProduct("prod_1")
	assert.Equal(t, 43, p.Stock)
}

func TestAddProductAndCustomer(t *testing.T) {
	s := NewSeeded()

	p, err := s.AddProduct(models.Product{
		Name:              "Tusker Lager",
		Category:          models.CategoryBeers,
		RetailPrice:       1800,
		WholesalePrice:    36000,
		UnitsPerCase:      24,
		Stock:             48,
		LowStockThreshold: 24,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	_, err = s.AddProduct(models.Product{Name: "Broken", UnitsPerCase: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	c, err := s.AddCustomer("Alice Mukamana", "+250788000111")
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.Debt)
	assert.NotEmpty(t, c.AvatarURL)
}

func TestPricesCapturedAtSaleTime(t *testing.T) {
	s := NewSeeded()

	sale, err := s.CompleteSale("cust_2", 2000, []models.CartItem{{ProductID: "prod_1", Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, int64(2000), sale.Items[0].Price)
}

func TestTotalDebt(t *testing.T) {
	s := NewSeeded()
	assert.Equal(t, int64(42500), s.TotalDebt())
}
