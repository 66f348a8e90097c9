package store

import (
	"time"

	"akabari-manager/internal/models"
)

// NewSeeded builds a store pre-loaded with the demo bar's fixture data.
// State lives only in memory; every restart begins from this snapshot.
func NewSeeded() *Store {
	now := time.Now()

	s := New()
	s.products = []models.Product{
		{ID: "prod_1", Name: "Heineken 330ml", Category: models.CategoryBeers, RetailPrice: 2000, WholesalePrice: 40000, UnitsPerCase: 24, Stock: 43, LowStockThreshold: 24},
		{ID: "prod_2", Name: "Jameson Irish Whiskey", Category: models.CategorySpirits, RetailPrice: 5000, WholesalePrice: 55000, UnitsPerCase: 12, Stock: 10, LowStockThreshold: 6},
		{ID: "prod_3", Name: "Coca-Cola 500ml", Category: models.CategorySoftDrinks, RetailPrice: 500, WholesalePrice: 10000, UnitsPerCase: 24, Stock: 150, LowStockThreshold: 50},
		{ID: "prod_4", Name: "Four Cousins Red Wine", Category: models.CategoryWines, RetailPrice: 15000, WholesalePrice: 80000, UnitsPerCase: 6, Stock: 5, LowStockThreshold: 3},
		{ID: "prod_5", Name: "Mützig 500ml", Category: models.CategoryBeers, RetailPrice: 1500, WholesalePrice: 32000, UnitsPerCase: 24, Stock: 80, LowStockThreshold: 48},
		{ID: "prod_6", Name: "Fanta Orange 500ml", Category: models.CategorySoftDrinks, RetailPrice: 500, WholesalePrice: 10000, UnitsPerCase: 24, Stock: 20, LowStockThreshold: 24},
	}

	s.customers = []models.Customer{
		{ID: models.WalkInCustomerID, Name: "Walk-in", Contact: "", Debt: 0},
		{ID: "cust_1", Name: "John Doe", Contact: "+250788123456", Debt: 15000, AvatarURL: "https://picsum.photos/seed/1/40/40"},
		{ID: "cust_2", Name: "Jane Smith", Contact: "+250788654321", Debt: 0, AvatarURL: "https://picsum.photos/seed/2/40/40"},
		{ID: "cust_3", Name: "Peter Jones", Contact: "+250788987654", Debt: 5000, AvatarURL: "https://picsum.photos/seed/3/40/40"},
		{ID: "cust_4", Name: "Maryanne Wanjiru", Contact: "+250722112233", Debt: 22500, AvatarURL: "https://picsum.photos/seed/4/40/40"},
	}

	s.waiters = []models.Waiter{
		{ID: "waiter_1", Name: "Eric Niyonsaba"},
		{ID: "waiter_2", Name: "Claudine Uwase"},
	}

	// Paid amounts line up with the seeded customer debts: Peter owes his
	// whole whiskey, John still owes 15,000 on the Heineken case, and
	// Maryanne's wine is fully on her tab.
	s.sales = []models.Sale{
		{ID: "sale_1", Items: []models.SaleItem{{ProductID: "prod_1", Quantity: 2, Price: 4000}, {ProductID: "prod_3", Quantity: 1, Price: 500}}, Total: 4500, AmountPaid: 4500, CustomerName: "Jane Smith", Date: now.Add(-2 * time.Hour)},
		{ID: "sale_2", Items: []models.SaleItem{{ProductID: "prod_2", Quantity: 1, Price: 5000}}, Total: 5000, AmountPaid: 0, CustomerName: "Peter Jones", Date: now.Add(-5 * time.Hour)},
		{ID: "sale_3", Items: []models.SaleItem{{ProductID: "prod_5", Quantity: 6, Price: 9000}}, Total: 9000, AmountPaid: 9000, CustomerName: "Walk-in", Date: now.AddDate(0, 0, -1)},
		{ID: "sale_4", Items: []models.SaleItem{{ProductID: "prod_1", Quantity: 12, Price: 24000}}, Total: 24000, AmountPaid: 9000, CustomerName: "John Doe", Date: now.AddDate(0, 0, -2)},
		{ID: "sale_5", Items: []models.SaleItem{{ProductID: "prod_4", Quantity: 1, Price: 15000}}, Total: 15000, AmountPaid: 0, CustomerName: "Maryanne Wanjiru", Date: now.AddDate(0, 0, -3)},
	}

	s.orders = []models.Order{
		{
			ID: "order_1",
			Items: []models.SaleItem{
				{ProductID: "prod_1", Quantity: 2, Price: 4000},
				{ProductID: "prod_3", Quantity: 2, Price: 1000},
			},
			Total:        5000,
			AmountPaid:   0,
			DebtRecorded: 0,
			CustomerID:   "cust_1",
			CustomerName: "John Doe",
			WaiterID:     "waiter_1",
			WaiterName:   "Eric Niyonsaba",
			Date:         now.Add(-1 * time.Hour),
			Status:       models.OrderStatusPending,
		},
	}

	s.expenses = []models.Expense{
		{ID: "exp_1", Category: models.ExpensePurchases, Amount: 80000, Description: "Restocked Heineken & Mützig", Date: now.AddDate(0, 0, -1)},
		{ID: "exp_2", Category: models.ExpenseSalaries, Amount: 150000, Description: "Staff salaries for May", Date: now.AddDate(0, 0, -2)},
		{ID: "exp_3", Category: models.ExpenseUtilities, Amount: 25000, Description: "Electricity bill", Date: now.AddDate(0, 0, -4)},
		{ID: "exp_4", Category: models.ExpenseRent, Amount: 200000, Description: "June Rent", Date: now.AddDate(0, 0, -5)},
	}

	return s
}
