package store

import "errors"

var (
	// ErrEmptyCart indicates a sale or order with no line items.
	ErrEmptyCart = errors.New("ledger: cart is empty")
	// ErrInvalidQuantity indicates a line quantity below 1 or a bad quantity type.
	ErrInvalidQuantity = errors.New("ledger: invalid quantity")
	// ErrInvalidAmount indicates a negative payment amount.
	ErrInvalidAmount = errors.New("ledger: amount must not be negative")
	// ErrUnknownProduct indicates a product id that does not resolve.
	ErrUnknownProduct = errors.New("ledger: product not found")
	// ErrInvalidParty indicates a customer or waiter id that does not resolve.
	ErrInvalidParty = errors.New("ledger: customer or waiter not found")
	// ErrUnknownOrder indicates an order id not present in the open set.
	ErrUnknownOrder = errors.New("ledger: order not found")
	// ErrInsufficientStock indicates a requested quantity above units on hand.
	ErrInsufficientStock = errors.New("ledger: insufficient stock")
	// ErrInvalidCreditRecipient indicates an attempt to put debt on the walk-in customer.
	ErrInvalidCreditRecipient = errors.New("ledger: walk-in customers cannot carry debt")
	// ErrOverpayment indicates a settlement payment above the remaining balance.
	ErrOverpayment = errors.New("ledger: payment exceeds remaining balance")
)
