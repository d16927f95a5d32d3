package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Not-found errors
	ErrEntryNotFound    = errors.New("cashbook entry not found")
	ErrPurchaseNotFound = errors.New("inventory purchase not found")
	ErrSaleNotFound     = errors.New("inventory sale not found")
	ErrUserNotFound     = errors.New("user not found")

	// Validation errors
	ErrMissingDate           = errors.New("date is required")
	ErrMissingMonth          = errors.New("month is required")
	ErrInvalidMonth          = errors.New("invalid month")
	ErrUnknownChannel        = errors.New("unknown channel")
	ErrSameChannel           = errors.New("cannot transfer to the same channel")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrUnknownItemType       = errors.New("unknown item type")
	ErrMissingSupplier       = errors.New("supplier name is required")
	ErrMissingCompany        = errors.New("company name is required")
	ErrInvalidApprovalStatus = errors.New("status must be APPROVED or REJECTED")
	ErrPurchaseDecided       = errors.New("purchase has already been decided")
	ErrMissingCredentials    = errors.New("username and password required")
	ErrAmountMismatch        = errors.New("per-channel amounts do not sum to total")
	ErrExpenseChannelMissing = errors.New("expense requires an expense channel")

	// Authorization errors
	ErrForbidden          = errors.New("admin only")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InsufficientBalanceError rejects a transfer for lack of funds. Available
// is the balance the source channel actually had before the deduction, so
// callers can report it.
type InsufficientBalanceError struct {
	Channel   Channel
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance in %s. Available: %s UGX", e.Channel, e.Available)
}
