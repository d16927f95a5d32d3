package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// amountTolerance absorbs division residue when an even split cannot be
// represented exactly (e.g. 1000 across 3 channels).
var amountTolerance = decimal.NewFromFloat(0.01)

// Entry is one row in the cashbook. Incoming money lands on one or more
// channels; outgoing money is drawn from exactly one channel.
type Entry struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Date      time.Time

	ID    string
	Month Month

	// Channels lists the channels receiving money on this entry.
	// PrimaryChannel is kept for single-channel entries; it is NONE when
	// more than one channel is present.
	Channels       []Channel
	PrimaryChannel Channel

	// Amounts maps each receiving channel to its share. Nil when no
	// per-channel amounts were recorded.
	Amounts     ChannelAmounts
	TotalAmount decimal.Decimal

	ExpenseAmount  decimal.Decimal
	ExpenseChannel Channel

	// TransferTag marks an entry as one leg of an internal transfer:
	// "FROM <channel>" on the debit leg, "TO <channel>" on the credit leg.
	TransferTag string
	Reference   string
	Description string

	TransactionCharges decimal.Decimal
	SalaryAmount       decimal.Decimal
	Advance            decimal.Decimal
	SalaryBalance      decimal.Decimal
	Allowance          decimal.Decimal

	// Pass-through bookkeeping metadata, no computation depends on these.
	Sector          string
	MethodOfPayment string
	WagesCategory   string
	WorkerName      string
	PaymentTier     string
	Recyclables     string

	// WildExpenditure flags an expense that pushed the channel's computed
	// availability below zero at the time it was recorded. It is fixed at
	// creation and never recomputed.
	WildExpenditure bool
}

// Validate checks the entry's structural invariants.
func (e *Entry) Validate() error {
	if e.Date.IsZero() {
		return ErrMissingDate
	}

	if !e.Month.Valid() {
		return ErrInvalidMonth
	}

	if e.ExpenseAmount.IsPositive() && !e.ExpenseChannel.Valid() {
		return ErrExpenseChannelMissing
	}

	if !e.Amounts.IsEmpty() {
		diff := e.Amounts.Total().Sub(e.TotalAmount).Abs()
		if diff.GreaterThan(amountTolerance) {
			return ErrAmountMismatch
		}
	}

	return nil
}

// TransferTagFrom labels the debit leg of an internal transfer.
func TransferTagFrom(source Channel) string {
	return "FROM " + string(source)
}

// TransferTagTo labels the credit leg of an internal transfer.
func TransferTagTo(dest Channel) string {
	return "TO " + string(dest)
}

// MonthTotals aggregates a month's entries across all channels.
type MonthTotals struct {
	TotalAmount        decimal.Decimal
	TotalExpenses      decimal.Decimal
	TransactionCharges decimal.Decimal
	SalaryAmount       decimal.Decimal
	Allowance          decimal.Decimal
	EntryCount         int64
}

// ChannelNet is a month's income and expense for one primary channel.
type ChannelNet struct {
	Channel       Channel
	TotalAmount   decimal.Decimal
	TotalExpenses decimal.Decimal
}
