package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

// AvailabilityService computes how much money a channel has for a month:
// the carry-over from the previous month plus this month's income, minus
// this month's expenses and any pending deduction. Pure read, no side
// effects.
type AvailabilityService struct {
	entries EntryRepository
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(entries EntryRepository) *AvailabilityService {
	return &AvailabilityService{entries: entries}
}

// Availability computes the channel's position for month. pendingDeduction
// may be zero for a pure read.
func (s *AvailabilityService) Availability(ctx context.Context, month domain.Month, channel domain.Channel, pendingDeduction decimal.Decimal) (domain.Availability, error) {
	return availabilityFrom(ctx, s.entries, month, channel, pendingDeduction)
}

// availabilityFrom runs the availability computation against any sum
// source, so the transfer path can evaluate it inside its own transaction.
// Unknown channels and empty months read as no history, not as an error.
func availabilityFrom(ctx context.Context, sums ChannelSums, month domain.Month, channel domain.Channel, pendingDeduction decimal.Decimal) (domain.Availability, error) {
	result := domain.Availability{
		Month:             month,
		Channel:           channel,
		CarryFromPrevious: decimal.Zero,
		IncomeThisMonth:   decimal.Zero,
		ExpenseThisMonth:  decimal.Zero,
		AvailableAfter:    decimal.Zero,
	}

	if !month.Valid() || !channel.Valid() {
		return result, nil
	}

	prev := month.Prev()

	prevIncome, err := sums.SumIncome(ctx, prev, channel)
	if err != nil {
		return result, err
	}

	prevExpense, err := sums.SumExpense(ctx, prev, channel)
	if err != nil {
		return result, err
	}

	result.CarryFromPrevious = domain.CarryForward(prevIncome.Sub(prevExpense))

	income, err := sums.SumIncome(ctx, month, channel)
	if err != nil {
		return result, err
	}

	expense, err := sums.SumExpense(ctx, month, channel)
	if err != nil {
		return result, err
	}

	result.IncomeThisMonth = income
	result.ExpenseThisMonth = expense

	availableBefore := result.CarryFromPrevious.Add(income).Sub(expense)
	result.AvailableAfter = availableBefore.Sub(pendingDeduction)

	return result, nil
}
