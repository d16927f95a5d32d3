package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Month is a calendar month key in "YYYY-MM" form. It partitions all
// cashbook aggregation.
type Month string

const monthLayout = "2006-01"

// MonthOf derives the month key for a point in time, in UTC.
func MonthOf(t time.Time) Month {
	return Month(t.UTC().Format(monthLayout))
}

// ParseMonth parses a "YYYY-MM" month key.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	return Month(t.Format(monthLayout)), nil
}

// Valid reports whether m is a well-formed month key.
func (m Month) Valid() bool {
	_, err := time.Parse(monthLayout, string(m))
	return err == nil
}

// Prev returns the preceding calendar month; the year rolls over at
// January. Returns "" for a malformed month.
func (m Month) Prev() Month {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return ""
	}

	return Month(t.AddDate(0, -1, 0).Format(monthLayout))
}

func (m Month) String() string {
	return string(m)
}

// carryThreshold is one UGX: a raw net below it does not roll forward.
var carryThreshold = decimal.NewFromInt(1)

// CarryForward applies the carry-over rule to a raw month net. Nets below
// one unit of currency (including all negative nets) carry nothing.
func CarryForward(net decimal.Decimal) decimal.Decimal {
	if net.LessThan(carryThreshold) {
		return decimal.Zero
	}

	return net
}

// Availability is the computed funds position of a channel for a month.
type Availability struct {
	Month             Month
	Channel           Channel
	CarryFromPrevious decimal.Decimal
	IncomeThisMonth   decimal.Decimal
	ExpenseThisMonth  decimal.Decimal
	AvailableAfter    decimal.Decimal
}
