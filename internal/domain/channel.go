package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Channel identifies a payment medium (mobile money account, cash drawer,
// bank account, business profit pot) that carries its own running balance.
type Channel string

const (
	ChannelAirtel         Channel = "MM-AIRTEL"
	ChannelMTN            Channel = "MM-MTN"
	ChannelCash           Channel = "CASH"
	ChannelBank           Channel = "BANK"
	ChannelBusinessProfit Channel = "BUSINESSPROFIT"

	// ChannelNone marks the absence of an expense channel on an entry.
	ChannelNone Channel = "NONE"
)

// Channels is the closed set of balance-carrying channels.
var Channels = []Channel{
	ChannelAirtel,
	ChannelMTN,
	ChannelCash,
	ChannelBank,
	ChannelBusinessProfit,
}

// ParseChannel parses a channel tag.
func ParseChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
	}

	return c, nil
}

// Valid reports whether c belongs to the closed channel set.
func (c Channel) Valid() bool {
	switch c {
	case ChannelAirtel, ChannelMTN, ChannelCash, ChannelBank, ChannelBusinessProfit:
		return true
	}

	return false
}

// PaymentChannel maps an inventory payment method onto the channel it
// debits or credits. BUSINESSPROFIT is not a payment method.
func PaymentChannel(c Channel) (Channel, bool) {
	switch c {
	case ChannelCash, ChannelAirtel, ChannelMTN, ChannelBank:
		return c, true
	}

	return ChannelNone, false
}

// ChannelAmounts associates channels from the closed set with incoming
// amounts. Channels without a recorded amount read as zero.
type ChannelAmounts map[Channel]decimal.Decimal

// Get returns the amount for c, zero when absent.
func (a ChannelAmounts) Get(c Channel) decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}

	return a[c]
}

// Total sums all recorded amounts.
func (a ChannelAmounts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range a {
		total = total.Add(v)
	}

	return total
}

// IsEmpty reports whether no amounts are recorded.
func (a ChannelAmounts) IsEmpty() bool {
	return len(a) == 0
}

// SplitEvenly distributes total across the given channels in equal shares.
// The even split is deliberate: the cashbook records no signal that would
// justify any other allocation.
func SplitEvenly(total decimal.Decimal, channels []Channel) ChannelAmounts {
	if len(channels) == 0 {
		return nil
	}

	share := total.Div(decimal.NewFromInt(int64(len(channels))))

	amounts := make(ChannelAmounts, len(channels))
	for _, c := range channels {
		amounts[c] = share
	}

	return amounts
}
