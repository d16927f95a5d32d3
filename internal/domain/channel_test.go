package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

func TestParseChannel(t *testing.T) {
	for _, s := range []string{"MM-AIRTEL", "MM-MTN", "CASH", "BANK", "BUSINESSPROFIT"} {
		c, err := domain.ParseChannel(s)
		if err != nil {
			t.Errorf("ParseChannel(%q): %v", s, err)
		}
		if string(c) != s {
			t.Errorf("ParseChannel(%q) = %q", s, c)
		}
	}

	for _, s := range []string{"", "NONE", "MPESA", "cash"} {
		if _, err := domain.ParseChannel(s); err == nil {
			t.Errorf("ParseChannel(%q) accepted unknown channel", s)
		}
	}
}

func TestPaymentChannel(t *testing.T) {
	if _, ok := domain.PaymentChannel(domain.ChannelBusinessProfit); ok {
		t.Error("BUSINESSPROFIT must not be a payment method")
	}

	ch, ok := domain.PaymentChannel(domain.ChannelCash)
	if !ok || ch != domain.ChannelCash {
		t.Errorf("PaymentChannel(CASH) = %v, %v", ch, ok)
	}
}

func TestSplitEvenly(t *testing.T) {
	amounts := domain.SplitEvenly(decimal.NewFromInt(1000), []domain.Channel{domain.ChannelCash, domain.ChannelBank})

	if !amounts.Get(domain.ChannelCash).Equal(decimal.NewFromInt(500)) {
		t.Errorf("CASH share = %s, want 500", amounts.Get(domain.ChannelCash))
	}
	if !amounts.Get(domain.ChannelBank).Equal(decimal.NewFromInt(500)) {
		t.Errorf("BANK share = %s, want 500", amounts.Get(domain.ChannelBank))
	}
}

func TestSplitEvenlySumMatchesTotal(t *testing.T) {
	total := decimal.NewFromInt(1000)
	channels := []domain.Channel{domain.ChannelCash, domain.ChannelBank, domain.ChannelMTN}

	amounts := domain.SplitEvenly(total, channels)

	diff := amounts.Total().Sub(total).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("split sum %s deviates from total %s by %s", amounts.Total(), total, diff)
	}
}

func TestSplitEvenlyNoChannels(t *testing.T) {
	if amounts := domain.SplitEvenly(decimal.NewFromInt(100), nil); !amounts.IsEmpty() {
		t.Errorf("expected empty amounts, got %v", amounts)
	}
}

func TestChannelAmountsGetAbsent(t *testing.T) {
	var amounts domain.ChannelAmounts
	if !amounts.Get(domain.ChannelBank).IsZero() {
		t.Error("absent channel must read as zero")
	}
}
