package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

func TestMonthPrev(t *testing.T) {
	tests := []struct {
		month string
		want  string
	}{
		{"2026-01", "2025-12"},
		{"2026-02", "2026-01"},
		{"2025-12", "2025-11"},
		{"2024-03", "2024-02"},
	}

	for _, tt := range tests {
		got := domain.Month(tt.month).Prev()
		if string(got) != tt.want {
			t.Errorf("Prev(%s) = %s, want %s", tt.month, got, tt.want)
		}
	}
}

func TestMonthOf(t *testing.T) {
	d := time.Date(2026, time.January, 15, 23, 30, 0, 0, time.UTC)
	if got := domain.MonthOf(d); got != "2026-01" {
		t.Errorf("MonthOf = %s, want 2026-01", got)
	}
}

func TestParseMonth(t *testing.T) {
	if _, err := domain.ParseMonth("2026-07"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, bad := range []string{"", "2026", "2026-13", "07-2026", "2026-7"} {
		if _, err := domain.ParseMonth(bad); err == nil {
			t.Errorf("ParseMonth(%q) accepted malformed month", bad)
		}
	}
}

func TestCarryForward(t *testing.T) {
	tests := []struct {
		name string
		net  decimal.Decimal
		want decimal.Decimal
	}{
		{"deeply negative", decimal.NewFromInt(-5000), decimal.Zero},
		{"zero", decimal.Zero, decimal.Zero},
		{"below one shilling", decimal.NewFromFloat(0.5), decimal.Zero},
		{"exactly one", decimal.NewFromInt(1), decimal.NewFromInt(1)},
		{"surplus", decimal.NewFromInt(1500), decimal.NewFromInt(1500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.CarryForward(tt.net)
			if !got.Equal(tt.want) {
				t.Errorf("CarryForward(%s) = %s, want %s", tt.net, got, tt.want)
			}
			if got.IsNegative() {
				t.Errorf("carry must never be negative, got %s", got)
			}
		})
	}
}
