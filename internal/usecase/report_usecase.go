package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

// ChannelBalance is one channel's position for a month.
type ChannelBalance struct {
	Channel          domain.Channel
	CarryOver        decimal.Decimal
	CurrentIncome    decimal.Decimal
	CurrentExpenses  decimal.Decimal
	AvailableBalance decimal.Decimal
}

// DailyChannelTotal is one channel's income/expense split for a single day.
type DailyChannelTotal struct {
	Channel  domain.Channel
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// DailyTotals aggregates all entries dated on one calendar day.
type DailyTotals struct {
	Date         time.Time
	Channels     []DailyChannelTotal
	OverallTotal decimal.Decimal
	EntryCount   int
}

// ChannelSummary is one channel's monthly rollup with carry-over context.
type ChannelSummary struct {
	Channel           domain.Channel
	TotalAmount       decimal.Decimal
	TotalExpenses     decimal.Decimal
	Net               decimal.Decimal
	CarryFromPrevious decimal.Decimal
	CarryToNext       decimal.Decimal
}

// MonthlySummary is the month-level report.
type MonthlySummary struct {
	Month     domain.Month
	Totals    *domain.MonthTotals
	ByChannel []ChannelSummary
}

// CashbookReport bundles the data behind the printable cashbook report.
type CashbookReport struct {
	Month   domain.Month
	Entries []*domain.Entry
	Summary *MonthlySummary
}

// InventoryReport bundles the data behind the printable inventory report.
type InventoryReport struct {
	Month      *domain.Month
	Purchases  []*domain.Purchase
	Sales      []*domain.Sale
	BySupplier []*domain.SupplierRollup
	PurchaseKg decimal.Decimal
	SaleKg     decimal.Decimal
}

// ReportService answers the read-side questions: balances, daily totals,
// monthly summaries and the report payloads.
type ReportService struct {
	entries   EntryRepository
	purchases PurchaseRepository
	sales     SaleRepository
}

// NewReportService creates a new ReportService.
func NewReportService(entries EntryRepository, purchases PurchaseRepository, sales SaleRepository) *ReportService {
	return &ReportService{entries: entries, purchases: purchases, sales: sales}
}

// Balances reports every channel's position for the given month. An empty
// month defaults to the current one.
func (s *ReportService) Balances(ctx context.Context, month domain.Month) ([]ChannelBalance, error) {
	if month == "" {
		month = domain.MonthOf(time.Now().UTC())
	}

	if !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	balances := make([]ChannelBalance, 0, len(domain.Channels))

	for _, ch := range domain.Channels {
		avail, err := availabilityFrom(ctx, s.entries, month, ch, decimal.Zero)
		if err != nil {
			return nil, err
		}

		balances = append(balances, ChannelBalance{
			Channel:          ch,
			CarryOver:        avail.CarryFromPrevious,
			CurrentIncome:    avail.IncomeThisMonth,
			CurrentExpenses:  avail.ExpenseThisMonth,
			AvailableBalance: avail.AvailableAfter,
		})
	}

	return balances, nil
}

// Daily totals entries dated on the given day, per channel. Entries that
// carry no explicit per-channel amount fall back to an even share of the
// entry total across its channels.
func (s *ReportService) Daily(ctx context.Context, day time.Time) (*DailyTotals, error) {
	if day.IsZero() {
		return nil, domain.ErrMissingDate
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	entries, err := s.entries.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	income := make(map[domain.Channel]decimal.Decimal, len(domain.Channels))
	expenses := make(map[domain.Channel]decimal.Decimal, len(domain.Channels))

	for _, e := range entries {
		for _, ch := range e.Channels {
			income[ch] = income[ch].Add(entryChannelIncome(e, ch))
		}
		if len(e.Channels) == 0 && e.PrimaryChannel.Valid() {
			income[e.PrimaryChannel] = income[e.PrimaryChannel].Add(e.TotalAmount)
		}
		if e.ExpenseChannel.Valid() && !e.ExpenseAmount.IsZero() {
			expenses[e.ExpenseChannel] = expenses[e.ExpenseChannel].Add(e.ExpenseAmount)
		}
	}

	totals := &DailyTotals{Date: start, EntryCount: len(entries)}

	for _, ch := range domain.Channels {
		net := income[ch].Sub(expenses[ch])
		totals.Channels = append(totals.Channels, DailyChannelTotal{
			Channel:  ch,
			Income:   income[ch],
			Expenses: expenses[ch],
			Net:      net,
		})
		totals.OverallTotal = totals.OverallTotal.Add(net)
	}

	return totals, nil
}

// entryChannelIncome resolves the income one channel contributes to an
// entry. An explicit nonzero amount wins; otherwise the entry total is
// shared evenly across the entry's channels.
func entryChannelIncome(e *domain.Entry, ch domain.Channel) decimal.Decimal {
	if amt, ok := e.Amounts[ch]; ok && !amt.IsZero() {
		return amt
	}

	n := len(e.Channels)
	if n == 0 {
		return decimal.Zero
	}
	if n == 1 {
		return e.TotalAmount
	}

	return e.TotalAmount.Div(decimal.NewFromInt(int64(n)))
}

// Summary builds the month-level report with carry-over per channel.
func (s *ReportService) Summary(ctx context.Context, month domain.Month) (*MonthlySummary, error) {
	if month == "" {
		return nil, domain.ErrMissingMonth
	}

	if !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	totals, err := s.entries.SummarizeMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	nets, err := s.entries.SummarizeByPrimaryChannel(ctx, month)
	if err != nil {
		return nil, err
	}

	byNet := make(map[domain.Channel]*domain.ChannelNet, len(nets))
	for _, n := range nets {
		byNet[n.Channel] = n
	}

	summary := &MonthlySummary{Month: month, Totals: totals}

	for _, ch := range domain.Channels {
		net := byNet[ch]
		if net == nil {
			net = &domain.ChannelNet{Channel: ch}
		}

		prevIncome, err := s.entries.SumIncome(ctx, month.Prev(), ch)
		if err != nil {
			return nil, err
		}
		prevExpense, err := s.entries.SumExpense(ctx, month.Prev(), ch)
		if err != nil {
			return nil, err
		}
		carry := domain.CarryForward(prevIncome.Sub(prevExpense))

		channelNet := net.TotalAmount.Sub(net.TotalExpenses)

		summary.ByChannel = append(summary.ByChannel, ChannelSummary{
			Channel:           ch,
			TotalAmount:       net.TotalAmount,
			TotalExpenses:     net.TotalExpenses,
			Net:               channelNet,
			CarryFromPrevious: carry,
			CarryToNext:       domain.CarryForward(carry.Add(channelNet)),
		})
	}

	return summary, nil
}

// Months lists every month that has at least one entry, newest first.
func (s *ReportService) Months(ctx context.Context) ([]domain.Month, error) {
	return s.entries.ListMonths(ctx)
}

// Cashbook assembles the full cashbook report payload for a month.
func (s *ReportService) Cashbook(ctx context.Context, month domain.Month) (*CashbookReport, error) {
	summary, err := s.Summary(ctx, month)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.List(ctx, EntryFilter{Month: &month})
	if err != nil {
		return nil, err
	}

	return &CashbookReport{Month: month, Entries: entries, Summary: summary}, nil
}

// Inventory assembles the inventory report payload, optionally scoped to
// one month. Only approved purchases are included.
func (s *ReportService) Inventory(ctx context.Context, month *domain.Month) (*InventoryReport, error) {
	if month != nil && !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	approved := domain.ApprovalApproved
	purchases, err := s.purchases.List(ctx, PurchaseFilter{Month: month, Status: &approved})
	if err != nil {
		return nil, err
	}

	sales, err := s.sales.List(ctx, SaleFilter{Month: month})
	if err != nil {
		return nil, err
	}

	bySupplier, err := s.purchases.SummarizeBySupplier(ctx, month)
	if err != nil {
		return nil, err
	}

	report := &InventoryReport{
		Month:      month,
		Purchases:  purchases,
		Sales:      sales,
		BySupplier: bySupplier,
	}

	for _, p := range purchases {
		report.PurchaseKg = report.PurchaseKg.Add(p.QtyKg)
	}
	for _, sl := range sales {
		report.SaleKg = report.SaleKg.Add(sl.QtyKg)
	}

	return report, nil
}
