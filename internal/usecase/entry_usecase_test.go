package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
	"github.com/recyclo/cashbook/internal/usecase/mocks"
)

func newEntryService(repo *mocks.MockEntryRepository, audit *mocks.MockAuditRepository) *usecase.EntryService {
	return usecase.NewEntryService(repo, audit, usecase.NewAvailabilityService(repo), mocks.NewMockIDGenerator())
}

func TestCreateEntry_SplitsEvenlyAcrossChannels(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, nil)

	entry, err := svc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:        time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC),
		Channels:    []domain.Channel{domain.ChannelCash, domain.ChannelBank},
		TotalAmount: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := decimal.NewFromInt(500)
	if !entry.Amounts.Get(domain.ChannelCash).Equal(want) {
		t.Errorf("CASH share = %s, want 500", entry.Amounts.Get(domain.ChannelCash))
	}
	if !entry.Amounts.Get(domain.ChannelBank).Equal(want) {
		t.Errorf("BANK share = %s, want 500", entry.Amounts.Get(domain.ChannelBank))
	}
	if entry.Month != "2026-07" {
		t.Errorf("month = %s, want 2026-07", entry.Month)
	}
}

func TestCreateEntry_ExplicitAmountsKept(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, nil)

	entry, err := svc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:     time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC),
		Channels: []domain.Channel{domain.ChannelCash, domain.ChannelMTN},
		Amounts: domain.ChannelAmounts{
			domain.ChannelCash: decimal.NewFromInt(800),
			domain.ChannelMTN:  decimal.NewFromInt(200),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !entry.TotalAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("total = %s, want 1000 derived from shares", entry.TotalAmount)
	}
	if !entry.Amounts.Get(domain.ChannelCash).Equal(decimal.NewFromInt(800)) {
		t.Errorf("CASH share = %s, want 800", entry.Amounts.Get(domain.ChannelCash))
	}
}

func TestCreateEntry_SingleChannelKeepsPrimary(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, nil)

	entry, err := svc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:           time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC),
		PrimaryChannel: domain.ChannelMTN,
		TotalAmount:    decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.PrimaryChannel != domain.ChannelMTN {
		t.Errorf("primary = %s, want MM-MTN", entry.PrimaryChannel)
	}
	if len(entry.Channels) != 1 || entry.Channels[0] != domain.ChannelMTN {
		t.Errorf("channels = %v, want [MM-MTN]", entry.Channels)
	}
}

func TestCreateEntry_MultiChannelClearsPrimary(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, nil)

	entry, err := svc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:        time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC),
		Channels:    []domain.Channel{domain.ChannelCash, domain.ChannelBank},
		TotalAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.PrimaryChannel != domain.ChannelNone {
		t.Errorf("primary = %s, want NONE on multi-channel entry", entry.PrimaryChannel)
	}
}

func TestCreateEntry_MissingDate(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, nil)

	_, err := svc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		TotalAmount: decimal.NewFromInt(100),
	})
	if !errors.Is(err, domain.ErrMissingDate) {
		t.Errorf("err = %v, want ErrMissingDate", err)
	}
}

func TestCreateEntry_WildExpenditureFlagged(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, nil)

	entry, err := svc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:           time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC),
		ExpenseAmount:  decimal.NewFromInt(200),
		ExpenseChannel: domain.ChannelCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !entry.WildExpenditure {
		t.Error("expense with no funds should be flagged wild")
	}
}

func TestCreateEntry_WildExpenditureNotFlaggedWithCarry(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, nil)

	seedEntry(t, repo, &domain.Entry{
		ID:             "prev-income",
		Month:          "2026-06",
		PrimaryChannel: domain.ChannelCash,
		TotalAmount:    decimal.NewFromInt(150),
	})

	entry, err := svc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:           time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC),
		ExpenseAmount:  decimal.NewFromInt(100),
		ExpenseChannel: domain.ChannelCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.WildExpenditure {
		t.Error("expense covered by carry-over should not be flagged")
	}
}

func TestCreateEntry_SalaryBalance(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, nil)

	entry, err := svc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:         time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC),
		SalaryAmount: decimal.NewFromInt(300000),
		Advance:      decimal.NewFromInt(50000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !entry.SalaryBalance.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("salary balance = %s, want 250000", entry.SalaryBalance)
	}
}

func TestUpdateEntry_AdminOnly(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	audit := mocks.NewMockAuditRepository()
	svc := newEntryService(repo, audit)

	seedEntry(t, repo, &domain.Entry{
		ID:             "e-1",
		Month:          "2026-07",
		PrimaryChannel: domain.ChannelCash,
		TotalAmount:    decimal.NewFromInt(100),
	})

	manager := &domain.User{ID: "u-2", Role: domain.RoleManager}
	_, err := svc.UpdateEntry(context.Background(), manager, "e-1", usecase.CreateEntryInput{
		Date:        time.Date(2026, time.July, 6, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(900),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	admin := &domain.User{ID: "u-1", Role: domain.RoleAdmin}
	updated, err := svc.UpdateEntry(context.Background(), admin, "e-1", usecase.CreateEntryInput{
		Date:           time.Date(2026, time.July, 6, 0, 0, 0, 0, time.UTC),
		PrimaryChannel: domain.ChannelCash,
		TotalAmount:    decimal.NewFromInt(900),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.TotalAmount.Equal(decimal.NewFromInt(900)) {
		t.Errorf("total = %s, want 900", updated.TotalAmount)
	}

	if len(audit.Logs()) != 1 {
		t.Errorf("audit logs = %d, want 1", len(audit.Logs()))
	}
}

func TestUpdateEntry_PreservesWildFlag(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newEntryService(repo, mocks.NewMockAuditRepository())

	seedEntry(t, repo, &domain.Entry{
		ID:              "e-1",
		Month:           "2026-07",
		ExpenseAmount:   decimal.NewFromInt(500),
		ExpenseChannel:  domain.ChannelCash,
		WildExpenditure: true,
	})

	admin := &domain.User{ID: "u-1", Role: domain.RoleAdmin}
	updated, err := svc.UpdateEntry(context.Background(), admin, "e-1", usecase.CreateEntryInput{
		Date:           time.Date(2026, time.July, 6, 0, 0, 0, 0, time.UTC),
		ExpenseAmount:  decimal.NewFromInt(10),
		ExpenseChannel: domain.ChannelCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.WildExpenditure {
		t.Error("edit must not recompute the stored wild flag")
	}
}

func TestDeleteEntry_AdminOnly(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	audit := mocks.NewMockAuditRepository()
	svc := newEntryService(repo, audit)

	seedEntry(t, repo, &domain.Entry{ID: "e-1", Month: "2026-07"})

	if err := svc.DeleteEntry(context.Background(), &domain.User{Role: domain.RoleInventory}, "e-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	if err := svc.DeleteEntry(context.Background(), &domain.User{ID: "u-1", Role: domain.RoleAdmin}, "e-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetEntry(context.Background(), "e-1"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound after delete", err)
	}
}

func TestListEntries_InvalidMonth(t *testing.T) {
	svc := newEntryService(mocks.NewMockEntryRepository(), nil)

	bad := domain.Month("July 2026")
	if _, err := svc.ListEntries(context.Background(), &bad); !errors.Is(err, domain.ErrInvalidMonth) {
		t.Errorf("err = %v, want ErrInvalidMonth", err)
	}
}
