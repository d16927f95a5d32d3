package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
	"github.com/recyclo/cashbook/internal/usecase/mocks"
)

func newTransferService(repo *mocks.MockEntryRepository) *usecase.TransferService {
	return usecase.NewTransferService(
		mocks.NewMockTransactionManager(),
		repo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
	)
}

func TestCreateTransfer_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateTransferInput
		want  error
	}{
		{
			name: "unknown source",
			input: usecase.CreateTransferInput{
				Source: "PAYPAL",
				Dest:   domain.ChannelCash,
				Amount: decimal.NewFromInt(100),
			},
			want: domain.ErrUnknownChannel,
		},
		{
			name: "same channel",
			input: usecase.CreateTransferInput{
				Source: domain.ChannelCash,
				Dest:   domain.ChannelCash,
				Amount: decimal.NewFromInt(100),
			},
			want: domain.ErrSameChannel,
		},
		{
			name: "zero amount",
			input: usecase.CreateTransferInput{
				Source: domain.ChannelCash,
				Dest:   domain.ChannelBank,
			},
			want: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			input: usecase.CreateTransferInput{
				Source: domain.ChannelCash,
				Dest:   domain.ChannelBank,
				Amount: decimal.NewFromInt(-50),
			},
			want: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTransferService(mocks.NewMockEntryRepository())
			_, err := svc.CreateTransfer(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateTransfer_MovesBalanceBetweenChannels(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newTransferService(repo)

	seedEntry(t, repo, &domain.Entry{
		ID:             "income",
		Month:          "2026-07",
		PrimaryChannel: domain.ChannelCash,
		TotalAmount:    decimal.NewFromInt(1000),
	})

	result, err := svc.CreateTransfer(context.Background(), usecase.CreateTransferInput{
		Source: domain.ChannelCash,
		Dest:   domain.ChannelBank,
		Amount: decimal.NewFromInt(400),
		Date:   time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Debit.TransferTag != "FROM CASH" {
		t.Errorf("debit tag = %q, want FROM CASH", result.Debit.TransferTag)
	}
	if result.Credit.TransferTag != "TO BANK" {
		t.Errorf("credit tag = %q, want TO BANK", result.Credit.TransferTag)
	}
	if result.Debit.Reference == "" || result.Debit.Reference != result.Credit.Reference {
		t.Errorf("legs must share a reference, got %q and %q", result.Debit.Reference, result.Credit.Reference)
	}
	if !strings.HasPrefix(result.Debit.Reference, "TRANSFER-") {
		t.Errorf("reference = %q, want TRANSFER- prefix", result.Debit.Reference)
	}
	if result.Message != "Transfer completed: 400 UGX from CASH to BANK" {
		t.Errorf("message = %q", result.Message)
	}

	// Source drops by the amount, destination gains it.
	sums := usecase.NewAvailabilityService(repo)
	src, err := sums.Availability(context.Background(), "2026-07", domain.ChannelCash, decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !src.AvailableAfter.Equal(decimal.NewFromInt(600)) {
		t.Errorf("source available = %s, want 600", src.AvailableAfter)
	}

	dst, err := sums.Availability(context.Background(), "2026-07", domain.ChannelBank, decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dst.AvailableAfter.Equal(decimal.NewFromInt(400)) {
		t.Errorf("destination available = %s, want 400", dst.AvailableAfter)
	}
}

func TestCreateTransfer_InsufficientBalance(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newTransferService(repo)

	seedEntry(t, repo, &domain.Entry{
		ID:             "income",
		Month:          "2026-07",
		PrimaryChannel: domain.ChannelCash,
		TotalAmount:    decimal.NewFromInt(150),
	})

	_, err := svc.CreateTransfer(context.Background(), usecase.CreateTransferInput{
		Source: domain.ChannelCash,
		Dest:   domain.ChannelBank,
		Amount: decimal.NewFromInt(200),
		Month:  "2026-07",
	})

	var insufficient *domain.InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientBalanceError", err)
	}
	if !insufficient.Available.Equal(decimal.NewFromInt(150)) {
		t.Errorf("reported available = %s, want 150", insufficient.Available)
	}

	// No leg may land on a failed transfer.
	entries, err := repo.List(context.Background(), usecase.EntryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want only the seeded income", len(entries))
	}
}

func TestCreateTransfer_SecondLegFailureWritesNothing(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newTransferService(repo)

	seedEntry(t, repo, &domain.Entry{
		ID:             "income",
		Month:          "2026-07",
		PrimaryChannel: domain.ChannelCash,
		TotalAmount:    decimal.NewFromInt(1000),
	})

	boom := errors.New("insert failed")
	calls := 0
	repo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	}

	_, err := svc.CreateTransfer(context.Background(), usecase.CreateTransferInput{
		Source: domain.ChannelCash,
		Dest:   domain.ChannelBank,
		Amount: decimal.NewFromInt(100),
		Month:  "2026-07",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped insert failure", err)
	}

	entries, listErr := repo.List(context.Background(), usecase.EntryFilter{})
	if listErr != nil {
		t.Fatalf("unexpected error: %v", listErr)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want only the seeded income after rollback", len(entries))
	}
}

func TestCreateTransfer_ExplicitReferenceKept(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newTransferService(repo)

	seedEntry(t, repo, &domain.Entry{
		ID:             "income",
		Month:          "2026-07",
		PrimaryChannel: domain.ChannelMTN,
		TotalAmount:    decimal.NewFromInt(500),
	})

	result, err := svc.CreateTransfer(context.Background(), usecase.CreateTransferInput{
		Source:    domain.ChannelMTN,
		Dest:      domain.ChannelAirtel,
		Amount:    decimal.NewFromInt(100),
		Month:     "2026-07",
		Reference: "TRANSFER-MANUAL-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Debit.Reference != "TRANSFER-MANUAL-1" {
		t.Errorf("reference = %q, want the caller's", result.Debit.Reference)
	}
}

func TestCreateTransfer_ExactBalanceAllowed(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	svc := newTransferService(repo)

	seedEntry(t, repo, &domain.Entry{
		ID:             "income",
		Month:          "2026-07",
		PrimaryChannel: domain.ChannelBank,
		TotalAmount:    decimal.NewFromInt(300),
	})

	if _, err := svc.CreateTransfer(context.Background(), usecase.CreateTransferInput{
		Source: domain.ChannelBank,
		Dest:   domain.ChannelCash,
		Amount: decimal.NewFromInt(300),
		Month:  "2026-07",
	}); err != nil {
		t.Fatalf("draining the full balance should succeed, got %v", err)
	}
}
