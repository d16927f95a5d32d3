package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

// TransferService moves money between channels by writing a linked
// debit/credit entry pair. Both legs and the availability check run in a
// single transaction holding a per-(month, source channel) lock, so
// concurrent transfers cannot both see sufficient balance and a reader
// can never observe exactly one leg.
type TransferService struct {
	txManager TransactionManager
	entries   EntryRepository
	idGen     IDGenerator
	retrier   Retrier
}

// NewTransferService creates a new TransferService.
func NewTransferService(txManager TransactionManager, entries EntryRepository, idGen IDGenerator, retrier Retrier) *TransferService {
	return &TransferService{
		txManager: txManager,
		entries:   entries,
		idGen:     idGen,
		retrier:   retrier,
	}
}

// CreateTransferInput represents a move-money request.
type CreateTransferInput struct {
	Source    domain.Channel
	Dest      domain.Channel
	Amount    decimal.Decimal
	Date      time.Time
	Month     domain.Month
	Reference string
}

// TransferResult is the persisted entry pair plus a confirmation message.
type TransferResult struct {
	Debit   *domain.Entry
	Credit  *domain.Entry
	Message string
}

// CreateTransfer validates, checks the source channel's availability, and
// writes both legs atomically.
func (s *TransferService) CreateTransfer(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	if !input.Source.Valid() || !input.Dest.Valid() {
		return nil, domain.ErrUnknownChannel
	}

	if input.Source == input.Dest {
		return nil, domain.ErrSameChannel
	}

	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	month := input.Month
	if month == "" {
		month = domain.MonthOf(date)
	} else if !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	reference := input.Reference
	if reference == "" {
		reference = fmt.Sprintf("TRANSFER-%d", time.Now().UnixMilli())
	}

	var result *TransferResult

	operation := func() error {
		res, err := s.transferOnce(ctx, input, month, date, reference)
		if err != nil {
			return err
		}
		result = res

		return nil
	}

	if s.retrier != nil {
		if err := s.retrier.Retry(ctx, operation); err != nil {
			return nil, err
		}
	} else if err := operation(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *TransferService) transferOnce(ctx context.Context, input CreateTransferInput, month domain.Month, date time.Time, reference string) (*TransferResult, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.entries.LockChannelMonth(ctx, tx, month, input.Source); err != nil {
		return nil, err
	}

	avail, err := availabilityFrom(ctx, s.entries.TxSums(tx), month, input.Source, input.Amount)
	if err != nil {
		return nil, err
	}

	if avail.AvailableAfter.IsNegative() {
		return nil, &domain.InsufficientBalanceError{
			Channel:   input.Source,
			Available: avail.AvailableAfter.Add(input.Amount),
		}
	}

	now := time.Now().UTC()
	description := fmt.Sprintf("Internal transfer: From %s to %s", input.Source, input.Dest)

	debit := &domain.Entry{
		ID:             s.idGen.Generate(),
		Month:          month,
		Date:           date,
		PrimaryChannel: domain.ChannelNone,
		TotalAmount:    decimal.Zero,
		ExpenseAmount:  input.Amount,
		ExpenseChannel: input.Source,
		Reference:      reference,
		Description:    description,
		TransferTag:    domain.TransferTagFrom(input.Source),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	credit := &domain.Entry{
		ID:             s.idGen.Generate(),
		Month:          month,
		Date:           date,
		Channels:       []domain.Channel{input.Dest},
		PrimaryChannel: input.Dest,
		Amounts:        domain.ChannelAmounts{input.Dest: input.Amount},
		TotalAmount:    input.Amount,
		ExpenseAmount:  decimal.Zero,
		ExpenseChannel: domain.ChannelNone,
		Reference:      reference,
		Description:    description,
		TransferTag:    domain.TransferTagTo(input.Dest),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.entries.CreateTx(ctx, tx, debit); err != nil {
		return nil, err
	}

	if err := s.entries.CreateTx(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransferResult{
		Debit:  debit,
		Credit: credit,
		Message: fmt.Sprintf("Transfer completed: %s UGX from %s to %s",
			input.Amount, input.Source, input.Dest),
	}, nil
}
