package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

// EntryService handles cashbook entry business logic: normalizing raw
// submissions into their stored form, listing, and privileged edits.
type EntryService struct {
	entries      EntryRepository
	audit        AuditRepository
	availability *AvailabilityService
	idGen        IDGenerator
}

// NewEntryService creates a new EntryService.
func NewEntryService(entries EntryRepository, audit AuditRepository, availability *AvailabilityService, idGen IDGenerator) *EntryService {
	return &EntryService{
		entries:      entries,
		audit:        audit,
		availability: availability,
		idGen:        idGen,
	}
}

// CreateEntryInput represents a raw cashbook submission.
type CreateEntryInput struct {
	Date  time.Time
	Month domain.Month

	Channels       []domain.Channel
	PrimaryChannel domain.Channel
	Amounts        domain.ChannelAmounts
	TotalAmount    decimal.Decimal

	ExpenseAmount  decimal.Decimal
	ExpenseChannel domain.Channel

	Reference   string
	Description string

	TransactionCharges decimal.Decimal
	SalaryAmount       decimal.Decimal
	Advance            decimal.Decimal
	Allowance          decimal.Decimal

	Sector          string
	MethodOfPayment string
	WagesCategory   string
	WorkerName      string
	PaymentTier     string
	Recyclables     string
}

// CreateEntry normalizes and persists a cashbook submission.
//
// The wild-expenditure flag is evaluated exactly once here, against the
// store state before this entry lands; later edits never revisit it.
func (s *EntryService) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	if input.Date.IsZero() {
		return nil, domain.ErrMissingDate
	}

	month := input.Month
	if month == "" {
		month = domain.MonthOf(input.Date)
	} else if !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	channels := input.Channels
	if len(channels) == 0 && input.PrimaryChannel.Valid() {
		channels = []domain.Channel{input.PrimaryChannel}
	}

	primary := domain.ChannelNone
	if len(channels) == 1 {
		primary = channels[0]
	}

	total := input.TotalAmount

	var amounts domain.ChannelAmounts
	switch {
	case !input.Amounts.IsEmpty():
		// Caller-supplied shares are trusted as given; channels the
		// caller left out default to zero.
		amounts = make(domain.ChannelAmounts, len(channels))
		for _, c := range channels {
			amounts[c] = input.Amounts.Get(c)
		}
		if total.IsZero() {
			total = amounts.Total()
		}
	case len(channels) > 0 && total.IsPositive():
		amounts = domain.SplitEvenly(total, channels)
	}

	salaryBalance := decimal.Zero
	if !input.SalaryAmount.IsZero() || !input.Advance.IsZero() {
		salaryBalance = input.SalaryAmount.Sub(input.Advance)
	}

	wild := false
	if input.ExpenseAmount.IsPositive() && input.ExpenseChannel.Valid() {
		avail, err := s.availability.Availability(ctx, month, input.ExpenseChannel, input.ExpenseAmount)
		if err != nil {
			return nil, err
		}
		wild = avail.AvailableAfter.IsNegative()
	}

	expenseChannel := input.ExpenseChannel
	if !expenseChannel.Valid() {
		expenseChannel = domain.ChannelNone
	}

	now := time.Now().UTC()
	entry := &domain.Entry{
		ID:                 s.idGen.Generate(),
		Month:              month,
		Date:               input.Date,
		Channels:           channels,
		PrimaryChannel:     primary,
		Amounts:            amounts,
		TotalAmount:        total,
		ExpenseAmount:      input.ExpenseAmount,
		ExpenseChannel:     expenseChannel,
		Reference:          input.Reference,
		Description:        input.Description,
		TransactionCharges: input.TransactionCharges,
		SalaryAmount:       input.SalaryAmount,
		Advance:            input.Advance,
		SalaryBalance:      salaryBalance,
		Allowance:          input.Allowance,
		Sector:             input.Sector,
		MethodOfPayment:    input.MethodOfPayment,
		WagesCategory:      input.WagesCategory,
		WorkerName:         input.WorkerName,
		PaymentTier:        input.PaymentTier,
		Recyclables:        input.Recyclables,
		WildExpenditure:    wild,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetEntry retrieves an entry by ID.
func (s *EntryService) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return s.entries.GetByID(ctx, id)
}

// ListEntries lists entries, optionally restricted to one month, ordered
// by date.
func (s *EntryService) ListEntries(ctx context.Context, month *domain.Month) ([]*domain.Entry, error) {
	if month != nil && !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	return s.entries.List(ctx, EntryFilter{Month: month})
}

// UpdateEntry replaces an entry's recorded fields. Admin only. The stored
// wild-expenditure flag is kept as-is: edits do not re-run the
// availability check, here or on any other entry.
func (s *EntryService) UpdateEntry(ctx context.Context, actor *domain.User, id string, input CreateEntryInput) (*domain.Entry, error) {
	if actor != nil && !actor.Role.CanEditEntries() {
		return nil, domain.ErrForbidden
	}

	existing, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		return nil, domain.ErrMissingDate
	}

	month := input.Month
	if month == "" {
		month = domain.MonthOf(input.Date)
	} else if !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	channels := input.Channels
	if len(channels) == 0 && input.PrimaryChannel.Valid() {
		channels = []domain.Channel{input.PrimaryChannel}
	}

	primary := domain.ChannelNone
	if len(channels) == 1 {
		primary = channels[0]
	}

	expenseChannel := input.ExpenseChannel
	if !expenseChannel.Valid() {
		expenseChannel = domain.ChannelNone
	}

	salaryBalance := decimal.Zero
	if !input.SalaryAmount.IsZero() || !input.Advance.IsZero() {
		salaryBalance = input.SalaryAmount.Sub(input.Advance)
	}

	updated := *existing
	updated.Month = month
	updated.Date = input.Date
	updated.Channels = channels
	updated.PrimaryChannel = primary
	updated.Amounts = input.Amounts
	updated.TotalAmount = input.TotalAmount
	updated.ExpenseAmount = input.ExpenseAmount
	updated.ExpenseChannel = expenseChannel
	updated.Reference = input.Reference
	updated.Description = input.Description
	updated.TransactionCharges = input.TransactionCharges
	updated.SalaryAmount = input.SalaryAmount
	updated.Advance = input.Advance
	updated.SalaryBalance = salaryBalance
	updated.Allowance = input.Allowance
	updated.Sector = input.Sector
	updated.MethodOfPayment = input.MethodOfPayment
	updated.WagesCategory = input.WagesCategory
	updated.WorkerName = input.WorkerName
	updated.PaymentTier = input.PaymentTier
	updated.Recyclables = input.Recyclables
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.entries.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, domain.AuditEntryUpdated, id, map[string]any{
		"month": string(month),
	})

	return &updated, nil
}

// DeleteEntry removes an entry. Admin only. Flags on other entries are not
// recomputed.
func (s *EntryService) DeleteEntry(ctx context.Context, actor *domain.User, id string) error {
	if actor != nil && !actor.Role.CanEditEntries() {
		return domain.ErrForbidden
	}

	if _, err := s.entries.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, domain.AuditEntryDeleted, id, nil)

	return nil
}

func (s *EntryService) recordAudit(ctx context.Context, actor *domain.User, action, resourceID string, detail map[string]any) {
	if s.audit == nil {
		return
	}

	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}

	// Audit failures must not fail the mutation they describe.
	_ = s.audit.Create(ctx, &domain.AuditLog{
		ID:           s.idGen.Generate(),
		ActorID:      actorID,
		Action:       action,
		ResourceType: "cashbook_entry",
		ResourceID:   resourceID,
		Detail:       detail,
		CreatedAt:    time.Now().UTC(),
	})
}
