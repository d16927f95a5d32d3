package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

// InventoryService handles recyclable purchases and sales, and keeps the
// cashbook in sync: an approved purchase becomes an expense entry, a sale
// becomes an income entry.
type InventoryService struct {
	purchases PurchaseRepository
	sales     SaleRepository
	entries   EntryRepository
	audit     AuditRepository
	idGen     IDGenerator
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(purchases PurchaseRepository, sales SaleRepository, entries EntryRepository, audit AuditRepository, idGen IDGenerator) *InventoryService {
	return &InventoryService{
		purchases: purchases,
		sales:     sales,
		entries:   entries,
		audit:     audit,
		idGen:     idGen,
	}
}

// CreatePurchaseInput represents a raw purchase submission.
type CreatePurchaseInput struct {
	Date             time.Time
	SupplierName     string
	SupplierPhone    string
	SupplierLocation string
	ItemType         domain.ItemType
	QtyKg            decimal.Decimal
	UnitCost         decimal.Decimal
	MethodOfPayment  domain.Channel
}

// CreatePurchase records a purchase. Submissions by an approver are
// approved immediately and land in the cashbook; everything else waits in
// PENDING and touches no money until a decision is made.
func (s *InventoryService) CreatePurchase(ctx context.Context, actor *domain.User, input CreatePurchaseInput) (*domain.Purchase, error) {
	if input.SupplierName == "" {
		return nil, domain.ErrMissingSupplier
	}

	if _, err := domain.ParseItemType(string(input.ItemType)); err != nil {
		return nil, err
	}

	if !input.QtyKg.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	if !input.UnitCost.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	method := input.MethodOfPayment
	if !method.Valid() {
		method = domain.ChannelCash
	}

	status := domain.ApprovalPending
	approvedBy := ""
	if actor == nil || actor.Role.CanApprovePurchases() {
		status = domain.ApprovalApproved
		if actor != nil {
			approvedBy = actor.Username
		}
	}

	now := time.Now().UTC()
	purchase := &domain.Purchase{
		ID:               s.idGen.Generate(),
		Month:            domain.MonthOf(date),
		DateOfPurchase:   date,
		SupplierName:     input.SupplierName,
		SupplierPhone:    input.SupplierPhone,
		SupplierLocation: input.SupplierLocation,
		ItemType:         input.ItemType,
		QtyKg:            input.QtyKg,
		UnitCost:         input.UnitCost,
		TotalCost:        input.UnitCost.Mul(input.QtyKg),
		MethodOfPayment:  method,
		ApprovalStatus:   status,
		ApprovedBy:       approvedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, err
	}

	if status == domain.ApprovalApproved {
		if err := s.linkPurchase(ctx, purchase); err != nil {
			return nil, err
		}
	}

	return purchase, nil
}

// DecidePurchase approves or rejects a pending purchase. Approver only.
// A decided purchase stays decided: re-deciding would strand or duplicate
// the linked expense entry.
func (s *InventoryService) DecidePurchase(ctx context.Context, actor *domain.User, id string, status domain.ApprovalStatus) (*domain.Purchase, error) {
	if actor != nil && !actor.Role.CanApprovePurchases() {
		return nil, domain.ErrForbidden
	}

	if status != domain.ApprovalApproved && status != domain.ApprovalRejected {
		return nil, domain.ErrInvalidApprovalStatus
	}

	purchase, err := s.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if purchase.ApprovalStatus != domain.ApprovalPending {
		return nil, domain.ErrPurchaseDecided
	}

	approvedBy := ""
	if actor != nil {
		approvedBy = actor.Username
	}

	now := time.Now().UTC()
	if err := s.purchases.UpdateApproval(ctx, id, status, approvedBy, now); err != nil {
		return nil, err
	}

	purchase.ApprovalStatus = status
	purchase.ApprovedBy = approvedBy
	purchase.UpdatedAt = now

	if status == domain.ApprovalApproved {
		if err := s.linkPurchase(ctx, purchase); err != nil {
			return nil, err
		}
	}

	s.recordDecision(ctx, actor, purchase)

	return purchase, nil
}

// linkPurchase writes the expense entry behind an approved purchase. The
// deterministic reference makes the write idempotent across repeated
// approvals.
func (s *InventoryService) linkPurchase(ctx context.Context, purchase *domain.Purchase) error {
	reference := domain.PurchaseReference(purchase.ID)

	_, err := s.entries.GetByReference(ctx, reference)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrEntryNotFound) {
		return err
	}

	now := time.Now().UTC()
	entry := &domain.Entry{
		ID:              s.idGen.Generate(),
		Month:           purchase.Month,
		Date:            purchase.DateOfPurchase,
		PrimaryChannel:  domain.ChannelNone,
		ExpenseAmount:   purchase.TotalCost,
		ExpenseChannel:  purchase.MethodOfPayment,
		Reference:       reference,
		Description:     fmt.Sprintf("Inventory purchase: %s from %s", purchase.ItemType, purchase.SupplierName),
		Recyclables:     string(purchase.ItemType),
		MethodOfPayment: string(purchase.MethodOfPayment),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return s.entries.Create(ctx, entry)
}

// ListPurchases lists purchases matching the filter, newest first.
func (s *InventoryService) ListPurchases(ctx context.Context, filter PurchaseFilter) ([]*domain.Purchase, error) {
	if filter.Month != nil && !filter.Month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	return s.purchases.List(ctx, filter)
}

// PurchaseSummary rolls up approved purchases by item type.
func (s *InventoryService) PurchaseSummary(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error) {
	if month != nil && !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	return s.purchases.SummarizeByItem(ctx, month)
}

// PurchaseMonthlyTotals rolls up approved purchases per month.
func (s *InventoryService) PurchaseMonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error) {
	return s.purchases.MonthlyTotals(ctx)
}

// PurchaseOverallTotals rolls up approved purchases across all items,
// optionally scoped to one month.
func (s *InventoryService) PurchaseOverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error) {
	if month != nil && !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	return s.purchases.OverallTotals(ctx, month)
}

// CreateSaleInput represents a raw sale submission.
type CreateSaleInput struct {
	Date            time.Time
	CompanyName     string
	ItemType        domain.ItemType
	QtyKg           decimal.Decimal
	UnitCost        decimal.Decimal
	MethodOfPayment domain.Channel
}

// CreateSale records a sale and its income entry in the cashbook.
func (s *InventoryService) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	if input.CompanyName == "" {
		return nil, domain.ErrMissingCompany
	}

	if _, err := domain.ParseItemType(string(input.ItemType)); err != nil {
		return nil, err
	}

	if !input.QtyKg.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	if !input.UnitCost.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	method := input.MethodOfPayment
	if !method.Valid() {
		method = domain.ChannelCash
	}

	now := time.Now().UTC()
	sale := &domain.Sale{
		ID:              s.idGen.Generate(),
		Month:           domain.MonthOf(date),
		DateOfSale:      date,
		CompanyName:     input.CompanyName,
		ItemType:        input.ItemType,
		QtyKg:           input.QtyKg,
		UnitCost:        input.UnitCost,
		TotalAmount:     input.UnitCost.Mul(input.QtyKg),
		MethodOfPayment: method,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		ID:              s.idGen.Generate(),
		Month:           sale.Month,
		Date:            sale.DateOfSale,
		Channels:        []domain.Channel{method},
		PrimaryChannel:  method,
		Amounts:         domain.ChannelAmounts{method: sale.TotalAmount},
		TotalAmount:     sale.TotalAmount,
		ExpenseChannel:  domain.ChannelNone,
		Reference:       domain.SaleReference(sale.ID),
		Description:     fmt.Sprintf("Inventory sale: %s to %s", sale.ItemType, sale.CompanyName),
		Recyclables:     string(sale.ItemType),
		MethodOfPayment: string(method),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	return sale, nil
}

// ListSales lists sales matching the filter, newest first.
func (s *InventoryService) ListSales(ctx context.Context, filter SaleFilter) ([]*domain.Sale, error) {
	if filter.Month != nil && !filter.Month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	return s.sales.List(ctx, filter)
}

// SaleSummary rolls up sales by item type.
func (s *InventoryService) SaleSummary(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error) {
	if month != nil && !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	return s.sales.SummarizeByItem(ctx, month)
}

// SaleMonthlyTotals rolls up sales per month.
func (s *InventoryService) SaleMonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error) {
	return s.sales.MonthlyTotals(ctx)
}

// SaleOverallTotals rolls up sales across all items, optionally scoped to
// one month.
func (s *InventoryService) SaleOverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error) {
	if month != nil && !month.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	return s.sales.OverallTotals(ctx, month)
}

func (s *InventoryService) recordDecision(ctx context.Context, actor *domain.User, purchase *domain.Purchase) {
	if s.audit == nil {
		return
	}

	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}

	// Audit failures must not fail the decision they describe.
	_ = s.audit.Create(ctx, &domain.AuditLog{
		ID:           s.idGen.Generate(),
		ActorID:      actorID,
		Action:       domain.AuditPurchaseDecision,
		ResourceType: "inventory_purchase",
		ResourceID:   purchase.ID,
		Detail: map[string]any{
			"status": string(purchase.ApprovalStatus),
		},
		CreatedAt: time.Now().UTC(),
	})
}
