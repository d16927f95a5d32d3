package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

// ChannelSums exposes the two aggregate sums the availability computation
// needs. Both the pool-backed repository and its transaction-scoped view
// satisfy it.
type ChannelSums interface {
	// SumIncome sums the month's income landing on channel: the entry's
	// per-channel amount when recorded, else its total amount when the
	// entry's single primary channel matches.
	SumIncome(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error)
	// SumExpense sums the month's expenses drawn from channel.
	SumExpense(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error)
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	Month *domain.Month
}

// EntryRepository defines data access for cashbook entries.
type EntryRepository interface {
	ChannelSums

	Create(ctx context.Context, entry *domain.Entry) error
	CreateTx(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByReference(ctx context.Context, reference string) (*domain.Entry, error)
	List(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, id string) error

	SummarizeMonth(ctx context.Context, month domain.Month) (*domain.MonthTotals, error)
	SummarizeByPrimaryChannel(ctx context.Context, month domain.Month) ([]*domain.ChannelNet, error)
	ListMonths(ctx context.Context) ([]domain.Month, error)

	// LockChannelMonth serializes transfers against one (month, channel)
	// pair for the lifetime of the transaction.
	LockChannelMonth(ctx context.Context, tx Transaction, month domain.Month, channel domain.Channel) error
	// TxSums returns a transaction-scoped view of the aggregate sums so a
	// transfer's availability check reads inside its own transaction.
	TxSums(tx Transaction) ChannelSums
}

// PurchaseFilter narrows purchase listings.
type PurchaseFilter struct {
	Month    *domain.Month
	Supplier string
	Status   *domain.ApprovalStatus
}

// PurchaseRepository defines data access for inventory purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	GetByID(ctx context.Context, id string) (*domain.Purchase, error)
	List(ctx context.Context, filter PurchaseFilter) ([]*domain.Purchase, error)
	UpdateApproval(ctx context.Context, id string, status domain.ApprovalStatus, approvedBy string, updatedAt time.Time) error

	// Rollups cover approved purchases only.
	SummarizeByItem(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error)
	SummarizeBySupplier(ctx context.Context, month *domain.Month) ([]*domain.SupplierRollup, error)
	MonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error)
	OverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error)
}

// SaleFilter narrows sale listings.
type SaleFilter struct {
	Month *domain.Month
}

// SaleRepository defines data access for inventory sales.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	List(ctx context.Context, filter SaleFilter) ([]*domain.Sale, error)

	SummarizeByItem(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error)
	MonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error)
	OverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// TokenIssuer issues authentication tokens for logged-in users.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
