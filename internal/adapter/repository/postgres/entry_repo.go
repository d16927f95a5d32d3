package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
)

// querier is the subset of pgx shared by pools and transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const entryColumns = `id, month, entry_date, channels, primary_channel,
	amounts_by_channel, total_amount, expense_amount, expense_channel,
	transfer_tag, reference, description, transaction_charges,
	salary_amount, advance, salary_balance, allowance, sector,
	method_of_payment, wages_category, worker_name, payment_tier,
	recyclables, wild_expenditure, created_at, updated_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	return insertEntry(ctx, r.pool, entry)
}

// CreateTx creates a new entry inside a transaction.
func (r *EntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	return insertEntry(ctx, tx.(*Tx).PgxTx(), entry)
}

func insertEntry(ctx context.Context, q querier, entry *domain.Entry) error {
	amounts, err := amountsToJSON(entry.Amounts)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO ledger_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`,
		entry.ID,
		string(entry.Month),
		entry.Date,
		channelsToStrings(entry.Channels),
		string(entry.PrimaryChannel),
		amounts,
		decimalToNumeric(entry.TotalAmount),
		decimalToNumeric(entry.ExpenseAmount),
		string(entry.ExpenseChannel),
		entry.TransferTag,
		entry.Reference,
		entry.Description,
		decimalToNumeric(entry.TransactionCharges),
		decimalToNumeric(entry.SalaryAmount),
		decimalToNumeric(entry.Advance),
		decimalToNumeric(entry.SalaryBalance),
		decimalToNumeric(entry.Allowance),
		entry.Sector,
		entry.MethodOfPayment,
		entry.WagesCategory,
		entry.WorkerName,
		entry.PaymentTier,
		entry.Recyclables,
		entry.WildExpenditure,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// GetByReference retrieves an entry by its cashbook reference.
func (r *EntryRepository) GetByReference(ctx context.Context, reference string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries
		WHERE reference = $1
		ORDER BY created_at LIMIT 1`, reference)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// List retrieves entries, optionally restricted to one month, oldest first.
func (r *EntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries`
	var args []any

	if filter.Month != nil {
		query += ` WHERE month = $1`
		args = append(args, string(*filter.Month))
	}

	query += ` ORDER BY entry_date, created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByDateRange retrieves entries dated within [from, to), oldest first.
func (r *EntryRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries
		WHERE entry_date >= $1 AND entry_date < $2
		ORDER BY entry_date, created_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Update replaces an entry's recorded fields.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	amounts, err := amountsToJSON(entry.Amounts)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE ledger_entries SET
			month = $2, entry_date = $3, channels = $4, primary_channel = $5,
			amounts_by_channel = $6, total_amount = $7, expense_amount = $8,
			expense_channel = $9, transfer_tag = $10, reference = $11,
			description = $12, transaction_charges = $13, salary_amount = $14,
			advance = $15, salary_balance = $16, allowance = $17, sector = $18,
			method_of_payment = $19, wages_category = $20, worker_name = $21,
			payment_tier = $22, recyclables = $23, wild_expenditure = $24,
			updated_at = $25
		WHERE id = $1`,
		entry.ID,
		string(entry.Month),
		entry.Date,
		channelsToStrings(entry.Channels),
		string(entry.PrimaryChannel),
		amounts,
		decimalToNumeric(entry.TotalAmount),
		decimalToNumeric(entry.ExpenseAmount),
		string(entry.ExpenseChannel),
		entry.TransferTag,
		entry.Reference,
		entry.Description,
		decimalToNumeric(entry.TransactionCharges),
		decimalToNumeric(entry.SalaryAmount),
		decimalToNumeric(entry.Advance),
		decimalToNumeric(entry.SalaryBalance),
		decimalToNumeric(entry.Allowance),
		entry.Sector,
		entry.MethodOfPayment,
		entry.WagesCategory,
		entry.WorkerName,
		entry.PaymentTier,
		entry.Recyclables,
		entry.WildExpenditure,
		entry.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// SumIncome sums income landing on a channel for a month: the recorded
// per-channel share when present, otherwise the entry total when the
// primary channel matches.
func (r *EntryRepository) SumIncome(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error) {
	return sumIncome(ctx, r.pool, month, channel)
}

// SumExpense sums expenses drawn from a channel for a month.
func (r *EntryRepository) SumExpense(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error) {
	return sumExpense(ctx, r.pool, month, channel)
}

func sumIncome(ctx context.Context, q querier, month domain.Month, channel domain.Channel) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(
			CASE
				WHEN amounts_by_channel IS NOT NULL
					THEN COALESCE((amounts_by_channel->>$2)::numeric, 0)
				WHEN primary_channel = $2 THEN total_amount
				ELSE 0
			END
		), 0)
		FROM ledger_entries WHERE month = $1`,
		string(month), string(channel)).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func sumExpense(ctx context.Context, q querier, month domain.Month, channel domain.Channel) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(expense_amount), 0)
		FROM ledger_entries WHERE month = $1 AND expense_channel = $2`,
		string(month), string(channel)).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// SummarizeMonth aggregates a month's entries across all channels.
func (r *EntryRepository) SummarizeMonth(ctx context.Context, month domain.Month) (*domain.MonthTotals, error) {
	var (
		total, expenses, charges, salary, allowance pgtype.Numeric
		count                                       int64
	)

	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(expense_amount), 0),
			COALESCE(SUM(transaction_charges), 0),
			COALESCE(SUM(salary_amount), 0),
			COALESCE(SUM(allowance), 0),
			COUNT(*)
		FROM ledger_entries WHERE month = $1`,
		string(month)).Scan(&total, &expenses, &charges, &salary, &allowance, &count)
	if err != nil {
		return nil, err
	}

	return &domain.MonthTotals{
		TotalAmount:        numericToDecimal(total),
		TotalExpenses:      numericToDecimal(expenses),
		TransactionCharges: numericToDecimal(charges),
		SalaryAmount:       numericToDecimal(salary),
		Allowance:          numericToDecimal(allowance),
		EntryCount:         count,
	}, nil
}

// SummarizeByPrimaryChannel aggregates a month's income and expenses per
// channel. Income follows the primary channel, expenses the expense
// channel.
func (r *EntryRepository) SummarizeByPrimaryChannel(ctx context.Context, month domain.Month) ([]*domain.ChannelNet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT channel,
			COALESCE(SUM(income), 0),
			COALESCE(SUM(expense), 0)
		FROM (
			SELECT primary_channel AS channel, total_amount AS income,
				0::numeric AS expense
			FROM ledger_entries
			WHERE month = $1 AND primary_channel <> 'NONE'
			UNION ALL
			SELECT expense_channel, 0::numeric, expense_amount
			FROM ledger_entries
			WHERE month = $1 AND expense_channel <> 'NONE'
		) flows
		GROUP BY channel
		ORDER BY channel`,
		string(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nets []*domain.ChannelNet
	for rows.Next() {
		var (
			channel         string
			income, expense pgtype.Numeric
		)

		if err := rows.Scan(&channel, &income, &expense); err != nil {
			return nil, err
		}

		nets = append(nets, &domain.ChannelNet{
			Channel:       domain.Channel(channel),
			TotalAmount:   numericToDecimal(income),
			TotalExpenses: numericToDecimal(expense),
		})
	}

	return nets, rows.Err()
}

// ListMonths lists every month carrying at least one entry, newest first.
func (r *EntryRepository) ListMonths(ctx context.Context) ([]domain.Month, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT month FROM ledger_entries ORDER BY month DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []domain.Month
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		months = append(months, domain.Month(m))
	}

	return months, rows.Err()
}

// LockChannelMonth takes an advisory lock scoped to the transaction,
// serializing transfers out of one channel for one month.
func (r *EntryRepository) LockChannelMonth(ctx context.Context, tx usecase.Transaction, month domain.Month, channel domain.Channel) error {
	key := string(month) + ":" + string(channel)
	_, err := tx.(*Tx).PgxTx().Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key)

	return err
}

// TxSums returns the aggregate sums evaluated inside the transaction.
func (r *EntryRepository) TxSums(tx usecase.Transaction) usecase.ChannelSums {
	return &txSums{tx: tx.(*Tx).PgxTx()}
}

type txSums struct {
	tx pgx.Tx
}

func (s *txSums) SumIncome(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error) {
	return sumIncome(ctx, s.tx, month, channel)
}

func (s *txSums) SumExpense(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error) {
	return sumExpense(ctx, s.tx, month, channel)
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry                                       domain.Entry
		month, primary, expenseChannel              string
		channels                                    []string
		amounts                                     []byte
		total, expense, charges                     pgtype.Numeric
		salary, advance, salaryBalance, allowance   pgtype.Numeric
	)

	err := row.Scan(
		&entry.ID,
		&month,
		&entry.Date,
		&channels,
		&primary,
		&amounts,
		&total,
		&expense,
		&expenseChannel,
		&entry.TransferTag,
		&entry.Reference,
		&entry.Description,
		&charges,
		&salary,
		&advance,
		&salaryBalance,
		&allowance,
		&entry.Sector,
		&entry.MethodOfPayment,
		&entry.WagesCategory,
		&entry.WorkerName,
		&entry.PaymentTier,
		&entry.Recyclables,
		&entry.WildExpenditure,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Month = domain.Month(month)
	entry.PrimaryChannel = domain.Channel(primary)
	entry.ExpenseChannel = domain.Channel(expenseChannel)
	entry.Channels = stringsToChannels(channels)
	entry.TotalAmount = numericToDecimal(total)
	entry.ExpenseAmount = numericToDecimal(expense)
	entry.TransactionCharges = numericToDecimal(charges)
	entry.SalaryAmount = numericToDecimal(salary)
	entry.Advance = numericToDecimal(advance)
	entry.SalaryBalance = numericToDecimal(salaryBalance)
	entry.Allowance = numericToDecimal(allowance)

	if len(amounts) > 0 {
		if err := json.Unmarshal(amounts, &entry.Amounts); err != nil {
			return nil, err
		}
	}

	return &entry, nil
}

func amountsToJSON(amounts domain.ChannelAmounts) ([]byte, error) {
	if amounts.IsEmpty() {
		return nil, nil
	}

	return json.Marshal(amounts)
}

func channelsToStrings(channels []domain.Channel) []string {
	out := make([]string, len(channels))
	for i, c := range channels {
		out[i] = string(c)
	}

	return out
}

func stringsToChannels(tags []string) []domain.Channel {
	if len(tags) == 0 {
		return nil
	}

	out := make([]domain.Channel, len(tags))
	for i, t := range tags {
		out[i] = domain.Channel(t)
	}

	return out
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	// decimal.String always yields a parseable numeric literal.
	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
