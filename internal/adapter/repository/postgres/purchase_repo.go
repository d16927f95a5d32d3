package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
)

const purchaseColumns = `id, month, date_of_purchase, supplier_name,
	supplier_phone, supplier_location, item_type, quantity_kg, unit_cost,
	total_cost, method_of_payment, approval_status, approved_by,
	created_at, updated_at`

// PurchaseRepository implements usecase.PurchaseRepository.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new PurchaseRepository.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Create creates a new purchase.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inventory_purchases (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		purchase.ID,
		string(purchase.Month),
		purchase.DateOfPurchase,
		purchase.SupplierName,
		purchase.SupplierPhone,
		purchase.SupplierLocation,
		string(purchase.ItemType),
		decimalToNumeric(purchase.QtyKg),
		decimalToNumeric(purchase.UnitCost),
		decimalToNumeric(purchase.TotalCost),
		string(purchase.MethodOfPayment),
		string(purchase.ApprovalStatus),
		purchase.ApprovedBy,
		purchase.CreatedAt,
		purchase.UpdatedAt,
	)

	return err
}

// GetByID retrieves a purchase by ID.
func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+purchaseColumns+` FROM inventory_purchases WHERE id = $1`, id)

	purchase, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}

		return nil, err
	}

	return purchase, nil
}

// List retrieves purchases matching the filter, newest first.
func (r *PurchaseRepository) List(ctx context.Context, filter usecase.PurchaseFilter) ([]*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM inventory_purchases WHERE 1=1`
	var args []any

	if filter.Month != nil {
		args = append(args, string(*filter.Month))
		query += ` AND month = $` + argn(len(args))
	}
	if filter.Supplier != "" {
		args = append(args, filter.Supplier)
		query += ` AND supplier_name = $` + argn(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND approval_status = $` + argn(len(args))
	}

	query += ` ORDER BY date_of_purchase DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*domain.Purchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, purchase)
	}

	return purchases, rows.Err()
}

// UpdateApproval records an approval decision.
func (r *PurchaseRepository) UpdateApproval(ctx context.Context, id string, status domain.ApprovalStatus, approvedBy string, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventory_purchases
		SET approval_status = $2, approved_by = $3, updated_at = $4
		WHERE id = $1`,
		id, string(status), approvedBy, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPurchaseNotFound
	}

	return nil
}

// SummarizeByItem rolls up approved purchases per item type.
func (r *PurchaseRepository) SummarizeByItem(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error) {
	query := `
		SELECT item_type,
			COALESCE(SUM(quantity_kg), 0),
			COALESCE(SUM(total_cost), 0)
		FROM inventory_purchases
		WHERE approval_status = 'APPROVED'`
	var args []any

	if month != nil {
		args = append(args, string(*month))
		query += ` AND month = $1`
	}

	query += ` GROUP BY item_type ORDER BY item_type`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rollups []*domain.ItemRollup
	for rows.Next() {
		var (
			item      string
			kg, total pgtype.Numeric
		)

		if err := rows.Scan(&item, &kg, &total); err != nil {
			return nil, err
		}

		totalKg := numericToDecimal(kg)
		rollups = append(rollups, &domain.ItemRollup{
			ItemType:  domain.ItemType(item),
			TotalKg:   totalKg,
			TotalTons: domain.TonsFromKg(totalKg),
			Total:     numericToDecimal(total),
		})
	}

	return rollups, rows.Err()
}

// SummarizeBySupplier rolls up approved purchases per supplier.
func (r *PurchaseRepository) SummarizeBySupplier(ctx context.Context, month *domain.Month) ([]*domain.SupplierRollup, error) {
	query := `
		SELECT supplier_name,
			COALESCE(SUM(quantity_kg), 0),
			COALESCE(SUM(total_cost), 0)
		FROM inventory_purchases
		WHERE approval_status = 'APPROVED'`
	var args []any

	if month != nil {
		args = append(args, string(*month))
		query += ` AND month = $1`
	}

	query += ` GROUP BY supplier_name ORDER BY supplier_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rollups []*domain.SupplierRollup
	for rows.Next() {
		var (
			supplier  string
			kg, total pgtype.Numeric
		)

		if err := rows.Scan(&supplier, &kg, &total); err != nil {
			return nil, err
		}

		totalKg := numericToDecimal(kg)
		rollups = append(rollups, &domain.SupplierRollup{
			Supplier:  supplier,
			TotalKg:   totalKg,
			TotalTons: domain.TonsFromKg(totalKg),
			Total:     numericToDecimal(total),
		})
	}

	return rollups, rows.Err()
}

// MonthlyTotals rolls up approved purchases per month, newest first.
func (r *PurchaseRepository) MonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT month,
			COALESCE(SUM(quantity_kg), 0),
			COALESCE(SUM(total_cost), 0),
			COUNT(*)
		FROM inventory_purchases
		WHERE approval_status = 'APPROVED'
		GROUP BY month ORDER BY month DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMonthlyRollups(rows)
}

// OverallTotals rolls up approved purchases, optionally for one month.
func (r *PurchaseRepository) OverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error) {
	query := `
		SELECT COALESCE(SUM(quantity_kg), 0),
			COALESCE(SUM(total_cost), 0),
			COUNT(*)
		FROM inventory_purchases
		WHERE approval_status = 'APPROVED'`
	var args []any

	if month != nil {
		args = append(args, string(*month))
		query += ` AND month = $1`
	}

	var (
		kg, total pgtype.Numeric
		count     int64
	)

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&kg, &total, &count); err != nil {
		return nil, err
	}

	rollup := &domain.MonthlyRollup{
		TotalKg: numericToDecimal(kg),
		Total:   numericToDecimal(total),
		Count:   count,
	}
	rollup.TotalTons = domain.TonsFromKg(rollup.TotalKg)
	if month != nil {
		rollup.Month = *month
	}

	return rollup, nil
}

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var (
		purchase             domain.Purchase
		month, item, method  string
		status               string
		qty, unit, total     pgtype.Numeric
	)

	err := row.Scan(
		&purchase.ID,
		&month,
		&purchase.DateOfPurchase,
		&purchase.SupplierName,
		&purchase.SupplierPhone,
		&purchase.SupplierLocation,
		&item,
		&qty,
		&unit,
		&total,
		&method,
		&status,
		&purchase.ApprovedBy,
		&purchase.CreatedAt,
		&purchase.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	purchase.Month = domain.Month(month)
	purchase.ItemType = domain.ItemType(item)
	purchase.MethodOfPayment = domain.Channel(method)
	purchase.ApprovalStatus = domain.ApprovalStatus(status)
	purchase.QtyKg = numericToDecimal(qty)
	purchase.UnitCost = numericToDecimal(unit)
	purchase.TotalCost = numericToDecimal(total)

	return &purchase, nil
}

func scanMonthlyRollups(rows pgx.Rows) ([]*domain.MonthlyRollup, error) {
	var rollups []*domain.MonthlyRollup
	for rows.Next() {
		var (
			month     string
			kg, total pgtype.Numeric
			count     int64
		)

		if err := rows.Scan(&month, &kg, &total, &count); err != nil {
			return nil, err
		}

		totalKg := numericToDecimal(kg)
		rollups = append(rollups, &domain.MonthlyRollup{
			Month:     domain.Month(month),
			TotalKg:   totalKg,
			TotalTons: domain.TonsFromKg(totalKg),
			Total:     numericToDecimal(total),
			Count:     count,
		})
	}

	return rollups, rows.Err()
}

func argn(n int) string {
	return strconv.Itoa(n)
}
