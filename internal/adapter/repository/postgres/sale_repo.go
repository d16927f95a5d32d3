package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
)

const saleColumns = `id, month, date_of_sale, company_name, item_type,
	quantity_kg, unit_cost, total_amount, method_of_payment, created_at,
	updated_at`

// SaleRepository implements usecase.SaleRepository.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// Create creates a new sale.
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inventory_sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		sale.ID,
		string(sale.Month),
		sale.DateOfSale,
		sale.CompanyName,
		string(sale.ItemType),
		decimalToNumeric(sale.QtyKg),
		decimalToNumeric(sale.UnitCost),
		decimalToNumeric(sale.TotalAmount),
		string(sale.MethodOfPayment),
		sale.CreatedAt,
		sale.UpdatedAt,
	)

	return err
}

// List retrieves sales matching the filter, newest first.
func (r *SaleRepository) List(ctx context.Context, filter usecase.SaleFilter) ([]*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM inventory_sales`
	var args []any

	if filter.Month != nil {
		query += ` WHERE month = $1`
		args = append(args, string(*filter.Month))
	}

	query += ` ORDER BY date_of_sale DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

// SummarizeByItem rolls up sales per item type.
func (r *SaleRepository) SummarizeByItem(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error) {
	query := `
		SELECT item_type,
			COALESCE(SUM(quantity_kg), 0),
			COALESCE(SUM(total_amount), 0)
		FROM inventory_sales`
	var args []any

	if month != nil {
		args = append(args, string(*month))
		query += ` WHERE month = $1`
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

// MonthlyTotals rolls up sales per month, newest first.
func (r *SaleRepository) MonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT month,
			COALESCE(SUM(quantity_kg), 0),
			COALESCE(SUM(total_amount), 0),
			COUNT(*)
		FROM inventory_sales
		GROUP BY month ORDER BY month DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMonthlyRollups(rows)
}

// OverallTotals rolls up sales, optionally for one month.
func (r *SaleRepository) OverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error) {
	query := `
		SELECT COALESCE(SUM(quantity_kg), 0),
			COALESCE(SUM(total_amount), 0),
			COUNT(*)
		FROM inventory_sales`
	var args []any

	if month != nil {
		args = append(args, string(*month))
		query += ` WHERE month = $1`
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

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var (
		sale             domain.Sale
		month, item      string
		method           string
		qty, unit, total pgtype.Numeric
	)

	err := row.Scan(
		&sale.ID,
		&month,
		&sale.DateOfSale,
		&sale.CompanyName,
		&item,
		&qty,
		&unit,
		&total,
		&method,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sale.Month = domain.Month(month)
	sale.ItemType = domain.ItemType(item)
	sale.MethodOfPayment = domain.Channel(method)
	sale.QtyKg = numericToDecimal(qty)
	sale.UnitCost = numericToDecimal(unit)
	sale.TotalAmount = numericToDecimal(total)

	return &sale, nil
}
