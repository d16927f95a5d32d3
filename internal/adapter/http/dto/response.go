package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
)

// EntryResponse represents a cashbook entry in API responses. Field names
// follow the books' historical vocabulary: incomeTypes for channels,
// expenseIncomeType for the channel an expense is drawn from.
type EntryResponse struct {
	ID    string `json:"id"`
	Month string `json:"month"`
	Date  string `json:"date"`

	IncomeTypes   []string                   `json:"incomeTypes,omitempty"`
	IncomeType    string                     `json:"incomeType,omitempty"`
	AmountsByType map[string]decimal.Decimal `json:"amountsByType,omitempty"`
	Amount        decimal.Decimal            `json:"amount"`

	Expenses          decimal.Decimal `json:"expenses"`
	ExpenseIncomeType string          `json:"expenseIncomeType,omitempty"`

	InternalTransfer string `json:"internalTransfer,omitempty"`
	Ref              string `json:"ref,omitempty"`
	Description      string `json:"description,omitempty"`

	TransactionCharges decimal.Decimal `json:"transactionCharges"`
	SalaryAmount       decimal.Decimal `json:"salaryAmount"`
	Advance            decimal.Decimal `json:"advance"`
	SalaryBalance      decimal.Decimal `json:"salaryBalance"`
	Allowance          decimal.Decimal `json:"allowance"`

	Sector          string `json:"sector,omitempty"`
	MethodOfPayment string `json:"methodOfPayment,omitempty"`
	WagesCategory   string `json:"wagesCategory,omitempty"`
	WorkerName      string `json:"workerName,omitempty"`
	PaymentTier     string `json:"paymentTier,omitempty"`
	Recyclables     string `json:"recyclables,omitempty"`

	WildExpenditure bool `json:"wildExpenditure"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	incomeTypes := make([]string, 0, len(e.Channels))
	for _, c := range e.Channels {
		incomeTypes = append(incomeTypes, string(c))
	}

	var amounts map[string]decimal.Decimal
	if !e.Amounts.IsEmpty() {
		amounts = make(map[string]decimal.Decimal, len(e.Amounts))
		for c, v := range e.Amounts {
			amounts[string(c)] = v
		}
	}

	incomeType := ""
	if e.PrimaryChannel != domain.ChannelNone {
		incomeType = string(e.PrimaryChannel)
	}

	expenseIncomeType := ""
	if e.ExpenseChannel != domain.ChannelNone {
		expenseIncomeType = string(e.ExpenseChannel)
	}

	return &EntryResponse{
		ID:                 e.ID,
		Month:              string(e.Month),
		Date:               e.Date.UTC().Format("2006-01-02"),
		IncomeTypes:        incomeTypes,
		IncomeType:         incomeType,
		AmountsByType:      amounts,
		Amount:             e.TotalAmount,
		Expenses:           e.ExpenseAmount,
		ExpenseIncomeType:  expenseIncomeType,
		InternalTransfer:   e.TransferTag,
		Ref:                e.Reference,
		Description:        e.Description,
		TransactionCharges: e.TransactionCharges,
		SalaryAmount:       e.SalaryAmount,
		Advance:            e.Advance,
		SalaryBalance:      e.SalaryBalance,
		Allowance:          e.Allowance,
		Sector:             e.Sector,
		MethodOfPayment:    e.MethodOfPayment,
		WagesCategory:      e.WagesCategory,
		WorkerName:         e.WorkerName,
		PaymentTier:        e.PaymentTier,
		Recyclables:        e.Recyclables,
		WildExpenditure:    e.WildExpenditure,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransferResponse reports a completed channel transfer: both written legs
// plus a human-readable confirmation.
type TransferResponse struct {
	Success     bool           `json:"success"`
	DebitEntry  *EntryResponse `json:"debitEntry"`
	CreditEntry *EntryResponse `json:"creditEntry"`
	Message     string         `json:"message"`
}

// TransferFromResult converts a transfer result to a response.
func TransferFromResult(res *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Success:     true,
		DebitEntry:  EntryFromDomain(res.Debit),
		CreditEntry: EntryFromDomain(res.Credit),
		Message:     res.Message,
	}
}

// BalanceResponse is one channel's position for a month.
type BalanceResponse struct {
	IncomeType       string          `json:"incomeType"`
	CarryOver        decimal.Decimal `json:"carryOver"`
	CurrentIncome    decimal.Decimal `json:"currentIncome"`
	CurrentExpenses  decimal.Decimal `json:"currentExpenses"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
}

// BalancesFromUseCase converts channel balances to responses.
func BalancesFromUseCase(balances []usecase.ChannelBalance) []BalanceResponse {
	result := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceResponse{
			IncomeType:       string(b.Channel),
			CarryOver:        b.CarryOver,
			CurrentIncome:    b.CurrentIncome,
			CurrentExpenses:  b.CurrentExpenses,
			AvailableBalance: b.AvailableBalance,
		}
	}
	return result
}

// DailyChannelResponse is one channel's slice of a day.
type DailyChannelResponse struct {
	IncomeType string          `json:"incomeType"`
	Income     decimal.Decimal `json:"income"`
	Expenses   decimal.Decimal `json:"expenses"`
	Net        decimal.Decimal `json:"net"`
}

// DailyResponse aggregates one calendar day.
type DailyResponse struct {
	Date         string                 `json:"date"`
	Channels     []DailyChannelResponse `json:"channels"`
	OverallTotal decimal.Decimal        `json:"overallTotal"`
	EntryCount   int                    `json:"entryCount"`
}

// DailyFromUseCase converts daily totals to a response.
func DailyFromUseCase(d *usecase.DailyTotals) *DailyResponse {
	channels := make([]DailyChannelResponse, len(d.Channels))
	for i, c := range d.Channels {
		channels[i] = DailyChannelResponse{
			IncomeType: string(c.Channel),
			Income:     c.Income,
			Expenses:   c.Expenses,
			Net:        c.Net,
		}
	}

	return &DailyResponse{
		Date:         d.Date.UTC().Format("2006-01-02"),
		Channels:     channels,
		OverallTotal: d.OverallTotal,
		EntryCount:   d.EntryCount,
	}
}

// ChannelSummaryResponse is one channel's monthly rollup.
type ChannelSummaryResponse struct {
	IncomeType        string          `json:"incomeType"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	Net               decimal.Decimal `json:"net"`
	CarryFromPrevious decimal.Decimal `json:"carryFromPrevious"`
	CarryToNext       decimal.Decimal `json:"carryToNext"`
}

// SummaryResponse is the month-level rollup.
type SummaryResponse struct {
	Month              string                   `json:"month"`
	TotalAmount        decimal.Decimal          `json:"totalAmount"`
	TotalExpenses      decimal.Decimal          `json:"totalExpenses"`
	TransactionCharges decimal.Decimal          `json:"transactionCharges"`
	SalaryAmount       decimal.Decimal          `json:"salaryAmount"`
	Allowance          decimal.Decimal          `json:"allowance"`
	EntryCount         int64                    `json:"entryCount"`
	ByChannel          []ChannelSummaryResponse `json:"byChannel"`
}

// SummaryFromUseCase converts a monthly summary to a response.
func SummaryFromUseCase(s *usecase.MonthlySummary) *SummaryResponse {
	byChannel := make([]ChannelSummaryResponse, len(s.ByChannel))
	for i, c := range s.ByChannel {
		byChannel[i] = ChannelSummaryResponse{
			IncomeType:        string(c.Channel),
			TotalAmount:       c.TotalAmount,
			TotalExpenses:     c.TotalExpenses,
			Net:               c.Net,
			CarryFromPrevious: c.CarryFromPrevious,
			CarryToNext:       c.CarryToNext,
		}
	}

	return &SummaryResponse{
		Month:              string(s.Month),
		TotalAmount:        s.Totals.TotalAmount,
		TotalExpenses:      s.Totals.TotalExpenses,
		TransactionCharges: s.Totals.TransactionCharges,
		SalaryAmount:       s.Totals.SalaryAmount,
		Allowance:          s.Totals.Allowance,
		EntryCount:         s.Totals.EntryCount,
		ByChannel:          byChannel,
	}
}

// CashbookReportResponse bundles the printable cashbook report.
type CashbookReportResponse struct {
	Month   string           `json:"month"`
	Entries []*EntryResponse `json:"entries"`
	Summary *SummaryResponse `json:"summary"`
}

// CashbookReportFromUseCase converts a cashbook report to a response.
func CashbookReportFromUseCase(r *usecase.CashbookReport) *CashbookReportResponse {
	return &CashbookReportResponse{
		Month:   string(r.Month),
		Entries: EntriesFromDomain(r.Entries),
		Summary: SummaryFromUseCase(r.Summary),
	}
}

// PurchaseResponse represents an inventory purchase in API responses.
type PurchaseResponse struct {
	ID               string          `json:"id"`
	Month            string          `json:"month"`
	Date             string          `json:"date"`
	SupplierName     string          `json:"supplierName"`
	SupplierPhone    string          `json:"supplierPhone,omitempty"`
	SupplierLocation string          `json:"supplierLocation,omitempty"`
	ItemType         string          `json:"itemType"`
	QtyKg            decimal.Decimal `json:"qtyKg"`
	UnitCost         decimal.Decimal `json:"unitCost"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	MethodOfPayment  string          `json:"methodOfPayment,omitempty"`
	ApprovalStatus   string          `json:"approvalStatus"`
	ApprovedBy       string          `json:"approvedBy,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// PurchaseFromDomain converts a domain purchase to a response.
func PurchaseFromDomain(p *domain.Purchase) *PurchaseResponse {
	method := ""
	if p.MethodOfPayment != domain.ChannelNone {
		method = string(p.MethodOfPayment)
	}

	return &PurchaseResponse{
		ID:               p.ID,
		Month:            string(p.Month),
		Date:             p.DateOfPurchase.UTC().Format("2006-01-02"),
		SupplierName:     p.SupplierName,
		SupplierPhone:    p.SupplierPhone,
		SupplierLocation: p.SupplierLocation,
		ItemType:         string(p.ItemType),
		QtyKg:            p.QtyKg,
		UnitCost:         p.UnitCost,
		TotalCost:        p.TotalCost,
		MethodOfPayment:  method,
		ApprovalStatus:   string(p.ApprovalStatus),
		ApprovedBy:       p.ApprovedBy,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// PurchasesFromDomain converts domain purchases to responses.
func PurchasesFromDomain(purchases []*domain.Purchase) []*PurchaseResponse {
	result := make([]*PurchaseResponse, len(purchases))
	for i, p := range purchases {
		result[i] = PurchaseFromDomain(p)
	}
	return result
}

// SaleResponse represents an inventory sale in API responses.
type SaleResponse struct {
	ID              string          `json:"id"`
	Month           string          `json:"month"`
	Date            string          `json:"date"`
	CompanyName     string          `json:"companyName"`
	ItemType        string          `json:"itemType"`
	QtyKg           decimal.Decimal `json:"qtyKg"`
	UnitCost        decimal.Decimal `json:"unitCost"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	MethodOfPayment string          `json:"methodOfPayment"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SaleFromDomain converts a domain sale to a response.
func SaleFromDomain(s *domain.Sale) *SaleResponse {
	return &SaleResponse{
		ID:              s.ID,
		Month:           string(s.Month),
		Date:            s.DateOfSale.UTC().Format("2006-01-02"),
		CompanyName:     s.CompanyName,
		ItemType:        string(s.ItemType),
		QtyKg:           s.QtyKg,
		UnitCost:        s.UnitCost,
		TotalAmount:     s.TotalAmount,
		MethodOfPayment: string(s.MethodOfPayment),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// SalesFromDomain converts domain sales to responses.
func SalesFromDomain(sales []*domain.Sale) []*SaleResponse {
	result := make([]*SaleResponse, len(sales))
	for i, s := range sales {
		result[i] = SaleFromDomain(s)
	}
	return result
}

// ItemRollupResponse sums quantity and money for one item type.
type ItemRollupResponse struct {
	ItemType  string          `json:"itemType"`
	TotalKg   decimal.Decimal `json:"totalKg"`
	TotalTons decimal.Decimal `json:"totalTons"`
	Total     decimal.Decimal `json:"total"`
}

// ItemRollupsFromDomain converts item rollups to responses.
func ItemRollupsFromDomain(rollups []*domain.ItemRollup) []ItemRollupResponse {
	result := make([]ItemRollupResponse, len(rollups))
	for i, r := range rollups {
		result[i] = ItemRollupResponse{
			ItemType:  string(r.ItemType),
			TotalKg:   r.TotalKg,
			TotalTons: r.TotalTons,
			Total:     r.Total,
		}
	}
	return result
}

// MonthlyRollupResponse sums quantity and money for one month.
type MonthlyRollupResponse struct {
	Month     string          `json:"month,omitempty"`
	TotalKg   decimal.Decimal `json:"totalKg"`
	TotalTons decimal.Decimal `json:"totalTons"`
	Total     decimal.Decimal `json:"total"`
	Count     int64           `json:"count"`
}

// MonthlyRollupFromDomain converts a monthly rollup to a response.
func MonthlyRollupFromDomain(r *domain.MonthlyRollup) MonthlyRollupResponse {
	return MonthlyRollupResponse{
		Month:     string(r.Month),
		TotalKg:   r.TotalKg,
		TotalTons: r.TotalTons,
		Total:     r.Total,
		Count:     r.Count,
	}
}

// MonthlyRollupsFromDomain converts monthly rollups to responses.
func MonthlyRollupsFromDomain(rollups []*domain.MonthlyRollup) []MonthlyRollupResponse {
	result := make([]MonthlyRollupResponse, len(rollups))
	for i, r := range rollups {
		result[i] = MonthlyRollupFromDomain(r)
	}
	return result
}

// SupplierRollupResponse sums a supplier's approved purchases.
type SupplierRollupResponse struct {
	Supplier  string          `json:"supplier"`
	TotalKg   decimal.Decimal `json:"totalKg"`
	TotalTons decimal.Decimal `json:"totalTons"`
	Total     decimal.Decimal `json:"total"`
}

// InventoryReportResponse bundles the printable inventory report.
type InventoryReportResponse struct {
	Month      string                   `json:"month,omitempty"`
	Purchases  []*PurchaseResponse      `json:"purchases"`
	Sales      []*SaleResponse          `json:"sales"`
	BySupplier []SupplierRollupResponse `json:"bySupplier"`
	PurchaseKg decimal.Decimal          `json:"purchaseKg"`
	SaleKg     decimal.Decimal          `json:"saleKg"`
}

// InventoryReportFromUseCase converts an inventory report to a response.
func InventoryReportFromUseCase(r *usecase.InventoryReport) *InventoryReportResponse {
	month := ""
	if r.Month != nil {
		month = string(*r.Month)
	}

	bySupplier := make([]SupplierRollupResponse, len(r.BySupplier))
	for i, s := range r.BySupplier {
		bySupplier[i] = SupplierRollupResponse{
			Supplier:  s.Supplier,
			TotalKg:   s.TotalKg,
			TotalTons: s.TotalTons,
			Total:     s.Total,
		}
	}

	return &InventoryReportResponse{
		Month:      month,
		Purchases:  PurchasesFromDomain(r.Purchases),
		Sales:      SalesFromDomain(r.Sales),
		BySupplier: bySupplier,
		PurchaseKg: r.PurchaseKg,
		SaleKg:     r.SaleKg,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
