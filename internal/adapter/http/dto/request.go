package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
)

// dateLayouts are the accepted wire formats for dates, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a wire-format date. Empty input returns a zero time so
// use cases can apply their own defaulting.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// CreateEntryRequest represents a raw cashbook submission. Income channels
// arrive under their historical bookkeeping names: incomeTypes is the
// channel list, amountsByType the per-channel split.
type CreateEntryRequest struct {
	Date  string `json:"date"`
	Month string `json:"month,omitempty"`

	IncomeTypes   []string                   `json:"incomeTypes,omitempty"`
	IncomeType    string                     `json:"incomeType,omitempty"`
	Amount        decimal.Decimal            `json:"amount"`
	AmountsByType map[string]decimal.Decimal `json:"amountsByType,omitempty"`

	Expenses          decimal.Decimal `json:"expenses"`
	ExpenseIncomeType string          `json:"expenseIncomeType,omitempty"`

	Ref         string `json:"ref,omitempty"`
	Description string `json:"description,omitempty"`

	TransactionCharges decimal.Decimal `json:"transactionCharges"`
	SalaryAmount       decimal.Decimal `json:"salaryAmount"`
	Advance            decimal.Decimal `json:"advance"`
	Allowance          decimal.Decimal `json:"allowance"`

	Sector          string `json:"sector,omitempty"`
	MethodOfPayment string `json:"methodOfPayment,omitempty"`
	WagesCategory   string `json:"wagesCategory,omitempty"`
	WorkerName      string `json:"workerName,omitempty"`
	PaymentTier     string `json:"paymentTier,omitempty"`
	Recyclables     string `json:"recyclables,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() (usecase.CreateEntryInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	channels := make([]domain.Channel, 0, len(r.IncomeTypes))
	for _, raw := range r.IncomeTypes {
		c, err := domain.ParseChannel(raw)
		if err != nil {
			return usecase.CreateEntryInput{}, err
		}
		channels = append(channels, c)
	}

	var primary domain.Channel
	if r.IncomeType != "" {
		primary, err = domain.ParseChannel(r.IncomeType)
		if err != nil {
			return usecase.CreateEntryInput{}, err
		}
	}

	var amounts domain.ChannelAmounts
	if len(r.AmountsByType) > 0 {
		amounts = make(domain.ChannelAmounts, len(r.AmountsByType))
		for raw, amt := range r.AmountsByType {
			c, err := domain.ParseChannel(raw)
			if err != nil {
				return usecase.CreateEntryInput{}, err
			}
			amounts[c] = amt
		}
	}

	var expenseChannel domain.Channel
	if r.ExpenseIncomeType != "" {
		expenseChannel, err = domain.ParseChannel(r.ExpenseIncomeType)
		if err != nil {
			return usecase.CreateEntryInput{}, err
		}
	}

	return usecase.CreateEntryInput{
		Date:               date,
		Month:              domain.Month(r.Month),
		Channels:           channels,
		PrimaryChannel:     primary,
		Amounts:            amounts,
		TotalAmount:        r.Amount,
		ExpenseAmount:      r.Expenses,
		ExpenseChannel:     expenseChannel,
		Reference:          r.Ref,
		Description:        r.Description,
		TransactionCharges: r.TransactionCharges,
		SalaryAmount:       r.SalaryAmount,
		Advance:            r.Advance,
		Allowance:          r.Allowance,
		Sector:             r.Sector,
		MethodOfPayment:    r.MethodOfPayment,
		WagesCategory:      r.WagesCategory,
		WorkerName:         r.WorkerName,
		PaymentTier:        r.PaymentTier,
		Recyclables:        r.Recyclables,
	}, nil
}

// CreateTransferRequest represents a move-money request between channels.
type CreateTransferRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date,omitempty"`
	Month  string          `json:"month,omitempty"`
	Ref    string          `json:"ref,omitempty"`
}

// ToUseCaseInput converts to use case input. Channel validation is left to
// the use case so unknown channels map to the domain error.
func (r *CreateTransferRequest) ToUseCaseInput() (usecase.CreateTransferInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.CreateTransferInput{}, err
	}

	return usecase.CreateTransferInput{
		Source:    domain.Channel(r.From),
		Dest:      domain.Channel(r.To),
		Amount:    r.Amount,
		Date:      date,
		Month:     domain.Month(r.Month),
		Reference: r.Ref,
	}, nil
}

// CreatePurchaseRequest represents an inventory purchase submission.
type CreatePurchaseRequest struct {
	Date             string          `json:"date,omitempty"`
	SupplierName     string          `json:"supplierName"`
	SupplierPhone    string          `json:"supplierPhone,omitempty"`
	SupplierLocation string          `json:"supplierLocation,omitempty"`
	ItemType         string          `json:"itemType"`
	QtyKg            decimal.Decimal `json:"qtyKg"`
	UnitCost         decimal.Decimal `json:"unitCost"`
	MethodOfPayment  string          `json:"methodOfPayment,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePurchaseRequest) ToUseCaseInput() (usecase.CreatePurchaseInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.CreatePurchaseInput{}, err
	}

	return usecase.CreatePurchaseInput{
		Date:             date,
		SupplierName:     r.SupplierName,
		SupplierPhone:    r.SupplierPhone,
		SupplierLocation: r.SupplierLocation,
		ItemType:         domain.ItemType(r.ItemType),
		QtyKg:            r.QtyKg,
		UnitCost:         r.UnitCost,
		MethodOfPayment:  domain.Channel(r.MethodOfPayment),
	}, nil
}

// DecidePurchaseRequest carries an approval decision.
type DecidePurchaseRequest struct {
	Status string `json:"status"`
}

// CreateSaleRequest represents an inventory sale submission.
type CreateSaleRequest struct {
	Date            string          `json:"date,omitempty"`
	CompanyName     string          `json:"companyName"`
	ItemType        string          `json:"itemType"`
	QtyKg           decimal.Decimal `json:"qtyKg"`
	UnitCost        decimal.Decimal `json:"unitCost"`
	MethodOfPayment string          `json:"methodOfPayment,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSaleRequest) ToUseCaseInput() (usecase.CreateSaleInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.CreateSaleInput{}, err
	}

	return usecase.CreateSaleInput{
		Date:            date,
		CompanyName:     r.CompanyName,
		ItemType:        domain.ItemType(r.ItemType),
		QtyKg:           r.QtyKg,
		UnitCost:        r.UnitCost,
		MethodOfPayment: domain.Channel(r.MethodOfPayment),
	}, nil
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
