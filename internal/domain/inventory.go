package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ItemType classifies recyclable material.
type ItemType string

const (
	ItemSoft     ItemType = "SOFT"
	ItemBottles  ItemType = "BOTTLES"
	ItemHD       ItemType = "HD"
	ItemSteel    ItemType = "STEEL"
	ItemSacks    ItemType = "SACKS"
	ItemJCNS     ItemType = "JCNS"
	ItemPlastics ItemType = "PLASTICS"
	ItemBox      ItemType = "BOX"
	ItemCups     ItemType = "CUPS"
)

var itemTypes = map[ItemType]bool{
	ItemSoft: true, ItemBottles: true, ItemHD: true,
	ItemSteel: true, ItemSacks: true, ItemJCNS: true,
	ItemPlastics: true, ItemBox: true, ItemCups: true,
}

// ParseItemType parses a recyclable item tag.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(s)
	if !itemTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrUnknownItemType, s)
	}

	return t, nil
}

// ApprovalStatus is the review state of an inventory purchase.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Purchase is a supplier transaction buying recyclables by weight.
type Purchase struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DateOfPurchase time.Time

	ID    string
	Month Month

	SupplierName     string
	SupplierPhone    string
	SupplierLocation string

	ItemType  ItemType
	QtyKg     decimal.Decimal
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal

	// MethodOfPayment is the channel the purchase is paid from, or NONE
	// when no payment was recorded yet.
	MethodOfPayment Channel

	ApprovalStatus ApprovalStatus
	ApprovedBy     string
}

// Sale is a company transaction selling recyclables by weight.
type Sale struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DateOfSale time.Time

	ID    string
	Month Month

	CompanyName string
	ItemType    ItemType
	QtyKg       decimal.Decimal
	UnitCost    decimal.Decimal

	// TotalAmount is always UnitCost × QtyKg, computed at creation.
	TotalAmount decimal.Decimal

	MethodOfPayment Channel
}

// PurchaseReference is the deterministic cashbook reference tying a
// purchase to its linked expense entry.
func PurchaseReference(purchaseID string) string {
	return "INV-PURCHASE-" + purchaseID
}

// SaleReference is the deterministic cashbook reference tying a sale to
// its linked income entry.
func SaleReference(saleID string) string {
	return "INV-SALE-" + saleID
}

var kgPerTon = decimal.NewFromInt(1000)

// TonsFromKg converts a weight in kilograms to tons.
func TonsFromKg(kg decimal.Decimal) decimal.Decimal {
	return kg.Div(kgPerTon)
}

// ItemRollup sums quantity and money for one item type.
type ItemRollup struct {
	ItemType  ItemType
	TotalKg   decimal.Decimal
	TotalTons decimal.Decimal
	Total     decimal.Decimal
}

// MonthlyRollup sums quantity and money for one month. Month is empty on
// an overall (all-months) rollup.
type MonthlyRollup struct {
	Month     Month
	TotalKg   decimal.Decimal
	TotalTons decimal.Decimal
	Total     decimal.Decimal
	Count     int64
}

// SupplierRollup sums a month's approved purchases for one supplier.
type SupplierRollup struct {
	Supplier  string
	TotalKg   decimal.Decimal
	TotalTons decimal.Decimal
	Total     decimal.Decimal
}
