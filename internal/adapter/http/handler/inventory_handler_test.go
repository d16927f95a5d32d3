package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/recyclo/cashbook/internal/adapter/http/dto"
	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
)

type inventoryServiceStub struct {
	createPurchaseFn func(ctx context.Context, actor *domain.User, input usecase.CreatePurchaseInput) (*domain.Purchase, error)
	decidePurchaseFn func(ctx context.Context, actor *domain.User, id string, status domain.ApprovalStatus) (*domain.Purchase, error)
	listPurchasesFn  func(ctx context.Context, filter usecase.PurchaseFilter) ([]*domain.Purchase, error)
	createSaleFn     func(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error)
}

func (s *inventoryServiceStub) CreatePurchase(ctx context.Context, actor *domain.User, input usecase.CreatePurchaseInput) (*domain.Purchase, error) {
	return s.createPurchaseFn(ctx, actor, input)
}

func (s *inventoryServiceStub) DecidePurchase(ctx context.Context, actor *domain.User, id string, status domain.ApprovalStatus) (*domain.Purchase, error) {
	return s.decidePurchaseFn(ctx, actor, id, status)
}

func (s *inventoryServiceStub) ListPurchases(ctx context.Context, filter usecase.PurchaseFilter) ([]*domain.Purchase, error) {
	return s.listPurchasesFn(ctx, filter)
}

func (s *inventoryServiceStub) PurchaseSummary(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error) {
	return nil, nil
}

func (s *inventoryServiceStub) PurchaseMonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error) {
	return nil, nil
}

func (s *inventoryServiceStub) PurchaseOverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error) {
	return &domain.MonthlyRollup{}, nil
}

func (s *inventoryServiceStub) CreateSale(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error) {
	return s.createSaleFn(ctx, input)
}

func (s *inventoryServiceStub) ListSales(ctx context.Context, filter usecase.SaleFilter) ([]*domain.Sale, error) {
	return nil, nil
}

func (s *inventoryServiceStub) SaleSummary(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error) {
	return nil, nil
}

func (s *inventoryServiceStub) SaleMonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error) {
	return nil, nil
}

func (s *inventoryServiceStub) SaleOverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error) {
	return &domain.MonthlyRollup{}, nil
}

func TestInventoryHandler_CreatePurchase(t *testing.T) {
	purchase := &domain.Purchase{
		ID:              "p-1",
		Month:           "2026-07",
		SupplierName:    "Okello",
		ItemType:        domain.ItemBottles,
		QtyKg:           decimal.NewFromInt(250),
		MethodOfPayment: domain.ChannelCash,
		ApprovalStatus:  domain.ApprovalPending,
	}

	h := NewInventoryHandler(&inventoryServiceStub{
		createPurchaseFn: func(ctx context.Context, actor *domain.User, input usecase.CreatePurchaseInput) (*domain.Purchase, error) {
			require.Nil(t, actor)
			return purchase, nil
		},
	}, nil)

	body, err := json.Marshal(dto.CreatePurchaseRequest{
		SupplierName: "Okello",
		ItemType:     "BOTTLES",
		QtyKg:        decimal.NewFromInt(250),
		UnitCost:     decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/purchases", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreatePurchase(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.PurchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "PENDING", resp.ApprovalStatus)
}

func TestInventoryHandler_DecidePurchase(t *testing.T) {
	h := NewInventoryHandler(&inventoryServiceStub{
		decidePurchaseFn: func(ctx context.Context, actor *domain.User, id string, status domain.ApprovalStatus) (*domain.Purchase, error) {
			require.Equal(t, "p-1", id)
			require.Equal(t, domain.ApprovalApproved, status)
			return &domain.Purchase{ID: id, ApprovalStatus: status, MethodOfPayment: domain.ChannelCash}, nil
		},
	}, nil)

	r := chi.NewRouter()
	r.Put("/purchases/{id}/decision", h.DecidePurchase)

	body, err := json.Marshal(dto.DecidePurchaseRequest{Status: "APPROVED"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/purchases/p-1/decision", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInventoryHandler_DecidePurchase_InvalidStatus(t *testing.T) {
	h := NewInventoryHandler(&inventoryServiceStub{
		decidePurchaseFn: func(ctx context.Context, actor *domain.User, id string, status domain.ApprovalStatus) (*domain.Purchase, error) {
			return nil, domain.ErrInvalidApprovalStatus
		},
	}, nil)

	r := chi.NewRouter()
	r.Put("/purchases/{id}/decision", h.DecidePurchase)

	body, err := json.Marshal(dto.DecidePurchaseRequest{Status: "MAYBE"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/purchases/p-1/decision", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryHandler_ListPurchases_StatusFilter(t *testing.T) {
	var captured usecase.PurchaseFilter
	h := NewInventoryHandler(&inventoryServiceStub{
		listPurchasesFn: func(ctx context.Context, filter usecase.PurchaseFilter) ([]*domain.Purchase, error) {
			captured = filter
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/purchases?month=2026-07&status=PENDING", nil)
	rec := httptest.NewRecorder()

	h.ListPurchases(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured.Month)
	require.Equal(t, domain.Month("2026-07"), *captured.Month)
	require.NotNil(t, captured.Status)
	require.Equal(t, domain.ApprovalPending, *captured.Status)
}

func TestInventoryHandler_CreateSale(t *testing.T) {
	sale := &domain.Sale{
		ID:              "s-1",
		CompanyName:     "Mukwano",
		ItemType:        domain.ItemPlastics,
		QtyKg:           decimal.NewFromInt(200),
		UnitCost:        decimal.NewFromInt(30),
		TotalAmount:     decimal.NewFromInt(6000),
		MethodOfPayment: domain.ChannelBank,
	}

	h := NewInventoryHandler(&inventoryServiceStub{
		createSaleFn: func(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error) {
			require.Equal(t, domain.ItemPlastics, input.ItemType)
			return sale, nil
		},
	}, nil)

	body, err := json.Marshal(dto.CreateSaleRequest{
		CompanyName:     "Mukwano",
		ItemType:        "PLASTICS",
		QtyKg:           decimal.NewFromInt(200),
		UnitCost:        decimal.NewFromInt(30),
		MethodOfPayment: "BANK",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/sales", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateSale(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.SaleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(6000)))
}
