package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recyclo/cashbook/internal/adapter/http/dto"
	"github.com/recyclo/cashbook/internal/adapter/http/middleware"
	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/infrastructure/metrics"
	"github.com/recyclo/cashbook/internal/usecase"
)

// InventoryService defines the behavior needed by InventoryHandler.
type InventoryService interface {
	CreatePurchase(ctx context.Context, actor *domain.User, input usecase.CreatePurchaseInput) (*domain.Purchase, error)
	DecidePurchase(ctx context.Context, actor *domain.User, id string, status domain.ApprovalStatus) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, filter usecase.PurchaseFilter) ([]*domain.Purchase, error)
	PurchaseSummary(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error)
	PurchaseMonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error)
	PurchaseOverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error)
	CreateSale(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error)
	ListSales(ctx context.Context, filter usecase.SaleFilter) ([]*domain.Sale, error)
	SaleSummary(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error)
	SaleMonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error)
	SaleOverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error)
}

// InventoryHandler handles recyclables inventory HTTP requests.
type InventoryHandler struct {
	inventoryUC InventoryService
	metrics     *metrics.Metrics
}

// NewInventoryHandler creates a new InventoryHandler. Metrics may be nil.
func NewInventoryHandler(inventoryUC InventoryService, m *metrics.Metrics) *InventoryHandler {
	return &InventoryHandler{inventoryUC: inventoryUC, metrics: m}
}

// CreatePurchase records an inventory purchase.
func (h *InventoryHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid purchase", err.Error())
		return
	}

	actor, _ := middleware.GetUserFromContext(r.Context())

	purchase, err := h.inventoryUC.CreatePurchase(r.Context(), actor, input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create purchase", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.PurchasesCreated.Inc()
		kg, _ := purchase.QtyKg.Float64()
		h.metrics.TonnagePurchased.Add(kg)
		if purchase.ApprovalStatus == domain.ApprovalApproved {
			h.metrics.PurchasesApproved.Inc()
		}
	}

	writeJSON(w, http.StatusCreated, dto.PurchaseFromDomain(purchase))
}

// DecidePurchase approves or rejects a pending purchase.
func (h *InventoryHandler) DecidePurchase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase ID", "")
		return
	}

	var req dto.DecidePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor, _ := middleware.GetUserFromContext(r.Context())

	purchase, err := h.inventoryUC.DecidePurchase(r.Context(), actor, id, domain.ApprovalStatus(req.Status))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to decide purchase", err.Error())

		return
	}

	if h.metrics != nil {
		switch purchase.ApprovalStatus {
		case domain.ApprovalApproved:
			h.metrics.PurchasesApproved.Inc()
		case domain.ApprovalRejected:
			h.metrics.PurchasesRejected.Inc()
		}
	}

	writeJSON(w, http.StatusOK, dto.PurchaseFromDomain(purchase))
}

// ListPurchases lists purchases, optionally filtered by month, supplier
// and approval status.
func (h *InventoryHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	filter := usecase.PurchaseFilter{
		Month:    month,
		Supplier: r.URL.Query().Get("supplier"),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.ApprovalStatus(raw)
		filter.Status = &status
	}

	purchases, err := h.inventoryUC.ListPurchases(r.Context(), filter)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list purchases", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PurchasesFromDomain(purchases))
}

// PurchaseSummary rolls up approved purchases by item type.
func (h *InventoryHandler) PurchaseSummary(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	rollups, err := h.inventoryUC.PurchaseSummary(r.Context(), month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to summarize purchases", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ItemRollupsFromDomain(rollups))
}

// PurchaseMonthlyTotals rolls up approved purchases per month.
func (h *InventoryHandler) PurchaseMonthlyTotals(w http.ResponseWriter, r *http.Request) {
	rollups, err := h.inventoryUC.PurchaseMonthlyTotals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute monthly totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyRollupsFromDomain(rollups))
}

// PurchaseOverallTotals rolls up approved purchases across all time or
// one month.
func (h *InventoryHandler) PurchaseOverallTotals(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	rollup, err := h.inventoryUC.PurchaseOverallTotals(r.Context(), month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute overall totals", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyRollupFromDomain(rollup))
}

// CreateSale records an inventory sale and its cashbook income entry.
func (h *InventoryHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale", err.Error())
		return
	}

	sale, err := h.inventoryUC.CreateSale(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create sale", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.SalesRecorded.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.SaleFromDomain(sale))
}

// ListSales lists sales, optionally filtered by month.
func (h *InventoryHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	sales, err := h.inventoryUC.ListSales(r.Context(), usecase.SaleFilter{Month: month})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list sales", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SalesFromDomain(sales))
}

// SaleSummary rolls up sales by item type.
func (h *InventoryHandler) SaleSummary(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	rollups, err := h.inventoryUC.SaleSummary(r.Context(), month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to summarize sales", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ItemRollupsFromDomain(rollups))
}

// SaleMonthlyTotals rolls up sales per month.
func (h *InventoryHandler) SaleMonthlyTotals(w http.ResponseWriter, r *http.Request) {
	rollups, err := h.inventoryUC.SaleMonthlyTotals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute monthly totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyRollupsFromDomain(rollups))
}

// SaleOverallTotals rolls up sales across all time or one month.
func (h *InventoryHandler) SaleOverallTotals(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	rollup, err := h.inventoryUC.SaleOverallTotals(r.Context(), month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute overall totals", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyRollupFromDomain(rollup))
}
