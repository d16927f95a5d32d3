package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/recyclo/cashbook/internal/adapter/http/dto"
	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Balances(ctx context.Context, month domain.Month) ([]usecase.ChannelBalance, error)
	Daily(ctx context.Context, day time.Time) (*usecase.DailyTotals, error)
	Summary(ctx context.Context, month domain.Month) (*usecase.MonthlySummary, error)
	Months(ctx context.Context) ([]domain.Month, error)
	Cashbook(ctx context.Context, month domain.Month) (*usecase.CashbookReport, error)
	Inventory(ctx context.Context, month *domain.Month) (*usecase.InventoryReport, error)
}

// ReportHandler handles read-side HTTP requests: balances, daily totals,
// summaries and the printable reports.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Balances reports every channel's position for a month. Defaults to the
// current month when none is given.
func (h *ReportHandler) Balances(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	var m domain.Month
	if month != nil {
		m = *month
	}

	balances, err := h.reportUC.Balances(r.Context(), m)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute balances", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromUseCase(balances))
}

// Daily aggregates all entries dated on one calendar day.
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing date", domain.ErrMissingDate.Error())
		return
	}

	day, err := dto.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	totals, err := h.reportUC.Daily(r.Context(), day)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute daily totals", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DailyFromUseCase(totals))
}

// Summary reports the month-level rollup with per-channel carry-over.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	if month == nil {
		writeError(w, http.StatusBadRequest, "missing month", domain.ErrMissingMonth.Error())
		return
	}

	summary, err := h.reportUC.Summary(r.Context(), *month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// Months lists every month with at least one entry, newest first.
func (h *ReportHandler) Months(w http.ResponseWriter, r *http.Request) {
	months, err := h.reportUC.Months(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list months", err.Error())
		return
	}

	result := make([]string, len(months))
	for i, m := range months {
		result[i] = string(m)
	}

	writeJSON(w, http.StatusOK, result)
}

// Cashbook returns the printable cashbook report for a month.
func (h *ReportHandler) Cashbook(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	if month == nil {
		writeError(w, http.StatusBadRequest, "missing month", domain.ErrMissingMonth.Error())
		return
	}

	report, err := h.reportUC.Cashbook(r.Context(), *month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build cashbook report", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CashbookReportFromUseCase(report))
}

// Inventory returns the printable inventory report, optionally narrowed
// to a month.
func (h *ReportHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	report, err := h.reportUC.Inventory(r.Context(), month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build inventory report", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InventoryReportFromUseCase(report))
}
