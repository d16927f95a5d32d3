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

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.Entry, error)
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)
	ListEntries(ctx context.Context, month *domain.Month) ([]*domain.Entry, error)
	UpdateEntry(ctx context.Context, actor *domain.User, id string, input usecase.CreateEntryInput) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, actor *domain.User, id string) error
}

// EntryHandler handles cashbook entry HTTP requests.
type EntryHandler struct {
	entryUC EntryService
	metrics *metrics.Metrics
}

// NewEntryHandler creates a new EntryHandler. Metrics may be nil.
func NewEntryHandler(entryUC EntryService, m *metrics.Metrics) *EntryHandler {
	return &EntryHandler{entryUC: entryUC, metrics: m}
}

// Create records a new cashbook entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry", err.Error())
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create entry", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.EntriesCreated.Inc()
		if entry.TotalAmount.IsPositive() {
			amount, _ := entry.TotalAmount.Float64()
			h.metrics.EntryAmount.Observe(amount)
		}
		if entry.WildExpenditure {
			h.metrics.WildExpenditures.Inc()
		}
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.entryUC.GetEntry(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists entries, optionally filtered by month.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	entries, err := h.entryUC.ListEntries(r.Context(), month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list entries", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Update replaces an entry's recorded fields.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry", err.Error())
		return
	}

	actor, _ := middleware.GetUserFromContext(r.Context())

	entry, err := h.entryUC.UpdateEntry(r.Context(), actor, id, input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update entry", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.EntriesUpdated.Inc()
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete removes an entry.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	actor, _ := middleware.GetUserFromContext(r.Context())

	if err := h.entryUC.DeleteEntry(r.Context(), actor, id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete entry", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.EntriesDeleted.Inc()
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
