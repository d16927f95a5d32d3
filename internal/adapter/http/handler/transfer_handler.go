package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/recyclo/cashbook/internal/adapter/http/dto"
	"github.com/recyclo/cashbook/internal/infrastructure/metrics"
	"github.com/recyclo/cashbook/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error)
}

// TransferHandler handles channel transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler. Metrics may be nil.
func NewTransferHandler(transferUC TransferService, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, metrics: m}
}

// Create moves money between two channels.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transfer", err.Error())
		return
	}

	result, err := h.transferUC.CreateTransfer(r.Context(), input)
	if err != nil {
		if h.metrics != nil {
			h.metrics.TransferErrors.WithLabelValues(errorType(err)).Inc()
		}

		status := mapDomainError(err)
		writeError(w, status, "failed to create transfer", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCompleted.Inc()
		amount, _ := input.Amount.Float64()
		h.metrics.TransferAmount.Observe(amount)
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromResult(result))
}

// errorType labels a transfer failure for the error counter without
// leaking per-request detail into the label space.
func errorType(err error) string {
	switch mapDomainError(err) {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "internal"
	}
}
