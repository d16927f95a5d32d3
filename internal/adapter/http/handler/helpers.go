package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/recyclo/cashbook/internal/adapter/http/dto"
	"github.com/recyclo/cashbook/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var insufficient *domain.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrPurchaseNotFound),
		errors.Is(err, domain.ErrSaleNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrMissingDate),
		errors.Is(err, domain.ErrMissingMonth),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrUnknownChannel),
		errors.Is(err, domain.ErrSameChannel),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrUnknownItemType),
		errors.Is(err, domain.ErrMissingSupplier),
		errors.Is(err, domain.ErrMissingCompany),
		errors.Is(err, domain.ErrInvalidApprovalStatus),
		errors.Is(err, domain.ErrPurchaseDecided),
		errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrAmountMismatch),
		errors.Is(err, domain.ErrExpenseChannelMissing):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// monthQuery reads an optional month query parameter. A missing parameter
// yields a nil month; a malformed one is reported to the caller.
func monthQuery(w http.ResponseWriter, r *http.Request) (*domain.Month, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return nil, true
	}

	month, err := domain.ParseMonth(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return nil, false
	}

	return &month, true
}
