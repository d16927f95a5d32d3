package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", domain.ErrPurchaseNotFound), http.StatusNotFound},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"same channel", domain.ErrSameChannel, http.StatusBadRequest},
		{"unknown item", domain.ErrUnknownItemType, http.StatusBadRequest},
		{"insufficient balance", &domain.InsufficientBalanceError{Channel: domain.ChannelCash, Available: decimal.NewFromInt(10)}, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
