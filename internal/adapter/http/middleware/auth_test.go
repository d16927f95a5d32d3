package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/infrastructure/auth"
)

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Minute)

	token, err := manager.Generate(&domain.User{
		ID:       "u-1",
		Username: "achola",
		Role:     domain.RoleManager,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	mw := AuthMiddleware(manager)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   bool
	}{
		{"valid token", "Bearer " + token, http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"malformed header", "Token abc", http.StatusUnauthorized, false},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = GetUserFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cashbook", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			mw(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}

			if tt.wantUser {
				if gotUser == nil || gotUser.Username != "achola" || gotUser.Role != domain.RoleManager {
					t.Fatalf("expected user in context, got %+v", gotUser)
				}
			}
		})
	}
}

func TestRoleAllows(t *testing.T) {
	tests := []struct {
		have domain.Role
		want domain.Role
		ok   bool
	}{
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleManager, domain.RoleAdmin, false},
		{domain.RoleManager, domain.RoleManager, true},
		{domain.RoleInventory, domain.RoleManager, false},
		{domain.RoleManager, domain.RoleInventory, true},
		{domain.RoleViewer, domain.RoleInventory, false},
		{domain.RoleViewer, domain.RoleViewer, true},
	}

	for _, tt := range tests {
		if got := roleAllows(tt.have, tt.want); got != tt.ok {
			t.Fatalf("roleAllows(%s, %s) = %v, want %v", tt.have, tt.want, got, tt.ok)
		}
	}
}

func TestRequireRoleRejectsMissingUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a user")
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cashbook/e-1", nil)
	rr := httptest.NewRecorder()

	RequireRole(domain.RoleAdmin)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
