package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/songurtechnology/wafelinvest/utils"
)

func issueToken(t *testing.T, role string) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := utils.GenerateAccessToken(7, "alice", role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestRequireUser_NoToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.local/v1/profile", nil)

	RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireUser_ValidToken(t *testing.T) {
	token := issueToken(t, "user")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.local/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	var got Actor
	RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ActorFrom(r)
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.ID != 7 || got.Username != "alice" || got.Role != "user" {
		t.Fatalf("unexpected actor %+v", got)
	}
}

func TestRequireAdmin_RejectsUserRole(t *testing.T) {
	token := issueToken(t, "user")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.local/v1/admin/investments", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for non-admin actor")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAuth_TokenFromQueryParam(t *testing.T) {
	// WebSocket clients pass the token as a query parameter
	token := issueToken(t, "user")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.local/v1/chat/ws/bob?token="+token, nil)

	RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
