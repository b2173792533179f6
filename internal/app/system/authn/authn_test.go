package authn_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-0123456789"

func TestTokenRoundTrip(t *testing.T) {
	m, err := authn.NewManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	id := primitive.NewObjectID()
	token, err := m.IssueToken(id)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	got, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got != id {
		t.Errorf("round-tripped account id = %s, want %s", got.Hex(), id.Hex())
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	m1, _ := authn.NewManager(testSecret, time.Hour)
	m2, _ := authn.NewManager("a-different-secret-9876543210", time.Hour)

	token, err := m1.IssueToken(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := m2.VerifyToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := authn.NewManager("", time.Hour); err == nil {
		t.Error("empty secret was accepted")
	}
}

func TestRequireAccount(t *testing.T) {
	m, _ := authn.NewManager(testSecret, time.Hour)
	id := primitive.NewObjectID()
	token, _ := m.IssueToken(id)

	var seen primitive.ObjectID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := authn.AccountCtx(r)
		if !ok {
			t.Error("no account id in context behind the middleware")
		}
		seen = got
	})
	handler := m.RequireAccount(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
	if seen != id {
		t.Errorf("middleware passed account id %s, want %s", seen.Hex(), id.Hex())
	}
}
