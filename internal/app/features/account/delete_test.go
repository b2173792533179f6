package account_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scorepadhq/scorepad/internal/app/features/account"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// The confirmation check runs before anything touches the database, so
// these paths are testable with a bare handler.
func TestHandleDeleteAccountRequiresConfirmation(t *testing.T) {
	h := &account.Handler{Log: zap.NewNop()}

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"wrong phrase", `{"confirm":"delete"}`},
		{"blank phrase", `{"confirm":""}`},
		{"unknown field", `{"confirmed":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/account/delete", strings.NewReader(tt.body))
			req = authn.WithAccount(req, primitive.NewObjectID())
			rec := httptest.NewRecorder()

			h.HandleDeleteAccount(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestHandleDeleteAccountUnauthenticated(t *testing.T) {
	h := &account.Handler{Log: zap.NewNop()}

	req := httptest.NewRequest(http.MethodPost, "/account/delete", strings.NewReader(`{"confirm":"DELETE"}`))
	rec := httptest.NewRecorder()

	h.HandleDeleteAccount(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
