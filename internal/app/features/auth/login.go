// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/store/emailverify"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccountID   string `json:"account_id"`
	DisplayName string `json:"display_name"`
}

// HandleLogin authenticates a verified account and issues a bearer token.
// The profile document is created lazily here, on first successful login,
// so unverified accounts never own one.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if ok, reason := h.Limits.Check(r, email); !ok {
		webjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.Accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			webjson.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Log.Error("lookup account", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		webjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if account.Disabled {
		webjson.Error(w, http.StatusForbidden, "this account is disabled")
		return
	}
	if !account.Verified {
		webjson.Error(w, http.StatusForbidden, "email not verified")
		return
	}

	if err := h.Profiles.Ensure(ctx, account.ID, account.DisplayName, account.Email); err != nil {
		h.Log.Error("ensure profile", zap.String("account_id", account.ID.Hex()), zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	token, err := h.Tokens.IssueToken(account.ID)
	if err != nil {
		h.Log.Error("issue token", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.Limits.ResetEmail(email)
	webjson.Write(w, http.StatusOK, loginResponse{
		Token:       token,
		AccountID:   account.ID.Hex(),
		DisplayName: account.DisplayName,
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// HandleVerify confirms the emailed code and flips the account's
// verification flag.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if ok, reason := h.Limits.Check(r, email); !ok {
		webjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.Accounts.GetByEmail(ctx, email)
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid verification code")
		return
	}

	if err := h.Verify.VerifyCode(ctx, account.ID, req.Code); err != nil {
		switch {
		case errors.Is(err, emailverify.ErrTooManyAttempts):
			webjson.Error(w, http.StatusTooManyRequests, "too many verification attempts")
		case errors.Is(err, emailverify.ErrNotFound), errors.Is(err, emailverify.ErrInvalidCode):
			webjson.Error(w, http.StatusBadRequest, "invalid verification code")
		default:
			h.Log.Error("verify code", zap.Error(err))
			webjson.Error(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}

	if err := h.Accounts.MarkVerified(ctx, account.ID); err != nil {
		h.Log.Error("mark verified", zap.String("account_id", account.ID.Hex()), zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "verification failed")
		return
	}
	webjson.OK(w)
}
