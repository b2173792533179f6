// internal/app/features/auth/signup.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/store/emailverify"
	"github.com/scorepadhq/scorepad/internal/app/system/mailer"
	"github.com/scorepadhq/scorepad/internal/app/system/sanitize"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// HandleSignup creates an unverified account and emails a verification
// code. The account cannot log in until the code is confirmed; the stale
// account sweeper reclaims signups that never finish.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		webjson.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		webjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	name := sanitize.Text(req.DisplayName)
	if name == "" {
		webjson.Error(w, http.StatusBadRequest, "display name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash password", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "signup failed")
		return
	}

	account, err := h.Accounts.Create(ctx, models.Account{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  name,
	})
	if err != nil {
		if errors.Is(err, accountstore.ErrDuplicateEmail) {
			webjson.Error(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		h.Log.Error("create account", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "signup failed")
		return
	}

	if err := h.sendVerificationCode(ctx, account.ID, email, false); err != nil {
		h.Log.Error("send verification code", zap.String("email", email), zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not send verification email")
		return
	}

	webjson.Write(w, http.StatusCreated, map[string]string{"account_id": account.ID.Hex()})
}

type resendRequest struct {
	Email string `json:"email"`
}

// HandleResend issues a fresh verification code for an unverified account.
// Responds ok even for unknown emails so the endpoint cannot be used to
// probe which addresses have accounts.
func (h *Handler) HandleResend(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.Accounts.GetByEmail(ctx, email)
	if err != nil || account.Verified {
		webjson.OK(w)
		return
	}

	if err := h.sendVerificationCode(ctx, account.ID, email, true); err != nil {
		if errors.Is(err, emailverify.ErrTooManyResends) {
			webjson.Error(w, http.StatusTooManyRequests, "too many resend requests")
			return
		}
		h.Log.Error("resend verification code", zap.String("email", email), zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not send verification email")
		return
	}
	webjson.OK(w)
}

func (h *Handler) sendVerificationCode(ctx context.Context, accountID primitive.ObjectID, email string, isResend bool) error {
	code, err := h.Verify.Create(ctx, accountID, email, isResend)
	if err != nil {
		return err
	}
	msg := mailer.BuildVerificationEmail(mailer.VerificationEmailData{
		SiteName:  SiteName,
		Code:      code,
		ExpiresIn: fmt.Sprintf("%d minutes", int(h.Verify.Expiry().Minutes())),
	})
	msg.To = email
	return h.Mail.Send(msg)
}
