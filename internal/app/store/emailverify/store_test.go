package emailverify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/scorepadhq/scorepad/internal/app/store/emailverify"
	"github.com/scorepadhq/scorepad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndVerifyCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := emailverify.New(db, 0)
	accountID := primitive.NewObjectID()

	code, err := s.Create(ctx, accountID, "verify@test.com", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(code) != emailverify.CodeLength {
		t.Errorf("code %q has length %d, want %d", code, len(code), emailverify.CodeLength)
	}

	if err := s.VerifyCode(ctx, accountID, code); err != nil {
		t.Fatalf("VerifyCode with correct code: %v", err)
	}

	// Codes are single use.
	if err := s.VerifyCode(ctx, accountID, code); !errors.Is(err, emailverify.ErrNotFound) {
		t.Errorf("reusing a consumed code: got %v, want ErrNotFound", err)
	}
}

func TestVerifyCodeWrongCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := emailverify.New(db, 0)
	accountID := primitive.NewObjectID()

	code, err := s.Create(ctx, accountID, "wrong@test.com", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := s.VerifyCode(ctx, accountID, wrong); !errors.Is(err, emailverify.ErrInvalidCode) {
		t.Errorf("wrong code: got %v, want ErrInvalidCode", err)
	}
	// The right code still works after one miss.
	if err := s.VerifyCode(ctx, accountID, code); err != nil {
		t.Errorf("correct code after one miss: %v", err)
	}
}

func TestVerifyCodeAttemptLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := emailverify.New(db, 0)
	accountID := primitive.NewObjectID()

	code, err := s.Create(ctx, accountID, "limit@test.com", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < emailverify.MaxVerifyAttempts; i++ {
		if err := s.VerifyCode(ctx, accountID, wrong); !errors.Is(err, emailverify.ErrInvalidCode) {
			t.Fatalf("attempt %d: got %v, want ErrInvalidCode", i+1, err)
		}
	}
	// Even the correct code is refused once the budget is spent.
	if err := s.VerifyCode(ctx, accountID, code); !errors.Is(err, emailverify.ErrTooManyAttempts) {
		t.Errorf("after attempt limit: got %v, want ErrTooManyAttempts", err)
	}
}

func TestResendRateLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := emailverify.New(db, 0)
	accountID := primitive.NewObjectID()

	if _, err := s.Create(ctx, accountID, "resend@test.com", false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for i := 0; i < emailverify.MaxResends; i++ {
		if _, err := s.Create(ctx, accountID, "resend@test.com", true); err != nil {
			t.Fatalf("resend %d: %v", i+1, err)
		}
	}
	if _, err := s.Create(ctx, accountID, "resend@test.com", true); !errors.Is(err, emailverify.ErrTooManyResends) {
		t.Errorf("resend past limit: got %v, want ErrTooManyResends", err)
	}
}

func TestExpiredCodeNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := emailverify.New(db, time.Millisecond)
	accountID := primitive.NewObjectID()

	code, err := s.Create(ctx, accountID, "expired@test.com", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if err := s.VerifyCode(ctx, accountID, code); !errors.Is(err, emailverify.ErrNotFound) {
		t.Errorf("expired code: got %v, want ErrNotFound", err)
	}
}
