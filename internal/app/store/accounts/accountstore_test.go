package accountstore_test

import (
	"errors"
	"fmt"
	"testing"

	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"github.com/scorepadhq/scorepad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := accountstore.New(db)
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	if _, err := s.Create(ctx, models.Account{Email: "dup@test.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := s.Create(ctx, models.Account{Email: "dup@test.com", PasswordHash: "y"})
	if !errors.Is(err, accountstore.ErrDuplicateEmail) {
		t.Errorf("duplicate Create error = %v, want ErrDuplicateEmail", err)
	}
}

func TestDeleteReportsMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := accountstore.New(db)
	a, err := s.Create(ctx, models.Account{Email: "gone@test.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, accountstore.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestListPagePagesThroughAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := accountstore.New(db)
	const total = 5
	created := make(map[primitive.ObjectID]bool, total)
	for i := 0; i < total; i++ {
		a, err := s.Create(ctx, models.Account{
			Email:        fmt.Sprintf("page%d@test.com", i),
			PasswordHash: "x",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		created[a.ID] = true
	}

	seen := make(map[primitive.ObjectID]bool)
	token := ""
	pages := 0
	for {
		page, err := s.ListPage(ctx, token, 2)
		if err != nil {
			t.Fatalf("ListPage: %v", err)
		}
		pages++
		for _, a := range page.Accounts {
			if seen[a.ID] {
				t.Errorf("account %s returned twice", a.ID.Hex())
			}
			seen[a.ID] = true
		}
		if page.NextToken == "" {
			break
		}
		token = page.NextToken
		if pages > total {
			t.Fatal("paging did not terminate")
		}
	}

	if len(seen) != total {
		t.Errorf("paged over %d accounts, want %d", len(seen), total)
	}
	for id := range created {
		if !seen[id] {
			t.Errorf("account %s never appeared in any page", id.Hex())
		}
	}
}
