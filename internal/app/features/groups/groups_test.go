package groups_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	groupsfeature "github.com/scorepadhq/scorepad/internal/app/features/groups"
	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/cleanup"
	"github.com/scorepadhq/scorepad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type nopDeleter struct{}

func (nopDeleter) Delete(ctx context.Context, path string) error { return nil }

func setupRouter(t *testing.T, db *mongo.Database) (http.Handler, *authn.Manager) {
	t.Helper()
	tokens, err := authn.NewManager("groups-test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	svc := cleanup.New(db.Client(), db, nopDeleter{}, accountstore.New(db), zap.NewNop(), 5)
	h := groupsfeature.NewHandler(db, svc, zap.NewNop())
	return groupsfeature.Routes(h, tokens), tokens
}

func doJSON(t *testing.T, router http.Handler, tokens *authn.Manager, accountID primitive.ObjectID, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	token, err := tokens.IssueToken(accountID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	}
	return rec, parsed
}

func TestGroupLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	owner := f.CreateAccount(ctx, "owner@test.com")
	joiner := f.CreateAccount(ctx, "joiner@test.com")
	router, tokens := setupRouter(t, db)

	// Owner creates the group.
	rec, created := doJSON(t, router, tokens, owner.ID, http.MethodPost, "/", `{"title":"Skat Tuesdays"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group: status %d, body %s", rec.Code, rec.Body.String())
	}
	groupID, _ := created["id"].(string)
	inviteCode, _ := created["invite_code"].(string)
	if groupID == "" || inviteCode == "" {
		t.Fatalf("create group response missing id or invite_code: %v", created)
	}

	// Joiner files a request via the invite code.
	rec, jr := doJSON(t, router, tokens, joiner.ID, http.MethodPost, "/join",
		fmt.Sprintf(`{"invite_code":%q}`, inviteCode))
	if rec.Code != http.StatusCreated {
		t.Fatalf("join: status %d, body %s", rec.Code, rec.Body.String())
	}
	requestID, _ := jr["id"].(string)
	if requestID == "" {
		t.Fatalf("join response missing id: %v", jr)
	}

	// A duplicate request is refused.
	rec, _ = doJSON(t, router, tokens, joiner.ID, http.MethodPost, "/join",
		fmt.Sprintf(`{"invite_code":%q}`, inviteCode))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate join: status %d, want %d", rec.Code, http.StatusConflict)
	}

	// Only the owner may approve.
	approvePath := "/" + groupID + "/requests/" + requestID + "/approve"
	rec, _ = doJSON(t, router, tokens, joiner.ID, http.MethodPost, approvePath, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("outsider approve: status %d, want %d", rec.Code, http.StatusNotFound)
	}
	rec, _ = doJSON(t, router, tokens, owner.ID, http.MethodPost, approvePath, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("owner approve: status %d, body %s", rec.Code, rec.Body.String())
	}

	// The joiner now sees the group.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	token, _ := tokens.IssueToken(joiner.ID)
	req.Header.Set("Authorization", "Bearer "+token)
	recList := httptest.NewRecorder()
	router.ServeHTTP(recList, req)
	var list []map[string]any
	if err := json.Unmarshal(recList.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("joiner group list = %s (err %v), want one group", recList.Body.String(), err)
	}

	// Joiner leaves; the group survives with the owner.
	rec, _ = doJSON(t, router, tokens, joiner.ID, http.MethodPost, "/"+groupID+"/leave", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("joiner leave: status %d, body %s", rec.Code, rec.Body.String())
	}
	oid, _ := primitive.ObjectIDFromHex(groupID)
	var g struct {
		CreatedBy primitive.ObjectID   `bson:"created_by"`
		MemberIDs []primitive.ObjectID `bson:"member_ids"`
	}
	if err := db.Collection("groups").FindOne(ctx, bson.M{"_id": oid}).Decode(&g); err != nil {
		t.Fatalf("group vanished after non-final departure: %v", err)
	}
	if g.CreatedBy != owner.ID || len(g.MemberIDs) != 1 {
		t.Errorf("group after joiner leave: created_by=%s members=%v", g.CreatedBy.Hex(), g.MemberIDs)
	}

	// Last member out deletes the group.
	rec, _ = doJSON(t, router, tokens, owner.ID, http.MethodPost, "/"+groupID+"/leave", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("owner leave: status %d, body %s", rec.Code, rec.Body.String())
	}
	if n := f.Count(ctx, "groups"); n != 0 {
		t.Errorf("groups count = %d after last member left, want 0", n)
	}
}

func TestOutsiderCannotSeeGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	owner := f.CreateAccount(ctx, "owner@test.com")
	outsider := f.CreateAccount(ctx, "outsider@test.com")
	g := f.CreateGroup(ctx, "Private", owner.ID)
	router, tokens := setupRouter(t, db)

	rec, _ := doJSON(t, router, tokens, outsider.ID, http.MethodGet, "/"+g.ID.Hex(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("outsider get group: status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestPlayerRoster(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	owner := f.CreateAccount(ctx, "owner@test.com")
	g := f.CreateGroup(ctx, "Roster", owner.ID)
	router, tokens := setupRouter(t, db)

	rec, p := doJSON(t, router, tokens, owner.ID, http.MethodPost, "/"+g.ID.Hex()+"/players", `{"name":"Heinz"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add player: status %d, body %s", rec.Code, rec.Body.String())
	}
	playerID, _ := p["id"].(string)
	if playerID == "" {
		t.Fatalf("add player response missing id: %v", p)
	}

	rec, _ = doJSON(t, router, tokens, owner.ID, http.MethodDelete, "/"+g.ID.Hex()+"/players/"+playerID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete player: status %d, body %s", rec.Code, rec.Body.String())
	}
	if n := f.Count(ctx, "players"); n != 0 {
		t.Errorf("players count = %d after delete, want 0", n)
	}
}
