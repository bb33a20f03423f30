package session

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "session.db"), filepath.Join(dir, "session.key"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestSaveLoginRoundTripIsSealed(t *testing.T) {
	s := tempStore(t)
	if tok, err := s.Token(); err != nil || tok != "" {
		t.Fatalf("fresh store token = %q, %v", tok, err)
	}

	if err := s.SaveLogin("secret-token", 17); err != nil {
		t.Fatalf("save: %v", err)
	}
	tok, err := s.Token()
	if err != nil || tok != "secret-token" {
		t.Fatalf("token = %q, %v", tok, err)
	}
	id, err := s.UserID()
	if err != nil || id != 17 {
		t.Fatalf("user id = %d, %v", id, err)
	}

	var raw []byte
	if err := s.db.QueryRow(`SELECT value FROM credentials WHERE name='token'`).Scan(&raw); err != nil {
		t.Fatalf("raw read: %v", err)
	}
	if bytes.Contains(raw, []byte("secret-token")) {
		t.Fatalf("token stored in plain text")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if tok, _ := s.Token(); tok != "" {
		t.Fatalf("token survived logout")
	}
}

func TestReopenKeepsKey(t *testing.T) {
	dir := t.TempDir()
	dbPath, keyPath := filepath.Join(dir, "s.db"), filepath.Join(dir, "s.key")
	s, err := Open(dbPath, keyPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveLogin("tok", 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(dbPath, keyPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if tok, err := s.Token(); err != nil || tok != "tok" {
		t.Fatalf("token after reopen = %q, %v", tok, err)
	}
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil || version != len(migrations) {
		t.Fatalf("schema version = %d, %v; want %d", version, err, len(migrations))
	}
}

func TestJournal(t *testing.T) {
	s := tempStore(t)
	for i, outcome := range []string{OutcomeSuccess, OutcomeFailed, OutcomePartial} {
		if err := s.Record(Entry{Resource: "donation", ResourceID: 5, Action: "status", Outcome: outcome, Detail: string(rune('a' + i))}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := s.Record(Entry{Resource: "request", ResourceID: 2, Action: "delete", Outcome: OutcomeSuccess}); err != nil {
		t.Fatalf("record: %v", err)
	}

	recent, err := s.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Resource != "request" || recent[1].Outcome != OutcomePartial {
		t.Fatalf("recent = %+v", recent)
	}

	history, err := s.ForResource("donation", 5)
	if err != nil {
		t.Fatalf("for resource: %v", err)
	}
	if len(history) != 3 || history[0].Outcome != OutcomeSuccess {
		t.Fatalf("history = %+v", history)
	}
	if history[0].At.IsZero() {
		t.Fatalf("entry time not stored")
	}
}

type fakeUsers struct {
	user  models.User
	err   error
	calls int
}

func (f *fakeUsers) Me(ctx context.Context) (*api.Response[models.User], error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.Response[models.User]{Data: f.user}, nil
}

func TestCurrentUserFromClaims(t *testing.T) {
	s := tempStore(t)
	auth := NewAuthorizer(s, &fakeUsers{})
	if auth.CurrentUser() != nil {
		t.Fatalf("expected no session before login")
	}

	tok := signedToken(t, jwt.MapClaims{
		"sub":      "zeynep",
		"userId":   8,
		"username": "zeynep",
		"roles":    []string{"ADMIN"},
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	if err := s.SaveLogin(tok, 8); err != nil {
		t.Fatalf("save: %v", err)
	}
	cur := auth.CurrentUser()
	if cur == nil || cur.UserID != 8 || cur.Username != "zeynep" || cur.Role != "ADMIN" {
		t.Fatalf("session = %+v", cur)
	}

	expired := signedToken(t, jwt.MapClaims{"sub": "3", "exp": time.Now().Add(-time.Hour).Unix()})
	if err := s.SaveLogin(expired, 3); err != nil {
		t.Fatalf("save: %v", err)
	}
	if auth.CurrentUser() != nil {
		t.Fatalf("expired token must not yield a session")
	}

	if err := s.SaveLogin("opaque-token", 12); err != nil {
		t.Fatalf("save: %v", err)
	}
	if cur := auth.CurrentUser(); cur == nil || cur.UserID != 12 {
		t.Fatalf("opaque token session = %+v", cur)
	}
}

func TestRequireRole(t *testing.T) {
	s := tempStore(t)
	users := &fakeUsers{user: models.User{ID: 1, Role: "ADMIN"}}
	auth := NewAuthorizer(s, users)

	// Not logged in: no network call at all.
	err := auth.RequireRole(context.Background(), models.RoleAdmin)
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Reason != ReasonNotLoggedIn {
		t.Fatalf("expected not-logged-in, got %v", err)
	}
	if users.calls != 0 {
		t.Fatalf("backend asked while logged out")
	}

	if err := s.SaveLogin("opaque", 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := auth.RequireRole(context.Background(), models.RoleAdmin); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if ok, err := auth.IsAdmin(context.Background()); !ok || err != nil {
		t.Fatalf("IsAdmin = %v, %v", ok, err)
	}

	users.user.Role = "USER"
	if ok, err := auth.IsAdmin(context.Background()); ok || err != nil {
		t.Fatalf("non-admin: IsAdmin = %v, %v", ok, err)
	}

	users.err = &api.Error{StatusCode: 401}
	if ok, err := auth.IsAdmin(context.Background()); ok || err != nil {
		t.Fatalf("401: IsAdmin = %v, %v", ok, err)
	}

	users.err = errors.New("connection refused")
	ok, err := auth.IsAdmin(context.Background())
	if ok || err == nil {
		t.Fatalf("broken check must fail closed with an error, got %v, %v", ok, err)
	}
	if !errors.As(err, &authErr) || authErr.Denied() {
		t.Fatalf("expected check-failed, got %v", err)
	}
}
