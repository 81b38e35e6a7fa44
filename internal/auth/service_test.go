package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maisonnoir/storefront/internal/users"
)

type fakeUsers struct {
	byID     map[string]*users.User
	byEmail  map[string]*users.User
	admins   map[string]bool
	adminErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:    map[string]*users.User{},
		byEmail: map[string]*users.User{},
		admins:  map[string]bool{},
	}
}

func (f *fakeUsers) add(u *users.User) {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*users.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) Insert(_ context.Context, u *users.User) error {
	f.add(u)
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *users.User) error {
	f.add(u)
	return nil
}

func (f *fakeUsers) SetPassword(_ context.Context, id, hash string) error {
	if u, ok := f.byID[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (f *fakeUsers) IsAdmin(_ context.Context, id string) (bool, error) {
	if f.adminErr != nil {
		return false, f.adminErr
	}
	return f.admins[id], nil
}

type fakeSessions struct {
	sessions map[string]string
	resets   map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]string{}, resets: map[string]string{}}
}

func (f *fakeSessions) Create(_ context.Context, token, userID string, _ time.Duration) error {
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessions) Lookup(_ context.Context, token string) (string, error) {
	id, ok := f.sessions[token]
	if !ok {
		return "", ErrNoSession
	}
	return id, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessions) CreateReset(_ context.Context, token, userID string) error {
	f.resets[token] = userID
	return nil
}

func (f *fakeSessions) ConsumeReset(_ context.Context, token string) (string, error) {
	id, ok := f.resets[token]
	if !ok {
		return "", ErrNoSession
	}
	delete(f.resets, token)
	return id, nil
}

func newTestService(store *fakeUsers, sessions *fakeSessions) *Service {
	return &Service{Users: store, Sessions: sessions, SessionTTL: time.Hour}
}

func TestIsAdminFailsClosed(t *testing.T) {
	store := newFakeUsers()
	store.add(&users.User{ID: "u1", Email: "a@example.com"})
	store.admins["u1"] = true
	svc := newTestService(store, newFakeSessions())
	ctx := context.Background()

	if !svc.IsAdmin(ctx, "u1") {
		t.Fatal("flagged account must read as admin")
	}

	// a lookup failure must never grant access
	store.adminErr = errors.New("connection refused")
	if svc.IsAdmin(ctx, "u1") {
		t.Fatal("lookup error must read as non-admin")
	}

	store.adminErr = nil
	if svc.IsAdmin(ctx, "unknown") {
		t.Fatal("unknown account must read as non-admin")
	}
}

func TestResolve(t *testing.T) {
	store := newFakeUsers()
	store.add(&users.User{ID: "u1", Email: "a@example.com"})
	sessions := newFakeSessions()
	sessions.sessions["tok1"] = "u1"
	svc := newTestService(store, sessions)
	ctx := context.Background()

	r := httptest.NewRequest("GET", "/auth/me", nil)
	if _, err := svc.Resolve(ctx, r); !errors.Is(err, ErrNoSession) {
		t.Fatalf("no token: got %v, want ErrNoSession", err)
	}

	r = httptest.NewRequest("GET", "/auth/me", nil)
	r.Header.Set(TokenHeader, "tok1")
	u, err := svc.Resolve(ctx, r)
	if err != nil || u == nil || u.ID != "u1" {
		t.Fatalf("resolve = %v, %v", u, err)
	}

	// a session pointing at a deleted user is no session
	sessions.sessions["tok2"] = "gone"
	r = httptest.NewRequest("GET", "/auth/me", nil)
	r.Header.Set(TokenHeader, "tok2")
	if _, err := svc.Resolve(ctx, r); !errors.Is(err, ErrNoSession) {
		t.Fatalf("dangling session: got %v, want ErrNoSession", err)
	}
}

func TestSignInRejectsBadPassword(t *testing.T) {
	store := newFakeUsers()
	sessions := newFakeSessions()
	svc := newTestService(store, sessions)
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "a@example.com", "correct horse", "", ""); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if _, _, err := svc.SignIn(ctx, "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}

	u, token, err := svc.SignIn(ctx, "a@example.com", "correct horse")
	if err != nil || u == nil || token == "" {
		t.Fatalf("sign in = %v, %q, %v", u, token, err)
	}

	if _, _, err := svc.SignUp(ctx, "a@example.com", "again", "", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: got %v, want ErrEmailTaken", err)
	}
}

func TestResetTokenIsSingleUse(t *testing.T) {
	store := newFakeUsers()
	svc := newTestService(store, newFakeSessions())
	ctx := context.Background()

	u, _, err := svc.SignUp(ctx, "a@example.com", "old password", "", "")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	oldHash := store.byID[u.ID].PasswordHash

	// unknown addresses yield no token and no error, so the endpoint
	// cannot be used to probe registrations
	token, err := svc.IssueResetToken(ctx, "nobody@example.com")
	if err != nil || token != "" {
		t.Fatalf("unknown email: %q, %v", token, err)
	}

	token, err = svc.IssueResetToken(ctx, "a@example.com")
	if err != nil || token == "" {
		t.Fatalf("issue: %q, %v", token, err)
	}
	if err := svc.ResetPassword(ctx, token, "new password"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if store.byID[u.ID].PasswordHash == oldHash {
		t.Fatal("password hash unchanged")
	}
	if err := svc.ResetPassword(ctx, token, "sneaky"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("reuse: got %v, want ErrNoSession", err)
	}
}
