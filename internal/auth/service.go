package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maisonnoir/storefront/internal/users"
)

const (
	SessionCookie = "session"
	TokenHeader   = "X-Api-Token"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service struct {
	Users      users.Store
	Sessions   SessionStore
	SessionTTL time.Duration
}

func (s *Service) SignUp(ctx context.Context, email, password, firstName, lastName string) (*users.User, string, error) {
	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &users.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		IsAdmin:      false,
		PasswordHash: string(hash),
	}
	if err := s.Users.Insert(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.startSession(ctx, u.ID)
	return u, token, err
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*users.User, string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.startSession(ctx, u.ID)
	return u, token, err
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, token)
}

func (s *Service) startSession(ctx context.Context, userID string) (string, error) {
	token := NewToken()
	if err := s.Sessions.Create(ctx, token, userID, s.SessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// TokenFromRequest prefers the session cookie and falls back to the API
// token header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get(TokenHeader)
}

// Resolve maps a request to its user, or ErrNoSession.
func (s *Service) Resolve(ctx context.Context, r *http.Request) (*users.User, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, ErrNoSession
	}
	userID, err := s.Sessions.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNoSession
	}
	return u, nil
}

// IsAdmin fails closed: any error while checking reads as non-admin.
func (s *Service) IsAdmin(ctx context.Context, userID string) bool {
	admin, err := s.Users.IsAdmin(ctx, userID)
	if err != nil {
		return false
	}
	return admin
}

// IssueResetToken hands the single-use token back to the caller; mail
// dispatch is the caller's concern.
func (s *Service) IssueResetToken(ctx context.Context, email string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		// do not reveal whether the address exists
		return "", nil
	}
	token := NewToken()
	if err := s.Sessions.CreateReset(ctx, token, u.ID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.Sessions.ConsumeReset(ctx, token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Users.SetPassword(ctx, userID, string(hash))
}
