package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maisonnoir/storefront/internal/redisx"
)

var ErrNoSession = errors.New("no session")

// SessionStore maps opaque tokens to user ids. Reset tokens share the
// store but live under a different key family and are single-use.
type SessionStore interface {
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error

	CreateReset(ctx context.Context, token, userID string) error
	ConsumeReset(ctx context.Context, token string) (string, error)
}

type RedisSessions struct{ RDB *redis.Client }

var _ SessionStore = (*RedisSessions)(nil)

func (s *RedisSessions) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.RDB.Set(ctx, fmt.Sprintf(redisx.KeySession, token), userID, ttl).Err()
}

func (s *RedisSessions) Lookup(ctx context.Context, token string) (string, error) {
	id, err := s.RDB.Get(ctx, fmt.Sprintf(redisx.KeySession, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	return id, err
}

func (s *RedisSessions) Delete(ctx context.Context, token string) error {
	return s.RDB.Del(ctx, fmt.Sprintf(redisx.KeySession, token)).Err()
}

func (s *RedisSessions) CreateReset(ctx context.Context, token, userID string) error {
	return s.RDB.Set(ctx, fmt.Sprintf(redisx.KeyResetToken, token), userID, redisx.TTLResetToken).Err()
}

func (s *RedisSessions) ConsumeReset(ctx context.Context, token string) (string, error) {
	key := fmt.Sprintf(redisx.KeyResetToken, token)
	id, err := s.RDB.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	return id, err
}

func NewToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
