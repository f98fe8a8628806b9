package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var _ Checker = (*SessionChecker)(nil)

type Checker interface {
	// UserID resolves the token to the owning user. ErrSessionNotFound is
	// returned for unknown or expired tokens.
	UserID(ctx context.Context, token string) (string, error)
}

type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	NowFunc     func() time.Time
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
		NowFunc:     time.Now,
	}
}

func (c *SessionChecker) UserID(ctx context.Context, token string) (string, error) {
	val, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}

	session, err := decodeSession(token, val)
	if err != nil {
		return "", err
	}
	if c.NowFunc().Sub(session.CreatedAt) > c.ttl {
		return "", ErrSessionNotFound
	}
	return session.UserID, nil
}
