package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workouts/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "workouts-session||"
	tokensSetKey     = "workouts-sessions"
	tokenLength      = 35
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

// Service issues and revokes API session tokens. Every token maps to the id
// of the user it was issued for.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
	NowFunc        func() time.Time
}

func NewService(ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
		NowFunc:        time.Now,
	}
}

func (s *Service) NewSession(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, errors.New("user id is empty")
	}
	token, err := s.RandStringFunc(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	session := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: s.NowFunc(),
	}
	if err := s.redisClient.Set(ctx, sessionKeyPrefix+token, encodeSession(session), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	// add token to list of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return nil, fmt.Errorf("track session: %w", err)
	}

	return session, nil
}

// Revoke removes the session. It reports false when the token was unknown.
func (s *Service) Revoke(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	deleted, err := s.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	// remove token from the list of sessions
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, fmt.Errorf("untrack session: %w", err)
	}

	return deleted > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	tokens, err := s.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}
	if len(tokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start", len(tokens))
	now := s.NowFunc()
	var toRemove []string
	for _, token := range tokens {
		val, err := s.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			// expired by redis already, only the set entry is left
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		session, err := decodeSession(token, val)
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}
		if now.Sub(session.CreatedAt) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if _, err := s.Revoke(ctx, token); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
		}
	}
	log.Debugf("auth service, scan and clean removed %d sessions", len(toRemove))
}

func encodeSession(session *Session) string {
	return session.UserID + "|" + strconv.FormatInt(session.CreatedAt.Unix(), 10)
}

func decodeSession(token, val string) (*Session, error) {
	userID, createdAtStr, found := strings.Cut(val, "|")
	if !found || userID == "" {
		return nil, fmt.Errorf("malformed session value %q", val)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse session creation time: %w", err)
	}
	return &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}
