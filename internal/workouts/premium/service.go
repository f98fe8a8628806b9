package premium

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workouts/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=premium_test

const (
	megabyte  = 1024 * 1024
	cacheSize = 10 * megabyte

	// StatusNone is reported for users without any subscription.
	StatusNone = "none"
)

type subscriptionsRepo interface {
	LatestByUser(ctx context.Context, userID string) (*Subscription, error)
}

type StatusOutput struct {
	Status     string     `json:"status"`
	IsPremium  bool       `json:"isPremium"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

type Service struct {
	repo     subscriptionsRepo
	cache    *freecache.Cache
	cacheTTL time.Duration

	NowFunc func() time.Time
}

// NewService caches each user's status for cacheTTL, a zero TTL disables
// the cache.
func NewService(repo subscriptionsRepo, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		cache:    freecache.NewCache(cacheSize),
		cacheTTL: cacheTTL,
		NowFunc:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CheckStatus(ctx context.Context, userID string) (_ *StatusOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.premium.checkstatus")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	key := cacheKey(userID)
	if cached, cacheErr := s.cache.Get(key); cacheErr == nil {
		var out StatusOutput
		if cacheErr = json.Unmarshal(cached, &out); cacheErr == nil {
			return &out, nil
		}
		log.Errorf("premium: unmarshal cached status for user %s: %s", userID, cacheErr)
	}

	sub, err := s.repo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get latest subscription: %w", err)
	}

	out := &StatusOutput{Status: StatusNone}
	if sub != nil {
		out.Status = string(sub.Status)
		out.IsPremium = sub.IsActive(s.NowFunc())
		expiry := sub.ExpiryDate
		out.ExpiryDate = &expiry
	}

	s.store(key, out, sub)
	return out, nil
}

// IsPremium resolves whether the user currently holds an active subscription.
func (s *Service) IsPremium(ctx context.Context, userID string) (bool, error) {
	status, err := s.CheckStatus(ctx, userID)
	if err != nil {
		return false, err
	}
	return status.IsPremium, nil
}

// store caches the status, never past the expiry of an active subscription.
func (s *Service) store(key []byte, out *StatusOutput, sub *Subscription) {
	ttl := s.cacheTTL
	if sub != nil && out.IsPremium {
		ttl = min(ttl, sub.ExpiryDate.Sub(s.NowFunc()))
	}
	seconds := int(ttl / time.Second)
	if seconds <= 0 {
		return
	}

	payload, err := json.Marshal(out)
	if err != nil {
		log.Errorf("premium: marshal status: %s", err)
		return
	}
	if err := s.cache.Set(key, payload, seconds); err != nil {
		log.Errorf("premium: cache status: %s", err)
	}
}

func cacheKey(userID string) []byte {
	return []byte("premium::" + userID)
}
