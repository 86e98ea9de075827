package payments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SubmissionGuard hands out one-time form tokens so a creation form is sent
// to the API at most once, even when the operator double-clicks or resubmits
// the page.
type SubmissionGuard interface {
	// Claim marks token as used. It reports false when it was already used.
	Claim(ctx context.Context, token string) (bool, error)
	// Release frees a claimed token after a submission that created nothing.
	Release(ctx context.Context, token string) error
}

// NewFormToken returns a fresh token for a rendered form.
func NewFormToken() string {
	return uuid.NewString()
}

// validToken rejects anything that is not a token we could have issued.
func validToken(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}

const tokenKeyPrefix = "multipay:form-token:"

type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Claim(ctx context.Context, token string) (bool, error) {
	if !validToken(token) {
		return false, nil
	}
	return g.client.SetNX(ctx, tokenKeyPrefix+token, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, token string) error {
	if !validToken(token) {
		return nil
	}
	return g.client.Del(ctx, tokenKeyPrefix+token).Err()
}

// MemoryGuard is the single-instance SubmissionGuard used when no Redis is configured.
type MemoryGuard struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	claims map[string]time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{
		ttl:    ttl,
		now:    time.Now,
		claims: make(map[string]time.Time),
	}
}

func (g *MemoryGuard) Claim(_ context.Context, token string) (bool, error) {
	if !validToken(token) {
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.evict(now)

	if _, used := g.claims[token]; used {
		return false, nil
	}
	g.claims[token] = now.Add(g.ttl)
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.claims, token)
	return nil
}

func (g *MemoryGuard) evict(now time.Time) {
	for token, expires := range g.claims {
		if !now.Before(expires) {
			delete(g.claims, token)
		}
	}
}
