package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/solarishq/solaris/internal/config"
)

const keyAssistantUser = "assistant:chat:user:%s"

// AssistantLimiter throttles outbound assistant calls per user. It prefers
// the redis bucket; without redis it degrades to an in-process bucket so a
// single node still gets protection.
type AssistantLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int

	mu    sync.Mutex
	local map[string]*localBucket
}

type localBucket struct {
	tokens float64
	last   time.Time
}

func NewAssistantLimiter(cfg config.Config, client *redis.Client) *AssistantLimiter {
	rate := cfg.Assistant.RatePerMinute / 60
	if rate <= 0 {
		rate = 10.0 / 60
	}
	burst := cfg.Assistant.Burst
	if burst <= 0 {
		burst = 5
	}
	return &AssistantLimiter{
		bucket: NewTokenBucket(client),
		rate:   rate,
		burst:  burst,
		local:  make(map[string]*localBucket),
	}
}

// Allow reports whether the user may issue another assistant call now.
func (l *AssistantLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "anonymous"
	}

	if l.bucket != nil {
		res, err := l.bucket.Allow(ctx, fmt.Sprintf(keyAssistantUser, userID), l.rate, l.burst)
		if err != nil {
			// Redis trouble should not take the chat feature down.
			return l.allowLocal(userID), nil
		}
		return res.Allowed, nil
	}
	return l.allowLocal(userID), nil
}

func (l *AssistantLimiter) allowLocal(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.local[userID]
	if !ok {
		b = &localBucket{tokens: float64(l.burst), last: now}
		l.local[userID] = b
	}

	b.tokens += now.Sub(b.last).Seconds() * l.rate
	if b.tokens > float64(l.burst) {
		b.tokens = float64(l.burst)
	}
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}
