package shared

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSubmitInFlight indicates another submission for the same document
// identity has not finished yet.
var ErrSubmitInFlight = errors.New("submission already in flight")

// SubmitLock serialises document submissions: at most one in-flight submit
// per document identity. The lock is advisory and TTL-bounded, so an
// abandoned submission (user navigated away, process died) frees itself.
type SubmitLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmitLock constructs a SubmitLock. ttl caps how long a crashed
// submission can hold the lock.
func NewSubmitLock(client *redis.Client, ttl time.Duration) *SubmitLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SubmitLock{client: client, ttl: ttl}
}

// Acquire takes the lock for one document and returns a release token.
// Returns ErrSubmitInFlight when another submission holds it.
func (l *SubmitLock) Acquire(ctx context.Context, scope string, id string) (string, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, lockKey(scope, id), token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("submit lock: acquire: %w", err)
	}
	if !ok {
		return "", ErrSubmitInFlight
	}
	return token, nil
}

// Release frees the lock if token still owns it. A lock that expired or
// was re-acquired by a later submission is left alone.
func (l *SubmitLock) Release(ctx context.Context, scope string, id string, token string) error {
	key := lockKey(scope, id)
	current, err := l.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("submit lock: release: %w", err)
	}
	if current != token {
		return nil
	}
	return l.client.Del(ctx, key).Err()
}

func lockKey(scope, id string) string {
	return fmt.Sprintf("submit:%s:%s:lock", scope, id)
}
