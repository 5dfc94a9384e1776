package shared

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLock(t *testing.T) (*SubmitLock, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSubmitLock(client, time.Minute), mr
}

func TestSubmitLockBlocksSecondSubmit(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	token, err := lock.Acquire(ctx, "purchase_order", "42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = lock.Acquire(ctx, "purchase_order", "42")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	// A different document is unaffected.
	_, err = lock.Acquire(ctx, "purchase_order", "43")
	assert.NoError(t, err)
}

func TestSubmitLockReleaseAllowsResubmit(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	token, err := lock.Acquire(ctx, "stock_opname", "7")
	require.NoError(t, err)
	require.NoError(t, lock.Release(ctx, "stock_opname", "7", token))

	_, err = lock.Acquire(ctx, "stock_opname", "7")
	assert.NoError(t, err)
}

func TestSubmitLockStaleTokenDoesNotReleaseNewOwner(t *testing.T) {
	lock, mr := newTestLock(t)
	ctx := context.Background()

	stale, err := lock.Acquire(ctx, "installment", "9")
	require.NoError(t, err)

	// First holder expires, a second submission takes over.
	mr.FastForward(2 * time.Minute)
	fresh, err := lock.Acquire(ctx, "installment", "9")
	require.NoError(t, err)

	require.NoError(t, lock.Release(ctx, "installment", "9", stale))
	_, err = lock.Acquire(ctx, "installment", "9")
	assert.ErrorIs(t, err, ErrSubmitInFlight, "fresh lock must survive a stale release")

	require.NoError(t, lock.Release(ctx, "installment", "9", fresh))
}
