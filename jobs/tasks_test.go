package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRefresher struct {
	fixed int
	err   error
	calls int
}

func (s *stubRefresher) RefreshSettlements(ctx context.Context) (int, error) {
	s.calls++
	return s.fixed, s.err
}

func TestSettlementRefreshJobHandle(t *testing.T) {
	refresher := &stubRefresher{fixed: 3}
	job := NewSettlementRefreshJob(refresher, slog.Default())

	task, err := NewSettlementRefreshTask("nightly")
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 1, refresher.calls)
}

func TestSettlementRefreshJobPropagatesError(t *testing.T) {
	refresher := &stubRefresher{err: errors.New("db down")}
	job := NewSettlementRefreshJob(refresher, slog.Default())

	task, err := NewSettlementRefreshTask("nightly")
	require.NoError(t, err)

	assert.Error(t, job.Handle(context.Background(), task))
}

type stubRecounter struct {
	fixed int
	err   error
	calls int
}

func (s *stubRecounter) RecountAll(ctx context.Context) (int, error) {
	s.calls++
	return s.fixed, s.err
}

func TestStockRecountJobHandle(t *testing.T) {
	recounter := &stubRecounter{fixed: 2}
	job := NewStockRecountJob(recounter, slog.Default())

	task, err := NewStockRecountTask("nightly")
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 1, recounter.calls)
}

func TestStockRecountJobPropagatesError(t *testing.T) {
	recounter := &stubRecounter{err: errors.New("db down")}
	job := NewStockRecountJob(recounter, slog.Default())

	task, err := NewStockRecountTask("nightly")
	require.NoError(t, err)

	assert.Error(t, job.Handle(context.Background(), task))
}

func TestStockRecountJobSkipsBadPayload(t *testing.T) {
	recounter := &stubRecounter{}
	job := NewStockRecountJob(recounter, slog.Default())

	err := job.Handle(context.Background(), asynq.NewTask(TaskStockRecount, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Zero(t, recounter.calls)
}

func TestSettlementRefreshJobSkipsBadPayload(t *testing.T) {
	refresher := &stubRefresher{}
	job := NewSettlementRefreshJob(refresher, slog.Default())

	err := job.Handle(context.Background(), asynq.NewTask(TaskSettlementRefresh, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Zero(t, refresher.calls)
}
