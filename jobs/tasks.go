// Package jobs holds the background worker: the nightly settlement refresh
// and stock recount tasks that re-derive stored labels and variances.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSettlementRefresh re-derives settlement labels for all purchase
	// orders so rows touched out of band converge on the policy.
	TaskSettlementRefresh = "purchasing:settlement_refresh"
	// TaskStockRecount re-derives stock count differences and badge
	// statuses from the stored initial/counted figures.
	TaskStockRecount = "stockopname:recount"
)

// SettlementRefreshPayload parameterizes a settlement refresh run.
type SettlementRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewSettlementRefreshTask constructs the Asynq task.
func NewSettlementRefreshTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(SettlementRefreshPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSettlementRefresh, data), nil
}

// SettlementRefresher is implemented by the purchasing service.
type SettlementRefresher interface {
	RefreshSettlements(ctx context.Context) (int, error)
}

// SettlementRefreshJob runs the refresh and logs the outcome.
type SettlementRefreshJob struct {
	refresher SettlementRefresher
	logger    *slog.Logger
}

// NewSettlementRefreshJob constructs the job.
func NewSettlementRefreshJob(refresher SettlementRefresher, logger *slog.Logger) *SettlementRefreshJob {
	return &SettlementRefreshJob{refresher: refresher, logger: logger}
}

// Handle processes TaskSettlementRefresh tasks.
func (j *SettlementRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SettlementRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	fixed, err := j.refresher.RefreshSettlements(ctx)
	if err != nil {
		j.logger.Error("settlement refresh failed", "error", err, "reason", payload.Reason)
		return err
	}
	j.logger.Info("settlement refresh done", "fixed", fixed, "reason", payload.Reason)
	return nil
}

// StockRecountPayload parameterizes a stock recount run.
type StockRecountPayload struct {
	Reason string `json:"reason"`
}

// NewStockRecountTask constructs the Asynq task.
func NewStockRecountTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(StockRecountPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockRecount, data), nil
}

// Recounter is implemented by the stock opname service.
type Recounter interface {
	RecountAll(ctx context.Context) (int, error)
}

// StockRecountJob runs the recount and logs the outcome.
type StockRecountJob struct {
	recounter Recounter
	logger    *slog.Logger
}

// NewStockRecountJob constructs the job.
func NewStockRecountJob(recounter Recounter, logger *slog.Logger) *StockRecountJob {
	return &StockRecountJob{recounter: recounter, logger: logger}
}

// Handle processes TaskStockRecount tasks.
func (j *StockRecountJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload StockRecountPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	fixed, err := j.recounter.RecountAll(ctx)
	if err != nil {
		j.logger.Error("stock recount failed", "error", err, "reason", payload.Reason)
		return err
	}
	j.logger.Info("stock recount done", "fixed", fixed, "reason", payload.Reason)
	return nil
}
