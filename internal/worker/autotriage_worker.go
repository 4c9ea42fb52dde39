package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// AutotriageWorker runs automatic batch assignment on a timer. The engine
// itself stays synchronous; this is just the external trigger a deployment
// may enable.
type AutotriageWorker struct {
	assignments *service.AssignmentService
	metrics     *observability.Metrics
	logger      *zap.Logger
	interval    time.Duration
}

// NewAutotriageWorker constructs the worker. A non-positive interval disables it.
func NewAutotriageWorker(assignments *service.AssignmentService, metrics *observability.Metrics, logger *zap.Logger, interval time.Duration) *AutotriageWorker {
	return &AutotriageWorker{
		assignments: assignments,
		metrics:     metrics,
		logger:      logger,
		interval:    interval,
	}
}

// Start launches the loop until ctx is cancelled. No-op when disabled.
func (w *AutotriageWorker) Start(ctx context.Context) {
	if w == nil || w.interval <= 0 {
		return
	}
	go w.run(ctx)
}

func (w *AutotriageWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("autotriage worker started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("autotriage worker stopped")
			return
		case <-ticker.C:
			result, err := w.assignments.AssignAutomatic(ctx, nil)
			if err != nil {
				w.logger.Error("autotriage run failed", zap.Error(err))
				continue
			}
			w.metrics.RecordAutotriage(result.TotalProcessed, result.TotalSucceeded)
			if result.TotalProcessed > 0 {
				w.logger.Info("autotriage run",
					zap.Int("processed", result.TotalProcessed),
					zap.Int("succeeded", result.TotalSucceeded))
			}
		}
	}
}
