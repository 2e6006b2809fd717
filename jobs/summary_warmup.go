package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/vatlens/vatlens/internal/jobs"
	"github.com/vatlens/vatlens/internal/periods"
	"github.com/vatlens/vatlens/internal/vat"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// SummaryWarmupJob recomputes and re-caches VAT summaries so period switches
// on the API stay fast.
type SummaryWarmupJob struct {
	Vat     *vat.Service
	Periods *periods.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewSummaryWarmupJob wires dependencies for the warmup handler.
func NewSummaryWarmupJob(vatSvc *vat.Service, periodsSvc *periods.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *SummaryWarmupJob {
	return &SummaryWarmupJob{
		Vat:     vatSvc,
		Periods: periodsSvc,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes summary warmup tasks.
func (j *SummaryWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Vat == nil {
		return errors.New("summary warmup: handler not configured")
	}
	var payload SummaryWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskVatSummaryWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting summary warmup")

	keys := payload.Periods
	if len(keys) == 0 {
		var err error
		keys, err = j.catalogueKeys(ctx)
		if err != nil {
			resultErr = err
			logger.Error("load period catalogue", slog.Any("error", err))
			return resultErr
		}
	}
	if len(keys) == 0 {
		logger.Info("no periods to warm")
		return resultErr
	}

	// Drop stale summaries first so the warmup recomputes from fresh data.
	if err := j.Vat.InvalidateSummaries(ctx); err != nil {
		resultErr = err
		logger.Error("invalidate summaries", slog.Any("error", err))
		return resultErr
	}

	started := j.now()
	warmed := 0
	for _, key := range keys {
		if err := j.warmPeriod(ctx, key); err != nil {
			resultErr = err
			logger.Error("warm period", slog.String("period", key), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("completed summary warmup", slog.Int("periods", warmed), slog.Duration("duration", time.Since(started)))
	return resultErr
}

func (j *SummaryWarmupJob) warmPeriod(ctx context.Context, period string) error {
	periodCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	_, err := j.Vat.Summary(periodCtx, period)
	return err
}

func (j *SummaryWarmupJob) catalogueKeys(ctx context.Context) ([]string, error) {
	if j.Periods == nil {
		return nil, errors.New("summary warmup: period catalogue not configured")
	}
	list, err := j.Periods.List(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(list))
	for _, p := range list {
		keys = append(keys, p.Value)
	}
	return keys, nil
}

func (j *SummaryWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskVatSummaryWarmup))
	}
	return slog.Default().With(slog.String("job", TaskVatSummaryWarmup))
}

func (j *SummaryWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *SummaryWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
