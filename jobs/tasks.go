// Package jobs hosts the background task definitions and the Asynq worker.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskVatSummaryWarmup pre-computes VAT summaries for catalogued periods.
	TaskVatSummaryWarmup = "vat:summary_warmup"
)

// SummaryWarmupPayload scopes a warmup run. An empty Periods slice means every
// period in the catalogue.
type SummaryWarmupPayload struct {
	Periods []string `json:"periods,omitempty"`
}

// NewSummaryWarmupTask constructs an Asynq task for the warmup handler.
func NewSummaryWarmupTask(payload SummaryWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVatSummaryWarmup, data), nil
}
