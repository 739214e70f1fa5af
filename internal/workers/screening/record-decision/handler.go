// internal/workers/screening/record-decision/handler.go
package recorddecision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"screening-workers/internal/audit"
	comerrors "screening-workers/internal/common/errors"
	"screening-workers/internal/common/logger"
	"screening-workers/internal/history"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-decision"
)

var (
	ErrDecisionRecordFailed = errors.New("DECISION_RECORD_FAILED")
)

type Handler struct {
	config  *Config
	store   *history.Store
	indexer *audit.Indexer
	errs    *comerrors.ErrorHandler
	logger  logger.Logger
}

// NewHandler wires the persistence collaborators. indexer may be nil when
// Elasticsearch indexing is disabled.
func NewHandler(config *Config, store *history.Store, indexer *audit.Indexer, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		store:   store,
		indexer: indexer,
		errs:    comerrors.NewErrorHandler(scoped),
		logger:  scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errs.HandleJobError(context.Background(), client, job, err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	// Storage errors come back typed, so the error handler can fail the job
	// with retries instead of throwing a terminal BPMN error.
	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errs.HandleJobError(ctx, client, job, err)
		return err
	}

	return h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Screening.ScreeningID == "" {
		return nil, fmt.Errorf("%w: screening result is required", ErrDecisionRecordFailed)
	}

	if err := h.store.SaveDecision(ctx, &input.Screening); err != nil {
		return nil, err
	}

	// Search indexing is secondary to the durable Postgres record: an index
	// failure is logged and reported in the output, not treated as a job
	// failure.
	indexed := false
	if h.indexer != nil {
		if err := h.indexer.IndexDecision(ctx, &input.Screening); err != nil {
			h.logger.Warn("decision indexing failed", map[string]interface{}{
				"screeningId": input.Screening.ScreeningID,
				"error":       err.Error(),
			})
		} else {
			indexed = true
		}
	}

	h.logger.Info("decision recorded", map[string]interface{}{
		"screeningId":    input.Screening.ScreeningID,
		"applicantId":    input.Screening.ApplicantID,
		"recommendation": input.Screening.Recommendation,
		"indexed":        indexed,
	})

	return &Output{
		ScreeningID: input.Screening.ScreeningID,
		Recorded:    true,
		Indexed:     indexed,
		RecordedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
		return err
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
