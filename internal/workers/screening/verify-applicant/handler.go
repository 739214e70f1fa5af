// internal/workers/screening/verify-applicant/handler.go
package verifyapplicant

import (
	"context"
	"encoding/json"

	"screening-workers/internal/common/logger"
	"screening-workers/internal/common/metrics"
	"screening-workers/internal/verification"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "verify-applicant"
)

type Handler struct {
	config       *Config
	orchestrator *verification.Orchestrator
	logger       logger.Logger
}

func NewHandler(config *Config, orchestrator *verification.Orchestrator, log logger.Logger) *Handler {
	return &Handler{
		config:       config,
		orchestrator: orchestrator,
		logger:       log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", err.Error())
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	// Verification degrades instead of failing; collaborator outages surface
	// through the bundle's Unavailable list.
	output, _ := h.execute(ctx, &input)

	return h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	bundle := h.orchestrator.Verify(ctx, input.Applicant, input.Documents)

	for _, signal := range bundle.Unavailable {
		metrics.VerificationsUnavailable.WithLabelValues(signal).Inc()
	}

	output := &Output{
		Verification: bundle,
		Completeness: verification.Completeness(bundle),
	}

	if input.Screening != nil {
		adjusted := verification.ApplyOverrides(*input.Screening, bundle)
		output.Screening = &adjusted
	}

	h.logger.Info("verification completed", map[string]interface{}{
		"applicantId":  input.Applicant.ApplicantID,
		"completeness": output.Completeness,
		"unavailable":  bundle.Unavailable,
	})

	return output, nil
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
