// internal/workers/screening/validate-applicant-data/handler.go
package validateapplicantdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"screening-workers/internal/common/logger"
	"screening-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-applicant-data"
)

var (
	ErrApplicantValidationFailed = errors.New("APPLICANT_VALIDATION_FAILED")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "APPLICANT_VALIDATION_FAILED", err.Error())
		return err
	}

	return h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Applicant == nil {
		return nil, fmt.Errorf("%w: applicant is required", ErrApplicantValidationFailed)
	}

	var validationErrors []ValidationError

	schemaLoader := gojsonschema.NewGoLoader(applicantSchema)
	documentLoader := gojsonschema.NewGoLoader(input.Applicant)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("%w: schema validation error: %v", ErrApplicantValidationFailed, err)
	}

	for _, desc := range result.Errors() {
		validationErrors = append(validationErrors, ValidationError{
			Field:   desc.Field(),
			Code:    strings.ToUpper(desc.Type()),
			Message: desc.Description(),
		})
	}

	validationErrors = append(validationErrors, h.checkConsistency(input.Applicant)...)

	isValid := len(validationErrors) == 0
	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":    isValid,
		"errorCount": len(validationErrors),
	})

	if !isValid {
		return &Output{
			IsValid:          false,
			ValidationErrors: validationErrors,
		}, nil
	}

	record, err := toRecord(input.Applicant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrApplicantValidationFailed, err)
	}

	return &Output{
		IsValid:          true,
		Applicant:        record,
		ValidationErrors: []ValidationError{},
	}, nil
}

// checkConsistency applies cross-field rules that a per-field schema cannot
// express.
func (h *Handler) checkConsistency(data map[string]interface{}) []ValidationError {
	var errs []ValidationError

	income, hasIncome := numberField(data, "annual_income")
	rent, hasRent := numberField(data, "monthly_rent")

	if hasRent && rent > 0 && hasIncome && income > 0 && income < rent {
		errs = append(errs, ValidationError{
			Field:   "annual_income",
			Code:    "INCONSISTENT_VALUE",
			Message: "Annual income is lower than a single month of rent",
		})
	}

	if history, ok := numberField(data, "rental_history_length"); ok {
		if evictions, ok := numberField(data, "previous_evictions"); ok && history == 0 && evictions > 0 {
			errs = append(errs, ValidationError{
				Field:   "previous_evictions",
				Code:    "INCONSISTENT_VALUE",
				Message: "Evictions reported without any rental history",
			})
		}
	}

	return errs
}

func numberField(data map[string]interface{}, key string) (float64, bool) {
	raw, ok := data[key]
	if !ok {
		return 0, false
	}
	v, ok := raw.(float64)
	return v, ok
}

// toRecord converts the validated map into the typed applicant record via a
// JSON round trip so that field coercion matches the engine's own decoding.
func toRecord(data map[string]interface{}) (*models.ApplicantRecord, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal applicant: %v", err)
	}
	var record models.ApplicantRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode applicant: %v", err)
	}
	return &record, nil
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
