// Package errors provides standardized error handling for the screening
// workers and their BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeApplicantValidationFailed ErrorCode = "APPLICANT_VALIDATION_FAILED"
	ErrCodeScreeningFailed           ErrorCode = "SCREENING_FAILED"
	ErrCodeInsightsFailed            ErrorCode = "INSIGHTS_FAILED"

	ErrCodeTrainingFailed         ErrorCode = "TRAINING_FAILED"
	ErrCodeModelPersistenceFailed ErrorCode = "MODEL_PERSISTENCE_FAILED"

	ErrCodeCreditBureauUnavailable      ErrorCode = "CREDIT_BUREAU_UNAVAILABLE"
	ErrCodeBackgroundCheckFailed        ErrorCode = "BACKGROUND_CHECK_FAILED"
	ErrCodeDocumentVerificationFailed   ErrorCode = "DOCUMENT_VERIFICATION_FAILED"
	ErrCodeVerificationTimeout          ErrorCode = "VERIFICATION_TIMEOUT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeIndexingFailed                ErrorCode = "INDEXING_FAILED"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT"
	ErrCodeNotFound        ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeBusinessRule    ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeAuthentication  ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ConvertToBPMNError maps a StandardError to its workflow-facing form.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewApplicantValidationError creates a non-retryable validation error.
func NewApplicantValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicantValidationFailed,
		Message:   "Applicant payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScreeningFailedError wraps an unexpected engine failure.
func NewScreeningFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScreeningFailed,
		Message:   "Screening engine failure",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTrainingFailedError creates a non-retryable training error; the prior
// model set is left in place.
func NewTrainingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTrainingFailed,
		Message:   "Model training failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelPersistenceError creates a retryable save/load error.
func NewModelPersistenceError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelPersistenceFailed,
		Message:   fmt.Sprintf("Model artifact %s failed", op),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertError creates a retryable insert error.
func NewDatabaseInsertError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexingError creates a retryable Elasticsearch indexing error.
func NewIndexingError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexingFailed,
		Message:   "Decision indexing failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError creates a retryable external service error.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalService,
		Message:   fmt.Sprintf("External service %s failed", service),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError creates a retryable timeout error.
func NewTimeoutError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("Operation %s timed out", operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a non-retryable not-found error.
func NewResourceNotFoundError(resource, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("Resource %s not found", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBusinessRuleError creates a non-retryable business rule violation.
func NewBusinessRuleError(details, rule string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBusinessRule,
		Message:   rule,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError creates a non-retryable authentication error.
func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthentication,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Retry / Category Policy
// ==========================

// GetRetryCount returns the retry budget for a code; zero means throw a
// BPMN error instead of failing with retries.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed, ErrCodeDatabaseInsertFailed,
		ErrCodeElasticsearchConnectionFailed, ErrCodeIndexingFailed,
		ErrCodeExternalService, ErrCodeTimeout, ErrCodeQueryTimeout,
		ErrCodeVerificationTimeout, ErrCodeModelPersistenceFailed,
		ErrCodeScreeningFailed:
		return 3
	default:
		return 0
	}
}

// GetErrorCategory buckets codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeApplicantValidationFailed, ErrCodeBusinessRule:
		return "validation"
	case ErrCodeTrainingFailed, ErrCodeModelPersistenceFailed:
		return "model"
	case ErrCodeCreditBureauUnavailable, ErrCodeBackgroundCheckFailed,
		ErrCodeDocumentVerificationFailed, ErrCodeVerificationTimeout,
		ErrCodeExternalService:
		return "verification"
	case ErrCodeDatabaseConnectionFailed, ErrCodeDatabaseInsertFailed,
		ErrCodeQueryTimeout, ErrCodeElasticsearchConnectionFailed,
		ErrCodeIndexingFailed:
		return "storage"
	case ErrCodeTimeout:
		return "timeout"
	default:
		return "internal"
	}
}
