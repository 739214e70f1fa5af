// internal/workers/screening/validate-applicant-data/handler_test.go
package validateapplicantdata

import (
	"context"
	"testing"

	"screening-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler() *Handler {
	return NewHandler(LoadConfig(), logger.NewNoOpLogger())
}

func validApplicant() map[string]interface{} {
	return map[string]interface{}{
		"applicant_id":          "app-1",
		"credit_score":          720.0,
		"annual_income":         60000.0,
		"monthly_rent":          1500.0,
		"employment_type":       "full_time",
		"previous_evictions":    0,
		"late_payment_count":    1,
		"rental_history_length": 4.0,
	}
}

func TestExecuteValidApplicant(t *testing.T) {
	h := newHandler()

	output, err := h.Execute(context.Background(), &Input{Applicant: validApplicant()})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Empty(t, output.ValidationErrors)
	require.NotNil(t, output.Applicant)
	assert.Equal(t, "app-1", output.Applicant.ApplicantID)
	require.NotNil(t, output.Applicant.CreditScore)
	assert.Equal(t, 720.0, *output.Applicant.CreditScore)
}

func TestExecuteOutOfRangeCreditScore(t *testing.T) {
	h := newHandler()

	applicant := validApplicant()
	applicant["credit_score"] = 9000.0

	output, err := h.Execute(context.Background(), &Input{Applicant: applicant})

	require.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.NotEmpty(t, output.ValidationErrors)
	assert.Nil(t, output.Applicant)
}

func TestExecuteWrongTypeRejected(t *testing.T) {
	h := newHandler()

	applicant := validApplicant()
	applicant["annual_income"] = "sixty thousand"

	output, err := h.Execute(context.Background(), &Input{Applicant: applicant})

	require.NoError(t, err)
	assert.False(t, output.IsValid)
}

func TestExecuteIncomeBelowRentFlagged(t *testing.T) {
	h := newHandler()

	applicant := validApplicant()
	applicant["annual_income"] = 1000.0
	applicant["monthly_rent"] = 1500.0

	output, err := h.Execute(context.Background(), &Input{Applicant: applicant})

	require.NoError(t, err)
	assert.False(t, output.IsValid)

	found := false
	for _, verr := range output.ValidationErrors {
		if verr.Code == "INCONSISTENT_VALUE" && verr.Field == "annual_income" {
			found = true
		}
	}
	assert.True(t, found, "expected income consistency error")
}

func TestExecuteEvictionsWithoutHistoryFlagged(t *testing.T) {
	h := newHandler()

	applicant := validApplicant()
	applicant["rental_history_length"] = 0.0
	applicant["previous_evictions"] = 2.0

	output, err := h.Execute(context.Background(), &Input{Applicant: applicant})

	require.NoError(t, err)
	assert.False(t, output.IsValid)
}

func TestExecuteMissingApplicantFails(t *testing.T) {
	h := newHandler()

	_, err := h.Execute(context.Background(), &Input{})

	assert.ErrorIs(t, err, ErrApplicantValidationFailed)
}

func TestExecuteMinimalApplicantAccepted(t *testing.T) {
	h := newHandler()

	output, err := h.Execute(context.Background(), &Input{
		Applicant: map[string]interface{}{"applicant_id": "app-2"},
	})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Nil(t, output.Applicant.CreditScore)
}
