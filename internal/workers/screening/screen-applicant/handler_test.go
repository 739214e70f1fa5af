// internal/workers/screening/screen-applicant/handler_test.go
package screenapplicant

import (
	"context"
	"testing"

	"screening-workers/internal/common/logger"
	"screening-workers/internal/engine"
	"screening-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler() *Handler {
	eng := engine.NewEngine(logger.NewNoOpLogger())
	return NewHandler(LoadConfig(), eng, logger.NewNoOpLogger())
}

func strongApplicant() models.ApplicantRecord {
	return models.ApplicantRecord{
		ApplicantID:              "app-strong",
		CreditScore:              models.FloatPtr(780),
		DebtToIncomeRatio:        models.FloatPtr(0.2),
		PaymentHistoryScore:      models.FloatPtr(95),
		AnnualIncome:             models.FloatPtr(90000),
		MonthlyRent:              models.FloatPtr(1500),
		EmploymentType:           "full_time",
		EmploymentLengthMonths:   models.FloatPtr(48),
		Industry:                 "healthcare",
		RentalHistoryLength:      models.FloatPtr(6),
		LandlordReferenceQuality: "excellent",
		NumberOfReferences:       models.FloatPtr(4),
		ReferenceQuality:         "excellent",
		ReferenceTypes:           []string{"landlord", "employer"},
	}
}

func TestExecuteScreensApplicant(t *testing.T) {
	h := newHandler()

	output, err := h.Execute(context.Background(), &Input{Applicant: strongApplicant()})

	require.NoError(t, err)
	score := output.Screening
	assert.NotEmpty(t, score.ScreeningID)
	assert.Equal(t, "app-strong", score.ApplicantID)
	assert.Equal(t, models.MethodRuleBased, score.Method)
	assert.GreaterOrEqual(t, score.OverallScore, 75.0)
	assert.Equal(t, models.RiskLow, score.RiskLevel)
	assert.Equal(t, models.RecommendApprove, score.Recommendation)
}

func TestExecuteUntrainedUsesRuleBasedDefaults(t *testing.T) {
	h := newHandler()

	output, err := h.Execute(context.Background(), &Input{Applicant: strongApplicant()})

	require.NoError(t, err)
	assert.Equal(t, 80.0, output.Screening.FraudRiskScore)
	assert.Equal(t, 0.7, output.Screening.Confidence)
}

func TestExecuteEmptyApplicantStillScores(t *testing.T) {
	h := newHandler()

	output, err := h.Execute(context.Background(), &Input{Applicant: models.ApplicantRecord{ApplicantID: "app-empty"}})

	require.NoError(t, err)
	score := output.Screening
	assert.GreaterOrEqual(t, score.OverallScore, 0.0)
	assert.LessOrEqual(t, score.OverallScore, 100.0)
	assert.NotEmpty(t, score.Recommendation)
}
