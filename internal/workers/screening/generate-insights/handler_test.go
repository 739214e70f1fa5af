// internal/workers/screening/generate-insights/handler_test.go
package generateinsights

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

func TestExecuteStrongProfileListsStrengths(t *testing.T) {
	h := newHandler()

	input := &Input{
		Applicant: models.ApplicantRecord{ApplicantID: "app-1"},
		Screening: models.ScreeningScore{
			ScreeningID: "scr-1",
			SubScores: models.SubScores{
				Credit:        90,
				Income:        85,
				RentalHistory: 82,
				Employment:    88,
				References:    81,
			},
			FraudRiskScore: 80,
			RiskLevel:      models.RiskLow,
			Recommendation: models.RecommendApprove,
		},
	}

	output, err := h.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Len(t, output.Insights.Strengths, 5)
	assert.Empty(t, output.Insights.Concerns)
	assert.Contains(t, output.Insights.Recommendations, "Proceed with standard lease terms")
	assert.InDelta(t, 0.8625, output.Insights.ProbabilityOfSuccess, 0.001)
}

func TestExecuteWeakProfileListsConcerns(t *testing.T) {
	h := newHandler()

	input := &Input{
		Screening: models.ScreeningScore{
			ScreeningID: "scr-2",
			SubScores: models.SubScores{
				Credit:        40,
				Income:        45,
				RentalHistory: 50,
				Employment:    55,
				References:    30,
			},
			FraudRiskScore: 40,
			RiskLevel:      models.RiskCritical,
			Recommendation: models.RecommendDecline,
		},
	}

	output, err := h.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Empty(t, output.Insights.Strengths)
	// credit, income, rental history, and fraud each raise a concern
	assert.Len(t, output.Insights.Concerns, 4)
	assert.NotEmpty(t, output.Insights.SimilarCases)
}

func TestExecuteMissingScreeningFails(t *testing.T) {
	h := newHandler()

	_, err := h.Execute(context.Background(), &Input{})

	assert.ErrorIs(t, err, ErrInsightsFailed)
}
