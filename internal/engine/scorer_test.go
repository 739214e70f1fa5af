// internal/engine/scorer_test.go
package engine

import (
	"testing"

	"screening-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCompositeScoreIsFixedLinearCombination(t *testing.T) {
	sub := models.SubScores{
		Credit:        80,
		Income:        70,
		RentalHistory: 60,
		Employment:    90,
		References:    50,
	}

	// 0.25*80 + 0.20*70 + 0.20*60 + 0.15*90 + 0.10*50 + 0.10*100
	assert.InDelta(t, 74.5, CompositeScore(sub, 100), 1e-9)

	// Raising one sub-score by 10 moves the composite by exactly its weight.
	sub.Credit += 10
	assert.InDelta(t, 77.0, CompositeScore(sub, 100), 1e-9)
}

func TestDecideFraudOverrideWins(t *testing.T) {
	// A near-perfect composite cannot survive a fraud score below 30.
	level, rec := Decide(90, 25, 95)
	assert.Equal(t, models.RiskCritical, level)
	assert.Equal(t, models.RecommendDecline, rec)
}

func TestDecideThresholds(t *testing.T) {
	tests := []struct {
		name           string
		overall        float64
		fraud          float64
		creditSub      float64
		level          models.RiskLevel
		recommendation models.Recommendation
	}{
		{"approve at boundary", 75, 80, 50, models.RiskLow, models.RecommendApprove},
		{"conditional with strong credit", 70, 80, 75, models.RiskMedium, models.RecommendConditionalApprove},
		{"cosigner with weak credit", 70, 80, 60, models.RiskMedium, models.RecommendRequireCosigner},
		{"cosigner band", 55, 80, 90, models.RiskHigh, models.RecommendRequireCosigner},
		{"decline below band", 49.9, 80, 90, models.RiskCritical, models.RecommendDecline},
		{"fraud boundary not triggered", 90, 30, 90, models.RiskLow, models.RecommendApprove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, rec := Decide(tt.overall, tt.fraud, tt.creditSub)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.recommendation, rec)
		})
	}
}

func TestEstimateConfidenceBlendsCompleteness(t *testing.T) {
	full := models.ApplicantRecord{
		CreditScore:            models.FloatPtr(700),
		AnnualIncome:           models.FloatPtr(60000),
		EmploymentLengthMonths: models.FloatPtr(24),
		RentalHistoryLength:    models.FloatPtr(36),
		NumberOfReferences:     models.FloatPtr(3),
	}

	// 0.4*1.0 + 0.6*0.8
	assert.InDelta(t, 0.88, EstimateConfidence(full, 0.8), 1e-9)

	// Empty record: 0.4*0 + 0.6*0.8
	assert.InDelta(t, 0.48, EstimateConfidence(models.ApplicantRecord{}, 0.8), 1e-9)
}

func TestEstimateConfidenceClampedToFloor(t *testing.T) {
	assert.Equal(t, 0.1, EstimateConfidence(models.ApplicantRecord{}, 0))
}
