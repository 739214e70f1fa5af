// internal/engine/fraud_test.go
package engine

import (
	"testing"

	"screening-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCountFraudIndicators(t *testing.T) {
	tests := []struct {
		name     string
		rec      models.ApplicantRecord
		expected int
	}{
		{
			name:     "clean record",
			rec:      models.ApplicantRecord{AnnualIncome: models.FloatPtr(60000)},
			expected: 0,
		},
		{
			name: "savings far above income",
			rec: models.ApplicantRecord{
				AnnualIncome:   models.FloatPtr(50000),
				ClaimedSavings: models.FloatPtr(150000),
			},
			expected: 1,
		},
		{
			name: "high income with brand new job",
			rec: models.ApplicantRecord{
				AnnualIncome:           models.FloatPtr(150000),
				EmploymentLengthMonths: models.FloatPtr(1),
			},
			expected: 1,
		},
		{
			name: "repeated digit phone",
			rec: models.ApplicantRecord{
				AnnualIncome: models.FloatPtr(60000),
				PhoneNumber:  "555-5555",
			},
			expected: 1,
		},
		{
			name: "low document quality",
			rec: models.ApplicantRecord{
				AnnualIncome:         models.FloatPtr(60000),
				DocumentQualityScore: models.FloatPtr(30),
			},
			expected: 1,
		},
		{
			name: "all indicators at once",
			rec: models.ApplicantRecord{
				AnnualIncome:           models.FloatPtr(150000),
				ClaimedSavings:         models.FloatPtr(500000),
				EmploymentLengthMonths: models.FloatPtr(1),
				PhoneNumber:            "111-1111",
				DocumentQualityScore:   models.FloatPtr(10),
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountFraudIndicators(tt.rec))
		})
	}
}

func TestCountFraudIndicatorsNormalPhoneNotFlagged(t *testing.T) {
	rec := models.ApplicantRecord{
		AnnualIncome: models.FloatPtr(60000),
		PhoneNumber:  "415-555-0134",
	}
	assert.Equal(t, 0, CountFraudIndicators(rec))
}

func TestHeuristicFraudRisk(t *testing.T) {
	assert.Equal(t, 0.0, HeuristicFraudRisk(0))
	assert.Equal(t, 40.0, HeuristicFraudRisk(2))
	assert.Equal(t, 100.0, HeuristicFraudRisk(5)) // capped
	assert.Equal(t, 100.0, HeuristicFraudRisk(10))
}

func TestBlendFraudRiskInvertsToSafety(t *testing.T) {
	// 0.3*0 + 0.7*0 risk: fully safe
	assert.Equal(t, 100.0, BlendFraudRisk(0, 0))

	// 0.3*100 + 0.7*100 risk: certain fraud
	assert.Equal(t, 0.0, BlendFraudRisk(100, 100))

	// 0.3*40 + 0.7*10 = 19 risk -> 81 safety
	assert.InDelta(t, 81.0, BlendFraudRisk(40, 10), 1e-9)
}
