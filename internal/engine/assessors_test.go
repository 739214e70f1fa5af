// internal/engine/assessors_test.go
package engine

import (
	"testing"

	"screening-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAssessCreditWeightedComponents(t *testing.T) {
	rec := models.ApplicantRecord{
		CreditScore:         models.FloatPtr(720),
		DebtToIncomeRatio:   models.FloatPtr(0.25),
		PaymentHistoryScore: models.FloatPtr(80),
	}

	// 0.6*85 + 0.25*85 + 0.15*80
	assert.InDelta(t, 84.25, AssessCredit(rec), 1e-9)
}

func TestAssessCreditBands(t *testing.T) {
	tests := []struct {
		name        string
		creditScore float64
		expected    float64
	}{
		{"excellent", 760, 100},
		{"band boundary 750", 750, 100},
		{"good", 710, 85},
		{"fair", 660, 70},
		{"marginal", 610, 55},
		{"poor", 550, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.ApplicantRecord{
				CreditScore:         models.FloatPtr(tt.creditScore),
				DebtToIncomeRatio:   models.FloatPtr(0.2),
				PaymentHistoryScore: models.FloatPtr(100),
			}
			// debt 100, payment 100; only the score band varies
			assert.InDelta(t, 0.6*tt.expected+0.25*100+0.15*100, AssessCredit(rec), 1e-9)
		})
	}
}

func TestAssessCreditMissingFieldsStayInRange(t *testing.T) {
	score := AssessCredit(models.ApplicantRecord{})
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestAssessIncomeStrongEarner(t *testing.T) {
	rec := models.ApplicantRecord{
		AnnualIncome:           models.FloatPtr(120000),
		MonthlyRent:            models.FloatPtr(1500),
		EmploymentType:         "full_time",
		EmploymentLengthMonths: models.FloatPtr(30),
	}

	// ratio 6.67 -> 100, stability >=24 -> 100, full_time multiplier 1.0
	assert.InDelta(t, 100.0, AssessIncome(rec), 1e-9)
}

func TestAssessIncomeEmploymentTypeMultiplier(t *testing.T) {
	base := models.ApplicantRecord{
		AnnualIncome:           models.FloatPtr(120000),
		MonthlyRent:            models.FloatPtr(1500),
		EmploymentLengthMonths: models.FloatPtr(30),
	}

	tests := []struct {
		employmentType string
		expected       float64
	}{
		{"full_time", 100},
		{"part_time", 80},
		{"contract", 70},
		{"self_employed", 60},
		{"unemployed", 10},
		{"freelance", 70}, // unknown type gets the default multiplier
	}

	for _, tt := range tests {
		t.Run(tt.employmentType, func(t *testing.T) {
			rec := base
			rec.EmploymentType = tt.employmentType
			assert.InDelta(t, tt.expected, AssessIncome(rec), 1e-9)
		})
	}
}

func TestAssessIncomeNeutralWithoutRent(t *testing.T) {
	rec := models.ApplicantRecord{AnnualIncome: models.FloatPtr(50000)}
	assert.Equal(t, 50.0, AssessIncome(rec))
}

func TestAssessRentalHistoryPenalties(t *testing.T) {
	rec := models.ApplicantRecord{
		RentalHistoryLength:      models.FloatPtr(48),
		LandlordReferenceQuality: "excellent",
		PreviousEvictions:        1,
		LatePaymentCount:         2,
	}

	// 0.4*100 + 0.6*100 - 25 - 10
	assert.InDelta(t, 65.0, AssessRentalHistory(rec), 1e-9)
}

func TestAssessRentalHistoryPenaltyCaps(t *testing.T) {
	rec := models.ApplicantRecord{
		RentalHistoryLength:      models.FloatPtr(48),
		LandlordReferenceQuality: "excellent",
		PreviousEvictions:        4,  // caps at 50
		LatePaymentCount:         10, // caps at 30
	}

	assert.InDelta(t, 20.0, AssessRentalHistory(rec), 1e-9)
}

func TestAssessEmploymentBonuses(t *testing.T) {
	rec := models.ApplicantRecord{
		EmploymentType:         "full_time",
		EmploymentLengthMonths: models.FloatPtr(40),
		Industry:               "government",
	}

	// 90 base + 10 tenure + 5 industry, clamped at 100
	assert.Equal(t, 100.0, AssessEmployment(rec))

	rec.Industry = "retail"
	assert.Equal(t, 100.0, AssessEmployment(rec)) // 90+10 hits the cap anyway

	rec.EmploymentType = "contract"
	assert.Equal(t, 65.0, AssessEmployment(rec)) // 55 base + 10 tenure
}

func TestAssessReferencesTrustedTypes(t *testing.T) {
	rec := models.ApplicantRecord{
		NumberOfReferences: models.FloatPtr(3),
		ReferenceQuality:   "good",
		ReferenceTypes:     []string{"landlord", "employer", "friend"},
	}

	// 0.4*100 + 0.6*85 + 2*5 = 101, clamped
	assert.InDelta(t, 100.0, AssessReferences(rec), 1e-9)
}

func TestAssessReferencesNoReferences(t *testing.T) {
	// quantity 20, quality "none" -> 10
	rec := models.ApplicantRecord{ReferenceQuality: "none"}
	assert.InDelta(t, 0.4*20+0.6*10, AssessReferences(rec), 1e-9)
}

func TestAssessorsAlwaysInRange(t *testing.T) {
	records := []models.ApplicantRecord{
		{},
		{CreditScore: models.FloatPtr(-100), DebtToIncomeRatio: models.FloatPtr(5)},
		{AnnualIncome: models.FloatPtr(1e12), MonthlyRent: models.FloatPtr(1)},
		{PreviousEvictions: 100, LatePaymentCount: 100},
	}

	for _, rec := range records {
		for _, score := range []float64{
			AssessCredit(rec),
			AssessIncome(rec),
			AssessRentalHistory(rec),
			AssessEmployment(rec),
			AssessReferences(rec),
		} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}
