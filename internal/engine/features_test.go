// internal/engine/features_test.go
package engine

import (
	"testing"

	"screening-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingBatch() []TrainingExample {
	return []TrainingExample{
		{
			Record: models.ApplicantRecord{
				CreditScore:            models.FloatPtr(780),
				AnnualIncome:           models.FloatPtr(95000),
				MonthlyRent:            models.FloatPtr(1500),
				EmploymentType:         "full_time",
				EmploymentLengthMonths: models.FloatPtr(48),
				RentalHistoryLength:    models.FloatPtr(60),
				NumberOfReferences:     models.FloatPtr(3),
				ReferenceQuality:       "excellent",
				DebtToIncomeRatio:      models.FloatPtr(0.15),
			},
			ApprovalOutcome: true,
			RiskScore:       15,
		},
		{
			Record: models.ApplicantRecord{
				CreditScore:            models.FloatPtr(540),
				AnnualIncome:           models.FloatPtr(28000),
				MonthlyRent:            models.FloatPtr(1400),
				EmploymentType:         "unemployed",
				EmploymentLengthMonths: models.FloatPtr(0),
				RentalHistoryLength:    models.FloatPtr(4),
				NumberOfReferences:     models.FloatPtr(0),
				ReferenceQuality:       "poor",
				DebtToIncomeRatio:      models.FloatPtr(0.6),
				PreviousEvictions:      2,
			},
			RiskScore:     85,
			FraudDetected: true,
		},
		{
			Record: models.ApplicantRecord{
				CreditScore:            models.FloatPtr(700),
				AnnualIncome:           models.FloatPtr(60000),
				MonthlyRent:            models.FloatPtr(1600),
				EmploymentType:         "contract",
				EmploymentLengthMonths: models.FloatPtr(18),
				RentalHistoryLength:    models.FloatPtr(24),
				NumberOfReferences:     models.FloatPtr(2),
				ReferenceQuality:       "good",
				DebtToIncomeRatio:      models.FloatPtr(0.3),
			},
			ApprovalOutcome: true,
			RiskScore:       40,
		},
		{
			Record: models.ApplicantRecord{
				CreditScore:            models.FloatPtr(610),
				AnnualIncome:           models.FloatPtr(40000),
				MonthlyRent:            models.FloatPtr(1800),
				EmploymentType:         "part_time",
				EmploymentLengthMonths: models.FloatPtr(8),
				RentalHistoryLength:    models.FloatPtr(10),
				NumberOfReferences:     models.FloatPtr(1),
				ReferenceQuality:       "fair",
				DebtToIncomeRatio:      models.FloatPtr(0.45),
				LatePaymentCount:       4,
			},
			RiskScore:     70,
			FraudDetected: true,
		},
	}
}

func TestNormalizerFitTransform(t *testing.T) {
	n := &Normalizer{}
	require.NoError(t, n.Fit(trainingBatch()))
	assert.True(t, n.Fitted)

	fv, err := n.Transform(trainingBatch()[0].Record)
	require.NoError(t, err)
	assert.False(t, fv.Empty())
	assert.Len(t, fv.Values, len(numericFeatureNames)+len(categoricalFeatureNames))
	assert.Equal(t, "credit_score", fv.Names[0])
}

func TestNormalizerImputesMissingValues(t *testing.T) {
	n := &Normalizer{}
	require.NoError(t, n.Fit(trainingBatch()))

	// An empty record transforms fine: every missing field imputes to the
	// training median and scales to a finite value.
	fv, err := n.Transform(models.ApplicantRecord{})
	require.NoError(t, err)
	assert.Len(t, fv.Values, len(numericFeatureNames)+len(categoricalFeatureNames))
}

func TestNormalizerUnknownLabelEncodesToMinusOne(t *testing.T) {
	n := &Normalizer{}
	require.NoError(t, n.Fit(trainingBatch()))

	fv, err := n.Transform(models.ApplicantRecord{EmploymentType: "astronaut"})
	require.NoError(t, err)

	// Categorical codes come last: employment_type then reference_quality.
	employmentCode := fv.Values[len(numericFeatureNames)]
	assert.Equal(t, -1.0, employmentCode)
}

func TestNormalizerKnownLabelsAreDeterministic(t *testing.T) {
	n1, n2 := &Normalizer{}, &Normalizer{}
	require.NoError(t, n1.Fit(trainingBatch()))
	require.NoError(t, n2.Fit(trainingBatch()))

	rec := trainingBatch()[2].Record
	fv1, err := n1.Transform(rec)
	require.NoError(t, err)
	fv2, err := n2.Transform(rec)
	require.NoError(t, err)

	assert.Equal(t, fv1.Values, fv2.Values)
}

func TestNormalizerTransformRequiresFit(t *testing.T) {
	n := &Normalizer{}
	_, err := n.Transform(models.ApplicantRecord{})
	assert.Error(t, err)
}

func TestNormalizerFitEmptyBatchFails(t *testing.T) {
	n := &Normalizer{}
	assert.Error(t, n.Fit(nil))
}
