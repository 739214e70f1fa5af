// internal/verification/background_test.go
package verification

import (
	"context"
	"testing"

	"screening-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanCheckResult() *models.BackgroundCheckResult {
	return &models.BackgroundCheckResult{
		CheckType:               "standard",
		IdentityConfidence:      0.95,
		EmploymentVerified:      true,
		AddressVerificationRate: 0.9,
	}
}

func TestScoreBackgroundCheckCleanRecord(t *testing.T) {
	result := cleanCheckResult()

	ScoreBackgroundCheck(result)

	assert.Equal(t, 20.0, result.RiskScore)
	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Equal(t, models.RecommendApprove, result.TenantRecommendation)
}

func TestScoreBackgroundCheckCriminalSeverities(t *testing.T) {
	result := cleanCheckResult()
	result.CriminalRecords = []models.CriminalRecord{
		{Offense: "burglary", Severity: "felony", Year: 2019},
		{Offense: "trespass", Severity: "misdemeanor", Year: 2021},
		{Offense: "jaywalking", Severity: "infraction", Year: 2023},
	}

	ScoreBackgroundCheck(result)

	// 20 base + 30 + 15 + 5
	assert.Equal(t, 70.0, result.RiskScore)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	assert.Equal(t, models.RecommendRequireCosigner, result.TenantRecommendation)
}

func TestScoreBackgroundCheckSexOffenderForcesDecline(t *testing.T) {
	result := cleanCheckResult()
	result.SexOffenderMatch = true

	ScoreBackgroundCheck(result)

	assert.Equal(t, 120.0, result.RiskScore)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	assert.Equal(t, models.RecommendDecline, result.TenantRecommendation)
}

func TestScoreBackgroundCheckEvictionsAndWeakIdentity(t *testing.T) {
	result := cleanCheckResult()
	result.Evictions = []models.EvictionRecord{{Year: 2022}, {Year: 2023}}
	result.IdentityConfidence = 0.7
	result.EmploymentVerified = false
	result.AddressVerificationRate = 0.5

	ScoreBackgroundCheck(result)

	// 20 base + 30 evictions + 10 identity + 15 employment + 10 address
	assert.Equal(t, 85.0, result.RiskScore)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	assert.Equal(t, models.RecommendDecline, result.TenantRecommendation)
}

func TestScoreBackgroundCheckVeryLowIdentity(t *testing.T) {
	result := cleanCheckResult()
	result.IdentityConfidence = 0.4

	ScoreBackgroundCheck(result)

	assert.Equal(t, 40.0, result.RiskScore)
	assert.Equal(t, models.RiskMedium, result.RiskLevel)
	assert.Equal(t, models.RecommendConditionalApprove, result.TenantRecommendation)
}

func TestScoreBackgroundCheckRiskCapped(t *testing.T) {
	result := cleanCheckResult()
	result.SexOffenderMatch = true
	for i := 0; i < 10; i++ {
		result.CriminalRecords = append(result.CriminalRecords, models.CriminalRecord{Severity: "felony"})
	}

	ScoreBackgroundCheck(result)

	assert.Equal(t, 200.0, result.RiskScore)
}

func TestStubCheckerMirrorsApplicantHistory(t *testing.T) {
	checker := NewStubBackgroundChecker()
	applicant := models.ApplicantRecord{
		ApplicantID:       "app-1",
		PhoneNumber:       "415-555-0134",
		EmploymentType:    "full_time",
		PreviousEvictions: 2,
	}

	result, err := checker.RunBackgroundCheck(context.Background(), applicant, "standard")

	require.NoError(t, err)
	assert.Equal(t, "standard", result.CheckType)
	assert.Len(t, result.Evictions, 2)
	assert.True(t, result.EmploymentVerified)
	assert.False(t, result.CompletedAt.IsZero())
}

func TestStubCheckerThinContactDataDegradesIdentity(t *testing.T) {
	checker := NewStubBackgroundChecker()
	applicant := models.ApplicantRecord{ApplicantID: "app-2", EmploymentType: "unemployed"}

	result, err := checker.RunBackgroundCheck(context.Background(), applicant, "standard")

	require.NoError(t, err)
	assert.Equal(t, 0.6, result.IdentityConfidence)
	assert.False(t, result.EmploymentVerified)
	// 20 base + 10 identity + 15 employment + 10 address
	assert.Equal(t, 55.0, result.RiskScore)
}

func TestStubCheckerHonorsCancelledContext(t *testing.T) {
	checker := NewStubBackgroundChecker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checker.RunBackgroundCheck(ctx, models.ApplicantRecord{}, "standard")
	assert.Error(t, err)
}
