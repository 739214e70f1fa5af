// internal/verification/orchestrator_test.go
package verification

import (
	"context"
	"fmt"
	"testing"

	"screening-workers/internal/common/logger"
	"screening-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBureau struct{}

func (failingBureau) GetCreditReport(ctx context.Context, applicant models.ApplicantRecord, bureau string) (*models.CreditReport, error) {
	return nil, fmt.Errorf("bureau unreachable")
}

type failingChecker struct{}

func (failingChecker) RunBackgroundCheck(ctx context.Context, applicant models.ApplicantRecord, checkType string) (*models.BackgroundCheckResult, error) {
	return nil, fmt.Errorf("vendor outage")
}

func newOrchestrator(bureau CreditBureau, background BackgroundChecker) *Orchestrator {
	return NewOrchestrator(bureau, background, NewDocumentService(), OrchestratorConfig{}, logger.NewNoOpLogger())
}

func TestVerifyAllSignalsPresent(t *testing.T) {
	o := newOrchestrator(NewStubCreditBureau(), NewStubBackgroundChecker())
	applicant := models.ApplicantRecord{ApplicantID: "app-1", PhoneNumber: "415-555-0134", EmploymentType: "full_time"}
	docs := []models.Document{cleanDocument("doc-1")}

	bundle := o.Verify(context.Background(), applicant, docs)

	require.NotNil(t, bundle.Credit)
	require.NotNil(t, bundle.Background)
	require.NotNil(t, bundle.Documents)
	assert.Empty(t, bundle.Unavailable)
	assert.Equal(t, 1.0, Completeness(bundle))
}

func TestVerifyDegradesOnBureauFailure(t *testing.T) {
	o := newOrchestrator(failingBureau{}, NewStubBackgroundChecker())
	applicant := models.ApplicantRecord{ApplicantID: "app-1", EmploymentType: "full_time"}

	bundle := o.Verify(context.Background(), applicant, nil)

	assert.Nil(t, bundle.Credit)
	require.NotNil(t, bundle.Background)
	require.NotNil(t, bundle.Documents)
	assert.Contains(t, bundle.Unavailable, "credit_report")
	assert.InDelta(t, 2.0/3.0, Completeness(bundle), 1e-9)
}

func TestVerifyAllCollaboratorsDown(t *testing.T) {
	o := newOrchestrator(failingBureau{}, failingChecker{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // document service fails on a done context too

	bundle := o.Verify(ctx, models.ApplicantRecord{ApplicantID: "app-1"}, []models.Document{cleanDocument("doc-1")})

	assert.Nil(t, bundle.Credit)
	assert.Nil(t, bundle.Background)
	assert.Nil(t, bundle.Documents)
	assert.ElementsMatch(t,
		[]string{"credit_report", "background_check", "document_verification"},
		bundle.Unavailable)
	assert.Equal(t, 0.0, Completeness(bundle))
}

func TestApplyOverridesSexOffenderMatch(t *testing.T) {
	score := models.ScreeningScore{
		OverallScore:   92,
		RiskLevel:      models.RiskLow,
		Recommendation: models.RecommendApprove,
	}
	bundle := &models.VerificationBundle{
		Background: &models.BackgroundCheckResult{SexOffenderMatch: true},
	}

	overridden := ApplyOverrides(score, bundle)

	assert.Equal(t, models.RecommendDecline, overridden.Recommendation)
	assert.Equal(t, models.RiskCritical, overridden.RiskLevel)
	// the composite score itself is untouched
	assert.Equal(t, 92.0, overridden.OverallScore)
}

func TestApplyOverridesAdvisoryFindingsLeaveScoreAlone(t *testing.T) {
	score := models.ScreeningScore{
		RiskLevel:      models.RiskLow,
		Recommendation: models.RecommendApprove,
	}
	bundle := &models.VerificationBundle{
		Background: &models.BackgroundCheckResult{
			CriminalRecords:      []models.CriminalRecord{{Severity: "felony"}},
			TenantRecommendation: models.RecommendDecline,
		},
	}

	overridden := ApplyOverrides(score, bundle)

	assert.Equal(t, models.RecommendApprove, overridden.Recommendation)
	assert.Equal(t, models.RiskLow, overridden.RiskLevel)
}

func TestApplyOverridesNilBundle(t *testing.T) {
	score := models.ScreeningScore{Recommendation: models.RecommendApprove}
	assert.Equal(t, score, ApplyOverrides(score, nil))
}

func TestCompletenessNilBundle(t *testing.T) {
	assert.Equal(t, 0.0, Completeness(nil))
}
