// internal/history/store_test.go
package history

import (
	"context"
	"testing"
	"time"

	"screening-workers/internal/common/logger"
	"screening-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScore() *models.ScreeningScore {
	return &models.ScreeningScore{
		ScreeningID:  "scr-123",
		ApplicantID:  "app-456",
		OverallScore: 78.5,
		SubScores: models.SubScores{
			Credit:        85,
			Income:        80,
			RentalHistory: 75,
			Employment:    70,
			References:    65,
		},
		FraudRiskScore: 90,
		RiskLevel:      models.RiskLow,
		Recommendation: models.RecommendApprove,
		Confidence:     0.82,
		Method:         models.MethodModel,
		ScreenedAt:     time.Now().UTC(),
	}
}

func TestSaveDecisionInsertsScreeningAndAudit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO screenings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewStore(db, logger.NewNoOpLogger())
	err = store.SaveDecision(context.Background(), sampleScore())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDecisionFailsOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO screenings").
		WillReturnError(assert.AnError)

	store := NewStore(db, logger.NewNoOpLogger())
	err = store.SaveDecision(context.Background(), sampleScore())

	assert.Error(t, err)
}

func TestSaveDecisionToleratesAuditFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO screenings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnError(assert.AnError)

	store := NewStore(db, logger.NewNoOpLogger())
	err = store.SaveDecision(context.Background(), sampleScore())

	assert.NoError(t, err)
}

func TestHistoryReturnsNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "applicant_id", "overall_score", "risk_level", "recommendation", "created_at"}).
		AddRow("scr-2", "app-456", 81.0, "LOW", "APPROVE", now).
		AddRow("scr-1", "app-456", 62.0, "HIGH", "REQUIRE_COSIGNER", now.Add(-24*time.Hour))

	mock.ExpectQuery("SELECT id, applicant_id, overall_score").
		WithArgs("app-456", 20).
		WillReturnRows(rows)

	store := NewStore(db, logger.NewNoOpLogger())
	records, err := store.History(context.Background(), "app-456", 0)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "scr-2", records[0].ScreeningID)
	assert.Equal(t, models.RiskLow, records[0].RiskLevel)
	assert.Equal(t, models.RecommendRequireCosigner, records[1].Recommendation)
}
