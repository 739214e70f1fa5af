// internal/history/store.go
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	comerrors "screening-workers/internal/common/errors"
	"screening-workers/internal/common/logger"
	"screening-workers/internal/models"
)

// Store persists screening decisions to PostgreSQL. Rows are append-only: a
// re-screen of the same applicant inserts a new row rather than updating an
// existing one, so the full decision history is preserved.
type Store struct {
	db  *sql.DB
	log logger.Logger
}

// Record is one persisted screening decision.
type Record struct {
	ScreeningID    string
	ApplicantID    string
	OverallScore   float64
	Recommendation models.Recommendation
	RiskLevel      models.RiskLevel
	CreatedAt      time.Time
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// SaveDecision inserts a screening result plus an audit log entry. The audit
// insert is non-critical: a failure there is logged but does not fail the save.
func (s *Store) SaveDecision(ctx context.Context, score *models.ScreeningScore) error {
	subScoresJSON, err := json.Marshal(score.SubScores)
	if err != nil {
		return fmt.Errorf("failed to marshal sub-scores: %w", err)
	}

	createdAt := time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO screenings (
			id, applicant_id, overall_score, sub_scores, fraud_risk_score,
			risk_level, recommendation, confidence, method, screened_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		score.ScreeningID,
		score.ApplicantID,
		score.OverallScore,
		subScoresJSON,
		score.FraudRiskScore,
		string(score.RiskLevel),
		string(score.Recommendation),
		score.Confidence,
		string(score.Method),
		score.ScreenedAt,
		createdAt,
	)
	if err != nil {
		// Typed so the worker's error handler fails the job with retries.
		return comerrors.NewDatabaseInsertError(err)
	}

	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"applicantId":    score.ApplicantID,
		"overallScore":   score.OverallScore,
		"recommendation": score.Recommendation,
		"riskLevel":      score.RiskLevel,
		"method":         score.Method,
	})
	if err != nil {
		s.log.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"screening_decision_recorded",
		"screening",
		score.ScreeningID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		s.log.Warn("audit log insert failed", map[string]interface{}{
			"error":       err,
			"screeningId": score.ScreeningID,
		})
	}

	return nil
}

// History returns the persisted decisions for an applicant, newest first.
func (s *Store) History(ctx context.Context, applicantID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, applicant_id, overall_score, risk_level, recommendation, created_at
		FROM screenings
		WHERE applicant_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		applicantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history query failed: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var riskLevel, recommendation string
		if err := rows.Scan(&rec.ScreeningID, &rec.ApplicantID, &rec.OverallScore, &riskLevel, &recommendation, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("history scan failed: %w", err)
		}
		rec.RiskLevel = models.RiskLevel(riskLevel)
		rec.Recommendation = models.Recommendation(recommendation)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows failed: %w", err)
	}

	return records, nil
}
