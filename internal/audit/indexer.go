// internal/audit/indexer.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	comerrors "screening-workers/internal/common/errors"
	"screening-workers/internal/common/logger"
	"screening-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Indexer writes completed screening decisions into Elasticsearch so that
// compliance reviews can search decisions by applicant, recommendation or
// risk level.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	log    logger.Logger
}

// decisionDocument is the flattened shape stored in the index.
type decisionDocument struct {
	ScreeningID    string    `json:"screening_id"`
	ApplicantID    string    `json:"applicant_id"`
	OverallScore   float64   `json:"overall_score"`
	FraudRiskScore float64   `json:"fraud_risk_score"`
	RiskLevel      string    `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
	Method         string    `json:"method"`
	ScreenedAt     time.Time `json:"screened_at"`
	IndexedAt      time.Time `json:"indexed_at"`
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		log:    log,
	}
}

// IndexDecision writes one screening decision document, keyed by screening ID
// so that re-delivery of the same job is idempotent.
func (i *Indexer) IndexDecision(ctx context.Context, score *models.ScreeningScore) error {
	doc := decisionDocument{
		ScreeningID:    score.ScreeningID,
		ApplicantID:    score.ApplicantID,
		OverallScore:   score.OverallScore,
		FraudRiskScore: score.FraudRiskScore,
		RiskLevel:      string(score.RiskLevel),
		Recommendation: string(score.Recommendation),
		Confidence:     score.Confidence,
		Method:         string(score.Method),
		ScreenedAt:     score.ScreenedAt,
		IndexedAt:      time.Now().UTC(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal decision document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: score.ScreeningID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		return comerrors.NewIndexingError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return comerrors.NewIndexingError(fmt.Errorf("index request error: %s", res.Status()))
	}

	i.log.Info("decision indexed", map[string]interface{}{
		"screeningId": score.ScreeningID,
		"index":       i.index,
	})

	return nil
}
