// internal/verification/documents.go
package verification

import (
	"context"
	"strings"

	"screening-workers/internal/models"
)

// DocumentVerifier analyzes document authenticity and cross-document
// consistency.
type DocumentVerifier interface {
	VerifyDocument(ctx context.Context, doc models.Document) (*models.DocumentVerificationResult, error)
	VerifyDocumentSet(ctx context.Context, docs []models.Document) (*models.SetVerificationResult, error)
}

// Set verification combines average per-document authenticity (70%) with
// cross-reference consistency (30%).
const (
	authenticityWeight      = 0.7
	consistencyWeight       = 0.3
	verifiedThreshold       = 0.85
	requiresReviewThreshold = 0.6
)

// DocumentService is the in-repo verifier. Per-document scores derive from
// the scan quality; consistency derives from pairwise agreement of the
// extracted name/address/employer fields.
type DocumentService struct{}

// NewDocumentService creates the verifier.
func NewDocumentService() *DocumentService { return &DocumentService{} }

// VerifyDocument scores a single document.
func (s *DocumentService) VerifyDocument(ctx context.Context, doc models.Document) (*models.DocumentVerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quality := clamp01(doc.QualityScore)
	authenticity := 0.5 + 0.5*quality
	ocr := 0.4 + 0.6*quality
	compliance := 1.0
	if doc.ExtractedName == "" {
		compliance -= 0.3
	}
	if doc.Type == "" {
		compliance -= 0.2
	}
	compliance = clamp01(compliance)

	overall := 0.5*authenticity + 0.3*ocr + 0.2*compliance

	return &models.DocumentVerificationResult{
		DocumentID:        doc.DocumentID,
		AuthenticityScore: authenticity,
		OCRConfidence:     ocr,
		ComplianceScore:   compliance,
		OverallScore:      overall,
		Status:            statusFor(overall),
	}, nil
}

// VerifyDocumentSet scores every document and checks cross-reference
// consistency across the set.
func (s *DocumentService) VerifyDocumentSet(ctx context.Context, docs []models.Document) (*models.SetVerificationResult, error) {
	if len(docs) == 0 {
		return &models.SetVerificationResult{Status: "requires_review"}, nil
	}

	results := make([]models.DocumentVerificationResult, 0, len(docs))
	sum := 0.0
	for _, doc := range docs {
		res, err := s.VerifyDocument(ctx, doc)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
		sum += res.OverallScore
	}
	overall := sum / float64(len(results))

	consistency := ConsistencyScore(docs)
	combined := authenticityWeight*overall + consistencyWeight*consistency

	return &models.SetVerificationResult{
		Documents:        results,
		OverallScore:     overall,
		ConsistencyScore: consistency,
		CombinedScore:    combined,
		Status:           statusFor(combined),
	}, nil
}

// ConsistencyScore is the fraction of consistent name/address/employer
// checks across the set. Each extracted field present on two or more
// documents contributes one check; the check passes when every non-empty
// value agrees.
func ConsistencyScore(docs []models.Document) float64 {
	checks, consistent := 0, 0

	fields := []func(models.Document) string{
		func(d models.Document) string { return d.ExtractedName },
		func(d models.Document) string { return d.ExtractedAddress },
		func(d models.Document) string { return d.ExtractedEmployer },
	}

	for _, field := range fields {
		var values []string
		for _, doc := range docs {
			if v := strings.TrimSpace(field(doc)); v != "" {
				values = append(values, v)
			}
		}
		if len(values) < 2 {
			continue
		}
		checks++
		agreed := true
		for _, v := range values[1:] {
			if !strings.EqualFold(v, values[0]) {
				agreed = false
				break
			}
		}
		if agreed {
			consistent++
		}
	}

	if checks == 0 {
		// Nothing to cross-reference; neither penalize nor reward.
		return 1.0
	}
	return float64(consistent) / float64(checks)
}

func statusFor(score float64) string {
	switch {
	case score >= verifiedThreshold:
		return "verified"
	case score >= requiresReviewThreshold:
		return "requires_review"
	default:
		return "rejected"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
