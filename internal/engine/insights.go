// internal/engine/insights.go
package engine

import (
	"context"

	"screening-workers/internal/models"
)

const strengthThreshold = 80.0
const concernThreshold = 60.0
const fraudConcernThreshold = 70.0

// GenerateInsights derives the human-readable rationale for a completed
// screening. Similar cases are illustrative, not authoritative.
func (e *Engine) GenerateInsights(_ context.Context, rec models.ApplicantRecord, score models.ScreeningScore) models.ScreeningInsights {
	sub := score.SubScores

	var strengths []string
	if sub.Credit >= strengthThreshold {
		strengths = append(strengths, "Strong credit profile with healthy debt load")
	}
	if sub.Income >= strengthThreshold {
		strengths = append(strengths, "Income comfortably covers the monthly rent")
	}
	if sub.RentalHistory >= strengthThreshold {
		strengths = append(strengths, "Solid rental history with positive landlord feedback")
	}
	if sub.Employment >= strengthThreshold {
		strengths = append(strengths, "Stable employment situation")
	}
	if sub.References >= strengthThreshold {
		strengths = append(strengths, "Well-supported by references")
	}

	var concerns []string
	if sub.Credit < concernThreshold {
		concerns = append(concerns, "Credit profile is below the comfortable range")
	}
	if sub.Income < concernThreshold {
		concerns = append(concerns, "Income may be insufficient for the requested rent")
	}
	if sub.RentalHistory < concernThreshold {
		concerns = append(concerns, "Rental history is short or shows negative events")
	}
	if score.FraudRiskScore < fraudConcernThreshold {
		concerns = append(concerns, "Application shows elevated fraud indicators")
	}

	var recommendations []string
	switch score.Recommendation {
	case models.RecommendApprove:
		recommendations = append(recommendations, "Proceed with standard lease terms")
	case models.RecommendConditionalApprove:
		recommendations = append(recommendations,
			"Consider an increased security deposit",
			"Request additional supporting documentation before signing")
	case models.RecommendRequireCosigner:
		recommendations = append(recommendations,
			"Require a cosigner and verify the cosigner's income")
	case models.RecommendDecline:
		recommendations = append(recommendations,
			"Document the decline rationale for compliance records")
	}

	similar := similarCases(score.RiskLevel)

	probability := (sub.Credit + sub.Income + sub.RentalHistory + sub.Employment) / 4 / 100

	e.log.Debug("insights generated", map[string]interface{}{
		"applicantId": rec.ApplicantID,
		"screeningId": score.ScreeningID,
		"strengths":   len(strengths),
		"concerns":    len(concerns),
	})

	return models.ScreeningInsights{
		Strengths:            strengths,
		Concerns:             concerns,
		Recommendations:      recommendations,
		SimilarCases:         similar,
		ProbabilityOfSuccess: clamp(probability, 0, 1),
	}
}

func similarCases(level models.RiskLevel) []string {
	switch level {
	case models.RiskLow:
		return []string{"Comparable low-risk applicants completed their lease term without incident"}
	case models.RiskMedium:
		return []string{"Comparable applicants performed well when conditions were applied"}
	case models.RiskHigh:
		return []string{"Comparable applicants succeeded most often with a cosigner in place"}
	default:
		return []string{"Comparable applications in this band were typically declined"}
	}
}
