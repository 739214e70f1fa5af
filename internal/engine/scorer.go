// internal/engine/scorer.go
package engine

import "screening-workers/internal/models"

// Fixed composite weights. OverallScore is always this linear combination;
// nothing downstream may re-weight it.
const (
	weightCredit        = 0.25
	weightIncome        = 0.20
	weightRentalHistory = 0.20
	weightEmployment    = 0.15
	weightReferences    = 0.10
	weightFraud         = 0.10
)

// Decision thresholds, evaluated in order. The fraud override beats
// everything else.
const (
	fraudDeclineThreshold    = 30.0
	approveThreshold         = 75.0
	conditionalThreshold     = 65.0
	cosignerThreshold        = 50.0
	creditSplitThreshold     = 70.0
	minConfidence            = 0.1
	maxConfidence            = 1.0
	completenessWeight       = 0.4
	modelConfidenceWeight    = 0.6
	fallbackModelConfidence  = 0.8
	ruleBasedFraudScore      = 80.0
	ruleBasedConfidence      = 0.7
)

// CompositeScore computes the weighted overall score from the five
// sub-scores plus the fraud safety score.
func CompositeScore(sub models.SubScores, fraudScore float64) float64 {
	return weightCredit*sub.Credit +
		weightIncome*sub.Income +
		weightRentalHistory*sub.RentalHistory +
		weightEmployment*sub.Employment +
		weightReferences*sub.References +
		weightFraud*fraudScore
}

// Decide maps (overall, fraud, credit sub-score) to a risk level and
// recommendation. First match wins.
func Decide(overall, fraudScore, creditSubScore float64) (models.RiskLevel, models.Recommendation) {
	switch {
	case fraudScore < fraudDeclineThreshold:
		return models.RiskCritical, models.RecommendDecline
	case overall >= approveThreshold:
		return models.RiskLow, models.RecommendApprove
	case overall >= conditionalThreshold:
		if creditSubScore >= creditSplitThreshold {
			return models.RiskMedium, models.RecommendConditionalApprove
		}
		return models.RiskMedium, models.RecommendRequireCosigner
	case overall >= cosignerThreshold:
		return models.RiskHigh, models.RecommendRequireCosigner
	default:
		return models.RiskCritical, models.RecommendDecline
	}
}

// requiredFields are the five fields counted toward data completeness.
func completeness(rec models.ApplicantRecord) float64 {
	present := 0
	if rec.CreditScore != nil {
		present++
	}
	if rec.AnnualIncome != nil {
		present++
	}
	if rec.EmploymentLengthMonths != nil {
		present++
	}
	if rec.RentalHistoryLength != nil {
		present++
	}
	if rec.NumberOfReferences != nil {
		present++
	}
	return float64(present) / 5
}

// EstimateConfidence blends data completeness with model certainty.
func EstimateConfidence(rec models.ApplicantRecord, modelConfidence float64) float64 {
	return clamp(completenessWeight*completeness(rec)+modelConfidenceWeight*modelConfidence,
		minConfidence, maxConfidence)
}
