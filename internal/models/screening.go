// internal/models/screening.go
package models

import "time"

// RiskLevel is the ordinal classification assigned by the decision
// classifier.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Recommendation is the screening action recommended to the operator.
type Recommendation string

const (
	RecommendApprove            Recommendation = "APPROVE"
	RecommendConditionalApprove Recommendation = "CONDITIONAL_APPROVE"
	RecommendRequireCosigner    Recommendation = "REQUIRE_COSIGNER"
	RecommendDecline            Recommendation = "DECLINE"
)

// ScoringMethod marks whether a result came from the trained models or the
// rule-based fallback.
type ScoringMethod string

const (
	MethodModel     ScoringMethod = "model"
	MethodRuleBased ScoringMethod = "rule_based"
)

// SubScores holds the five domain assessments, each in [0,100].
type SubScores struct {
	Credit        float64 `json:"credit"`
	Income        float64 `json:"income"`
	RentalHistory float64 `json:"rental_history"`
	Employment    float64 `json:"employment"`
	References    float64 `json:"references"`
}

// ScreeningScore is the engine output for a single screening call.
// OverallScore is always the fixed-weight linear combination of the five
// sub-scores and the fraud score; RiskLevel and Recommendation are a pure
// function of (overall, fraud, credit sub-score).
type ScreeningScore struct {
	ScreeningID    string         `json:"screening_id"`
	ApplicantID    string         `json:"applicant_id,omitempty"`
	OverallScore   float64        `json:"overall_score"`
	SubScores      SubScores      `json:"sub_scores"`
	FraudRiskScore float64        `json:"fraud_risk_score"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     float64        `json:"confidence"`
	Method         ScoringMethod  `json:"method"`
	ScreenedAt     time.Time      `json:"screened_at"`
}

// ScreeningInsights carries the human-readable rationale derived from a
// completed screening.
type ScreeningInsights struct {
	Strengths            []string `json:"strengths"`
	Concerns             []string `json:"concerns"`
	Recommendations      []string `json:"recommendations"`
	SimilarCases         []string `json:"similar_cases,omitempty"`
	ProbabilityOfSuccess float64  `json:"probability_of_success"`
}
