// internal/engine/fraud.go
package engine

import (
	"unicode"

	"screening-workers/internal/models"
)

// Fraud heuristics. Each indicator adds 20 points of heuristic risk, capped
// at 100; the blended risk is weighted 30% heuristic / 70% model and the
// returned fraud score inverts it so that higher means safer.

const (
	heuristicRiskPerIndicator = 20.0
	heuristicBlendWeight      = 0.3
	modelBlendWeight          = 0.7

	// Model risk substituted when fraud inference errors out.
	defaultModelFraudProbability = 0.1
)

// CountFraudIndicators scans the record for the rule-based fraud signals.
func CountFraudIndicators(rec models.ApplicantRecord) int {
	count := 0

	income := models.Float(rec.AnnualIncome, 0)
	if rec.ClaimedSavings != nil && income > 0 && *rec.ClaimedSavings > 2*income {
		count++
	}

	if income > 100000 && models.Float(rec.EmploymentLengthMonths, 0) < 3 {
		count++
	}

	if rec.PhoneNumber != "" && distinctDigits(rec.PhoneNumber) <= 2 {
		count++
	}

	if rec.DocumentQualityScore != nil && *rec.DocumentQualityScore < 50 {
		count++
	}

	return count
}

// HeuristicFraudRisk converts the indicator count to a 0-100 risk value.
func HeuristicFraudRisk(indicators int) float64 {
	risk := float64(indicators) * heuristicRiskPerIndicator
	if risk > 100 {
		risk = 100
	}
	return risk
}

// BlendFraudRisk combines heuristic and model risk and inverts the result
// into a safety score: 100 means no fraud signal, 0 means certain fraud.
func BlendFraudRisk(heuristicRisk, modelRisk float64) float64 {
	finalRisk := heuristicBlendWeight*heuristicRisk + modelBlendWeight*modelRisk
	score := 100 - finalRisk
	if score < 0 {
		score = 0
	}
	return score
}

func distinctDigits(phone string) int {
	seen := map[rune]bool{}
	for _, r := range phone {
		if unicode.IsDigit(r) {
			seen[r] = true
		}
	}
	return len(seen)
}
