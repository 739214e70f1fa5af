// internal/engine/assessors.go
package engine

import (
	"strings"

	"screening-workers/internal/models"
)

// Each assessor is pure and total: it never panics out and always returns a
// value in [0,100]. Internal failures fall back to the neutral 50.

const neutralScore = 50.0

// stableIndustries earn the employment industry bonus.
var stableIndustries = map[string]bool{
	"government": true,
	"healthcare": true,
	"education":  true,
	"utilities":  true,
}

// trustedReferenceTypes earn the per-reference type bonus.
var trustedReferenceTypes = map[string]bool{
	"employer":     true,
	"landlord":     true,
	"professional": true,
}

// AssessCredit scores creditworthiness from credit score, debt-to-income
// ratio, and payment history. Weighted 60/25/15.
func AssessCredit(rec models.ApplicantRecord) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = neutralScore
		}
	}()

	creditScore := models.Float(rec.CreditScore, 0)
	dti := models.Float(rec.DebtToIncomeRatio, 0)
	paymentHistory := models.Float(rec.PaymentHistoryScore, 0)

	var scoreComponent float64
	switch {
	case creditScore >= 750:
		scoreComponent = 100
	case creditScore >= 700:
		scoreComponent = 85
	case creditScore >= 650:
		scoreComponent = 70
	case creditScore >= 600:
		scoreComponent = 55
	default:
		scoreComponent = 30
	}

	var debtComponent float64
	switch {
	case dti <= 0.2:
		debtComponent = 100
	case dti <= 0.3:
		debtComponent = 85
	case dti <= 0.4:
		debtComponent = 70
	default:
		debtComponent = 40
	}

	paymentComponent := paymentHistory
	if paymentComponent > 100 {
		paymentComponent = 100
	}

	return clamp(0.6*scoreComponent+0.25*debtComponent+0.15*paymentComponent, 0, 100)
}

// AssessIncome scores income adequacy relative to rent, adjusted for
// employment stability and type.
func AssessIncome(rec models.ApplicantRecord) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = neutralScore
		}
	}()

	annualIncome := models.Float(rec.AnnualIncome, 0)
	monthlyRent := models.Float(rec.MonthlyRent, 0)
	if monthlyRent <= 0 || annualIncome < 0 {
		return neutralScore
	}

	incomeRatio := (annualIncome / 12) / monthlyRent
	var ratioScore float64
	switch {
	case incomeRatio >= 4:
		ratioScore = 100
	case incomeRatio >= 3:
		ratioScore = 85
	case incomeRatio >= 2.5:
		ratioScore = 60
	default:
		ratioScore = 30
	}

	employmentLength := models.Float(rec.EmploymentLengthMonths, 0)
	var stabilityScore float64
	switch {
	case employmentLength >= 24:
		stabilityScore = 100
	case employmentLength >= 12:
		stabilityScore = 80
	case employmentLength >= 6:
		stabilityScore = 60
	default:
		stabilityScore = 40
	}

	multiplier := employmentTypeMultiplier(rec.EmploymentType)
	return clamp((0.7*ratioScore+0.3*stabilityScore)*multiplier, 0, 100)
}

func employmentTypeMultiplier(employmentType string) float64 {
	switch strings.ToLower(employmentType) {
	case "full_time":
		return 1.0
	case "part_time":
		return 0.8
	case "contract":
		return 0.7
	case "self_employed":
		return 0.6
	case "unemployed":
		return 0.1
	default:
		return 0.7
	}
}

// AssessRentalHistory scores tenancy track record: length and landlord
// reference weighted 40/60, minus eviction and late-payment penalties.
func AssessRentalHistory(rec models.ApplicantRecord) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = neutralScore
		}
	}()

	historyLength := models.Float(rec.RentalHistoryLength, 0)
	var lengthScore float64
	switch {
	case historyLength >= 36:
		lengthScore = 100
	case historyLength >= 24:
		lengthScore = 85
	case historyLength >= 12:
		lengthScore = 70
	default:
		lengthScore = 50
	}

	referenceScore := qualityScore(rec.LandlordReferenceQuality, 20)

	evictionPenalty := float64(rec.PreviousEvictions) * 25
	if evictionPenalty > 50 {
		evictionPenalty = 50
	}
	latePenalty := float64(rec.LatePaymentCount) * 5
	if latePenalty > 30 {
		latePenalty = 30
	}

	return clamp(0.4*lengthScore+0.6*referenceScore-evictionPenalty-latePenalty, 0, 100)
}

// AssessEmployment scores employment situation: base by type plus tenure and
// industry bonuses.
func AssessEmployment(rec models.ApplicantRecord) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = neutralScore
		}
	}()

	var base float64
	switch strings.ToLower(rec.EmploymentType) {
	case "full_time":
		base = 90
	case "part_time":
		base = 60
	case "contract":
		base = 55
	case "self_employed":
		base = 50
	case "unemployed":
		base = 10
	case "retired":
		base = 75
	case "student":
		base = 40
	default:
		base = 50
	}

	employmentLength := models.Float(rec.EmploymentLengthMonths, 0)
	var lengthBonus float64
	switch {
	case employmentLength >= 36:
		lengthBonus = 10
	case employmentLength >= 24:
		lengthBonus = 8
	case employmentLength >= 12:
		lengthBonus = 5
	}

	var industryBonus float64
	if stableIndustries[strings.ToLower(rec.Industry)] {
		industryBonus = 5
	}

	return clamp(base+lengthBonus+industryBonus, 0, 100)
}

// AssessReferences scores the reference set: quantity and quality weighted
// 40/60 plus a bonus per trusted reference type.
func AssessReferences(rec models.ApplicantRecord) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = neutralScore
		}
	}()

	count := models.Float(rec.NumberOfReferences, 0)
	var quantityScore float64
	switch {
	case count >= 3:
		quantityScore = 100
	case count >= 2:
		quantityScore = 80
	case count >= 1:
		quantityScore = 60
	default:
		quantityScore = 20
	}

	qltyScore := qualityScore(rec.ReferenceQuality, 10)

	var typeBonus float64
	for _, refType := range rec.ReferenceTypes {
		if trustedReferenceTypes[strings.ToLower(refType)] {
			typeBonus += 5
		}
	}

	return clamp(0.4*quantityScore+0.6*qltyScore+typeBonus, 0, 100)
}

// qualityScore maps a quality label to a score. The "none" value differs
// between the rental-history and references assessors, hence the parameter.
func qualityScore(label string, noneScore float64) float64 {
	switch strings.ToLower(label) {
	case "excellent":
		return 100
	case "good":
		return 85
	case "fair":
		return 70
	case "poor":
		return 40
	case "none":
		return noneScore
	default:
		return 50
	}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
