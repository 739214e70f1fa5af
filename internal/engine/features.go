// internal/engine/features.go
package engine

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"screening-workers/internal/models"
)

// TrainingExample is one labeled row of the training batch.
type TrainingExample struct {
	Record          models.ApplicantRecord `json:"record"`
	ApprovalOutcome bool                   `json:"approval_outcome"`
	RiskScore       float64                `json:"risk_score"`
	FraudDetected   bool                   `json:"fraud_detected"`
}

// FeatureVector is the model-ready representation of one applicant. It is
// ephemeral and recomputed per call.
type FeatureVector struct {
	Values []float64
	Names  []string
}

// Empty reports whether feature preparation produced nothing usable.
func (f FeatureVector) Empty() bool { return len(f.Values) == 0 }

// Feature layout. Derived features are appended after the raw numerics and
// scaled with them; categorical codes come last, unscaled.
var numericFeatureNames = []string{
	"credit_score",
	"annual_income",
	"monthly_rent",
	"employment_length_months",
	"rental_history_length",
	"previous_evictions",
	"late_payment_count",
	"number_of_references",
	"debt_to_income_ratio",
	"document_quality_score",
	"claimed_savings",
	"income_to_rent_ratio",
	"credit_score_normalized",
}

var categoricalFeatureNames = []string{
	"employment_type",
	"reference_quality",
}

// Normalizer imputes, encodes, derives, and scales features. All statistics
// are captured once by Fit during training and reused read-only at
// inference; Transform never refits anything.
type Normalizer struct {
	Medians  map[string]float64        `json:"medians"`
	Means    map[string]float64        `json:"means"`
	Stds     map[string]float64        `json:"stds"`
	Encoders map[string]map[string]int `json:"encoders"`
	Fitted   bool                      `json:"fitted"`
}

// Fit captures imputation medians, label encoders, and scaling statistics
// from the training batch.
func (n *Normalizer) Fit(batch []TrainingExample) error {
	if len(batch) == 0 {
		return fmt.Errorf("empty training batch")
	}

	n.Medians = make(map[string]float64, len(numericFeatureNames))
	n.Means = make(map[string]float64, len(numericFeatureNames))
	n.Stds = make(map[string]float64, len(numericFeatureNames))
	n.Encoders = make(map[string]map[string]int, len(categoricalFeatureNames))

	// Imputation medians over the raw (non-derived) numeric columns.
	for _, name := range numericFeatureNames[:len(numericFeatureNames)-2] {
		var present []float64
		for _, ex := range batch {
			if v, ok := rawNumeric(ex.Record, name); ok {
				present = append(present, v)
			}
		}
		n.Medians[name] = median(present)
	}

	// Derived columns use the imputed values, so their statistics reflect
	// exactly what Transform will produce.
	columns := make(map[string][]float64, len(numericFeatureNames))
	for _, ex := range batch {
		row := n.imputedRow(ex.Record)
		for _, name := range numericFeatureNames {
			columns[name] = append(columns[name], row[name])
		}
	}
	n.Medians["income_to_rent_ratio"] = median(columns["income_to_rent_ratio"])
	n.Medians["credit_score_normalized"] = median(columns["credit_score_normalized"])

	for _, name := range numericFeatureNames {
		mean, std := stat.MeanStdDev(columns[name], nil)
		if math.IsNaN(std) || std == 0 {
			std = 1
		}
		n.Means[name] = mean
		n.Stds[name] = std
	}

	// Label encoders: deterministic codes from the sorted label set.
	for _, name := range categoricalFeatureNames {
		labels := map[string]bool{}
		for _, ex := range batch {
			labels[rawCategorical(ex.Record, name)] = true
		}
		sorted := make([]string, 0, len(labels))
		for label := range labels {
			sorted = append(sorted, label)
		}
		sort.Strings(sorted)
		encoder := make(map[string]int, len(sorted))
		for i, label := range sorted {
			encoder[label] = i
		}
		n.Encoders[name] = encoder
	}

	n.Fitted = true
	return nil
}

// Transform builds the feature vector for one record using the statistics
// captured by Fit. Labels unseen during training encode to -1.
func (n *Normalizer) Transform(rec models.ApplicantRecord) (FeatureVector, error) {
	if !n.Fitted {
		return FeatureVector{}, fmt.Errorf("normalizer not fitted")
	}

	row := n.imputedRow(rec)
	values := make([]float64, 0, len(numericFeatureNames)+len(categoricalFeatureNames))
	names := make([]string, 0, cap(values))

	for _, name := range numericFeatureNames {
		scaled := (row[name] - n.Means[name]) / n.Stds[name]
		if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
			return FeatureVector{}, fmt.Errorf("feature %s is not finite", name)
		}
		values = append(values, scaled)
		names = append(names, name)
	}

	for _, name := range categoricalFeatureNames {
		code := -1
		if idx, ok := n.Encoders[name][rawCategorical(rec, name)]; ok {
			code = idx
		}
		values = append(values, float64(code))
		names = append(names, name)
	}

	return FeatureVector{Values: values, Names: names}, nil
}

// imputedRow returns all numeric columns for the record, missing values
// replaced by train-time medians, plus the two derived features.
func (n *Normalizer) imputedRow(rec models.ApplicantRecord) map[string]float64 {
	row := make(map[string]float64, len(numericFeatureNames))
	for _, name := range numericFeatureNames[:len(numericFeatureNames)-2] {
		if v, ok := rawNumeric(rec, name); ok {
			row[name] = v
		} else {
			row[name] = n.Medians[name]
		}
	}

	if rent := row["monthly_rent"]; rent > 0 {
		row["income_to_rent_ratio"] = row["annual_income"] / (rent * 12)
	} else {
		row["income_to_rent_ratio"] = n.Medians["income_to_rent_ratio"]
	}
	row["credit_score_normalized"] = (row["credit_score"] - 300) / 550

	return row
}

func rawNumeric(rec models.ApplicantRecord, name string) (float64, bool) {
	get := func(p *float64) (float64, bool) {
		if p == nil {
			return 0, false
		}
		return *p, true
	}
	switch name {
	case "credit_score":
		return get(rec.CreditScore)
	case "annual_income":
		return get(rec.AnnualIncome)
	case "monthly_rent":
		return get(rec.MonthlyRent)
	case "employment_length_months":
		return get(rec.EmploymentLengthMonths)
	case "rental_history_length":
		return get(rec.RentalHistoryLength)
	case "previous_evictions":
		return float64(rec.PreviousEvictions), true
	case "late_payment_count":
		return float64(rec.LatePaymentCount), true
	case "number_of_references":
		return get(rec.NumberOfReferences)
	case "debt_to_income_ratio":
		return get(rec.DebtToIncomeRatio)
	case "document_quality_score":
		return get(rec.DocumentQualityScore)
	case "claimed_savings":
		return get(rec.ClaimedSavings)
	}
	return 0, false
}

func rawCategorical(rec models.ApplicantRecord, name string) string {
	switch name {
	case "employment_type":
		return rec.EmploymentType
	case "reference_quality":
		return rec.ReferenceQuality
	}
	return ""
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
