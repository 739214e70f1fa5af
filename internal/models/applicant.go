// internal/models/applicant.go
package models

// ApplicantRecord is the typed input describing one rental applicant.
// Optional numeric fields are pointers so that "missing" is distinguishable
// from zero; the engine treats the record as immutable per call.
type ApplicantRecord struct {
	ApplicantID string `json:"applicant_id,omitempty"`

	CreditScore         *float64 `json:"credit_score,omitempty"`
	DebtToIncomeRatio   *float64 `json:"debt_to_income_ratio,omitempty"`
	PaymentHistoryScore *float64 `json:"payment_history_score,omitempty"`

	AnnualIncome           *float64 `json:"annual_income,omitempty"`
	MonthlyRent            *float64 `json:"monthly_rent,omitempty"`
	EmploymentType         string   `json:"employment_type,omitempty"`
	EmploymentLengthMonths *float64 `json:"employment_length_months,omitempty"`
	Industry               string   `json:"industry,omitempty"`

	RentalHistoryLength      *float64 `json:"rental_history_length,omitempty"`
	PreviousEvictions        int      `json:"previous_evictions"`
	LatePaymentCount         int      `json:"late_payment_count"`
	LandlordReferenceQuality string   `json:"landlord_reference_quality,omitempty"`

	NumberOfReferences *float64 `json:"number_of_references,omitempty"`
	ReferenceQuality   string   `json:"reference_quality,omitempty"`
	ReferenceTypes     []string `json:"reference_types,omitempty"`

	DocumentQualityScore *float64 `json:"document_quality_score,omitempty"`
	PhoneNumber          string   `json:"phone_number,omitempty"`
	ClaimedSavings       *float64 `json:"claimed_savings,omitempty"`
}

// Float returns the pointed-to value or the given default when the field is
// absent.
func Float(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// FloatPtr is a convenience constructor used by callers and tests.
func FloatPtr(v float64) *float64 { return &v }
