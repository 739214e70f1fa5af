// internal/workers/screening/validate-applicant-data/models.go
package validateapplicantdata

import "screening-workers/internal/models"

type Input struct {
	Applicant map[string]interface{} `json:"applicant"`
}

type Output struct {
	IsValid          bool                    `json:"isValid"`
	Applicant        *models.ApplicantRecord `json:"applicant,omitempty"`
	ValidationErrors []ValidationError       `json:"validationErrors"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// applicantSchema constrains the numeric ranges of applicant fields. Fields
// are all optional: the screening engine degrades gracefully on missing data,
// but values that are present must be in range.
var applicantSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"applicant_id": map[string]interface{}{"type": "string"},
		"credit_score": map[string]interface{}{
			"type": "number", "minimum": 300, "maximum": 850,
		},
		"debt_to_income_ratio": map[string]interface{}{
			"type": "number", "minimum": 0, "maximum": 1,
		},
		"payment_history_score": map[string]interface{}{
			"type": "number", "minimum": 0, "maximum": 100,
		},
		"annual_income": map[string]interface{}{
			"type": "number", "minimum": 0,
		},
		"monthly_rent": map[string]interface{}{
			"type": "number", "minimum": 0,
		},
		"employment_type": map[string]interface{}{"type": "string"},
		"employment_length_months": map[string]interface{}{
			"type": "number", "minimum": 0,
		},
		"industry": map[string]interface{}{"type": "string"},
		"rental_history_length": map[string]interface{}{
			"type": "number", "minimum": 0,
		},
		"previous_evictions": map[string]interface{}{
			"type": "integer", "minimum": 0,
		},
		"late_payment_count": map[string]interface{}{
			"type": "integer", "minimum": 0,
		},
		"landlord_reference_quality": map[string]interface{}{"type": "string"},
		"number_of_references": map[string]interface{}{
			"type": "number", "minimum": 0,
		},
		"reference_quality": map[string]interface{}{"type": "string"},
		"reference_types": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"document_quality_score": map[string]interface{}{
			"type": "number", "minimum": 0, "maximum": 100,
		},
		"phone_number":    map[string]interface{}{"type": "string"},
		"claimed_savings": map[string]interface{}{"type": "number", "minimum": 0},
	},
}
