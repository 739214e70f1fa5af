// internal/workers/screening/verify-applicant/models.go
package verifyapplicant

import "screening-workers/internal/models"

type Input struct {
	Applicant models.ApplicantRecord `json:"applicant"`
	Documents []models.Document      `json:"documents,omitempty"`
	Screening *models.ScreeningScore `json:"screening,omitempty"`
}

type Output struct {
	Verification *models.VerificationBundle `json:"verification"`
	Screening    *models.ScreeningScore     `json:"screening,omitempty"`
	Completeness float64                    `json:"completeness"`
}
