// internal/workers/screening/screen-applicant/models.go
package screenapplicant

import "screening-workers/internal/models"

type Input struct {
	Applicant models.ApplicantRecord `json:"applicant"`
}

type Output struct {
	Screening models.ScreeningScore `json:"screening"`
}
