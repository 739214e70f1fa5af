// internal/workers/screening/generate-insights/models.go
package generateinsights

import "screening-workers/internal/models"

type Input struct {
	Applicant models.ApplicantRecord `json:"applicant"`
	Screening models.ScreeningScore  `json:"screening"`
}

type Output struct {
	Insights models.ScreeningInsights `json:"insights"`
}
