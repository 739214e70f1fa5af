// internal/workers/screening/record-decision/models.go
package recorddecision

import "screening-workers/internal/models"

type Input struct {
	Screening models.ScreeningScore `json:"screening"`
}

type Output struct {
	ScreeningID string `json:"screeningId"`
	Recorded    bool   `json:"recorded"`
	Indexed     bool   `json:"indexed"`
	RecordedAt  string `json:"recordedAt"`
}
