// internal/verification/credit.go
package verification

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"screening-workers/internal/models"
)

// CreditBureau retrieves a credit report for an applicant. Real bureau wire
// formats are out of scope; implementations map whatever they speak into a
// CreditReport.
type CreditBureau interface {
	GetCreditReport(ctx context.Context, applicant models.ApplicantRecord, bureau string) (*models.CreditReport, error)
}

// StubCreditBureau is a development/test bureau returning a deterministic
// report derived from the applicant ID, so scenarios are repeatable.
type StubCreditBureau struct{}

// NewStubCreditBureau creates the stub adapter.
func NewStubCreditBureau() *StubCreditBureau { return &StubCreditBureau{} }

// GetCreditReport returns a deterministic report. When the applicant already
// states a credit score, the bureau confirms it with minor derived detail;
// otherwise the score is hashed from the applicant ID into [300,850].
func (b *StubCreditBureau) GetCreditReport(ctx context.Context, applicant models.ApplicantRecord, bureau string) (*models.CreditReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if applicant.ApplicantID == "" {
		return nil, fmt.Errorf("applicant id is required")
	}

	seed := hashID(applicant.ApplicantID)
	score := 300 + int(seed%551)
	if applicant.CreditScore != nil {
		score = int(*applicant.CreditScore)
	}

	return &models.CreditReport{
		Bureau:            bureau,
		Score:             score,
		OpenAccounts:      2 + int(seed%9),
		DerogatoryMarks:   int(seed % 3),
		CreditUtilization: float64(seed%80) / 100,
		OldestTradeline:   12 + int(seed%180),
		RetrievedAt:       time.Now().UTC(),
	}, nil
}

func hashID(id string) uint32 {
	h := sha256.Sum256([]byte(id))
	return binary.BigEndian.Uint32(h[:4])
}
