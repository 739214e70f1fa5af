// internal/verification/credit_http.go
package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	httpclient "screening-workers/internal/common/http"
	"screening-workers/internal/models"
)

// HTTPCreditBureau talks to a bureau gateway over its JSON API. The gateway
// fronts the real bureaus and normalizes their wire formats, so the response
// here already matches CreditReport field for field.
type HTTPCreditBureau struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
}

// NewHTTPCreditBureau creates the adapter. The per-request deadline comes
// from the caller's context; timeout is the transport-level ceiling.
func NewHTTPCreditBureau(baseURL, apiKey string, timeout time.Duration) *HTTPCreditBureau {
	return &HTTPCreditBureau{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  httpclient.NewClient(timeout),
	}
}

// GetCreditReport fetches the report from the gateway.
func (b *HTTPCreditBureau) GetCreditReport(ctx context.Context, applicant models.ApplicantRecord, bureau string) (*models.CreditReport, error) {
	if applicant.ApplicantID == "" {
		return nil, fmt.Errorf("applicant id is required")
	}

	endpoint := fmt.Sprintf("%s/v1/reports/%s?bureau=%s",
		b.baseURL, url.PathEscape(applicant.ApplicantID), url.QueryEscape(bureau))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build bureau request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bureau request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bureau returned status %d", resp.StatusCode)
	}

	var report models.CreditReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode bureau response: %w", err)
	}
	if report.RetrievedAt.IsZero() {
		report.RetrievedAt = time.Now().UTC()
	}
	return &report, nil
}
