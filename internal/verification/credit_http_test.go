// internal/verification/credit_http_test.go
package verification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"screening-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCreditBureauFetchesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reports/app-1", r.URL.Path)
		assert.Equal(t, "equifax", r.URL.Query().Get("bureau"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.CreditReport{
			Bureau: "equifax",
			Score:  712,
		})
	}))
	defer srv.Close()

	bureau := NewHTTPCreditBureau(srv.URL, "test-key", 5*time.Second)
	report, err := bureau.GetCreditReport(context.Background(), models.ApplicantRecord{ApplicantID: "app-1"}, "equifax")

	require.NoError(t, err)
	assert.Equal(t, 712, report.Score)
	assert.False(t, report.RetrievedAt.IsZero())
}

func TestHTTPCreditBureauNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	bureau := NewHTTPCreditBureau(srv.URL, "", 5*time.Second)
	_, err := bureau.GetCreditReport(context.Background(), models.ApplicantRecord{ApplicantID: "app-1"}, "stub")

	assert.ErrorContains(t, err, "status 502")
}

func TestHTTPCreditBureauRequiresApplicantID(t *testing.T) {
	bureau := NewHTTPCreditBureau("http://localhost:0", "", time.Second)
	_, err := bureau.GetCreditReport(context.Background(), models.ApplicantRecord{}, "stub")
	assert.Error(t, err)
}
