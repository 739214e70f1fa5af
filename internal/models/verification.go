// internal/models/verification.go
package models

import "time"

// CreditReport is the structured result returned by a credit bureau
// collaborator. The wire format of real bureaus is out of scope; this is the
// shape the engine consumes.
type CreditReport struct {
	Bureau            string    `json:"bureau"`
	Score             int       `json:"score"`
	OpenAccounts      int       `json:"open_accounts"`
	DerogatoryMarks   int       `json:"derogatory_marks"`
	CreditUtilization float64   `json:"credit_utilization"`
	OldestTradeline   int       `json:"oldest_tradeline_months"`
	RetrievedAt       time.Time `json:"retrieved_at"`
}

// CriminalRecord is a single criminal-history finding.
type CriminalRecord struct {
	Offense  string `json:"offense"`
	Severity string `json:"severity"` // felony, misdemeanor, infraction
	Year     int    `json:"year"`
}

// EvictionRecord is a single eviction-history finding.
type EvictionRecord struct {
	Year         int    `json:"year"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
}

// BackgroundCheckResult aggregates all background-check categories plus the
// checker's own independently computed risk output. TenantRecommendation is
// advisory input to the decision classifier, not a replacement for it.
type BackgroundCheckResult struct {
	CheckType               string           `json:"check_type"`
	CriminalRecords         []CriminalRecord `json:"criminal_records,omitempty"`
	SexOffenderMatch        bool             `json:"sex_offender_match"`
	Evictions               []EvictionRecord `json:"evictions,omitempty"`
	IdentityConfidence      float64          `json:"identity_confidence"`
	EmploymentVerified      bool             `json:"employment_verified"`
	AddressVerificationRate float64          `json:"address_verification_rate"`
	RiskScore               float64          `json:"risk_score"`
	RiskLevel               RiskLevel        `json:"risk_level"`
	TenantRecommendation    Recommendation   `json:"tenant_recommendation"`
	CompletedAt             time.Time        `json:"completed_at"`
}

// Document is one submitted document to verify.
type Document struct {
	DocumentID string `json:"document_id"`
	Type       string `json:"type"` // pay_stub, bank_statement, id, lease
	// Fields extracted by OCR; used for cross-reference consistency.
	ExtractedName     string  `json:"extracted_name,omitempty"`
	ExtractedAddress  string  `json:"extracted_address,omitempty"`
	ExtractedEmployer string  `json:"extracted_employer,omitempty"`
	QualityScore      float64 `json:"quality_score"` // 0..1 scan quality
}

// DocumentVerificationResult is the per-document authenticity analysis.
type DocumentVerificationResult struct {
	DocumentID        string  `json:"document_id"`
	AuthenticityScore float64 `json:"authenticity_score"` // 0..1
	OCRConfidence     float64 `json:"ocr_confidence"`     // 0..1
	ComplianceScore   float64 `json:"compliance_score"`   // 0..1
	OverallScore      float64 `json:"overall_score"`      // 0..1
	Status            string  `json:"status"`             // verified, requires_review, rejected
}

// SetVerificationResult combines per-document scores with cross-reference
// consistency across the document set.
type SetVerificationResult struct {
	Documents        []DocumentVerificationResult `json:"documents"`
	OverallScore     float64                      `json:"overall_score"`     // 0..1, avg authenticity
	ConsistencyScore float64                      `json:"consistency_score"` // 0..1
	CombinedScore    float64                      `json:"combined_score"`    // 0.7*overall + 0.3*consistency
	Status           string                       `json:"status"`
}

// VerificationBundle is the transient aggregate of the three independent
// verification calls. A nil member means that signal was unavailable
// (timeout or collaborator failure) and the screening degrades gracefully.
type VerificationBundle struct {
	Credit      *CreditReport          `json:"credit,omitempty"`
	Background  *BackgroundCheckResult `json:"background,omitempty"`
	Documents   *SetVerificationResult `json:"documents,omitempty"`
	Unavailable []string               `json:"unavailable,omitempty"`
}
