// internal/verification/orchestrator.go
package verification

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"screening-workers/internal/common/logger"
	"screening-workers/internal/models"
)

// Orchestrator fans out to the three independent verification collaborators
// concurrently. Each call carries its own timeout; a failed or timed-out
// call marks that signal unavailable instead of failing the screening.
type Orchestrator struct {
	bureau     CreditBureau
	background BackgroundChecker
	documents  DocumentVerifier
	log        logger.Logger
	mu         sync.Mutex

	bureauName        string
	checkType         string
	creditTimeout     time.Duration
	backgroundTimeout time.Duration
	documentTimeout   time.Duration
}

// OrchestratorConfig holds the per-collaborator settings.
type OrchestratorConfig struct {
	BureauName        string
	CheckType         string
	CreditTimeout     time.Duration
	BackgroundTimeout time.Duration
	DocumentTimeout   time.Duration
}

// NewOrchestrator wires the three collaborators.
func NewOrchestrator(bureau CreditBureau, background BackgroundChecker, documents DocumentVerifier,
	cfg OrchestratorConfig, log logger.Logger) *Orchestrator {
	if cfg.BureauName == "" {
		cfg.BureauName = "stub"
	}
	if cfg.CheckType == "" {
		cfg.CheckType = "standard"
	}
	if cfg.CreditTimeout <= 0 {
		cfg.CreditTimeout = 10 * time.Second
	}
	if cfg.BackgroundTimeout <= 0 {
		cfg.BackgroundTimeout = 15 * time.Second
	}
	if cfg.DocumentTimeout <= 0 {
		cfg.DocumentTimeout = 10 * time.Second
	}
	return &Orchestrator{
		bureau:            bureau,
		background:        background,
		documents:         documents,
		log:               log.WithFields(map[string]interface{}{"component": "verification-orchestrator"}),
		bureauName:        cfg.BureauName,
		checkType:         cfg.CheckType,
		creditTimeout:     cfg.CreditTimeout,
		backgroundTimeout: cfg.BackgroundTimeout,
		documentTimeout:   cfg.DocumentTimeout,
	}
}

// Verify runs the three calls concurrently with no ordering dependency and
// aggregates whatever came back. It never returns an error: missing signals
// are listed in the bundle's Unavailable set.
func (o *Orchestrator) Verify(ctx context.Context, applicant models.ApplicantRecord, docs []models.Document) *models.VerificationBundle {
	bundle := &models.VerificationBundle{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, o.creditTimeout)
		defer cancel()
		report, err := o.bureau.GetCreditReport(cctx, applicant, o.bureauName)
		if err != nil {
			o.markUnavailable(bundle, "credit_report", applicant.ApplicantID, err)
			return nil
		}
		bundle.Credit = report
		return nil
	})

	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, o.backgroundTimeout)
		defer cancel()
		result, err := o.background.RunBackgroundCheck(cctx, applicant, o.checkType)
		if err != nil {
			o.markUnavailable(bundle, "background_check", applicant.ApplicantID, err)
			return nil
		}
		bundle.Background = result
		return nil
	})

	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, o.documentTimeout)
		defer cancel()
		result, err := o.documents.VerifyDocumentSet(cctx, docs)
		if err != nil {
			o.markUnavailable(bundle, "document_verification", applicant.ApplicantID, err)
			return nil
		}
		bundle.Documents = result
		return nil
	})

	// Goroutines swallow their own errors, so Wait only flushes completion.
	_ = g.Wait()
	return bundle
}

func (o *Orchestrator) markUnavailable(bundle *models.VerificationBundle, signal, applicantID string, err error) {
	o.mu.Lock()
	bundle.Unavailable = append(bundle.Unavailable, signal)
	o.mu.Unlock()
	o.log.Warn("verification signal unavailable", map[string]interface{}{
		"signal":      signal,
		"applicantId": applicantID,
		"error":       err.Error(),
	})
}

// ApplyOverrides applies the verification gates to a screening score. The
// background check's recommendation stays advisory except for a sex-offender
// match, which forces DECLINE regardless of the composite score.
func ApplyOverrides(score models.ScreeningScore, bundle *models.VerificationBundle) models.ScreeningScore {
	if bundle == nil || bundle.Background == nil {
		return score
	}
	if bundle.Background.SexOffenderMatch {
		score.Recommendation = models.RecommendDecline
		score.RiskLevel = models.RiskCritical
	}
	return score
}

// Completeness returns the fraction of the three signals that arrived, used
// to discount confidence when collaborators degrade.
func Completeness(bundle *models.VerificationBundle) float64 {
	if bundle == nil {
		return 0
	}
	present := 0
	if bundle.Credit != nil {
		present++
	}
	if bundle.Background != nil {
		present++
	}
	if bundle.Documents != nil {
		present++
	}
	return float64(present) / 3
}
