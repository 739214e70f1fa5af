// internal/engine/engine.go
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	comerrors "screening-workers/internal/common/errors"
	"screening-workers/internal/common/logger"
	"screening-workers/internal/models"
)

// MetricsSink receives one update per completed screening.
type MetricsSink interface {
	RecordScreening(ctx context.Context, recommendation models.Recommendation, latency time.Duration, confidence float64)
}

// Engine screens applicants. It is safe for concurrent use: inference reads
// an immutable model snapshot through an atomic pointer, and training swaps
// in a complete replacement or leaves the old snapshot untouched.
type Engine struct {
	log      logger.Logger
	modelSet atomic.Pointer[TrainedModelSet]
	trainMu  sync.Mutex
	// inferSem bounds the CPU-bound normalize/score work so concurrent
	// screenings cannot saturate the process.
	inferSem *semaphore.Weighted
	sink     MetricsSink
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetricsSink attaches the per-screening metrics recorder.
func WithMetricsSink(sink MetricsSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithInferenceConcurrency bounds concurrent CPU-bound scoring work.
func WithInferenceConcurrency(n int64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.inferSem = semaphore.NewWeighted(n)
		}
	}
}

// NewEngine constructs an engine in rule-based mode. Callers train it or
// load a persisted model set to enable model inference.
func NewEngine(log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		log:      log.WithFields(map[string]interface{}{"component": "screening-engine"}),
		inferSem: semaphore.NewWeighted(4),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Trained reports whether a trained model set is installed.
func (e *Engine) Trained() bool {
	set := e.modelSet.Load()
	return set != nil && set.IsTrained
}

// Train fits a new model set from the labeled batch and installs it
// atomically. On any failure the previously installed set is left untouched.
func (e *Engine) Train(ctx context.Context, batch []TrainingExample) error {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	set, err := trainModelSet(batch)
	if err != nil {
		e.log.Error("training failed, keeping previous model set", map[string]interface{}{
			"error": err.Error(),
			"rows":  len(batch),
		})
		return comerrors.NewTrainingFailedError(err)
	}

	e.modelSet.Store(set)
	e.log.Info("model set trained", map[string]interface{}{
		"rows":      len(batch),
		"trainedAt": set.TrainedAt,
	})
	return nil
}

// SaveModelSet persists the currently installed model set as one artifact.
func (e *Engine) SaveModelSet(path string) error {
	set := e.modelSet.Load()
	if set == nil || !set.IsTrained {
		return fmt.Errorf("no trained model set to save")
	}
	if err := set.saveTo(path); err != nil {
		e.log.Error("model persistence failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return comerrors.NewModelPersistenceError("save", err)
	}
	return nil
}

// LoadModelSet loads a persisted artifact and installs it atomically.
func (e *Engine) LoadModelSet(path string) error {
	set, err := loadModelSet(path)
	if err != nil {
		e.log.Error("model load failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return comerrors.NewModelPersistenceError("load", err)
	}
	e.modelSet.Store(set)
	e.log.Info("model set loaded", map[string]interface{}{
		"path":      path,
		"trainedAt": set.TrainedAt,
	})
	return nil
}

// ScreenApplicant scores one applicant. It never fails: any internal error
// degrades to the fail-safe result (all neutral sub-scores, HIGH risk,
// DECLINE, confidence 0.1).
func (e *Engine) ScreenApplicant(ctx context.Context, rec models.ApplicantRecord) (result models.ScreeningScore) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("screening recovered from panic", map[string]interface{}{
				"applicantId": rec.ApplicantID,
				"panic":       fmt.Sprint(r),
			})
			result = e.degradedResult(rec)
		}
		if e.sink != nil {
			e.sink.RecordScreening(ctx, result.Recommendation, time.Since(start), result.Confidence)
		}
	}()

	// CPU-bound work runs under the bounded pool; a caller whose context is
	// already done gets the fail-safe result instead of queueing.
	if err := e.inferSem.Acquire(ctx, 1); err != nil {
		e.log.Warn("screening rejected, inference pool unavailable", map[string]interface{}{
			"applicantId": rec.ApplicantID,
			"error":       err.Error(),
		})
		return e.degradedResult(rec)
	}
	defer e.inferSem.Release(1)

	sub := models.SubScores{
		Credit:        AssessCredit(rec),
		Income:        AssessIncome(rec),
		RentalHistory: AssessRentalHistory(rec),
		Employment:    AssessEmployment(rec),
		References:    AssessReferences(rec),
	}

	var (
		fraudScore float64
		confidence float64
		method     models.ScoringMethod
	)

	set := e.modelSet.Load()
	if set == nil || !set.IsTrained {
		// Rule-based fallback: no fraud signal, fixed confidence.
		fraudScore = ruleBasedFraudScore
		confidence = ruleBasedConfidence
		method = models.MethodRuleBased
	} else {
		fraudScore, confidence = e.modelScores(rec, set)
		method = models.MethodModel
	}

	overall := CompositeScore(sub, fraudScore)
	riskLevel, recommendation := Decide(overall, fraudScore, sub.Credit)

	return models.ScreeningScore{
		ScreeningID:    uuid.NewString(),
		ApplicantID:    rec.ApplicantID,
		OverallScore:   clamp(overall, 0, 100),
		SubScores:      sub,
		FraudRiskScore: fraudScore,
		RiskLevel:      riskLevel,
		Recommendation: recommendation,
		Confidence:     confidence,
		Method:         method,
		ScreenedAt:     time.Now().UTC(),
	}
}

// modelScores runs fraud inference and confidence estimation against the
// installed snapshot. Inference errors substitute safe defaults rather than
// failing the screening.
func (e *Engine) modelScores(rec models.ApplicantRecord, set *TrainedModelSet) (fraudScore, confidence float64) {
	modelFraudProbability := defaultModelFraudProbability
	modelConfidence := fallbackModelConfidence

	features, err := set.Normalizer.Transform(rec)
	if err != nil || features.Empty() {
		// Empty feature vector: skip model paths, heuristics only.
		if err != nil {
			e.log.Warn("feature preparation failed, using heuristic fraud path", map[string]interface{}{
				"applicantId": rec.ApplicantID,
				"error":       err.Error(),
			})
		}
	} else {
		modelFraudProbability = set.Fraud.PredictProba(features.Values)
		modelConfidence = set.Approval.ClassConfidence(features.Values)
	}

	heuristicRisk := HeuristicFraudRisk(CountFraudIndicators(rec))
	fraudScore = BlendFraudRisk(heuristicRisk, modelFraudProbability*100)
	confidence = EstimateConfidence(rec, modelConfidence)
	return fraudScore, confidence
}

func (e *Engine) degradedResult(rec models.ApplicantRecord) models.ScreeningScore {
	return models.ScreeningScore{
		ScreeningID:  uuid.NewString(),
		ApplicantID:  rec.ApplicantID,
		OverallScore: neutralScore,
		SubScores: models.SubScores{
			Credit:        neutralScore,
			Income:        neutralScore,
			RentalHistory: neutralScore,
			Employment:    neutralScore,
			References:    neutralScore,
		},
		FraudRiskScore: neutralScore,
		RiskLevel:      models.RiskHigh,
		Recommendation: models.RecommendDecline,
		Confidence:     minConfidence,
		Method:         models.MethodRuleBased,
		ScreenedAt:     time.Now().UTC(),
	}
}
