// internal/engine/model.go
package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// The model layer trains three compact models: a bagged, class-balanced
// logistic ensemble for the approval outcome, a linear regressor for the
// risk score, and a second balanced ensemble for fraud detection. Training
// is deterministic for a given batch (fixed seed) so that trained engines
// are reproducible and save/load round-trips exactly.

const (
	ensembleMembers = 7
	trainEpochs     = 200
	learningRate    = 0.05
	l2Penalty       = 0.001
	trainSeed       = 1742
)

// linearModel is a single linear learner over the normalized feature vector.
type linearModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

func (m *linearModel) raw(x []float64) float64 {
	sum := m.Bias
	for i, w := range m.Weights {
		if i < len(x) {
			sum += w * x[i]
		}
	}
	return sum
}

func (m *linearModel) proba(x []float64) float64 {
	return sigmoid(m.raw(x))
}

// ensembleModel averages the probabilities of its bagged members.
type ensembleModel struct {
	Members []linearModel `json:"members"`
}

// PredictProba returns the positive-class probability.
func (e *ensembleModel) PredictProba(x []float64) float64 {
	if len(e.Members) == 0 {
		return 0
	}
	sum := 0.0
	for i := range e.Members {
		sum += e.Members[i].proba(x)
	}
	return sum / float64(len(e.Members))
}

// ClassConfidence is the max class probability, used by the confidence
// estimator.
func (e *ensembleModel) ClassConfidence(x []float64) float64 {
	p := e.PredictProba(x)
	if p < 0.5 {
		return 1 - p
	}
	return p
}

// TrainedModelSet is the only long-lived state of the engine. It is created
// whole by training (or loading) and swapped in atomically; it is never
// mutated in place.
type TrainedModelSet struct {
	Approval   *ensembleModel `json:"approval_model"`
	Risk       *linearModel   `json:"risk_model"`
	Fraud      *ensembleModel `json:"fraud_model"`
	Normalizer *Normalizer    `json:"normalizer"`
	IsTrained  bool           `json:"is_trained"`
	TrainedAt  time.Time      `json:"trained_at"`
}

// trainModelSet builds a complete model set from the batch or fails without
// side effects.
func trainModelSet(batch []TrainingExample) (*TrainedModelSet, error) {
	if len(batch) < 2 {
		return nil, fmt.Errorf("training batch too small: %d rows", len(batch))
	}

	normalizer := &Normalizer{}
	if err := normalizer.Fit(batch); err != nil {
		return nil, fmt.Errorf("fit normalizer: %w", err)
	}

	features := make([][]float64, 0, len(batch))
	approvalLabels := make([]float64, 0, len(batch))
	fraudLabels := make([]float64, 0, len(batch))
	riskTargets := make([]float64, 0, len(batch))
	for _, ex := range batch {
		fv, err := normalizer.Transform(ex.Record)
		if err != nil {
			return nil, fmt.Errorf("transform training row: %w", err)
		}
		features = append(features, fv.Values)
		approvalLabels = append(approvalLabels, boolLabel(ex.ApprovalOutcome))
		fraudLabels = append(fraudLabels, boolLabel(ex.FraudDetected))
		riskTargets = append(riskTargets, ex.RiskScore/100)
	}

	rng := rand.New(rand.NewSource(trainSeed))
	approval, err := trainBalancedEnsemble(features, approvalLabels, rng)
	if err != nil {
		return nil, fmt.Errorf("train approval model: %w", err)
	}
	fraud, err := trainBalancedEnsemble(features, fraudLabels, rng)
	if err != nil {
		return nil, fmt.Errorf("train fraud model: %w", err)
	}
	risk := trainRegressor(features, riskTargets)

	return &TrainedModelSet{
		Approval:   approval,
		Risk:       risk,
		Fraud:      fraud,
		Normalizer: normalizer,
		IsTrained:  true,
		TrainedAt:  time.Now().UTC(),
	}, nil
}

// trainBalancedEnsemble bags logistic learners over bootstrap samples with
// inverse-class-frequency example weights.
func trainBalancedEnsemble(features [][]float64, labels []float64, rng *rand.Rand) (*ensembleModel, error) {
	n := len(features)
	positives := 0.0
	for _, y := range labels {
		positives += y
	}
	negatives := float64(n) - positives
	if positives == 0 || negatives == 0 {
		// Degenerate batch: a single constant learner that always predicts
		// the observed class.
		constBias := -4.0
		if positives > 0 {
			constBias = 4.0
		}
		return &ensembleModel{Members: []linearModel{{
			Weights: make([]float64, len(features[0])),
			Bias:    constBias,
		}}}, nil
	}

	posWeight := float64(n) / (2 * positives)
	negWeight := float64(n) / (2 * negatives)

	members := make([]linearModel, 0, ensembleMembers)
	for m := 0; m < ensembleMembers; m++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		member := trainLogistic(features, labels, idx, posWeight, negWeight)
		members = append(members, member)
	}
	return &ensembleModel{Members: members}, nil
}

func trainLogistic(features [][]float64, labels []float64, idx []int, posWeight, negWeight float64) linearModel {
	dim := len(features[0])
	model := linearModel{Weights: make([]float64, dim)}

	for epoch := 0; epoch < trainEpochs; epoch++ {
		for _, i := range idx {
			x, y := features[i], labels[i]
			weight := negWeight
			if y > 0.5 {
				weight = posWeight
			}
			grad := (model.proba(x) - y) * weight
			for j := 0; j < dim && j < len(x); j++ {
				model.Weights[j] -= learningRate * (grad*x[j] + l2Penalty*model.Weights[j])
			}
			model.Bias -= learningRate * grad
		}
	}
	return model
}

// trainRegressor fits the risk regressor with plain least-squares gradient
// descent over the normalized targets.
func trainRegressor(features [][]float64, targets []float64) *linearModel {
	dim := len(features[0])
	model := &linearModel{Weights: make([]float64, dim)}

	for epoch := 0; epoch < trainEpochs; epoch++ {
		for i, x := range features {
			grad := model.raw(x) - targets[i]
			for j := 0; j < dim && j < len(x); j++ {
				model.Weights[j] -= learningRate * (grad*x[j] + l2Penalty*model.Weights[j])
			}
			model.Bias -= learningRate * grad
		}
	}
	return model
}

// PredictRisk returns the regressed risk score on the 0-100 scale.
func (s *TrainedModelSet) PredictRisk(x []float64) float64 {
	if s.Risk == nil {
		return 50
	}
	return clamp(s.Risk.raw(x)*100, 0, 100)
}

// saveTo writes the whole model set as a single JSON artifact, atomically
// via temp file + rename.
func (s *TrainedModelSet) saveTo(path string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal model set: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "modelset-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// loadModelSet reads and validates a persisted artifact.
func loadModelSet(path string) (*TrainedModelSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var set TrainedModelSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if !set.IsTrained || set.Approval == nil || set.Fraud == nil || set.Risk == nil ||
		set.Normalizer == nil || !set.Normalizer.Fitted {
		return nil, fmt.Errorf("artifact at %s is incomplete", path)
	}
	return &set, nil
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func boolLabel(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
