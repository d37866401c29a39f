package entag

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// A Context pairs the outcomes a feature predicate was observed with against
// the learned weight the predicate contributes to each of those outcomes.
type Context struct {
	Outcomes   []int
	Parameters []float64
}

// MaxentModel is a log-linear classification model over a fixed outcome
// vocabulary. It is immutable after construction and safe for concurrent
// readers; many decoders may share one model.
type MaxentModel struct {
	labels     []string
	predicates map[string]int
	contexts   []Context

	// GIS correction terms. Zero for models trained without them, in which
	// case evaluation is a plain softmax over the accumulated weights.
	correctionConstant float64
	correctionParam    float64
}

// A MaxentOption adjusts model construction.
type MaxentOption func(*MaxentModel)

// WithCorrection supplies the iterative-scaling correction constant and
// parameter recorded at training time.
func WithCorrection(constant, param float64) MaxentOption {
	return func(m *MaxentModel) {
		m.correctionConstant = constant
		m.correctionParam = param
	}
}

// NewMaxentModel builds a model from already-learned weights. The predicate
// map assigns each feature-predicate name an index into contexts. The table
// is validated up front: a model that refers to unknown outcomes or carries
// mismatched weight arrays is rejected rather than evaluated.
func NewMaxentModel(labels []string, predicates map[string]int, contexts []Context, opts ...MaxentOption) (*MaxentModel, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("maxent: no outcome labels")
	}
	for name, pid := range predicates {
		if pid < 0 || pid >= len(contexts) {
			return nil, fmt.Errorf("maxent: predicate %q maps to context %d, have %d contexts", name, pid, len(contexts))
		}
	}
	for i, ctx := range contexts {
		if len(ctx.Outcomes) != len(ctx.Parameters) {
			return nil, fmt.Errorf("maxent: context %d has %d outcomes but %d parameters", i, len(ctx.Outcomes), len(ctx.Parameters))
		}
		for _, oid := range ctx.Outcomes {
			if oid < 0 || oid >= len(labels) {
				return nil, fmt.Errorf("maxent: context %d refers to outcome %d, have %d labels", i, oid, len(labels))
			}
		}
	}

	m := &MaxentModel{
		labels:     labels,
		predicates: predicates,
		contexts:   contexts,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.correctionConstant < 0 {
		return nil, fmt.Errorf("maxent: negative correction constant %f", m.correctionConstant)
	}
	return m, nil
}

// Outcomes returns the model's outcome vocabulary. The order is stable and
// matches the indices of the distributions returned by Eval.
func (m *MaxentModel) Outcomes() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Outcome returns the label at index i.
func (m *MaxentModel) Outcome(i int) string { return m.labels[i] }

// NumOutcomes returns the size of the outcome vocabulary.
func (m *MaxentModel) NumOutcomes() int { return len(m.labels) }

// Eval computes the probability distribution over all outcomes for a
// context of binary-valued feature predicates.
func (m *MaxentModel) Eval(context []string) []float64 {
	return m.EvalValues(context, nil)
}

// EvalValues computes the probability distribution over all outcomes, with
// values[i] weighting the contribution of context[i]. A nil values slice
// means every predicate counts as 1. Predicates the model has never seen
// contribute nothing; a context with no known predicates yields the model's
// neutral (uniform) distribution.
func (m *MaxentModel) EvalValues(context []string, values []float64) []float64 {
	scores := make([]float64, len(m.labels))
	var active []float64
	if m.correctionConstant > 0 {
		active = make([]float64, len(m.labels))
	}

	for i, name := range context {
		pid, ok := m.predicates[name]
		if !ok {
			continue
		}
		value := 1.0
		if values != nil {
			value = values[i]
		}
		ctx := m.contexts[pid]
		for j, oid := range ctx.Outcomes {
			scores[oid] += ctx.Parameters[j] * value
			if active != nil {
				active[oid] += value
			}
		}
	}

	if m.correctionConstant > 0 {
		inv := 1.0 / m.correctionConstant
		for oid := range scores {
			scores[oid] = scores[oid]*inv + (1.0-active[oid]*inv)*m.correctionParam
		}
	}

	// Normalize in log space; exponentiating first would overflow for
	// models with large weights.
	sum := floats.LogSumExp(scores)
	for i := range scores {
		scores[i] = math.Exp(scores[i] - sum)
	}
	return scores
}

// BestOutcome returns the label with the highest probability in a
// distribution produced by Eval.
func (m *MaxentModel) BestOutcome(probs []float64) string {
	best, max := 0, math.Inf(-1)
	for i, p := range probs {
		if p > max {
			best, max = i, p
		}
	}
	return m.labels[best]
}
