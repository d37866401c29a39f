package entag

import "math"

// A Sequence is an ordered run of decoded outcomes together with the
// per-step probability of each outcome and a cumulative score. The score is
// the sum of the log probabilities, so higher is better and the ranking
// matches the naive product of step probabilities exactly.
//
// Sequences are immutable once built; the decoder extends them by copying.
type Sequence struct {
	outcomes []string
	probs    []float64
	score    float64
}

// Outcomes returns the outcome labels, one per decoded token.
func (s Sequence) Outcomes() []string {
	out := make([]string, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Probs returns the per-step probabilities, parallel to Outcomes.
func (s Sequence) Probs() []float64 {
	probs := make([]float64, len(s.probs))
	copy(probs, s.probs)
	return probs
}

// Score returns the cumulative log probability.
func (s Sequence) Score() float64 { return s.score }

// Prob returns the joint probability of the sequence. For long sequences
// this can underflow to zero; Score is the underflow-safe form.
func (s Sequence) Prob() float64 { return math.Exp(s.score) }

// Len returns the number of decoded outcomes.
func (s Sequence) Len() int { return len(s.outcomes) }

// extend returns a copy of s with one more outcome appended.
func (s Sequence) extend(outcome string, prob float64) Sequence {
	outcomes := make([]string, len(s.outcomes)+1)
	copy(outcomes, s.outcomes)
	outcomes[len(s.outcomes)] = outcome

	probs := make([]float64, len(s.probs)+1)
	copy(probs, s.probs)
	probs[len(s.probs)] = prob

	return Sequence{
		outcomes: outcomes,
		probs:    probs,
		score:    s.score + math.Log(prob),
	}
}
