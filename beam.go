package entag

import (
	"container/heap"
	"math"
	"sort"
)

// A ContextGenerator produces the feature context handed to the model at
// each decoding position. prior holds the outcomes already assigned to
// tokens 0..index-1; additional carries caller-supplied per-token evidence
// (the chunker passes POS tags this way) and may be nil.
type ContextGenerator interface {
	Context(index int, tokens []string, prior []string, additional []string) []string
}

// A SequenceValidator decides whether outcome may legally extend the
// partial labeling prior at index. Implementations must be pure functions
// of their arguments; the decoder calls them once per surviving candidate
// per position.
type SequenceValidator interface {
	ValidSequence(index int, tokens []string, prior []string, outcome string) bool
}

// ContextGeneratorFunc adapts a function to the ContextGenerator interface.
type ContextGeneratorFunc func(index int, tokens []string, prior []string, additional []string) []string

func (f ContextGeneratorFunc) Context(index int, tokens []string, prior []string, additional []string) []string {
	return f(index, tokens, prior, additional)
}

// SequenceValidatorFunc adapts a function to the SequenceValidator interface.
type SequenceValidatorFunc func(index int, tokens []string, prior []string, outcome string) bool

func (f SequenceValidatorFunc) ValidSequence(index int, tokens []string, prior []string, outcome string) bool {
	return f(index, tokens, prior, outcome)
}

// minSequenceScore floors candidate log scores; extensions below it are
// numerically dead and never enter the beam.
const minSequenceScore = -100000.0

// DefaultBeamSize is the beam width used when a caller does not pick one.
const DefaultBeamSize = 3

// scoredSequence is a beam entry. born records insertion order so that
// equal-scored candidates pop in the order the evaluator produced them,
// which keeps decoding deterministic.
type scoredSequence struct {
	seq  Sequence
	born int
}

type sequenceHeap []scoredSequence

func (h sequenceHeap) Len() int { return len(h) }

func (h sequenceHeap) Less(i, j int) bool {
	if h[i].seq.score != h[j].seq.score {
		return h[i].seq.score > h[j].seq.score
	}
	return h[i].born < h[j].born
}

func (h sequenceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *sequenceHeap) Push(x any) { *h = append(*h, x.(scoredSequence)) }

func (h *sequenceHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BeamSearch decodes a globally consistent outcome sequence from per-token
// maxent evaluations, keeping the best `size` validator-approved partial
// sequences at every position. A BeamSearch holds no per-call state and may
// be used from multiple goroutines.
type BeamSearch struct {
	model     *MaxentModel
	generator ContextGenerator
	validator SequenceValidator
	size      int
}

// NewBeamSearch wires a model and context generator into a decoder of the
// given beam width. A nil validator admits every outcome.
func NewBeamSearch(model *MaxentModel, generator ContextGenerator, validator SequenceValidator, size int) *BeamSearch {
	if size < 1 {
		size = DefaultBeamSize
	}
	return &BeamSearch{
		model:     model,
		generator: generator,
		validator: validator,
		size:      size,
	}
}

func (b *BeamSearch) valid(index int, tokens, prior []string, outcome string) bool {
	return b.validator == nil || b.validator.ValidSequence(index, tokens, prior, outcome)
}

// BestSequence returns the single highest-scoring label sequence for
// tokens. When the validator rejects every continuation at some position
// the result is a zero-length sequence; callers decide what an untaggable
// input means.
func (b *BeamSearch) BestSequence(tokens []string, additional []string) Sequence {
	seqs := b.BestSequences(1, tokens, additional, math.Inf(-1))
	if len(seqs) == 0 {
		return Sequence{}
	}
	return seqs[0]
}

// BestSequences returns up to k complete sequences ordered by descending
// score, keeping only those scoring at least minScore. Pass math.Inf(-1)
// for an unconditional top-k.
func (b *BeamSearch) BestSequences(k int, tokens []string, additional []string, minScore float64) []Sequence {
	prev := make(sequenceHeap, 0, b.size)
	next := make(sequenceHeap, 0, b.size)
	born := 0
	heap.Push(&prev, scoredSequence{seq: Sequence{}, born: born})

	for i := range tokens {
		expand := len(prev)
		if b.size < expand {
			expand = b.size
		}

		for sc := 0; len(prev) > 0 && sc < expand; sc++ {
			top := heap.Pop(&prev).(scoredSequence)
			prior := top.seq.outcomes

			scores := b.model.Eval(b.generator.Context(i, tokens, prior, additional))

			// Only outcomes scoring at least as well as the size-th best
			// are worth expanding; the rest could never survive pruning.
			ranked := make([]float64, len(scores))
			copy(ranked, scores)
			sort.Float64s(ranked)
			cut := len(ranked) - b.size
			if cut < 0 {
				cut = 0
			}
			floor := ranked[cut]

			for p, prob := range scores {
				if prob < floor {
					continue
				}
				outcome := b.model.Outcome(p)
				if !b.valid(i, tokens, prior, outcome) {
					continue
				}
				ns := top.seq.extend(outcome, prob)
				if ns.score > minSequenceScore {
					born++
					heap.Push(&next, scoredSequence{seq: ns, born: born})
				}
			}

			// Nothing above the cutoff survived validation; rescan the
			// whole distribution before giving up on this candidate.
			if len(next) == 0 {
				for p, prob := range scores {
					outcome := b.model.Outcome(p)
					if !b.valid(i, tokens, prior, outcome) {
						continue
					}
					ns := top.seq.extend(outcome, prob)
					if ns.score > minSequenceScore {
						born++
						heap.Push(&next, scoredSequence{seq: ns, born: born})
					}
				}
			}
		}

		// Exactly the top `size` continuations survive into the next
		// generation.
		survivors := make(sequenceHeap, 0, b.size)
		for len(next) > 0 && len(survivors) < b.size {
			heap.Push(&survivors, heap.Pop(&next).(scoredSequence))
		}
		prev = survivors
		next = next[:0]
	}

	if k > len(prev) {
		k = len(prev)
	}
	result := make([]Sequence, 0, k)
	for len(prev) > 0 && len(result) < k {
		top := heap.Pop(&prev).(scoredSequence)
		if top.seq.score < minScore {
			break // heap pops in descending order, the rest score lower
		}
		result = append(result, top.seq)
	}
	return result
}
