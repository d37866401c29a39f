package entag

import (
	"math"
	"strings"
)

// NGramConfig configures an n-gram language model.
type NGramConfig struct {
	// Order is the maximum n-gram length (2 for bigram, 3 for trigram).
	Order int
	// BackoffAlpha discounts scores when backing off to a shorter history.
	BackoffAlpha float64
	// SmoothingThreshold is the observed-token count above which the model
	// switches from Laplace smoothing to stupid backoff. Laplace behaves
	// better on small corpora, backoff on large ones; the crossover point
	// is corpus-dependent, so it is a setting rather than a constant.
	SmoothingThreshold int
}

// DefaultNGramConfig returns a trigram configuration with the conventional
// 0.4 backoff discount.
func DefaultNGramConfig() NGramConfig {
	return NGramConfig{
		Order:              3,
		BackoffAlpha:       0.4,
		SmoothingThreshold: 100000,
	}
}

// An NGramModel scores token sequences from observed n-gram counts. It is
// auxiliary evidence for the toolkit, not part of the decoder: callers mix
// its scores into their own ranking.
//
// Observe and the scoring methods must not be interleaved concurrently.
type NGramModel struct {
	config NGramConfig
	counts []map[string]int
	tokens int
	vocab  map[string]struct{}
}

// NewNGramModel creates an empty model.
func NewNGramModel(config NGramConfig) *NGramModel {
	if config.Order < 1 {
		config.Order = 1
	}
	counts := make([]map[string]int, config.Order)
	for i := range counts {
		counts[i] = make(map[string]int)
	}
	return &NGramModel{
		config: config,
		counts: counts,
		vocab:  make(map[string]struct{}),
	}
}

// Observe adds the n-grams of one token sequence to the model's counts.
func (m *NGramModel) Observe(tokens []string) {
	m.tokens += len(tokens)
	for _, tok := range tokens {
		m.vocab[tok] = struct{}{}
	}
	for n := 1; n <= m.config.Order; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			m.counts[n-1][strings.Join(tokens[i:i+n], " ")]++
		}
	}
}

// LogProb returns the log probability of word following history, backing
// off to shorter histories as needed.
func (m *NGramModel) LogProb(history []string, word string) float64 {
	if len(history) > m.config.Order-1 {
		history = history[len(history)-(m.config.Order-1):]
	}
	return m.logProb(history, word)
}

func (m *NGramModel) logProb(history []string, word string) float64 {
	if m.tokens >= m.config.SmoothingThreshold {
		return m.backoffLogProb(history, word)
	}
	return m.laplaceLogProb(history, word)
}

// backoffLogProb implements stupid backoff: use the longest observed
// history, discounting by alpha per backoff step. The result is a score,
// not a normalized probability, which is fine for ranking.
func (m *NGramModel) backoffLogProb(history []string, word string) float64 {
	n := len(history) + 1
	gram := strings.Join(append(append([]string{}, history...), word), " ")
	if c := m.counts[n-1][gram]; c > 0 {
		denom := m.historyCount(history)
		if denom > 0 {
			return math.Log(float64(c) / float64(denom))
		}
	}
	if len(history) == 0 {
		// Unseen unigram: one count over the corpus size.
		return math.Log(1.0 / float64(m.tokens+1))
	}
	return math.Log(m.config.BackoffAlpha) + m.backoffLogProb(history[1:], word)
}

// laplaceLogProb implements add-one smoothing against the highest order
// with an observed history, normalized by vocabulary size.
func (m *NGramModel) laplaceLogProb(history []string, word string) float64 {
	for len(history) > 0 && m.historyCount(history) == 0 {
		history = history[1:]
	}
	n := len(history) + 1
	gram := strings.Join(append(append([]string{}, history...), word), " ")
	num := float64(m.counts[n-1][gram] + 1)
	denom := float64(m.historyCount(history) + len(m.vocab) + 1)
	return math.Log(num / denom)
}

func (m *NGramModel) historyCount(history []string) int {
	if len(history) == 0 {
		return m.tokens
	}
	return m.counts[len(history)-1][strings.Join(history, " ")]
}

// Score returns the total log probability of a token sequence.
func (m *NGramModel) Score(tokens []string) float64 {
	total := 0.0
	for i, tok := range tokens {
		lo := i - (m.config.Order - 1)
		if lo < 0 {
			lo = 0
		}
		total += m.LogProb(tokens[lo:i], tok)
	}
	return total
}
