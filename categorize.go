package entag

import (
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
)

// A Categorizer assigns a document to one of a fixed set of categories
// using a bag-of-words maxent model. Stop words are stripped before feature
// extraction so the model sees content words only.
type Categorizer struct {
	model *MaxentModel
	lang  Language
}

// A CategoryScore is one category with its probability.
type CategoryScore struct {
	Category string
	Prob     float64
}

// NewCategorizer builds a categorizer around an already-learned model.
// lang selects the stop-word list.
func NewCategorizer(model *MaxentModel, lang Language) *Categorizer {
	return &Categorizer{model: model, lang: lang}
}

// Categories returns the category vocabulary.
func (c *Categorizer) Categories() []string { return c.model.Outcomes() }

// Categorize returns the most probable category for text together with the
// full distribution over categories.
func (c *Categorizer) Categorize(text string) (string, []float64) {
	context, values := c.features(text)
	probs := c.model.EvalValues(context, values)
	return c.model.BestOutcome(probs), probs
}

// Rank returns every category with its probability, best first.
func (c *Categorizer) Rank(text string) []CategoryScore {
	_, probs := c.Categorize(text)
	labels := c.model.Outcomes()
	ranked := make([]CategoryScore, len(labels))
	for i, label := range labels {
		ranked[i] = CategoryScore{Category: label, Prob: probs[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Prob > ranked[j].Prob })
	return ranked
}

// features turns text into a bag-of-words context with term counts as
// feature values.
func (c *Categorizer) features(text string) ([]string, []float64) {
	clean := stopwords.CleanString(text, string(c.lang), false)

	counts := make(map[string]float64)
	order := []string{}
	for _, word := range strings.Fields(clean) {
		key := "bow=" + strings.ToLower(word)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	values := make([]float64, len(order))
	for i, key := range order {
		values[i] = counts[key]
	}
	return order, values
}
