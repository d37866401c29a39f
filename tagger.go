package entag

import "strings"

// A Tagger assigns part-of-speech tags by running its maxent model through
// the shared beam decoder. Tag choices at each position feed the features
// of the positions after it, which is why tagging is a sequence problem and
// not a per-token one.
type Tagger struct {
	model *MaxentModel
	beam  *BeamSearch
}

// A TaggerOption adjusts tagger construction.
type TaggerOption func(*taggerConfig)

type taggerConfig struct {
	beamSize  int
	validator SequenceValidator
}

// TaggerBeamSize overrides the default beam width.
func TaggerBeamSize(size int) TaggerOption {
	return func(c *taggerConfig) { c.beamSize = size }
}

// TaggerValidator restricts the tags the decoder may assign, e.g. from a
// tag dictionary.
func TaggerValidator(v SequenceValidator) TaggerOption {
	return func(c *taggerConfig) { c.validator = v }
}

// NewTagger builds a tagger around an already-learned model.
func NewTagger(model *MaxentModel, opts ...TaggerOption) *Tagger {
	cfg := taggerConfig{beamSize: DefaultBeamSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tagger{
		model: model,
		beam:  NewBeamSearch(model, posContextGenerator{}, cfg.validator, cfg.beamSize),
	}
}

// Tag returns one tag per input word along with the per-word probability of
// the chosen tag. Both slices are empty when no legal tagging exists.
func (t *Tagger) Tag(words []string) ([]string, []float64) {
	seq := t.beam.BestSequence(words, nil)
	return seq.Outcomes(), seq.Probs()
}

// TagTopK returns the k best complete taggings in descending score order.
func (t *Tagger) TagTopK(k int, words []string) []Sequence {
	return t.beam.BestSequences(k, words, nil, minSequenceScore)
}

// TagTokens tags tokens in place and returns them, for pipeline use.
func (t *Tagger) TagTokens(tokens []*Token) []*Token {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
	}
	tags, probs := t.Tag(words)
	for i := range tags {
		tokens[i].Tag = tags[i]
		tokens[i].Confidence = probs[i]
	}
	return tokens
}

// Outcomes returns the tagger's tag vocabulary.
func (t *Tagger) Outcomes() []string { return t.model.Outcomes() }

// posContextGenerator builds the tagging feature context: the word and its
// orthography, a two-word window, and the two previously assigned tags.
type posContextGenerator struct{}

func (posContextGenerator) Context(i int, tokens, prior, additional []string) []string {
	word := tokens[i]
	prev, prev2 := "-START-", "-START2-"
	if i >= 1 {
		prev = prior[i-1]
	}
	if i >= 2 {
		prev2 = prior[i-2]
	}

	feats := make([]string, 0, 12)
	feats = append(feats,
		"bias",
		"w="+normalize(word),
		"suf="+nSuffix(word, 3),
		"pre="+nPrefix(word, 1),
		"shape="+shape(word),
		"p="+prev,
		"pp="+prev2,
		"p,pp="+prev+","+prev2,
		"p,w="+prev+","+strings.ToLower(word),
	)
	if i > 0 {
		feats = append(feats, "pw="+normalize(tokens[i-1]))
	} else {
		feats = append(feats, "pw=-START-")
	}
	if i+1 < len(tokens) {
		feats = append(feats, "nw="+normalize(tokens[i+1]))
	} else {
		feats = append(feats, "nw=-END-")
	}
	return feats
}
