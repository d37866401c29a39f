package entag

import (
	"strconv"
	"strings"
)

// A NameFinder locates typed named-entity spans. It decodes BIO-style
// labels with the shared beam decoder, constrained by its codec's grammar,
// and hands the flat labels back to the codec for span extraction.
type NameFinder struct {
	model *MaxentModel
	codec SequenceCodec
	beam  *BeamSearch
}

// A NameFinderOption adjusts finder construction.
type NameFinderOption func(*finderConfig)

type finderConfig struct {
	beamSize int
}

// FinderBeamSize overrides the default beam width.
func FinderBeamSize(size int) NameFinderOption {
	return func(c *finderConfig) { c.beamSize = size }
}

// NewNameFinder builds a finder around an already-learned model. The codec
// chooses the span coding; its validator keeps the decoder from emitting
// label runs the codec cannot decode.
func NewNameFinder(model *MaxentModel, codec SequenceCodec, opts ...NameFinderOption) *NameFinder {
	cfg := finderConfig{beamSize: DefaultBeamSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &NameFinder{
		model: model,
		codec: codec,
		beam:  NewBeamSearch(model, nameContextGenerator{}, codec.Validator(), cfg.beamSize),
	}
}

// Find returns the entity spans in words. tags supplies a POS tag per word
// as extra evidence and may be nil. Each span's Prob is the mean
// probability of the labels that formed it.
func (f *NameFinder) Find(words, tags []string) []Span {
	seq := f.beam.BestSequence(words, tags)
	labels := seq.Outcomes()
	probs := seq.Probs()

	spans := f.codec.Decode(labels)
	for i, s := range spans {
		total := 0.0
		for j := s.Start; j < s.End; j++ {
			total += probs[j]
		}
		spans[i].Prob = total / float64(s.End-s.Start)
	}
	return spans
}

// Labels returns the raw per-token label sequence for words, for callers
// that want the flat coding rather than spans.
func (f *NameFinder) Labels(words, tags []string) []string {
	return f.beam.BestSequence(words, tags).Outcomes()
}

// FindTokens labels tokens in place and coalesces the resulting spans into
// entities with character offsets taken from the tokens.
func (f *NameFinder) FindTokens(tokens []*Token) []Entity {
	words := make([]string, len(tokens))
	tags := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
		tags[i] = tok.Tag
	}

	seq := f.beam.BestSequence(words, tags)
	labels := seq.Outcomes()
	probs := seq.Probs()
	for i := range labels {
		tokens[i].Label = labels[i]
	}

	spans := f.codec.Decode(labels)
	for i, s := range spans {
		total := 0.0
		for j := s.Start; j < s.End; j++ {
			total += probs[j]
		}
		spans[i].Prob = total / float64(s.End-s.Start)
	}
	entities := make([]Entity, 0, len(spans))
	for _, s := range spans {
		parts := make([]string, 0, s.End-s.Start)
		for j := s.Start; j < s.End; j++ {
			parts = append(parts, tokens[j].Text)
		}
		entities = append(entities, Entity{
			Text:       strings.Join(parts, " "),
			Label:      s.Type,
			Start:      tokens[s.Start].Start,
			End:        tokens[s.End-1].End,
			Confidence: s.Prob,
		})
	}
	return entities
}

// nameContextGenerator builds the NER feature context: the word, its
// orthography and affixes, the neighboring words, the POS tag when the
// caller supplies one, and the previously decoded label.
type nameContextGenerator struct{}

func (nameContextGenerator) Context(i int, tokens, prior, additional []string) []string {
	word := tokens[i]
	feats := make([]string, 0, 16)
	feats = append(feats,
		"bias",
		"w="+word,
		"wl="+strings.ToLower(word),
		"shape="+shape(word),
		"suf3="+nSuffix(word, 3),
		"pre3="+nPrefix(word, 3),
		"wlen="+strconv.Itoa(len(word)),
	)

	tagged := len(additional) == len(tokens)
	if tagged {
		feats = append(feats, "t="+additional[i])
	}

	if i > 0 {
		prevLabel := prior[i-1]
		feats = append(feats,
			"pw="+strings.ToLower(tokens[i-1]),
			"pl="+prevLabel,
			"pshape="+shape(tokens[i-1]),
		)
		if tagged {
			feats = append(feats, "pt="+additional[i-1], "pl,t="+prevLabel+","+additional[i])
		}
	} else {
		feats = append(feats, "pw=-START-", "pl=-START-")
	}

	if i+1 < len(tokens) {
		feats = append(feats, "nw="+strings.ToLower(tokens[i+1]))
		if tagged {
			feats = append(feats, "nt="+additional[i+1])
		}
	} else {
		feats = append(feats, "nw=-END-")
	}
	return feats
}
