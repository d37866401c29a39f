package entag

// A Chunker performs shallow parsing: it groups a tagged sentence into
// non-overlapping phrase spans (noun phrases, verb phrases and so on),
// decoded as BIO chunk labels by the shared beam decoder.
type Chunker struct {
	model *MaxentModel
	codec SequenceCodec
	beam  *BeamSearch
}

// A ChunkerOption adjusts chunker construction.
type ChunkerOption func(*chunkerConfig)

type chunkerConfig struct {
	beamSize int
}

// ChunkerBeamSize overrides the default beam width.
func ChunkerBeamSize(size int) ChunkerOption {
	return func(c *chunkerConfig) { c.beamSize = size }
}

// NewChunker builds a chunker around an already-learned model.
func NewChunker(model *MaxentModel, opts ...ChunkerOption) *Chunker {
	cfg := chunkerConfig{beamSize: DefaultBeamSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	codec := BioCodec{}
	return &Chunker{
		model: model,
		codec: codec,
		beam:  NewBeamSearch(model, chunkContextGenerator{}, codec.Validator(), cfg.beamSize),
	}
}

// Chunk returns one chunk label per word. tags carries the POS tag of each
// word; chunking without tags is possible but markedly weaker.
func (c *Chunker) Chunk(words, tags []string) []string {
	return c.beam.BestSequence(words, tags).Outcomes()
}

// ChunkSpans returns the phrase spans over words, with each span's Prob set
// to the mean probability of its labels.
func (c *Chunker) ChunkSpans(words, tags []string) []Span {
	seq := c.beam.BestSequence(words, tags)
	labels := seq.Outcomes()
	probs := seq.Probs()

	spans := c.codec.Decode(labels)
	for i, s := range spans {
		total := 0.0
		for j := s.Start; j < s.End; j++ {
			total += probs[j]
		}
		spans[i].Prob = total / float64(s.End-s.Start)
	}
	return spans
}

// chunkContextGenerator builds the chunking feature context: words and POS
// tags in a two-token window plus the two previously decoded chunk labels.
type chunkContextGenerator struct{}

func (chunkContextGenerator) Context(i int, tokens, prior, additional []string) []string {
	at := func(src []string, j int) string {
		if j < 0 {
			return "-START-"
		}
		if j >= len(src) {
			return "-END-"
		}
		return src[j]
	}
	tag := func(j int) string {
		if len(additional) != len(tokens) {
			return "-NONE-"
		}
		return at(additional, j)
	}

	prev, prev2 := "-START-", "-START2-"
	if i >= 1 {
		prev = prior[i-1]
	}
	if i >= 2 {
		prev2 = prior[i-2]
	}

	return []string{
		"bias",
		"w=" + tokens[i],
		"pw=" + at(tokens, i-1),
		"nw=" + at(tokens, i+1),
		"t=" + tag(i),
		"pt=" + tag(i-1),
		"nt=" + tag(i+1),
		"t,pt=" + tag(i) + "," + tag(i-1),
		"t,nt=" + tag(i) + "," + tag(i+1),
		"p=" + prev,
		"pp=" + prev2,
		"p,t=" + prev + "," + tag(i),
	}
}
