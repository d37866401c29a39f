package entag

import (
	"context"
	"sync"
	"time"
)

// A DocOpt represents a setting that changes the document creation process.
//
// For example, it might disable named-entity extraction:
//
//	doc := entag.NewDocument("...", entag.WithExtraction(false))
type DocOpt func(doc *Document, opts *DocOpts)

// DocOpts controls the Document creation process:
type DocOpts struct {
	Extract    bool            // If true, include named-entity extraction
	Segment    bool            // If true, include segmentation
	Tag        bool            // If true, include POS tagging
	Chunk      bool            // If true, include phrase chunking
	Categorize bool            // If true, include document categorization
	Tokenizer  Tokenizer       // Tokenizer to use
	Context    context.Context // Context for cancellation and timeouts
	Timeout    time.Duration   // Processing timeout
	Language   Language        // Document language
}

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(include Tokenizer) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		// Tagging and entity extraction both require tokenization.
		opts.Tokenizer = include
	}
}

// WithTagging can enable (the default) or disable POS tagging.
func WithTagging(include bool) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Tag = include
	}
}

// WithSegmentation can enable (the default) or disable sentence segmentation.
func WithSegmentation(include bool) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Segment = include
	}
}

// WithExtraction can enable (the default) or disable named-entity extraction.
func WithExtraction(include bool) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Extract = include
	}
}

// WithChunking can enable or disable (the default) phrase chunking.
func WithChunking(include bool) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Chunk = include
	}
}

// WithCategorization can enable or disable (the default) document
// categorization.
func WithCategorization(include bool) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Categorize = include
	}
}

// UsingModel sets the model supplying the per-task weight tables.
func UsingModel(model *Model) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		doc.Model = model
	}
}

// WithContext sets the context for document processing
func WithContext(ctx context.Context) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Context = ctx
	}
}

// WithTimeout sets a timeout for document processing
func WithTimeout(timeout time.Duration) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Timeout = timeout
	}
}

// WithLanguage sets the document language
func WithLanguage(lang Language) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Language = lang
	}
}

// A Document represents a parsed body of text.
type Document struct {
	Model    *Model
	Text     string
	Metadata DocumentMetadata

	entities  []Entity
	sentences []Sentence
	tokens    []*Token
	chunks    []Span
	category  string
}

// Tokens returns `doc`'s tokens.
func (doc *Document) Tokens() []Token {
	tokens := make([]Token, 0, len(doc.tokens))
	for _, tok := range doc.tokens {
		tokens = append(tokens, *tok)
	}
	return tokens
}

// Sentences returns `doc`'s sentences.
func (doc *Document) Sentences() []Sentence {
	return doc.sentences
}

// Entities returns `doc`'s entities.
func (doc *Document) Entities() []Entity {
	return doc.entities
}

// Chunks returns `doc`'s phrase spans over its token sequence.
func (doc *Document) Chunks() []Span {
	return doc.chunks
}

// Category returns the document category, or "" when categorization did
// not run.
func (doc *Document) Category() string {
	return doc.category
}

var defaultOpts = DocOpts{
	Tokenizer: NewIterTokenizer(),
	Segment:   true,
	Tag:       true,
	Extract:   true,
	Context:   context.Background(),
	Timeout:   30 * time.Second,
	Language:  English,
}

// The Punkt parameters load once; every document shares the segmenter.
var (
	segmenterOnce sync.Once
	segmenter     *punktSentenceTokenizer
	segmenterErr  error
)

func defaultSegmenter() (*punktSentenceTokenizer, error) {
	segmenterOnce.Do(func() {
		segmenter, segmenterErr = newPunktSentenceTokenizer()
	})
	return segmenter, segmenterErr
}

// NewDocument creates a Document according to the user-specified options.
//
// Stages that need a model component the supplied Model does not carry are
// skipped; a document built without a model still segments and tokenizes.
//
// For example,
//
//	doc := entag.NewDocument("...", entag.UsingModel(model))
func NewDocument(text string, opts ...DocOpt) (*Document, error) {
	startTime := time.Now()

	doc := Document{
		Text: text,
		Metadata: DocumentMetadata{
			ProcessedAt: startTime,
			Version:     "v1.0.0",
		},
	}

	base := defaultOpts
	for _, applyOpt := range opts {
		applyOpt(&doc, &base)
	}

	ctx := base.Context
	if base.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, base.Timeout)
		defer cancel()
	}

	checkpoint := func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	doc.Metadata.Language = base.Language

	if base.Segment {
		if err := checkpoint(); err != nil {
			return nil, err
		}
		seg, err := defaultSegmenter()
		if err != nil {
			return nil, err
		}
		doc.sentences = seg.segment(text)
		doc.Metadata.SentenceCount = len(doc.sentences)
	}

	if base.Tokenizer != nil {
		if err := checkpoint(); err != nil {
			return nil, err
		}
		doc.tokens = append(doc.tokens, base.Tokenizer.Tokenize(text)...)
		doc.Metadata.TokenCount = len(doc.tokens)
	}

	if doc.Model == nil {
		doc.Metadata.ProcessingTimeMs = time.Since(startTime).Milliseconds()
		return &doc, nil
	}

	if (base.Tag || base.Extract || base.Chunk) && doc.Model.tagger != nil {
		if err := checkpoint(); err != nil {
			return nil, err
		}
		doc.tokens = doc.Model.tagger.TagTokens(doc.tokens)
	}

	if base.Extract && doc.Model.finder != nil {
		if err := checkpoint(); err != nil {
			return nil, err
		}
		doc.entities = doc.Model.finder.FindTokens(doc.tokens)
		doc.Metadata.EntityCount = len(doc.entities)
	}

	if base.Chunk && doc.Model.chunker != nil {
		if err := checkpoint(); err != nil {
			return nil, err
		}
		words := make([]string, len(doc.tokens))
		tags := make([]string, len(doc.tokens))
		for i, tok := range doc.tokens {
			words[i] = tok.Text
			tags[i] = tok.Tag
		}
		doc.chunks = doc.Model.chunker.ChunkSpans(words, tags)
	}

	if base.Categorize && doc.Model.categorizer != nil {
		if err := checkpoint(); err != nil {
			return nil, err
		}
		doc.category, _ = doc.Model.categorizer.Categorize(text)
	}

	doc.Metadata.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	return &doc, nil
}
