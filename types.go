package entag

import (
	"sync"
	"time"
)

// A Token represents an individual token of text such as a word or
// punctuation symbol.
type Token struct {
	Tag        string  // The token's part-of-speech tag.
	Text       string  // The token's actual content.
	Label      string  // The token's BIO entity label.
	Start      int     // Start position in original text
	End        int     // End position in original text
	Confidence float64 // Probability of the assigned tag (0.0-1.0)
}

// An Entity represents an individual named-entity.
type Entity struct {
	Text       string  // The entity's actual content.
	Label      string  // The entity's type.
	Start      int     // Start position in original text
	End        int     // End position in original text
	Confidence float64 // Mean label probability over the entity's tokens
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string // The sentence's text.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// TokenPool manages a pool of Token objects to reduce GC pressure
type TokenPool struct {
	pool sync.Pool
}

// NewTokenPool creates a new token pool
func NewTokenPool() *TokenPool {
	return &TokenPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Token{}
			},
		},
	}
}

// Get retrieves a token from the pool
func (tp *TokenPool) Get() *Token {
	return tp.pool.Get().(*Token)
}

// Put returns a token to the pool
func (tp *TokenPool) Put(token *Token) {
	*token = Token{}
	tp.pool.Put(token)
}

// Language selects a stop-word list and, eventually, per-language models.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
	German  Language = "de"
)

// DocumentMetadata contains metadata about processed documents
type DocumentMetadata struct {
	Language         Language
	ProcessedAt      time.Time
	ProcessingTimeMs int64
	TokenCount       int
	SentenceCount    int
	EntityCount      int
	Version          string
}
