package entag

import (
	"fmt"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// punktSentenceTokenizer splits text into sentences with the Punkt
// algorithm, using the pre-trained English parameters that ship with the
// sentences package.
type punktSentenceTokenizer struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func newPunktSentenceTokenizer() (*punktSentenceTokenizer, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("segment: loading sentence tokenizer: %w", err)
	}
	return &punktSentenceTokenizer{tokenizer: tokenizer}, nil
}

// segment splits text into sentences with character offsets into the
// original text.
func (p *punktSentenceTokenizer) segment(text string) []Sentence {
	sents := p.tokenizer.Tokenize(text)
	segments := make([]Sentence, 0, len(sents))

	cursor := 0
	for _, sent := range sents {
		trimmed := strings.TrimSpace(sent.Text)
		if trimmed == "" {
			continue
		}
		start := strings.Index(text[cursor:], trimmed)
		if start < 0 {
			start = 0
		}
		start += cursor
		end := start + len(trimmed)
		segments = append(segments, Sentence{Text: trimmed, Start: start, End: end})
		cursor = end
	}
	return segments
}
