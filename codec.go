package entag

import (
	"fmt"
	"strings"
)

// A Span is a contiguous typed range over a token sequence. Start is
// inclusive, End exclusive, and 0 <= Start < End always holds for spans
// produced by this package.
type Span struct {
	Start int
	End   int
	Type  string
	Prob  float64
}

func (s Span) String() string {
	return fmt.Sprintf("[%d..%d) %s", s.Start, s.End, s.Type)
}

// Covers reports whether token index i falls inside the span.
func (s Span) Covers(i int) bool { return s.Start <= i && i < s.End }

// A SequenceCodec maps between typed spans and flat per-token labels, and
// supplies the validator that keeps the decoder from emitting label
// sequences the codec cannot decode.
type SequenceCodec interface {
	Encode(spans []Span, length int) ([]string, error)
	Decode(labels []string) []Span
	Validator() SequenceValidator
}

// Outside is the label for tokens covered by no span.
const Outside = "O"

const (
	beginPrefix    = "B-"
	continuePrefix = "I-"
	lastPrefix     = "L-"
	unitPrefix     = "U-"
)

// BioCodec implements B-/I-/O span coding: a span of type T over tokens
// s..e is written "B-T" at s followed by "I-T" up to e-1, with "O"
// everywhere else.
type BioCodec struct{}

// Encode writes spans as per-token labels. Spans that overlap or fall
// outside 0..length are rejected; silently clobbering labels would corrupt
// the round trip.
func (BioCodec) Encode(spans []Span, length int) ([]string, error) {
	labels := make([]string, length)
	for i := range labels {
		labels[i] = Outside
	}
	for _, s := range spans {
		if s.Start < 0 || s.End > length || s.Start >= s.End {
			return nil, fmt.Errorf("codec: span %v out of range for %d tokens", s, length)
		}
		for i := s.Start; i < s.End; i++ {
			if labels[i] != Outside {
				return nil, fmt.Errorf("codec: span %v overlaps an earlier span at token %d", s, i)
			}
		}
		labels[s.Start] = beginPrefix + s.Type
		for i := s.Start + 1; i < s.End; i++ {
			labels[i] = continuePrefix + s.Type
		}
	}
	return labels, nil
}

// Decode scans labels left to right, opening a span at each "B-T" and
// extending it over consecutive "I-T". A continuation with no compatible
// open span ("I-T" after "O", or after a span of another type) starts a
// fresh span of type T: the token carries type evidence and dropping it
// would lose that token entirely.
func (BioCodec) Decode(labels []string) []Span {
	spans := []Span{}
	start, spanType := -1, ""
	for i, label := range labels {
		switch {
		case strings.HasPrefix(label, beginPrefix):
			if start >= 0 {
				spans = append(spans, Span{Start: start, End: i, Type: spanType})
			}
			start, spanType = i, label[len(beginPrefix):]
		case strings.HasPrefix(label, continuePrefix):
			if t := label[len(continuePrefix):]; start < 0 || t != spanType {
				if start >= 0 {
					spans = append(spans, Span{Start: start, End: i, Type: spanType})
				}
				start, spanType = i, t
			}
		default:
			if start >= 0 {
				spans = append(spans, Span{Start: start, End: i, Type: spanType})
				start = -1
			}
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(labels), Type: spanType})
	}
	return spans
}

// Validator returns the B-/I-/O legality grammar: a continuation must
// follow a begin or continuation of the same type.
func (BioCodec) Validator() SequenceValidator { return bioValidator{} }

type bioValidator struct{}

func (bioValidator) ValidSequence(index int, tokens, prior []string, outcome string) bool {
	if !strings.HasPrefix(outcome, continuePrefix) {
		return true
	}
	if len(prior) == 0 {
		return false
	}
	prev := prior[len(prior)-1]
	spanType := outcome[len(continuePrefix):]
	return prev == beginPrefix+spanType || prev == continuePrefix+spanType
}

// BilouCodec implements B/I/L/U/O span coding: single-token spans are
// written "U-T"; longer spans open with "B-T", continue with "I-T" and
// close with "L-T".
type BilouCodec struct{}

func (BilouCodec) Encode(spans []Span, length int) ([]string, error) {
	labels := make([]string, length)
	for i := range labels {
		labels[i] = Outside
	}
	for _, s := range spans {
		if s.Start < 0 || s.End > length || s.Start >= s.End {
			return nil, fmt.Errorf("codec: span %v out of range for %d tokens", s, length)
		}
		for i := s.Start; i < s.End; i++ {
			if labels[i] != Outside {
				return nil, fmt.Errorf("codec: span %v overlaps an earlier span at token %d", s, i)
			}
		}
		if s.End-s.Start == 1 {
			labels[s.Start] = unitPrefix + s.Type
			continue
		}
		labels[s.Start] = beginPrefix + s.Type
		for i := s.Start + 1; i < s.End-1; i++ {
			labels[i] = continuePrefix + s.Type
		}
		labels[s.End-1] = lastPrefix + s.Type
	}
	return labels, nil
}

// Decode mirrors BioCodec.Decode for ill-formed input: a continuation or
// close with no compatible open span starts a fresh span.
func (BilouCodec) Decode(labels []string) []Span {
	spans := []Span{}
	start, spanType := -1, ""
	flush := func(end int) {
		if start >= 0 {
			spans = append(spans, Span{Start: start, End: end, Type: spanType})
			start = -1
		}
	}
	for i, label := range labels {
		switch {
		case strings.HasPrefix(label, unitPrefix):
			flush(i)
			spans = append(spans, Span{Start: i, End: i + 1, Type: label[len(unitPrefix):]})
		case strings.HasPrefix(label, beginPrefix):
			flush(i)
			start, spanType = i, label[len(beginPrefix):]
		case strings.HasPrefix(label, continuePrefix):
			if t := label[len(continuePrefix):]; start < 0 || t != spanType {
				flush(i)
				start, spanType = i, t
			}
		case strings.HasPrefix(label, lastPrefix):
			if t := label[len(lastPrefix):]; start < 0 || t != spanType {
				flush(i)
				start, spanType = i, t
			}
			spans = append(spans, Span{Start: start, End: i + 1, Type: spanType})
			start = -1
		default:
			flush(i)
		}
	}
	flush(len(labels))
	return spans
}

// Validator returns the strict BILOU grammar: inside an open span only a
// same-typed continuation or close is legal, and outside one only "O",
// begins and units are.
func (BilouCodec) Validator() SequenceValidator { return bilouValidator{} }

type bilouValidator struct{}

func (bilouValidator) ValidSequence(index int, tokens, prior []string, outcome string) bool {
	var prev string
	if len(prior) > 0 {
		prev = prior[len(prior)-1]
	}
	open := strings.HasPrefix(prev, beginPrefix) || strings.HasPrefix(prev, continuePrefix)
	if strings.HasPrefix(outcome, continuePrefix) || strings.HasPrefix(outcome, lastPrefix) {
		return open && outcome[2:] == prev[2:]
	}
	return !open
}

// Codec names resolvable through CodecFor.
const (
	BioCodecName   = "BIO"
	BilouCodecName = "BILOU"
)

var codecRegistry = map[string]func() SequenceCodec{
	BioCodecName:   func() SequenceCodec { return BioCodec{} },
	BilouCodecName: func() SequenceCodec { return BilouCodec{} },
}

// RegisterCodec makes a codec constructible by name, replacing any earlier
// registration. Call it during startup; the registry is not synchronized.
func RegisterCodec(name string, factory func() SequenceCodec) {
	codecRegistry[name] = factory
}

// CodecFor resolves a codec by registered name.
func CodecFor(name string) (SequenceCodec, error) {
	factory, ok := codecRegistry[name]
	if !ok {
		return nil, fmt.Errorf("codec: no codec registered as %q", name)
	}
	return factory(), nil
}
