package entag

import (
	"reflect"
	"testing"
)

func sameSpans(got, want []Span) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Start != want[i].Start || got[i].End != want[i].End || got[i].Type != want[i].Type {
			return false
		}
	}
	return true
}

func TestBioCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		spans  []Span
		length int
		labels []string
	}{
		{
			name:   "no spans",
			spans:  nil,
			length: 3,
			labels: []string{"O", "O", "O"},
		},
		{
			name:   "single token span",
			spans:  []Span{{Start: 1, End: 2, Type: "PER"}},
			length: 3,
			labels: []string{"O", "B-PER", "O"},
		},
		{
			name:   "multi token span",
			spans:  []Span{{Start: 0, End: 3, Type: "ORG"}},
			length: 4,
			labels: []string{"B-ORG", "I-ORG", "I-ORG", "O"},
		},
		{
			name:   "adjacent same type",
			spans:  []Span{{Start: 0, End: 2, Type: "LOC"}, {Start: 2, End: 4, Type: "LOC"}},
			length: 4,
			labels: []string{"B-LOC", "I-LOC", "B-LOC", "I-LOC"},
		},
		{
			name:   "span at end",
			spans:  []Span{{Start: 2, End: 4, Type: "PER"}},
			length: 4,
			labels: []string{"O", "O", "B-PER", "I-PER"},
		},
	}

	codec := BioCodec{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, err := codec.Encode(tt.spans, tt.length)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !reflect.DeepEqual(labels, tt.labels) {
				t.Fatalf("Encode = %v, want %v", labels, tt.labels)
			}
			if got := codec.Decode(labels); !sameSpans(got, tt.spans) {
				t.Errorf("Decode = %v, want %v", got, tt.spans)
			}
		})
	}
}

func TestBilouCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		spans  []Span
		length int
		labels []string
	}{
		{
			name:   "unit span",
			spans:  []Span{{Start: 1, End: 2, Type: "PER"}},
			length: 3,
			labels: []string{"O", "U-PER", "O"},
		},
		{
			name:   "two token span",
			spans:  []Span{{Start: 0, End: 2, Type: "ORG"}},
			length: 3,
			labels: []string{"B-ORG", "L-ORG", "O"},
		},
		{
			name:   "long span",
			spans:  []Span{{Start: 1, End: 4, Type: "LOC"}},
			length: 4,
			labels: []string{"O", "B-LOC", "I-LOC", "L-LOC"},
		},
		{
			name:   "adjacent spans",
			spans:  []Span{{Start: 0, End: 2, Type: "LOC"}, {Start: 2, End: 3, Type: "LOC"}},
			length: 3,
			labels: []string{"B-LOC", "L-LOC", "U-LOC"},
		},
	}

	codec := BilouCodec{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, err := codec.Encode(tt.spans, tt.length)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !reflect.DeepEqual(labels, tt.labels) {
				t.Fatalf("Encode = %v, want %v", labels, tt.labels)
			}
			if got := codec.Decode(labels); !sameSpans(got, tt.spans) {
				t.Errorf("Decode = %v, want %v", got, tt.spans)
			}
		})
	}
}

func TestCodecEncodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		spans  []Span
		length int
	}{
		{"negative start", []Span{{Start: -1, End: 1, Type: "X"}}, 3},
		{"end past length", []Span{{Start: 0, End: 4, Type: "X"}}, 3},
		{"empty span", []Span{{Start: 1, End: 1, Type: "X"}}, 3},
		{"inverted span", []Span{{Start: 2, End: 1, Type: "X"}}, 3},
		{
			"overlapping spans",
			[]Span{{Start: 0, End: 2, Type: "X"}, {Start: 1, End: 3, Type: "Y"}},
			4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (BioCodec{}).Encode(tt.spans, tt.length); err == nil {
				t.Error("BioCodec.Encode: expected an error, got nil")
			}
			if _, err := (BilouCodec{}).Encode(tt.spans, tt.length); err == nil {
				t.Error("BilouCodec.Encode: expected an error, got nil")
			}
		})
	}
}

func TestBioCodecDecodeIllFormed(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		spans  []Span
	}{
		{
			name:   "leading continuation",
			labels: []string{"I-PER", "I-PER", "O"},
			spans:  []Span{{Start: 0, End: 2, Type: "PER"}},
		},
		{
			name:   "continuation after outside",
			labels: []string{"O", "I-LOC", "O"},
			spans:  []Span{{Start: 1, End: 2, Type: "LOC"}},
		},
		{
			name:   "type switch mid span",
			labels: []string{"B-PER", "I-LOC"},
			spans:  []Span{{Start: 0, End: 1, Type: "PER"}, {Start: 1, End: 2, Type: "LOC"}},
		},
	}
	codec := BioCodec{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codec.Decode(tt.labels); !sameSpans(got, tt.spans) {
				t.Errorf("Decode = %v, want %v", got, tt.spans)
			}
		})
	}
}

func TestBioValidator(t *testing.T) {
	v := BioCodec{}.Validator()
	tokens := []string{"a", "b", "c"}

	tests := []struct {
		name    string
		index   int
		prior   []string
		outcome string
		valid   bool
	}{
		{"begin anywhere", 0, nil, "B-PER", true},
		{"outside anywhere", 0, nil, "O", true},
		{"continuation first", 0, nil, "I-PER", false},
		{"continuation after begin", 1, []string{"B-PER"}, "I-PER", true},
		{"continuation after continuation", 2, []string{"B-PER", "I-PER"}, "I-PER", true},
		{"continuation after outside", 1, []string{"O"}, "I-PER", false},
		{"continuation after other type", 1, []string{"B-LOC"}, "I-PER", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.ValidSequence(tt.index, tokens, tt.prior, tt.outcome); got != tt.valid {
				t.Errorf("ValidSequence(%v, %q) = %v, want %v", tt.prior, tt.outcome, got, tt.valid)
			}
		})
	}
}

func TestBilouValidator(t *testing.T) {
	v := BilouCodec{}.Validator()
	tokens := []string{"a", "b", "c"}

	tests := []struct {
		name    string
		index   int
		prior   []string
		outcome string
		valid   bool
	}{
		{"unit at start", 0, nil, "U-PER", true},
		{"begin at start", 0, nil, "B-PER", true},
		{"continuation at start", 0, nil, "I-PER", false},
		{"last at start", 0, nil, "L-PER", false},
		{"continuation inside span", 1, []string{"B-PER"}, "I-PER", true},
		{"last inside span", 1, []string{"B-PER"}, "L-PER", true},
		{"mismatched continuation", 1, []string{"B-PER"}, "I-LOC", false},
		{"begin inside open span", 1, []string{"B-PER"}, "B-LOC", false},
		{"unit inside open span", 1, []string{"B-PER"}, "U-LOC", false},
		{"outside inside open span", 1, []string{"I-PER"}, "O", false},
		{"begin after close", 2, []string{"B-PER", "L-PER"}, "B-LOC", true},
		{"outside after unit", 1, []string{"U-PER"}, "O", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.ValidSequence(tt.index, tokens, tt.prior, tt.outcome); got != tt.valid {
				t.Errorf("ValidSequence(%v, %q) = %v, want %v", tt.prior, tt.outcome, got, tt.valid)
			}
		})
	}
}

func TestSpanCovers(t *testing.T) {
	s := Span{Start: 2, End: 5, Type: "X"}
	for i, want := range map[int]bool{1: false, 2: true, 4: true, 5: false} {
		if got := s.Covers(i); got != want {
			t.Errorf("Covers(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestCodecRegistry(t *testing.T) {
	if codec, err := CodecFor(BioCodecName); err != nil {
		t.Errorf("CodecFor(BIO) failed: %v", err)
	} else if _, ok := codec.(BioCodec); !ok {
		t.Errorf("CodecFor(BIO) = %T, want BioCodec", codec)
	}

	if codec, err := CodecFor(BilouCodecName); err != nil {
		t.Errorf("CodecFor(BILOU) failed: %v", err)
	} else if _, ok := codec.(BilouCodec); !ok {
		t.Errorf("CodecFor(BILOU) = %T, want BilouCodec", codec)
	}

	if _, err := CodecFor("NOPE"); err == nil {
		t.Error("CodecFor(NOPE) should fail")
	}

	RegisterCodec("CUSTOM", func() SequenceCodec { return BioCodec{} })
	if _, err := CodecFor("CUSTOM"); err != nil {
		t.Errorf("CodecFor(CUSTOM) failed after registration: %v", err)
	}
}
