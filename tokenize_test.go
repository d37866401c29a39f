package entag

import (
	"testing"
)

func tokenTexts(tokens []*Token) []string {
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}
	return texts
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "The dog barks", []string{"The", "dog", "barks"}},
		{"trailing period", "It works.", []string{"It", "works", "."}},
		{"contraction", "They'll follow.", []string{"They", "'ll", "follow", "."}},
		{"negation", "Don't stop", []string{"Do", "n't", "stop"}},
		{"possessive", "Sarah's idea", []string{"Sarah", "'s", "idea"}},
		{"currency prefix", "$100 is enough", []string{"$", "100", "is", "enough"}},
		{"parentheses", "(see below)", []string{"(", "see", "below", ")"}},
		{"abbreviation", "The U.S. economy", []string{"The", "U.S.", "economy"}},
		{"emoticon", "great :-) thanks", []string{"great", ":-)", "thanks"}},
		{"comma and question", "Well, why?", []string{"Well", ",", "why", "?"}},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
	}

	tokenizer := NewIterTokenizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenizer.Tokenize(tt.text)
			got := tokenTexts(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	text := "They'll follow."
	tokens := NewIterTokenizer().Tokenize(text)

	want := []Token{
		{Text: "They", Start: 0, End: 4},
		{Text: "'ll", Start: 4, End: 7},
		{Text: "follow", Start: 8, End: 14},
		{Text: ".", Start: 14, End: 15},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokenTexts(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Text != want[i].Text || tok.Start != want[i].Start || tok.End != want[i].End {
			t.Errorf("token %d = %q [%d, %d), want %q [%d, %d)",
				i, tok.Text, tok.Start, tok.End, want[i].Text, want[i].Start, want[i].End)
		}
		if text[tok.Start:tok.End] != tok.Text {
			t.Errorf("token %d text %q does not match source slice %q",
				i, tok.Text, text[tok.Start:tok.End])
		}
	}
}

func TestTokenizeCustomOptions(t *testing.T) {
	t.Run("unsplittable", func(t *testing.T) {
		tokenizer := NewIterTokenizer(UsingIsUnsplittable(func(s string) bool {
			return s == "C++."
		}))
		got := tokenTexts(tokenizer.Tokenize("I like C++."))
		if len(got) != 3 || got[2] != "C++." {
			t.Errorf("Tokenize = %v, want the protected token kept whole", got)
		}
	})

	t.Run("extra emoticon", func(t *testing.T) {
		tokenizer := NewIterTokenizer(UsingEmoticons(map[string]int{"<3": 1}))
		got := tokenTexts(tokenizer.Tokenize("love <3"))
		if len(got) != 2 || got[1] != "<3" {
			t.Errorf("Tokenize = %v, want [love <3]", got)
		}
	})

	t.Run("custom suffixes", func(t *testing.T) {
		tokenizer := NewIterTokenizer(UsingSuffixes([]string{"#"}))
		got := tokenTexts(tokenizer.Tokenize("tag#"))
		if len(got) != 2 || got[0] != "tag" || got[1] != "#" {
			t.Errorf("Tokenize = %v, want [tag #]", got)
		}
	})
}

func TestTokenizeCurlyQuotes(t *testing.T) {
	tokens := NewIterTokenizer().Tokenize("“hello”")
	got := tokenTexts(tokens)
	if len(got) != 3 || got[0] != `"` || got[1] != "hello" || got[2] != `"` {
		t.Errorf("Tokenize = %v, want the curly quotes normalized and split", got)
	}
}

func TestTokenPool(t *testing.T) {
	pool := NewTokenPool()

	token := pool.Get()
	token.Text = "used"
	token.Tag = "NN"
	token.Confidence = 0.9
	pool.Put(token)

	fresh := pool.Get()
	if fresh.Text != "" || fresh.Tag != "" || fresh.Confidence != 0 {
		t.Errorf("pooled token not reset: %+v", fresh)
	}
}
