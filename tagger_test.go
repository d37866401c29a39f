package entag

import (
	"reflect"
	"testing"
)

// posModel keys tags on the normalized word feature the tagger emits.
func posModel(t *testing.T) *MaxentModel {
	t.Helper()
	return buildModel(t, []string{"DT", "NN", "VBZ", "."},
		map[string]map[string]float64{
			"w=the":   {"DT": 4.0},
			"w=dog":   {"NN": 4.0},
			"w=barks": {"VBZ": 4.0},
			"w=.":     {".": 4.0},
		})
}

func TestTaggerTag(t *testing.T) {
	tagger := NewTagger(posModel(t))

	words := []string{"The", "dog", "barks", "."}
	tags, probs := tagger.Tag(words)

	want := []string{"DT", "NN", "VBZ", "."}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("Tag = %v, want %v", tags, want)
	}
	if len(probs) != len(words) {
		t.Fatalf("got %d probabilities for %d words", len(probs), len(words))
	}
	for i, p := range probs {
		if p <= 0 || p > 1 {
			t.Errorf("probs[%d] = %f out of (0, 1]", i, p)
		}
	}
}

func TestTaggerEmptyInput(t *testing.T) {
	tagger := NewTagger(posModel(t))
	tags, probs := tagger.Tag(nil)
	if len(tags) != 0 || len(probs) != 0 {
		t.Errorf("Tag(nil) = %v, %v, want empty", tags, probs)
	}
}

func TestTaggerTopK(t *testing.T) {
	tagger := NewTagger(posModel(t), TaggerBeamSize(3))

	seqs := tagger.TagTopK(3, []string{"The", "dog"})
	if len(seqs) == 0 || len(seqs) > 3 {
		t.Fatalf("TagTopK returned %d sequences", len(seqs))
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i].Score() > seqs[i-1].Score() {
			t.Errorf("sequences out of order at %d", i)
		}
	}
	want := []string{"DT", "NN"}
	if !reflect.DeepEqual(seqs[0].Outcomes(), want) {
		t.Errorf("best tagging = %v, want %v", seqs[0].Outcomes(), want)
	}
}

func TestTaggerValidatorOption(t *testing.T) {
	noVerbs := SequenceValidatorFunc(func(index int, tokens, prior []string, outcome string) bool {
		return outcome != "VBZ"
	})
	tagger := NewTagger(posModel(t), TaggerValidator(noVerbs))

	tags, _ := tagger.Tag([]string{"The", "dog", "barks"})
	for i, tag := range tags {
		if tag == "VBZ" {
			t.Errorf("validator-rejected tag decoded at position %d", i)
		}
	}
}

func TestTaggerTagTokens(t *testing.T) {
	tagger := NewTagger(posModel(t))

	tokens := []*Token{
		{Text: "The", Start: 0, End: 3},
		{Text: "dog", Start: 4, End: 7},
	}
	tagger.TagTokens(tokens)

	if tokens[0].Tag != "DT" || tokens[1].Tag != "NN" {
		t.Errorf("tags = [%s, %s], want [DT, NN]", tokens[0].Tag, tokens[1].Tag)
	}
	for i, tok := range tokens {
		if tok.Confidence <= 0 {
			t.Errorf("tokens[%d].Confidence = %f, want > 0", i, tok.Confidence)
		}
	}
}

func TestTaggerOutcomes(t *testing.T) {
	tagger := NewTagger(posModel(t))
	want := []string{"DT", "NN", "VBZ", "."}
	if got := tagger.Outcomes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Outcomes = %v, want %v", got, want)
	}
}
