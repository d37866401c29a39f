package entag

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenTester func(string) bool

type Tokenizer interface {
	Tokenize(string) []*Token
}

// iterTokenizer splits a sentence into words.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	splitCases     []string
	suffixes       []string
	prefixes       []string
	emoticons      map[string]int
	isUnsplittable TokenTester
	tokenPool      *TokenPool
}

type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// UsingSpecialRE sets the provided special regex for unsplittable tokens.
func UsingSpecialRE(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.specialRE = x
	}
}

// UsingSanitizer sets the provided sanitizer.
func UsingSanitizer(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.sanitizer = x
	}
}

// UsingSuffixes sets the provided suffixes.
func UsingSuffixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.suffixes = x
	}
}

// UsingPrefixes sets the provided prefixes.
func UsingPrefixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.prefixes = x
	}
}

// UsingEmoticons sets the provided map of emoticons.
func UsingEmoticons(x map[string]int) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.emoticons = x
	}
}

// UsingContractions sets the provided contractions.
func UsingContractions(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.contractions = x
	}
}

// UsingSplitCases sets the provided splitCases.
func UsingSplitCases(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.splitCases = x
	}
}

// NewIterTokenizer creates a tokenizer with the default English rules.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := new(iterTokenizer)

	tok.contractions = contractions
	tok.emoticons = emoticons
	tok.isUnsplittable = func(_ string) bool { return false }
	tok.prefixes = prefixes
	tok.sanitizer = sanitizer
	tok.specialRE = internalRE
	tok.suffixes = suffixes
	tok.tokenPool = NewTokenPool()

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	tok.splitCases = append(tok.splitCases, tok.contractions...)

	return tok
}

func (t *iterTokenizer) addToken(s string, start int, toks []*Token) []*Token {
	if strings.TrimSpace(s) != "" {
		token := t.tokenPool.Get()
		token.Text = s
		token.Start = start
		token.End = start + len(s)
		toks = append(toks, token)
	}
	return toks
}

func (t *iterTokenizer) isSpecial(token string) bool {
	_, found := t.emoticons[token]
	return found || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

// doSplit peels prefixes, suffixes and contraction clitics off a
// whitespace-delimited span, tracking offsets as it goes.
func (t *iterTokenizer) doSplit(token string, offset int) []*Token {
	tokens := []*Token{}
	suffs := []*Token{}

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		if t.isSpecial(token) {
			// An emoticon or abbreviation passes through whole.
			tokens = t.addToken(token, offset, tokens)
			break
		}
		last = utf8.RuneCountInString(token)
		lower := strings.ToLower(token)
		if hasAnyPrefix(token, t.prefixes) {
			// Remove prefixes -- e.g., $100 -> [$, 100].
			tokens = t.addToken(string(token[0]), offset, tokens)
			token = token[1:]
			offset++
		} else if idx := hasAnyIndex(lower, t.splitCases); idx > 0 {
			// Handle "they'll", "I'll", "Don't", "won't".
			//
			// they'll -> [they, 'll].
			// don't -> [do, n't].
			tokens = t.addToken(token[:idx], offset, tokens)
			offset += idx
			token = token[idx:]
		} else if hasAnySuffix(token, t.suffixes) {
			// Remove suffixes -- e.g., Well) -> [Well, )].
			start := offset + len(token) - 1
			suffix := t.tokenPool.Get()
			suffix.Text = string(token[len(token)-1])
			suffix.Start = start
			suffix.End = start + 1
			suffs = append([]*Token{suffix}, suffs...)
			token = token[:len(token)-1]
		} else {
			tokens = t.addToken(token, offset, tokens)
			break
		}
	}

	return append(tokens, suffs...)
}

// Tokenize splits text into a slice of tokens with character offsets into
// the original text.
func (t *iterTokenizer) Tokenize(text string) []*Token {
	var tokens []*Token

	clean, white := t.sanitizer.Replace(text), false
	length := len(clean)

	start, index := 0, 0
	for index <= length {
		uc, size := utf8.DecodeRuneInString(clean[index:])
		if size == 0 {
			break
		} else if index == 0 {
			white = unicode.IsSpace(uc)
		}
		if unicode.IsSpace(uc) != white {
			if start < index {
				tokens = append(tokens, t.doSplit(clean[start:index], start)...)
			}
			if uc == ' ' {
				start = index + 1
			} else {
				start = index
			}
			white = !white
		}
		index += size
	}

	if start < index {
		tokens = append(tokens, t.doSplit(clean[start:index], start)...)
	}

	return tokens
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func hasAnyIndex(s string, cases []string) int {
	for _, c := range cases {
		idx := strings.Index(s, c)
		if idx > -1 && idx+len(c) == len(s) {
			return idx
		}
	}
	return -1
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "n't"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}
var emoticons = map[string]int{
	"(-;":   1,
	"(:":    1,
	"(=":    1,
	"8-)":   1,
	":(":    1,
	":((":   1,
	":-)":   1,
	":-*":   1,
	":-/":   1,
	":-|":   1,
	":0":    1,
	":3":    1,
	":P":    1,
	":]":    1,
	":`(":   1,
	":o":    1,
	"=(":    1,
	"=)":    1,
	"=D":    1,
	"@_@":   1,
	"O.o":   1,
	"o_O":   1,
	"v_v":   1,
	"xD":    1,
	"^___^": 1,
}
