package entag

import (
	"strconv"
	"strings"
	"unicode"
)

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// shape collapses a word to a coarse orthographic class.
func shape(word string) string {
	if isNumeric(word) {
		return "number"
	}
	hasLetter, hasUpper, hasLower, hasOther := false, false, false, false
	for _, r := range word {
		switch {
		case unicode.IsUpper(r):
			hasLetter, hasUpper = true, true
		case unicode.IsLower(r):
			hasLetter, hasLower = true, true
		case unicode.IsDigit(r):
		default:
			hasOther = true
		}
	}
	switch {
	case !hasLetter && hasOther:
		return "punct"
	case hasUpper && !hasLower:
		return "allcaps"
	case hasUpper:
		return "capitalized"
	case hasLower:
		return "downcase"
	}
	return "other"
}

func nPrefix(word string, n int) string {
	r := []rune(word)
	if len(r) < n {
		n = len(r)
	}
	return string(r[:n])
}

func nSuffix(word string, n int) string {
	r := []rune(word)
	if len(r) < n {
		n = len(r)
	}
	return string(r[len(r)-n:])
}

// normalize maps rare word classes onto placeholder symbols so a model
// trained on one corpus generalizes to unseen numerals and hyphenations.
func normalize(word string) string {
	if word == "" {
		return word
	}
	first := string(word[0])
	if strings.Contains(word, "-") && first != "-" {
		return "!HYPHEN"
	} else if _, err := strconv.Atoi(word); err == nil && len(word) == 4 {
		return "!YEAR"
	} else if _, err := strconv.Atoi(first); err == nil {
		return "!DIGITS"
	}
	return strings.ToLower(word)
}
