package metric

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalizer lowercases text and strips every rune that is not an ASCII
// word character, whitespace, or part of an allowed emoji glyph.
type Normalizer struct {
	allowed map[rune]struct{}
}

func NewNormalizer(emoji []string) Normalizer {
	allowed := make(map[rune]struct{})
	for _, glyph := range emoji {
		for _, r := range glyph {
			allowed[r] = struct{}{}
		}
	}
	return Normalizer{allowed: allowed}
}

func (n Normalizer) Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && isWordByte(byte(r)) {
			return r
		}
		if unicode.IsSpace(r) {
			return r
		}
		if _, ok := n.allowed[r]; ok {
			return r
		}
		return -1
	}, strings.ToLower(text))
}

// Normalize is a convenience for one-off calls.
func Normalize(text string, emoji []string) string {
	return NewNormalizer(emoji).Normalize(text)
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
