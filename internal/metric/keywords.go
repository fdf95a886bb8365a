package metric

import (
	"fmt"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// KeywordMatcher counts keyword occurrences with an Aho-Corasick automaton,
// so each message is scanned once no matter how long the keyword list is.
type KeywordMatcher struct {
	machine *goahocorasick.Machine
}

// NewKeywordMatcher builds the automaton. Keywords are matched verbatim
// against normalized text, so they should already be lowercase.
func NewKeywordMatcher(keywords []string) (*KeywordMatcher, error) {
	words := lo.Uniq(lo.Compact(keywords))
	if len(words) == 0 {
		return &KeywordMatcher{}, nil
	}

	patterns := make([][]rune, len(words))
	for i, w := range words {
		patterns[i] = []rune(w)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build keyword automaton: %w", err)
	}
	return &KeywordMatcher{machine: m}, nil
}

// Count returns the number of keyword occurrences in text, counting every
// occurrence of every keyword.
func (k *KeywordMatcher) Count(text string) int {
	if k == nil || k.machine == nil || text == "" {
		return 0
	}
	return len(k.machine.MultiPatternSearch([]rune(text), false))
}
