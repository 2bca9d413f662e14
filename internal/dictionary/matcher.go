package dictionary

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	DefaultMaxMatches = 3
	DefaultCutoff     = 0.6
)

// Matcher finds keys that are similar to a misspelled word.
// Similarity is the Ratcliff/Obershelp ratio over characters.
type Matcher struct {
	maxMatches int
	cutoff     float64
}

func NewMatcher(maxMatches int, cutoff float64) *Matcher {
	if maxMatches <= 0 {
		maxMatches = DefaultMaxMatches
	}
	if cutoff < 0 || cutoff > 1 {
		cutoff = DefaultCutoff
	}
	return &Matcher{
		maxMatches: maxMatches,
		cutoff:     cutoff,
	}
}

type scoredWord struct {
	word  string
	score float64
}

// CloseMatches returns up to maxMatches candidates whose similarity to word is at least the cutoff,
// best first. Equal scores are ordered by the greater word first.
func (m *Matcher) CloseMatches(word string, candidates []string) []string {
	sm := difflib.NewMatcher(nil, nil)
	sm.SetSeq2(splitChars(word))

	var scored []scoredWord
	for _, candidate := range candidates {
		sm.SetSeq1(splitChars(candidate))
		if sm.RealQuickRatio() < m.cutoff || sm.QuickRatio() < m.cutoff {
			continue
		}
		score := sm.Ratio()
		if score < m.cutoff {
			continue
		}
		scored = append(scored, scoredWord{word: candidate, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].word > scored[j].word
	})
	if len(scored) > m.maxMatches {
		scored = scored[:m.maxMatches]
	}

	matches := make([]string, 0, len(scored))
	for _, s := range scored {
		matches = append(matches, s.word)
	}
	return matches
}

func splitChars(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "")
}
