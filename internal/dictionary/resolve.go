package dictionary

import "strings"

const Bullet = "•"

type Outcome int

const (
	NotFound Outcome = iota
	Found
	Suggested
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Suggested:
		return "suggested"
	default:
		return "not_found"
	}
}

// Resolution is the classification of a single search.
type Resolution struct {
	Outcome Outcome
	// Word is the normalized input.
	Word string
	// Match is the key whose definitions are carried: Word when found, the best close match when suggested.
	Match        string
	Definitions  []string
	Alternatives []string
}

// Resolve classifies word against d. A miss falls back to the close matches of m.
func Resolve(d Dictionary, word string, m *Matcher) Resolution {
	normalized := Normalize(word)
	if definitions, ok := d.Lookup(normalized); ok {
		return Resolution{
			Outcome:     Found,
			Word:        normalized,
			Match:       normalized,
			Definitions: definitions,
		}
	}

	matches := m.CloseMatches(normalized, d.Words())
	if len(matches) == 0 {
		return Resolution{
			Outcome: NotFound,
			Word:    normalized,
		}
	}
	return Resolution{
		Outcome:      Suggested,
		Word:         normalized,
		Match:        matches[0],
		Definitions:  d[matches[0]],
		Alternatives: matches,
	}
}

// FormatDefinitions renders each definition as a bulleted paragraph.
func FormatDefinitions(definitions []string) string {
	lines := make([]string, 0, len(definitions))
	for _, definition := range definitions {
		lines = append(lines, Bullet+" "+definition)
	}
	return strings.Join(lines, "\n\n")
}

// StripBullets removes the bullet markers added by FormatDefinitions.
func StripBullets(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), Bullet))
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
