// Package dictionary loads word definitions and resolves lookups against them.
package dictionary

import (
	"context"
	"sort"
	"strings"
)

//go:generate mockgen -source=dictionary.go -destination=../mocks/dictionary/mock_store.go -package=mock_dictionary

// Store loads the whole dictionary. Implementations may read their source on every call.
type Store interface {
	Load(ctx context.Context) (Dictionary, error)
}

// Dictionary maps a lowercase word to its definitions in display order.
type Dictionary map[string][]string

// Normalize converts user input into the form used for dictionary keys.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Lookup returns the definitions for an exact key.
func (d Dictionary) Lookup(word string) ([]string, bool) {
	definitions, ok := d[word]
	return definitions, ok
}

// Words returns all keys in sorted order.
func (d Dictionary) Words() []string {
	words := make([]string, 0, len(d))
	for word := range d {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

func (d Dictionary) Len() int {
	return len(d)
}
