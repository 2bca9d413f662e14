package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

type ValidationError struct {
	Word     string
	Message  string
	Severity string
}

func (e ValidationError) Error() string {
	if e.Word == "" {
		return e.Message
	}
	return fmt.Sprintf("%q: %s", e.Word, e.Message)
}

// HasErrors reports whether any result is of error severity.
func HasErrors(results []ValidationError) bool {
	for _, r := range results {
		if r.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate streams a JSON dictionary and reports duplicate keys, non-lowercase keys
// and malformed or empty definition lists. An error is returned only when r is not a JSON object.
func Validate(r io.Reader) ([]ValidationError, error) {
	decoder := json.NewDecoder(r)

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("decoder.Token > %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top-level value must be an object")
	}

	var results []ValidationError
	seen := make(map[string]struct{})
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("decoder.Token > %w", err)
		}
		word, _ := token.(string)

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoder.Decode(%s) > %w", word, err)
		}

		if _, ok := seen[word]; ok {
			results = append(results, ValidationError{
				Word:     word,
				Message:  "duplicate key, the last definitions win",
				Severity: SeverityError,
			})
		}
		seen[word] = struct{}{}

		var definitions []string
		if err := json.Unmarshal(raw, &definitions); err != nil {
			results = append(results, ValidationError{
				Word:     word,
				Message:  "definitions must be an array of strings",
				Severity: SeverityError,
			})
			results = append(results, validateWord(word)...)
			continue
		}
		results = append(results, validateEntry(word, definitions)...)
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token > %w", err)
	}
	return results, nil
}

// ValidateDictionary checks an already decoded dictionary in key order.
func ValidateDictionary(d Dictionary) []ValidationError {
	var results []ValidationError
	for _, word := range d.Words() {
		results = append(results, validateEntry(word, d[word])...)
	}
	return results
}

func validateEntry(word string, definitions []string) []ValidationError {
	results := validateWord(word)
	if len(definitions) == 0 {
		results = append(results, ValidationError{
			Word:     word,
			Message:  "no definitions",
			Severity: SeverityWarning,
		})
	}
	for i, definition := range definitions {
		if strings.TrimSpace(definition) == "" {
			results = append(results, ValidationError{
				Word:     word,
				Message:  fmt.Sprintf("definition %d is blank", i+1),
				Severity: SeverityWarning,
			})
		}
	}
	return results
}

func validateWord(word string) []ValidationError {
	if strings.TrimSpace(word) == "" {
		return []ValidationError{{
			Word:     word,
			Message:  "empty word",
			Severity: SeverityError,
		}}
	}
	if word != Normalize(word) {
		return []ValidationError{{
			Word:     word,
			Message:  fmt.Sprintf("word is not normalized and can never be found, use %q", Normalize(word)),
			Severity: SeverityError,
		}}
	}
	return nil
}
