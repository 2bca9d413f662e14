// Package datasync copies dictionaries between data files and the database.
package datasync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/talkdict/internal/dictionary"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	New       int
	Updated   int
	Skipped   int
	Unchanged int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes a loaded dictionary into the database.
type Importer struct {
	dictionaryRepo dictionary.DictionaryRepository
	writer         io.Writer
}

func NewImporter(dictionaryRepo dictionary.DictionaryRepository, writer io.Writer) *Importer {
	return &Importer{
		dictionaryRepo: dictionaryRepo,
		writer:         writer,
	}
}

// Import upserts every word of d in sorted order.
func (imp *Importer) Import(ctx context.Context, d dictionary.Dictionary, opts ImportOptions) (*ImportResult, error) {
	existing, err := imp.dictionaryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dictionaryRepo.FindAll() > %w", err)
	}
	existingByWord := make(map[string]dictionary.Entry, len(existing))
	for _, entry := range existing {
		existingByWord[entry.Word] = entry
	}

	var result ImportResult
	var entries []*dictionary.Entry
	for _, word := range d.Words() {
		definitions := d[word]
		current, ok := existingByWord[word]
		switch {
		case !ok:
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %q\n", word)
			result.New++
		case slices.Equal([]string(current.Definitions), definitions):
			result.Unchanged++
			continue
		case !opts.UpdateExisting:
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", word)
			result.Skipped++
			continue
		default:
			_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", word)
			result.Updated++
		}
		entries = append(entries, &dictionary.Entry{
			Word:        word,
			Definitions: definitions,
		})
	}

	if opts.DryRun {
		return &result, nil
	}
	if err := imp.dictionaryRepo.BatchUpsert(ctx, entries); err != nil {
		return nil, fmt.Errorf("dictionaryRepo.BatchUpsert() > %w", err)
	}
	return &result, nil
}

// Exporter reads the database and writes it as a data file.
type Exporter struct {
	dictionaryRepo dictionary.DictionaryRepository
}

func NewExporter(dictionaryRepo dictionary.DictionaryRepository) *Exporter {
	return &Exporter{
		dictionaryRepo: dictionaryRepo,
	}
}

// Export writes all entries to w and returns how many were written.
// Keys are sorted in both formats.
func (e *Exporter) Export(ctx context.Context, w io.Writer, format Format) (int, error) {
	entries, err := e.dictionaryRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("dictionaryRepo.FindAll() > %w", err)
	}
	d := make(dictionary.Dictionary, len(entries))
	for _, entry := range entries {
		definitions := entry.Definitions
		if definitions == nil {
			definitions = dictionary.Definitions{}
		}
		d[entry.Word] = definitions
	}

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(d); err != nil {
			return 0, fmt.Errorf("encoder.Encode > %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(d); err != nil {
			return 0, fmt.Errorf("encoder.Encode > %w", err)
		}
		if err := encoder.Close(); err != nil {
			return 0, fmt.Errorf("encoder.Close > %w", err)
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return len(d), nil
}
