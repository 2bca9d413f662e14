package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/talkdict/internal/dictionary"
)

func newValidateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "validate [PATH]",
		Short: "Validate a dictionary file for keys that can never be found and malformed definitions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Dictionary.Path
			}

			results, err := validateFile(cmd.Context(), path)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			displayValidationResults(w, path, results)
			if dictionary.HasErrors(results) {
				return fmt.Errorf("validation failed with %d error(s)", countSeverity(results, dictionary.SeverityError))
			}
			return nil
		},
	}
	return command
}

// validateFile streams JSON files so duplicate keys are still visible.
func validateFile(ctx context.Context, path string) ([]dictionary.ValidationError, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		d, err := dictionary.NewFileStore(path).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("FileStore.Load > %w", err)
		}
		return dictionary.ValidateDictionary(d), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	results, err := dictionary.Validate(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary.Validate(%s) > %w", path, err)
	}
	return results, nil
}

func displayValidationResults(w io.Writer, path string, results []dictionary.ValidationError) {
	var errs, warnings []dictionary.ValidationError
	for _, result := range results {
		if result.Severity == dictionary.SeverityError {
			errs = append(errs, result)
		} else {
			warnings = append(warnings, result)
		}
	}

	_, _ = fmt.Fprintln(w, "\n=== Validation Results ===")
	_, _ = fmt.Fprintf(w, "File: %s\n\n", path)

	if len(errs) > 0 {
		_, _ = fmt.Fprintf(w, "✗ Errors (%d):\n", len(errs))
		for _, err := range errs {
			_, _ = fmt.Fprintf(w, "  - %s\n", err.Error())
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(warnings) > 0 {
		_, _ = fmt.Fprintf(w, "⚠ Warnings (%d):\n", len(warnings))
		for _, warn := range warnings {
			_, _ = fmt.Fprintf(w, "  - %s\n", warn.Error())
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, "=== Summary ===")
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "✓ All validations passed!")
		return
	}
	_, _ = fmt.Fprintf(w, "Errors: %d, Warnings: %d\n", len(errs), len(warnings))
}

func countSeverity(results []dictionary.ValidationError, severity string) int {
	count := 0
	for _, result := range results {
		if result.Severity == severity {
			count++
		}
	}
	return count
}
