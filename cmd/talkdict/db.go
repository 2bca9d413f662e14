package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/talkdict/internal/config"
	"github.com/at-ishikawa/talkdict/internal/database"
	"github.com/at-ishikawa/talkdict/internal/datasync"
	"github.com/at-ishikawa/talkdict/internal/dictionary"
)

type ExportFormat string

func (f *ExportFormat) Set(val string) error {
	for _, candidate := range allExportFormats {
		if val == string(candidate) {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f ExportFormat) String() string {
	return string(f)
}

func (f *ExportFormat) Type() string {
	return "format"
}

var (
	_                pflag.Value = (*ExportFormat)(nil)
	allExportFormats             = []ExportFormat{
		ExportFormat(datasync.FormatJSON),
		ExportFormat(datasync.FormatYAML),
	}
)

func newDBCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "db",
		Short: "Manage the MySQL dictionary",
	}
	command.AddCommand(
		newDBMigrateCommand(),
		newDBImportCommand(),
		newDBExportCommand(),
	)
	return command
}

// openDatabase ignores the dictionary source, the db commands always talk to MySQL.
func openDatabase() (*config.Config, *sqlx.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, db, nil
}

func newDBMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			results, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(results) == 0 {
				_, _ = fmt.Fprintln(w, "No pending migrations")
				return nil
			}
			for _, result := range results {
				_, _ = fmt.Fprintf(w, "  [OK] %05d %s (%s)\n", result.Source.Version, result.Source.Path, result.Duration)
			}
			return nil
		},
	}
}

func newDBImportCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import [PATH]",
		Short: "Import a dictionary file into the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			path := cfg.Dictionary.Path
			if len(args) > 0 {
				path = args[0]
			}
			d, err := dictionary.NewFileStore(path).Load(ctx)
			if err != nil {
				return fmt.Errorf("read dictionary: %w", err)
			}

			w := cmd.OutOrStdout()
			importer := datasync.NewImporter(dictionary.NewDBDictionaryRepository(db), w)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.Import(ctx, d, opts)
			if err != nil {
				return fmt.Errorf("import dictionary: %w", err)
			}

			_, _ = fmt.Fprintln(w, "\nImport Summary:")
			if opts.DryRun {
				_, _ = fmt.Fprintln(w, "  (dry-run mode, no changes made)")
			}
			_, _ = fmt.Fprintf(w, "  Words: %d new, %d updated, %d skipped, %d unchanged\n",
				result.New, result.Updated, result.Skipped, result.Unchanged)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing words with new definitions")
	return cmd
}

func newDBExportCommand() *cobra.Command {
	format := ExportFormat(datasync.FormatJSON)
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the database dictionary as a data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("os.Create(%s) > %w", output, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			exporter := datasync.NewExporter(dictionary.NewDBDictionaryRepository(db))
			count, err := exporter.Export(cmd.Context(), w, datasync.Format(format))
			if err != nil {
				return fmt.Errorf("export dictionary: %w", err)
			}
			if output != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d word(s) to %s\n", count, output)
			}
			return nil
		},
	}

	cmd.Flags().Var(&format, "format", fmt.Sprintf("output format. Possible values are %v", allExportFormats))
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
