package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/talkdict/internal/app"
	"github.com/at-ishikawa/talkdict/internal/config"
	"github.com/at-ishikawa/talkdict/internal/database"
	"github.com/at-ishikawa/talkdict/internal/dictionary"
	"github.com/at-ishikawa/talkdict/internal/speech"
)

type Source string

func (s *Source) Set(val string) error {
	for _, candidate := range allSources {
		if val == string(candidate) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid source: %s", val)
}

func (s Source) String() string {
	return string(s)
}

func (s *Source) Type() string {
	return "source"
}

const (
	SourceFile  Source = config.SourceFile
	SourceMySQL Source = config.SourceMySQL
)

var (
	_          pflag.Value = (*Source)(nil)
	allSources             = []Source{SourceFile, SourceMySQL}
)

// loadConfig applies the global --source and --data flags on top of the config file.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if source != "" {
		cfg.Dictionary.Source = source.String()
	}
	if dataFile != "" {
		cfg.Dictionary.Path = dataFile
	}
	return cfg, nil
}

// openStore returns the configured store and a function releasing its connection.
func openStore(cfg *config.Config) (dictionary.Store, func(), error) {
	var db *sqlx.DB
	release := func() {}
	if cfg.Dictionary.Source == config.SourceMySQL {
		var err error
		db, err = database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open > %w", err)
		}
		release = func() { _ = db.Close() }
	}

	store, err := dictionary.NewStore(cfg.Dictionary, db)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("dictionary.NewStore > %w", err)
	}
	slog.Default().Debug("dictionary store", "source", cfg.Dictionary.Source, "path", cfg.Dictionary.Path)
	return store, release, nil
}

// newController wires the store, matcher and narrator for view.
func newController(cfg *config.Config, view app.View) (*app.Controller, func(), error) {
	store, release, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	narrator, err := speech.New(cfg.Speech)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("speech.New > %w", err)
	}
	matcher := dictionary.NewMatcher(cfg.Lookup.MaxSuggestions, cfg.Lookup.Cutoff)
	return app.NewController(store, matcher, narrator, view), release, nil
}
