package dictionary

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/talkdict/internal/config"
	"github.com/jmoiron/sqlx"
)

var ErrUnknownSource = errors.New("unknown dictionary source")

// NewStore returns the store for cfg.Source. db is only used by the mysql source.
func NewStore(cfg config.DictionaryConfig, db *sqlx.DB) (Store, error) {
	switch cfg.Source {
	case config.SourceFile:
		return NewFileStore(cfg.Path), nil
	case config.SourceMySQL:
		if db == nil {
			return nil, fmt.Errorf("a database connection is required for the %s source", config.SourceMySQL)
		}
		return NewDBDictionaryRepository(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}
