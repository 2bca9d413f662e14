package dictionary

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Entry is a dictionary row stored in the database.
type Entry struct {
	Word        string      `db:"word" yaml:"word"`
	Definitions Definitions `db:"definitions" yaml:"definitions"`
	CreatedAt   time.Time   `db:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" yaml:"updated_at"`
}

// Definitions is stored as a JSON array column.
type Definitions []string

func (d Definitions) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(d))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal > %w", err)
	}
	return string(b), nil
}

func (d *Definitions) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for definitions: %T", src)
	}
	var definitions []string
	if err := json.Unmarshal(raw, &definitions); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	*d = definitions
	return nil
}

//go:generate mockgen -source=repository.go -destination=../mocks/dictionary/mock_repository.go -package=mock_dictionary

// DictionaryRepository defines operations for managing dictionary entries.
type DictionaryRepository interface {
	FindAll(ctx context.Context) ([]Entry, error)
	FindByWord(ctx context.Context, word string) (*Entry, error)
	Upsert(ctx context.Context, entry *Entry) error
	BatchUpsert(ctx context.Context, entries []*Entry) error
}

// DBDictionaryRepository implements DictionaryRepository and Store using MySQL.
type DBDictionaryRepository struct {
	db *sqlx.DB
}

// NewDBDictionaryRepository creates a new DBDictionaryRepository.
func NewDBDictionaryRepository(db *sqlx.DB) *DBDictionaryRepository {
	return &DBDictionaryRepository{db: db}
}

// FindAll returns all dictionary entries.
func (r *DBDictionaryRepository) FindAll(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, "SELECT word, definitions, created_at, updated_at FROM dictionary_entries ORDER BY word"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(dictionary_entries) > %w", err)
	}
	return entries, nil
}

// FindByWord returns a dictionary entry by word, or nil if not found.
func (r *DBDictionaryRepository) FindByWord(ctx context.Context, word string) (*Entry, error) {
	var entry Entry
	err := r.db.GetContext(ctx, &entry, "SELECT word, definitions, created_at, updated_at FROM dictionary_entries WHERE word = ?", word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(dictionary_entry) > %w", err)
	}
	return &entry, nil
}

const upsertQuery = `INSERT INTO dictionary_entries (word, definitions)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE definitions = VALUES(definitions)`

// Upsert inserts or updates a dictionary entry.
func (r *DBDictionaryRepository) Upsert(ctx context.Context, entry *Entry) error {
	if _, err := r.db.ExecContext(ctx, upsertQuery, entry.Word, entry.Definitions); err != nil {
		return fmt.Errorf("db.ExecContext(upsert dictionary_entry) > %w", err)
	}
	return nil
}

// BatchUpsert writes all entries in one transaction.
func (r *DBDictionaryRepository) BatchUpsert(ctx context.Context, entries []*Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, upsertQuery, entry.Word, entry.Definitions); err != nil {
			return fmt.Errorf("tx.ExecContext(upsert dictionary_entry %s) > %w", entry.Word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit > %w", err)
	}
	return nil
}

// Load reads every entry into a Dictionary.
func (r *DBDictionaryRepository) Load(ctx context.Context) (Dictionary, error) {
	entries, err := r.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.FindAll > %w", err)
	}
	dictionary := make(Dictionary, len(entries))
	for _, entry := range entries {
		dictionary[entry.Word] = entry.Definitions
	}
	return dictionary, nil
}
