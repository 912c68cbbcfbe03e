// Package langnames serves localized language names from a sqlite database.
package langnames

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/share-with-me/apertium-apy/pkg/langcode"
)

// ErrDBNotFound is returned by Open when the database file does not exist.
var ErrDBNotFound = errors.New("language name database not found")

// DBExecutor is satisfied by both *sql.DB and *sql.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Store looks up language names. The connection is opened once at startup
// and shared; database/sql handles concurrent use.
type Store struct {
	db    DBExecutor
	codes *langcode.Mapper
	log   *slog.Logger
}

// New wraps an existing connection.
func New(db DBExecutor, codes *langcode.Mapper, logger *slog.Logger) *Store {
	return &Store{db: db, codes: codes, log: logger.With("component", "langnames")}
}

// Open opens the sqlite database at path, which must already exist.
func Open(ctx context.Context, path string, codes *langcode.Mapper, logger *slog.Logger) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDBNotFound, path)
		}
		return nil, err
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("langnames: open %s: %w", path, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("langnames: ping %s: %w", path, err)
	}
	return New(conn, codes, logger), nil
}

// Close closes the underlying connection if the Store owns one.
func (s *Store) Close() error {
	if c, ok := s.db.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// AddName inserts or replaces the name of code as written in locale.
func (s *Store) AddName(ctx context.Context, locale, code, name string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("code must be non-empty")
	}
	return s.upsertName(ctx, s.db, locale, code, name)
}

func (s *Store) upsertName(ctx context.Context, exec DBExecutor, locale, code, name string) error {
	_, err := exec.ExecContext(ctx,
		`INSERT INTO languageNames (lg, inLg, name) VALUES (?, ?, ?)
		 ON CONFLICT(lg, inLg) DO UPDATE SET name = excluded.name`,
		s.normalizeLocale(locale), code, name)
	return err
}

// LocalizedLanguages returns the names of languages as written in locale.
// Results are keyed by the code the caller asked for. A language requested
// under both its 2- and 3-letter code is returned under both. With no
// languages, every name known for locale is returned.
func (s *Store) LocalizedLanguages(ctx context.Context, locale string, languages []string) (map[string]string, error) {
	locale = s.normalizeLocale(locale)

	langs := slices.Clone(languages)
	slices.Sort(langs)
	langs = slices.Compact(langs)

	requested := make(map[string]bool, len(langs))
	for _, l := range langs {
		requested[l] = true
	}
	converted := make(map[string]string, len(langs))
	duplicated := make(map[string]string)
	for _, l := range langs {
		if alpha2, ok := s.codes.Alpha2Of(l); ok && requested[alpha2] {
			duplicated[alpha2] = l
			duplicated[l] = alpha2
		}
		converted[s.codes.ToAlpha2(l)] = l
	}

	rows, err := s.db.QueryContext(ctx, `SELECT inLg, name FROM languageNames WHERE lg = ?`, locale)
	if err != nil {
		return nil, fmt.Errorf("langnames: query %s: %w", locale, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, err
		}
		if len(langs) == 0 {
			out[code] = name
			continue
		}
		req, ok := converted[code]
		if !ok {
			continue
		}
		out[req] = name
		if other, ok := duplicated[code]; ok {
			out[code] = name
			out[other] = name
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "localized languages",
		slog.String("locale", locale),
		slog.Int("requested", len(langs)),
		slog.Int("found", len(out)),
	)
	return out, nil
}

// normalizeLocale reduces a locale to the 2-letter code names are stored
// under. BCP 47 tags (pt-BR) are cut to their base language.
func (s *Store) normalizeLocale(locale string) string {
	if strings.Contains(locale, "-") {
		if tag, err := language.Parse(locale); err == nil {
			base, _ := tag.Base()
			locale = base.String()
		}
	}
	return s.codes.ToAlpha2(locale)
}
