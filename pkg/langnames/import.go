package langnames

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultBatchSize is the number of rows written per transaction by Import.
const DefaultBatchSize = 500

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type nameRow struct{ locale, code, name string }

// Import loads tab separated rows of "locale code name" from r, replacing
// existing names. Lines starting with # are skipped. Rows are committed in
// transactions of batchSize; a failed batch aborts the import and earlier
// batches stay committed. It returns the number of rows written.
func (s *Store) Import(ctx context.Context, r io.Reader, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = 3
	reader.LazyQuotes = true

	batch := make([]nameRow, 0, batchSize)
	written := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.writeBatch(ctx, batch); err != nil {
			return err
		}
		written += len(batch)
		s.log.DebugContext(ctx, "batch committed", slog.Int("rows", len(batch)), slog.Int("total", written))
		batch = batch[:0]
		return nil
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return written, fmt.Errorf("langnames: import: %w", err)
		}
		row := nameRow{
			locale: strings.TrimSpace(rec[0]),
			code:   strings.TrimSpace(rec[1]),
			name:   strings.TrimSpace(rec[2]),
		}
		if row.locale == "" || row.code == "" {
			line, _ := reader.FieldPos(0)
			return written, fmt.Errorf("langnames: import: line %d: empty locale or code", line)
		}
		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := flush(); err != nil {
		return written, err
	}
	s.log.InfoContext(ctx, "language names imported", slog.Int("rows", written))
	return written, nil
}

func (s *Store) writeBatch(ctx context.Context, batch []nameRow) error {
	beginner, ok := s.db.(txBeginner)
	if !ok {
		// Already inside a caller's transaction.
		for _, row := range batch {
			if err := s.upsertName(ctx, s.db, row.locale, row.code, row.name); err != nil {
				return fmt.Errorf("langnames: import %s/%s: %w", row.locale, row.code, err)
			}
		}
		return nil
	}

	tx, err := beginner.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("langnames: begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	for _, row := range batch {
		if err := s.upsertName(ctx, tx, row.locale, row.code, row.name); err != nil {
			return fmt.Errorf("langnames: import %s/%s: %w", row.locale, row.code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("langnames: commit batch (%d rows): %w", len(batch), err)
	}
	return nil
}
