package database

import (
	"context"
	"fmt"
	"log/slog"
)

// BulkInserter writes exported strings in batched transactions
type BulkInserter struct {
	db        *Database
	batchSize int
}

// BulkInsertOptions configures bulk insertion behavior
type BulkInsertOptions struct {
	// BatchSize determines how many strings to insert per transaction
	BatchSize int
}

// DefaultBulkInsertOptions returns the defaults used by the export command
func DefaultBulkInsertOptions() *BulkInsertOptions {
	return &BulkInsertOptions{
		BatchSize: 1000,
	}
}

// NewBulkInserter creates a new bulk inserter with the given database and options
func NewBulkInserter(db *Database, options *BulkInsertOptions) *BulkInserter {
	if options == nil {
		options = DefaultBulkInsertOptions()
	}
	if options.BatchSize <= 0 {
		options.BatchSize = DefaultBulkInsertOptions().BatchSize
	}

	return &BulkInserter{
		db:        db,
		batchSize: options.BatchSize,
	}
}

// TableInfo describes where an exported string table came from
type TableInfo struct {
	Source    string
	Offset    int64
	Size      int
	Languages int
	Strings   int
}

// StringRow is one exported string
type StringRow struct {
	Language string
	Index    int
	Text     string
}

// ProgressFunc is called after every committed batch with the number of rows
// inserted so far
type ProgressFunc func(done int)

// RegisterTable records a string table and returns its id. Strings previously
// exported for the same source and offset are removed.
func (bi *BulkInserter) RegisterTable(ctx context.Context, info TableInfo) (int64, error) {
	tx, err := bi.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM string_tables WHERE source = ? AND region_offset = ?`, info.Source, info.Offset); err != nil {
		return 0, fmt.Errorf("removing previous export: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO string_tables (source, region_offset, size, languages, strings) VALUES (?, ?, ?, ?, ?)`,
		info.Source, info.Offset, info.Size, info.Languages, info.Strings)
	if err != nil {
		return 0, fmt.Errorf("inserting string table: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading string table id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return id, nil
}

// InsertStrings inserts rows for the table with the given id
func (bi *BulkInserter) InsertStrings(ctx context.Context, tableID int64, rows []StringRow, progress ProgressFunc) error {
	if len(rows) == 0 {
		slog.Debug("No strings to insert", "table", tableID)
		return nil
	}

	for i := 0; i < len(rows); i += bi.batchSize {
		end := min(i+bi.batchSize, len(rows))
		if err := bi.insertBatch(ctx, tableID, rows[i:end]); err != nil {
			return fmt.Errorf("inserting batch %d-%d: %w", i, end-1, err)
		}
		if progress != nil {
			progress(end)
		}
	}

	slog.Debug("Inserted strings", "table", tableID, "rows", len(rows))
	return nil
}

// insertBatch inserts a single batch of rows within a transaction
func (bi *BulkInserter) insertBatch(ctx context.Context, tableID int64, batch []StringRow) error {
	tx, err := bi.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO strings (table_id, language, idx, text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range batch {
		if _, err := stmt.ExecContext(ctx, tableID, row.Language, row.Index, row.Text); err != nil {
			return fmt.Errorf("inserting %s string %d: %w", row.Language, row.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
