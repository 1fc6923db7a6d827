package database

import (
	"context"
	"fmt"
	"log/slog"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS string_tables (
		id INTEGER PRIMARY KEY,
		source TEXT NOT NULL,
		region_offset INTEGER NOT NULL,
		size INTEGER NOT NULL,
		languages INTEGER NOT NULL,
		strings INTEGER NOT NULL,
		UNIQUE (source, region_offset)
	)`,
	`CREATE TABLE IF NOT EXISTS strings (
		table_id INTEGER NOT NULL REFERENCES string_tables(id) ON DELETE CASCADE,
		language TEXT NOT NULL,
		idx INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (table_id, language, idx)
	)`,
	`CREATE INDEX IF NOT EXISTS strings_text ON strings (text)`,
}

// CreateSchema creates the export tables if they do not exist yet
func (d *Database) CreateSchema(ctx context.Context) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ddl := range schemaDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}
	slog.Debug("Created schema", "statements", len(schemaDDL))
	return nil
}
