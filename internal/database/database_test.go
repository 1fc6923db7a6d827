package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(DefaultDatabaseOptions(filepath.Join(t.TempDir(), "nested", "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateSchema(context.Background()))
	return db
}

func TestNewDatabaseValidation(t *testing.T) {
	_, err := NewDatabase(nil)
	assert.Error(t, err)
	_, err = NewDatabase(&DatabaseOptions{})
	assert.Error(t, err)
}

func TestBuildConnectionString(t *testing.T) {
	dsn := buildConnectionString(DefaultDatabaseOptions("a/b.db"))
	assert.Equal(t, "file:a/b.db?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000&_synchronous=NORMAL", dsn)
}

func TestExportStrings(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	bi := NewBulkInserter(db, &BulkInsertOptions{BatchSize: 3})

	id, err := bi.RegisterTable(ctx, TableInfo{Source: "game.iso", Offset: 128, Size: 64, Languages: 2, Strings: 5})
	require.NoError(t, err)

	var rows []StringRow
	for _, lang := range []string{"ENGL", "FREN"} {
		for i := 0; i < 5; i++ {
			rows = append(rows, StringRow{Language: lang, Index: i, Text: fmt.Sprintf("%s %d", lang, i)})
		}
	}
	var progress []int
	require.NoError(t, bi.InsertStrings(ctx, id, rows, func(done int) { progress = append(progress, done) }))
	assert.Equal(t, []int{3, 6, 9, 10}, progress)

	var text string
	require.NoError(t, db.QueryRow(ctx, `SELECT text FROM strings WHERE table_id = ? AND language = 'FREN' AND idx = 4`, id).Scan(&text))
	assert.Equal(t, "FREN 4", text)

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tables["string_tables"])
	assert.Equal(t, int64(10), tables["strings"])
}

func TestRegisterTableReplacesPreviousExport(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	bi := NewBulkInserter(db, nil)
	info := TableInfo{Source: "game.iso", Offset: 0, Size: 32, Languages: 1, Strings: 1}

	first, err := bi.RegisterTable(ctx, info)
	require.NoError(t, err)
	require.NoError(t, bi.InsertStrings(ctx, first, []StringRow{{Language: "ENGL", Index: 0, Text: "old"}}, nil))

	second, err := bi.RegisterTable(ctx, info)
	require.NoError(t, err)
	require.NoError(t, bi.InsertStrings(ctx, second, []StringRow{{Language: "ENGL", Index: 0, Text: "new"}}, nil))

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tables["string_tables"])
	assert.Equal(t, int64(1), tables["strings"], "cascading delete removes the old strings")
}

func TestDuplicateStringFails(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	bi := NewBulkInserter(db, nil)
	id, err := bi.RegisterTable(ctx, TableInfo{Source: "x", Languages: 1, Strings: 1})
	require.NoError(t, err)

	row := StringRow{Language: "ENGL", Index: 0, Text: "a"}
	err = bi.InsertStrings(ctx, id, []StringRow{row, row}, nil)
	assert.Error(t, err)

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	assert.Zero(t, tables["strings"], "a failed batch is rolled back")
}

func TestClosedDatabase(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())
	_, err := db.Tables(context.Background())
	assert.Error(t, err)
	_, err = db.BeginTx(context.Background(), nil)
	assert.Error(t, err)
}
