package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/discedit/internal/binrw"
	"github.com/jchantrell/discedit/internal/config"
	"github.com/jchantrell/discedit/internal/strg"
)

var engl = binrw.NewFourCC("ENGL")

// writeImage writes a table between a 4 byte prefix and suffix and selects it
// through the region flags
func writeImage(t *testing.T, strs ...string) string {
	t.Helper()
	table := strg.New(engl)
	for i, s := range strs {
		require.NoError(t, table.InsertString(i, s))
	}
	b, err := table.Bytes()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "disc.img")
	data := append([]byte("HEAD"), b...)
	data = append(data, "TAIL"...)
	require.NoError(t, os.WriteFile(path, data, 0644))

	offset, length = 4, int64(len(b))
	cfg = &config.Config{Language: "ENGL", VerifyWrites: true}
	t.Cleanup(func() { offset, length, cfg = 0, -1, nil })
	return path
}

func TestLoadTableRegion(t *testing.T) {
	path := writeImage(t, "A", "BC")

	lt, err := loadTable(path)
	require.NoError(t, err)
	defer lt.Close()

	assert.Equal(t, int64(64), lt.size)
	strs, err := lt.table.Strings(engl)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "BC"}, strs)
}

func TestLoadTableRejectsGarbage(t *testing.T) {
	path := writeImage(t, "A")
	offset = 0

	_, err := loadTable(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, binrw.ErrUnexpectedValue)
	assert.Contains(t, err.Error(), "not a valid string table")
}

func TestLoadTableTrailingBytes(t *testing.T) {
	path := writeImage(t, "A")
	length += 4

	_, err := loadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bytes before the end of the region")
}

func TestSaveKeepsSurroundingBytes(t *testing.T) {
	path := writeImage(t, "A", "BC")
	out := filepath.Join(t.TempDir(), "out.img")

	lt, err := loadTable(path)
	require.NoError(t, err)
	require.NoError(t, lt.table.SetString(engl, 1, "a much longer string"))
	require.NoError(t, lt.save(out))
	require.NoError(t, lt.Close())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "HEAD", string(data[:4]))
	assert.Equal(t, "TAIL", string(data[len(data)-4:]))

	table, err := strg.Parse(data[4 : len(data)-4])
	require.NoError(t, err)
	strs, err := table.Strings(engl)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "a much longer string"}, strs)
}

func TestSaveInPlace(t *testing.T) {
	path := writeImage(t, "A", "BC")

	lt, err := loadTable(path)
	require.NoError(t, err)
	require.NoError(t, lt.table.InsertString(0, "Z"))
	require.NoError(t, lt.save(path))
	require.NoError(t, lt.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	table, err := strg.Parse(data[4 : len(data)-4])
	require.NoError(t, err)
	strs, err := table.Strings(engl)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "A", "BC"}, strs)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "in.img", outputPath("in.img", ""))
	assert.Equal(t, "out.img", outputPath("in.img", "out.img"))
}
