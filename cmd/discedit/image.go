package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jchantrell/discedit/internal/binrw"
	"github.com/jchantrell/discedit/internal/source"
	"github.com/jchantrell/discedit/internal/strg"
	"github.com/jchantrell/discedit/internal/utils"
)

// loadedTable is a string table decoded from a region of an open image
type loadedTable struct {
	img    *source.Image
	table  *strg.Table
	offset int64
	size   int64
}

// invalidInput turns decode failures caused by the file contents into a
// user-facing message
func invalidInput(path string, err error) error {
	if errors.Is(err, binrw.ErrOutOfBounds) || errors.Is(err, binrw.ErrUnexpectedValue) {
		return fmt.Errorf("%s is not a valid string table: %w", path, err)
	}
	return err
}

// loadTable opens path and decodes the string table selected by --offset and
// --length
func loadTable(path string) (*loadedTable, error) {
	start := time.Now()
	img, err := source.Open(path)
	if err != nil {
		return nil, err
	}

	region, err := img.Region(offset, length)
	if err != nil {
		img.Close()
		return nil, invalidInput(path, err)
	}
	r := region
	table, err := binrw.Read[strg.Table](&r, binrw.NoArgs{})
	if err != nil {
		img.Close()
		return nil, invalidInput(path, err)
	}
	if length >= 0 && !r.IsEmpty() {
		img.Close()
		return nil, fmt.Errorf("%s: table ends %d bytes before the end of the region", path, r.Len())
	}

	size := int64(region.Len() - r.Len())
	slog.Info("Loaded string table",
		"path", path,
		"offset", offset,
		"size", utils.Bytes(size),
		"languages", len(table.Languages()),
		"strings", utils.Number(int64(table.Len())),
		"duration", utils.Duration(time.Since(start)))
	return &loadedTable{img: img, table: &table, offset: offset, size: size}, nil
}

func (l *loadedTable) Close() error {
	return l.img.Close()
}

// save writes the image to out with the table region replaced by the current
// table contents
func (l *loadedTable) save(out string) error {
	head, err := l.img.Section(0, l.offset)
	if err != nil {
		return err
	}
	end := l.offset + l.size
	tail, err := l.img.Section(end, l.img.Len()-end)
	if err != nil {
		return err
	}

	newSize, err := l.table.Size()
	if err != nil {
		return fmt.Errorf("sizing table: %w", err)
	}
	n, err := source.Save(out, binrw.Stream{Src: head}, l.table, binrw.Stream{Src: tail})
	if err != nil {
		return err
	}
	slog.Info("Wrote image", "path", out, "size", utils.Bytes(n), "table_size", newSize)

	if cfg.VerifyWrites {
		if err := l.verifyWritten(out, int64(newSize)); err != nil {
			return fmt.Errorf("verifying %s: %w", out, err)
		}
	}
	return nil
}

// verifyWritten parses the table back out of the written image and compares
// every string with the in-memory table
func (l *loadedTable) verifyWritten(out string, size int64) error {
	img, err := source.Open(out)
	if err != nil {
		return err
	}
	defer img.Close()

	region, err := img.Region(l.offset, size)
	if err != nil {
		return err
	}
	written, err := strg.Parse(region.Bytes())
	if err != nil {
		return err
	}
	if !slices.Equal(written.Languages(), l.table.Languages()) || written.Len() != l.table.Len() {
		return fmt.Errorf("written table shape differs")
	}
	for _, lang := range l.table.Languages() {
		want, err := l.table.Strings(lang)
		if err != nil {
			return err
		}
		got, err := written.Strings(lang)
		if err != nil {
			return err
		}
		if !slices.Equal(want, got) {
			return fmt.Errorf("written %s strings differ", lang)
		}
	}
	slog.Debug("Verified written table", "path", out)
	return nil
}

func currentLanguage() binrw.FourCC {
	return binrw.NewFourCC(cfg.Language)
}
