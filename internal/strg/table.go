package strg

import (
	"fmt"
	"io"

	"github.com/jchantrell/discedit/internal/binrw"
)

// Str is one string of a language table
type Str = binrw.Utf16beStr

type strList = binrw.DiffList[Str, binrw.NoArgs, *Str]

// stringTable holds the strings of one language:
//
//	u32 table_size
//	string_count x u32 offset, relative to the first offset
//	string_count x null-terminated UTF-16BE string
//
// Its args are the string count from the file header. table_size and the
// offsets are derived from the strings on write.
type stringTable struct {
	strings strList
}

func (t *stringTable) Decode(r *binrw.Reader, count int) error {
	c := *r
	size, err := binrw.Read[binrw.U32](&c, binrw.NoArgs{})
	if err != nil {
		return fmt.Errorf("reading table size: %w", err)
	}
	body, err := c.Truncated(int(size))
	if err != nil {
		return fmt.Errorf("reading table body: %w", err)
	}
	if err := c.Advance(int(size)); err != nil {
		return err
	}

	offsets, err := binrw.Read[binrw.RoArray[binrw.U32, binrw.NoArgs, *binrw.U32]](&body, binrw.ArrayArgs[binrw.NoArgs]{Count: count})
	if err != nil {
		return fmt.Errorf("reading string offsets: %w", err)
	}
	strs, err := binrw.Read[binrw.RoArray[Str, binrw.NoArgs, *Str]](&body, binrw.ArrayArgs[binrw.NoArgs]{Count: count})
	if err != nil {
		return fmt.Errorf("reading strings: %w", err)
	}
	if !body.IsEmpty() {
		return &binrw.ValueError{Field: "table size", Want: int(size) - body.Len(), Got: int(size)}
	}

	// Offsets are recomputed on write, so they must already agree with
	// the strings for an untouched table to round-trip.
	pos := 4 * count
	i := 0
	for s, err := range strs.All() {
		if err != nil {
			return err
		}
		off, err := offsets.Get(i)
		if err != nil {
			return err
		}
		if err := binrw.ExpectValue(fmt.Sprintf("offset of string %d", i), binrw.U32(pos), off); err != nil {
			return err
		}
		n, _ := s.Size()
		pos += n
		i++
	}

	t.strings = binrw.DiffListFromRun(strs)
	*r = c
	return nil
}

// offsets returns the offset of every string, relative to the first offset
// entry, and the size of the string data that follows them
func (t *stringTable) offsets() ([]binrw.U32, int, error) {
	out := make([]binrw.U32, 0, t.strings.Len())
	pos := 4 * t.strings.Len()
	start := pos
	for s, err := range t.strings.All() {
		if err != nil {
			return nil, 0, err
		}
		out = append(out, binrw.U32(pos))
		n, err := s.Get().Size()
		if err != nil {
			return nil, 0, err
		}
		pos += n
	}
	return out, pos - start, nil
}

func (t *stringTable) Size() (int, error) {
	n, err := t.strings.Size()
	if err != nil {
		return 0, err
	}
	return 4 + 4*t.strings.Len() + n, nil
}

func (t *stringTable) WriteTo(w io.Writer) (int64, error) {
	offsets, dataSize, err := t.offsets()
	if err != nil {
		return 0, err
	}
	fields := make([]binrw.Writable, 0, len(offsets)+2)
	fields = append(fields, binrw.U32(4*len(offsets)+dataSize))
	for _, off := range offsets {
		fields = append(fields, off)
	}
	fields = append(fields, &t.strings)
	return binrw.WriteAll(w, fields...)
}
