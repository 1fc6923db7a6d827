// Package strg reads and edits STRG string table resources.
//
// A string table holds the same list of strings in one or more languages.
// Big-endian layout:
//
//	u32 magic (0x87654321)
//	u32 version (0)
//	u32 language_count
//	u32 string_count
//	language_count x { FourCC language, u32 table_offset }
//	language_count x string table
//	zero padding to a 32 byte boundary
//
// table_offset is relative to the start of the first string table. Every
// count, size and offset is recomputed from the current strings on write, so
// a table that was parsed and not edited is written back byte for byte.
package strg

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jchantrell/discedit/internal/binrw"
)

const (
	Magic   uint32 = 0x87654321
	Version uint32 = 0

	// Alignment is the boundary the end of a table is padded to
	Alignment = 32

	headerSize = 16
)

var (
	// ErrUnknownLanguage is returned when a table has no strings for the
	// requested language.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrIndexOutOfRange is returned for string indices outside the table.
	ErrIndexOutOfRange = errors.New("string index out of range")
)

// langEntry is one entry of the language directory
type langEntry struct {
	Tag    binrw.FourCC
	Offset binrw.U32
}

func (e *langEntry) Decode(r *binrw.Reader, _ binrw.NoArgs) error {
	c := *r
	if err := e.Tag.Decode(&c, binrw.NoArgs{}); err != nil {
		return err
	}
	if err := e.Offset.Decode(&c, binrw.NoArgs{}); err != nil {
		return err
	}
	*r = c
	return nil
}

func (langEntry) FixedSize() int     { return 8 }
func (langEntry) Size() (int, error) { return 8, nil }
func (e langEntry) WriteTo(w io.Writer) (int64, error) {
	return binrw.WriteAll(w, e.Tag, e.Offset)
}

// Table is a parsed string table. It borrows the bytes it was parsed from;
// they must not change while the Table is in use.
type Table struct {
	languages []binrw.FourCC
	count     int
	tables    binrw.LazyArray[stringTable, int, *stringTable]
}

// New returns an empty table with the given languages
func New(languages ...binrw.FourCC) *Table {
	tables := make([]stringTable, len(languages))
	return &Table{
		languages: append([]binrw.FourCC(nil), languages...),
		tables:    binrw.OwnedLazyArray[stringTable, int](tables),
	}
}

// Parse parses a string table that occupies all of b
func Parse(b []byte) (*Table, error) {
	r := binrw.NewReader(b)
	t, err := binrw.Read[Table](&r, binrw.NoArgs{})
	if err != nil {
		return nil, err
	}
	if !r.IsEmpty() {
		return nil, &binrw.ValueError{Field: "trailing bytes", Want: 0, Got: r.Len()}
	}
	return &t, nil
}

// Decode parses a string table from the front of r, including its trailing
// padding
func (t *Table) Decode(r *binrw.Reader, _ binrw.NoArgs) error {
	c := *r
	start := c.Len()
	if err := binrw.ReadExpect[binrw.U32](&c, "magic", binrw.U32(Magic)); err != nil {
		return err
	}
	if err := binrw.ReadExpect[binrw.U32](&c, "version", binrw.U32(Version)); err != nil {
		return err
	}
	langCount, err := binrw.Read[binrw.U32](&c, binrw.NoArgs{})
	if err != nil {
		return fmt.Errorf("reading language count: %w", err)
	}
	strCount, err := binrw.Read[binrw.U32](&c, binrw.NoArgs{})
	if err != nil {
		return fmt.Errorf("reading string count: %w", err)
	}

	dir, err := binrw.Read[binrw.FixedArray[langEntry, binrw.NoArgs, *langEntry]](&c, binrw.ArrayArgs[binrw.NoArgs]{Count: int(langCount)})
	if err != nil {
		return fmt.Errorf("reading language directory: %w", err)
	}

	tablesStart := c
	tables, err := binrw.Read[binrw.LazyArray[stringTable, int, *stringTable]](&c, binrw.ArrayArgs[int]{Count: int(langCount), Elem: int(strCount)})
	if err != nil {
		return fmt.Errorf("reading string tables: %w", err)
	}

	// Walk the table spans to check the directory offsets
	pos := 0
	raw := tablesStart
	languages := make([]binrw.FourCC, len(dir.Items))
	for i, e := range dir.Items {
		languages[i] = e.Tag
		if err := binrw.ExpectValue(fmt.Sprintf("offset of %s table", e.Tag), binrw.U32(pos), e.Offset); err != nil {
			return err
		}
		size, err := binrw.Read[binrw.U32](&raw, binrw.NoArgs{})
		if err != nil {
			return err
		}
		if err := raw.Advance(int(size)); err != nil {
			return err
		}
		pos += 4 + int(size)
	}

	pad := binrw.PadBytesCount(Alignment, start-c.Len())
	padding, err := c.Take(pad)
	if err != nil {
		return fmt.Errorf("reading padding: %w", err)
	}
	for _, b := range padding {
		if b != 0 {
			return &binrw.ValueError{Field: "padding", Want: 0, Got: b}
		}
	}

	*t = Table{languages: languages, count: int(strCount), tables: tables}
	*r = c
	slog.Debug("Parsed string table", "languages", len(languages), "strings", t.count, "size", start-c.Len())
	return nil
}

// Languages returns the language tags in file order
func (t *Table) Languages() []binrw.FourCC {
	return append([]binrw.FourCC(nil), t.languages...)
}

// Len returns the number of strings per language
func (t *Table) Len() int {
	return t.count
}

func (t *Table) langIndex(lang binrw.FourCC) (int, error) {
	for i, l := range t.languages {
		if l == lang {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
}

func (t *Table) checkIndex(i int) error {
	if i < 0 || i >= t.count {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, t.count)
	}
	return nil
}

// table returns a read-only view of the strings of language li without
// materializing anything
func (t *Table) table(li int) (stringTable, error) {
	i := 0
	for st, err := range t.tables.All() {
		if err != nil {
			return stringTable{}, err
		}
		if i == li {
			return st, nil
		}
		i++
	}
	return stringTable{}, fmt.Errorf("%w: table %d missing", ErrUnknownLanguage, li)
}

// String returns string i of lang
func (t *Table) String(lang binrw.FourCC, i int) (string, error) {
	li, err := t.langIndex(lang)
	if err != nil {
		return "", err
	}
	if err := t.checkIndex(i); err != nil {
		return "", err
	}
	st, err := t.table(li)
	if err != nil {
		return "", err
	}
	v, err := st.strings.CursorAt(i).Peek()
	if err != nil {
		return "", err
	}
	return v.Value().String(), nil
}

// Strings returns every string of lang
func (t *Table) Strings(lang binrw.FourCC) ([]string, error) {
	li, err := t.langIndex(lang)
	if err != nil {
		return nil, err
	}
	st, err := t.table(li)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, t.count)
	for v, err := range st.strings.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, v.Value().String())
	}
	return out, nil
}

// SetString replaces string i of lang. Only that string is re-encoded on
// write.
func (t *Table) SetString(lang binrw.FourCC, i int, s string) error {
	li, err := t.langIndex(lang)
	if err != nil {
		return err
	}
	if err := t.checkIndex(i); err != nil {
		return err
	}
	st, err := t.tables.At(li)
	if err != nil {
		return err
	}
	v, err := st.strings.CursorAt(i).Value()
	if err != nil {
		return err
	}
	return v.Set(s)
}

// InsertString inserts s before index at in every language. at may equal
// Len to append.
func (t *Table) InsertString(at int, s string) error {
	if at < 0 || at > t.count {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, at, t.count)
	}
	str, err := binrw.NewUtf16beStr(s)
	if err != nil {
		return err
	}
	tables, err := t.tables.AsMutVec()
	if err != nil {
		return err
	}
	for i := range *tables {
		if err := (*tables)[i].strings.CursorAt(at).InsertBefore(str); err != nil {
			return fmt.Errorf("inserting into %s table: %w", t.languages[i], err)
		}
	}
	t.count++
	return nil
}

// AddLanguage appends a language whose strings are copied from an existing
// one
func (t *Table) AddLanguage(lang, from binrw.FourCC) error {
	if _, err := t.langIndex(lang); err == nil {
		return fmt.Errorf("language %s already present", lang)
	}
	li, err := t.langIndex(from)
	if err != nil {
		return err
	}
	src, err := t.table(li)
	if err != nil {
		return err
	}
	items, err := src.strings.Collect()
	if err != nil {
		return err
	}
	tables, err := t.tables.AsMutVec()
	if err != nil {
		return err
	}
	*tables = append(*tables, stringTable{strings: binrw.NewDiffList[Str, binrw.NoArgs](items...)})
	t.languages = append(t.languages, lang)
	return nil
}

// bodySize returns the unpadded encoded size and the directory offset of
// every language table
func (t *Table) bodySize() (int, []binrw.U32, error) {
	offsets := make([]binrw.U32, 0, len(t.languages))
	pos := 0
	for st, err := range t.tables.All() {
		if err != nil {
			return 0, nil, err
		}
		n, err := st.Size()
		if err != nil {
			return 0, nil, err
		}
		offsets = append(offsets, binrw.U32(pos))
		pos += n
	}
	if len(offsets) != len(t.languages) {
		panic(fmt.Sprintf("strg: %d languages but %d tables", len(t.languages), len(offsets)))
	}
	return headerSize + 8*len(t.languages) + pos, offsets, nil
}

func (t *Table) Size() (int, error) {
	n, _, err := t.bodySize()
	if err != nil {
		return 0, err
	}
	return binrw.AlignByteCount(Alignment, n), nil
}

func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, offsets, err := t.bodySize()
	if err != nil {
		return 0, err
	}
	fields := []binrw.Writable{
		binrw.U32(Magic),
		binrw.U32(Version),
		binrw.U32(len(t.languages)),
		binrw.U32(t.count),
	}
	for i, lang := range t.languages {
		fields = append(fields, langEntry{Tag: lang, Offset: offsets[i]})
	}
	fields = append(fields, &t.tables, binrw.PaddingBlackhole(binrw.PadBytesCount(Alignment, n)))
	return binrw.WriteAll(w, fields...)
}

// Bytes encodes the table
func (t *Table) Bytes() ([]byte, error) {
	return binrw.Encode(t)
}
