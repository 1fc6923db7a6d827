package binrw

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// rec4Decodes counts rec4 decodes so tests can observe materialization.
var rec4Decodes int

type rec4 [4]byte

func (v *rec4) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(4)
	if err != nil {
		return err
	}
	copy(v[:], b)
	rec4Decodes++
	return nil
}

func (rec4) FixedSize() int     { return 4 }
func (rec4) Size() (int, error) { return 4, nil }
func (v rec4) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, v[:])
}

// varRec is a u8 length followed by that many bytes.
type varRec struct {
	Data []byte
}

func (v *varRec) Decode(r *Reader, _ NoArgs) error {
	var n U8
	if err := n.Decode(r, NoArgs{}); err != nil {
		return err
	}
	b, err := r.Take(int(n))
	if err != nil {
		return err
	}
	v.Data = b
	return nil
}

func (v *varRec) Size() (int, error) {
	return 1 + len(v.Data), nil
}

func (v *varRec) WriteTo(w io.Writer) (int64, error) {
	n, err := U8(len(v.Data)).WriteTo(w)
	if err != nil {
		return n, err
	}
	m, err := writeBytes(w, v.Data)
	return n + m, err
}

// blob takes its length from its args.
type blob []byte

func (v *blob) Decode(r *Reader, n int) error {
	b, err := r.Take(n)
	if err != nil {
		return err
	}
	*v = b
	return nil
}

func (v *blob) Size() (int, error) {
	return len(*v), nil
}

func (v *blob) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, *v)
}

// liar reports one byte more than it writes.
type liar struct{}

func (liar) Size() (int, error) { return 3, nil }
func (liar) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, []byte{1, 2})
}

// marker occupies no bytes
type marker struct{}

func (*marker) Decode(*Reader, NoArgs) error    { return nil }
func (marker) FixedSize() int                   { return 0 }
func (marker) Size() (int, error)               { return 0, nil }
func (marker) WriteTo(io.Writer) (int64, error) { return 0, nil }

type (
	rec4Array  = RoArray[rec4, NoArgs, *rec4]
	varArray   = RoArray[varRec, NoArgs, *varRec]
	rec4Lazy   = LazyArray[rec4, NoArgs, *rec4]
	varLazy    = LazyArray[varRec, NoArgs, *varRec]
	varDiff    = DiffList[varRec, NoArgs, *varRec]
	rec4Diff   = DiffList[rec4, NoArgs, *rec4]
	varForEach = ForEachArray[varRec, NoArgs, *varRec]
)

func encodeVar(t *testing.T, items ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, s := range items {
		v := varRec{Data: []byte(s)}
		_, err := WriteChecked(&buf, &v)
		require.NoError(t, err)
	}
	return buf.Bytes()
}

func varStrings(items []varRec) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = string(v.Data)
	}
	return out
}

func mustEncode(t *testing.T, v Writable) []byte {
	t.Helper()
	b, err := Encode(v)
	require.NoError(t, err)
	return b
}
