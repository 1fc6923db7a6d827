package binrw

import (
	"bytes"
	"io"
)

// NoArgs is the argument type of values that need no out-of-band data to
// decode.
type NoArgs = struct{}

// Writable is implemented by every value that can be encoded. WriteTo must
// emit exactly Size bytes.
type Writable interface {
	Size() (int, error)
	WriteTo(w io.Writer) (int64, error)
}

// Readable is implemented by pointers to values that can be decoded given
// construction arguments of type A. Decode must consume exactly the bytes
// that Size later reports for the decoded value.
type Readable[A any] interface {
	Decode(r *Reader, args A) error
	Writable
}

// Decoder constrains PT to be a pointer to T that is Readable with args A.
// Containers take it as a type parameter so they can decode into T values
// they own.
type Decoder[T any, A any] interface {
	*T
	Readable[A]
}

// FixedSizer is implemented by types whose encoded size never depends on
// their value. FixedSize is called on the zero value.
type FixedSizer interface {
	FixedSize() int
}

// FixedSize reports the static encoded size of T, if it has one
func FixedSize[T any]() (int, bool) {
	if fs, ok := any(new(T)).(FixedSizer); ok {
		return fs.FixedSize(), true
	}
	return 0, false
}

// ArrayArgs are the construction arguments of counted arrays.
type ArrayArgs[A any] struct {
	Count int
	Elem  A
}

// Read decodes a T from r. r is advanced only when decoding succeeds.
func Read[T any, A any, PT Decoder[T, A]](r *Reader, args A) (T, error) {
	var v T
	if err := ReadInto[T, A, PT](r, &v, args); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ReadInto decodes into dst. r is advanced only when decoding succeeds.
func ReadInto[T any, A any, PT Decoder[T, A]](r *Reader, dst *T, args A) error {
	c := *r
	if err := PT(dst).Decode(&c, args); err != nil {
		return err
	}
	*r = c
	return nil
}

// WriteChecked writes v to w and panics if the number of bytes written
// differs from the size v reported beforehand.
func WriteChecked(w io.Writer, v Writable) (int64, error) {
	want, err := v.Size()
	if err != nil {
		return 0, err
	}
	n, err := v.WriteTo(w)
	if err != nil {
		return n, err
	}
	if n != int64(want) {
		invariantf("%T reported size %d but wrote %d bytes", v, want, n)
	}
	return n, nil
}

// Encode returns the encoding of v
func Encode(v Writable) ([]byte, error) {
	size, err := v.Size()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(size)
	if _, err := WriteChecked(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SizeOf sums the sizes of fields, in declaration order
func SizeOf(fields ...Writable) (int, error) {
	total := 0
	for _, f := range fields {
		n, err := f.Size()
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// WriteAll writes fields to w in declaration order
func WriteAll(w io.Writer, fields ...Writable) (int64, error) {
	var total int64
	for _, f := range fields {
		n, err := f.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
