package binrw

import (
	"fmt"
	"io"
)

// measure returns how many bytes one T occupies at the front of r
func measure[T any, A any, PT Decoder[T, A]](r Reader, args A) (int, error) {
	if k, ok := FixedSize[T](); ok {
		if k > r.Len() {
			return 0, &BoundsError{Op: "value", Want: k, Have: r.Len()}
		}
		return k, nil
	}
	c := r
	var v T
	if err := ReadInto[T, A, PT](&c, &v, args); err != nil {
		return 0, err
	}
	return c.consumedSince(r), nil
}

// Lazy defers decoding a single value until Get is called, then caches it.
// Until then the value is written back as its original bytes.
type Lazy[T any, A any, PT Decoder[T, A]] struct {
	raw   Reader
	args  A
	value *T
}

// NewLazy returns a Lazy already holding v
func NewLazy[T any, A any, PT Decoder[T, A]](v T) Lazy[T, A, PT] {
	return Lazy[T, A, PT]{value: &v}
}

func (l *Lazy[T, A, PT]) Decode(r *Reader, args A) error {
	n, err := measure[T, A, PT](*r, args)
	if err != nil {
		return err
	}
	b, err := r.Take(n)
	if err != nil {
		return err
	}
	*l = Lazy[T, A, PT]{raw: NewReader(b), args: args}
	return nil
}

// IsDecoded reports whether Get or Set has been called
func (l *Lazy[T, A, PT]) IsDecoded() bool {
	return l.value != nil
}

// Get decodes the value on first use and returns a pointer to the cached
// copy. Changes through the pointer are written by WriteTo.
func (l *Lazy[T, A, PT]) Get() (*T, error) {
	if l.value == nil {
		r := l.raw
		v, err := Read[T, A, PT](&r, l.args)
		if err != nil {
			return nil, err
		}
		l.value = &v
	}
	return l.value, nil
}

// Set replaces the value
func (l *Lazy[T, A, PT]) Set(v T) {
	l.value = &v
}

func (l *Lazy[T, A, PT]) Size() (int, error) {
	if l.value == nil {
		return l.raw.Len(), nil
	}
	return PT(l.value).Size()
}

func (l *Lazy[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	if l.value == nil {
		return writeBytes(w, l.raw.Bytes())
	}
	return PT(l.value).WriteTo(w)
}

// LazySized is a value preceded by its big-endian u32 byte length. The
// payload is not looked at until Get; the length prefix is re-derived on
// write once the value has been decoded.
type LazySized[T any, A any, PT Decoder[T, A]] struct {
	raw   Reader
	args  A
	value *T
}

// NewLazySized returns a LazySized already holding v
func NewLazySized[T any, A any, PT Decoder[T, A]](v T) LazySized[T, A, PT] {
	return LazySized[T, A, PT]{value: &v}
}

func (l *LazySized[T, A, PT]) Decode(r *Reader, args A) error {
	c := *r
	var size U32
	if err := size.Decode(&c, NoArgs{}); err != nil {
		return fmt.Errorf("reading size prefix: %w", err)
	}
	b, err := c.Take(int(size))
	if err != nil {
		return fmt.Errorf("reading sized payload: %w", err)
	}
	*r = c
	*l = LazySized[T, A, PT]{raw: NewReader(b), args: args}
	return nil
}

// IsDecoded reports whether Get or Set has been called
func (l *LazySized[T, A, PT]) IsDecoded() bool {
	return l.value != nil
}

// Get decodes the payload on first use. The value must account for the
// whole payload.
func (l *LazySized[T, A, PT]) Get() (*T, error) {
	if l.value == nil {
		r := l.raw
		v, err := Read[T, A, PT](&r, l.args)
		if err != nil {
			return nil, err
		}
		if !r.IsEmpty() {
			return nil, valueErrf("sized payload trailing bytes", 0, r.Len())
		}
		l.value = &v
	}
	return l.value, nil
}

// Set replaces the value
func (l *LazySized[T, A, PT]) Set(v T) {
	l.value = &v
}

func (l *LazySized[T, A, PT]) payloadSize() (int, error) {
	if l.value == nil {
		return l.raw.Len(), nil
	}
	return PT(l.value).Size()
}

func (l *LazySized[T, A, PT]) Size() (int, error) {
	n, err := l.payloadSize()
	if err != nil {
		return 0, err
	}
	return 4 + n, nil
}

func (l *LazySized[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	n, err := l.payloadSize()
	if err != nil {
		return 0, err
	}
	total, err := U32(n).WriteTo(w)
	if err != nil {
		return total, err
	}
	var m int64
	if l.value == nil {
		m, err = writeBytes(w, l.raw.Bytes())
	} else {
		m, err = PT(l.value).WriteTo(w)
	}
	return total + m, err
}

// Uncached decodes its value afresh on every Get and never caches it. It is
// meant for self-referencing layouts, where holding decoded children would
// need unbounded storage. It is read-only: WriteTo always emits the original
// bytes.
type Uncached[T any, A any, PT Decoder[T, A]] struct {
	raw  Reader
	args A
}

func (u *Uncached[T, A, PT]) Decode(r *Reader, args A) error {
	n, err := measure[T, A, PT](*r, args)
	if err != nil {
		return err
	}
	b, err := r.Take(n)
	if err != nil {
		return err
	}
	*u = Uncached[T, A, PT]{raw: NewReader(b), args: args}
	return nil
}

// Get decodes and returns a fresh copy of the value
func (u *Uncached[T, A, PT]) Get() (T, error) {
	r := u.raw
	return Read[T, A, PT](&r, u.args)
}

func (u *Uncached[T, A, PT]) Size() (int, error) {
	return u.raw.Len(), nil
}

func (u *Uncached[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, u.raw.Bytes())
}
