// Package binrw provides lazy, zero-copy decoding and re-encoding of nested
// binary records. Values decoded from a Reader keep referencing the source
// buffer until they are touched, so untouched regions are written back as
// verbatim copies of their original bytes.
package binrw

// Reader is a read-only cursor over a borrowed byte slice. Copying a Reader
// is cheap and never copies the underlying bytes.
type Reader struct {
	buf []byte
}

// NewReader returns a Reader over b. The Reader and everything decoded from it
// borrow b; callers must not modify b while those values are alive.
func NewReader(b []byte) Reader {
	return Reader{buf: b}
}

// Len returns the number of unread bytes
func (r Reader) Len() int {
	return len(r.buf)
}

// IsEmpty reports whether no bytes remain
func (r Reader) IsEmpty() bool {
	return len(r.buf) == 0
}

// Bytes returns the unread bytes without copying them
func (r Reader) Bytes() []byte {
	return r.buf
}

func (r Reader) check(op string, n int) error {
	if n < 0 || n > len(r.buf) {
		return &BoundsError{Op: op, Want: n, Have: len(r.buf)}
	}
	return nil
}

// Advance skips n bytes
func (r *Reader) Advance(n int) error {
	if err := r.check("advance", n); err != nil {
		return err
	}
	r.buf = r.buf[n:]
	return nil
}

// Offset returns a new Reader starting n bytes into r. r is unchanged.
func (r Reader) Offset(n int) (Reader, error) {
	if err := r.check("offset", n); err != nil {
		return Reader{}, err
	}
	return Reader{buf: r.buf[n:]}, nil
}

// Truncate limits r to its first n bytes
func (r *Reader) Truncate(n int) error {
	if err := r.check("truncate", n); err != nil {
		return err
	}
	r.buf = r.buf[:n:n]
	return nil
}

// Truncated returns a copy of r limited to its first n bytes
func (r Reader) Truncated(n int) (Reader, error) {
	if err := r.Truncate(n); err != nil {
		return Reader{}, err
	}
	return r, nil
}

// Take returns the next n bytes and advances past them
func (r *Reader) Take(n int) ([]byte, error) {
	if err := r.check("take", n); err != nil {
		return nil, err
	}
	b := r.buf[:n:n]
	r.buf = r.buf[n:]
	return b, nil
}

// Peek returns the next n bytes without advancing
func (r Reader) Peek(n int) ([]byte, error) {
	if err := r.check("peek", n); err != nil {
		return nil, err
	}
	return r.buf[:n:n], nil
}

// consumedSince returns how many bytes were read between start and r
func (r Reader) consumedSince(start Reader) int {
	return len(start.buf) - len(r.buf)
}
