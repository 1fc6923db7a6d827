package binrw

import (
	"bytes"
	"io"
)

// WithRead is a handle to a byte source of known length that can be streamed
// without being loaded, such as a region of an image file.
type WithRead interface {
	Len() int64
	WithRead(fn func(r io.Reader) error) error
}

// BytesWithRead streams an in-memory buffer
type BytesWithRead []byte

func (b BytesWithRead) Len() int64 {
	return int64(len(b))
}

func (b BytesWithRead) WithRead(fn func(r io.Reader) error) error {
	return fn(bytes.NewReader(b))
}

// SectionWithRead streams N bytes of R starting at Off
type SectionWithRead struct {
	R   io.ReaderAt
	Off int64
	N   int64
}

func (s SectionWithRead) Len() int64 {
	return s.N
}

func (s SectionWithRead) WithRead(fn func(r io.Reader) error) error {
	return fn(io.NewSectionReader(s.R, s.Off, s.N))
}

// Stream is a Writable that copies a WithRead source to the output
type Stream struct {
	Src WithRead
}

func (s Stream) Size() (int, error) {
	return int(s.Src.Len()), nil
}

func (s Stream) WriteTo(w io.Writer) (int64, error) {
	var n int64
	err := s.Src.WithRead(func(r io.Reader) error {
		var err error
		n, err = io.Copy(w, r)
		return err
	})
	if err != nil {
		return n, err
	}
	if n != s.Src.Len() {
		return n, &BoundsError{Op: "stream", Want: int(s.Src.Len()), Have: int(n)}
	}
	return n, nil
}
