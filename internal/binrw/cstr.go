package binrw

import (
	"bytes"
	"io"
	"strings"
)

// CStr is a null-terminated byte string
type CStr struct {
	raw []byte
}

func NewCStr(s string) (CStr, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return CStr{}, valueErrf("c string", "no NUL", s)
	}
	return CStr{raw: append([]byte(s), 0)}, nil
}

func (c *CStr) Decode(r *Reader, _ NoArgs) error {
	i := bytes.IndexByte(r.Bytes(), 0)
	if i < 0 {
		return &BoundsError{Op: "c string terminator", Want: r.Len() + 1, Have: r.Len()}
	}
	raw, err := r.Take(i + 1)
	if err != nil {
		return err
	}
	c.raw = raw
	return nil
}

func (c CStr) String() string {
	if len(c.raw) == 0 {
		return ""
	}
	return string(c.raw[:len(c.raw)-1])
}

func (c *CStr) Size() (int, error) {
	if c.raw == nil {
		return 1, nil
	}
	return len(c.raw), nil
}

func (c *CStr) WriteTo(w io.Writer) (int64, error) {
	if c.raw == nil {
		return writeBytes(w, []byte{0})
	}
	return writeBytes(w, c.raw)
}
