package binrw

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// EncodeUtf16be encodes s as UTF-16BE without a terminator
func EncodeUtf16be(s string) ([]byte, error) {
	b, err := utf16be.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding utf-16be: %w", err)
	}
	return b, nil
}

// DecodeUtf16be decodes UTF-16BE bytes. Unpaired surrogates become U+FFFD.
func DecodeUtf16be(b []byte) (string, error) {
	out, err := utf16be.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding utf-16be: %w", err)
	}
	return string(out), nil
}

// Utf16beStr is a null-terminated UTF-16BE string. A decoded string keeps
// referencing its source bytes until Set replaces it.
type Utf16beStr struct {
	raw []byte
}

// NewUtf16beStr encodes s. s must not contain NUL.
func NewUtf16beStr(s string) (Utf16beStr, error) {
	var u Utf16beStr
	if err := u.Set(s); err != nil {
		return Utf16beStr{}, err
	}
	return u, nil
}

func (u *Utf16beStr) Decode(r *Reader, _ NoArgs) error {
	b := r.Bytes()
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			raw, err := r.Take(i + 2)
			if err != nil {
				return err
			}
			u.raw = raw
			return nil
		}
	}
	return &BoundsError{Op: "utf-16 terminator", Want: len(b) + 2, Have: len(b)}
}

// Set replaces the string
func (u *Utf16beStr) Set(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return valueErrf("utf-16 string", "no NUL", fmt.Sprintf("%q", s))
	}
	b, err := EncodeUtf16be(s)
	if err != nil {
		return err
	}
	u.raw = append(b, 0, 0)
	return nil
}

// String decodes the string without its terminator
func (u Utf16beStr) String() string {
	if len(u.raw) < 2 {
		return ""
	}
	s, err := DecodeUtf16be(u.raw[:len(u.raw)-2])
	if err != nil {
		return ""
	}
	return s
}

// Raw returns the encoded bytes including the terminator
func (u Utf16beStr) Raw() []byte {
	return u.raw
}

func (u *Utf16beStr) Size() (int, error) {
	if u.raw == nil {
		return 2, nil
	}
	return len(u.raw), nil
}

func (u *Utf16beStr) WriteTo(w io.Writer) (int64, error) {
	if u.raw == nil {
		return writeBytes(w, []byte{0, 0})
	}
	return writeBytes(w, u.raw)
}
