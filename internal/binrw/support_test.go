package binrw

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignment(t *testing.T) {
	cases := []struct {
		align, n, aligned, pad int
	}{
		{32, 0, 0, 0},
		{32, 1, 32, 31},
		{32, 32, 32, 0},
		{32, 33, 64, 31},
		{4, 6, 8, 2},
		{1, 7, 7, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.aligned, AlignByteCount(c.align, c.n), "align %d n %d", c.align, c.n)
		assert.Equal(t, c.pad, PadBytesCount(c.align, c.n), "align %d n %d", c.align, c.n)
	}
}

func TestPaddingBlackhole(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	p, err := Read[PaddingBlackhole](&r, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []byte{0, 0, 0}, mustEncode(t, p))

	_, err = Read[PaddingBlackhole](&r, 2)
	require.ErrorIs(t, err, ErrOutOfBounds)

	var buf bytes.Buffer
	n, err := WritePadding(&buf, 32, 300)
	require.NoError(t, err)
	assert.Equal(t, int64(20), n)
	assert.Equal(t, make([]byte, 20), buf.Bytes())

	big := PaddingBlackhole(1000)
	assert.Len(t, mustEncode(t, big), 1000)
}

func TestUtf16beStr(t *testing.T) {
	for _, s := range []string{"", "A", "héllo", "日本語", "emoji 😀"} {
		u, err := NewUtf16beStr(s)
		require.NoError(t, err)
		raw := mustEncode(t, &u)
		assert.Equal(t, []byte{0, 0}, raw[len(raw)-2:])

		r := NewReader(append(raw, 0xab))
		got, err := Read[Utf16beStr](&r, NoArgs{})
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
		assert.Equal(t, 1, r.Len())
	}

	u, err := NewUtf16beStr("A")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 'A', 0, 0}, u.Raw())
}

func TestUtf16beStrErrors(t *testing.T) {
	r := NewReader([]byte{0, 'A', 0, 'B'})
	_, err := Read[Utf16beStr](&r, NoArgs{})
	require.ErrorIs(t, err, ErrOutOfBounds)

	// a zero byte that is not unit aligned is not a terminator
	r = NewReader([]byte{0x4e, 0x00, 0x00, 0x41})
	_, err = Read[Utf16beStr](&r, NoArgs{})
	require.ErrorIs(t, err, ErrOutOfBounds)

	var u Utf16beStr
	require.ErrorIs(t, u.Set("a\x00b"), ErrUnexpectedValue)
}

func TestUtf16beStrKeepsSourceBytes(t *testing.T) {
	// a lone surrogate does not survive a decode and re-encode, but an
	// untouched string is written back unchanged
	src := []byte{0xd8, 0x00, 0x00, 0x41, 0, 0}
	r := NewReader(src)
	u, err := Read[Utf16beStr](&r, NoArgs{})
	require.NoError(t, err)
	assert.Equal(t, src, mustEncode(t, &u))
}

func TestCStr(t *testing.T) {
	r := NewReader([]byte("abc\x00def"))
	c, err := Read[CStr](&r, NoArgs{})
	require.NoError(t, err)
	assert.Equal(t, "abc", c.String())
	assert.Equal(t, 3, r.Len())

	_, err = Read[CStr](&r, NoArgs{})
	require.ErrorIs(t, err, ErrOutOfBounds)

	n, err := NewCStr("xy")
	require.NoError(t, err)
	assert.Equal(t, []byte("xy\x00"), mustEncode(t, &n))
}

func TestLCow(t *testing.T) {
	x := 5
	b := Borrowed(&x)
	*b.Get() = 6
	assert.Equal(t, 6, x)
	assert.True(t, b.IsBorrowed())

	o := b.IntoOwned()
	*o.Get() = 7
	assert.Equal(t, 6, x)
	assert.Equal(t, 7, o.Value())
	assert.False(t, o.IsBorrowed())
}

func TestImmCow(t *testing.T) {
	v := U16(0x0102)
	b := BorrowedImm(&v)
	assert.Equal(t, []byte{1, 2}, mustEncode(t, &b))
	v = 0x0304
	assert.Equal(t, []byte{3, 4}, mustEncode(t, &b))

	o := OwnedImm[U16](0x0506)
	assert.Equal(t, U16(0x0506), o.Value())
	assert.Equal(t, []byte{5, 6}, mustEncode(t, &o))
}

func TestStream(t *testing.T) {
	data := []byte("0123456789")
	s := Stream{Src: SectionWithRead{R: bytes.NewReader(data), Off: 2, N: 5}}
	assert.Equal(t, []byte("23456"), mustEncode(t, s))

	b := Stream{Src: BytesWithRead(data)}
	assert.Equal(t, data, mustEncode(t, b))

	var out bytes.Buffer
	short := Stream{Src: SectionWithRead{R: bytes.NewReader(data), Off: 8, N: 5}}
	_, err := short.WriteTo(&out)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestReadExpect(t *testing.T) {
	r := NewReader([]byte{0x87, 0x65, 0x43, 0x21, 0, 0, 0, 1})
	require.NoError(t, ReadExpect[U32](&r, "magic", 0x87654321))
	err := ReadExpect[U32](&r, "version", 0)
	var ve *ValueError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "version", ve.Field)
	assert.Equal(t, U32(1), ve.Got)
	assert.Equal(t, 4, r.Len())

	require.NoError(t, ExpectValue("tag", NewFourCC("ENGL"), NewFourCC("ENGL")))
	require.ErrorIs(t, ExpectValue("tag", NewFourCC("ENGL"), NewFourCC("FREN")), ErrUnexpectedValue)
}
