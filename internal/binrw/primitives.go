package binrw

import (
	"encoding/binary"
	"io"
	"math"
)

// Big-endian scalar types. All of them are fixed size and take NoArgs.
type (
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	F32  float32
	F64  float64
	Bool bool
)

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	return int64(n), err
}

func (v *U8) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(1)
	if err != nil {
		return err
	}
	*v = U8(b[0])
	return nil
}

func (U8) FixedSize() int     { return 1 }
func (U8) Size() (int, error) { return 1, nil }
func (v U8) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, []byte{byte(v)})
}

func (v *I8) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(1)
	if err != nil {
		return err
	}
	*v = I8(b[0])
	return nil
}

func (I8) FixedSize() int     { return 1 }
func (I8) Size() (int, error) { return 1, nil }
func (v I8) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, []byte{byte(v)})
}

func (v *Bool) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Peek(1)
	if err != nil {
		return err
	}
	if b[0] > 1 {
		return valueErrf("bool", "0 or 1", b[0])
	}
	*v = b[0] == 1
	return r.Advance(1)
}

func (Bool) FixedSize() int     { return 1 }
func (Bool) Size() (int, error) { return 1, nil }
func (v Bool) WriteTo(w io.Writer) (int64, error) {
	var b byte
	if v {
		b = 1
	}
	return writeBytes(w, []byte{b})
}

func (v *U16) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(2)
	if err != nil {
		return err
	}
	*v = U16(binary.BigEndian.Uint16(b))
	return nil
}

func (U16) FixedSize() int     { return 2 }
func (U16) Size() (int, error) { return 2, nil }
func (v U16) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, binary.BigEndian.AppendUint16(nil, uint16(v)))
}

func (v *I16) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(2)
	if err != nil {
		return err
	}
	*v = I16(binary.BigEndian.Uint16(b))
	return nil
}

func (I16) FixedSize() int     { return 2 }
func (I16) Size() (int, error) { return 2, nil }
func (v I16) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, binary.BigEndian.AppendUint16(nil, uint16(v)))
}

func (v *U32) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(4)
	if err != nil {
		return err
	}
	*v = U32(binary.BigEndian.Uint32(b))
	return nil
}

func (U32) FixedSize() int     { return 4 }
func (U32) Size() (int, error) { return 4, nil }
func (v U32) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, binary.BigEndian.AppendUint32(nil, uint32(v)))
}

func (v *I32) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(4)
	if err != nil {
		return err
	}
	*v = I32(binary.BigEndian.Uint32(b))
	return nil
}

func (I32) FixedSize() int     { return 4 }
func (I32) Size() (int, error) { return 4, nil }
func (v I32) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, binary.BigEndian.AppendUint32(nil, uint32(v)))
}

func (v *F32) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(4)
	if err != nil {
		return err
	}
	*v = F32(math.Float32frombits(binary.BigEndian.Uint32(b)))
	return nil
}

func (F32) FixedSize() int     { return 4 }
func (F32) Size() (int, error) { return 4, nil }
func (v F32) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, binary.BigEndian.AppendUint32(nil, math.Float32bits(float32(v))))
}

func (v *U64) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(8)
	if err != nil {
		return err
	}
	*v = U64(binary.BigEndian.Uint64(b))
	return nil
}

func (U64) FixedSize() int     { return 8 }
func (U64) Size() (int, error) { return 8, nil }
func (v U64) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, binary.BigEndian.AppendUint64(nil, uint64(v)))
}

func (v *I64) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(8)
	if err != nil {
		return err
	}
	*v = I64(binary.BigEndian.Uint64(b))
	return nil
}

func (I64) FixedSize() int     { return 8 }
func (I64) Size() (int, error) { return 8, nil }
func (v I64) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, binary.BigEndian.AppendUint64(nil, uint64(v)))
}

func (v *F64) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(8)
	if err != nil {
		return err
	}
	*v = F64(math.Float64frombits(binary.BigEndian.Uint64(b)))
	return nil
}

func (F64) FixedSize() int     { return 8 }
func (F64) Size() (int, error) { return 8, nil }
func (v F64) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, binary.BigEndian.AppendUint64(nil, math.Float64bits(float64(v))))
}

// FourCC is a four character resource or language tag.
type FourCC [4]byte

// NewFourCC builds a FourCC from the first four bytes of s
func NewFourCC(s string) FourCC {
	var f FourCC
	copy(f[:], s)
	return f
}

func (f *FourCC) Decode(r *Reader, _ NoArgs) error {
	b, err := r.Take(4)
	if err != nil {
		return err
	}
	copy(f[:], b)
	return nil
}

func (FourCC) FixedSize() int     { return 4 }
func (FourCC) Size() (int, error) { return 4, nil }
func (f FourCC) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, f[:])
}

func (f FourCC) String() string {
	return string(f[:])
}
