package binrw

import "io"

var zeroBlock [256]byte

// AlignByteCount rounds n up to the next multiple of align. align must be a
// power of two.
func AlignByteCount(align, n int) int {
	return (n + align - 1) &^ (align - 1)
}

// PadBytesCount returns how many bytes follow n up to the next multiple of
// align. align must be a power of two.
func PadBytesCount(align, n int) int {
	return AlignByteCount(align, n) - n
}

// PaddingBlackhole is a run of padding bytes. Its args are the run length.
// Contents are skipped when read and written back as zeros.
type PaddingBlackhole int

func (p *PaddingBlackhole) Decode(r *Reader, n int) error {
	if err := r.Advance(n); err != nil {
		return err
	}
	*p = PaddingBlackhole(n)
	return nil
}

func (p PaddingBlackhole) Size() (int, error) {
	return int(p), nil
}

func (p PaddingBlackhole) WriteTo(w io.Writer) (int64, error) {
	return writeZeros(w, int(p))
}

// WritePadding writes the zeros needed to bring a stream of n bytes up to a
// multiple of align
func WritePadding(w io.Writer, align, n int) (int64, error) {
	return writeZeros(w, PadBytesCount(align, n))
}

func writeZeros(w io.Writer, n int) (int64, error) {
	var total int64
	for n > 0 {
		chunk := min(n, len(zeroBlock))
		m, err := w.Write(zeroBlock[:chunk])
		total += int64(m)
		if err != nil {
			return total, err
		}
		n -= chunk
	}
	return total, nil
}
