package binrw

import (
	"fmt"
	"io"
)

// FixedArray is a short counted array that is decoded eagerly. It suits
// small vectors and matrices where laziness buys nothing.
type FixedArray[T any, A any, PT Decoder[T, A]] struct {
	Items []T
}

func (a *FixedArray[T, A, PT]) Decode(r *Reader, args ArrayArgs[A]) error {
	if args.Count < 0 {
		return valueErrf("array count", "non-negative", args.Count)
	}
	if k, ok := FixedSize[T](); ok {
		if k > 0 && args.Count > r.Len()/k {
			return &BoundsError{Op: "array", Want: args.Count * k, Have: r.Len()}
		}
		// zero-size elements: bound the count the same way variable-size
		// elements are bounded
		if k == 0 && args.Count > r.Len()+1 {
			return valueErrf("zero-size array count", r.Len()+1, args.Count)
		}
	}
	c := *r
	// count is untrusted; cap the preallocation by the remaining length
	items := make([]T, 0, min(args.Count, r.Len()))
	for i := 0; i < args.Count; i++ {
		var v T
		if err := ReadInto[T, A, PT](&c, &v, args.Elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, v)
	}
	*r = c
	a.Items = items
	return nil
}

// Len returns the number of elements
func (a *FixedArray[T, A, PT]) Len() int {
	return len(a.Items)
}

func (a *FixedArray[T, A, PT]) Size() (int, error) {
	return ownedSize[T, A, PT](a.Items)
}

func (a *FixedArray[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	return writeOwned[T, A, PT](w, a.Items)
}
