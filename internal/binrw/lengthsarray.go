package binrw

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
)

// LengthsArgs are the construction arguments of a LengthsArray: the byte
// length of every element, usually read from a preceding size table.
type LengthsArgs[A any] struct {
	Lengths []int
	Elem    A
}

// LengthsArray is an array whose element i occupies exactly Lengths[i] bytes.
// Because every slot boundary is known up front, any element can be decoded
// in O(1) whether or not its type is fixed size. An element is decoded from
// its slot only; slot bytes it does not consume are kept while the array is
// borrowed.
type LengthsArray[T any, A any, PT Decoder[T, A]] struct {
	data    Reader
	ends    []int
	args    A
	owned   []T
	isOwned bool
}

func (a *LengthsArray[T, A, PT]) Decode(r *Reader, args LengthsArgs[A]) error {
	ends := make([]int, len(args.Lengths))
	total := 0
	for i, n := range args.Lengths {
		if n < 0 {
			return valueErrf(fmt.Sprintf("length of element %d", i), "non-negative", n)
		}
		if n > r.Len()-total {
			return &BoundsError{Op: "array", Want: total + n, Have: r.Len()}
		}
		total += n
		ends[i] = total
	}
	b, err := r.Take(total)
	if err != nil {
		return err
	}
	*a = LengthsArray[T, A, PT]{data: NewReader(b), ends: ends, args: args.Elem}
	return nil
}

// IsOwned reports whether the array has been materialized
func (a *LengthsArray[T, A, PT]) IsOwned() bool {
	return a.isOwned
}

// Len returns the number of elements
func (a *LengthsArray[T, A, PT]) Len() int {
	if a.isOwned {
		return len(a.owned)
	}
	return len(a.ends)
}

// Slot returns a Reader over the bytes of element i while borrowed
func (a *LengthsArray[T, A, PT]) Slot(i int) Reader {
	if a.isOwned {
		invariantf("Slot on materialized array")
	}
	if i < 0 || i >= len(a.ends) {
		invariantf("index %d out of range [0, %d)", i, len(a.ends))
	}
	start := 0
	if i > 0 {
		start = a.ends[i-1]
	}
	return NewReader(a.data.Bytes()[start:a.ends[i]])
}

// Get decodes element i
func (a *LengthsArray[T, A, PT]) Get(i int) (T, error) {
	if a.isOwned {
		if i < 0 || i >= len(a.owned) {
			invariantf("index %d out of range [0, %d)", i, len(a.owned))
		}
		return a.owned[i], nil
	}
	slot := a.Slot(i)
	v, err := Read[T, A, PT](&slot, a.args)
	if err != nil {
		return v, fmt.Errorf("element %d: %w", i, err)
	}
	return v, nil
}

// All yields every element in order without materializing
func (a *LengthsArray[T, A, PT]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := 0; i < a.Len(); i++ {
			v, err := a.Get(i)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// AsMutVec materializes the array on first use and returns its backing slice.
// Once owned, elements are written back to back and Lengths reports their
// encoded sizes.
func (a *LengthsArray[T, A, PT]) AsMutVec() (*[]T, error) {
	if !a.isOwned {
		items := make([]T, 0, len(a.ends))
		for v, err := range a.All() {
			if err != nil {
				return nil, fmt.Errorf("materializing array: %w", err)
			}
			items = append(items, v)
		}
		slog.Debug("Lengths array materialized", "count", len(items))
		*a = LengthsArray[T, A, PT]{owned: items, isOwned: true, args: a.args}
	}
	return &a.owned, nil
}

// Lengths returns the current byte length of every element, for re-deriving
// the size table that governs this array.
func (a *LengthsArray[T, A, PT]) Lengths() ([]int, error) {
	out := make([]int, a.Len())
	if !a.isOwned {
		start := 0
		for i, end := range a.ends {
			out[i] = end - start
			start = end
		}
		return out, nil
	}
	for i := range a.owned {
		n, err := PT(&a.owned[i]).Size()
		if err != nil {
			return nil, fmt.Errorf("sizing element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

func (a *LengthsArray[T, A, PT]) Size() (int, error) {
	if !a.isOwned {
		return a.data.Len(), nil
	}
	return ownedSize[T, A, PT](a.owned)
}

func (a *LengthsArray[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	if !a.isOwned {
		return writeBytes(w, a.data.Bytes())
	}
	return writeOwned[T, A, PT](w, a.owned)
}
