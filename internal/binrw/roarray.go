package binrw

import (
	"fmt"
	"io"
	"iter"
	"math"
)

// RoArray is a read-only run of count encoded elements that are decoded on
// demand. It never owns its bytes.
type RoArray[T any, A any, PT Decoder[T, A]] struct {
	data  Reader
	count int
	args  A
}

// Decode takes the span of args.Count elements from the front of r. Fixed-size
// element types cost O(1); variable-size ones are scanned once without
// allocating.
func (a *RoArray[T, A, PT]) Decode(r *Reader, args ArrayArgs[A]) error {
	if args.Count < 0 {
		return valueErrf("array count", "non-negative", args.Count)
	}
	n, err := spanOf[T, A, PT](*r, args.Count, args.Elem, false)
	if err != nil {
		return err
	}
	b, err := r.Take(n)
	if err != nil {
		return err
	}
	*a = RoArray[T, A, PT]{data: NewReader(b), count: args.Count, args: args.Elem}
	return nil
}

// spanOf returns the number of bytes that count elements occupy at the front
// of r. scan forces the element-by-element path even for fixed-size types.
func spanOf[T any, A any, PT Decoder[T, A]](r Reader, count int, args A, scan bool) (int, error) {
	if k, ok := FixedSize[T](); ok && !scan {
		if k > 0 && count > r.Len()/k {
			want := math.MaxInt
			if count <= math.MaxInt/k {
				want = count * k
			}
			return 0, &BoundsError{Op: "array", Want: want, Have: r.Len()}
		}
		return k * count, nil
	}

	c := r
	total := 0
	for i := 0; i < count; i++ {
		var v T
		if err := ReadInto[T, A, PT](&c, &v, args); err != nil {
			return 0, fmt.Errorf("element %d: %w", i, err)
		}
		n, err := PT(&v).Size()
		if err != nil {
			return 0, fmt.Errorf("sizing element %d: %w", i, err)
		}
		total += n
	}
	if consumed := c.consumedSince(r); consumed != total {
		invariantf("%T elements consumed %d bytes but report %d", *new(T), consumed, total)
	}
	return total, nil
}

// Len returns the number of elements
func (a RoArray[T, A, PT]) Len() int {
	return a.count
}

// IsEmpty reports whether the array has no elements
func (a RoArray[T, A, PT]) IsEmpty() bool {
	return a.count == 0
}

// ElemArgs returns the arguments every element is decoded with
func (a RoArray[T, A, PT]) ElemArgs() A {
	return a.args
}

// Raw returns a Reader over the encoded elements
func (a RoArray[T, A, PT]) Raw() Reader {
	return a.data
}

// All yields every element in order, decoding each from a copy of the
// cursor. The sequence can be ranged over any number of times.
func (a RoArray[T, A, PT]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		r := a.data
		for i := 0; i < a.count; i++ {
			v, err := Read[T, A, PT](&r, a.args)
			if err != nil {
				yield(v, fmt.Errorf("element %d: %w", i, err))
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Collect decodes every element into a new slice
func (a RoArray[T, A, PT]) Collect() ([]T, error) {
	out := make([]T, 0, a.count)
	for v, err := range a.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Get decodes the element at index i. It is only valid for fixed-size
// element types and panics otherwise.
func (a RoArray[T, A, PT]) Get(i int) (T, error) {
	k, ok := FixedSize[T]()
	if !ok {
		invariantf("Get on variable-size element type %T", *new(T))
	}
	if i < 0 || i >= a.count {
		invariantf("index %d out of range [0, %d)", i, a.count)
	}
	r, err := a.data.Offset(i * k)
	if err != nil {
		var zero T
		return zero, err
	}
	return Read[T, A, PT](&r, a.args)
}

// splitAt returns the first at elements and the rest as two arrays over the
// same bytes.
func (a RoArray[T, A, PT]) splitAt(at int) (RoArray[T, A, PT], RoArray[T, A, PT], error) {
	if at < 0 || at > a.count {
		invariantf("split at %d out of range [0, %d]", at, a.count)
	}
	n, err := spanOf[T, A, PT](a.data, at, a.args, false)
	if err != nil {
		return a, RoArray[T, A, PT]{}, err
	}
	left, err := a.data.Truncated(n)
	if err != nil {
		return a, RoArray[T, A, PT]{}, err
	}
	right, err := a.data.Offset(n)
	if err != nil {
		return a, RoArray[T, A, PT]{}, err
	}
	return RoArray[T, A, PT]{data: left, count: at, args: a.args},
		RoArray[T, A, PT]{data: right, count: a.count - at, args: a.args},
		nil
}

// splitAround decodes the element at i and returns the runs before and after
// it.
func (a RoArray[T, A, PT]) splitAround(i int) (before RoArray[T, A, PT], elem T, after RoArray[T, A, PT], err error) {
	if i < 0 || i >= a.count {
		invariantf("index %d out of range [0, %d)", i, a.count)
	}
	before, rest, err := a.splitAt(i)
	if err != nil {
		return before, elem, after, err
	}
	r := rest.data
	if elem, err = Read[T, A, PT](&r, a.args); err != nil {
		return before, elem, after, fmt.Errorf("element %d: %w", i, err)
	}
	after = RoArray[T, A, PT]{data: r, count: rest.count - 1, args: a.args}
	return before, elem, after, nil
}

// SplitOff truncates a to its first at elements and returns the remaining
// elements as a new array. Variable-size element types rescan the first at
// elements.
func (a *RoArray[T, A, PT]) SplitOff(at int) (RoArray[T, A, PT], error) {
	left, right, err := a.splitAt(at)
	if err != nil {
		return RoArray[T, A, PT]{}, err
	}
	*a = left
	return right, nil
}

func (a RoArray[T, A, PT]) Size() (int, error) {
	return a.data.Len(), nil
}

// WriteTo copies the original encoded bytes to w
func (a RoArray[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	return writeBytes(w, a.data.Bytes())
}
