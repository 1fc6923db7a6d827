package binrw

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
)

// ArgsSource supplies the decode arguments of each element of an
// IteratorArray. All must be restartable and yield exactly Len values.
type ArgsSource[A any] interface {
	Len() int
	All() iter.Seq[A]
}

// ArgsSlice is an ArgsSource backed by a slice.
type ArgsSlice[A any] []A

func (s ArgsSlice[A]) Len() int {
	return len(s)
}

func (s ArgsSlice[A]) All() iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, a := range s {
			if !yield(a) {
				return
			}
		}
	}
}

// IteratorArray is like LazyArray, except that element i is decoded with the
// i-th value of an ArgsSource instead of one shared argument. It is used when
// a side table stored elsewhere governs the shape of each element.
type IteratorArray[T any, A any, PT Decoder[T, A]] struct {
	data    Reader
	args    ArgsSource[A]
	owned   []T
	isOwned bool
}

// OwnedIteratorArray returns an IteratorArray that owns items from the start
func OwnedIteratorArray[T any, A any, PT Decoder[T, A]](items []T) IteratorArray[T, A, PT] {
	return IteratorArray[T, A, PT]{owned: items, isOwned: true}
}

func (a *IteratorArray[T, A, PT]) Decode(r *Reader, args ArgsSource[A]) error {
	if args == nil {
		*a = IteratorArray[T, A, PT]{}
		return nil
	}
	var n int
	if k, ok := FixedSize[T](); ok {
		count := args.Len()
		if k > 0 && count > r.Len()/k {
			return &BoundsError{Op: "array", Want: count * k, Have: r.Len()}
		}
		n = k * count
	} else {
		c := *r
		i := 0
		for elemArgs := range args.All() {
			var v T
			if err := ReadInto[T, A, PT](&c, &v, elemArgs); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			i++
		}
		if i != args.Len() {
			invariantf("args source yielded %d values but reports %d", i, args.Len())
		}
		n = c.consumedSince(*r)
	}
	b, err := r.Take(n)
	if err != nil {
		return err
	}
	*a = IteratorArray[T, A, PT]{data: NewReader(b), args: args}
	return nil
}

// IsOwned reports whether the array has been materialized
func (a *IteratorArray[T, A, PT]) IsOwned() bool {
	return a.isOwned
}

// Len returns the number of elements
func (a *IteratorArray[T, A, PT]) Len() int {
	if a.isOwned {
		return len(a.owned)
	}
	if a.args == nil {
		return 0
	}
	return a.args.Len()
}

// All yields every element in order without materializing
func (a *IteratorArray[T, A, PT]) All() iter.Seq2[T, error] {
	if a.isOwned {
		return func(yield func(T, error) bool) {
			for _, v := range a.owned {
				if !yield(v, nil) {
					return
				}
			}
		}
	}
	return func(yield func(T, error) bool) {
		if a.args == nil {
			return
		}
		r := a.data
		i := 0
		for elemArgs := range a.args.All() {
			v, err := Read[T, A, PT](&r, elemArgs)
			if err != nil {
				yield(v, fmt.Errorf("element %d: %w", i, err))
				return
			}
			if !yield(v, nil) {
				return
			}
			i++
		}
	}
}

// Collect returns a copy of every element
func (a *IteratorArray[T, A, PT]) Collect() ([]T, error) {
	out := make([]T, 0, a.Len())
	for v, err := range a.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// AsMutVec materializes the array on first use and returns its backing slice
func (a *IteratorArray[T, A, PT]) AsMutVec() (*[]T, error) {
	if !a.isOwned {
		items, err := a.Collect()
		if err != nil {
			return nil, fmt.Errorf("materializing array: %w", err)
		}
		slog.Debug("Iterator array materialized", "count", len(items))
		*a = IteratorArray[T, A, PT]{owned: items, isOwned: true}
	}
	return &a.owned, nil
}

func (a *IteratorArray[T, A, PT]) Size() (int, error) {
	if !a.isOwned {
		return a.data.Len(), nil
	}
	return ownedSize[T, A, PT](a.owned)
}

func (a *IteratorArray[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	if !a.isOwned {
		return writeBytes(w, a.data.Bytes())
	}
	return writeOwned[T, A, PT](w, a.owned)
}
