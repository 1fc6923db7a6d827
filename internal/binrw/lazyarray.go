package binrw

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
)

// LazyArray is an array that stays borrowed from its source bytes until an
// element is needed mutably, at which point every element is decoded into an
// owned slice. The transition happens at most once.
type LazyArray[T any, A any, PT Decoder[T, A]] struct {
	borrowed RoArray[T, A, PT]
	owned    []T
	isOwned  bool
}

// OwnedLazyArray returns a LazyArray that owns items from the start
func OwnedLazyArray[T any, A any, PT Decoder[T, A]](items []T) LazyArray[T, A, PT] {
	return LazyArray[T, A, PT]{owned: items, isOwned: true}
}

func (a *LazyArray[T, A, PT]) Decode(r *Reader, args ArrayArgs[A]) error {
	var ro RoArray[T, A, PT]
	if err := ro.Decode(r, args); err != nil {
		return err
	}
	*a = LazyArray[T, A, PT]{borrowed: ro}
	return nil
}

// IsOwned reports whether the array has been materialized
func (a *LazyArray[T, A, PT]) IsOwned() bool {
	return a.isOwned
}

// Len returns the number of elements
func (a *LazyArray[T, A, PT]) Len() int {
	if a.isOwned {
		return len(a.owned)
	}
	return a.borrowed.Len()
}

// materialize performs the borrowed to owned transition. It is the only place
// that decodes the whole array.
func (a *LazyArray[T, A, PT]) materialize() error {
	if a.isOwned {
		return nil
	}
	items, err := a.borrowed.Collect()
	if err != nil {
		return fmt.Errorf("materializing array: %w", err)
	}
	slog.Debug("Array materialized", "count", len(items))
	a.owned = items
	a.isOwned = true
	a.borrowed = RoArray[T, A, PT]{}
	return nil
}

// AsMutVec materializes the array if needed and returns its backing slice for
// in-place mutation, appends and removals.
func (a *LazyArray[T, A, PT]) AsMutVec() (*[]T, error) {
	if err := a.materialize(); err != nil {
		return nil, err
	}
	return &a.owned, nil
}

// At materializes the array if needed and returns a pointer to element i
func (a *LazyArray[T, A, PT]) At(i int) (*T, error) {
	if err := a.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(a.owned) {
		invariantf("index %d out of range [0, %d)", i, len(a.owned))
	}
	return &a.owned[i], nil
}

// AllMut materializes the array if needed and yields a pointer to every
// element.
func (a *LazyArray[T, A, PT]) AllMut() (iter.Seq2[int, *T], error) {
	if err := a.materialize(); err != nil {
		return nil, err
	}
	return func(yield func(int, *T) bool) {
		for i := range a.owned {
			if !yield(i, &a.owned[i]) {
				return
			}
		}
	}, nil
}

// Get returns a copy of element i without materializing. While borrowed it
// follows the RoArray.Get rules.
func (a *LazyArray[T, A, PT]) Get(i int) (T, error) {
	if a.isOwned {
		if i < 0 || i >= len(a.owned) {
			invariantf("index %d out of range [0, %d)", i, len(a.owned))
		}
		return a.owned[i], nil
	}
	return a.borrowed.Get(i)
}

// All yields every element in order without materializing
func (a *LazyArray[T, A, PT]) All() iter.Seq2[T, error] {
	if !a.isOwned {
		return a.borrowed.All()
	}
	return func(yield func(T, error) bool) {
		for _, v := range a.owned {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Collect returns a copy of every element
func (a *LazyArray[T, A, PT]) Collect() ([]T, error) {
	if a.isOwned {
		return append([]T(nil), a.owned...), nil
	}
	return a.borrowed.Collect()
}

// SplitOff truncates a to its first at elements and returns the rest.
func (a *LazyArray[T, A, PT]) SplitOff(at int) (LazyArray[T, A, PT], error) {
	if !a.isOwned {
		right, err := a.borrowed.SplitOff(at)
		if err != nil {
			return LazyArray[T, A, PT]{}, err
		}
		return LazyArray[T, A, PT]{borrowed: right}, nil
	}
	if at < 0 || at > len(a.owned) {
		invariantf("split at %d out of range [0, %d]", at, len(a.owned))
	}
	right := append([]T(nil), a.owned[at:]...)
	a.owned = a.owned[:at:at]
	return OwnedLazyArray[T, A, PT](right), nil
}

func (a *LazyArray[T, A, PT]) Size() (int, error) {
	if !a.isOwned {
		return a.borrowed.Size()
	}
	return ownedSize[T, A, PT](a.owned)
}

// WriteTo copies the source bytes while borrowed and encodes every element
// once owned.
func (a *LazyArray[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	if !a.isOwned {
		return a.borrowed.WriteTo(w)
	}
	return writeOwned[T, A, PT](w, a.owned)
}

func ownedSize[T any, A any, PT Decoder[T, A]](items []T) (int, error) {
	if k, ok := FixedSize[T](); ok {
		return k * len(items), nil
	}
	total := 0
	for i := range items {
		n, err := PT(&items[i]).Size()
		if err != nil {
			return 0, fmt.Errorf("sizing element %d: %w", i, err)
		}
		total += n
	}
	return total, nil
}

func writeOwned[T any, A any, PT Decoder[T, A]](w io.Writer, items []T) (int64, error) {
	var total int64
	for i := range items {
		n, err := PT(&items[i]).WriteTo(w)
		total += n
		if err != nil {
			return total, fmt.Errorf("writing element %d: %w", i, err)
		}
	}
	return total, nil
}
