package binrw

import "fmt"

// ForEachArray is a LazyArray whose count is not stored anywhere: elements
// are decoded one after another until the Reader it is given runs out. The
// enclosing record is expected to hand it a Reader truncated to the region.
type ForEachArray[T any, A any, PT Decoder[T, A]] struct {
	LazyArray[T, A, PT]
}

func (a *ForEachArray[T, A, PT]) Decode(r *Reader, args A) error {
	c := *r
	count := 0
	for !c.IsEmpty() {
		before := c.Len()
		var v T
		if err := ReadInto[T, A, PT](&c, &v, args); err != nil {
			return fmt.Errorf("element %d: %w", count, err)
		}
		if c.Len() == before {
			invariantf("%T decoded from zero bytes in a ForEachArray", v)
		}
		count++
	}
	b, err := r.Take(r.Len())
	if err != nil {
		return err
	}
	a.LazyArray = LazyArray[T, A, PT]{
		borrowed: RoArray[T, A, PT]{data: NewReader(b), count: count, args: args},
	}
	return nil
}
