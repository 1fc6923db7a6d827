package binrw

import "io"

// LCow holds either an owned value or a pointer to a value living elsewhere,
// typically inside a container. Both forms are read and written the same way.
type LCow[T any] struct {
	owned    T
	borrowed *T
}

// Owned wraps a value decoded on the fly
func Owned[T any](v T) LCow[T] {
	return LCow[T]{owned: v}
}

// Borrowed wraps a pointer to an existing value
func Borrowed[T any](p *T) LCow[T] {
	return LCow[T]{borrowed: p}
}

// IsBorrowed reports whether the value lives elsewhere
func (c LCow[T]) IsBorrowed() bool {
	return c.borrowed != nil
}

// Get returns a pointer to the value. For a borrowed value, writes through the
// pointer change the original.
func (c *LCow[T]) Get() *T {
	if c.borrowed != nil {
		return c.borrowed
	}
	return &c.owned
}

// Value returns a copy of the value
func (c LCow[T]) Value() T {
	if c.borrowed != nil {
		return *c.borrowed
	}
	return c.owned
}

// IntoOwned returns an owned copy, detached from whatever it borrowed
func (c LCow[T]) IntoOwned() LCow[T] {
	return Owned(c.Value())
}

// ImmCow is a read-only owned-or-borrowed value that encodes as the value
// itself.
type ImmCow[T any, PT interface {
	*T
	Writable
}] struct {
	owned    T
	borrowed *T
}

// OwnedImm wraps a value
func OwnedImm[T any, PT interface {
	*T
	Writable
}](v T) ImmCow[T, PT] {
	return ImmCow[T, PT]{owned: v}
}

// BorrowedImm wraps a pointer to an existing value
func BorrowedImm[T any, PT interface {
	*T
	Writable
}](p *T) ImmCow[T, PT] {
	return ImmCow[T, PT]{borrowed: p}
}

func (c *ImmCow[T, PT]) ptr() PT {
	if c.borrowed != nil {
		return PT(c.borrowed)
	}
	return PT(&c.owned)
}

// IsBorrowed reports whether the value lives elsewhere
func (c *ImmCow[T, PT]) IsBorrowed() bool {
	return c.borrowed != nil
}

// Value returns a copy of the value
func (c *ImmCow[T, PT]) Value() T {
	return *c.ptr()
}

func (c *ImmCow[T, PT]) Size() (int, error) {
	return c.ptr().Size()
}

func (c *ImmCow[T, PT]) WriteTo(w io.Writer) (int64, error) {
	return c.ptr().WriteTo(w)
}
