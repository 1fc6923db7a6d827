package binrw

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
)

// diffEntry is either a still-encoded run of source elements or one
// individually materialized element.
type diffEntry[T any, A any, PT Decoder[T, A]] struct {
	run    RoArray[T, A, PT]
	inst   T
	isInst bool
}

func (e *diffEntry[T, A, PT]) len() int {
	if e.isInst {
		return 1
	}
	return e.run.Len()
}

func runEntry[T any, A any, PT Decoder[T, A]](run RoArray[T, A, PT]) diffEntry[T, A, PT] {
	return diffEntry[T, A, PT]{run: run}
}

func instEntry[T any, A any, PT Decoder[T, A]](v T) diffEntry[T, A, PT] {
	return diffEntry[T, A, PT]{inst: v, isInst: true}
}

// DiffList is a sequence stored as alternating runs of untouched source
// elements and individually materialized elements. Touching or inserting
// around one position splits only the run containing it, so the cost of an
// edit depends on the number of entries and never on the total length.
// Untouched runs are written back as their original bytes.
type DiffList[T any, A any, PT Decoder[T, A]] struct {
	entries []diffEntry[T, A, PT]
}

// NewDiffList returns a list holding items as materialized elements
func NewDiffList[T any, A any, PT Decoder[T, A]](items ...T) DiffList[T, A, PT] {
	var l DiffList[T, A, PT]
	for _, v := range items {
		l.Push(v)
	}
	return l
}

// DiffListFromRun returns a list backed by a single source run
func DiffListFromRun[T any, A any, PT Decoder[T, A]](run RoArray[T, A, PT]) DiffList[T, A, PT] {
	var l DiffList[T, A, PT]
	if !run.IsEmpty() {
		l.entries = []diffEntry[T, A, PT]{runEntry(run)}
	}
	return l
}

func (l *DiffList[T, A, PT]) Decode(r *Reader, args ArrayArgs[A]) error {
	var run RoArray[T, A, PT]
	if err := run.Decode(r, args); err != nil {
		return err
	}
	*l = DiffListFromRun(run)
	return nil
}

// Len returns the number of elements
func (l *DiffList[T, A, PT]) Len() int {
	n := 0
	for i := range l.entries {
		n += l.entries[i].len()
	}
	return n
}

// Entries returns the number of backing entries
func (l *DiffList[T, A, PT]) Entries() int {
	return len(l.entries)
}

// Push appends v as a materialized element
func (l *DiffList[T, A, PT]) Push(v T) {
	l.entries = append(l.entries, instEntry[T, A, PT](v))
}

// Clear removes every element
func (l *DiffList[T, A, PT]) Clear() {
	l.entries = nil
}

// All yields every element in order. Elements still inside a source run are
// decoded on the fly and yielded as owned values; materialized elements are
// yielded as borrowed pointers into the list.
func (l *DiffList[T, A, PT]) All() iter.Seq2[LCow[T], error] {
	return func(yield func(LCow[T], error) bool) {
		for i := range l.entries {
			e := &l.entries[i]
			if e.isInst {
				if !yield(Borrowed(&e.inst), nil) {
					return
				}
				continue
			}
			for v, err := range e.run.All() {
				if !yield(Owned(v), err) || err != nil {
					return
				}
			}
		}
	}
}

// Collect returns a copy of every element
func (l *DiffList[T, A, PT]) Collect() ([]T, error) {
	out := make([]T, 0, l.Len())
	for v, err := range l.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, v.Value())
	}
	return out, nil
}

func (l *DiffList[T, A, PT]) Size() (int, error) {
	total := 0
	for i := range l.entries {
		e := &l.entries[i]
		var n int
		var err error
		if e.isInst {
			n, err = PT(&e.inst).Size()
		} else {
			n, err = e.run.Size()
		}
		if err != nil {
			return 0, fmt.Errorf("sizing entry %d: %w", i, err)
		}
		total += n
	}
	return total, nil
}

// WriteTo writes every entry in order: runs as their source bytes and
// materialized elements through their own encoding.
func (l *DiffList[T, A, PT]) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range l.entries {
		e := &l.entries[i]
		var n int64
		var err error
		if e.isInst {
			n, err = PT(&e.inst).WriteTo(w)
		} else {
			n, err = e.run.WriteTo(w)
		}
		total += n
		if err != nil {
			return total, fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return total, nil
}

// Cursor returns a cursor positioned at the first element. A cursor holds the
// list exclusively; no other cursor or mutation may be used on the list
// while it is in use.
func (l *DiffList[T, A, PT]) Cursor() *DiffListCursor[T, A, PT] {
	return &DiffListCursor[T, A, PT]{list: l}
}

// CursorAt returns a cursor positioned at element i. i may equal Len, which
// places the cursor past the end.
func (l *DiffList[T, A, PT]) CursorAt(i int) *DiffListCursor[T, A, PT] {
	if i < 0 {
		invariantf("cursor index %d is negative", i)
	}
	c := l.Cursor()
	for idx := range l.entries {
		n := l.entries[idx].len()
		if i < n {
			c.idx, c.sub = idx, i
			return c
		}
		i -= n
	}
	if i > 0 {
		invariantf("cursor index beyond end of list")
	}
	c.idx = len(l.entries)
	return c
}

// DiffListCursor walks and edits a DiffList. It tracks the entry it is on and,
// inside a run, the offset of the current element within that run.
type DiffListCursor[T any, A any, PT Decoder[T, A]] struct {
	list *DiffList[T, A, PT]
	idx  int
	sub  int
}

// Valid reports whether the cursor is on an element rather than past the end
func (c *DiffListCursor[T, A, PT]) Valid() bool {
	return c.idx < len(c.list.entries)
}

// Next moves to the following element
func (c *DiffListCursor[T, A, PT]) Next() {
	if !c.Valid() {
		return
	}
	if c.sub+1 < c.list.entries[c.idx].len() {
		c.sub++
		return
	}
	c.idx++
	c.sub = 0
}

// Index returns the logical position of the cursor
func (c *DiffListCursor[T, A, PT]) Index() int {
	n := 0
	for i := 0; i < c.idx; i++ {
		n += c.list.entries[i].len()
	}
	return n + c.sub
}

// Peek returns the current element without materializing it
func (c *DiffListCursor[T, A, PT]) Peek() (LCow[T], error) {
	if !c.Valid() {
		invariantf("peek past end of list")
	}
	e := &c.list.entries[c.idx]
	if e.isInst {
		return Borrowed(&e.inst), nil
	}
	if _, ok := FixedSize[T](); ok {
		v, err := e.run.Get(c.sub)
		return Owned(v), err
	}
	_, v, _, err := e.run.splitAround(c.sub)
	return Owned(v), err
}

// Value materializes the current element and returns a pointer to it. The run
// holding it is split into at most three entries. The pointer stays valid
// until the next insertion, Push or Clear on the list.
func (c *DiffListCursor[T, A, PT]) Value() (*T, error) {
	if !c.Valid() {
		invariantf("value past end of list")
	}
	e := &c.list.entries[c.idx]
	if e.isInst {
		return &e.inst, nil
	}

	before, elem, after, err := e.run.splitAround(c.sub)
	if err != nil {
		return nil, err
	}
	repl := make([]diffEntry[T, A, PT], 0, 3)
	at := c.idx
	if !before.IsEmpty() {
		repl = append(repl, runEntry(before))
		at++
	}
	repl = append(repl, instEntry[T, A, PT](elem))
	if !after.IsEmpty() {
		repl = append(repl, runEntry(after))
	}
	c.list.entries = slices.Replace(c.list.entries, c.idx, c.idx+1, repl...)
	slog.Debug("Diff list element materialized", "entry", at, "entries", len(c.list.entries))

	c.idx, c.sub = at, 0
	return &c.list.entries[c.idx].inst, nil
}

// splitHere splits the run under the cursor so that the current element
// starts a new entry. The cursor is left on that element.
func (c *DiffListCursor[T, A, PT]) splitHere() error {
	if !c.Valid() || c.sub == 0 {
		return nil
	}
	e := &c.list.entries[c.idx]
	left, right, err := e.run.splitAt(c.sub)
	if err != nil {
		return err
	}
	c.list.entries = slices.Replace(c.list.entries, c.idx, c.idx+1, runEntry(left), runEntry(right))
	c.idx, c.sub = c.idx+1, 0
	return nil
}

// InsertBefore inserts items in front of the current element, or at the end
// when the cursor is past the end. The cursor stays on the same element.
func (c *DiffListCursor[T, A, PT]) InsertBefore(items ...T) error {
	if len(items) == 0 {
		return nil
	}
	if err := c.splitHere(); err != nil {
		return err
	}
	c.list.entries = slices.Insert(c.list.entries, c.idx, instEntries[T, A, PT](items)...)
	c.idx += len(items)
	return nil
}

// InsertAfter inserts items behind the current element, or at the end when
// the cursor is past the end. The cursor stays on the same element.
func (c *DiffListCursor[T, A, PT]) InsertAfter(items ...T) error {
	if len(items) == 0 {
		return nil
	}
	if !c.Valid() {
		c.list.entries = append(c.list.entries, instEntries[T, A, PT](items)...)
		c.idx = len(c.list.entries)
		return nil
	}
	e := &c.list.entries[c.idx]
	at := c.idx + 1
	if !e.isInst && c.sub+1 < e.run.Len() {
		left, right, err := e.run.splitAt(c.sub + 1)
		if err != nil {
			return err
		}
		c.list.entries = slices.Replace(c.list.entries, c.idx, c.idx+1, runEntry(left), runEntry(right))
	}
	c.list.entries = slices.Insert(c.list.entries, at, instEntries[T, A, PT](items)...)
	return nil
}

func instEntries[T any, A any, PT Decoder[T, A]](items []T) []diffEntry[T, A, PT] {
	out := make([]diffEntry[T, A, PT], len(items))
	for i, v := range items {
		out[i] = instEntry[T, A, PT](v)
	}
	return out
}
