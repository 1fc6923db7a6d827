package binrw

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var diffItems = []string{"zero", "one", "two", "three", "four"}

func readDiff(t *testing.T, items ...string) (varDiff, []byte) {
	t.Helper()
	src := encodeVar(t, items...)
	r := NewReader(src)
	l, err := Read[varDiff](&r, ArrayArgs[NoArgs]{Count: len(items)})
	require.NoError(t, err)
	require.True(t, r.IsEmpty())
	return l, src
}

func diffStrings(t *testing.T, l *varDiff) []string {
	t.Helper()
	items, err := l.Collect()
	require.NoError(t, err)
	return varStrings(items)
}

func recs(items ...string) []varRec {
	out := make([]varRec, len(items))
	for i, s := range items {
		out[i] = varRec{Data: []byte(s)}
	}
	return out
}

func TestDiffListRoundTrip(t *testing.T) {
	l, src := readDiff(t, diffItems...)
	assert.Equal(t, 1, l.Entries())
	assert.Equal(t, len(diffItems), l.Len())
	assert.Equal(t, diffItems, diffStrings(t, &l))
	assert.Equal(t, src, mustEncode(t, &l))
}

func TestDiffListEmpty(t *testing.T) {
	l, src := readDiff(t)
	assert.Empty(t, src)
	assert.Zero(t, l.Entries())
	c := l.Cursor()
	assert.False(t, c.Valid())
	require.NoError(t, c.InsertBefore(recs("a")...))
	assert.Equal(t, []string{"a"}, diffStrings(t, &l))
}

func TestDiffListInsertBefore(t *testing.T) {
	n := len(diffItems)
	for k := 0; k <= n; k++ {
		t.Run(fmt.Sprint(k), func(t *testing.T) {
			l, _ := readDiff(t, diffItems...)
			c := l.CursorAt(k)
			require.NoError(t, c.InsertBefore(recs("x", "y")...))

			want := append(append(append([]string{}, diffItems[:k]...), "x", "y"), diffItems[k:]...)
			assert.Equal(t, want, diffStrings(t, &l))
			assert.Equal(t, n+2, l.Len())
			assert.Equal(t, k+2, c.Index(), "cursor stays on the same element")
			if k < n {
				v, err := c.Peek()
				require.NoError(t, err)
				assert.Equal(t, diffItems[k], string(v.Value().Data))
			}
			assert.Equal(t, encodeVar(t, want...), mustEncode(t, &l))
		})
	}
}

func TestDiffListInsertAfter(t *testing.T) {
	n := len(diffItems)
	for k := 0; k < n; k++ {
		t.Run(fmt.Sprint(k), func(t *testing.T) {
			l, _ := readDiff(t, diffItems...)
			c := l.CursorAt(k)
			require.NoError(t, c.InsertAfter(recs("x", "y", "z")...))

			want := append(append(append([]string{}, diffItems[:k+1]...), "x", "y", "z"), diffItems[k+1:]...)
			assert.Equal(t, want, diffStrings(t, &l))
			assert.Equal(t, k, c.Index())
			v, err := c.Peek()
			require.NoError(t, err)
			assert.Equal(t, diffItems[k], string(v.Value().Data))
			assert.Equal(t, encodeVar(t, want...), mustEncode(t, &l))
		})
	}
}

func TestDiffListInsertAfterPastEnd(t *testing.T) {
	l, _ := readDiff(t, diffItems...)
	c := l.CursorAt(l.Len())
	require.NoError(t, c.InsertAfter(recs("end")...))
	assert.Equal(t, append(append([]string{}, diffItems...), "end"), diffStrings(t, &l))
	assert.False(t, c.Valid())
}

func TestDiffListValueSplitsRun(t *testing.T) {
	l, src := readDiff(t, diffItems...)

	c := l.CursorAt(2)
	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, "two", string(v.Data))
	assert.Equal(t, 3, l.Entries())
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, src, mustEncode(t, &l), "materializing alone must not change the bytes")

	again, err := c.Value()
	require.NoError(t, err)
	assert.Same(t, v, again)
	assert.Equal(t, 3, l.Entries())

	first, err := l.CursorAt(0).Value()
	require.NoError(t, err)
	assert.Equal(t, "zero", string(first.Data))
	assert.Equal(t, 4, l.Entries())

	last, err := l.CursorAt(4).Value()
	require.NoError(t, err)
	assert.Equal(t, "four", string(last.Data))
	assert.Equal(t, 5, l.Entries())
	assert.Equal(t, diffItems, diffStrings(t, &l))
}

func TestDiffListEditLocality(t *testing.T) {
	for i := range diffItems {
		l, src := readDiff(t, diffItems...)
		start := len(encodeVar(t, diffItems[:i]...))
		end := start + 1 + len(diffItems[i])

		v, err := l.CursorAt(i).Value()
		require.NoError(t, err)
		edited := bytes.ToUpper(v.Data)
		v.Data = edited

		out := mustEncode(t, &l)
		require.Len(t, out, len(src))
		assert.Equal(t, src[:start], out[:start])
		assert.Equal(t, src[end:], out[end:])
		assert.Equal(t, edited, out[start+1:end])

		v.Data = append(edited, '!')
		out = mustEncode(t, &l)
		assert.Equal(t, src[:start], out[:start])
		assert.Equal(t, src[end:], out[end+1:], "bytes after the edit shift by the size change")
	}
}

func TestDiffListCursorWalk(t *testing.T) {
	l, _ := readDiff(t, diffItems...)
	_, err := l.CursorAt(1).Value()
	require.NoError(t, err)
	require.NoError(t, l.CursorAt(3).InsertBefore(recs("new")...))

	var got []string
	var borrowed []bool
	for c := l.Cursor(); c.Valid(); c.Next() {
		v, err := c.Peek()
		require.NoError(t, err)
		got = append(got, string(v.Value().Data))
		borrowed = append(borrowed, v.IsBorrowed())
	}
	assert.Equal(t, []string{"zero", "one", "two", "new", "three", "four"}, got)
	assert.Equal(t, []bool{false, true, false, true, false, false}, borrowed)
}

func TestDiffListAllTagsProvenance(t *testing.T) {
	l, _ := readDiff(t, "a", "b")
	_, err := l.CursorAt(1).Value()
	require.NoError(t, err)

	var tags []bool
	for v, err := range l.All() {
		require.NoError(t, err)
		tags = append(tags, v.IsBorrowed())
	}
	assert.Equal(t, []bool{false, true}, tags)

	for v, err := range l.All() {
		require.NoError(t, err)
		if v.IsBorrowed() {
			v.Get().Data = []byte("B")
		}
	}
	assert.Equal(t, []string{"a", "B"}, diffStrings(t, &l))
}

func TestDiffListFixedSizePeekDoesNotMaterialize(t *testing.T) {
	r := NewReader([]byte{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3})
	l, err := Read[rec4Diff](&r, ArrayArgs[NoArgs]{Count: 3})
	require.NoError(t, err)

	rec4Decodes = 0
	v, err := l.CursorAt(2).Peek()
	require.NoError(t, err)
	assert.Equal(t, rec4{3, 3, 3, 3}, v.Value())
	assert.Equal(t, 1, rec4Decodes)
	assert.Equal(t, 1, l.Entries())
}

func TestDiffListValueLogsEntry(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := NewReader(encodeVar(t, "a", "b", "c"))
	l, err := Read[varDiff](&r, ArrayArgs[NoArgs]{Count: 3})
	require.NoError(t, err)
	_, err = l.CursorAt(1).Value()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"entry":1`)
	assert.Contains(t, buf.String(), `"entries":3`)
}

func TestDiffListPushClear(t *testing.T) {
	l, _ := readDiff(t, "a")
	l.Push(varRec{Data: []byte("b")})
	assert.Equal(t, []string{"a", "b"}, diffStrings(t, &l))
	size, err := l.Size()
	require.NoError(t, err)
	assert.Equal(t, 4, size)

	l.Clear()
	assert.Zero(t, l.Len())
	assert.Empty(t, mustEncode(t, &l))

	nl := NewDiffList[varRec, NoArgs](recs("p", "q")...)
	assert.Equal(t, []string{"p", "q"}, diffStrings(t, &nl))
}

func TestDiffListCursorAtOutOfRange(t *testing.T) {
	l, _ := readDiff(t, "a")
	assert.Panics(t, func() { l.CursorAt(2) })
	assert.Panics(t, func() { l.CursorAt(-1) })
	assert.Panics(t, func() { _, _ = l.CursorAt(1).Value() })
}
