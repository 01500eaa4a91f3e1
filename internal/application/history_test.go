package application

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputHistory_Empty(t *testing.T) {
	h := NewOutputHistory(0)
	_, ok := h.Current()
	require.False(t, ok)
	_, ok = h.Undo()
	require.False(t, ok)
	_, ok = h.Redo()
	require.False(t, ok)
	require.False(t, h.CanUndo())
	require.False(t, h.CanRedo())
}

func TestOutputHistory_UndoRedo(t *testing.T) {
	h := NewOutputHistory(10)
	h.Push("a")
	h.Push("b")
	h.Push("c")

	doc, ok := h.Undo()
	require.True(t, ok)
	require.Equal(t, "b", doc)
	doc, ok = h.Undo()
	require.True(t, ok)
	require.Equal(t, "a", doc)
	_, ok = h.Undo()
	require.False(t, ok)

	cur, _ := h.Current()
	require.Equal(t, "a", cur)

	doc, ok = h.Redo()
	require.True(t, ok)
	require.Equal(t, "b", doc)
	require.True(t, h.CanRedo())
}

func TestOutputHistory_PushTruncatesRedoTail(t *testing.T) {
	h := NewOutputHistory(10)
	h.Push("a")
	h.Push("b")
	h.Push("c")
	h.Undo()
	h.Undo()

	h.Push("d")
	require.Equal(t, 2, h.Len())
	require.False(t, h.CanRedo())
	doc, ok := h.Undo()
	require.True(t, ok)
	require.Equal(t, "a", doc)
}

func TestOutputHistory_Limit(t *testing.T) {
	h := NewOutputHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(strconv.Itoa(i))
	}
	require.Equal(t, 3, h.Len())
	cur, _ := h.Current()
	require.Equal(t, "4", cur)
	h.Undo()
	doc, ok := h.Undo()
	require.True(t, ok)
	require.Equal(t, "2", doc)
	require.False(t, h.CanUndo())
}
