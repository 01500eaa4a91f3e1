package application

import "sync"

// DefaultHistoryLimit caps how many generated documents OutputHistory keeps.
const DefaultHistoryLimit = 50

// OutputHistory is a linear undo/redo list of generated documents. Push drops
// any entries after the cursor, so a new generation abandons the redo tail.
type OutputHistory struct {
	mu      sync.Mutex
	entries []string
	index   int
	limit   int
}

// NewOutputHistory returns an empty history keeping at most limit entries.
// A non-positive limit selects DefaultHistoryLimit.
func NewOutputHistory(limit int) *OutputHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &OutputHistory{index: -1, limit: limit}
}

// Push appends doc after the cursor and moves the cursor onto it.
func (h *OutputHistory) Push(doc string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], doc)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
	}
	h.index = len(h.entries) - 1
}

// Current returns the document under the cursor.
func (h *OutputHistory) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index < 0 {
		return "", false
	}
	return h.entries[h.index], true
}

// Undo moves the cursor back one entry and returns the document there. At
// the oldest entry it reports false and leaves the cursor alone.
func (h *OutputHistory) Undo() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index <= 0 {
		return "", false
	}
	h.index--
	return h.entries[h.index], true
}

// Redo moves the cursor forward one entry.
func (h *OutputHistory) Redo() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index < 0 || h.index >= len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[h.index], true
}

// CanUndo reports whether Undo would move the cursor.
func (h *OutputHistory) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanRedo reports whether Redo would move the cursor.
func (h *OutputHistory) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index >= 0 && h.index < len(h.entries)-1
}

// Len returns the number of kept entries.
func (h *OutputHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
