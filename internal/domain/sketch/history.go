package sketch

// History is a linear sequence of snapshots addressed by a cursor.
// Recording while the cursor is behind the tip discards the forward entries.
type History struct {
	entries []Snapshot
	cursor  int
}

// NewHistory returns an empty history.  Its cursor is -1 until the first
// Record.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Record discards every entry after the cursor, appends s and moves the
// cursor onto it.
func (h *History) Record(s Snapshot) {
	h.entries = append(h.entries[:h.cursor+1], s)
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back and returns the snapshot it lands on.  The
// boolean is false when there is nothing to undo.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo steps the cursor forward and returns the snapshot it lands on.  The
// boolean is false when there is nothing to redo.
func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of recorded snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the current index, or -1 for an empty history.
func (h *History) Cursor() int { return h.cursor }

// Current returns the snapshot under the cursor.
func (h *History) Current() (Snapshot, bool) {
	if h.cursor < 0 {
		return Snapshot{}, false
	}
	return h.entries[h.cursor], true
}

//Personal.AI order the ending
