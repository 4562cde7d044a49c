package sandbox

import (
	"github.com/mtoivan/samplab/internal/models"
	"time"
)

// maxHistoryEntries caps the undo stack; the oldest snapshot is dropped once
// the cap is reached.
const maxHistoryEntries = 50

// snapshot is one deep copy of the undoable session state.
type snapshot struct {
	points       []models.SamplingPoint
	labelCounter int
	takenAt      time.Time
}

// history is a bounded snapshot stack with a cursor. entries[cursor] is the
// current state; entries beyond it form the redo branch.
type history struct {
	entries []snapshot
	cursor  int
}

func newHistory(base snapshot) history {
	return history{entries: []snapshot{base}, cursor: 0}
}

// push records a new snapshot. Any redo branch is pruned, and the oldest
// entry is dropped once the cap is reached.
func (h *history) push(s snapshot) {
	h.entries = append(h.entries[:h.cursor+1], s)
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries) - 1
}

// undo steps the cursor back and returns the snapshot to restore. At the
// oldest entry it reports false and changes nothing.
func (h *history) undo() (snapshot, bool) {
	if h.cursor == 0 {
		return snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// redo steps the cursor forward and returns the snapshot to restore. At the
// newest entry it reports false and changes nothing.
func (h *history) redo() (snapshot, bool) {
	if h.cursor >= len(h.entries)-1 {
		return snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *history) canUndo() bool { return h.cursor > 0 }
func (h *history) canRedo() bool { return h.cursor < len(h.entries)-1 }
func (h *history) size() int     { return len(h.entries) }

// clonePoints deep-copies a point slice. SamplingPoint has value fields only,
// so a slice copy suffices.
func clonePoints(points []models.SamplingPoint) []models.SamplingPoint {
	if points == nil {
		return nil
	}
	out := make([]models.SamplingPoint, len(points))
	copy(out, points)
	return out
}
