package state

import (
	"log/slog"
	"sync"
)

// Store is the durable home of committed history. Save rewrites the full
// snapshot, Load returns nil for an absent store (meaning empty history),
// Reset removes whatever was saved.
type Store interface {
	Load() ([]Stroke, error)
	Save(strokes []Stroke) error
	Reset() error
}

// History is the authoritative timeline of committed strokes plus the redo
// buffer. The commit order is exactly the order Push calls complete here,
// whatever order clients started drawing in. Mutating operations persist to
// the store before returning, so a broadcast made after they return never
// advertises state the store does not hold; a failed write is logged and
// served from memory until the next successful one.
type History struct {
	mu        sync.Mutex
	committed []Stroke
	redo      []Stroke
	store     Store
	log       *slog.Logger
}

// NewHistory loads any previously saved snapshot from the store. An absent
// store is an empty canvas, not an error.
func NewHistory(store Store, log *slog.Logger) (*History, error) {
	if log == nil {
		log = slog.Default()
	}
	strokes, err := store.Load()
	if err != nil {
		return nil, err
	}
	if strokes != nil {
		log.Info("loaded canvas history", "strokes", len(strokes))
	}
	return &History{committed: strokes, store: store, log: log}, nil
}

// Push commits a finalized stroke and discards the redo buffer; committing
// on a diverged timeline makes the old redo entries unreachable.
func (h *History) Push(s Stroke) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.committed = append(h.committed, s)
	h.redo = nil
	h.persist()
}

// Undo moves the latest committed stroke onto the redo buffer. Undo on an
// empty history is a silent no-op. Reports whether anything changed.
func (h *History) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.committed) == 0 {
		return false
	}
	last := h.committed[len(h.committed)-1]
	h.committed = h.committed[:len(h.committed)-1]
	h.redo = append(h.redo, last)
	h.persist()
	return true
}

// Redo moves the latest undone stroke back onto committed history. Redo with
// an empty buffer is a silent no-op. Reports whether anything changed.
func (h *History) Redo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redo) == 0 {
		return false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.committed = append(h.committed, last)
	h.persist()
	return true
}

// Clear empties both sequences and resets the durable store. There is no
// redo after a clear.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.committed = nil
	h.redo = nil
	if err := h.store.Reset(); err != nil {
		h.log.Error("failed to reset canvas store", "err", err)
	}
}

// Snapshot returns a copy of committed history that callers may hold or
// mutate freely; the live sequence is never handed out.
func (h *History) Snapshot() []Stroke {
	h.mu.Lock()
	defer h.mu.Unlock()
	return CloneStrokes(h.committed)
}

// RedoDepth reports how many strokes the redo buffer holds.
func (h *History) RedoDepth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo)
}

func (h *History) persist() {
	if err := h.store.Save(h.committed); err != nil {
		h.log.Error("failed to save canvas history", "strokes", len(h.committed), "err", err)
	}
}
