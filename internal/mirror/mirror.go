// Package mirror reconstructs committed history on the client side from
// broker frames. It holds no pixels; a renderer subscribes through the
// callback fields and draws however it likes.
package mirror

import (
	"encoding/json"
	"fmt"
	"sync"

	"CollabCanvas/internal/hub"
	"CollabCanvas/internal/state"
)

// Mirror is the per-client copy of committed history. Full snapshots
// replace the local copy wholesale; snapshot validity depends on exact
// server-side ordering, so diffing or merging would diverge. Incremental
// commits take the append-only fast path.
type Mirror struct {
	mu      sync.Mutex
	strokes []state.Stroke

	// OnRedraw fires after a snapshot replace or a clear, with the new
	// full history. OnStroke fires for an incremental commit with just the
	// new stroke. OnCursor, OnUsers and OnUserLeft relay presence frames.
	// All are optional.
	OnRedraw   func([]state.Stroke)
	OnStroke   func(state.Stroke)
	OnCursor   func(userID string, x, y float64, color string)
	OnUsers    func([]string)
	OnUserLeft func(userID string)
}

func New() *Mirror {
	return &Mirror{}
}

// Apply dispatches one server frame. Unknown frame types are an error so a
// protocol drift shows up immediately in the client.
func (m *Mirror) Apply(data []byte) error {
	var env hub.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("bad frame: %w", err)
	}
	switch env.Type {
	case hub.TypeHistory, hub.TypeHistoryUpdate:
		var msg hub.HistoryMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("bad %s frame: %w", env.Type, err)
		}
		m.ApplySnapshot(msg.Strokes)
	case hub.TypeStrokeAppend:
		var msg hub.StrokeAppendMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("bad stroke-append frame: %w", err)
		}
		m.ApplyAppend(msg.Stroke)
	case hub.TypeClearCanvas:
		m.ApplyClear()
	case hub.TypeUsers:
		var msg hub.UsersMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("bad users frame: %w", err)
		}
		if m.OnUsers != nil {
			m.OnUsers(msg.Users)
		}
	case hub.TypeCursorUpdate:
		var msg hub.CursorMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("bad cursor-update frame: %w", err)
		}
		if m.OnCursor != nil {
			m.OnCursor(msg.UserID, msg.X, msg.Y, msg.Color)
		}
	case hub.TypeUserLeft:
		var msg hub.UserLeftMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("bad user-left frame: %w", err)
		}
		if m.OnUserLeft != nil {
			m.OnUserLeft(msg.UserID)
		}
	default:
		return fmt.Errorf("unknown frame type %q", env.Type)
	}
	return nil
}

// ApplySnapshot discards the local copy entirely and replaces it.
func (m *Mirror) ApplySnapshot(strokes []state.Stroke) {
	m.mu.Lock()
	m.strokes = state.CloneStrokes(strokes)
	snapshot := state.CloneStrokes(m.strokes)
	m.mu.Unlock()
	if m.OnRedraw != nil {
		m.OnRedraw(snapshot)
	}
}

// ApplyAppend appends one committed stroke without touching the rest.
func (m *Mirror) ApplyAppend(s state.Stroke) {
	m.mu.Lock()
	m.strokes = append(m.strokes, s.Clone())
	m.mu.Unlock()
	if m.OnStroke != nil {
		m.OnStroke(s)
	}
}

// ApplyClear resets to an empty canvas.
func (m *Mirror) ApplyClear() {
	m.mu.Lock()
	m.strokes = nil
	m.mu.Unlock()
	if m.OnRedraw != nil {
		m.OnRedraw(nil)
	}
}

// Strokes returns a copy of the local history.
func (m *Mirror) Strokes() []state.Stroke {
	m.mu.Lock()
	defer m.mu.Unlock()
	return state.CloneStrokes(m.strokes)
}
