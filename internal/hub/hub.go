// Package hub is the synchronization broker: it routes client intents to
// the stroke assembler and history store and fans resulting state changes
// out to every affected connection.
package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"CollabCanvas/internal/state"
)

type eventKind int

const (
	evtRegister eventKind = iota
	evtMessage
	evtDisconnect
)

type event struct {
	kind eventKind
	c    *conn
	data []byte
}

// Hub owns all shared mutable state behind one event loop. Connection read
// goroutines enqueue events; Run consumes them on a single goroutine, so
// push/undo/redo and the pending-stroke table mutate strictly in arrival
// order and need no further coordination between each other. That single
// serialization point is what establishes the global commit order every
// client converges on.
type Hub struct {
	history   *state.History
	assembler *state.Assembler
	sessions  *Sessions
	log       *slog.Logger

	events chan event
	conns  map[*conn]bool
}

func New(history *state.History, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		history:   history,
		assembler: state.NewAssembler(),
		sessions:  NewSessions(),
		log:       logger,
		events:    make(chan event, 256),
		conns:     make(map[*conn]bool),
	}
}

// Run processes connection events until ctx is cancelled. All state
// transitions of every connection happen here.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.events:
			switch ev.kind {
			case evtRegister:
				h.conns[ev.c] = true
				h.log.Debug("client connected", "conn", ev.c.id)
			case evtDisconnect:
				h.handleDisconnect(ev.c)
			case evtMessage:
				h.handleMessage(ev.c, ev.data)
			}
		}
	}
}

func (h *Hub) handleMessage(c *conn, data []byte) {
	if c.state == stateClosed {
		// Late frame from a connection already torn down.
		return
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		h.log.Warn("dropping malformed message", "conn", c.id, "err", err)
		return
	}

	if c.state == stateConnected {
		// Drawing before joining is not a legal transition.
		if env.Type != TypeJoin {
			h.log.Warn("dropping message from client outside a room", "conn", c.id, "type", env.Type)
			return
		}
		h.handleJoin(c, data)
		return
	}

	switch env.Type {
	case TypeJoin:
		h.log.Warn("dropping join from already joined client", "conn", c.id, "room", c.room)
	case TypeStrokeBegin:
		h.handleStrokeBegin(c, data)
	case TypeStrokePoints:
		h.handleStrokePoints(c, data)
	case TypeStrokeEnd:
		h.handleStrokeEnd(c, data)
	case TypeUndo:
		h.history.Undo()
		h.broadcastAll(h.snapshotMsg(TypeHistoryUpdate), nil)
	case TypeRedo:
		h.history.Redo()
		h.broadcastAll(h.snapshotMsg(TypeHistoryUpdate), nil)
	case TypeClear:
		h.history.Clear()
		out, _ := json.Marshal(ClearCanvasMsg{Type: TypeClearCanvas})
		h.broadcastAll(out, nil)
		h.log.Info("canvas cleared", "by", c.meta.UserID)
	case TypeCursorMove:
		h.handleCursorMove(c, data)
	case TypeLeave:
		h.handleLeave(c)
	default:
		h.log.Warn("dropping unknown message type", "conn", c.id, "type", env.Type)
	}
}

// handleJoin moves the connection into a room, sends it the full history
// snapshot and tells the room who is present now.
func (h *Hub) handleJoin(c *conn, data []byte) {
	var msg JoinMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		h.log.Warn("dropping malformed join", "conn", c.id, "err", err)
		return
	}
	if msg.Room == "" {
		msg.Room = "main"
	}
	c.state = stateJoined
	c.room = msg.Room
	c.meta = msg.Meta
	h.sessions.Join(msg.Room, c.id, msg.Meta)

	h.sendTo(c, h.snapshotMsg(TypeHistory))
	h.broadcastUsers(msg.Room)
	h.log.Info("user joined room", "conn", c.id, "room", msg.Room, "user", msg.Meta.UserID)
}

func (h *Hub) handleStrokeBegin(c *conn, data []byte) {
	var msg StrokeBeginMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.ID == "" {
		h.log.Warn("dropping malformed stroke-begin", "conn", c.id, "err", err)
		return
	}
	// Pending strokes are not broadcast; only the committed result is
	// shared, so late joiners never see half a stroke.
	h.assembler.Begin(c.id, state.Stroke{
		ID:     msg.ID,
		UserID: msg.UserID,
		Tool:   msg.Tool,
		Color:  msg.Color,
		Width:  msg.Width,
	})
}

func (h *Hub) handleStrokePoints(c *conn, data []byte) {
	var msg StrokePointsMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		h.log.Warn("dropping malformed stroke-points", "conn", c.id, "err", err)
		return
	}
	h.assembler.AppendPoints(msg.StrokeID, msg.Points)
}

// handleStrokeEnd finalizes a pending stroke, commits it and broadcasts the
// single new stroke process-wide. A duplicate end finds no pending entry
// and commits nothing.
func (h *Hub) handleStrokeEnd(c *conn, data []byte) {
	var msg StrokeEndMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		h.log.Warn("dropping malformed stroke-end", "conn", c.id, "err", err)
		return
	}
	stroke, ok := h.assembler.End(msg.StrokeID)
	if !ok {
		return
	}
	h.history.Push(stroke)
	out, _ := json.Marshal(StrokeAppendMsg{Type: TypeStrokeAppend, Stroke: stroke})
	h.broadcastAll(out, nil)
	h.log.Debug("stroke committed", "stroke", stroke.ID, "user", stroke.UserID, "points", len(stroke.Points))
}

func (h *Hub) handleCursorMove(c *conn, data []byte) {
	var msg CursorMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		h.log.Warn("dropping malformed cursor-move", "conn", c.id, "err", err)
		return
	}
	msg.Type = TypeCursorUpdate
	out, _ := json.Marshal(msg)
	h.broadcastAll(out, c)
}

// handleLeave drops the connection from the directory without closing the
// socket; the client must join again before drawing.
func (h *Hub) handleLeave(c *conn) {
	room, meta, ok := h.sessions.Leave(c.id)
	if !ok {
		return
	}
	c.state = stateConnected
	c.room = ""
	h.broadcastUsers(room)
	if meta.UserID != "" {
		out, _ := json.Marshal(UserLeftMsg{Type: TypeUserLeft, UserID: meta.UserID})
		h.broadcastAll(out, c)
	}
}

// handleDisconnect is the terminal transition. Pending strokes the
// connection still owned are discarded rather than left to leak.
func (h *Hub) handleDisconnect(c *conn) {
	if c.state == stateClosed {
		return
	}
	wasJoined := c.state == stateJoined
	c.state = stateClosed
	delete(h.conns, c)
	close(c.send)

	if n := h.assembler.PurgeOwner(c.id); n > 0 {
		h.log.Debug("discarded orphaned pending strokes", "conn", c.id, "count", n)
	}
	room, meta, ok := h.sessions.Leave(c.id)
	if ok {
		h.broadcastUsers(room)
	}
	if wasJoined && meta.UserID != "" {
		out, _ := json.Marshal(UserLeftMsg{Type: TypeUserLeft, UserID: meta.UserID})
		h.broadcastAll(out, nil)
	}
	h.log.Debug("client disconnected", "conn", c.id)
}

func (h *Hub) snapshotMsg(typ string) []byte {
	data, _ := json.Marshal(HistoryMsg{Type: typ, Strokes: h.history.Snapshot()})
	return data
}

func (h *Hub) broadcastUsers(room string) {
	data, _ := json.Marshal(UsersMsg{Type: TypeUsers, Users: h.sessions.MembersOf(room)})
	for c := range h.conns {
		if c.state == stateJoined && c.room == room {
			h.sendTo(c, data)
		}
	}
}

// broadcastAll sends to every live connection in the process except the
// excluded one. Commit and history broadcasts deliberately cross room
// boundaries; see the note on broadcast scope in DESIGN.md.
func (h *Hub) broadcastAll(data []byte, exclude *conn) {
	for c := range h.conns {
		if c != exclude {
			h.sendTo(c, data)
		}
	}
}

// sendTo enqueues without blocking; a consumer too slow to drain its buffer
// loses the frame rather than stalling the event loop.
func (h *Hub) sendTo(c *conn, data []byte) {
	if c.state == stateClosed {
		return
	}
	select {
	case c.send <- data:
	default:
		h.log.Warn("dropping frame for slow consumer", "conn", c.id)
	}
}
