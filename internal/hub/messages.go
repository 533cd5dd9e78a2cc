package hub

import "CollabCanvas/internal/state"

// Wire events. Every frame is a JSON object carrying its event name in
// "type"; payloads are flattened alongside it. The envelope is decoded
// first to pick the concrete message type, then the frame is decoded again.

// Client to server.
const (
	TypeJoin         = "join"
	TypeStrokeBegin  = "stroke-begin"
	TypeStrokePoints = "stroke-points"
	TypeStrokeEnd    = "stroke-end"
	TypeUndo         = "undo"
	TypeRedo         = "redo"
	TypeClear        = "clear"
	TypeCursorMove   = "cursor-move"
	TypeLeave        = "leave"
)

// Server to client.
const (
	TypeHistory       = "history"
	TypeStrokeAppend  = "stroke-append"
	TypeHistoryUpdate = "history-update"
	TypeClearCanvas   = "clear-canvas"
	TypeUsers         = "users"
	TypeCursorUpdate  = "cursor-update"
	TypeUserLeft      = "user-left"
)

// Envelope extracts just the event name from an incoming frame.
type Envelope struct {
	Type string `json:"type"`
}

// UserMeta is the identity a client presents when joining a room.
type UserMeta struct {
	UserID string `json:"userId"`
	Color  string `json:"color"`
}

type JoinMsg struct {
	Type string   `json:"type"`
	Room string   `json:"room"`
	Meta UserMeta `json:"meta"`
}

// StrokeBeginMsg carries the drawing attributes of a new stroke; points
// follow in separate batches.
type StrokeBeginMsg struct {
	Type   string     `json:"type"`
	ID     string     `json:"id"`
	UserID string     `json:"userId"`
	Tool   state.Tool `json:"tool"`
	Color  string     `json:"color"`
	Width  float64    `json:"width"`
}

type StrokePointsMsg struct {
	Type     string        `json:"type"`
	StrokeID string        `json:"strokeId"`
	Points   []state.Point `json:"points"`
}

type StrokeEndMsg struct {
	Type     string `json:"type"`
	StrokeID string `json:"strokeId"`
}

// CursorMsg doubles as cursor-move (inbound) and cursor-update (outbound);
// the broker relays it verbatim apart from the type.
type CursorMsg struct {
	Type   string  `json:"type"`
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Color  string  `json:"color"`
}

type LeaveMsg struct {
	Type   string `json:"type"`
	Room   string `json:"room"`
	UserID string `json:"userId"`
}

// HistoryMsg is the full snapshot, sent on join (type "history") and after
// undo/redo (type "history-update"). Receivers must discard their local
// copy and replay, never merge.
type HistoryMsg struct {
	Type    string         `json:"type"`
	Strokes []state.Stroke `json:"strokes"`
}

type StrokeAppendMsg struct {
	Type   string       `json:"type"`
	Stroke state.Stroke `json:"stroke"`
}

type ClearCanvasMsg struct {
	Type string `json:"type"`
}

// UsersMsg lists the connection ids currently in a room.
type UsersMsg struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
}

type UserLeftMsg struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}
