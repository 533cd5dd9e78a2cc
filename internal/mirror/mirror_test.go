package mirror

import (
	"encoding/json"
	"testing"

	"CollabCanvas/internal/hub"
	"CollabCanvas/internal/state"
)

func frame(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestMirrorSnapshotReplaces(t *testing.T) {
	m := New()
	m.ApplyAppend(state.Stroke{ID: "local-only"})

	var redrawn []state.Stroke
	m.OnRedraw = func(s []state.Stroke) { redrawn = s }

	err := m.Apply(frame(t, hub.HistoryMsg{Type: hub.TypeHistoryUpdate,
		Strokes: []state.Stroke{{ID: "s1"}, {ID: "s2"}}}))
	if err != nil {
		t.Fatal(err)
	}
	got := m.Strokes()
	if len(got) != 2 || got[0].ID != "s1" {
		t.Fatalf("local copy %v, want the snapshot and nothing else", got)
	}
	if len(redrawn) != 2 {
		t.Fatal("snapshot must trigger a full redraw")
	}
}

func TestMirrorAppendFastPath(t *testing.T) {
	m := New()
	m.ApplySnapshot([]state.Stroke{{ID: "s1"}})

	var appended *state.Stroke
	redraws := 0
	m.OnRedraw = func([]state.Stroke) { redraws++ }
	m.OnStroke = func(s state.Stroke) { appended = &s }

	err := m.Apply(frame(t, hub.StrokeAppendMsg{Type: hub.TypeStrokeAppend,
		Stroke: state.Stroke{ID: "s2", Points: []state.Point{{X: 1, Y: 1}}}}))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Strokes(); len(got) != 2 || got[1].ID != "s2" {
		t.Fatalf("local copy %v, want append", got)
	}
	if appended == nil || appended.ID != "s2" {
		t.Fatal("append must render only the new stroke")
	}
	if redraws != 0 {
		t.Fatal("append must not trigger a full redraw")
	}
}

func TestMirrorClear(t *testing.T) {
	m := New()
	m.ApplySnapshot([]state.Stroke{{ID: "s1"}})

	if err := m.Apply(frame(t, hub.ClearCanvasMsg{Type: hub.TypeClearCanvas})); err != nil {
		t.Fatal(err)
	}
	if got := m.Strokes(); len(got) != 0 {
		t.Fatalf("local copy %v after clear", got)
	}
}

func TestMirrorPresenceCallbacks(t *testing.T) {
	m := New()
	var users []string
	var left string
	var cursorUser string
	m.OnUsers = func(u []string) { users = u }
	m.OnUserLeft = func(uid string) { left = uid }
	m.OnCursor = func(uid string, x, y float64, color string) { cursorUser = uid }

	if err := m.Apply(frame(t, hub.UsersMsg{Type: hub.TypeUsers, Users: []string{"c1", "c2"}})); err != nil {
		t.Fatal(err)
	}
	if err := m.Apply(frame(t, hub.CursorMsg{Type: hub.TypeCursorUpdate, UserID: "alice", X: 3, Y: 4})); err != nil {
		t.Fatal(err)
	}
	if err := m.Apply(frame(t, hub.UserLeftMsg{Type: hub.TypeUserLeft, UserID: "bob"})); err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 || cursorUser != "alice" || left != "bob" {
		t.Fatalf("callbacks saw users=%v cursor=%q left=%q", users, cursorUser, left)
	}
}

func TestMirrorRejectsUnknownFrame(t *testing.T) {
	m := New()
	if err := m.Apply([]byte(`{"type":"mystery"}`)); err == nil {
		t.Fatal("unknown frame types must surface as errors")
	}
}
