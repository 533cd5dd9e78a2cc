package store

import (
	"os"
	"path/filepath"
	"testing"

	"CollabCanvas/internal/state"
)

func testStrokes() []state.Stroke {
	return []state.Stroke{
		{ID: "s1", UserID: "u1", Tool: state.ToolBrush, Color: "#112233", Width: 3,
			Points: []state.Point{{X: 1, Y: 2, T: 100}, {X: 3, Y: 4, T: 120}}},
		{ID: "s2", UserID: "u2", Tool: state.ToolEraser, Color: "#ffffff", Width: 12,
			Points: []state.Point{{X: 5, Y: 6, T: 200}}},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.json")
	fs := NewFileStore(path)

	if err := fs.Save(testStrokes()); err != nil {
		t.Fatal(err)
	}
	loaded, err := fs.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d strokes, want 2", len(loaded))
	}
	if loaded[0].ID != "s1" || loaded[1].Tool != state.ToolEraser {
		t.Fatalf("round trip mangled strokes: %+v", loaded)
	}
	if loaded[0].Points[1].T != 120 {
		t.Fatal("point timestamps lost in round trip")
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	loaded, err := fs.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded != nil {
		t.Fatal("absent store must mean empty history, not an error")
	}
}

func TestFileStoreReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.json")
	fs := NewFileStore(path)
	if err := fs.Save(testStrokes()); err != nil {
		t.Fatal(err)
	}

	if err := fs.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("reset must delete the file")
	}
	// Resetting again is fine.
	if err := fs.Reset(); err != nil {
		t.Fatal(err)
	}
}
