package export

import (
	"bytes"
	"testing"

	"CollabCanvas/internal/state"
)

func TestWritePDF(t *testing.T) {
	strokes := []state.Stroke{
		{ID: "s1", Tool: state.ToolBrush, Color: "#ff0000", Width: 5,
			Points: []state.Point{{X: 10, Y: 10}, {X: 200, Y: 150}, {X: 300, Y: 80}}},
		{ID: "s2", Tool: state.ToolEraser, Color: "#ffffff", Width: 20,
			Points: []state.Point{{X: 50, Y: 50}, {X: 60, Y: 60}}},
		{ID: "s3", Tool: state.ToolBrush, Color: "#0f0", Width: 2,
			Points: []state.Point{{X: 5, Y: 5}}}, // single point, no segment
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, strokes); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}

func TestWritePDFEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty history should still produce a valid empty page")
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b int
	}{
		{"#ff0000", 255, 0, 0},
		{"#00ff00", 0, 255, 0},
		{"#0000ff", 0, 0, 255},
		{"#fff", 255, 255, 255},
		{"garbage", 0, 0, 0},
		{"", 0, 0, 0},
	}
	for _, c := range cases {
		r, g, b := parseHexColor(c.in)
		if r != c.r || g != c.g || b != c.b {
			t.Errorf("parseHexColor(%q) = (%d,%d,%d), want (%d,%d,%d)", c.in, r, g, b, c.r, c.g, c.b)
		}
	}
}
