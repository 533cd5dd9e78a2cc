// Package export renders committed history into a PDF for download.
package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"CollabCanvas/internal/state"
)

// Canvas pixels to millimeters on an A4 landscape page.
const pxToMM = 1.0 / 4.0

// WritePDF draws every brush stroke in the snapshot as a polyline. Eraser
// strokes are skipped; on paper there is nothing to erase. Strokes with
// fewer than two points draw no segment, same as on the canvas.
func WritePDF(w io.Writer, strokes []state.Stroke) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()

	for _, s := range strokes {
		if s.Tool == state.ToolEraser || len(s.Points) < 2 {
			continue
		}
		r, g, b := parseHexColor(s.Color)
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(s.Width * pxToMM)
		for i := 1; i < len(s.Points); i++ {
			p.Line(
				s.Points[i-1].X*pxToMM, s.Points[i-1].Y*pxToMM,
				s.Points[i].X*pxToMM, s.Points[i].Y*pxToMM,
			)
		}
	}
	return p.Output(w)
}

// parseHexColor reads #rgb and #rrggbb; anything else renders black.
func parseHexColor(c string) (int, int, int) {
	c = strings.TrimPrefix(c, "#")
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	if len(c) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(c, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
