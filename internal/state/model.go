package state

// Tool selects how a stroke composites onto the canvas.
type Tool string

const (
	ToolBrush  Tool = "brush"
	ToolEraser Tool = "eraser"
)

// Point is a single input sample. Points within a stroke are ordered by
// arrival, not by timestamp; batches reordered in transit stay reordered.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T int64   `json:"t"`
}

// Stroke is one continuous drawing gesture plus its drawing attributes.
// A stroke is either pending (mutable, owned by the Assembler) or committed
// (immutable, owned by History). A committed stroke with fewer than two
// points is legal; it just draws no segment.
type Stroke struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Tool   Tool    `json:"tool"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Points []Point `json:"points"`
}

// Clone returns a copy whose point slice shares no storage with the receiver.
func (s Stroke) Clone() Stroke {
	c := s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	return c
}

// CloneStrokes deep-copies a stroke sequence.
func CloneStrokes(strokes []Stroke) []Stroke {
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return out
}
