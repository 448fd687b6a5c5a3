package template

// Slide dimensions for the 16:9 wide layout, in inches.
const (
	SlideWidth  = 13.33
	SlideHeight = 7.5
)

// LectureLayout is the fixed geometry shared by every template: only text
// and background styling differ between templates, never placement.
var LectureLayout = map[string]Layout{
	SlotMetaPrimary:   {Position: Position{X: 0.8, Y: 0.3}, Size: Size{W: 11.7, H: 0.35}, ZIndex: 2},
	SlotMetaSecondary: {Position: Position{X: 0.8, Y: 0.7}, Size: Size{W: 11.7, H: 0.35}, ZIndex: 3},
	SlotHeading:       {Position: Position{X: 0.8, Y: 1.3}, Size: Size{W: 11.7, H: 0.5}, ZIndex: 6},
	SlotBody:          {Position: Position{X: 0.8, Y: 2.1}, Size: Size{W: 7.0, H: 4.5}, ZIndex: 5},
	SlotImage:         {Position: Position{X: 8.2, Y: 2.1}, Size: Size{W: 4.33, H: 3.25}, ZIndex: 4},
	SlotCaption:       {Position: Position{X: 0.8, Y: 6.8}, Size: Size{W: 11.7, H: 0.4}, ZIndex: 1},
}

// MinElementSize bounds interactive resizing in the editor, in inches.
var MinElementSize = map[string]Size{
	SlotMetaPrimary:   {W: 1.0, H: 0.2},
	SlotMetaSecondary: {W: 1.0, H: 0.2},
	SlotHeading:       {W: 1.0, H: 0.3},
	SlotBody:          {W: 2.0, H: 1.0},
	SlotImage:         {W: 1.0, H: 0.75},
	SlotCaption:       {W: 1.0, H: 0.2},
}

// ClampPosition keeps an element of the given size fully on the slide.
func ClampPosition(x, y, w, h float64) Position {
	maxX := SlideWidth - w
	if maxX < 0 {
		maxX = 0
	}
	maxY := SlideHeight - h
	if maxY < 0 {
		maxY = 0
	}
	return Position{X: round2(clampF(x, 0, maxX)), Y: round2(clampF(y, 0, maxY))}
}

// ClampSize bounds an element size between its minimum and the slide extent.
func ClampSize(w, h, minW, minH float64) Size {
	return Size{W: clampF(w, minW, SlideWidth), H: clampF(h, minH, SlideHeight)}
}

// SnapToGrid snaps a coordinate to the nearest grid increment. A zero grid
// disables snapping.
func SnapToGrid(value, gridSize float64) float64 {
	if gridSize == 0 {
		return value
	}
	return float64(int(value/gridSize+0.5)) * gridSize
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
