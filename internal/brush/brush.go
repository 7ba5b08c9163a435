package brush

import "github.com/jwulff/eclipse/internal/eclipse"

// State is the drag state of the brush.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Brush moves a fixed-width window across [Min, Max]. It writes through to
// the window it was given; it never owns one.
type Brush struct {
	scale        Scale
	window       *eclipse.Window
	min, max     float64
	defaultStart float64

	state      State
	dragOffset float64
}

// New binds a brush to w. min and max are the date bounds of the axis and
// defaultStart is the selection restored after an external clear.
func New(scale Scale, w *eclipse.Window, min, max, defaultStart float64) *Brush {
	return &Brush{
		scale:        scale,
		window:       w,
		min:          min,
		max:          max,
		defaultStart: defaultStart,
	}
}

// State reports whether a drag is in progress.
func (b *Brush) State() State { return b.state }

// Scale returns the axis scale.
func (b *Brush) Scale() Scale { return b.scale }

// Clamp limits a candidate start so the whole window stays inside [min, max].
func (b *Brush) Clamp(start float64) float64 {
	hi := b.max - b.window.Width
	if start < b.min {
		return b.min
	}
	if start > hi {
		return hi
	}
	return start
}

// Start begins a drag with the pointer at px.
func (b *Brush) Start(px float64) {
	b.dragOffset = b.scale.Invert(px) - b.window.StartYear
	b.state = Dragging
}

// Move follows the pointer to px and writes the clamped start into the
// window. It reports false when no drag is active.
func (b *Brush) Move(px float64) bool {
	if b.state != Dragging {
		return false
	}
	b.window.StartYear = b.Clamp(b.scale.Invert(px) - b.dragOffset)
	return true
}

// End finishes the drag. The window keeps its last value.
func (b *Brush) End() {
	b.state = Idle
	b.dragOffset = 0
}

// Jump repositions the window programmatically without entering a drag and
// without clamping.
func (b *Brush) Jump(start float64) {
	b.window.StartYear = start
}

// Reset restores the default selection.
func (b *Brush) Reset() {
	b.window.StartYear = b.Clamp(b.defaultStart)
}

// Extent returns the pixel span of the current window.
func (b *Brush) Extent() (x0, x1 float64) {
	return b.scale.Map(b.window.StartYear), b.scale.Map(b.window.End())
}
