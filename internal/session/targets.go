package session

import "github.com/jwulff/eclipse/internal/eclipse"

// Layer identifies a shape layer on the globe.
type Layer int

const (
	// LayerPaths holds the category-styled paths of the current window.
	LayerPaths Layer = iota
	// LayerHighlight holds the hovered or clicked path.
	LayerHighlight
)

func (l Layer) String() string {
	if l == LayerHighlight {
		return "highlight"
	}
	return "paths"
}

// Surface is the globe. The session only ever commands it.
type Surface interface {
	ReplaceShapes(layer Layer, shapes []eclipse.Shape)
	GoTo(camera eclipse.Camera)
}

// Chart is the scatterplot and its brush.
type Chart interface {
	// SetSelected marks exactly these records as inside the window.
	SetSelected(subset []eclipse.Record)
	SetPointStyle(id int, style eclipse.PointStyle)
	// ResetPointStyles restores every dot to its category style.
	ResetPointStyles()
	SetPointsEnabled(enabled bool)
	MoveBrush(w eclipse.Window)
}

// Panel is the detail panel.
type Panel interface {
	Show(d eclipse.Detail)
	Hide()
}

// Targets bundles the three collaborators a session drives.
type Targets struct {
	Surface Surface
	Chart   Chart
	Panel   Panel
}
