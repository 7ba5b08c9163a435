package session

import "github.com/jwulff/eclipse/internal/eclipse"

// Event is anything the chart session reacts to. Presentation code translates
// pointer and key input into these and hands them to Dispatch.
type Event interface {
	event()
}

// DragStart begins a brush drag with the pointer at X pixels along the track.
type DragStart struct{ X float64 }

// DragMove follows the pointer during a drag.
type DragMove struct{ X float64 }

// DragEnd releases the brush.
type DragEnd struct{}

// PointClicked is a click on the chart dot of record ID.
type PointClicked struct{ ID int }

// PointHovered is the pointer entering the chart dot of record ID.
type PointHovered struct{ ID int }

// PointUnhovered is the pointer leaving the chart dot of record ID.
type PointUnhovered struct{ ID int }

// GlobeClicked is a click on the globe. Hit is nil when nothing was under
// the pointer.
type GlobeClicked struct{ Hit *eclipse.Record }

// SelectionCleared means the brush lost its selection from outside.
type SelectionCleared struct{}

// Resized carries the new chart track width in pixels after the debounce.
type Resized struct{ TrackWidth float64 }

func (DragStart) event()        {}
func (DragMove) event()         {}
func (DragEnd) event()          {}
func (PointClicked) event()     {}
func (PointHovered) event()     {}
func (PointUnhovered) event()   {}
func (GlobeClicked) event()     {}
func (SelectionCleared) event() {}
func (Resized) event()          {}
