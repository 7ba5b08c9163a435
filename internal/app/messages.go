package app

import "github.com/jwulff/eclipse/internal/loader"

// CatalogLoadedMsg is sent when the catalog is available.
type CatalogLoadedMsg struct {
	Result loader.Result
}

// LoadErrorMsg is sent when the catalog could not be loaded.
type LoadErrorMsg struct {
	Err error
}

// ResizeSettledMsg fires once the terminal size has been quiet for the
// debounce period. Only the message carrying the latest generation rebuilds.
type ResizeSettledMsg struct {
	Gen int
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
