package elevation

import "fmt"

// LoadStatus is the lifecycle state of an asynchronously loaded source.
// It only moves forward: NotLoaded, Loading, then Loaded or FailedToLoad.
type LoadStatus int

const (
	NotLoaded LoadStatus = iota
	Loading
	Loaded
	FailedToLoad
)

func (s LoadStatus) String() string {
	switch s {
	case NotLoaded:
		return "NotLoaded"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case FailedToLoad:
		return "FailedToLoad"
	}
	return fmt.Sprintf("LoadStatus(%d)", int(s))
}

// Terminal reports whether s is Loaded or FailedToLoad.
func (s LoadStatus) Terminal() bool {
	return s == Loaded || s == FailedToLoad
}

// StatusChangedEvent is delivered to status listeners.
type StatusChangedEvent struct {
	Source    *RasterSource
	OldStatus LoadStatus
	NewStatus LoadStatus
}
