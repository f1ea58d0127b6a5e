package tui

import (
	"github.com/SAP-F-2025/trivia-browser/internal/directory"
	"github.com/SAP-F-2025/trivia-browser/internal/events"
)

type categoriesMsg struct {
	dir directory.Directory
}

// stateMsg reports that a controller operation finished. It carries no state:
// commands finish in any order, so Update reads the controller's current snapshot.
type stateMsg struct{}

type deleteMsg struct {
	id      int
	deleted bool
}

type exportMsg struct {
	path      string
	questions int
	err       error
}

type eventMsg struct {
	event *events.Event
}

type errMsg struct {
	err error
}
