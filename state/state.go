// Package state persists the last seen top item between runs. Whether the
// pipeline fires at all is decided here: extraction only runs when the
// current top item differs from what the store remembers.
package state

import "time"

// LastSeen records the most recent top item observed on the stream.
type LastSeen struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	LastChecked time.Time `json:"last_checked"`
}

// Store persists the last seen item between invocations.
type Store interface {
	// Load returns the saved item, or nil when nothing has been saved yet.
	Load() (*LastSeen, error)
	Save(LastSeen) error
	Close() error
}

// IsNew reports whether current differs from what was last saved. The
// comparison is by title only; the stream occasionally re-renders the same
// headline under a different query URL.
func IsNew(current string, last *LastSeen) bool {
	if last == nil {
		return true
	}
	return current != last.Title
}
