package timeline

import "errors"

var (
	// ErrMatchNotFound reports a read or merge against a match that was
	// never started. This is a caller protocol mistake, not a data issue.
	ErrMatchNotFound = errors.New("timeline: match not found")

	// ErrNoSnapshots reports an End call on a timeline that holds nothing
	// besides the startGame/endGame markers.
	ErrNoSnapshots = errors.New("timeline: no snapshots recorded")
)
