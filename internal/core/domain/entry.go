package domain

import "time"

// DatabaseEntry is a page in the target database created by an earlier run.
type DatabaseEntry struct {
	// ID is the page identifier.
	ID string
	// FileID is the source file recorded on the page, when present.
	FileID string
	// CreatedTime is when the page was created.
	CreatedTime time.Time
	// LastEditedTime is when the page was last changed.
	LastEditedTime time.Time
}
