// Package sectionstore provides a section-structured, ordered-collection
// container with serialized asynchronous mutation and fine-grained change
// notification.
//
// A Container holds an ordered list of Sections, each an ordered group of
// unique items; item values are globally unique across the whole container.
// Mutations (append/insert/delete/move/replace of items and sections) are
// enqueued on a per-container FIFO pipeline and applied one at a time off the
// caller's goroutine, each followed by a batch of change events (insert,
// delete, move, update, reload) precise enough for a consumer to drive an
// incremental list UI without recomputing any diff.
//
// Reads are synchronous against the committed state and deliberately not
// serialized with pending mutations; callers needing a read that reflects a
// burst of writes sequence it with Container.RunAfterPending or
// Container.Settle.
package sectionstore

import "github.com/arthur-debert/sectionstore/types"

// Re-export the shared vocabulary from the types package for convenience.

// IndexPath is an alias for types.IndexPath
type IndexPath = types.IndexPath

// ChangeType is an alias for types.ChangeType
type ChangeType = types.ChangeType

const (
	ChangeInsert = types.ChangeInsert
	ChangeDelete = types.ChangeDelete
	ChangeMove   = types.ChangeMove
	ChangeUpdate = types.ChangeUpdate
	ChangeReload = types.ChangeReload
)

// NewIndexPath returns the index path for the given section and item positions.
func NewIndexPath(section, item int) IndexPath {
	return types.NewIndexPath(section, item)
}
