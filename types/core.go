// Package types defines the shared vocabulary exchanged between the sectionstore
// container and its consumers: index paths locating items and the change kinds
// reported for each structural mutation.
package types

import "fmt"

// IndexPath locates a single item inside a container as a (section, item) pair.
// Index paths are derived from the ordering current at the moment they are
// reported. They are never cached across mutations; a path that was valid before
// a mutation may point at a different item afterwards.
type IndexPath struct {
	Section int
	Item    int
}

// NewIndexPath returns the index path for the given section and item positions.
func NewIndexPath(section, item int) IndexPath {
	return IndexPath{Section: section, Item: item}
}

// Compare orders index paths by section first, then by item within the section.
// It returns a negative value when p sorts before other, zero when they are
// equal, and a positive value otherwise.
func (p IndexPath) Compare(other IndexPath) int {
	if p.Section != other.Section {
		if p.Section < other.Section {
			return -1
		}
		return 1
	}
	switch {
	case p.Item < other.Item:
		return -1
	case p.Item > other.Item:
		return 1
	}
	return 0
}

// String formats the path as "[section, item]", the order consumers expect when
// mapping the path onto a two-level list.
func (p IndexPath) String() string {
	return fmt.Sprintf("[%d, %d]", p.Section, p.Item)
}

// ChangeType tags a single structural effect reported to a ChangeObserver.
type ChangeType int

const (
	// ChangeInsert reports an item or section that became present at the new
	// index path.
	ChangeInsert ChangeType = iota

	// ChangeDelete reports an item or section removed from the old index path.
	ChangeDelete

	// ChangeMove reports an item relocated from the old index path to the new
	// one. Section moves are reported as a delete/insert pair instead.
	ChangeMove

	// ChangeUpdate reports an item whose content should be refreshed in place
	// without replacing its row. Softer than ChangeReload.
	ChangeUpdate

	// ChangeReload reports an item or section that should be fully redrawn at
	// its current index path.
	ChangeReload
)

// String returns the lowercase tag used in event logs.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeMove:
		return "move"
	case ChangeUpdate:
		return "update"
	case ChangeReload:
		return "reload"
	}
	return fmt.Sprintf("ChangeType(%d)", int(c))
}
