package sectionstore

import (
	"hash/maphash"
	"slices"

	"github.com/google/uuid"
)

// Section is an ordered, internally-unique group of items plus display
// metadata. Sections are created by callers, possibly pre-populated, and handed
// to a container; after that their items change only through the container's
// mutation methods. Mutating a section that a container holds by any other
// means breaks the container's uniqueness bookkeeping.
//
// Two sections compare equal when their ordered items, name, and index title
// all match; Equal and Hash exist for set-membership tests ("is this still one
// of my sections"). Containers track held sections by the opaque identity token
// assigned at construction, not by content, so item churn never invalidates a
// held section.
type Section[T comparable] struct {
	id         string
	name       string
	indexTitle string
	items      []T
}

// NewSection creates a section with the given display name and initial items.
// Duplicate item values are dropped, keeping the first occurrence.
func NewSection[T comparable](name string, items ...T) *Section[T] {
	return NewSectionWithIndexTitle(name, "", items...)
}

// NewSectionWithIndexTitle creates a section carrying an optional secondary
// label alongside the name. Both labels are opaque to the container.
func NewSectionWithIndexTitle[T comparable](name, indexTitle string, items ...T) *Section[T] {
	s := &Section[T]{
		id:         uuid.New().String(),
		name:       name,
		indexTitle: indexTitle,
	}
	s.append(items)
	return s
}

// ID returns the opaque identity token assigned at construction.
func (s *Section[T]) ID() string { return s.id }

// Name returns the section's display label.
func (s *Section[T]) Name() string { return s.name }

// IndexTitle returns the section's secondary label, or "" when unset.
func (s *Section[T]) IndexTitle() string { return s.indexTitle }

// Items returns a copy of the section's items in order.
func (s *Section[T]) Items() []T {
	return slices.Clone(s.items)
}

// Len returns the number of items in the section.
func (s *Section[T]) Len() int { return len(s.items) }

// Contains reports whether the section holds the given item value.
func (s *Section[T]) Contains(item T) bool {
	return slices.Contains(s.items, item)
}

// IndexOf returns the position of item within the section, or -1.
func (s *Section[T]) IndexOf(item T) int {
	return slices.Index(s.items, item)
}

// ItemAt returns the item at the given position. The second return value is
// false when the position is out of range.
func (s *Section[T]) ItemAt(index int) (T, bool) {
	if index < 0 || index >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[index], true
}

// Equal reports whether both sections hold the same ordered items under the
// same name and index title. A nil section is equal only to another nil.
func (s *Section[T]) Equal(other *Section[T]) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.name == other.name &&
		s.indexTitle == other.indexTitle &&
		slices.Equal(s.items, other.items)
}

// Hash returns a content hash of the section under the given seed. Sections
// that are Equal hash equal. Content hashing is O(items); use it for
// membership tests, not as a per-mutation lookup key.
func (s *Section[T]) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	_, _ = h.WriteString(s.name)
	_ = h.WriteByte(0)
	_, _ = h.WriteString(s.indexTitle)
	_ = h.WriteByte(0)
	for _, item := range s.items {
		maphash.WriteComparable(&h, item)
	}
	return h.Sum64()
}

// Positional mutation primitives. These operate on this section's items only;
// global uniqueness filtering is the container's job. All of them treat absent
// anchors as silent no-ops rather than errors.

// append adds items to the end, skipping values the section already holds.
func (s *Section[T]) append(items []T) {
	for _, item := range items {
		if !slices.Contains(s.items, item) {
			s.items = append(s.items, item)
		}
	}
}

// insertAt splices items in contiguously so the first lands at index. An index
// of Len() appends.
func (s *Section[T]) insertAt(index int, items []T) {
	s.items = slices.Insert(s.items, index, items...)
}

// insertBefore inserts items contiguously before anchor's current position and
// returns the starting index. ok is false, and nothing changes, when anchor is
// not in the section.
func (s *Section[T]) insertBefore(items []T, anchor T) (start int, ok bool) {
	i := s.IndexOf(anchor)
	if i < 0 {
		return 0, false
	}
	s.insertAt(i, items)
	return i, true
}

// insertAfter inserts items contiguously after anchor's current position and
// returns the starting index. Inserting after the last item appends.
func (s *Section[T]) insertAfter(items []T, anchor T) (start int, ok bool) {
	i := s.IndexOf(anchor)
	if i < 0 {
		return 0, false
	}
	s.insertAt(i+1, items)
	return i + 1, true
}

// removeAt deletes the item at index.
func (s *Section[T]) removeAt(index int) {
	s.items = slices.Delete(s.items, index, index+1)
}

// delete removes every listed item present in the section. It returns the
// removed items with their pre-deletion indices, ordered by descending index;
// removal itself runs back to front so earlier indices stay valid. Absent
// items are ignored.
func (s *Section[T]) delete(items []T) []removedItem[T] {
	var removed []removedItem[T]
	for _, item := range items {
		if i := s.IndexOf(item); i >= 0 {
			removed = append(removed, removedItem[T]{item: item, index: i})
		}
	}
	slices.SortFunc(removed, func(a, b removedItem[T]) int {
		return b.index - a.index
	})
	for _, r := range removed {
		s.removeAt(r.index)
	}
	return removed
}

type removedItem[T comparable] struct {
	item  T
	index int
}

// moveDestination computes where item would land if relocated adjacent to
// anchor, accounting for item's own removal shifting anchor's position. ok is
// false when either value is absent or item and anchor are the same value;
// self-relative moves are meaningless and must not disturb the ordering.
func (s *Section[T]) moveDestination(item, anchor T, after bool) (from, to int, ok bool) {
	if item == anchor {
		return 0, 0, false
	}
	from = s.IndexOf(item)
	anchorIndex := s.IndexOf(anchor)
	if from < 0 || anchorIndex < 0 {
		return 0, 0, false
	}
	if from < anchorIndex {
		anchorIndex--
	}
	to = anchorIndex
	if after {
		to++
	}
	return from, to, true
}

// moveBefore relocates item so it precedes anchor, returning the old and new
// indices. ok is false on self-moves, absent values, or when the move would
// land the item where it already is.
func (s *Section[T]) moveBefore(item, anchor T) (from, to int, ok bool) {
	return s.move(item, anchor, false)
}

// moveAfter relocates item so it follows anchor. Moving after the last item
// resolves to an append.
func (s *Section[T]) moveAfter(item, anchor T) (from, to int, ok bool) {
	return s.move(item, anchor, true)
}

func (s *Section[T]) move(item, anchor T, after bool) (from, to int, ok bool) {
	from, to, ok = s.moveDestination(item, anchor, after)
	if !ok || from == to {
		return 0, 0, false
	}
	s.removeAt(from)
	s.insertAt(to, []T{item})
	return from, to, true
}

// replace substitutes replacement for item at item's position, returning that
// position. ok is false when item is absent.
func (s *Section[T]) replace(item, replacement T) (index int, ok bool) {
	i := s.IndexOf(item)
	if i < 0 {
		return 0, false
	}
	s.items[i] = replacement
	return i, true
}
