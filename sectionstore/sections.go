package sectionstore

import (
	"slices"

	"github.com/arthur-debert/sectionstore/types"
)

// Section mutations. Like item mutations, every method enqueues and returns;
// effects and events are the eventual, serialized ones.

// AppendSections adds sections to the end of the container. Each incoming
// section's items are filtered against everything already held and against
// items claimed by earlier sections in the same call; sections left empty by
// the filtering are dropped without an event. One section insert event fires
// per surviving section at its final index.
func (c *Container[T]) AppendSections(sections ...*Section[T]) {
	sections = slices.Clone(sections)
	c.enqueue(func(cs *changeSet[T]) {
		c.applyInsertSections(sections, len(c.sections), cs)
	})
}

// InsertSectionsBefore splices sections in so the first lands at the anchor
// section's current index. No-op when the anchor is not held.
func (c *Container[T]) InsertSectionsBefore(anchor *Section[T], sections ...*Section[T]) {
	c.insertSections(anchor, sections, false)
}

// InsertSectionsAfter splices sections in directly after the anchor section.
// Inserting after the last section resolves to an append.
func (c *Container[T]) InsertSectionsAfter(anchor *Section[T], sections ...*Section[T]) {
	c.insertSections(anchor, sections, true)
}

func (c *Container[T]) insertSections(anchor *Section[T], sections []*Section[T], after bool) {
	sections = slices.Clone(sections)
	c.enqueue(func(cs *changeSet[T]) {
		at, held := c.heldSection(anchor)
		if held == nil {
			return
		}
		if after {
			at++
		}
		c.applyInsertSections(sections, at, cs)
	})
}

// DeleteSections removes the listed sections, matched against the held ones by
// identity token or content equality. Delete events are emitted in descending
// original index order. Sections not currently held are ignored.
func (c *Container[T]) DeleteSections(sections ...*Section[T]) {
	sections = slices.Clone(sections)
	c.enqueue(func(cs *changeSet[T]) {
		type target struct {
			section *Section[T]
			index   int
		}
		seen := make(map[string]struct{}, len(sections))
		var targets []target
		for _, sec := range sections {
			index, held := c.heldSection(sec)
			if held == nil {
				continue
			}
			if _, dup := seen[held.id]; dup {
				continue
			}
			seen[held.id] = struct{}{}
			targets = append(targets, target{section: held, index: index})
		}
		if len(targets) == 0 {
			return
		}

		slices.SortFunc(targets, func(a, b target) int {
			return b.index - a.index
		})
		for _, t := range targets {
			cs.addSection(t.section, t.index, types.ChangeDelete)
			c.sections = slices.Delete(c.sections, t.index, t.index+1)
			for _, item := range t.section.items {
				delete(c.index, item)
			}
		}
	})
}

// MoveSectionBefore relocates section so it precedes anchor. No-op when the
// two are the same section, when either is absent, or when the computed
// destination equals the current position. The move is reported as a
// delete/insert event pair carrying the old and new indices.
func (c *Container[T]) MoveSectionBefore(section, anchor *Section[T]) {
	c.moveSection(section, anchor, false)
}

// MoveSectionAfter relocates section so it follows anchor. Moving after the
// last section resolves to an append.
func (c *Container[T]) MoveSectionAfter(section, anchor *Section[T]) {
	c.moveSection(section, anchor, true)
}

func (c *Container[T]) moveSection(section, anchor *Section[T], after bool) {
	c.enqueue(func(cs *changeSet[T]) {
		from, held := c.heldSection(section)
		anchorIndex, anchorHeld := c.heldSection(anchor)
		if held == nil || anchorHeld == nil || held.id == anchorHeld.id {
			return
		}
		// Anchor's index shifts down when the moving section precedes it.
		if from < anchorIndex {
			anchorIndex--
		}
		to := anchorIndex
		if after {
			to++
		}
		if to == from {
			return
		}
		c.sections = slices.Delete(c.sections, from, from+1)
		c.sections = slices.Insert(c.sections, to, held)
		cs.addSection(held, from, types.ChangeDelete)
		cs.addSection(held, to, types.ChangeInsert)
	})
}

// ReloadSections emits one reload event per listed section still held, at its
// current index. No structural change occurs.
func (c *Container[T]) ReloadSections(sections ...*Section[T]) {
	sections = slices.Clone(sections)
	c.enqueue(func(cs *changeSet[T]) {
		seen := make(map[string]struct{}, len(sections))
		for _, sec := range sections {
			index, held := c.heldSection(sec)
			if held == nil {
				continue
			}
			if _, dup := seen[held.id]; dup {
				continue
			}
			seen[held.id] = struct{}{}
			cs.addSection(held, index, types.ChangeReload)
		}
	})
}

// applyInsertSections is the shared splice used by the append and insert
// variants and by NewWithSections. It filters each incoming section's items
// for global uniqueness and cross-section uniqueness within the batch
// (mutating the incoming sections in place, since the container takes
// ownership of them), drops sections left empty, splices the survivors in at
// the given position, and records one insert event per survivor at its final
// index. Runs with the write lock held.
func (c *Container[T]) applyInsertSections(incoming []*Section[T], at int, cs *changeSet[T]) {
	claimed := make(map[T]struct{})
	seen := make(map[string]struct{}, len(incoming))
	var survivors []*Section[T]
	for _, sec := range incoming {
		if sec == nil {
			continue
		}
		if _, dup := seen[sec.id]; dup {
			// repeated in this batch; re-filtering would clear the items the
			// first occurrence already kept
			continue
		}
		seen[sec.id] = struct{}{}
		if i := c.sectionIndex(sec); i >= 0 {
			// already held; a section cannot appear twice
			continue
		}
		var kept []T
		for _, item := range sec.items {
			if _, held := c.index[item]; held {
				continue
			}
			if _, dup := claimed[item]; dup {
				continue
			}
			claimed[item] = struct{}{}
			kept = append(kept, item)
		}
		sec.items = kept
		if len(kept) == 0 {
			continue
		}
		survivors = append(survivors, sec)
	}
	if len(survivors) == 0 {
		return
	}

	c.sections = slices.Insert(c.sections, at, survivors...)
	for i, sec := range survivors {
		for _, item := range sec.items {
			c.index[item] = sec
		}
		cs.addSection(sec, at+i, types.ChangeInsert)
	}
}
