package sectionstore

import (
	"slices"

	"github.com/arthur-debert/sectionstore/types"
)

// Item mutations. Every method here enqueues on the container's pipeline and
// returns immediately; the described effect is the eventual, serialized one.
// A mutation whose target cannot be located, or whose input filters down to
// nothing, is absorbed silently: the pipeline entry still runs and completes
// (so barriers sequence correctly behind it) but no state changes and no
// observer events fire.

// AppendItems adds items to the end of the given section. Items already
// present anywhere in the container are skipped, as are duplicates within the
// call; one insert event fires per item actually appended. No-op when the
// section is not held by this container.
func (c *Container[T]) AppendItems(section *Section[T], items ...T) {
	items = slices.Clone(items)
	c.enqueue(func(cs *changeSet[T]) {
		si, held := c.heldSection(section)
		if held == nil {
			return
		}
		fresh := c.filterAbsent(items)
		if len(fresh) == 0 {
			return
		}
		base := held.Len()
		held.insertAt(base, fresh)
		for i, item := range fresh {
			c.index[item] = held
			cs.addItem(item, nil, types.ChangeInsert, pathPtr(si, base+i))
		}
	})
}

// InsertItemsBefore inserts items contiguously before the anchor item's
// current position, in whichever section holds the anchor. No-op when the
// anchor is not in the container.
func (c *Container[T]) InsertItemsBefore(anchor T, items ...T) {
	c.insertItems(items, anchor, false)
}

// InsertItemsAfter inserts items contiguously after the anchor item's current
// position. Inserting after the last item of a section appends to it.
func (c *Container[T]) InsertItemsAfter(anchor T, items ...T) {
	c.insertItems(items, anchor, true)
}

func (c *Container[T]) insertItems(items []T, anchor T, after bool) {
	items = slices.Clone(items)
	c.enqueue(func(cs *changeSet[T]) {
		sec, held := c.index[anchor]
		if !held {
			return
		}
		fresh := c.filterAbsent(items)
		if len(fresh) == 0 {
			return
		}
		var start int
		var ok bool
		if after {
			start, ok = sec.insertAfter(fresh, anchor)
		} else {
			start, ok = sec.insertBefore(fresh, anchor)
		}
		if !ok {
			return
		}
		si := c.sectionIndex(sec)
		for i, item := range fresh {
			c.index[item] = sec
			cs.addItem(item, nil, types.ChangeInsert, pathPtr(si, start+i))
		}
	})
}

// DeleteItems removes the given item values wherever they occur. Delete events
// are reported in strictly descending (section, item) order against the
// pre-deletion indexing, so a consumer applying them one by one never sees a
// stale path. Sections emptied by the deletion are dropped, with their delete
// events following the item events in descending section order.
func (c *Container[T]) DeleteItems(items ...T) {
	items = slices.Clone(items)
	c.enqueue(func(cs *changeSet[T]) {
		targets := dedupe(items)
		if len(targets) == 0 {
			return
		}

		bySection := make(map[*Section[T]][]T)
		for _, item := range targets {
			if sec, held := c.index[item]; held {
				bySection[sec] = append(bySection[sec], item)
			}
		}
		if len(bySection) == 0 {
			return
		}

		type deletion struct {
			item T
			path types.IndexPath
		}
		var deletions []deletion
		var emptied []sectionEvent[T]
		for si, sec := range c.sections {
			toDelete, hit := bySection[sec]
			if !hit {
				continue
			}
			for _, r := range sec.delete(toDelete) {
				delete(c.index, r.item)
				deletions = append(deletions, deletion{item: r.item, path: types.NewIndexPath(si, r.index)})
			}
			if sec.Len() == 0 {
				emptied = append(emptied, sectionEvent[T]{section: sec, index: si, change: types.ChangeDelete})
			}
		}

		slices.SortFunc(deletions, func(a, b deletion) int {
			return b.path.Compare(a.path)
		})
		for _, d := range deletions {
			path := d.path
			cs.addItem(d.item, &path, types.ChangeDelete, nil)
		}

		// Prune exactly the sections this deletion emptied, back to front so
		// the recorded indices stay valid while removing.
		for i := len(emptied) - 1; i >= 0; i-- {
			cs.addSection(emptied[i].section, emptied[i].index, types.ChangeDelete)
			c.sections = slices.Delete(c.sections, emptied[i].index, emptied[i].index+1)
		}
	})
}

// DeleteAllItems clears the container, emitting one section delete per
// previously held section in ascending original index order.
func (c *Container[T]) DeleteAllItems() {
	c.enqueue(func(cs *changeSet[T]) {
		for i, sec := range c.sections {
			cs.addSection(sec, i, types.ChangeDelete)
		}
		c.sections = nil
		clear(c.index)
	})
}

// MoveItemBefore relocates item so it precedes anchor, crossing sections when
// the two live in different sections. No-op when item equals anchor, when
// either is absent, or when the computed destination equals the origin.
// Exactly one move event fires, carrying the old and new index paths.
func (c *Container[T]) MoveItemBefore(item, anchor T) {
	c.moveItem(item, anchor, false)
}

// MoveItemAfter relocates item so it follows anchor. Moving after the last
// item of the anchor's section resolves to an append, never an out-of-range
// insert.
func (c *Container[T]) MoveItemAfter(item, anchor T) {
	c.moveItem(item, anchor, true)
}

func (c *Container[T]) moveItem(item, anchor T, after bool) {
	c.enqueue(func(cs *changeSet[T]) {
		if item == anchor {
			return
		}
		src, held := c.index[item]
		dst, anchorHeld := c.index[anchor]
		if !held || !anchorHeld {
			return
		}
		srcIndex := c.sectionIndex(src)

		if src == dst {
			var from, to int
			var ok bool
			if after {
				from, to, ok = src.moveAfter(item, anchor)
			} else {
				from, to, ok = src.moveBefore(item, anchor)
			}
			if !ok {
				return
			}
			cs.addItem(item, pathPtr(srcIndex, from), types.ChangeMove, pathPtr(srcIndex, to))
			return
		}

		// Cross-section: remove from the source, then insert relative to the
		// anchor's position in its own section. The source section is left in
		// place even when emptied; only deletions prune sections.
		from := src.IndexOf(item)
		src.removeAt(from)
		to := dst.IndexOf(anchor)
		if after {
			to++
		}
		dst.insertAt(to, []T{item})
		c.index[item] = dst
		cs.addItem(item, pathPtr(srcIndex, from), types.ChangeMove, pathPtr(c.sectionIndex(dst), to))
	})
}

// ReplaceItem substitutes replacement for item at item's current position and
// emits one reload event at that unchanged index path. No-op when item is
// absent, when replacement already exists elsewhere in the container (which
// would break global uniqueness), or when the two values are the same.
func (c *Container[T]) ReplaceItem(item, replacement T) {
	c.enqueue(func(cs *changeSet[T]) {
		if item == replacement {
			return
		}
		sec, held := c.index[item]
		if !held {
			return
		}
		if _, taken := c.index[replacement]; taken {
			return
		}
		idx, ok := sec.replace(item, replacement)
		if !ok {
			return
		}
		delete(c.index, item)
		c.index[replacement] = sec
		si := c.sectionIndex(sec)
		cs.addItem(replacement, pathPtr(si, idx), types.ChangeReload, pathPtr(si, idx))
	})
}

// ReloadItems emits one reload event per listed item still present in the
// container, at its current index path. Items not present are ignored; no
// structural change occurs.
func (c *Container[T]) ReloadItems(items ...T) {
	c.refreshItems(items, types.ChangeReload)
}

// ReconfigureItems is the softer variant of ReloadItems: it emits update
// events, signaling consumers to refresh content in place rather than redraw.
func (c *Container[T]) ReconfigureItems(items ...T) {
	c.refreshItems(items, types.ChangeUpdate)
}

func (c *Container[T]) refreshItems(items []T, change types.ChangeType) {
	items = slices.Clone(items)
	c.enqueue(func(cs *changeSet[T]) {
		for _, item := range dedupe(items) {
			sec, held := c.index[item]
			if !held {
				continue
			}
			si := c.sectionIndex(sec)
			ii := sec.IndexOf(item)
			cs.addItem(item, pathPtr(si, ii), change, pathPtr(si, ii))
		}
	})
}

// filterAbsent keeps the items not yet present anywhere in the container,
// dropping duplicates within the batch. Order is preserved. Runs with the
// write lock held.
func (c *Container[T]) filterAbsent(items []T) []T {
	seen := make(map[T]struct{}, len(items))
	var fresh []T
	for _, item := range items {
		if _, held := c.index[item]; held {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		fresh = append(fresh, item)
	}
	return fresh
}

// dedupe drops repeated values, keeping first occurrences in order.
func dedupe[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	var out []T
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
