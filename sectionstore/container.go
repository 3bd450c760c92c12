package sectionstore

import (
	"github.com/arthur-debert/sectionstore/sectionstore/pipe"
	"github.com/arthur-debert/sectionstore/types"
)

// Container owns an ordered list of sections and enforces global item
// uniqueness: an item value occurs at most once across all sections of a
// container at any committed state.
//
// Queries are synchronous and report the currently committed state. Mutations
// are asynchronous: calling a mutation method enqueues it on the container's
// FIFO pipeline and returns immediately, and the structural change plus its
// observer notifications happen later, strictly in enqueue order. A caller
// that needs a read reflecting a burst of mutations must sequence it with
// RunAfterPending or Settle; a bare query racing recently-enqueued mutations
// legitimately sees the older state.
type Container[T comparable] struct {
	locks     *lockManager
	pipe      *pipe.Pipe
	observers *observerList[T]

	// sections and index are owned by the pipeline's drain step; all access
	// goes through locks.
	sections []*Section[T]
	index    map[T]*Section[T]
}

// New creates an empty container.
func New[T comparable]() *Container[T] {
	return &Container[T]{
		locks:     newLockManager(),
		pipe:      pipe.New(),
		observers: &observerList[T]{},
		index:     make(map[T]*Section[T]),
	}
}

// NewWithSections creates a container pre-loaded with the given sections,
// applying the same filtering as AppendSections: items already claimed by an
// earlier section are dropped from later ones, and sections left empty are not
// loaded. No change events are emitted for the initial load.
func NewWithSections[T comparable](sections ...*Section[T]) *Container[T] {
	c := New[T]()
	var discard changeSet[T]
	c.applyInsertSections(sections, len(c.sections), &discard)
	return c
}

// AddObserver registers an observer for change notifications and returns a
// function that unregisters it. Observers added while a notification batch is
// in flight start receiving events with the next batch.
func (c *Container[T]) AddObserver(observer ChangeObserver[T]) (remove func()) {
	return c.observers.add(observer)
}

// RunAfterPending enqueues fn behind every mutation enqueued so far. When fn
// runs, it observes the cumulative effect of all of them; fn runs on the
// pipeline goroutine and must not block on the pipeline itself.
func (c *Container[T]) RunAfterPending(fn func()) {
	c.pipe.Barrier(fn)
}

// Settle blocks until every previously enqueued mutation has been applied and
// notified. It must not be called from an observer callback.
func (c *Container[T]) Settle() {
	c.pipe.Wait()
}

// Queries. All of them are bounds-checked and absence-tolerant: out-of-range
// indices and unknown items report a false ok rather than panicking.

// ItemAt returns the item at the given index path.
func (c *Container[T]) ItemAt(path types.IndexPath) (item T, ok bool) {
	c.locks.execute(readOperation, func() {
		if path.Section < 0 || path.Section >= len(c.sections) {
			return
		}
		item, ok = c.sections[path.Section].ItemAt(path.Item)
	})
	return item, ok
}

// IndexPathOf locates an item. Sections are scanned in order; by the
// uniqueness invariant an item has at most one position.
func (c *Container[T]) IndexPathOf(item T) (path types.IndexPath, ok bool) {
	c.locks.execute(readOperation, func() {
		sec, held := c.index[item]
		if !held {
			return
		}
		path = types.NewIndexPath(c.sectionIndex(sec), sec.IndexOf(item))
		ok = true
	})
	return path, ok
}

// Find returns the index path of the first item matching the predicate,
// scanning sections in order and items in order within each section.
func (c *Container[T]) Find(match func(item T) bool) (path types.IndexPath, ok bool) {
	c.locks.execute(readOperation, func() {
		for si, sec := range c.sections {
			for ii, item := range sec.items {
				if match(item) {
					path = types.NewIndexPath(si, ii)
					ok = true
					return
				}
			}
		}
	})
	return path, ok
}

// Enumerate visits every (index path, item) pair in section-then-item order.
// There is no early exit; visit runs for every pair.
func (c *Container[T]) Enumerate(visit func(path types.IndexPath, item T)) {
	c.locks.execute(readOperation, func() {
		for si, sec := range c.sections {
			for ii, item := range sec.items {
				visit(types.NewIndexPath(si, ii), item)
			}
		}
	})
}

// SectionCount returns the number of sections.
func (c *Container[T]) SectionCount() int {
	var n int
	c.locks.execute(readOperation, func() {
		n = len(c.sections)
	})
	return n
}

// ItemCount returns the number of items in the section at the given index.
// ok is false when the index is out of range.
func (c *Container[T]) ItemCount(sectionIndex int) (n int, ok bool) {
	c.locks.execute(readOperation, func() {
		if sectionIndex < 0 || sectionIndex >= len(c.sections) {
			return
		}
		n = c.sections[sectionIndex].Len()
		ok = true
	})
	return n, ok
}

// Items returns every item in the container in section-then-item order.
func (c *Container[T]) Items() []T {
	var items []T
	c.locks.execute(readOperation, func() {
		for _, sec := range c.sections {
			items = append(items, sec.items...)
		}
	})
	return items
}

// Sections returns the held sections in order. The slice is a copy; the
// sections themselves are the live instances.
func (c *Container[T]) Sections() []*Section[T] {
	var sections []*Section[T]
	c.locks.execute(readOperation, func() {
		sections = append(sections, c.sections...)
	})
	return sections
}

// SectionAt returns the section at the given index.
func (c *Container[T]) SectionAt(index int) (section *Section[T], ok bool) {
	c.locks.execute(readOperation, func() {
		if index < 0 || index >= len(c.sections) {
			return
		}
		section = c.sections[index]
		ok = true
	})
	return section, ok
}

// Internal helpers. These run with the write lock held (or during construction
// before the container is shared) and never lock themselves.

// sectionIndex returns the position of a held section, or -1. Sections are
// matched by identity token, so content churn does not affect the result.
func (c *Container[T]) sectionIndex(section *Section[T]) int {
	if section == nil {
		return -1
	}
	for i, held := range c.sections {
		if held.id == section.id {
			return i
		}
	}
	return -1
}

// heldSection resolves the caller's section argument to the instance the
// container holds, matching by identity first and content equality second. The
// content fallback is what lets a caller delete a section it reconstructed
// value-for-value rather than retained a pointer to.
func (c *Container[T]) heldSection(section *Section[T]) (int, *Section[T]) {
	if section == nil {
		return -1, nil
	}
	if i := c.sectionIndex(section); i >= 0 {
		return i, c.sections[i]
	}
	for i, held := range c.sections {
		if held.Equal(section) {
			return i, held
		}
	}
	return -1, nil
}

// enqueue wires a mutation body into the pipeline: apply runs under the write
// lock and accumulates events into a change set, which is then published on
// the same pipeline step.
func (c *Container[T]) enqueue(apply func(cs *changeSet[T])) {
	var cs changeSet[T]
	c.pipe.Enqueue(func() {
		c.locks.execute(writeOperation, func() {
			apply(&cs)
		})
	}, func() {
		c.publish(cs)
	})
}
