package sectionstore

import (
	"slices"
	"sync"

	"github.com/arthur-debert/sectionstore/types"
)

// ChangeObserver receives the container's change notifications. For every
// mutation that has an effect the container calls WillChangeContent once, then
// one ItemChanged or SectionChanged per structural change, then
// DidChangeContent once. Mutations that turn out to be no-ops produce no calls
// at all.
//
// Callbacks run on the mutation pipeline's drain goroutine, one mutation at a
// time. An observer must not synchronously wait on the pipeline from inside a
// callback; calling a container mutation method from a callback is safe, since
// mutations only enqueue and return.
type ChangeObserver[T comparable] interface {
	// WillChangeContent announces that a batch of change events follows.
	WillChangeContent()

	// DidChangeContent announces that the current batch is complete and the
	// container state is consistent with everything reported.
	DidChangeContent()

	// ItemChanged reports one structural change to a single item. old is nil
	// for inserts, new is nil for deletes, and both are set (and equal) for
	// updates and reloads.
	ItemChanged(item T, old *types.IndexPath, change types.ChangeType, new *types.IndexPath)

	// SectionChanged reports one structural change to a whole section at the
	// given index. For deletes the index is the section's position before
	// removal; for inserts, its final position.
	SectionChanged(section *Section[T], index int, change types.ChangeType)
}

// ObserverBase is a no-op ChangeObserver for embedding, so implementations can
// override only the callbacks they care about.
type ObserverBase[T comparable] struct{}

func (ObserverBase[T]) WillChangeContent() {}

func (ObserverBase[T]) DidChangeContent() {}

func (ObserverBase[T]) ItemChanged(T, *types.IndexPath, types.ChangeType, *types.IndexPath) {}

func (ObserverBase[T]) SectionChanged(*Section[T], int, types.ChangeType) {}

var _ ChangeObserver[int] = ObserverBase[int]{}

// observerList is a copy-on-write observer registry. Delivery iterates over an
// immutable snapshot, so observers may be added or removed while a batch is
// being delivered without invalidating the iteration.
type observerList[T comparable] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []observerEntry[T]
}

type observerEntry[T comparable] struct {
	id       uint64
	observer ChangeObserver[T]
}

// add registers an observer and returns a function that removes it. Removing
// twice is harmless.
func (l *observerList[T]) add(observer ChangeObserver[T]) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.entries = append(slices.Clone(l.entries), observerEntry[T]{id: id, observer: observer})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		i := slices.IndexFunc(l.entries, func(e observerEntry[T]) bool { return e.id == id })
		if i < 0 {
			return
		}
		l.entries = slices.Delete(slices.Clone(l.entries), i, i+1)
	}
}

// snapshot returns the current observers in registration order.
func (l *observerList[T]) snapshot() []ChangeObserver[T] {
	l.mu.Lock()
	entries := l.entries
	l.mu.Unlock()

	observers := make([]ChangeObserver[T], len(entries))
	for i, e := range entries {
		observers[i] = e.observer
	}
	return observers
}

// itemEvent and sectionEvent are the internal forms accumulated by a mutation
// before delivery. A changeSet delivers item events first, then section
// events, which matches every ordering the container promises: descending
// item deletes precede their emptied sections' deletes, and section-only
// mutations carry no item events at all.
type itemEvent[T comparable] struct {
	item   T
	change types.ChangeType
	old    *types.IndexPath
	new    *types.IndexPath
}

type sectionEvent[T comparable] struct {
	section *Section[T]
	index   int
	change  types.ChangeType
}

type changeSet[T comparable] struct {
	items    []itemEvent[T]
	sections []sectionEvent[T]
}

func (cs *changeSet[T]) empty() bool {
	return len(cs.items) == 0 && len(cs.sections) == 0
}

func (cs *changeSet[T]) addItem(item T, old *types.IndexPath, change types.ChangeType, new *types.IndexPath) {
	cs.items = append(cs.items, itemEvent[T]{item: item, change: change, old: old, new: new})
}

func (cs *changeSet[T]) addSection(section *Section[T], index int, change types.ChangeType) {
	cs.sections = append(cs.sections, sectionEvent[T]{section: section, index: index, change: change})
}

// publish delivers a change set to every registered observer. No-op change
// sets are swallowed whole: observers see neither WillChangeContent nor
// DidChangeContent for a mutation that had no effect.
func (c *Container[T]) publish(cs changeSet[T]) {
	if cs.empty() {
		return
	}
	for _, observer := range c.observers.snapshot() {
		observer.WillChangeContent()
		for _, e := range cs.items {
			observer.ItemChanged(e.item, e.old, e.change, e.new)
		}
		for _, e := range cs.sections {
			observer.SectionChanged(e.section, e.index, e.change)
		}
		observer.DidChangeContent()
	}
}

func pathPtr(section, item int) *types.IndexPath {
	p := types.NewIndexPath(section, item)
	return &p
}
