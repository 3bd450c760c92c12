// Package testutil provides shared test fixtures for sectionstore: an
// embedded "universe" container with known contents, and a recording observer
// that captures change notifications in delivery order.
package testutil

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/sectionstore/sectionstore"
	"github.com/arthur-debert/sectionstore/types"
)

// EventKind distinguishes the four observer callbacks in a recording.
type EventKind string

const (
	EventWill    EventKind = "will"
	EventDid     EventKind = "did"
	EventItem    EventKind = "item"
	EventSection EventKind = "section"
)

// Event is one recorded observer callback.
type Event[T comparable] struct {
	Kind EventKind

	// Item callback fields
	Item T
	Old  *types.IndexPath
	New  *types.IndexPath

	// Section callback fields
	Section      *sectionstore.Section[T]
	SectionIndex int

	Change types.ChangeType
}

// String renders a stable one-line form used in failure messages.
func (e Event[T]) String() string {
	switch e.Kind {
	case EventWill, EventDid:
		return string(e.Kind)
	case EventItem:
		return fmt.Sprintf("item %s %v old=%v new=%v", e.Change, e.Item, e.Old, e.New)
	case EventSection:
		return fmt.Sprintf("section %s %q at %d", e.Change, e.Section.Name(), e.SectionIndex)
	}
	return string(e.Kind)
}

// Recorder is a ChangeObserver that appends every callback to an ordered log.
// It is safe for use with a live container; callbacks arrive on the pipeline
// goroutine while tests read the log after settling.
type Recorder[T comparable] struct {
	mu     sync.Mutex
	events []Event[T]
}

// NewRecorder returns an empty recorder. Register it with
// Container.AddObserver.
func NewRecorder[T comparable]() *Recorder[T] {
	return &Recorder[T]{}
}

func (r *Recorder[T]) WillChangeContent() {
	r.record(Event[T]{Kind: EventWill})
}

func (r *Recorder[T]) DidChangeContent() {
	r.record(Event[T]{Kind: EventDid})
}

func (r *Recorder[T]) ItemChanged(item T, old *types.IndexPath, change types.ChangeType, new *types.IndexPath) {
	r.record(Event[T]{Kind: EventItem, Item: item, Old: old, Change: change, New: new})
}

func (r *Recorder[T]) SectionChanged(section *sectionstore.Section[T], index int, change types.ChangeType) {
	r.record(Event[T]{Kind: EventSection, Section: section, SectionIndex: index, Change: change})
}

func (r *Recorder[T]) record(e Event[T]) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far, in delivery order.
func (r *Recorder[T]) Events() []Event[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event[T], len(r.events))
	copy(out, r.events)
	return out
}

// ItemEvents returns only the ItemChanged callbacks, in order.
func (r *Recorder[T]) ItemEvents() []Event[T] {
	return r.filter(EventItem)
}

// SectionEvents returns only the SectionChanged callbacks, in order.
func (r *Recorder[T]) SectionEvents() []Event[T] {
	return r.filter(EventSection)
}

// Count returns how many callbacks of the given kind were recorded.
func (r *Recorder[T]) Count(kind EventKind) int {
	return len(r.filter(kind))
}

// Reset discards everything recorded so far.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func (r *Recorder[T]) filter(kind EventKind) []Event[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event[T]
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

var _ sectionstore.ChangeObserver[string] = (*Recorder[string])(nil)
