package sectionstore_test

import (
	"testing"

	"github.com/arthur-debert/sectionstore/sectionstore"
	"github.com/arthur-debert/sectionstore/testutil"
	"github.com/arthur-debert/sectionstore/types"
)

func TestObserverBatching(t *testing.T) {
	t.Run("OneWillDidPairPerEffectiveMutation", func(t *testing.T) {
		container, sec, recorder := newRecorded(t, 1, 2)

		container.AppendItems(sec, 3)
		container.DeleteItems(1)
		container.Settle()

		if got := recorder.Count(testutil.EventWill); got != 2 {
			t.Errorf("expected 2 WillChangeContent calls, got %d", got)
		}
		if got := recorder.Count(testutil.EventDid); got != 2 {
			t.Errorf("expected 2 DidChangeContent calls, got %d", got)
		}

		// Each batch is bracketed: will, payload, did.
		events := recorder.Events()
		if events[0].Kind != testutil.EventWill || events[len(events)-1].Kind != testutil.EventDid {
			t.Errorf("batch brackets out of place: %v", events)
		}
	})

	t.Run("NoopsAreSilent", func(t *testing.T) {
		container, sec, recorder := newRecorded(t, 1, 2)

		container.AppendItems(sec, 1, 2)    // all duplicates
		container.DeleteItems(99)           // absent
		container.MoveItemBefore(1, 1)      // self-anchor
		container.ReplaceItem(99, 100)      // absent
		container.ReloadItems(99)           // absent
		container.Settle()

		if got := recorder.Count(testutil.EventWill); got != 0 {
			t.Errorf("no-op mutations produced %d WillChangeContent calls", got)
		}
		if got := len(recorder.Events()); got != 0 {
			t.Errorf("no-op mutations produced %d callbacks", got)
		}
	})

	t.Run("ItemEventsPrecedeSectionEvents", func(t *testing.T) {
		container, universe := testutil.LoadUniverse(t)

		// Emptying Archive deletes its items and prunes the section in one batch.
		container.DeleteItems("Nils Berg", "Rosa Lindqvist")
		container.Settle()

		events := universe.Recorder.Events()
		sawSection := false
		for _, e := range events {
			switch e.Kind {
			case testutil.EventSection:
				sawSection = true
			case testutil.EventItem:
				if sawSection {
					t.Fatalf("item event after a section event: %v", events)
				}
			}
		}
		if !sawSection {
			t.Fatal("expected a section delete for the emptied section")
		}
	})
}

func TestMultipleObservers(t *testing.T) {
	container, sec, first := newRecorded(t, 1, 2)
	second := testutil.NewRecorder[int]()
	container.AddObserver(second)

	container.AppendItems(sec, 3)
	container.Settle()

	a, b := first.Events(), second.Events()
	if len(a) != len(b) {
		t.Fatalf("observers saw different event counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Change != b[i].Change {
			t.Errorf("event %d diverged: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRemoveObserver(t *testing.T) {
	t.Run("RemovedObserverStopsReceiving", func(t *testing.T) {
		container, sec, _ := newRecorded(t, 1, 2)
		recorder := testutil.NewRecorder[int]()
		remove := container.AddObserver(recorder)

		container.AppendItems(sec, 3)
		container.Settle()
		seen := len(recorder.Events())
		if seen == 0 {
			t.Fatal("observer never received anything")
		}

		remove()
		container.AppendItems(sec, 4)
		container.Settle()

		if got := len(recorder.Events()); got != seen {
			t.Errorf("removed observer kept receiving: %d events, had %d", got, seen)
		}
	})

	t.Run("DoubleRemoveIsHarmless", func(t *testing.T) {
		container := sectionstore.New[int]()
		remove := container.AddObserver(testutil.NewRecorder[int]())
		remove()
		remove()
	})

	t.Run("RemoveDuringDeliveryTakesEffectNextBatch", func(t *testing.T) {
		container, sec, _ := newRecorded(t, 1, 2)

		self := &selfRemovingObserver{}
		self.remove = container.AddObserver(self)

		container.AppendItems(sec, 3)
		container.AppendItems(sec, 4)
		container.Settle()

		if got := self.batches; got != 1 {
			t.Errorf("expected exactly one delivered batch, got %d", got)
		}
	})
}

// selfRemovingObserver unregisters itself from inside its first
// WillChangeContent callback.
type selfRemovingObserver struct {
	sectionstore.ObserverBase[int]
	remove  func()
	batches int
}

func (o *selfRemovingObserver) WillChangeContent() {
	o.batches++
	o.remove()
}

func TestObserverEnqueuesFromCallback(t *testing.T) {
	container, sec, recorder := newRecorded(t, 1, 2)

	chained := &chainingObserver{container: container, section: sec}
	container.AddObserver(chained)

	container.AppendItems(sec, 3)
	// The chained append is enqueued during the first batch's notification,
	// behind the first barrier; a second barrier sequences after it.
	container.Settle()
	container.Settle()

	if !sec.Contains(99) {
		t.Error("mutation enqueued from a callback never applied")
	}

	var sawFollowup bool
	for _, e := range recorder.ItemEvents() {
		if e.Item == 99 && e.Change == types.ChangeInsert {
			sawFollowup = true
		}
	}
	if !sawFollowup {
		t.Error("follow-up mutation produced no insert event")
	}
}

// chainingObserver appends one extra item the first time it sees a batch
// complete, exercising mutation from inside a callback.
type chainingObserver struct {
	sectionstore.ObserverBase[int]
	container *sectionstore.Container[int]
	section   *sectionstore.Section[int]
	fired     bool
}

func (o *chainingObserver) DidChangeContent() {
	if o.fired {
		return
	}
	o.fired = true
	o.container.AppendItems(o.section, 99)
}
