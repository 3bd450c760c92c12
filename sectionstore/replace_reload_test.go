package sectionstore_test

import (
	"slices"
	"testing"

	"github.com/arthur-debert/sectionstore/testutil"
	"github.com/arthur-debert/sectionstore/types"
)

func TestReplaceItem(t *testing.T) {
	t.Run("SubstitutesInPlaceWithOneReload", func(t *testing.T) {
		container, section, recorder := newRecorded(t, 1, 2, 3)

		container.ReplaceItem(2, 9)
		container.Settle()

		if got := section.Items(); !slices.Equal(got, []int{1, 9, 3}) {
			t.Errorf("expected [1 9 3], got %v", got)
		}
		if _, ok := container.IndexPathOf(2); ok {
			t.Error("replaced item still resolvable")
		}
		if path, _ := container.IndexPathOf(9); path != types.NewIndexPath(0, 1) {
			t.Errorf("replacement at %v, expected [0, 1]", path)
		}

		events := recorder.ItemEvents()
		if len(events) != 1 {
			t.Fatalf("expected exactly 1 event, got %d", len(events))
		}
		e := events[0]
		if e.Change != types.ChangeReload {
			t.Errorf("expected reload, got %s", e.Change)
		}
		if e.Item != 9 {
			t.Errorf("event should carry the replacement, got %d", e.Item)
		}
		if e.Old == nil || e.New == nil || *e.Old != *e.New || *e.New != types.NewIndexPath(0, 1) {
			t.Errorf("expected old == new == [0, 1], got %v / %v", e.Old, e.New)
		}
	})

	t.Run("AbsentItemIsNoop", func(t *testing.T) {
		container, _, recorder := newRecorded(t, 1)

		container.ReplaceItem(7, 8)
		container.Settle()

		if events := recorder.Events(); len(events) != 0 {
			t.Errorf("replacing an absent item produced events: %v", events)
		}
	})

	t.Run("ReplacementAlreadyHeldIsNoop", func(t *testing.T) {
		container, universe := testutil.LoadUniverse(t)

		// Would put Gabriel Ortiz at two paths; must be absorbed.
		container.ReplaceItem(universe.FirstFavorite, universe.FirstWorker)
		container.Settle()

		if path, _ := container.IndexPathOf(universe.FirstFavorite); path != types.NewIndexPath(0, 0) {
			t.Errorf("item moved to %v", path)
		}
		if events := universe.Recorder.Events(); len(events) != 0 {
			t.Errorf("uniqueness-violating replace produced events: %v", events)
		}
	})

	t.Run("SelfReplaceIsNoop", func(t *testing.T) {
		container, _, recorder := newRecorded(t, 1, 2)

		container.ReplaceItem(2, 2)
		container.Settle()

		if events := recorder.Events(); len(events) != 0 {
			t.Errorf("self-replace produced events: %v", events)
		}
	})
}

func TestReloadItems(t *testing.T) {
	container, _, recorder := newRecorded(t, 1, 2, 3)

	container.ReloadItems(3, 1, 7)
	container.Settle()

	events := recorder.ItemEvents()
	if len(events) != 2 {
		t.Fatalf("expected 2 reload events (7 is absent), got %d", len(events))
	}
	for _, e := range events {
		if e.Change != types.ChangeReload {
			t.Errorf("expected reload, got %s", e.Change)
		}
		if e.Old == nil || e.New == nil || *e.Old != *e.New {
			t.Errorf("reload paths should match: %v / %v", e.Old, e.New)
		}
	}
	if *events[0].Old != types.NewIndexPath(0, 2) || *events[1].Old != types.NewIndexPath(0, 0) {
		t.Errorf("events should follow input order: %v, %v", events[0].Old, events[1].Old)
	}

	// no structural change
	if got := container.Items(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("reload changed content: %v", got)
	}
}

func TestReconfigureItems(t *testing.T) {
	container, _, recorder := newRecorded(t, 1, 2)

	container.ReconfigureItems(2)
	container.Settle()

	events := recorder.ItemEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Change != types.ChangeUpdate {
		t.Errorf("reconfigure must tag update, got %s", events[0].Change)
	}
}

func TestReloadNothingHeldIsNoop(t *testing.T) {
	container, _, recorder := newRecorded(t, 1)

	container.ReloadItems(8, 9)
	container.ReconfigureItems(8)
	container.Settle()

	if events := recorder.Events(); len(events) != 0 {
		t.Errorf("reloading absent items produced events: %v", events)
	}
}
