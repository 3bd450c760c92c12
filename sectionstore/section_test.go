package sectionstore

import (
	"hash/maphash"
	"slices"
	"testing"
)

func TestNewSection(t *testing.T) {
	t.Run("DropsDuplicates", func(t *testing.T) {
		s := NewSection("nums", 1, 2, 2, 3, 1)
		if got := s.Items(); !slices.Equal(got, []int{1, 2, 3}) {
			t.Errorf("expected [1 2 3], got %v", got)
		}
	})

	t.Run("AssignsDistinctIDs", func(t *testing.T) {
		a := NewSection[int]("same")
		b := NewSection[int]("same")
		if a.ID() == b.ID() {
			t.Error("two sections share an identity token")
		}
	})

	t.Run("Labels", func(t *testing.T) {
		s := NewSectionWithIndexTitle[int]("Contacts", "C")
		if s.Name() != "Contacts" || s.IndexTitle() != "C" {
			t.Errorf("labels not preserved: %q %q", s.Name(), s.IndexTitle())
		}
	})
}

func TestSectionItemsIsACopy(t *testing.T) {
	s := NewSection("nums", 1, 2, 3)
	got := s.Items()
	got[0] = 99
	if s.items[0] != 1 {
		t.Error("Items() exposed internal storage")
	}
}

func TestSectionItemAt(t *testing.T) {
	s := NewSection("nums", 10, 20)
	if v, ok := s.ItemAt(1); !ok || v != 20 {
		t.Errorf("expected (20, true), got (%d, %v)", v, ok)
	}
	if _, ok := s.ItemAt(2); ok {
		t.Error("out-of-range index reported ok")
	}
	if _, ok := s.ItemAt(-1); ok {
		t.Error("negative index reported ok")
	}
}

func TestSectionEqualAndHash(t *testing.T) {
	seed := maphash.MakeSeed()

	t.Run("ContentEqualSectionsMatch", func(t *testing.T) {
		a := NewSectionWithIndexTitle("A", "x", 1, 2, 3)
		b := NewSectionWithIndexTitle("A", "x", 1, 2, 3)
		if !a.Equal(b) {
			t.Error("identical content compared unequal")
		}
		if a.Hash(seed) != b.Hash(seed) {
			t.Error("equal sections hash differently")
		}
	})

	t.Run("OrderMatters", func(t *testing.T) {
		a := NewSection("A", 1, 2, 3)
		b := NewSection("A", 3, 2, 1)
		if a.Equal(b) {
			t.Error("different orderings compared equal")
		}
	})

	t.Run("LabelsMatter", func(t *testing.T) {
		a := NewSection("A", 1)
		b := NewSection("B", 1)
		if a.Equal(b) {
			t.Error("different names compared equal")
		}
		c := NewSectionWithIndexTitle("A", "t", 1)
		if a.Equal(c) {
			t.Error("different index titles compared equal")
		}
	})

	t.Run("NilHandling", func(t *testing.T) {
		var nilSec *Section[int]
		if !nilSec.Equal(nil) {
			t.Error("nil should equal nil")
		}
		if NewSection[int]("A").Equal(nil) {
			t.Error("non-nil should not equal nil")
		}
	})
}

func TestSectionInsertPrimitives(t *testing.T) {
	t.Run("InsertBefore", func(t *testing.T) {
		s := NewSection("nums", 1, 3, 4)
		start, ok := s.insertBefore([]int{2}, 3)
		if !ok || start != 1 {
			t.Fatalf("expected (1, true), got (%d, %v)", start, ok)
		}
		if got := s.Items(); !slices.Equal(got, []int{1, 2, 3, 4}) {
			t.Errorf("expected [1 2 3 4], got %v", got)
		}
	})

	t.Run("InsertAfterLastAppends", func(t *testing.T) {
		s := NewSection("nums", 1, 2)
		start, ok := s.insertAfter([]int{3, 4}, 2)
		if !ok || start != 2 {
			t.Fatalf("expected (2, true), got (%d, %v)", start, ok)
		}
		if got := s.Items(); !slices.Equal(got, []int{1, 2, 3, 4}) {
			t.Errorf("expected [1 2 3 4], got %v", got)
		}
	})

	t.Run("AbsentAnchorIsNoop", func(t *testing.T) {
		s := NewSection("nums", 1, 2)
		if _, ok := s.insertBefore([]int{9}, 7); ok {
			t.Error("absent anchor accepted")
		}
		if got := s.Items(); !slices.Equal(got, []int{1, 2}) {
			t.Errorf("section changed on no-op: %v", got)
		}
	})
}

func TestSectionDelete(t *testing.T) {
	s := NewSection("nums", 1, 2, 3, 4, 5)
	removed := s.delete([]int{2, 9, 4})

	if got := s.Items(); !slices.Equal(got, []int{1, 3, 5}) {
		t.Errorf("expected [1 3 5], got %v", got)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removals, got %d", len(removed))
	}
	// pre-deletion indices, descending
	if removed[0].index != 3 || removed[0].item != 4 {
		t.Errorf("first removal should be item 4 at index 3, got %v at %d", removed[0].item, removed[0].index)
	}
	if removed[1].index != 1 || removed[1].item != 2 {
		t.Errorf("second removal should be item 2 at index 1, got %v at %d", removed[1].item, removed[1].index)
	}
}

func TestSectionMove(t *testing.T) {
	t.Run("SelfMoveRejected", func(t *testing.T) {
		s := NewSection("nums", 1, 2, 3)
		if _, _, ok := s.moveBefore(2, 2); ok {
			t.Error("self-relative move accepted")
		}
		if got := s.Items(); !slices.Equal(got, []int{1, 2, 3}) {
			t.Errorf("ordering disturbed: %v", got)
		}
	})

	t.Run("MoveBeforeEarlierAnchor", func(t *testing.T) {
		s := NewSection("nums", 1, 2, 3, 4)
		from, to, ok := s.moveBefore(4, 2)
		if !ok || from != 3 || to != 1 {
			t.Fatalf("expected (3, 1, true), got (%d, %d, %v)", from, to, ok)
		}
		if got := s.Items(); !slices.Equal(got, []int{1, 4, 2, 3}) {
			t.Errorf("expected [1 4 2 3], got %v", got)
		}
	})

	t.Run("MoveAfterLaterAnchorAccountsForRemoval", func(t *testing.T) {
		s := NewSection("nums", 1, 2, 3, 4)
		from, to, ok := s.moveAfter(1, 3)
		if !ok || from != 0 || to != 2 {
			t.Fatalf("expected (0, 2, true), got (%d, %d, %v)", from, to, ok)
		}
		if got := s.Items(); !slices.Equal(got, []int{2, 3, 1, 4}) {
			t.Errorf("expected [2 3 1 4], got %v", got)
		}
	})

	t.Run("MoveToCurrentPositionIsNoop", func(t *testing.T) {
		s := NewSection("nums", 1, 2, 3)
		// 1 already precedes 2
		if _, _, ok := s.moveBefore(1, 2); ok {
			t.Error("no-displacement move accepted")
		}
		// 2 already follows 1
		if _, _, ok := s.moveAfter(2, 1); ok {
			t.Error("no-displacement move accepted")
		}
	})

	t.Run("MoveAfterLastAppends", func(t *testing.T) {
		s := NewSection("nums", 1, 2, 3)
		from, to, ok := s.moveAfter(1, 3)
		if !ok || from != 0 || to != 2 {
			t.Fatalf("expected (0, 2, true), got (%d, %d, %v)", from, to, ok)
		}
		if got := s.Items(); !slices.Equal(got, []int{2, 3, 1}) {
			t.Errorf("expected [2 3 1], got %v", got)
		}
	})
}

func TestSectionReplace(t *testing.T) {
	s := NewSection("nums", 1, 2, 3)
	index, ok := s.replace(2, 9)
	if !ok || index != 1 {
		t.Fatalf("expected (1, true), got (%d, %v)", index, ok)
	}
	if got := s.Items(); !slices.Equal(got, []int{1, 9, 3}) {
		t.Errorf("expected [1 9 3], got %v", got)
	}
	if _, ok := s.replace(42, 43); ok {
		t.Error("absent item accepted")
	}
}
