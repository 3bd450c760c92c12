package sectionstore_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/arthur-debert/sectionstore/sectionstore"
	"github.com/arthur-debert/sectionstore/testutil"
)

func TestItemAt(t *testing.T) {
	container, universe := testutil.LoadUniverse(t)

	t.Run("InRange", func(t *testing.T) {
		item, ok := container.ItemAt(sectionstore.NewIndexPath(0, 0))
		if !ok || item != universe.FirstFavorite {
			t.Errorf("expected %q, got (%q, %v)", universe.FirstFavorite, item, ok)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		paths := []sectionstore.IndexPath{
			sectionstore.NewIndexPath(-1, 0),
			sectionstore.NewIndexPath(0, -1),
			sectionstore.NewIndexPath(4, 0),
			sectionstore.NewIndexPath(0, 3),
		}
		for _, p := range paths {
			if _, ok := container.ItemAt(p); ok {
				t.Errorf("path %v out of range but reported ok", p)
			}
		}
	})
}

func TestIndexPathOf(t *testing.T) {
	container, universe := testutil.LoadUniverse(t)

	path, ok := container.IndexPathOf(universe.LastWorker)
	if !ok || path != sectionstore.NewIndexPath(2, 4) {
		t.Errorf("expected [2, 4], got (%v, %v)", path, ok)
	}

	if _, ok := container.IndexPathOf("Nobody Here"); ok {
		t.Error("unknown item resolved to a path")
	}
}

func TestFind(t *testing.T) {
	container, _ := testutil.LoadUniverse(t)

	t.Run("FirstMatchInScanOrder", func(t *testing.T) {
		// Several Holts exist; the scan must return the first in section order.
		path, ok := container.Find(func(item string) bool {
			return strings.HasSuffix(item, "Holt")
		})
		if !ok || path != sectionstore.NewIndexPath(1, 0) {
			t.Errorf("expected [1, 0], got (%v, %v)", path, ok)
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		if _, ok := container.Find(func(string) bool { return false }); ok {
			t.Error("predicate matching nothing reported a path")
		}
	})
}

func TestEnumerate(t *testing.T) {
	container, _ := testutil.LoadUniverse(t)

	var paths []sectionstore.IndexPath
	var items []string
	container.Enumerate(func(path sectionstore.IndexPath, item string) {
		paths = append(paths, path)
		items = append(items, item)
	})

	if len(items) != 14 {
		t.Fatalf("expected 14 visits, got %d", len(items))
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1].Compare(paths[i]) >= 0 {
			t.Fatalf("visit order not ascending: %v then %v", paths[i-1], paths[i])
		}
	}
	if !slices.Equal(items, container.Items()) {
		t.Error("Enumerate order disagrees with Items order")
	}
}

func TestCounts(t *testing.T) {
	container, _ := testutil.LoadUniverse(t)

	if got := container.SectionCount(); got != 4 {
		t.Errorf("expected 4 sections, got %d", got)
	}
	if n, ok := container.ItemCount(2); !ok || n != 5 {
		t.Errorf("expected (5, true), got (%d, %v)", n, ok)
	}
	if _, ok := container.ItemCount(4); ok {
		t.Error("out-of-range section index reported ok")
	}
	if _, ok := container.ItemCount(-1); ok {
		t.Error("negative section index reported ok")
	}
}

func TestSectionAccessors(t *testing.T) {
	container, universe := testutil.LoadUniverse(t)

	sections := container.Sections()
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}
	if sections[1] != universe.Family {
		t.Error("Sections returned a different instance than the one loaded")
	}

	sec, ok := container.SectionAt(3)
	if !ok || sec != universe.Archive {
		t.Errorf("expected Archive at index 3")
	}
	if _, ok := container.SectionAt(99); ok {
		t.Error("out-of-range section index reported ok")
	}
}

func TestEmptyContainer(t *testing.T) {
	container := sectionstore.New[string]()

	if got := container.SectionCount(); got != 0 {
		t.Errorf("expected 0 sections, got %d", got)
	}
	if items := container.Items(); len(items) != 0 {
		t.Errorf("expected no items, got %v", items)
	}
	if _, ok := container.ItemAt(sectionstore.NewIndexPath(0, 0)); ok {
		t.Error("empty container resolved a path")
	}
}
