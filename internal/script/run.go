package script

import (
	"fmt"

	"github.com/arthur-debert/sectionstore/sectionstore"
	"github.com/arthur-debert/sectionstore/types"
)

// Result is what a replay produces: the final layout and every change
// notification emitted along the way, rendered as stable one-line strings.
type Result struct {
	// Layout is the final committed state, one entry per surviving section.
	Layout []SectionLayout

	// Events lists the observer callbacks in delivery order. Batch brackets
	// render as "will-change" and "did-change".
	Events []string
}

// SectionLayout is the final state of one section.
type SectionLayout struct {
	Name       string   `json:"name" yaml:"name"`
	IndexTitle string   `json:"index_title,omitempty" yaml:"index_title,omitempty"`
	Items      []string `json:"items" yaml:"items"`
}

// Run replays a validated document against a fresh container and returns the
// final layout plus the recorded event stream. The initial load emits no
// events; only the scripted operations do.
func Run(doc *Document) (*Result, error) {
	registry := make(map[string]*sectionstore.Section[string], len(doc.Sections))
	initial := make([]*sectionstore.Section[string], 0, len(doc.Sections))
	for _, def := range doc.Sections {
		sec := buildSection(def)
		registry[def.Name] = sec
		initial = append(initial, sec)
	}

	container := sectionstore.NewWithSections(initial...)
	log := &eventLog{}
	container.AddObserver(log)

	for i, op := range doc.Ops {
		if err := applyOp(container, registry, op); err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, op.Action, err)
		}
		// Settle per op so the event stream groups one batch per operation
		// and section-name lookups see the committed layout.
		container.Settle()
	}
	container.Settle()

	result := &Result{Events: log.lines()}
	for _, sec := range container.Sections() {
		result.Layout = append(result.Layout, SectionLayout{
			Name:       sec.Name(),
			IndexTitle: sec.IndexTitle(),
			Items:      sec.Items(),
		})
	}
	return result, nil
}

func buildSection(def SectionDef) *sectionstore.Section[string] {
	if def.IndexTitle != "" {
		return sectionstore.NewSectionWithIndexTitle(def.Name, def.IndexTitle, def.Items...)
	}
	return sectionstore.NewSection(def.Name, def.Items...)
}

func applyOp(container *sectionstore.Container[string], registry map[string]*sectionstore.Section[string], op Op) error {
	lookup := func(name string) (*sectionstore.Section[string], error) {
		sec, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown section %q", name)
		}
		return sec, nil
	}

	switch op.Action {
	case ActionAppendItems:
		sec, err := lookup(op.Section)
		if err != nil {
			return err
		}
		container.AppendItems(sec, op.Items...)

	case ActionInsertItemsBefore:
		container.InsertItemsBefore(op.Anchor, op.Items...)

	case ActionInsertItemsAfter:
		container.InsertItemsAfter(op.Anchor, op.Items...)

	case ActionDeleteItems:
		container.DeleteItems(op.Items...)

	case ActionDeleteAllItems:
		container.DeleteAllItems()

	case ActionMoveItemBefore:
		container.MoveItemBefore(op.Item, op.Anchor)

	case ActionMoveItemAfter:
		container.MoveItemAfter(op.Item, op.Anchor)

	case ActionReplaceItem:
		container.ReplaceItem(op.Item, op.With)

	case ActionReloadItems:
		container.ReloadItems(op.Items...)

	case ActionReconfigureItems:
		container.ReconfigureItems(op.Items...)

	case ActionAppendSections:
		secs, err := registerSections(registry, op.Sections)
		if err != nil {
			return err
		}
		container.AppendSections(secs...)

	case ActionInsertSectionsBefore:
		anchor, err := lookup(op.Anchor)
		if err != nil {
			return err
		}
		secs, err := registerSections(registry, op.Sections)
		if err != nil {
			return err
		}
		container.InsertSectionsBefore(anchor, secs...)

	case ActionInsertSectionsAfter:
		anchor, err := lookup(op.Anchor)
		if err != nil {
			return err
		}
		secs, err := registerSections(registry, op.Sections)
		if err != nil {
			return err
		}
		container.InsertSectionsAfter(anchor, secs...)

	case ActionDeleteSections:
		secs, err := lookupAll(registry, op.Names)
		if err != nil {
			return err
		}
		container.DeleteSections(secs...)

	case ActionMoveSectionBefore:
		sec, err := lookup(op.Name)
		if err != nil {
			return err
		}
		anchor, err := lookup(op.Anchor)
		if err != nil {
			return err
		}
		container.MoveSectionBefore(sec, anchor)

	case ActionMoveSectionAfter:
		sec, err := lookup(op.Name)
		if err != nil {
			return err
		}
		anchor, err := lookup(op.Anchor)
		if err != nil {
			return err
		}
		container.MoveSectionAfter(sec, anchor)

	case ActionReloadSections:
		secs, err := lookupAll(registry, op.Names)
		if err != nil {
			return err
		}
		container.ReloadSections(secs...)

	case ActionSettle:
		container.Settle()
	}
	return nil
}

func registerSections(registry map[string]*sectionstore.Section[string], defs []SectionDef) ([]*sectionstore.Section[string], error) {
	secs := make([]*sectionstore.Section[string], 0, len(defs))
	for _, def := range defs {
		if _, taken := registry[def.Name]; taken {
			return nil, fmt.Errorf("section name %q already in use", def.Name)
		}
		sec := buildSection(def)
		registry[def.Name] = sec
		secs = append(secs, sec)
	}
	return secs, nil
}

func lookupAll(registry map[string]*sectionstore.Section[string], names []string) ([]*sectionstore.Section[string], error) {
	secs := make([]*sectionstore.Section[string], 0, len(names))
	for _, name := range names {
		sec, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown section %q", name)
		}
		secs = append(secs, sec)
	}
	return secs, nil
}

// eventLog renders observer callbacks into the stable line format used by
// tool output. Callbacks arrive on the pipeline goroutine; Run only reads the
// log after settling, so no locking is needed.
type eventLog struct {
	events []string
}

func (l *eventLog) WillChangeContent() {
	l.events = append(l.events, "will-change")
}

func (l *eventLog) DidChangeContent() {
	l.events = append(l.events, "did-change")
}

func (l *eventLog) ItemChanged(item string, old *types.IndexPath, change types.ChangeType, new *types.IndexPath) {
	l.events = append(l.events, fmt.Sprintf("item %s %q old=%s new=%s", change, item, pathString(old), pathString(new)))
}

func (l *eventLog) SectionChanged(section *sectionstore.Section[string], index int, change types.ChangeType) {
	l.events = append(l.events, fmt.Sprintf("section %s %q at %d", change, section.Name(), index))
}

func (l *eventLog) lines() []string {
	return l.events
}

func pathString(p *types.IndexPath) string {
	if p == nil {
		return "-"
	}
	return p.String()
}

var _ sectionstore.ChangeObserver[string] = (*eventLog)(nil)
