// Package script defines a YAML-described mutation script: an initial section
// layout plus an ordered list of operations to apply to it. Scripts exist for
// the command-line tooling and for reproducing change-notification sequences
// outside a host application.
package script

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed script: a named starting layout and the operations to
// replay against it, in order.
type Document struct {
	// Name labels the script in tool output. Optional.
	Name string `yaml:"name,omitempty"`

	// Sections is the initial layout, loaded before any operation runs.
	Sections []SectionDef `yaml:"sections"`

	// Ops are applied in order after the initial load.
	Ops []Op `yaml:"ops"`
}

// SectionDef describes one section of the initial layout. Section names double
// as handles: operations refer to sections by name, so names must be unique
// within a script.
type SectionDef struct {
	Name       string   `yaml:"name"`
	IndexTitle string   `yaml:"index_title,omitempty"`
	Items      []string `yaml:"items,omitempty"`
}

// Op is a single scripted mutation. Action selects the operation; the
// remaining fields carry its arguments and which ones are required depends on
// the action (see Validate).
type Op struct {
	Action string `yaml:"action"`

	// Section names the target section for item insertion actions.
	Section string `yaml:"section,omitempty"`

	// Items are the item arguments for item-level actions.
	Items []string `yaml:"items,omitempty"`

	// Item is the single-item argument for move and replace actions.
	Item string `yaml:"item,omitempty"`

	// Anchor is the reference item for item-relative actions, or the reference
	// section name for section-relative actions.
	Anchor string `yaml:"anchor,omitempty"`

	// With is the replacement value for replace-item.
	With string `yaml:"with,omitempty"`

	// Sections holds inline section definitions for section insertion actions,
	// and section names for delete-sections and reload-sections.
	Sections []SectionDef `yaml:"sections,omitempty"`

	// Names holds section names for actions that address existing sections.
	Names []string `yaml:"names,omitempty"`

	// Name is the single section name for move-section actions.
	Name string `yaml:"name,omitempty"`
}

// Script actions. Item actions operate on item values; section actions address
// sections by the name given in their definition.
const (
	ActionAppendItems          = "append-items"
	ActionInsertItemsBefore    = "insert-items-before"
	ActionInsertItemsAfter     = "insert-items-after"
	ActionDeleteItems          = "delete-items"
	ActionDeleteAllItems       = "delete-all-items"
	ActionMoveItemBefore       = "move-item-before"
	ActionMoveItemAfter        = "move-item-after"
	ActionReplaceItem          = "replace-item"
	ActionReloadItems          = "reload-items"
	ActionReconfigureItems     = "reconfigure-items"
	ActionAppendSections       = "append-sections"
	ActionInsertSectionsBefore = "insert-sections-before"
	ActionInsertSectionsAfter  = "insert-sections-after"
	ActionDeleteSections       = "delete-sections"
	ActionMoveSectionBefore    = "move-section-before"
	ActionMoveSectionAfter     = "move-section-after"
	ActionReloadSections       = "reload-sections"
	ActionSettle               = "settle"
)

var knownActions = []string{
	ActionAppendItems,
	ActionInsertItemsBefore,
	ActionInsertItemsAfter,
	ActionDeleteItems,
	ActionDeleteAllItems,
	ActionMoveItemBefore,
	ActionMoveItemAfter,
	ActionReplaceItem,
	ActionReloadItems,
	ActionReconfigureItems,
	ActionAppendSections,
	ActionInsertSectionsBefore,
	ActionInsertSectionsAfter,
	ActionDeleteSections,
	ActionMoveSectionBefore,
	ActionMoveSectionAfter,
	ActionReloadSections,
	ActionSettle,
}

// Parse reads a YAML script and validates it. The returned document is ready
// for Run.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse script YAML: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document for structural problems: duplicate or empty
// section names, unknown actions, and missing per-action arguments. It does
// not check whether items or anchors exist at replay time; absent references
// are ordinary no-ops for the container and not script errors.
func (d *Document) Validate() error {
	names := make(map[string]bool, len(d.Sections))
	for i, sec := range d.Sections {
		if sec.Name == "" {
			return fmt.Errorf("section %d: name is required", i)
		}
		if names[sec.Name] {
			return fmt.Errorf("section %d: duplicate section name %q", i, sec.Name)
		}
		names[sec.Name] = true
	}

	for i, op := range d.Ops {
		if err := op.validate(); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Action, err)
		}
	}
	return nil
}

func (op *Op) validate() error {
	if !slices.Contains(knownActions, op.Action) {
		return fmt.Errorf("unknown action %q (known: %s)", op.Action, strings.Join(knownActions, ", "))
	}

	switch op.Action {
	case ActionAppendItems:
		if op.Section == "" {
			return fmt.Errorf("section is required")
		}
		if len(op.Items) == 0 {
			return fmt.Errorf("items is required")
		}
	case ActionInsertItemsBefore, ActionInsertItemsAfter:
		if op.Anchor == "" {
			return fmt.Errorf("anchor is required")
		}
		if len(op.Items) == 0 {
			return fmt.Errorf("items is required")
		}
	case ActionDeleteItems, ActionReloadItems, ActionReconfigureItems:
		if len(op.Items) == 0 {
			return fmt.Errorf("items is required")
		}
	case ActionMoveItemBefore, ActionMoveItemAfter:
		if op.Item == "" {
			return fmt.Errorf("item is required")
		}
		if op.Anchor == "" {
			return fmt.Errorf("anchor is required")
		}
	case ActionReplaceItem:
		if op.Item == "" {
			return fmt.Errorf("item is required")
		}
		if op.With == "" {
			return fmt.Errorf("with is required")
		}
	case ActionAppendSections:
		if len(op.Sections) == 0 {
			return fmt.Errorf("sections is required")
		}
	case ActionInsertSectionsBefore, ActionInsertSectionsAfter:
		if op.Anchor == "" {
			return fmt.Errorf("anchor is required")
		}
		if len(op.Sections) == 0 {
			return fmt.Errorf("sections is required")
		}
	case ActionDeleteSections, ActionReloadSections:
		if len(op.Names) == 0 {
			return fmt.Errorf("names is required")
		}
	case ActionMoveSectionBefore, ActionMoveSectionAfter:
		if op.Name == "" {
			return fmt.Errorf("name is required")
		}
		if op.Anchor == "" {
			return fmt.Errorf("anchor is required")
		}
	}

	for _, sec := range op.Sections {
		if sec.Name == "" {
			return fmt.Errorf("inline section definitions require a name")
		}
	}
	return nil
}
