package testutil

import (
	_ "embed"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/sectionstore/sectionstore"
)

//go:embed fixture.yaml
var fixtureYAML []byte

// UniverseData provides typed access to the universe fixture: a contacts-style
// container with four sections covering the shapes the suite needs (a small
// section, a mid-size one, the largest, and a short tail section).
type UniverseData struct {
	// Sections in container order
	Favorites *sectionstore.Section[string] // index 0, 3 items
	Family    *sectionstore.Section[string] // index 1, 4 items
	Work      *sectionstore.Section[string] // index 2, 5 items
	Archive   *sectionstore.Section[string] // index 3, 2 items

	// Notable items
	FirstFavorite string // "Alice Chen", path [0, 0]
	LastFavorite  string // "Priya Sharma", path [0, 2]
	FirstWorker   string // "Gabriel Ortiz", path [2, 0]
	LastWorker    string // "Omar Haddad", path [2, 4]
	LastArchived  string // "Rosa Lindqvist", path [3, 1], last item overall

	// Recorder registered on the container before any mutation, so tests see
	// every event their mutations produce. Reset it after setup mutations.
	Recorder *Recorder[string]
}

type fixtureSection struct {
	Name       string   `yaml:"name"`
	IndexTitle string   `yaml:"index_title"`
	Items      []string `yaml:"items"`
}

type fixtureFile struct {
	Sections []fixtureSection `yaml:"sections"`
}

// LoadUniverse builds a fresh container from the embedded fixture and returns
// it with typed handles to its sections and notable items. The container is
// fully settled; the attached recorder starts empty.
func LoadUniverse(t *testing.T) (*sectionstore.Container[string], *UniverseData) {
	t.Helper()

	var file fixtureFile
	if err := yaml.Unmarshal(fixtureYAML, &file); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	if len(file.Sections) != 4 {
		t.Fatalf("fixture expected 4 sections, got %d", len(file.Sections))
	}

	sections := make([]*sectionstore.Section[string], len(file.Sections))
	for i, fs := range file.Sections {
		sections[i] = sectionstore.NewSectionWithIndexTitle(fs.Name, fs.IndexTitle, fs.Items...)
	}

	container := sectionstore.NewWithSections(sections...)

	data := &UniverseData{
		Favorites:     sections[0],
		Family:        sections[1],
		Work:          sections[2],
		Archive:       sections[3],
		FirstFavorite: file.Sections[0].Items[0],
		LastFavorite:  file.Sections[0].Items[len(file.Sections[0].Items)-1],
		FirstWorker:   file.Sections[2].Items[0],
		LastWorker:    file.Sections[2].Items[len(file.Sections[2].Items)-1],
		LastArchived:  file.Sections[3].Items[len(file.Sections[3].Items)-1],
		Recorder:      NewRecorder[string](),
	}
	container.AddObserver(data.Recorder)

	return container, data
}
