// Package catalog provides the read-only workout libraries the generator
// pulls exercise templates from. The data ships as embedded YAML documents,
// one per strength focus plus one for the Hyrox splits.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ExerciseTemplate is one catalog entry, copied into sessions at
// generation time.
type ExerciseTemplate struct {
	Name         string `yaml:"name"`
	Sets         int    `yaml:"sets"`
	Reps         string `yaml:"reps"`
	Rest         string `yaml:"rest"`
	RPE          int    `yaml:"rpe"`
	Instructions string `yaml:"instructions"`
}

// Split is a named subset of a focus, cycled week to week.
type Split struct {
	Name      string             `yaml:"name"`
	Exercises []ExerciseTemplate `yaml:"exercises"`
}

type focusDoc struct {
	Focus  string  `yaml:"focus"`
	Splits []Split `yaml:"splits"`
}

// Catalog is the full library, keyed by focus then split name. Split order
// within a focus is significant: it drives the rotation.
type Catalog struct {
	focuses map[string]focusDoc
}

// Load parses the embedded catalog data.
func Load() (*Catalog, error) {
	c := &Catalog{focuses: make(map[string]focusDoc)}

	entries, err := fs.Glob(dataFS, "data/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing catalog data: %w", err)
	}
	for _, path := range entries {
		raw, err := dataFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var doc focusDoc
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if doc.Focus == "" {
			return nil, fmt.Errorf("%s: missing focus key", path)
		}
		c.focuses[doc.Focus] = doc
	}
	return c, nil
}

// SplitNames returns the ordered split names for a focus. Unknown focus
// yields nil.
func (c *Catalog) SplitNames(focus string) []string {
	doc, ok := c.focuses[focus]
	if !ok {
		return nil
	}
	names := make([]string, len(doc.Splits))
	for i, s := range doc.Splits {
		names[i] = s.Name
	}
	return names
}

// Exercises returns the templates for a focus/split pair. Missing entries
// degrade to an empty list; sessions still render without exercises.
func (c *Catalog) Exercises(focus, split string) []ExerciseTemplate {
	doc, ok := c.focuses[focus]
	if !ok {
		return nil
	}
	for _, s := range doc.Splits {
		if s.Name == split {
			return s.Exercises
		}
	}
	return nil
}
