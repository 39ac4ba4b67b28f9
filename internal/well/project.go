package well

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"welldash/internal/las"
)

var ErrNoSuchWell = errors.New("no such well")

// DefaultPattern matches LAS files the way the field data is delivered.
// Matching is case-sensitive.
const DefaultPattern = "*.LAS"

// Project is the ordered collection of wells loaded at start-up.
type Project struct {
	wells []*Well
}

// Option is one entry of the well selector.
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// NewProject wraps already loaded wells. Index i refers to wells[i].
func NewProject(wells ...*Well) *Project {
	return &Project{wells: wells}
}

// LoadProject walks root recursively and parses every file whose base name
// matches pattern. The first failure aborts the load.
func LoadProject(root, pattern string) (*Project, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	p := &Project{}
	for _, path := range paths {
		w, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		p.wells = append(p.wells, w)
	}
	return p, nil
}

// LoadFile parses a single LAS file into a Well.
func LoadFile(path string) (*Well, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	parsed, err := las.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return FromLAS(path, parsed)
}

// Len returns the number of wells.
func (p *Project) Len() int { return len(p.wells) }

// Well returns the well at index i.
func (p *Project) Well(i int) (*Well, error) {
	if i < 0 || i >= len(p.wells) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoSuchWell, i, len(p.wells))
	}
	return p.wells[i], nil
}

// Names returns the well names in index order.
func (p *Project) Names() []string {
	names := make([]string, len(p.wells))
	for i, w := range p.wells {
		names[i] = w.Name
	}
	return names
}

// Options returns the selector entries: label is the well name, value its index.
func (p *Project) Options() []Option {
	opts := make([]Option, len(p.wells))
	for i, w := range p.wells {
		opts[i] = Option{Label: w.Name, Value: i}
	}
	return opts
}
