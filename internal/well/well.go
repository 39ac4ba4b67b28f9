// Package well holds loaded wells, their tabular views and the curves
// derived from them.
package well

import (
	"fmt"
	"path/filepath"
	"strings"

	"welldash/internal/las"
)

// Curve is one named measurement channel.
type Curve struct {
	Mnemonic    string
	Unit        string
	Description string
	Values      Samples
}

// Well is a single borehole loaded from one LAS file. It is not modified
// after FromLAS returns.
type Well struct {
	Name   string
	Path   string
	Depth  Curve
	Curves []Curve
	Header []las.HeaderItem
}

// FromLAS converts a parsed file. The first curve is the depth index.
func FromLAS(path string, f *las.File) (*Well, error) {
	if len(f.Curves) == 0 {
		return nil, fmt.Errorf("%s: %w", path, las.ErrNoCurves)
	}
	w := &Well{Path: path, Header: f.Well}
	if name, ok := f.WellValue("WELL"); ok && strings.TrimSpace(name) != "" {
		w.Name = strings.TrimSpace(name)
	} else {
		w.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for i, c := range f.Curves {
		curve := Curve{
			Mnemonic:    c.Mnemonic,
			Unit:        c.Unit,
			Description: c.Description,
			Values:      Samples(f.Data[i]),
		}
		if i == 0 {
			w.Depth = curve
			continue
		}
		w.Curves = append(w.Curves, curve)
	}
	return w, nil
}

// CurveNames lists the curve mnemonics in file order, depth index excluded.
func (w *Well) CurveNames() []string {
	names := make([]string, len(w.Curves))
	for i, c := range w.Curves {
		names[i] = c.Mnemonic
	}
	return names
}

// Table returns a fresh tabular copy of the well's curves.
func (w *Well) Table() *Table {
	t := NewTable(w.Depth.Mnemonic, append(Samples(nil), w.Depth.Values...))
	for _, c := range w.Curves {
		// lengths always match: las.Parse fills whole rows
		_ = t.Set(c.Mnemonic, append(Samples(nil), c.Values...))
	}
	return t
}
