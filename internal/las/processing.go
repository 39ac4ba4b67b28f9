// Package las reads Log ASCII Standard (LAS 1.2 and 2.0) well-log files.
package las

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNoCurves    = errors.New("las: no curves defined")
	ErrNoData      = errors.New("las: no ~A data section")
	ErrBadValue    = errors.New("las: non-numeric data value")
	ErrRaggedData  = errors.New("las: data values do not fill whole rows")
	ErrDuplicateID = errors.New("las: duplicate curve mnemonic")
)

// HeaderItem is one "MNEM.UNIT DATA : DESCRIPTION" line.
type HeaderItem struct {
	Mnemonic    string
	Unit        string
	Value       string
	Description string
}

// File is a parsed LAS file. Data holds one slice per curve, in ~C order,
// with null values replaced by NaN.
type File struct {
	Version    string
	Wrap       bool
	Null       float64
	HasNull    bool
	Well       []HeaderItem
	Curves     []HeaderItem
	Parameters []HeaderItem
	Other      string
	Data       [][]float64
}

// WellValue returns the ~W value for mnemonic (case-insensitive).
func (f *File) WellValue(mnemonic string) (string, bool) {
	for _, item := range f.Well {
		if strings.EqualFold(item.Mnemonic, mnemonic) {
			return item.Value, true
		}
	}
	return "", false
}

// Rows returns the number of depth samples.
func (f *File) Rows() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0])
}

// Parse reads a whole LAS file.
func Parse(r io.Reader) (*File, error) {
	p := &parser{f: &File{Null: math.NaN()}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.handle(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("las: read: %w", err)
	}
	return p.finish()
}

type parser struct {
	f       *File
	line    int
	section byte
	seenA   bool
	values  []float64
	other   []string
}

func (p *parser) handle(raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" || strings.HasPrefix(text, "#") {
		return nil
	}
	if strings.HasPrefix(text, "~") {
		p.section = 0
		if len(text) > 1 {
			p.section = upper(text[1])
		}
		if p.section == 'A' {
			if len(p.f.Curves) == 0 {
				return fmt.Errorf("line %d: %w", p.line, ErrNoCurves)
			}
			p.seenA = true
			p.applyNull()
		}
		return nil
	}

	switch p.section {
	case 'V':
		item := parseHeader(text)
		switch strings.ToUpper(item.Mnemonic) {
		case "VERS":
			p.f.Version = item.Value
		case "WRAP":
			p.f.Wrap = strings.EqualFold(item.Value, "YES")
		}
	case 'W':
		p.f.Well = append(p.f.Well, parseHeader(text))
	case 'C':
		item := parseHeader(text)
		for _, c := range p.f.Curves {
			if strings.EqualFold(c.Mnemonic, item.Mnemonic) {
				return fmt.Errorf("line %d: %w: %s", p.line, ErrDuplicateID, item.Mnemonic)
			}
		}
		p.f.Curves = append(p.f.Curves, item)
	case 'P':
		p.f.Parameters = append(p.f.Parameters, parseHeader(text))
	case 'O':
		p.other = append(p.other, raw)
	case 'A':
		for _, tok := range strings.Fields(text) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("line %d: %w: %q", p.line, ErrBadValue, tok)
			}
			if p.f.HasNull && v == p.f.Null {
				v = math.NaN()
			}
			p.values = append(p.values, v)
		}
	}
	return nil
}

// applyNull resolves NULL and the LAS 1.2 swapped ~W fields once the header
// is complete. In 1.2 files only STRT, STOP, STEP and NULL keep the value
// before the colon.
func (p *parser) applyNull() {
	if strings.HasPrefix(strings.TrimSpace(p.f.Version), "1.") {
		for i, item := range p.f.Well {
			switch strings.ToUpper(item.Mnemonic) {
			case "STRT", "STOP", "STEP", "NULL":
			default:
				if item.Description != "" {
					p.f.Well[i].Value, p.f.Well[i].Description = item.Description, item.Value
				}
			}
		}
	}
	if s, ok := p.f.WellValue("NULL"); ok {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			p.f.Null = v
			p.f.HasNull = true
		}
	}
}

func (p *parser) finish() (*File, error) {
	if len(p.f.Curves) == 0 {
		return nil, ErrNoCurves
	}
	if !p.seenA {
		return nil, ErrNoData
	}
	n := len(p.f.Curves)
	if len(p.values)%n != 0 {
		return nil, fmt.Errorf("%w: %d values for %d curves", ErrRaggedData, len(p.values), n)
	}
	rows := len(p.values) / n
	p.f.Data = make([][]float64, n)
	for c := range p.f.Data {
		p.f.Data[c] = make([]float64, rows)
	}
	for i, v := range p.values {
		p.f.Data[i%n][i/n] = v
	}
	p.f.Other = strings.Join(p.other, "\n")
	return p.f, nil
}

// parseHeader splits "MNEM.UNIT  VALUE : DESCRIPTION". The unit ends at the
// first space after the dot; the description starts after the last colon.
func parseHeader(line string) HeaderItem {
	var item HeaderItem
	rest := line
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		item.Description = strings.TrimSpace(rest[i+1:])
		rest = rest[:i]
	}
	dot := strings.Index(rest, ".")
	if dot < 0 {
		item.Mnemonic = strings.TrimSpace(rest)
		return item
	}
	item.Mnemonic = strings.TrimSpace(rest[:dot])
	rest = rest[dot+1:]
	if sp := strings.IndexAny(rest, " \t"); sp >= 0 {
		item.Unit = rest[:sp]
		item.Value = strings.TrimSpace(rest[sp:])
	} else {
		item.Unit = strings.TrimSpace(rest)
	}
	return item
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
