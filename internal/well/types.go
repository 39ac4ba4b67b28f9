// types.go
package well

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrMissingColumn = errors.New("missing column")

// Samples is a curve's values aligned to a depth index. NaN marks a missing
// sample and is written to JSON as null.
type Samples []float64

func (s Samples) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (s *Samples) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Samples, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}

// Table is a row-indexed view of a well: one depth index plus ordered,
// equally long named columns.
type Table struct {
	IndexName string
	Index     Samples
	columns   []string
	data      map[string]Samples
}

// NewTable creates an empty table over the given depth index.
func NewTable(indexName string, index Samples) *Table {
	return &Table{
		IndexName: indexName,
		Index:     index,
		data:      make(map[string]Samples),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Index) }

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column returns the named column or an error wrapping ErrMissingColumn.
func (t *Table) Column(name string) (Samples, error) {
	s, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	return s, nil
}

// Set adds or replaces a column. Values must have one sample per row.
func (t *Table) Set(name string, values Samples) error {
	if len(values) != t.Len() {
		return fmt.Errorf("column %s has %d samples, table has %d rows", name, len(values), t.Len())
	}
	if _, ok := t.data[name]; !ok {
		t.columns = append(t.columns, name)
	}
	t.data[name] = values
	return nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := NewTable(t.IndexName, append(Samples(nil), t.Index...))
	for _, name := range t.columns {
		c.columns = append(c.columns, name)
		c.data[name] = append(Samples(nil), t.data[name]...)
	}
	return c
}

type tableJSON struct {
	IndexName string             `json:"index_name"`
	Index     Samples            `json:"index"`
	Columns   []string           `json:"columns"`
	Data      map[string]Samples `json:"data"`
}

func (t *Table) MarshalJSON() ([]byte, error) {
	cols := t.columns
	if cols == nil {
		cols = []string{}
	}
	return json.Marshal(tableJSON{
		IndexName: t.IndexName,
		Index:     t.Index,
		Columns:   cols,
		Data:      t.data,
	})
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var raw tableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewTable(raw.IndexName, raw.Index)
	for _, name := range raw.Columns {
		values, ok := raw.Data[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		if err := out.Set(name, values); err != nil {
			return err
		}
	}
	*t = *out
	return nil
}
