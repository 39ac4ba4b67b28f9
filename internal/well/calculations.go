// calculations.go
package well

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Source and derived column names.
const (
	ColDTCO  = "DTCO"
	ColDTSM  = "DTSM"
	ColNPHI  = "NPHI"
	ColHROM  = "HROM"
	ColVp    = "Vp"
	ColVs    = "Vs"
	ColVpMax = "Vp_max"
)

// Transit time (us/ft) to velocity (m/s): (MicrosecondsPerSecond / dt) / FeetPerMetre.
const (
	MicrosecondsPerSecond = 1000000
	FeetPerMetre          = 3.281
	VpMaxOffset           = 200
)

var ErrZeroTransitTime = errors.New("zero transit time")

// Velocity converts one sonic transit time sample.
func Velocity(dt float64) float64 {
	return (MicrosecondsPerSecond / dt) / FeetPerMetre
}

// Derive returns a copy of t with Vp, Vs and Vp_max columns added.
// Vp_max is max(Vp) + VpMaxOffset repeated on every row.
func Derive(t *Table) (*Table, error) {
	dtco, err := t.Column(ColDTCO)
	if err != nil {
		return nil, err
	}
	dtsm, err := t.Column(ColDTSM)
	if err != nil {
		return nil, err
	}
	vp, err := velocities(ColDTCO, t.Index, dtco)
	if err != nil {
		return nil, err
	}
	vs, err := velocities(ColDTSM, t.Index, dtsm)
	if err != nil {
		return nil, err
	}

	out := t.Clone()
	peak := MaxSkipNaN(vp) + VpMaxOffset
	vpMax := make(Samples, len(vp))
	for i := range vpMax {
		vpMax[i] = peak
	}
	for _, col := range []struct {
		name   string
		values Samples
	}{{ColVp, vp}, {ColVs, vs}, {ColVpMax, vpMax}} {
		if err := out.Set(col.name, col.values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func velocities(name string, depth, dt Samples) (Samples, error) {
	out := make(Samples, len(dt))
	for i, v := range dt {
		if v == 0 {
			return nil, fmt.Errorf("%w: %s at depth %g", ErrZeroTransitTime, name, depth[i])
		}
		out[i] = Velocity(v)
	}
	return out, nil
}

// MaxSkipNaN returns the largest non-NaN value, or NaN if there is none.
func MaxSkipNaN(vals Samples) float64 {
	m := math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v > m {
			m = v
		}
	}
	return m
}

// CurveStats summarizes one column with missing samples skipped.
type CurveStats struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
}

// Summarize computes CurveStats for every column of t. Columns without a
// single valid sample are left out.
func Summarize(t *Table) []CurveStats {
	var out []CurveStats
	for _, name := range t.Columns() {
		col, _ := t.Column(name)
		values := finite(col)
		if len(values) == 0 {
			continue
		}
		out = append(out, CurveStats{
			Name:   name,
			Count:  len(values),
			Min:    minOf(values),
			Max:    maxOf(values),
			Mean:   avg(values),
			Median: median(values),
			Std:    std(values),
		})
	}
	return out
}

func finite(vals Samples) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func sum(vals []float64) float64 {
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s
}

func avg(vals []float64) float64 { return sum(vals) / float64(len(vals)) }

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func std(vals []float64) float64 {
	if len(vals) <= 1 {
		return 0
	}
	mean := avg(vals)
	sumSq := 0.0
	for _, v := range vals {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(vals)-1))
}
