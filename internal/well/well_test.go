package well

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func lasText(name string, rows ...[4]float64) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "~V\nVERS. 2.0 :\nWRAP. NO :\n~W\nNULL. -999.25 :\nWELL. %s : WELL\n", name)
	b.WriteString("~C\nDEPT.M :\nDTCO.US/F :\nDTSM.US/F :\nNPHI.V/V :\n~A\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%g %g %g %g\n", r[0], r[1], r[2], r[3])
	}
	return b.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadProjectRecursiveCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "ALPHA.LAS"), lasText("ALPHA 1", [4]float64{4400, 100, 180, 0.2}))
	writeFile(t, filepath.Join(root, "b", "deep", "BETA.LAS"), lasText("BETA 2", [4]float64{4400, 90, 170, 0.1}))
	writeFile(t, filepath.Join(root, "ignored.las"), "not parsed")
	writeFile(t, filepath.Join(root, "notes.txt"), "not parsed")

	p, err := LoadProject(root, DefaultPattern)
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"ALPHA 1", "BETA 2"}, p.Names())

	opts := p.Options()
	require.Len(t, opts, p.Len())
	for i, o := range opts {
		w, err := p.Well(i)
		require.NoError(t, err)
		assert.Equal(t, w.Name, o.Label)
		assert.Equal(t, i, o.Value)
	}
}

func TestLoadDemoData(t *testing.T) {
	p, err := LoadProject(filepath.Join("..", "..", "Data"), DefaultPattern)
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())

	w, err := p.Well(0)
	require.NoError(t, err)
	assert.Equal(t, "DEMO WELL 1", w.Name)
	assert.Equal(t, []string{ColDTCO, ColDTSM, ColNPHI, ColHROM}, w.CurveNames())

	out, err := Derive(w.Table())
	require.NoError(t, err)
	vp, _ := out.Column(ColVp)
	assert.True(t, math.IsNaN(vp[7]), "null sample in the demo file")
	assert.Equal(t, 61, out.Len())
}

func TestLoadProjectFailsFast(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "GOOD.LAS"), lasText("GOOD", [4]float64{1, 100, 180, 0.2}))
	writeFile(t, filepath.Join(root, "BAD.LAS"), "~C\nDEPT.M :\n~A\n1 oops\n")

	_, err := LoadProject(root, DefaultPattern)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAD.LAS")
}

func TestLoadProjectMissingRoot(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "nope"), DefaultPattern)
	assert.Error(t, err)
}

func TestProjectWellOutOfRange(t *testing.T) {
	p := NewProject()
	_, err := p.Well(0)
	assert.ErrorIs(t, err, ErrNoSuchWell)
	_, err = p.Well(-1)
	assert.ErrorIs(t, err, ErrNoSuchWell)
}

func TestWellNameFallsBackToFileName(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "UNNAMED-3.LAS")
	writeFile(t, path, "~C\nDEPT.M :\nGR.API :\n~A\n1 50\n")
	w, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "UNNAMED-3", w.Name)
	assert.Equal(t, []string{"GR"}, w.CurveNames())
}

func TestWellTableIsACopy(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "W.LAS")
	writeFile(t, path, lasText("W", [4]float64{4400, 100, 180, 0.2}, [4]float64{4401, -999.25, 190, 0.3}))
	w, err := LoadFile(path)
	require.NoError(t, err)

	tbl := w.Table()
	assert.Equal(t, "DEPT", tbl.IndexName)
	assert.Equal(t, []string{"DTCO", "DTSM", "NPHI"}, tbl.Columns())
	dtco, err := tbl.Column("DTCO")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(dtco[1]))

	dtco[0] = 1
	assert.Equal(t, 100.0, w.Curves[0].Values[0], "mutating a table must not touch the well")
}

func derivedFixture(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable("DEPT", Samples{4400, 4401, 4402})
	require.NoError(t, tbl.Set(ColDTCO, Samples{100, 80, math.NaN()}))
	require.NoError(t, tbl.Set(ColDTSM, Samples{180, 150, 160}))
	require.NoError(t, tbl.Set(ColNPHI, Samples{0.2, 0.25, 0.3}))
	return tbl
}

func TestDeriveFormulas(t *testing.T) {
	in := derivedFixture(t)
	out, err := Derive(in)
	require.NoError(t, err)

	vp, err := out.Column(ColVp)
	require.NoError(t, err)
	vs, err := out.Column(ColVs)
	require.NoError(t, err)
	vpMax, err := out.Column(ColVpMax)
	require.NoError(t, err)

	dtco, dtsm, fast := 100.0, 180.0, 80.0
	assert.Equal(t, (1000000/dtco)/3.281, vp[0])
	assert.InDelta(t, 3047.85, vp[0], 0.01)
	assert.Equal(t, (1000000/dtsm)/3.281, vs[0])
	assert.InDelta(t, 1693.25, vs[0], 0.01)
	assert.True(t, math.IsNaN(vp[2]), "missing transit time stays missing")

	want := (1000000/fast)/3.281 + 200
	for _, v := range vpMax {
		assert.Equal(t, want, v)
	}
	assert.Equal(t, []string{ColDTCO, ColDTSM, ColNPHI, ColVp, ColVs, ColVpMax}, out.Columns())
	_, err = in.Column(ColVp)
	assert.ErrorIs(t, err, ErrMissingColumn, "input table must not be modified")
}

func TestDeriveVpMaxIsPeakPlusOffset(t *testing.T) {
	for _, dts := range [][]float64{{50}, {200, 100, 300}, {57.3, 61.9, 140.2, 88.8}} {
		tbl := NewTable("DEPT", make(Samples, len(dts)))
		require.NoError(t, tbl.Set(ColDTCO, Samples(dts)))
		require.NoError(t, tbl.Set(ColDTSM, Samples(dts)))
		out, err := Derive(tbl)
		require.NoError(t, err)
		vp, _ := out.Column(ColVp)
		vpMax, _ := out.Column(ColVpMax)
		assert.Equal(t, MaxSkipNaN(vp)+200, vpMax[0])
	}
}

func TestDeriveErrors(t *testing.T) {
	tbl := NewTable("DEPT", Samples{1})
	require.NoError(t, tbl.Set(ColDTCO, Samples{100}))
	_, err := Derive(tbl)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColDTSM)

	require.NoError(t, tbl.Set(ColDTSM, Samples{0}))
	_, err = Derive(tbl)
	assert.ErrorIs(t, err, ErrZeroTransitTime)
}

func TestTableJSONRoundTripKeepsNaNAndOrder(t *testing.T) {
	in, err := Derive(derivedFixture(t))
	require.NoError(t, err)
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "null")

	var out Table
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in.Columns(), out.Columns())
	for _, c := range in.Columns() {
		a, _ := in.Column(c)
		b, _ := out.Column(c)
		if diff := cmp.Diff(a, b, cmpopts.EquateNaNs()); diff != "" {
			t.Errorf("column %s mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestTableSetRejectsWrongLength(t *testing.T) {
	tbl := NewTable("DEPT", Samples{1, 2})
	assert.Error(t, tbl.Set("X", Samples{1}))
}

func TestSummarize(t *testing.T) {
	tbl := NewTable("DEPT", Samples{1, 2, 3, 4})
	require.NoError(t, tbl.Set("GR", Samples{10, 20, math.NaN(), 30}))
	require.NoError(t, tbl.Set("EMPTY", Samples{math.NaN(), math.NaN(), math.NaN(), math.NaN()}))

	stats := Summarize(tbl)
	require.Len(t, stats, 1)
	assert.Equal(t, CurveStats{Name: "GR", Count: 3, Min: 10, Max: 30, Mean: 20, Median: 20, Std: 10}, stats[0])
}

func TestWriteWorkbook(t *testing.T) {
	tbl, err := Derive(derivedFixture(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, "POSEIDON 1/ST", tbl))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "POSEIDON 1_ST", f.GetSheetName(0))
	rows, err := f.GetRows("POSEIDON 1_ST")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"DEPT", "DTCO", "DTSM", "NPHI", "Vp", "Vs", "Vp_max"}, rows[0])
	assert.Equal(t, "4400", rows[1][0])
	assert.Equal(t, "", rows[3][1], "missing samples are blank cells")
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Well", sheetName(""))
	assert.Equal(t, "A_B_C", sheetName("A[B]C"))
	assert.Len(t, []rune(sheetName("abcdefghijklmnopqrstuvwxyz0123456789")), 31)
}
