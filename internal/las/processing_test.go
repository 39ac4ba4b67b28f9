package las

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLAS = `~VERSION INFORMATION
 VERS.                 2.0 :   CWLS LOG ASCII STANDARD -VERSION 2.0
 WRAP.                  NO :   ONE LINE PER DEPTH STEP
~WELL INFORMATION
#MNEM.UNIT       DATA                 DESCRIPTION
 STRT.M        4400.0000 : START DEPTH
 STOP.M        4402.0000 : STOP DEPTH
 STEP.M           1.0000 : STEP
 NULL.         -999.2500 : NULL VALUE
 WELL.        POSEIDON 1 : WELL
~CURVE INFORMATION
 DEPT.M                  : DEPTH
 DTCO.US/F               : COMPRESSIONAL SONIC
 DTSM.US/F               : SHEAR SONIC
 NPHI.V/V                : NEUTRON POROSITY
~PARAMETER INFORMATION
 BHT .DEGC        35.5   : BOTTOM HOLE TEMPERATURE
~OTHER
 free text
~A  DEPT     DTCO     DTSM     NPHI
4400.0   100.0    180.0    0.25
4401.0   -999.25  190.0    0.30
4402.0   110.0    200.0    0.28
`

func TestParseSections(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleLAS))
	require.NoError(t, err)

	assert.Equal(t, "2.0", f.Version)
	assert.False(t, f.Wrap)
	assert.Equal(t, -999.25, f.Null)

	name, ok := f.WellValue("well")
	require.True(t, ok)
	assert.Equal(t, "POSEIDON 1", name)

	require.Len(t, f.Curves, 4)
	assert.Equal(t, "DEPT", f.Curves[0].Mnemonic)
	assert.Equal(t, "US/F", f.Curves[1].Unit)
	assert.Equal(t, "NEUTRON POROSITY", f.Curves[3].Description)

	require.Len(t, f.Parameters, 1)
	assert.Equal(t, "BHT", f.Parameters[0].Mnemonic)
	assert.Equal(t, "35.5", f.Parameters[0].Value)
	assert.Contains(t, f.Other, "free text")

	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, []float64{4400, 4401, 4402}, f.Data[0])
	assert.True(t, math.IsNaN(f.Data[1][1]), "null value should become NaN")
	assert.Equal(t, 110.0, f.Data[1][2])
}

func TestParseWrapped(t *testing.T) {
	in := `~V
VERS. 2.0 :
WRAP. YES :
~C
DEPT.M :
A.    :
B.    :
~A
1.0
 10 20
2.0
 11 21
`
	f, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.True(t, f.Wrap)
	assert.Equal(t, [][]float64{{1, 2}, {10, 11}, {20, 21}}, f.Data)
}

func TestParseLegacyWellSection(t *testing.T) {
	in := `~V
VERS. 1.2 :
~W
STRT.M   10 : START DEPTH
NULL.  -999 : NULL VALUE
WELL.  WELL : ANY ET AL 12-34
~C
DEPT.M :
X. :
~A
10 -999
`
	f, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	name, _ := f.WellValue("WELL")
	assert.Equal(t, "ANY ET AL 12-34", name)
	strt, _ := f.WellValue("STRT")
	assert.Equal(t, "10", strt)
	assert.True(t, math.IsNaN(f.Data[1][0]))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"no curves", "~V\nVERS. 2.0 :\n~A\n1 2\n", ErrNoCurves},
		{"no data", "~C\nDEPT.M :\n", ErrNoData},
		{"bad value", "~C\nDEPT.M :\n~A\n1 abc\n", ErrBadValue},
		{"ragged", "~C\nDEPT.M :\nX. :\n~A\n1 2 3\n", ErrRaggedData},
		{"duplicate", "~C\nDEPT.M :\ndept.M :\n~A\n1 2\n", ErrDuplicateID},
		{"empty", "", ErrNoCurves},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		line string
		want HeaderItem
	}{
		{"STRT.M  4400.0 : START DEPTH", HeaderItem{"STRT", "M", "4400.0", "START DEPTH"}},
		{"DTCO.US/F : SONIC", HeaderItem{"DTCO", "US/F", "", "SONIC"}},
		{"NULL.   -999.25 :", HeaderItem{"NULL", "", "-999.25", ""}},
		{"DATE.   13:45 : LOG TIME", HeaderItem{"DATE", "", "13:45", "LOG TIME"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseHeader(tt.line), tt.line)
	}
}
