/*
Copyright © 2026 the gridqc authors.
This file is part of gridqc.

gridqc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

gridqc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with gridqc.  If not, see <http://www.gnu.org/licenses/>.
*/

package ncdata

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/isimip/gridqc"
	"github.com/kr/pretty"
)

// writeTestFile writes a small file with a time record dimension and a
// (time, lat, lon) variable tas with values 0, 1, 2, ...
func writeTestFile(t *testing.T, record bool) string {
	ntime := 3
	timeLen := ntime
	if record {
		timeLen = 0
	}
	h := cdf.NewHeader([]string{"time", "lat", "lon"}, []int{timeLen, 2, 4})
	h.AddAttribute("", "institution", "PIK")
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "days since 1661-01-01 00:00:00")
	h.AddAttribute("time", "calendar", "proleptic_gregorian")
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddVariable("lon", []string{"lon"}, []float64{0})
	h.AddVariable("tas", []string{"time", "lat", "lon"}, []float32{0})
	h.AddAttribute("tas", "units", "K")
	h.AddAttribute("tas", "_FillValue", []float32{1e20})
	h.AddAttribute("tas", "scale_factor", []int16{2})
	h.Define()

	path := filepath.Join(t.TempDir(), "test.nc")
	w, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	f, err := cdf.Create(w, h)
	if err != nil {
		t.Fatal(err)
	}
	tas := make([]float32, ntime*2*4)
	for i := range tas {
		tas[i] = float32(i)
	}
	for name, data := range map[string]interface{}{
		"time": []float64{0, 31, 59},
		"lat":  []float64{-0.25, 0.25},
		"lon":  []float64{-0.75, -0.25, 0.25, 0.75},
		"tas":  tas,
	} {
		writeVar(t, f, name, data)
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeVar writes all of data to variable v. Filling a fixed-size
// variable exactly ends with io.EOF.
func writeVar(t *testing.T, f *cdf.File, v string, data interface{}) {
	n, err := f.Writer(v, nil, nil).Write(data)
	if err == io.EOF && n == reflect.ValueOf(data).Len() {
		err = nil
	}
	if err != nil {
		t.Fatalf("writing %s: %v", v, err)
	}
}

func TestOpen(t *testing.T) {
	for _, record := range []bool{false, true} {
		d, err := Open(writeTestFile(t, record))
		if err != nil {
			t.Fatal(err)
		}

		wantDims := []gridqc.Dimension{{Name: "time", Size: 3}, {Name: "lat", Size: 2}, {Name: "lon", Size: 4}}
		if have := d.Dimensions(); !reflect.DeepEqual(have, wantDims) {
			t.Errorf("record %v: %v", record, pretty.Diff(have, wantDims))
		}
		if have := d.Variables(); !reflect.DeepEqual(have, []string{"time", "lat", "lon", "tas"}) {
			t.Errorf("variables: %v", have)
		}
		if a, ok := d.Attribute("institution"); !ok || a.String() != "PIK" {
			t.Errorf("institution: %v %v", a, ok)
		}
		if _, ok := d.Attribute("contact"); ok {
			t.Error("contact should be missing")
		}

		v, ok := d.Variable("tas")
		if !ok {
			t.Fatal("missing tas")
		}
		if !reflect.DeepEqual(v.Shape(), []int{3, 2, 4}) {
			t.Errorf("shape: %v", v.Shape())
		}
		if v.DType() != "float32" {
			t.Errorf("dtype: %s", v.DType())
		}
		if _, ok := v.Chunking(); ok {
			t.Error("classic files are not chunked")
		}
		if a, ok := v.Attribute("_FillValue"); !ok || a.String() != "1e+20" {
			t.Errorf("_FillValue: %v", a)
		}
		if a, ok := v.Attribute("scale_factor"); !ok || a.String() != "2" {
			t.Errorf("scale_factor: %v", a)
		}

		var offsets []int
		var values []float64
		err = v.Slabs(func(offset int, slab []float64) error {
			offsets = append(offsets, offset)
			values = append(values, slab...)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(offsets, []int{0, 8, 16}) {
			t.Errorf("offsets: %v", offsets)
		}
		for i, x := range values {
			if x != float64(i) {
				t.Fatalf("record %v: value %d is %v", record, i, x)
			}
		}

		tv, _ := d.Variable("time")
		times, err := tv.Values()
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(times, []float64{0, 31, 59}) {
			t.Errorf("record %v: times %v", record, times)
		}
		if err := d.Close(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestVariableCaseInsensitive(t *testing.T) {
	d, err := Open(writeTestFile(t, false))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	v, ok := d.Variable("TAS")
	if !ok || v.Name() != "tas" {
		t.Errorf("have %v %v, want tas", v, ok)
	}
	if _, ok := d.Variable("pr"); ok {
		t.Error("pr should be missing")
	}
}

func TestCheckFile(t *testing.T) {
	d, err := Open(writeTestFile(t, true))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	v, _ := d.Variable("tas")
	r, err := gridqc.Scanner{Min: 0, Max: 40, K: 2}.Scan(v)
	if err != nil {
		t.Fatal(err)
	}
	// Values are scaled by 2: 0, 2, ..., 46.
	want := []gridqc.Violation{{Index: 23, Value: 46}, {Index: 22, Value: 44}}
	if r.HighCount != 3 || !reflect.DeepEqual(r.Highest, want) {
		t.Errorf("have %d high %v", r.HighCount, r.Highest)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "none.nc")); err == nil {
		t.Error("expected an error")
	}
}
