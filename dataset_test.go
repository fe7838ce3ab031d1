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

package gridqc

import "testing"

// memDataset is an in-memory Dataset for testing.
type memDataset struct {
	dims  []Dimension
	vars  []*memVariable
	attrs map[string]Attribute
}

func (d *memDataset) Dimensions() []Dimension { return d.dims }

func (d *memDataset) Variables() []string {
	names := make([]string, len(d.vars))
	for i, v := range d.vars {
		names[i] = v.name
	}
	return names
}

func (d *memDataset) Variable(name string) (Variable, bool) {
	for _, v := range d.vars {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

func (d *memDataset) Attribute(name string) (Attribute, bool) {
	a, ok := d.attrs[name]
	return a, ok
}

func (d *memDataset) add(v *memVariable) *memVariable {
	d.vars = append(d.vars, v)
	return v
}

func (d *memDataset) remove(name string) {
	for i, v := range d.vars {
		if v.name == name {
			d.vars = append(d.vars[:i], d.vars[i+1:]...)
			return
		}
	}
}

type memVariable struct {
	name     string
	dims     []string
	shape    []int
	dtype    string
	chunking []int
	attrs    map[string]Attribute
	data     []float64

	slabCalls int
}

func (v *memVariable) Name() string         { return v.name }
func (v *memVariable) Dimensions() []string { return v.dims }
func (v *memVariable) Shape() []int         { return v.shape }
func (v *memVariable) DType() string        { return v.dtype }

func (v *memVariable) Chunking() ([]int, bool) { return v.chunking, v.chunking != nil }

func (v *memVariable) Attribute(name string) (Attribute, bool) {
	a, ok := v.attrs[name]
	return a, ok
}

func (v *memVariable) Values() ([]float64, error) { return v.data, nil }

func (v *memVariable) Slabs(fn func(offset int, slab []float64) error) error {
	v.slabCalls++
	if len(v.shape) < 2 {
		return fn(0, v.data)
	}
	n := 1
	for _, s := range v.shape[1:] {
		n *= s
	}
	for i := 0; i < v.shape[0]; i++ {
		if err := fn(i*n, v.data[i*n:(i+1)*n]); err != nil {
			return err
		}
	}
	return nil
}

func (v *memVariable) set(name string, a Attribute) *memVariable {
	if v.attrs == nil {
		v.attrs = make(map[string]Attribute)
	}
	v.attrs[name] = a
	return v
}

// axis returns the n cell centers of a global half degree grid axis,
// starting at -edge.
func axis(n int, edge float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = -edge + float64(i)*0.5
	}
	return vals
}

// testGrid returns a dataset with a well-formed global grid and a data
// variable tas of the given shape, either (time, lat, lon) or
// (time, depth, lat, lon), filled with fill.
func testGrid(ntime, ndepth int, fill float64) *memDataset {
	ds := &memDataset{attrs: map[string]Attribute{
		"institution": TextAttribute("PIK"),
		"contact":     TextAttribute("Jane Doe <jane.doe@example.org>"),
	}}
	ds.dims = []Dimension{{"lon", gridColumns}, {"lat", gridRows}, {"time", ntime}}
	ds.add(&memVariable{name: "lon", dims: []string{"lon"}, shape: []int{gridColumns}, dtype: "float64",
		data: axis(gridColumns, gridLonEdge)}).
		set("axis", TextAttribute("X")).
		set("standard_name", TextAttribute("longitude")).
		set("long_name", TextAttribute("Longitude")).
		set("units", TextAttribute("degrees_east"))
	ds.add(&memVariable{name: "lat", dims: []string{"lat"}, shape: []int{gridRows}, dtype: "float64",
		data: axis(gridRows, gridLatEdge)}).
		set("axis", TextAttribute("Y")).
		set("standard_name", TextAttribute("latitude")).
		set("long_name", TextAttribute("Latitude")).
		set("units", TextAttribute("degrees_north"))
	times := make([]float64, ntime)
	for i := range times {
		times[i] = float64(i)
	}
	ds.add(&memVariable{name: "time", dims: []string{"time"}, shape: []int{ntime}, dtype: "float64", data: times}).
		set("axis", TextAttribute("T")).
		set("standard_name", TextAttribute("time")).
		set("long_name", TextAttribute("Time axis")).
		set("units", TextAttribute("days since 1661-01-01 00:00:00")).
		set("calendar", TextAttribute("proleptic_gregorian"))

	v := &memVariable{name: "tas", dtype: "float32"}
	if ndepth > 0 {
		ds.dims = append(ds.dims, Dimension{"depth", ndepth})
		v.dims = []string{"time", "depth", "lat", "lon"}
		v.shape = []int{ntime, ndepth, gridRows, gridColumns}
		v.chunking = []int{1, 1, gridRows, gridColumns}
	} else {
		v.dims = []string{"time", "lat", "lon"}
		v.shape = []int{ntime, gridRows, gridColumns}
		v.chunking = []int{1, gridRows, gridColumns}
	}
	n := 1
	for _, s := range v.shape {
		n *= s
	}
	v.data = make([]float64, n)
	for i := range v.data {
		v.data[i] = fill
	}
	v.set("units", TextAttribute("K")).
		set("_FillValue", NumberAttribute(1e20)).
		set("missing_value", NumberAttribute(1e20))
	ds.add(v)
	return ds
}

func TestAttribute(t *testing.T) {
	a := TextAttribute("K")
	if s, ok := a.Text(); !ok || s != "K" {
		t.Errorf("have %q %v, want K true", s, ok)
	}
	if _, ok := a.Float(); ok {
		t.Error("text attribute should not be a number")
	}
	n := NumberAttribute(1e20)
	if f, ok := n.Float(); !ok || f != 1e20 {
		t.Errorf("have %v %v, want 1e20 true", f, ok)
	}
	if n.String() != "1e+20" {
		t.Errorf("have %s, want 1e+20", n)
	}
	if _, ok := NumberAttribute().Float(); ok {
		t.Error("empty numeric attribute should have no value")
	}
	if s := NumberAttribute(1, 2.5).String(); s != "[1 2.5]" {
		t.Errorf("have %s, want [1 2.5]", s)
	}
}

func TestFloat32Attribute(t *testing.T) {
	a := Float32Attribute(1e20)
	if f, _ := a.Float(); f != float64(float32(1e20)) {
		t.Errorf("have %v, want the float32 value widened", f)
	}
	for _, test := range []struct {
		a    Attribute
		want string
	}{
		{a, "1e+20"},
		{Float32Attribute(0.1, 350.1), "[0.1 350.1]"},
		{Float32Attribute(-9999), "-9999"},
	} {
		if have := test.a.String(); have != test.want {
			t.Errorf("have %s, want %s", have, test.want)
		}
	}
	if !isFillValue(a) {
		t.Error("a float32 1e20 should be accepted as the fill value")
	}
}

func TestFormatTuple(t *testing.T) {
	if s := formatTuple([]string{"time", "lat", "lon"}); s != "('time', 'lat', 'lon')" {
		t.Errorf("have %s", s)
	}
	if s := formatTuple([]string{"lon"}); s != "('lon',)" {
		t.Errorf("have %s", s)
	}
	if s := formatShape([]int{720}); s != "(720,)" {
		t.Errorf("have %s", s)
	}
}

func TestAxis(t *testing.T) {
	lat := axis(gridRows, gridLatEdge)
	if lat[0] != -gridLatEdge || lat[gridRows-1] != gridLatEdge {
		t.Errorf("lat spans %v to %v", lat[0], lat[gridRows-1])
	}
}
