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

import (
	"strconv"
	"strings"

	"github.com/gonum/floats"
)

// The global grid spans 89.75 to -89.75 degrees latitude and -179.75 to
// 179.75 degrees longitude at 0.5 degree spacing.
const (
	gridRows    = 360
	gridColumns = 720
	gridLatEdge = 89.75
	gridLonEdge = 179.75
)

// checkDimensionVariables checks that the variables in the file start
// with the dimension variables, in dimension order.
func checkDimensionVariables(f *File) {
	dims := f.Dataset.Dimensions()
	vars := f.Dataset.Variables()
	for i := 0; i < len(dims) && i < len(vars); i++ {
		if dims[i].Name != vars[i] {
			f.Warn("%s should be %s.", vars[i], dims[i].Name)
		}
	}
}

// axisSpec describes the expected form of a coordinate variable.
type axisSpec struct {
	name         string
	size         int
	edge         float64
	axis         string
	standardName string
	longNames    []string
	units        string
}

var (
	lonAxis = axisSpec{
		name: "lon", size: gridColumns, edge: gridLonEdge, axis: "X",
		standardName: "longitude", longNames: []string{"longitude", "Longitude"},
		units: "degrees_east",
	}
	latAxis = axisSpec{
		name: "lat", size: gridRows, edge: gridLatEdge, axis: "Y",
		standardName: "latitude", longNames: []string{"latitude", "Latitude"},
		units: "degrees_north",
	}
)

func checkLon(f *File) { checkAxis(f, lonAxis) }
func checkLat(f *File) { checkAxis(f, latAxis) }

func checkAxis(f *File, s axisSpec) {
	v, ok := f.Dataset.Variable(s.name)
	if !ok {
		f.Error("%s is missing.", s.name)
		return
	}
	if shape := v.Shape(); len(shape) != 1 || shape[0] != s.size {
		f.Error("%s.shape=%s must be (%d,).", s.name, formatShape(shape), s.size)
	}
	vals, err := v.Values()
	switch {
	case err != nil:
		f.Error("%s could not be read: %v", s.name, err)
	case len(vals) > 0:
		if min := floats.Min(vals); min != -s.edge {
			f.Error("min(%s)=%v must be %v.", s.name, min, -s.edge)
		}
		if max := floats.Max(vals); max != s.edge {
			f.Error("max(%s)=%v must be %v.", s.name, max, s.edge)
		}
	}
	checkTextAttribute(f, v, "axis", s.axis)
	checkTextAttribute(f, v, "standard_name", s.standardName)
	checkTextAttribute(f, v, "long_name", s.longNames...)
	checkTextAttribute(f, v, "units", s.units)
	if v.DType() != "float64" {
		f.Warn("%s.dtype=\"%s\" should be \"float64\".", s.name, v.DType())
	}
}

// checkTextAttribute warns if attribute name of v is missing or is not
// one of want.
func checkTextAttribute(f *File, v Variable, name string, want ...string) {
	have, ok := textAttribute(v, name)
	if !ok {
		f.Warn("%s.%s is missing.", v.Name(), name)
		return
	}
	for _, w := range want {
		if have == w {
			return
		}
	}
	if len(want) == 1 {
		f.Warn("%s.%s=\"%s\" should be \"%s\".", v.Name(), name, have, want[0])
		return
	}
	f.Warn("%s.%s=\"%s\" should be one of %v.", v.Name(), name, have, want)
}

// timeUnitWords gives the leading word of time.units for each time step.
var timeUnitWords = map[string]string{
	"daily":    "days",
	"monthly":  "months",
	"annual":   "years",
	"decadal":  "decades",
	"seasonal": "seasons",
}

func checkTime(f *File) {
	v, ok := f.Dataset.Variable("time")
	if !ok {
		f.Error("time is missing.")
		return
	}
	checkTextAttribute(f, v, "axis", "T")
	checkTextAttribute(f, v, "standard_name", "time")
	checkTextAttribute(f, v, "long_name", "time", "time axis", "Time", "Time axis")

	if units, ok := textAttribute(v, "units"); !ok {
		f.Warn("time.units is missing.")
	} else {
		if f.Protocol != nil && len(f.Protocol.TimeUnits) > 0 && !containsString(f.Protocol.TimeUnits, units) {
			f.Warn("time.units=\"%s\" should be one of %v.", units, f.Protocol.TimeUnits)
		}
		if w, ok := timeUnitWords[f.Specifiers[SpecTimeStep]]; ok && !strings.HasPrefix(units, w) {
			f.Warn("time.units=\"%s\" should start with %s.", units, w)
		}
	}
	checkTextAttribute(f, v, "calendar", "proleptic_gregorian", "365_day")
	if v.DType() != "float64" {
		f.Warn("time.dtype=\"%s\" should be \"float64\".", v.DType())
	}
}

func containsString(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

// checkGridVariable is a protocol-independent check of the data
// variable's storage layout. Unlike checkVariable it reports fill value
// problems as warnings.
func checkGridVariable(f *File) {
	v, ok := f.Dataset.Variable(f.VariableName)
	if !ok {
		f.Error("Variable %s is missing.", f.VariableName)
		return
	}
	if v.DType() != "float32" {
		f.Warn("%s.dtype=\"%s\" should be \"float32\".", v.Name(), v.DType())
	}
	if c, ok := v.Chunking(); !ok || !equalInts(c, []int{1, gridRows, gridColumns}) {
		f.Warn("%s.chunking=%s should be [1, %d, %d].", v.Name(), formatChunking(c, ok), gridRows, gridColumns)
	}
	if f.Mode != ModeUnknown {
		if def := DefaultDimensions(f.Mode); !equalStrings(v.Dimensions(), def) {
			f.Error("%s dimensions %s must be %s.", v.Name(), formatTuple(v.Dimensions()), formatTuple(def))
		}
	}
	for _, name := range []string{"_FillValue", "missing_value"} {
		a, ok := v.Attribute(name)
		if !ok {
			f.Warn("%s.%s is missing.", v.Name(), name)
			continue
		}
		if !isFillValue(a) {
			f.Warn("%s.%s=\"%s\" should be 1e+20.", v.Name(), name, a)
		}
	}
}

// fillValue is the missing value required for data variables.
const fillValue = 1e20

// isFillValue returns whether a is numerically close to fillValue.
func isFillValue(a Attribute) bool {
	x, ok := a.Float()
	return ok && floats.EqualWithinRel(x, fillValue, 1e-6)
}

func formatChunking(c []int, ok bool) string {
	if !ok {
		return "contiguous"
	}
	s := make([]string, len(c))
	for i, x := range c {
		s[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
