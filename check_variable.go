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

// checkMode reports whether the data variable exists and has a
// supported number of dimensions.
func checkMode(f *File) {
	v, ok := f.Dataset.Variable(f.VariableName)
	if !ok {
		f.Error("Variable %s is missing.", f.VariableName)
		return
	}
	switch f.Mode {
	case Mode2D:
		f.Info("Variable %s is 2D %s.", f.VariableName, formatTuple(v.Dimensions()))
	case Mode3D:
		f.Info("Variable %s is 3D %s with vertical dimension %s.", f.VariableName,
			formatTuple(v.Dimensions()), f.VerticalDimension)
	default:
		f.Error("Variable %s has %d dimensions but must have 3 or 4.", f.VariableName, len(v.Dimensions()))
	}
}

// checkVariable checks the data variable against its protocol
// definition: name, dtype, chunking, dimensions, units, missing values
// and the valid range of its values.
func checkVariable(f *File) {
	name := f.Specifiers[SpecVariable]
	v, ok := f.Dataset.Variable(f.VariableName)
	if !ok {
		f.Error("Variable %s is missing.", f.VariableName)
		return
	}
	def, err := f.Protocol.Definition(name)
	if err != nil {
		f.Error("Definition for variable %s is missing.", name)
		return
	}

	if v.Name() != f.VariableName {
		f.Error("File name variable (%s) does not match internal variable name (%s).", f.VariableName, v.Name())
	}

	if v.DType() != "float32" {
		f.Warn("%s.dtype=\"%s\" should be \"float32\".", f.VariableName, v.DType())
	}

	c, chunked := v.Chunking()
	if !chunked || len(c) < 3 || c[0] != 1 || c[len(c)-2] != gridRows || c[len(c)-1] != gridColumns {
		f.Warn("%s.chunking=%s should be [1, ... , %d, %d].", f.VariableName, formatChunking(c, chunked), gridRows, gridColumns)
	} else {
		f.Info("Variable chunking looks good (%s)", formatChunking(c, chunked))
	}

	if f.Mode != ModeUnknown {
		checkDimensions(f, v, def)
	}
	checkUnits(f, v, def)
	checkFillValues(f, v)

	if f.Mode != ModeUnknown {
		checkRange(f, v, def)
	}
}

// checkDimensions reports an error if the dimensions of v are not one
// of the tuples allowed by def for the file's mode.
func checkDimensions(f *File, v Variable, def *Definition) {
	allowed := AllowedDimensions(def, f.Mode)
	if dimensionsAllowed(v.Dimensions(), allowed) {
		return
	}
	if len(allowed) > 1 {
		f.Error("%s dimension %s must be %s or %s.", f.VariableName,
			formatTuple(v.Dimensions()), formatTuple(allowed[0]), formatTuple(allowed[1]))
		return
	}
	f.Error("%s dimension %s must be %s.", f.VariableName,
		formatTuple(v.Dimensions()), formatTuple(allowed[0]))
}

func checkUnits(f *File, v Variable, def *Definition) {
	if def.Units == "" {
		f.Warn("No units information on %s in definition.", f.VariableName)
		return
	}
	units, ok := textAttribute(v, "units")
	switch {
	case !ok:
		f.Error("%s.units is missing. Should be \"%s\".", f.VariableName, def.Units)
	case units != def.Units:
		f.Error("%s.units=%s should be %s.", f.VariableName, units, def.Units)
	default:
		f.Info("Variable unit matches protocol definition (%s)", units)
	}
}

// checkFillValues requires both _FillValue and missing_value to be set
// to the fill value. Both a missing and a wrong value are errors here.
func checkFillValues(f *File, v Variable) {
	for _, attr := range []string{"_FillValue", "missing_value"} {
		a, ok := v.Attribute(attr)
		switch {
		case !ok:
			f.Error("Missing value attribute \"%s\" for variable \"%s\" is missing. Should be set to 1e+20.", attr, f.VariableName)
		case !isFillValue(a):
			f.Error("Missing values for variable \"%s\": %s=%s but should be 1e+20.", f.VariableName, attr, a)
		default:
			f.Info("Missing value attribute \"%s\" is properly set.", attr)
		}
	}
}

// checkRange scans the values of v against the valid range of def.
func checkRange(f *File, v Variable, def *Definition) {
	if !def.HasRange() {
		f.Info("No min and/or max definition found for variable \"%s\".", f.VariableName)
		return
	}
	f.Info("Checking values for valid minimum and maximum range defined in the protocol. This could take some time...")
	s := Scanner{Min: *def.ValidMin, Max: *def.ValidMax, K: f.Settings.MinMax}
	r, err := s.Scan(v)
	if err != nil {
		f.Error("Values of %s could not be read: %v", f.VariableName, err)
		return
	}
	a := Assembler{Ledger: f.Ledger, Settings: f.Settings}
	if f.Settings.Itemize() && !r.Clean() {
		a.Mapper = NewCoordinateMapper(f.Dataset, f.Mode, f.Specifiers[SpecTimeStep])
	}
	a.Report(r, *def.ValidMin, *def.ValidMax)
}
