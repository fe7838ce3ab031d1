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
	"fmt"
	"strconv"
	"strings"
)

// Dimension is a named axis of a dataset.
type Dimension struct {
	Name string
	Size int
}

// Dataset is a read-only handle to an opened gridded data file.
type Dataset interface {
	// Dimensions returns the dimensions in file order.
	Dimensions() []Dimension

	// Variables returns the variable names in file order.
	Variables() []string

	// Variable returns the named variable and whether it exists.
	Variable(name string) (Variable, bool)

	// Attribute returns the named global attribute and whether it exists.
	Attribute(name string) (Attribute, bool)
}

// Variable is an N-dimensional numeric array with attributes.
type Variable interface {
	Name() string

	// Dimensions returns the dimension names in storage order.
	Dimensions() []string

	// Shape returns the dimension sizes in storage order.
	Shape() []int

	// DType returns the numpy-style element type name, e.g. "float32".
	DType() string

	// Chunking returns the chunk shape, or false for contiguous storage.
	Chunking() ([]int, bool)

	// Attribute returns the named attribute and whether it exists.
	Attribute(name string) (Attribute, bool)

	// Values reads the whole variable. It is meant for coordinate
	// variables; use Slabs for data variables.
	Values() ([]float64, error)

	// Slabs calls fn once for each index of the first dimension, in
	// order, with the flat offset of the slab's first element and the
	// slab's elements in storage order. The slab is only valid for the
	// duration of the call. Variables with fewer than two dimensions
	// are passed as a single slab.
	Slabs(fn func(offset int, slab []float64) error) error
}

// Attribute holds an attribute value, which is either text or a list
// of numbers.
type Attribute struct {
	text    string
	numbers []float64
	isText  bool

	// bits is the width the numbers were stored with, 32 or 64.
	bits int
}

// TextAttribute returns a text attribute.
func TextAttribute(s string) Attribute { return Attribute{text: s, isText: true} }

// NumberAttribute returns a numeric attribute.
func NumberAttribute(v ...float64) Attribute { return Attribute{numbers: v, bits: 64} }

// Float32Attribute returns a numeric attribute stored in single
// precision. It prints with the shortest representation of each float32,
// so a stored 1e20 prints as 1e+20.
func Float32Attribute(v ...float32) Attribute {
	f := make([]float64, len(v))
	for i, x := range v {
		f[i] = float64(x)
	}
	return Attribute{numbers: f, bits: 32}
}

// Text returns the value and true if a is a text attribute.
func (a Attribute) Text() (string, bool) { return a.text, a.isText }

// Float returns the first value and true if a is a non-empty numeric
// attribute.
func (a Attribute) Float() (float64, bool) {
	if a.isText || len(a.numbers) == 0 {
		return 0, false
	}
	return a.numbers[0], true
}

// Floats returns the values and true if a is a numeric attribute.
func (a Attribute) Floats() ([]float64, bool) { return a.numbers, !a.isText }

func (a Attribute) String() string {
	if a.isText {
		return a.text
	}
	bits := a.bits
	if bits == 0 {
		bits = 64
	}
	q := make([]string, len(a.numbers))
	for i, x := range a.numbers {
		q[i] = strconv.FormatFloat(x, 'g', -1, bits)
	}
	if len(q) == 1 {
		return q[0]
	}
	return "[" + strings.Join(q, " ") + "]"
}

// textAttribute returns the text value of attribute name of v.
// ok is false when the attribute is missing; a numeric attribute is
// returned in its printed form.
func textAttribute(v Variable, name string) (s string, ok bool) {
	a, ok := v.Attribute(name)
	if !ok {
		return "", false
	}
	return a.String(), true
}

// formatTuple formats a dimension tuple the way the archive tools
// print them, e.g. ('time', 'lat', 'lon').
func formatTuple(dims []string) string {
	q := make([]string, len(dims))
	for i, d := range dims {
		q[i] = "'" + d + "'"
	}
	if len(q) == 1 {
		return "(" + q[0] + ",)"
	}
	return "(" + strings.Join(q, ", ") + ")"
}

// formatShape formats a shape tuple, e.g. (720,).
func formatShape(shape []int) string {
	q := make([]string, len(shape))
	for i, s := range shape {
		q[i] = fmt.Sprint(s)
	}
	if len(q) == 1 {
		return "(" + q[0] + ",)"
	}
	return "(" + strings.Join(q, ", ") + ")"
}
