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

// Package ncdata provides read access to NetCDF classic files as
// gridqc datasets.
package ncdata

import (
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/isimip/gridqc"
)

// Dataset is an open NetCDF classic file.
type Dataset struct {
	file    *os.File
	cf      *cdf.File
	numRecs int
}

// Open opens the NetCDF file at path for reading.
func Open(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncdata: %v", err)
	}
	d, err := newDataset(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ncdata: opening %s: %v", path, err)
	}
	return d, nil
}

func newDataset(f *os.File) (*Dataset, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	cf, err := cdf.Open(f)
	if err != nil {
		return nil, err
	}
	if errs := cf.Header.Check(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid header: %v", errs[0])
	}
	return &Dataset{
		file:    f,
		cf:      cf,
		numRecs: int(cf.Header.NumRecs(fi.Size())),
	}, nil
}

// Close closes the underlying file.
func (d *Dataset) Close() error { return d.file.Close() }

// Dimensions returns the dimensions in file order. The record
// dimension, if any, has the current number of records as its size.
func (d *Dataset) Dimensions() []gridqc.Dimension {
	names := d.cf.Header.Dimensions("")
	lengths := d.cf.Header.Lengths("")
	dims := make([]gridqc.Dimension, len(names))
	for i, n := range names {
		l := lengths[i]
		if l == 0 {
			l = d.numRecs
		}
		dims[i] = gridqc.Dimension{Name: n, Size: l}
	}
	return dims
}

// Variables returns the variable names in file order.
func (d *Dataset) Variables() []string { return d.cf.Header.Variables() }

// Variable returns the named variable. If there is no exact match, a
// variable whose name differs only in case is returned.
func (d *Dataset) Variable(name string) (gridqc.Variable, bool) {
	names := d.cf.Header.Variables()
	for _, n := range names {
		if n == name {
			return d.variable(n), true
		}
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return d.variable(n), true
		}
	}
	return nil, false
}

func (d *Dataset) variable(name string) *variable {
	shape := append([]int(nil), d.cf.Header.Lengths(name)...)
	record := d.cf.Header.IsRecordVariable(name)
	if record {
		shape[0] = d.numRecs
	}
	return &variable{d: d, name: name, shape: shape, record: record}
}

// Attribute returns the named global attribute.
func (d *Dataset) Attribute(name string) (gridqc.Attribute, bool) {
	return attribute(d.cf.Header, "", name)
}

func attribute(h *cdf.Header, v, name string) (gridqc.Attribute, bool) {
	for _, a := range h.Attributes(v) {
		if a == name {
			return convertAttribute(h.GetAttribute(v, a))
		}
	}
	return gridqc.Attribute{}, false
}

func convertAttribute(val interface{}) (gridqc.Attribute, bool) {
	switch t := val.(type) {
	case string:
		return gridqc.TextAttribute(strings.TrimRight(t, "\x00")), true
	case []uint8:
		f := make([]float64, len(t))
		for i, x := range t {
			f[i] = float64(int8(x))
		}
		return gridqc.NumberAttribute(f...), true
	case []int16:
		f := make([]float64, len(t))
		for i, x := range t {
			f[i] = float64(x)
		}
		return gridqc.NumberAttribute(f...), true
	case []int32:
		f := make([]float64, len(t))
		for i, x := range t {
			f[i] = float64(x)
		}
		return gridqc.NumberAttribute(f...), true
	case []float32:
		return gridqc.Float32Attribute(t...), true
	case []float64:
		return gridqc.NumberAttribute(append([]float64(nil), t...)...), true
	}
	return gridqc.Attribute{}, false
}

// variable is a variable in a NetCDF classic file.
type variable struct {
	d      *Dataset
	name   string
	shape  []int
	record bool
}

func (v *variable) Name() string         { return v.name }
func (v *variable) Dimensions() []string { return v.d.cf.Header.Dimensions(v.name) }
func (v *variable) Shape() []int         { return v.shape }

// DType returns the element type in numpy notation. NetCDF BYTE is a
// signed 8-bit integer and CHAR a single character string.
func (v *variable) DType() string {
	switch v.d.cf.Header.ZeroValue(v.name, 0).(type) {
	case []uint8:
		return "int8"
	case string:
		return "S1"
	case []int16:
		return "int16"
	case []int32:
		return "int32"
	case []float32:
		return "float32"
	case []float64:
		return "float64"
	}
	return "unknown"
}

// Chunking always reports contiguous storage; NetCDF classic files are
// not chunked.
func (v *variable) Chunking() ([]int, bool) { return nil, false }

func (v *variable) Attribute(name string) (gridqc.Attribute, bool) {
	return attribute(v.d.cf.Header, v.name, name)
}

func (v *variable) size() int {
	n := 1
	for _, s := range v.shape {
		n *= s
	}
	return n
}

// Values reads the whole variable.
func (v *variable) Values() ([]float64, error) {
	n := v.size()
	if n == 0 {
		return []float64{}, nil
	}
	if !v.record || len(v.shape) == 0 {
		out := make([]float64, n)
		if err := v.read(nil, nil, out); err != nil {
			return nil, err
		}
		return out, nil
	}
	out := make([]float64, 0, n)
	err := v.Slabs(func(_ int, slab []float64) error {
		out = append(out, slab...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Slabs reads the variable one index of its first dimension at a time.
// Record variables are always read this way, as their records are not
// contiguous in the file.
func (v *variable) Slabs(fn func(offset int, slab []float64) error) error {
	if len(v.shape) == 0 || v.size() == 0 {
		return nil
	}
	if len(v.shape) < 2 && !v.record {
		vals, err := v.Values()
		if err != nil {
			return err
		}
		return fn(0, vals)
	}
	buf := sparse.ZerosDense(append([]int{1}, v.shape[1:]...)...)
	begin := make([]int, len(v.shape))
	end := make([]int, len(v.shape))
	for i := 1; i < len(v.shape); i++ {
		end[i] = v.shape[i] - 1
	}
	for i := 0; i < v.shape[0]; i++ {
		begin[0], end[0] = i, i
		if err := v.read(begin, end, buf.Elements); err != nil {
			return err
		}
		if err := fn(i*len(buf.Elements), buf.Elements); err != nil {
			return err
		}
	}
	return nil
}

// read reads the values from begin to end, both inclusive, into dst.
func (v *variable) read(begin, end []int, dst []float64) error {
	r := v.d.cf.Reader(v.name, begin, end)
	if r == nil {
		return fmt.Errorf("ncdata: no variable %s", v.name)
	}
	buf := r.Zero(len(dst))
	n, err := r.Read(buf)
	if err != nil && n < len(dst) {
		return fmt.Errorf("ncdata: reading %s: %v", v.name, err)
	}
	switch t := buf.(type) {
	case []float32:
		for i, x := range t {
			dst[i] = float64(x)
		}
	case []float64:
		copy(dst, t)
	case []int32:
		for i, x := range t {
			dst[i] = float64(x)
		}
	case []int16:
		for i, x := range t {
			dst[i] = float64(x)
		}
	case []uint8:
		for i, x := range t {
			dst[i] = float64(int8(x))
		}
	default:
		return fmt.Errorf("ncdata: variable %s is not numeric", v.name)
	}
	return nil
}
