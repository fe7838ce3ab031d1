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

// Package gridqc checks gridded geophysical data files against a
// protocol of variable definitions and reports what it finds as an
// ordered list of graded diagnostics.
//
// The most involved check locates values outside of a variable's valid
// range, ranks them and reports the most extreme ones together with
// their decoded time, latitude, longitude and depth.
package gridqc

import (
	"github.com/sirupsen/logrus"
)

// Version gives the version number.
const Version = "0.3.0"

// Settings holds the configuration that affects how checks report.
type Settings struct {
	// MinMax is the number of most extreme out-of-range values listed
	// per direction. Zero means only counts are reported.
	MinMax int

	// Verbosity is the reporting level. Extreme values are only itemized
	// at logrus.InfoLevel or above.
	Verbosity logrus.Level
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{MinMax: 10, Verbosity: logrus.InfoLevel}
}

// Itemize returns whether individual extreme values should be listed.
func (s Settings) Itemize() bool { return s.Verbosity >= logrus.InfoLevel && s.MinMax > 0 }

// Specifier keys.
const (
	SpecVariable   = "variable"
	SpecTimeStep   = "time_step"
	SpecCrop       = "crop"
	SpecIrrigation = "irrigation"
	SpecPFT        = "pft"
	SpecModel      = "model"
	SpecRegion     = "region"
	SpecStartYear  = "start_year"
	SpecEndYear    = "end_year"
)

// Specifiers holds the identifiers encoded in a file name, keyed by the
// Spec* constants.
type Specifiers map[string]string

// VariableName returns the name of the data variable in the file: the
// variable specifier followed by the crop, irrigation and pft
// specifiers that are set, separated by dashes.
func (s Specifiers) VariableName() string {
	name := s[SpecVariable]
	for _, k := range []string{SpecCrop, SpecIrrigation, SpecPFT} {
		if v := s[k]; v != "" {
			name += "-" + v
		}
	}
	return name
}

// File is the state of one file's check pass. It is owned by a single
// goroutine.
type File struct {
	Path       string
	Dataset    Dataset
	Specifiers Specifiers
	Protocol   *Protocol
	Settings   Settings

	*Ledger

	// VariableName is the name of the data variable in Dataset.
	VariableName string

	// Mode is the dimensionality of the data variable.
	Mode Mode

	// VerticalDimension is the name of the second dimension of a 3-D
	// data variable.
	VerticalDimension string
}

// NewFile prepares the check pass of the file at path. The data
// variable and its mode are resolved here; reporting problems with them
// is left to the checks. log may be nil.
func NewFile(path string, ds Dataset, spec Specifiers, p *Protocol, s Settings, log logrus.FieldLogger) *File {
	f := &File{
		Path:         path,
		Dataset:      ds,
		Specifiers:   spec,
		Protocol:     p,
		Settings:     s,
		Ledger:       NewLedger(log),
		VariableName: spec.VariableName(),
	}
	if v, ok := ds.Variable(f.VariableName); ok {
		f.Mode = ModeFromRank(len(v.Dimensions()))
		if f.Mode == Mode3D {
			f.VerticalDimension = v.Dimensions()[1]
		}
	}
	return f
}
