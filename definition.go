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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
)

// ErrMissingDefinition is returned when the protocol has no definition
// for a variable.
var ErrMissingDefinition = errors.New("gridqc: missing definition")

// Definition is the protocol's description of one variable.
type Definition struct {
	Name string

	// Units are the expected units. Empty means unspecified.
	Units string

	// ValidMin and ValidMax bound the valid values. The range is only
	// checked when both are set.
	ValidMin, ValidMax *float64

	// Dimensions is a custom dimension order. When empty, the default
	// order for the file's dimensionality applies.
	Dimensions []string
}

// HasRange returns whether both ValidMin and ValidMax are set.
func (d *Definition) HasRange() bool { return d.ValidMin != nil && d.ValidMax != nil }

// Protocol holds the variable definitions and vocabularies that files
// are checked against.
type Protocol struct {
	Definitions map[string]*Definition

	// TimeUnits are the allowed values of time.units.
	TimeUnits []string

	// Crops, Irrigations and PFTs are the allowed variable name suffixes.
	Crops, Irrigations, PFTs []string
}

type protocolFile struct {
	Time struct {
		Units []string `toml:"units"`
	} `toml:"time"`
	Specifiers struct {
		Crop       []string `toml:"crop"`
		Irrigation []string `toml:"irrigation"`
		PFT        []string `toml:"pft"`
	} `toml:"specifiers"`
	Variable map[string]struct {
		Units      string      `toml:"units"`
		ValidMin   interface{} `toml:"valid_min"`
		ValidMax   interface{} `toml:"valid_max"`
		Dimensions []string    `toml:"dimensions"`
	} `toml:"variable"`
}

// LoadProtocol reads a protocol definition file in TOML format.
func LoadProtocol(path string) (*Protocol, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("gridqc: opening protocol: %v", err)
	}
	defer f.Close()
	p, err := DecodeProtocol(f)
	if err != nil {
		return nil, fmt.Errorf("gridqc: reading protocol %s: %v", path, err)
	}
	return p, nil
}

// DecodeProtocol decodes a TOML protocol definition, for example
//
//	[time]
//	units = ["days since 1661-01-01 00:00:00"]
//
//	[variable.tas]
//	units = "K"
//	valid_min = 150
//	valid_max = 350
func DecodeProtocol(r io.Reader) (*Protocol, error) {
	var pf protocolFile
	if _, err := toml.DecodeReader(r, &pf); err != nil {
		return nil, err
	}
	p := &Protocol{
		Definitions: make(map[string]*Definition, len(pf.Variable)),
		TimeUnits:   pf.Time.Units,
		Crops:       pf.Specifiers.Crop,
		Irrigations: pf.Specifiers.Irrigation,
		PFTs:        pf.Specifiers.PFT,
	}
	for name, v := range pf.Variable {
		d := &Definition{Name: name, Units: v.Units, Dimensions: v.Dimensions}
		var err error
		if d.ValidMin, err = bound(v.ValidMin); err != nil {
			return nil, fmt.Errorf("variable %s: valid_min: %v", name, err)
		}
		if d.ValidMax, err = bound(v.ValidMax); err != nil {
			return nil, fmt.Errorf("variable %s: valid_max: %v", name, err)
		}
		p.Definitions[name] = d
	}
	return p, nil
}

// bound converts an optional TOML number, which may have been written
// as an integer, into a float.
func bound(v interface{}) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Definition returns the definition of the named variable. The error
// wraps ErrMissingDefinition if there is none.
func (p *Protocol) Definition(name string) (*Definition, error) {
	if p != nil {
		if d, ok := p.Definitions[name]; ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w for variable %s", ErrMissingDefinition, name)
}

// Mode is the dimensionality of a file's main variable.
type Mode int

// The dimensionality modes. ModeUnknown means the variable rank is
// neither 3 nor 4.
const (
	ModeUnknown Mode = iota
	Mode2D
	Mode3D
)

// ModeFromRank returns the mode of a variable with the given number of
// dimensions.
func ModeFromRank(rank int) Mode {
	switch rank {
	case 3:
		return Mode2D
	case 4:
		return Mode3D
	}
	return ModeUnknown
}

func (m Mode) String() string {
	switch m {
	case Mode2D:
		return "2D"
	case Mode3D:
		return "3D"
	}
	return "unknown"
}

// DefaultDimensions returns the canonical dimension order for m.
func DefaultDimensions(m Mode) []string {
	switch m {
	case Mode2D:
		return []string{"time", "lat", "lon"}
	case Mode3D:
		return []string{"time", "depth", "lat", "lon"}
	}
	return nil
}

// AllowedDimensions returns the dimension tuples a variable defined by
// d may have in a file of mode m: the definition's own order, if it has
// one, and always the default order for m.
func AllowedDimensions(d *Definition, m Mode) [][]string {
	def := DefaultDimensions(m)
	if d != nil && len(d.Dimensions) > 0 {
		return [][]string{d.Dimensions, def}
	}
	return [][]string{def}
}

// dimensionsAllowed returns whether dims equals one of allowed.
func dimensionsAllowed(dims []string, allowed [][]string) bool {
	for _, a := range allowed {
		if equalStrings(dims, a) {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
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
