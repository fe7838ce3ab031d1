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
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func loadTestProtocol(t *testing.T) *Protocol {
	p, err := LoadProtocol("testdata/protocol.toml")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadProtocol(t *testing.T) {
	p := loadTestProtocol(t)

	tas, err := p.Definition("tas")
	if err != nil {
		t.Fatal(err)
	}
	if tas.Units != "K" || !tas.HasRange() || *tas.ValidMin != 150 || *tas.ValidMax != 350 {
		t.Errorf("tas: %# v", pretty.Formatter(tas))
	}
	if tas.Dimensions != nil {
		t.Errorf("tas dimensions: have %v, want none", tas.Dimensions)
	}

	thetao, err := p.Definition("thetao")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"time", "olevel", "lat", "lon"}
	if !reflect.DeepEqual(thetao.Dimensions, want) {
		t.Errorf("thetao dimensions: have %v, want %v", thetao.Dimensions, want)
	}

	soil, err := p.Definition("soilmoist")
	if err != nil {
		t.Fatal(err)
	}
	if soil.HasRange() {
		t.Error("soilmoist should have no range")
	}

	if len(p.TimeUnits) != 4 || p.TimeUnits[0] != "days since 1661-01-01 00:00:00" {
		t.Errorf("time units: %v", p.TimeUnits)
	}
	if !reflect.DeepEqual(p.Irrigations, []string{"firr", "noirr"}) {
		t.Errorf("irrigations: %v", p.Irrigations)
	}
}

func TestMissingDefinition(t *testing.T) {
	p := loadTestProtocol(t)
	_, err := p.Definition("nonexistent")
	if !errors.Is(err, ErrMissingDefinition) {
		t.Errorf("have %v, want ErrMissingDefinition", err)
	}
	var nilProtocol *Protocol
	if _, err := nilProtocol.Definition("tas"); !errors.Is(err, ErrMissingDefinition) {
		t.Errorf("nil protocol: have %v, want ErrMissingDefinition", err)
	}
}

func TestDecodeProtocolBadBound(t *testing.T) {
	_, err := DecodeProtocol(strings.NewReader(`
[variable.tas]
valid_min = "cold"
`))
	if err == nil {
		t.Error("expected an error for a non-numeric valid_min")
	}
}

func TestModeFromRank(t *testing.T) {
	for rank, want := range map[int]Mode{2: ModeUnknown, 3: Mode2D, 4: Mode3D, 5: ModeUnknown} {
		if m := ModeFromRank(rank); m != want {
			t.Errorf("rank %d: have %s, want %s", rank, m, want)
		}
	}
}

func TestAllowedDimensions(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition
		mode Mode
		dims []string
		ok   bool
	}{
		{"2d default, no definition dims", &Definition{}, Mode2D, []string{"time", "lat", "lon"}, true},
		{"2d default, matching explicit dims", &Definition{Dimensions: []string{"time", "lat", "lon"}}, Mode2D, []string{"time", "lat", "lon"}, true},
		{"2d default, other explicit dims", &Definition{Dimensions: []string{"time", "lon", "lat"}}, Mode2D, []string{"time", "lat", "lon"}, true},
		{"explicit order", &Definition{Dimensions: []string{"time", "lon", "lat"}}, Mode2D, []string{"time", "lon", "lat"}, true},
		{"neither", &Definition{Dimensions: []string{"time", "lon", "lat"}}, Mode2D, []string{"lat", "lon", "time"}, false},
		{"swapped without explicit dims", &Definition{}, Mode2D, []string{"time", "lon", "lat"}, false},
		{"3d default", &Definition{}, Mode3D, []string{"time", "depth", "lat", "lon"}, true},
		{"3d explicit", &Definition{Dimensions: []string{"time", "olevel", "lat", "lon"}}, Mode3D, []string{"time", "olevel", "lat", "lon"}, true},
		{"2d dims in 3d mode", &Definition{}, Mode3D, []string{"time", "lat", "lon"}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			allowed := AllowedDimensions(test.def, test.mode)
			if ok := dimensionsAllowed(test.dims, allowed); ok != test.ok {
				t.Errorf("%v in %v: have %v, want %v", test.dims, allowed, ok, test.ok)
			}
		})
	}
}

func TestAllowedDimensionsTiers(t *testing.T) {
	have := AllowedDimensions(&Definition{Dimensions: []string{"time", "olevel", "lat", "lon"}}, Mode3D)
	want := [][]string{{"time", "olevel", "lat", "lon"}, {"time", "depth", "lat", "lon"}}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
	have = AllowedDimensions(nil, Mode2D)
	want = [][]string{{"time", "lat", "lon"}}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
}
