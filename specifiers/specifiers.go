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

// Package specifiers extracts the identifiers encoded in archive file
// names of the form
//
//	<model>_<...>_<variable>[-<crop>][-<irrigation>][-<pft>]_<region>_<time step>_<start year>_<end year>.nc
package specifiers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/isimip/gridqc"
)

// ErrNoMatch is returned for file names that do not follow the naming
// convention.
var ErrNoMatch = errors.New("specifiers: file name does not match the naming convention")

// TimeSteps are the valid time step specifiers.
var TimeSteps = []string{"daily", "monthly", "annual", "decadal", "seasonal"}

// Parse returns the specifiers of the file at path. Crop, irrigation and
// pft suffixes of the variable are recognized from the vocabularies of
// p, which may be nil.
func Parse(path string, p *gridqc.Protocol) (gridqc.Specifiers, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	tokens := strings.Split(name, "_")
	if filepath.Ext(base) != ".nc" || len(tokens) < 6 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, base)
	}
	n := len(tokens)
	s := gridqc.Specifiers{
		gridqc.SpecModel:     tokens[0],
		gridqc.SpecRegion:    tokens[n-4],
		gridqc.SpecTimeStep:  tokens[n-3],
		gridqc.SpecStartYear: tokens[n-2],
		gridqc.SpecEndYear:   tokens[n-1],
	}
	if !contains(TimeSteps, s[gridqc.SpecTimeStep]) {
		return nil, fmt.Errorf("%w: %s: invalid time step %q", ErrNoMatch, base, s[gridqc.SpecTimeStep])
	}
	for _, k := range []string{gridqc.SpecStartYear, gridqc.SpecEndYear} {
		if !isYear(s[k]) {
			return nil, fmt.Errorf("%w: %s: invalid year %q", ErrNoMatch, base, s[k])
		}
	}
	if s[gridqc.SpecStartYear] > s[gridqc.SpecEndYear] {
		return nil, fmt.Errorf("%w: %s: start year after end year", ErrNoMatch, base)
	}
	if err := parseVariable(tokens[n-5], p, s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoMatch, base, err)
	}
	return s, nil
}

// parseVariable splits a variable token such as "yield-mai-firr" into
// the variable and its suffixes.
func parseVariable(tok string, p *gridqc.Protocol, s gridqc.Specifiers) error {
	parts := strings.SplitN(tok, "-", 2)
	if parts[0] == "" {
		return errors.New("empty variable")
	}
	s[gridqc.SpecVariable] = parts[0]
	if len(parts) == 1 {
		return nil
	}
	rest := parts[1]
	if p == nil {
		return fmt.Errorf("unknown variable suffix %q", rest)
	}
	for _, suffix := range []struct {
		key   string
		vocab []string
	}{
		{gridqc.SpecCrop, p.Crops},
		{gridqc.SpecIrrigation, p.Irrigations},
		{gridqc.SpecPFT, p.PFTs},
	} {
		if rest == "" {
			break
		}
		for _, v := range suffix.vocab {
			if rest == v || strings.HasPrefix(rest, v+"-") {
				s[suffix.key] = v
				rest = strings.TrimPrefix(strings.TrimPrefix(rest, v), "-")
				break
			}
		}
	}
	if rest != "" {
		return fmt.Errorf("unknown variable suffix %q", rest)
	}
	return nil
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
