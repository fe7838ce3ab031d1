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

import "net/mail"

// checkAttributes checks the global institution and contact attributes.
func checkAttributes(f *File) {
	if _, ok := f.Dataset.Attribute("institution"); !ok {
		f.Warn("institution is missing.")
	}
	a, ok := f.Dataset.Attribute("contact")
	if !ok || a.String() == "" {
		f.Warn("contact is missing.")
		return
	}
	if _, err := mail.ParseAddress(a.String()); err != nil {
		f.Warn("contact=\"%s\" is not a proper address.", a.String())
	}
}
