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
	"container/heap"
	"sort"
)

// Direction is the side of the valid range a value falls on.
type Direction int

// The directions.
const (
	TooLow Direction = iota
	TooHigh
)

func (d Direction) String() string {
	if d == TooLow {
		return "too_low"
	}
	return "too_high"
}

// Violation is an out-of-range value and its flat (row-major) index in
// the variable.
type Violation struct {
	Index int
	Value float64
}

// Extremes keeps the K most extreme violations seen in one direction:
// the smallest values for TooLow and the largest for TooHigh. Among
// equal values the one with the lower index wins, so the result matches
// a stable sort of all violations in scan order truncated to K.
type Extremes struct {
	dir Direction
	k   int
	h   extremeHeap
}

// NewExtremes returns a selector that keeps at most k violations.
func NewExtremes(dir Direction, k int) *Extremes {
	if k < 0 {
		k = 0
	}
	return &Extremes{dir: dir, k: k, h: extremeHeap{dir: dir}}
}

// Add offers v to the selector.
func (e *Extremes) Add(v Violation) {
	if e.k == 0 {
		return
	}
	if len(e.h.v) < e.k {
		heap.Push(&e.h, v)
		return
	}
	// The root is the least extreme violation kept.
	if e.h.more(v, e.h.v[0]) {
		e.h.v[0] = v
		heap.Fix(&e.h, 0)
	}
}

// Len returns the number of violations kept.
func (e *Extremes) Len() int { return len(e.h.v) }

// Sorted returns the kept violations, most extreme first.
func (e *Extremes) Sorted() []Violation {
	out := make([]Violation, len(e.h.v))
	copy(out, e.h.v)
	sort.Slice(out, func(i, j int) bool { return e.h.more(out[i], out[j]) })
	return out
}

// extremeHeap is a heap whose root is the least extreme element.
type extremeHeap struct {
	dir Direction
	v   []Violation
}

// more returns whether a is more extreme than b.
func (h *extremeHeap) more(a, b Violation) bool {
	if a.Value == b.Value {
		return a.Index < b.Index
	}
	if h.dir == TooLow {
		return a.Value < b.Value
	}
	return a.Value > b.Value
}

func (h extremeHeap) Len() int            { return len(h.v) }
func (h extremeHeap) Less(i, j int) bool  { return h.more(h.v[j], h.v[i]) }
func (h extremeHeap) Swap(i, j int)       { h.v[i], h.v[j] = h.v[j], h.v[i] }
func (h *extremeHeap) Push(x interface{}) { h.v = append(h.v, x.(Violation)) }
func (h *extremeHeap) Pop() interface{} {
	n := len(h.v)
	x := h.v[n-1]
	h.v = h.v[:n-1]
	return x
}
