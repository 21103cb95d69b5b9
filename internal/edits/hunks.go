// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package edits

import "iter"

// Hunk describes a sequence of consecutive line operations with surrounding context.
type Hunk struct {
	OldStart, OldCount int  // 1-based first line and number of lines in the old text.
	NewStart, NewCount int  // 1-based first line and number of lines in the new text.
	Ops                []Op // One op per line.
}

// Hunks groups ops into hunks with context unchanged lines before and after every change. Hunks
// whose context would touch or overlap are merged into one.
//
// ops must contain one op per line, i.e. they must not be merged. If there are no changes, the
// result is nil.
func Hunks(ops []Op, context int) []Hunk {
	context = max(0, context)

	// Counting the hunks first is cheap and allows us to preallocate the output.
	n := 0
	for range ranges(ops, context) {
		n++
	}
	if n == 0 {
		return nil
	}

	out := make([]Hunk, 0, n)
	pos := 0     // current index into ops
	s, t := 0, 0 // line index of ops[pos] in old and new text
	for start, end := range ranges(ops, context) {
		for ; pos < start; pos++ {
			s, t = advance(ops[pos].Kind, s, t)
		}
		h := Hunk{
			OldStart: s + 1,
			NewStart: t + 1,
			Ops:      ops[start:end:end],
		}
		for ; pos < end; pos++ {
			s0, t0 := s, t
			s, t = advance(ops[pos].Kind, s, t)
			h.OldCount += s - s0
			h.NewCount += t - t0
		}
		out = append(out, h)
	}
	return out
}

func advance(k Kind, s, t int) (int, int) {
	switch k {
	case Equal:
		return s + 1, t + 1
	case Delete:
		return s + 1, t
	case Add:
		return s, t + 1
	default:
		panic("never reached")
	}
}

// ranges yields the [start, end) ranges of ops that make up hunks.
func ranges(ops []Op, context int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		start := -1 // start of the current hunk
		run := 0    // number of consecutive equal ops
		for i, op := range ops {
			if op.Kind != Equal {
				if start < 0 {
					start = max(0, i-context)
				}
				run = 0
				continue
			}
			if start < 0 {
				continue
			}
			run++
			// A run of more than 2*context equal lines separates two hunks. Finish the current one
			// with context lines after the last change.
			if run > 2*context {
				if !yield(start, i-run+1+context) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			yield(start, len(ops)-max(0, run-context))
		}
	}
}
