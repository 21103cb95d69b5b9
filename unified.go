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

package linediff

import (
	"fmt"
	"strings"

	"znkr.io/linediff/internal/edits"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

const defaultPath = "unknown"

// Unified is a diff in unified format.
type Unified struct {
	// Diff contains the lines of the diff joined with "\n", without a trailing newline. It's empty
	// if there are no changes.
	Diff string

	// Truncated is set if the diff was cut to fit the maximum number of output lines.
	Truncated bool
}

// unifiedWriter writes lines up to a maximum.
type unifiedWriter struct {
	b         strings.Builder
	n         int // number of lines written
	max       int
	truncated bool
}

// fits reports if a group of n header lines and at least one line after it fit into the output.
// If they don't, the output is marked as truncated.
func (w *unifiedWriter) fits(n int) bool {
	if w.n+n+1 > w.max {
		w.truncated = true
		return false
	}
	return true
}

// line writes a line consisting of prefix and text or marks the output as truncated if the
// maximum is reached.
func (w *unifiedWriter) line(prefix, text string) bool {
	if w.n >= w.max {
		w.truncated = true
		return false
	}
	if w.n > 0 {
		w.b.WriteByte('\n')
	}
	w.b.WriteString(prefix)
	w.b.WriteString(text)
	w.n++
	return true
}

func format(path string, hunks []edits.Hunk, maxLines int) Unified {
	if len(hunks) == 0 {
		return Unified{}
	}
	if path == "" {
		path = defaultPath
	}

	w := &unifiedWriter{max: maxLines}
	// The file headers are only useful together with the first hunk header.
	if !w.fits(4) {
		return Unified{Truncated: true}
	}
	w.line("diff --git a/"+path+" b/", path)
	w.line("--- a/", path)
	w.line("+++ b/", path)

outer:
	for _, h := range hunks {
		if !w.fits(1) {
			break
		}
		w.line(fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount), "")
		for _, op := range h.Ops {
			var prefix string
			switch op.Kind {
			case edits.Equal:
				prefix = prefixMatch
			case edits.Delete:
				prefix = prefixDelete
			case edits.Add:
				prefix = prefixInsert
			}
			if !w.line(prefix, op.Text) {
				break outer
			}
		}
	}
	return Unified{Diff: w.b.String(), Truncated: w.truncated}
}
