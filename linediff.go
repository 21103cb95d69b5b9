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
	"znkr.io/linediff/internal/config"
	"znkr.io/linediff/internal/edits"
	"znkr.io/linediff/internal/lines"
	"znkr.io/linediff/internal/myers"
)

// Kind describes the kind of an edit operation.
type Kind = edits.Kind

const (
	Equal  = edits.Equal  // A line present in both texts
	Add    = edits.Add    // A line only present in the new text
	Delete = edits.Delete // A line only present in the old text
)

// Op is a single operation of an edit script.
//
// Text holds the affected line without its terminator. In the output of [EditScript], consecutive
// lines with the same kind are merged into one Op and joined with "\n".
type Op = edits.Op

// Hunk describes a sequence of consecutive changes with surrounding context lines.
//
// OldStart and NewStart are 1-based line numbers. Ops contains one Op per line.
type Hunk = edits.Hunk

// Stats summarizes a diff.
type Stats struct {
	Added   int // Number of lines only present in the new text.
	Removed int // Number of lines only present in the old text.
}

// ComputeStats compares the lines in oldText and newText and returns the number of added and
// removed lines of a minimal edit script.
//
// If either text has more lines than allowed by [MaxLines], no comparison is performed and ok is
// false.
//
// The following option is supported: [MaxLines]
func ComputeStats(oldText, newText string, opts ...Option) (stats Stats, ok bool) {
	cfg := config.FromOptions(opts, config.MaxLines)
	x, y, ok := split(oldText, newText, cfg)
	if !ok {
		return Stats{}, false
	}

	tr := myers.Search(x, y)
	var c myers.Counts
	myers.Backtrack(tr, x, y, &c)
	return Stats{Added: c.Insertions, Removed: c.Deletions}, true
}

// EditScript compares the lines in oldText and newText and returns a minimal edit script that
// transforms one into the other. Consecutive operations of the same kind are merged.
//
// If both texts are empty, the result is empty. If either text has more lines than allowed by
// [MaxLines], no comparison is performed and ok is false.
//
// The following option is supported: [MaxLines]
func EditScript(oldText, newText string, opts ...Option) (ops []Op, ok bool) {
	cfg := config.FromOptions(opts, config.MaxLines)
	x, y, ok := split(oldText, newText, cfg)
	if !ok {
		return nil, false
	}
	return edits.Merge(script(x, y)), true
}

// Hunks compares the lines in oldText and newText and groups the changes into hunks with
// surrounding context. The amount of context can be configured using [Context].
//
// If the texts are line-identical, the output has length zero. If either text has more lines than
// allowed by [MaxLines], no comparison is performed and ok is false.
//
// The following options are supported: [Context], [MaxLines]
func Hunks(oldText, newText string, opts ...Option) (hunks []Hunk, ok bool) {
	cfg := config.FromOptions(opts, config.Context|config.MaxLines)
	x, y, ok := split(oldText, newText, cfg)
	if !ok {
		return nil, false
	}
	return edits.Hunks(script(x, y), cfg.Context), true
}

// Render compares the lines in oldText and newText and returns the changes in unified format for
// the file at path. An empty path is rendered as "unknown".
//
// The output is limited to [MaxOutputLines] lines; longer output is cut and marked as truncated.
// If the texts are line-identical, the result is the zero [Unified]. If either text has more lines
// than allowed by [MaxLines], no comparison is performed and ok is false.
//
// The following options are supported: [Context], [MaxLines], [MaxOutputLines]
func Render(oldText, newText, path string, opts ...Option) (u Unified, ok bool) {
	cfg := config.FromOptions(opts, config.Context|config.MaxLines|config.MaxOutputLines)
	x, y, ok := split(oldText, newText, cfg)
	if !ok {
		return Unified{}, false
	}
	hunks := edits.Hunks(script(x, y), cfg.Context)
	return format(path, hunks, cfg.MaxOutputLines), true
}

// split splits both texts into lines unless one of them exceeds the configured maximum.
func split(oldText, newText string, cfg config.Config) (x, y []string, ok bool) {
	// Counting is much cheaper than splitting, make sure to reject large inputs before allocating.
	if lines.Count(oldText) > cfg.MaxLines || lines.Count(newText) > cfg.MaxLines {
		return nil, nil, false
	}
	return lines.Split(oldText), lines.Split(newText), true
}

// script returns one op per line of a minimal edit script from x to y.
func script(x, y []string) []Op {
	tr := myers.Search(x, y)
	b := edits.NewBuilder(x, y, tr.D)
	myers.Backtrack(tr, x, y, b)
	return b.Ops()
}
