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

// Package edits contains the line operations produced from a myers trace and the translation of
// those operations into hunks.
package edits

import (
	"slices"
	"strings"
)

// Kind is the kind of a line operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind -linecomment
type Kind int

const (
	Equal  Kind = iota // equal
	Add                // add
	Delete             // delete
)

// Op is a single operation of an edit script.
//
// Text is a single line without terminator or, after [Merge], a block of lines of the same kind
// joined with "\n".
type Op struct {
	Kind Kind
	Text string
}

// Builder is a myers.Recorder that materializes one Op per line.
type Builder struct {
	x, y []string
	rev  []Op // ops in reverse order
}

// NewBuilder returns a Builder for a trace of x and y with edit distance d.
func NewBuilder(x, y []string, d int) *Builder {
	// Every op consumes a line of x, a line of y, or both. With d edits there are (n+m-d)/2
	// matches, so the script has exactly (n+m+d)/2 ops.
	return &Builder{
		x:   x,
		y:   y,
		rev: make([]Op, 0, (len(x)+len(y)+d)/2),
	}
}

func (b *Builder) Match(s, t int) { b.rev = append(b.rev, Op{Equal, b.x[s]}) }
func (b *Builder) Delete(s int)   { b.rev = append(b.rev, Op{Delete, b.x[s]}) }
func (b *Builder) Insert(t int)   { b.rev = append(b.rev, Op{Add, b.y[t]}) }

// Ops returns the recorded operations in forward order. The Builder must not be used afterwards.
func (b *Builder) Ops() []Op {
	slices.Reverse(b.rev)
	ops := b.rev
	b.rev = nil
	return ops
}

// Merge coalesces adjacent operations of the same kind into one by joining their text with "\n".
func Merge(ops []Op) []Op {
	if len(ops) == 0 {
		return nil
	}

	// Count runs first to preallocate the output.
	runs := 1
	for i := 1; i < len(ops); i++ {
		if ops[i].Kind != ops[i-1].Kind {
			runs++
		}
	}

	out := make([]Op, 0, runs)
	for i := 0; i < len(ops); {
		j := i + 1
		for j < len(ops) && ops[j].Kind == ops[i].Kind {
			j++
		}
		if j == i+1 {
			out = append(out, ops[i])
		} else {
			var sb strings.Builder
			for k, op := range ops[i:j] {
				if k > 0 {
					sb.WriteByte('\n')
				}
				sb.WriteString(op.Text)
			}
			out = append(out, Op{ops[i].Kind, sb.String()})
		}
		i = j
	}
	return out
}

// Expand splits every operation into one operation per line. It's the inverse of [Merge] for ops
// that contain single lines.
func Expand(ops []Op) []Op {
	if len(ops) == 0 {
		return nil
	}
	n := 0
	for _, op := range ops {
		n += strings.Count(op.Text, "\n") + 1
	}
	out := make([]Op, 0, n)
	for _, op := range ops {
		for line := range strings.SplitSeq(op.Text, "\n") {
			out = append(out, Op{op.Kind, line})
		}
	}
	return out
}
