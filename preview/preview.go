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

// Package preview computes the diff a proposed file modification would produce before it's
// applied.
//
// A modification is either a complete replacement of the file content or a sequence of string
// replacements. Reading the current content is up to the caller.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"znkr.io/linediff"
)

var (
	ErrEmptyOld      = errors.New("old text must be non-empty")
	ErrNotFound      = errors.New("old text not found")
	ErrNoEdits       = errors.New("missing edits")
	ErrMultipleEdits = errors.New("more than one edit, use MultiEdit")
	ErrUnknownTool   = errors.New("unknown tool")
)

// Tool describes how a Request modifies a file.
type Tool string

const (
	Write     Tool = "Write"     // Replace the whole content.
	Edit      Tool = "Edit"      // Apply a single edit.
	MultiEdit Tool = "MultiEdit" // Apply edits in order, each to the result of the previous one.
)

// Replacement replaces Old with New.
type Replacement struct {
	Old, New   string
	ReplaceAll bool // Replace all occurrences instead of the first one.
}

// Apply applies r to original.
//
// It's an error if r.Old is empty or doesn't occur in original.
func Apply(original string, r Replacement) (string, error) {
	if r.Old == "" {
		return "", ErrEmptyOld
	}
	if r.ReplaceAll {
		replaced := strings.ReplaceAll(original, r.Old, r.New)
		if replaced == original {
			return "", ErrNotFound
		}
		return replaced, nil
	}
	before, after, found := strings.Cut(original, r.Old)
	if !found {
		return "", ErrNotFound
	}
	return before + r.New + after, nil
}

// Request is a proposed modification of the file at Path.
type Request struct {
	Path    string
	Tool    Tool
	Content string        // New content for Write.
	Edits   []Replacement // Replacements for Edit and MultiEdit.
}

// Preview is the result of a proposed modification.
type Preview struct {
	Path      string
	Diff      string // Unified diff, possibly truncated.
	Truncated bool
	Added     int
	Removed   int

	// Unavailable is set if the file is too large to compute a diff. Added and Removed are zero in
	// that case.
	Unavailable bool
}

// Compute applies req to before and returns the resulting diff.
//
// ctx is checked before and after applying the edits, the comparison itself is not interruptible.
func Compute(ctx context.Context, before string, req Request) (Preview, error) {
	if err := ctx.Err(); err != nil {
		return Preview{}, err
	}

	after, err := apply(before, req)
	if err != nil {
		return Preview{}, fmt.Errorf("%s %s: %w", req.Tool, req.Path, err)
	}

	if err := ctx.Err(); err != nil {
		return Preview{}, err
	}

	p := Preview{Path: req.Path}
	u, ok := linediff.Render(before, after, req.Path)
	p.Diff, p.Truncated, p.Unavailable = u.Diff, u.Truncated, !ok

	stats, ok := linediff.ComputeStats(before, after)
	if !ok {
		stats = linediff.CountUnified(u.Diff)
	}
	p.Added, p.Removed = stats.Added, stats.Removed
	return p, nil
}

func apply(before string, req Request) (string, error) {
	switch req.Tool {
	case Write:
		return req.Content, nil
	case Edit:
		switch len(req.Edits) {
		case 0:
			return "", ErrNoEdits
		case 1:
			return Apply(before, req.Edits[0])
		default:
			return "", ErrMultipleEdits
		}
	case MultiEdit:
		if len(req.Edits) == 0 {
			return "", ErrNoEdits
		}
		next := before
		for i, r := range req.Edits {
			var err error
			next, err = Apply(next, r)
			if err != nil {
				return "", fmt.Errorf("edit %d: %w", i, err)
			}
		}
		return next, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, req.Tool)
	}
}
