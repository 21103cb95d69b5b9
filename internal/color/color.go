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

// Package color highlights unified diffs with ANSI escape sequences for terminals.
package color

import (
	"fmt"
	"strings"
)

// Palette holds the escape sequences used for every kind of line in a unified diff. An empty
// sequence leaves the line uncolored.
type Palette struct {
	FileHeader string
	HunkHeader string
	Match      string
	Delete     string
	Insert     string
}

// Default is the palette used by git.
var Default = Palette{
	FileHeader: Code(1),
	HunkHeader: Code(36),
	Delete:     Code(31),
	Insert:     Code(32),
}

const reset = "\033[m"

// Code returns the SGR escape sequence with the given parameters, e.g. Code(1, 31) for bold red.
func Code(params ...int) string {
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}

// Unified colors every line of a diff in unified format.
func (p Palette) Unified(diff string) string {
	if diff == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(diff) + len(diff)/4)
	headers := true
	for i, line := range strings.Split(diff, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		var code string
		switch {
		case strings.HasPrefix(line, "@@ "):
			headers = false
			code = p.HunkHeader
		case headers:
			// Everything before the first hunk, i.e. "diff --git", "---", and "+++" lines.
			code = p.FileHeader
		case strings.HasPrefix(line, "-"):
			code = p.Delete
		case strings.HasPrefix(line, "+"):
			code = p.Insert
		case strings.HasPrefix(line, "diff "):
			// Next file in a multi-file diff.
			headers = true
			code = p.FileHeader
		default:
			code = p.Match
		}
		if code == "" {
			sb.WriteString(line)
			continue
		}
		sb.WriteString(code)
		sb.WriteString(line)
		sb.WriteString(reset)
	}
	return sb.String()
}
