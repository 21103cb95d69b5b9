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

package color

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCode(t *testing.T) {
	tests := []struct {
		params []int
		want   string
	}{
		{nil, "\033[m"},
		{[]int{31}, "\033[31m"},
		{[]int{1, 31}, "\033[1;31m"},
	}
	for _, tt := range tests {
		if got := Code(tt.params...); got != tt.want {
			t.Errorf("Code(%v) = %q, want %q", tt.params, got, tt.want)
		}
	}
}

func TestUnified(t *testing.T) {
	p := Palette{
		FileHeader: "<F>",
		HunkHeader: "<H>",
		Delete:     "<D>",
		Insert:     "<I>",
	}
	diff := strings.Join([]string{
		"diff --git a/f b/f",
		"--- a/f",
		"+++ b/f",
		"@@ -1,2 +1,2 @@",
		" a",
		"-b",
		"+c",
		"--- removed line that looks like a header",
		"diff --git a/g b/g",
		"--- a/g",
		"+++ b/g",
		"@@ -1,0 +1,1 @@",
		"+x",
	}, "\n")
	want := strings.Join([]string{
		"<F>diff --git a/f b/f" + reset,
		"<F>--- a/f" + reset,
		"<F>+++ b/f" + reset,
		"<H>@@ -1,2 +1,2 @@" + reset,
		" a",
		"<D>-b" + reset,
		"<I>+c" + reset,
		"<D>--- removed line that looks like a header" + reset,
		"<F>diff --git a/g b/g" + reset,
		"<F>--- a/g" + reset,
		"<F>+++ b/g" + reset,
		"<H>@@ -1,0 +1,1 @@" + reset,
		"<I>+x" + reset,
	}, "\n")
	if diff := cmp.Diff(want, p.Unified(diff)); diff != "" {
		t.Errorf("Unified(...) result is different [-want,+got]:\n%s", diff)
	}

	if got := p.Unified(""); got != "" {
		t.Errorf("Unified(\"\") = %q, want \"\"", got)
	}
	if got := (Palette{}).Unified(diff); got != diff {
		t.Errorf("empty palette changed the diff:\n%s", got)
	}
}
