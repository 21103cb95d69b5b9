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

package lines

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "single-line",
			in:   "hello",
			want: []string{"hello"},
		},
		{
			name: "newline-only",
			in:   "\n",
			want: []string{"", ""},
		},
		{
			name: "trailing-newline",
			in:   "a\nb\n",
			want: []string{"a", "b", ""},
		},
		{
			name: "missing-trailing-newline",
			in:   "a\nb",
			want: []string{"a", "b"},
		},
		{
			name: "crlf",
			in:   "a\r\nb\r\n",
			want: []string{"a", "b", ""},
		},
		{
			name: "mixed-terminators",
			in:   "a\r\nb\nc",
			want: []string{"a", "b", "c"},
		},
		{
			name: "lone-carriage-return",
			in:   "a\rb\n",
			want: []string{"a\rb", ""},
		},
		{
			name: "whitespace-is-kept",
			in:   "  a \n\t\n",
			want: []string{"  a ", "\t", ""},
		},
		{
			name: "empty-lines",
			in:   "\n\n\n",
			want: []string{"", "", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split(%q) differs [-want,+got]:\n%s", tt.in, diff)
			}
			if n := Count(tt.in); n != len(tt.want) {
				t.Errorf("Count(%q) = %d, want %d", tt.in, n, len(tt.want))
			}
		})
	}
}

func FuzzSplit(f *testing.F) {
	f.Add("a\nb\n")
	f.Add("a\r\nb")
	f.Add("")
	f.Fuzz(func(t *testing.T, in string) {
		got := Split(in)
		if n := Count(in); n != len(got) {
			t.Errorf("Count(%q) = %d, but Split returned %d lines", in, n, len(got))
		}
		for _, line := range got {
			for i := range len(line) {
				if line[i] == '\n' {
					t.Fatalf("Split(%q) returned line containing a newline: %q", in, line)
				}
			}
		}
	})
}
