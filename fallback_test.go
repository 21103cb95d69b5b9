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

import "testing"

func TestCountUnified(t *testing.T) {
	tests := []struct {
		name string
		diff string
		want Stats
	}{
		{
			name: "empty",
			diff: "",
			want: Stats{},
		},
		{
			name: "headers-only",
			diff: "diff --git a/f b/f\n--- a/f\n+++ b/f",
			want: Stats{},
		},
		{
			name: "changes",
			diff: "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n+y\n c",
			want: Stats{Added: 2, Removed: 1},
		},
		{
			name: "empty-lines-are-skipped",
			diff: "\n\n+a\n\n-b\n",
			want: Stats{Added: 1, Removed: 1},
		},
		{
			name: "bare-markers-are-counted",
			diff: "+\n-\n+++\n---",
			want: Stats{Added: 2, Removed: 2},
		},
		{
			name: "crlf",
			diff: "+a\r\n-b\r\n \r\n",
			want: Stats{Added: 1, Removed: 1},
		},
		{
			name: "context-and-markers",
			diff: " +not counted\n\\ No newline at end of file",
			want: Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountUnified(tt.diff); got != tt.want {
				t.Errorf("CountUnified(%q) = %+v, want %+v", tt.diff, got, tt.want)
			}
		})
	}
}
