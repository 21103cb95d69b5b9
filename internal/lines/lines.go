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

// Package lines splits text into the line sequences compared by the diff engine.
//
// Line terminators are normalized ("\r\n" becomes "\n") and removed. A text ending in a newline has
// a trailing empty line, e.g. "a\n" consists of the lines "a" and "". The empty text has no lines.
package lines

import "strings"

// Count returns the number of lines Split would return for text without allocating.
func Count(text string) int {
	if len(text) == 0 {
		return 0
	}
	// Normalizing "\r\n" never changes the number of '\n' characters.
	return strings.Count(text, "\n") + 1
}

// Split normalizes line terminators in text and splits it into lines.
func Split(text string) []string {
	if len(text) == 0 {
		return nil
	}
	if strings.Contains(text, "\r\n") {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	n := strings.Count(text, "\n") + 1
	a := make([]string, n)
	for i := range n - 1 {
		m := strings.IndexByte(text, '\n')
		a[i] = text[:m]
		text = text[m+1:]
	}
	a[n-1] = text
	return a
}
