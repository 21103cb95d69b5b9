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

import "strings"

// CountUnified counts the added and removed lines in a diff that is already in unified format.
//
// Lines starting with "+++ " or "--- " are file headers and are not counted. This can be used when
// only a rendered diff is available, e.g. because [ComputeStats] reported that the inputs are too
// large. Note that the counts for a truncated diff are a lower bound.
func CountUnified(diff string) Stats {
	var stats Stats
	for line := range strings.SplitSeq(diff, "\n") {
		if line == "" || strings.HasPrefix(line, "+++ ") || strings.HasPrefix(line, "--- ") {
			continue
		}
		switch line[0] {
		case '+':
			stats.Added++
		case '-':
			stats.Removed++
		}
	}
	return stats
}
