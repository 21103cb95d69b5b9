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

package myers

// Trace is the history of the search for a shortest edit script from x to y.
type Trace struct {
	N, M int // len(x), len(y)
	D    int // Length of the shortest edit script.

	// v-arrays for all d in [0, D). v[d(d+1)/2 + (k+d)/2] is the s-coordinate of the furthest
	// reaching d-path on diagonal k. The t-coordinate is s - k.
	//
	// int32 is enough, because inputs are bounded long before N+M overflows it and it halves the
	// size of the trace.
	v []int32
}

// at returns the furthest reaching s-coordinate of the d-path on diagonal k.
func (tr *Trace) at(d, k int) int {
	return int(tr.v[d*(d+1)/2+(k+d)/2])
}

// down reports if the d-path ending on diagonal k continues from diagonal k+1 with a vertical edge
// (an insertion) instead of from diagonal k-1 with a horizontal edge (a deletion).
func (tr *Trace) down(d, k int) bool {
	return k == -d || (k != d && tr.at(d-1, k+1) > tr.at(d-1, k-1))
}

// Search runs Myers' algorithm on x and y and returns the trace of the search.
func Search[T comparable](x, y []T) *Trace {
	n, m := len(x), len(y)
	tr := &Trace{N: n, M: m}
	for d := 0; d <= n+m; d++ {
		for k := -d; k <= d; k += 2 {
			var s int
			switch {
			case d == 0:
				s = 0
			case tr.down(d, k):
				s = tr.at(d-1, k+1)
			default:
				s = tr.at(d-1, k-1) + 1
			}
			t := s - k
			for s < n && t < m && x[s] == y[t] {
				s++
				t++
			}
			if s >= n && t >= m {
				tr.D = d
				return tr
			}
			tr.v = append(tr.v, int32(s))
		}
	}
	panic("never reached")
}

// Recorder receives the edits of a shortest edit script during backtracking. Edits are reported
// from the end of the inputs to the start.
type Recorder interface {
	Match(s, t int) // x[s] matches y[t]
	Delete(s int)   // x[s] is deleted
	Insert(t int)   // y[t] is inserted
}

// Backtrack walks tr from (N, M) back to (0, 0) and reports every edit to r.
//
// x and y must be the inputs tr was created from.
func Backtrack[T comparable](tr *Trace, x, y []T, r Recorder) {
	s, t := tr.N, tr.M
	for d := tr.D; d > 0; d-- {
		k := s - t
		pk := k - 1
		if tr.down(d, k) {
			pk = k + 1
		}
		ps := tr.at(d-1, pk)
		pt := ps - pk
		for s > ps && t > pt {
			s--
			t--
			r.Match(s, t)
		}
		if s == ps {
			t--
			r.Insert(t)
		} else {
			s--
			r.Delete(s)
		}
	}

	// What's left is the 0-path along the k=0 diagonal. The loops for deletions and insertions only
	// make sure that the edit script always covers all of x and y.
	for s > 0 && t > 0 && x[s-1] == y[t-1] {
		s--
		t--
		r.Match(s, t)
	}
	for s > 0 {
		s--
		r.Delete(s)
	}
	for t > 0 {
		t--
		r.Insert(t)
	}
}

// Counts is a Recorder that only counts insertions and deletions.
type Counts struct {
	Insertions, Deletions int
}

func (c *Counts) Match(s, t int) {}
func (c *Counts) Delete(s int)   { c.Deletions++ }
func (c *Counts) Insert(t int)   { c.Insertions++ }
