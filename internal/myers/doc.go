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

// Package myers contains an implementation of Myers' algorithm.
//
// The implementation in this package uses the basic greedy algorithm from section 3 of the paper
// and keeps the complete history of v-arrays (the trace) to reconstruct the edit script
// afterwards. It finds an edit script of minimal length, but time and memory grow with O((N+M)D)
// and O(D^2) respectively. Callers bound the input size before searching.
//
// # Myers Algorithm
//
// The algorithm is a graph search on the graph modelling all possible edits that transform x to y.
// For simplicity, let's say that the inputs are x = "ABCABBA" and y = "CBABAC", one element per
// line. Then we can represent all possible edits from x to y with the graph:
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// Every vertex (intersections in the graph above) corresponds to a state. The top left (0,0)
// corresponds to x and bottom right (7,6) to y.
//
// Every edge represents an edit. A step to the right represents a deletion of an element (e.g.
// moving from (0,0) to (1,0) deletes the first "A") and a step down represents an insertion (e.g.
// moving from (0,0) to (0,1) inserts a "C"). When both elements are identical, we also have
// diagonal edges representing a match.
//
// We're going to use s and t for the horizontal and vertical coordinates and k = s - t for
// diagonals. The k=0 diagonal is the diagonal starting in (0, 0).
//
// Let a D-path be a path that has exactly D non-diagonal edges. A D-path must end on a diagonal k
// in {-D, -D+2, ..., D-2, D}. A furthest reaching D-path on diagonal k consists of a furthest
// reaching (D-1)-path on diagonal k+1 followed by a vertical edge, or of a furthest reaching
// (D-1)-path on diagonal k-1 followed by a horizontal edge, in both cases followed by as many
// diagonal edges as possible.
//
// This gives us a greedy algorithm: For d = 0, 1, 2, ... compute the furthest reaching d-path on
// every diagonal from the (d-1)-paths and stop as soon as one of them reaches (N, M). The first d
// for which that happens is the length of the shortest edit script.
//
// # Trace
//
// The search only needs the v-array for d-1 to compute the one for d, but reconstructing the path
// needs all of them. The v-arrays are stored back to back in a single slice, the v-array for d
// has d+1 entries (one per diagonal with matching parity) and starts at d(d+1)/2.
//
// # Ties
//
// When both predecessors are possible, the vertical edge (insertion) is chosen if k = -d, or if
// k != d and the furthest reaching path on k+1 got further than the one on k-1. Otherwise the
// horizontal edge (deletion) is chosen. This rule is applied identically during the search and
// during backtracking, which makes the result reproducible.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
//
// The algorithm was independently discovered by Ekko Ukkonen:
//
// Ukkonen, E. Algorithms for approximate string matching. Information and Control, Volume 64,
// Issues 1-3, 100-118 (1985). https://doi.org/10.1016/S0019-9958(85)80046-2
package myers
