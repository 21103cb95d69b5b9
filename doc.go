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

// Package linediff compares two versions of a text line by line.
//
// The main functions are [Render], which returns the changes in unified diff format, and
// [ComputeStats], which only counts added and removed lines. [EditScript] and [Hunks] expose the
// underlying edit script. All of them find an edit script of minimal length with Myers' algorithm.
//
// Line terminators are normalized before comparison ("\r\n" and "\n" are equal) and the empty text
// has no lines. A text with a trailing newline has an empty last line.
//
// Performance: Time complexity is O((N+M)D) and space complexity is O(D^2) where N and M are the
// number of lines and D is the number of added and removed lines. Inputs with more lines than
// [MaxLines] are rejected before comparing them.
//
// Important: The exact choice between several minimal edit scripts is deterministic but not
// meaningful. DO NOT rely on it.
package linediff
