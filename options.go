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

import "znkr.io/linediff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Context sets the number of unchanged lines to include before and after every change in [Hunks]
// and [Render]. The default is 3.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

// MaxLines sets the maximum number of lines of either input. Larger inputs are not compared and
// the comparison functions report that no result is available. The default is 8000.
//
// Comparing texts with D differences takes O((N+M)D) time and O(D^2) memory, this limit keeps both
// bounded.
func MaxLines(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxLines = max(0, n)
		return config.MaxLines
	}
}

// MaxOutputLines sets the maximum number of lines in the output of [Render], including headers.
// Longer output is truncated. The default is 4000.
func MaxOutputLines(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxOutputLines = max(0, n)
		return config.MaxOutputLines
	}
}
