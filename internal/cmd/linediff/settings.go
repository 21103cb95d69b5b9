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

package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"znkr.io/linediff/snapshot"
)

// settings are the tunables of the tool. They can be set in a TOML file and overridden with flags.
type settings struct {
	Context        int    `toml:"context"`
	MaxLines       int    `toml:"max_lines"`
	MaxOutputLines int    `toml:"max_output_lines"`
	Concurrency    int    `toml:"concurrency"`
	LogLevel       string `toml:"log_level"`
}

func defaultSettings() settings {
	cfg := snapshot.DefaultConfig()
	return settings{
		Context:        cfg.Context,
		MaxLines:       cfg.MaxLines,
		MaxOutputLines: cfg.MaxOutputLines,
		Concurrency:    cfg.Concurrency,
		LogLevel:       "info",
	}
}

// register binds flags for all settings to fs, using the current values as defaults.
func (s *settings) register(fs *flag.FlagSet) {
	fs.IntVar(&s.Context, "context", s.Context, "number of unchanged lines around changes")
	fs.IntVar(&s.MaxLines, "max-lines", s.MaxLines, "maximum number of lines of an input to compare")
	fs.IntVar(&s.MaxOutputLines, "max-output-lines", s.MaxOutputLines, "maximum number of lines of a diff")
	fs.IntVar(&s.Concurrency, "concurrency", s.Concurrency, "number of files compared in parallel with -dirs")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "log level (trace, debug, info, warn, error)")
}

// load reads the TOML file at path into s. Settings explicitly set on fs take precedence over the
// file.
func (s *settings) load(path string, fs *flag.FlagSet) error {
	explicit := *s
	fromFile := *s
	md, err := toml.DecodeFile(path, &fromFile)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("reading config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	*s = fromFile
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "context":
			s.Context = explicit.Context
		case "max-lines":
			s.MaxLines = explicit.MaxLines
		case "max-output-lines":
			s.MaxOutputLines = explicit.MaxOutputLines
		case "concurrency":
			s.Concurrency = explicit.Concurrency
		case "log-level":
			s.LogLevel = explicit.LogLevel
		}
	})
	return nil
}

func (s *settings) snapshotConfig() snapshot.Config {
	return snapshot.Config{
		Concurrency:    s.Concurrency,
		Context:        s.Context,
		MaxLines:       s.MaxLines,
		MaxOutputLines: s.MaxOutputLines,
	}
}

func (s *settings) logLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	return level, nil
}
