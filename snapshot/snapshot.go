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

// Package snapshot compares the original versions of a set of files with their current versions.
//
// Where the versions come from is abstracted by [Source]. [Summarize] computes per-file statistics
// for many files concurrently and [Diff] returns the complete comparison for a single file.
//
// Both functions log through the [zerolog.Logger] attached to the context, if any.
package snapshot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"znkr.io/linediff"
	"znkr.io/linediff/internal/config"
)

// Source provides the original and the current content of files.
type Source interface {
	Original(ctx context.Context, path string) (string, error)
	Current(ctx context.Context, path string) (string, error)
}

// Config controls the comparison of files.
//
// MaxLines and MaxOutputLines below 1 select the defaults, so the zero Config compares files like
// DefaultConfig, but without context lines and one file at a time.
type Config struct {
	// Concurrency is the maximum number of files compared at the same time by Summarize. Values
	// below 1 are treated as 1.
	Concurrency int

	Context        int // See linediff.Context.
	MaxLines       int // See linediff.MaxLines.
	MaxOutputLines int // See linediff.MaxOutputLines.
}

func (c Config) withDefaults() Config {
	c.Concurrency = max(1, c.Concurrency)
	if c.MaxLines < 1 {
		c.MaxLines = config.Default.MaxLines
	}
	if c.MaxOutputLines < 1 {
		c.MaxOutputLines = config.Default.MaxOutputLines
	}
	return c
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    4,
		Context:        config.Default.Context,
		MaxLines:       config.Default.MaxLines,
		MaxOutputLines: config.Default.MaxOutputLines,
	}
}

// File summarizes the changes of a single file.
type File struct {
	Path    string
	Added   int
	Removed int

	// Unavailable is set if the file is too large to be compared.
	Unavailable bool

	// Err is set if the file could not be read.
	Err error
}

// Summarize compares all files in paths and returns one File per path in the same order.
//
// Errors reading a file are reported in File.Err and don't stop the comparison of other files. The
// only error returned is the context error if ctx is done before all files are compared.
func Summarize(ctx context.Context, src Source, paths []string, cfg Config) ([]File, error) {
	cfg = cfg.withDefaults()
	log := zerolog.Ctx(ctx)
	files := make([]File, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files[i] = summarize(gctx, src, path, cfg)
			switch f := files[i]; {
			case f.Err != nil:
				log.Warn().Err(f.Err).Str("path", path).Msg("failed to read file")
			case f.Unavailable:
				log.Warn().Str("path", path).Int("max_lines", cfg.MaxLines).Msg("file too large to compare")
			default:
				log.Debug().Str("path", path).Int("added", f.Added).Int("removed", f.Removed).Msg("compared file")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

func summarize(ctx context.Context, src Source, path string, cfg Config) File {
	f := File{Path: path}
	original, modified, err := read(ctx, src, path)
	if err != nil {
		f.Err = err
		return f
	}
	stats, ok := linediff.ComputeStats(original, modified, linediff.MaxLines(cfg.MaxLines))
	f.Added, f.Removed, f.Unavailable = stats.Added, stats.Removed, !ok
	return f
}

// FileDiff is the complete comparison of a single file.
type FileDiff struct {
	Path     string
	Original string
	Modified string

	Added   int
	Removed int

	Diff      string // Unified diff, possibly truncated.
	Truncated bool

	// Unavailable is set if the file is too large to be compared. Diff is empty in that case.
	Unavailable bool
}

// Diff compares the original and current version of the file at path.
func Diff(ctx context.Context, src Source, path string, cfg Config) (FileDiff, error) {
	cfg = cfg.withDefaults()
	original, modified, err := read(ctx, src, path)
	if err != nil {
		return FileDiff{}, err
	}
	if err := ctx.Err(); err != nil {
		return FileDiff{}, err
	}

	d := FileDiff{
		Path:     path,
		Original: original,
		Modified: modified,
	}
	stats, ok := linediff.ComputeStats(original, modified, linediff.MaxLines(cfg.MaxLines))
	d.Added, d.Removed = stats.Added, stats.Removed
	u, ok2 := linediff.Render(original, modified, path,
		linediff.Context(cfg.Context),
		linediff.MaxLines(cfg.MaxLines),
		linediff.MaxOutputLines(cfg.MaxOutputLines),
	)
	d.Diff, d.Truncated = u.Diff, u.Truncated
	d.Unavailable = !ok || !ok2
	if d.Unavailable {
		zerolog.Ctx(ctx).Warn().Str("path", path).Int("max_lines", cfg.MaxLines).Msg("file too large to compare")
	}
	return d, nil
}

func read(ctx context.Context, src Source, path string) (original, modified string, err error) {
	original, err = src.Original(ctx, path)
	if err != nil {
		return "", "", fmt.Errorf("reading original of %s: %w", path, err)
	}
	modified, err = src.Current(ctx, path)
	if err != nil {
		return "", "", fmt.Errorf("reading current version of %s: %w", path, err)
	}
	return original, modified, nil
}
