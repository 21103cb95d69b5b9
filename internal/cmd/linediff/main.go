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

// linediff compares two files or two directory trees.
//
// Usage:
//
//	linediff [flags] OLD NEW
//	linediff -dirs [flags] OLDDIR NEWDIR
//
// For files, it prints a unified diff of OLD and NEW. With -stats, it prints the number of added
// and removed lines instead. A missing file or /dev/null compares as empty.
//
// With -dirs, all regular files below both directories are compared concurrently and one line of
// statistics is printed per changed file. With -dirs and -diff, the unified diffs of all changed
// files are printed.
//
// Settings can be read from a TOML file with -config:
//
//	context = 3
//	max_lines = 5000
//	max_output_lines = 400
//	concurrency = 8
//	log_level = "debug"
//
// Flags given on the command line take precedence over the file.
//
// Diffs are colored if stdout is a terminal, which can be changed with -color.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"znkr.io/linediff"
	"znkr.io/linediff/internal/color"
	"znkr.io/linediff/snapshot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	// The log output is colored, which needs translation on Windows consoles.
	err := run(ctx, os.Args[1:], os.Stdout, colorable.NewColorableStderr())
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	s := defaultSettings()
	flags := flag.NewFlagSet("linediff", flag.ContinueOnError)
	flags.SetOutput(stderr)
	s.register(flags)
	configPath := flags.String("config", "", "path to a TOML file with settings")
	dirs := flags.Bool("dirs", false, "compare two directory trees")
	stats := flags.Bool("stats", false, "print statistics instead of a diff")
	showDiff := flags.Bool("diff", false, "print diffs of all changed files with -dirs")
	label := flags.String("label", "", "path shown in the diff header (default NEW)")
	colorMode := flags.String("color", "auto", "color diffs: auto, always, or never")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return fmt.Errorf("expected 2 arguments, got %d", flags.NArg())
	}
	if *configPath != "" {
		if err := s.load(*configPath, flags); err != nil {
			return err
		}
	}

	level, err := s.logLevel()
	if err != nil {
		return err
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
	ctx = log.WithContext(ctx)

	var palette color.Palette
	switch *colorMode {
	case "always":
		palette = color.Default
	case "auto":
		if f, ok := stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			palette = color.Default
		}
	case "never":
	default:
		return fmt.Errorf("invalid -color %q, want auto, always, or never", *colorMode)
	}

	oldPath, newPath := flags.Arg(0), flags.Arg(1)
	if *dirs {
		return compareDirs(ctx, stdout, oldPath, newPath, s.snapshotConfig(), *showDiff, palette)
	}
	if *label == "" {
		*label = newPath
	}
	return compareFiles(ctx, stdout, oldPath, newPath, *label, s, *stats, palette)
}

func compareFiles(ctx context.Context, w io.Writer, oldPath, newPath, label string, s settings, stats bool, palette color.Palette) error {
	old, err := readFile(oldPath)
	if err != nil {
		return err
	}
	new, err := readFile(newPath)
	if err != nil {
		return err
	}

	log := zerolog.Ctx(ctx)
	if stats {
		st, ok := linediff.ComputeStats(old, new, linediff.MaxLines(s.MaxLines))
		if !ok {
			return fmt.Errorf("%s: inputs exceed %d lines", label, s.MaxLines)
		}
		_, err := fmt.Fprintf(w, "+%d\t-%d\t%s\n", st.Added, st.Removed, label)
		return err
	}

	u, ok := linediff.Render(old, new, label,
		linediff.Context(s.Context),
		linediff.MaxLines(s.MaxLines),
		linediff.MaxOutputLines(s.MaxOutputLines),
	)
	if !ok {
		return fmt.Errorf("%s: inputs exceed %d lines", label, s.MaxLines)
	}
	if u.Truncated {
		log.Warn().Str("path", label).Int("max_output_lines", s.MaxOutputLines).Msg("diff truncated")
	}
	if u.Diff == "" {
		return nil
	}
	_, err = fmt.Fprintln(w, palette.Unified(u.Diff))
	return err
}

func compareDirs(ctx context.Context, w io.Writer, oldDir, newDir string, cfg snapshot.Config, showDiff bool, palette color.Palette) error {
	src := snapshot.FS{Before: os.DirFS(oldDir), After: os.DirFS(newDir)}
	paths, err := src.Paths()
	if err != nil {
		return fmt.Errorf("listing files: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Int("files", len(paths)).Msg("comparing directories")

	files, err := snapshot.Summarize(ctx, src, paths, cfg)
	if err != nil {
		return err
	}

	var failed int
	for _, f := range files {
		switch {
		case f.Err != nil:
			failed++
			continue
		case f.Unavailable:
			fmt.Fprintf(w, "?\t?\t%s\n", f.Path)
			continue
		case f.Added == 0 && f.Removed == 0:
			continue
		}
		if !showDiff {
			fmt.Fprintf(w, "+%d\t-%d\t%s\n", f.Added, f.Removed, f.Path)
			continue
		}
		d, err := snapshot.Diff(ctx, src, f.Path, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, palette.Unified(d.Diff))
	}
	if failed > 0 {
		return fmt.Errorf("failed to read %d of %d files", failed, len(files))
	}
	return nil
}

func readFile(path string) (string, error) {
	if path == os.DevNull {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
