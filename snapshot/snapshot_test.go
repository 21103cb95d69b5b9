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

package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
)

func testFS() FS {
	return FS{
		Before: fstest.MapFS{
			"README.md":   {Data: []byte("# Project\n\nSome text.\n")},
			"main.go":     {Data: []byte("package main\n\nfunc main() {}\n")},
			"old/gone.go": {Data: []byte("package old\n")},
			"big.txt":     {Data: []byte(strings.Repeat("x\n", 20))},
		},
		After: fstest.MapFS{
			"README.md": {Data: []byte("# Project\n\nSome other text.\nMore text.\n")},
			"main.go":   {Data: []byte("package main\n\nfunc main() {}\n")},
			"new.go":    {Data: []byte("package main\n\nvar x = 1\n")},
			"big.txt":   {Data: []byte(strings.Repeat("y\n", 20))},
		},
	}
}

func TestPaths(t *testing.T) {
	got, err := testFS().Paths()
	if err != nil {
		t.Fatalf("Paths() returned unexpected error: %v", err)
	}
	want := []string{"README.md", "big.txt", "main.go", "new.go", "old/gone.go"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Paths() result are different [-want,+got]:\n%s", diff)
	}
}

func TestSummarize(t *testing.T) {
	src := testFS()
	paths := []string{"README.md", "main.go", "new.go", "old/gone.go", "big.txt", "../invalid"}

	var logs bytes.Buffer
	ctx := zerolog.New(zerolog.SyncWriter(&logs)).Level(zerolog.DebugLevel).WithContext(t.Context())

	cfg := DefaultConfig()
	cfg.MaxLines = 10
	cfg.Concurrency = 2
	got, err := Summarize(ctx, src, paths, cfg)
	if err != nil {
		t.Fatalf("Summarize(...) returned unexpected error: %v", err)
	}

	want := []File{
		{Path: "README.md", Added: 2, Removed: 1},
		{Path: "main.go"},
		{Path: "new.go", Added: 4},
		{Path: "old/gone.go", Removed: 2},
		{Path: "big.txt", Unavailable: true},
		{Path: "../invalid", Err: errAny},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Summarize(...) result are different [-want,+got]:\n%s", diff)
	}

	for _, msg := range []string{"compared file", "file too large to compare", "failed to read file"} {
		if !strings.Contains(logs.String(), msg) {
			t.Errorf("log output doesn't contain %q:\n%s", msg, logs.String())
		}
	}
}

func TestSummarizeOrder(t *testing.T) {
	before := fstest.MapFS{}
	after := fstest.MapFS{}
	var paths []string
	for i := range 50 {
		path := fmt.Sprintf("f%02d.txt", i)
		paths = append(paths, path)
		after[path] = &fstest.MapFile{Data: []byte(strings.Repeat("line\n", i))}
	}

	got, err := Summarize(t.Context(), FS{Before: before, After: after}, paths, DefaultConfig())
	if err != nil {
		t.Fatalf("Summarize(...) returned unexpected error: %v", err)
	}
	for i, f := range got {
		if f.Path != paths[i] {
			t.Errorf("Summarize(...)[%d].Path = %q, want %q", i, f.Path, paths[i])
		}
		// i lines plus the trailing empty line, except for the empty file.
		want := i + 1
		if i == 0 {
			want = 0
		}
		if f.Added != want {
			t.Errorf("Summarize(...)[%d].Added = %d, want %d", i, f.Added, want)
		}
	}
}

func TestSummarizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := Summarize(ctx, testFS(), []string{"README.md", "main.go"}, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Summarize(...) returned error %v, want %v", err, context.Canceled)
	}
}

func TestSummarizeCanceledWhileRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	src := &cancelingSource{Source: testFS(), after: 2, cancel: cancel}
	paths := []string{"README.md", "main.go", "new.go", "old/gone.go", "big.txt"}
	cfg := DefaultConfig()
	cfg.Concurrency = 1
	_, err := Summarize(ctx, src, paths, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Summarize(...) returned error %v, want %v", err, context.Canceled)
	}
	if n := src.calls.Load(); n >= int32(len(paths)) {
		t.Errorf("Summarize(...) read %d files after cancellation, want fewer than %d", n, len(paths))
	}
}

// cancelingSource cancels a context after a number of files has been read.
type cancelingSource struct {
	Source
	after  int32
	cancel context.CancelFunc
	calls  atomic.Int32
}

func (s *cancelingSource) Original(ctx context.Context, path string) (string, error) {
	if s.calls.Add(1) == s.after {
		s.cancel()
	}
	return s.Source.Original(ctx, path)
}

func TestDiff(t *testing.T) {
	got, err := Diff(t.Context(), testFS(), "README.md", DefaultConfig())
	if err != nil {
		t.Fatalf("Diff(...) returned unexpected error: %v", err)
	}
	want := FileDiff{
		Path:     "README.md",
		Original: "# Project\n\nSome text.\n",
		Modified: "# Project\n\nSome other text.\nMore text.\n",
		Added:    2,
		Removed:  1,
		Diff: strings.Join([]string{
			"diff --git a/README.md b/README.md",
			"--- a/README.md",
			"+++ b/README.md",
			"@@ -1,4 +1,5 @@",
			" # Project",
			" ",
			"-Some text.",
			"+Some other text.",
			"+More text.",
			" ",
		}, "\n"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff(...) result are different [-want,+got]:\n%s", diff)
	}
}

func TestDiffUnavailable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLines = 10
	got, err := Diff(t.Context(), testFS(), "big.txt", cfg)
	if err != nil {
		t.Fatalf("Diff(...) returned unexpected error: %v", err)
	}
	if !got.Unavailable || got.Diff != "" {
		t.Errorf("Diff(...) = %+v, want unavailable result without diff", got)
	}
}

func TestDiffError(t *testing.T) {
	_, err := Diff(t.Context(), testFS(), "../invalid", DefaultConfig())
	if err == nil {
		t.Fatal("Diff(...) returned no error for invalid path")
	}
}

func TestZeroConfig(t *testing.T) {
	files, err := Summarize(t.Context(), testFS(), []string{"README.md", "big.txt"}, Config{})
	if err != nil {
		t.Fatalf("Summarize(...) returned unexpected error: %v", err)
	}
	want := []File{
		{Path: "README.md", Added: 2, Removed: 1},
		{Path: "big.txt", Added: 20, Removed: 20},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Summarize(...) result are different [-want,+got]:\n%s", diff)
	}

	got, err := Diff(t.Context(), testFS(), "README.md", Config{})
	if err != nil {
		t.Fatalf("Diff(...) returned unexpected error: %v", err)
	}
	wantDiff := strings.Join([]string{
		"diff --git a/README.md b/README.md",
		"--- a/README.md",
		"+++ b/README.md",
		"@@ -3,1 +3,2 @@",
		"-Some text.",
		"+Some other text.",
		"+More text.",
	}, "\n")
	if diff := cmp.Diff(wantDiff, got.Diff); diff != "" {
		t.Errorf("Diff(...).Diff is different [-want,+got]:\n%s", diff)
	}
	if got.Unavailable || got.Truncated {
		t.Errorf("Diff(...) = %+v, want available and complete diff", got)
	}
}

// errAny matches any non-nil error with cmpopts.EquateErrors.
var errAny = anyError{}

type anyError struct{}

func (anyError) Error() string     { return "any error" }
func (anyError) Is(err error) bool { return err != nil }
