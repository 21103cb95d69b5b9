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

// eval validates linediff on the history of a git repository.
//
// For every file changed by a commit, it checks that
//
//   - the edit script reproduces both versions of the file,
//   - the statistics match the edit script and the rendered diff, and
//   - the edit script is as short as the one found by an independent implementation (with -minimal).
//
// Violations are logged. With -stats, the size and duration of every comparison is written to a CSV
// file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"
	"znkr.io/linediff"
	"znkr.io/linediff/internal/cmd/eval/internal/git"
)

type config struct {
	repo     string
	sample   int
	parallel int
	stats    string
	maxLines int
	minimal  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.IntVar(&cfg.maxLines, "max-lines", 20000, "maximum number of lines of a file to compare")
	flag.BoolVar(&cfg.minimal, "minimal", false, "compare the number of edits with diffmatchpatch")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx = log.WithContext(ctx)
	err := run(ctx, &cfg)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	commitID string
	file     string
	msg      string
}

type result struct {
	commitID string
	file     string
	N, M     int
	D        int
	duration time.Duration
}

type change struct {
	commitID string
	filename string
	old, new string
}

func run(ctx context.Context, cfg *config) error {
	start := time.Now()
	log := zerolog.Ctx(ctx)
	notes := make(chan note)
	done := make(chan struct{})
	var commitsDone, processed, unavailable, violations atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer stats.Close()
	}

	repo, err := git.Open(ctx, cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %v", err)
	}
	defer repo.Close()

	commitIDs, err := repo.RevList(ctx)
	if err != nil {
		return fmt.Errorf("reading rev-list: %v", err)
	}
	if cfg.sample > 0 && cfg.sample < len(commitIDs) {
		rand.Shuffle(len(commitIDs), func(i, j int) { commitIDs[i], commitIDs[j] = commitIDs[j], commitIDs[i] })
		commitIDs = commitIDs[:cfg.sample]
	}
	log.Info().Str("repo", cfg.repo).Int("commits", len(commitIDs)).Msg("starting evaluation")

	// Read changes.
	changes := make(chan change)
	readers, rctx := errgroup.WithContext(ctx)
	readers.Go(func() error {
		defer close(changes)
		g, gctx := errgroup.WithContext(rctx)
		g.SetLimit(4)
		for _, commitID := range commitIDs {
			g.Go(func() error {
				defer commitsDone.Add(1)
				return readCommit(gctx, repo, commitID, changes, notes)
			})
		}
		return g.Wait()
	})

	// Evaluate changes.
	var results chan result
	if stats != nil {
		results = make(chan result)
	}
	evals, ectx := errgroup.WithContext(ctx)
	for range max(1, cfg.parallel) {
		evals.Go(func() error {
			for ch := range changes {
				res, ok := evaluate(ch, cfg, func(msg string) {
					violations.Add(1)
					select {
					case notes <- note{commitID: ch.commitID, file: ch.filename, msg: msg}:
					case <-ectx.Done():
					}
				})
				processed.Add(1)
				if !ok {
					unavailable.Add(1)
					continue
				}
				if results != nil {
					select {
					case results <- res:
					case <-ectx.Done():
						return ectx.Err()
					}
				}
			}
			return nil
		})
	}

	// Render progress and write stats.
	render := func() {
		const width = 60
		commits := commitsDone.Load()
		processed := processed.Load()
		progress := float64(commits) / float64(max(1, len(commitIDs)))
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var commitsPerSec, procPerSec int
		if commits > 0 {
			commitsPerSec = int((time.Duration(commits) * time.Second) / time.Since(start))
		}
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Fprintf(os.Stderr, "\r[%-*s] % 3.1f%% (%d commits/s, %d evals/s) ", width, bar, 100*progress, commitsPerSec, procPerSec)
	}
	var output errgroup.Group
	output.Go(func() error {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case n := <-notes:
				fmt.Fprint(os.Stderr, "\r")
				log.Warn().Str("commit", n.commitID).Str("file", n.file).Msg(n.msg)
				render()
			case <-ticker.C:
				render()
			case <-done:
				render()
				fmt.Fprintln(os.Stderr)
				return nil
			}
		}
	})
	if results != nil {
		output.Go(func() error {
			return writeStats(stats, results)
		})
	}

	// Shutdown
	rerr := readers.Wait()
	eerr := evals.Wait()
	close(done)
	if results != nil {
		close(results)
	}
	outerr := output.Wait()
	for _, err := range []error{rerr, eerr, outerr} {
		if err != nil {
			return err
		}
	}

	log.Info().
		Int64("files", processed.Load()).
		Int64("unavailable", unavailable.Load()).
		Int64("violations", violations.Load()).
		Dur("duration", time.Since(start)).
		Msg("evaluation done")
	if n := violations.Load(); n > 0 {
		return fmt.Errorf("found %d violations", n)
	}
	return nil
}

// writeStats writes all results as CSV to w. Results are consumed until the channel is closed, even
// after a write failed, so that senders never block.
func writeStats(w io.Writer, results <-chan result) error {
	bw := bufio.NewWriter(w)
	_, err := bw.WriteString("commit_id,file,N,M,D,duration_ns\n")
	for r := range results {
		if err != nil {
			continue
		}
		_, err = fmt.Fprintf(bw, "%s,%s,%d,%d,%d,%d\n", r.commitID, r.file, r.N, r.M, r.D, r.duration.Nanoseconds())
	}
	if err != nil {
		return fmt.Errorf("writing stats: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing stats: %v", err)
	}
	return nil
}

func readCommit(ctx context.Context, repo *git.Repo, commitID string, changes chan<- change, notes chan<- note) error {
	files, err := repo.DiffTree(ctx, commitID)
	if err != nil {
		select {
		case notes <- note{commitID: commitID, msg: fmt.Sprintf("error processing commit: %v", err)}:
		case <-ctx.Done():
		}
		return ctx.Err()
	}
	for _, file := range files {
		if strings.HasSuffix(file.Name, ".zip") || strings.HasSuffix(file.Name, ".syso") {
			continue
		}
		old, err := repo.Blob(ctx, file.OldID)
		if err != nil {
			return err
		}
		new, err := repo.Blob(ctx, file.NewID)
		if err != nil {
			return err
		}
		select {
		case changes <- change{commitID: commitID, filename: file.Name, old: old, new: new}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// evaluate checks all invariants for a single change and reports violations to report. It returns
// false if the change is too large to compare.
func evaluate(ch change, cfg *config, report func(msg string)) (result, bool) {
	maxLines := linediff.MaxLines(cfg.maxLines)

	start := time.Now()
	stats, ok := linediff.ComputeStats(ch.old, ch.new, maxLines)
	duration := time.Since(start)
	if !ok {
		return result{}, false
	}

	ops, _ := linediff.EditScript(ch.old, ch.new, maxLines)
	var oldLines, newLines []string
	var added, removed int
	for _, op := range ops {
		n := strings.Count(op.Text, "\n") + 1
		switch op.Kind {
		case linediff.Equal:
			oldLines = append(oldLines, op.Text)
			newLines = append(newLines, op.Text)
		case linediff.Delete:
			oldLines = append(oldLines, op.Text)
			removed += n
		case linediff.Add:
			newLines = append(newLines, op.Text)
			added += n
		}
	}
	if got, want := strings.Join(oldLines, "\n"), normalize(ch.old); got != want {
		report("edit script doesn't reproduce the old version")
	}
	if got, want := strings.Join(newLines, "\n"), normalize(ch.new); got != want {
		report("edit script doesn't reproduce the new version")
	}
	if added != stats.Added || removed != stats.Removed {
		report(fmt.Sprintf("edit script has +%d -%d, stats have +%d -%d", added, removed, stats.Added, stats.Removed))
	}

	u, _ := linediff.Render(ch.old, ch.new, ch.filename, maxLines, linediff.MaxOutputLines(math.MaxInt32))
	if u.Truncated {
		report("unlimited diff is truncated")
	}
	if got := linediff.CountUnified(u.Diff); got != stats && !hasHeaderLikeLines(ops) {
		report(fmt.Sprintf("rendered diff has %+v, stats have %+v", got, stats))
	}

	if cfg.minimal {
		if d := dmpEdits(ch.old, ch.new); stats.Added+stats.Removed > d {
			report(fmt.Sprintf("edit script has %d edits, diffmatchpatch found %d", stats.Added+stats.Removed, d))
		}
	}

	return result{
		commitID: ch.commitID,
		file:     ch.filename,
		N:        strings.Count(ch.old, "\n"),
		M:        strings.Count(ch.new, "\n"),
		D:        stats.Added + stats.Removed,
		duration: duration,
	}, true
}

func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// hasHeaderLikeLines reports if a changed line renders like a file header ("+++ " or "--- "),
// which CountUnified doesn't count.
func hasHeaderLikeLines(ops []linediff.Op) bool {
	for _, op := range ops {
		var prefix string
		switch op.Kind {
		case linediff.Add:
			prefix = "++ "
		case linediff.Delete:
			prefix = "-- "
		default:
			continue
		}
		for line := range strings.SplitSeq(op.Text, "\n") {
			if strings.HasPrefix(line, prefix) {
				return true
			}
		}
	}
	return false
}

// dmpEdits returns the number of added and removed lines found by diffmatchpatch in line mode.
func dmpEdits(old, new string) int {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	ro, rn, _ := dmp.DiffLinesToRunes(terminated(old), terminated(new))
	var d int
	for _, diff := range dmp.DiffMainRunes(ro, rn, false) {
		if diff.Type != diffmatchpatch.DiffEqual {
			d += len([]rune(diff.Text))
		}
	}
	return d
}

// terminated adds a terminator to the last line of a non-empty text, so that diffmatchpatch
// compares the same lines as linediff.
func terminated(s string) string {
	if s == "" {
		return ""
	}
	return normalize(s) + "\n"
}
