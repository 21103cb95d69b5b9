// Package benchmarks compares linediff with other diff libraries.
package benchmarks

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/linediff"
)

type Impl struct {
	Name string
	Diff func(x, y string) string
}

// Large enough to never reject or truncate any of the benchmark inputs.
const unlimited = 1 << 30

var Impls = []Impl{
	{
		Name: "linediff",
		Diff: func(x, y string) string {
			u, _ := linediff.Render(x, y, "x", linediff.MaxLines(unlimited), linediff.MaxOutputLines(unlimited))
			return u.Diff
		},
	},
	{
		Name: "linediff-stats",
		Diff: func(x, y string) string {
			// Not a diff, but the +/- prefixes make it count the same number of edits.
			stats, _ := linediff.ComputeStats(x, y, linediff.MaxLines(unlimited))
			return strings.Repeat("+\n", stats.Added) + strings.Repeat("-\n", stats.Removed)
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y string) string {
			return string(gointernal.Diff("x", []byte(x), "y", []byte(y)))
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y string) string {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(x, y)
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var b strings.Builder
			for _, d := range diffs {
				prefix := " "
				switch d.Type {
				case diffmatchpatch.DiffInsert:
					prefix = "+"
				case diffmatchpatch.DiffDelete:
					prefix = "-"
				}
				for line := range strings.Lines(d.Text) {
					b.WriteString(prefix)
					b.WriteString(line)
				}
			}
			return b.String()
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y string) string {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			return godebug.Diff(x, y)
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y string) string {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			d := mb0lines{
				x: strings.SplitAfter(x, "\n"),
				y: strings.SplitAfter(y, "\n"),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var b strings.Builder
			a := 0
			for _, ch := range changes {
				for ; a < ch.A; a++ {
					b.WriteString(" " + d.x[a])
				}
				for i := range ch.Del {
					b.WriteString("-" + d.x[ch.A+i])
				}
				a += ch.Del
				for i := range ch.Ins {
					b.WriteString("+" + d.y[ch.B+i])
				}
			}
			for ; a < len(d.x); a++ {
				b.WriteString(" " + d.x[a])
			}
			return b.String()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y string) string {
			return udiff.Unified("x", "y", x, y)
		},
	},
}

type mb0lines struct {
	x []string
	y []string
}

func (d mb0lines) Equal(i, j int) bool { return d.x[i] == d.y[j] }
