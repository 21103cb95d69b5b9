// diff runs one of the benchmarked implementations on a pair of inputs and prints its output,
// followed by the number of added and removed lines on stderr. This makes it easy to compare the
// quality of the diffs between libraries.
//
// Usage:
//
//	diff [-lib name] OLD NEW
//	diff [-lib name] -txtar testdata/example.test
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/tools/txtar"
	"znkr.io/linediff"
	"znkr.io/linediff/internal/benchmarks"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags.SetOutput(stderr)
	name := flags.String("lib", "linediff", "implementation to run")
	archive := flags.String("txtar", "", "read the inputs from the old and new sections of a txtar file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	impl, err := lookup(*name)
	if err != nil {
		return err
	}

	var old, new string
	switch {
	case *archive != "" && flags.NArg() == 0:
		old, new, err = readArchive(*archive)
	case *archive == "" && flags.NArg() == 2:
		old, new, err = readFiles(flags.Arg(0), flags.Arg(1))
	default:
		return fmt.Errorf("want either -txtar or two files, got %d arguments", flags.NArg())
	}
	if err != nil {
		return err
	}

	out := impl.Diff(old, new)
	fmt.Fprintln(stdout, out)
	summarize(stderr, impl.Name, out)
	return nil
}

func lookup(name string) (benchmarks.Impl, error) {
	names := make([]string, len(benchmarks.Impls))
	for i, impl := range benchmarks.Impls {
		if impl.Name == name {
			return impl, nil
		}
		names[i] = impl.Name
	}
	return benchmarks.Impl{}, fmt.Errorf("unknown implementation %q, want one of: %s", name, strings.Join(names, ", "))
}

func readArchive(path string) (old, new string, err error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return "", "", err
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "old":
			old = string(f.Data)
		case "new":
			new = string(f.Data)
		}
	}
	return old, new, nil
}

func readFiles(oldPath, newPath string) (old, new string, err error) {
	b, err := os.ReadFile(oldPath)
	if err != nil {
		return "", "", err
	}
	old = string(b)
	if b, err = os.ReadFile(newPath); err != nil {
		return "", "", err
	}
	return old, string(b), nil
}

// summarize prints the number of changed lines in out. For the implementations that don't write
// unified diffs this is still meaningful, they all prefix changed lines with '+' and '-'.
func summarize(w io.Writer, name, out string) {
	stats := linediff.CountUnified(out)
	fmt.Fprintf(w, "%s: %d added, %d removed, %d edits\n", name, stats.Added, stats.Removed, stats.Added+stats.Removed)
}
