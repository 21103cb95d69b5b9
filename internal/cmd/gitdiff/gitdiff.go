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

// gitdiff is a tool that can be used with git using GIT_EXTERNAL_DIFF.
//
// It prints the same diffs as linediff.Render, but with the index line that git shows for a diff:
//
//	GIT_EXTERNAL_DIFF=${HOME}/go/bin/gitdiff git diff HEAD~1
//
// This is useful to compare the output with git's own diff on real repositories. The number of
// context lines can be set with the environment variable LINEDIFF_CONTEXT.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"znkr.io/linediff"
)

func main() {
	if err := run(os.Args, os.Getenv("LINEDIFF_CONTEXT")); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, contextEnv string) error {
	// git calls the tool with: path old-file old-hex old-mode new-file new-hex new-mode
	if len(args) < 8 {
		return fmt.Errorf("expected at least 8 args, got %v: %v", len(args), args)
	}
	path, oldFile, oldHex, newFile, newHex, newMode := args[1], args[2], args[3], args[5], args[6], args[7]

	context := 3
	if contextEnv != "" {
		var err error
		context, err = strconv.Atoi(contextEnv)
		if err != nil {
			return fmt.Errorf("invalid LINEDIFF_CONTEXT: %v", err)
		}
	}

	old, err := readFile(oldFile)
	if err != nil {
		return fmt.Errorf("reading old file: %v", err)
	}
	new, err := readFile(newFile)
	if err != nil {
		return fmt.Errorf("reading new file: %v", err)
	}

	u, ok := linediff.Render(old, new, path, linediff.Context(context), linediff.MaxOutputLines(1<<30))
	if !ok {
		fmt.Printf("Files a/%s and b/%s differ\n", path, path)
		return nil
	}
	if u.Diff == "" {
		return nil
	}

	// Insert the index line after the first header line.
	header, rest, _ := strings.Cut(u.Diff, "\n")
	fmt.Println(header)
	fmt.Printf("index %s..%s %s\n", abbrev(oldHex), abbrev(newHex), newMode)
	fmt.Println(rest)
	return nil
}

func readFile(name string) (string, error) {
	if name == os.DevNull {
		return "", nil
	}
	b, err := os.ReadFile(name)
	return string(b), err
}

func abbrev(hex string) string {
	if len(hex) > 10 {
		return hex[:10]
	}
	return hex
}
