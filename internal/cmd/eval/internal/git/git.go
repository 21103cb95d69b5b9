// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package git provides a simplified read-only interface to a git repository for evaluations.
package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// ZeroID is the blob id git reports for a file that doesn't exist on one side of a change.
const ZeroID = "0000000000000000000000000000000000000000"

// Repo is a git repository. Blobs are read through a single long running git cat-file process.
type Repo struct {
	dir string

	mu  sync.Mutex // guards the cat-file process
	cmd *exec.Cmd
	in  io.WriteCloser
	out *bufio.Reader
	err bytes.Buffer
}

// Open starts reading the repository in dir. The returned Repo must be closed.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	r := &Repo{dir: dir}
	r.cmd = exec.CommandContext(ctx, "git", "-C", dir, "cat-file", "--batch")
	r.cmd.Stderr = &r.err
	in, err := r.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdin: %w", err)
	}
	out, err := r.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdout: %w", err)
	}
	if err := r.cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %w", err)
	}
	r.in, r.out = in, bufio.NewReader(out)
	return r, nil
}

// Close stops the cat-file process.
func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.in.Close()
	if err := r.cmd.Wait(); err != nil {
		return fmt.Errorf("git cat-file: %w\n%s", err, r.err.String())
	}
	return nil
}

// RevList returns the ids of all non-merge commits reachable from HEAD.
func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// FileChange is a file modified by a commit.
type FileChange struct {
	Name  string
	OldID string
	NewID string
}

// DiffTree returns the files changed by commit compared to its first parent.
func (r *Repo) DiffTree(ctx context.Context, commit string) ([]FileChange, error) {
	out, err := r.git(ctx, "diff-tree", "-r", "--no-commit-id", commit)
	if err != nil {
		return nil, err
	}
	var changes []FileChange
	for line := range strings.Lines(out) {
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			continue
		}
		// :old-mode new-mode old-id new-id status\tpath
		meta, name, ok := strings.Cut(line, "\t")
		if !ok || !strings.HasPrefix(meta, ":") {
			return nil, fmt.Errorf("unexpected diff-tree line: %q", line)
		}
		fields := strings.Fields(meta[1:])
		if len(fields) < 5 {
			return nil, fmt.Errorf("unexpected diff-tree line: %q", line)
		}
		changes = append(changes, FileChange{
			Name:  name,
			OldID: fields[2],
			NewID: fields[3],
		})
	}
	return changes, nil
}

// Blob returns the content of the blob with the given id. ZeroID reads as empty.
func (r *Repo) Blob(ctx context.Context, id string) (string, error) {
	if id == ZeroID {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintf(r.in, "%s\n", id); err != nil {
		return "", fmt.Errorf("requesting blob %s: %w", id, err)
	}
	header, err := r.out.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading blob %s: %w", id, err)
	}
	// <id> <type> <size>
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return "", fmt.Errorf("reading blob %s: unexpected header %q", id, header)
	}
	if fields[0] != id {
		return "", fmt.Errorf("reading blob %s: got blob %s", id, fields[0])
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", fmt.Errorf("reading blob %s: %w", id, err)
	}
	buf := make([]byte, n+1) // content is followed by a newline
	if _, err := io.ReadFull(r.out, buf); err != nil {
		return "", fmt.Errorf("reading blob %s: %w", id, err)
	}
	return string(buf[:n]), nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.Join(ctxErr, err)
		}
		return "", fmt.Errorf("running %v: %w\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}
