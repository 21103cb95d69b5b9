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
	"context"
	"errors"
	"io/fs"
	"slices"
)

// FS is a Source reading the original version of files from Before and the current version from
// After.
//
// A file missing from one of the file systems (or a nil file system) reads as empty, i.e. it has
// been created or deleted.
type FS struct {
	Before fs.FS
	After  fs.FS
}

var _ Source = FS{}

func (s FS) Original(ctx context.Context, path string) (string, error) {
	return readFile(ctx, s.Before, path)
}

func (s FS) Current(ctx context.Context, path string) (string, error) {
	return readFile(ctx, s.After, path)
}

func readFile(ctx context.Context, fsys fs.FS, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !fs.ValidPath(path) {
		return "", &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}
	if fsys == nil {
		return "", nil
	}
	b, err := fs.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Paths returns the sorted paths of all regular files in either file system.
func (s FS) Paths() ([]string, error) {
	var paths []string
	for _, fsys := range []fs.FS{s.Before, s.After} {
		if fsys == nil {
			continue
		}
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}
