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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestWriteStats(t *testing.T) {
	results := make(chan result)
	go func() {
		defer close(results)
		results <- result{commitID: "abc", file: "a.go", N: 3, M: 4, D: 1, duration: 10 * time.Nanosecond}
		results <- result{commitID: "def", file: "b.go", N: 0, M: 2, D: 2, duration: time.Microsecond}
	}()

	var sb strings.Builder
	if err := writeStats(&sb, results); err != nil {
		t.Fatalf("writeStats(...) returned unexpected error: %v", err)
	}
	want := "commit_id,file,N,M,D,duration_ns\n" +
		"abc,a.go,3,4,1,10\n" +
		"def,b.go,0,2,2,1000\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("writeStats(...) output is different [-want,+got]:\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteStatsFailure(t *testing.T) {
	const n = 1000 // more than fits into the write buffer
	results := make(chan result)
	sent := make(chan int)
	go func() {
		defer close(results)
		i := 0
		for ; i < n; i++ {
			results <- result{commitID: "abc", file: "some/file.go", N: i, M: i, D: 0}
		}
		sent <- i
	}()

	errc := make(chan error, 1)
	go func() { errc <- writeStats(failingWriter{}, results) }()

	select {
	case got := <-sent:
		if got != n {
			t.Errorf("sent %d results, want %d", got, n)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("sending results blocked after a failed write")
	}
	if err := <-errc; err == nil {
		t.Error("writeStats(...) returned no error for a failing writer")
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		wantD    int
	}{
		{"change", "a\nb\nc\n", "a\nx\nc\n", 2},
		{"crlf", "a\r\nb\r\n", "a\r\nc\r\n", 2},
		{"new-file", "", "package main\n", 2},
		{"header-like-lines", "-- a\n", "++ b\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var violations []string
			cfg := &config{maxLines: 100, minimal: true}
			ch := change{commitID: "abc", filename: "f", old: tt.old, new: tt.new}
			res, ok := evaluate(ch, cfg, func(msg string) { violations = append(violations, msg) })
			if !ok {
				t.Fatal("evaluate(...) reported that inputs are too large")
			}
			if len(violations) > 0 {
				t.Errorf("evaluate(...) reported violations: %q", violations)
			}
			if res.D != tt.wantD {
				t.Errorf("evaluate(...).D = %d, want %d", res.D, tt.wantD)
			}
		})
	}

	_, ok := evaluate(change{old: strings.Repeat("x\n", 200)}, &config{maxLines: 100}, func(string) {})
	if ok {
		t.Error("evaluate(...) accepted input larger than max-lines")
	}
}
