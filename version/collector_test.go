// Copyright 2026 Google Inc. All rights reserved.
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

package version

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/sconsgen/pathtools"
)

type runCall struct {
	dir  string
	env  []string
	name string
	args []string
}

type fakeRunner struct {
	calls  []runCall
	output string
	err    error
	// block makes the command wait for its context.
	block bool
}

func (r *fakeRunner) run(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, runCall{dir, env, name, args})
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []byte(r.output), r.err
}

func workingCopies() pathtools.FileSystem {
	return pathtools.MockFs(map[string][]byte{
		"src/.svn/entries":  nil,
		"repo/.git/HEAD":    nil,
		"plain/BUILD":       nil,
		"deep/tree/.svn/wc": nil,
	})
}

func TestCollectSVN(t *testing.T) {
	logger, hook := test.NewNullLogger()
	runner := &fakeRunner{output: "URL: svn://x/src\nRevision: 12\n"}
	c := NewCollector(workingCopies(), runner.run, 0, logger)

	entries := c.Collect(context.Background(), []string{"deep/tree"})

	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Root: "deep/tree", Info: "URL: svn://x/src\nRevision: 12\n"}, entries[0])
	require.Len(t, runner.calls, 1)
	assert.Equal(t, runCall{
		dir:  "/deep",
		env:  []string{"LC_ALL=POSIX"},
		name: "svn",
		args: []string{"info", "tree"},
	}, runner.calls[0])
	assert.Empty(t, hook.AllEntries())
}

func TestCollectGit(t *testing.T) {
	logger, _ := test.NewNullLogger()
	runner := &fakeRunner{output: "Revision: abc\n"}
	c := NewCollector(workingCopies(), runner.run, 0, logger)

	entries := c.Collect(context.Background(), []string{"repo"})

	require.Len(t, entries, 1)
	assert.Equal(t, "Path: repo\nRevision: abc\n", entries[0].Info)
	assert.Equal(t, "git", runner.calls[0].name)
	assert.Equal(t, "repo", runner.calls[0].dir)
}

func TestCollectSkipsWithWarnings(t *testing.T) {
	logger, hook := test.NewNullLogger()
	runner := &fakeRunner{err: errors.New("exit status 1")}
	c := NewCollector(workingCopies(), runner.run, 0, logger)

	entries := c.Collect(context.Background(), []string{"plain", "src", "missing"})

	assert.Empty(t, entries)
	require.Len(t, hook.AllEntries(), 3)
	assert.Equal(t, `"plain" is not under version control`, hook.AllEntries()[0].Message)
	assert.Equal(t, "failed to get version control info in src: querying src: exit status 1",
		hook.AllEntries()[1].Message)
	assert.Equal(t, `"missing" is not under version control`, hook.AllEntries()[2].Message)
}

func TestCollectOrderAndDuplicates(t *testing.T) {
	logger, _ := test.NewNullLogger()
	runner := &fakeRunner{output: "info"}
	c := NewCollector(workingCopies(), runner.run, 0, logger)

	entries := c.Collect(context.Background(), []string{"repo", "src", "repo"})

	require.Len(t, entries, 2)
	assert.Equal(t, "repo", entries[0].Root)
	assert.Equal(t, "src", entries[1].Root)
	assert.Len(t, runner.calls, 2)
}

func TestCollectTimeout(t *testing.T) {
	logger, hook := test.NewNullLogger()
	runner := &fakeRunner{block: true}
	c := NewCollector(workingCopies(), runner.run, 10*time.Millisecond, logger)

	entries := c.Collect(context.Background(), []string{"src"})

	assert.Empty(t, entries)
	require.Len(t, hook.AllEntries(), 1)
	assert.Contains(t, hook.LastEntry().Message, "failed to get version control info in src")
	assert.Contains(t, hook.LastEntry().Message, context.DeadlineExceeded.Error())
}
