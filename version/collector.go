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
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/google/sconsgen/buildenv"
	"github.com/google/sconsgen/pathtools"
)

// A Querier returns the revision info of the working copy at root.
type Querier interface {
	Query(ctx context.Context, root string) (string, error)
}

// SVNQuerier runs "svn info" on the working copy.  The command runs in the
// parent of the resolved root so the reported path is the root's base name.
type SVNQuerier struct {
	FS  pathtools.FileSystem
	Run buildenv.RunFunc
}

func (q SVNQuerier) Query(ctx context.Context, root string) (string, error) {
	dir, base, err := pathtools.SplitRealPath(q.FS, root)
	if err != nil {
		return "", err
	}
	out, err := q.Run(ctx, dir, []string{"LC_ALL=POSIX"}, "svn", "info", base)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GitQuerier reports the last commit of a git working copy.
type GitQuerier struct {
	Run buildenv.RunFunc
}

const gitInfoFormat = "Revision: %H%n" +
	"Last Changed Author: %an <%ae>%n" +
	"Last Changed Date: %ad%n"

func (q GitQuerier) Query(ctx context.Context, root string) (string, error) {
	out, err := q.Run(ctx, root, []string{"LC_ALL=POSIX"},
		"git", "log", "-1", "--date=iso", "--format="+gitInfoFormat)
	if err != nil {
		return "", err
	}
	return "Path: " + filepath.Base(root) + "\n" + string(out), nil
}

// Collector gathers the revision info of a list of working copies.  A
// working copy that is not under version control, or whose query fails or
// times out, is skipped with a warning.
type Collector struct {
	FS  pathtools.FileSystem
	SVN Querier
	Git Querier

	// Timeout bounds each query.  Zero means no deadline.
	Timeout time.Duration

	Log *logrus.Logger
}

// NewCollector returns a Collector running svn and git through run.
func NewCollector(fs pathtools.FileSystem, run buildenv.RunFunc, timeout time.Duration, log *logrus.Logger) *Collector {
	if log == nil {
		log = logrus.New()
	}
	return &Collector{
		FS:      fs,
		SVN:     SVNQuerier{FS: fs, Run: run},
		Git:     GitQuerier{Run: run},
		Timeout: timeout,
		Log:     log,
	}
}

// Collect returns one entry per working copy whose info could be read, in
// the order of roots.  Repeated roots are queried once.
func (c *Collector) Collect(ctx context.Context, roots []string) []Entry {
	var entries []Entry
	seen := make(map[string]bool)
	for _, root := range roots {
		if seen[root] {
			continue
		}
		seen[root] = true

		querier := c.querierFor(root)
		if querier == nil {
			c.Log.Warnf("%q is not under version control", root)
			continue
		}

		info, err := c.query(ctx, querier, root)
		if err != nil {
			c.Log.Warnf("failed to get version control info in %s: %s", root, err)
			continue
		}
		entries = append(entries, Entry{Root: root, Info: info})
	}
	return entries
}

func (c *Collector) querierFor(root string) Querier {
	if c.exists(filepath.Join(root, ".svn")) && c.SVN != nil {
		return c.SVN
	}
	if c.exists(filepath.Join(root, ".git")) && c.Git != nil {
		return c.Git
	}
	return nil
}

func (c *Collector) exists(name string) bool {
	exists, _, err := c.FS.Exists(name)
	return err == nil && exists
}

func (c *Collector) query(ctx context.Context, q Querier, root string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	info, err := q.Query(ctx, root)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", root, err)
	}
	return info, nil
}
