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

package buildenv

import (
	"strings"
)

// A Setting is one variable of the environment passed to the commands the
// build engine runs.
type Setting struct {
	Name  string
	Value string
}

// Environment collects the settings the enabled acceleration tools need.
// Settings are handed out in the order they were added, once.
type Environment struct {
	Status

	rootDir string
	pending []Setting
	ccache  bool
	distcc  bool
}

// New returns an Environment for a source tree rooted at rootDir, which
// should be absolute so ccache can rewrite paths below it.
func New(status Status, rootDir string) *Environment {
	return &Environment{
		Status:  status,
		rootDir: rootDir,
	}
}

func (e *Environment) add(name, value string) {
	e.pending = append(e.pending, Setting{Name: name, Value: value})
}

// SetupCcache adds the ccache settings.  Repeated calls have no effect.
func (e *Environment) SetupCcache() {
	if e.ccache || !e.CcacheInstalled {
		return
	}
	e.ccache = true
	e.add("CCACHE_BASEDIR", e.rootDir)
	e.add("CCACHE_NOHASHDIR", "true")
	e.add("CCACHE_COMPILERCHECK", "content")
}

// SetupDistcc adds the distcc settings.  Repeated calls have no effect.
func (e *Environment) SetupDistcc() {
	if e.distcc || !e.DistccPrepared {
		return
	}
	e.distcc = true
	e.add("DISTCC_HOSTS", e.DistccHosts)
}

// TakeSettings returns the settings added since the last call.
func (e *Environment) TakeSettings() []Setting {
	result := e.pending
	e.pending = nil
	return result
}

// trimHosts joins the non-comment lines of a distcc hosts file.
func trimHosts(data string) string {
	var hosts []string
	for _, line := range strings.Split(data, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		hosts = append(hosts, strings.Fields(line)...)
	}
	return strings.Join(hosts, " ")
}
