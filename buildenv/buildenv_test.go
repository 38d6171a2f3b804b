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
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/sconsgen/config"
	"github.com/google/sconsgen/pathtools"
	"github.com/google/sconsgen/toolchain"
)

func lookPath(installed ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, f := range installed {
			if f == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestDetect(t *testing.T) {
	testCases := []struct {
		name      string
		configure func(*config.BuildConfig)
		installed []string
		environ   map[string]string
		files     map[string][]byte
		status    Status
		warnings  int
	}{
		{
			name:      "nothing configured",
			configure: func(*config.BuildConfig) {},
			installed: []string{"distcc", "dccc"},
		},
		{
			name:      "ccache",
			configure: func(*config.BuildConfig) {},
			installed: []string{"ccache"},
			status:    Status{CcacheInstalled: true},
		},
		{
			name: "distcc with configured hosts",
			configure: func(c *config.BuildConfig) {
				c.Distcc = config.DistccConfig{Enabled: true, Hosts: "h1 h2"}
			},
			installed: []string{"distcc"},
			status:    Status{DistccPrepared: true, DistccHosts: "h1 h2"},
		},
		{
			name: "distcc hosts from environment",
			configure: func(c *config.BuildConfig) {
				c.Distcc.Enabled = true
			},
			installed: []string{"distcc"},
			environ:   map[string]string{"DISTCC_HOSTS": "env1"},
			status:    Status{DistccPrepared: true, DistccHosts: "env1"},
		},
		{
			name: "distcc hosts file",
			configure: func(c *config.BuildConfig) {
				c.Distcc.Enabled = true
			},
			installed: []string{"distcc"},
			files: map[string][]byte{
				"/home/u/.distcc/hosts": []byte("# farm\nf1 f2\nf3 # spare\n"),
			},
			status: Status{DistccPrepared: true, DistccHosts: "f1 f2 f3"},
		},
		{
			name: "distcc without hosts",
			configure: func(c *config.BuildConfig) {
				c.Distcc.Enabled = true
			},
			installed: []string{"distcc"},
			warnings:  1,
		},
		{
			name: "distcc not installed",
			configure: func(c *config.BuildConfig) {
				c.Distcc = config.DistccConfig{Enabled: true, Hosts: "h1"}
			},
			status:   Status{DistccHosts: "h1"},
			warnings: 1,
		},
		{
			name: "dccc",
			configure: func(c *config.BuildConfig) {
				c.Link.EnableDccc = true
			},
			installed: []string{"dccc"},
			status:    Status{DcccPrepared: true},
		},
		{
			name: "dccc not installed",
			configure: func(c *config.BuildConfig) {
				c.Link.EnableDccc = true
			},
			warnings: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			cfg := config.Default()
			tc.configure(&cfg)
			probe := Probe{
				LookPath: lookPath(tc.installed...),
				Environ:  toolchain.MapEnviron(tc.environ),
				FS:       pathtools.MockFs(tc.files),
				HomeDir:  "/home/u",
				Logger:   logger,
			}

			assert.Equal(t, tc.status, probe.Detect(cfg))

			warnings := 0
			for _, e := range hook.AllEntries() {
				if e.Level.String() == "warning" {
					warnings++
				}
			}
			assert.Equal(t, tc.warnings, warnings)
		})
	}
}

func TestEnvironmentSettings(t *testing.T) {
	env := New(Status{CcacheInstalled: true, DistccPrepared: true, DistccHosts: "h1"}, "/src")

	env.SetupCcache()
	env.SetupCcache()
	assert.Equal(t, []Setting{
		{Name: "CCACHE_BASEDIR", Value: "/src"},
		{Name: "CCACHE_NOHASHDIR", Value: "true"},
		{Name: "CCACHE_COMPILERCHECK", Value: "content"},
	}, env.TakeSettings())

	env.SetupDistcc()
	assert.Equal(t, []Setting{{Name: "DISTCC_HOSTS", Value: "h1"}}, env.TakeSettings())
	assert.Empty(t, env.TakeSettings())
}

func TestEnvironmentNotReady(t *testing.T) {
	env := New(Status{}, "/src")
	env.SetupCcache()
	env.SetupDistcc()
	assert.Empty(t, env.TakeSettings())
}

func TestCompilerVersion(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(_ context.Context, _ string, _ []string, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("4.8.2\n"), nil
	}

	v, err := CompilerVersion(context.Background(), run, "ccache gcc")
	require.NoError(t, err)
	assert.Equal(t, "4.8.2", v)
	assert.Equal(t, "ccache", gotName)
	assert.Equal(t, []string{"gcc", "-dumpversion"}, gotArgs)
}

func TestPythonInclude(t *testing.T) {
	run := func(_ context.Context, _ string, _ []string, name string, args ...string) ([]byte, error) {
		if name != "python3" {
			return nil, errors.New("not found")
		}
		return []byte("/usr/include/python3.12\n"), nil
	}

	inc, err := PythonInclude(context.Background(), run, "python3")
	require.NoError(t, err)
	assert.Equal(t, "/usr/include/python3.12", inc)

	_, err = PythonInclude(context.Background(), run, "python2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detecting python include path")
}

func TestRunCommandLineEmpty(t *testing.T) {
	_, err := RunCommandLine(context.Background(), ExecRun, "  ")
	assert.EqualError(t, err, "empty command")
}
