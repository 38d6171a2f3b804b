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

package bootstrap

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/sconsgen"
	"github.com/google/sconsgen/config"
	"github.com/google/sconsgen/pathtools"
	"github.com/google/sconsgen/toolchain"
)

const rulesText = "Program('hello', ['hello.cc'])\n"

func fakeHost(files map[string][]byte) Host {
	return Host{
		FS:      pathtools.MockFs(files),
		Environ: toolchain.MapEnviron(map[string]string{"USER": "alice"}),
		Run: func(_ context.Context, _ string, _ []string, name string, args ...string) ([]byte, error) {
			switch {
			case name == "gcc" && len(args) == 1 && args[0] == "-dumpversion":
				return []byte("12.2.0\n"), nil
			case name == "python3":
				return []byte("/usr/include/python3.12\n"), nil
			}
			return nil, nil
		},
		LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
		Hostname: func() (string, error) { return "builder-host", nil },
		HomeDir:  func() (string, error) { return "/home/alice", nil },
		Now: func() time.Time {
			return time.Date(2026, 10, 19, 9, 5, 3, 0, time.UTC)
		},
		Python: "python3",
	}
}

func TestRun(t *testing.T) {
	host := fakeHost(map[string][]byte{
		"build.yaml": []byte("profile: debug\n"),
		"rules.py":   []byte(rulesText),
	})
	logger, hook := test.NewNullLogger()

	opts := Options{
		OutFile:    "SConstruct",
		DepFile:    "SConstruct.d",
		ConfigFile: "build.yaml",
		Overrides:  Overrides{BuildDir: "build64_debug"},
	}
	err := Run(context.Background(), opts, host, FileRules{FS: host.FS, Path: "rules.py"}, logger)
	require.NoError(t, err)

	out, err := host.FS.ReadFile("SConstruct")
	require.NoError(t, err)
	script := string(out)
	assert.Contains(t, script, "top_env = Environment(ENV=os.environ)")
	assert.Contains(t, script, "-ggdb3")
	assert.True(t, strings.HasSuffix(script, rulesText), "target rules must come last")

	versionFile, err := host.FS.ReadFile("build64_debug/version.cpp")
	require.NoError(t, err)
	assert.Contains(t, string(versionFile), `"GCC 12.2.0"`)
	assert.Contains(t, string(versionFile), `"alice"`)
	assert.Contains(t, string(versionFile), `"builder-host"`)

	dep, err := host.FS.ReadFile("SConstruct.d")
	require.NoError(t, err)
	assert.Equal(t, "SConstruct: \\\n build.yaml \\\n rules.py\n", string(dep))

	assert.Equal(t, "generated SConstruct", hook.LastEntry().Message)
}

func TestRunOutputDirCollision(t *testing.T) {
	host := fakeHost(map[string][]byte{
		"build64_release": []byte("not a directory"),
	})
	logger, _ := test.NewNullLogger()

	err := Run(context.Background(), Options{OutFile: "SConstruct"}, host, nil, logger)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sconsgen.ErrOutputDir))

	_, err = host.FS.ReadFile("SConstruct")
	assert.Error(t, err, "no script may be written after a fatal error")
}

func TestRunBadConfig(t *testing.T) {
	host := fakeHost(map[string][]byte{
		"build.yaml": []byte("profile: fast\n"),
	})
	logger, _ := test.NewNullLogger()

	err := Run(context.Background(), Options{OutFile: "SConstruct", ConfigFile: "build.yaml"}, host, nil, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid profile "fast"`)
}

func TestRunMissingRules(t *testing.T) {
	host := fakeHost(nil)
	logger, _ := test.NewNullLogger()

	err := Run(context.Background(), Options{OutFile: "SConstruct"}, host,
		FileRules{FS: host.FS, Path: "rules.py"}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading target rules")
}

func TestOverridesApply(t *testing.T) {
	empty := ""
	testCases := []struct {
		name      string
		overrides Overrides
		check     func(t *testing.T, cfg config.BuildConfig)
		err       string
	}{
		{
			name:      "none",
			overrides: Overrides{},
			check: func(t *testing.T, cfg config.BuildConfig) {
				assert.Equal(t, config.Default(), cfg)
			},
		},
		{
			name:      "all",
			overrides: Overrides{Verbose: true, NoColor: true, Profile: "debug", Bits: "32", BuildDir: "out", CacheDir: &empty},
			check: func(t *testing.T, cfg config.BuildConfig) {
				assert.True(t, cfg.Verbose)
				assert.False(t, cfg.Color)
				assert.Equal(t, config.ProfileDebug, cfg.Profile)
				assert.Equal(t, "32", cfg.Bits)
				assert.Equal(t, "out", cfg.BuildDir)
				_, _, enabled, _ := cfg.CacheSettings()
				assert.False(t, enabled)
			},
		},
		{
			name:      "invalid",
			overrides: Overrides{Bits: "16"},
			err:       `invalid m "16", must be 32 or 64`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := tc.overrides.Apply(config.Default())
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestHostFactsWarnings(t *testing.T) {
	host := fakeHost(nil)
	host.Hostname = func() (string, error) { return "", errors.New("no uts namespace") }
	host.Run = func(context.Context, string, []string, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 127")
	}
	logger, hook := test.NewNullLogger()

	facts := host.Facts(context.Background(), logger)
	assert.Equal(t, "alice", facts.User)
	assert.Empty(t, facts.Host)
	assert.Empty(t, facts.CompilerVersion)
	assert.Empty(t, facts.PythonInclude)
	assert.Equal(t, "/home/alice", facts.HomeDir)
	assert.Len(t, hook.AllEntries(), 3)
}

func TestFileRulesEmpty(t *testing.T) {
	fs := pathtools.MockFs(map[string][]byte{"rules.py": nil})
	rules, deps, err := FileRules{FS: fs, Path: "rules.py"}.TargetRules(config.Default())
	require.NoError(t, err)
	assert.Empty(t, rules)
	assert.Equal(t, []string{"rules.py"}, deps)
}
