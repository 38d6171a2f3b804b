// Copyright 2014 Google Inc. All rights reserved.
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
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/google/sconsgen"
	"github.com/google/sconsgen/buildenv"
	"github.com/google/sconsgen/config"
	"github.com/google/sconsgen/pathtools"
	"github.com/google/sconsgen/toolchain"
)

// Overrides are command line settings that take precedence over the
// configuration file.  Empty strings and nil pointers leave the file's
// value alone.
type Overrides struct {
	Verbose  bool
	NoColor  bool
	Profile  string
	Bits     string
	BuildDir string
	CacheDir *string
}

// Apply returns cfg with the overrides applied, validated.
func (o Overrides) Apply(cfg config.BuildConfig) (config.BuildConfig, error) {
	if o.Verbose {
		cfg.Verbose = true
	}
	if o.NoColor {
		cfg.Color = false
	}
	if o.Profile != "" {
		cfg.Profile = o.Profile
	}
	if o.Bits != "" {
		cfg.Bits = o.Bits
	}
	if o.BuildDir != "" {
		cfg.BuildDir = o.BuildDir
	}
	if o.CacheDir != nil {
		dir := *o.CacheDir
		cfg.CacheDir = &dir
	}
	if err := cfg.Validate(); err != nil {
		return config.BuildConfig{}, err
	}
	return cfg, nil
}

// Host is the machine the generator runs on.
type Host struct {
	FS       pathtools.FileSystem
	Environ  toolchain.Environ
	Run      buildenv.RunFunc
	LookPath func(file string) (string, error)
	Hostname func() (string, error)
	HomeDir  func() (string, error)
	Now      func() time.Time
	// Python is the interpreter whose headers generated extensions use.
	Python string
}

// OSHost is the real machine.
var OSHost = Host{
	FS:       pathtools.OsFs,
	Environ:  toolchain.OSEnviron,
	Run:      buildenv.ExecRun,
	LookPath: exec.LookPath,
	Hostname: os.Hostname,
	HomeDir:  os.UserHomeDir,
	Now:      time.Now,
	Python:   "python3",
}

// Facts gathers the host facts embedded in the generated script.  Facts
// that cannot be determined are left empty with a warning.
func (h Host) Facts(ctx context.Context, log *logrus.Logger) sconsgen.Facts {
	facts := sconsgen.Facts{Now: h.Now}

	facts.User, _ = h.Environ("USER")

	host, err := h.Hostname()
	if err != nil {
		log.Warnf("cannot determine host name: %s", err)
	}
	facts.Host = host

	home, err := h.HomeDir()
	if err != nil {
		log.Warnf("cannot determine home directory: %s", err)
	}
	facts.HomeDir = home

	cc := toolchain.Resolve(h.Environ).CC
	facts.CompilerVersion, err = buildenv.CompilerVersion(ctx, h.Run, cc)
	if err != nil {
		log.Warn(err)
	}

	if h.Python != "" {
		facts.PythonInclude, err = buildenv.PythonInclude(ctx, h.Run, h.Python)
		if err != nil {
			log.Warn(err)
		}
	}

	return facts
}

// NewLogger returns the logger shared by every component.  Colors are only
// used when enabled and w is a terminal.
func NewLogger(w io.Writer, colored bool) *logrus.Logger {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      colored && tty,
		DisableColors:    !colored || !tty,
		DisableTimestamp: true,
	})
	return log
}
