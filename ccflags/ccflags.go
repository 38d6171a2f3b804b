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

// Package ccflags computes the C and C++ flags implied by a build profile and
// drops the ones the configured compiler does not accept.
package ccflags

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/google/sconsgen/buildenv"
	"github.com/google/sconsgen/config"
)

type Language string

const (
	LangC   Language = "c"
	LangCxx Language = "c++"
)

// A Checker reports whether the preprocessor cpp accepts flag for lang.
type Checker interface {
	Supported(ctx context.Context, cpp string, lang Language, flag string) bool
}

// CompilerChecker asks the compiler itself by preprocessing an empty input.
type CompilerChecker struct {
	Run buildenv.RunFunc
}

func (c CompilerChecker) Supported(ctx context.Context, cpp string, lang Language, flag string) bool {
	run := c.Run
	if run == nil {
		run = buildenv.ExecRun
	}
	_, err := buildenv.RunCommandLine(ctx, run, cpp, "-x", string(lang), flag, "-E", "/dev/null")
	return err == nil
}

const probeCacheSize = 256

type probeKey struct {
	cpp  string
	lang Language
	flag string
}

// Manager produces the flag lists for one build configuration.
type Manager struct {
	cfg     config.BuildConfig
	cpp     string
	checker Checker
	probes  *lru.LRU[probeKey, bool]
	log     *logrus.Logger
}

func NewManager(cfg config.BuildConfig, checker Checker, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	if checker == nil {
		checker = CompilerChecker{}
	}
	return &Manager{
		cfg:     cfg,
		cpp:     "cpp",
		checker: checker,
		probes:  lru.NewLRU[probeKey, bool](probeCacheSize, nil, 0),
		log:     log,
	}
}

// SetCPP sets the preprocessor used to probe flags.
func (m *Manager) SetCPP(cpp string) {
	m.cpp = cpp
}

func (m *Manager) supported(ctx context.Context, lang Language, flag string) bool {
	key := probeKey{cpp: m.cpp, lang: lang, flag: flag}
	if ok, found := m.probes.Get(key); found {
		return ok
	}
	ok := m.checker.Supported(ctx, m.cpp, lang, flag)
	m.probes.Add(key, ok)
	return ok
}

func (m *Manager) filter(ctx context.Context, lang Language, flags []string) []string {
	result := make([]string, 0, len(flags))
	for _, flag := range flags {
		if m.supported(ctx, lang, flag) {
			result = append(result, flag)
		} else {
			m.log.Warnf("%s does not support flag %s, ignored", m.cpp, flag)
		}
	}
	return result
}

// FlagsExceptWarning returns the preprocessor flags and link flags implied
// by the profile, architecture, and profiling options.  Unsupported
// preprocessor flags are dropped.
func (m *Manager) FlagsExceptWarning(ctx context.Context) (cppflags, linkflags []string) {
	arch := "-m" + m.cfg.Bits
	cppflags = []string{arch}
	if m.cfg.Bits == "64" {
		cppflags = append(cppflags, "-mcx16")
	}
	cppflags = append(cppflags, "-pipe")
	linkflags = []string{arch}

	switch m.cfg.Profile {
	case config.ProfileDebug:
		cppflags = append(cppflags, "-ggdb3", "-fstack-protector")
	case config.ProfileRelease:
		cppflags = append(cppflags, "-DNDEBUG")
	}

	cppflags = append(cppflags,
		"-D_FILE_OFFSET_BITS=64",
		"-D__STDC_CONSTANT_MACROS",
		"-D__STDC_FORMAT_MACROS",
		"-D__STDC_LIMIT_MACROS",
	)

	if m.cfg.GProf {
		cppflags = append(cppflags, "-pg")
		linkflags = append(linkflags, "-pg")
	}
	if m.cfg.GCov {
		cppflags = append(cppflags, "--coverage")
		linkflags = append(linkflags, "--coverage")
	}

	return m.filter(ctx, LangCxx, cppflags), linkflags
}

// WarningFlags returns the configured warning flags accepted by the
// compiler: common warnings, C++ only warnings, and C only warnings.
func (m *Manager) WarningFlags(ctx context.Context) (warnings, cxxWarnings, cWarnings []string) {
	cc := m.cfg.Cc
	return m.filter(ctx, LangCxx, cc.Warnings),
		m.filter(ctx, LangCxx, cc.CxxWarnings),
		m.filter(ctx, LangC, cc.CWarnings)
}
