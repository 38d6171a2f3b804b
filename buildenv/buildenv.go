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

// Package buildenv probes the host for the compile acceleration tools
// (ccache, distcc, dccc) and records the engine environment settings each
// tool needs once it is switched on.
package buildenv

import (
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/google/sconsgen/config"
	"github.com/google/sconsgen/pathtools"
	"github.com/google/sconsgen/toolchain"
)

// Status is the readiness of each acceleration mechanism.  A mechanism that
// is configured but not ready is reported as false.
type Status struct {
	CcacheInstalled bool
	DistccPrepared  bool
	DcccPrepared    bool

	// DistccHosts is the host list distcc will use when DistccPrepared.
	DistccHosts string
}

// A Probe inspects the host.  Zero fields fall back to the real host.
type Probe struct {
	LookPath func(file string) (string, error)
	Environ  toolchain.Environ
	FS       pathtools.FileSystem
	HomeDir  string
	Logger   *logrus.Logger
}

func (p Probe) lookPath(file string) bool {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(file)
	return err == nil
}

func (p Probe) logger() *logrus.Logger {
	if p.Logger == nil {
		return logrus.New()
	}
	return p.Logger
}

// Detect returns the readiness of every mechanism for cfg.
func (p Probe) Detect(cfg config.BuildConfig) Status {
	var s Status
	log := p.logger()

	s.CcacheInstalled = p.lookPath("ccache")
	if s.CcacheInstalled {
		log.Info("ccache found")
	}

	if cfg.Distcc.Enabled {
		s.DistccHosts = p.distccHosts(cfg)
		switch {
		case !p.lookPath("distcc"):
			log.Warn("distcc is enabled but not installed, building locally")
		case s.DistccHosts == "":
			log.Warn("distcc is enabled but no hosts are configured, building locally")
		default:
			s.DistccPrepared = true
			log.Infof("distcc hosts: %s", s.DistccHosts)
		}
	}

	if cfg.Link.EnableDccc {
		if p.lookPath("dccc") {
			s.DcccPrepared = true
		} else {
			log.Warn("dccc is enabled but not installed, linking locally")
		}
	}

	return s
}

// distccHosts returns the configured hosts, then DISTCC_HOSTS, then the
// contents of ~/.distcc/hosts.
func (p Probe) distccHosts(cfg config.BuildConfig) string {
	if cfg.Distcc.Hosts != "" {
		return cfg.Distcc.Hosts
	}
	if p.Environ != nil {
		if hosts, ok := p.Environ("DISTCC_HOSTS"); ok && hosts != "" {
			return hosts
		}
	}
	if p.FS != nil && p.HomeDir != "" {
		data, err := p.FS.ReadFile(filepath.Join(p.HomeDir, ".distcc", "hosts"))
		if err == nil {
			return trimHosts(string(data))
		}
	}
	return ""
}
