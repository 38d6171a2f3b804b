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

package sconsgen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/google/sconsgen/buildenv"
	"github.com/google/sconsgen/ccflags"
	"github.com/google/sconsgen/config"
	"github.com/google/sconsgen/pathtools"
	"github.com/google/sconsgen/toolchain"
	"github.com/google/sconsgen/version"
)

// ErrOutputDir is returned, wrapped, when the build output directory cannot
// be created.  Generation cannot continue without it.
var ErrOutputDir = errors.New("cannot create build output directory")

// Script names shared between phases.
const (
	topEnv         = "top_env"
	versionEnv     = "env_version"
	versionObj     = "version_obj"
	envWithError   = "env_with_error"
	envNoWarning   = "env_no_warning"
	scacheManager  = "scache_manager"
	cacheProgress  = 100
	timeValue      = "time_value"
	verboseOptions = "scons_helper.option_verbose"
)

// Facts describe the host and the moment of generation.  They are gathered
// once by the caller so that generation itself is deterministic.
type Facts struct {
	// CompilerVersion is the bare version of the C compiler.
	CompilerVersion string
	// PythonInclude is the directory holding Python.h.
	PythonInclude string
	User          string
	Host          string
	HomeDir       string
	// Now returns the build time.  It is called at most once.
	Now func() time.Time
}

// A RevisionSource returns the revision info of the given working copies,
// skipping the ones it cannot read.
type RevisionSource interface {
	Collect(ctx context.Context, roots []string) []version.Entry
}

// Params are the collaborators of an Emitter.  Nil fields get defaults that
// talk to the real host.
type Params struct {
	FS       pathtools.FileSystem
	Environ  toolchain.Environ
	BuildEnv *buildenv.Environment
	Flags    *ccflags.Manager
	Revision RevisionSource
	// WorkingCopies are the roots whose revision info is embedded.
	WorkingCopies []string
	Logger        *logrus.Logger
}

// An Emitter generates the head of an SConstruct script: everything the
// target rules rely on.  Each phase appends to the emitter's log and runs at
// most once; later calls of a phase append nothing.
type Emitter struct {
	cfg    config.BuildConfig
	facts  Facts
	params Params
	logger *logrus.Logger

	log  DirectiveLog
	done map[Phase]bool

	now    time.Time
	hasNow bool

	// versionErr is the failure of the version phase, returned again by
	// every later call.
	versionErr error
}

func NewEmitter(cfg config.BuildConfig, facts Facts, params Params) *Emitter {
	if params.Logger == nil {
		params.Logger = logrus.New()
	}
	if params.FS == nil {
		params.FS = pathtools.OsFs
	}
	if params.Environ == nil {
		params.Environ = toolchain.OSEnviron
	}
	if params.BuildEnv == nil {
		params.BuildEnv = buildenv.New(buildenv.Status{}, cfg.RootDir)
	}
	if params.Flags == nil {
		params.Flags = ccflags.NewManager(cfg, nil, params.Logger)
	}
	if params.Revision == nil {
		params.Revision = version.NewCollector(params.FS, buildenv.ExecRun, cfg.Version.QueryTimeout, params.Logger)
	}
	if facts.Now == nil {
		facts.Now = time.Now
	}
	return &Emitter{
		cfg:    cfg,
		facts:  facts,
		params: params,
		logger: params.Logger,
		done:   make(map[Phase]bool),
	}
}

// Log returns the directives emitted so far.  Callers append their own
// directives after Generate under PhaseTargetRules.
func (e *Emitter) Log() *DirectiveLog {
	return &e.log
}

func (e *Emitter) begin(phase Phase) bool {
	if e.done[phase] {
		return false
	}
	e.done[phase] = true
	return true
}

func (e *Emitter) emit(phase Phase, directives ...Directive) {
	e.log.Append(phase, directives...)
}

// buildTime is the single timestamp shared by every phase.
func (e *Emitter) buildTime() time.Time {
	if !e.hasNow {
		e.now = e.facts.Now()
		e.hasNow = true
	}
	return e.now
}

// Generate runs every phase in order and returns the log.  The only error
// is a failure to produce the version source, which wraps ErrOutputDir when
// the build directory could not be created.
func (e *Emitter) Generate(ctx context.Context) (*DirectiveLog, error) {
	e.GeneratePreamble()
	e.GenerateTopLevelEnv()
	e.GenerateVerbosity()
	if err := e.GenerateVersionFile(ctx); err != nil {
		return nil, err
	}
	e.GenerateBuilders()
	e.GenerateCompilationFlags(ctx)
	return &e.log, nil
}

const helperImports = `import os
import subprocess
import signal
import time
import socket
import glob

import console
import scons_helper

from build_environment import ScacheManager
from scons_helper import MakeAction
from scons_helper import create_fast_link_builders
from scons_helper import echospawn
from scons_helper import error_colorize
from scons_helper import generate_python_binary
from scons_helper import generate_resource_file
from scons_helper import generate_resource_header`

const fileHeader = `******************************************************************************
***            This file is generated and should not be edited             ***
******************************************************************************

Regenerate it with sconsgen instead.`

// GeneratePreamble imports the helper module and makes sure the build
// directory exists when the script runs.
func (e *Emitter) GeneratePreamble() {
	if !e.begin(PhasePreamble) {
		return
	}

	imports := Statement{Comment: fileHeader, Text: helperImports}
	if e.cfg.HelperPath != "" {
		e.emit(PhasePreamble,
			Statement{Comment: fileHeader, Text: "import sys"},
			CallDef{Func: "sys.path.insert", Args: []Expr{Int(0), Str(e.cfg.HelperPath)}})
		imports.Comment = ""
	}
	e.emit(PhasePreamble, imports)

	if e.cfg.Verbose {
		e.emit(PhasePreamble, Assign{Name: verboseOptions, Value: Bool(true)})
	}

	dir := quote(e.cfg.BuildDir)
	e.emit(PhasePreamble, Statement{Text: fmt.Sprintf(
		"if not os.path.exists(%s):\n%sos.mkdir(%s)", dir, indentString, dir)})
}

// GenerateTopLevelEnv declares the environment every target is built in.
func (e *Emitter) GenerateTopLevelEnv() {
	if !e.begin(PhaseEnvironment) {
		return
	}
	e.emit(PhaseEnvironment,
		ItemAssign{Target: "os.environ", Key: "LC_ALL", Value: Str("C")},
		EnvironmentDef{Name: topEnv, InheritOSEnv: true})
}

// GenerateVerbosity selects the change detection strategy, and unless the
// build is verbose, replaces echoed command lines with progress messages.
func (e *Emitter) GenerateVerbosity() {
	if !e.begin(PhaseVerbosity) {
		return
	}

	e.emit(PhaseVerbosity,
		CallDef{Func: topEnv + ".Decider", Args: []Expr{Str("MD5-timestamp")}},
		Assign{Name: "console.color_enabled", Value: Bool(e.cfg.Color)})

	if !e.cfg.Verbose {
		e.emit(PhaseVerbosity, ItemAssign{Target: topEnv, Key: "SPAWN", Value: Ident("echospawn")})
	}

	for _, m := range progressMessages {
		e.emit(PhaseVerbosity, MessageDef{Name: m.Name, Text: m.Text(e.cfg.Color)})
	}

	if !e.cfg.Verbose {
		vars := make([]Kwarg, len(comStrings))
		for i, cs := range comStrings {
			vars[i] = Kwarg{Name: cs.Var, Value: Ident(cs.Message)}
		}
		e.emit(PhaseVerbosity, EnvMutation{Env: topEnv, Op: OpAppend, Vars: vars})
	}
}

// GenerateVersionFile writes version.cpp into the build directory and
// compiles it.  Working copies whose revision info cannot be read are left
// out with a warning; failing to create the build directory or to write the
// file is an error and emits nothing.  The error is sticky: later calls
// return it again.
func (e *Emitter) GenerateVersionFile(ctx context.Context) error {
	if !e.begin(PhaseVersion) {
		return e.versionErr
	}
	e.versionErr = e.generateVersionFile(ctx)
	return e.versionErr
}

func (e *Emitter) generateVersionFile(ctx context.Context) error {
	buildDir := e.cfg.BuildDir
	if err := e.params.FS.MkdirAll(buildDir, 0777); err != nil {
		return fmt.Errorf("%w %s: %w", ErrOutputDir, buildDir, err)
	}

	entries := e.params.Revision.Collect(ctx, e.params.WorkingCopies)

	md := version.Metadata{
		Entries:         entries,
		Profile:         e.cfg.Profile,
		BuildTime:       e.buildTime(),
		Builder:         e.facts.User,
		Host:            e.facts.Host,
		CompilerVersion: e.facts.CompilerVersion,
	}
	if err := version.Write(e.params.FS, buildDir, md); err != nil {
		return err
	}

	e.emit(PhaseVersion,
		CallDef{
			Func:   "VariantDir",
			Args:   []Expr{Str(buildDir), Str(".")},
			Kwargs: []Kwarg{{Name: "duplicate", Value: Int(0)}},
		},
		EnvironmentDef{Name: versionEnv, InheritOSEnv: true},
		EnvMutation{Env: versionEnv, Op: OpAppend, Vars: []Kwarg{
			{Name: "SHCXXCOMSTR", Value: Str(versionMessage(e.cfg.Color))},
		}},
		EnvMutation{Env: versionEnv, Op: OpAppend, Vars: []Kwarg{
			{Name: "CPPFLAGS", Value: Str("-m" + e.cfg.Bits)},
		}},
		CompileDef{
			Env:    versionEnv,
			Var:    versionObj,
			Source: buildDir + "/" + version.FileName,
			Shared: true,
		})
	return nil
}

// GenerateBuilders declares and registers the builders of the source
// generators.  Fast link builders, when used, come first.
func (e *Emitter) GenerateBuilders() {
	if !e.begin(PhaseBuilders) {
		return
	}

	link := e.cfg.Link
	if link.LinkOnTmp && (!link.EnableDccc || !e.params.BuildEnv.DcccPrepared) {
		e.emit(PhaseBuilders, CallDef{Func: "create_fast_link_builders", Args: []Expr{Ident(topEnv)}})
	}

	e.emit(PhaseBuilders, Assign{
		Name:  timeValue,
		Value: CallExpr{Func: "Value", Args: []Expr{Str(version.FormatBuildTime(e.buildTime()))}},
	})

	defs := generatorBuilders(e.cfg)
	for _, d := range defs {
		e.emit(PhaseBuilders, d)
	}
	for _, d := range defs {
		e.emit(PhaseBuilders, BuilderRegistration{Env: topEnv, Name: d.Name, Var: d.Var})
	}
}

// GenerateCompilationFlags sets the toolchain and flags of the top level
// environment, then the object cache, the acceleration tool settings, and
// the warning environments.
func (e *Emitter) GenerateCompilationFlags(ctx context.Context) {
	if !e.begin(PhaseFlags) {
		return
	}

	base := toolchain.Resolve(e.params.Environ)
	for _, role := range []toolchain.Role{
		toolchain.RolePreprocessor,
		toolchain.RoleCompiler,
		toolchain.RoleCxxCompiler,
		toolchain.RoleLinker,
	} {
		e.logger.Infof("%s=%s", role, base.Get(role))
	}

	flags := e.params.Flags
	flags.SetCPP(base.CPP)

	env := e.params.BuildEnv
	policy := toolchain.Policy{
		DistributedCompile: e.cfg.Distcc.Enabled && env.DistccPrepared,
		LocalCache:         env.CcacheInstalled,
		DistributedLink:    e.cfg.Link.EnableDccc && env.DcccPrepared,
	}
	tc := toolchain.Compose(base, policy)

	cc := e.cfg.Cc
	cppflags, linkflags := flags.FlagsExceptWarning(ctx)

	cppPath := append([]string(nil), cc.ExtraIncs...)
	cppPath = append(cppPath, e.cfg.BuildDir)
	if e.facts.PythonInclude != "" {
		cppPath = append(cppPath, e.facts.PythonInclude)
	}

	e.emit(PhaseFlags, EnvMutation{Env: topEnv, Op: OpReplace, Vars: []Kwarg{
		{Name: "CC", Value: Str(tc.CC)},
		{Name: "CXX", Value: Str(tc.CXX)},
		{Name: "CPPPATH", Value: StrList(cppPath)},
		{Name: "CPPFLAGS", Value: StrList(concat(cc.CppFlags, cppflags))},
		{Name: "CFLAGS", Value: StrList(cc.CFlags)},
		{Name: "CXXFLAGS", Value: StrList(cc.CxxFlags)},
		{Name: "LINK", Value: Str(tc.LD)},
		{Name: "LINKFLAGS", Value: StrList(concat(linkflags, cc.LinkFlags))},
	}})

	e.setupCache()

	if policy.DistributedCompile {
		env.SetupDistcc()
	}
	e.emitSettings()

	e.setupWarnings(ctx)
}

func (e *Emitter) setupCache() {
	env := e.params.BuildEnv
	if env.CcacheInstalled {
		env.SetupCcache()
		e.emitSettings()
		return
	}

	dir, size, enabled, isDefault := e.cfg.CacheSettings()
	if !enabled {
		return
	}
	if isDefault {
		if e.facts.HomeDir == "" {
			e.logger.Warnf("no home directory to hold %s, object cache disabled", dir)
			return
		}
		dir = expandHome(dir, e.facts.HomeDir)
		e.logger.Infof("using default cache dir: %s", dir)
	}

	e.emit(PhaseFlags,
		CallDef{Func: "CacheDir", Args: []Expr{Str(dir)}},
		CallDef{
			Result: scacheManager,
			Func:   "ScacheManager",
			Args:   []Expr{Str(dir)},
			Kwargs: []Kwarg{{Name: "cache_limit", Value: Int(size)}},
		},
		CallDef{
			Func:   "Progress",
			Args:   []Expr{Ident(scacheManager)},
			Kwargs: []Kwarg{{Name: "interval", Value: Int(cacheProgress)}},
		},
		CallDef{Func: "console.info", Args: []Expr{Str("using cache directory " + dir)}},
		CallDef{Func: "console.info", Args: []Expr{Str(fmt.Sprintf("scache size %d", size))}})
}

// emitSettings passes the pending acceleration tool settings to the
// commands run by the top level environment.
func (e *Emitter) emitSettings() {
	settings := e.params.BuildEnv.TakeSettings()
	if len(settings) == 0 {
		return
	}
	vars := make(Dict, len(settings))
	for i, s := range settings {
		vars[i] = Kwarg{Name: s.Name, Value: Str(s.Value)}
	}
	e.emit(PhaseFlags, EnvMutation{Env: topEnv, Op: OpAppend, Vars: []Kwarg{{Name: "ENV", Value: vars}}})
}

func (e *Emitter) setupWarnings(ctx context.Context) {
	e.emit(PhaseFlags,
		CloneDef{Name: envWithError, From: topEnv},
		CloneDef{Name: envNoWarning, From: topEnv})

	warnings, cxxWarnings, cWarnings := e.params.Flags.WarningFlags(ctx)
	e.emit(PhaseFlags, EnvMutation{Env: envWithError, Op: OpAppend, Vars: []Kwarg{
		{Name: "CPPFLAGS", Value: StrList(warnings)},
		{Name: "CFLAGS", Value: StrList(cWarnings)},
		{Name: "CXXFLAGS", Value: StrList(cxxWarnings)},
	}})
}

func concat(lists ...[]string) []string {
	var result []string
	for _, l := range lists {
		result = append(result, l...)
	}
	return result
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
