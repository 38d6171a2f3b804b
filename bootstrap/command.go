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
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/google/sconsgen"
	"github.com/google/sconsgen/buildenv"
	"github.com/google/sconsgen/ccflags"
	"github.com/google/sconsgen/config"
	"github.com/google/sconsgen/deptools"
	"github.com/google/sconsgen/version"
)

var (
	outFile    string
	depFile    string
	configFile string
	profile    string
	bits       string
	buildDir   string
	cacheDir   string
	verbose    bool
	color      bool
)

func init() {
	flag.StringVar(&outFile, "o", "SConstruct", "the SCons script to output")
	flag.StringVar(&depFile, "d", "", "the dependency file to output")
	flag.StringVar(&configFile, "c", "", "the build configuration file")
	flag.StringVar(&profile, "p", "", "the build profile, debug or release")
	flag.StringVar(&bits, "m", "", "the target word size, 32 or 64")
	flag.StringVar(&buildDir, "b", "", "the build output directory")
	flag.StringVar(&cacheDir, "cache-dir", "", "the object cache directory, empty to disable")
	flag.BoolVar(&verbose, "v", false, "show command lines instead of progress messages")
	flag.BoolVar(&color, "color", true, "colorize output")
}

// A RuleSource supplies the already resolved rules of every build target.
// They are written after everything the generator emits.
type RuleSource interface {
	// TargetRules returns the rules and the files they were derived from.
	TargetRules(cfg config.BuildConfig) (rules []sconsgen.Directive, deps []string, err error)
}

// Options control one run of the generator.
type Options struct {
	OutFile    string
	DepFile    string
	ConfigFile string
	Overrides  Overrides
	// WorkingCopies are the roots whose revision info is embedded.
	WorkingCopies []string
	// ExtraDeps are added to the depfile.
	ExtraDeps []string
}

// Main parses the command line and writes the script.  The positional
// arguments name the working copies.  Errors are fatal.
func Main(rules RuleSource, extraDeps ...string) {
	if !flag.Parsed() {
		flag.Parse()
	}

	opts := Options{
		OutFile:    outFile,
		DepFile:    depFile,
		ConfigFile: configFile,
		Overrides: Overrides{
			Verbose:  verbose,
			NoColor:  !color,
			Profile:  profile,
			Bits:     bits,
			BuildDir: buildDir,
		},
		WorkingCopies: flag.Args(),
		ExtraDeps:     extraDeps,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "cache-dir" {
			dir := cacheDir
			opts.Overrides.CacheDir = &dir
		}
	})

	log := NewLogger(os.Stderr, color)
	if err := Run(context.Background(), opts, OSHost, rules, log); err != nil {
		fatalf("%s", err)
	}
}

// Run generates the script described by opts on host.
func Run(ctx context.Context, opts Options, host Host, rules RuleSource, log *logrus.Logger) error {
	cfg := config.Default()
	deps := append([]string(nil), opts.ExtraDeps...)
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(host.FS, opts.ConfigFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", opts.ConfigFile, err)
		}
		deps = append(deps, opts.ConfigFile)
	}
	cfg, err := opts.Overrides.Apply(cfg)
	if err != nil {
		return err
	}

	facts := host.Facts(ctx, log)

	probe := buildenv.Probe{
		LookPath: host.LookPath,
		Environ:  host.Environ,
		FS:       host.FS,
		HomeDir:  facts.HomeDir,
		Logger:   log,
	}
	rootDir, err := host.FS.EvalSymlinks(cfg.RootDir)
	if err != nil {
		return fmt.Errorf("resolving root_dir: %w", err)
	}

	emitter := sconsgen.NewEmitter(cfg, facts, sconsgen.Params{
		FS:            host.FS,
		Environ:       host.Environ,
		BuildEnv:      buildenv.New(probe.Detect(cfg), rootDir),
		Flags:         ccflags.NewManager(cfg, ccflags.CompilerChecker{Run: host.Run}, log),
		Revision:      version.NewCollector(host.FS, host.Run, cfg.Version.QueryTimeout, log),
		WorkingCopies: opts.WorkingCopies,
		Logger:        log,
	})

	directives, err := emitter.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating %s: %w", opts.OutFile, err)
	}

	if rules != nil {
		targetRules, ruleDeps, err := rules.TargetRules(cfg)
		if err != nil {
			return fmt.Errorf("reading target rules: %w", err)
		}
		directives.Append(sconsgen.PhaseTargetRules, targetRules...)
		deps = append(deps, ruleDeps...)
	}

	buf := &strings.Builder{}
	if err := directives.WriteTo(buf); err != nil {
		return fmt.Errorf("error generating %s contents: %w", opts.OutFile, err)
	}

	const outFilePermissions = 0666
	if err := host.FS.WriteFile(opts.OutFile, []byte(buf.String()), outFilePermissions); err != nil {
		return fmt.Errorf("error writing %s: %w", opts.OutFile, err)
	}

	if opts.DepFile != "" {
		if err := deptools.WriteDepFile(host.FS, opts.DepFile, opts.OutFile, deps); err != nil {
			return fmt.Errorf("error writing depfile: %w", err)
		}
	}

	log.Infof("generated %s", opts.OutFile)
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
	fmt.Print("\n")
	os.Exit(1)
}
