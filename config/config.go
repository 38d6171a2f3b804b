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

// Package config holds the resolved build configuration consumed by the
// SConstruct generator.  A BuildConfig is loaded once, validated, and then
// passed by value to every component; nothing in the generator mutates it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/google/sconsgen/pathtools"
)

const (
	ProfileDebug   = "debug"
	ProfileRelease = "release"

	// DefaultCacheSize is used when CacheSize is negative.
	DefaultCacheSize int64 = 4 * 1024 * 1024 * 1024
	// DefaultCacheDir is used when CacheDir is unset.  It is expanded
	// against the user's home directory.
	DefaultCacheDir = "~/.bladescache"
)

type BuildConfig struct {
	Profile string `yaml:"profile"`
	// Bits is the target word size passed as -m<bits>.
	Bits    string `yaml:"m"`
	Verbose bool   `yaml:"verbose"`
	Color   bool   `yaml:"color"`
	GProf   bool   `yaml:"gprof"`
	GCov    bool   `yaml:"gcov"`

	// BuildDir is the build output directory, relative to RootDir.
	BuildDir string `yaml:"build_dir"`
	// RootDir is the top of the source tree.
	RootDir string `yaml:"root_dir"`
	// HelperPath is put on the script's sys.path so the helper module
	// (echospawn, MakeAction, ScacheManager, ...) can be imported.
	HelperPath string `yaml:"helper_path"`

	// CacheDir selects the object cache directory.  nil selects
	// DefaultCacheDir, a pointer to "" disables the cache.
	CacheDir  *string `yaml:"cache_dir"`
	CacheSize int64   `yaml:"cache_size"`

	Cc      CcConfig      `yaml:"cc_config"`
	Distcc  DistccConfig  `yaml:"distcc_config"`
	Link    LinkConfig    `yaml:"link_config"`
	Proto   ProtoConfig   `yaml:"proto_library_config"`
	Thrift  ThriftConfig  `yaml:"thrift_config"`
	Swig    SwigConfig    `yaml:"swig_config"`
	Version VersionConfig `yaml:"version_config"`
}

type CcConfig struct {
	ExtraIncs   []string `yaml:"extra_incs"`
	CppFlags    []string `yaml:"cppflags"`
	CFlags      []string `yaml:"cflags"`
	CxxFlags    []string `yaml:"cxxflags"`
	LinkFlags   []string `yaml:"linkflags"`
	Warnings    []string `yaml:"warnings"`
	CWarnings   []string `yaml:"c_warnings"`
	CxxWarnings []string `yaml:"cxx_warnings"`
}

type DistccConfig struct {
	Enabled bool `yaml:"enabled"`
	// Hosts overrides DISTCC_HOSTS for the build when non-empty.
	Hosts string `yaml:"hosts"`
}

type LinkConfig struct {
	EnableDccc bool `yaml:"enable_dccc"`
	LinkOnTmp  bool `yaml:"link_on_tmp"`
}

type ProtoConfig struct {
	Protoc          string   `yaml:"protoc"`
	ProtobufPath    string   `yaml:"protobuf_path"`
	ProtobufIncs    []string `yaml:"protobuf_incs"`
	ProtobufPhpPath string   `yaml:"protobuf_php_path"`
	ProtocPhpPlugin string   `yaml:"protoc_php_plugin"`
}

type ThriftConfig struct {
	// Thrift is a binary path or a "//path:target" label built in the tree.
	Thrift     string   `yaml:"thrift"`
	ThriftIncs []string `yaml:"thrift_incs"`
}

type SwigConfig struct {
	Swig     string   `yaml:"swig"`
	SwigIncs []string `yaml:"swig_incs"`
}

type VersionConfig struct {
	// QueryTimeout bounds each working-copy revision query.  Zero means
	// no deadline.
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// Default returns the configuration used for any field a config file does
// not set.
func Default() BuildConfig {
	return BuildConfig{
		Profile:   ProfileRelease,
		Bits:      "64",
		Color:     true,
		BuildDir:  "build64_release",
		RootDir:   ".",
		CacheSize: -1,
		Cc: CcConfig{
			Warnings: []string{
				"-Wall",
				"-Wextra",
				"-Wno-unused-parameter",
			},
			CxxWarnings: []string{
				"-Wno-invalid-offsetof",
				"-Wnon-virtual-dtor",
			},
			CWarnings: []string{
				"-Werror-implicit-function-declaration",
			},
		},
	}
}

// Load reads a YAML configuration from path and overlays it on Default.
func Load(fs pathtools.FileSystem, path string) (BuildConfig, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return BuildConfig{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data over Default and validates the result.
func Parse(data []byte) (BuildConfig, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return BuildConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return BuildConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting in c.
func (c BuildConfig) Validate() error {
	switch c.Profile {
	case ProfileDebug, ProfileRelease:
	default:
		return fmt.Errorf("invalid profile %q, must be %q or %q", c.Profile, ProfileDebug, ProfileRelease)
	}

	switch c.Bits {
	case "32", "64":
	default:
		return fmt.Errorf("invalid m %q, must be 32 or 64", c.Bits)
	}

	if c.BuildDir == "" {
		return errors.New("build_dir must not be empty")
	}

	if c.Version.QueryTimeout < 0 {
		return fmt.Errorf("version_config.query_timeout must not be negative, got %s", c.Version.QueryTimeout)
	}

	return nil
}

// CacheSettings resolves the object cache directory and size.  enabled is
// false when the cache was explicitly disabled with an empty cache_dir.
// isDefault reports that DefaultCacheDir was chosen.
func (c BuildConfig) CacheSettings() (dir string, size int64, enabled, isDefault bool) {
	size = c.CacheSize
	if size < 0 {
		size = DefaultCacheSize
	}

	if c.CacheDir == nil {
		return DefaultCacheDir, size, true, true
	}
	if *c.CacheDir == "" {
		return "", size, false, false
	}
	return *c.CacheDir, size, true, false
}
