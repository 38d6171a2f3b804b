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

// Package toolchain computes the compiler and linker invocations written into
// the generated build environment.  Base paths come from the process
// environment; acceleration wrappers (distcc, ccache, dccc) are layered on by
// an ordered pipeline of decorators.
package toolchain

import (
	"os"
	"strings"
)

// A Role identifies which tool an invocation string belongs to.
type Role int

const (
	RolePreprocessor Role = iota
	RoleCompiler
	RoleCxxCompiler
	RoleLinker
)

func (r Role) String() string {
	switch r {
	case RolePreprocessor:
		return "CPP"
	case RoleCompiler:
		return "CC"
	case RoleCxxCompiler:
		return "CXX"
	case RoleLinker:
		return "LD"
	default:
		return "unknown"
	}
}

// Spec holds the invocation string for each role.
type Spec struct {
	CPP string
	CC  string
	CXX string
	LD  string
}

// Get returns the invocation string for role.
func (s Spec) Get(role Role) string {
	switch role {
	case RolePreprocessor:
		return s.CPP
	case RoleCompiler:
		return s.CC
	case RoleCxxCompiler:
		return s.CXX
	case RoleLinker:
		return s.LD
	default:
		return ""
	}
}

// Environ looks up an environment variable, like os.LookupEnv.
type Environ func(key string) (string, bool)

// OSEnviron reads the process environment.
var OSEnviron Environ = os.LookupEnv

// MapEnviron adapts a map to an Environ.
func MapEnviron(env map[string]string) Environ {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// Resolve reads the base toolchain from environ.  TOOLCHAIN_DIR, when set, is
// prepended to every tool; unset tools fall back to the conventional GNU
// names.
func Resolve(environ Environ) Spec {
	dir, _ := environ("TOOLCHAIN_DIR")
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	get := func(key, def string) string {
		if v, ok := environ(key); ok {
			return dir + v
		}
		return dir + def
	}

	return Spec{
		CPP: get("CPP", "cpp"),
		CC:  get("CC", "gcc"),
		CXX: get("CXX", "g++"),
		LD:  get("LD", "g++"),
	}
}
