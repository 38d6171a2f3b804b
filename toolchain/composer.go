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

package toolchain

import (
	"strings"
)

const (
	DistccPrefix = "distcc"
	CcachePrefix = "ccache"
	DcccPrefix   = "dccc"
)

// A Command is a tool invocation with the wrapper prefixes applied to it.
// Prefixes are stored innermost first.
type Command struct {
	Base     string
	Prefixes []string
}

// Wrap returns c wrapped by prefix.  Wrapping an empty command or wrapping
// twice with the same prefix returns c unchanged.
func (c Command) Wrap(prefix string) Command {
	if c.Base == "" || c.Has(prefix) {
		return c
	}
	prefixes := make([]string, 0, len(c.Prefixes)+1)
	prefixes = append(prefixes, c.Prefixes...)
	return Command{
		Base:     c.Base,
		Prefixes: append(prefixes, prefix),
	}
}

func (c Command) Has(prefix string) bool {
	for _, p := range c.Prefixes {
		if p == prefix {
			return true
		}
	}
	return false
}

// String renders the command with the most recently applied prefix leftmost.
func (c Command) String() string {
	if len(c.Prefixes) == 0 {
		return c.Base
	}
	parts := make([]string, 0, len(c.Prefixes)+1)
	for i := len(c.Prefixes) - 1; i >= 0; i-- {
		parts = append(parts, c.Prefixes[i])
	}
	return strings.Join(append(parts, c.Base), " ")
}

// A Decorator wraps the commands of some roles with a prefix.
type Decorator struct {
	Prefix string
	Roles  []Role
}

func (d Decorator) appliesTo(role Role) bool {
	for _, r := range d.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	distccDecorator = Decorator{Prefix: DistccPrefix, Roles: []Role{RoleCompiler, RoleCxxCompiler}}
	ccacheDecorator = Decorator{Prefix: CcachePrefix, Roles: []Role{RoleCompiler, RoleCxxCompiler}}
	dcccDecorator   = Decorator{Prefix: DcccPrefix, Roles: []Role{RoleLinker}}
)

// Policy selects the acceleration layers.  Each flag must already account for
// availability: a layer whose environment failed to prepare must be false.
type Policy struct {
	DistributedCompile bool
	LocalCache         bool
	DistributedLink    bool
}

// Pipeline returns the decorators selected by p in application order.
// The cache always wraps distcc.
func (p Policy) Pipeline() []Decorator {
	var pipeline []Decorator
	if p.DistributedCompile {
		pipeline = append(pipeline, distccDecorator)
	}
	if p.LocalCache {
		pipeline = append(pipeline, ccacheDecorator)
	}
	if p.DistributedLink {
		pipeline = append(pipeline, dcccDecorator)
	}
	return pipeline
}

// Apply runs pipeline over base, returning the wrapped command for role.
func Apply(role Role, base string, pipeline []Decorator) Command {
	cmd := Command{Base: base}
	for _, d := range pipeline {
		if d.appliesTo(role) {
			cmd = cmd.Wrap(d.Prefix)
		}
	}
	return cmd
}

// Compose returns base with the acceleration layers selected by policy
// applied.  The preprocessor is never wrapped.
func Compose(base Spec, policy Policy) Spec {
	pipeline := policy.Pipeline()
	return Spec{
		CPP: base.CPP,
		CC:  Apply(RoleCompiler, base.CC, pipeline).String(),
		CXX: Apply(RoleCxxCompiler, base.CXX, pipeline).String(),
		LD:  Apply(RoleLinker, base.LD, pipeline).String(),
	}
}
