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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectiveLogOrder(t *testing.T) {
	var log DirectiveLog
	log.Append(PhaseEnvironment, EnvironmentDef{Name: "top_env", InheritOSEnv: true})
	log.Append(PhaseVerbosity,
		ItemAssign{Target: "top_env", Key: "SPAWN", Value: Ident("echospawn")},
		MessageDef{Name: "m", Text: "x"})
	log.Append(PhaseTargetRules, Statement{Text: "top_env.Program(\"a\", [\"a.cc\"])"})

	require.Equal(t, 4, log.Len())
	assert.Equal(t, `top_env = Environment(ENV=os.environ)

top_env["SPAWN"] = echospawn
m = "x"

top_env.Program("a", ["a.cc"])
`, log.String())

	assert.Len(t, log.Phase(PhaseVerbosity), 2)
	assert.Empty(t, log.Phase(PhaseBuilders))
	assert.Len(t, log.Directives(), 4)
}

func TestDirectiveLogKeepsDuplicates(t *testing.T) {
	var log DirectiveLog
	d := CloneDef{Name: "env_with_error", From: "top_env"}
	log.Append(PhaseFlags, d, d)

	assert.Equal(t, 2, log.Len())
	assert.Equal(t, 2, strings.Count(log.String(), "env_with_error = top_env.Clone()"))
}

func TestDirectiveLogEntriesIsACopy(t *testing.T) {
	var log DirectiveLog
	log.Append(PhasePreamble, Statement{Text: "import sys"})

	entries := log.Entries()
	entries[0].Phase = PhaseFlags

	assert.Equal(t, PhasePreamble, log.Entries()[0].Phase)
}

func TestDirectiveLogWriteError(t *testing.T) {
	var log DirectiveLog
	log.Append(PhaseVersion,
		EnvironmentDef{Name: "env_version"},
		EnvMutation{Env: "env_version", Op: OpAppend})

	err := log.WriteTo(&strings.Builder{})
	require.Error(t, err)
	assert.Equal(t, "version directive 1 (env-mutation): environment mutation has no variables", err.Error())
	assert.Panics(t, func() { _ = log.String() })
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "target-rules", PhaseTargetRules.String())
	assert.Equal(t, "builders", PhaseBuilders.String())
	assert.Equal(t, "phase(42)", Phase(42).String())
}
