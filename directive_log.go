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
	"fmt"
	"io"
	"strings"
)

// A Phase is a generation step.  Phases run in declaration order.
type Phase int

const (
	PhasePreamble Phase = iota
	PhaseEnvironment
	PhaseVerbosity
	PhaseVersion
	PhaseBuilders
	PhaseFlags
	// PhaseTargetRules holds directives appended by the caller after
	// generation, typically the rules of every build target.
	PhaseTargetRules
)

func (p Phase) String() string {
	switch p {
	case PhasePreamble:
		return "preamble"
	case PhaseEnvironment:
		return "environment"
	case PhaseVerbosity:
		return "verbosity"
	case PhaseVersion:
		return "version"
	case PhaseBuilders:
		return "builders"
	case PhaseFlags:
		return "flags"
	case PhaseTargetRules:
		return "target-rules"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// An Entry is a directive together with the phase that emitted it.
type Entry struct {
	Phase     Phase
	Directive Directive
}

// A DirectiveLog is an append-only sequence of directives.  The order of the
// log is the order of Append calls and is the order of the written script;
// entries are never reordered, removed, or merged.
type DirectiveLog struct {
	entries []Entry
}

func (l *DirectiveLog) Append(phase Phase, directives ...Directive) {
	for _, d := range directives {
		l.entries = append(l.entries, Entry{Phase: phase, Directive: d})
	}
}

func (l *DirectiveLog) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log.
func (l *DirectiveLog) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Directives returns the directives of the log, in order.
func (l *DirectiveLog) Directives() []Directive {
	result := make([]Directive, len(l.entries))
	for i, e := range l.entries {
		result[i] = e.Directive
	}
	return result
}

// Phase returns the directives emitted by phase, in order.
func (l *DirectiveLog) Phase(phase Phase) []Directive {
	var result []Directive
	for _, e := range l.entries {
		if e.Phase == phase {
			result = append(result, e.Directive)
		}
	}
	return result
}

// WriteTo renders the log as script text.  A blank line separates the
// output of consecutive phases.
func (l *DirectiveLog) WriteTo(w io.StringWriter) error {
	sw := newScriptWriter(w)
	for i, e := range l.entries {
		if i > 0 && l.entries[i-1].Phase != e.Phase {
			if err := sw.BlankLine(); err != nil {
				return err
			}
		}
		if err := e.Directive.WriteTo(sw); err != nil {
			return fmt.Errorf("%s directive %d (%s): %w", e.Phase, i, e.Directive.Kind(), err)
		}
	}
	return nil
}

// String renders the log, panicking on invalid directives.  It is meant for
// tests and debugging.
func (l *DirectiveLog) String() string {
	buf := &strings.Builder{}
	if err := l.WriteTo(buf); err != nil {
		panic(err)
	}
	return buf.String()
}
