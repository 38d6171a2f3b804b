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

package sconsgen

import (
	"io"
	"strings"
	"unicode"
)

const (
	indentWidth = 4
	lineWidth   = 80
)

var indentString = strings.Repeat(" ", indentWidth)

type scriptWriter struct {
	writer io.StringWriter

	justDidBlankLine bool // true if the last operation was a BlankLine
	err              error
}

func newScriptWriter(writer io.StringWriter) *scriptWriter {
	return &scriptWriter{
		writer: writer,
	}
}

func (s *scriptWriter) write(strs ...string) {
	for _, str := range strs {
		if s.err != nil {
			return
		}
		_, s.err = s.writer.WriteString(str)
	}
}

func (s *scriptWriter) Comment(comment string) error {
	s.justDidBlankLine = false

	const lineHeaderLen = len("# ")
	const maxLineLen = lineWidth - lineHeaderLen

	var lineStart, lastSplitPoint int
	for i, r := range comment {
		if unicode.IsSpace(r) {
			// We know we can safely split the line here.
			lastSplitPoint = i + 1
		}

		var line string
		var writeLine bool
		switch {
		case r == '\n':
			// Output the line without trimming the left so as to allow comments
			// to contain their own indentation.
			line = strings.TrimRightFunc(comment[lineStart:i], unicode.IsSpace)
			writeLine = true

		case (i-lineStart > maxLineLen) && (lastSplitPoint > lineStart):
			// The line has grown too long and is splittable.  Split it at the
			// last split point.
			line = strings.TrimSpace(comment[lineStart:lastSplitPoint])
			writeLine = true
		}

		if writeLine {
			s.write(strings.TrimSpace("# "+line), "\n")
			lineStart = lastSplitPoint
		}
	}

	if lineStart != len(comment) {
		s.write("# ", strings.TrimSpace(comment[lineStart:]), "\n")
	}

	return s.err
}

// Statement writes text verbatim, one line per line of text.
func (s *scriptWriter) Statement(text string) error {
	s.justDidBlankLine = false
	s.write(strings.TrimRight(text, "\n"), "\n")
	return s.err
}

func (s *scriptWriter) Assign(target, value string) error {
	s.justDidBlankLine = false
	s.write(target, " = ", value, "\n")
	return s.err
}

// Call writes target(args...).  When the call does not fit on one line each
// argument is written on its own indented line.
func (s *scriptWriter) Call(target string, args []string) error {
	return s.AssignCall("", target, args)
}

// AssignCall writes name = target(args...), wrapping like Call.  An empty
// name writes a bare call.
func (s *scriptWriter) AssignCall(name, target string, args []string) error {
	s.justDidBlankLine = false

	lead := target + "("
	if name != "" {
		lead = name + " = " + lead
	}

	oneLine := lead + strings.Join(args, ", ") + ")"
	if len(oneLine) <= lineWidth || len(args) == 0 {
		s.write(oneLine, "\n")
		return s.err
	}

	s.write(lead, "\n")
	for i, arg := range args {
		s.write(indentString, arg)
		if i != len(args)-1 {
			s.write(",")
		}
		s.write("\n")
	}
	s.write(")\n")
	return s.err
}

func (s *scriptWriter) BlankLine() error {
	// We don't output multiple blank lines in a row.
	if !s.justDidBlankLine {
		s.justDidBlankLine = true
		s.write("\n")
	}
	return s.err
}
