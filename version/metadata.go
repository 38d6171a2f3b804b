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

// Package version gathers build provenance (revision info of the source
// working copies, build time, builder, host and compiler) and renders it as
// a C++ source file linked into every binary.
package version

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/sconsgen/pathtools"
)

// FileName is the name of the generated source inside the build directory.
const FileName = "version.cpp"

// An Entry is the revision info of one working copy.
type Entry struct {
	Root string
	Info string
}

// Metadata is everything embedded in the generated source.
type Metadata struct {
	Entries   []Entry
	Profile   string
	BuildTime time.Time
	Builder   string
	Host      string
	// CompilerVersion is the bare version, e.g. "4.8.2".
	CompilerVersion string
}

// FormatBuildTime formats t the way the C library's asctime does.
func FormatBuildTime(t time.Time) string {
	return t.Format(time.ANSIC)
}

// Compiler returns the compiler identity embedded as kCompiler.
func (m Metadata) Compiler() string {
	return "GCC " + m.CompilerVersion
}

// Render returns the C++ source declaring the metadata.
func (m Metadata) Render() string {
	buf := &strings.Builder{}

	infos := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		infos[i] = cString(e.Info)
	}

	fmt.Fprintln(buf, "/* This file was generated by sconsgen */")
	fmt.Fprintln(buf, `extern "C" {`)
	fmt.Fprintln(buf, "namespace binary_version {")
	fmt.Fprintf(buf, "extern const int kSvnInfoCount = %d;\n", len(m.Entries))
	fmt.Fprintf(buf, "extern const char* const kSvnInfo[%d] = {%s};\n",
		len(m.Entries), strings.Join(infos, ","))
	fmt.Fprintf(buf, "extern const char kBuildType[] = %s;\n", cString(m.Profile))
	fmt.Fprintf(buf, "extern const char kBuildTime[] = %s;\n", cString(FormatBuildTime(m.BuildTime)))
	fmt.Fprintf(buf, "extern const char kBuilderName[] = %s;\n", cString(m.Builder))
	fmt.Fprintf(buf, "extern const char kHostName[] = %s;\n", cString(m.Host))
	fmt.Fprintf(buf, "extern const char kCompiler[] = %s;\n", cString(m.Compiler()))
	fmt.Fprintln(buf, "}}")

	return buf.String()
}

// Write renders m into buildDir, which must already exist.
func Write(fs pathtools.FileSystem, buildDir string, m Metadata) error {
	filename := filepath.Join(buildDir, FileName)
	if err := fs.WriteFile(filename, []byte(m.Render()), 0666); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

var cStringReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r", `\r`,
	// Each line break becomes an escaped newline followed by a line
	// continuation, so multi-line revision info stays readable.
	"\n", "\\n\\\n",
)

// cString returns s as a double-quoted C string literal.
func cString(s string) string {
	return `"` + cStringReplacer.Replace(s) + `"`
}
