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

package deptools

import (
	"strings"

	"github.com/google/sconsgen/pathtools"
)

// WriteDepFile writes a gcc-style depfile through fs recording that target,
// usually the generated SConstruct, must be regenerated when any of deps
// changes.  Deps are listed in the order given.
func WriteDepFile(fs pathtools.FileSystem, filename, target string, deps []string) error {
	var b strings.Builder
	b.WriteString(target)
	b.WriteString(":")
	for _, dep := range deps {
		b.WriteString(" \\\n ")
		b.WriteString(strings.ReplaceAll(dep, " ", "\\ "))
	}
	b.WriteString("\n")

	return fs.WriteFile(filename, []byte(b.String()), 0666)
}
