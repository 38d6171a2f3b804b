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

package pathtools

import "strings"

// SConsEscape escapes the characters the build engine substitutes in
// command strings ($), so s reaches the shell unchanged.
func SConsEscape(s string) string {
	return sconsEscaper.Replace(s)
}

var sconsEscaper = strings.NewReplacer(
	"$", "$$")

func shellUnsafeChar(r rune) bool {
	switch {
	case 'A' <= r && r <= 'Z',
		'a' <= r && r <= 'z',
		'0' <= r && r <= '9',
		r == '_',
		r == '+',
		r == '-',
		r == '=',
		r == '.',
		r == ',',
		r == '/':
		return false
	default:
		return true
	}
}

// ShellEscape wraps s in single quotes if it contains characters that are
// meaningful to the shell, replacing internal single quotes with '\''.
// Spaces count as meaningful, since a path must stay one word.
func ShellEscape(s string) string {
	if strings.IndexFunc(s, shellUnsafeChar) == -1 {
		return s
	}
	return `'` + singleQuoteReplacer.Replace(s) + `'`
}

// CommandEscape escapes s for use as a word of a builder command.
func CommandEscape(s string) string {
	return ShellEscape(SConsEscape(s))
}

// CommandEscapeList escapes each path for use as a word of a builder
// command.  A new slice is returned.
func CommandEscapeList(paths []string) []string {
	result := make([]string, len(paths))
	for i, p := range paths {
		result[i] = CommandEscape(p)
	}
	return result
}

var singleQuoteReplacer = strings.NewReplacer(`'`, `'\''`)
