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

package pathtools

import (
	"path/filepath"
	"strings"
)

// JoinWithFlag returns each path preceded by flag, joined with single spaces:
// ["a", "b"] with "-I" becomes "-I a -I b".
func JoinWithFlag(flag string, paths []string) string {
	result := make([]string, len(paths))
	for i, path := range paths {
		result[i] = flag + " " + path
	}
	return strings.Join(result, " ")
}

// SplitRealPath resolves path through fs and returns its parent directory and
// base name.
func SplitRealPath(fs FileSystem, path string) (dir, base string, err error) {
	real, err := fs.EvalSymlinks(path)
	if err != nil {
		return "", "", err
	}
	return filepath.Dir(real), filepath.Base(real), nil
}

// PrefixEach returns each path with prefix attached, joined with single
// spaces: ["a", "b"] with "-I" becomes "-Ia -Ib".
func PrefixEach(prefix string, paths []string) string {
	result := make([]string, len(paths))
	for i, path := range paths {
		result[i] = prefix + path
	}
	return strings.Join(result, " ")
}
