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

package bootstrap

import (
	"fmt"

	"github.com/google/sconsgen"
	"github.com/google/sconsgen/config"
	"github.com/google/sconsgen/pathtools"
)

// FileRules reads target rules that were resolved ahead of time and stored
// as script text.
type FileRules struct {
	FS   pathtools.FileSystem
	Path string
}

func (r FileRules) TargetRules(config.BuildConfig) ([]sconsgen.Directive, []string, error) {
	data, err := r.FS.ReadFile(r.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", r.Path, err)
	}
	if len(data) == 0 {
		return nil, []string{r.Path}, nil
	}
	return []sconsgen.Directive{sconsgen.Statement{Text: string(data)}}, []string{r.Path}, nil
}
