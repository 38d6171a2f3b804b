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

// sconsgen writes an SConstruct script for a configured source tree.
//
//	sconsgen -c build.yaml -rules targets.scons -o SConstruct . thirdparty
package main

import (
	"flag"

	"github.com/google/sconsgen/bootstrap"
	"github.com/google/sconsgen/pathtools"
)

var rulesFile string

func init() {
	flag.StringVar(&rulesFile, "rules", "", "file holding the resolved target rules")
}

func main() {
	flag.Parse()

	var rules bootstrap.RuleSource
	if rulesFile != "" {
		rules = bootstrap.FileRules{FS: pathtools.OsFs, Path: rulesFile}
	}

	bootstrap.Main(rules)
}
