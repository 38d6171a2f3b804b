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

// Package bootstrap wires the generator to a real machine.  Main reads the
// command line and the configuration file, probes the host for the compiler
// and acceleration tools, runs the emitter, appends the target rules and
// writes the script along with an optional depfile.
//
// A generator binary should look something like:
//
//	package main
//
//	import (
//	    "flag"
//	    "github.com/google/sconsgen/bootstrap"
//
//	    "my/dependency/graph"
//	)
//
//	func main() {
//	    // The bootstrap package registers its own flags on the global set.
//	    flag.Parse()
//
//	    bootstrap.Main(graph.NewRuleSource())
//	}
//
// The positional arguments name the working copies whose revision info is
// compiled into every binary.
package bootstrap
