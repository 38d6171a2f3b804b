// Copyright 2015 Google Inc. All rights reserved.
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

// Sconsgen writes the head of an SCons (http://scons.org) SConstruct script
// for a C++ source tree: the top level construction environment, progress
// messages, a compiled-in version source, builders for the source generators
// (protoc, thrift, swig, bison, resource packing) and the toolchain and flag
// settings.  The rules of the individual targets are produced elsewhere and
// appended after it.
//
// Generation is split into phases run by an Emitter.  Each phase appends typed
// directives to a DirectiveLog; nothing is turned into text until the log is
// written.  The order of the log is the order of the script, which matters to
// SCons: an environment must exist before it is modified, and a builder must
// be declared before a target uses it.  For example, a configuration with a
// protoc path produces, among others:
//
//   proto_bld = Builder(
//       action=MakeAction("protoc --proto_path=. -I. -I=`dirname $SOURCE` --cpp_out=build64_release $SOURCE", compile_proto_cc_message)
//   )
//   top_env.Append(BUILDERS={"Proto": proto_bld})
//
// Compiler commands are composed by the toolchain package.  When distcc and
// ccache are both available the compiler becomes "ccache distcc gcc": the
// cache wraps the distributed compile, never the other way round.
package sconsgen
