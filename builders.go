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
	"strings"

	"github.com/google/sconsgen/config"
	"github.com/google/sconsgen/pathtools"
)

// sourceDir expands, when the builder runs, to the directory of its source.
const sourceDir = "`dirname $SOURCE`"

// cmdline joins the non-empty words of a command line.
func cmdline(words ...string) string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			result = append(result, w)
		}
	}
	return strings.Join(result, " ")
}

// optional returns prefix followed by the escaped value, or nothing when
// value is empty.
func optional(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + pathtools.CommandEscape(value)
}

func protoBuilders(proto config.ProtoConfig, buildDir string) []BuilderDef {
	if proto.Protoc == "" {
		return nil
	}
	protoc := pathtools.CommandEscape(proto.Protoc)
	buildDir = pathtools.CommandEscape(buildDir)
	incs := pathtools.JoinWithFlag("-I", pathtools.CommandEscapeList(proto.ProtobufIncs))
	return []BuilderDef{
		{
			Name: "Proto",
			Var:  "proto_bld",
			Command: cmdline(protoc, "--proto_path=. -I.", incs,
				"-I="+sourceDir, "--cpp_out="+buildDir, source),
			Message: msgProtoCc,
		},
		{
			Name: "ProtoJava",
			Var:  "proto_java_bld",
			Command: cmdline(protoc, "--proto_path=.",
				optional("--proto_path=", proto.ProtobufPath),
				"--java_out="+buildDir+"/"+sourceDir, source),
			Message: msgProtoJava,
		},
		{
			Name: "ProtoPhp",
			Var:  "proto_php_bld",
			Command: cmdline(protoc, "--proto_path=.",
				optional("--plugin=protoc-gen-php=", proto.ProtocPhpPlugin),
				"-I.", incs, optional("-I", proto.ProtobufPhpPath),
				"-I="+sourceDir, "--php_out="+buildDir+"/"+sourceDir, source),
			Message: msgProtoPhp,
		},
		{
			Name: "ProtoPython",
			Var:  "proto_python_bld",
			Command: cmdline(protoc, "--proto_path=. -I.", incs,
				"-I="+sourceDir, "--python_out="+buildDir, source),
			Message: msgProtoPython,
		},
	}
}

// thriftBinary maps a "//path:target" label to the binary built for it in
// buildDir.  Plain paths are returned unchanged.
func thriftBinary(thrift, buildDir string) string {
	if !strings.HasPrefix(thrift, "//") {
		return thrift
	}
	return buildDir + "/" + strings.ReplaceAll(strings.TrimPrefix(thrift, "//"), ":", "/")
}

func thriftBuilders(thrift config.ThriftConfig, buildDir string) []BuilderDef {
	if thrift.Thrift == "" {
		return nil
	}
	bin := pathtools.CommandEscape(thriftBinary(thrift.Thrift, buildDir))
	buildDir = pathtools.CommandEscape(buildDir)
	incs := pathtools.JoinWithFlag("-I", pathtools.CommandEscapeList(thrift.ThriftIncs))
	command := func(gen string) string {
		return cmdline(bin, "--gen", gen, "-I .", incs, "-I "+sourceDir,
			"-out "+buildDir+"/"+sourceDir, source)
	}
	return []BuilderDef{
		{Name: "Thrift", Var: "thrift_bld", Command: command("cpp:include_prefix"), Message: msgThriftCc},
		{Name: "ThriftJava", Var: "thrift_java_bld", Command: command("java"), Message: msgThriftJava},
		{Name: "ThriftPython", Var: "thrift_python_bld", Command: command("py"), Message: msgThriftPython},
	}
}

func swigBuilders(swig config.SwigConfig, buildDir string) []BuilderDef {
	if swig.Swig == "" {
		return nil
	}
	bin := pathtools.CommandEscape(swig.Swig)
	buildDir = pathtools.CommandEscape(buildDir)
	// swig only accepts include directories attached to the flag.
	incs := pathtools.PrefixEach("-I", pathtools.CommandEscapeList(swig.SwigIncs))
	command := func(lang string) string {
		return cmdline(bin, lang, "-c++ -I.", incs,
			"-outdir "+buildDir+"/"+sourceDir, "-o", target, source)
	}
	return []BuilderDef{
		{Name: "SwigPython", Var: "swig_python_bld", Command: command("-python -threads"), Message: msgSwigPython},
		{Name: "SwigJava", Var: "swig_java_bld", Command: command("-java"), Message: msgSwigJava},
		{Name: "SwigPhp", Var: "swig_php_bld", Command: command("-php"), Message: msgSwigPhp},
	}
}

// commonBuilders are declared for every build.  The functions come from the
// helper module imported by the preamble.
var commonBuilders = []BuilderDef{
	{Name: "BladeJar", Var: "blade_jar_bld", Command: "jar cf $TARGET -C " + sourceDir + " .", Message: msgJavaJar},
	{Name: "Yacc", Var: "yacc_bld", Command: "bison $YACCFLAGS -d -o $TARGET $SOURCE", Message: msgYacc},
	{Name: "ResourceHeader", Var: "resource_header_bld", Function: "generate_resource_header", Message: msgResourceHeader},
	{Name: "ResourceFile", Var: "resource_file_bld", Function: "generate_resource_file", Message: msgResource},
	{Name: "PythonBinary", Var: "python_binary_bld", Function: "generate_python_binary", Message: msgPythonBinary},
}

// generatorBuilders returns the builder declarations for cfg, in
// declaration order.
func generatorBuilders(cfg config.BuildConfig) []BuilderDef {
	var defs []BuilderDef
	defs = append(defs, protoBuilders(cfg.Proto, cfg.BuildDir)...)
	defs = append(defs, thriftBuilders(cfg.Thrift, cfg.BuildDir)...)
	defs = append(defs, swigBuilders(cfg.Swig, cfg.BuildDir)...)
	defs = append(defs, commonBuilders...)
	return defs
}
