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
	"fmt"

	"github.com/gookit/color"
)

// Names of the progress messages declared in the script.
const (
	msgProtoCc        = "compile_proto_cc_message"
	msgProtoJava      = "compile_proto_java_message"
	msgProtoPhp       = "compile_proto_php_message"
	msgProtoPython    = "compile_proto_python_message"
	msgThriftCc       = "compile_thrift_cc_message"
	msgThriftJava     = "compile_thrift_java_message"
	msgThriftPython   = "compile_thrift_python_message"
	msgResourceHeader = "compile_resource_header_message"
	msgResource       = "compile_resource_message"
	msgSource         = "compile_source_message"
	msgAssembling     = "assembling_source_message"
	msgLinkProgram    = "link_program_message"
	msgLinkLibrary    = "link_library_message"
	msgRanlib         = "ranlib_library_message"
	msgLinkShared     = "link_shared_library_message"
	msgJavaJar        = "compile_java_jar_message"
	msgPythonBinary   = "compile_python_binary_message"
	msgYacc           = "compile_yacc_message"
	msgSwigPython     = "compile_swig_python_message"
	msgSwigJava       = "compile_swig_java_message"
	msgSwigPhp        = "compile_swig_php_message"
)

// A progressMessage is shown while one kind of action runs: Prefix, then
// the highlighted Subject placeholder, then Suffix.  The engine substitutes
// $SOURCE and $TARGET.
type progressMessage struct {
	Name    string
	Color   color.Color
	Prefix  string
	Subject string
	Suffix  string
}

const (
	source = "$SOURCE"
	target = "$TARGET"
)

var progressMessages = []progressMessage{
	{msgProtoCc, color.FgCyan, "Compiling ", source, " to cc source"},
	{msgProtoJava, color.FgCyan, "Compiling ", source, " to java source"},
	{msgProtoPhp, color.FgCyan, "Compiling ", source, " to php source"},
	{msgProtoPython, color.FgCyan, "Compiling ", source, " to python source"},
	{msgThriftCc, color.FgCyan, "Compiling ", source, " to cc source"},
	{msgThriftJava, color.FgCyan, "Compiling ", source, " to java source"},
	{msgThriftPython, color.FgCyan, "Compiling ", source, " to python source"},
	{msgResourceHeader, color.FgCyan, "Generating resource header ", target, ""},
	{msgResource, color.FgCyan, "Compiling ", source, " as resource file"},
	{msgSource, color.FgCyan, "Compiling ", source, ""},
	{msgAssembling, color.FgCyan, "Assembling ", source, ""},
	{msgLinkProgram, color.FgGreen, "Linking Program ", target, ""},
	{msgLinkLibrary, color.FgGreen, "Creating Static Library ", target, ""},
	{msgRanlib, color.FgGreen, "Ranlib Library ", target, ""},
	{msgLinkShared, color.FgGreen, "Linking Shared Library ", target, ""},
	{msgJavaJar, color.FgCyan, "Generating java jar ", target, ""},
	{msgPythonBinary, color.FgCyan, "Generating python binary ", target, ""},
	{msgYacc, color.FgCyan, "Yacc ", source, " to " + target},
	{msgSwigPython, color.FgCyan, "Compiling ", source, " to python source"},
	{msgSwigJava, color.FgCyan, "Compiling ", source, " to java source"},
	{msgSwigPhp, color.FgCyan, "Compiling ", source, " to php source"},
}

// subjectColor highlights the file name inside every message.
const subjectColor = color.FgMagenta

func escape(c color.Color) string {
	return fmt.Sprintf(color.SettingTpl, c.Code())
}

// Text renders the message.  Colors are written as raw escape sequences so
// the result does not depend on the terminal the generator runs in.
func (m progressMessage) Text(colored bool) string {
	if !colored {
		return m.Prefix + m.Subject + m.Suffix
	}
	lead := escape(m.Color)
	return lead + m.Prefix + escape(subjectColor) + m.Subject + lead + m.Suffix + color.ResetSet
}

// comStrings binds messages to the engine's command-string variables, which
// replace the echoed command lines when the build is not verbose.
var comStrings = []struct {
	Var     string
	Message string
}{
	{"CXXCOMSTR", msgSource},
	{"CCCOMSTR", msgSource},
	{"ASCOMSTR", msgAssembling},
	{"SHCCCOMSTR", msgSource},
	{"SHCXXCOMSTR", msgSource},
	{"ARCOMSTR", msgLinkLibrary},
	{"RANLIBCOMSTR", msgRanlib},
	{"SHLINKCOMSTR", msgLinkShared},
	{"LINKCOMSTR", msgLinkProgram},
	{"JAVACCOMSTR", msgSource},
}

const versionUpdateMessage = "Updating version information"

func versionMessage(colored bool) string {
	if !colored {
		return versionUpdateMessage
	}
	return escape(color.FgCyan) + versionUpdateMessage + color.ResetSet
}
