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

package buildenv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// A RunFunc runs a command in dir with env added to the process environment
// and returns its standard output.  A non-zero exit is an error.
type RunFunc func(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error)

// ExecRun is the RunFunc that starts real processes.
func ExecRun(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, fmt.Errorf("%s: %w", name, ctxErr)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// RunCommandLine runs a command line that may carry wrapper words, such as
// "ccache gcc", by splitting it on spaces.
func RunCommandLine(ctx context.Context, run RunFunc, cmdline string, args ...string) ([]byte, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return run(ctx, "", nil, fields[0], append(fields[1:], args...)...)
}

// CompilerVersion returns the version reported by cc -dumpversion.
func CompilerVersion(ctx context.Context, run RunFunc, cc string) (string, error) {
	out, err := RunCommandLine(ctx, run, cc, "-dumpversion")
	if err != nil {
		return "", fmt.Errorf("detecting compiler version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

const pythonIncludeScript = "import sysconfig; print(sysconfig.get_paths()['include'])"

// PythonInclude returns the include directory of the python interpreter, so
// generated extension sources can find Python.h.
func PythonInclude(ctx context.Context, run RunFunc, python string) (string, error) {
	out, err := run(ctx, "", nil, python, "-c", pythonIncludeScript)
	if err != nil {
		return "", fmt.Errorf("detecting python include path: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
