//go:build unit

// Copyright 2024 Alexandre Mahdhaoui
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

package cmdutil

import (
	"context"
	"runtime"
	"testing"
)

func TestExecuteCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	tests := []struct {
		name        string
		input       ExecuteInput
		wantCode    int
		wantStdout  string
		wantStderr  string
		wantStarted bool
	}{
		{
			name:        "success",
			input:       ExecuteInput{Command: "sh", Args: []string{"-c", "printf out; printf err >&2"}},
			wantStdout:  "out",
			wantStderr:  "err",
			wantStarted: true,
		},
		{
			name:        "non-zero exit",
			input:       ExecuteInput{Command: "sh", Args: []string{"-c", "exit 7"}},
			wantCode:    7,
			wantStarted: true,
		},
		{
			name:        "env is appended",
			input:       ExecuteInput{Command: "sh", Args: []string{"-c", `printf '%s' "$CMDUTIL_TEST"`}, Env: []string{"CMDUTIL_TEST=value"}},
			wantStdout:  "value",
			wantStarted: true,
		},
		{
			name:        "work dir",
			input:       ExecuteInput{Command: "sh", Args: []string{"-c", "pwd"}, WorkDir: "/"},
			wantStdout:  "/\n",
			wantStarted: true,
		},
		{
			name:     "missing binary",
			input:    ExecuteInput{Command: "/nonexistent/cmdutil-test-binary"},
			wantCode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ExecuteCommand(context.Background(), tt.input)

			if out.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", out.ExitCode, tt.wantCode)
			}
			if string(out.Stdout) != tt.wantStdout {
				t.Errorf("Stdout = %q, want %q", out.Stdout, tt.wantStdout)
			}
			if string(out.Stderr) != tt.wantStderr {
				t.Errorf("Stderr = %q, want %q", out.Stderr, tt.wantStderr)
			}
			if out.Started() != tt.wantStarted {
				t.Errorf("Started() = %v, want %v (err: %v)", out.Started(), tt.wantStarted, out.Err)
			}
			if out.Success() != (tt.wantStarted && tt.wantCode == 0) {
				t.Errorf("Success() = %v", out.Success())
			}
		})
	}
}
