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
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// ExecuteCommand runs a command to completion and captures its output.
//
// The command gets no stdin. Environment variables from input.Env are appended
// to the system environment, so they take precedence over inherited values.
//
// A non-zero exit is not an error at this level: it is reported through
// ExecuteOutput.ExitCode. ExecuteOutput.Err is only set when the process could
// not be started (binary missing, not executable, bad working directory).
func ExecuteCommand(ctx context.Context, input ExecuteInput) ExecuteOutput {
	cmd := exec.CommandContext(ctx, input.Command, input.Args...)

	if input.WorkDir != "" {
		cmd.Dir = input.WorkDir
	}

	if len(input.Env) > 0 {
		cmd.Env = append(os.Environ(), input.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := ExecuteOutput{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
		} else {
			output.ExitCode = -1
			output.Err = err
		}
	}

	return output
}
