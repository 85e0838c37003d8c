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

// ExecuteInput contains the parameters for command execution.
type ExecuteInput struct {
	Command string   // Command to execute
	Args    []string // Command arguments
	Env     []string // Additional KEY=VALUE pairs appended to the system environment
	WorkDir string   // Working directory (optional)
}

// ExecuteOutput contains the result of command execution.
//
// Stdout and Stderr are kept as raw bytes: callers decide how (and whether)
// to interpret them as text.
type ExecuteOutput struct {
	ExitCode int    // Command exit code, -1 if the process never ran or was killed
	Stdout   []byte // Standard output
	Stderr   []byte // Standard error
	Err      error  // Set when the command could not be started
}

// Started reports whether the process was spawned at all.
func (o ExecuteOutput) Started() bool {
	return o.Err == nil
}

// Success reports whether the process ran and exited with status 0.
func (o ExecuteOutput) Success() bool {
	return o.Err == nil && o.ExitCode == 0
}
