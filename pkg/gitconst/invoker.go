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

package gitconst

import (
	"context"

	"github.com/alexandremahdhaoui/gitconst/internal/cmdutil"
)

// DefaultBinary is the git executable looked up in PATH.
const DefaultBinary = "git"

// Runner runs git with the given arguments and returns its stdout.
//
// Implementations must return a *Diagnostic on failure.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// Invoker spawns the git executable.
type Invoker struct {
	binary string
	dir    string
	env    []string
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithBinary sets the git executable. An empty value keeps DefaultBinary.
func WithBinary(binary string) InvokerOption {
	return func(i *Invoker) {
		if binary != "" {
			i.binary = binary
		}
	}
}

// WithDir sets the directory git runs in. Empty means the current directory.
func WithDir(dir string) InvokerOption {
	return func(i *Invoker) {
		i.dir = dir
	}
}

// WithEnv appends KEY=VALUE pairs to git's environment.
func WithEnv(env ...string) InvokerOption {
	return func(i *Invoker) {
		i.env = append(i.env, env...)
	}
}

// NewInvoker creates an Invoker running DefaultBinary unless overridden.
func NewInvoker(opts ...InvokerOption) *Invoker {
	i := &Invoker{binary: DefaultBinary}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Binary returns the git executable this Invoker spawns.
func (i *Invoker) Binary() string {
	return i.binary
}

// Run executes git synchronously and returns its stdout on a zero exit.
//
// Returns a *Diagnostic if:
//   - git cannot be spawned (KindSpawn)
//   - git exits with a non-zero status (KindProcess); the status defaults to 1
//     when it cannot be determined
func (i *Invoker) Run(ctx context.Context, args ...string) ([]byte, error) {
	out := cmdutil.ExecuteCommand(ctx, cmdutil.ExecuteInput{
		Command: i.binary,
		Args:    args,
		Env:     i.env,
		WorkDir: i.dir,
	})

	if !out.Started() {
		d := Report(KindSpawn, "git execution error: %v", out.Err)
		d.Err = out.Err
		return nil, d
	}

	if !out.Success() {
		status := out.ExitCode
		if status <= 0 {
			status = 1
		}
		return nil, Report(KindProcess, "git failed with status %d:\n %s", status, decodeLossy(out.Stderr))
	}

	return out.Stdout, nil
}
