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
	"fmt"
	"strings"
)

// Resolver turns revision references into commit hashes.
type Resolver struct {
	runner Runner
}

// NewResolver creates a Resolver backed by the given Runner.
// A nil runner means a default Invoker.
func NewResolver(runner Runner) *Resolver {
	if runner == nil {
		runner = NewInvoker()
	}
	return &Resolver{runner: runner}
}

// Hash returns the full commit hash of revision (HEAD when blank).
func (r *Resolver) Hash(ctx context.Context, revision string) (string, error) {
	return r.revParse(ctx, NormalizeRevision(revision))
}

// ShortHash returns the abbreviated commit hash of revision (HEAD when blank).
// The length is git's default for the repository.
func (r *Resolver) ShortHash(ctx context.Context, revision string) (string, error) {
	return r.revParse(ctx, "--short", NormalizeRevision(revision))
}

// Resolve dispatches to Hash or ShortHash depending on kind.
func (r *Resolver) Resolve(ctx context.Context, kind ConstantKind, revision string) (string, error) {
	switch kind {
	case ConstantHash:
		return r.Hash(ctx, revision)
	case ConstantShortHash:
		return r.ShortHash(ctx, revision)
	default:
		return "", fmt.Errorf("unknown constant kind %q", kind)
	}
}

func (r *Resolver) revParse(ctx context.Context, args ...string) (string, error) {
	revision := args[len(args)-1]
	if err := checkRevision(revision); err != nil {
		return "", err
	}

	raw, err := r.runner.Run(ctx, append([]string{"rev-parse"}, args...)...)
	if err != nil {
		return "", err
	}

	out, err := Decode(raw)
	if err != nil {
		return "", err
	}

	if out == "" {
		return "", Report(KindOutput, "git rev-parse returned no output for %q", revision)
	}
	if strings.ContainsAny(out, "\r\n") {
		return "", Report(KindOutput, "git rev-parse returned several lines for %q", revision)
	}

	return out, nil
}

var defaultResolver = NewResolver(nil)

// Hash returns the full commit hash of revision using git from PATH in the
// current directory.
func Hash(ctx context.Context, revision string) (string, error) {
	return defaultResolver.Hash(ctx, revision)
}

// ShortHash returns the abbreviated commit hash of revision using git from
// PATH in the current directory.
func ShortHash(ctx context.Context, revision string) (string, error) {
	return defaultResolver.ShortHash(ctx, revision)
}
