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

	"github.com/Masterminds/semver/v3"
)

// GitVersion runs "git version" and parses the reported version.
//
// Vendor suffixes are dropped: "git version 2.39.3 (Apple Git-145)" and
// "git version 2.45.1.windows.1" parse as 2.39.3 and 2.45.1.
func (r *Resolver) GitVersion(ctx context.Context) (*semver.Version, error) {
	raw, err := r.runner.Run(ctx, "version")
	if err != nil {
		return nil, err
	}

	out, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	return ParseGitVersion(out)
}

// ParseGitVersion extracts the semantic version from "git version" output.
func ParseGitVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return nil, fmt.Errorf("unexpected git version output: %q", output)
	}

	parts := strings.Split(fields[2], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}

	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, fmt.Errorf("failed to parse git version %q: %w", fields[2], err)
	}

	return v, nil
}

// CheckGitVersion fails unless the git version satisfies constraint
// (e.g. ">= 2.20"). An empty constraint always passes without running git.
func (r *Resolver) CheckGitVersion(ctx context.Context, constraint string) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid git version constraint %q: %w", constraint, err)
	}

	v, err := r.GitVersion(ctx)
	if err != nil {
		return err
	}

	if !c.Check(v) {
		return fmt.Errorf("git %s does not satisfy constraint %q", v, constraint)
	}

	return nil
}
