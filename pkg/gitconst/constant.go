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
	"strconv"
	"strings"
)

// ConstantKind selects which git lookup produces a constant.
type ConstantKind string

const (
	// ConstantHash is the full commit hash (git rev-parse <rev>).
	ConstantHash ConstantKind = "hash"
	// ConstantShortHash is the abbreviated hash (git rev-parse --short <rev>).
	ConstantShortHash ConstantKind = "short-hash"
)

// ConstantKinds lists the supported kinds.
var ConstantKinds = []ConstantKind{ConstantHash, ConstantShortHash}

// ParseConstantKind accepts the canonical names plus a few spellings seen in
// the wild ("short", "shorthash", "short_hash").
func ParseConstantKind(s string) (ConstantKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hash", "full":
		return ConstantHash, nil
	case "short-hash", "short_hash", "shorthash", "short":
		return ConstantShortHash, nil
	default:
		return "", fmt.Errorf("unknown constant kind %q (want one of %v)", s, ConstantKinds)
	}
}

// Constant is a named string constant to embed.
type Constant struct {
	// Name is the Go identifier of the constant.
	Name string `json:"name"`
	// Kind selects the git lookup.
	Kind ConstantKind `json:"kind,omitempty"`
	// Revision is the git revision to resolve; blank means HEAD.
	Revision string `json:"revision,omitempty"`
	// Value is set once the constant is resolved.
	Value string `json:"value,omitempty"`
}

// Literal returns Value as a quoted Go string literal.
func (c Constant) Literal() string {
	return strconv.Quote(c.Value)
}

// Describe returns a short human description, e.g. "full hash of HEAD".
func (c Constant) Describe() string {
	what := "full hash"
	if c.Kind == ConstantShortHash {
		what = "short hash"
	}
	return fmt.Sprintf("%s of %s", what, NormalizeRevision(c.Revision))
}

// ResolveConstant resolves c and returns a copy with Value set.
func (r *Resolver) ResolveConstant(ctx context.Context, c Constant) (Constant, error) {
	value, err := r.Resolve(ctx, c.Kind, c.Revision)
	if err != nil {
		return c, err
	}
	c.Revision = NormalizeRevision(c.Revision)
	c.Value = value
	return c, nil
}

// ResolveAll resolves constants in order and stops at the first failure.
// Each constant runs its own git process.
func (r *Resolver) ResolveAll(ctx context.Context, constants []Constant) ([]Constant, error) {
	out := make([]Constant, 0, len(constants))
	for _, c := range constants {
		resolved, err := r.ResolveConstant(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}
