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

package main

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
)

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if !isGoIdentifier(c.Package) {
		errs = append(errs, fmt.Errorf("package: %q is not a valid Go package name", c.Package))
	}

	if c.Output == "" {
		errs = append(errs, fmt.Errorf("output: required"))
	} else if filepath.Ext(c.Output) != ".go" {
		errs = append(errs, fmt.Errorf("output: %q must be a .go file", c.Output))
	}

	if c.RequireGit != "" {
		if _, err := semver.NewConstraint(c.RequireGit); err != nil {
			errs = append(errs, fmt.Errorf("requireGit: %q: %w", c.RequireGit, err))
		}
	}

	if len(c.Constants) == 0 {
		errs = append(errs, fmt.Errorf("constants: at least one constant is required"))
	}

	seen := make(map[string]int, len(c.Constants))
	for i, constant := range c.Constants {
		field := fmt.Sprintf("constants[%d]", i)

		if !isGoIdentifier(constant.Name) {
			errs = append(errs, fmt.Errorf("%s.name: %q is not a valid Go identifier", field, constant.Name))
		} else if first, ok := seen[constant.Name]; ok {
			errs = append(errs, fmt.Errorf("%s.name: %q already declared by constants[%d]", field, constant.Name, first))
		} else {
			seen[constant.Name] = i
		}

		switch constant.Kind {
		case gitconst.ConstantHash, gitconst.ConstantShortHash:
		default:
			errs = append(errs, fmt.Errorf("%s.kind: unknown kind %q (want one of %v)", field, constant.Kind, gitconst.ConstantKinds))
		}
	}

	return errors.Join(errs...)
}

// isGoIdentifier reports whether s can name a package or a constant.
// The blank identifier is rejected: a blank constant would be useless.
func isGoIdentifier(s string) bool {
	return s != "_" && token.IsIdentifier(s)
}
