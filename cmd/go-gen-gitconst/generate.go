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
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/pflag"

	"github.com/alexandremahdhaoui/gitconst/internal/codegen"
	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
)

// Result describes a finished generation run.
type Result struct {
	// Path is the file that was written.
	Path string
	// Constants are the resolved constants; empty when Diagnostic is set.
	Constants []gitconst.Constant
	// Diagnostic is set when a failing file was written (EmitFailure).
	Diagnostic *gitconst.Diagnostic
}

// runCLI implements the CLI mode.
func runCLI(args []string) error {
	cfg, err := loadConfig(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	result, err := generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	if result.Diagnostic != nil {
		log.Printf("wrote failing %s: %s", result.Path, result.Diagnostic.Message)
	}

	return nil
}

// generate resolves every configured constant and writes the output file.
//
// On a git failure nothing is written and the *gitconst.Diagnostic is
// returned, unless cfg.EmitFailure is set: then a Go file that fails to
// compile with the diagnostic's message is written in place of the constants.
func generate(ctx context.Context, cfg *Config) (*Result, error) {
	resolver := newResolver(cfg)

	if err := resolver.CheckGitVersion(ctx, cfg.RequireGit); err != nil {
		return emitFailure(cfg, err)
	}

	constants, err := resolver.ResolveAll(ctx, cfg.Constants)
	if err != nil {
		return emitFailure(cfg, err)
	}

	for _, c := range constants {
		log.Printf("%s = %s (%s)", c.Name, c.Value, c.Describe())
	}

	content, err := codegen.Render(codegen.File{
		Package:   cfg.Package,
		Source:    cfg.Source,
		Constants: constants,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", cfg.Output, err)
	}

	if err := codegen.WriteFile(cfg.Output, content); err != nil {
		return nil, err
	}
	log.Printf("Generated %s", cfg.Output)

	return &Result{Path: cfg.Output, Constants: constants}, nil
}

// emitFailure either returns err as-is or, for diagnostics with EmitFailure
// set, writes the failing file.
func emitFailure(cfg *Config, err error) (*Result, error) {
	var d *gitconst.Diagnostic
	if !cfg.EmitFailure || !errors.As(err, &d) {
		return nil, err
	}

	content, rerr := codegen.RenderFailure(cfg.Package, cfg.Source, d)
	if rerr != nil {
		return nil, fmt.Errorf("failed to render failure for %s: %w (original error: %v)", cfg.Output, rerr, err)
	}

	if werr := codegen.WriteFile(cfg.Output, content); werr != nil {
		return nil, werr
	}

	return &Result{Path: cfg.Output, Diagnostic: d}, nil
}

func newResolver(cfg *Config) *gitconst.Resolver {
	return gitconst.NewResolver(gitconst.NewInvoker(
		gitconst.WithBinary(cfg.Git),
		gitconst.WithDir(cfg.Dir),
	))
}
