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
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alexandremahdhaoui/gitconst/internal/codegen"
	"github.com/alexandremahdhaoui/gitconst/internal/mcpserver"
	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
	"github.com/alexandremahdhaoui/gitconst/pkg/mcputil"
)

// BuildInput is the input of the build tool.
type BuildInput struct {
	Name string         `json:"name"           jsonschema:"Name of the artifact to generate"`
	Dest string         `json:"dest,omitempty" jsonschema:"Generated Go file, or a directory to write zz_generated.gitconst.go into"`
	Spec map[string]any `json:"spec,omitempty" jsonschema:"Same fields as the YAML configuration file (package, dir, git, requireGit, emitFailure, constants)"`
}

// ResolveInput is the input of the resolve tool.
type ResolveInput struct {
	Revision string `json:"revision,omitempty" jsonschema:"Git revision to resolve, HEAD when empty"`
	Short    bool   `json:"short,omitempty"    jsonschema:"Return the abbreviated hash"`
	Dir      string `json:"dir,omitempty"      jsonschema:"Directory git runs in"`
}

// ResolveOutput is the structured output of the resolve tool.
type ResolveOutput struct {
	Revision string `json:"revision"`
	Hash     string `json:"hash"`
}

// Artifact describes a generated file.
type Artifact struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Location  string `json:"location"`
	Timestamp string `json:"timestamp"`
	// Version is the first resolved constant, typically the commit hash.
	Version string `json:"version,omitempty"`
}

// runMCPServer starts the go-gen-gitconst MCP server with stdio transport.
func runMCPServer() error {
	return newMCPServer().RunStdio()
}

func newMCPServer() *mcpserver.Server {
	server := mcpserver.New(Name, Version)

	mcpserver.RegisterTool(server, &mcp.Tool{
		Name:        "build",
		Description: "Generate a Go file defining git commit hashes as string constants.",
	}, handleBuild)

	mcpserver.RegisterTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a git revision to its full or abbreviated commit hash.",
	}, handleResolve)

	return server
}

func handleBuild(ctx context.Context, _ *mcp.CallToolRequest, input BuildInput) (*mcp.CallToolResult, any, error) {
	log.Printf("Generating git constants for %s", input.Name)

	if input.Name == "" {
		return mcputil.ErrorResult("Build failed: missing required field: name"), nil, nil
	}

	cfg, err := buildConfig(input)
	if err != nil {
		return mcputil.FailureResult("Build failed", err), nil, nil
	}

	if err := cfg.Validate(); err != nil {
		return mcputil.FailureResult("Build failed: invalid spec", err), nil, nil
	}

	result, err := generate(ctx, cfg)
	if err != nil {
		return mcputil.FailureResult("Build failed", err), nil, nil
	}
	if result.Diagnostic != nil {
		// The failing file is on disk; the build still failed.
		return mcputil.FailureResult("Build failed", result.Diagnostic), nil, nil
	}

	artifact := Artifact{
		Name:      input.Name,
		Type:      "generated",
		Location:  result.Path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   result.Constants[0].Value,
	}

	res, out := mcputil.SuccessResultWithArtifact(fmt.Sprintf("Build succeeded: %s", input.Name), artifact)
	return res, out, nil
}

func handleResolve(ctx context.Context, _ *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, any, error) {
	envs := Envs{} //nolint:exhaustruct
	if err := env.Parse(&envs); err != nil {
		return mcputil.FailureResult("Resolve failed", err), nil, nil
	}

	dir := input.Dir
	if dir == "" {
		dir = envs.Dir
	}
	resolver := newResolver(&Config{Git: envs.Git, Dir: dir})

	kind := gitconst.ConstantHash
	if input.Short {
		kind = gitconst.ConstantShortHash
	}

	revision := gitconst.NormalizeRevision(input.Revision)
	hash, err := resolver.Resolve(ctx, kind, revision)
	if err != nil {
		return mcputil.FailureResult("Resolve failed", err), nil, nil
	}

	res, out := mcputil.SuccessResultWithArtifact(hash, ResolveOutput{Revision: revision, Hash: hash})
	return res, out, nil
}

// buildConfig turns a build request into a Config. The environment supplies
// defaults, input.Spec overrides them and dest decides the output path.
func buildConfig(input BuildInput) (*Config, error) {
	envs := Envs{} //nolint:exhaustruct
	if err := env.Parse(&envs); err != nil {
		return nil, fmt.Errorf("environment parse failed: %w", err)
	}
	// GOPACKAGE belongs to the go generate caller, not to an MCP request.
	envs.GoPackage = ""

	spec, err := configFromSpec(input.Spec)
	if err != nil {
		return nil, err
	}

	cfg := configFromEnvs(envs)
	cfg.merge(spec, nil)

	switch {
	case input.Dest == "":
	case strings.HasSuffix(input.Dest, ".go"):
		cfg.Output = input.Dest
	default:
		cfg.Output = filepath.Join(input.Dest, codegen.DefaultFileName)
	}

	cfg.applyDefaults(Envs{})
	cfg.Source = "mcp build " + input.Name

	return cfg, nil
}
