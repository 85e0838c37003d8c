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

// Package enginecli provides the shared entry point of the go-gen-gitconst
// binaries: version flags, MCP mode and CLI execution with exit codes.
package enginecli

import (
	"log"
	"os"

	"github.com/alexandremahdhaoui/gitconst/internal/version"
)

// Config holds the configuration for CLI bootstrap.
type Config struct {
	// Name is the command name (e.g., "go-gen-gitconst")
	Name string

	// Version information (typically set via ldflags)
	Version        string
	CommitSHA      string
	BuildTimestamp string

	// RunCLI is the function to execute in normal CLI mode.
	// It receives the arguments following the program name.
	RunCLI func(args []string) error

	// RunMCP is the function to execute in MCP server mode (optional)
	// If nil, --mcp flag will result in an error
	RunMCP func() error

	// FailureHandler is called when RunCLI returns an error (optional)
	// Defaults to logging the error
	FailureHandler func(error)
}

// Bootstrap dispatches os.Args and exits. It never returns.
//
// Only the first argument selects a mode, so revision names such as "version"
// can still be passed to the CLI further down the argument list.
func Bootstrap(cfg Config) {
	os.Exit(Run(cfg, os.Args[1:]))
}

// Run dispatches args and returns the process exit code.
func Run(cfg Config, args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			info := version.New(cfg.Name)
			info.Version = cfg.Version
			info.CommitSHA = cfg.CommitSHA
			info.BuildTimestamp = cfg.BuildTimestamp
			info.Fprint(os.Stdout)
			return 0

		case "--mcp":
			if cfg.RunMCP == nil {
				log.Printf("Error: MCP mode not supported for %s", cfg.Name)
				return 1
			}
			if err := cfg.RunMCP(); err != nil {
				log.Printf("MCP server error: %v", err)
				return 1
			}
			return 0
		}
	}

	if cfg.RunCLI == nil {
		log.Printf("Error: %s only supports MCP mode, use --mcp flag", cfg.Name)
		return 1
	}

	if err := cfg.RunCLI(args); err != nil {
		if cfg.FailureHandler != nil {
			cfg.FailureHandler(err)
		} else {
			log.Printf("%v", err)
		}
		return 1
	}

	return 0
}
