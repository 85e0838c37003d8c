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

// Command go-gen-gitconst writes a Go file defining git commit hashes as
// string constants. It is meant to run from go:generate:
//
//	//go:generate go run github.com/alexandremahdhaoui/gitconst/cmd/go-gen-gitconst --hash Commit --short-hash ShortCommit
//
// which produces zz_generated.gitconst.go:
//
//	const (
//		// Commit is the full hash of HEAD.
//		Commit = "0123456789abcdef0123456789abcdef01234567"
//		// ShortCommit is the short hash of HEAD.
//		ShortCommit = "0123456"
//	)
package main

import (
	"fmt"
	"os"

	"github.com/alexandremahdhaoui/gitconst/pkg/enginecli"
)

// Name is the name of the tool
const Name = "go-gen-gitconst"

// Version information (set via ldflags during build)
var (
	Version        = "dev"
	CommitSHA      = "unknown"
	BuildTimestamp = "unknown"
)

func main() {
	enginecli.Bootstrap(enginecli.Config{
		Name:           Name,
		Version:        Version,
		CommitSHA:      CommitSHA,
		BuildTimestamp: BuildTimestamp,
		RunCLI:         runCLI,
		RunMCP:         runMCPServer,
		FailureHandler: func(err error) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", Name, err)
		},
	})
}
