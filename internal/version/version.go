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

package version

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
)

// Info holds version information for a tool.
type Info struct {
	// ToolName is the name of the tool
	ToolName string
	// Version is set via ldflags or from build info
	Version string
	// CommitSHA is set via ldflags or from build info
	CommitSHA string
	// BuildTimestamp is set via ldflags or from build info
	BuildTimestamp string

	// resolver is used for git fallbacks; nil disables them.
	resolver *gitconst.Resolver
}

// New creates a new Info with default values.
func New(toolName string) *Info {
	return &Info{
		ToolName:       toolName,
		Version:        "dev",
		CommitSHA:      "unknown",
		BuildTimestamp: "unknown",
		resolver:       gitconst.NewResolver(nil),
	}
}

// WithResolver replaces the resolver used to query git. Passing nil disables
// every git fallback.
func (i *Info) WithResolver(r *gitconst.Resolver) *Info {
	i.resolver = r
	return i
}

// Get returns version information, attempting to read from build info if not set via ldflags.
func (i *Info) Get() (version, commit, timestamp string) {
	version = i.Version
	commit = i.CommitSHA
	timestamp = i.BuildTimestamp

	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}

		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "unknown" && len(setting.Value) >= 7 {
					commit = setting.Value[:7]
				}
			case "vcs.time":
				if timestamp == "unknown" {
					timestamp = setting.Value
				}
			}
		}
	}

	// go run without VCS stamping: ask git directly
	if commit == "unknown" && i.resolver != nil {
		if short, err := i.resolver.ShortHash(context.Background(), ""); err == nil {
			commit = short
		}
	}

	return version, commit, timestamp
}

// GitVersion returns the version of the git binary the tool will use, or
// "unavailable".
func (i *Info) GitVersion() string {
	if i.resolver == nil {
		return "unavailable"
	}
	v, err := i.resolver.GitVersion(context.Background())
	if err != nil {
		return "unavailable"
	}
	return v.String()
}

// Fprint writes formatted version information to w.
func (i *Info) Fprint(w io.Writer) {
	version, commit, timestamp := i.Get()
	fmt.Fprintf(w, "%s version %s\n", i.ToolName, version)
	fmt.Fprintf(w, "  commit:    %s\n", commit)
	fmt.Fprintf(w, "  built:     %s\n", timestamp)
	fmt.Fprintf(w, "  go:        %s\n", runtime.Version())
	fmt.Fprintf(w, "  git:       %s\n", i.GitVersion())
	fmt.Fprintf(w, "  platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// String returns a one-line version string using the explicitly set Version field.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s", i.ToolName, i.Version)
}
