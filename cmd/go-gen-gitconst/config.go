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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/alexandremahdhaoui/gitconst/internal/codegen"
	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
)

// Config is the resolved configuration of one generation run.
//
// It is read from an optional YAML file, e.g.:
//
//	package: version
//	output: zz_generated.gitconst.go
//	requireGit: ">= 2.20"
//	constants:
//	  - name: Commit
//	    kind: hash
//	  - name: MainShortCommit
//	    kind: short-hash
//	    revision: main
type Config struct {
	// Package is the package clause of the generated file.
	Package string `json:"package,omitempty"`
	// Output is the path of the generated file.
	Output string `json:"output,omitempty"`
	// Dir is the directory git runs in.
	Dir string `json:"dir,omitempty"`
	// Git is the git executable.
	Git string `json:"git,omitempty"`
	// RequireGit is a semver constraint the git version must satisfy.
	RequireGit string `json:"requireGit,omitempty"`
	// EmitFailure writes a failing Go file instead of exiting non-zero.
	EmitFailure bool `json:"emitFailure,omitempty"`
	// Constants to generate, in order.
	Constants []gitconst.Constant `json:"constants,omitempty"`

	// Source is the go:generate call site, when known.
	Source string `json:"-"`
}

// Envs holds the environment variables read by go-gen-gitconst.
// GOPACKAGE, GOFILE and GOLINE are set by go generate.
type Envs struct {
	Git        string `env:"GITCONST_GIT"         envDefault:"git"`
	Dir        string `env:"GITCONST_DIR"`
	RequireGit string `env:"GITCONST_REQUIRE_GIT"`
	GoPackage  string `env:"GOPACKAGE"`
	GoFile     string `env:"GOFILE"`
	GoLine     string `env:"GOLINE"`
}

// flagOptions holds what was parsed from the command line.
type flagOptions struct {
	configPath string
	config     Config
	// set records which scalar flags were given explicitly.
	set map[string]bool
}

// defaultConstants are generated when nothing else is configured.
func defaultConstants() []gitconst.Constant {
	return []gitconst.Constant{
		{Name: "Commit", Kind: gitconst.ConstantHash},
		{Name: "ShortCommit", Kind: gitconst.ConstantShortHash},
	}
}

// loadConfig builds the Config for a CLI run.
// Precedence (highest to lowest): flags, config file, environment, defaults.
func loadConfig(args []string) (*Config, error) {
	envs := Envs{} //nolint:exhaustruct
	if err := env.Parse(&envs); err != nil {
		return nil, fmt.Errorf("environment parse failed: %w", err)
	}

	opts, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	cfg := configFromEnvs(envs)

	if opts.configPath != "" {
		file, err := readConfigFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg.merge(file, nil)
	}

	cfg.merge(&opts.config, opts.set)
	cfg.applyDefaults(envs)

	return cfg, nil
}

func configFromEnvs(envs Envs) *Config {
	return &Config{
		Git:        envs.Git,
		Dir:        envs.Dir,
		RequireGit: envs.RequireGit,
		Package:    envs.GoPackage,
	}
}

// parseFlags parses the CLI flags. Flag-defined constants are kept in
// command line order across --hash and --short-hash.
func parseFlags(args []string) (*flagOptions, error) {
	set := pflag.NewFlagSet(Name, pflag.ContinueOnError)
	set.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", Name)
		set.PrintDefaults()
	}

	opts := &flagOptions{set: map[string]bool{}}

	set.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML configuration file")
	set.StringVarP(&opts.config.Output, "output", "o", "", "Generated file (default \""+codegen.DefaultFileName+"\")")
	set.StringVarP(&opts.config.Package, "package", "p", "", "Package clause of the generated file (default $GOPACKAGE or the output directory name)")
	set.StringVarP(&opts.config.Dir, "dir", "C", "", "Directory git runs in")
	set.StringVar(&opts.config.Git, "git", "", "Git executable (default $GITCONST_GIT or \"git\")")
	set.StringVar(&opts.config.RequireGit, "require-git", "", "Semver constraint the git version must satisfy, e.g. \">= 2.20\"")
	set.BoolVar(&opts.config.EmitFailure, "emit-failure", false, "On git errors, write a Go file that fails to compile instead of exiting non-zero")
	set.Var(&constantFlag{kind: gitconst.ConstantHash, into: &opts.config.Constants}, "hash", "Add a full hash constant: NAME[=REVISION] (repeatable)")
	set.Var(&constantFlag{kind: gitconst.ConstantShortHash, into: &opts.config.Constants}, "short-hash", "Add a short hash constant: NAME[=REVISION] (repeatable)")

	if err := set.Parse(args); err != nil {
		return nil, err
	}
	if set.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(set.Args(), " "))
	}

	set.Visit(func(f *pflag.Flag) {
		opts.set[f.Name] = true
	})

	return opts, nil
}

// constantFlag is a repeatable pflag.Value appending NAME[=REVISION]
// constants of one kind to a shared list.
type constantFlag struct {
	kind gitconst.ConstantKind
	into *[]gitconst.Constant
}

func (f *constantFlag) String() string {
	var names []string
	if f.into != nil {
		for _, c := range *f.into {
			if c.Kind == f.kind {
				names = append(names, c.Name)
			}
		}
	}
	return strings.Join(names, ",")
}

func (f *constantFlag) Set(value string) error {
	c, err := parseConstantFlag(value, f.kind)
	if err != nil {
		return err
	}
	*f.into = append(*f.into, c)
	return nil
}

func (f *constantFlag) Type() string {
	return "NAME[=REVISION]"
}

// parseConstantFlag parses NAME[=REVISION]. A missing or blank revision means HEAD.
func parseConstantFlag(value string, kind gitconst.ConstantKind) (gitconst.Constant, error) {
	name, revision, _ := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return gitconst.Constant{}, fmt.Errorf("invalid %s constant %q: missing name", kind, value)
	}
	return gitconst.Constant{
		Name:     name,
		Kind:     kind,
		Revision: strings.TrimSpace(revision),
	}, nil
}

// readConfigFile reads a YAML configuration file.
func readConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseConfig(data, path)
}

// parseConfig decodes YAML (or JSON) configuration and normalizes constant kinds.
func parseConfig(data []byte, source string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", source, err)
	}

	for i := range cfg.Constants {
		kind, err := gitconst.ParseConstantKind(string(cfg.Constants[i].Kind))
		if err != nil {
			return nil, fmt.Errorf("constants[%d] (%s): %w", i, cfg.Constants[i].Name, err)
		}
		cfg.Constants[i].Kind = kind
		cfg.Constants[i].Value = ""
	}

	return cfg, nil
}

// configFromSpec converts a free-form spec (as received over MCP) to a Config.
func configFromSpec(spec map[string]any) (*Config, error) {
	if len(spec) == 0 {
		return &Config{}, nil
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode spec: %w", err)
	}
	return parseConfig(data, "spec")
}

// merge overlays other onto c. With a nil set, every non-zero field of other
// wins; otherwise only the fields named in set do. Constants are appended.
func (c *Config) merge(other *Config, set map[string]bool) {
	given := func(flag string, nonZero bool) bool {
		if set == nil {
			return nonZero
		}
		return set[flag]
	}

	if given("package", other.Package != "") {
		c.Package = other.Package
	}
	if given("output", other.Output != "") {
		c.Output = other.Output
	}
	if given("dir", other.Dir != "") {
		c.Dir = other.Dir
	}
	if given("git", other.Git != "") {
		c.Git = other.Git
	}
	if given("require-git", other.RequireGit != "") {
		c.RequireGit = other.RequireGit
	}
	if given("emit-failure", other.EmitFailure) {
		c.EmitFailure = other.EmitFailure
	}
	c.Constants = append(c.Constants, other.Constants...)
}

// applyDefaults fills what is still unset once every source is merged.
func (c *Config) applyDefaults(envs Envs) {
	if c.Output == "" {
		c.Output = codegen.DefaultFileName
	}
	if c.Git == "" {
		c.Git = gitconst.DefaultBinary
	}
	if len(c.Constants) == 0 {
		c.Constants = defaultConstants()
	}
	if c.Package == "" {
		c.Package = packageFromOutput(c.Output)
	}
	if c.Source == "" && envs.GoFile != "" {
		c.Source = envs.GoFile
		if envs.GoLine != "" {
			c.Source += ":" + envs.GoLine
		}
	}
}

// packageFromOutput guesses the package name from the output directory.
func packageFromOutput(output string) string {
	abs, err := filepath.Abs(output)
	if err != nil {
		return ""
	}
	name := filepath.Base(filepath.Dir(abs))
	return strings.NewReplacer("-", "", ".", "").Replace(name)
}
