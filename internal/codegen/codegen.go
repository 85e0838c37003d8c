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

// Package codegen renders and writes the Go files produced by go-gen-gitconst.
package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
)

// DefaultFileName is the generated file name when none is configured.
const DefaultFileName = "zz_generated.gitconst.go"

//go:embed templates/*.tmpl
var templatesFS embed.FS

// File describes a generated constants file.
type File struct {
	// Package is the package clause of the generated file.
	Package string
	// Source is an optional hint about what produced the file (e.g. the
	// go:generate caller), written as a comment.
	Source string
	// Constants are the resolved constants, in declaration order.
	Constants []gitconst.Constant
}

// failureData is passed to failure.go.tmpl.
type failureData struct {
	Package   string
	Source    string
	Lines     []string
	Directive string
}

// Render generates the formatted Go source defining f's constants.
func Render(f File) ([]byte, error) {
	if len(f.Constants) == 0 {
		return nil, fmt.Errorf("no constants to render")
	}
	for _, c := range f.Constants {
		if c.Value == "" || strings.ContainsAny(c.Value, "\r\n") {
			return nil, fmt.Errorf("constant %s has invalid value %q", c.Name, c.Value)
		}
	}

	f.Source = commentText(f.Source)
	return execute("constants.go.tmpl", f)
}

// RenderFailure generates a Go file for package pkg that fails to compile
// with the diagnostic's message.
func RenderFailure(pkg, source string, d *gitconst.Diagnostic) ([]byte, error) {
	lines := strings.Split(strings.TrimRight(d.Message, "\n"), "\n")
	for i, line := range lines {
		lines[i] = commentText(line)
	}

	return execute("failure.go.tmpl", failureData{
		Package:   pkg,
		Source:    commentText(source),
		Lines:     lines,
		Directive: d.Directive(),
	})
}

// commentText makes s safe inside a // line comment: line breaks and other
// non-printable runes become spaces.
func commentText(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return ' '
	}, s)
}

func execute(name string, data any) ([]byte, error) {
	tmpl, err := template.New(name).ParseFS(templatesFS, "templates/"+name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Return unformatted code for debugging
		return buf.Bytes(), fmt.Errorf("failed to format generated code: %w", err)
	}

	return formatted, nil
}

// WriteFile writes content to path through a temporary file in the same
// directory, so readers never observe a partially written file.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename %s to %s: %w", tmpName, path, err)
	}

	return nil
}
