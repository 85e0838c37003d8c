//go:build unit

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

package codegen

import (
	"go/ast"
	"go/constant"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
)

// typeCheck parses and type-checks a single generated file.
func typeCheck(t *testing.T, src []byte) (*types.Package, error) {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, DefaultFileName, src, parser.ParseComments)
	require.NoError(t, err, "generated code must parse:\n%s", src)
	require.True(t, ast.IsGenerated(f), "generated code must carry the generated-code header")

	conf := types.Config{Importer: importer.Default()}
	return conf.Check(f.Name.Name, fset, []*ast.File{f}, nil)
}

func TestRender(t *testing.T) {
	src, err := Render(File{
		Package: "version",
		Source:  "version.go:12",
		Constants: []gitconst.Constant{
			{Name: "Commit", Kind: gitconst.ConstantHash, Revision: "HEAD", Value: "abc1234def5678901234567890abcdef12345678"},
			{Name: "ShortCommit", Kind: gitconst.ConstantShortHash, Revision: "HEAD", Value: "abc1234"},
			{Name: "mainCommit", Kind: gitconst.ConstantHash, Revision: "main", Value: "abc1234def5678901234567890abcdef12345678"},
		},
	})
	require.NoError(t, err)

	text := string(src)
	assert.True(t, strings.HasPrefix(text, "// Code generated by go-gen-gitconst. DO NOT EDIT.\n"))
	assert.Contains(t, text, "// Source: version.go:12")
	assert.Contains(t, text, "package version")
	assert.Contains(t, text, "// Commit is the full hash of HEAD.")
	assert.Contains(t, text, "// ShortCommit is the short hash of HEAD.")
	assert.Contains(t, text, "// mainCommit is the full hash of main.")

	pkg, err := typeCheck(t, src)
	require.NoError(t, err)

	want := map[string]string{
		"Commit":      "abc1234def5678901234567890abcdef12345678",
		"ShortCommit": "abc1234",
		"mainCommit":  "abc1234def5678901234567890abcdef12345678",
	}
	for name, value := range want {
		obj, ok := pkg.Scope().Lookup(name).(*types.Const)
		require.True(t, ok, "%s must be a constant", name)
		assert.Equal(t, value, constant.StringVal(obj.Val()))
	}
}

func TestRender_IsFormatted(t *testing.T) {
	src, err := Render(File{
		Package:   "p",
		Constants: []gitconst.Constant{{Name: "A", Kind: gitconst.ConstantHash, Value: "x"}},
	})
	require.NoError(t, err)

	assert.NotContains(t, string(src), "// Source:")
	assert.Equal(t, "// Code generated by go-gen-gitconst. DO NOT EDIT.\n\npackage p\n\nconst (\n\t// A is the full hash of HEAD.\n\tA = \"x\"\n)\n", string(src))
}

func TestRender_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		constants []gitconst.Constant
	}{
		{name: "no constants"},
		{name: "empty value", constants: []gitconst.Constant{{Name: "A"}}},
		{name: "newline", constants: []gitconst.Constant{{Name: "A", Value: "a\nb"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(File{Package: "p", Constants: tt.constants})
			assert.Error(t, err)
		})
	}
}

func TestRenderFailure(t *testing.T) {
	d := gitconst.Report(gitconst.KindProcess,
		"git failed with status 128:\n fatal: ambiguous argument \"nope\": unknown revision\n")

	src, err := RenderFailure("version", "version.go:3", d)
	require.NoError(t, err)

	text := string(src)
	assert.Contains(t, text, "package version")
	assert.Contains(t, text, "//\tgit failed with status 128:")
	assert.Contains(t, text, `fatal: ambiguous argument "nope"`)

	_, err = typeCheck(t, src)
	require.Error(t, err, "the failure file must not compile")
	assert.Contains(t, err.Error(), "go-gen-gitconst: git failed with status 128")
}

func TestRender_SourceStaysInComment(t *testing.T) {
	for _, source := range []string{
		"mcp build x\nconst Evil = 1\n//",
		"mcp build x\n//go:build ignore\n",
		"mcp build x\r\npackage evil",
	} {
		src, err := Render(File{
			Package:   "p",
			Source:    source,
			Constants: []gitconst.Constant{{Name: "A", Kind: gitconst.ConstantHash, Value: "x"}},
		})
		require.NoError(t, err, "source %q", source)

		text := string(src)
		assert.Equal(t, 1, strings.Count(text, "// Source: "), "source %q must stay on one comment line", source)
		for _, line := range strings.Split(text, "\n") {
			assert.False(t, strings.HasPrefix(line, "//go:build"), "source %q must not add a build constraint", source)
		}

		pkg, err := typeCheck(t, src)
		require.NoError(t, err)
		assert.Equal(t, "p", pkg.Name())
		assert.Nil(t, pkg.Scope().Lookup("Evil"))
	}
}

func TestRenderFailure_ControlCharacters(t *testing.T) {
	d := gitconst.Report(gitconst.KindProcess,
		"git failed with status 1:\n fatal: bad\x00byte \x1b[31mred\x1b[0m\r\n trailer\u2028end")

	src, err := RenderFailure("version", "version.go:3\nconst Evil = 1", d)
	require.NoError(t, err)

	text := string(src)
	assert.NotContains(t, text, "\x00")
	assert.NotContains(t, text, "\x1b")
	assert.NotContains(t, text, "\r")
	assert.Contains(t, text, "fatal: bad byte")

	pkg, err := typeCheck(t, src)
	require.Error(t, err, "the failure file must not compile")
	assert.Contains(t, err.Error(), "go-gen-gitconst: git failed with status 1")
	assert.Nil(t, pkg.Scope().Lookup("Evil"))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", DefaultFileName)

	require.NoError(t, WriteFile(path, []byte("package a\n")))
	require.NoError(t, WriteFile(path, []byte("package b\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package b\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestTemplatesFS(t *testing.T) {
	for _, name := range []string{"constants.go.tmpl", "failure.go.tmpl"} {
		content, err := templatesFS.ReadFile("templates/" + name)
		require.NoError(t, err)
		assert.NotEmpty(t, content)
	}
}
