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

package mcputil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if len(result.Content) == 0 {
		t.Fatal("Expected Content to have at least one element")
	}
	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatal("Expected Content[0] to be *TextContent")
	}
	return textContent.Text
}

func TestErrorResult(t *testing.T) {
	result := ErrorResult("Test error message")

	if !result.IsError {
		t.Error("Expected IsError to be true")
	}
	if got := resultText(t, result); got != "Test error message" {
		t.Errorf("Expected message 'Test error message', got '%s'", got)
	}
}

func TestFailureResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "diagnostic",
			err:  gitconst.Report(gitconst.KindProcess, "git failed with status 128"),
			want: "Build failed (process): git failed with status 128",
		},
		{
			name: "wrapped diagnostic",
			err:  fmt.Errorf("resolving: %w", gitconst.Report(gitconst.KindSpawn, "git execution error: boom")),
			want: "Build failed (spawn): git execution error: boom",
		},
		{
			name: "plain error",
			err:  errors.New("package: required"),
			want: "Build failed: package: required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FailureResult("Build failed", tt.err)
			if !result.IsError {
				t.Error("Expected IsError to be true")
			}
			if got := resultText(t, result); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuccessResultWithArtifact(t *testing.T) {
	artifact := map[string]string{"name": "version"}

	result, returned := SuccessResultWithArtifact("Build succeeded", artifact)

	if result.IsError {
		t.Error("Expected IsError to be false")
	}
	if got := resultText(t, result); got != "Build succeeded" {
		t.Errorf("Expected message 'Build succeeded', got '%s'", got)
	}
	if returned.(map[string]string)["name"] != "version" {
		t.Errorf("Expected artifact to be passed through, got %v", returned)
	}
}
