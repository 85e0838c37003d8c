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

// Package mcputil builds the tool results returned by go-gen-gitconst in MCP mode.
package mcputil

import (
	"errors"
	"fmt"

	"github.com/alexandremahdhaoui/gitconst/pkg/gitconst"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrorResult creates a standardized MCP error result.
//
// Example usage:
//
//	return mcputil.ErrorResult(fmt.Sprintf("Build failed: %v", err)), nil, nil
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// FailureResult reports err as a tool error. Diagnostics are prefixed with
// their kind so clients can tell a missing git binary from a bad revision.
func FailureResult(prefix string, err error) *mcp.CallToolResult {
	var d *gitconst.Diagnostic
	if errors.As(err, &d) {
		return ErrorResult(fmt.Sprintf("%s (%s): %s", prefix, d.Kind, d.Message))
	}
	return ErrorResult(fmt.Sprintf("%s: %v", prefix, err))
}

// SuccessResult creates a standardized MCP success result.
func SuccessResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
	}
}

// SuccessResultWithArtifact creates a success result that returns an artifact.
//
// Example usage:
//
//	result, artifact := mcputil.SuccessResultWithArtifact("Generated", artifact)
//	return result, artifact, nil
func SuccessResultWithArtifact(message string, artifact any) (*mcp.CallToolResult, any) {
	return SuccessResult(message), artifact
}
