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

// Package gitconst resolves git revisions to commit hashes for embedding into
// generated Go source as string constants.
//
// Every lookup is a single linear pipeline: run git, decode and trim its
// output, and either return the value or a *Diagnostic describing why the
// constant cannot be produced. A diagnostic is meant to stop the build of the
// package that asked for the constant; there is no fallback value.
//
// Example usage:
//
//	commit, err := gitconst.Hash(ctx, "")      // same as "HEAD"
//	short, err := gitconst.ShortHash(ctx, "v1") // e.g. "abc1234"
//
// Callers that need a different git binary or working directory build their
// own Resolver:
//
//	r := gitconst.NewResolver(gitconst.NewInvoker(gitconst.WithDir("./repo")))
//	commit, err := r.Hash(ctx, "main")
package gitconst
