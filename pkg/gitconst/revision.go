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

package gitconst

import "strings"

// DefaultRevision is used when no revision is given.
const DefaultRevision = "HEAD"

// NormalizeRevision trims the revision token and falls back to DefaultRevision
// when nothing is left.
func NormalizeRevision(revision string) string {
	revision = strings.TrimSpace(revision)
	if revision == "" {
		return DefaultRevision
	}
	return revision
}

// checkRevision rejects normalized revisions that git rev-parse would take
// as an option, such as --git-dir or --all.
func checkRevision(revision string) error {
	if strings.HasPrefix(revision, "-") {
		return Report(KindRevision, "invalid revision %q: revisions must not start with '-'", revision)
	}
	return nil
}
