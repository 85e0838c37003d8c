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

import (
	"fmt"
	"strconv"
)

// Kind classifies why a constant could not be produced.
type Kind string

const (
	// KindSpawn means git could not be started at all.
	KindSpawn Kind = "spawn"
	// KindProcess means git ran and exited with a non-zero status.
	KindProcess Kind = "process"
	// KindDecode means git's output is not valid UTF-8.
	KindDecode Kind = "decode"
	// KindOutput means git succeeded but its output cannot be a constant
	// (empty or spanning several lines).
	KindOutput Kind = "output"
	// KindRevision means the revision token would be read by git as an
	// option rather than a revision.
	KindRevision Kind = "revision"
)

// Diagnostic is a terminal failure for the package requesting a constant.
type Diagnostic struct {
	Kind    Kind
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Report builds a Diagnostic of the given kind with a formatted message.
func Report(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d *Diagnostic) Error() string {
	return d.Message
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Directive returns a Go declaration that fails to type-check and carries the
// diagnostic message as a string literal. Placed in a generated file, it
// aborts compilation of that package only:
//
//	const _ int = "git failed with status 128:\n fatal: ..."
//
// The message is quoted with strconv.Quote, so quotes, backslashes and
// newlines in git's stderr cannot break out of the literal.
func (d *Diagnostic) Directive() string {
	return "const _ int = " + strconv.Quote("go-gen-gitconst: "+d.Message)
}
