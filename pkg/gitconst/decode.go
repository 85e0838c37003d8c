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
	"strings"
	"unicode/utf8"
)

const invalidUTF8Placeholder = "<invalid utf-8>"

// Decode validates git output as UTF-8 and trims surrounding whitespace,
// including the trailing newline git always prints.
func Decode(output []byte) (string, error) {
	if offset := invalidOffset(output); offset >= 0 {
		return "", Report(KindDecode,
			"git output is not valid utf-8: invalid byte 0x%02x at offset %d",
			output[offset], offset)
	}

	return strings.TrimSpace(string(output)), nil
}

// decodeLossy is Decode for diagnostics: it never fails and substitutes a
// placeholder when the bytes are not text.
func decodeLossy(output []byte) string {
	if !utf8.Valid(output) {
		return invalidUTF8Placeholder
	}
	return string(output)
}

// invalidOffset returns the offset of the first byte starting an invalid
// UTF-8 sequence, or -1.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
