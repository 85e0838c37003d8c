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

package gitconst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstantKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ConstantKind
		wantErr bool
	}{
		{in: "", want: ConstantHash},
		{in: "hash", want: ConstantHash},
		{in: "full", want: ConstantHash},
		{in: "HASH", want: ConstantHash},
		{in: "short-hash", want: ConstantShortHash},
		{in: "short_hash", want: ConstantShortHash},
		{in: "shorthash", want: ConstantShortHash},
		{in: " short ", want: ConstantShortHash},
		{in: "describe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConstantKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConstant_Literal(t *testing.T) {
	assert.Equal(t, `"abc1234"`, Constant{Value: "abc1234"}.Literal())
	assert.Equal(t, `"a\"b"`, Constant{Value: `a"b`}.Literal())
}

func TestConstant_Describe(t *testing.T) {
	assert.Equal(t, "full hash of HEAD", Constant{Kind: ConstantHash}.Describe())
	assert.Equal(t, "short hash of main", Constant{Kind: ConstantShortHash, Revision: "main"}.Describe())
}
