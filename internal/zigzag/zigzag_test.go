// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package zigzag_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/zengkebing3630/fastpb/internal/zigzag"
)

func TestZigzag32(t *testing.T) {
	t.Parallel()

	tests := []int32{
		0, 1, 2, 3, 4, 5, 6, 7,
		8, 9, 10, 11, 12, 13, 14, 15,
		0x7fffffff,
		-0x80000000,
		-1, -2, -3, -4, -5, -6, -7, -8,
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%#x", tt), func(t *testing.T) {
			t.Parallel()

			want := int32(protowire.DecodeZigZag(uint64(uint32(tt))))
			assert.Equal(t, want, zigzag.Decode32(uint32(tt)))
			assert.Equal(t, uint32(protowire.EncodeZigZag(int64(tt))), zigzag.Encode32(tt))
		})
	}
}

func TestZigzag64(t *testing.T) {
	t.Parallel()

	tests := []int64{
		0, 1, 2, 3, 4, 5, 6, 7,
		8, 9, 10, 11, 12, 13, 14, 15,
		0x7fffffffffffffff,
		-0x8000000000000000,
		-1, -2, -3, -4, -5, -6, -7, -8,
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%#x", tt), func(t *testing.T) {
			t.Parallel()

			want := protowire.DecodeZigZag(uint64(tt))
			assert.Equal(t, want, zigzag.Decode64(uint64(tt)))
			assert.Equal(t, protowire.EncodeZigZag(tt), zigzag.Encode64(tt))
		})
	}
}
