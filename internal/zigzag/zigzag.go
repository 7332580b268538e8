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

// Package zigzag implements the ZigZag integer encoding used by the
// sint32 and sint64 wire types, mapping small-magnitude signed values to
// small-magnitude unsigned ones so they varint-encode compactly.
package zigzag

// Decode32 decodes a zigzag-encoded value read off the wire as the low 32
// bits of a varint.
func Decode32(raw uint32) int32 {
	return int32(raw>>1) ^ -int32(raw&1)
}

// Decode64 decodes a zigzag-encoded 64-bit value read off the wire.
func Decode64(raw uint64) int64 {
	return int64(raw>>1) ^ -int64(raw&1)
}

// Encode32 is the inverse of [Decode32].
func Encode32(n int32) uint32 {
	return (uint32(n) << 1) ^ uint32(n>>31)
}

// Encode64 is the inverse of [Decode64].
func Encode64(n int64) uint64 {
	return (uint64(n) << 1) ^ uint64(n>>63)
}
