// Copyright 2020-2025 Buf Technologies, Inc.
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

package fastpb

// WireFormat is one of the six wire types a [FieldTag] can carry. It
// occupies the low three bits of every tag varint.
type WireFormat uint8

const (
	WireVarint          WireFormat = 0
	WireFixed64         WireFormat = 1
	WireLengthDelimited WireFormat = 2
	WireStartGroup      WireFormat = 3
	WireEndGroup        WireFormat = 4
	WireFixed32         WireFormat = 5
)

// valid reports whether w is one of the six defined wire formats. Tag bits
// 6 and 7 are reserved and never valid.
func (w WireFormat) valid() bool {
	return w <= WireFixed32
}

func (w WireFormat) String() string {
	switch w {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireLengthDelimited:
		return "length-delimited"
	case WireStartGroup:
		return "start-group"
	case WireEndGroup:
		return "end-group"
	case WireFixed32:
		return "fixed32"
	default:
		return "reserved"
	}
}

// FieldTag is the decoded form of the varint that precedes every field on
// the wire: a field number and the wire format of its value.
type FieldTag struct {
	Number int32
	Wire   WireFormat
}

func encodeTag(number int32, wire WireFormat) uint64 {
	return uint64(number)<<3 | uint64(wire)
}

// appendVarint appends the base-128 little-endian encoding of v to buf.
//
// This is the one encoder fastpb carries: it exists solely to reconstruct
// the bytes of an unknown field when a packed-enum decode rejects some of
// its values (see the override mechanism in field_length_delimited.go). It
// is not a general-purpose protobuf encoder.
func appendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// buildOverrideField re-encodes a field some or all of whose packed values
// were rejected by the caller's reader (a closed enum's unknown values) as
// tag + fresh length prefix + payload, where payload holds only the
// rejected values, so that replaying it through a decoder with a fuller
// schema reproduces exactly the rejected values.
func buildOverrideField(tag FieldTag, payload []byte) []byte {
	out := appendVarint(nil, encodeTag(tag.Number, WireLengthDelimited))
	out = appendVarint(out, uint64(len(payload)))
	return append(out, payload...)
}
