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

package fastpb_test

import "github.com/zengkebing3630/fastpb"

// testColor is a hand-written stand-in for a generated closed enum type.
type testColor int32

const (
	colorUnspecified testColor = 0
	colorRed         testColor = 1
	colorGreen       testColor = 2
	colorBlue        testColor = 3
)

func testColorValid(c testColor) bool {
	switch c {
	case colorUnspecified, colorRed, colorGreen, colorBlue:
		return true
	default:
		return false
	}
}

// testGroup stands in for a generated legacy proto2 group.
type testGroup struct {
	A       int32
	Unknown []byte
}

func (g *testGroup) DecodeField(d fastpb.FieldDecoder) (bool, error) {
	switch d.FieldNumber() {
	case 1:
		return fastpb.DecodeInt32(d, &g.A)
	default:
		return false, nil
	}
}

func (g *testGroup) SetUnknownFields(raw []byte) { g.Unknown = append(g.Unknown, raw...) }

// testMessage is a hand-written stand-in for a generated message that
// exercises every field kind the decoder supports.
type testMessage struct {
	I32        int32
	I64        int64
	S32        int32
	S64        int64
	U32        uint32
	U64        uint64
	F32        float32
	F64        float64
	Fixed32    uint32
	Fixed64    uint64
	Flag       bool
	Str        string
	Bytes      []byte
	Repeated   []int32
	Packed     []int32
	Color      testColor
	Colors     []testColor
	Nested     *testMessage
	RepNested  []*testMessage
	Map        map[int32]string
	MapMsg     map[int32]*testMessage
	Group      *testGroup
	RepGroup   []*testGroup
	EnumPolicy fastpb.EnumPolicy
	Unknown    []byte
}

func (m *testMessage) DecodeField(d fastpb.FieldDecoder) (bool, error) {
	switch d.FieldNumber() {
	case 1:
		return fastpb.DecodeInt32(d, &m.I32)
	case 2:
		return fastpb.DecodeInt64(d, &m.I64)
	case 3:
		return fastpb.DecodeSint32(d, &m.S32)
	case 4:
		return fastpb.DecodeSint64(d, &m.S64)
	case 5:
		return fastpb.DecodeUint32(d, &m.U32)
	case 6:
		return fastpb.DecodeUint64(d, &m.U64)
	case 7:
		return fastpb.DecodeFloat(d, &m.F32)
	case 8:
		return fastpb.DecodeDouble(d, &m.F64)
	case 9:
		return fastpb.DecodeFixed32(d, &m.Fixed32)
	case 10:
		return fastpb.DecodeFixed64(d, &m.Fixed64)
	case 11:
		return fastpb.DecodeSingularBool(d, &m.Flag)
	case 12:
		return fastpb.DecodeString(d, false, &m.Str)
	case 13:
		return fastpb.DecodeBytes(d, &m.Bytes)
	case 14:
		return fastpb.DecodeRepeatedScalar(d, fastpb.WireVarint, false, &m.Repeated)
	case 15:
		return fastpb.DecodePackedScalar(d, fastpb.WireVarint, false, &m.Packed)
	case 16:
		return fastpb.DecodeSingularEnum(d, m.policy(), testColorValid, &m.Color)
	case 17:
		return fastpb.DecodePackedEnum(d, m.policy(), testColorValid, &m.Colors)
	case 18:
		if m.Nested == nil {
			m.Nested = new(testMessage)
		}
		return fastpb.DecodeSingularMessage(d, m.Nested)
	case 19:
		return fastpb.DecodeRepeatedMessage(d, &m.RepNested, func() *testMessage { return new(testMessage) })
	case 20:
		if m.Map == nil {
			m.Map = make(map[int32]string)
		}
		return fastpb.DecodeMap(d, m.Map,
			func(v fastpb.Value) int32 { return int32(v.Uint64()) },
			func(v fastpb.Value) string { return string(v.Bytes()) })
	case 21:
		if m.Group == nil {
			m.Group = new(testGroup)
		}
		return fastpb.DecodeSingularGroup(d, m.Group)
	case 22:
		return fastpb.DecodeRepeatedGroup(d, &m.RepGroup, func() *testGroup { return new(testGroup) })
	case 23:
		if m.MapMsg == nil {
			m.MapMsg = make(map[int32]*testMessage)
		}
		var decodeErr error
		consumed, err := fastpb.DecodeMap(d, m.MapMsg,
			func(v fastpb.Value) int32 { return int32(v.Uint64()) },
			func(v fastpb.Value) *testMessage {
				elem := new(testMessage)
				if e := v.DecodeMessage(elem); e != nil {
					decodeErr = e
				}
				return elem
			})
		if err == nil {
			err = decodeErr
		}
		return consumed, err
	default:
		return false, nil
	}
}

func (m *testMessage) SetUnknownFields(raw []byte) { m.Unknown = append(m.Unknown, raw...) }

// policy returns the configured [fastpb.EnumPolicy], defaulting to
// EnumPolicyOverride — its zero value — when the test hasn't set one.
func (m *testMessage) policy() fastpb.EnumPolicy {
	return m.EnumPolicy
}
