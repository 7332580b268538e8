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

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/zengkebing3630/fastpb"
)

func TestSingleVarintField(t *testing.T) {
	t.Parallel()

	m := new(testMessage)
	err := fastpb.NewDecoder().DecodeFullObject([]byte{0x08, 0x96, 0x01}, m)
	require.NoError(t, err)
	assert.EqualValues(t, 150, m.I32)
}

func TestZigZagField(t *testing.T) {
	t.Parallel()

	m := new(testMessage)
	require.NoError(t, fastpb.NewDecoder().DecodeFullObject([]byte{0x18, 0x03}, m))
	assert.EqualValues(t, -2, m.S32)

	m = new(testMessage)
	require.NoError(t, fastpb.NewDecoder().DecodeFullObject([]byte{0x18, 0x02}, m))
	assert.EqualValues(t, 1, m.S32)
}

func TestLengthDelimitedString(t *testing.T) {
	t.Parallel()

	data := []byte{0x62, 0x07, 0x74, 0x65, 0x73, 0x74, 0x69, 0x6e, 0x67}
	m := new(testMessage)
	require.NoError(t, fastpb.NewDecoder().DecodeFullObject(data, m))
	assert.Equal(t, "testing", m.Str)
}

func TestNestedMessageWithUnknown(t *testing.T) {
	t.Parallel()

	// Field 18 (a nested testMessage), carrying field 2 (I64) == 42, plus an
	// unrecognized field 100 == 7 at the outer level.
	data := []byte{0x92, 0x01, 0x02, 0x10, 0x2a, 0xa0, 0x06, 0x07}
	m := new(testMessage)
	require.NoError(t, fastpb.NewDecoder().DecodeFullObject(data, m))
	require.NotNil(t, m.Nested)
	assert.EqualValues(t, 42, m.Nested.I64)
	assert.Equal(t, []byte{0xa0, 0x06, 0x07}, m.Unknown)
}

func TestGroup(t *testing.T) {
	t.Parallel()

	data := []byte{0xab, 0x01, 0x08, 0x05, 0xac, 0x01}
	m := new(testMessage)
	require.NoError(t, fastpb.NewDecoder().DecodeFullObject(data, m))
	require.NotNil(t, m.Group)
	assert.EqualValues(t, 5, m.Group.A)
}

func TestMapBothOrderings(t *testing.T) {
	t.Parallel()

	var keyFirst []byte
	keyFirst = protowire.AppendTag(keyFirst, 20, protowire.BytesType)
	var entry []byte
	entry = protowire.AppendTag(entry, 1, protowire.VarintType)
	entry = protowire.AppendVarint(entry, 42)
	entry = protowire.AppendTag(entry, 2, protowire.BytesType)
	entry = protowire.AppendString(entry, "foo")
	keyFirst = protowire.AppendBytes(keyFirst, entry)

	var valueFirst []byte
	valueFirst = protowire.AppendTag(valueFirst, 20, protowire.BytesType)
	var entry2 []byte
	entry2 = protowire.AppendTag(entry2, 2, protowire.BytesType)
	entry2 = protowire.AppendString(entry2, "foo")
	entry2 = protowire.AppendTag(entry2, 1, protowire.VarintType)
	entry2 = protowire.AppendVarint(entry2, 42)
	valueFirst = protowire.AppendBytes(valueFirst, entry2)

	for _, data := range [][]byte{keyFirst, valueFirst} {
		m := new(testMessage)
		require.NoError(t, fastpb.NewDecoder().DecodeFullObject(data, m))
		assert.Equal(t, map[int32]string{42: "foo"}, m.Map)
	}
}

func TestTruncatedVarint(t *testing.T) {
	t.Parallel()

	m := new(testMessage)
	err := fastpb.NewDecoder().DecodeFullObject([]byte{0x08}, m)
	require.Error(t, err)
	var pe *fastpb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, fastpb.ErrTruncatedInput, pe.Code())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestMalformedTag(t *testing.T) {
	t.Parallel()

	// Low three bits 6 is an undefined wire type.
	m := new(testMessage)
	err := fastpb.NewDecoder().DecodeFullObject([]byte{0x0e}, m)
	require.Error(t, err)
	var pe *fastpb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, fastpb.ErrMalformedProtobuf, pe.Code())
}

func TestOverlongVarintFails(t *testing.T) {
	t.Parallel()

	data := append([]byte{0x08}, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x02}...)
	m := new(testMessage)
	err := fastpb.NewDecoder().DecodeFullObject(data, m)
	require.Error(t, err)
	var pe *fastpb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, fastpb.ErrMalformedProtobuf, pe.Code())
}

func TestLengthPrefixExceedsRemaining(t *testing.T) {
	t.Parallel()

	m := new(testMessage)
	err := fastpb.NewDecoder().DecodeFullObject([]byte{0x62, 0x05, 'h', 'i'}, m)
	require.Error(t, err)
	var pe *fastpb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, fastpb.ErrMalformedProtobuf, pe.Code())
}

func TestMaxDepthExceeded(t *testing.T) {
	t.Parallel()

	var data []byte
	for i := 0; i < 5; i++ {
		var inner []byte
		inner = protowire.AppendTag(inner, 1, protowire.VarintType)
		inner = protowire.AppendVarint(inner, 1)
		var wrapped []byte
		wrapped = protowire.AppendTag(wrapped, 18, protowire.BytesType)
		wrapped = protowire.AppendBytes(wrapped, append(inner, data...))
		data = wrapped
	}

	m := new(testMessage)
	err := fastpb.NewDecoder(fastpb.WithMaxDepth(2)).DecodeFullObject(data, m)
	require.Error(t, err)
	var pe *fastpb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, fastpb.ErrMalformedProtobuf, pe.Code())
}
