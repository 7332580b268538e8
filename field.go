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

import "math"

// FieldDecoder is the capability a [Message]'s DecodeField method is handed
// for a single field occurrence. It is sealed: the only implementations are
// the concrete types in this package, chosen by the field's wire format on
// the tag the driver just read.
//
// Callers obtain typed values out of a FieldDecoder through the free
// functions in field_numeric.go, field_length_delimited.go and
// field_group.go (DecodeSingularScalar, DecodeString, DecodeSingularGroup,
// and so on), not through methods on the interface itself — Go methods
// cannot be generic, so the decode functions type-assert internally and
// decline when the concrete type or wire format does not match what the
// caller asked for.
type FieldDecoder interface {
	// FieldNumber is the field number carried by this occurrence's tag.
	FieldNumber() int32
	// WireFormat is the wire format carried by this occurrence's tag.
	WireFormat() WireFormat

	isConsumed() bool
	markConsumed()
	// unknownBytes returns the bytes to preserve for this field when no
	// decode function claims it, or when one partially rejects it.
	unknownBytes() ([]byte, error)
}

// Kind identifies the Go-level type of a scalar protobuf value, used by
// [Value] to carry map keys and values of statically unknown type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
)

// Value is a boxed protobuf scalar, string, bytes payload, or embedded
// message payload. It exists because map entries carry a key and a value of
// a kind fixed at the map's declaration but not at compile time of this
// package, so they cannot be threaded through the generic scalar decoders
// the way singular and repeated fields are.
//
// A length-delimited slot (string, bytes, or an embedded message) is always
// boxed as KindBytes, since the wire format cannot distinguish them without
// the map's declared value type; a slot boxed from a message-valued map
// entry additionally carries the owning [Decoder], recoverable with
// DecodeMessage.
type Value struct {
	kind Kind
	bits uint64
	str  string
	dec  *Decoder
}

// Kind reports v's type.
func (v Value) Kind() Kind { return v.kind }

func boolValue(b bool) Value {
	var bits uint64
	if b {
		bits = 1
	}
	return Value{kind: KindBool, bits: bits}
}

func int32Value(n int32) Value   { return Value{kind: KindInt32, bits: uint64(uint32(n))} }
func int64Value(n int64) Value   { return Value{kind: KindInt64, bits: uint64(n)} }
func uint32Value(n uint32) Value { return Value{kind: KindUint32, bits: uint64(n)} }
func uint64Value(n uint64) Value { return Value{kind: KindUint64, bits: n} }

func float32Value(f float32) Value {
	return Value{kind: KindFloat32, bits: uint64(math.Float32bits(f))}
}
func float64Value(f float64) Value {
	return Value{kind: KindFloat64, bits: math.Float64bits(f)}
}

func stringValue(s string) Value { return Value{kind: KindString, str: s} }
func bytesValue(b []byte) Value  { return Value{kind: KindBytes, str: string(b)} }

// lengthDelimitedValue boxes a length-delimited map slot's raw payload,
// along with the [Decoder] that decoded it, so a caller whose map value type
// is an embedded message can recover it with DecodeMessage while callers
// whose value type is a string or bytes field can still use String/Bytes.
func lengthDelimitedValue(payload []byte, dec *Decoder) Value {
	return Value{kind: KindBytes, str: string(payload), dec: dec}
}

// Bool returns v's value as a bool. It panics if v.Kind() != KindBool.
func (v Value) Bool() bool {
	v.mustBe(KindBool)
	return v.bits != 0
}

// Int32 returns v's value as an int32. It panics if v.Kind() != KindInt32.
func (v Value) Int32() int32 {
	v.mustBe(KindInt32)
	return int32(uint32(v.bits))
}

// Int64 returns v's value as an int64. It panics if v.Kind() != KindInt64.
func (v Value) Int64() int64 {
	v.mustBe(KindInt64)
	return int64(v.bits)
}

// Uint32 returns v's value as a uint32. It panics if v.Kind() != KindUint32.
func (v Value) Uint32() uint32 {
	v.mustBe(KindUint32)
	return uint32(v.bits)
}

// Uint64 returns v's value as a uint64. It panics if v.Kind() != KindUint64.
func (v Value) Uint64() uint64 {
	v.mustBe(KindUint64)
	return v.bits
}

// Float32 returns v's value as a float32. It panics if v.Kind() != KindFloat32.
func (v Value) Float32() float32 {
	v.mustBe(KindFloat32)
	return math.Float32frombits(uint32(v.bits))
}

// Float64 returns v's value as a float64. It panics if v.Kind() != KindFloat64.
func (v Value) Float64() float64 {
	v.mustBe(KindFloat64)
	return math.Float64frombits(v.bits)
}

// String returns v's value as a string. It panics if v.Kind() != KindString.
func (v Value) String() string {
	v.mustBe(KindString)
	return v.str
}

// Bytes returns v's value as a []byte. It panics if v.Kind() != KindBytes.
func (v Value) Bytes() []byte {
	v.mustBe(KindBytes)
	return []byte(v.str)
}

// DecodeMessage decodes v's raw length-delimited payload into dst, sharing
// the nesting-depth guard and extension table of the [Decoder] that decoded
// v, the same way [DecodeSingularMessage] does for an ordinary message
// field. It panics if v was not boxed from a length-delimited map slot, i.e.
// v.Kind() != KindBytes or v did not come from a map value.
func (v Value) DecodeMessage(dst Message) error {
	v.mustBe(KindBytes)
	if v.dec == nil {
		panic("fastpb: Value was not produced from a map's embedded-message slot")
	}
	return v.dec.decodeEmbedded([]byte(v.str), dst)
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic("fastpb: Value holds a different kind than requested")
	}
}
