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

import (
	"math"
	"reflect"

	"github.com/zengkebing3630/fastpb/internal/zigzag"
)

// Numeric is the set of Go types (or types with one of these underlying
// types, such as a generated enum) that a varint, fixed32 or fixed64 field
// can decode into.
type Numeric interface {
	~int32 | ~int64 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// NumericFieldDecoder is the [FieldDecoder] handed to a [Message] for a
// field occurrence whose tag carries wire type varint, fixed32 or fixed64.
// Its value has already been read off the shared [Scanner] by the time the
// message sees it; [Scanner.GetRawField] still recovers the exact original
// bytes by rewinding, regardless of what this decoder did with the value.
type NumericFieldDecoder struct {
	tag      FieldTag
	scanner  *Scanner
	raw      uint64
	consumed bool
}

func (d *NumericFieldDecoder) FieldNumber() int32     { return d.tag.Number }
func (d *NumericFieldDecoder) WireFormat() WireFormat { return d.tag.Wire }
func (d *NumericFieldDecoder) isConsumed() bool       { return d.consumed }
func (d *NumericFieldDecoder) markConsumed()          { d.consumed = true }

func (d *NumericFieldDecoder) unknownBytes() ([]byte, error) {
	return d.scanner.GetRawField()
}

func fromBits[T Numeric](bits uint64, zz bool) T {
	var zero T
	// Switch on the underlying kind so that named types (a generated enum,
	// say) decode the same way as the predeclared type beneath them.
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32:
		return T(math.Float32frombits(uint32(bits)))
	case reflect.Float64:
		return T(math.Float64frombits(bits))
	case reflect.Int32:
		if zz {
			return T(zigzag.Decode32(uint32(bits)))
		}
		return T(int32(uint32(bits)))
	case reflect.Int64:
		if zz {
			return T(zigzag.Decode64(bits))
		}
		return T(int64(bits))
	default:
		return T(bits)
	}
}

// DecodeSingularScalar decodes a non-repeated varint, fixed32 or fixed64
// field into *dst. wire is the wire format the field's declared type
// requires (WireVarint for int32/int64/uint32/uint64/bool/enum and their
// zigzag-encoded sint32/sint64 counterparts, WireFixed32 for
// fixed32/sfixed32/float, WireFixed64 for fixed64/sfixed64/double); zigzag
// selects ZigZag decoding for sint32/sint64. It reports consumed == false,
// with a nil error, when d is not a matching [NumericFieldDecoder].
func DecodeSingularScalar[T Numeric](d FieldDecoder, wire WireFormat, zigzag bool, dst *T) (consumed bool, err error) {
	nd, ok := d.(*NumericFieldDecoder)
	if !ok || nd.tag.Wire != wire {
		return false, nil
	}
	*dst = fromBits[T](nd.raw, zigzag)
	nd.markConsumed()
	return true, nil
}

// DecodeRepeatedScalar appends a single unpacked occurrence of a varint,
// fixed32 or fixed64 field to *dst. See [DecodeSingularScalar] for the
// meaning of wire and zigzag.
func DecodeRepeatedScalar[T Numeric](d FieldDecoder, wire WireFormat, zigzag bool, dst *[]T) (consumed bool, err error) {
	nd, ok := d.(*NumericFieldDecoder)
	if !ok || nd.tag.Wire != wire {
		return false, nil
	}
	*dst = append(*dst, fromBits[T](nd.raw, zigzag))
	nd.markConsumed()
	return true, nil
}

// DecodeSingularEnum decodes a non-repeated enum field, stored on the wire
// as a plain (unpacked) varint. valid reports whether a decoded value is a
// known enum member; when it is not and policy is [EnumPolicyOverride], the
// field is left unconsumed so the caller's driver preserves its exact
// original bytes as an unknown field instead of assigning it.
func DecodeSingularEnum[T ~int32](d FieldDecoder, policy EnumPolicy, valid func(T) bool, dst *T) (consumed bool, err error) {
	nd, ok := d.(*NumericFieldDecoder)
	if !ok || nd.tag.Wire != WireVarint {
		return false, nil
	}
	v := fromBits[T](nd.raw, false)
	if !valid(v) && policy == EnumPolicyOverride {
		return false, nil
	}
	*dst = v
	nd.markConsumed()
	return true, nil
}

// DecodeRepeatedEnum is [DecodeSingularEnum] for a single unpacked
// occurrence of a repeated enum field.
func DecodeRepeatedEnum[T ~int32](d FieldDecoder, policy EnumPolicy, valid func(T) bool, dst *[]T) (consumed bool, err error) {
	nd, ok := d.(*NumericFieldDecoder)
	if !ok || nd.tag.Wire != WireVarint {
		return false, nil
	}
	v := fromBits[T](nd.raw, false)
	if !valid(v) && policy == EnumPolicyOverride {
		return false, nil
	}
	*dst = append(*dst, v)
	nd.markConsumed()
	return true, nil
}

// DecodeInt32 decodes a non-repeated int32 field.
func DecodeInt32(d FieldDecoder, dst *int32) (bool, error) {
	return DecodeSingularScalar(d, WireVarint, false, dst)
}

// DecodeInt64 decodes a non-repeated int64 field.
func DecodeInt64(d FieldDecoder, dst *int64) (bool, error) {
	return DecodeSingularScalar(d, WireVarint, false, dst)
}

// DecodeUint32 decodes a non-repeated uint32 field.
func DecodeUint32(d FieldDecoder, dst *uint32) (bool, error) {
	return DecodeSingularScalar(d, WireVarint, false, dst)
}

// DecodeUint64 decodes a non-repeated uint64 field.
func DecodeUint64(d FieldDecoder, dst *uint64) (bool, error) {
	return DecodeSingularScalar(d, WireVarint, false, dst)
}

// DecodeSint32 decodes a non-repeated sint32 field, undoing its ZigZag
// encoding.
func DecodeSint32(d FieldDecoder, dst *int32) (bool, error) {
	return DecodeSingularScalar(d, WireVarint, true, dst)
}

// DecodeSint64 decodes a non-repeated sint64 field, undoing its ZigZag
// encoding.
func DecodeSint64(d FieldDecoder, dst *int64) (bool, error) {
	return DecodeSingularScalar(d, WireVarint, true, dst)
}

// DecodeFixed32 decodes a non-repeated fixed32 field.
func DecodeFixed32(d FieldDecoder, dst *uint32) (bool, error) {
	return DecodeSingularScalar(d, WireFixed32, false, dst)
}

// DecodeSfixed32 decodes a non-repeated sfixed32 field.
func DecodeSfixed32(d FieldDecoder, dst *int32) (bool, error) {
	return DecodeSingularScalar(d, WireFixed32, false, dst)
}

// DecodeFixed64 decodes a non-repeated fixed64 field.
func DecodeFixed64(d FieldDecoder, dst *uint64) (bool, error) {
	return DecodeSingularScalar(d, WireFixed64, false, dst)
}

// DecodeSfixed64 decodes a non-repeated sfixed64 field.
func DecodeSfixed64(d FieldDecoder, dst *int64) (bool, error) {
	return DecodeSingularScalar(d, WireFixed64, false, dst)
}

// DecodeFloat decodes a non-repeated float field.
func DecodeFloat(d FieldDecoder, dst *float32) (bool, error) {
	return DecodeSingularScalar(d, WireFixed32, false, dst)
}

// DecodeDouble decodes a non-repeated double field.
func DecodeDouble(d FieldDecoder, dst *float64) (bool, error) {
	return DecodeSingularScalar(d, WireFixed64, false, dst)
}

// DecodeSingularBool decodes a non-repeated bool field.
func DecodeSingularBool(d FieldDecoder, dst *bool) (consumed bool, err error) {
	nd, ok := d.(*NumericFieldDecoder)
	if !ok || nd.tag.Wire != WireVarint {
		return false, nil
	}
	*dst = nd.raw != 0
	nd.markConsumed()
	return true, nil
}

// DecodeRepeatedBool decodes a single unpacked occurrence of a repeated
// bool field.
func DecodeRepeatedBool(d FieldDecoder, dst *[]bool) (consumed bool, err error) {
	nd, ok := d.(*NumericFieldDecoder)
	if !ok || nd.tag.Wire != WireVarint {
		return false, nil
	}
	*dst = append(*dst, nd.raw != 0)
	nd.markConsumed()
	return true, nil
}
