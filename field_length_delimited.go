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

import "unicode/utf8"

// LengthDelimitedFieldDecoder is the [FieldDecoder] handed to a [Message]
// for a field occurrence whose tag carries wire type length-delimited:
// string, bytes, an embedded message, a map entry, or a packed repeated
// scalar.
type LengthDelimitedFieldDecoder struct {
	tag      FieldTag
	scanner  *Scanner
	dec      *Decoder
	payload  []byte
	consumed bool

	// override, when non-nil, replaces payload as the bytes preserved for
	// this field if it goes unconsumed. DecodePackedEnum sets it when one
	// or more of a packed field's values were rejected, so that the
	// accepted values still land in the caller's slice while the rejected
	// ones round-trip losslessly.
	override []byte
}

func (d *LengthDelimitedFieldDecoder) FieldNumber() int32     { return d.tag.Number }
func (d *LengthDelimitedFieldDecoder) WireFormat() WireFormat { return d.tag.Wire }
func (d *LengthDelimitedFieldDecoder) isConsumed() bool       { return d.consumed }
func (d *LengthDelimitedFieldDecoder) markConsumed()          { d.consumed = true }

func (d *LengthDelimitedFieldDecoder) unknownBytes() ([]byte, error) {
	if d.override != nil {
		return d.override, nil
	}
	return d.scanner.GetRawField()
}

// DecodeString decodes a non-repeated string field into *dst. When
// validateUTF8 is true, or the [Decoder] was built with
// [WithValidateUTF8](true), a payload that is not valid UTF-8 fails with
// [ErrMalformedProtobuf] rather than being silently accepted, matching
// proto3's strict string semantics; most callers leave it false to accept
// any bytes, matching proto2 and permissive proto3 runtimes.
func DecodeString(d FieldDecoder, validateUTF8 bool, dst *string) (consumed bool, err error) {
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}
	if (validateUTF8 || ld.dec.cfg.validateUTF8) && !utf8.Valid(ld.payload) {
		return false, ld.scanner.errorf(ErrMalformedProtobuf, "string field is not valid UTF-8")
	}
	*dst = string(ld.payload)
	ld.markConsumed()
	return true, nil
}

// DecodeRepeatedString decodes a single occurrence of a repeated string
// field, appending it to *dst.
func DecodeRepeatedString(d FieldDecoder, validateUTF8 bool, dst *[]string) (consumed bool, err error) {
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}
	if (validateUTF8 || ld.dec.cfg.validateUTF8) && !utf8.Valid(ld.payload) {
		return false, ld.scanner.errorf(ErrMalformedProtobuf, "string field is not valid UTF-8")
	}
	*dst = append(*dst, string(ld.payload))
	ld.markConsumed()
	return true, nil
}

// DecodeBytes decodes a non-repeated bytes field into *dst. The returned
// slice is a fresh copy; it does not alias the buffer the enclosing
// [Decoder] was constructed over.
func DecodeBytes(d FieldDecoder, dst *[]byte) (consumed bool, err error) {
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}
	*dst = append([]byte(nil), ld.payload...)
	ld.markConsumed()
	return true, nil
}

// DecodeRepeatedBytes decodes a single occurrence of a repeated bytes
// field, appending a copy of it to *dst.
func DecodeRepeatedBytes(d FieldDecoder, dst *[][]byte) (consumed bool, err error) {
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}
	*dst = append(*dst, append([]byte(nil), ld.payload...))
	ld.markConsumed()
	return true, nil
}

// DecodeSingularMessage decodes a non-repeated embedded message field by
// running dst.DecodeField over the field's payload as an independent
// sub-message: dst's unknown fields are tracked separately from the
// parent, while its nesting depth counts against the same decoder-wide
// limit.
func DecodeSingularMessage(d FieldDecoder, dst Message) (consumed bool, err error) {
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}
	if err := ld.dec.decodeEmbedded(ld.payload, dst); err != nil {
		return false, err
	}
	ld.markConsumed()
	return true, nil
}

// DecodeRepeatedMessage decodes a single occurrence of a repeated embedded
// message field. new_ constructs a fresh element to append to *dst and
// decode into.
func DecodeRepeatedMessage[T Message](d FieldDecoder, dst *[]T, new_ func() T) (consumed bool, err error) {
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}
	elem := new_()
	if err := ld.dec.decodeEmbedded(ld.payload, elem); err != nil {
		return false, err
	}
	*dst = append(*dst, elem)
	ld.markConsumed()
	return true, nil
}

// DecodePackedScalar decodes a packed repeated varint, fixed32 or fixed64
// field, appending every value it holds to *dst. It also accepts a single
// unpacked occurrence transparently, since proto3 decoders must accept
// either encoding for a packed-eligible field regardless of how the sender
// packed it.
func DecodePackedScalar[T Numeric](d FieldDecoder, wire WireFormat, zigzag bool, dst *[]T) (consumed bool, err error) {
	if nd, ok := d.(*NumericFieldDecoder); ok {
		return DecodeRepeatedScalar(nd, wire, zigzag, dst)
	}
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}
	s := newScanner(ld.payload)
	width := scalarWidth(wire)
	for s.Len() > 0 {
		v, err := readScalarElement(s, wire, width)
		if err != nil {
			return false, err
		}
		*dst = append(*dst, fromBits[T](v, zigzag))
	}
	ld.markConsumed()
	return true, nil
}

// DecodePackedEnum decodes a packed repeated enum field, or a single
// unpacked occurrence of one. Values valid rejects are, under
// [EnumPolicyOverride], excluded from *dst and re-encoded into this
// occurrence's unknown-field bytes instead of being dropped; the values
// valid accepts still land in *dst.
func DecodePackedEnum[T ~int32](d FieldDecoder, policy EnumPolicy, valid func(T) bool, dst *[]T) (consumed bool, err error) {
	if nd, ok := d.(*NumericFieldDecoder); ok {
		return DecodeRepeatedEnum(nd, policy, valid, dst)
	}
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}

	s := newScanner(ld.payload)
	var rejected []byte
	for s.Len() > 0 {
		raw, ok, err := s.GetRawVarint()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, s.errorf(ErrTruncatedInput, "truncated packed enum")
		}
		v := fromBits[T](raw, false)
		if !valid(v) && policy == EnumPolicyOverride {
			rejected = appendVarint(rejected, raw)
			continue
		}
		*dst = append(*dst, v)
	}

	if len(rejected) > 0 {
		ld.override = buildOverrideField(ld.tag, rejected)
		return false, nil
	}
	ld.markConsumed()
	return true, nil
}

// DecodeMap decodes a single map-entry occurrence, which the wire format
// represents as a length-delimited submessage with field 1 holding the key
// and field 2 holding the value. A map entry whose key or value field is
// absent fails with [ErrMalformedProtobuf] rather than substituting that
// type's zero value.
//
// decodeKey and decodeValue receive the slot's value boxed by its wire
// format, not its declared protobuf type: a varint slot is always
// KindUint64 (read it with Uint64 and convert or reinterpret, e.g. int32()
// for an int32 key, != 0 for a bool), a fixed32 slot is KindUint32 (use
// Float32frombits(Uint32()) for a float value), a fixed64 slot is
// KindUint64 (use Float64frombits(Uint64()) for a double value), and a
// length-delimited slot is always KindBytes — read it with String or Bytes
// for a string or bytes value, or with DecodeMessage for an embedded
// message value, which shares the enclosing [Decoder]'s nesting-depth guard
// and extension table the same way DecodeSingularMessage does.
func DecodeMap[K comparable, V any](d FieldDecoder, dst map[K]V, decodeKey func(Value) K, decodeValue func(Value) V) (consumed bool, err error) {
	ld, ok := d.(*LengthDelimitedFieldDecoder)
	if !ok {
		return false, nil
	}

	entry := &mapEntry{}
	if err := ld.dec.decodeEmbedded(ld.payload, entry); err != nil {
		return false, err
	}
	if entry.key.Kind() == KindInvalid || entry.value.Kind() == KindInvalid {
		return false, ld.scanner.errorf(ErrMalformedProtobuf, "map entry missing key or value")
	}

	dst[decodeKey(entry.key)] = decodeValue(entry.value)

	ld.markConsumed()
	return true, nil
}

// mapEntry decodes the synthetic two-field message every map entry is
// encoded as, reusing the ordinary field-decoding machinery instead of a
// bespoke key/value parser.
type mapEntry struct {
	key   Value
	value Value
}

func (e *mapEntry) DecodeField(d FieldDecoder) (bool, error) {
	switch d.FieldNumber() {
	case 1:
		return decodeMapSlot(d, &e.key)
	case 2:
		return decodeMapSlot(d, &e.value)
	default:
		return false, nil
	}
}

// decodeMapSlot boxes whatever scalar, string, bytes or submessage value
// the wire format handed it into a [Value], deferring interpretation (as an
// int32 vs. an enum, say) to the caller-supplied decodeKey/decodeValue
// functions in [DecodeMap].
func decodeMapSlot(d FieldDecoder, dst *Value) (bool, error) {
	switch fd := d.(type) {
	case *NumericFieldDecoder:
		switch fd.tag.Wire {
		case WireVarint:
			*dst = uint64Value(fd.raw)
		case WireFixed32:
			*dst = uint32Value(uint32(fd.raw))
		case WireFixed64:
			*dst = uint64Value(fd.raw)
		}
		fd.markConsumed()
		return true, nil
	case *LengthDelimitedFieldDecoder:
		*dst = lengthDelimitedValue(fd.payload, fd.dec)
		fd.markConsumed()
		return true, nil
	default:
		return false, nil
	}
}

func scalarWidth(wire WireFormat) int {
	switch wire {
	case WireFixed32:
		return 4
	case WireFixed64:
		return 8
	default:
		return 0
	}
}

func readScalarElement(s *Scanner, wire WireFormat, width int) (uint64, error) {
	switch width {
	case 4:
		v, err := s.DecodeFourByteNumber()
		return uint64(v), err
	case 8:
		return s.DecodeEightByteNumber()
	default:
		v, ok, err := s.GetRawVarint()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, s.errorf(ErrTruncatedInput, "truncated packed element")
		}
		_ = wire
		return v, nil
	}
}
