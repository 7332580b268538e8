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

import "encoding/binary"

// Scanner is a cursor over a borrowed, immutable byte range. It produces
// tags and primitive numeric values and supports skip-with-rewind so that
// the raw bytes of an unrecognized field can be captured for later
// re-encoding (see [Scanner.GetRawField]).
//
// A Scanner is not safe for concurrent use. It never copies or mutates the
// slice it was constructed over.
type Scanner struct {
	data []byte
	pos  int

	// fieldStart/fieldEnd bound the field most recently returned by GetTag.
	// fieldEnd is -1 until Skip or GetRawField has computed it.
	fieldStart int
	fieldEnd   int

	lastWire   WireFormat
	lastNumber int32
}

func newScanner(data []byte) *Scanner {
	return &Scanner{data: data, fieldEnd: -1}
}

// Offset returns the scanner's current position, for use in error
// construction and debugging.
func (s *Scanner) Offset() int {
	return s.pos
}

// Len returns the number of unconsumed bytes.
func (s *Scanner) Len() int {
	return len(s.data) - s.pos
}

func (s *Scanner) errorf(code ErrorCode, detail string) *ParseError {
	return &ParseError{code: code, offset: s.pos, detail: detail}
}

// GetTag reads the next field tag. It returns ok == false only at a clean
// end of input (no bytes consumed). A malformed tag — an over-32-bit
// varint, an undefined wire type, or a zero field number — fails with
// [ErrMalformedProtobuf].
func (s *Scanner) GetTag() (tag FieldTag, ok bool, err error) {
	if s.pos >= len(s.data) {
		return FieldTag{}, false, nil
	}

	s.fieldStart = s.pos
	s.fieldEnd = -1

	raw, ok, err := s.GetRawVarint()
	if err != nil {
		return FieldTag{}, false, err
	}
	if !ok {
		// Unreachable: the pos check above guarantees at least one byte.
		return FieldTag{}, false, s.errorf(ErrTruncatedInput, "truncated tag")
	}
	if raw >= 1<<32 {
		return FieldTag{}, false, s.errorf(ErrMalformedProtobuf, "tag exceeds 32 bits")
	}

	wire := WireFormat(raw & 0x7)
	if !wire.valid() {
		return FieldTag{}, false, s.errorf(ErrMalformedProtobuf, "undefined wire type")
	}

	number := int32(raw >> 3)
	if number == 0 {
		return FieldTag{}, false, s.errorf(ErrMalformedProtobuf, "field number zero")
	}

	s.lastWire = wire
	s.lastNumber = number
	return FieldTag{Number: number, Wire: wire}, true, nil
}

// GetRawVarint reads a base-128 little-endian varint of up to 10 bytes. It
// returns ok == false only when no bytes remain at all. A varint whose 10th
// byte still carries the continuation bit, or whose value cannot fit in 64
// bits, fails with [ErrMalformedProtobuf]; a varint truncated mid-stream
// fails with [ErrTruncatedInput].
func (s *Scanner) GetRawVarint() (v uint64, ok bool, err error) {
	if s.pos >= len(s.data) {
		return 0, false, nil
	}

	for i := 0; i < 10; i++ {
		if s.pos >= len(s.data) {
			return 0, false, s.errorf(ErrTruncatedInput, "truncated varint")
		}
		b := s.data[s.pos]
		s.pos++

		if i == 9 {
			// Only bit 63 has room left; anything else overflows 64 bits,
			// and a continuation bit here means an 11th byte would follow.
			if b > 1 {
				return 0, false, s.errorf(ErrMalformedProtobuf, "varint overflows 64 bits")
			}
			v |= uint64(b) << 63
			return v, true, nil
		}

		v |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return v, true, nil
		}
	}

	panic("fastpb: unreachable")
}

// DecodeFourByteNumber reads 4 little-endian bytes, failing
// [ErrTruncatedInput] if fewer remain.
func (s *Scanner) DecodeFourByteNumber() (uint32, error) {
	if s.Len() < 4 {
		return 0, s.errorf(ErrTruncatedInput, "truncated fixed32")
	}
	v := binary.LittleEndian.Uint32(s.data[s.pos:])
	s.pos += 4
	return v, nil
}

// DecodeEightByteNumber reads 8 little-endian bytes, failing
// [ErrTruncatedInput] if fewer remain.
func (s *Scanner) DecodeEightByteNumber() (uint64, error) {
	if s.Len() < 8 {
		return 0, s.errorf(ErrTruncatedInput, "truncated fixed64")
	}
	v := binary.LittleEndian.Uint64(s.data[s.pos:])
	s.pos += 8
	return v, nil
}

// Skip advances past the field most recently returned by GetTag, computing
// fieldEnd if it is not already known.
func (s *Scanner) Skip() error {
	if s.fieldEnd >= 0 {
		s.pos = s.fieldEnd
		return nil
	}

	start := s.fieldStart
	s.pos = start
	tag, ok, err := s.GetTag()
	if err != nil {
		return err
	}
	if !ok {
		return s.errorf(ErrMalformedProtobuf, "skip at end of input")
	}
	if err := s.skipOver(tag); err != nil {
		return err
	}
	// skipOver reads a group's inner tags with GetTag, which moves
	// fieldStart; restore it so it still marks this field's own tag.
	s.fieldStart = start
	s.fieldEnd = s.pos
	return nil
}

// skipOver advances past the value that follows tag, recursing through
// nested groups so that a StartGroup is always paired with its matching
// EndGroup.
func (s *Scanner) skipOver(tag FieldTag) error {
	switch tag.Wire {
	case WireVarint:
		_, ok, err := s.GetRawVarint()
		if err != nil {
			return err
		}
		if !ok {
			return s.errorf(ErrTruncatedInput, "truncated varint value")
		}
		return nil

	case WireFixed32:
		_, err := s.DecodeFourByteNumber()
		return err

	case WireFixed64:
		_, err := s.DecodeEightByteNumber()
		return err

	case WireLengthDelimited:
		n, ok, err := s.GetRawVarint()
		if err != nil {
			return err
		}
		if !ok {
			return s.errorf(ErrTruncatedInput, "truncated length prefix")
		}
		if n > uint64(s.Len()) {
			return s.errorf(ErrMalformedProtobuf, "length prefix exceeds remaining input")
		}
		s.pos += int(n)
		return nil

	case WireStartGroup:
		for {
			inner, ok, err := s.GetTag()
			if err != nil {
				return err
			}
			if !ok {
				return s.errorf(ErrTruncatedInput, "unterminated group")
			}
			if inner.Wire == WireEndGroup {
				if inner.Number == tag.Number {
					return nil
				}
				return s.errorf(ErrMalformedProtobuf, "mismatching end group marker")
			}
			if err := s.skipOver(inner); err != nil {
				return err
			}
		}

	case WireEndGroup:
		return s.errorf(ErrMalformedProtobuf, "end group without matching start")

	default:
		return s.errorf(ErrMalformedProtobuf, "unknown wire type")
	}
}

// GetRawField returns the complete on-the-wire representation — tag and
// payload — of the field most recently returned by GetTag, skipping over it
// (including any nested groups) as a side effect.
func (s *Scanner) GetRawField() ([]byte, error) {
	if err := s.Skip(); err != nil {
		return nil, err
	}
	return s.data[s.fieldStart:s.fieldEnd], nil
}
