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

// Decoder drives a single decode operation. It is safe to reuse across
// calls to [Decoder.DecodeFullObject] but, like a [Scanner], is not safe
// for concurrent use.
type Decoder struct {
	cfg   config
	depth int
}

// NewDecoder returns a Decoder configured by opts.
func NewDecoder(opts ...Option) *Decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return &Decoder{cfg: cfg}
}

// DecodeFullObject decodes data as a complete top-level message into m,
// calling m.DecodeField once per field tag found. A field m's DecodeField
// does not consume is preserved, if m implements [UnknownFieldsSetter], as
// raw bytes: all such fields are concatenated in input order and handed to
// SetUnknownFields once, after the last field; their positions relative to
// the consumed fields are not recorded.
func (dec *Decoder) DecodeFullObject(data []byte, m Message) error {
	s := newScanner(data)
	if err := dec.runFields(s, m, 0, false); err != nil {
		return err
	}
	if s.pos != len(data) {
		return s.errorf(ErrTrailingGarbage, "")
	}
	return nil
}

// decodeEmbedded decodes payload — the bytes of a length-delimited field —
// as an independent message, tracking nesting depth against the decoder's
// configured maximum.
func (dec *Decoder) decodeEmbedded(payload []byte, m Message) error {
	if err := dec.enter(); err != nil {
		return err
	}
	defer dec.leave()

	s := newScanner(payload)
	return dec.runFields(s, m, 0, false)
}

// DecodeFullGroup decodes a legacy proto2 group body directly off the
// shared scanner s, consuming up through the EndGroup tag that matches
// fieldNumber. Precondition: s has just read a StartGroup tag for
// fieldNumber.
func (dec *Decoder) DecodeFullGroup(s *Scanner, fieldNumber int32, m Message) error {
	if err := dec.enter(); err != nil {
		return err
	}
	defer dec.leave()

	return dec.runFields(s, m, fieldNumber, true)
}

func (dec *Decoder) enter() error {
	dec.depth++
	if dec.depth > dec.cfg.maxDepth {
		return &ParseError{code: ErrMalformedProtobuf, detail: "maximum nesting depth exceeded"}
	}
	return nil
}

func (dec *Decoder) leave() {
	dec.depth--
}

// runFields is the tag-dispatch loop shared by the top level, embedded
// messages, map entries and group bodies. For a non-group body it runs
// until s is exhausted; for a group body (isGroup == true) it runs until it
// finds the EndGroup tag matching groupNumber.
func (dec *Decoder) runFields(s *Scanner, m Message, groupNumber int32, isGroup bool) error {
	var unknown []byte

	for {
		tag, ok, err := s.GetTag()
		if err != nil {
			return err
		}
		if !ok {
			if isGroup {
				return s.errorf(ErrTruncatedInput, "unterminated group")
			}
			break
		}

		if tag.Wire == WireEndGroup {
			if isGroup && tag.Number == groupNumber {
				break
			}
			return s.errorf(ErrMalformedProtobuf, "unexpected end group marker")
		}

		fd, err := dec.buildFieldDecoder(s, tag)
		if err != nil {
			return err
		}

		consumed, err := m.DecodeField(fd)
		if err != nil {
			return err
		}
		if !consumed {
			consumed, err = tryExtension(dec, fd, m)
			if err != nil {
				return err
			}
		}
		if !consumed {
			raw, err := fd.unknownBytes()
			if err != nil {
				return err
			}
			unknown = append(unknown, raw...)
		}

		trace(dec.depth, tag, consumed)
	}

	if len(unknown) > 0 {
		if setter, ok := m.(UnknownFieldsSetter); ok {
			setter.SetUnknownFields(unknown)
		}
	}
	return nil
}

// buildFieldDecoder reads tag's value off s and wraps it in the concrete
// [FieldDecoder] matching its wire format. Length-delimited fields and
// groups defer their own contents to whatever decode function the caller's
// DecodeField invokes; varint, fixed32 and fixed64 fields are read
// immediately since there is no framing ambiguity to defer.
func (dec *Decoder) buildFieldDecoder(s *Scanner, tag FieldTag) (FieldDecoder, error) {
	switch tag.Wire {
	case WireVarint:
		v, ok, err := s.GetRawVarint()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, s.errorf(ErrTruncatedInput, "truncated varint field")
		}
		return &NumericFieldDecoder{tag: tag, scanner: s, raw: v}, nil

	case WireFixed32:
		v, err := s.DecodeFourByteNumber()
		if err != nil {
			return nil, err
		}
		return &NumericFieldDecoder{tag: tag, scanner: s, raw: uint64(v)}, nil

	case WireFixed64:
		v, err := s.DecodeEightByteNumber()
		if err != nil {
			return nil, err
		}
		return &NumericFieldDecoder{tag: tag, scanner: s, raw: v}, nil

	case WireLengthDelimited:
		n, ok, err := s.GetRawVarint()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, s.errorf(ErrTruncatedInput, "truncated length prefix")
		}
		if n > uint64(s.Len()) {
			return nil, s.errorf(ErrMalformedProtobuf, "length prefix exceeds remaining input")
		}
		payload := s.data[s.pos : s.pos+int(n)]
		s.pos += int(n)
		return &LengthDelimitedFieldDecoder{tag: tag, scanner: s, dec: dec, payload: payload}, nil

	case WireStartGroup:
		return &GroupFieldDecoder{tag: tag, scanner: s, dec: dec}, nil

	default:
		return nil, s.errorf(ErrMalformedProtobuf, "unsupported wire type")
	}
}
