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

// GroupFieldDecoder is the [FieldDecoder] handed to a [Message] for a
// legacy proto2 group field: a StartGroup/EndGroup pair that shares the
// enclosing message's [Scanner] rather than carrying its own length prefix.
type GroupFieldDecoder struct {
	tag      FieldTag
	scanner  *Scanner
	dec      *Decoder
	consumed bool
}

func (d *GroupFieldDecoder) FieldNumber() int32     { return d.tag.Number }
func (d *GroupFieldDecoder) WireFormat() WireFormat { return d.tag.Wire }
func (d *GroupFieldDecoder) isConsumed() bool       { return d.consumed }
func (d *GroupFieldDecoder) markConsumed()          { d.consumed = true }

func (d *GroupFieldDecoder) unknownBytes() ([]byte, error) {
	return d.scanner.GetRawField()
}

// DecodeSingularGroup decodes a non-repeated group field by running
// dst.DecodeField over the bytes between this occurrence's StartGroup and
// its matching EndGroup, directly off the shared scanner.
func DecodeSingularGroup(d FieldDecoder, dst Message) (consumed bool, err error) {
	gd, ok := d.(*GroupFieldDecoder)
	if !ok {
		return false, nil
	}
	if err := gd.dec.DecodeFullGroup(gd.scanner, gd.tag.Number, dst); err != nil {
		return false, err
	}
	gd.markConsumed()
	return true, nil
}

// DecodeRepeatedGroup decodes a single occurrence of a repeated group
// field. new_ constructs a fresh element to append to *dst and decode into.
func DecodeRepeatedGroup[T Message](d FieldDecoder, dst *[]T, new_ func() T) (consumed bool, err error) {
	gd, ok := d.(*GroupFieldDecoder)
	if !ok {
		return false, nil
	}
	elem := new_()
	if err := gd.dec.DecodeFullGroup(gd.scanner, gd.tag.Number, elem); err != nil {
		return false, err
	}
	*dst = append(*dst, elem)
	gd.markConsumed()
	return true, nil
}
