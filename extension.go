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

import "reflect"

// ExtensionDecoder decodes a single extension field occurrence and returns
// the value to hand to the message's ReceiveExtension, the way an ordinary
// field's DecodeField case would return a typed value by reference. Most
// implementations close over one of the DecodeSingularScalar/DecodeString/
// DecodeSingularMessage family of functions and return the decoded pointee.
type ExtensionDecoder func(d FieldDecoder, dec *Decoder) (value any, consumed bool, err error)

// extensionKey scopes a registered decoder to the message type that declares
// the extension range, not just its field number: extension field numbers
// are only unique per extended message, so two message types sharing one
// [ExtensionTable] may legitimately register the same field number for
// different purposes.
type extensionKey struct {
	msgType reflect.Type
	number  int32
}

// ExtensionTable maps (message type, extension field number) pairs to the
// decoder responsible for them. Unlike ordinary fields, extensions are not
// known to a message's generated DecodeField method, so they must be
// registered up front for a [Decoder] to recognize them; sub-decoders
// reached while walking a message tree consult the same table (see
// [WithExtensions]), so one table can serve every message type in the tree.
// A (type, field number) pair with no registered decoder is treated as
// unknown.
type ExtensionTable struct {
	byKey map[extensionKey]ExtensionDecoder
}

// NewExtensionTable returns an empty table.
func NewExtensionTable() *ExtensionTable {
	return &ExtensionTable{byKey: make(map[extensionKey]ExtensionDecoder)}
}

// Register associates number, scoped to msgType, with dec. msgType is
// typically obtained with reflect.TypeOf on the extended message, e.g.
// reflect.TypeOf((*MyMessage)(nil)). It panics if the pair is already
// registered.
func (t *ExtensionTable) Register(msgType reflect.Type, number int32, dec ExtensionDecoder) {
	key := extensionKey{msgType: msgType, number: number}
	if _, dup := t.byKey[key]; dup {
		panic("fastpb: duplicate extension field number registered for type")
	}
	t.byKey[key] = dec
}

func (t *ExtensionTable) lookup(msgType reflect.Type, number int32) (ExtensionDecoder, bool) {
	if t == nil {
		return nil, false
	}
	dec, ok := t.byKey[extensionKey{msgType: msgType, number: number}]
	return dec, ok
}

// tryExtension attempts to resolve fd, scoped to m's concrete type, against
// dec's extension table and, if m implements [ExtensionSetter], deliver the
// decoded value to it.
func tryExtension(dec *Decoder, fd FieldDecoder, m Message) (consumed bool, err error) {
	setter, ok := m.(ExtensionSetter)
	if !ok {
		return false, nil
	}
	extDec, ok := dec.cfg.extensions.lookup(reflect.TypeOf(m), fd.FieldNumber())
	if !ok {
		return false, nil
	}
	value, consumed, err := extDec(fd, dec)
	if err != nil || !consumed {
		return false, err
	}
	setter.ReceiveExtension(fd.FieldNumber(), value)
	return true, nil
}
