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

// Message is implemented by generated (or hand-written) Go types that want
// to decode themselves from the protobuf wire format. DecodeField is called
// once per field tag encountered at the top level of the message; it
// receives a [FieldDecoder] bound to that field's wire payload and reports
// whether it consumed the field.
//
// A field DecodeField declines — by returning consumed == false with a nil
// error — is skipped by the caller and, if the message also implements
// [UnknownFieldsSetter], preserved verbatim.
type Message interface {
	DecodeField(d FieldDecoder) (consumed bool, err error)
}

// UnknownFieldsSetter is implemented by messages that want fields they did
// not recognize, or packed enum values they rejected, preserved for
// later re-encoding rather than silently dropped.
type UnknownFieldsSetter interface {
	SetUnknownFields(raw []byte)
}

// ExtensionSetter is implemented by messages that support extension ranges.
// When a field number falls inside a range registered with the decoder's
// [ExtensionTable], ReceiveExtension is tried before the field is treated
// as unknown.
type ExtensionSetter interface {
	ReceiveExtension(number int32, value any)
}
