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

// Package fastpb decodes the protobuf binary wire format directly into
// hand-written or generated Go types, without building any descriptor or
// reflection machinery of its own.
//
// A type implements [Message] by providing a DecodeField method that is
// called once per field tag a [Decoder] finds at a given nesting level;
// DecodeField pulls a typed value out of the [FieldDecoder] it is handed
// using the decode functions in this package — DecodeSingularScalar,
// DecodeString, DecodeSingularMessage, DecodeMap, DecodeSingularGroup, and
// their repeated and packed counterparts — and reports whether it consumed
// the field. A [Decoder] otherwise handles tag parsing, length framing,
// recursion depth, unknown-field capture, and extension dispatch.
//
// # Support status
//
// This package decodes the core binary wire format only. It does not parse
// or emit any other protobuf interchange format (JSON, text format), does
// not read or act on descriptors, and generally does not encode: the one
// exception is re-encoding the handful of bytes belonging to values a
// packed-enum decode rejects, so that they round-trip
// through a message's unknown fields instead of being silently dropped.
package fastpb
