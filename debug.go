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

import "sync/atomic"

// Debug controls whether a [Decoder] calls the trace function installed by
// [SetTraceFunc] as it walks field tags. It is off by default; flipping it
// on adds a function call per field and is meant for diagnosing a decode
// that produced unexpected unknown fields, not for production use.
var Debug atomic.Bool

var traceFunc atomic.Pointer[func(depth int, tag FieldTag, consumed bool)]

// SetTraceFunc installs fn as the handler [Decoder] calls, when [Debug] is
// set, once per field tag it dispatches: depth is the current nesting
// depth, tag is the field just read, and consumed reports whether the
// enclosing message's DecodeField, or failing that a registered extension
// decoder, claimed it. Passing nil disables tracing even if Debug is set.
func SetTraceFunc(fn func(depth int, tag FieldTag, consumed bool)) {
	if fn == nil {
		traceFunc.Store(nil)
		return
	}
	traceFunc.Store(&fn)
}

func trace(depth int, tag FieldTag, consumed bool) {
	if !Debug.Load() {
		return
	}
	if fn := traceFunc.Load(); fn != nil {
		(*fn)(depth, tag, consumed)
	}
}
