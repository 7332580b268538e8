// Copyright 2025 Buf Technologies, Inc.
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

// Option is a configuration setting for [NewDecoder]. It is a struct holding
// a closure rather than an interface, so applying one in NewDecoder is a
// direct function call with no interface dispatch.
type Option struct{ apply func(*config) }

// EnumPolicy controls how a decoder reacts to an enum value it does not
// recognize as a defined member.
type EnumPolicy uint8

const (
	// EnumPolicyOverride leaves an unrecognized enum value out of the
	// typed field it was destined for and instead preserves it as an
	// unknown field, re-encoding it losslessly if it was part of a packed
	// run. This matches the generated-code behavior for a closed (proto2,
	// or proto3 non-open) enum.
	EnumPolicyOverride EnumPolicy = iota
	// EnumPolicyRaw assigns every decoded value to the typed field
	// regardless of whether it names a known member, matching proto3's
	// open-enum semantics and most conformance-test runners' defaults.
	EnumPolicyRaw
)

type config struct {
	maxDepth     int
	enumPolicy   EnumPolicy
	validateUTF8 bool
	extensions   *ExtensionTable
}

func defaultConfig() config {
	return config{
		maxDepth:   100,
		enumPolicy: EnumPolicyOverride,
	}
}

// WithMaxDepth sets the maximum nesting depth — embedded messages, groups,
// and map-entry submessages all count — a decoder will follow before
// failing with [ErrMalformedProtobuf]. The default is 100.
//
// Accepting arbitrarily deep input allows a small message to drive
// unbounded stack growth; this bound exists to cap that.
func WithMaxDepth(depth int) Option {
	return Option{func(c *config) { c.maxDepth = depth }}
}

// WithEnumPolicy records a decoder-wide [EnumPolicy]; the default is
// [EnumPolicyOverride]. The DecodeSingularEnum, DecodeRepeatedEnum and
// DecodePackedEnum helpers do not read this setting: each reacts to an enum
// value outside the known member set according to the policy argument its
// caller passes.
func WithEnumPolicy(policy EnumPolicy) Option {
	return Option{func(c *config) { c.enumPolicy = policy }}
}

// WithValidateUTF8 sets whether DecodeString and DecodeRepeatedString
// reject payloads that are not valid UTF-8 even when their own
// validateUTF8 argument is false. The default is false, which
// matches proto2 and permissive proto3 runtimes; pass true to match strict
// proto3 string validation.
func WithValidateUTF8(validate bool) Option {
	return Option{func(c *config) { c.validateUTF8 = validate }}
}

// WithExtensions supplies the table used to resolve field numbers that fall
// within an extension range to a decode function, for messages that
// implement [ExtensionSetter]. Without one, fields in extension ranges are
// treated as unknown.
//
// Unlike ordinary fields, extensions are not named by a message's generated
// DecodeField method, so they must be registered up front rather than
// resolved on the fly.
func WithExtensions(table *ExtensionTable) Option {
	return Option{func(c *config) { c.extensions = table }}
}
