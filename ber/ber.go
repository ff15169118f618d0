// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ber implements the value layer of the ASN.1 Basic Encoding Rules
// (BER) for the subset of types found in App Store receipt payloads. The Basic
// Encoding Rules are defined in [Rec. ITU-T X.690].
//
// [Decode] turns a [tlv.Node] into a [Value]. A Value is one of [Integer],
// [Text], [Boolean], [Nested] or [Opaque]. Callers are expected to switch over
// the concrete type:
//
//	switch v := v.(type) {
//	case ber.Integer:
//	case ber.Text:
//	case ber.Boolean:
//	case ber.Nested:
//	case ber.Opaque:
//	}
//
// Decoding is lazy. Nothing is decoded until Decode is called for a node, so a
// malformed value only fails the code that asks for it. The following
// limitations apply:
//
//   - INTEGER contents are read as an unsigned big-endian number. Values that
//     do not fit into an int64 are reported as [ErrIntegerOverflow].
//   - Strings must use the primitive encoding.
//   - Types that receipts do not use are returned as [Opaque] without further
//     interpretation.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
package ber

import (
	"fmt"

	"codello.dev/receipt/asn1"
	"codello.dev/receipt/tlv"
)

// Value is the result of decoding a [tlv.Node]. The set of implementations is
// closed: Integer, Text, Boolean, Nested and Opaque.
type Value interface {
	isValue()
}

// Integer is a decoded ASN.1 INTEGER.
type Integer int64

// Text is a decoded UTF8String or IA5String.
type Text string

// Boolean is a decoded ASN.1 BOOLEAN.
type Boolean bool

// Nested is a node that can be descended into. For a SEQUENCE or SET it is
// the node itself, so Node.Content is the stream of its elements. For an OCTET
// STRING it is the node found by reinterpreting the string's content octets.
type Nested struct {
	tlv.Node
}

// An Opaque represents content octets that are not interpreted further. This
// is the case for OCTET STRING values that do not hold a nested encoding and
// for all tags this package does not decode. Bytes aliases the decoded input.
type Opaque struct {
	Tag   asn1.Tag
	Bytes []byte
}

func (Integer) isValue() {}
func (Text) isValue()    {}
func (Boolean) isValue() {}
func (Nested) isValue()  {}
func (Opaque) isValue()  {}

// String returns a string representation of o. The byte contents of o are only
// included if they are short enough.
func (o Opaque) String() string {
	if len(o.Bytes) > 24 {
		return fmt.Sprintf("Opaque{%s {%d bytes}}", o.Tag.String(), len(o.Bytes))
	}
	return fmt.Sprintf("Opaque{%s {% X}}", o.Tag.String(), o.Bytes)
}
