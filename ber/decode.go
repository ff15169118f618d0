// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"codello.dev/receipt/asn1"
	"codello.dev/receipt/tlv"
)

//region error types

var (
	// ErrIntegerOverflow indicates that the content octets of an INTEGER do not
	// fit into an int64.
	ErrIntegerOverflow = errors.New("integer overflow")

	// ErrInvalidText indicates that the content octets of a string are not valid
	// in the string's character set.
	ErrInvalidText = errors.New("invalid text")

	// ErrMalformedValue indicates content octets or a structure of the wrong
	// shape, such as a BOOLEAN with more than one content octet.
	ErrMalformedValue = errors.New("malformed value")
)

// A SyntaxError suggests that the content octets of a data value cannot be
// converted into a valid value. Err is one of the error kinds of this package
// or [tlv.ErrUnsupportedEncoding]. Cause optionally holds the error that led to
// Err, such as a [tlv.SyntaxError] in a nested stream.
type SyntaxError struct {
	Tag   asn1.Tag // where the syntax error occurred
	Err   error
	Cause error
}

func (e *SyntaxError) Error() string {
	var s strings.Builder
	s.WriteString("syntax error")
	if e.Tag != (asn1.Tag{}) {
		s.WriteString(" decoding ")
		s.WriteString(e.Tag.String())
	}
	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}
	if e.Cause != nil {
		s.WriteString(": ")
		s.WriteString(e.Cause.Error())
	}
	return s.String()
}

func (e *SyntaxError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

//endregion

// Decode decodes the content octets of n according to its tag. Decode does not
// recurse beyond the reinterpretation of a single OCTET STRING: elements of a
// [Nested] value are decoded by calling Decode on them.
//
// Values of non-universal classes and universal types that receipts do not use
// are returned as [Opaque].
func Decode(n tlv.Node) (Value, error) {
	tag := n.Tag()
	if tag.Class != asn1.ClassUniversal {
		return Opaque{tag, n.Content}, nil
	}

	switch tag.Number {
	case asn1.TagSequence, asn1.TagSet:
		if !n.Constructed {
			return nil, &SyntaxError{Tag: tag, Err: ErrMalformedValue, Cause: errors.New("primitive encoding of constructed type")}
		}
		return Nested{n}, nil
	case asn1.TagInteger, asn1.TagOctetString, asn1.TagUTF8String, asn1.TagIA5String, asn1.TagBoolean:
		if n.Constructed {
			return nil, &SyntaxError{Tag: tag, Err: tlv.ErrUnsupportedEncoding, Cause: errors.New("constructed encoding of primitive type")}
		}
	default:
		return Opaque{tag, n.Content}, nil
	}

	var (
		v   Value
		err error
	)
	switch tag.Number {
	case asn1.TagInteger:
		var i int64
		i, err = DecodeInteger(n.Content)
		v = Integer(i)
	case asn1.TagOctetString:
		return DecodeOctetString(n.Content), nil
	case asn1.TagUTF8String:
		var s string
		s, err = DecodeUTF8String(n.Content)
		v = Text(s)
	case asn1.TagIA5String:
		var s string
		s, err = DecodeIA5String(n.Content)
		v = Text(s)
	case asn1.TagBoolean:
		var b bool
		b, err = DecodeBoolean(n.Content)
		v = Boolean(b)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeOctetString attempts to reinterpret b as exactly one nested TLV. If
// that succeeds the result is [Nested], otherwise it is an [Opaque] holding b.
// Falling back to Opaque is an expected outcome and not an error.
func DecodeOctetString(b []byte) Value {
	n, err := tlv.ParseExact(b)
	if err != nil {
		return Opaque{asn1.Universal(asn1.TagOctetString), b}
	}
	return Nested{n}
}

// DecodeInteger decodes b as an unsigned big-endian integer. An empty b
// decodes as 0. If the value exceeds [math.MaxInt64] an error wrapping
// ErrIntegerOverflow is returned.
func DecodeInteger(b []byte) (int64, error) {
	var r uint64
	for _, c := range b {
		if r > math.MaxInt64>>8 { // r<<8 would exceed math.MaxInt64
			return 0, &SyntaxError{Tag: asn1.Universal(asn1.TagInteger), Err: ErrIntegerOverflow}
		}
		r = r<<8 | uint64(c)
	}
	return int64(r), nil
}

// DecodeUTF8String decodes b as UTF-8 text. Invalid UTF-8 sequences result in
// an error wrapping ErrInvalidText.
func DecodeUTF8String(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", &SyntaxError{Tag: asn1.Universal(asn1.TagUTF8String), Err: ErrInvalidText}
	}
	return string(b), nil
}

// DecodeIA5String decodes b as ASCII text. Any byte outside the 7-bit range
// results in an error wrapping ErrInvalidText.
func DecodeIA5String(b []byte) (string, error) {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return "", &SyntaxError{Tag: asn1.Universal(asn1.TagIA5String), Err: ErrInvalidText}
		}
	}
	return string(b), nil
}

// DecodeBoolean decodes a single content octet as a boolean. Any non-zero octet
// is true. Content of any other length results in an error wrapping
// ErrMalformedValue.
func DecodeBoolean(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, &SyntaxError{Tag: asn1.Universal(asn1.TagBoolean), Err: ErrMalformedValue}
	}
	return b[0] != 0, nil
}
