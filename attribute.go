// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receipt

import (
	"errors"
	"iter"

	"codello.dev/receipt/asn1"
	"codello.dev/receipt/ber"
	"codello.dev/receipt/tlv"
)

// Attribute is a decoded attribute record. Value holds the content octets of
// the record's value and aliases the decoded input.
type Attribute struct {
	Type    AttributeType
	Version int64
	Value   []byte
}

// EnumerateAttributes calls fn for every well-formed attribute record in n
// until fn returns false. n must decode as a [ber.Nested] value, that is a SET
// or SEQUENCE, or an OCTET STRING holding one.
//
// Records that do not consist of exactly an INTEGER, an INTEGER and an OCTET
// STRING are skipped. If the record stream itself cannot be decoded, an error
// wrapping [ber.ErrMalformedValue] is returned and enumeration stops.
func EnumerateAttributes(n tlv.Node, fn func(Attribute) bool) error {
	for a, err := range Attributes(n) {
		if err != nil {
			return err
		}
		if !fn(a) {
			break
		}
	}
	return nil
}

// Attributes returns a sequence of the well-formed attribute records in n. See
// [EnumerateAttributes] for details. There will be no further items after an
// item where the error is non-nil.
func Attributes(n tlv.Node) iter.Seq2[Attribute, error] {
	return func(yield func(Attribute, error) bool) {
		v, err := ber.Decode(n)
		set, ok := v.(ber.Nested)
		if err != nil || !ok {
			if err == nil {
				err = errors.New("not a set of attribute records")
			}
			yield(Attribute{}, &ber.SyntaxError{Tag: n.Tag(), Err: ber.ErrMalformedValue, Cause: err})
			return
		}
		for c, err := range set.Children() {
			if err != nil {
				yield(Attribute{}, &ber.SyntaxError{Tag: set.Tag(), Err: ber.ErrMalformedValue, Cause: err})
				return
			}
			a, ok := decodeAttribute(c)
			if !ok {
				continue
			}
			if !yield(a, nil) {
				return
			}
		}
	}
}

// decodeAttribute decodes a single attribute record. It reports false if c does
// not have the shape of an attribute record.
func decodeAttribute(c tlv.Node) (Attribute, bool) {
	v, err := ber.Decode(c)
	rec, ok := v.(ber.Nested)
	if err != nil || !ok {
		return Attribute{}, false
	}

	var (
		fields [3]tlv.Node
		i      int
	)
	for f, err := range rec.Children() {
		if err != nil || i == len(fields) {
			return Attribute{}, false
		}
		fields[i] = f
		i++
	}
	if i != len(fields) {
		return Attribute{}, false
	}

	typ, ok := decodeInteger(fields[0])
	if !ok {
		return Attribute{}, false
	}
	version, ok := decodeInteger(fields[1])
	if !ok {
		return Attribute{}, false
	}
	value, _ := ber.Decode(fields[2])
	switch value := value.(type) {
	case ber.Nested:
	case ber.Opaque:
		if !value.Tag.IsUniversal(asn1.TagOctetString) {
			return Attribute{}, false
		}
	default:
		return Attribute{}, false
	}
	return Attribute{AttributeType(typ), version, fields[2].Content}, true
}

func decodeInteger(n tlv.Node) (int64, bool) {
	v, err := ber.Decode(n)
	if err != nil {
		return 0, false
	}
	i, ok := v.(ber.Integer)
	return int64(i), ok
}
