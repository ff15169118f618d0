// Package tlv implements decoding of the tag-length-value (TLV) format used by
// the Basic Encoding Rules (BER) and its DER subset as specified in
// [Rec. ITU-T X.690], restricted to what App Store receipt payloads use.
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// A [Node] is a single decoded TLV. It is made of an [Identifier], a [Length]
// and a view of the content octets. Nodes never copy the input: the content of
// a Node aliases the buffer it was parsed from and is only valid for as long as
// that buffer is left unmodified. This package deals with the syntactic layer
// only. Interpreting the content octets is done by the
// [codello.dev/receipt/ber] package.
//
// # Limitations
//
// Only single-octet identifiers are supported (tag numbers 0 through 30). The
// indefinite-length form is rejected with [ErrUnsupportedEncoding].
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package tlv

import (
	"strconv"

	"codello.dev/receipt/asn1"
)

// Identifier represents the identifier octet of a TLV.
type Identifier struct {
	Class       asn1.Class
	Constructed bool
	Number      uint
}

// Tag returns the class and number of id as an [asn1.Tag].
func (id Identifier) Tag() asn1.Tag {
	return asn1.Tag{Class: id.Class, Number: id.Number}
}

// String returns a string representation of id.
func (id Identifier) String() string {
	s := id.Tag().String()
	if id.Constructed {
		return s + "/c"
	}
	return s + "/p"
}

// Length represents the length octets of a TLV. Value is the number of content
// octets that follow. Size is the number of octets the length encoding itself
// occupies.
type Length struct {
	Value int
	Size  int
}

// Node is a decoded TLV. Content holds exactly Length.Value bytes and aliases
// the buffer the Node was parsed from. Offset is the position of the identifier
// octet within that buffer.
type Node struct {
	Identifier
	Length  Length
	Content []byte
	Offset  int
}

// HeaderLen returns the number of identifier and length octets of n.
func (n Node) HeaderLen() int {
	return 1 + n.Length.Size
}

// End returns the offset of the first byte following n in its buffer.
func (n Node) End() int {
	return n.Offset + n.HeaderLen() + n.Length.Value
}

// String returns a string representation of n.
func (n Node) String() string {
	return n.Identifier.String() + ":" + strconv.Itoa(n.Length.Value) + "@" + strconv.Itoa(n.Offset)
}
