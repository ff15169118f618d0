package tlv

import (
	"iter"
	"math"

	"codello.dev/receipt/asn1"
)

// DecodeIdentifier decodes the identifier octet at buf[offset]. It always
// consumes exactly one byte.
func DecodeIdentifier(buf []byte, offset int) (Identifier, error) {
	if offset < 0 || offset >= len(buf) {
		return Identifier{}, &SyntaxError{Err: ErrTruncated, ByteOffset: offset, Detail: "missing identifier"}
	}
	b := buf[offset]
	id := Identifier{
		Class:       asn1.Class(b >> 6),
		Constructed: b&0x20 == 0x20,
		Number:      uint(b & 0x1f),
	}
	if id.Number > asn1.MaxShortTag {
		// The bottom five bits being set announce a multi-octet tag number.
		return id, &SyntaxError{Err: ErrUnsupportedEncoding, ByteOffset: offset, Identifier: id, Detail: "multi-octet tag"}
	}
	return id, nil
}

// DecodeLength decodes the length octets starting at buf[offset], which must be
// the position immediately following an identifier octet.
func DecodeLength(buf []byte, offset int) (Length, error) {
	if offset < 0 || offset >= len(buf) {
		return Length{}, &SyntaxError{Err: ErrTruncated, ByteOffset: offset, Detail: "missing length"}
	}
	b := buf[offset]
	if b&0x80 == 0 {
		// The length is encoded in the bottom 7 bits.
		return Length{Value: int(b), Size: 1}, nil
	}
	// Bottom 7 bits give the number of length bytes to follow.
	n := int(b & 0x7f)
	if n == 0 {
		return Length{}, &SyntaxError{Err: ErrUnsupportedEncoding, ByteOffset: offset, Detail: "indefinite length"}
	}
	if n > len(buf)-offset-1 {
		return Length{}, &SyntaxError{Err: ErrTruncated, ByteOffset: offset, Detail: "missing length octets"}
	}
	l := 0
	for _, b := range buf[offset+1 : offset+1+n] {
		if l > math.MaxInt>>8 {
			// We can't shift l up without overflowing.
			return Length{}, &SyntaxError{Err: ErrUnsupportedEncoding, ByteOffset: offset, Detail: "length too large"}
		}
		l = l<<8 | int(b)
	}
	return Length{Value: l, Size: 1 + n}, nil
}

// Parse decodes the TLV starting at buf[offset]. The content of the returned
// Node aliases buf. Parse does not look into the content octets. If the header
// announces more content octets than buf holds an error wrapping ErrTruncated
// is returned.
func Parse(buf []byte, offset int) (Node, error) {
	id, err := DecodeIdentifier(buf, offset)
	if err != nil {
		return Node{}, err
	}
	l, err := DecodeLength(buf, offset+1)
	if err != nil {
		sErr := err.(*SyntaxError)
		sErr.ByteOffset = offset
		sErr.Identifier = id
		return Node{}, sErr
	}
	start := offset + 1 + l.Size
	if l.Value > len(buf)-start {
		return Node{}, &SyntaxError{Err: ErrTruncated, ByteOffset: offset, Identifier: id, Detail: "content exceeds input"}
	}
	return Node{
		Identifier: id,
		Length:     l,
		Content:    buf[start : start+l.Value : start+l.Value],
		Offset:     offset,
	}, nil
}

// ParseExact decodes buf as exactly one TLV. Trailing bytes after the TLV are
// reported as an error wrapping ErrUnsupportedEncoding.
func ParseExact(buf []byte) (Node, error) {
	n, err := Parse(buf, 0)
	if err != nil {
		return n, err
	}
	if n.End() != len(buf) {
		return Node{}, &SyntaxError{Err: ErrUnsupportedEncoding, ByteOffset: n.End(), Detail: "trailing data"}
	}
	return n, nil
}

// Children returns a sequence of the TLVs contained in the content octets of n.
// Offsets of the yielded nodes are relative to n.Content. If a child cannot be
// decoded, the error is yielded and the sequence ends, as the start of the next
// child is unknown.
func (n Node) Children() iter.Seq2[Node, error] {
	return func(yield func(Node, error) bool) {
		for off := 0; off < len(n.Content); {
			c, err := Parse(n.Content, off)
			if err != nil {
				yield(c, err)
				return
			}
			if !yield(c, nil) {
				return
			}
			off = c.End()
		}
	}
}
