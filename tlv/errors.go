package tlv

import (
	"errors"
	"strconv"
)

var (
	// ErrTruncated indicates that the input ends before a header or the content
	// octets announced by a header.
	ErrTruncated = errors.New("truncated input")

	// ErrUnsupportedEncoding indicates a syntactically possible encoding that
	// receipt payloads never use, such as the indefinite-length form or a
	// multi-octet tag.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// SyntaxError represents an error in the TLV encoding. The error value contains
// the location of the error within the input as well as the [Identifier] of the
// TLV being decoded, if it could be read.
type SyntaxError struct {
	Err    error  // ErrTruncated or ErrUnsupportedEncoding
	Detail string // optional

	// ByteOffset is the location of the error. This is the start of the TLV
	// header containing the error.
	ByteOffset int

	// Identifier is the identifier of the TLV that could not be decoded. It is the
	// zero value if the identifier octet itself is missing.
	Identifier Identifier
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("tlv: syntax error")
	if e.Identifier != (Identifier{}) {
		b = append(b, " decoding "...)
		b = append(b, e.Identifier.String()...)
	}
	b = strconv.AppendInt(append(b, " at offset "...), int64(e.ByteOffset), 10)
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	if e.Detail != "" {
		b = append(b, ": "...)
		b = append(b, e.Detail...)
	}
	return string(b)
}
