package tlv

// AppendHeader appends the identifier and definite length octets for a TLV
// with the given identifier and content length to dst. Lengths below 128 use
// the short form, all others the minimal long form. Tag numbers must not
// exceed [asn1.MaxShortTag].
func AppendHeader(dst []byte, id Identifier, length int) []byte {
	b := byte(id.Class)<<6 | byte(id.Number&0x1f)
	if id.Constructed {
		b |= 0x20
	}
	dst = append(dst, b)

	if length < 128 {
		return append(dst, byte(length))
	}
	numBytes := 1
	for l := length; l > 255; l >>= 8 {
		numBytes++
	}
	dst = append(dst, 0x80|byte(numBytes))
	for ; numBytes > 0; numBytes-- {
		dst = append(dst, byte(length>>uint((numBytes-1)*8)))
	}
	return dst
}

// Append appends a complete TLV with the given identifier and content to dst.
func Append(dst []byte, id Identifier, content []byte) []byte {
	return append(AppendHeader(dst, id, len(content)), content...)
}
