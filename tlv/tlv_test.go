package tlv

import (
	"fmt"
)

func ExampleParse() {
	n, err := Parse([]byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x16, 0x01, 0x41}, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	for c, err := range n.Children() {
		if err != nil {
			panic(err)
		}
		fmt.Println(c, c.Content)
	}

	// Output:
	// [UNIVERSAL 16]/c:6@0
	// [UNIVERSAL 2]/p:1@0 [1]
	// [UNIVERSAL 22]/p:1@3 [65]
}

func ExampleDecodeLength() {
	l, err := DecodeLength([]byte{0x82, 0x01, 0x00}, 0)
	fmt.Println(l.Value, l.Size, err)

	_, err = DecodeLength([]byte{0x80}, 0)
	fmt.Println(err)

	// Output:
	// 256 3 <nil>
	// tlv: syntax error at offset 0: unsupported encoding: indefinite length
}
