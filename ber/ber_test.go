// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"fmt"

	"codello.dev/receipt/tlv"
)

func ExampleDecode() {
	// OCTET STRING holding a UTF8String, followed by an OCTET STRING of raw bytes
	for _, data := range [][]byte{
		{0x04, 0x05, 0x0C, 0x03, 0x61, 0x70, 0x70},
		{0x04, 0x02, 0xCA, 0xFE},
	} {
		n, err := tlv.Parse(data, 0)
		if err != nil {
			panic(err)
		}
		v, err := Decode(n)
		if err != nil {
			panic(err)
		}
		switch v := v.(type) {
		case Nested:
			inner, err := Decode(v.Node)
			fmt.Println("nested", v.Identifier, inner, err)
		case Opaque:
			fmt.Println(v)
		}
	}

	// Output:
	// nested [UNIVERSAL 12]/p app <nil>
	// Opaque{[UNIVERSAL 4] {CA FE}}
}
