// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receipt

import (
	"testing"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"codello.dev/receipt/tlv"
)

// record describes one attribute record of a test fixture. value writes the
// content octets of the record's OCTET STRING.
type record struct {
	typ   int64
	value cryptobyte.BuilderContinuation
}

// derInt writes a DER INTEGER, as receipts do for numeric values.
func derInt(i int64) cryptobyte.BuilderContinuation {
	return func(b *cryptobyte.Builder) { b.AddASN1Int64(i) }
}

// derUTF8 writes a DER UTF8String.
func derUTF8(s string) cryptobyte.BuilderContinuation {
	return func(b *cryptobyte.Builder) {
		b.AddASN1(cryptobyte_asn1.UTF8String, func(b *cryptobyte.Builder) { b.AddBytes([]byte(s)) })
	}
}

// derIA5 writes a DER IA5String, as receipts do for dates.
func derIA5(s string) cryptobyte.BuilderContinuation {
	return func(b *cryptobyte.Builder) {
		b.AddASN1(cryptobyte_asn1.IA5String, func(b *cryptobyte.Builder) { b.AddBytes([]byte(s)) })
	}
}

// raw writes bytes as they are.
func raw(data []byte) cryptobyte.BuilderContinuation {
	return func(b *cryptobyte.Builder) { b.AddBytes(data) }
}

// addRecords writes a SET of attribute records with version 1.
func addRecords(b *cryptobyte.Builder, records ...record) {
	b.AddASN1(cryptobyte_asn1.SET, func(b *cryptobyte.Builder) {
		for _, r := range records {
			b.AddASN1(cryptobyte_asn1.SEQUENCE, func(b *cryptobyte.Builder) {
				b.AddASN1Int64(r.typ)
				b.AddASN1Int64(1)
				b.AddASN1(cryptobyte_asn1.OCTET_STRING, r.value)
			})
		}
	})
}

// buildSet returns the encoding of a SET of attribute records.
func buildSet(t testing.TB, records ...record) []byte {
	t.Helper()
	var b cryptobyte.Builder
	addRecords(&b, records...)
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	return data
}

// purchaseSet returns a record value holding the attribute set of a purchase.
func purchaseSet(records ...record) cryptobyte.BuilderContinuation {
	return func(b *cryptobyte.Builder) { addRecords(b, records...) }
}

func mustParse(t testing.TB, data []byte) tlv.Node {
	t.Helper()
	n, err := tlv.ParseExact(data)
	if err != nil {
		t.Fatalf("tlv.ParseExact() error = %v", err)
	}
	return n
}
