// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package receipt decodes the payload of App Store receipts into in-app
// purchase records. The payload is the content of the receipt's PKCS#7
// container; verifying and unwrapping that container is done elsewhere (see
// [codello.dev/receipt/envelope]).
//
// # Attribute Records
//
// The payload is a SET of attribute records. Each record is a SEQUENCE of
// three elements:
//
//	ReceiptAttribute ::= SEQUENCE {
//		type    INTEGER,
//		version INTEGER,
//		value   OCTET STRING
//	}
//
// The value of an [AttributeInAppPurchase] record is itself a SET of attribute
// records describing one purchase. [EnumerateAttributes] and [Attributes] walk
// such a SET, [NewInAppPurchase] builds an [InAppPurchase] from one, and
// [ParsePurchases] does both for a whole payload.
//
// Decoding is best effort below the top level. Records that do not have the
// expected shape and values that cannot be decoded are skipped, so that unknown
// or future record types never prevent reading the rest of a receipt.
//
// # Dates
//
// Dates are kept as the strings found in the receipt, for example
// "2020-01-01T00:00:00Z". Converting them is left to a [DateParser].
package receipt

import (
	"codello.dev/receipt/ber"
	"codello.dev/receipt/tlv"
)

// AttributeType is the type code of an attribute record.
type AttributeType int64

// Type codes of the attribute records that are understood by this package.
const (
	AttributeInAppPurchase AttributeType = 17

	AttributeQuantity                            AttributeType = 1701
	AttributeProductIdentifier                   AttributeType = 1702
	AttributeTransactionIdentifier               AttributeType = 1703
	AttributePurchaseDate                        AttributeType = 1704
	AttributeOriginalTransactionIdentifier       AttributeType = 1705
	AttributeOriginalPurchaseDate                AttributeType = 1706
	AttributePurchaseType                        AttributeType = 1707
	AttributeSubscriptionExpirationDate          AttributeType = 1708
	AttributeWebOrderLineItemID                  AttributeType = 1711
	AttributeCancellationDate                    AttributeType = 1712
	AttributeSubscriptionTrialPeriod             AttributeType = 1713
	AttributeSubscriptionIntroductoryPricePeriod AttributeType = 1719
	AttributeDiscountIdentifier                  AttributeType = 1721
)

// ParsePurchases decodes a receipt payload and returns its in-app purchases in
// the order they appear. Records of other types are ignored, as are purchase
// records whose value does not hold a nested encoding.
//
// An error is returned if the payload does not start with a valid TLV or if its
// record stream is structurally broken.
func ParsePurchases(payload []byte) ([]InAppPurchase, error) {
	n, err := tlv.Parse(payload, 0)
	if err != nil {
		return nil, err
	}
	var purchases []InAppPurchase
	err = EnumerateAttributes(n, func(a Attribute) bool {
		if a.Type != AttributeInAppPurchase {
			return true
		}
		if v, ok := ber.DecodeOctetString(a.Value).(ber.Nested); ok {
			purchases = append(purchases, NewInAppPurchase(v.Node))
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

// ParsePurchase decodes data holding the attribute set of a single purchase.
// An error is only returned if data does not start with a valid TLV.
func ParsePurchase(data []byte) (InAppPurchase, error) {
	n, err := tlv.Parse(data, 0)
	if err != nil {
		return InAppPurchase{Type: InAppTypeUnknown}, err
	}
	return NewInAppPurchase(n), nil
}
