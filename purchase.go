// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receipt

import (
	"codello.dev/receipt/asn1"
	"codello.dev/receipt/ber"
	"codello.dev/receipt/tlv"
)

// InAppType is the kind of product an in-app purchase was made for.
//
//go:generate stringer -type=InAppType -trimprefix=InAppType
type InAppType int

// Predefined [InAppType] constants.
const (
	InAppTypeUnknown InAppType = iota - 1
	InAppTypeNonConsumable
	InAppTypeConsumable
	InAppTypeNonRenewingSubscription
	InAppTypeAutoRenewableSubscription
)

// inAppTypeOf maps a purchase type code to an InAppType.
func inAppTypeOf(i int64) InAppType {
	if i < int64(InAppTypeNonConsumable) || i > int64(InAppTypeAutoRenewableSubscription) {
		return InAppTypeUnknown
	}
	return InAppType(i)
}

// InAppPurchase holds the fields of a single in-app purchase record. Optional
// fields are nil if the record does not contain them.
//
// An InAppPurchase does not reference the payload it was decoded from.
type InAppPurchase struct {
	ProductIdentifier             string
	TransactionIdentifier         string
	OriginalTransactionIdentifier string
	PurchaseDateString            string
	OriginalPurchaseDateString    string

	// SubscriptionExpirationDateString is nil unless the purchase is for an
	// auto-renewable subscription.
	SubscriptionExpirationDateString *string
	// CancellationDateString is nil unless the purchase has been refunded by
	// customer support.
	CancellationDateString *string

	SubscriptionTrialPeriod             *bool
	SubscriptionIntroductoryPricePeriod *bool

	// DiscountIdentifier identifies the promotional offer the purchase was made
	// with.
	DiscountIdentifier *string

	Type               InAppType
	WebOrderLineItemID *int64
	Quantity           int
}

// NewInAppPurchase builds an InAppPurchase from n, which must hold the
// attribute set of one purchase. NewInAppPurchase never fails: unknown records
// are ignored and fields whose values cannot be decoded keep their defaults.
// The defaults are empty strings, a zero quantity, nil optional fields and
// [InAppTypeUnknown].
func NewInAppPurchase(n tlv.Node) InAppPurchase {
	p := InAppPurchase{Type: InAppTypeUnknown}
	// A broken record stream leaves the purchase with the fields read so far.
	_ = EnumerateAttributes(n, func(a Attribute) bool {
		if f, ok := purchaseFields[a.Type]; ok {
			f.apply(&p, a.Value)
		}
		return true
	})
	return p
}

// IsRenewableSubscription reports whether p is a purchase of an auto-renewable
// subscription.
func (p InAppPurchase) IsRenewableSubscription() bool {
	return p.SubscriptionExpirationDateString != nil
}

//region field table

// valueKind identifies how the value of an attribute record is decoded.
type valueKind uint8

const (
	integerValue valueKind = iota
	utf8Value
	asciiValue
)

// tag returns the universal tag number a value of kind k is encoded with when
// wrapped into its own TLV.
func (k valueKind) tag() uint {
	switch k {
	case utf8Value:
		return asn1.TagUTF8String
	case asciiValue:
		return asn1.TagIA5String
	default:
		return asn1.TagInteger
	}
}

// purchaseField describes how one attribute record populates an InAppPurchase.
// Exactly one of setInt and setText is non-nil, matching kind.
type purchaseField struct {
	kind    valueKind
	setInt  func(p *InAppPurchase, i int64)
	setText func(p *InAppPurchase, s string)
}

// apply decodes raw and assigns it to p. Values that cannot be decoded are
// dropped.
func (f purchaseField) apply(p *InAppPurchase, raw []byte) {
	raw = unwrapScalar(raw, f.kind.tag())
	switch f.kind {
	case integerValue:
		i, err := ber.DecodeInteger(raw)
		if err != nil {
			return
		}
		f.setInt(p, i)
	case utf8Value:
		s, err := ber.DecodeUTF8String(raw)
		if err != nil {
			return
		}
		f.setText(p, s)
	case asciiValue:
		s, err := ber.DecodeIA5String(raw)
		if err != nil {
			return
		}
		f.setText(p, s)
	}
}

// unwrapScalar returns the content octets of raw if raw is exactly one
// primitive TLV with the universal tag number tag. Otherwise raw is returned as
// is.
func unwrapScalar(raw []byte, tag uint) []byte {
	n, err := tlv.ParseExact(raw)
	if err != nil || n.Constructed || !n.Tag().IsUniversal(tag) {
		return raw
	}
	return n.Content
}

func optional[T any](v T) *T { return &v }

// optionalDate returns nil for an empty date, which receipts use to mean "not
// applicable".
func optionalDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// purchaseFields maps attribute types to the fields of an InAppPurchase.
var purchaseFields = map[AttributeType]purchaseField{
	AttributeQuantity: {kind: integerValue, setInt: func(p *InAppPurchase, i int64) {
		p.Quantity = int(i)
	}},
	AttributeProductIdentifier: {kind: utf8Value, setText: func(p *InAppPurchase, s string) {
		p.ProductIdentifier = s
	}},
	AttributeTransactionIdentifier: {kind: utf8Value, setText: func(p *InAppPurchase, s string) {
		p.TransactionIdentifier = s
	}},
	AttributeOriginalTransactionIdentifier: {kind: utf8Value, setText: func(p *InAppPurchase, s string) {
		p.OriginalTransactionIdentifier = s
	}},
	AttributeDiscountIdentifier: {kind: utf8Value, setText: func(p *InAppPurchase, s string) {
		p.DiscountIdentifier = optional(s)
	}},
	AttributePurchaseDate: {kind: asciiValue, setText: func(p *InAppPurchase, s string) {
		p.PurchaseDateString = s
	}},
	AttributeOriginalPurchaseDate: {kind: asciiValue, setText: func(p *InAppPurchase, s string) {
		p.OriginalPurchaseDateString = s
	}},
	AttributeSubscriptionExpirationDate: {kind: asciiValue, setText: func(p *InAppPurchase, s string) {
		p.SubscriptionExpirationDateString = optionalDate(s)
	}},
	AttributeCancellationDate: {kind: asciiValue, setText: func(p *InAppPurchase, s string) {
		p.CancellationDateString = optionalDate(s)
	}},
	AttributeWebOrderLineItemID: {kind: integerValue, setInt: func(p *InAppPurchase, i int64) {
		p.WebOrderLineItemID = optional(i)
	}},
	AttributeSubscriptionTrialPeriod: {kind: integerValue, setInt: func(p *InAppPurchase, i int64) {
		p.SubscriptionTrialPeriod = optional(i != 0)
	}},
	AttributeSubscriptionIntroductoryPricePeriod: {kind: integerValue, setInt: func(p *InAppPurchase, i int64) {
		p.SubscriptionIntroductoryPricePeriod = optional(i != 0)
	}},
	AttributePurchaseType: {kind: integerValue, setInt: func(p *InAppPurchase, i int64) {
		p.Type = inAppTypeOf(i)
	}},
}

//endregion
