// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receipt

import (
	"errors"
	"reflect"
	"testing"

	"codello.dev/receipt/ber"
	"codello.dev/receipt/tlv"
)

// receiptPayload returns a payload with a bundle identifier, two purchases and
// a purchase record whose value is not a nested encoding.
func receiptPayload(t testing.TB) []byte {
	return buildSet(t,
		record{2, derUTF8("com.example.app")},
		record{int64(AttributeInAppPurchase), purchaseSet(
			record{int64(AttributeQuantity), derInt(1)},
			record{int64(AttributeProductIdentifier), derUTF8("com.example.coins")},
			record{int64(AttributePurchaseType), derInt(1)},
		)},
		record{3, derUTF8("1.0")},
		record{int64(AttributeInAppPurchase), raw([]byte{0xDE, 0xAD})},
		record{int64(AttributeInAppPurchase), purchaseSet(
			record{int64(AttributeProductIdentifier), derUTF8("com.example.monthly")},
			record{int64(AttributeSubscriptionExpirationDate), derIA5("2020-03-01T00:00:00Z")},
			record{int64(AttributeCancellationDate), derIA5("")},
		)},
		record{12, derIA5("2020-04-01T00:00:00Z")},
	)
}

func TestParsePurchases(t *testing.T) {
	got, err := ParsePurchases(receiptPayload(t))
	if err != nil {
		t.Fatalf("ParsePurchases() error = %v", err)
	}
	want := []InAppPurchase{
		{ProductIdentifier: "com.example.coins", Type: InAppTypeConsumable, Quantity: 1},
		{ProductIdentifier: "com.example.monthly", Type: InAppTypeUnknown, SubscriptionExpirationDateString: ptr("2020-03-01T00:00:00Z")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParsePurchases() = %+v, want %+v", got, want)
	}
}

func TestParsePurchases_Idempotent(t *testing.T) {
	payload := receiptPayload(t)
	first, err := ParsePurchases(payload)
	if err != nil {
		t.Fatalf("ParsePurchases() error = %v", err)
	}
	second, err := ParsePurchases(payload)
	if err != nil {
		t.Fatalf("ParsePurchases() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ParsePurchases() = %+v, then %+v", first, second)
	}
}

func TestParsePurchases_DoesNotRetainPayload(t *testing.T) {
	payload := receiptPayload(t)
	got, err := ParsePurchases(payload)
	if err != nil {
		t.Fatalf("ParsePurchases() error = %v", err)
	}
	clear(payload)
	if got[0].ProductIdentifier != "com.example.coins" {
		t.Errorf("ProductIdentifier = %q after clearing the payload", got[0].ProductIdentifier)
	}
}

func TestParsePurchases_NoPurchases(t *testing.T) {
	got, err := ParsePurchases(buildSet(t, record{2, derUTF8("com.example.app")}))
	if err != nil {
		t.Fatalf("ParsePurchases() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ParsePurchases() = %+v, want none", got)
	}
}

func TestParsePurchases_Errors(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		wantErr error
	}{
		"Empty":        {nil, tlv.ErrTruncated},
		"Truncated":    {receiptPayload(t)[:40], tlv.ErrTruncated},
		"Indefinite":   {[]byte{0x31, 0x80, 0x00, 0x00}, tlv.ErrUnsupportedEncoding},
		"NotASet":      {[]byte{0x02, 0x01, 0x01}, ber.ErrMalformedValue},
		"BrokenStream": {[]byte{0x31, 0x03, 0x30, 0x05, 0x02}, ber.ErrMalformedValue},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParsePurchases(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParsePurchases() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("ParsePurchases() = %+v, want nil", got)
			}
		})
	}
}

func TestParsePurchase(t *testing.T) {
	got, err := ParsePurchase(buildSet(t, record{int64(AttributeQuantity), derInt(2)}))
	if err != nil {
		t.Fatalf("ParsePurchase() error = %v", err)
	}
	if got.Quantity != 2 || got.Type != InAppTypeUnknown {
		t.Errorf("ParsePurchase() = %+v, want quantity 2", got)
	}

	got, err = ParsePurchase([]byte{0x31, 0x05})
	if !errors.Is(err, tlv.ErrTruncated) {
		t.Errorf("ParsePurchase() error = %v, want %v", err, tlv.ErrTruncated)
	}
	if got.Type != InAppTypeUnknown {
		t.Errorf("ParsePurchase() type = %v, want %v", got.Type, InAppTypeUnknown)
	}
}
