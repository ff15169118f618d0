// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receipt

import "time"

// DateParser converts a date string found in a receipt into a time. It reports
// false if the string cannot be parsed. Implementations must be safe for
// concurrent use.
type DateParser interface {
	ParseDate(s string) (time.Time, bool)
}

// The DateParserFunc type is an adapter to allow the use of ordinary functions
// as a [DateParser].
type DateParserFunc func(s string) (time.Time, bool)

// ParseDate calls f(s).
func (f DateParserFunc) ParseDate(s string) (time.Time, bool) { return f(s) }

// RFC3339 parses dates in the layout used by receipts, for example
// "2020-01-01T00:00:00Z" or "2020-01-01T08:00:00+08:00".
var RFC3339 DateParser = DateParserFunc(func(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
})

// PurchaseDate returns the purchase date of p parsed by dates.
func (p InAppPurchase) PurchaseDate(dates DateParser) (time.Time, bool) {
	return dates.ParseDate(p.PurchaseDateString)
}

// OriginalPurchaseDate returns the original purchase date of p parsed by dates.
func (p InAppPurchase) OriginalPurchaseDate(dates DateParser) (time.Time, bool) {
	return dates.ParseDate(p.OriginalPurchaseDateString)
}

// SubscriptionExpirationDate returns the expiration date of p parsed by dates.
// It reports false if p has no expiration date.
func (p InAppPurchase) SubscriptionExpirationDate(dates DateParser) (time.Time, bool) {
	if p.SubscriptionExpirationDateString == nil {
		return time.Time{}, false
	}
	return dates.ParseDate(*p.SubscriptionExpirationDateString)
}

// CancellationDate returns the cancellation date of p parsed by dates. It
// reports false if p has not been cancelled.
func (p InAppPurchase) CancellationDate(dates DateParser) (time.Time, bool) {
	if p.CancellationDateString == nil {
		return time.Time{}, false
	}
	return dates.ParseDate(*p.CancellationDateString)
}

// IsActiveAutoRenewableSubscription reports whether p is an auto-renewable
// subscription that is active at the given time. A cancelled subscription is
// never active. If any of the required dates cannot be parsed, the subscription
// is reported as inactive.
func (p InAppPurchase) IsActiveAutoRenewableSubscription(at time.Time, dates DateParser) bool {
	if p.CancellationDateString != nil {
		return false
	}
	expires, ok := p.SubscriptionExpirationDate(dates)
	if !ok {
		return false
	}
	purchased, ok := p.PurchaseDate(dates)
	if !ok {
		return false
	}
	return !at.Before(purchased) && at.Before(expires)
}
