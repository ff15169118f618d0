// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"codello.dev/receipt"
)

// purchaseView is the YAML representation of a purchase.
type purchaseView struct {
	ProductIdentifier             string  `yaml:"productIdentifier"`
	TransactionIdentifier         string  `yaml:"transactionIdentifier,omitempty"`
	OriginalTransactionIdentifier string  `yaml:"originalTransactionIdentifier,omitempty"`
	PurchaseDate                  string  `yaml:"purchaseDate,omitempty"`
	OriginalPurchaseDate          string  `yaml:"originalPurchaseDate,omitempty"`
	SubscriptionExpirationDate    *string `yaml:"subscriptionExpirationDate,omitempty"`
	CancellationDate              *string `yaml:"cancellationDate,omitempty"`
	TrialPeriod                   *bool   `yaml:"subscriptionTrialPeriod,omitempty"`
	IntroductoryPricePeriod       *bool   `yaml:"subscriptionIntroductoryPricePeriod,omitempty"`
	DiscountIdentifier            *string `yaml:"discountIdentifier,omitempty"`
	Type                          string  `yaml:"type"`
	WebOrderLineItemID            *int64  `yaml:"webOrderLineItemID,omitempty"`
	Quantity                      int     `yaml:"quantity"`
}

func viewOf(p receipt.InAppPurchase) purchaseView {
	return purchaseView{
		ProductIdentifier:             p.ProductIdentifier,
		TransactionIdentifier:         p.TransactionIdentifier,
		OriginalTransactionIdentifier: p.OriginalTransactionIdentifier,
		PurchaseDate:                  p.PurchaseDateString,
		OriginalPurchaseDate:          p.OriginalPurchaseDateString,
		SubscriptionExpirationDate:    p.SubscriptionExpirationDateString,
		CancellationDate:              p.CancellationDateString,
		TrialPeriod:                   p.SubscriptionTrialPeriod,
		IntroductoryPricePeriod:       p.SubscriptionIntroductoryPricePeriod,
		DiscountIdentifier:            p.DiscountIdentifier,
		Type:                          p.Type.String(),
		WebOrderLineItemID:            p.WebOrderLineItemID,
		Quantity:                      p.Quantity,
	}
}

func writeYAML(w io.Writer, purchases []receipt.InAppPurchase) error {
	views := make([]purchaseView, len(purchases))
	for i, p := range purchases {
		views[i] = viewOf(p)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(views); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, purchases []receipt.InAppPurchase) error {
	for i, p := range purchases {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s (%s) x%d\n", p.ProductIdentifier, p.Type, p.Quantity); err != nil {
			return err
		}
		lines := [][2]string{
			{"transaction", p.TransactionIdentifier},
			{"original transaction", p.OriginalTransactionIdentifier},
			{"purchased", p.PurchaseDateString},
			{"originally purchased", p.OriginalPurchaseDateString},
			{"expires", deref(p.SubscriptionExpirationDateString)},
			{"cancelled", deref(p.CancellationDateString)},
			{"discount", deref(p.DiscountIdentifier)},
		}
		if p.WebOrderLineItemID != nil {
			lines = append(lines, [2]string{"web order line item", strconv.FormatInt(*p.WebOrderLineItemID, 10)})
		}
		if p.SubscriptionTrialPeriod != nil {
			lines = append(lines, [2]string{"trial period", strconv.FormatBool(*p.SubscriptionTrialPeriod)})
		}
		if p.SubscriptionIntroductoryPricePeriod != nil {
			lines = append(lines, [2]string{"introductory price", strconv.FormatBool(*p.SubscriptionIntroductoryPricePeriod)})
		}
		for _, l := range lines {
			if l[1] == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "  %-21s %s\n", l[0]+":", l[1]); err != nil {
				return err
			}
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
