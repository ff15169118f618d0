// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envelope unwraps the PKCS#7 SignedData container of an App Store
// receipt. The content returned by [Open] is the payload understood by
// [codello.dev/receipt.ParsePurchases].
package envelope

import (
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/smallstep/pkcs7"
)

// ErrNoContent indicates a container without encapsulated content, such as a
// detached signature.
var ErrNoContent = errors.New("envelope: no content")

// Open parses der as a PKCS#7 SignedData container and returns its content. If
// roots is non-nil, the signature and the certificate chain of every signer
// are verified against roots first. A nil roots skips verification, which is
// only suitable for inspecting receipts.
//
// The returned content aliases memory owned by the parsed container.
func Open(der []byte, roots *x509.CertPool) ([]byte, error) {
	p7, err := pkcs7.Parse(der)
	if err != nil {
		return nil, fmt.Errorf("envelope: parsing PKCS#7: %w", err)
	}
	if len(p7.Content) == 0 {
		return nil, ErrNoContent
	}
	if roots != nil {
		if err := p7.VerifyWithChain(roots); err != nil {
			return nil, fmt.Errorf("envelope: verifying signature: %w", err)
		}
	}
	return p7.Content, nil
}

// ErrSigner indicates a container that does not have exactly one signer
// certificate.
var ErrSigner = errors.New("envelope: container does not have exactly one signer")

// Signer returns the certificate of the single signer of der without verifying
// it.
func Signer(der []byte) (*x509.Certificate, error) {
	p7, err := pkcs7.Parse(der)
	if err != nil {
		return nil, fmt.Errorf("envelope: parsing PKCS#7: %w", err)
	}
	cert := p7.GetOnlySigner()
	if cert == nil {
		return nil, ErrSigner
	}
	return cert, nil
}
