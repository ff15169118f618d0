// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"codello.dev/receipt"
	"codello.dev/receipt/envelope"
	"codello.dev/receipt/tlv"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// options configures a dump.
type options struct {
	PKCS7   bool
	Roots   string
	Hex     bool
	Format  string
	Verbose bool
}

func (o *options) validate() error {
	switch o.Format {
	case formatText, formatYAML:
	default:
		return fmt.Errorf("unknown format %q", o.Format)
	}
	if o.Roots != "" {
		o.PKCS7 = true
	}
	return nil
}

// runDump decodes the receipt in the named file and writes its purchases to w.
func runDump(ctx context.Context, opts options, name string, w io.Writer) error {
	data, err := readInput(name, opts.Hex)
	if err != nil {
		return err
	}
	log := logrus.WithField("file", name)
	log.WithField("bytes", len(data)).Debug("read receipt")

	if opts.PKCS7 {
		if cert, err := envelope.Signer(data); err == nil {
			log.WithField("signer", cert.Subject.String()).Debug("found signer")
		}
		var roots *x509.CertPool
		if opts.Roots != "" {
			if roots, err = loadRoots(opts.Roots); err != nil {
				return err
			}
		} else {
			log.Warn("signature not verified, pass --roots to verify it")
		}
		if data, err = envelope.Open(data, roots); err != nil {
			return err
		}
		log.WithField("bytes", len(data)).Debug("unwrapped PKCS#7 container")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logAttributes(log, data)
	}
	purchases, err := receipt.ParsePurchases(data)
	if err != nil {
		return fmt.Errorf("decoding receipt: %w", err)
	}
	log.WithField("purchases", len(purchases)).Info("decoded receipt")

	if opts.Format == formatYAML {
		return writeYAML(w, purchases)
	}
	return writeText(w, purchases)
}

// readInput reads the named file, decoding hexadecimal text if isHex is set.
// Whitespace in hexadecimal input is ignored.
func readInput(name string, isHex bool) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if !isHex {
		return data, nil
	}
	data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
	if err != nil {
		return nil, fmt.Errorf("decoding hex input: %w", err)
	}
	return data, nil
}

func loadRoots(name string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(pem) {
		return nil, errors.New("no certificates found in " + name)
	}
	return roots, nil
}

// logAttributes logs the type codes of the top-level attribute records of
// payload.
func logAttributes(log *logrus.Entry, payload []byte) {
	n, err := tlv.Parse(payload, 0)
	if err != nil {
		return
	}
	counts := make(map[receipt.AttributeType]int)
	for a, err := range receipt.Attributes(n) {
		if err != nil {
			log.WithError(err).Debug("attribute enumeration stopped")
			break
		}
		counts[a.Type]++
	}
	log.WithField("types", counts).Debug("top-level attribute records")
}
