// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/smallstep/pkcs7"
	"github.com/stretchr/testify/require"
)

// selfSigned creates a self-signed certificate valid around the current time.
func selfSigned(t *testing.T, name string) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: name},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return cert, key
}

// sign wraps content into a SignedData container signed by cert.
func sign(t *testing.T, content []byte, cert *x509.Certificate, key *ecdsa.PrivateKey, detach bool) []byte {
	t.Helper()
	sd, err := pkcs7.NewSignedData(content)
	require.NoError(t, err)
	sd.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)
	require.NoError(t, sd.AddSigner(cert, key, pkcs7.SignerInfoConfig{}))
	if detach {
		sd.Detach()
	}
	der, err := sd.Finish()
	require.NoError(t, err)
	return der
}

func TestOpen(t *testing.T) {
	payload := []byte{0x31, 0x00}
	cert, key := selfSigned(t, "receipt signer")
	der := sign(t, payload, cert, key, false)

	got, err := Open(der, nil)
	require.NoError(t, err)
	require.Equal(t, payload, got)

	roots := x509.NewCertPool()
	roots.AddCert(cert)
	got, err = Open(der, roots)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestOpen_UntrustedSigner(t *testing.T) {
	cert, key := selfSigned(t, "receipt signer")
	other, _ := selfSigned(t, "other root")
	der := sign(t, []byte{0x31, 0x00}, cert, key, false)

	roots := x509.NewCertPool()
	roots.AddCert(other)
	_, err := Open(der, roots)
	require.Error(t, err)
	require.ErrorContains(t, err, "envelope: verifying signature")
}

func TestOpen_Detached(t *testing.T) {
	cert, key := selfSigned(t, "receipt signer")
	der := sign(t, []byte{0x31, 0x00}, cert, key, true)

	_, err := Open(der, nil)
	require.ErrorIs(t, err, ErrNoContent)
}

func TestOpen_NotPKCS7(t *testing.T) {
	_, err := Open([]byte{0x31, 0x00}, nil)
	require.Error(t, err)
	require.ErrorContains(t, err, "envelope: parsing PKCS#7")
}

func TestSigner(t *testing.T) {
	cert, key := selfSigned(t, "receipt signer")
	der := sign(t, []byte{0x31, 0x00}, cert, key, false)

	got, err := Signer(der)
	require.NoError(t, err)
	require.Equal(t, "receipt signer", got.Subject.CommonName)
}
