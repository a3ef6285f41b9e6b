// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// FingerprintBytes - type to hold a certificate fingerprint
type FingerprintBytes [32]byte

// Fingerprint - fingerprint a certificate
//
// SHA3-256 of the DER encoded certificate, announced alongside the
// connect address so clients can pin the self-signed certificate
func Fingerprint(certificate []byte) FingerprintBytes {
	return FingerprintBytes(sha3.Sum256(certificate))
}

// MarshalText - convert fingerprint to hex text
func (fingerprint FingerprintBytes) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(fingerprint))
	buffer := make([]byte, size)
	hex.Encode(buffer, fingerprint[:])
	return buffer, nil
}
