// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package domain

import (
	"encoding/hex"
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/fault"
)

// the tag to detect applicable TXT records from DNS
var supportedTags = map[string]struct{}{
	"obligation=v1": {},
}

const (
	fingerprintLength = 2 * 32 // characters
	sessionKeyLength  = 2 * 32 // characters
)

// DnsTXT - a decoded bootstrap record
type DnsTXT struct {
	IPv4                   net.IP
	IPv6                   net.IP
	RPCPort                uint16
	SessionPort            uint16
	CertificateFingerprint []byte
	SessionKey             []byte
	Account                *account.Account
}

// Parse - decode DNS TXT records of this form
//
//	<TAG> a=<IPv4;IPv6> s=<PORT> r=<PORT> f=<SHA3-256(cert)> k=<session public key> p=<party account>
//
// other invalid combinations or extraneous items are rejected
func Parse(s string) (*DnsTXT, error) {

	t := &DnsTXT{}

	countA := 0
	countS := 0
	countR := 0
	countF := 0
	countK := 0
	countP := 0

words:
	for i, w := range strings.Split(strings.TrimSpace(s), " ") {

		if 0 == i {
			if _, ok := supportedTags[w]; ok {
				continue words
			}
			return nil, fault.InvalidDnsTxtRecord
		}

		// ignore empty
		if "" == w {
			continue words
		}

		// require form: <letter>=<word>
		if len(w) < 3 || '=' != w[1] {
			return nil, fault.InvalidDnsTxtRecord
		}

		// w[0]=tag character; w[1]= char('='); w[2:]=parameter
		parameter := w[2:]
		err := error(nil)
		switch w[0] {
		case 'a':
		addresses:
			for _, address := range strings.Split(parameter, ";") {
				if "" == address {
					err = fault.InvalidIpAddress
					break addresses
				}
				if '[' == address[0] {
					end := len(address) - 1
					if ']' == address[end] {
						address = address[1:end]
					}
				}
				IP := net.ParseIP(address)
				if nil == IP {
					err = fault.InvalidIpAddress
					break addresses
				}
				err = nil
				if nil != IP.To4() {
					t.IPv4 = IP
				} else {
					t.IPv6 = IP
				}
			}
			countA += 1

		case 's':
			t.SessionPort, err = getPort(parameter)
			countS += 1
		case 'r':
			t.RPCPort, err = getPort(parameter)
			countR += 1
		case 'f':
			if len(parameter) != fingerprintLength {
				err = fault.InvalidFingerprint
			} else {
				t.CertificateFingerprint, err = hex.DecodeString(parameter)
				if nil != err {
					err = fault.InvalidFingerprint
				}
			}
			countF += 1
		case 'k':
			if len(parameter) != sessionKeyLength {
				err = fault.InvalidPublicKey
			} else {
				t.SessionKey, err = hex.DecodeString(parameter)
				if nil != err {
					err = fault.InvalidPublicKey
				}
			}
			countK += 1
		case 'p':
			t.Account, err = account.AccountFromBase58(parameter)
			countP += 1
		default:
			err = fault.InvalidDnsTxtRecord
		}
		if nil != err {
			return nil, err
		}
	}

	// ensure that there is only one each of the required items
	if countA != 1 || countS != 1 || countR != 1 || countF != 1 || countK != 1 || countP != 1 {
		return nil, fault.InvalidDnsTxtRecord
	}

	return t, nil
}

func getPort(s string) (uint16, error) {

	port, err := strconv.Atoi(s)
	if nil != err {
		return 0, fault.InvalidPortNumber
	}
	if port < 1 || port > 65535 {
		return 0, fault.InvalidPortNumber
	}
	return uint16(port), nil
}
