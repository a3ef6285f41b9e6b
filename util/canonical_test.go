// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/util"
)

// Test IP address detection
func TestCanonical(t *testing.T) {

	testData := []struct {
		in  string
		out string
		v6  bool
	}{
		{"127.0.0.1:1234", "127.0.0.1:1234", false},
		{"127.0.0.1:1", "127.0.0.1:1", false},
		{" 127.0.0.1:1 ", "127.0.0.1:1", false},
		{"127.0.0.1:65535", "127.0.0.1:65535", false},
		{"0.0.0.0:1234", "0.0.0.0:1234", false},
		{"[::1]:1234", "[::1]:1234", true},
		{"[::]:1234", "[::]:1234", true},
		{"[0:0::0:0]:1234", "[::]:1234", true},
		{"[0:0:0:0::1]:1234", "[::1]:1234", true},
	}

	for i, d := range testData {
		c, err := util.NewConnection(d.in)
		if nil != err {
			t.Errorf("failed on:[%d] %q  err = %v", i, d.in, err)
			continue
		}
		s, v6 := c.CanonicalIPandPort("")
		if s != d.out {
			t.Errorf("failed on:[%d] %q  actual: %q  expected: %q", i, d.in, s, d.out)
		}
		if v6 != d.v6 {
			t.Errorf("failed on:[%d] %q  v6: %t  expected: %t", i, d.in, v6, d.v6)
		}
	}
}

// Test invalid IP addresses
func TestCanonicalIP(t *testing.T) {

	testData := []string{
		"127.1:1234",
		"256.0.0.0:1234",
		"0.256.0.0:1234",
		"0.0.256.0:1234",
		"0.0.0.256:1234",
		"0:0:1234",
		"[]:1234",
		"[as34::]:1234",
		"[1ffff::]:1234",
		"*:1234",
	}

	for i, d := range testData {
		c, err := util.NewConnection(d)
		if fault.InvalidIpAddress != err {
			t.Errorf("failed on:[%d] %q  err = %v", i, d, err)
		}
		if nil != c {
			t.Errorf("failed on:[%d] %q  unexpected connection: %v", i, d, c)
		}
	}
}

// Test invalid ports
func TestCanonicalPort(t *testing.T) {

	testData := []string{
		"127.0.0.1:0",
		"127.0.0.1:65536",
		"127.0.0.1:-1",
	}

	for i, d := range testData {
		c, err := util.NewConnection(d)
		if fault.InvalidPortNumber != err {
			t.Errorf("failed on:[%d] %q  err = %v", i, d, err)
		}
		if nil != c {
			t.Errorf("failed on:[%d] %q  unexpected connection: %v", i, d, c)
		}
	}
}

// Test connection list packing
func TestPackedConnection(t *testing.T) {

	c4, err := util.NewConnection("127.0.0.1:1234")
	if nil != err {
		t.Fatalf("new connection error: %s", err)
	}
	c6, err := util.NewConnection("[2404:6800:4008:c05::66]:443")
	if nil != err {
		t.Fatalf("new connection error: %s", err)
	}

	packed := make(util.PackedConnection, 0, 30)
	packed = append(packed, c4.Pack()...)
	packed = append(packed, c6.Pack()...)

	// first record is the IPv4 one
	conn, n := packed.Unpack()
	if nil == conn {
		t.Fatal("unpack: no first record")
	}
	if 7 != n {
		t.Fatalf("unpack: used: %d  expected: 7", n)
	}
	if "127.0.0.1:1234" != conn.String() {
		t.Errorf("unpack: actual: %q  expected: %q", conn.String(), "127.0.0.1:1234")
	}

	// second record is the IPv6 one
	conn, n = packed[n:].Unpack()
	if nil == conn {
		t.Fatal("unpack: no second record")
	}
	if 19 != n {
		t.Fatalf("unpack: used: %d  expected: 19", n)
	}
	if "[2404:6800:4008:c05::66]:443" != conn.String() {
		t.Errorf("unpack: actual: %q  expected: %q", conn.String(), "[2404:6800:4008:c05::66]:443")
	}

	// exhausted
	conn, n = util.PackedConnection{}.Unpack()
	if nil != conn || 0 != n {
		t.Errorf("unpack empty: %v %d", conn, n)
	}

	// both families in one scan
	v4, v6 := packed.Unpack46()
	if nil == v4 || "127.0.0.1:1234" != v4.String() {
		t.Errorf("unpack46 v4: %v", v4)
	}
	if nil == v6 || "[2404:6800:4008:c05::66]:443" != v6.String() {
		t.Errorf("unpack46 v6: %v", v6)
	}

	// truncated data yields nothing
	conn, n = packed[:5].Unpack()
	if nil != conn || 0 != n {
		t.Errorf("unpack truncated: %v %d", conn, n)
	}
}
