// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/fault"
)

type currencyTest struct {
	str string
	c   currency.Currency
	j   string
}

var valid = []currencyTest{
	{"", currency.Nothing, `""`},
	{"usd", currency.USD, `"USD"`},
	{"USD", currency.USD, `"USD"`},
	{"Usd", currency.USD, `"USD"`},
	{"eur", currency.EUR, `"EUR"`},
	{"EUR", currency.EUR, `"EUR"`},
	{"gbp", currency.GBP, `"GBP"`},
	{"GBP", currency.GBP, `"GBP"`},
	{"jpy", currency.JPY, `"JPY"`},
	{"JPY", currency.JPY, `"JPY"`},
	{"sgd", currency.SGD, `"SGD"`},
	{"SGD", currency.SGD, `"SGD"`},
}

var invalid = []string{
	"389749837598",
	"null",
	"a b",
	"dollars",
}

func TestValidString(t *testing.T) {
	for index, test := range valid {

		var c currency.Currency
		n, err := fmt.Sscan(test.str, &c)
		if nil != err {
			t.Fatalf("%d: string to currency error: %s", index, err)
		}

		if 1 != n {
			t.Fatalf("%d: scanned %d items expected to scan 1", index, n)
		}

		if c != test.c {
			t.Errorf("%d: %q converted to: %#v  expected: %#v", index, test.str, c, test.c)
		}
	}
}

func TestInvalidString(t *testing.T) {
	for index, test := range invalid {

		var c currency.Currency
		n, err := fmt.Sscan(test, &c)
		if fault.InvalidCurrency != err {
			t.Fatalf("%d: string to currency error: %s", index, err)
		}

		if 0 != n {
			t.Fatalf("%d: scanned %d items expected to scan 0(zero)", index, n)
		}

	}
}

func TestMarshalling(t *testing.T) {
	for index, test := range valid {

		buffer, err := json.Marshal(test.c)
		if nil != err {
			t.Fatalf("%d: Marshal JSON error: %s", index, err)
		}

		if test.j != string(buffer) {
			t.Errorf("%d: Marshal JSON expected: %q  actual: %q", index, test.j, buffer)
		}

	}
}

func TestUnmarshalling(t *testing.T) {
	for index, test := range valid {

		buffer := []byte(`"` + test.str + `"`)
		var c currency.Currency
		err := json.Unmarshal(buffer, &c)
		if nil != err {
			t.Fatalf("%d: Unmarshal JSON error: %s", index, err)
		}

		if test.c != c {
			t.Errorf("%d: Unmarshal JSON expected: %#v  actual: %#v", index, test.c, c)
		}

	}
}

func TestIndex(t *testing.T) {
	seen := make(map[int]currency.Currency)
	for c := currency.First; c <= currency.Last; c += 1 {
		if !c.IsValid() {
			t.Fatalf("currency: %#v unexpectedly invalid", c)
		}
		i := c.Index()
		if i < 0 || i >= currency.Count {
			t.Fatalf("currency: %#v index out of range: %d", c, i)
		}
		if first, ok := seen[i]; ok {
			t.Fatalf("currency: %#v duplicates index of %#v", c, first)
		}
		seen[i] = c
	}
	if currency.Count != len(seen) {
		t.Errorf("indexed %d currencies expected: %d", len(seen), currency.Count)
	}
}
