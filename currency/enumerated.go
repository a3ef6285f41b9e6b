// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/fault"
)

// Currency - currency enumeration
type Currency uint64

// possible currency values
const (
	Nothing      Currency = iota // this must be the first value
	USD          Currency = iota
	EUR          Currency = iota
	GBP          Currency = iota
	JPY          Currency = iota
	SGD          Currency = iota
	maximumValue Currency = iota // this must be the last value
	First        Currency = Nothing + 1
	Last         Currency = maximumValue - 1
	Count        int      = int(Last) // count of currencies
)

// all amounts are integral counts of the currency's minor unit
// e.g. cents for USD, whole yen for JPY

// internal conversion
func toString(c Currency) ([]byte, error) {
	switch c {
	case Nothing:
		return []byte{}, nil
	case USD:
		return []byte("USD"), nil
	case EUR:
		return []byte("EUR"), nil
	case GBP:
		return []byte("GBP"), nil
	case JPY:
		return []byte("JPY"), nil
	case SGD:
		return []byte("SGD"), nil
	default:
		return []byte{}, fault.InvalidCurrency
	}
}

// convert a string to a currency
func fromString(in string) (Currency, error) {
	switch strings.ToLower(in) {
	case "":
		return Nothing, nil
	case "usd":
		return USD, nil
	case "eur":
		return EUR, nil
	case "gbp":
		return GBP, nil
	case "jpy":
		return JPY, nil
	case "sgd":
		return SGD, nil
	default:
		return Nothing, fault.InvalidCurrency
	}
}

// String - convert a currency to its string symbol
func (currency Currency) String() string {
	s, err := toString(currency)
	if nil != err {
		logger.Panicf("invalid currency enumeration: %d", currency)
	}
	return string(s)
}

// GoString - convert both enum value and symbol, for debugging
func (currency Currency) GoString() string {
	return fmt.Sprintf("<Currency#%d:%q>", currency, currency.String())
}

// Scan - convert a currency string
func (currency *Currency) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'Z' {
			return true
		}
		if c >= 'a' && c <= 'z' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	parsed, err := fromString(string(token))
	if nil != err {
		return err
	}

	*currency = parsed
	return nil
}

// Uint64 - convert a currency to an unsigned integer for record packing
func (currency Currency) Uint64() uint64 {
	return uint64(currency)
}

// FromUint64 - convert a packed unsigned integer back to a currency
func FromUint64(c uint64) (Currency, error) {
	if c > uint64(Last) {
		return Nothing, fault.InvalidCurrency
	}
	return Currency(c), nil
}

// IsValid - valid currency if in range of First to Last
// Nothing is not considered as valid
func (currency Currency) IsValid() bool {
	return currency >= First && currency <= Last
}

// Index - convert a valid currency to a zero based array index
func (currency Currency) Index() int {
	if !currency.IsValid() {
		logger.Panicf("currency.Index: invalid currency: %d", currency)
	}
	return int(currency - First) // zero based index
}
