// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/command/obligation-cli/configuration"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/fault"
)

// identity is required, but not check the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", fmt.Errorf("identity is required")
	}

	return name, nil
}

// connect is required
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", fmt.Errorf("connect is required")
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", fmt.Errorf("description is required")
	}

	return description, nil
}

// seed is either a valid seed for the network or generated on request
func checkSeed(seed string, new bool, testnet bool) (string, error) {

	if new && "" == seed {
		var err error
		seed, err = account.NewBase58EncodedSeedV2(testnet)
		if nil != err {
			return "", err
		}
	}
	if "" == seed {
		return "", fault.IncompatibleOptions
	}

	// failure of the private key to decode indicates an invalid seed
	private, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return "", err
	}
	if private.IsTesting() != testnet {
		return "", fault.WrongNetworkForPrivateKey
	}

	return seed, nil
}

// check for non-blank file name
func checkFileName(fileName string) (string, error) {
	if "" == fileName {
		return "", fmt.Errorf("file name is required")
	}

	return fileName, nil
}

// check if file exists, return true if it is a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return s.IsDir(), nil
}

// transition id is required, parsed later by the RPC call
func checkTxId(txId string) (string, error) {
	if "" == txId {
		return "", fmt.Errorf("transition id is required")
	}

	return txId, nil
}

// record id is required, parsed later by the RPC call
func checkRecordId(recordId string) (string, error) {
	if "" == recordId {
		return "", fmt.Errorf("record id is required")
	}

	return recordId, nil
}

// currency symbol is required and must be a supported currency
func checkCurrency(symbol string) (currency.Currency, error) {
	if "" == symbol {
		return currency.Nothing, fmt.Errorf("currency is required")
	}

	var c currency.Currency
	err := c.UnmarshalText([]byte(symbol))
	if nil != err {
		return currency.Nothing, err
	}
	if !c.IsValid() {
		return currency.Nothing, fault.InvalidCurrency
	}

	return c, nil
}

// amount must be non-zero
func checkAmount(amount uint64) (uint64, error) {
	if 0 == amount {
		return 0, fault.InvalidAmount
	}

	return amount, nil
}

// signature must be non-blank hex
func checkSignature(s string) (account.Signature, error) {
	if "" == s {
		return nil, fmt.Errorf("signature is required")
	}

	h, err := hex.DecodeString(s)
	if nil != err {
		return nil, err
	}

	return account.Signature(h), nil
}

// count must be positive
func checkRecordCount(count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("invalid count: %d", count)
	}

	return count, nil
}

// resolve a flag either as an identity name or as a base58 account
func checkRecipient(c *cli.Context, name string, config *configuration.Configuration) (string, *account.Account, error) {
	recipient := c.String(name)
	if "" == recipient {
		return "", nil, fmt.Errorf("%s is required", name)
	}

	newOwner, err := config.Account(recipient)
	if nil != err {
		newOwner, err = account.AccountFromBase58(recipient)
		if nil != err {
			return "", nil, err
		}
	}

	return recipient, newOwner, nil
}

// resolve an account from a name falling back through the global
// identity to the configured default identity
func checkAccountWithDefault(name string, config *configuration.Configuration, c *cli.Context) (string, *account.Account, error) {
	if "" == name {
		name = c.GlobalString("identity")
		if "" == name {
			name = config.DefaultIdentity
		}
	}

	owner, err := config.Account(name)
	if nil != err {
		owner, err = account.AccountFromBase58(name)
		if nil != err {
			return "", nil, err
		}
	}

	return name, owner, nil
}

// decrypt an identity, the password coming from the global flag, an
// agent or an interactive prompt
func checkOwnerWithPasswordPrompt(name string, config *configuration.Configuration, c *cli.Context) (string, *configuration.Private, error) {
	if "" == name {
		name = config.DefaultIdentity
	}

	var err error

	// get global password items
	agent := c.GlobalString("use-agent")
	clearCache := c.GlobalBool("zero-agent-cache")
	password := c.GlobalString("password")

	if "" != agent {
		password, err = passwordFromAgent(name, c.Command.Name, agent, clearCache)
		if nil != err {
			return "", nil, err
		}
	} else if "" == password {
		password, err = promptPassword()
		if nil != err {
			return "", nil, err
		}
	}

	owner, err := config.Private(password, name)
	if nil != err {
		return "", nil, err
	}

	return name, owner, nil
}

// random nonce for issue when the caller does not supply one
func randomNonce() (uint64, error) {
	buffer := make([]byte, 8)
	_, err := rand.Read(buffer)
	if nil != err {
		return 0, err
	}

	return binary.BigEndian.Uint64(buffer), nil
}
