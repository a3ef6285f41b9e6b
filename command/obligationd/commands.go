// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/zmqutil"
)

const (
	publicKeyFilename  = "obligationd.public"
	privateKeyFilename = "obligationd.private"

	liveSigningKeyFilename = "obligationd.live"
	testSigningKeyFilename = "obligationd.test"

	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files; these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "generate-identity", "id":
		publicKeyFile := getFilenameWithDirectory(arguments, publicKeyFilename)
		privateKeyFile := getFilenameWithDirectory(arguments, privateKeyFilename)
		err := zmqutil.MakeKeyPair(publicKeyFile, privateKeyFile)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFile, publicKeyFile, err)
			exitwithstatus.Exit(1)
		}

		liveSigningKeyFile := getFilenameWithDirectory(arguments, liveSigningKeyFilename)
		testSigningKeyFile := getFilenameWithDirectory(arguments, testSigningKeyFilename)

		if err := makeSigningKey(false, liveSigningKeyFile); nil != err {
			fmt.Printf("generate the signing key for livenet: %q error: %s\n", liveSigningKeyFile, err)
			goto signing_key_failed
		}
		if err := makeSigningKey(true, testSigningKeyFile); nil != err {
			fmt.Printf("generate the signing key for testnet: %q error: %s\n", testSigningKeyFile, err)
			goto signing_key_failed
		}

		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFile, publicKeyFile)
		fmt.Printf("generated signing keys: %q and %q\n", liveSigningKeyFile, testSigningKeyFile)
		return true

	signing_key_failed:
		_ = os.Remove(publicKeyFile)
		_ = os.Remove(privateKeyFile)
		_ = os.Remove(liveSigningKeyFile)
		_ = os.Remove(testSigningKeyFile)
		exitwithstatus.Exit(1)

	case "gen-rpc-cert", "rpc":
		certificateFile := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFile := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFile, privateKeyFile, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFile, certificateFile, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFile, certificateFile)

	case "start", "run":
		return false // continue processing

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  generate-identity [DIR]    (id)     - create private key in: %q\n", "DIR/"+privateKeyFilename)
		fmt.Printf("                                        the public key in:     %q\n", "DIR/"+publicKeyFilename)
		fmt.Printf("                                        and signing keys in:   %q and: %q\n", "DIR/"+liveSigningKeyFilename, "DIR/"+testSigningKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  dns-txt                    (txt)    - display the data to put in a parties TXT record\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convenience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "dns-txt", "txt":
		dnsTXT(options)

	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to the setup handler
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// print out the DNS TXT record
func dnsTXT(options *Configuration) {
	//   <TAG> a=<IPv4;IPv6> s=<RESPONDER-PORT> r=<RPC-PORT> f=<SHA3-256(cert)> k=<SESSION-KEY> p=<ACCOUNT>
	const txtRecord = `TXT "obligation=v1 a=%s s=%d r=%d f=%x k=%x p=%s"` + "\n"

	rpc := options.ClientRPC

	keyPair, err := tls.X509KeyPair([]byte(rpc.Certificate), []byte(rpc.PrivateKey))
	if nil != err {
		exitwithstatus.Message("error: cannot decode certificate  error: %s", err)
	}

	fingerprint := CertificateFingerprint(keyPair.Certificate[0])

	if 0 == len(rpc.Announce) {
		exitwithstatus.Message("error: no rpc announce fields given")
	}

	rpcIP4, rpcIP6, rpcPort := getFirstConnections(rpc.Announce)
	if 0 == rpcPort {
		exitwithstatus.Message("error: cannot determine rpc port")
	}

	if 0 == len(options.Responder.Announce) {
		exitwithstatus.Message("error: no responder announce fields given")
	}

	responderIP4, responderIP6, responderPort := getFirstConnections(options.Responder.Announce)
	if 0 == responderPort {
		exitwithstatus.Message("error: cannot determine responder port")
	}

	sessionKey, err := zmqutil.ReadPublicKey(options.PublicKey)
	if nil != err {
		exitwithstatus.Message("error: cannot decode public key  error: %s", err)
	}

	signingKey, err := readSigningKey(options.SigningKey)
	if nil != err {
		exitwithstatus.Message("error: cannot read signing key: %q  error: %s", options.SigningKey, err)
	}

	IPs := ""
	if "" != rpcIP4 && rpcIP4 == responderIP4 {
		IPs = rpcIP4
	}
	if "" != rpcIP6 && rpcIP6 == responderIP6 {
		if "" == IPs {
			IPs = rpcIP6
		} else {
			IPs += ";" + rpcIP6
		}
	}

	fmt.Printf("rpc fingerprint: %x\n", fingerprint)
	fmt.Printf("rpc port:        %d\n", rpcPort)
	fmt.Printf("responder port:  %d\n", responderPort)
	fmt.Printf("session key:     %x\n", sessionKey)
	fmt.Printf("account:         %s\n", signingKey.Account())
	fmt.Printf("IP4 IP6:         %s\n", IPs)

	fmt.Printf(txtRecord, IPs, responderPort, rpcPort, fingerprint, sessionKey, signingKey.Account())
}

// extract first IP4 and/or IP6 connection
func getFirstConnections(connections []string) (string, string, int) {

	initialPort := 0
	IP4 := ""
	IP6 := ""

scan_connections:
	for i, c := range connections {
		if "" == c {
			continue scan_connections
		}
		v6, IP, port, err := splitConnection(c)
		if nil != err {
			exitwithstatus.Message("error: cannot decode[%d]: %q  error: %s", i, c, err)
		}
		if v6 {
			if "" == IP6 {
				IP6 = IP
				if 0 == initialPort || port == initialPort {
					initialPort = port
				}
			}
		} else {
			if "" == IP4 {
				IP4 = IP
				if 0 == initialPort || port == initialPort {
					initialPort = port
				}
			}
		}
	}
	return IP4, IP6, initialPort
}

// split connection into ip and port
func splitConnection(hostPort string) (bool, string, int, error) {
	host, port, err := net.SplitHostPort(hostPort)
	if nil != err {
		return false, "", 0, fault.InvalidIpAddress
	}

	IP := net.ParseIP(strings.Trim(host, " "))
	if nil == IP {
		return false, "", 0, fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return false, "", 0, err
	}
	if numericPort < 1 || numericPort > 65535 {
		return false, "", 0, fault.InvalidPortNumber
	}

	if nil != IP.To4() {
		return false, IP.String(), numericPort, nil
	}
	return true, "[" + IP.String() + "]", numericPort, nil
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// create a file with a new seed for the identity account
func makeSigningKey(testnet bool, fileName string) error {
	seed, err := account.NewBase58EncodedSeedV2(testnet)
	if nil != err {
		return err
	}

	data := "SEED:" + seed + "\n"
	if err = ioutil.WriteFile(fileName, []byte(data), 0600); nil != err {
		return fmt.Errorf("error writing signing key file error: %s", err)
	}

	return nil
}

// read the identity account seed file written by generate-identity
func readSigningKey(fileName string) (*account.PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, "SEED:") {
		return nil, fault.InvalidSeedHeader
	}
	return account.PrivateKeyFromBase58Seed(s[5:])
}
