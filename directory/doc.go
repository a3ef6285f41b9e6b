// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package directory - the party directory
//
// Resolves a party account to its responder connect address(es) and
// session public key.  Entries are merged from a local parties file
// (hot reloaded on change), from DNS TXT bootstrap records and from a
// cache file restored at startup.  Entries that are not refreshed
// expire, except those from the local file.
//
// The DNS TXT record format is a set of space separated key=value pairs
//
//  Key         Value
//  ==========  =========
//  obligation  v1
//  a           Public IP addresses as IPv4;[IPv6]
//  s           session (responder) port number (decimal)
//  r           RPC port number (decimal)
//  f           SHA3 fingerprint of the certificate used by RPC connection for TLS verification (hex)
//  k           Public key of the responder connection for ZeroMQ encryption (hex)
//  p           party account (base58)
//
package directory
