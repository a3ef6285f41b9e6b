// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/fault"
)

// Connection - type to hold an IP and Port
type Connection struct {
	ip   net.IP
	port uint16
}

// NewConnection - convert a host:port string to a connection
func NewConnection(hostPort string) (*Connection, error) {

	host, port, err := net.SplitHostPort(hostPort)
	if nil != err {
		return nil, fault.InvalidIpAddress
	}

	IP := net.ParseIP(strings.Trim(host, " "))
	if nil == IP {
		return nil, fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return nil, fault.InvalidPortNumber
	}
	if numericPort < 1 || numericPort > 65535 {
		return nil, fault.InvalidPortNumber
	}

	c := &Connection{
		ip:   IP,
		port: uint16(numericPort),
	}
	return c, nil
}

// NewConnections - convert an array of host:port strings to connections
func NewConnections(hostPorts []string) ([]*Connection, error) {
	if 0 == len(hostPorts) {
		return nil, fault.InvalidCount
	}
	c := make([]*Connection, len(hostPorts))
	for i, hostPort := range hostPorts {
		err := error(nil)
		c[i], err = NewConnection(hostPort)
		if nil != err {
			return nil, err
		}
	}
	return c, nil
}

// ConnectionFromIPandPort - convert an IP and port to a connection
func ConnectionFromIPandPort(ip net.IP, port uint16) *Connection {
	return &Connection{
		ip:   ip,
		port: port,
	}
}

// CanonicalIPandPort - make the IP:Port canonical
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
//
// prefix is optional and can be empty ("")
// returns prefixed string and IPv6 flag
func (conn *Connection) CanonicalIPandPort(prefix string) (string, bool) {

	port := strconv.Itoa(int(conn.port))
	if nil != conn.ip.To4() {
		return prefix + conn.ip.String() + ":" + port, false
	}
	return prefix + "[" + conn.ip.String() + "]:" + port, true
}

// String - a connection represented as a string
func (conn Connection) String() string {
	s, _ := conn.CanonicalIPandPort("")
	return s
}

// MarshalText - a connection represented as a byte slice for JSON
func (conn Connection) MarshalText() ([]byte, error) {
	s, _ := conn.CanonicalIPandPort("")
	return []byte(s), nil
}

// PackedConnection - packed byte buffer of one or more IP and Port records
//
// byte layout: size byte, 2 byte big endian port, 4 or 16 byte IP
type PackedConnection []byte

// Pack - pack an IP and Port into a byte buffer
func (conn *Connection) Pack() PackedConnection {

	b := []byte(conn.ip)
	if ip4 := conn.ip.To4(); nil != ip4 {
		b = ip4
	}
	length := len(b)
	if 4 != length && 16 != length {
		logger.Panicf("connection.Pack: invalid IP length: %d", length)
	}
	size := length + 3
	b2 := make([]byte, size)
	b2[0] = byte(size)
	b2[1] = byte(conn.port >> 8)
	b2[2] = byte(conn.port)
	copy(b2[3:], b)
	return b2
}

// Unpack - unpack a byte buffer into an IP and Port
//
// returns nil connection if the unpack fails, otherwise the connection
// and the number of bytes used so a list can be unpacked easily
func (packed PackedConnection) Unpack() (*Connection, int) {

	if nil == packed {
		return nil, 0
	}
	count := len(packed)
	if count < 7 {
		return nil, 0
	}
	size := int(packed[0])
	if 7 != size && 19 != size {
		return nil, 0
	}
	if count < size {
		return nil, 0
	}

	port := uint16(packed[1])<<8 + uint16(packed[2])
	ip := make(net.IP, size-3)
	copy(ip, packed[3:size])

	c := &Connection{
		ip:   ip,
		port: port,
	}
	return c, size
}

// Unpack46 - unpack the first IPv4 and the first IPv6 connection
func (packed PackedConnection) Unpack46() (*Connection, *Connection) {

	// only need first of each type
	ipv4Connection := (*Connection)(nil)
	ipv6Connection := (*Connection)(nil)

	for {
		conn, n := packed.Unpack()
		packed = packed[n:]

		if nil == conn {
			return ipv4Connection, ipv6Connection
		}

		if nil != conn.ip.To4() {
			if nil == ipv4Connection {
				ipv4Connection = conn
			}
		} else if nil == ipv6Connection {
			ipv6Connection = conn
		}

		if nil != ipv4Connection && nil != ipv6Connection {
			return ipv4Connection, ipv6Connection
		}
	}
}
