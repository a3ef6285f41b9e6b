// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package domain

import (
	"encoding/binary"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/background"
	"github.com/bitmark-inc/obligationd/directory/parameter"
	"github.com/bitmark-inc/obligationd/messagebus"
	"github.com/bitmark-inc/obligationd/util"
)

// startup party information is provided through DNS TXT records, this
// package fetches and decodes them on a zone derived interval and
// hands the results to the directory updater

const configFile = "/etc/resolv.conf"

type domain struct {
	log        *logger.L
	domainName string
	lookuper   Lookuper
}

// Run - background processing interface
func (d *domain) Run(_ interface{}, shutdown <-chan struct{}) {
	timer := time.After(interval(d.domainName, d.log))

loop:
	for {
		select {
		case <-timer:
			timer = time.After(interval(d.domainName, d.log))
			txts, err := d.lookuper.Lookup(d.domainName)
			if nil != err {
				continue loop
			}

			sendTXTs(txts, d.log)

		case <-shutdown:
			break loop
		}
	}
}

// get interval time for lookup of the parties domain txt records
func interval(domain string, log *logger.L) time.Duration {
	t := parameter.ReFetchingInterval
	var servers []string // dns name server

	// reading default configuration file
	conf, err := dns.ClientConfigFromFile(configFile)

	if nil != err {
		log.Warnf("reading %s error: %s", configFile, err)
		goto done
	}

	if 0 == len(conf.Servers) {
		log.Warnf("cannot get dns name server")
		goto done
	}

	servers = conf.Servers
	// limit the nameservers to lookup
	// https://www.freebsd.org/cgi/man.cgi?resolv.conf
	if len(servers) > 3 {
		servers = servers[:3]
	}

loop:
	for _, server := range servers {

		s := net.JoinHostPort(server, conf.Port)
		c := dns.Client{}
		msg := dns.Msg{}
		msg.SetQuestion(domain+".", dns.TypeSOA) // fixed for type SOA

		r, _, err := c.Exchange(&msg, s)
		if nil != err {
			log.Debugf("exchange with dns server %q error: %s", s, err)
			continue loop
		}

		if 0 == len(r.Ns) && 0 == len(r.Answer) && 0 == len(r.Extra) {
			log.Debugf("no resource record found by dns server %q", s)
			continue loop
		}

		sections := [][]dns.RR{r.Answer, r.Ns, r.Extra}

		for _, section := range sections {
			ttl := ttl(section)
			if 0 < ttl {
				log.Infof("got TTL record from server %q value %d", s, ttl)
				ttlSec := time.Duration(ttl) * time.Second
				if parameter.ReFetchingInterval > ttlSec {
					t = ttlSec
					break loop
				}
			}
		}
	}

done:
	log.Infof("time to re-fetch parties domain: %v", t)
	return t
}

// get TTL record from a resource record
func ttl(rrs []dns.RR) uint32 {
	if 0 == len(rrs) {
		return 0
	}
	for _, rr := range rrs {
		if soa, ok := rr.(*dns.SOA); ok {
			return soa.Hdr.Ttl
		}
		return rr.Header().Ttl
	}
	return 0
}

// New - return background processing interface
func New(log *logger.L, domainName string, f func(string) ([]string, error)) (background.Process, error) {
	log.Info("initialising…")

	d := &domain{
		log:        log,
		domainName: domainName,
		lookuper:   NewLookuper(log, f),
	}

	txts, err := d.lookuper.Lookup(d.domainName)
	if nil != err {
		return nil, err
	}

	sendTXTs(txts, log)

	return d, nil
}

// hand decoded records to the directory updater
func sendTXTs(txts []DnsTXT, log *logger.L) {
	timestamp := make([]byte, 8)
	binary.BigEndian.PutUint64(timestamp, uint64(time.Now().Unix()))

	for i, t := range txts {
		var listeners []byte
		var rpcs []byte

		if nil != t.IPv4 {
			listeners = append(listeners, util.ConnectionFromIPandPort(t.IPv4, t.SessionPort).Pack()...)
			rpcs = append(rpcs, util.ConnectionFromIPandPort(t.IPv4, t.RPCPort).Pack()...)
		}
		if nil != t.IPv6 {
			listeners = append(listeners, util.ConnectionFromIPandPort(t.IPv6, t.SessionPort).Pack()...)
			rpcs = append(rpcs, util.ConnectionFromIPandPort(t.IPv6, t.RPCPort).Pack()...)
		}

		if nil == t.IPv4 && nil == t.IPv6 {
			log.Debugf("result[%d]: ignoring invalid record", i)
			continue
		}

		log.Infof("result[%d]: adding: %s  listeners: %x", i, t.Account, listeners)

		messagebus.Bus.Directory.Send("addparty", t.Account.Bytes(), listeners, t.SessionKey, timestamp)
		messagebus.Bus.Directory.Send("addrpc", t.CertificateFingerprint, rpcs, timestamp)
	}
}
