// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/counter"
	"github.com/bitmark-inc/obligationd/directory"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/util"
)

const (
	logName            = "client_rpc"
	connectionLimit    = 100
	minConnectionCount = 1
)

// Listener - a server instance that can be started and stopped
type Listener interface {
	Serve() error
	Stop()
}

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	Announce           []string `gluamapper:"announce" json:"announce"`
}

// the argument passed to the callback
type serverArgument struct {
	Log    *logger.L
	Server *rpc.Server
	Count  *counter.Counter
}

type rpcListener struct {
	log      *logger.L
	ml       *listener.MultiListener
	argument *serverArgument
}

func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	dir directory.Directory,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	// setup announce
	rpcs := make([]byte, 0, connectionLimit)

	for _, address := range configuration.Announce {
		if "" == address {
			continue
		}
		c, err := util.NewConnection(address)
		if nil != err {
			log.Errorf("invalid %s announce: %q  error: %s", logName, address, err)
			return nil, err
		}
		rpcs = append(rpcs, c.Pack()...)
	}

	err := dir.SetRPC(util.FingerprintBytes(certificateFingerprint), rpcs)
	if nil != err {
		log.Criticalf("announce rpc error: %s", err)
		return nil, err
	}

	addresses, err := canonicalListenAddresses(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	limiter := listener.NewLimiter(configuration.MaximumConnections)

	ml, err := listener.NewMultiListener(logName, addresses, tlsConfig, limiter, Callback)
	if nil != err {
		log.Errorf("invalid %s listen addresses: %s", logName, err)
		return nil, err
	}

	r := &rpcListener{
		log: log,
		ml:  ml,
		argument: &serverArgument{
			Log:    log,
			Server: server,
			Count:  count,
		},
	}

	return r, nil
}

// Serve - start accepting connections
func (r *rpcListener) Serve() error {
	r.ml.Start(r.argument)
	return nil
}

// Stop - stop accepting connections
func (r *rpcListener) Stop() {
	r.ml.Stop()
}

// Callback - handle a single connection
func Callback(conn io.ReadWriteCloser, argument interface{}) {

	serverArgument := argument.(*serverArgument)

	log := serverArgument.Log
	log.Info("starting…")

	server := serverArgument.Server

	serverArgument.Count.Increment()
	defer serverArgument.Count.Decrement()

	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	server.ServeCodec(codec)

	log.Info("finished")
}

// validate all listen addresses, changing "*:PORT" to "[::]:PORT"
// on the assumption that this will listen on tcp4 and tcp6
func canonicalListenAddresses(addrs []string, log *logger.L) ([]string, error) {
	canonical := make([]string, len(addrs))
	for i, listen := range addrs {
		host := ""
		if '*' == listen[0] {
			canonical[i] = "[::]" + ":" + strings.Split(listen, ":")[1]
			host = "::"
		} else if '[' == listen[0] {
			canonical[i] = listen
			host = strings.Split(listen[1:], "]:")[0]
		} else {
			canonical[i] = listen
			host = strings.Split(listen, ":")[0]
		}

		if ip := net.ParseIP(host); nil == ip {
			err := fault.InvalidIpAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return canonical, nil
}
