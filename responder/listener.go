// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package responder

import (
	"encoding/json"
	"fmt"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/reservoir"
	"github.com/bitmark-inc/obligationd/util"
	"github.com/bitmark-inc/obligationd/zmqutil"
)

const (
	listenerZapDomain = "responder"
	listenerSignal    = "inproc://obligationd-responder-signal"
)

type listener struct {
	log     *logger.L
	handler *handler
	version string
	push    *zmq.Socket
	pull    *zmq.Socket
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

// for the "I" info reply
type serverInfo struct {
	Version string `json:"version"`
	Network string `json:"network"`
	Account string `json:"account"`
	Pending int    `json:"pending"`
	Locks   int    `json:"locks"`
}

// initialise the listener sockets
func (lstn *listener) initialise(privateKey []byte, publicKey []byte, listen []string, version string, h *handler) error {

	log := logger.New("listener")
	lstn.log = log
	lstn.handler = h
	lstn.version = version

	log.Info("initialising…")

	connections, err := util.NewConnections(listen)
	if nil != err {
		return err
	}

	// signalling channel
	lstn.push, lstn.pull, err = zmqutil.NewSignalPair(listenerSignal)
	if nil != err {
		return err
	}

	// allocate IPv4 and IPv6 sockets
	lstn.socket4, lstn.socket6, err = zmqutil.NewBind(log, zmq.REP, listenerZapDomain, privateKey, publicKey, connections)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	return nil
}

// wait for incoming requests, process them and reply
func (lstn *listener) Run(args interface{}, shutdown <-chan struct{}) {

	log := lstn.log

	log.Info("starting…")

	go func() {
		poller := zmq.NewPoller()
		if nil != lstn.socket4 {
			poller.Add(lstn.socket4, zmq.POLLIN)
		}
		if nil != lstn.socket6 {
			poller.Add(lstn.socket6, zmq.POLLIN)
		}
		poller.Add(lstn.pull, zmq.POLLIN)

	loop:
		for {
			log.Debug("waiting…")

			polled, _ := poller.Poll(-1)
			for _, p := range polled {
				switch s := p.Socket; s {
				case lstn.socket4, lstn.socket6:
					lstn.process(s)
				case lstn.pull:
					s.RecvMessageBytes(0)
					break loop
				}
			}
		}
		lstn.pull.Close()
		if nil != lstn.socket4 {
			lstn.socket4.Close()
		}
		if nil != lstn.socket6 {
			lstn.socket6.Close()
		}
		log.Info("stopped")
	}()

	log.Info("started")

	<-shutdown
	log.Info("shutting down…")
	lstn.push.SendMessage("stop")
	lstn.push.Close()
}

// process one request
func (lstn *listener) process(socket *zmq.Socket) {

	log := lstn.log

	data, err := socket.RecvMessageBytes(0)
	if nil != err {
		log.Errorf("receive error: %s", err)
		return
	}

	if len(data) < 2 {
		lstn.sendError(socket, fault.MissingParameters)
		return
	}

	// traffic from another network is refused outright
	if string(data[0]) != mode.NetworkName() {
		lstn.sendError(socket, fault.InvalidNetwork)
		return
	}

	fn := string(data[1])
	parameters := data[2:]

	log.Debugf("received message: %q: %x", fn, parameters)

	var result []byte

	switch fn {

	case "P": // propose: base form, proposer account, proposer endorsement
		if 3 != len(parameters) {
			err = fault.MissingParameters
			break
		}
		result, err = lstn.handler.propose(parameters[0], parameters[1], parameters[2])

	case "A": // abandon: transition id
		if 1 != len(parameters) {
			err = fault.MissingParameters
			break
		}
		err = lstn.handler.abandon(parameters[0])
		result = parameters[0]

	case "C": // confirm: transition id, endorsed form, confirmation
		if 3 != len(parameters) {
			err = fault.MissingParameters
			break
		}
		err = lstn.handler.confirm(parameters[0], parameters[1], parameters[2])
		result = parameters[0]

	case "I": // server information
		pending, locks := reservoir.ReadCounters()
		info := serverInfo{
			Version: lstn.version,
			Network: mode.NetworkName(),
			Account: lstn.handler.account.String(),
			Pending: pending,
			Locks:   locks,
		}
		result, err = json.Marshal(info)

	default:
		err = fmt.Errorf("unknown function: %q", fn)
	}

	if nil != err {
		lstn.sendError(socket, err)
		return
	}

	_, err = socket.Send(fn, zmq.SNDMORE)
	if nil != err {
		log.Criticalf("send error: %s", err)
		return
	}
	_, err = socket.SendBytes(result, 0)
	if nil != err {
		log.Criticalf("send error: %s", err)
	}
}

// send an error reply
func (lstn *listener) sendError(socket *zmq.Socket, item error) {

	log := lstn.log

	log.Warnf("error: %s", item)

	_, err := socket.Send("E", zmq.SNDMORE)
	if nil != err {
		log.Criticalf("send error: %s", err)
		return
	}
	_, err = socket.Send(item.Error(), 0)
	if nil != err {
		log.Criticalf("send error: %s", err)
	}
}
