// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	proto "github.com/golang/protobuf/proto"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/notary"
	"github.com/bitmark-inc/obligationd/util"
	"github.com/bitmark-inc/obligationd/zmqutil"
)

const (
	listenerZapDomain = "notary"
	listenerSignal    = "inproc://notaryd-listener-signal"
)

type listener struct {
	log     *logger.L
	notary  *notariser
	push    *zmq.Socket // signal send
	pull    *zmq.Socket // signal receive
	socket4 *zmq.Socket // IPv4 traffic
	socket6 *zmq.Socket // IPv6 traffic
}

// type to hold server info
type serverInfo struct {
	Version string `json:"version"`
	Network string `json:"network"`
	Account string `json:"account"`
}

// initialise the listener
func (lstn *listener) initialise(privateKey []byte, publicKey []byte, listen []string, n *notariser) error {

	log := logger.New("listener")
	lstn.log = log
	lstn.notary = n

	log.Info("initialising…")

	c, err := util.NewConnections(listen)
	if nil != err {
		log.Errorf("ip and port error: %s", err)
		return err
	}

	// signalling channel
	lstn.push, lstn.pull, err = zmqutil.NewSignalPair(listenerSignal)
	if nil != err {
		return err
	}

	// allocate IPv4 and IPv6 sockets
	lstn.socket4, lstn.socket6, err = zmqutil.NewBind(log, zmq.REP, listenerZapDomain, privateKey, publicKey, c)
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
			sockets, _ := poller.Poll(-1)
			for _, socket := range sockets {
				switch s := socket.Socket; s {
				case lstn.socket4:
					lstn.process(lstn.socket4)
				case lstn.socket6:
					lstn.process(lstn.socket6)
				case lstn.pull:
					s.RecvMessageBytes(0)
					break loop
				}
			}
		}
		log.Info("shutting down…")
		lstn.pull.Close()
		if nil != lstn.socket4 {
			lstn.socket4.Close()
		}
		if nil != lstn.socket6 {
			lstn.socket6.Close()
		}
		log.Info("stopped")
	}()

	// wait for shutdown
	<-shutdown
	lstn.push.SendMessage("stop")
	lstn.push.Close()
}

// process one request and reply on the same socket
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

	// the first frame names the network; traffic from another
	// network is refused outright
	if string(data[0]) != mode.NetworkName() {
		lstn.sendError(socket, fault.InvalidNetwork)
		return
	}

	fn := string(data[1])
	parameters := data[2:]

	log.Debugf("received message: %q", fn)

	result := []byte{}

	switch fn {
	case "S": // submit a transition for notarisation
		if 1 != len(parameters) {
			err = fault.MissingParameters
			break
		}
		request := &notary.SubmitRequest{}
		err = proto.Unmarshal(parameters[0], request)
		if nil != err {
			break
		}
		result, err = proto.Marshal(lstn.notary.process(request.Packed, request.Signers))

	case "I": // server information
		info := serverInfo{
			Version: version,
			Network: mode.NetworkName(),
			Account: lstn.notary.account.String(),
		}
		result, err = json.Marshal(info)

	default:
		err = fmt.Errorf("unknown function: %q", fn)
	}

	if nil != err {
		lstn.sendError(socket, err)
		return
	}

	// send results
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

// send an error packet
func (lstn *listener) sendError(socket *zmq.Socket, item error) {
	errorMessage := item.Error()
	_, err := socket.Send("E", zmq.SNDMORE)
	if nil != err {
		lstn.log.Criticalf("send error: %s", err)
		return
	}
	_, err = socket.Send(errorMessage, 0)
	if nil != err {
		lstn.log.Criticalf("send error: %s", err)
	}
}
