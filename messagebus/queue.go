// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"fmt"
	"reflect"
	"strconv"
)

// Message - message to put into a queue
type Message struct {
	Command    string   // the commands available depend on the queue
	Parameters [][]byte // packed parameters
}

// size of queue if no size tag is present
const defaultQueueSize = 50

// the named queues
type busses struct {
	Directory *queuer `size:"50"` // control commands for the directory background
	TestQueue *queuer `size:"50"` // for testing use
}

// Bus - all available queues
var Bus busses

// queuer - 1:1 queue
//
// exactly one background loop reads the channel
type queuer struct {
	c chan Message
}

// Send - add an item to a queue
func (queue *queuer) Send(command string, parameters ...[]byte) {
	queue.c <- Message{
		Command:    command,
		Parameters: parameters,
	}
}

// Chan - channel to read from a queue
func (queue *queuer) Chan() <-chan Message {
	return queue.c
}

// Release - drop all pending messages
//
// used on shutdown so a stopped reader does not strand senders
func (queue *queuer) Release() {
drain_loop:
	for {
		select {
		case <-queue.c:
		default:
			break drain_loop
		}
	}
}

// create all queues; queue sizes come from the struct tags
func init() {

	busValue := reflect.ValueOf(&Bus).Elem()
	busType := busValue.Type()

	for i := 0; i < busType.NumField(); i += 1 {

		fieldInfo := busType.Field(i)

		queueSize := defaultQueueSize
		if sizeTag := fieldInfo.Tag.Get("size"); "" != sizeTag {
			s, err := strconv.Atoi(sizeTag)
			if nil != err {
				panic(fmt.Sprintf("queue: %s has invalid size: %q", fieldInfo.Name, sizeTag))
			}
			queueSize = s
		}

		q := &queuer{
			c: make(chan Message, queueSize),
		}
		busValue.Field(i).Set(reflect.ValueOf(q))
	}
}
