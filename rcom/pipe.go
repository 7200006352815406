// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import "net"

// Pipe is an in-memory stream channel. It lets tests and in-process peers
// speak the protocol without real sockets. Exchanges are synchronous:
// a send blocks until the other endpoint reads.
type Pipe struct {
	stream
}

// Connect is a no-op: pipes are born connected
func (o *Pipe) Connect() (err error) { return }

// NewPipe returns the two connected endpoints of an in-memory channel
func NewPipe() (a, b Channel) {
	ca, cb := net.Pipe()
	return &Pipe{stream{conn: ca}}, &Pipe{stream{conn: cb}}
}
