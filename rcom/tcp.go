// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import (
	"net"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// TCP implements Channel over a plain stream socket
type TCP struct {
	Addr string // remote address
	Port int    // remote port
	stream
}

// NewTCP returns a stream channel ready to be connected
func NewTCP(addr string, port int) *TCP {
	return &TCP{Addr: addr, Port: port}
}

// Connect dials the remote peer. Failure is fatal to the caller: no retry
// is attempted.
func (o *TCP) Connect() (err error) {
	if o.conn != nil {
		return chk.Err("channel to %s:%d is connected already", o.Addr, o.Port)
	}
	o.conn, err = net.Dial("tcp", io.Sf("%s:%d", o.Addr, o.Port))
	if err != nil {
		return chk.Err("cannot connect to remote peer at %s:%d: %v", o.Addr, o.Port, err)
	}
	return
}
