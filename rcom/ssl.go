// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import (
	"crypto/tls"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// SSL implements Channel over an encrypted (TLS) stream socket. The frame
// layout on the wire is identical to the plain stream variant.
type SSL struct {
	Addr   string      // remote address
	Port   int         // remote port
	Config *tls.Config // nil => certificate verification disabled (lab setups with self-signed peers)
	stream
}

// NewSSL returns an encrypted stream channel ready to be connected
func NewSSL(addr string, port int, config *tls.Config) *SSL {
	return &SSL{Addr: addr, Port: port, Config: config}
}

// Connect dials the remote peer and runs the TLS handshake
func (o *SSL) Connect() (err error) {
	if o.conn != nil {
		return chk.Err("channel to %s:%d is connected already", o.Addr, o.Port)
	}
	cfg := o.Config
	if cfg == nil {
		cfg = &tls.Config{InsecureSkipVerify: true}
	}
	o.conn, err = tls.Dial("tcp", io.Sf("%s:%d", o.Addr, o.Port), cfg)
	if err != nil {
		return chk.Err("cannot connect (ssl) to remote peer at %s:%d: %v", o.Addr, o.Port, err)
	}
	return
}
