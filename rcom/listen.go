// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import (
	"crypto/tls"
	"net"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Listener waits for incoming proxy connections. It is the peer-side
// counterpart of NewChannel and is used by the reference peer and tests.
type Listener interface {

	// Accept blocks until one proxy connected and returns the channel,
	// already connected (Connect must not be called on it)
	Accept() (ch Channel, err error)

	// Port returns the bound port (useful when listening on port 0)
	Port() int

	// Close stops listening
	Close() (err error)
}

// Listen binds a listener of the given kind ("tcp" or "udp"; for "ssl"
// use ListenSSL, which requires a certificate). An empty address binds
// the loopback interface.
func Listen(kind, addr string, port int) (lis Listener, err error) {
	if addr == "" {
		addr = "127.0.0.1"
	}
	switch kind {
	case "tcp":
		l, err := net.Listen("tcp", io.Sf("%s:%d", addr, port))
		if err != nil {
			return nil, chk.Err("cannot listen (tcp) on %s:%d: %v", addr, port, err)
		}
		return &streamListener{l: l}, nil
	case "udp":
		laddr, err := net.ResolveUDPAddr("udp", io.Sf("%s:%d", addr, port))
		if err != nil {
			return nil, chk.Err("cannot resolve %s:%d: %v", addr, port, err)
		}
		conn, err := net.ListenUDP("udp", laddr)
		if err != nil {
			return nil, chk.Err("cannot listen (udp) on %s:%d: %v", addr, port, err)
		}
		return &udpListener{conn: conn}, nil
	}
	return nil, chk.Err("unknown listener kind %q; must be \"tcp\" or \"udp\"", kind)
}

// ListenSSL binds an encrypted stream listener. The configuration must
// carry at least one certificate.
func ListenSSL(addr string, port int, config *tls.Config) (lis Listener, err error) {
	if config == nil || len(config.Certificates) == 0 {
		return nil, chk.Err("ssl listener requires a TLS configuration with a certificate")
	}
	if addr == "" {
		addr = "127.0.0.1"
	}
	l, err := tls.Listen("tcp", io.Sf("%s:%d", addr, port), config)
	if err != nil {
		return nil, chk.Err("cannot listen (ssl) on %s:%d: %v", addr, port, err)
	}
	return &streamListener{l: l}, nil
}

// streamListener accepts stream (tcp or ssl) channels
type streamListener struct {
	l net.Listener
}

func (o *streamListener) Accept() (ch Channel, err error) {
	conn, err := o.l.Accept()
	if err != nil {
		return nil, chk.Err("accept failed: %v", err)
	}
	return &Pipe{stream{conn: conn}}, nil
}

func (o *streamListener) Port() int {
	return o.l.Addr().(*net.TCPAddr).Port
}

func (o *streamListener) Close() (err error) {
	return o.l.Close()
}

// udpListener "accepts" a single datagram channel: the remote address is
// latched from the first datagram received
type udpListener struct {
	conn *net.UDPConn
	done bool
}

func (o *udpListener) Accept() (ch Channel, err error) {
	if o.done {
		return nil, chk.Err("udp listener accepts a single channel")
	}
	o.done = true
	return &udpServer{conn: o.conn}, nil
}

func (o *udpListener) Port() int {
	return o.conn.LocalAddr().(*net.UDPAddr).Port
}

func (o *udpListener) Close() (err error) {
	if o.done {
		return // the accepted channel owns the socket
	}
	return o.conn.Close()
}
