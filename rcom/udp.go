// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import (
	"net"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// udpChunk is the number of 8-byte values per datagram. Frames larger
// than this are fragmented; both endpoints walk the same chunk schedule,
// so datagram boundaries carry no extra information.
const udpChunk = 512

// UDP implements Channel over a datagram socket. Delivery is best effort:
// a lost datagram blocks the exchange forever, exactly like a
// non-responding stream peer.
type UDP struct {
	Addr string // remote address
	Port int    // remote port
	conn *net.UDPConn
	sb   []byte
	rb   []byte
}

// NewUDP returns a datagram channel ready to be connected
func NewUDP(addr string, port int) *UDP {
	return &UDP{Addr: addr, Port: port}
}

// Connect binds the datagram socket to the remote peer
func (o *UDP) Connect() (err error) {
	if o.conn != nil {
		return chk.Err("channel to %s:%d is connected already", o.Addr, o.Port)
	}
	raddr, err := net.ResolveUDPAddr("udp", io.Sf("%s:%d", o.Addr, o.Port))
	if err != nil {
		return chk.Err("cannot resolve remote peer address %s:%d: %v", o.Addr, o.Port, err)
	}
	o.conn, err = net.DialUDP("udp", nil, raddr)
	if err != nil {
		return chk.Err("cannot connect (udp) to remote peer at %s:%d: %v", o.Addr, o.Port, err)
	}
	return
}

// Send transmits one whole frame as a sequence of datagrams
func (o *UDP) Send(data []float64) (err error) {
	if o.conn == nil {
		return chk.Err("channel is not connected")
	}
	for len(data) > 0 {
		n := len(data)
		if n > udpChunk {
			n = udpChunk
		}
		b := grow(&o.sb, 8*n)
		putFloats(b, data[:n])
		if _, err = o.conn.Write(b); err != nil {
			return chk.Err("send failed: %v", err)
		}
		data = data[n:]
	}
	return
}

// Recv blocks until the whole frame arrived, datagram by datagram
func (o *UDP) Recv(data []float64) (err error) {
	if o.conn == nil {
		return chk.Err("channel is not connected")
	}
	for len(data) > 0 {
		n := len(data)
		if n > udpChunk {
			n = udpChunk
		}
		b := grow(&o.rb, 8*n)
		nread, err := o.conn.Read(b)
		if err != nil {
			return chk.Err("receive failed: %v", err)
		}
		if nread != 8*n {
			return chk.Err("short datagram: expected %d bytes, got %d", 8*n, nread)
		}
		getFloats(data[:n], b)
		data = data[n:]
	}
	return
}

// SendInts transmits an integer array (fits one datagram)
func (o *UDP) SendInts(data []int) (err error) {
	if o.conn == nil {
		return chk.Err("channel is not connected")
	}
	b := grow(&o.sb, 8*len(data))
	putInts(b, data)
	if _, err = o.conn.Write(b); err != nil {
		return chk.Err("send failed: %v", err)
	}
	return
}

// RecvInts blocks until the integer array arrived
func (o *UDP) RecvInts(data []int) (err error) {
	if o.conn == nil {
		return chk.Err("channel is not connected")
	}
	b := grow(&o.rb, 8*len(data))
	nread, err := o.conn.Read(b)
	if err != nil {
		return chk.Err("receive failed: %v", err)
	}
	if nread != 8*len(data) {
		return chk.Err("short datagram: expected %d bytes, got %d", 8*len(data), nread)
	}
	getInts(data, b)
	return
}

// Close releases the socket
func (o *UDP) Close() (err error) {
	if o.conn == nil {
		return
	}
	return o.conn.Close()
}

// udpServer is the accepted side of a datagram channel. The remote
// address is latched from the first datagram (the handshake descriptor).
type udpServer struct {
	conn   *net.UDPConn
	remote *net.UDPAddr
	sb     []byte
	rb     []byte
}

func (o *udpServer) Connect() (err error) { return }

func (o *udpServer) Send(data []float64) (err error) {
	if o.remote == nil {
		return chk.Err("no datagram peer latched yet")
	}
	for len(data) > 0 {
		n := len(data)
		if n > udpChunk {
			n = udpChunk
		}
		b := grow(&o.sb, 8*n)
		putFloats(b, data[:n])
		if _, err = o.conn.WriteToUDP(b, o.remote); err != nil {
			return chk.Err("send failed: %v", err)
		}
		data = data[n:]
	}
	return
}

func (o *udpServer) Recv(data []float64) (err error) {
	for len(data) > 0 {
		n := len(data)
		if n > udpChunk {
			n = udpChunk
		}
		b := grow(&o.rb, 8*n)
		nread, raddr, err := o.conn.ReadFromUDP(b)
		if err != nil {
			return chk.Err("receive failed: %v", err)
		}
		if nread != 8*n {
			return chk.Err("short datagram: expected %d bytes, got %d", 8*n, nread)
		}
		o.remote = raddr
		getFloats(data[:n], b)
		data = data[n:]
	}
	return
}

func (o *udpServer) SendInts(data []int) (err error) {
	if o.remote == nil {
		return chk.Err("no datagram peer latched yet")
	}
	b := grow(&o.sb, 8*len(data))
	putInts(b, data)
	if _, err = o.conn.WriteToUDP(b, o.remote); err != nil {
		return chk.Err("send failed: %v", err)
	}
	return
}

func (o *udpServer) RecvInts(data []int) (err error) {
	b := grow(&o.rb, 8*len(data))
	nread, raddr, err := o.conn.ReadFromUDP(b)
	if err != nil {
		return chk.Err("receive failed: %v", err)
	}
	if nread != 8*len(data) {
		return chk.Err("short datagram: expected %d bytes, got %d", 8*len(data), nread)
	}
	o.remote = raddr
	getInts(data, b)
	return
}

func (o *udpServer) Close() (err error) {
	return o.conn.Close()
}
