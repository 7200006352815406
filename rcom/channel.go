// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import (
	"encoding/binary"
	goio "io"
	"math"
	"net"

	"github.com/cpmech/gosl/chk"
)

// Channel is a connected, bidirectional exchange of fixed-size frames
// with the remote peer. All operations are synchronous, blocking and
// whole-buffer; there is no timeout and at most one exchange in flight.
// Channels are owned by a single session; no locking is performed.
type Channel interface {

	// Connect establishes the connection. It must be called exactly once
	// before first use and fails if the peer is unreachable.
	Connect() (err error)

	// Send transmits one whole frame of values
	Send(data []float64) (err error)

	// Recv blocks until len(data) values arrived
	Recv(data []float64) (err error)

	// SendInts transmits an integer array (the handshake descriptor)
	SendInts(data []int) (err error)

	// RecvInts blocks until len(data) integers arrived
	RecvInts(data []int) (err error)

	// Close releases the connection
	Close() (err error)
}

// NewChannel selects one of the wire-compatible transports. kind must be
// "tcp" (stream), "udp" (datagram) or "ssl" (encrypted stream). An empty
// address defaults to the local loopback.
func NewChannel(kind, addr string, port int) (ch Channel, err error) {
	if addr == "" {
		addr = "127.0.0.1"
	}
	switch kind {
	case "tcp":
		return NewTCP(addr, port), nil
	case "udp":
		return NewUDP(addr, port), nil
	case "ssl":
		return NewSSL(addr, port, nil), nil
	}
	return nil, chk.Err("unknown channel kind %q; must be \"tcp\", \"udp\" or \"ssl\"", kind)
}

// values travel as little-endian IEEE-754 doubles; integers as int64.
// this matches the peer implementation in this repository; there is no
// in-band description of the layout.

func putFloats(b []byte, data []float64) {
	for i, v := range data {
		binary.LittleEndian.PutUint64(b[8*i:], math.Float64bits(v))
	}
}

func getFloats(data []float64, b []byte) {
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
}

func putInts(b []byte, data []int) {
	for i, v := range data {
		binary.LittleEndian.PutUint64(b[8*i:], uint64(int64(v)))
	}
}

func getInts(data []int, b []byte) {
	for i := range data {
		data[i] = int(int64(binary.LittleEndian.Uint64(b[8*i:])))
	}
}

// stream implements frame exchange over any connected byte stream
type stream struct {
	conn net.Conn
	sb   []byte // send scratch
	rb   []byte // recv scratch
}

func grow(scratch *[]byte, n int) []byte {
	if cap(*scratch) < n {
		*scratch = make([]byte, n)
	}
	return (*scratch)[:n]
}

func (o *stream) Send(data []float64) (err error) {
	if o.conn == nil {
		return chk.Err("channel is not connected")
	}
	b := grow(&o.sb, 8*len(data))
	putFloats(b, data)
	if _, err = o.conn.Write(b); err != nil {
		return chk.Err("send failed: %v", err)
	}
	return
}

func (o *stream) Recv(data []float64) (err error) {
	if o.conn == nil {
		return chk.Err("channel is not connected")
	}
	b := grow(&o.rb, 8*len(data))
	if _, err = goio.ReadFull(o.conn, b); err != nil {
		return chk.Err("receive failed: %v", err)
	}
	getFloats(data, b)
	return
}

func (o *stream) SendInts(data []int) (err error) {
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

func (o *stream) RecvInts(data []int) (err error) {
	if o.conn == nil {
		return chk.Err("channel is not connected")
	}
	b := grow(&o.rb, 8*len(data))
	if _, err = goio.ReadFull(o.conn, b); err != nil {
		return chk.Err("receive failed: %v", err)
	}
	getInts(data, b)
	return
}

func (o *stream) Close() (err error) {
	if o.conn == nil {
		return
	}
	return o.conn.Close()
}
