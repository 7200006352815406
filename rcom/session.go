// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import "github.com/cpmech/gosl/chk"

// State is the connection lifecycle of a session. There is no transition
// out of Terminated.
type State int

// session states
const (
	Disconnected State = iota // no channel yet; Connect may be attempted
	Connected                 // channel live, buffers allocated
	Terminated                // shutdown signal sent; the session is dead
)

// String returns the name of the state
func (o State) String() string {
	switch o {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Terminated:
		return "terminated"
	}
	return "invalid"
}

// Session drives the remote-substructure command protocol. It owns the
// channel, the exchange buffers and the connection lifecycle. Every
// exchange is a strict send-then-(optional)receive pair: no timeout, no
// retry, at most one exchange in flight. A session belongs to a single
// proxy element; no locking is performed.
type Session struct {

	// configuration
	Kind    string // channel kind: "tcp", "udp" or "ssl"
	Addr    string // remote address; "" => loopback
	Port    int    // remote port
	MinSize int    // minimum frame size override

	// state
	ch    Channel
	state State
	bufs  *Buffers
}

// NewSession returns an idle (disconnected) session
func NewSession(kind, addr string, port, minsize int) *Session {
	return &Session{Kind: kind, Addr: addr, Port: port, MinSize: minsize}
}

// SetChannel injects a pre-built channel (e.g. one endpoint of NewPipe),
// bypassing the transport selection at Connect. For in-process peers and
// tests.
func (o *Session) SetChannel(ch Channel) {
	o.ch = ch
}

// State returns the lifecycle state
func (o *Session) State() State {
	return o.state
}

// Buffers returns the exchange buffers; nil until connected
func (o *Session) Buffers() *Buffers {
	return o.bufs
}

// Connect establishes the connection lazily: exactly one dial, one
// handshake and one buffer allocation. Calling it again while connected
// is a no-op. On failure the session stays disconnected and no buffers
// are allocated; the caller aborts the triggering operation and reports
// upward.
func (o *Session) Connect(nbasic int) (err error) {
	switch o.state {
	case Connected:
		return
	case Terminated:
		return chk.Err("cannot connect: session is terminated")
	}
	ch := o.ch
	if ch == nil {
		if ch, err = NewChannel(o.Kind, o.Addr, o.Port); err != nil {
			return
		}
	}
	if err = ch.Connect(); err != nil {
		return
	}
	hs := Handshake{Nbasic: nbasic, Size: BufferSize(nbasic, o.MinSize)}
	if err = ch.SendInts(hs.Encode()); err != nil {
		ch.Close()
		return chk.Err("handshake failed: %v", err)
	}
	o.ch = ch
	o.bufs = NewBuffers(nbasic, o.MinSize)
	o.state = Connected
	return
}

// Send stamps the command code onto the outbound frame and transmits it.
// Use it for the commands without a reply.
func (o *Session) Send(cmd Cmd) (err error) {
	if o.state != Connected {
		return chk.Err("cannot send %q command: session is %s", cmd, o.state)
	}
	o.bufs.Cmd[0] = float64(cmd)
	return o.ch.Send(o.bufs.Out)
}

// Request transmits the command and blocks for one reply frame. The reply
// is trusted as-is: the protocol carries no length or checksum
// information, so a mis-sized or corrupted reply is NOT detected here.
func (o *Session) Request(cmd Cmd) (err error) {
	if err = o.Send(cmd); err != nil {
		return
	}
	return o.ch.Recv(o.bufs.In)
}

// Terminate notifies the peer that the proxy is going away and closes the
// channel. It runs at most once and only if a connection was ever
// established. The notification is best effort: no acknowledgment is
// awaited and wire errors are ignored (the peer may be gone already).
func (o *Session) Terminate() {
	if o.state != Connected {
		return
	}
	o.bufs.Cmd[0] = float64(Terminate)
	o.ch.Send(o.bufs.Out)
	o.ch.Close()
	o.state = Terminated
}
