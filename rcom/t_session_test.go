// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// scriptedPeer answers the protocol on the far pipe endpoint: it counts
// handshakes, echoes a deterministic force on getForce and stops on
// terminate
func scriptedPeer(ch Channel, handshakes *int, done chan<- error) {
	hsdata := make([]int, HandshakeLen)
	if err := ch.RecvInts(hsdata); err != nil {
		done <- err
		return
	}
	*handshakes++
	hs, err := DecodeHandshake(hsdata)
	if err != nil {
		done <- err
		return
	}
	bufs := NewBuffers(hs.Nbasic, hs.Size)
	for {
		if err := ch.Recv(bufs.Out); err != nil {
			done <- err
			return
		}
		cmd, ok := Decode(bufs.Cmd[0])
		if !ok {
			done <- chk.Err("peer got unknown code %v", bufs.Cmd[0])
			return
		}
		switch cmd {
		case GetForce:
			for i := range bufs.Force {
				bufs.Force[i] = 10 * bufs.Disp[i]
			}
			if err := ch.Send(bufs.In); err != nil {
				done <- err
				return
			}
		case Terminate:
			done <- nil
			return
		}
	}
}

func Test_session01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("session01. lazy connect, exchange, terminate")

	a, b := NewPipe()
	handshakes := 0
	done := make(chan error, 1)
	go scriptedPeer(b, &handshakes, done)

	sess := NewSession("tcp", "", 0, 0)
	sess.SetChannel(a)
	chk.String(tst, sess.State().String(), "disconnected")
	if sess.Buffers() != nil {
		tst.Errorf("buffers must be nil before connecting")
		return
	}

	// send on a disconnected session fails
	if err := sess.Send(CommitState); err == nil {
		tst.Errorf("send must fail before connecting")
		return
	}

	// connect; a second call is a no-op (one handshake total)
	if err := sess.Connect(3); err != nil {
		tst.Errorf("Connect failed:\n%v", err)
		return
	}
	if err := sess.Connect(3); err != nil {
		tst.Errorf("repeated Connect must be a no-op:\n%v", err)
		return
	}
	chk.String(tst, sess.State().String(), "connected")
	bufs := sess.Buffers()
	chk.Int(tst, "Nbasic", bufs.Nbasic, 3)
	chk.Int(tst, "Size", bufs.Size, 11)

	// trial state out, force back
	copy(bufs.Disp, []float64{1, 2, 3})
	bufs.Time[0] = 0.1
	if err := sess.Send(SetTrialResponse); err != nil {
		tst.Errorf("Send failed:\n%v", err)
		return
	}
	if err := sess.Request(GetForce); err != nil {
		tst.Errorf("Request failed:\n%v", err)
		return
	}
	chk.Array(tst, "force", 1e-15, bufs.Force, []float64{10, 20, 30})

	// terminate is idempotent and final
	sess.Terminate()
	sess.Terminate()
	chk.String(tst, sess.State().String(), "terminated")
	if err := <-done; err != nil {
		tst.Errorf("peer failed:\n%v", err)
		return
	}
	chk.Int(tst, "handshakes", handshakes, 1)
	if err := sess.Send(CommitState); err == nil {
		tst.Errorf("send must fail after terminating")
		return
	}
	if err := sess.Connect(3); err == nil {
		tst.Errorf("connect must fail after terminating")
	}
}

func Test_session02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("session02. unreachable peer")

	sess := NewSession("tcp", "127.0.0.1", 1, 0)
	if err := sess.Connect(3); err == nil {
		tst.Errorf("connecting to an unreachable peer must fail")
		return
	}
	chk.String(tst, sess.State().String(), "disconnected")
	if sess.Buffers() != nil {
		tst.Errorf("no buffers may be allocated after a failed connect")
		return
	}

	// terminate on a never-connected session sends nothing
	sess.Terminate()
	chk.String(tst, sess.State().String(), "disconnected")
}
