// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/cpmech/gohyb/rcom"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Serve answers the remote-substructure protocol on a connected channel
// until the proxy terminates or the channel closes. The frame roles are
// mirrored: the peer receives frames laid out like the proxy's outbound
// buffer and replies with frames laid out like the proxy's inbound one,
// so the same Buffers type serves both endpoints.
func Serve(ch rcom.Channel, model Substructure) (err error) {

	// handshake: the proxy announces sizes once, before any command
	hsdata := make([]int, rcom.HandshakeLen)
	if err = ch.RecvInts(hsdata); err != nil {
		return chk.Err("handshake failed: %v", err)
	}
	hs, err := rcom.DecodeHandshake(hsdata)
	if err != nil {
		return
	}
	if hs.Nbasic != model.NumDof() {
		return chk.Err("proxy announced %d basic DOFs but the substructure has %d", hs.Nbasic, model.NumDof())
	}
	bufs := rcom.NewBuffers(hs.Nbasic, hs.Size)
	if bufs.Size != hs.Size {
		return chk.Err("agreed frame capacity %d does not match locally computed %d", hs.Size, bufs.Size)
	}

	// command loop: one frame in, at most one frame out
	for {
		if err = ch.Recv(bufs.Out); err != nil {
			return chk.Err("receive failed (proxy gone?): %v", err)
		}
		cmd, ok := rcom.Decode(bufs.Cmd[0])
		if !ok {
			return chk.Err("received an unknown command code: %v", bufs.Cmd[0])
		}
		switch cmd {

		case rcom.SetTrialResponse:
			model.SetTrial(bufs.Disp, bufs.Vel, bufs.Accel, bufs.Time[0])

		case rcom.CommitState:
			model.Commit()

		case rcom.GetTangentStiff:
			if err = reply(ch, bufs, model.TangentStiff()); err != nil {
				return
			}

		case rcom.GetInitialStiff:
			if err = reply(ch, bufs, model.InitialStiff()); err != nil {
				return
			}

		case rcom.GetDamp:
			if err = reply(ch, bufs, model.Damp()); err != nil {
				return
			}

		case rcom.GetMass:
			if err = reply(ch, bufs, model.Mass()); err != nil {
				return
			}

		case rcom.GetForce:
			copy(bufs.Force, model.RestoringForce())
			if err = ch.Send(bufs.In); err != nil {
				return
			}

		case rcom.Terminate:
			return nil
		}
	}
}

// reply fills the matrix view of the inbound frame and sends it. With an
// empty basic space there is no matrix view and the frame goes out as-is.
func reply(ch rcom.Channel, bufs *rcom.Buffers, m *la.Matrix) (err error) {
	if bufs.Mat != nil {
		copy(bufs.Mat.Data, m.Data)
	}
	return ch.Send(bufs.In)
}

// ListenAndServe binds a listener, accepts one proxy connection and
// serves it to completion. It is the one-call variant used by drivers.
func ListenAndServe(kind, addr string, port int, model Substructure) (err error) {
	lis, err := rcom.Listen(kind, addr, port)
	if err != nil {
		return
	}
	defer lis.Close()
	ch, err := lis.Accept()
	if err != nil {
		return
	}
	defer ch.Close()
	return Serve(ch, model)
}
