// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rcom implements the remote-substructure communication layer:
// wire channels, the shared exchange buffers and the command protocol
// driven against a remote peer
package rcom

import "github.com/cpmech/gosl/io"

// Cmd identifies one operation of the remote-substructure protocol. The
// command code is written as the first element of every outbound frame.
type Cmd int

// command codes. the numeric values are part of the wire format
const (
	SetTrialResponse Cmd = 3  // trial disp/vel/accel + time; no reply
	CommitState      Cmd = 5  // the host accepted the current step; no reply
	GetForce         Cmd = 10 // reply: restoring force vector in basic space
	GetInitialStiff  Cmd = 12 // reply: Nbasic by Nbasic matrix; time-invariant
	GetTangentStiff  Cmd = 13 // reply: Nbasic by Nbasic matrix
	GetDamp          Cmd = 14 // reply: Nbasic by Nbasic matrix
	GetMass          Cmd = 15 // reply: Nbasic by Nbasic matrix; time-invariant
	Terminate        Cmd = 99 // shut the remote peer down; no reply
)

// HasReply tells whether cmd blocks for one inbound frame
func (o Cmd) HasReply() bool {
	switch o {
	case GetForce, GetInitialStiff, GetTangentStiff, GetDamp, GetMass:
		return true
	}
	return false
}

// IsMatrix tells whether the reply must be interpreted as the square
// matrix view of the inbound buffer (instead of the force vector view)
func (o Cmd) IsMatrix() bool {
	switch o {
	case GetInitialStiff, GetTangentStiff, GetDamp, GetMass:
		return true
	}
	return false
}

// String returns the name of the command
func (o Cmd) String() string {
	switch o {
	case SetTrialResponse:
		return "setTrialResponse"
	case CommitState:
		return "commitState"
	case GetForce:
		return "getForce"
	case GetInitialStiff:
		return "getInitialStiff"
	case GetTangentStiff:
		return "getTangentStiff"
	case GetDamp:
		return "getDamp"
	case GetMass:
		return "getMass"
	case Terminate:
		return "terminate"
	}
	return io.Sf("unknown(%d)", int(o))
}

// Decode converts the first element of a received frame back into a
// command, rejecting codes outside the closed set
func Decode(code float64) (cmd Cmd, ok bool) {
	cmd = Cmd(code)
	switch cmd {
	case SetTrialResponse, CommitState, GetForce, GetInitialStiff,
		GetTangentStiff, GetDamp, GetMass, Terminate:
		ok = true
	}
	return
}
