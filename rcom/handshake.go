// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import "github.com/cpmech/gosl/chk"

// HandshakeLen is the number of integer slots in the setup descriptor
const HandshakeLen = 11

// Handshake is the fixed-size descriptor announced to the remote peer
// once, before any command traffic, so both sides size their frames
// identically. Sizing is trusted, not negotiated: both endpoints must
// derive the same basic-space size from the same model data.
//
// Slot layout:
//
//   [0..4] control sizes: disp, vel, accel, force, time
//   [5..9] acquisition sizes: disp, vel, accel, force, time
//   [10]   agreed frame capacity
//
// The proxy announces disp = vel = accel = Nbasic, time = 1 on the
// control side and force = Nbasic on the acquisition side.
type Handshake struct {
	Nbasic int // basic-space size
	Size   int // agreed frame capacity
}

// Encode stores the descriptor into its integer slots
func (o Handshake) Encode() (data []int) {
	data = make([]int, HandshakeLen)
	data[0] = o.Nbasic // ctrl disp
	data[1] = o.Nbasic // ctrl vel
	data[2] = o.Nbasic // ctrl accel
	data[4] = 1        // ctrl time
	data[8] = o.Nbasic // daq force
	data[10] = o.Size
	return
}

// DecodeHandshake reads the descriptor back from its integer slots,
// checking internal consistency
func DecodeHandshake(data []int) (o Handshake, err error) {
	if len(data) != HandshakeLen {
		err = chk.Err("handshake descriptor must have %d slots; got %d", HandshakeLen, len(data))
		return
	}
	o.Nbasic = data[0]
	o.Size = data[10]
	if o.Nbasic < 0 {
		err = chk.Err("handshake announces a negative basic-space size: %d", o.Nbasic)
		return
	}
	if data[1] != o.Nbasic || data[2] != o.Nbasic || data[8] != o.Nbasic {
		err = chk.Err("handshake control/acquisition sizes disagree: disp=%d vel=%d accel=%d force=%d", data[0], data[1], data[2], data[8])
		return
	}
	if o.Size < BufferSize(o.Nbasic, 0) {
		err = chk.Err("handshake frame capacity %d is smaller than the minimum %d for %d basic DOFs", o.Size, BufferSize(o.Nbasic, 0), o.Nbasic)
	}
	return
}
