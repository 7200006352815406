// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import (
	"github.com/cpmech/gosl/la"
)

// Buffers holds the two flat frames exchanged with the remote peer plus
// the named views carved into them. All views alias the frame storage;
// nothing is copied.
//
// Outbound layout (fixed offsets):
//
//   [0]              command code
//   [1 : 1+n]        trial displacements (basic space)
//   [1+n : 1+2n]     trial velocities
//   [1+2n : 1+3n]    trial accelerations
//   [1+3n]           simulation time
//
// The inbound frame is aliased two ways over the SAME storage: as the
// basic-space force vector (length n, offset 0) and as an n by n matrix
// (offset 0). Only one interpretation is valid per command code; see
// Cmd.IsMatrix.
type Buffers struct {
	Nbasic int // basic-space size
	Size   int // effective frame size (both frames)

	// outbound frame and views
	Out   la.Vector // [Size] whole outbound frame
	Cmd   la.Vector // [1] command code
	Disp  la.Vector // [Nbasic] trial displacements
	Vel   la.Vector // [Nbasic] trial velocities
	Accel la.Vector // [Nbasic] trial accelerations
	Time  la.Vector // [1] simulation time

	// inbound frame and views
	In    la.Vector  // [Size] whole inbound frame
	Force la.Vector  // [Nbasic] restoring force view
	Mat   *la.Matrix // [Nbasic][Nbasic] matrix view; same storage as Force
}

// BufferSize returns the effective frame size: large enough for the
// outbound layout (1+3n+1), for a square matrix reply (n*n) and for the
// requested minimum
func BufferSize(nbasic, minsize int) (size int) {
	size = 1 + 3*nbasic + 1
	if size < minsize {
		size = minsize
	}
	if size < nbasic*nbasic {
		size = nbasic * nbasic
	}
	return
}

// NewBuffers allocates the two frames, zeroed, and carves the views
func NewBuffers(nbasic, minsize int) (o *Buffers) {
	o = new(Buffers)
	o.Nbasic = nbasic
	o.Size = BufferSize(nbasic, minsize)
	n := nbasic

	// outbound views
	o.Out = la.NewVector(o.Size)
	o.Cmd = o.Out[:1]
	o.Disp = o.Out[1 : 1+n]
	o.Vel = o.Out[1+n : 1+2*n]
	o.Accel = o.Out[1+2*n : 1+3*n]
	o.Time = o.Out[1+3*n : 2+3*n]

	// inbound views. the matrix aliases the force vector storage
	o.In = la.NewVector(o.Size)
	o.Force = o.In[:n]
	if n > 0 {
		o.Mat = la.NewMatrixRaw(n, n, o.In[:n*n])
	}
	return
}
