// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/la"

// Node is one connection point of the host model, holding its trial and
// committed kinematic state. It implements ele.Anchor.
type Node struct {
	tag  int
	ndof int

	// trial state
	U la.Vector // [ndof] displacements
	V la.Vector // [ndof] velocities
	A la.Vector // [ndof] accelerations

	// committed state
	Ucom la.Vector // [ndof]
	Vcom la.Vector // [ndof]
	Acom la.Vector // [ndof]
}

// NewNode returns a node with zeroed state
func NewNode(tag, ndof int) (o *Node) {
	o = new(Node)
	o.tag = tag
	o.ndof = ndof
	o.U = la.NewVector(ndof)
	o.V = la.NewVector(ndof)
	o.A = la.NewVector(ndof)
	o.Ucom = la.NewVector(ndof)
	o.Vcom = la.NewVector(ndof)
	o.Acom = la.NewVector(ndof)
	return
}

// Tag returns the identifying tag
func (o *Node) Tag() int { return o.tag }

// Ndof returns the number of local DOFs
func (o *Node) Ndof() int { return o.ndof }

// TrialDisp returns the trial displacements
func (o *Node) TrialDisp() []float64 { return o.U }

// TrialVel returns the trial velocities
func (o *Node) TrialVel() []float64 { return o.V }

// TrialAccel returns the trial accelerations
func (o *Node) TrialAccel() []float64 { return o.A }

// SetTrial copies the given trial state in. nil slices leave the
// corresponding quantity unchanged.
func (o *Node) SetTrial(u, v, a []float64) {
	if u != nil {
		copy(o.U, u)
	}
	if v != nil {
		copy(o.V, v)
	}
	if a != nil {
		copy(o.A, a)
	}
}

// Commit accepts the trial state
func (o *Node) Commit() {
	copy(o.Ucom, o.U)
	copy(o.Vcom, o.V)
	copy(o.Acom, o.A)
}
