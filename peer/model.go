// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package peer implements a reference remote peer: a protocol server
// answering the proxy element with the response of a local substructure
package peer

import "github.com/cpmech/gosl/la"

// Substructure is the mechanical model answering on the peer side. All
// quantities live in basic coordinates: the peer never sees the full
// local space of the host model.
type Substructure interface {
	NumDof() int                                 // basic-space size
	SetTrial(d, v, a []float64, t float64)       // receive the trial response
	Commit()                                     // the host accepted the step
	TangentStiff() (K *la.Matrix)                // tangent stiffness
	InitialStiff() (K0 *la.Matrix)               // initial stiffness
	Damp() (C *la.Matrix)                        // damping
	Mass() (M *la.Matrix)                        // mass
	RestoringForce() (q la.Vector)               // restoring force for the current trial state
}

// Linear is a linear, time-invariant substructure:
//
//   q = K*d + C*v
//
// with constant stiffness, damping and mass matrices
type Linear struct {
	K *la.Matrix // stiffness
	M *la.Matrix // mass
	C *la.Matrix // damping

	k0      *la.Matrix // initial stiffness (copy of K at construction)
	d, v, a la.Vector  // trial state
	t       float64    // trial time
	q       la.Vector  // restoring force scratch
}

// NewLinear returns a linear substructure with n basic DOFs
func NewLinear(kk, mm, cc *la.Matrix) (o *Linear) {
	o = new(Linear)
	o.K = kk
	o.M = mm
	o.C = cc
	n := kk.M
	o.k0 = la.NewMatrix(n, n)
	copy(o.k0.Data, kk.Data)
	o.d = la.NewVector(n)
	o.v = la.NewVector(n)
	o.a = la.NewVector(n)
	o.q = la.NewVector(n)
	return
}

// NumDof returns the basic-space size
func (o *Linear) NumDof() int { return o.K.M }

// SetTrial receives the trial response
func (o *Linear) SetTrial(d, v, a []float64, t float64) {
	copy(o.d, d)
	copy(o.v, v)
	copy(o.a, a)
	o.t = t
}

// Commit accepts the step (nothing to do for a linear model)
func (o *Linear) Commit() {}

// TangentStiff returns the (constant) tangent stiffness
func (o *Linear) TangentStiff() *la.Matrix { return o.K }

// InitialStiff returns the stiffness at construction time
func (o *Linear) InitialStiff() *la.Matrix { return o.k0 }

// Damp returns the damping matrix
func (o *Linear) Damp() *la.Matrix { return o.C }

// Mass returns the mass matrix
func (o *Linear) Mass() *la.Matrix { return o.M }

// RestoringForce computes q = K*d + C*v
func (o *Linear) RestoringForce() la.Vector {
	la.MatVecMul(o.q, 1, o.K, o.d)
	la.MatVecMulAdd(o.q, 1, o.C, o.v)
	return o.q
}
