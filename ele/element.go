// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele defines the element interfaces seen by the host model
package ele

import (
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// Anchor is one connection point resolved from the host model: an
// external node whose local state participates in the element response
type Anchor interface {
	Tag() int              // identifying tag
	Ndof() int             // number of local DOFs
	TrialDisp() []float64  // [ndof] trial displacements
	TrialVel() []float64   // [ndof] trial velocities
	TrialAccel() []float64 // [ndof] trial accelerations
}

// Host is the narrow view elements have of the host model
type Host interface {
	Anchor(tag int) Anchor // resolves a connection point; nil if not in the model
	Time() float64         // current simulation time
}

// Element defines what all elements must implement
type Element interface {

	// information and initialisation
	Id() int                      // returns the cell Id
	Attach(host Host) (err error) // resolves connection points and finalises sizes
	NumDof() int                  // total number of local DOFs (all connection points)

	// conditions
	SetEleConds(key string, f dbf.T, extra string) (err error) // set element conditions

	// called for each time step
	Update() (err error) // set trial response
	Commit() (err error) // accept the current step
	Revert() (err error) // revert to the last committed state

	// mechanical response in full local coordinates
	TangentStiff() (K *la.Matrix, err error)  // tangent stiffness
	InitialStiff() (K0 *la.Matrix, err error) // initial stiffness
	Damp() (C *la.Matrix, err error)          // damping
	Mass() (M *la.Matrix, err error)          // mass
	RestoringForce() (q la.Vector, err error) // restoring force

	// reading and writing of element data
	Encode(enc Encoder) (err error) // encodes element parameters
	Decode(dec Decoder) (err error) // decodes element parameters

	// cleanup
	Free() // releases resources, notifying collaborators if needed
}
