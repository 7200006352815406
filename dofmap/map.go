// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dofmap maps selected node DOFs onto the condensed "basic"
// coordinate system exchanged with a remote substructure
package dofmap

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Map holds the correspondence between the basic coordinate system and the
// full local system spanning all DOFs of all connection points.
//
//   basic index k  ==>  full local index Basic[k]
//
// The basic system concatenates, in connection-point order, the selected
// DOFs of each point. The full local system concatenates ALL DOFs of each
// point. Hence Nbasic <= Nlocal and Basic is a bijection from [0,Nbasic)
// onto a subset of [0,Nlocal), contiguous per connection point.
type Map struct {
	Sel    [][]int // [npoints][nsel] selected local DOF indices, per connection point
	Ndof   []int   // [npoints] total number of DOFs, per connection point
	Nbasic int     // sum of the selection lengths
	Nlocal int     // sum of all local DOF counts
	Basic  []int   // [Nbasic] basic index => full local index
}

// NewMap builds the basic-coordinate mapping from the per-point DOF
// selections and the per-point total DOF counts. The mapping is a pure
// function of its inputs: rebuilding with equal arguments produces an
// identical table. A point with an empty selection is legal and
// contributes no basic indices.
func NewMap(sel [][]int, ndof []int) (o *Map, err error) {
	if len(sel) != len(ndof) {
		err = chk.Err("number of DOF selections (%d) must equal number of connection points (%d)", len(sel), len(ndof))
		return
	}
	o = new(Map)
	o.Sel = sel
	o.Ndof = ndof
	for i := range sel {
		o.Nbasic += len(sel[i])
		o.Nlocal += ndof[i]
	}
	o.Basic = make([]int, o.Nbasic)
	k, offset := 0, 0
	for i, s := range sel {
		seen := make(map[int]bool)
		for _, j := range s {
			if j < 0 || j >= ndof[i] {
				return nil, chk.Err("selected DOF index %d of connection point #%d is outside [0,%d)", j, i, ndof[i])
			}
			if seen[j] {
				return nil, chk.Err("selected DOF index %d of connection point #%d is repeated", j, i)
			}
			seen[j] = true
			o.Basic[k] = offset + j
			k++
		}
		offset += ndof[i]
	}
	return
}

// GatherVecs copies, for each connection point, the entries of vals[i] at
// the selected DOF indices, in selection order, into the contiguous
// basic-space slice assigned to that point. vals[i] must have length
// Ndof[i] and dst must have length Nbasic.
func (o *Map) GatherVecs(vals [][]float64, dst []float64) {
	k := 0
	for i, s := range o.Sel {
		for _, j := range s {
			dst[k] = vals[i][j]
			k++
		}
	}
}

// ScatterVec places basic-space values back at their full local
// coordinates. Coordinates outside the mapping are left untouched; the
// caller zeroes full beforehand if required.
func (o *Map) ScatterVec(basic []float64, full []float64) {
	for k, idx := range o.Basic {
		full[idx] = basic[k]
	}
}

// ScatterMat places an Nbasic by Nbasic block at the (Basic[i],Basic[j])
// coordinates of the full local matrix. Entries outside the mapping are
// left untouched.
func (o *Map) ScatterMat(basic *la.Matrix, full *la.Matrix) {
	for a, bigI := range o.Basic {
		for b, bigJ := range o.Basic {
			full.Set(bigI, bigJ, basic.Get(a, b))
		}
	}
}
