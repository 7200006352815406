// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	Encoder string `json:"encoder"` // encoder name for element records; "gob" or "json"
}

// NodeData holds connection-point (node) data
type NodeData struct {
	Tag  int `json:"tag"`  // identifying tag
	Ndof int `json:"ndof"` // number of local DOFs
}

// ElemData holds element data
type ElemData struct {
	Tag   int    `json:"tag"`   // tag of element
	Type  string `json:"type"`  // type of element. ex: remote
	Extra string `json:"extra"` // extra flags (in keycode format). ex: "!port:4444 !udp:1"
	Inact bool   `json:"inact"` // whether element starts inactive or not
}

// Cell binds an element to its connection points
type Cell struct {
	Id     int     `json:"id"`     // cell id
	Tag    int     `json:"tag"`    // element tag (matches one ElemData)
	Verts  []int   `json:"verts"`  // connection-point tags
	DofSel [][]int `json:"dofsel"` // selected local DOF indices, per connection point
}

// Simulation holds all input data
type Simulation struct {
	Data  Data        `json:"data"`     // global data
	Nodes []*NodeData `json:"nodes"`    // connection points
	Cells []*Cell     `json:"cells"`    // cells
	Elems []*ElemData `json:"elements"` // element types and flags
}

// ReadSim reads and checks a simulation input file
func ReadSim(simfilepath string) (o *Simulation, err error) {
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q: %v", simfilepath, err)
	}
	o = new(Simulation)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot parse simulation file %q: %v", simfilepath, err)
	}
	if o.Data.Encoder == "" {
		o.Data.Encoder = "gob"
	}
	for _, c := range o.Cells {
		if len(c.DofSel) != len(c.Verts) {
			return nil, chk.Err("cell %d must have one DOF selection per connection point: %d selections, %d points", c.Id, len(c.DofSel), len(c.Verts))
		}
		if o.Etag2data(c.Tag) == nil {
			return nil, chk.Err("cell %d refers to element tag %d, which is not defined", c.Id, c.Tag)
		}
	}
	return
}

// Etag2data returns the ElemData corresponding to element tag
func (o *Simulation) Etag2data(etag int) *ElemData {
	for _, edat := range o.Elems {
		if edat.Tag == etag {
			return edat
		}
	}
	return nil
}
