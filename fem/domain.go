// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the minimal host model driving elements:
// connection points with trial state and the lifecycle fan-out. Global
// assembly and solution are owned by the enclosing framework.
package fem

import (
	"github.com/cpmech/gohyb/ele"
	"github.com/cpmech/gohyb/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Domain holds all nodes and elements of the host model plus the current
// simulation time. It implements ele.Host.
type Domain struct {
	Sim   *inp.Simulation // input data
	Nodes []*Node         // connection points
	Elems []ele.Element   // elements (one per active cell)
	T     float64         // current time

	tag2node map[int]*Node
}

// NewDomain builds nodes and elements from the input data. An element
// whose attachment fails stays in the domain, degraded: the failure is
// reported here and its operations keep returning errors.
func NewDomain(sim *inp.Simulation) (o *Domain, err error) {
	o = new(Domain)
	o.Sim = sim
	o.tag2node = make(map[int]*Node)
	for _, nd := range sim.Nodes {
		if _, ok := o.tag2node[nd.Tag]; ok {
			return nil, chk.Err("node tag %d is defined twice", nd.Tag)
		}
		n := NewNode(nd.Tag, nd.Ndof)
		o.Nodes = append(o.Nodes, n)
		o.tag2node[nd.Tag] = n
	}
	for _, cell := range sim.Cells {
		edat := sim.Etag2data(cell.Tag)
		if edat.Inact {
			continue
		}
		element, err := ele.New(cell, edat)
		if err != nil {
			return nil, err
		}
		if err = element.Attach(o); err != nil {
			io.Pf("WARNING: element %d attachment failed: %v\n", element.Id(), err)
		}
		o.Elems = append(o.Elems, element)
	}
	return
}

// Anchor resolves a connection point by tag; nil if absent
func (o *Domain) Anchor(tag int) ele.Anchor {
	if n, ok := o.tag2node[tag]; ok {
		return n
	}
	return nil
}

// Node returns the node with the given tag; nil if absent
func (o *Domain) Node(tag int) *Node {
	return o.tag2node[tag]
}

// Time returns the current simulation time
func (o *Domain) Time() float64 {
	return o.T
}

// UpdateElems sets the trial response on all elements
func (o *Domain) UpdateElems() (err error) {
	for _, element := range o.Elems {
		if err = element.Update(); err != nil {
			return
		}
	}
	return
}

// CommitElems accepts the current step on all elements and nodes
func (o *Domain) CommitElems() (err error) {
	for _, element := range o.Elems {
		if err = element.Commit(); err != nil {
			return
		}
	}
	for _, n := range o.Nodes {
		n.Commit()
	}
	return
}

// Free releases all elements (e.g. shutting remote connections down)
func (o *Domain) Free() {
	for _, element := range o.Elems {
		element.Free()
	}
}
