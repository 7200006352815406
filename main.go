// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gohyb runs a small hybrid simulation: the host model drives a remote
// substructure (spawned in-process here) through the proxy element
package main

import (
	"math"

	"github.com/cpmech/gohyb/ele/remote"
	"github.com/cpmech/gohyb/fem"
	"github.com/cpmech/gohyb/inp"
	"github.com/cpmech/gohyb/peer"
	"github.com/cpmech/gohyb/rcom"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.Pf("\nERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "examples/remote2pts/remote2pts", ".sim", true)
	sim, err := inp.ReadSim(fnamepath)
	if err != nil {
		chk.Panic("cannot read simulation input:\n%v", err)
	}
	io.Pf("gohyb: %s\n", sim.Data.Desc)

	// remote substructure: a 6-DOF linear model served in-process
	n := 6
	kk := la.NewMatrix(n, n)
	mm := la.NewMatrix(n, n)
	cc := la.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		kk.Set(i, i, 1000.0)
		mm.Set(i, i, 2.0)
		cc.Set(i, i, 5.0)
	}
	model := peer.NewLinear(kk, mm, cc)
	lis, err := rcom.Listen("tcp", "", 8090)
	if err != nil {
		chk.Panic("cannot start remote peer:\n%v", err)
	}
	served := make(chan error, 1)
	go func() {
		ch, e := lis.Accept()
		if e != nil {
			served <- e
			return
		}
		served <- peer.Serve(ch, model)
	}()

	// host model
	dom, err := fem.NewDomain(sim)
	if err != nil {
		chk.Panic("cannot build domain:\n%v", err)
	}
	element := dom.Elems[0].(*remote.Client)

	// drive a few steps of imposed motion
	dt := 0.01
	for step := 1; step <= 10; step++ {
		dom.T += dt
		for j, node := range dom.Nodes {
			u := make([]float64, node.Ndof())
			v := make([]float64, node.Ndof())
			for i := range u {
				u[i] = 0.001 * float64(j+1) * math.Sin(2.0*math.Pi*dom.T)
				v[i] = 0.001 * float64(j+1) * 2.0 * math.Pi * math.Cos(2.0*math.Pi*dom.T)
			}
			node.SetTrial(u, v, nil)
		}
		if err = dom.UpdateElems(); err != nil {
			chk.Panic("update failed:\n%v", err)
		}
		q, err := element.RestoringForce()
		if err != nil {
			chk.Panic("cannot get restoring force:\n%v", err)
		}
		if err = dom.CommitElems(); err != nil {
			chk.Panic("commit failed:\n%v", err)
		}
		io.Pf("t=%5.2f  q = %v\n", dom.T, q)
	}

	// shut the remote peer down
	dom.Free()
	if err = <-served; err != nil {
		io.Pf("peer stopped with: %v\n", err)
	}
	lis.Close()
}
