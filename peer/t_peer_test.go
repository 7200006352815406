// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peer

import (
	"testing"

	"github.com/cpmech/gohyb/rcom"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// diagLinear builds a linear substructure with diagonal K, M and C
func diagLinear(n int, k, m, c float64) *Linear {
	kk := la.NewMatrix(n, n)
	mm := la.NewMatrix(n, n)
	cc := la.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		kk.Set(i, i, k)
		mm.Set(i, i, m)
		cc.Set(i, i, c)
	}
	return NewLinear(kk, mm, cc)
}

func Test_peer01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("peer01. linear substructure mechanics")

	model := diagLinear(3, 100, 2, 5)
	chk.Int(tst, "NumDof", model.NumDof(), 3)

	model.SetTrial([]float64{0.1, 0.2, 0.3}, []float64{1, 0, -1}, nil, 0.01)
	q := model.RestoringForce()
	chk.Array(tst, "q = K*d + C*v", 1e-14, q, []float64{15, 20, 25})

	// the initial stiffness is a frozen copy
	model.K.Set(0, 0, 999)
	chk.Float64(tst, "K0[0][0]", 1e-17, model.InitialStiff().Get(0, 0), 100)
	chk.Float64(tst, "Kt[0][0]", 1e-17, model.TangentStiff().Get(0, 0), 999)
	model.Commit()
}

func Test_peer02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("peer02. protocol round over a pipe")

	n := 2
	model := diagLinear(n, 100, 2, 5)
	a, b := rcom.NewPipe()
	done := make(chan error, 1)
	go func() { done <- Serve(b, model) }()

	sess := rcom.NewSession("tcp", "", 0, 0)
	sess.SetChannel(a)
	if err := sess.Connect(n); err != nil {
		tst.Errorf("Connect failed:\n%v", err)
		return
	}
	bufs := sess.Buffers()

	// trial state, then every reply-bearing command
	copy(bufs.Disp, []float64{0.1, -0.2})
	copy(bufs.Vel, []float64{1, 2})
	bufs.Time[0] = 0.5
	if err := sess.Send(rcom.SetTrialResponse); err != nil {
		tst.Errorf("SetTrialResponse failed:\n%v", err)
		return
	}

	if err := sess.Request(rcom.GetForce); err != nil {
		tst.Errorf("GetForce failed:\n%v", err)
		return
	}
	chk.Array(tst, "force", 1e-14, bufs.Force, []float64{15, -10})

	if err := sess.Request(rcom.GetTangentStiff); err != nil {
		tst.Errorf("GetTangentStiff failed:\n%v", err)
		return
	}
	chk.Deep2(tst, "Kt", 1e-14, bufs.Mat.GetDeep2(), [][]float64{{100, 0}, {0, 100}})

	if err := sess.Request(rcom.GetMass); err != nil {
		tst.Errorf("GetMass failed:\n%v", err)
		return
	}
	chk.Deep2(tst, "M", 1e-14, bufs.Mat.GetDeep2(), [][]float64{{2, 0}, {0, 2}})

	if err := sess.Request(rcom.GetDamp); err != nil {
		tst.Errorf("GetDamp failed:\n%v", err)
		return
	}
	chk.Deep2(tst, "C", 1e-14, bufs.Mat.GetDeep2(), [][]float64{{5, 0}, {0, 5}})

	if err := sess.Request(rcom.GetInitialStiff); err != nil {
		tst.Errorf("GetInitialStiff failed:\n%v", err)
		return
	}
	chk.Deep2(tst, "K0", 1e-14, bufs.Mat.GetDeep2(), [][]float64{{100, 0}, {0, 100}})

	if err := sess.Send(rcom.CommitState); err != nil {
		tst.Errorf("CommitState failed:\n%v", err)
		return
	}

	sess.Terminate()
	if err := <-done; err != nil {
		tst.Errorf("Serve failed:\n%v", err)
	}
}

// emptySub is a substructure with no basic DOFs at all
type emptySub struct{}

func (emptySub) NumDof() int                           { return 0 }
func (emptySub) SetTrial(d, v, a []float64, t float64) {}
func (emptySub) Commit()                               {}
func (emptySub) TangentStiff() *la.Matrix              { return la.NewMatrix(0, 0) }
func (emptySub) InitialStiff() *la.Matrix              { return la.NewMatrix(0, 0) }
func (emptySub) Damp() *la.Matrix                      { return la.NewMatrix(0, 0) }
func (emptySub) Mass() *la.Matrix                      { return la.NewMatrix(0, 0) }
func (emptySub) RestoringForce() la.Vector             { return nil }

func Test_peer03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("peer03. size mismatch aborts the handshake")

	model := diagLinear(4, 1, 1, 1)
	a, b := rcom.NewPipe()
	done := make(chan error, 1)
	go func() { done <- Serve(b, model) }()

	sess := rcom.NewSession("tcp", "", 0, 0)
	sess.SetChannel(a)

	// the proxy announces 3 basic DOFs but the model has 4
	if err := sess.Connect(3); err != nil {
		tst.Errorf("Connect failed:\n%v", err)
		return
	}
	if err := <-done; err == nil {
		tst.Errorf("Serve must reject a mismatched handshake")
		return
	}
	a.Close()
}

func Test_peer04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("peer04. empty basic space")

	// all connection points may contribute zero DOFs; the matrix commands
	// must still answer (with frames carrying no matrix view)
	a, b := rcom.NewPipe()
	done := make(chan error, 1)
	go func() { done <- Serve(b, emptySub{}) }()

	sess := rcom.NewSession("tcp", "", 0, 0)
	sess.SetChannel(a)
	if err := sess.Connect(0); err != nil {
		tst.Errorf("Connect failed:\n%v", err)
		return
	}
	if err := sess.Request(rcom.GetTangentStiff); err != nil {
		tst.Errorf("GetTangentStiff failed:\n%v", err)
		return
	}
	if err := sess.Request(rcom.GetForce); err != nil {
		tst.Errorf("GetForce failed:\n%v", err)
		return
	}
	if err := sess.Send(rcom.CommitState); err != nil {
		tst.Errorf("CommitState failed:\n%v", err)
		return
	}
	sess.Terminate()
	if err := <-done; err != nil {
		tst.Errorf("Serve failed:\n%v", err)
	}
}
