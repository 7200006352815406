// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dofmap

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

func Test_map01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map01. two points, full selections")

	m, err := NewMap([][]int{{0, 1, 2}, {0, 1, 2}}, []int{3, 3})
	if err != nil {
		tst.Errorf("NewMap failed:\n%v", err)
		return
	}
	chk.Int(tst, "Nbasic", m.Nbasic, 6)
	chk.Int(tst, "Nlocal", m.Nlocal, 6)
	chk.Ints(tst, "Basic", m.Basic, []int{0, 1, 2, 3, 4, 5})
}

func Test_map02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map02. partial selections")

	m, err := NewMap([][]int{{1}, {0, 2}}, []int{2, 3})
	if err != nil {
		tst.Errorf("NewMap failed:\n%v", err)
		return
	}
	chk.Int(tst, "Nbasic", m.Nbasic, 3)
	chk.Int(tst, "Nlocal", m.Nlocal, 5)
	chk.Ints(tst, "Basic", m.Basic, []int{1, 2, 4})

	// the mapping is a bijection onto contiguous per-point ranges
	seen := make(map[int]bool)
	for _, idx := range m.Basic {
		if seen[idx] {
			tst.Errorf("index %d mapped twice", idx)
			return
		}
		seen[idx] = true
	}
}

func Test_map03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map03. zero-DOF connection point")

	m, err := NewMap([][]int{{}, {0, 1, 2, 3}}, []int{2, 4})
	if err != nil {
		tst.Errorf("NewMap failed:\n%v", err)
		return
	}
	chk.Int(tst, "Nbasic", m.Nbasic, 4)
	chk.Int(tst, "Nlocal", m.Nlocal, 6)
	chk.Ints(tst, "Basic", m.Basic, []int{2, 3, 4, 5})

	// the zero-DOF point never appears in gather results
	basic := make([]float64, m.Nbasic)
	m.GatherVecs([][]float64{{-1, -1}, {10, 20, 30, 40}}, basic)
	chk.Array(tst, "basic", 1e-17, basic, []float64{10, 20, 30, 40})
}

func Test_map04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map04. gather/scatter round trip")

	m, err := NewMap([][]int{{0, 2}, {1}}, []int{3, 3})
	if err != nil {
		tst.Errorf("NewMap failed:\n%v", err)
		return
	}

	// gather
	basic := make([]float64, m.Nbasic)
	m.GatherVecs([][]float64{{1.1, 2.2, 3.3}, {4.4, 5.5, 6.6}}, basic)
	chk.Array(tst, "basic", 1e-17, basic, []float64{1.1, 3.3, 5.5})

	// scatter reproduces the selected subspace; the rest stays zero
	full := make([]float64, m.Nlocal)
	m.ScatterVec(basic, full)
	chk.Array(tst, "full", 1e-17, full, []float64{1.1, 0, 3.3, 0, 5.5, 0})

	// matrix scatter
	bm := la.NewMatrix(3, 3)
	val := 1.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			bm.Set(i, j, val)
			val++
		}
	}
	fm := la.NewMatrix(m.Nlocal, m.Nlocal)
	m.ScatterMat(bm, fm)
	chk.Float64(tst, "fm[0][0]", 1e-17, fm.Get(0, 0), 1)
	chk.Float64(tst, "fm[0][2]", 1e-17, fm.Get(0, 2), 2)
	chk.Float64(tst, "fm[2][4]", 1e-17, fm.Get(2, 4), 6)
	chk.Float64(tst, "fm[4][4]", 1e-17, fm.Get(4, 4), 9)
	chk.Float64(tst, "fm[1][1]", 1e-17, fm.Get(1, 1), 0)
	chk.Float64(tst, "fm[0][1]", 1e-17, fm.Get(0, 1), 0)
}

func Test_map05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map05. invalid input")

	if _, err := NewMap([][]int{{0}}, []int{1, 1}); err == nil {
		tst.Errorf("NewMap must fail with mismatched lengths")
		return
	}
	if _, err := NewMap([][]int{{0, 3}}, []int{3}); err == nil {
		tst.Errorf("NewMap must fail with an out-of-range DOF index")
		return
	}
	if _, err := NewMap([][]int{{-1}}, []int{3}); err == nil {
		tst.Errorf("NewMap must fail with a negative DOF index")
		return
	}
	if _, err := NewMap([][]int{{0, 0}}, []int{3}); err == nil {
		tst.Errorf("NewMap must fail with a repeated DOF index")
	}
}
