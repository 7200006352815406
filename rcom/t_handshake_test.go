// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rcom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_handshake01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("handshake01. encode and decode")

	hs := Handshake{Nbasic: 6, Size: BufferSize(6, 0)}
	data := hs.Encode()
	chk.Ints(tst, "slots", data, []int{6, 6, 6, 0, 1, 0, 0, 0, 6, 0, 36})

	back, err := DecodeHandshake(data)
	if err != nil {
		tst.Errorf("DecodeHandshake failed:\n%v", err)
		return
	}
	chk.Int(tst, "Nbasic", back.Nbasic, 6)
	chk.Int(tst, "Size", back.Size, 36)
}

func Test_handshake02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("handshake02. malformed descriptors")

	// wrong length
	if _, err := DecodeHandshake(make([]int, 10)); err == nil {
		tst.Errorf("short descriptor must be rejected")
		return
	}

	// negative size
	bad := Handshake{Nbasic: 3, Size: 11}.Encode()
	bad[0], bad[1], bad[2], bad[8] = -1, -1, -1, -1
	if _, err := DecodeHandshake(bad); err == nil {
		tst.Errorf("negative basic size must be rejected")
		return
	}

	// internal disagreement
	bad = Handshake{Nbasic: 3, Size: 11}.Encode()
	bad[1] = 4
	if _, err := DecodeHandshake(bad); err == nil {
		tst.Errorf("disagreeing slot sizes must be rejected")
		return
	}

	// frame capacity below the minimum for the announced basic space
	bad = Handshake{Nbasic: 6, Size: 20}.Encode()
	if _, err := DecodeHandshake(bad); err == nil {
		tst.Errorf("undersized frame capacity must be rejected")
	}
}
