// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gohyb/inp"

	"github.com/cpmech/gosl/chk"
)

// AllocatorType defines a function that allocates an element
type AllocatorType func(cell *inp.Cell, edat *inp.ElemData) Element

// New returns a new element from the factory
func New(cell *inp.Cell, edat *inp.ElemData) (element Element, err error) {
	fcn, ok := allocators[edat.Type]
	if !ok {
		err = chk.Err("cannot get allocator for element {type=%q, tag=%d, id=%d}", edat.Type, cell.Tag, cell.Id)
		return
	}
	element = fcn(cell, edat)
	if element == nil {
		err = chk.Err("element {type=%q, tag=%d, id=%d} is not available", edat.Type, cell.Tag, cell.Id)
	}
	return
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(elementName string, fcn AllocatorType) {
	if _, ok := allocators[elementName]; ok {
		chk.Panic("cannot set allocator for %q because element name exists already", elementName)
	}
	allocators[elementName] = fcn
}

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)
