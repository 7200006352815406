// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"encoding/gob"
	"encoding/json"
	goio "io"

	"github.com/cpmech/gosl/chk"
)

// Encoder writes a sequence of values to a flat element record
type Encoder interface {
	Encode(e ...interface{}) (err error)
}

// Decoder reads a sequence of values from a flat element record
type Decoder interface {
	Decode(e ...interface{}) (err error)
}

// NewEncoder returns an encoder of the given kind: "gob" or "json"
func NewEncoder(kind string, w goio.Writer) Encoder {
	switch kind {
	case "gob":
		return &gobEncoder{gob.NewEncoder(w)}
	case "json":
		return &jsonEncoder{json.NewEncoder(w)}
	}
	chk.Panic("encoder kind %q is not available; use \"gob\" or \"json\"", kind)
	return nil
}

// NewDecoder returns a decoder of the given kind: "gob" or "json"
func NewDecoder(kind string, r goio.Reader) Decoder {
	switch kind {
	case "gob":
		return &gobDecoder{gob.NewDecoder(r)}
	case "json":
		return &jsonDecoder{json.NewDecoder(r)}
	}
	chk.Panic("decoder kind %q is not available; use \"gob\" or \"json\"", kind)
	return nil
}

type gobEncoder struct{ enc *gob.Encoder }
type gobDecoder struct{ dec *gob.Decoder }
type jsonEncoder struct{ enc *json.Encoder }
type jsonDecoder struct{ dec *json.Decoder }

func (o *gobEncoder) Encode(e ...interface{}) (err error) {
	for _, v := range e {
		if err = o.enc.Encode(v); err != nil {
			return chk.Err("gob encoding failed: %v", err)
		}
	}
	return
}

func (o *gobDecoder) Decode(e ...interface{}) (err error) {
	for _, v := range e {
		if err = o.dec.Decode(v); err != nil {
			return chk.Err("gob decoding failed: %v", err)
		}
	}
	return
}

func (o *jsonEncoder) Encode(e ...interface{}) (err error) {
	for _, v := range e {
		if err = o.enc.Encode(v); err != nil {
			return chk.Err("json encoding failed: %v", err)
		}
	}
	return
}

func (o *jsonDecoder) Decode(e ...interface{}) (err error) {
	for _, v := range e {
		if err = o.dec.Decode(v); err != nil {
			return chk.Err("json decoding failed: %v", err)
		}
	}
	return
}
