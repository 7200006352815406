// Copyright 2017 The Gohyb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package remote implements a proxy element standing in for a physically
// or numerically remote substructure: the trial response travels to the
// remote peer over a network link and the mechanical response (stiffness,
// mass, damping, restoring force) travels back for use in the host model
package remote

import (
	"github.com/cpmech/gohyb/dofmap"
	"github.com/cpmech/gohyb/ele"
	"github.com/cpmech/gohyb/inp"
	"github.com/cpmech/gohyb/rcom"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Client is the proxy element. It owns the protocol session, the
// coordinate mapping between its connection points and the basic space
// the remote peer operates in, and the cached time-invariant responses.
//
// The element returns responses in FULL local coordinates (all DOFs of
// all connection points); the remote peer only ever sees the reduced
// basic set. Non-participating coordinates stay zero.
type Client struct {

	// basic data
	Cid int     // cell id
	Pts []int   // connection-point tags
	Sel [][]int // selected local DOF indices, per connection point

	// transport configuration
	Kind    string // channel kind: "tcp", "udp" or "ssl"
	Addr    string // remote address; "" => loopback
	Port    int    // remote port
	MinSize int    // minimum frame size override

	// damping configuration
	Ray   bool       // add Rayleigh damping terms to the remote damping
	Coefs [4]float64 // Rayleigh coefficients: am, bk, bk0, bkc

	// attachment data (set by Attach)
	host    ele.Host
	anchors []ele.Anchor
	dmap    *dofmap.Map

	// protocol driver
	sess *rcom.Session

	// response in full local coordinates (sized at Attach)
	kmat  *la.Matrix // tangent stiffness scratch
	cmat  *la.Matrix // damping scratch
	kinit *la.Matrix // cached initial stiffness
	mass  *la.Matrix // cached mass
	kcom  *la.Matrix // tangent latched at commit (bkc Rayleigh term)
	force la.Vector  // restoring force

	// caching flags. initial stiffness and mass are treated as
	// time-invariant for the remote peer's lifetime: fetched once, never
	// re-fetched
	kinitOK bool
	massOK  bool
	kcomOK  bool

	// committed control response, latched whenever the restoring force is
	// fetched, for external reporting
	DispCtrl  la.Vector // [nbasic]
	VelCtrl   la.Vector // [nbasic]
	AccelCtrl la.Vector // [nbasic]

	// gather scratch
	dvals [][]float64
	vvals [][]float64
	avals [][]float64
	vfull la.Vector // [nlocal] assembled trial velocities
	afull la.Vector // [nlocal] assembled trial accelerations
}

// register element
func init() {
	ele.SetAllocator("remote", func(cell *inp.Cell, edat *inp.ElemData) ele.Element {
		o, err := New(cell.Id, cell.Verts, cell.DofSel, edat.Extra)
		if err != nil {
			io.Pf("remote element allocation failed: %v\n", err)
			return nil
		}
		return o
	})
}

// New creates a proxy element from its connection-point tags, DOF
// selections and configuration. extra uses keycodes; e.g.:
//
//   "!port:4444 !addr:192.168.0.5 !udp:1 !size:512 !ray:1 !am:0.02 !bk:0.001"
//
// Defaults: tcp transport, loopback address, port 8090, no minimum frame
// size, no Rayleigh terms.
func New(cid int, pts []int, sel [][]int, extra string) (o *Client, err error) {
	if len(sel) != len(pts) {
		err = chk.Err("remote element %d must have one DOF selection per connection point: %d selections, %d points", cid, len(sel), len(pts))
		return
	}
	o = new(Client)
	o.Cid = cid
	o.Pts = pts
	o.Sel = sel
	o.Kind = "tcp"
	o.Port = 8090
	if s, found := io.Keycode(extra, "port"); found {
		o.Port = io.Atoi(s)
	}
	if s, found := io.Keycode(extra, "addr"); found {
		o.Addr = s
	}
	if s, found := io.Keycode(extra, "udp"); found && io.Atob(s) {
		o.Kind = "udp"
	}
	if s, found := io.Keycode(extra, "ssl"); found && io.Atob(s) {
		o.Kind = "ssl"
	}
	if s, found := io.Keycode(extra, "size"); found {
		o.MinSize = io.Atoi(s)
	}
	if s, found := io.Keycode(extra, "ray"); found {
		o.Ray = io.Atob(s)
	}
	for i, key := range []string{"am", "bk", "bk0", "bkc"} {
		if s, found := io.Keycode(extra, key); found {
			o.Coefs[i] = io.Atof(s)
		}
	}
	o.sess = rcom.NewSession(o.Kind, o.Addr, o.Port, o.MinSize)
	return
}

// Id returns the cell Id
func (o *Client) Id() int { return o.Cid }

// NumDof returns the total number of local DOFs; zero before attachment
func (o *Client) NumDof() int {
	if o.dmap == nil {
		return 0
	}
	return o.dmap.Nlocal
}

// Nbasic returns the basic-space size; zero before attachment
func (o *Client) Nbasic() int {
	if o.dmap == nil {
		return 0
	}
	return o.dmap.Nbasic
}

// Session exposes the protocol driver (for inspection and for injecting
// an in-process channel)
func (o *Client) Session() *rcom.Session { return o.sess }

// Attach resolves the connection points within the host model and
// finalises the coordinate mapping and the response sizes. A missing
// connection point leaves the element degraded: the error is returned
// and every subsequent operation keeps failing.
func (o *Client) Attach(host ele.Host) (err error) {
	npts := len(o.Pts)
	anchors := make([]ele.Anchor, npts)
	ndof := make([]int, npts)
	for i, tag := range o.Pts {
		a := host.Anchor(tag)
		if a == nil {
			return chk.Err("connection point %d does not exist in the model for remote element %d", tag, o.Cid)
		}
		anchors[i] = a
		ndof[i] = a.Ndof()
	}
	dmap, err := dofmap.NewMap(o.Sel, ndof)
	if err != nil {
		return
	}
	o.host = host
	o.anchors = anchors
	o.dmap = dmap

	// full local-space response storage
	n, nb := dmap.Nlocal, dmap.Nbasic
	o.kmat = la.NewMatrix(n, n)
	o.cmat = la.NewMatrix(n, n)
	o.kinit = la.NewMatrix(n, n)
	o.mass = la.NewMatrix(n, n)
	o.kcom = la.NewMatrix(n, n)
	o.force = la.NewVector(n)
	o.kinitOK, o.massOK, o.kcomOK = false, false, false

	// control response latches
	o.DispCtrl = la.NewVector(nb)
	o.VelCtrl = la.NewVector(nb)
	o.AccelCtrl = la.NewVector(nb)

	// gather scratch
	o.dvals = make([][]float64, npts)
	o.vvals = make([][]float64, npts)
	o.avals = make([][]float64, npts)
	o.vfull = la.NewVector(n)
	o.afull = la.NewVector(n)
	return
}

// ready fails unless the element is attached to a host model
func (o *Client) ready() (err error) {
	if o.dmap == nil {
		return chk.Err("remote element %d is not attached to a host model", o.Cid)
	}
	return
}

// connect performs the lazy connection setup, exactly once
func (o *Client) connect() (err error) {
	if o.sess.State() == rcom.Connected {
		return
	}
	if err = o.sess.Connect(o.dmap.Nbasic); err != nil {
		return chk.Err("remote element %d failed to setup connection: %v", o.Cid, err)
	}
	return
}

// SetEleConds rejects all element conditions: loads act on the remote
// substructure, not on its proxy
func (o *Client) SetEleConds(key string, f dbf.T, extra string) (err error) {
	return chk.Err("remote element %d: condition/load type %q is unknown", o.Cid, key)
}

// Update gathers the trial response of all connection points into basic
// coordinates, stamps the current time and ships everything to the
// remote substructure. The connection is established lazily here on
// first use.
func (o *Client) Update() (err error) {
	if err = o.ready(); err != nil {
		return
	}
	if err = o.connect(); err != nil {
		return
	}
	bufs := o.sess.Buffers()
	for i, a := range o.anchors {
		o.dvals[i] = a.TrialDisp()
		o.vvals[i] = a.TrialVel()
		o.avals[i] = a.TrialAccel()
	}
	o.dmap.GatherVecs(o.dvals, bufs.Disp)
	o.dmap.GatherVecs(o.vvals, bufs.Vel)
	o.dmap.GatherVecs(o.avals, bufs.Accel)
	bufs.Time[0] = o.host.Time()
	return o.sess.Send(rcom.SetTrialResponse)
}

// Commit notifies the remote substructure that the host accepted the
// current step. When the bkc Rayleigh coefficient is active, the
// committed tangent is refreshed here.
func (o *Client) Commit() (err error) {
	if err = o.ready(); err != nil {
		return
	}
	if err = o.connect(); err != nil {
		return
	}
	if err = o.sess.Send(rcom.CommitState); err != nil {
		return
	}
	if o.Ray && o.Coefs[3] != 0 {
		if err = o.requestMat(rcom.GetTangentStiff, o.kcom); err != nil {
			return
		}
		o.kcomOK = true
	}
	return
}

// Revert is not possible: this element shadows an experimental
// substructure whose state cannot be rolled back
func (o *Client) Revert() (err error) {
	return chk.Err("remote element %d cannot revert to a previous state: it shadows an experimental substructure", o.Cid)
}

// requestMat runs one matrix-valued exchange and scatters the reply into
// dst, in full local coordinates
func (o *Client) requestMat(cmd rcom.Cmd, dst *la.Matrix) (err error) {
	if err = o.connect(); err != nil {
		return
	}
	if err = o.sess.Request(cmd); err != nil {
		return
	}
	dst.Fill(0)
	o.dmap.ScatterMat(o.sess.Buffers().Mat, dst)
	return
}

// TangentStiff fetches the tangent stiffness, re-fetched on every call
func (o *Client) TangentStiff() (K *la.Matrix, err error) {
	if err = o.ready(); err != nil {
		return
	}
	if err = o.requestMat(rcom.GetTangentStiff, o.kmat); err != nil {
		return
	}
	return o.kmat, nil
}

// InitialStiff fetches the initial stiffness once and caches it: the
// remote peer is assumed time-invariant in this quantity
func (o *Client) InitialStiff() (K0 *la.Matrix, err error) {
	if err = o.ready(); err != nil {
		return
	}
	if !o.kinitOK {
		if err = o.requestMat(rcom.GetInitialStiff, o.kinit); err != nil {
			return
		}
		o.kinitOK = true
	}
	return o.kinit, nil
}

// Mass fetches the mass matrix once and caches it
func (o *Client) Mass() (M *la.Matrix, err error) {
	if err = o.ready(); err != nil {
		return
	}
	if !o.massOK {
		if err = o.requestMat(rcom.GetMass, o.mass); err != nil {
			return
		}
		o.massOK = true
	}
	return o.mass, nil
}

// Damp fetches the damping from the remote substructure, re-fetched on
// every call. With Rayleigh terms enabled:
//
//   C += am*M + bk*Kt + bk0*K0 + bkc*Kc
//
// where Kc is the tangent latched at the last commit (K0 until then).
func (o *Client) Damp() (C *la.Matrix, err error) {
	if err = o.ready(); err != nil {
		return
	}
	if err = o.requestMat(rcom.GetDamp, o.cmat); err != nil {
		return
	}
	if o.Ray {
		am, bk, bk0, bkc := o.Coefs[0], o.Coefs[1], o.Coefs[2], o.Coefs[3]
		if am != 0 {
			mm, e := o.Mass()
			if e != nil {
				return nil, e
			}
			matAdd(o.cmat, am, mm)
		}
		if bk != 0 {
			if e := o.requestMat(rcom.GetTangentStiff, o.kmat); e != nil {
				return nil, e
			}
			matAdd(o.cmat, bk, o.kmat)
		}
		if bk0 != 0 {
			k0, e := o.InitialStiff()
			if e != nil {
				return nil, e
			}
			matAdd(o.cmat, bk0, k0)
		}
		if bkc != 0 {
			if !o.kcomOK {
				k0, e := o.InitialStiff()
				if e != nil {
					return nil, e
				}
				copy(o.kcom.Data, k0.Data)
				o.kcomOK = true
			}
			matAdd(o.cmat, bkc, o.kcom)
		}
	}
	return o.cmat, nil
}

// RestoringForce fetches the basic-space restoring force and scatters it
// into full local coordinates. The most recently sent trial response is
// latched as the committed control response for external reporting.
func (o *Client) RestoringForce() (q la.Vector, err error) {
	if err = o.ready(); err != nil {
		return
	}
	if err = o.connect(); err != nil {
		return
	}
	if err = o.sess.Request(rcom.GetForce); err != nil {
		return
	}
	bufs := o.sess.Buffers()
	copy(o.DispCtrl, bufs.Disp)
	copy(o.VelCtrl, bufs.Vel)
	copy(o.AccelCtrl, bufs.Accel)
	o.force.Fill(0)
	o.dmap.ScatterVec(bufs.Force, o.force)
	return o.force, nil
}

// RestoringForceIncInertia adds the damping and inertia contributions,
// assembled over the full local space, to the restoring force
func (o *Client) RestoringForceIncInertia() (q la.Vector, err error) {
	if q, err = o.RestoringForce(); err != nil {
		return
	}
	cc, err := o.Damp()
	if err != nil {
		return nil, err
	}
	mm, err := o.Mass()
	if err != nil {
		return nil, err
	}
	k := 0
	for _, a := range o.anchors {
		copy(o.vfull[k:], a.TrialVel())
		copy(o.afull[k:], a.TrialAccel())
		k += a.Ndof()
	}
	la.MatVecMulAdd(o.force, 1, cc, o.vfull)
	la.MatVecMulAdd(o.force, 1, mm, o.afull)
	return o.force, nil
}

// Free sends the shutdown signal, if a connection is live, and releases
// the channel. The signal travels at most once per element instance.
func (o *Client) Free() {
	o.sess.Terminate()
}

// Encode writes the flat parameter record: configuration scalars first,
// then the connection-point tags, one DOF selection per point, and the
// address string
func (o *Client) Encode(enc ele.Encoder) (err error) {
	udp := o.Kind == "udp"
	ssl := o.Kind == "ssl"
	if err = enc.Encode(o.Cid, len(o.Pts), o.Port, udp, ssl, o.MinSize, o.Ray, o.Coefs); err != nil {
		return
	}
	if err = enc.Encode(o.Pts); err != nil {
		return
	}
	for _, s := range o.Sel {
		if err = enc.Encode(s); err != nil {
			return
		}
	}
	return enc.Encode(o.Addr)
}

// Decode rebuilds the element from its parameter record. Only the
// configuration is restored: mapping, buffers and connection are
// re-established lazily on the next attachment and use.
func (o *Client) Decode(dec ele.Decoder) (err error) {
	var npts int
	var udp, ssl bool
	if err = dec.Decode(&o.Cid, &npts, &o.Port, &udp, &ssl, &o.MinSize, &o.Ray, &o.Coefs); err != nil {
		return
	}
	o.Kind = "tcp"
	if udp {
		o.Kind = "udp"
	}
	if ssl {
		o.Kind = "ssl"
	}
	o.Pts = make([]int, npts)
	if err = dec.Decode(&o.Pts); err != nil {
		return
	}
	o.Sel = make([][]int, npts)
	for i := range o.Sel {
		if err = dec.Decode(&o.Sel[i]); err != nil {
			return
		}
	}
	if err = dec.Decode(&o.Addr); err != nil {
		return
	}
	o.host = nil
	o.anchors = nil
	o.dmap = nil
	o.kinitOK, o.massOK, o.kcomOK = false, false, false
	o.sess = rcom.NewSession(o.Kind, o.Addr, o.Port, o.MinSize)
	return
}

// matAdd computes dst += alpha*m, entry by entry
func matAdd(dst *la.Matrix, alpha float64, m *la.Matrix) {
	for i := range dst.Data {
		dst.Data[i] += alpha * m.Data[i]
	}
}
