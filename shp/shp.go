// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shp implements shapesets: per-element-type polynomial bases that
// map a shape-function index and an evaluation point to a value or
// derivative. It is the direct descendant of the teacher's shp package
// (github.com/cpmech/gofem/shp), generalized from the teacher's fixed
// per-order Lagrange tables (lin2/lin3/..., tri3/tri6/...) to the spec's
// single-shapeset-per-type-with-hierarchical-order contract.
package shp

import (
	"github.com/cpmech/gofem/refgeom"

	"github.com/cpmech/gosl/chk"
)

// Kind selects which value or derivative Eval should produce.
type Kind int

const (
	Value Kind = iota
	Dx
	Dy
	Dz
	Dxx
	Dyy
	Dzz
	Dxy
	Dyz
	Dxz
)

// Shapeset is the per-element-type polynomial basis contract of spec.md
// §4.1. Implementations are read-only after package init and safe for
// concurrent use (spec §5 "Shared resources").
type Shapeset interface {
	Type() refgeom.Type

	// NumFuncs returns the total number of shape functions available at
	// the given order (vertex + edge + face + bubble).
	NumFuncs(order int) int

	// Eval writes values (or the requested derivative) of shape function
	// index at each of the given reference-domain points into out.
	Eval(kind Kind, index int, pts [][]float64, out []float64)

	// Order returns the polynomial degree associated with a shape
	// function index.
	Order(index int) int

	VertexIndex(localVert int) int
	EdgeIndices(localEdge, orientation, order int) (lo, hi int)
	FaceIndices(localFace, orientation, order int) (lo, hi int)
	BubbleIndices(order int) (lo, hi int)

	MaxOrder() int
}

var factory = map[refgeom.Type]Shapeset{}

// Get returns the registered Shapeset for t. Requesting an unregistered
// type is a configuration error (spec §7 kind 1): it panics, since the
// caller should have validated the element type against refgeom first.
func Get(t refgeom.Type) Shapeset {
	s, ok := factory[t]
	if !ok {
		chk.Panic("shp: no shapeset registered for element type %v", t)
	}
	return s
}

// maxOrderFatal is called when a caller requests a polynomial order beyond
// a shapeset's MaxOrder(). Per spec §4.1 this is a fatal, non-recoverable
// error (not a returned error), matching the teacher's get_order-style
// contract and gosl/chk's panic-based assertion convention.
func maxOrderFatal(t refgeom.Type, order, max int) {
	chk.Panic("shp: order %d exceeds max order %d for element type %v", order, max, t)
}

func init() {
	factory[refgeom.Edge2] = newEdge2Shapeset()
	factory[refgeom.Tet4] = newTet4Shapeset()
	factory[refgeom.Tri3] = newNodalShapeset(refgeom.Tri3)
	factory[refgeom.Quad4] = newNodalShapeset(refgeom.Quad4)
	factory[refgeom.Hex8] = newNodalShapeset(refgeom.Hex8)
	factory[refgeom.Prism6] = newNodalShapeset(refgeom.Prism6)
}

// RefMapShapeset returns the shapeset for t, the same value Get returns,
// for the reference-map component (spec §4.3). It is not restricted to
// vertex functions; the reference map reads only the functions at
// VertexIndex(i), which gives it S and dSdR for the cell's geometric
// vertices regardless of the field's polynomial order.
func RefMapShapeset(t refgeom.Type) Shapeset {
	return Get(t)
}
