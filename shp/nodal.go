// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gofem/refgeom"

// nodalShapeset implements the fixed order-1 (linear/bilinear/trilinear)
// nodal Lagrange basis shared by TRI3, QUAD4, HEX8 and PRISM6. Unlike
// EDGE2/TET4 these element types carry no hierarchical (H1-Lobatto)
// enrichment in this framework (spec.md's component design lists
// hierarchical order only for EDGE2 and TET4); MaxOrder is always 1 and
// NumFuncs is constant, matching the teacher's original fixed-order
// lins.go/tris.go/quads.go/hexs.go closed forms, generalized into one
// table-driven implementation instead of one file per element type.
type nodalShapeset struct {
	t     refgeom.Type
	nvert int
	eval  func(localVert int, pt []float64) dual
}

func newNodalShapeset(t refgeom.Type) Shapeset {
	g := refgeom.Get(t)
	switch t {
	case refgeom.Tri3:
		return nodalShapeset{t: t, nvert: g.NVerts, eval: tri3Eval}
	case refgeom.Quad4:
		return nodalShapeset{t: t, nvert: g.NVerts, eval: quad4Eval}
	case refgeom.Hex8:
		return nodalShapeset{t: t, nvert: g.NVerts, eval: hex8Eval}
	case refgeom.Prism6:
		return nodalShapeset{t: t, nvert: g.NVerts, eval: prism6Eval}
	}
	panic("shp: no nodal shapeset for " + t.String())
}

func (s nodalShapeset) Type() refgeom.Type { return s.t }
func (s nodalShapeset) MaxOrder() int      { return 1 }

func (s nodalShapeset) NumFuncs(order int) int {
	if order != 1 {
		maxOrderFatal(s.t, order, 1)
	}
	return s.nvert
}

func (nodalShapeset) Order(index int) int { return 1 }

func (s nodalShapeset) Eval(kind Kind, index int, pts [][]float64, out []float64) {
	for i, pt := range pts {
		out[i] = s.eval(index, pt).kind(kind)
	}
}

func (s nodalShapeset) VertexIndex(localVert int) int { return localVert }

func (nodalShapeset) EdgeIndices(localEdge, orientation, order int) (lo, hi int) { return 0, 0 }

func (s nodalShapeset) FaceIndices(localFace, orientation, order int) (lo, hi int) {
	g := refgeom.Get(s.t)
	verts := g.FaceVerts[localFace]
	// order-1 elements place no independent face DOFs; the assembly list
	// references the face's vertex functions directly.
	return verts[0], verts[len(verts)-1] + 1
}

func (s nodalShapeset) BubbleIndices(order int) (lo, hi int) { return s.nvert, s.nvert }

// triBary returns the order-1 barycentric functions of the reference
// triangle with vertices (-1,-1),(1,-1),(-1,1): L0=-(x+y)/2, L1=(1+x)/2, L2=(1+y)/2.
func triBary(r, s dual) [3]dual {
	l1 := dual{0.5 * (1 + r.v), [3]float64{0.5 * r.d[0], 0.5 * r.d[1], 0.5 * r.d[2]}}
	l2 := dual{0.5 * (1 + s.v), [3]float64{0.5 * s.d[0], 0.5 * s.d[1], 0.5 * s.d[2]}}
	l0 := dconst(1).sub(l1).sub(l2)
	return [3]dual{l0, l1, l2}
}

func coord(axis int, pt []float64) dual {
	d := dual{v: pt[axis]}
	d.d[axis] = 1
	return d
}

func tri3Eval(localVert int, pt []float64) dual {
	l := triBary(coord(0, pt), coord(1, pt))
	return l[localVert]
}

var quad4Signs = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

func quad4Eval(localVert int, pt []float64) dual {
	xi, eta := quad4Signs[localVert][0], quad4Signs[localVert][1]
	x, y := coord(0, pt), coord(1, pt)
	fx := dconst(1).add(x.scale(xi)).scale(0.5)
	fy := dconst(1).add(y.scale(eta)).scale(0.5)
	return fx.mul(fy)
}

var hex8Signs = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

func hex8Eval(localVert int, pt []float64) dual {
	xi, eta, zeta := hex8Signs[localVert][0], hex8Signs[localVert][1], hex8Signs[localVert][2]
	x, y, z := coord(0, pt), coord(1, pt), coord(2, pt)
	fx := dconst(1).add(x.scale(xi)).scale(0.5)
	fy := dconst(1).add(y.scale(eta)).scale(0.5)
	fz := dconst(1).add(z.scale(zeta)).scale(0.5)
	return fx.mul(fy).mul(fz)
}

// prism6TriIndex maps a PRISM6 local vertex (0..5) to its in-plane
// triangular barycentric index (0..2) and whether it sits on the bottom
// (t=-1) or top (t=+1) face, matching refgeom.Prism6's VertCoords order.
var prism6TriIndex = [6]int{0, 1, 2, 0, 1, 2}
var prism6Top = [6]bool{false, false, false, true, true, true}

func prism6Eval(localVert int, pt []float64) dual {
	l := triBary(coord(0, pt), coord(1, pt))
	z := coord(2, pt)
	var fz dual
	if prism6Top[localVert] {
		fz = dconst(1).add(z).scale(0.5)
	} else {
		fz = dconst(1).sub(z).scale(0.5)
	}
	return l[prism6TriIndex[localVert]].mul(fz)
}
