// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gofem/refgeom"

// tet4MaxOrder bounds the hierarchical basis on the reference tetrahedron.
// Grounded on original_source/include/H1LobattoShapesetTetra.h (vertex +
// edge + face + interior bubble split) and Lobatto.h's kernel family;
// spec.md requires MaxOrder >= 20 for simplex element types.
const tet4MaxOrder = 20

// tet4Kind tags which entity category a higher-order function belongs to.
type tet4Kind int

const (
	tet4Vertex tet4Kind = iota
	tet4Edge
	tet4Face
	tet4Bubble
)

type tet4Func struct {
	kind   tet4Kind
	entity int // local vertex / edge / face index (unused for bubble)
	p      int // Legendre degree used inside the kernel (unused for vertex)
	degree int // the function's nominal polynomial order, for Order()/NumFuncs()
}

var tet4Funcs []tet4Func

func init() {
	tet4Funcs = append(tet4Funcs,
		tet4Func{kind: tet4Vertex, entity: 0, degree: 1},
		tet4Func{kind: tet4Vertex, entity: 1, degree: 1},
		tet4Func{kind: tet4Vertex, entity: 2, degree: 1},
		tet4Func{kind: tet4Vertex, entity: 3, degree: 1},
	)
	for e := 0; e < 6; e++ {
		for k := 2; k <= tet4MaxOrder; k++ {
			tet4Funcs = append(tet4Funcs, tet4Func{kind: tet4Edge, entity: e, p: k - 2, degree: k})
		}
	}
	for f := 0; f < 4; f++ {
		for k := 3; k <= tet4MaxOrder; k++ {
			tet4Funcs = append(tet4Funcs, tet4Func{kind: tet4Face, entity: f, p: k - 3, degree: k})
		}
	}
	for k := 4; k <= tet4MaxOrder; k++ {
		tet4Funcs = append(tet4Funcs, tet4Func{kind: tet4Bubble, p: k - 4, degree: k})
	}
}

// tet4Shapeset is the hierarchical H1 basis on the reference tetrahedron:
// 4 affine barycentric vertex functions, edge bubbles keyed by Legendre
// degree along the edge's barycentric difference, face bubbles likewise
// per face, and an interior bubble family. The combinatorial "full"
// p-version tensor space per face/cell is collapsed to a single
// one-parameter family per entity (see DESIGN.md): this keeps runtime
// order selection simple while preserving the hierarchy (each order level
// adds exactly one new function per entity) and exact vanishing on the
// complementary sub-entities (every term carries the entity's defining
// barycentric product as a factor).
type tet4Shapeset struct{}

func newTet4Shapeset() Shapeset { return tet4Shapeset{} }

func (tet4Shapeset) Type() refgeom.Type { return refgeom.Tet4 }
func (tet4Shapeset) MaxOrder() int      { return tet4MaxOrder }

func (tet4Shapeset) NumFuncs(order int) int {
	if order > tet4MaxOrder {
		maxOrderFatal(refgeom.Tet4, order, tet4MaxOrder)
	}
	n := 0
	for _, f := range tet4Funcs {
		if f.degree <= order || f.kind == tet4Vertex {
			n++
		}
	}
	return n
}

func (tet4Shapeset) Order(index int) int { return tet4Funcs[index].degree }

var tet4EdgeVerts = [6][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}
var tet4FaceVerts = [4][3]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}}

func tet4Barycentric(pt []float64) [4]dual {
	r, s, t := pt[0], pt[1], pt[2]
	l1 := dual{0.5 * (1 + r), [3]float64{0.5, 0, 0}}
	l2 := dual{0.5 * (1 + s), [3]float64{0, 0.5, 0}}
	l3 := dual{0.5 * (1 + t), [3]float64{0, 0, 0.5}}
	l0 := dconst(1).sub(l1).sub(l2).sub(l3)
	return [4]dual{l0, l1, l2, l3}
}

func (tet4Shapeset) Eval(kind Kind, index int, pts [][]float64, out []float64) {
	fd := tet4Funcs[index]
	for i, pt := range pts {
		lam := tet4Barycentric(pt)
		var val dual
		switch fd.kind {
		case tet4Vertex:
			val = lam[fd.entity]
		case tet4Edge:
			a, b := tet4EdgeVerts[fd.entity][0], tet4EdgeVerts[fd.entity][1]
			x := lam[b].sub(lam[a])
			val = lam[a].mul(lam[b]).mul(legendreAt(fd.p, x))
		case tet4Face:
			v := tet4FaceVerts[fd.entity]
			a, b, c := v[0], v[1], v[2]
			x := lam[b].sub(lam[a])
			val = lam[a].mul(lam[b]).mul(lam[c]).mul(legendreAt(fd.p, x))
		case tet4Bubble:
			x := lam[1].sub(lam[0])
			val = lam[0].mul(lam[1]).mul(lam[2]).mul(lam[3]).mul(legendreAt(fd.p, x))
		}
		out[i] = val.kind(kind)
	}
}

func (tet4Shapeset) VertexIndex(localVert int) int { return localVert }

func (tet4Shapeset) EdgeIndices(localEdge, orientation, order int) (lo, hi int) {
	lo = 4 + localEdge*(tet4MaxOrder-1)
	hi = lo
	for k := 2; k <= order; k++ {
		hi++
	}
	return lo, hi
}

func (tet4Shapeset) FaceIndices(localFace, orientation, order int) (lo, hi int) {
	base := 4 + 6*(tet4MaxOrder-1)
	lo = base + localFace*(tet4MaxOrder-2)
	hi = lo
	for k := 3; k <= order; k++ {
		hi++
	}
	return lo, hi
}

func (tet4Shapeset) BubbleIndices(order int) (lo, hi int) {
	lo = 4 + 6*(tet4MaxOrder-1) + 4*(tet4MaxOrder-2)
	hi = lo
	for k := 4; k <= order; k++ {
		hi++
	}
	return lo, hi
}
