// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gofem/refgeom"

// edge2MaxOrder is the highest hierarchical (bubble) order this shapeset
// supports. Grounded on original_source/include/Lobatto.h, which hardcodes
// l2..l11 (order up to 11); the general lobattoL/lobattoDL closed form
// extends that table to spec.md's required "MaxOrder >= 24 for EDGE2"
// without further hand transcription.
const edge2MaxOrder = 24

// edge2Shapeset is the one-dimensional H1-Lobatto hierarchical basis: two
// vertex ("nodal") functions of order 1, plus bubble functions of order
// 2..edge2MaxOrder. Index layout: 0,1 = vertices; 2..MaxOrder = bubbles
// ordered by increasing degree (index i has degree i).
type edge2Shapeset struct{}

func newEdge2Shapeset() Shapeset { return edge2Shapeset{} }

func (edge2Shapeset) Type() refgeom.Type { return refgeom.Edge2 }

func (edge2Shapeset) MaxOrder() int { return edge2MaxOrder }

// NumFuncs returns 2 vertex functions plus (order-1) bubble functions for
// order>=2, or just 2 for order==1.
func (s edge2Shapeset) NumFuncs(order int) int {
	if order > edge2MaxOrder {
		maxOrderFatal(refgeom.Edge2, order, edge2MaxOrder)
	}
	if order < 2 {
		return 2
	}
	return 2 + (order - 1)
}

func (edge2Shapeset) Order(index int) int {
	if index < 2 {
		return 1
	}
	return index
}

func (s edge2Shapeset) Eval(kind Kind, index int, pts [][]float64, out []float64) {
	for i, p := range pts {
		x := p[0]
		switch {
		case index == 0:
			out[i] = evalVertex0(kind, x)
		case index == 1:
			out[i] = evalVertex1(kind, x)
		default:
			out[i] = evalBubble(kind, index, x)
		}
	}
}

func evalVertex0(kind Kind, x float64) float64 {
	switch kind {
	case Value:
		return lobattoKernel0(x)
	case Dx:
		return -0.5
	default:
		return 0
	}
}

func evalVertex1(kind Kind, x float64) float64 {
	switch kind {
	case Value:
		return lobattoKernel1(x)
	case Dx:
		return 0.5
	default:
		return 0
	}
}

func evalBubble(kind Kind, index int, x float64) float64 {
	switch kind {
	case Value:
		return lobattoL(index, x)
	case Dx:
		return lobattoDL(index, x)
	default:
		return 0
	}
}

func (edge2Shapeset) VertexIndex(localVert int) int { return localVert }

func (edge2Shapeset) EdgeIndices(localEdge, orientation, order int) (lo, hi int) {
	// EDGE2 has no sub-edges of its own; callers never invoke this on a
	// 1D element.
	return 0, 0
}

func (edge2Shapeset) FaceIndices(localFace, orientation, order int) (lo, hi int) {
	// The two "faces" of EDGE2 are its end vertices (see refgeom.Edge2),
	// each contributing a single vertex function; no interior DOFs.
	return localFace, localFace + 1
}

func (s edge2Shapeset) BubbleIndices(order int) (lo, hi int) {
	if order < 2 {
		return 2, 2
	}
	return 2, s.NumFuncs(order)
}
