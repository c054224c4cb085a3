// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refmap

import (
	"testing"

	"github.com/cpmech/gofem/refgeom"
	"github.com/stretchr/testify/assert"
)

func TestIdentityMapOnReferenceTri3(t *testing.T) {
	verts := [][]float64{{-1, -1}, {1, -1}, {-1, 1}}
	m := NewMap(refgeom.Tri3)
	m.Eval(refgeom.Tri3, verts, []float64{-0.2, 0.1})
	assert.InDelta(t, -0.2, m.X[0], 1e-12)
	assert.InDelta(t, 0.1, m.X[1], 1e-12)
	assert.InDelta(t, 1.0, m.Det, 1e-12)
}

func TestScaledQuad4Jacobian(t *testing.T) {
	// a 2x2 square centered at the origin: physical = 1*reference, so the
	// Jacobian determinant must be 1 and physical gradients equal dSdR.
	verts := [][]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	m := NewMap(refgeom.Quad4)
	m.Eval(refgeom.Quad4, verts, []float64{0, 0})
	assert.InDelta(t, 1.0, m.Det, 1e-12)
}

func TestScaledHex8DoublesJacobian(t *testing.T) {
	// physical cube of side 2*2=4 side, i.e. physical = 2*reference:
	// dx/dr = 2*I, so Det = 2^3 = 8.
	verts := make([][]float64, 8)
	ref := [8][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	for i, v := range ref {
		verts[i] = []float64{2 * v[0], 2 * v[1], 2 * v[2]}
	}
	m := NewMap(refgeom.Hex8)
	m.Eval(refgeom.Hex8, verts, []float64{0, 0, 0})
	assert.InDelta(t, 8.0, m.Det, 1e-9)
}
