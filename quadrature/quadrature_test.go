// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadrature

import (
	"testing"

	"github.com/cpmech/gofem/refgeom"
	"github.com/stretchr/testify/assert"
)

func sumWeights(pts []Point) float64 {
	s := 0.0
	for _, p := range pts {
		s += p.W
	}
	return s
}

func TestTriangleAreaIsTwo(t *testing.T) {
	for order := 1; order <= 6; order++ {
		pts := Get(refgeom.Tri3, order)
		assert.InDelta(t, 2.0, sumWeights(pts), 1e-12)
	}
}

func TestTetrahedronVolumeIsFourThirds(t *testing.T) {
	for order := 1; order <= 6; order++ {
		pts := Get(refgeom.Tet4, order)
		assert.InDelta(t, 4.0/3.0, sumWeights(pts), 1e-12)
	}
}

func TestQuadAreaIsFour(t *testing.T) {
	pts := Get(refgeom.Quad4, 3)
	assert.InDelta(t, 4.0, sumWeights(pts), 1e-12)
}

func TestHexVolumeIsEight(t *testing.T) {
	pts := Get(refgeom.Hex8, 3)
	assert.InDelta(t, 8.0, sumWeights(pts), 1e-12)
}

func TestEdgeLengthIsTwo(t *testing.T) {
	pts := Get(refgeom.Edge2, 5)
	assert.InDelta(t, 2.0, sumWeights(pts), 1e-12)
}
