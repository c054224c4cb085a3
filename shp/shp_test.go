// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gofem/refgeom"
	"github.com/cpmech/gosl/num"
	"github.com/stretchr/testify/assert"
)

// partitionOfUnity checks that the NumFuncs(order) functions of a shapeset
// sum to 1 at a handful of interior points (every call here passes order
// 1, where only the vertex functions exist), the standard H1 sanity check
// the teacher applies in shp/t_shape_test.go via numerical differentiation
// of individual functions; here it is applied to the whole basis.
func partitionOfUnity(t *testing.T, s Shapeset, order int, pts [][]float64) {
	n := s.NumFuncs(order)
	sums := make([]float64, len(pts))
	tmp := make([]float64, len(pts))
	for i := 0; i < n; i++ {
		s.Eval(Value, i, pts, tmp)
		for j := range pts {
			sums[j] += tmp[j]
		}
	}
	for j := range pts {
		assert.InDelta(t, 1.0, sums[j], 1e-10)
	}
}

func TestEdge2PartitionOfUnity(t *testing.T) {
	s := Get(refgeom.Edge2)
	pts := [][]float64{{-0.5}, {0}, {0.3}, {0.9}}
	partitionOfUnity(t, s, 1, pts)
}

func TestEdge2BubbleVanishesAtVertices(t *testing.T) {
	s := Get(refgeom.Edge2)
	pts := [][]float64{{-1}, {1}}
	out := make([]float64, 2)
	s.Eval(Value, 2, pts, out)
	assert.InDelta(t, 0, out[0], 1e-12)
	assert.InDelta(t, 0, out[1], 1e-12)
}

func TestEdge2DerivativeMatchesCentralDifference(t *testing.T) {
	s := Get(refgeom.Edge2)
	x := 0.37
	f := func(xx float64) float64 {
		out := make([]float64, 1)
		s.Eval(Value, 3, [][]float64{{xx}}, out)
		return out[0]
	}
	dfd := num.DerivCentral(f, x, 1e-3)
	out := make([]float64, 1)
	s.Eval(Dx, 3, [][]float64{{x}}, out)
	assert.InDelta(t, dfd, out[0], 1e-6)
}

func TestTri3PartitionOfUnity(t *testing.T) {
	s := Get(refgeom.Tri3)
	pts := [][]float64{{-0.5, -0.5}, {0, 0}, {-0.8, 0.1}}
	partitionOfUnity(t, s, 1, pts)
}

func TestQuad4PartitionOfUnity(t *testing.T) {
	s := Get(refgeom.Quad4)
	pts := [][]float64{{0, 0}, {0.5, -0.3}, {-0.9, 0.9}}
	partitionOfUnity(t, s, 1, pts)
}

func TestHex8PartitionOfUnity(t *testing.T) {
	s := Get(refgeom.Hex8)
	pts := [][]float64{{0, 0, 0}, {0.4, -0.2, 0.1}}
	partitionOfUnity(t, s, 1, pts)
}

func TestTet4PartitionOfUnity(t *testing.T) {
	s := Get(refgeom.Tet4)
	pts := [][]float64{{-0.5, -0.5, -0.5}, {-0.9, 0.1, -0.1}}
	partitionOfUnity(t, s, 1, pts)
}

func TestPrism6PartitionOfUnity(t *testing.T) {
	s := Get(refgeom.Prism6)
	pts := [][]float64{{-0.5, -0.5, 0}, {-0.8, 0.2, 0.4}}
	partitionOfUnity(t, s, 1, pts)
}
