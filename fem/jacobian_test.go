// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gofem/mesh"
	"github.com/cpmech/gofem/refgeom"
	"github.com/cpmech/gofem/space"
	"github.com/cpmech/gofem/weakform"

	"github.com/cpmech/gosl/la"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A unit-spaced 3-vertex 1D chain, two EDGE2 cells: [0,1] and [1,2].
const chainJSON = `{
  "verts": [
    {"id": 0, "coords": [0]},
    {"id": 1, "coords": [1]},
    {"id": 2, "coords": [2]}
  ],
  "cells": [
    {"id": 0, "type": "edge2", "verts": [0, 1]},
    {"id": 1, "type": "edge2", "verts": [1, 2]}
  ]
}`

func loadChain(t *testing.T) *mesh.Mesh {
	dir := t.TempDir()
	fn := filepath.Join(dir, "mesh.json")
	require.NoError(t, os.WriteFile(fn, []byte(chainJSON), 0644))
	return mesh.ReadJSON(fn)
}

// A Laplacian (pure diffusion) weak form on a 1D chain must assemble into
// the classical tridiagonal stiffness pattern, with interior nodes
// picking up contributions from both adjacent elements.
func TestComputeJacobianLocalProducesTridiagonalStiffness(t *testing.T) {
	m := loadChain(t)
	field := &space.Field{Name: "u", Type: refgeom.Edge2, Order: 1, NComp: 1}
	sp := space.NewSpace(m, []*space.Field{field})
	sp.AssignDofs(0)
	require.Equal(t, 3, sp.NumEquations())

	reg := weakform.NewRegistry()
	reg.AddJacobian(weakform.Key{FieldI: 0, FieldJ: 0, Part: weakform.G2}, func(p *weakform.EvalPoint) float64 {
		return 1
	}, false)

	p := NewProblem(m, sp, reg)
	J := new(la.Triplet)
	J.Init(3, 3, 3*3*2)
	x := make([]float64, sp.NumEquations())
	p.ComputeJacobianLocal(0, x, nil, 0, 0, J, nil)

	dense := J.ToMatrix(nil).ToDense().GetDeep2()
	assert.InDelta(t, 1.0, dense[0][0], 1e-9)
	assert.InDelta(t, -1.0, dense[0][1], 1e-9)
	assert.InDelta(t, 0.0, dense[0][2], 1e-9)
	assert.InDelta(t, -1.0, dense[1][0], 1e-9)
	assert.InDelta(t, 2.0, dense[1][1], 1e-9)
	assert.InDelta(t, -1.0, dense[1][2], 1e-9)
	assert.InDelta(t, 0.0, dense[2][0], 1e-9)
	assert.InDelta(t, -1.0, dense[2][1], 1e-9)
	assert.InDelta(t, 1.0, dense[2][2], 1e-9)
}
