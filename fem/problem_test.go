// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gofem/refgeom"
	"github.com/cpmech/gofem/space"
	"github.com/cpmech/gofem/weakform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A constant residual integrand F0=1 with no trial/test gradient term
// sums, over the whole unconstrained mesh, to the mesh's total measure:
// sum_k psi_k(q) == 1 at every quadrature point (partition of unity), so
// integrating 1*psi_k and summing over k and cells recovers
// integral(1) dx == total length.
func TestComputeResidualLocalConstantSourceSumsToMeasure(t *testing.T) {
	m := loadChain(t) // two unit EDGE2 cells: total length 2
	field := &space.Field{Name: "u", Type: refgeom.Edge2, Order: 1, NComp: 1}
	sp := space.NewSpace(m, []*space.Field{field})
	sp.AssignDofs(0)
	require.Equal(t, 3, sp.NumEquations())

	reg := weakform.NewRegistry()
	reg.AddResidual(weakform.Key{FieldI: 0, Part: weakform.F0}, func(p *weakform.EvalPoint) float64 {
		return 1
	})

	p := NewProblem(m, sp, reg)
	x := make([]float64, sp.NumEquations())
	f := make([]float64, sp.NumEquations())
	p.ComputeResidualLocal(0, x, nil, 0, 0, f)

	sum := 0.0
	for _, v := range f {
		sum += v
	}
	assert.InDelta(t, 2.0, sum, 1e-9)
}

// A field with no registered residual contribution leaves the residual
// vector untouched (spec §4.6: only registered F0/F1 keys are evaluated).
func TestComputeResidualLocalNoOpWhenUnregistered(t *testing.T) {
	m := loadChain(t)
	field := &space.Field{Name: "u", Type: refgeom.Edge2, Order: 1, NComp: 1}
	sp := space.NewSpace(m, []*space.Field{field})
	sp.AssignDofs(0)

	p := NewProblem(m, sp, weakform.NewRegistry())
	x := make([]float64, sp.NumEquations())
	f := make([]float64, sp.NumEquations())
	p.ComputeResidualLocal(0, x, nil, 0, 0, f)

	for _, v := range f {
		assert.Equal(t, 0.0, v)
	}
}
