// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gofem/timeintegrator"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// SolveConfig configures Problem.Solve's Newton-Raphson loop. Grounded on
// fem/solver.go's SolverData-driven iteration (NmaxIt, FbTol, FbMin,
// CteTg), reduced to the handful of knobs this port's single-field,
// single-scheme driver needs.
type SolveConfig struct {
	MaxIterations int
	Tol           float64 // converged once |R| < Tol*|R at iteration 0|
	MinResidual   float64 // converged once |R| < MinResidual, regardless of Tol
	LinSolName    string  // passed to la.GetSolver; "umfpack" if empty
}

func (c SolveConfig) withDefaults() SolveConfig {
	if c.MaxIterations == 0 {
		c.MaxIterations = 20
	}
	if c.Tol == 0 {
		c.Tol = 1e-9
	}
	if c.LinSolName == "" {
		c.LinSolName = "umfpack"
	}
	return c
}

// Solve runs field fi's residual/Jacobian (volume via ComputeResidualLocal/
// ComputeJacobianLocal, natural boundaries via ComputeNaturalResidualLocal/
// ComputeNaturalJacobianLocal) to convergence, mutating x in place and
// returning the reason iteration stopped.
//
// Grounded on fem/solver.go's Newton loop: assemble the residual, check its
// largest component against a relative (Tol*|R0|) and an absolute
// (MinResidual) tolerance, else assemble+factorize the Jacobian via
// la.LinSol and take a full Newton step. The teacher's Fb is assembled as
// the negative of the residual directly; this port's ComputeResidualLocal
// accumulates the residual itself, so the sign flip happens once, right
// before the linear solve, instead of being threaded through every
// registered F0/F1 callback.
func (p *Problem) Solve(fi int, x, xPrev []float64, shift, t float64, cfg SolveConfig) timeintegrator.ConvergedReason {
	cfg = cfg.withDefaults()
	n := p.Space.NumEquations()
	solver := la.GetSolver(cfg.LinSolName)
	defer solver.Clean()

	r := make([]float64, n)
	rhs := make([]float64, n)
	dx := make([]float64, n)
	var r0norm float64
	for it := 0; it < cfg.MaxIterations; it++ {
		for i := range r {
			r[i] = 0
		}
		p.ComputeResidualLocal(fi, x, xPrev, shift, t, r)
		p.ComputeNaturalResidualLocal(fi, x, t, r)

		rnorm := maxAbs(r)
		if it == 0 {
			r0norm = rnorm
		} else if rnorm < cfg.Tol*r0norm {
			return timeintegrator.ConvergedIts
		}
		if rnorm < cfg.MinResidual {
			return timeintegrator.ConvergedIts
		}

		J := new(la.Triplet)
		J.Init(n, n, n*n)
		p.ComputeJacobianLocal(fi, x, xPrev, shift, t, J, nil)
		p.ComputeNaturalJacobianLocal(fi, x, t, J, nil)

		solver.InitR(J, false, false, false)
		if err := solver.Fact(); err != nil {
			chk.Panic("fem: Jacobian factorization failed: %v", err)
		}
		for i := range r {
			rhs[i] = -r[i]
		}
		if err := solver.SolveR(dx, rhs, false); err != nil {
			chk.Panic("fem: linear solve failed: %v", err)
		}
		for i := range x {
			x[i] += dx[i]
		}
	}
	return timeintegrator.DivergedMaxIts
}

func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}
