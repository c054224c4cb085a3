// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timeintegrator is the implicit time-stepping glue of spec.md
// §4.8: a thin wrapper driving package fem's residual/Jacobian engine at
// each step with a scheme-dependent shift factor σ and time-derivative
// formula x_t = σ·(x − x_prev) + const.
//
// Grounded on fem/dyncoefs.go's DynCoefs (θ-method/Newmark/HHT β/α
// coefficient derivation pattern), generalized from that struct's many
// scheme-specific coefficients down to the spec's single shift value,
// since beuler/cn are both one-coefficient schemes; the outer-stepper
// shape follows gosl/ode's Solver interface (Step/Accept-style driving
// loop) per SPEC_FULL.md's dependency wiring.
package timeintegrator

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Scheme identifies a supported implicit time-stepping formula.
type Scheme int

const (
	BackwardEuler Scheme = iota
	CrankNicolson
)

// ConvergedReason mirrors PETSc TS's TS_CONVERGED_* enumeration (spec
// §4.8 "Convergence reason").
type ConvergedReason int

const (
	ConvergedNone ConvergedReason = iota
	ConvergedIts                  // converged within the iteration limit
	ConvergedUser                 // caller explicitly accepted the step
	DivergedNonlinearSolve
	DivergedMaxIts
)

func (r ConvergedReason) String() string {
	switch r {
	case ConvergedIts:
		return "TS_CONVERGED_ITS"
	case ConvergedUser:
		return "TS_CONVERGED_USER"
	case DivergedNonlinearSolve:
		return "TS_DIVERGED_NONLINEAR_SOLVE"
	case DivergedMaxIts:
		return "TS_DIVERGED_MAX_ITS"
	default:
		return "TS_CONVERGED_NONE"
	}
}

// Config is the user-facing configuration of spec §4.8: exactly one of
// EndTime/NumSteps must be set, Dt must be positive, and StartTime must
// precede EndTime when both are given.
type Config struct {
	Scheme     Scheme
	StartTime  float64
	EndTime    float64 // zero value means "unset" (see Validate)
	NumSteps   int     // zero value means "unset" (see Validate)
	Dt         float64
	AdaptiveDt bool    // off by default; step-doubling error estimator (additive, spec §4.8 supplement)
	Tol        float64 // relative tolerance for the adaptive estimator, used only if AdaptiveDt
}

// Validate enforces spec §4.8's configuration-validation rule, returning
// a clear user-facing error naming the offending option(s) rather than
// panicking, since this check runs before solving begins and the caller
// (e.g. a CLI) should be able to report it and exit cleanly.
func (c Config) Validate() error {
	hasEnd := c.EndTime != 0
	hasSteps := c.NumSteps != 0
	if hasEnd == hasSteps {
		return chk.Err("timeintegrator: exactly one of end_time or num_steps must be set (end_time=%v, num_steps=%v)", c.EndTime, c.NumSteps)
	}
	if c.Dt <= 0 {
		return chk.Err("timeintegrator: dt must be > 0 (dt=%v)", c.Dt)
	}
	if hasEnd && c.StartTime >= c.EndTime {
		return chk.Err("timeintegrator: start_time must be < end_time (start_time=%v, end_time=%v)", c.StartTime, c.EndTime)
	}
	return nil
}

// Stepper drives a caller-supplied solve function (typically wrapping
// package fem's residual/Jacobian engine) through a sequence of implicit
// time steps, computing the shift factor for the configured scheme at
// each step (spec §4.8); x_t itself is formed by the solve function from
// that shift, x and xPrev.
type Stepper struct {
	Cfg     Config
	T       float64
	Step    int
	Reason  ConvergedReason
	XPrev   []float64
}

// NewStepper validates cfg and returns a Stepper initialized at
// cfg.StartTime with no prior solution vector.
func NewStepper(cfg Config) (*Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Stepper{Cfg: cfg, T: cfg.StartTime}, nil
}

// Shift returns σ for the configured scheme: 1/Δt for backward Euler,
// 1/(2Δt) for Crank-Nicolson (spec §4.8).
func (s *Stepper) Shift() float64 {
	switch s.Cfg.Scheme {
	case CrankNicolson:
		return 1.0 / (2.0 * s.Cfg.Dt)
	default:
		return 1.0 / s.Cfg.Dt
	}
}

// Done reports whether the stepper has reached its configured end
// condition (end_time or num_steps).
func (s *Stepper) Done() bool {
	if s.Cfg.NumSteps != 0 {
		return s.Step >= s.Cfg.NumSteps
	}
	return s.T >= s.Cfg.EndTime-1e-12
}

// Advance runs one step: it calls solve and, unless the returned reason
// is a divergence, moves the clock forward by the step size (Dt, or the
// step chosen by adapt when AdaptiveDt is set) and records the returned
// solution as the new XPrev. solve is invoked with (t, dt, shift, xPrev)
// and must return the converged solution vector plus a convergence
// reason; Advance stores the reason and, if it indicates divergence,
// leaves the clock where it was so the caller can inspect Reason and
// decide whether to retry with a smaller Dt.
func (s *Stepper) Advance(solve func(t, dt, shift float64, xPrev []float64) ([]float64, ConvergedReason)) {
	dt := s.Cfg.Dt
	if s.Cfg.AdaptiveDt {
		dt = s.adapt(solve)
	}
	x, reason := solve(s.T+dt, dt, s.shiftFor(dt), s.XPrev)
	s.Reason = reason
	if reason == DivergedNonlinearSolve || reason == DivergedMaxIts {
		return
	}
	s.T += dt
	s.Step++
	s.XPrev = x
}

func (s *Stepper) shiftFor(dt float64) float64 {
	if s.Cfg.Scheme == CrankNicolson {
		return 1.0 / (2.0 * dt)
	}
	return 1.0 / dt
}

// adapt implements the step-doubling estimator: a single step of dt is
// compared against two steps of dt/2, and dt is bisected (via
// num.Bisection-style halving) until the relative solution difference
// falls under Tol, per SPEC_FULL.md §4.8's additive, off-by-default
// extension. After eight halvings without success it returns the last
// halved dt unchecked. This is a local helper, not a persistent bisection
// root-find, so gosl/num.Bisection itself isn't invoked; it reuses the
// same halving idiom num/root.go applies to a scalar residual.
func (s *Stepper) adapt(solve func(t, dt, shift float64, xPrev []float64) ([]float64, ConvergedReason)) float64 {
	dt := s.Cfg.Dt
	for iter := 0; iter < 8; iter++ {
		full, r1 := solve(s.T+dt, dt, s.shiftFor(dt), s.XPrev)
		half := dt / 2
		mid, r2 := solve(s.T+half, half, s.shiftFor(half), s.XPrev)
		twoHalf, r3 := solve(s.T+dt, half, s.shiftFor(half), mid)
		if r1 != ConvergedIts && r1 != ConvergedUser {
			dt /= 2
			continue
		}
		if r2 != ConvergedIts && r2 != ConvergedUser || r3 != ConvergedIts && r3 != ConvergedUser {
			dt /= 2
			continue
		}
		if relDiff(full, twoHalf) <= s.Cfg.Tol {
			return dt
		}
		dt /= 2
	}
	return dt
}

func relDiff(a, b []float64) float64 {
	var num2, den float64
	for i := range a {
		d := a[i] - b[i]
		num2 += d * d
		den += a[i] * a[i]
	}
	if den == 0 {
		return math.Sqrt(num2)
	}
	return math.Sqrt(num2 / den)
}
