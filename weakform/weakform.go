// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package weakform is the WeakForm registry of spec.md §4.5: a mapping
// from (region label, label value, field pair, contribution part) to the
// residual/Jacobian integrand callbacks the FE integration driver (package
// fem) evaluates at every quadrature point.
//
// Grounded on original_source/include/Forms.h's FormBase/BilinearForm/
// LinearForm split (F0/F1 residual terms, G0-G3 Jacobian terms) and
// fem/naturalbcs.go's per-(field,region) keying pattern; rewritten from a
// small fixed virtual-dispatch class hierarchy into a flat, closed-set
// map, per the "newer system" Open Question resolution in DESIGN.md.
package weakform

// Part identifies which integrand slot a contribution fills.
type Part int

const (
	F0 Part = iota // residual: integrand against the test function's value
	F1             // residual: integrand against the test function's gradient
	G0             // Jacobian: d(F0)/d(trial value)
	G1             // Jacobian: d(F0)/d(trial gradient), or d(F1)/d(trial value)
	G2             // Jacobian: d(F1)/d(trial gradient)
	G3             // Jacobian: the remaining trial/test value/gradient combination
)

// Key identifies one registered contribution. Label=="" means "all cells"
// (spec §4.5 "label == null"). Equality is structural (Key is comparable,
// usable directly as a map key).
type Key struct {
	Label  string
	Value  int
	FieldI int
	FieldJ int
	Part   Part
}

// Region is a (label, value) pair the integration driver must iterate.
type Region struct {
	Label string
	Value int
}

// EvalPoint carries everything a registered callback may read at one
// quadrature point: spec §4.5 "reads pre-set field values (value,
// gradient, time-derivative, aux field values, spatial coordinates, time,
// normal on a boundary)".
type EvalPoint struct {
	U      float64   // trial/solution field value
	GradU  []float64 // trial/solution field gradient
	Ut     float64   // time derivative (x_t)
	Aux    map[string]float64
	X      []float64 // physical coordinates
	T      float64   // current time
	Normal []float64 // facet outward normal, nil on volume integrals
}

// ResidualFunc evaluates a scalar residual contribution (F0, tested
// against the test function's value) at a point.
type ResidualFunc func(p *EvalPoint) float64

// VectorResidualFunc evaluates a vector residual contribution (F1, one
// component per spatial dimension, tested against the test function's
// gradient component-wise: spec §4.6 step 4 "F1·∇ψ_k") at a point.
type VectorResidualFunc func(p *EvalPoint) []float64

// JacobianFunc evaluates a scalar Jacobian contribution (G0: d(F0)/d(trial
// value); G2: d(F1)/d(trial gradient), assumed isotropic so a single
// scalar multiplies ∇ψ_k·∇ψ_l) at a point.
type JacobianFunc func(p *EvalPoint) float64

// VectorJacobianFunc evaluates a vector Jacobian contribution (G1: d(F0)/
// d(trial gradient), one component per spatial dimension; G3: d(F1)/d(trial
// value), likewise) at a point.
type VectorJacobianFunc func(p *EvalPoint) []float64

type residualEntry struct {
	fn       ResidualFunc       // set for F0 (scalar) entries
	vecFn    VectorResidualFunc // set for F1 (vector) entries
	boundary bool
}

type jacobianEntry struct {
	fn       JacobianFunc       // set for G0/G2 (scalar) entries
	vecFn    VectorJacobianFunc // set for G1/G3 (vector) entries
	boundary bool
	precond  bool // reported by HasJacobianPreconditioner
}

// Registry is the Problem-owned weak-form store (spec §5 "Memory
// ownership": owned exclusively by the Problem).
type Registry struct {
	residuals map[Key]*residualEntry
	jacobians map[Key]*jacobianEntry
}

func NewRegistry() *Registry {
	return &Registry{
		residuals: make(map[Key]*residualEntry),
		jacobians: make(map[Key]*jacobianEntry),
	}
}

// AddResidual registers a volume F0 (scalar) residual contribution.
func (r *Registry) AddResidual(key Key, fn ResidualFunc) {
	r.residuals[key] = &residualEntry{fn: fn}
}

// AddVectorResidual registers a volume F1 (vector, one component per
// spatial dimension) residual contribution.
func (r *Registry) AddVectorResidual(key Key, fn VectorResidualFunc) {
	r.residuals[key] = &residualEntry{vecFn: fn}
}

// AddBoundaryResidual registers a facet F0 residual contribution (spec §4.7).
func (r *Registry) AddBoundaryResidual(key Key, fn ResidualFunc) {
	r.residuals[key] = &residualEntry{fn: fn, boundary: true}
}

// AddJacobian registers a volume G0/G2 (scalar) Jacobian contribution.
// precond only marks the contribution for HasJacobianPreconditioner: the
// fem driver assembles every contribution into Jp whenever Jp is a
// distinct matrix from J, whatever this flag says.
func (r *Registry) AddJacobian(key Key, fn JacobianFunc, precond bool) {
	r.jacobians[key] = &jacobianEntry{fn: fn, precond: precond}
}

// AddVectorJacobian registers a volume G1/G3 (vector, one component per
// spatial dimension) Jacobian contribution.
func (r *Registry) AddVectorJacobian(key Key, fn VectorJacobianFunc, precond bool) {
	r.jacobians[key] = &jacobianEntry{vecFn: fn, precond: precond}
}

// AddBoundaryJacobian registers a facet G0 Jacobian contribution.
func (r *Registry) AddBoundaryJacobian(key Key, fn JacobianFunc, precond bool) {
	r.jacobians[key] = &jacobianEntry{fn: fn, boundary: true, precond: precond}
}

func (r *Registry) Residual(key Key) (ResidualFunc, bool) {
	e, ok := r.residuals[key]
	if !ok || e.boundary || e.fn == nil {
		return nil, false
	}
	return e.fn, true
}

// VectorResidual is Residual's F1 (vector) analogue.
func (r *Registry) VectorResidual(key Key) (VectorResidualFunc, bool) {
	e, ok := r.residuals[key]
	if !ok || e.vecFn == nil {
		return nil, false
	}
	return e.vecFn, true
}

func (r *Registry) Jacobian(key Key) (JacobianFunc, bool) {
	e, ok := r.jacobians[key]
	if !ok || e.boundary || e.fn == nil {
		return nil, false
	}
	return e.fn, true
}

// VectorJacobian is Jacobian's G1/G3 (vector) analogue.
func (r *Registry) VectorJacobian(key Key) (VectorJacobianFunc, bool) {
	e, ok := r.jacobians[key]
	if !ok || e.vecFn == nil {
		return nil, false
	}
	return e.vecFn, true
}

// BoundaryResidual returns key's registered contribution only if it was
// added via AddBoundaryResidual; a volume contribution under the same key
// is invisible here, keeping the facet integration driver from
// accidentally re-integrating a volume term over a boundary.
func (r *Registry) BoundaryResidual(key Key) (ResidualFunc, bool) {
	e, ok := r.residuals[key]
	if !ok || !e.boundary || e.fn == nil {
		return nil, false
	}
	return e.fn, true
}

// BoundaryJacobian is BoundaryResidual's Jacobian-side analogue.
func (r *Registry) BoundaryJacobian(key Key) (JacobianFunc, bool) {
	e, ok := r.jacobians[key]
	if !ok || !e.boundary || e.fn == nil {
		return nil, false
	}
	return e.fn, true
}

// HasJacobian reports whether any Jacobian contribution is registered.
func (r *Registry) HasJacobian() bool { return len(r.jacobians) > 0 }

// HasJacobianPreconditioner reports whether any registered Jacobian
// contribution also feeds the preconditioner matrix.
func (r *Registry) HasJacobianPreconditioner() bool {
	for _, e := range r.jacobians {
		if e.precond {
			return true
		}
	}
	return false
}

// ResidualRegions returns the distinct (label, value) pairs the residual
// driver must iterate, with the unlabeled ("all cells") region first, per
// spec §4.6 "A key with label == null is always iterated before labeled
// ones to establish the background contribution."
func ResidualRegions(r *Registry) []Region { return regionsOf(keysOf(r.residuals)) }

// JacobianRegions is the Jacobian-side analogue of ResidualRegions.
func JacobianRegions(r *Registry) []Region { return regionsOf(keysOf(r.jacobians)) }

// BoundaryResidualRegions returns the distinct labeled regions carrying at
// least one facet residual contribution. Unlike ResidualRegions, there is
// no unlabeled "background" boundary (spec §4.7's natural boundaries are
// always tag-selected), so this never needs the global-region-first rule.
func BoundaryResidualRegions(r *Registry) []Region {
	var ks []Key
	for k, e := range r.residuals {
		if e.boundary {
			ks = append(ks, k)
		}
	}
	return regionsOf(ks)
}

// BoundaryJacobianRegions is BoundaryResidualRegions's Jacobian-side analogue.
func BoundaryJacobianRegions(r *Registry) []Region {
	var ks []Key
	for k, e := range r.jacobians {
		if e.boundary {
			ks = append(ks, k)
		}
	}
	return regionsOf(ks)
}

func keysOf[V any](m map[Key]V) []Key {
	ks := make([]Key, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}

func regionsOf(keys []Key) []Region {
	seen := make(map[Region]bool)
	var global []Region
	var labeled []Region
	for _, k := range keys {
		reg := Region{Label: k.Label, Value: k.Value}
		if seen[reg] {
			continue
		}
		seen[reg] = true
		if k.Label == "" {
			global = append(global, reg)
		} else {
			labeled = append(labeled, reg)
		}
	}
	return append(global, labeled...)
}
