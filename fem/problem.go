// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fem is the FE problem engine of spec.md §4.6/§4.7: given a
// mesh, a DOF Space and a weak-form Registry, it assembles the global
// residual vector and Jacobian matrix by integrating the registered F0/F1
// (residual) and G0-G3 (Jacobian) contributions cell-by-cell and, for
// natural boundaries, facet-by-facet.
//
// Grounded on fem/domain.go's Domain (mesh+space+solution ownership),
// fem/solver.go's global assembly loop, fem/errorhandler.go's
// Stop/PanicOrNot, and original_source/src/FENonlinearProblem.cpp's
// compute_boundary_local/compute_residual_local/compute_jacobian_local
// split; rewritten around package weakform's flat registry and package
// space's vertex-only AssemblyList instead of the teacher's per-physics
// Elem interface (ElemU/ElemP/...).
package fem

import (
	"github.com/cpmech/gofem/mesh"
	"github.com/cpmech/gofem/quadrature"
	"github.com/cpmech/gofem/refgeom"
	"github.com/cpmech/gofem/refmap"
	"github.com/cpmech/gofem/shp"
	"github.com/cpmech/gofem/space"
	"github.com/cpmech/gofem/weakform"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// OverIntegration is added to 2*max(field order, ref-map order) when
// choosing a quadrature order, per spec §4.6 step 2.
const OverIntegration = 1

// chunkSize is the batch size ComputeResidualLocal walks a region's cells
// in; it plays the role of spec §4.6's "chunking" tile sizing without
// reproducing PETSc's exact block_size/n_blocks/batch_size bookkeeping.
// Each cell is still evaluated and scattered on its own, with no
// per-batch geometric setup, so the batching changes neither results nor
// memory use; ComputeJacobianLocal does not batch.
const chunkSize = 64

// Problem owns the Space and Registry exclusively (spec §5 "Memory
// ownership"); the Mesh is shared and must outlive the Problem.
type Problem struct {
	Mesh *mesh.Mesh
	Space *space.Space
	Reg  *weakform.Registry
}

func NewProblem(m *mesh.Mesh, sp *space.Space, reg *weakform.Registry) *Problem {
	return &Problem{Mesh: m, Space: sp, Reg: reg}
}

// localCoeffs gathers one field's cell-local trial coefficients from the
// global vector x, substituting essential (Dirichlet) values directly —
// this is where spec §4.6's separate "compute_boundary_local" step is
// realized: an essential AssemblyEntry already carries its projected
// value as Coeff and DirichletDOF as GlobalDOF, so gathering and
// boundary-value substitution are the same pass.
//
// The result is indexed by ShapeIndex, not by position in al: al omits
// essential entries whose projected value is zero and may list bubble
// DOFs in any order, so positional indexing would silently misattribute
// coefficients to the wrong shape function.
func localCoeffs(al space.AssemblyList, nshape int, x []float64) []float64 {
	u := make([]float64, nshape)
	for _, e := range al {
		switch e.GlobalDOF {
		case space.DirichletDOF:
			u[e.ShapeIndex] = e.Coeff
		case -2: // free cell-local (bubble/edge/face) DOF, not yet reduced
			u[e.ShapeIndex] = 0
		default:
			u[e.ShapeIndex] = x[e.GlobalDOF] * e.Coeff
		}
	}
	return u
}

func quadOrder(fieldOrder int) int {
	return 2*fieldOrder + OverIntegration
}

// cellsOf resolves a weak-form region to the set of cell indices it
// covers: label=="" means every cell (spec §4.6 step 1), otherwise cells
// whose own id the label holds.
func (p *Problem) cellsOf(region weakform.Region) []int {
	if region.Label == "" {
		ids := make([]int, len(p.Mesh.Cells))
		for i := range p.Mesh.Cells {
			ids[i] = i
		}
		return ids
	}
	l, ok := p.Mesh.Labels[region.Label]
	if !ok {
		return nil
	}
	var ids []int
	for i := range p.Mesh.Cells {
		c := &p.Mesh.Cells[i]
		if l.Points[c.ID] {
			ids = append(ids, i)
		}
	}
	return ids
}

// cellEval holds one field's trial value, gradient, and time derivative
// at every quadrature point of one cell.
type cellEval struct {
	qpts   []quadrature.Point
	detJxW []float64
	X      [][]float64
	U      []float64
	GradU  [][]float64
	Ut     []float64
	al     space.AssemblyList
	nshape int
}

func (p *Problem) evalCell(fi int, c *mesh.Cell, x, xPrev []float64, shift float64) *cellEval {
	f := p.Space.Fields[fi]
	order := quadOrder(f.Order)
	qpts := quadrature.Get(c.Type, order)
	return p.evalCellAtPoints(fi, c, x, xPrev, shift, qpts)
}

// evalCellAtPoints is evalCell's body generalized over an arbitrary set of
// cell-reference-frame quadrature points, so a natural-boundary facet pass
// (whose points live on a lower-dimensional sub-manifold of the same cell,
// see facetPointsInCellRef) can reuse the same field-value/gradient
// evaluation as volume integration instead of duplicating it.
func (p *Problem) evalCellAtPoints(fi int, c *mesh.Cell, x, xPrev []float64, shift float64, qpts []quadrature.Point) *cellEval {
	f := p.Space.Fields[fi]
	ss := shp.Get(c.Type)
	g := refgeom.Get(c.Type)
	al := p.Space.GetElementAssemblyList(fi, c)
	nshape := ss.NumFuncs(f.Order)
	u := localCoeffs(al, nshape, x)
	var uPrev []float64
	if xPrev != nil {
		uPrev = localCoeffs(al, nshape, xPrev)
	}

	verts := p.Mesh.Cone(c)
	e := &cellEval{qpts: qpts, al: al, nshape: nshape}
	e.detJxW = make([]float64, len(qpts))
	e.X = make([][]float64, len(qpts))
	e.U = make([]float64, len(qpts))
	e.GradU = make([][]float64, len(qpts))
	e.Ut = make([]float64, len(qpts))

	rm := refmap.NewMap(c.Type)
	svals := make([]float64, 1)
	for qi, qp := range qpts {
		rm.Eval(c.Type, verts, qp.R)
		e.detJxW[qi] = rm.Det * qp.W
		e.X[qi] = append([]float64{}, rm.X...)

		grad := make([]float64, g.Dim)
		val := 0.0
		valPrev := 0.0
		for k := 0; k < e.nshape; k++ {
			ss.Eval(shp.Value, k, [][]float64{qp.R}, svals)
			val += u[k] * svals[0]
			if uPrev != nil {
				valPrev += uPrev[k] * svals[0]
			}
			// physical gradient: every shape function's reference gradient
			// is rotated by the cell's inverse Jacobian DRdx at this point,
			// which is exact for the straight-sided elements this
			// framework supports (spec §4.3 "constant-Jacobian").
			dref := make([]float64, g.Dim)
			for d := 0; d < g.Dim; d++ {
				ss.Eval(kindFor(d), k, [][]float64{qp.R}, svals)
				dref[d] = svals[0]
			}
			for d := 0; d < g.Dim; d++ {
				acc := 0.0
				for dd := 0; dd < g.Dim; dd++ {
					acc += dref[dd] * rm.DRdx[dd][d]
				}
				grad[d] += u[k] * acc
			}
		}
		e.U[qi] = val
		e.GradU[qi] = grad
		if uPrev != nil {
			e.Ut[qi] = shift*(val-valPrev)
		}
	}
	return e
}

func kindFor(d int) shp.Kind {
	switch d {
	case 0:
		return shp.Dx
	case 1:
		return shp.Dy
	default:
		return shp.Dz
	}
}

// ComputeResidualLocal implements spec §4.6's residual algorithm for one
// field: iterates the registry's residual regions for that field, and
// within each region processes cells chunkSize at a time, accumulating
// F0*psi_k + F1*grad(psi_k) into the global residual f.
func (p *Problem) ComputeResidualLocal(fi int, x, xPrev []float64, shift, t float64, f []float64) {
	regions := weakform.ResidualRegions(p.Reg)
	// Every cell a field fi is evaluated on must share its Type (spec §4.2's
	// Field is declared against one element type); ss/g are hoisted out of
	// the cell loop on that assumption instead of re-resolved per cell.
	ss := shp.Get(p.Space.Fields[fi].Type)
	g := refgeom.Get(p.Space.Fields[fi].Type)

	for _, region := range regions {
		// Resolved per region, not once before the loop: a labeled region
		// (e.g. a distinct material zone) may register its own F0/F1
		// integrand distinct from the unlabeled "background" one, and a
		// region with neither key registered for this field must be
		// skipped entirely rather than fall back to some other region's fn.
		f0fn, hasF0 := p.Reg.Residual(weakform.Key{Label: region.Label, Value: region.Value, FieldI: fi, Part: weakform.F0})
		f1fn, hasF1 := p.Reg.VectorResidual(weakform.Key{Label: region.Label, Value: region.Value, FieldI: fi, Part: weakform.F1})
		if !hasF0 && !hasF1 {
			continue
		}
		cellIdx := p.cellsOf(region)
		for start := 0; start < len(cellIdx); start += chunkSize {
			end := start + chunkSize
			if end > len(cellIdx) {
				end = len(cellIdx)
			}
			for _, ci := range cellIdx[start:end] {
				c := &p.Mesh.Cells[ci]
				ev := p.evalCell(fi, c, x, xPrev, shift)
				verts := p.Mesh.Cone(c)
				rm := refmap.NewMap(c.Type)
				elem := make([]float64, ev.nshape)
				for qi := range ev.qpts {
					rm.Eval(c.Type, verts, ev.qpts[qi].R)
					pt := &weakform.EvalPoint{U: ev.U[qi], GradU: ev.GradU[qi], Ut: ev.Ut[qi], X: ev.X[qi], T: t}
					var f0 float64
					var f1 []float64
					if hasF0 {
						f0 = f0fn(pt)
					}
					if hasF1 {
						f1 = f1fn(pt)
					}
					svals := make([]float64, 1)
					for k := 0; k < ev.nshape; k++ {
						ss.Eval(shp.Value, k, [][]float64{ev.qpts[qi].R}, svals)
						contrib := f0 * svals[0]
						if hasF1 {
							grad := make([]float64, g.Dim)
							for d := 0; d < g.Dim; d++ {
								ss.Eval(kindFor(d), k, [][]float64{ev.qpts[qi].R}, svals)
								for dd := 0; dd < g.Dim; dd++ {
									grad[dd] += svals[0] * rm.DRdx[d][dd]
								}
							}
							contrib += dotVec(f1, grad)
						}
						elem[k] += ev.detJxW[qi] * contrib
					}
				}
				if p.Mesh.IsGhost(c.ID) {
					continue
				}
				scatterVec(ev.al, elem, f)
			}
		}
	}
}

// dotVec is the component-wise dot product spec §4.6 step 4's "F1·∇ψ_k"
// (and the Jacobian driver's matching G1/G3·∇ψ cross terms) calls for: a
// vector contribution, one component per spatial dimension, against a
// shape function's physical gradient.
func dotVec(a, b []float64) float64 {
	s := 0.0
	for d := range b {
		s += a[d] * b[d]
	}
	return s
}

// scatterVec adds one cell's element vector (indexed by shape-function
// index) into the global vector, via each AssemblyEntry's ShapeIndex.
func scatterVec(al space.AssemblyList, elem []float64, f []float64) {
	for _, e := range al {
		if e.GlobalDOF < 0 {
			continue
		}
		f[e.GlobalDOF] += elem[e.ShapeIndex]
	}
}

// ComputeJacobianLocal implements spec §4.6's Jacobian algorithm for the
// diagonal (fi==fj) block of one field, scattering into the global
// Triplet J (and, if Jp is non-nil and distinct from J, the same element
// matrices into Jp too).
func (p *Problem) ComputeJacobianLocal(fi int, x, xPrev []float64, shift, t float64, J, Jp *la.Triplet) {
	regions := weakform.JacobianRegions(p.Reg)
	ss := shp.Get(p.Space.Fields[fi].Type)
	g := refgeom.Get(p.Space.Fields[fi].Type)

	for _, region := range regions {
		// See ComputeResidualLocal: resolved per region, not once up front.
		// All four parts are independently optional (spec §4.5 "G0...G3"):
		// G0 = d(F0)/d(trial value), G1 = d(F0)/d(trial gradient) (and, by
		// the symmetric-form convention, also d(F1)/d(trial value) unless
		// G3 overrides that cross term explicitly), G2 = d(F1)/d(trial
		// gradient), G3 = d(F1)/d(trial value) when the form isn't
		// symmetric enough for reusing G1 to be correct.
		g0fn, hasG0 := p.Reg.Jacobian(weakform.Key{Label: region.Label, Value: region.Value, FieldI: fi, FieldJ: fi, Part: weakform.G0})
		g1fn, hasG1 := p.Reg.VectorJacobian(weakform.Key{Label: region.Label, Value: region.Value, FieldI: fi, FieldJ: fi, Part: weakform.G1})
		g2fn, hasG2 := p.Reg.Jacobian(weakform.Key{Label: region.Label, Value: region.Value, FieldI: fi, FieldJ: fi, Part: weakform.G2})
		g3fn, hasG3 := p.Reg.VectorJacobian(weakform.Key{Label: region.Label, Value: region.Value, FieldI: fi, FieldJ: fi, Part: weakform.G3})
		if !hasG0 && !hasG1 && !hasG2 && !hasG3 {
			continue
		}
		cellIdx := p.cellsOf(region)
		for _, ci := range cellIdx {
			c := &p.Mesh.Cells[ci]
			ev := p.evalCell(fi, c, x, xPrev, shift)
			verts := p.Mesh.Cone(c)
			rm := refmap.NewMap(c.Type)
			n := ev.nshape
			elem := la.MatAlloc(n, n)
			for qi := range ev.qpts {
				rm.Eval(c.Type, verts, ev.qpts[qi].R)
				pt := &weakform.EvalPoint{U: ev.U[qi], GradU: ev.GradU[qi], Ut: ev.Ut[qi], X: ev.X[qi], T: t}
				var g0, g2 float64
				var g1, g3 []float64
				if hasG0 {
					g0 = g0fn(pt) * shift
				}
				if hasG1 {
					g1 = g1fn(pt)
					for d := range g1 {
						g1[d] *= shift
					}
				}
				if hasG2 {
					g2 = g2fn(pt)
				}
				if hasG3 {
					g3 = g3fn(pt)
				}
				svals := make([]float64, 1)
				S := make([]float64, n)
				G := la.MatAlloc(n, g.Dim)
				for k := 0; k < n; k++ {
					ss.Eval(shp.Value, k, [][]float64{ev.qpts[qi].R}, svals)
					S[k] = svals[0]
					for d := 0; d < g.Dim; d++ {
						ss.Eval(kindFor(d), k, [][]float64{ev.qpts[qi].R}, svals)
						for dd := 0; dd < g.Dim; dd++ {
							G[k][dd] += svals[0] * rm.DRdx[d][dd]
						}
					}
				}
				w := ev.detJxW[qi]
				for k := 0; k < n; k++ {
					for l := 0; l < n; l++ {
						val := w * g0 * S[k] * S[l]
						if hasG1 {
							val += w * S[k] * dotVec(g1, G[l])
							if !hasG3 {
								val += w * dotVec(g1, G[k]) * S[l]
							}
						}
						if hasG3 {
							val += w * dotVec(g3, G[k]) * S[l]
						}
						if hasG2 {
							val += w * g2 * dotVec(G[k], G[l])
						}
						elem[k][l] += val
					}
				}
			}
			if p.Mesh.IsGhost(c.ID) {
				continue
			}
			scatterMat(ev.al, elem, J)
			if Jp != nil && Jp != J {
				scatterMat(ev.al, elem, Jp)
			}
		}
	}
}

// scatterMat adds one cell's element matrix (indexed by shape-function
// index on both axes) into the global Triplet, via each AssemblyEntry's
// ShapeIndex.
func scatterMat(al space.AssemblyList, elem [][]float64, T *la.Triplet) {
	for _, ei := range al {
		if ei.GlobalDOF < 0 {
			continue
		}
		for _, ej := range al {
			if ej.GlobalDOF < 0 {
				continue
			}
			v := elem[ei.ShapeIndex][ej.ShapeIndex]
			if v == 0 {
				continue
			}
			T.Put(ei.GlobalDOF, ej.GlobalDOF, v)
		}
	}
}

// ComputeBoundaryLocal is retained as a named entry point matching
// spec §4.6's external interface, even though this port's AssemblyList
// already substitutes essential values during gathering (see
// localCoeffs): it verifies every field's essential DOFs were assigned
// before a solve begins, a configuration check the teacher's Domain.SetStage
// performs at stage-setup time rather than at every residual evaluation.
func (p *Problem) ComputeBoundaryLocal() {
	for fi, f := range p.Space.Fields {
		for _, v := range p.Mesh.Verts {
			nd := p.Space.NodeDataAt(fi, v.ID)
			if nd == nil {
				chk.Panic("fem: field %q has no DOF assigned at vertex %d; call Space.AssignDofs first", f.Name, v.ID)
			}
		}
	}
}
