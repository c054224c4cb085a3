// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gofem/boundaryinfo"
	"github.com/cpmech/gofem/mesh"
	"github.com/cpmech/gofem/quadrature"
	"github.com/cpmech/gofem/refgeom"
	"github.com/cpmech/gofem/shp"
	"github.com/cpmech/gofem/weakform"

	"github.com/cpmech/gosl/la"
)

// refMeasure is the measure of the reference domain of a facet type, used
// to turn a facet's physical Area (boundaryinfo.Facet, constant since every
// supported element is straight-sided/affine) into a per-quadrature-point
// weight scale factor.
func refMeasure(t refgeom.Type) float64 {
	switch t {
	case refgeom.Point:
		return 1
	case refgeom.Edge2:
		return 2
	case refgeom.Tri3:
		return 2
	case refgeom.Quad4:
		return 4
	}
	panic("fem: " + t.String() + " is not a facet type")
}

// facetPointsInCellRef maps a facet's own quadrature rule into the owning
// cell's reference frame: each facet-local reference point is expressed as
// an affine combination of the facet's vertex positions (in the cell's
// reference coordinates), weighted by the facet's own vertex shape
// functions — exact for the straight-sided elements this framework
// supports. Each point's weight is pre-scaled by facet.Area/refMeasure so
// the caller can integrate with it directly, without multiplying in the
// cell's (irrelevant, for a boundary pass) volume Jacobian determinant.
func facetPointsInCellRef(c *mesh.Cell, localFace, order int, area float64) []quadrature.Point {
	g := refgeom.Get(c.Type)
	faceVerts := g.FaceVerts[localFace]
	facetType := refgeom.FaceTypeAt(c.Type, localFace)

	if facetType == refgeom.Point {
		// A 1D cell's facet is a single vertex: no shapeset is registered
		// for refgeom.Point (spec §8's NaturalBoundary1D convention treats
		// its "area" as 1), so the reference point is just that vertex.
		return []quadrature.Point{{R: append([]float64{}, g.VertCoords[faceVerts[0]]...), W: area}}
	}

	base := quadrature.Get(facetType, order)
	scale := area / refMeasure(facetType)
	ss := shp.RefMapShapeset(facetType)
	svals := make([]float64, 1)
	pts := make([]quadrature.Point, len(base))
	for i, bp := range base {
		cellR := make([]float64, g.Dim)
		for lv, vIdx := range faceVerts {
			ss.Eval(shp.Value, ss.VertexIndex(lv), [][]float64{bp.R}, svals)
			vc := g.VertCoords[vIdx]
			for d := range cellR {
				cellR[d] += svals[0] * vc[d]
			}
		}
		pts[i] = quadrature.Point{R: cellR, W: bp.W * scale}
	}
	return pts
}

// ComputeNaturalResidualLocal implements spec §4.7's facet residual pass:
// for every natural boundary region registered against field fi, it walks
// the tagged facets, evaluates the registered F0 boundary integrand
// (reading EvalPoint.Normal, unlike a volume F0) at each facet quadrature
// point, and scatters facet*test-function contributions into f. Unlike
// ComputeResidualLocal, there is no "unlabeled background" region: a
// natural boundary is always tag-selected.
func (p *Problem) ComputeNaturalResidualLocal(fi int, x []float64, t float64, f []float64) {
	ss := shp.Get(p.Space.Fields[fi].Type)
	order := quadOrder(p.Space.Fields[fi].Order)

	for _, region := range weakform.BoundaryResidualRegions(p.Reg) {
		f0fn, hasF0 := p.Reg.BoundaryResidual(weakform.Key{Label: region.Label, Value: region.Value, FieldI: fi, Part: weakform.F0})
		if !hasF0 {
			continue
		}
		nat := boundaryinfo.BuildNatural(p.Mesh, region.Label)
		for _, facet := range nat.Facets {
			c := &p.Mesh.Cells[facet.CellID]
			qpts := facetPointsInCellRef(c, facet.LocalFace, order, facet.Area)
			ev := p.evalCellAtPoints(fi, c, x, nil, 0, qpts)
			elem := make([]float64, ev.nshape)
			svals := make([]float64, 1)
			for qi, qp := range ev.qpts {
				pt := &weakform.EvalPoint{U: ev.U[qi], GradU: ev.GradU[qi], X: ev.X[qi], T: t, Normal: facet.Normal}
				f0 := f0fn(pt)
				for k := 0; k < ev.nshape; k++ {
					ss.Eval(shp.Value, k, [][]float64{qp.R}, svals)
					elem[k] += qp.W * f0 * svals[0]
				}
			}
			scatterVec(ev.al, elem, f)
		}
	}
}

// ComputeNaturalJacobianLocal is ComputeNaturalResidualLocal's Jacobian-side
// analogue, for Robin-type (field-dependent) natural boundary conditions:
// it assembles only the G0 (d(F0)/d(trial value)) contribution, since a
// facet integral has no meaningful trial-gradient term in this framework's
// affine-element, vertex-DOF model (spec §4.7 does not ask for a G2 facet
// term).
func (p *Problem) ComputeNaturalJacobianLocal(fi int, x []float64, t float64, J, Jp *la.Triplet) {
	ss := shp.Get(p.Space.Fields[fi].Type)
	order := quadOrder(p.Space.Fields[fi].Order)

	for _, region := range weakform.BoundaryJacobianRegions(p.Reg) {
		g0fn, hasG0 := p.Reg.BoundaryJacobian(weakform.Key{Label: region.Label, Value: region.Value, FieldI: fi, FieldJ: fi, Part: weakform.G0})
		if !hasG0 {
			continue
		}
		nat := boundaryinfo.BuildNatural(p.Mesh, region.Label)
		for _, facet := range nat.Facets {
			c := &p.Mesh.Cells[facet.CellID]
			qpts := facetPointsInCellRef(c, facet.LocalFace, order, facet.Area)
			ev := p.evalCellAtPoints(fi, c, x, nil, 0, qpts)
			n := ev.nshape
			elem := la.MatAlloc(n, n)
			svals := make([]float64, 1)
			S := make([]float64, n)
			for qi, qp := range ev.qpts {
				pt := &weakform.EvalPoint{U: ev.U[qi], GradU: ev.GradU[qi], X: ev.X[qi], T: t, Normal: facet.Normal}
				g0 := g0fn(pt)
				for k := 0; k < n; k++ {
					ss.Eval(shp.Value, k, [][]float64{qp.R}, svals)
					S[k] = svals[0]
				}
				for k := 0; k < n; k++ {
					for l := 0; l < n; l++ {
						elem[k][l] += qp.W * g0 * S[k] * S[l]
					}
				}
			}
			scatterMat(ev.al, elem, J)
			if Jp != nil && Jp != J {
				scatterMat(ev.al, elem, Jp)
			}
		}
	}
}
