// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boundaryinfo builds the Essential and Natural boundary objects
// of spec.md §3: essential carries the projected Dirichlet values at
// boundary vertices; natural carries, per tagged facet, the outward unit
// normal and facet measure (and optionally an averaged nodal-normal
// field), needed by the FE integration driver's boundary pass (spec §4.7).
//
// Grounded on shp/algos.go's CalcAtFaceIp face-normal construction
// (cross/rotate of facet tangent vectors) and fem/essenbcs.go's
// essential-BC bookkeeping, generalized to the labeled-region mesh model
// of package mesh.
package boundaryinfo

import (
	"math"

	"github.com/cpmech/gofem/mesh"
	"github.com/cpmech/gofem/refgeom"

	"github.com/cpmech/gosl/fun"
)

// Essential holds the ordered boundary vertices and their projected
// Dirichlet values for one field (spec §3 "Essential").
type Essential struct {
	Verts []int
	Value []float64
}

// BuildEssential evaluates fn at every vertex in label and returns the
// corresponding Essential object.
func BuildEssential(m *mesh.Mesh, label string, fn fun.Func) *Essential {
	e := &Essential{}
	l, ok := m.Labels[label]
	if !ok {
		return e
	}
	for _, v := range m.Verts {
		if !l.Points[v.ID] {
			continue
		}
		e.Verts = append(e.Verts, v.ID)
		e.Value = append(e.Value, fn.F(0, v.Coords))
	}
	return e
}

// Facet identifies one boundary facet: the owning cell and its local face
// index within that cell's refgeom table.
type Facet struct {
	CellID    int
	LocalFace int
	Normal    []float64
	Area      float64
}

// Natural holds the tagged boundary facets for one field (spec §3
// "Natural"), plus an optional nodal-normal field averaging the
// per-facet normals at each boundary vertex — needed where boundary
// gradients meet at corners (spec §3).
type Natural struct {
	Facets      []Facet
	NodalNormal map[int][]float64
}

// BuildNatural scans every cell's faces for membership in label (via the
// mesh's face-tag convention: a face is tagged by labeling the owning
// cell's id combined with the local face index is not expressible with
// plain vertex labels, so natural boundaries are instead selected by
// requiring every vertex of the candidate face to belong to label — the
// same convention original_source's DMPlex-backed boundary condition
// selection uses for a fully vertex-tagged boundary stratum).
func BuildNatural(m *mesh.Mesh, label string) *Natural {
	n := &Natural{NodalNormal: make(map[int][]float64)}
	l, ok := m.Labels[label]
	if !ok {
		return n
	}
	for ci := range m.Cells {
		c := &m.Cells[ci]
		g := refgeom.Get(c.Type)
		for fi, fv := range g.FaceVerts {
			if !allVertsInLabel(c, fv, l) {
				continue
			}
			normal, area := faceNormalAndArea(m, c, fv, g.Dim)
			n.Facets = append(n.Facets, Facet{CellID: c.ID, LocalFace: fi, Normal: normal, Area: area})
			for _, lv := range fv {
				vid := c.Verts[lv]
				accumulateNodalNormal(n.NodalNormal, vid, normal)
			}
		}
	}
	normalizeNodalNormals(n.NodalNormal)
	return n
}

func allVertsInLabel(c *mesh.Cell, localVerts []int, l *mesh.Label) bool {
	for _, lv := range localVerts {
		if !l.Points[c.Verts[lv]] {
			return false
		}
	}
	return true
}

func accumulateNodalNormal(acc map[int][]float64, vid int, normal []float64) {
	cur, ok := acc[vid]
	if !ok {
		cur = make([]float64, len(normal))
		acc[vid] = cur
	}
	for i, x := range normal {
		cur[i] += x
	}
}

func normalizeNodalNormals(acc map[int][]float64) {
	for _, v := range acc {
		norm := vecNorm(v)
		if norm == 0 {
			continue
		}
		for i := range v {
			v[i] /= norm
		}
	}
}

// faceNormalAndArea computes the outward unit normal and measure of a
// facet given as an ordered list of the owning cell's local vertex
// indices. 1D cells (Edge2) have point facets: the normal is the
// coordinate-axis sign of the facet's single vertex and its "area" is 1
// by spec convention (spec §8's NaturalBoundary1D scenario). For 2D cells
// the facet is an edge: the outward normal is the tangent rotated -90°
// (clockwise),
// scaled to unit length, matching refgeom's CCW vertex winding. For 3D
// cells the facet is triangulated by a vertex fan and each triangle's
// cross product contributes to both the (summed, then normalized) normal
// and the total area.
func faceNormalAndArea(m *mesh.Mesh, c *mesh.Cell, localVerts []int, dim int) ([]float64, float64) {
	switch dim {
	case 1:
		// localVerts has exactly one entry: 0 (left end, outward -1) or 1
		// (right end, outward +1), per refgeom.Edge2's FaceVerts.
		sign := -1.0
		if localVerts[0] == 1 {
			sign = 1.0
		}
		return []float64{sign}, 1.0
	case 2:
		a := m.Verts[c.Verts[localVerts[0]]].Coords
		b := m.Verts[c.Verts[localVerts[1]]].Coords
		d := []float64{b[0] - a[0], b[1] - a[1]}
		length := math.Hypot(d[0], d[1])
		return []float64{d[1] / length, -d[0] / length}, length
	default:
		p := func(i int) []float64 { return m.Verts[c.Verts[localVerts[i]]].Coords }
		v0 := p(0)
		var sum [3]float64
		var area float64
		for i := 1; i+1 < len(localVerts); i++ {
			vi, vj := p(i), p(i+1)
			a := sub3(vi, v0)
			b := sub3(vj, v0)
			cr := cross3(a, b)
			sum[0] += cr[0]
			sum[1] += cr[1]
			sum[2] += cr[2]
			area += 0.5 * math.Sqrt(cr[0]*cr[0]+cr[1]*cr[1]+cr[2]*cr[2])
		}
		norm := math.Sqrt(sum[0]*sum[0] + sum[1]*sum[1] + sum[2]*sum[2])
		if norm == 0 {
			return []float64{0, 0, 0}, area
		}
		return []float64{sum[0] / norm, sum[1] / norm, sum[2] / norm}, area
	}
}

func sub3(a, b []float64) []float64 { return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func cross3(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func vecNorm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
