// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadrature

import "github.com/cpmech/gofem/refgeom"

// Point is a quadrature point in the reference domain of some element
// type: reference coordinates and an integration weight already including
// any Jacobian-of-collapse factor (the physical-mapping determinant,
// refmap.Map.Det, is multiplied in separately).
type Point struct {
	R []float64
	W float64
}

// Get returns a quadrature rule that integrates degree-`order` polynomials
// exactly over the reference domain of element type t.
//
// TRI3 and TET4 use the classical Duffy/collapsed-coordinate construction
// (square-to-triangle, cube-to-tetrahedron), reusing the exact 1D
// Gauss-Legendre tables of gauss1d.go rather than hand-transcribing
// simplex-specific tables the way original_source/include/QuadratureGauss2DTri.h
// and QuadratureGauss3DTetra.h do up to their own MAX_ORDER=20. The
// collapse extends uniformly to any order the underlying 1D tables
// support; quadrature_test.go checks each rule's weight sum against the
// reference-domain measure. An order above MaxOrder1D is clamped to
// MaxOrder1D, so the rule is then no longer exact for that degree.
func Get(t refgeom.Type, order int) []Point {
	switch t {
	case refgeom.Point:
		return []Point{{R: []float64{}, W: 1}}
	case refgeom.Edge2:
		return edgeRule(order)
	case refgeom.Quad4:
		return quadRule(order)
	case refgeom.Hex8:
		return hexRule(order)
	case refgeom.Tri3:
		return triRule(order)
	case refgeom.Tet4:
		return tetRule(order)
	case refgeom.Prism6:
		return prismRule(order)
	}
	panic("quadrature: unknown element type " + t.String())
}

func clampOrder(order int) int {
	if order < 0 {
		return 0
	}
	if order > MaxOrder1D {
		return MaxOrder1D
	}
	return order
}

func edgeRule(order int) []Point {
	g := Gauss1D(clampOrder(order))
	pts := make([]Point, len(g))
	for i, p := range g {
		pts[i] = Point{R: []float64{p.X}, W: p.W}
	}
	return pts
}

func quadRule(order int) []Point {
	g := Gauss1D(clampOrder(order))
	pts := make([]Point, 0, len(g)*len(g))
	for _, pa := range g {
		for _, pb := range g {
			pts = append(pts, Point{R: []float64{pa.X, pb.X}, W: pa.W * pb.W})
		}
	}
	return pts
}

func hexRule(order int) []Point {
	g := Gauss1D(clampOrder(order))
	pts := make([]Point, 0, len(g)*len(g)*len(g))
	for _, pa := range g {
		for _, pb := range g {
			for _, pc := range g {
				pts = append(pts, Point{R: []float64{pa.X, pb.X, pc.X}, W: pa.W * pb.W * pc.W})
			}
		}
	}
	return pts
}

// triRule maps the square [-1,1]^2 onto the reference triangle
// (-1,-1),(1,-1),(-1,1) via r=(1+a)(1-b)/2-1, s=b, whose Jacobian
// determinant is (1-b)/2. The collapse raises the effective degree along
// b by one, so the b-direction rule is requested one order higher.
func triRule(order int) []Point {
	ga := Gauss1D(clampOrder(order))
	gb := Gauss1D(clampOrder(order + 1))
	pts := make([]Point, 0, len(ga)*len(gb))
	for _, pa := range ga {
		for _, pb := range gb {
			a, b := pa.X, pb.X
			r := (1+a)*(1-b)/2 - 1
			s := b
			jac := (1 - b) / 2
			pts = append(pts, Point{R: []float64{r, s}, W: pa.W * pb.W * jac})
		}
	}
	return pts
}

// tetRule maps the cube [-1,1]^3 onto the reference tetrahedron
// (-1,-1,-1),(1,-1,-1),(-1,1,-1),(-1,-1,1) via
//
//	r = (1+a)(1-b)(1-c)/4 - 1
//	s = (1+b)(1-c)/2 - 1
//	t = c
//
// whose Jacobian determinant is (1-b)(1-c)^2/8. The b- and c-direction
// rules are requested one and two orders higher respectively to absorb
// that factor's extra degree.
func tetRule(order int) []Point {
	ga := Gauss1D(clampOrder(order))
	gb := Gauss1D(clampOrder(order + 1))
	gc := Gauss1D(clampOrder(order + 2))
	pts := make([]Point, 0, len(ga)*len(gb)*len(gc))
	for _, pa := range ga {
		for _, pb := range gb {
			for _, pc := range gc {
				a, b, c := pa.X, pb.X, pc.X
				r := (1+a)*(1-b)*(1-c)/4 - 1
				s := (1+b)*(1-c)/2 - 1
				tt := c
				jac := (1 - b) * (1 - c) * (1 - c) / 8
				pts = append(pts, Point{R: []float64{r, s, tt}, W: pa.W * pb.W * pc.W * jac})
			}
		}
	}
	return pts
}

// prismRule tensors the triangle collapse (r,s) with a plain Gauss rule
// along t, matching refgeom.Prism6's triangular-base-extruded-along-t
// layout.
func prismRule(order int) []Point {
	tri := triRule(order)
	gt := Gauss1D(clampOrder(order))
	pts := make([]Point, 0, len(tri)*len(gt))
	for _, pt := range tri {
		for _, pc := range gt {
			pts = append(pts, Point{R: []float64{pt.R[0], pt.R[1], pc.X}, W: pt.W * pc.W})
		}
	}
	return pts
}

// EdgePoints returns a quadrature rule on a facet of t (an Edge2 facet for
// 2D element types, a Tri3/Quad4 facet for 3D ones); it is Get under
// another name, and nothing in this repository calls it.
func EdgePoints(facetType refgeom.Type, order int) []Point {
	return Get(facetType, order)
}
