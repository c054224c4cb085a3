// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// dual carries a scalar value together with its gradient with respect to
// the three reference coordinates (r,s,t). It is first-order forward-mode
// automatic differentiation, used by tet4.go to build hierarchical
// barycentric shape functions as products/compositions without hand-
// differentiating each one (the teacher's lins.go/tris.go/tets.go instead
// hardcode every dNdR by hand per fixed-order element; that does not scale
// to the hierarchical, runtime-order TET4 basis, so duals replace it here).
type dual struct {
	v float64
	d [3]float64
}

func dconst(v float64) dual { return dual{v: v} }

func (a dual) add(b dual) dual {
	return dual{a.v + b.v, [3]float64{a.d[0] + b.d[0], a.d[1] + b.d[1], a.d[2] + b.d[2]}}
}

func (a dual) sub(b dual) dual {
	return dual{a.v - b.v, [3]float64{a.d[0] - b.d[0], a.d[1] - b.d[1], a.d[2] - b.d[2]}}
}

func (a dual) mul(b dual) dual {
	return dual{
		a.v * b.v,
		[3]float64{
			a.d[0]*b.v + a.v*b.d[0],
			a.d[1]*b.v + a.v*b.d[1],
			a.d[2]*b.v + a.v*b.d[2],
		},
	}
}

func (a dual) scale(s float64) dual {
	return dual{a.v * s, [3]float64{a.d[0] * s, a.d[1] * s, a.d[2] * s}}
}

// legendreAt composes the degree-p Legendre polynomial (and its derivative,
// via the standard relation p*P_p'(x) handled through legendreDeriv) onto x.
func legendreAt(p int, x dual) dual {
	v := legendre(p, x.v)
	dv := legendreDeriv(p, x.v)
	return dual{v, [3]float64{dv * x.d[0], dv * x.d[1], dv * x.d[2]}}
}

// legendreDeriv evaluates P_p'(x) using (x^2-1)*P_p'(x) = p*(x*P_p(x) - P_{p-1}(x)).
// Singular at x=+-1; those points correspond to a function's zero-measure
// sub-entities (opposite vertices) and are never sampled by interior
// quadrature. At exactly x=+-1 it returns 0 rather than P_p'(+-1).
func legendreDeriv(p int, x float64) float64 {
	if p == 0 {
		return 0
	}
	denom := x*x - 1
	if denom == 0 {
		return 0
	}
	return float64(p) * (x*legendre(p, x) - legendre(p-1, x)) / denom
}

func (a dual) kind(k Kind) float64 {
	switch k {
	case Value:
		return a.v
	case Dx:
		return a.d[0]
	case Dy:
		return a.d[1]
	case Dz:
		return a.d[2]
	default:
		return 0
	}
}
