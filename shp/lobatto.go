// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

// legendre evaluates the Legendre polynomial of degree n at x via the
// standard three-term recurrence n*P_n = (2n-1)*x*P_{n-1} - (n-1)*P_{n-2}.
func legendre(n int, x float64) float64 {
	if n == 0 {
		return 1
	}
	if n == 1 {
		return x
	}
	p0, p1 := 1.0, x
	for k := 2; k <= n; k++ {
		p2 := ((2*float64(k)-1)*x*p1 - (float64(k)-1)*p0) / float64(k)
		p0, p1 = p1, p2
	}
	return p1
}

// lobattoKernel0, lobattoKernel1 are the affine end-point ("vertex") shapes
// l0 and l1 of the H1-Lobatto hierarchy.
func lobattoKernel0(x float64) float64 { return 0.5 * (1 - x) }
func lobattoKernel1(x float64) float64 { return 0.5 * (1 + x) }

// lobattoL evaluates the k-th (k>=2) H1-Lobatto shape function at x.
//
// Grounded on original_source/include/Lobatto.h: that header hardcodes l2..l11
// as phi_{k-2}(x)*l0l1(x) with literal phi_k constants. Those constants are
// exactly the coefficients of the closed form used here,
//
//	l_k(x) = (P_k(x) - P_{k-2}(x)) / sqrt(2*(2k-1))
//
// (P_n the Legendre polynomial of degree n), which is the standard
// hierarchical Lobatto shape function definition and reduces to Lobatto.h's
// hardcoded values for k=2..11 while remaining valid for any k>=2 — needed
// to meet the "max order >= 20 (simplex), >= 24 (EDGE2)" compile-time
// constant without hand-unrolling twenty phi_k macros.
func lobattoL(k int, x float64) float64 {
	if k < 2 {
		panic("shp: lobattoL requires k>=2")
	}
	return (legendre(k, x) - legendre(k-2, x)) / math.Sqrt(2*(2*float64(k)-1))
}

// lobattoDL evaluates the derivative of the k-th (k>=2) Lobatto shape
// function at x: dl_k(x) = sqrt(k-0.5) * P_{k-1}(x), matching Lobatto.h's
// dl2..dl11 table term by term.
func lobattoDL(k int, x float64) float64 {
	if k < 2 {
		panic("shp: lobattoDL requires k>=2")
	}
	return math.Sqrt(float64(k)-0.5) * legendre(k-1, x)
}
