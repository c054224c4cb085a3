// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refgeom holds the compile-time per-element-type reference geometry
// tables: vertex positions, edge and face connectivity, and facet types.
// It is the closed-set sum-type ("tagged variant") replacement for the
// teacher's deep Element/Element1D/Element2D/Element3D class hierarchy
// (see DESIGN.md): dispatch is by a switch on Type, never by virtual call.
package refgeom

// Type is the closed enumeration of element types the framework supports.
type Type int

const (
	Point Type = iota
	Edge2
	Tri3
	Quad4
	Tet4
	Hex8
	Prism6
)

func (t Type) String() string {
	switch t {
	case Point:
		return "point"
	case Edge2:
		return "edge2"
	case Tri3:
		return "tri3"
	case Quad4:
		return "quad4"
	case Tet4:
		return "tet4"
	case Hex8:
		return "hex8"
	case Prism6:
		return "prism6"
	}
	return "unknown"
}

// Geo holds the reference geometry of one element type.
type Geo struct {
	Type       Type
	Dim        int         // space dimension of the reference domain
	NVerts     int         // number of vertices
	NEdges     int         // number of local edges (3D only; 2D edges are "faces")
	NFaces     int         // number of local faces (codim-1 facets)
	VertCoords [][]float64 // [nverts][dim] reference coordinates
	EdgeVerts  [][2]int    // [nedges] local vertex pair per edge (3D only)
	FaceVerts  [][]int     // [nfaces] local vertex list per face (ordered, outward-consistent)
	FaceType   Type        // element type of each facet (all facets share one type here)
}

// geos is the read-only global table, built once at process start. It is
// safe for concurrent use: it is never mutated after init().
var geos = map[Type]*Geo{}

func register(g *Geo) { geos[g.Type] = g }

// Get returns the reference geometry for t. Panics if t is not registered;
// requesting an element type with no geometry is a configuration error the
// caller should have already caught.
func Get(t Type) *Geo {
	g, ok := geos[t]
	if !ok {
		panic("refgeom: unknown element type " + t.String())
	}
	return g
}

func init() {
	register(&Geo{
		Type:       Point,
		Dim:        0,
		NVerts:     1,
		VertCoords: [][]float64{{}},
	})

	register(&Geo{
		Type:       Edge2,
		Dim:        1,
		NVerts:     2,
		NFaces:     2, // the two end vertices, treated as "faces" (facets) of a 1D element
		VertCoords: [][]float64{{-1}, {1}},
		FaceVerts:  [][]int{{0}, {1}},
		FaceType:   Point,
	})

	register(&Geo{
		Type:   Tri3,
		Dim:    2,
		NVerts: 3,
		NFaces: 3,
		// reference triangle with vertices (-1,-1),(1,-1),(-1,1); area == 2.
		// This is the same "collapsed square" convention used by the
		// original DMPlex-based source's quadrature tables (see
		// triRule in quadrature/quadrature.go), and is what spec.md's §8 quadrature-sum test
		// ("reference-triangle area (2)") requires.
		VertCoords: [][]float64{{-1, -1}, {1, -1}, {-1, 1}},
		FaceVerts:  [][]int{{0, 1}, {1, 2}, {2, 0}},
		FaceType:   Edge2,
	})

	register(&Geo{
		Type:       Quad4,
		Dim:        2,
		NVerts:     4,
		NFaces:     4,
		VertCoords: [][]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		FaceVerts:  [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		FaceType:   Edge2,
	})

	register(&Geo{
		Type:   Tet4,
		Dim:    3,
		NVerts: 4,
		NEdges: 6,
		NFaces: 4,
		// reference tetrahedron with vertices (-1,-1,-1),(1,-1,-1),(-1,1,-1),
		// (-1,-1,1); volume == 4/3, matching the original source's
		// QuadratureGauss3DTetra order-2 test values.
		VertCoords: [][]float64{{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}},
		EdgeVerts:  [][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}},
		FaceVerts:  [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}},
		FaceType:   Tri3,
	})

	register(&Geo{
		Type:   Hex8,
		Dim:    3,
		NVerts: 8,
		NEdges: 12,
		NFaces: 6,
		VertCoords: [][]float64{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		EdgeVerts: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
		FaceVerts: [][]int{
			{0, 3, 2, 1}, // bottom (t=-1)
			{4, 5, 6, 7}, // top (t=+1)
			{0, 1, 5, 4},
			{1, 2, 6, 5},
			{2, 3, 7, 6},
			{3, 0, 4, 7},
		},
		FaceType: Quad4,
	})

	register(&Geo{
		Type:   Prism6,
		Dim:    3,
		NVerts: 6,
		NEdges: 9,
		NFaces: 5, // 2 triangular + 3 quadrilateral; FaceType is ambiguous, see FaceTypeAt
		// triangular base (r,s) barycentric same as Tri3, extruded along t in [-1,1]
		VertCoords: [][]float64{
			{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1},
		},
		EdgeVerts: [][2]int{
			{0, 1}, {1, 2}, {2, 0},
			{3, 4}, {4, 5}, {5, 3},
			{0, 3}, {1, 4}, {2, 5},
		},
		FaceVerts: [][]int{
			{0, 2, 1},    // bottom triangle
			{3, 4, 5},    // top triangle
			{0, 1, 4, 3}, // quad sides
			{1, 2, 5, 4},
			{2, 0, 3, 5},
		},
	})
}

// FaceTypeAt returns the element type of local face f of t. Needed for
// Prism6 whose faces are not uniformly typed (unlike every other element).
func FaceTypeAt(t Type, f int) Type {
	g := Get(t)
	if t != Prism6 {
		return g.FaceType
	}
	if f < 2 {
		return Tri3
	}
	return Quad4
}
