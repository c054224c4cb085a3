// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh holds unstructured mesh topology: vertices, cells, and the
// labeled point sets ("regions") used to select where fields, boundary
// conditions and weak forms apply.
//
// It generalizes the teacher's inp/msh.go (a flat Vert/Cell/tag JSON
// reader) into a DMPlex-style point/stratum/cone/support model, per
// original_source/include/Mesh.h and Set.h: every vertex and every cell is
// a numbered "point"; points are stratified by depth (0 = vertex, dim =
// cell); a cell's "cone" is the ordered list of its vertex points, and a
// vertex's "support" is the set of cells referencing it. Labels replace
// the teacher's int tag fields with named point sets, closer to
// DMPlex's DMLabel.
package mesh

import (
	"encoding/json"

	"github.com/cpmech/gofem/refgeom"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Vertex is a mesh point of depth 0.
type Vertex struct {
	ID     int
	Coords []float64
}

// Cell is a mesh point of depth Dim: one finite element.
type Cell struct {
	ID       int
	Type     refgeom.Type
	Verts    []int // cone: vertex point ids, in refgeom local-vertex order
	Tag      int
	FaceTags []int // per-local-face region tag; ReadJSON never fills it (nor Tag)
}

// Label is a named point set, e.g. "left-boundary" -> {vertex ids...} or
// "steel" -> {cell ids...}. Mirrors DMLabel's point-to-value map; this
// framework only ever needs membership, so the value is always present/absent.
type Label struct {
	Name   string
	Points map[int]bool
}

// Mesh is the read-only topology shared by every field and weak form
// registered against it.
type Mesh struct {
	Dim    int
	Verts  []Vertex
	Cells  []Cell
	Labels map[string]*Label

	// support: vertex point id -> cell ids referencing it (inverse cone).
	support map[int][]int
}

// vertJSON / cellJSON / meshJSON mirror the on-disk JSON schema, grounded
// on inp/msh.go's Vert/Cell/Mesh structs but with refgeom.Type names
// instead of the teacher's shp string codes, and named labels instead of
// signed integer tags.
type vertJSON struct {
	ID     int       `json:"id"`
	Coords []float64 `json:"coords"`
	Labels []string  `json:"labels,omitempty"`
}

type cellJSON struct {
	ID       int      `json:"id"`
	Type     string   `json:"type"`
	Verts    []int    `json:"verts"`
	Labels   []string `json:"labels,omitempty"`
	FaceTags []string `json:"faceLabels,omitempty"`
}

type meshJSON struct {
	Verts []vertJSON `json:"verts"`
	Cells []cellJSON `json:"cells"`
}

var typeNames = map[string]refgeom.Type{
	"point":  refgeom.Point,
	"edge2":  refgeom.Edge2,
	"tri3":   refgeom.Tri3,
	"quad4":  refgeom.Quad4,
	"tet4":   refgeom.Tet4,
	"hex8":   refgeom.Hex8,
	"prism6": refgeom.Prism6,
}

// ReadJSON loads a mesh from fn. Fatal (chk.Panic) on malformed input,
// matching the teacher's convention that a corrupt input file is a
// configuration error, not a recoverable runtime condition.
func ReadJSON(fn string) *Mesh {
	b, err := utl.ReadFile(fn)
	if err != nil {
		chk.Panic("mesh: cannot open mesh file %q: %v", fn, err)
	}
	var raw meshJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		chk.Panic("mesh: cannot parse mesh file %q: %v", fn, err)
	}
	if len(raw.Verts) < 2 || len(raw.Cells) < 1 {
		chk.Panic("mesh: %q must have at least 2 vertices and 1 cell", fn)
	}

	m := &Mesh{Labels: make(map[string]*Label)}
	m.Verts = make([]Vertex, len(raw.Verts))
	for i, v := range raw.Verts {
		if v.ID != i {
			chk.Panic("mesh: vertices must be sequentially numbered: %d != %d", v.ID, i)
		}
		m.Verts[i] = Vertex{ID: v.ID, Coords: v.Coords}
		if len(v.Coords) > m.Dim {
			m.Dim = len(v.Coords)
		}
		for _, name := range v.Labels {
			m.label(name).Points[v.ID] = true
		}
	}

	m.Cells = make([]Cell, len(raw.Cells))
	m.support = make(map[int][]int)
	for i, c := range raw.Cells {
		if c.ID != i {
			chk.Panic("mesh: cells must be sequentially numbered: %d != %d", c.ID, i)
		}
		t, ok := typeNames[c.Type]
		if !ok {
			chk.Panic("mesh: unknown cell type %q", c.Type)
		}
		cell := Cell{ID: c.ID, Type: t, Verts: c.Verts}
		for _, name := range c.Labels {
			m.label(name).Points[c.ID] = true
		}
		for fi, name := range c.FaceTags {
			_ = fi
			m.label(name).Points[c.ID] = true
		}
		m.Cells[i] = cell
		for _, v := range cell.Verts {
			m.support[v] = append(m.support[v], c.ID)
		}
	}
	return m
}

func (m *Mesh) label(name string) *Label {
	l, ok := m.Labels[name]
	if !ok {
		l = &Label{Name: name, Points: make(map[int]bool)}
		m.Labels[name] = l
	}
	return l
}

// Support returns the cells whose cone includes vertex point v.
func (m *Mesh) Support(v int) []int { return m.support[v] }

// Cone returns the physical coordinates of cell c's vertices, in
// refgeom local-vertex order, ready for refmap.Map.Eval.
func (m *Mesh) Cone(c *Cell) [][]float64 {
	pts := make([][]float64, len(c.Verts))
	for i, v := range c.Verts {
		pts[i] = m.Verts[v].Coords
	}
	return pts
}

// InLabel reports whether point id belongs to the named label; a missing
// label is treated as empty rather than an error, since weak forms are
// free to register against labels that no region of a particular mesh uses.
func (m *Mesh) InLabel(name string, id int) bool {
	l, ok := m.Labels[name]
	if !ok {
		return false
	}
	return l.Points[id]
}

// ghostLabel is the reserved cell label marking a partition's ghost
// (off-rank, halo) cells: present in their geometric cone/support so
// neighboring real cells can still resolve a complete element stencil, but
// excluded from the owning rank's own scatter (spec §4.6's partition
// tie-break: "ghost cells are skipped in scatter but included in geometric
// setup").
const ghostLabel = "ghost"

// IsGhost reports whether cell id is a ghost cell of the local partition.
func (m *Mesh) IsGhost(id int) bool { return m.InLabel(ghostLabel, id) }
