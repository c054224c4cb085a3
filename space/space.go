// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package space implements the DOF layout (Space::assign_dofs) and
// per-element AssemblyList construction of spec.md §4.4, generalizing the
// teacher's fem/domain.go (vertex/element equation-numbering loop) and
// fem/node.go (Dof/Node) from the teacher's fixed per-physics field set to
// an arbitrary user-registered Field list over arbitrary element types.
package space

import (
	"github.com/cpmech/gofem/mesh"
	"github.com/cpmech/gofem/refgeom"
	"github.com/cpmech/gofem/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// DirichletDOF is the sentinel global-DOF index marking an essential
// (Dirichlet) constraint, per spec.md §3 "AssemblyList".
const DirichletDOF = -1

// BCType classifies a mesh entity's boundary-condition status for one field.
type BCType int

const (
	BCNone BCType = iota
	BCNatural
	BCEssential
)

// Field describes one primary or auxiliary unknown registered on the
// space. Grounded on inp.ElemData's per-field records, supplemented per
// SPEC_FULL.md §3 with Components/Blocked/Default.
// Order must be 1: AssignDofs only ever numbers vertex DOFs (see
// DESIGN.md's Field.Order scope decision). The Lobatto hierarchical
// shapesets in package shp compute higher-order shape values and
// support an Order argument, but no caller in this tree wires a
// Field at Order>1, and AssignDofs panics if one is constructed.
type Field struct {
	Name       string
	Type       refgeom.Type
	Order      int
	NComp      int  // number of vector components, >=1
	Blocked    bool // true => auxiliary (not solved for)
	Default    float64
	Essential  func(vertexID int) (bool, fun.Func) // returns (applies, boundary value function) for a vertex
}

func (f *Field) Components() int { return f.NComp }

// NodeData holds the per-(field, mesh-entity) DOF block described in
// spec.md §3: marker/BC type/order and the assigned equation numbers (or
// the DIRICHLET_DOF sentinel plus projected values).
type NodeData struct {
	BCType  BCType
	Order   int
	FirstEq int // DirichletDOF if BCType==BCEssential
	NDofs   int
	BCProj  []float64 // len==NDofs when BCType==BCEssential
}

// Space owns one NodeData block per (field, vertex) pair — this
// framework's DOF entities are restricted to mesh vertices (see
// DESIGN.md's Open Question resolution on non-vertex essential BCs), so
// edge/face/interior DOF blocks never carry an essential classification.
type Space struct {
	Mesh   *mesh.Mesh
	Fields []*Field

	// nodeData[fieldIndex][vertexID]
	nodeData [][]*NodeData
	nEqs     int
}

// NewSpace builds an (unnumbered) Space for the given mesh and fields.
func NewSpace(m *mesh.Mesh, fields []*Field) *Space {
	sp := &Space{Mesh: m, Fields: fields}
	sp.nodeData = make([][]*NodeData, len(fields))
	for i := range fields {
		sp.nodeData[i] = make([]*NodeData, len(m.Verts))
	}
	return sp
}

// AssignDofs implements spec.md §4.4's Space::assign_dofs: minimum-rule
// order resolution is not needed in this vertex-DOF-only framework (every
// vertex is visited exactly once per field, regardless of how many cells
// of differing order reference it — an order mismatch across sharing
// cells is a configuration error the caller must avoid by construction),
// BC classification comes from each Field's Essential callback, and DOFs
// are numbered vertex-by-vertex, field-by-field, starting at firstDOF.
func (sp *Space) AssignDofs(firstDOF int) {
	eq := firstDOF
	for fi, f := range sp.Fields {
		if f.Order != 1 {
			chk.Panic("space: field %q requests order %d, but this Space only numbers vertex DOFs (order 1); edge/face/bubble shape functions have no global equation assigned and are scattered as cell-local (see DESIGN.md's Field.Order scope decision)", f.Name, f.Order)
		}
		for _, v := range sp.Mesh.Verts {
			nd := &NodeData{Order: f.Order}
			applies, bcFunc := false, fun.Func(nil)
			if f.Essential != nil {
				applies, bcFunc = f.Essential(v.ID)
			}
			if applies {
				nd.BCType = BCEssential
				nd.FirstEq = DirichletDOF
				nd.NDofs = f.NComp
				nd.BCProj = make([]float64, f.NComp)
				for c := 0; c < f.NComp; c++ {
					if bcFunc != nil {
						nd.BCProj[c] = bcFunc.F(0, v.Coords)
					}
				}
			} else {
				nd.BCType = BCNone
				nd.NDofs = f.NComp
				nd.FirstEq = eq
				eq += f.NComp
			}
			sp.nodeData[fi][v.ID] = nd
		}
	}
	sp.nEqs = eq - firstDOF
}

// NumEquations returns the total DOF count assigned by the last AssignDofs.
func (sp *Space) NumEquations() int { return sp.nEqs }

// NodeDataAt returns the DOF block for field fi at vertex v.
func (sp *Space) NodeDataAt(fi, v int) *NodeData { return sp.nodeData[fi][v] }

// AssemblyEntry is one ⟨shape-index, global-DOF, coefficient⟩ triple.
type AssemblyEntry struct {
	ShapeIndex int
	GlobalDOF  int
	Coeff      float64
}

// AssemblyList is the ordered set of AssemblyEntry produced for one cell
// and one field by GetElementAssemblyList.
type AssemblyList []AssemblyEntry

// GetElementAssemblyList implements spec.md §4.4's
// Space::get_element_assembly_list for field fi on cell c: one entry per
// vertex shape function, except that an essential vertex whose projected
// value is zero gets none. Since AssignDofs rejects Order!=1 fields, every
// shapeset function at the order this is actually called with is a vertex
// function; the GlobalDOF: -2 branch below is unreachable at Order=1 and
// only guards a future Order>1 caller that bypasses AssignDofs's panic.
func (sp *Space) GetElementAssemblyList(fi int, c *mesh.Cell) AssemblyList {
	f := sp.Fields[fi]
	ss := shp.Get(c.Type)
	n := ss.NumFuncs(f.Order)
	al := make(AssemblyList, 0, n)
	for k := 0; k < n; k++ {
		localVert := vertexOfShapeIndex(ss, c, k)
		if localVert < 0 {
			al = append(al, AssemblyEntry{ShapeIndex: k, GlobalDOF: -2, Coeff: 1})
			continue
		}
		nd := sp.nodeData[fi][c.Verts[localVert]]
		if nd.BCType == BCEssential {
			for comp := 0; comp < f.NComp; comp++ {
				if nd.BCProj[comp] == 0 {
					continue
				}
				al = append(al, AssemblyEntry{ShapeIndex: k, GlobalDOF: DirichletDOF, Coeff: nd.BCProj[comp]})
			}
			continue
		}
		al = append(al, AssemblyEntry{ShapeIndex: k, GlobalDOF: nd.FirstEq, Coeff: 1})
	}
	return al
}

func vertexOfShapeIndex(ss shp.Shapeset, c *mesh.Cell, index int) int {
	g := refgeom.Get(c.Type)
	for lv := 0; lv < g.NVerts; lv++ {
		if ss.VertexIndex(lv) == index {
			return lv
		}
	}
	return -1
}
