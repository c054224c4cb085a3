// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp declares the programmatic configuration records used to
// assemble a fem.Problem: named functions, per-field essential/natural
// boundary-condition declarations, and initial-condition declarations,
// plus the logging setup shared by the whole module.
//
// Grounded on the teacher's `inp/sim.go` Region/FaceBc/SeamBc/NodeBc/Stage
// records, trimmed down from the teacher's JSON-driven `.sim` file format
// (parsing a full simulation description from YAML/JSON is an explicit
// non-goal per SPEC_FULL.md — this framework wires a Problem
// programmatically instead) to the subset that still has a home in
// SPEC_FULL.md: naming a boundary condition by (field, label, function)
// rather than by a file-format tag number.
package inp

import "github.com/cpmech/gosl/fun"

// EssentialBC declares a Dirichlet condition: field Field applies value
// Fn at every vertex in the named mesh Label.
type EssentialBC struct {
	Field string
	Label string
	Fn    fun.Func
}

// NaturalBC declares a Neumann/flux condition: field Field integrates
// the weak form's registered boundary residual/Jacobian over every
// facet whose vertices all belong to the named mesh Label.
type NaturalBC struct {
	Field string
	Label string
}

// InitialCondition declares the field value used to seed the initial
// guess at every vertex not otherwise constrained by an EssentialBC,
// grounded on inp.ElemData's per-field Default value (spec's Field
// "Default" supplement).
type InitialCondition struct {
	Field string
	Value float64
}

// RegionTag declares that every cell tagged with Label should be
// selected by weak forms registered against (Label, Value) — the
// programmatic analogue of the teacher's ElemData.Tag/Region.Mshfile
// pairing, without the teacher's separate per-region mesh file.
type RegionTag struct {
	Label string
	Value int
}

// Config collects everything needed to build a Space and Registry for
// one Problem: the functions, a Field's worth of BC/IC declarations.
type Config struct {
	Functions  FuncsData
	Essentials []EssentialBC
	Naturals   []NaturalBC
	Initials   []InitialCondition
	Regions    []RegionTag
}
