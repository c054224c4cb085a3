// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package output declares the seam between the FE engine and an output
// writer, without implementing one. VTK/ExodusII mesh writers and
// plotting (the bulk of the teacher's `out` package: styles, timeseries,
// plot.go/plotting.go/styles.go) are an explicit non-goal; this package
// exists so a caller can plug a writer in without the engine depending
// on a concrete format.
//
// Grounded on out/out.go's Start/Apply/Save lifecycle (open a sink,
// apply filters/quantities each step, save/close at the end), reduced
// to its lifecycle shape rather than its plotting internals.
package output

import "github.com/cpmech/gofem/mesh"

// Sink receives one solution snapshot per output step. A concrete
// implementation (VTK, ExodusII, CSV, ...) lives outside this module;
// none is provided here.
type Sink interface {
	// Open is called once before the first WriteStep, given the mesh the
	// snapshots will be defined on.
	Open(m *mesh.Mesh) error

	// WriteStep writes one snapshot: the simulation time and, per
	// registered field name, its current DOF values ordered by vertex id.
	WriteStep(t float64, fields map[string][]float64) error

	// Close flushes and releases any resources Open acquired.
	Close() error
}

// NullSink discards every snapshot; it satisfies Sink for callers (and
// tests) that need a Problem wired end-to-end without an output backend.
type NullSink struct{}

func (NullSink) Open(*mesh.Mesh) error                          { return nil }
func (NullSink) WriteStep(float64, map[string][]float64) error { return nil }
func (NullSink) Close() error                                    { return nil }
