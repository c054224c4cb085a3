// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gofem/refgeom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoTriJSON = `{
  "verts": [
    {"id": 0, "coords": [0, 0], "labels": ["left"]},
    {"id": 1, "coords": [1, 0]},
    {"id": 2, "coords": [1, 1]},
    {"id": 3, "coords": [0, 1], "labels": ["left"]}
  ],
  "cells": [
    {"id": 0, "type": "tri3", "verts": [0, 1, 2], "labels": ["steel"]},
    {"id": 1, "type": "tri3", "verts": [0, 2, 3], "labels": ["steel"]}
  ]
}`

func writeTempMesh(t *testing.T, contents string) string {
	dir := t.TempDir()
	fn := filepath.Join(dir, "mesh.json")
	require.NoError(t, os.WriteFile(fn, []byte(contents), 0644))
	return fn
}

func TestReadJSONBuildsLabelsAndSupport(t *testing.T) {
	fn := writeTempMesh(t, twoTriJSON)
	m := ReadJSON(fn)

	assert.Equal(t, 2, m.Dim)
	assert.Len(t, m.Verts, 4)
	assert.Len(t, m.Cells, 2)
	assert.Equal(t, refgeom.Tri3, m.Cells[0].Type)

	assert.True(t, m.InLabel("left", 0))
	assert.True(t, m.InLabel("left", 3))
	assert.False(t, m.InLabel("left", 1))
	assert.True(t, m.InLabel("steel", 0))
	assert.True(t, m.InLabel("steel", 1))
	assert.False(t, m.InLabel("nonexistent", 0))

	// vertex 0 is shared by both cells
	assert.ElementsMatch(t, []int{0, 1}, m.Support(0))
	// vertex 1 is only in cell 0
	assert.ElementsMatch(t, []int{0}, m.Support(1))
}

const ghostCellJSON = `{
  "verts": [
    {"id": 0, "coords": [0, 0]},
    {"id": 1, "coords": [1, 0]},
    {"id": 2, "coords": [1, 1]},
    {"id": 3, "coords": [0, 1]}
  ],
  "cells": [
    {"id": 0, "type": "tri3", "verts": [0, 1, 2]},
    {"id": 1, "type": "tri3", "verts": [0, 2, 3], "labels": ["ghost"]}
  ]
}`

func TestIsGhostTracksReservedLabelAndKeepsCone(t *testing.T) {
	fn := writeTempMesh(t, ghostCellJSON)
	m := ReadJSON(fn)

	assert.False(t, m.IsGhost(0))
	assert.True(t, m.IsGhost(1))

	// a ghost cell still contributes to support/cone: a real neighboring
	// cell sharing vertex 2 must still see cell 1 in its stencil.
	assert.ElementsMatch(t, []int{0, 1}, m.Support(2))
	assert.Len(t, m.Cone(&m.Cells[1]), 3)
}
