// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/fun"
	"github.com/stretchr/testify/assert"
)

func TestFuncsDataGetOrPanicFindsZero(t *testing.T) {
	fns := FuncsData{}
	f := fns.GetOrPanic("zero")
	assert.Equal(t, 0.0, f.F(0, nil))
}

func TestFuncsDataGetOrPanicFindsNamed(t *testing.T) {
	fns := FuncsData{
		{Name: "ramp", Type: "cte", Prms: fun.Prms{&fun.Prm{N: "c", V: 7}}},
	}
	f := fns.GetOrPanic("ramp")
	assert.NotNil(t, f)
}

func TestConfigHoldsDeclarations(t *testing.T) {
	cfg := Config{
		Essentials: []EssentialBC{{Field: "u", Label: "left", Fn: &fun.Zero}},
		Naturals:   []NaturalBC{{Field: "u", Label: "right"}},
		Initials:   []InitialCondition{{Field: "u", Value: 0}},
		Regions:    []RegionTag{{Label: "steel", Value: 1}},
	}
	assert.Len(t, cfg.Essentials, 1)
	assert.Equal(t, "left", cfg.Essentials[0].Label)
}
