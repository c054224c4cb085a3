// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullSinkSatisfiesSink(t *testing.T) {
	var s Sink = NullSink{}
	assert.NoError(t, s.Open(nil))
	assert.NoError(t, s.WriteStep(0, nil))
	assert.NoError(t, s.Close())
}
