// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goroutine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	id := ID()
	assert.NotZero(t, id)
	assert.Equal(t, id, ID())

	other := make(chan uint64)
	go func() { other <- ID() }()
	oid := <-other
	assert.NotZero(t, oid)
	assert.NotEqual(t, id, oid)
}
