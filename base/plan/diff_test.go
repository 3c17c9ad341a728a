// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	n := Number([]string{"x", "y", "x", "x"})
	assert.Equal(t, []Numbered[string]{{"x", 0}, {"y", 0}, {"x", 1}, {"x", 2}}, n)
	assert.Equal(t, "x#2", n[3].String())
	assert.Equal(t, "y", n[1].String())
}

func TestDiff(t *testing.T) {
	d, err := Diff([]string{"a", "b", "c"}, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())

	d, err = Diff([]string{"Alpha", "Beta", "Gamma"}, []string{"Beta", "Gamma", "Delta"})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, d.Removed)
	assert.Equal(t, []string{"Beta", "Gamma"}, d.Survivors)
	assert.Nil(t, d.Perm)
	assert.Equal(t, []int{2}, d.Added)

	d, err = Diff([]string{"Beta", "Gamma", "Delta"}, []string{"Gamma", "Beta", "Delta"})
	require.NoError(t, err)
	assert.Empty(t, d.Removed)
	assert.Empty(t, d.Added)
	assert.Equal(t, []int{1, 0, 2}, d.Perm)

	d, err = Diff([]string{"a", "b", "c"}, []string{"c", "x", "a"})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, d.Removed)
	assert.Equal(t, []string{"a", "c"}, d.Survivors)
	assert.Equal(t, []int{1, 0}, d.Perm)
	assert.Equal(t, []int{1}, d.Added)
}

func TestDiffDuplicates(t *testing.T) {
	_, err := Diff([]string{"a", "a"}, nil)
	assert.Error(t, err)

	old := Number([]string{"x", "x"})
	d, err := Diff(old, Number([]string{"x"}))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, d.Removed)
	assert.Empty(t, d.Added)
}
