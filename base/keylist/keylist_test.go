// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	var kl List[string, int]
	assert.Equal(t, 0, kl.Len())
	require.NoError(t, kl.Add("key0", 0))
	require.NoError(t, kl.Add("key1", 1))
	require.NoError(t, kl.Add("key2", 2))
	assert.Error(t, kl.Add("key1", 11))

	assert.Equal(t, 3, kl.Len())
	assert.Equal(t, 1, kl.At("key1"))
	assert.Equal(t, 0, kl.At("nope"))
	assert.Equal(t, 2, kl.IndexByKey("key2"))
	assert.Equal(t, -1, kl.IndexByKey("nope"))
	_, ok := kl.AtTry("nope")
	assert.False(t, ok)
	v, ok := kl.AtTry("key0")
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestReorder(t *testing.T) {
	var kl List[string, int]
	for i, k := range []string{"a", "b", "c"} {
		require.NoError(t, kl.Add(k, i))
	}
	require.NoError(t, kl.Reorder([]string{"c", "a", "b"}))
	assert.Equal(t, []int{2, 0, 1}, kl.Values)
	assert.Equal(t, []string{"c", "a", "b"}, kl.Keys)
	assert.Equal(t, 0, kl.IndexByKey("c"))
	assert.Equal(t, 2, kl.At("c"))
	assert.Error(t, kl.Reorder([]string{"c", "a"}))
	assert.Error(t, kl.Reorder([]string{"c", "a", "x"}))
	require.NoError(t, kl.Add("d", 3))
	assert.Equal(t, 3, kl.IndexByKey("d"))
}
