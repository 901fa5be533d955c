package core_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/nulltea/lcpoly/core"
)

func TestInnerProduct(t *testing.T) {
	v := make([]fr.Element, 3)
	w := make([]fr.Element, 3)
	for i := range v {
		v[i].SetUint64(uint64(i + 1))       // [1,2,3]
		w[i].SetUint64(uint64(2 * (i + 1))) // [2,4,6]
	}

	var want fr.Element
	want.SetUint64(28)
	got := core.InnerProduct(v, w)
	require.True(t, got.Equal(&want))

	require.Panics(t, func() { core.InnerProduct(v, w[:2]) })
}

func TestLog2(t *testing.T) {
	require.Equal(t, 0, core.Log2(1))
	require.Equal(t, 5, core.Log2(32))
	require.Panics(t, func() { core.Log2(0) })
	require.Panics(t, func() { core.Log2(3) })
}

func TestNextPowerOfTwo(t *testing.T) {
	require.Equal(t, 1, core.NextPowerOfTwo(0))
	require.Equal(t, 1, core.NextPowerOfTwo(1))
	require.Equal(t, 8, core.NextPowerOfTwo(6))
	require.Equal(t, 8, core.NextPowerOfTwo(8))
}

func TestTranspose(t *testing.T) {
	// 2x3 row-major -> 3x2 column-major
	matrix := []int{1, 2, 3, 4, 5, 6}
	core.Transpose(matrix, 2, 3)
	require.Equal(t, []int{1, 4, 2, 5, 3, 6}, matrix)

	square := []int{1, 2, 3, 4}
	core.Transpose(square, 2, 2)
	require.Equal(t, []int{1, 3, 2, 4}, square)

	require.Panics(t, func() { core.Transpose([]int{1, 2, 3}, 2, 2) })
}
