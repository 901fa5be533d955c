package core

import (
	"fmt"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// InnerProduct returns the dot product of v and w.
func InnerProduct(v, w []fr.Element) fr.Element {
	if len(v) != len(w) {
		panic("vector lengths do not match")
	}

	var sum, product fr.Element
	for i := range v {
		product.Mul(&v[i], &w[i])
		sum.Add(&sum, &product)
	}

	return sum
}

// Log2 returns log2(n); panics unless n is a positive power of 2.
func Log2(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("input %d is not a positive power of 2", n))
	}
	return bits.Len(uint(n)) - 1
}

// NextPowerOfTwo returns the smallest power of 2 that is >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Transpose transposes a slice representing a matrix in row-major order.
func Transpose[T any](matrix []T, rows, cols int) {
	if len(matrix) != rows*cols {
		panic("matrix size does not match rows*cols")
	}
	if rows == cols {
		// In-place transpose for square matrices
		for i := 0; i < rows; i++ {
			for j := i + 1; j < cols; j++ {
				matrix[i*cols+j], matrix[j*rows+i] = matrix[j*rows+i], matrix[i*cols+j]
			}
		}
	} else {
		// Out-of-place transpose for non-square matrices
		copyMatrix := make([]T, len(matrix))
		copy(copyMatrix, matrix)

		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				matrix[j*rows+i] = copyMatrix[i*cols+j]
			}
		}
	}
}
