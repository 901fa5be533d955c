package poly

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/nulltea/lcpoly/core"
)

// DensePoly is a multilinear polynomial represented by its evaluations over the
// Boolean hypercube. Entry i is the value at the point whose coordinates are
// the big-endian bits of i, so variable 0 splits the table into halves.
// Binding operations mutate the polynomial in place and shrink it.
type DensePoly struct {
	numVars int
	len     int
	z       []fr.Element
}

// NewDensePoly wraps an evaluation table; its length must be a power of two.
func NewDensePoly(z []fr.Element) *DensePoly {
	return &DensePoly{numVars: core.Log2(len(z)), len: len(z), z: z}
}

// DensePolyFromUints builds a polynomial from small integer evaluations.
func DensePolyFromUints(z []uint64) *DensePoly {
	evals := make([]fr.Element, len(z))
	for i := range z {
		evals[i].SetUint64(z[i])
	}
	return NewDensePoly(evals)
}

func (p *DensePoly) NumVars() int { return p.numVars }
func (p *DensePoly) Len() int     { return p.len }

// Get returns the i-th entry of the evaluation table.
func (p *DensePoly) Get(i int) fr.Element {
	if i < 0 || i >= p.len {
		panic("index out of range")
	}
	return p.z[i]
}

func (p *DensePoly) Clone() *DensePoly {
	z := make([]fr.Element, p.len)
	copy(z, p.z[:p.len])
	return NewDensePoly(z)
}

// Split cuts the table into its two halves along the top variable. idx must be
// len/2; any other value is a caller error.
func (p *DensePoly) Split(idx int) (*DensePoly, *DensePoly) {
	if idx != p.len/2 {
		panic("split index must be half the table length")
	}

	lo := make([]fr.Element, idx)
	hi := make([]fr.Element, idx)
	copy(lo, p.z[:idx])
	copy(hi, p.z[idx:2*idx])
	return NewDensePoly(lo), NewDensePoly(hi)
}

// BoundPolyVarTop binds the most significant free variable to r, interpolating
// between the two halves of the table: Z[i] <- Z[i] + r*(Z[i+n] - Z[i]).
func (p *DensePoly) BoundPolyVarTop(r *fr.Element) {
	n := p.len / 2
	var diff fr.Element
	for i := 0; i < n; i++ {
		diff.Sub(&p.z[i+n], &p.z[i])
		diff.Mul(&diff, r)
		p.z[i].Add(&p.z[i], &diff)
	}
	p.numVars--
	p.len = n
}

// BoundPolyVarBot binds the least significant free variable to r:
// Z[i] <- Z[2i] + r*(Z[2i+1] - Z[2i]).
func (p *DensePoly) BoundPolyVarBot(r *fr.Element) {
	n := p.len / 2
	var diff fr.Element
	for i := 0; i < n; i++ {
		diff.Sub(&p.z[2*i+1], &p.z[2*i])
		diff.Mul(&diff, r)
		p.z[i].Add(&p.z[2*i], &diff)
	}
	p.numVars--
	p.len = n
}

// Evaluate returns the multilinear extension of the table at r in O(2^n) time:
// sum_i eq(r, i) * Z[i].
func (p *DensePoly) Evaluate(r []fr.Element) fr.Element {
	if len(r) != p.numVars {
		panic("point length does not match number of variables")
	}
	chis := NewEqPoly(r).Evals()
	return core.InnerProduct(chis, p.z[:p.len])
}

// Extend appends other as the half selected by a new top variable being 1.
// Both tables must be full (no bound-variable gap) and of equal size.
func (p *DensePoly) Extend(other *DensePoly) {
	// TODO: allow extension even when some vars are bound
	if len(p.z) != p.len {
		panic("cannot extend a polynomial with bound variables")
	}
	if other.len != p.len {
		panic("polynomials must have the same length")
	}
	p.z = append(p.z, other.z[:other.len]...)
	p.numVars++
	p.len *= 2
}

// Merge concatenates the tables in order and zero-pads up to the next power of
// two.
func Merge(polys []*DensePoly) *DensePoly {
	var z []fr.Element
	for _, poly := range polys {
		z = append(z, poly.z[:poly.len]...)
	}

	padded := core.NextPowerOfTwo(len(z))
	for len(z) < padded {
		z = append(z, fr.Element{})
	}

	return NewDensePoly(z)
}
