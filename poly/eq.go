// Package poly implements dense multilinear polynomials over the Boolean
// hypercube and a succinct evaluation-proof protocol on top of a linear-code
// vector commitment.
package poly

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// EqPoly is the multilinear extension of the equality indicator eq(r, x) for a
// fixed point r: it is 1 on the Boolean input equal to r and 0 on every other
// Boolean input. Its evaluation table over the hypercube is the Lagrange basis
// at r.
type EqPoly struct {
	r []fr.Element
}

func NewEqPoly(r []fr.Element) *EqPoly {
	return &EqPoly{r: r}
}

// Evaluate returns eq(r, rx) = prod_i (r_i*rx_i + (1-r_i)*(1-rx_i)).
func (eq *EqPoly) Evaluate(rx []fr.Element) fr.Element {
	if len(rx) != len(eq.r) {
		panic("point length does not match")
	}

	one := fr.One()
	result := fr.One()
	var term, left, right fr.Element
	for i := range eq.r {
		left.Mul(&eq.r[i], &rx[i])
		term.Sub(&one, &eq.r[i])
		right.Sub(&one, &rx[i])
		right.Mul(&term, &right)
		term.Add(&left, &right)
		result.Mul(&result, &term)
	}
	return result
}

// Evals returns the evaluation table of eq(r, .) over {0,1}^ell in O(2^ell)
// multiplications. r[0] selects the most significant bit of the table index:
// entry i is prod_j (bit_j(i) ? r[j] : 1-r[j]) with bit 0 the top bit. This
// index order is shared with DensePoly and the commitment grid layout.
func (eq *EqPoly) Evals() []fr.Element {
	ell := len(eq.r)

	evals := make([]fr.Element, 1<<ell)
	evals[0] = fr.One()

	size := 1
	for j := 0; j < ell; j++ {
		// double the table: entry v spawns the pair (v - v*r[j], v*r[j])
		size *= 2
		for i := size - 1; i > 0; i -= 2 {
			scalar := evals[i/2]
			evals[i].Mul(&scalar, &eq.r[j])
			evals[i-1].Sub(&scalar, &evals[i])
		}
	}

	return evals
}

// FactoredLens splits ell variables into a left and a right half; the right
// half takes the extra variable when ell is odd.
func FactoredLens(ell int) (int, int) {
	return ell / 2, ell - ell/2
}

// FactoredEvals returns the tables of the two halves of r. The full table is
// their outer product: Evals()[i*len(R)+j] == L[i] * R[j].
func (eq *EqPoly) FactoredEvals() ([]fr.Element, []fr.Element) {
	ell := len(eq.r)
	leftNumVars, _ := FactoredLens(ell)

	L := NewEqPoly(eq.r[:leftNumVars]).Evals()
	R := NewEqPoly(eq.r[leftNumVars:]).Evals()

	return L, R
}

// IdentityPoly is the multilinear extension of the function mapping each
// Boolean point to its index: Evaluate(r) = sum_i r[i] * 2^(size-i-1).
type IdentityPoly struct {
	sizePoint int
}

func NewIdentityPoly(sizePoint int) *IdentityPoly {
	return &IdentityPoly{sizePoint: sizePoint}
}

func (p *IdentityPoly) Evaluate(r []fr.Element) fr.Element {
	if len(r) != p.sizePoint {
		panic("point length does not match")
	}

	var sum, term, weight fr.Element
	for i := range r {
		weight.SetUint64(1 << (len(r) - i - 1))
		term.Mul(&weight, &r[i])
		sum.Add(&sum, &term)
	}
	return sum
}
