package poly_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/nulltea/lcpoly/poly"
)

func randomPoint(n int) []fr.Element {
	r := make([]fr.Element, n)
	for i := range r {
		if _, err := r[i].SetRandom(); err != nil {
			panic(err)
		}
	}
	return r
}

// pointFromSeed expands a seed into a deterministic point for property tests.
func pointFromSeed(seed uint64, n int) []fr.Element {
	r := make([]fr.Element, n)
	var cur, step fr.Element
	cur.SetUint64(seed)
	step.SetUint64(seed | 1)
	for i := range r {
		cur.Mul(&cur, &cur)
		cur.Add(&cur, &step)
		r[i] = cur
	}
	return r
}

// naiveChis is the per-entry product-of-bits definition Evals must match.
func naiveChis(r []fr.Element) []fr.Element {
	ell := len(r)
	one := fr.One()
	chis := make([]fr.Element, 1<<ell)
	var term fr.Element
	for i := range chis {
		chi := fr.One()
		for j := 0; j < ell; j++ {
			if i&(1<<(ell-j-1)) != 0 {
				chi.Mul(&chi, &r[j])
			} else {
				term.Sub(&one, &r[j])
				chi.Mul(&chi, &term)
			}
		}
		chis[i] = chi
	}
	return chis
}

func outerProduct(L, R []fr.Element) []fr.Element {
	out := make([]fr.Element, 0, len(L)*len(R))
	var product fr.Element
	for i := range L {
		for j := range R {
			product.Mul(&L[i], &R[j])
			out = append(out, product)
		}
	}
	return out
}

func TestMemoizedChis(t *testing.T) {
	for ell := 1; ell <= 14; ell++ {
		r := randomPoint(ell)
		require.Equal(t, naiveChis(r), poly.NewEqPoly(r).Evals(), "ell=%d", ell)
	}
}

func TestFactoredChis(t *testing.T) {
	for _, ell := range []int{2, 4, 7, 10, 11} {
		r := randomPoint(ell)
		chis := poly.NewEqPoly(r).Evals()
		L, R := poly.NewEqPoly(r).FactoredEvals()

		left, right := poly.FactoredLens(ell)
		require.Equal(t, 1<<left, len(L), "ell=%d", ell)
		require.Equal(t, 1<<right, len(R), "ell=%d", ell)
		require.Equal(t, chis, outerProduct(L, R), "ell=%d", ell)
	}
}

func TestFactoredChisMatchHalves(t *testing.T) {
	r := randomPoint(10)
	left, _ := poly.FactoredLens(len(r))
	L, R := poly.NewEqPoly(r).FactoredEvals()
	require.Equal(t, naiveChis(r[:left]), L)
	require.Equal(t, naiveChis(r[left:]), R)
}

func TestEqEvaluateMatchesTable(t *testing.T) {
	ell := 5
	r := randomPoint(ell)
	chis := poly.NewEqPoly(r).Evals()

	for i := 0; i < 1<<ell; i++ {
		rx := make([]fr.Element, ell)
		for j := 0; j < ell; j++ {
			if i&(1<<(ell-j-1)) != 0 {
				rx[j].SetOne()
			}
		}
		got := poly.NewEqPoly(r).Evaluate(rx)
		require.True(t, got.Equal(&chis[i]), "entry %d", i)
	}
}

func TestEqEmptyPoint(t *testing.T) {
	evals := poly.NewEqPoly(nil).Evals()
	require.Len(t, evals, 1)
	one := fr.One()
	require.True(t, evals[0].Equal(&one))
}

func TestEqProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	properties.Property("evals table factors as outer product L x R", prop.ForAll(
		func(seed uint64, ellRaw uint8) bool {
			ell := int(ellRaw%10) + 1
			r := pointFromSeed(seed, ell)
			chis := poly.NewEqPoly(r).Evals()
			L, R := poly.NewEqPoly(r).FactoredEvals()
			got := outerProduct(L, R)
			for i := range chis {
				if !chis[i].Equal(&got[i]) {
					return false
				}
			}
			return true
		},
		gen.UInt64(), gen.UInt8(),
	))

	properties.Property("doubling table matches naive chis", prop.ForAll(
		func(seed uint64, ellRaw uint8) bool {
			ell := int(ellRaw%8) + 1
			r := pointFromSeed(seed, ell)
			want := naiveChis(r)
			got := poly.NewEqPoly(r).Evals()
			for i := range want {
				if !want[i].Equal(&got[i]) {
					return false
				}
			}
			return true
		},
		gen.UInt64(), gen.UInt8(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestIdentityPoly(t *testing.T) {
	size := 4
	id := poly.NewIdentityPoly(size)

	for i := 0; i < 1<<size; i++ {
		point := make([]fr.Element, size)
		for j := 0; j < size; j++ {
			if i&(1<<(size-j-1)) != 0 {
				point[j].SetOne()
			}
		}
		var want fr.Element
		want.SetUint64(uint64(i))
		got := id.Evaluate(point)
		require.True(t, got.Equal(&want), "index %d", i)
	}
}

func TestIdentityPolyRejectsWrongLength(t *testing.T) {
	id := poly.NewIdentityPoly(3)
	require.Panics(t, func() { id.Evaluate(randomPoint(4)) })
}
