package core

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
)

// EncodeRow maps a length-k message row to a rate-1/rhoInv Reed-Solomon codeword:
// the row is taken as the low-order coefficients of a polynomial, which is then
// evaluated over the FFT domain of size k*rhoInv. The map is linear, so a linear
// combination of rows can be encoded by combining their codewords.
func EncodeRow(row []fr.Element, rhoInv int, domain *fft.Domain) []fr.Element {
	if len(row) == 0 {
		panic("row is empty")
	}

	encodedCols := len(row) * rhoInv
	if domain.Cardinality != uint64(encodedCols) {
		panic("domain cardinality does not match encoded row length")
	}

	encoded := make([]fr.Element, encodedCols)
	copy(encoded, row)

	domain.FFT(encoded, fft.DIF)
	fft.BitReverse(encoded)

	return encoded
}
