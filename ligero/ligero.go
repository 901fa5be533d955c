// Package ligero implements a linear-code vector commitment. A row-major matrix
// of field elements is committed by Reed-Solomon encoding its rows and Merkle
// hashing the columns of the encoded matrix; any linear combination of the rows
// can later be opened and checked against the root by spot-checking random
// columns drawn from the transcript.
package ligero

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"golang.org/x/sync/errgroup"

	"github.com/nulltea/lcpoly/core"
	"github.com/nulltea/lcpoly/logger"
)

const (
	// SecurityBits is the targeted soundness of the column spot-check.
	SecurityBits = 128.0
	// DefaultRhoInv is the inverse rate of the row code.
	DefaultRhoInv = 2
)

// Root is the binding commitment to an encoded matrix.
type Root []byte

// Committer holds the grid and code parameters for one commitment.
type Committer struct {
	NRows   int // committed rows
	NPerRow int // unencoded row length
	NCols   int // encoded row length, NPerRow * RhoInv
	RhoInv  int
	Queries int

	domain *fft.Domain
}

// NewCommitter derives the grid for a multilinear polynomial over numVars
// variables: 2^(numVars/2) rows of 2^(numVars-numVars/2) entries each, so the
// row index enumerates the high-order half of the variables.
func NewCommitter(numVars int) *Committer {
	leftNumVars := numVars / 2
	nRows := 1 << leftNumVars
	nPerRow := 1 << (numVars - leftNumVars)
	return newCommitter(nRows, nPerRow, DefaultRhoInv)
}

// NewCommitterFromDims rebuilds the parameters a proof was produced with; at
// verification time only nPerRow and nCols are known, carried by the proof
// itself. The row count is not needed: it is the length of the row weights.
func NewCommitterFromDims(nPerRow, nCols int) (*Committer, error) {
	if nPerRow <= 0 || nCols <= 0 || nCols%nPerRow != 0 {
		return nil, fmt.Errorf("invalid encoded dimensions %d x %d", nPerRow, nCols)
	}
	rhoInv := nCols / nPerRow
	if rhoInv < 2 {
		return nil, fmt.Errorf("inverse rate must be at least 2, got %d", rhoInv)
	}
	return newCommitter(0, nPerRow, rhoInv), nil
}

func newCommitter(nRows, nPerRow, rhoInv int) *Committer {
	return &Committer{
		NRows:   nRows,
		NPerRow: nPerRow,
		NCols:   nPerRow * rhoInv,
		RhoInv:  rhoInv,
		Queries: numQueries(SecurityBits, rhoInv),
		domain:  fft.NewDomain(uint64(nPerRow * rhoInv)),
	}
}

// numQueries returns the number of column openings needed for the target
// soundness at the given code rate.
func numQueries(securityBits float64, rhoInv int) int {
	queriesLogTerm := math.Log2(1.0 + 1.0/float64(rhoInv))
	return int(math.Ceil(securityBits / (1.0 - queriesLogTerm)))
}

// Prover is the decommitment: everything needed to answer row openings. It
// stays with the committer and must never be sent to a verifier.
type Prover struct {
	Committer *Committer
	Matrix    []fr.Element // row-major, NRows x NPerRow
	Encoded   []fr.Element // row-major, NRows x NCols
	Tree      *core.MerkleTree

	columns []fr.Vector // encoded matrix in column-major order
}

// Commit encodes v laid out as an NRows x NPerRow matrix and returns the
// decommitment together with the Merkle root binding the encoded columns.
func (c *Committer) Commit(v []fr.Element) (*Prover, Root, error) {
	if len(v) != c.NRows*c.NPerRow {
		return nil, nil, fmt.Errorf("vector length %d does not match %d x %d grid", len(v), c.NRows, c.NPerRow)
	}

	start := time.Now()

	// snapshot the input: the decommitment must stay bound to the committed
	// values even if the caller mutates v afterwards
	matrix := make([]fr.Element, len(v))
	copy(matrix, v)

	encoded := make([]fr.Element, c.NRows*c.NCols)
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < c.NRows; i++ {
		g.Go(func() error {
			row := core.EncodeRow(matrix[i*c.NPerRow:(i+1)*c.NPerRow], c.RhoInv, c.domain)
			copy(encoded[i*c.NCols:(i+1)*c.NCols], row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	colMajor := make([]fr.Element, len(encoded))
	copy(colMajor, encoded)
	core.Transpose(colMajor, c.NRows, c.NCols)

	columns := make([]fr.Vector, c.NCols)
	leaves := make([]core.Leaf, c.NCols)
	for j := range columns {
		columns[j] = fr.Vector(colMajor[j*c.NRows : (j+1)*c.NRows])
		leaves[j] = &columns[j]
	}

	tree, err := core.NewMerkleTree(leaves)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Logger()
	log.Debug().
		Int("rows", c.NRows).
		Int("cols", c.NCols).
		Dur("took", time.Since(start)).
		Msg("ligero commit")

	return &Prover{
		Committer: c,
		Matrix:    matrix,
		Encoded:   encoded,
		Tree:      tree,
		columns:   columns,
	}, tree.Root(), nil
}

func (p *Prover) NumRows() int { return p.Committer.NRows }
func (p *Prover) NPerRow() int { return p.Committer.NPerRow }

// Proof opens one linear combination of the committed rows. It carries its own
// encoded dimensions so a verifier can rebuild the code parameters without any
// out-of-band grid metadata.
type Proof struct {
	NPerRow int
	NCols   int

	PRandom fr.Vector   // transcript-sampled row combination, for well-formedness
	PEval   fr.Vector   // caller-requested row combination
	Columns []fr.Vector // encoded columns at the queried indices
	Paths   []core.MerklePath
}

// Prove opens the row combination weighted by rowWeights. The transcript binds
// the root, both combined rows and the sampled column queries; the verifier
// replays the same sequence.
func (p *Prover) Prove(rowWeights []fr.Element, transcript *core.Transcript) (*Proof, error) {
	c := p.Committer
	if len(rowWeights) != c.NRows {
		return nil, fmt.Errorf("row weights length %d does not match %d rows", len(rowWeights), c.NRows)
	}

	start := time.Now()

	transcript.AppendBytes("root", p.Tree.Root())

	rho := make([]fr.Element, c.NRows)
	transcript.ChallengeScalars("rand_combination", rho)

	pRandom := p.combineRows(rho)
	transcript.AppendScalars("p_random", pRandom)

	pEval := p.combineRows(rowWeights)
	transcript.AppendScalars("p_eval", pEval)

	queries := sampleQueryIndices(transcript, c.Queries, c.NCols)

	columns := make([]fr.Vector, len(queries))
	paths := make([]core.MerklePath, len(queries))
	for k, idx := range queries {
		columns[k] = p.columns[idx]
		var err error
		if paths[k], err = p.Tree.Path(idx); err != nil {
			return nil, err
		}
	}

	log := logger.Logger()
	log.Debug().
		Int("queries", len(queries)).
		Dur("took", time.Since(start)).
		Msg("ligero open")

	return &Proof{
		NPerRow: c.NPerRow,
		NCols:   c.NCols,
		PRandom: pRandom,
		PEval:   pEval,
		Columns: columns,
		Paths:   paths,
	}, nil
}

// combineRows returns weights^T * M over the unencoded matrix.
func (p *Prover) combineRows(weights []fr.Element) fr.Vector {
	c := p.Committer
	combined := make(fr.Vector, c.NPerRow)
	var product fr.Element
	for i := 0; i < c.NRows; i++ {
		row := p.Matrix[i*c.NPerRow : (i+1)*c.NPerRow]
		for j := range row {
			product.Mul(&weights[i], &row[j])
			combined[j].Add(&combined[j], &product)
		}
	}
	return combined
}

// Verify checks the opening against the root and, on success, returns the
// recombined scalar <rowWeights^T * M, colWeights>. The committer must come
// from NewCommitterFromDims on the proof's own dimensions.
func (pf *Proof) Verify(root Root, rowWeights, colWeights []fr.Element, c *Committer, transcript *core.Transcript) (fr.Element, error) {
	var zero fr.Element
	nRows := len(rowWeights)
	if len(colWeights) != c.NPerRow {
		return zero, fmt.Errorf("column weights length %d does not match row length %d", len(colWeights), c.NPerRow)
	}
	if len(pf.PRandom) != c.NPerRow || len(pf.PEval) != c.NPerRow {
		return zero, fmt.Errorf("combined rows have the wrong length")
	}
	if len(pf.Columns) != len(pf.Paths) {
		return zero, fmt.Errorf("column and path counts do not match")
	}

	transcript.AppendBytes("root", root)

	rho := make([]fr.Element, nRows)
	transcript.ChallengeScalars("rand_combination", rho)

	transcript.AppendScalars("p_random", pf.PRandom)
	transcript.AppendScalars("p_eval", pf.PEval)

	queries := sampleQueryIndices(transcript, c.Queries, c.NCols)
	if len(queries) != len(pf.Columns) {
		return zero, fmt.Errorf("expected %d column openings, got %d", len(queries), len(pf.Columns))
	}

	encodedRandom := core.EncodeRow(pf.PRandom, c.RhoInv, c.domain)
	encodedEval := core.EncodeRow(pf.PEval, c.RhoInv, c.domain)

	for k, idx := range queries {
		column := pf.Columns[k]
		if len(column) != nRows {
			return zero, fmt.Errorf("column %d has length %d, expected %d", idx, len(column), nRows)
		}
		if ok, err := core.VerifyPath(&column, pf.Paths[k], root, idx); err != nil || !ok {
			return zero, fmt.Errorf("failed to verify merkle path for column %d", idx)
		}
		if got := core.InnerProduct(column, rho); !got.Equal(&encodedRandom[idx]) {
			return zero, fmt.Errorf("well-formedness check failed for column %d", idx)
		}
		if got := core.InnerProduct(column, rowWeights); !got.Equal(&encodedEval[idx]) {
			return zero, fmt.Errorf("opening check failed for column %d", idx)
		}
	}

	return core.InnerProduct(pf.PEval, colWeights), nil
}

// sampleQueryIndices draws column queries from the transcript, dropping
// duplicates so each column is opened at most once. Both sides replay the same
// draws and therefore agree on the surviving set and its order.
func sampleQueryIndices(transcript *core.Transcript, queries, nCols int) []int {
	seen := bitset.New(uint(nCols))
	indices := make([]int, 0, queries)
	for i := 0; i < queries; i++ {
		idx := int(transcript.SampleUint64("query") % uint64(nCols))
		if seen.Test(uint(idx)) {
			continue
		}
		seen.Set(uint(idx))
		indices = append(indices, idx)
	}
	return indices
}
