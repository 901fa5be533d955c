package poly

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"

	"github.com/nulltea/lcpoly/core"
	"github.com/nulltea/lcpoly/ligero"
)

const evalProofProtocolName = "polynomial evaluation proof"

// ErrProofVerifyFailed is the only error Verify reports. The cause (malformed
// proof, failed opening, wrong claimed evaluation) is deliberately not
// distinguished.
var ErrProofVerifyFailed = errors.New("proof verification failed")

// CommitmentGens is pure derived data: the width of a committed row, i.e. the
// size of the right tensor half for the given variable count.
type CommitmentGens struct {
	Gens int
}

// NewCommitmentGens sizes the gens for a polynomial over numVars variables.
// The label names the basis in generator-based schemes; the linear-code
// commitment derives everything from the variable count, so it is unused here.
func NewCommitmentGens(numVars int, label string) *CommitmentGens {
	_, right := FactoredLens(numVars)
	return &CommitmentGens{Gens: 1 << right}
}

// CommitmentBlinds reserves the hiding hooks of a blinded variant; the protocol
// below accepts them but leaves them at zero.
type CommitmentBlinds struct {
	Blinds []fr.Element
}

// Commitment is the public binding commitment to a polynomial's evaluation
// table. It is small and safe to share by value.
type Commitment struct {
	Root ligero.Root
}

// Decommitment is the prover-only opening material returned next to a
// Commitment. It must never be sent to a verifier.
type Decommitment struct {
	prover *ligero.Prover
}

// Commit encodes the evaluation table on the grid derived from the variable
// count and returns the public commitment with its private decommitment. The
// gens must have been sized for the same variable count. The random tape is
// part of the call surface for a hiding variant and is unused.
func (p *DensePoly) Commit(gens *CommitmentGens, tape *core.RandomTape) (*Commitment, *Decommitment, error) {
	if p.len != 1<<p.numVars {
		panic("evaluation table does not cover the hypercube")
	}

	committer := ligero.NewCommitter(p.numVars)
	if gens == nil || gens.Gens != committer.NPerRow {
		panic("commitment gens do not match the polynomial's grid")
	}
	prover, root, err := committer.Commit(p.z[:p.len])
	if err != nil {
		return nil, nil, err
	}

	return &Commitment{Root: root}, &Decommitment{prover: prover}, nil
}

// AppendToTranscript absorbs the commitment with begin/end framing.
func (c *Commitment) AppendToTranscript(label string, transcript *core.Transcript) {
	transcript.AppendBytes(label, []byte("poly_commitment_begin"))
	transcript.AppendBytes("poly_commitment_share", c.Root)
	transcript.AppendBytes(label, []byte("poly_commitment_end"))
}

// commitmentWire strips the Marshal/UnmarshalBinary methods so cbor encodes
// the struct fields instead of re-entering them.
type commitmentWire Commitment

func (c *Commitment) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*commitmentWire)(c))
}

func (c *Commitment) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*commitmentWire)(c))
}

// EvalProof attests that a committed polynomial evaluates to a claimed value at
// a public point.
type EvalProof struct {
	Proof        *ligero.Proof
	LeftNumVars  int
	RightNumVars int
}

type evalProofWire EvalProof

func (p *EvalProof) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*evalProofWire)(p))
}

func (p *EvalProof) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*evalProofWire)(p))
}

// ProveEval opens the committed polynomial at r. The claimed evaluation and its
// blind belong to the hiding call surface and do not influence the proof.
func ProveEval(
	poly *DensePoly,
	decomm *Decommitment,
	blinds *CommitmentBlinds,
	r []fr.Element,
	eval *fr.Element,
	blindEval *fr.Element,
	gens *CommitmentGens,
	transcript *core.Transcript,
	tape *core.RandomTape,
) (*EvalProof, error) {
	transcript.AppendProtocolName(evalProofProtocolName)

	if poly.NumVars() != len(r) {
		panic("point length does not match number of variables")
	}

	// the split baked into the decommitment decides left/right, not r alone
	leftNumVars := core.Log2(decomm.prover.NumRows())
	rightNumVars := len(r) - leftNumVars

	if blinds == nil {
		blinds = &CommitmentBlinds{Blinds: make([]fr.Element, 1<<leftNumVars)}
	}
	if len(blinds.Blinds) != 1<<leftNumVars {
		panic("blinds length does not match the row count")
	}

	L := NewEqPoly(r[:leftNumVars]).Evals()
	R := NewEqPoly(r[leftNumVars:]).Evals()
	if len(L) != decomm.prover.NumRows() {
		panic("commitment and evaluation point have different variable counts")
	}
	if len(R) != decomm.prover.NPerRow() {
		panic("commitment and evaluation point have different variable counts")
	}

	// L is the outer tensor: it combines the committed rows into one virtual
	// row. R is the inner tensor, applied by the verifier against the opening.
	proof, err := decomm.prover.Prove(L, transcript)
	if err != nil {
		return nil, fmt.Errorf("row opening failed: %w", err)
	}

	return &EvalProof{
		Proof:        proof,
		LeftNumVars:  leftNumVars,
		RightNumVars: rightNumVars,
	}, nil
}

// Verify checks the proof against the commitment, the point and the claimed
// evaluation. The verifier never sees the evaluation table; it recomputes the
// tensors from r and trusts the linear-code opening for the row step.
func (p *EvalProof) Verify(
	gens *CommitmentGens,
	transcript *core.Transcript,
	r []fr.Element,
	eval *fr.Element,
	comm *Commitment,
) error {
	transcript.AppendProtocolName(evalProofProtocolName)

	if p.LeftNumVars+p.RightNumVars != len(r) {
		return ErrProofVerifyFailed
	}
	if p.Proof == nil {
		return ErrProofVerifyFailed
	}

	L := NewEqPoly(r[:p.LeftNumVars]).Evals()
	R := NewEqPoly(r[p.LeftNumVars:]).Evals()
	if len(R) != p.Proof.NPerRow {
		return ErrProofVerifyFailed
	}

	committer, err := ligero.NewCommitterFromDims(p.Proof.NPerRow, p.Proof.NCols)
	if err != nil {
		return ErrProofVerifyFailed
	}

	res, err := p.Proof.Verify(comm.Root, L, R, committer, transcript)
	if err != nil || !res.Equal(eval) {
		return ErrProofVerifyFailed
	}

	return nil
}

// VerifyPlain is Verify for an unblinded claimed evaluation.
func (p *EvalProof) VerifyPlain(
	gens *CommitmentGens,
	transcript *core.Transcript,
	r []fr.Element,
	eval *fr.Element,
	comm *Commitment,
) error {
	return p.Verify(gens, transcript, r, eval, comm)
}
