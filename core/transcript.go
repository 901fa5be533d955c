package core

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/gtank/merlin"
)

// challengeBytes is the number of bytes squeezed per scalar challenge. 48 bytes
// keep the bias of the modular reduction below 2^-128 for the BN254 scalar field.
const challengeBytes = 48

// Transcript is a deterministic absorb/squeeze object: prover and verifier must
// issue the exact same sequence of calls for challenges to line up.
type Transcript struct {
	*merlin.Transcript
}

func NewTranscript(name string) *Transcript {
	return &Transcript{merlin.NewTranscript(name)}
}

// AppendProtocolName domain-separates all subsequent messages of a sub-protocol.
func (t *Transcript) AppendProtocolName(name string) {
	t.AppendMessage([]byte("protocol-name"), []byte(name))
}

func (t *Transcript) AppendBytes(label string, bytes []byte) {
	t.AppendMessage([]byte(label), bytes)
}

func (t *Transcript) AppendUint64(label string, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	t.AppendMessage([]byte(label), buf[:])
}

func (t *Transcript) AppendScalar(label string, scalar *fr.Element) {
	b := scalar.Bytes()
	t.AppendMessage([]byte(label), b[:])
}

func (t *Transcript) AppendScalars(label string, scalars []fr.Element) {
	for i := range scalars {
		t.AppendScalar(label, &scalars[i])
	}
}

func (t *Transcript) ChallengeScalar(label string) fr.Element {
	var s fr.Element
	s.SetBytes(t.ExtractBytes([]byte(label), challengeBytes))
	return s
}

func (t *Transcript) ChallengeScalars(label string, scalars []fr.Element) {
	for i := range scalars {
		scalars[i] = t.ChallengeScalar(label)
	}
}

func (t *Transcript) SampleUint64(label string) uint64 {
	return binary.LittleEndian.Uint64(t.ExtractBytes([]byte(label), 8))
}
