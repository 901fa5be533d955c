package core

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// RandomTape derives auxiliary prover randomness from a transcript seeded with
// system entropy. Outputs are deterministic given the seed, so a proving session
// can be replayed for debugging while staying unpredictable to the verifier.
// A tape belongs to a single proving session and must not be shared.
type RandomTape struct {
	tape *Transcript
}

func NewRandomTape(name string) *RandomTape {
	tape := NewTranscript(name)

	var seed fr.Element
	if _, err := seed.SetRandom(); err != nil {
		panic(err)
	}
	tape.AppendScalar("init_randomness", &seed)

	return &RandomTape{tape: tape}
}

// RandomScalar squeezes one field element, domain-separated by label. The tape
// state advances, so repeated calls with the same label yield fresh values.
func (t *RandomTape) RandomScalar(label string) fr.Element {
	return t.tape.ChallengeScalar(label)
}

func (t *RandomTape) RandomScalars(label string, n int) []fr.Element {
	scalars := make([]fr.Element, n)
	t.tape.ChallengeScalars(label, scalars)
	return scalars
}
