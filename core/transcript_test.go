package core_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/nulltea/lcpoly/core"
)

func TestTranscriptIsDeterministic(t *testing.T) {
	run := func() (fr.Element, uint64) {
		tr := core.NewTranscript("test")
		tr.AppendProtocolName("proto")
		tr.AppendBytes("msg", []byte("hello"))
		tr.AppendUint64("count", 42)
		var s fr.Element
		s.SetUint64(7)
		tr.AppendScalar("scalar", &s)
		return tr.ChallengeScalar("challenge"), tr.SampleUint64("index")
	}

	c1, u1 := run()
	c2, u2 := run()
	require.True(t, c1.Equal(&c2))
	require.Equal(t, u1, u2)
}

func TestTranscriptDivergesOnDifferentMessages(t *testing.T) {
	t1 := core.NewTranscript("test")
	t2 := core.NewTranscript("test")
	t1.AppendBytes("msg", []byte("a"))
	t2.AppendBytes("msg", []byte("b"))

	c1 := t1.ChallengeScalar("challenge")
	c2 := t2.ChallengeScalar("challenge")
	require.False(t, c1.Equal(&c2))
}

func TestChallengeAdvancesState(t *testing.T) {
	tr := core.NewTranscript("test")
	c1 := tr.ChallengeScalar("challenge")
	c2 := tr.ChallengeScalar("challenge")
	require.False(t, c1.Equal(&c2))
}

func TestChallengeScalarsFillsAll(t *testing.T) {
	tr := core.NewTranscript("test")
	scalars := make([]fr.Element, 8)
	tr.ChallengeScalars("batch", scalars)

	var zero fr.Element
	for i := range scalars {
		require.False(t, scalars[i].Equal(&zero), "entry %d", i)
	}
}

func TestRandomTapeAdvances(t *testing.T) {
	tape := core.NewRandomTape("proof")
	a := tape.RandomScalar("blind")
	b := tape.RandomScalar("blind")
	require.False(t, a.Equal(&b))
}

func TestRandomTapesAreIndependent(t *testing.T) {
	a := core.NewRandomTape("proof").RandomScalar("blind")
	b := core.NewRandomTape("proof").RandomScalar("blind")
	require.False(t, a.Equal(&b))
}

func TestRandomTapeBatch(t *testing.T) {
	tape := core.NewRandomTape("proof")
	scalars := tape.RandomScalars("blinds", 4)
	require.Len(t, scalars, 4)
	for i := 1; i < len(scalars); i++ {
		require.False(t, scalars[0].Equal(&scalars[i]))
	}
}
