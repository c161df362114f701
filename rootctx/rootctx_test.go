package rootctx_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

func fractionMonzo(t *testing.T, num, den int64) monzo.TimeMonzo {
	t.Helper()
	m, _ := monzo.FromBigRat(big.NewInt(num), big.NewInt(den), monzo.DefaultPrimes, 1000, rational.Zero)
	return m
}

func TestNewDefaultsToUnlimitedGas(t *testing.T) {
	root, err := rootctx.New()
	require.NoError(t, err)
	assert.NoError(t, root.Spend(1<<40))
	assert.Equal(t, int64(1<<30), root.Remaining())
}

func TestWithGasExhausts(t *testing.T) {
	root, err := rootctx.New(rootctx.WithGas(3))
	require.NoError(t, err)
	require.NoError(t, root.Spend(3))
	assert.Equal(t, int64(0), root.Remaining())
	assert.Error(t, root.Spend(1))
}

func TestWithNumComponentsShrinksPrimeBasis(t *testing.T) {
	root, err := rootctx.New(rootctx.WithNumComponents(3))
	require.NoError(t, err)
	assert.Len(t, root.Primes(), 3)
}

func TestWithNumComponentsRejectsNonPositive(t *testing.T) {
	_, err := rootctx.New(rootctx.WithNumComponents(0))
	assert.Error(t, err)
}

func TestRelativeWithoutUnisonFrequencyErrors(t *testing.T) {
	root, err := rootctx.New()
	require.NoError(t, err)
	abs := value.FromMonzo(fractionMonzo(t, 440, 1))
	abs.Echelon = value.Absolute
	_, err = root.Relative(abs)
	assert.Error(t, err)
}

func TestAbsoluteRelativeRoundTrip(t *testing.T) {
	root, err := rootctx.New(rootctx.WithUnisonFrequency(fractionMonzo(t, 440, 1)))
	require.NoError(t, err)

	rel := value.FromMonzo(fractionMonzo(t, 3, 2))
	abs, err := root.Absolute(rel)
	require.NoError(t, err)
	assert.Equal(t, value.Absolute, abs.Echelon)

	back, err := root.Relative(abs)
	require.NoError(t, err)
	assert.Equal(t, value.Relative, back.Echelon)
	cmp, err := value.Compare(rel, back)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestCompareRelativeIsesMismatchedEchelons(t *testing.T) {
	root, err := rootctx.New(rootctx.WithUnisonFrequency(fractionMonzo(t, 440, 1)))
	require.NoError(t, err)

	rel := value.FromMonzo(fractionMonzo(t, 3, 2))
	abs, err := root.Absolute(rel)
	require.NoError(t, err)

	cmp, err := root.Compare(rel, abs)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestRedefineUpBumpsGeneration(t *testing.T) {
	root, err := rootctx.New()
	require.NoError(t, err)
	before := root.Generation()
	root.RedefineUp(value.FromMonzo(fractionMonzo(t, 81, 80)))
	assert.Equal(t, before+1, root.Generation())
}

func TestTrackProducesStableDistinctIDs(t *testing.T) {
	root, err := rootctx.New()
	require.NoError(t, err)
	iv := value.FromMonzo(fractionMonzo(t, 3, 2))

	a := root.Track(iv)
	b := root.Track(iv)
	require.Len(t, a.TrackingIDs, 1)
	require.Len(t, b.TrackingIDs, 1)
	assert.NotEqual(t, a.TrackingIDs[0], b.TrackingIDs[0])

	// A fresh context hands out the same first id again.
	other, err := rootctx.New()
	require.NoError(t, err)
	assert.Equal(t, a.TrackingIDs[0], other.Track(iv).TrackingIDs[0])
}

func TestMOSResolveWithoutConfigErrors(t *testing.T) {
	root, err := rootctx.New()
	require.NoError(t, err)
	_, err = root.MOS().Resolve(2)
	assert.Error(t, err)
}

func TestMOSResolveStacksLargeThenSmallSteps(t *testing.T) {
	root, err := rootctx.New()
	require.NoError(t, err)

	large := fractionMonzo(t, 9, 8)
	small := fractionMonzo(t, 256, 243)
	period := fractionMonzo(t, 2, 1)
	root.SetMOS(rootctx.MOSConfig{
		CountLarge: 5,
		CountSmall: 2,
		LargeSize:  large,
		SmallSize:  small,
		Period:     period,
	})

	m, err := root.MOS().Resolve(1)
	require.NoError(t, err)
	cmp := monzo.FromMonzo(m).Value
	want := monzo.FromMonzo(large).Value
	assert.InDelta(t, want, cmp, 1e-9)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	root, err := rootctx.New(
		rootctx.WithGas(42),
		rootctx.WithUnisonFrequency(fractionMonzo(t, 440, 1)),
	)
	require.NoError(t, err)
	root.Title = "test context"
	root.Track(value.FromMonzo(fractionMonzo(t, 3, 2)))

	data, err := root.Marshal()
	require.NoError(t, err)

	restored, err := rootctx.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "test context", restored.Title)
	assert.Equal(t, int64(42), restored.Remaining())

	uf, ok := restored.UnisonFrequency()
	require.True(t, ok)
	cmp, err := value.Compare(value.FromMonzo(uf), value.FromMonzo(fractionMonzo(t, 440, 1)))
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	secondID := restored.Track(value.FromMonzo(fractionMonzo(t, 3, 2)))
	require.Len(t, secondID.TrackingIDs, 1)
}

func TestUnmarshalMissingGasIsUnlimited(t *testing.T) {
	root, err := rootctx.New()
	require.NoError(t, err)
	data, err := root.Marshal()
	require.NoError(t, err)

	restored, err := rootctx.Unmarshal(data)
	require.NoError(t, err)
	assert.NoError(t, restored.Spend(1<<40))
}
