/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"math"
	"testing"

	"github.com/mikeb26/showdown-leaguebot/battlelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKFactor(t *testing.T) {
	cases := []struct {
		f1, f2 int
		want   float64
	}{
		{6, 0, 64},
		{0, 6, 64},
		{3, 3, 32},
		{0, 0, 32},
		{4, 1, 48},
		{1, 4, 48},
		// no cap on the margin term
		{12, 0, 96},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, KFactor(c.f1, c.f2), 1e-9, "KFactor(%d, %d)",
			c.f1, c.f2)
	}
}

func TestCleanSweepBetweenEqualRatings(t *testing.T) {
	est, err := estimate(1000, 1000, battlelog.OutcomeWin1, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 64.0, est.K)
	assert.Equal(t, 0.5, est.ExpectedOne)
	assert.Equal(t, 32.0, est.One-1000)
	assert.Equal(t, -32.0, est.Two-1000)

	one, two, err := Update(1000, 1000, battlelog.OutcomeWin1, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, int16(1032), one)
	assert.Equal(t, int16(968), two)

	one, two, err = Update(1000, 1000, battlelog.OutcomeWin2, 0, 6)
	require.NoError(t, err)
	assert.Equal(t, int16(968), one)
	assert.Equal(t, int16(1032), two)
}

func TestDrawAgainstWeakerPlayer(t *testing.T) {
	est, err := estimate(1200, 1000, battlelog.OutcomeDraw, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 32.0, est.K)
	assert.InDelta(t, 0.7597, est.ExpectedOne, 1e-4)
	assert.InDelta(t, 1191.69, est.One, 0.01)
	assert.InDelta(t, 1008.31, est.Two, 0.01)

	one, two, err := Update(1200, 1000, battlelog.OutcomeDraw, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int16(1192), one)
	assert.Equal(t, int16(1008), two)
}

func TestUpdateIsZeroSumBeforeRounding(t *testing.T) {
	ratings := []float64{600, 987, 1000, 1234, 1800, 2400}
	outcomes := []battlelog.Outcome{battlelog.OutcomeWin1,
		battlelog.OutcomeWin2, battlelog.OutcomeDraw}
	for _, r1 := range ratings {
		for _, r2 := range ratings {
			for _, o := range outcomes {
				est, err := estimate(r1, r2, o, 5, 2)
				require.NoError(t, err)
				assert.InDelta(t, 1.0, est.ExpectedOne+est.ExpectedTwo, 1e-12)
				assert.InDelta(t, 0.0, (est.One-r1)+(est.Two-r2), 1e-9,
					"r1=%v r2=%v outcome=%v", r1, r2, o)
			}
		}
	}
}

func TestUpdateRejectsUnknownOutcome(t *testing.T) {
	_, _, err := Update(1000, 1000, battlelog.OutcomeUnknown, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestRoundEloHalfToEven(t *testing.T) {
	cases := map[float64]int16{
		1000.5:  1000,
		1001.5:  1002,
		1191.69: 1192,
		1008.31: 1008,
		-0.5:    0,
		32767.4: 32767,
	}
	for in, want := range cases {
		got, err := roundElo(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "roundElo(%v)", in)
	}

	for _, in := range []float64{32767.5, -32769, math.NaN(), math.Inf(1)} {
		_, err := roundElo(in)
		assert.ErrorIs(t, err, ErrOutOfRange, "roundElo(%v)", in)
	}
}
