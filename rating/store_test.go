/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mikeb26/showdown-leaguebot/battlelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	recs   map[string]Record
	puts   int
	getErr error
}

func newMemStore(recs ...Record) *memStore {
	m := &memStore{recs: make(map[string]Record)}
	for _, r := range recs {
		m.recs[r.Username] = r
	}
	return m
}

func (m *memStore) Rating(ctx context.Context, username string) (Record, bool, error) {
	if m.getErr != nil {
		return Record{}, false, m.getErr
	}
	r, ok := m.recs[username]
	return r, ok, nil
}

func (m *memStore) PutRating(ctx context.Context, rec Record) error {
	m.puts++
	m.recs[rec.Username] = rec
	return nil
}

func TestApplyOnboardsBothPlayers(t *testing.T) {
	s := newMemStore()
	res := &battlelog.MatchResult{PlayerOne: "alice", PlayerTwo: "bob",
		FaintsOne: 0, FaintsTwo: 6, Outcome: battlelog.OutcomeWin1}

	change, err := Apply(context.Background(), s, res)
	require.NoError(t, err)

	assert.True(t, change.One.Onboarded)
	assert.True(t, change.Two.Onboarded)
	assert.Equal(t, int16(DefaultElo), change.One.Before.Elo)
	assert.Equal(t, int16(DefaultElo), change.Two.Before.Elo)
	assert.Equal(t, 32, change.One.Delta())
	assert.Equal(t, -32, change.Two.Delta())

	assert.Equal(t, Record{Username: "alice", Elo: 1032, Active: true}, s.recs["alice"])
	assert.Equal(t, Record{Username: "bob", Elo: 968, Active: true}, s.recs["bob"])
}

func TestApplyUsesExistingRecords(t *testing.T) {
	s := newMemStore(
		Record{Username: "alice", Elo: 1200, Active: false},
	)
	res := &battlelog.MatchResult{PlayerOne: "alice", PlayerTwo: "bob",
		FaintsOne: 3, FaintsTwo: 3, Outcome: battlelog.OutcomeDraw}

	change, err := Apply(context.Background(), s, res)
	require.NoError(t, err)

	assert.False(t, change.One.Onboarded)
	assert.True(t, change.Two.Onboarded)
	assert.Equal(t, int16(1192), s.recs["alice"].Elo)
	assert.True(t, s.recs["alice"].Active, "playing reactivates a retired player")
	assert.Equal(t, int16(1008), s.recs["bob"].Elo)
}

func TestApplyWritesNothingOnError(t *testing.T) {
	t.Run("store error", func(t *testing.T) {
		s := newMemStore()
		s.getErr = errors.New("disk on fire")
		_, err := Apply(context.Background(), s, &battlelog.MatchResult{
			PlayerOne: "a", PlayerTwo: "b", Outcome: battlelog.OutcomeWin1})
		assert.ErrorIs(t, err, s.getErr)
		assert.Zero(t, s.puts)
	})

	t.Run("bad outcome", func(t *testing.T) {
		s := newMemStore()
		_, err := Apply(context.Background(), s, &battlelog.MatchResult{
			PlayerOne: "a", PlayerTwo: "b"})
		assert.ErrorIs(t, err, ErrInvalidOutcome)
		assert.Zero(t, s.puts)
	})

	t.Run("overflow", func(t *testing.T) {
		s := newMemStore(
			Record{Username: "a", Elo: 32760, Active: true},
			Record{Username: "b", Elo: 32760, Active: true},
		)
		_, err := Apply(context.Background(), s, &battlelog.MatchResult{
			PlayerOne: "a", PlayerTwo: "b", FaintsTwo: 6,
			Outcome: battlelog.OutcomeWin1})
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Zero(t, s.puts)
		assert.Equal(t, int16(32760), s.recs["a"].Elo)
	})
}

func TestSetActive(t *testing.T) {
	s := newMemStore(Record{Username: "alice", Elo: 1100, Active: true})

	require.NoError(t, SetActive(context.Background(), s, "alice", false))
	assert.Equal(t, Record{Username: "alice", Elo: 1100}, s.recs["alice"])

	err := SetActive(context.Background(), s, "nobody", false)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestBuildRatingsOutput(t *testing.T) {
	recs := []Record{
		{Username: "carol", Elo: 990, Active: true},
		{Username: "alice", Elo: 1032, Active: true},
		{Username: "dave", Elo: 1500, Active: false},
		{Username: "bob", Elo: 1032, Active: true},
	}

	out := BuildRatingsOutput(recs, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "1."), lines[1])
	assert.Contains(t, lines[1], "alice")
	// bob shares alice's place
	assert.True(t, strings.HasPrefix(lines[2], "  "), lines[2])
	assert.Contains(t, lines[2], "bob")
	assert.True(t, strings.HasPrefix(lines[3], "3."), lines[3])
	assert.NotContains(t, out, "dave")

	out = BuildRatingsOutput(recs, true)
	assert.Contains(t, out, "dave (retired)")

	assert.Equal(t, "No rated players\n", BuildRatingsOutput(nil, false))
}
