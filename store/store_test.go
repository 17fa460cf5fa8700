/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mikeb26/showdown-leaguebot/battlelog"
	"github.com/mikeb26/showdown-leaguebot/league"
	"github.com/mikeb26/showdown-leaguebot/rating"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "league.db"),
		zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "league.db")

	s, err := Open(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.PutRating(ctx, rating.NewRecord("alice"))
	}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		rec, ok, err := tx.Rating(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int16(1000), rec.Elo)
		return nil
	}))
}

func TestRatingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	err := s.Update(ctx, func(tx *Tx) error {
		_, ok, err := tx.Rating(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, tx.PutRating(ctx, rating.Record{Username: "bob",
			Elo: 968, Active: true}))
		require.NoError(t, tx.PutRating(ctx, rating.Record{Username: "alice",
			Elo: 1032, Active: true}))
		// upsert
		return tx.PutRating(ctx, rating.Record{Username: "bob", Elo: 950,
			Active: false})
	})
	require.NoError(t, err)

	var recs []rating.Record
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		var err error
		recs, err = tx.Ratings(ctx)
		return err
	}))

	assert.Equal(t, []rating.Record{
		{Username: "alice", Elo: 1032, Active: true},
		{Username: "bob", Elo: 950, Active: false},
	}, recs)
}

func TestRatingApplyThroughTx(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	res := &battlelog.MatchResult{PlayerOne: "alice", PlayerTwo: "bob",
		FaintsOne: 0, FaintsTwo: 6, Outcome: battlelog.OutcomeWin1}

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		_, err := rating.Apply(ctx, tx, res)
		return err
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		alice, _, err := tx.Rating(ctx, "alice")
		require.NoError(t, err)
		bob, _, err := tx.Rating(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, int16(1032), alice.Elo)
		assert.Equal(t, int16(968), bob.Elo)
		return nil
	}))
}

func TestStandingsKeepOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	table := league.Table{
		{Username: "zed", Wins: 1, Points: 3, Kills: 6, KD: 6},
		{Username: "amy"},
		{Username: "bob", Losses: 1, Faints: 6, KD: -6},
	}

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		if err := tx.ReplaceStandings(ctx, 1, "Kanto", table); err != nil {
			return err
		}
		return tx.ReplaceStandings(ctx, 1, "Johto", league.Table{{Username: "carol"}})
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		got, err := tx.Standings(ctx, 1, "Kanto")
		require.NoError(t, err)
		assert.Equal(t, table, got)

		empty, err := tx.Standings(ctx, 2, "Kanto")
		require.NoError(t, err)
		assert.Empty(t, empty)

		leagues, err := tx.SeasonLeagues(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"Johto", "Kanto"}, leagues)
		return nil
	}))

	// replacing drops rows no longer present
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.ReplaceStandings(ctx, 1, "Kanto", table[:1])
	}))
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		got, err := tx.Standings(ctx, 1, "Kanto")
		require.NoError(t, err)
		assert.Equal(t, table[:1], got)
		return nil
	}))
}

func TestUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	boom := errors.New("boom")

	err := s.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.PutRating(ctx, rating.NewRecord("alice")))
		require.NoError(t, tx.ReplaceStandings(ctx, 1, "Kanto",
			league.Table{{Username: "alice"}}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		_, ok, err := tx.Rating(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, ok)

		table, err := tx.Standings(ctx, 1, "Kanto")
		require.NoError(t, err)
		assert.Empty(t, table)
		return nil
	}))
}

func TestViewNeverCommits(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		return tx.PutRating(ctx, rating.NewRecord("alice"))
	}))
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		_, ok, err := tx.Rating(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	}))
}

func TestMarkProcessed(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	m := ProcessedMatch{Fingerprint: "abc", Scope: "ratings", RunID: "run-1",
		PlayerOne: "alice", PlayerTwo: "bob"}

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.MarkProcessed(ctx, m)
	}))

	err := s.Update(ctx, func(tx *Tx) error {
		return tx.MarkProcessed(ctx, m)
	})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	// same log, different scope
	m.Scope = "season1/Kanto"
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.MarkProcessed(ctx, m)
	}))
}
