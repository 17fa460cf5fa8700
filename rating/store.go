/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"fmt"

	"github.com/mikeb26/showdown-leaguebot/battlelog"
)

// Record is one player's entry in the rating store.
type Record struct {
	Username string
	Elo      int16
	Active   bool
}

// NewRecord returns the record a player gets on first appearance.
func NewRecord(username string) Record {
	return Record{
		Username: username,
		Elo:      DefaultElo,
		Active:   true,
	}
}

// Store is the rating store as seen by Apply. Rating reports ok=false for
// an unknown username.
type Store interface {
	Rating(ctx context.Context, username string) (rec Record, ok bool, err error)
	PutRating(ctx context.Context, rec Record) error
}

type PlayerChange struct {
	Before    Record
	After     Record
	Onboarded bool
}

func (pc PlayerChange) Delta() int {
	return int(pc.After.Elo) - int(pc.Before.Elo)
}

// Change describes what Apply did to the store.
type Change struct {
	One      PlayerChange
	Two      PlayerChange
	Estimate Estimate
}

// Apply updates both players' ratings in s for one match. Players without a
// record are onboarded at DefaultElo first. Nothing is written unless both
// new ratings could be computed.
func Apply(ctx context.Context, s Store,
	res *battlelog.MatchResult) (*Change, error) {

	one, err := lookup(ctx, s, res.PlayerOne)
	if err != nil {
		return nil, err
	}
	two, err := lookup(ctx, s, res.PlayerTwo)
	if err != nil {
		return nil, err
	}

	est, err := estimate(float64(one.Before.Elo), float64(two.Before.Elo),
		res.Outcome, res.FaintsOne, res.FaintsTwo)
	if err != nil {
		return nil, err
	}
	if one.After.Elo, err = roundElo(est.One); err != nil {
		return nil, fmt.Errorf("%v: %w", res.PlayerOne, err)
	}
	if two.After.Elo, err = roundElo(est.Two); err != nil {
		return nil, fmt.Errorf("%v: %w", res.PlayerTwo, err)
	}

	for _, pc := range []PlayerChange{one, two} {
		if err := s.PutRating(ctx, pc.After); err != nil {
			return nil, fmt.Errorf("storing rating for %v: %w",
				pc.After.Username, err)
		}
	}

	return &Change{One: one, Two: two, Estimate: est}, nil
}

func lookup(ctx context.Context, s Store, username string) (PlayerChange, error) {
	rec, ok, err := s.Rating(ctx, username)
	if err != nil {
		return PlayerChange{}, fmt.Errorf("loading rating for %v: %w", username,
			err)
	}
	if !ok {
		rec = NewRecord(username)
	}

	after := rec
	// playing a match brings a retired player back
	after.Active = true

	return PlayerChange{Before: rec, After: after, Onboarded: !ok}, nil
}

// SetActive marks a known player active or retired. Retired players keep
// their rating but are left out of reports.
func SetActive(ctx context.Context, s Store, username string, active bool) error {
	rec, ok, err := s.Rating(ctx, username)
	if err != nil {
		return fmt.Errorf("loading rating for %v: %w", username, err)
	}
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownPlayer, username)
	}
	rec.Active = active

	return s.PutRating(ctx, rec)
}
