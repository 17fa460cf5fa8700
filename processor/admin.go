/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package processor

import (
	"context"
	"fmt"

	"github.com/mikeb26/showdown-leaguebot/league"
	"github.com/mikeb26/showdown-leaguebot/rating"
	"github.com/mikeb26/showdown-leaguebot/store"
)

// InitSeason gives every player in the season index a zero row in their
// league's table. Existing rows are left alone, so running it again after
// adding players to the index only adds the newcomers. It returns the
// number of rows created.
func (p *Processor) InitSeason(ctx context.Context, season int) (int, error) {
	ix, err := p.Index(season)
	if err != nil {
		return 0, err
	}

	created := 0
	err = p.store.Update(ctx, func(tx *store.Tx) error {
		for _, name := range ix.Leagues() {
			table, err := tx.Standings(ctx, season, name)
			if err != nil {
				return err
			}
			added := 0
			for _, username := range ix.Members(name) {
				if table.Find(username) < 0 {
					table = append(table, league.Row{Username: username})
					added++
				}
			}
			if added == 0 {
				continue
			}
			table.Sort()
			if err := tx.ReplaceStandings(ctx, season, name, table); err != nil {
				return err
			}
			created += added
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	p.logger.Info().Int("season", season).Int("rows_created", created).
		Msg("season initialised")

	return created, nil
}

// LeagueTable is one league's standings.
type LeagueTable struct {
	League string
	Table  league.Table
}

// Standings returns the stored tables for season. An empty leagueName
// returns every league with a table, in name order.
func (p *Processor) Standings(ctx context.Context, season int,
	leagueName string) ([]LeagueTable, error) {

	var out []LeagueTable
	err := p.store.View(ctx, func(tx *store.Tx) error {
		names := []string{leagueName}
		if leagueName == "" {
			var err error
			if names, err = tx.SeasonLeagues(ctx, season); err != nil {
				return err
			}
		}
		for _, name := range names {
			table, err := tx.Standings(ctx, season, name)
			if err != nil {
				return err
			}
			out = append(out, LeagueTable{League: name, Table: table})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (p *Processor) Ratings(ctx context.Context) ([]rating.Record, error) {
	var recs []rating.Record
	err := p.store.View(ctx, func(tx *store.Tx) error {
		var err error
		recs, err = tx.Ratings(ctx)
		return err
	})

	return recs, err
}

// SetActive retires (active=false) or reinstates a rated player.
func (p *Processor) SetActive(ctx context.Context, username string,
	active bool) error {

	err := p.store.Update(ctx, func(tx *store.Tx) error {
		return rating.SetActive(ctx, tx, username, active)
	})
	if err != nil {
		return fmt.Errorf("failed to update %v: %w", username, err)
	}
	p.logger.Info().Str("username", username).Bool("active", active).
		Msg("player status updated")

	return nil
}
