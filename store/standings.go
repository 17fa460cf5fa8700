/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"fmt"

	"github.com/mikeb26/showdown-leaguebot/league"
)

// Standings reads a league table in its stored order. A league with no
// rows yields an empty table.
func (t *Tx) Standings(ctx context.Context, season int,
	leagueName string) (league.Table, error) {

	rows, err := t.tx.QueryContext(ctx, `
		SELECT username, wins, losses, draws, points, kills, faints, kd
		FROM standings
		WHERE season = ? AND league = ?
		ORDER BY position`, season, leagueName)
	if err != nil {
		return nil, fmt.Errorf("query standings: %w", err)
	}
	defer rows.Close()

	var table league.Table
	for rows.Next() {
		var r league.Row
		if err := rows.Scan(&r.Username, &r.Wins, &r.Losses, &r.Draws,
			&r.Points, &r.Kills, &r.Faints, &r.KD); err != nil {
			return nil, fmt.Errorf("scan standings row: %w", err)
		}
		table = append(table, r)
	}

	return table, rows.Err()
}

// ReplaceStandings writes a league table in full, replacing whatever was
// stored for that season and league. Row order is kept.
func (t *Tx) ReplaceStandings(ctx context.Context, season int,
	leagueName string, table league.Table) error {

	if _, err := t.tx.ExecContext(ctx,
		`DELETE FROM standings WHERE season = ? AND league = ?`,
		season, leagueName); err != nil {
		return fmt.Errorf("clear standings: %w", err)
	}

	stmt, err := t.tx.PrepareContext(ctx, `
		INSERT INTO standings (season, league, username, position, wins,
			losses, draws, points, kills, faints, kd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare standings insert: %w", err)
	}
	defer stmt.Close()

	for pos, r := range table {
		if _, err := stmt.ExecContext(ctx, season, leagueName, r.Username, pos,
			r.Wins, r.Losses, r.Draws, r.Points, r.Kills, r.Faints,
			r.KD); err != nil {
			return fmt.Errorf("insert standings row %v: %w", r.Username, err)
		}
	}

	return nil
}

// SeasonLeagues lists the leagues with stored tables for season.
func (t *Tx) SeasonLeagues(ctx context.Context, season int) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT DISTINCT league FROM standings WHERE season = ? ORDER BY league`,
		season)
	if err != nil {
		return nil, fmt.Errorf("query leagues: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}

	return out, rows.Err()
}
