/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mikeb26/showdown-leaguebot/rating"
)

// Rating implements rating.Store.
func (t *Tx) Rating(ctx context.Context, username string) (rating.Record, bool, error) {
	rec := rating.Record{Username: username}
	err := t.tx.QueryRowContext(ctx,
		`SELECT elo, active FROM ratings WHERE username = ?`, username).
		Scan(&rec.Elo, &rec.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return rating.Record{}, false, nil
	}
	if err != nil {
		return rating.Record{}, false, fmt.Errorf("query rating: %w", err)
	}

	return rec, true, nil
}

// PutRating implements rating.Store.
func (t *Tx) PutRating(ctx context.Context, rec rating.Record) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO ratings (username, elo, active) VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET
			elo = excluded.elo,
			active = excluded.active`,
		rec.Username, rec.Elo, rec.Active)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// Ratings returns every record, highest rating first.
func (t *Tx) Ratings(ctx context.Context) ([]rating.Record, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT username, elo, active FROM ratings ORDER BY elo DESC, username`)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var out []rating.Record
	for rows.Next() {
		var rec rating.Record
		if err := rows.Scan(&rec.Username, &rec.Elo, &rec.Active); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}
