/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"errors"
	"fmt"
)

var ErrAlreadyProcessed = errors.New("match already processed")

// ProcessedMatch identifies one log applied within one scope ("ratings",
// or a season's league table).
type ProcessedMatch struct {
	Fingerprint string
	Scope       string
	RunID       string
	PlayerOne   string
	PlayerTwo   string
}

// MarkProcessed records m, failing with ErrAlreadyProcessed if the same log
// was already applied in the same scope.
func (t *Tx) MarkProcessed(ctx context.Context, m ProcessedMatch) error {
	var n int
	err := t.tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM processed_matches
		WHERE fingerprint = ? AND scope = ?`, m.Fingerprint, m.Scope).Scan(&n)
	if err != nil {
		return fmt.Errorf("query processed matches: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %v vs %v in %v", ErrAlreadyProcessed,
			m.PlayerOne, m.PlayerTwo, m.Scope)
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO processed_matches (fingerprint, scope, run_id, player_one,
			player_two)
		VALUES (?, ?, ?, ?, ?)`,
		m.Fingerprint, m.Scope, m.RunID, m.PlayerOne, m.PlayerTwo)
	if err != nil {
		return fmt.Errorf("record processed match: %w", err)
	}

	return nil
}
